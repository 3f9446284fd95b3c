package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/timmy/leadscout/internal/domain"
	"github.com/timmy/leadscout/internal/logger"
)

// csvHeader is the fixed column order of the export artifact.
var csvHeader = []string{
	"business_name",
	"address",
	"phone",
	"email",
	"area",
	"city",
	"reviews_count",
	"rating",
	"website",
	"date_scraped",
	"status",
}

// LeadLister lists a city's qualified leads for export.
type LeadLister interface {
	ListByCity(ctx context.Context, city string) ([]domain.QualifiedLead, error)
}

// Exporter writes the per-city CSV artifact of qualified leads.
type Exporter struct {
	leads LeadLister
	dir   string
	now   func() time.Time
}

// NewExporter creates an Exporter.
// Parameters:
//   - leads: lead source.
//   - dir: output directory, created on demand.
// Returns:
//   - *Exporter: initialized exporter.
func NewExporter(leads LeadLister, dir string) *Exporter {
	if dir == "" {
		dir = "exports"
	}
	return &Exporter{
		leads: leads,
		dir:   dir,
		now:   time.Now,
	}
}

// ExportCity writes all qualified leads for a city to a timestamped CSV file.
// A file with only the header row is written when the city has no leads, so
// downstream consumers always find an artifact.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - city: city name.
// Returns:
//   - string: path of the written file.
//   - error: non-nil if listing or writing fails.
func (e *Exporter) ExportCity(ctx context.Context, city string) (string, error) {
	leads, err := e.leads.ListByCity(ctx, city)
	if err != nil {
		return "", fmt.Errorf("failed to list leads for %s: %w", city, err)
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	filename := fmt.Sprintf("%s_qualified_leads_%s.csv", citySlug(city), e.now().Format("20060102_150405"))
	path := filepath.Join(e.dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for i := range leads {
		if err := w.Write(leadRow(&leads[i])); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush export: %w", err)
	}

	logger.With(logger.Fields{logger.FieldCount: len(leads)}).
		Info(ctx, "Exported leads to %s", path)
	return path, nil
}

func leadRow(lead *domain.QualifiedLead) []string {
	return []string{
		lead.BusinessName,
		strOrEmpty(lead.Address),
		strOrEmpty(lead.Phone),
		strOrEmpty(lead.Email),
		lead.Area,
		lead.City,
		intOrEmpty(lead.ReviewsCount),
		floatOrEmpty(lead.Rating),
		strOrEmpty(lead.Website),
		lead.DateScraped.UTC().Format(time.RFC3339),
		string(lead.Status),
	}
}

// citySlug lowercases the city name and strips it down to a filename-safe
// token, mirroring the export naming downstream dashboards expect.
func citySlug(city string) string {
	slug := strings.ToLower(city)
	slug = strings.ReplaceAll(slug, ",", "")
	slug = strings.ReplaceAll(slug, " ", "_")
	return slug
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
