package service

import (
	"context"
	"time"

	"github.com/timmy/leadscout/internal/domain"
	"github.com/timmy/leadscout/internal/logger"
	"github.com/timmy/leadscout/internal/metrics"
)

// AreaStore is the work-record contract the pipeline consumes. Each call is a
// single transactional unit; the pipeline never holds a live database handle.
type AreaStore interface {
	Seed(ctx context.Context, city string, areas []string) error
	Get(ctx context.Context, city, area string) (*domain.CityArea, error)
	SetStatus(ctx context.Context, city, area string, status domain.AreaStatus, lastRunAt *time.Time) error
}

// LeadStore persists qualifying leads one at a time as they are produced.
type LeadStore interface {
	Insert(ctx context.Context, lead *domain.QualifiedLead) error
}

// ScrapeConfig holds the tunables of one scrape run.
type ScrapeConfig struct {
	ReviewsThreshold int
	PerAreaLimit     int
}

// RunStats summarizes one scrape run.
type RunStats struct {
	AreasProcessed int
	AreasSkipped   int
	AreasFailed    int
	LeadsQualified int
}

// Scraper orchestrates the per-area pipeline and drives the work-record state
// machine: pending/failed -> in_progress -> completed|failed. A failure in
// one area marks it failed and the run continues with the next area; only
// seeding failures abort the run.
type Scraper struct {
	areas     AreaStore
	leads     LeadStore
	collector *Collector
	api       PlacesAPI
	qualifier *Qualifier
	metrics   *metrics.Metrics
	cfg       ScrapeConfig
	now       func() time.Time
}

// NewScraper creates a Scraper.
// Parameters:
//   - areas: work-record store.
//   - leads: lead store.
//   - collector: candidate aggregator.
//   - api: upstream places client, used for per-candidate details.
//   - qualifier: lead qualification engine.
//   - m: pipeline metrics; may be nil.
//   - cfg: run tunables.
// Returns:
//   - *Scraper: initialized scraper.
func NewScraper(areas AreaStore, leads LeadStore, collector *Collector, api PlacesAPI, qualifier *Qualifier, m *metrics.Metrics, cfg ScrapeConfig) *Scraper {
	if cfg.ReviewsThreshold <= 0 {
		cfg.ReviewsThreshold = 10
	}
	if cfg.PerAreaLimit <= 0 {
		cfg.PerAreaLimit = 100
	}
	return &Scraper{
		areas:     areas,
		leads:     leads,
		collector: collector,
		api:       api,
		qualifier: qualifier,
		metrics:   m,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Run seeds work records for every (city, area) pair and processes each area
// in order. Areas already completed are skipped; failed and pending areas are
// processed. A per-area failure is recorded on its work record and never
// aborts the run.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - city: city name.
//   - areaLabels: area labels to process, in order.
// Returns:
//   - *RunStats: counts for the run.
//   - error: non-nil only when seeding fails before any work starts.
func (s *Scraper) Run(ctx context.Context, city string, areaLabels []string) (*RunStats, error) {
	if err := s.areas.Seed(ctx, city, areaLabels); err != nil {
		return nil, err
	}

	stats := &RunStats{}
	for _, area := range areaLabels {
		areaCtx := logger.SetArea(ctx, city, area)

		record, err := s.areas.Get(areaCtx, city, area)
		if err != nil {
			logger.CtxError(areaCtx, "Failed to load work record: %v", err)
			stats.AreasFailed++
			s.metrics.IncArea("failed")
			continue
		}
		if !record.Status.Retryable() {
			logger.CtxInfo(areaCtx, "Skipping area (already completed)")
			stats.AreasSkipped++
			s.metrics.IncArea("skipped")
			continue
		}

		qualified, err := s.processArea(areaCtx, city, area)
		if err != nil {
			logger.CtxError(areaCtx, "Area failed: %v", err)
			if statusErr := s.areas.SetStatus(areaCtx, city, area, domain.AreaStatusFailed, nil); statusErr != nil {
				logger.CtxError(areaCtx, "Failed to mark area failed: %v", statusErr)
			}
			stats.AreasFailed++
			s.metrics.IncArea("failed")
			continue
		}
		stats.AreasProcessed++
		stats.LeadsQualified += qualified
		s.metrics.IncArea("completed")
	}

	return stats, nil
}

// processArea runs the full pipeline for one area: mark in_progress, collect
// candidates, fetch and qualify each one, persist qualifying leads as they
// appear, then mark completed. Per-candidate detail failures are logged and
// skipped without affecting the area's status.
func (s *Scraper) processArea(ctx context.Context, city, area string) (int, error) {
	logger.CtxInfo(ctx, "Processing area")
	start := s.now()

	// in_progress before any network activity
	if err := s.areas.SetStatus(ctx, city, area, domain.AreaStatusInProgress, nil); err != nil {
		return 0, err
	}

	candidates, err := s.collector.Collect(ctx, city, area, s.cfg.PerAreaLimit)
	if err != nil {
		return 0, err
	}
	logger.CtxInfo(ctx, "Collected %d place candidates", len(candidates))

	qualified := 0
	for _, candidate := range candidates {
		candCtx := logger.WithField(ctx, logger.FieldPlaceID, candidate.PlaceID)

		details, err := s.api.Details(candCtx, candidate.PlaceID)
		if err != nil {
			logger.CtxWarn(candCtx, "Details fetch failed, skipping candidate: %v", err)
			s.metrics.IncDetailFailure()
			continue
		}

		if !s.qualifier.Qualifies(candCtx, details, s.cfg.ReviewsThreshold) {
			continue
		}

		lead := s.buildLead(city, area, candidate, details)
		if err := s.leads.Insert(candCtx, lead); err != nil {
			return qualified, err
		}
		qualified++
		s.metrics.IncLeadQualified()
	}

	completedAt := s.now().UTC()
	if err := s.areas.SetStatus(ctx, city, area, domain.AreaStatusCompleted, &completedAt); err != nil {
		return qualified, err
	}

	logger.With(logger.Fields{
		logger.FieldCount:      qualified,
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Info(ctx, "Area completed")
	return qualified, nil
}

// buildLead assembles the persisted lead. Website and email stay unset: the
// website check already passed (qualification requires its absence) and this
// pipeline has no email source.
func (s *Scraper) buildLead(city, area string, candidate domain.PlaceSummary, details *domain.PlaceDetails) *domain.QualifiedLead {
	name := details.Name
	if name == "" {
		name = candidate.Name
	}
	return &domain.QualifiedLead{
		BusinessName: name,
		Address:      optString(details.Address),
		Phone:        optString(details.Phone),
		Area:         area,
		City:         city,
		ReviewsCount: details.ReviewsCount,
		Rating:       details.Rating,
		DateScraped:  s.now().UTC(),
		Status:       domain.LeadStatusQualified,
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
