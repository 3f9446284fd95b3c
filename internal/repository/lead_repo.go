package repository

import (
	"context"
	"strings"

	"github.com/timmy/leadscout/internal/domain"
	"gorm.io/gorm"
)

// LeadRepository handles qualified lead persistence.
type LeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new LeadRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *LeadRepository: repository instance bound to db.
func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Insert persists a single qualified lead. Leads are written one at a time as
// they are produced so partial progress survives a later area failure.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - lead: lead record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *LeadRepository) Insert(ctx context.Context, lead *domain.QualifiedLead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

// ListByCity retrieves all qualified leads for a city in insertion order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - city: city name.
// Returns:
//   - []domain.QualifiedLead: matching leads.
//   - error: non-nil if the query fails.
func (r *LeadRepository) ListByCity(ctx context.Context, city string) ([]domain.QualifiedLead, error) {
	var leads []domain.QualifiedLead
	if err := r.db.WithContext(ctx).
		Where("city = ? AND status = ?", city, domain.LeadStatusQualified).
		Order("id ASC").
		Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// LeadFilter narrows lead listings on the dashboard API.
type LeadFilter struct {
	City      string
	Area      string
	Search    string // matches business name, case-insensitive substring
	MinRating float64
	Limit     int
	Offset    int
}

// ListFiltered retrieves leads matching the filter plus the total match count
// for pagination.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - f: filter and pagination settings.
// Returns:
//   - []domain.QualifiedLead: one page of matching leads.
//   - int64: total number of matches ignoring pagination.
//   - error: non-nil if the query fails.
func (r *LeadRepository) ListFiltered(ctx context.Context, f LeadFilter) ([]domain.QualifiedLead, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.QualifiedLead{}).
		Where("status = ?", domain.LeadStatusQualified)
	if f.City != "" {
		query = query.Where("city = ?", f.City)
	}
	if f.Area != "" {
		query = query.Where("area = ?", f.Area)
	}
	if f.Search != "" {
		query = query.Where("lower(business_name) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	if f.MinRating > 0 {
		query = query.Where("rating >= ?", f.MinRating)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	if f.Offset > 0 {
		query = query.Offset(f.Offset)
	}

	var leads []domain.QualifiedLead
	if err := query.Order("id ASC").Find(&leads).Error; err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// CountByCity counts qualified leads for a city.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - city: city name.
// Returns:
//   - int64: number of qualified leads.
//   - error: non-nil if the query fails.
func (r *LeadRepository) CountByCity(ctx context.Context, city string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.QualifiedLead{}).
		Where("city = ? AND status = ?", city, domain.LeadStatusQualified).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountsByArea returns qualified lead counts per area for a city.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - city: city name.
// Returns:
//   - map[string]int64: lead counts keyed by area label.
//   - error: non-nil if the query fails.
func (r *LeadRepository) CountsByArea(ctx context.Context, city string) (map[string]int64, error) {
	type row struct {
		Area string
		N    int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&domain.QualifiedLead{}).
		Select("area, count(*) as n").
		Where("city = ? AND status = ?", city, domain.LeadStatusQualified).
		Group("area").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Area] = r.N
	}
	return counts, nil
}
