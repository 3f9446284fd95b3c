package service

import (
	"context"

	"github.com/timmy/leadscout/internal/domain"
	"github.com/timmy/leadscout/internal/repository"
)

// LeadQueryService backs the read-only dashboard API with lead and area
// listings over the same database the pipeline writes to.
type LeadQueryService struct {
	leads *repository.LeadRepository
	areas *repository.AreaRepository
}

// NewLeadQueryService creates a LeadQueryService.
// Parameters:
//   - leads: lead repository.
//   - areas: area repository.
// Returns:
//   - *LeadQueryService: initialized service.
func NewLeadQueryService(leads *repository.LeadRepository, areas *repository.AreaRepository) *LeadQueryService {
	return &LeadQueryService{leads: leads, areas: areas}
}

// LeadPage is one page of leads plus pagination totals.
type LeadPage struct {
	Leads    []domain.QualifiedLead `json:"leads"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

// ListLeads returns one page of qualified leads matching the filter.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - f: filter settings; Limit/Offset are derived from page and pageSize.
//   - page: 1-based page number.
//   - pageSize: rows per page; bounded to [1, 200].
// Returns:
//   - *LeadPage: page of results with totals.
//   - error: non-nil if the query fails.
func (s *LeadQueryService) ListLeads(ctx context.Context, f repository.LeadFilter, page, pageSize int) (*LeadPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}
	if pageSize > 200 {
		pageSize = 200
	}
	f.Limit = pageSize
	f.Offset = (page - 1) * pageSize

	leads, total, err := s.leads.ListFiltered(ctx, f)
	if err != nil {
		return nil, err
	}
	return &LeadPage{
		Leads:    leads,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// ListAreas returns the work records of a city with their statuses.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - city: city name.
// Returns:
//   - []domain.CityArea: work records in creation order.
//   - error: non-nil if the query fails.
func (s *LeadQueryService) ListAreas(ctx context.Context, city string) ([]domain.CityArea, error) {
	return s.areas.ListByCity(ctx, city)
}

// CityStats aggregates a city's scraping progress for the dashboard.
type CityStats struct {
	City         string                      `json:"city"`
	TotalLeads   int64                       `json:"total_leads"`
	LeadsByArea  map[string]int64            `json:"leads_by_area"`
	AreaStatuses map[domain.AreaStatus]int64 `json:"area_statuses"`
}

// Stats computes lead counts and area status breakdowns for a city.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - city: city name.
// Returns:
//   - *CityStats: aggregated statistics.
//   - error: non-nil if any query fails.
func (s *LeadQueryService) Stats(ctx context.Context, city string) (*CityStats, error) {
	total, err := s.leads.CountByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	byArea, err := s.leads.CountsByArea(ctx, city)
	if err != nil {
		return nil, err
	}
	statuses, err := s.areas.StatusCounts(ctx, city)
	if err != nil {
		return nil, err
	}
	return &CityStats{
		City:         city,
		TotalLeads:   total,
		LeadsByArea:  byArea,
		AreaStatuses: statuses,
	}, nil
}
