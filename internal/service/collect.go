package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/timmy/leadscout/internal/domain"
	"github.com/timmy/leadscout/internal/logger"
	"github.com/timmy/leadscout/internal/metrics"
	"github.com/timmy/leadscout/internal/places"
)

// PlacesAPI is the upstream surface the pipeline consumes: geocoding, paged
// nearby search, and per-place details.
type PlacesAPI interface {
	Geocode(ctx context.Context, label string) (domain.LatLng, *domain.Viewport, error)
	NearbySearch(ctx context.Context, point domain.LatLng, radiusMeters, maxPages int) ([]places.PlaceResult, error)
	Details(ctx context.Context, placeID string) (*domain.PlaceDetails, error)
}

// Collector turns one (city, area) label into a deduplicated, bounded set of
// place candidates by geocoding the label, laying a grid over its viewport,
// and searching every grid point in row-major order.
type Collector struct {
	api       PlacesAPI
	gridSteps int
	maxPages  int
	metrics   *metrics.Metrics
}

// NewCollector creates a Collector.
// Parameters:
//   - api: upstream places client.
//   - gridSteps: lattice dimension; values below 1 use the default.
//   - maxPages: pagination cap per grid point.
//   - m: pipeline metrics; may be nil.
// Returns:
//   - *Collector: initialized collector.
func NewCollector(api PlacesAPI, gridSteps, maxPages int, m *metrics.Metrics) *Collector {
	if gridSteps <= 0 {
		gridSteps = places.DefaultGridSteps
	}
	if maxPages <= 0 {
		maxPages = places.DefaultMaxPages
	}
	return &Collector{
		api:       api,
		gridSteps: gridSteps,
		maxPages:  maxPages,
		metrics:   m,
	}
}

// Collect gathers up to perAreaLimit unique place candidates for an area.
// Grid points are visited in row-major order and results deduplicated by
// place ID across points; collection stops, mid-page if necessary, once the
// limit is reached. A pagination timeout at one point degrades that point to
// a partial sample rather than failing the area; any other upstream error
// propagates.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - city: city name.
//   - area: area label within the city.
//   - perAreaLimit: hard cap on unique candidates.
// Returns:
//   - []domain.PlaceSummary: unique candidates in discovery order.
//   - error: non-nil on geocoding failure or a fatal upstream status.
func (c *Collector) Collect(ctx context.Context, city, area string, perAreaLimit int) ([]domain.PlaceSummary, error) {
	label := fmt.Sprintf("%s, %s", area, city)

	center, viewport, err := c.api.Geocode(ctx, label)
	if err != nil {
		return nil, err
	}

	grid := places.GridPoints(viewport, center, c.gridSteps)
	radius := places.CellRadiusMeters(viewport, c.gridSteps, &center.Lat)
	logger.CtxInfo(ctx, "Searching %d grid points with radius %dm", len(grid), radius)

	seen := make(map[string]struct{}, perAreaLimit)
	collected := make([]domain.PlaceSummary, 0, perAreaLimit)

	for _, point := range grid {
		results, err := c.api.NearbySearch(ctx, point, radius, c.maxPages)
		if err != nil {
			if errors.Is(err, places.ErrPaginationTimeout) {
				// Keep what this point returned and move on.
				logger.CtxWarn(ctx, "Pagination timed out at (%f, %f), keeping %d partial results",
					point.Lat, point.Lng, len(results))
			} else {
				return nil, err
			}
		}
		for _, r := range results {
			if r.PlaceID == "" {
				continue
			}
			if _, ok := seen[r.PlaceID]; ok {
				continue
			}
			seen[r.PlaceID] = struct{}{}
			collected = append(collected, domain.PlaceSummary{
				PlaceID: r.PlaceID,
				Name:    r.Name,
				Lat:     r.Geometry.Location.Lat,
				Lng:     r.Geometry.Location.Lng,
			})
			if len(collected) >= perAreaLimit {
				break
			}
		}
		if len(collected) >= perAreaLimit {
			break
		}
	}

	c.metrics.IncCandidates(len(collected))
	return collected, nil
}
