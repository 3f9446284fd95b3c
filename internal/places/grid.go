package places

import (
	"math"

	"github.com/timmy/leadscout/internal/domain"
)

const (
	// DefaultGridSteps is the lattice dimension used when none is configured.
	DefaultGridSteps = 4

	// DefaultRadiusMeters is the single-point search radius when geocoding
	// returned no viewport.
	DefaultRadiusMeters = 1500

	minRadiusMeters = 500
	maxRadiusMeters = 2000

	metersPerDegreeLat = 111320.0
)

// GridPoints derives the sample lattice for a viewport: steps evenly spaced
// latitudes between the south and north bounds crossed with steps evenly
// spaced longitudes between the west and east bounds, spanning both corners
// inclusive. Points are returned in row-major order (all longitudes for the
// southernmost latitude first); the aggregator relies on this order for
// deterministic early stopping.
//
// A nil viewport yields the single fallback center.
func GridPoints(viewport *domain.Viewport, fallbackCenter domain.LatLng, steps int) []domain.LatLng {
	if viewport == nil {
		return []domain.LatLng{fallbackCenter}
	}
	if steps <= 0 {
		steps = DefaultGridSteps
	}
	if steps == 1 {
		return []domain.LatLng{{
			Lat: (viewport.Southwest.Lat + viewport.Northeast.Lat) / 2,
			Lng: (viewport.Southwest.Lng + viewport.Northeast.Lng) / 2,
		}}
	}

	minLat, maxLat := viewport.Southwest.Lat, viewport.Northeast.Lat
	minLng, maxLng := viewport.Southwest.Lng, viewport.Northeast.Lng

	points := make([]domain.LatLng, 0, steps*steps)
	for i := 0; i < steps; i++ {
		lat := minLat + float64(i)*(maxLat-minLat)/float64(steps-1)
		for j := 0; j < steps; j++ {
			lng := minLng + float64(j)*(maxLng-minLng)/float64(steps-1)
			points = append(points, domain.LatLng{Lat: lat, Lng: lng})
		}
	}
	return points
}

// CellRadiusMeters derives the per-point search radius from one grid cell's
// dimensions: the cell's latitude and longitude spans are converted to meters
// (longitude scaled by cos of the reference latitude) and half the cell
// diagonal is taken, clamped to [500, 2000] m so adjacent cells overlap
// without degenerating at extreme latitudes or near-degenerate viewports.
//
// atLat supplies the reference latitude; nil uses the viewport center. A nil
// viewport yields DefaultRadiusMeters.
func CellRadiusMeters(viewport *domain.Viewport, steps int, atLat *float64) int {
	if viewport == nil {
		return DefaultRadiusMeters
	}
	if steps <= 0 {
		steps = DefaultGridSteps
	}

	latSpan := math.Abs(viewport.Northeast.Lat-viewport.Southwest.Lat) / float64(steps)
	lngSpan := math.Abs(viewport.Northeast.Lng-viewport.Southwest.Lng) / float64(steps)

	baseLat := (viewport.Northeast.Lat + viewport.Southwest.Lat) / 2
	if atLat != nil {
		baseLat = *atLat
	}

	latMeters := latSpan * metersPerDegreeLat
	lngMeters := lngSpan * metersPerDegreeLat * math.Cos(baseLat*math.Pi/180)

	radius := int(math.Sqrt(latMeters*latMeters+lngMeters*lngMeters) / 2)
	if radius < minRadiusMeters {
		return minRadiusMeters
	}
	if radius > maxRadiusMeters {
		return maxRadiusMeters
	}
	return radius
}
