package places

import (
	"math"
	"testing"

	"github.com/timmy/leadscout/internal/domain"
)

func TestGridPointsNoViewport(t *testing.T) {
	fallback := domain.LatLng{Lat: 37.7749, Lng: -122.4194}
	points := GridPoints(nil, fallback, 4)

	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if points[0] != fallback {
		t.Errorf("expected fallback center %+v, got %+v", fallback, points[0])
	}
}

func TestGridPointsLattice(t *testing.T) {
	viewport := &domain.Viewport{
		Southwest: domain.LatLng{Lat: 10.0, Lng: 20.0},
		Northeast: domain.LatLng{Lat: 11.0, Lng: 22.0},
	}
	steps := 4
	points := GridPoints(viewport, domain.LatLng{}, steps)

	if len(points) != steps*steps {
		t.Fatalf("expected %d points, got %d", steps*steps, len(points))
	}

	// Corners inclusive: first point is the southwest corner, last is the
	// northeast corner.
	first, last := points[0], points[len(points)-1]
	if first.Lat != 10.0 || first.Lng != 20.0 {
		t.Errorf("first point = %+v, want southwest corner", first)
	}
	if last.Lat != 11.0 || last.Lng != 22.0 {
		t.Errorf("last point = %+v, want northeast corner", last)
	}

	// Row-major: the first `steps` points share the southernmost latitude
	// with strictly increasing longitudes.
	for j := 0; j < steps; j++ {
		if points[j].Lat != 10.0 {
			t.Errorf("point %d lat = %f, want 10.0", j, points[j].Lat)
		}
		if j > 0 && points[j].Lng <= points[j-1].Lng {
			t.Errorf("longitudes not increasing within row: %f then %f", points[j-1].Lng, points[j].Lng)
		}
	}

	// Latitudes are non-decreasing across rows.
	for i := 1; i < len(points); i++ {
		if points[i].Lat < points[i-1].Lat {
			t.Errorf("latitude regressed at point %d: %f after %f", i, points[i].Lat, points[i-1].Lat)
		}
	}
}

func TestCellRadiusMeters(t *testing.T) {
	lat := 37.0

	tests := []struct {
		name     string
		viewport *domain.Viewport
		atLat    *float64
		want     func(int) bool
		desc     string
	}{
		{
			name:     "no viewport yields default",
			viewport: nil,
			want:     func(r int) bool { return r == DefaultRadiusMeters },
			desc:     "exactly 1500",
		},
		{
			name: "degenerate viewport clamps to minimum",
			viewport: &domain.Viewport{
				Southwest: domain.LatLng{Lat: 37.0, Lng: -122.0},
				Northeast: domain.LatLng{Lat: 37.0001, Lng: -121.9999},
			},
			atLat: &lat,
			want:  func(r int) bool { return r == 500 },
			desc:  "clamped to 500",
		},
		{
			name: "huge viewport clamps to maximum",
			viewport: &domain.Viewport{
				Southwest: domain.LatLng{Lat: 30.0, Lng: -125.0},
				Northeast: domain.LatLng{Lat: 40.0, Lng: -115.0},
			},
			atLat: &lat,
			want:  func(r int) bool { return r == 2000 },
			desc:  "clamped to 2000",
		},
		{
			name: "moderate viewport stays in range",
			viewport: &domain.Viewport{
				Southwest: domain.LatLng{Lat: 37.70, Lng: -122.52},
				Northeast: domain.LatLng{Lat: 37.81, Lng: -122.38},
			},
			want: func(r int) bool { return r >= 500 && r <= 2000 },
			desc: "within [500, 2000]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CellRadiusMeters(tt.viewport, 4, tt.atLat)
			if !tt.want(got) {
				t.Errorf("CellRadiusMeters = %d, want %s", got, tt.desc)
			}
		})
	}
}

func TestCellRadiusMatchesHalfDiagonal(t *testing.T) {
	viewport := &domain.Viewport{
		Southwest: domain.LatLng{Lat: 37.70, Lng: -122.52},
		Northeast: domain.LatLng{Lat: 37.81, Lng: -122.38},
	}
	steps := 4

	latSpan := (viewport.Northeast.Lat - viewport.Southwest.Lat) / float64(steps)
	lngSpan := (viewport.Northeast.Lng - viewport.Southwest.Lng) / float64(steps)
	baseLat := (viewport.Northeast.Lat + viewport.Southwest.Lat) / 2
	latM := latSpan * 111320.0
	lngM := lngSpan * 111320.0 * math.Cos(baseLat*math.Pi/180)
	want := int(math.Sqrt(latM*latM+lngM*lngM) / 2)

	if got := CellRadiusMeters(viewport, steps, nil); got != want {
		t.Errorf("CellRadiusMeters = %d, want %d", got, want)
	}
}
