package service

import (
	"context"
	"errors"
	"testing"

	"github.com/timmy/leadscout/internal/domain"
	"github.com/timmy/leadscout/internal/places"
)

// fakePlacesAPI implements PlacesAPI with function fields so each test wires
// only the behavior it needs.
type fakePlacesAPI struct {
	geocode     func(label string) (domain.LatLng, *domain.Viewport, error)
	nearby      func(point domain.LatLng) ([]places.PlaceResult, error)
	details     func(placeID string) (*domain.PlaceDetails, error)
	nearbyCalls int
}

func (f *fakePlacesAPI) Geocode(_ context.Context, label string) (domain.LatLng, *domain.Viewport, error) {
	return f.geocode(label)
}

func (f *fakePlacesAPI) NearbySearch(_ context.Context, point domain.LatLng, _, _ int) ([]places.PlaceResult, error) {
	f.nearbyCalls++
	return f.nearby(point)
}

func (f *fakePlacesAPI) Details(_ context.Context, placeID string) (*domain.PlaceDetails, error) {
	return f.details(placeID)
}

func placeResult(id string) places.PlaceResult {
	var r places.PlaceResult
	r.PlaceID = id
	r.Name = "Biz " + id
	return r
}

var testViewport = &domain.Viewport{
	Southwest: domain.LatLng{Lat: 39.75, Lng: -89.70},
	Northeast: domain.LatLng{Lat: 39.85, Lng: -89.60},
}

func geocodeWithViewport(label string) (domain.LatLng, *domain.Viewport, error) {
	return domain.LatLng{Lat: 39.8, Lng: -89.65}, testViewport, nil
}

func TestCollectDeduplicates(t *testing.T) {
	api := &fakePlacesAPI{
		geocode: geocodeWithViewport,
		// Every grid point reports the same overlapping set.
		nearby: func(domain.LatLng) ([]places.PlaceResult, error) {
			return []places.PlaceResult{
				placeResult("p1"), placeResult("p2"), placeResult("p3"),
				placeResult("p1"), placeResult(""),
			}, nil
		},
	}

	collector := NewCollector(api, 4, 3, nil)
	got, err := collector.Collect(context.Background(), "Springfield", "Downtown", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3 unique", len(got))
	}
	seen := map[string]bool{}
	for _, c := range got {
		if seen[c.PlaceID] {
			t.Errorf("duplicate place_id %q", c.PlaceID)
		}
		seen[c.PlaceID] = true
	}
	if api.nearbyCalls != 16 {
		t.Errorf("visited %d grid points, want 16", api.nearbyCalls)
	}
}

func TestCollectStopsAtLimit(t *testing.T) {
	serial := 0
	api := &fakePlacesAPI{
		geocode: geocodeWithViewport,
		nearby: func(domain.LatLng) ([]places.PlaceResult, error) {
			serial++
			a := placeResult("a" + string(rune('0'+serial)))
			b := placeResult("b" + string(rune('0'+serial)))
			return []places.PlaceResult{a, b}, nil
		},
	}

	collector := NewCollector(api, 4, 3, nil)
	got, err := collector.Collect(context.Background(), "Springfield", "Downtown", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d candidates, want the cap of 3", len(got))
	}
	// The cap is hit mid-page on the second point; the rest of the grid is
	// never visited.
	if api.nearbyCalls != 2 {
		t.Errorf("visited %d grid points, want 2", api.nearbyCalls)
	}
}

func TestCollectNoViewportSinglePoint(t *testing.T) {
	api := &fakePlacesAPI{
		geocode: func(string) (domain.LatLng, *domain.Viewport, error) {
			return domain.LatLng{Lat: 39.8, Lng: -89.65}, nil, nil
		},
		nearby: func(domain.LatLng) ([]places.PlaceResult, error) {
			return []places.PlaceResult{placeResult("p1")}, nil
		},
	}

	collector := NewCollector(api, 4, 3, nil)
	got, err := collector.Collect(context.Background(), "Springfield", "Downtown", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.nearbyCalls != 1 {
		t.Errorf("visited %d points, want single fallback point", api.nearbyCalls)
	}
	if len(got) != 1 {
		t.Errorf("got %d candidates, want 1", len(got))
	}
}

func TestCollectGeocodeErrorPropagates(t *testing.T) {
	api := &fakePlacesAPI{
		geocode: func(string) (domain.LatLng, *domain.Viewport, error) {
			return domain.LatLng{}, nil, places.ErrNoGeocodeResult
		},
	}

	collector := NewCollector(api, 4, 3, nil)
	_, err := collector.Collect(context.Background(), "Springfield", "Nowhere", 100)
	if !errors.Is(err, places.ErrNoGeocodeResult) {
		t.Fatalf("expected geocode error to propagate, got %v", err)
	}
}

func TestCollectKeepsPartialOnPaginationTimeout(t *testing.T) {
	api := &fakePlacesAPI{
		geocode: func(string) (domain.LatLng, *domain.Viewport, error) {
			return domain.LatLng{Lat: 39.8, Lng: -89.65}, nil, nil
		},
		nearby: func(domain.LatLng) ([]places.PlaceResult, error) {
			return []places.PlaceResult{placeResult("p1")}, places.ErrPaginationTimeout
		},
	}

	collector := NewCollector(api, 4, 3, nil)
	got, err := collector.Collect(context.Background(), "Springfield", "Downtown", 100)
	if err != nil {
		t.Fatalf("pagination timeout must not fail the area, got %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d candidates, want the partial result kept", len(got))
	}
}
