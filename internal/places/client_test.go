package places

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/timmy/leadscout/internal/domain"
)

func newTestClient() *Client {
	return NewClient(&ClientConfig{
		APIKey:           "test-key",
		RatePerSecond:    1000,
		RateBurst:        100,
		SettleDelay:      time.Millisecond,
		QuotaCooldown:    time.Millisecond,
		MaxTokenAttempts: 3,
	})
}

func nearbyPage(status, token string, ids ...string) map[string]interface{} {
	results := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		results = append(results, map[string]interface{}{
			"place_id": id,
			"name":     "Biz " + id,
			"geometry": map[string]interface{}{
				"location": map[string]float64{"lat": 37.7, "lng": -122.4},
			},
		})
	}
	page := map[string]interface{}{
		"status":  status,
		"results": results,
	}
	if token != "" {
		page["next_page_token"] = token
	}
	return page
}

func TestGeocode(t *testing.T) {
	client := newTestClient()
	httpmock.ActivateNonDefault(client.HTTPClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", defaultBaseURL+geocodePath,
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"status": "OK",
			"results": []map[string]interface{}{
				{
					"formatted_address": "Downtown, Springfield",
					"geometry": map[string]interface{}{
						"location": map[string]float64{"lat": 39.8, "lng": -89.65},
						"viewport": map[string]interface{}{
							"northeast": map[string]float64{"lat": 39.85, "lng": -89.6},
							"southwest": map[string]float64{"lat": 39.75, "lng": -89.7},
						},
					},
				},
			},
		}))

	center, viewport, err := client.Geocode(context.Background(), "Downtown, Springfield")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if center.Lat != 39.8 || center.Lng != -89.65 {
		t.Errorf("center = %+v, want (39.8, -89.65)", center)
	}
	if viewport == nil {
		t.Fatal("expected viewport")
	}
	if viewport.Northeast.Lat != 39.85 || viewport.Southwest.Lng != -89.7 {
		t.Errorf("viewport = %+v", viewport)
	}
}

func TestGeocodeNoResults(t *testing.T) {
	client := newTestClient()
	httpmock.ActivateNonDefault(client.HTTPClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", defaultBaseURL+geocodePath,
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"status":  "ZERO_RESULTS",
			"results": []map[string]interface{}{},
		}))

	_, _, err := client.Geocode(context.Background(), "Nowhere, Nokind")
	if !errors.Is(err, ErrNoGeocodeResult) {
		t.Fatalf("expected ErrNoGeocodeResult, got %v", err)
	}
}

func TestGeocodeFatalStatus(t *testing.T) {
	client := newTestClient()
	httpmock.ActivateNonDefault(client.HTTPClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", defaultBaseURL+geocodePath,
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"status":        "REQUEST_DENIED",
			"error_message": "The provided API key is invalid.",
			"results":       []map[string]interface{}{},
		}))

	_, _, err := client.Geocode(context.Background(), "Downtown, Springfield")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != "REQUEST_DENIED" {
		t.Errorf("status = %q, want REQUEST_DENIED", apiErr.Status)
	}
}

func TestNearbySearchPagination(t *testing.T) {
	client := newTestClient()
	httpmock.ActivateNonDefault(client.HTTPClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", defaultBaseURL+nearbyPath,
		func(req *http.Request) (*http.Response, error) {
			switch req.URL.Query().Get("pagetoken") {
			case "":
				return httpmock.NewJsonResponse(200, nearbyPage("OK", "t1", "p1", "p2"))
			case "t1":
				return httpmock.NewJsonResponse(200, nearbyPage("OK", "t2", "p3", "p4"))
			case "t2":
				// A token is still returned; the page cap must stop here.
				return httpmock.NewJsonResponse(200, nearbyPage("OK", "t3", "p5", "p6"))
			default:
				t.Errorf("unexpected pagetoken %q", req.URL.Query().Get("pagetoken"))
				return httpmock.NewJsonResponse(200, nearbyPage("OK", ""))
			}
		})

	results, err := client.NearbySearch(context.Background(), testPoint(), 1000, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 6 {
		t.Errorf("got %d results, want 6", len(results))
	}
	if calls := httpmock.GetTotalCallCount(); calls != 3 {
		t.Errorf("issued %d requests, want exactly maxPages=3", calls)
	}
}

func TestNearbySearchTokenNeverReady(t *testing.T) {
	client := newTestClient()
	httpmock.ActivateNonDefault(client.HTTPClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", defaultBaseURL+nearbyPath,
		func(req *http.Request) (*http.Response, error) {
			if req.URL.Query().Get("pagetoken") == "" {
				return httpmock.NewJsonResponse(200, nearbyPage("OK", "t1", "p1", "p2"))
			}
			return httpmock.NewJsonResponse(200, nearbyPage("INVALID_REQUEST", ""))
		})

	results, err := client.NearbySearch(context.Background(), testPoint(), 1000, 3)
	if !errors.Is(err, ErrPaginationTimeout) {
		t.Fatalf("expected ErrPaginationTimeout, got %v", err)
	}
	// First page survives the timeout.
	if len(results) != 2 {
		t.Errorf("got %d partial results, want 2", len(results))
	}
	// One initial request plus the bounded token attempts.
	if calls := httpmock.GetTotalCallCount(); calls != 1+3 {
		t.Errorf("issued %d requests, want 4", calls)
	}
}

func TestNearbySearchQuotaExceeded(t *testing.T) {
	client := newTestClient()
	httpmock.ActivateNonDefault(client.HTTPClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", defaultBaseURL+nearbyPath,
		httpmock.NewJsonResponderOrPanic(200, nearbyPage("OVER_QUERY_LIMIT", "")))

	results, err := client.NearbySearch(context.Background(), testPoint(), 1000, 3)
	if err != nil {
		t.Fatalf("quota exceeded must not fail the call, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestDetails(t *testing.T) {
	client := newTestClient()
	httpmock.ActivateNonDefault(client.HTTPClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", defaultBaseURL+detailsPath,
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"status": "OK",
			"result": map[string]interface{}{
				"name":                       "Corner Bakery",
				"formatted_address":          "1 Main St, Springfield",
				"formatted_phone_number":     "(217) 555-0100",
				"international_phone_number": "+1 217-555-0100",
				"rating":                     4.5,
				"user_ratings_total":         25,
				"reviews": []map[string]interface{}{
					{"author_name": "a", "time": 1600000000},
					{"author_name": "b"}, // no timestamp, dropped
					{"author_name": "c", "time": 1650000000},
				},
			},
		}))

	details, err := client.Details(context.Background(), "place-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.Phone != "+1 217-555-0100" {
		t.Errorf("phone = %q, want international format preferred", details.Phone)
	}
	if details.Website != "" {
		t.Errorf("website = %q, want empty", details.Website)
	}
	if details.ReviewsCount == nil || *details.ReviewsCount != 25 {
		t.Errorf("reviews_count = %v, want 25", details.ReviewsCount)
	}
	if len(details.ReviewTimes) != 2 {
		t.Fatalf("got %d review times, want 2", len(details.ReviewTimes))
	}
	if details.ReviewTimes[0] != 1600000000 || details.ReviewTimes[1] != 1650000000 {
		t.Errorf("review times = %v", details.ReviewTimes)
	}
}

func testPoint() domain.LatLng {
	return domain.LatLng{Lat: 37.7, Lng: -122.4}
}
