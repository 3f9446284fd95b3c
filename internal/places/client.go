package places

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/leadscout/internal/domain"
	"github.com/timmy/leadscout/internal/logger"
	"github.com/timmy/leadscout/internal/metrics"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://maps.googleapis.com"

	geocodePath = "/maps/api/geocode/json"
	nearbyPath  = "/maps/api/place/nearbysearch/json"
	detailsPath = "/maps/api/place/details/json"

	// DefaultSettleDelay is the lower bound waited before a freshly issued
	// continuation token becomes usable upstream.
	DefaultSettleDelay = 2 * time.Second

	// DefaultQuotaCooldown is the fixed cooling-off delay after a
	// quota-exceeded status.
	DefaultQuotaCooldown = 2 * time.Second

	// DefaultMaxTokenAttempts bounds how often a not-yet-ready continuation
	// token is retried before the pagination is abandoned.
	DefaultMaxTokenAttempts = 5

	// DefaultMaxPages caps pagination per grid point (the upstream serves at
	// most three pages per search anyway).
	DefaultMaxPages = 3

	detailsFields = "name,formatted_address,formatted_phone_number," +
		"international_phone_number,website,rating,user_ratings_total,reviews"
)

// Client talks to the Google Maps web services: geocoding, nearby search with
// token pagination, and place details. A shared rate limiter paces all three
// call types against the one upstream quota.
type Client struct {
	http    *resty.Client
	apiKey  string
	baseURL string
	limiter *rate.Limiter
	metrics *metrics.Metrics

	settleDelay      time.Duration
	quotaCooldown    time.Duration
	maxTokenAttempts int
}

// ClientConfig holds configuration for the places client.
type ClientConfig struct {
	APIKey           string
	BaseURL          string        // override for tests; empty uses the real host
	RequestTimeout   time.Duration // per-request network timeout
	RatePerSecond    float64
	RateBurst        int
	SettleDelay      time.Duration
	QuotaCooldown    time.Duration
	MaxTokenAttempts int
	Metrics          *metrics.Metrics
}

// NewClient creates a new places client.
// Parameters:
//   - cfg: client configuration; zero fields fall back to defaults.
// Returns:
//   - *Client: initialized client.
func NewClient(cfg *ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ratePerSecond := cfg.RatePerSecond
	if ratePerSecond <= 0 {
		ratePerSecond = 10
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 5
	}
	settle := cfg.SettleDelay
	if settle == 0 {
		settle = DefaultSettleDelay
	}
	cooldown := cfg.QuotaCooldown
	if cooldown == 0 {
		cooldown = DefaultQuotaCooldown
	}
	attempts := cfg.MaxTokenAttempts
	if attempts <= 0 {
		attempts = DefaultMaxTokenAttempts
	}

	client := resty.New()
	client.SetTimeout(timeout)

	return &Client{
		http:             client,
		apiKey:           cfg.APIKey,
		baseURL:          baseURL,
		limiter:          rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		metrics:          cfg.Metrics,
		settleDelay:      settle,
		quotaCooldown:    cooldown,
		maxTokenAttempts: attempts,
	}
}

// HTTPClient exposes the underlying http.Client, used by tests to install
// transport doubles.
func (c *Client) HTTPClient() *http.Client {
	return c.http.GetClient()
}

// Geocode resolves a free-text area label to a center coordinate and an
// optional bounding viewport.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - label: free-text label, typically "{area}, {city}".
// Returns:
//   - domain.LatLng: center coordinate of the first result.
//   - *domain.Viewport: bounding viewport; nil when the upstream omits one.
//   - error: ErrNoGeocodeResult on zero results, *APIError on a fatal status.
func (c *Client) Geocode(ctx context.Context, label string) (domain.LatLng, *domain.Viewport, error) {
	var resp geocodeResponse
	if err := c.get(ctx, "geocode", geocodePath, map[string]string{"address": label}, &resp); err != nil {
		return domain.LatLng{}, nil, err
	}
	if err := c.checkStatus(ctx, resp.Status, resp.ErrorMessage); err != nil {
		return domain.LatLng{}, nil, err
	}
	if len(resp.Results) == 0 {
		return domain.LatLng{}, nil, fmt.Errorf("%w for %q", ErrNoGeocodeResult, label)
	}
	first := resp.Results[0]
	return first.Geometry.Location, first.Geometry.Viewport, nil
}

// NearbySearch runs one establishment-restricted nearby search at a point and
// follows continuation tokens up to maxPages pages. Each continuation request
// is preceded by the settling delay; a token that reports not-yet-ready is
// retried with the same token up to the configured attempt bound, after which
// ErrPaginationTimeout is returned together with the results gathered so far.
// A quota-exceeded page triggers the cooling-off delay and is passed through
// as-is rather than failing the call.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - point: search center.
//   - radiusMeters: search radius.
//   - maxPages: page cap; values below 1 use DefaultMaxPages.
// Returns:
//   - []PlaceResult: raw place records across all fetched pages.
//   - error: *APIError on a fatal status, ErrPaginationTimeout on token
//     exhaustion; both may accompany partial results.
func (c *Client) NearbySearch(ctx context.Context, point domain.LatLng, radiusMeters, maxPages int) ([]PlaceResult, error) {
	if maxPages < 1 {
		maxPages = DefaultMaxPages
	}

	params := map[string]string{
		"location": fmt.Sprintf("%f,%f", point.Lat, point.Lng),
		"radius":   strconv.Itoa(radiusMeters),
		"type":     "establishment",
	}
	var page nearbyResponse
	if err := c.get(ctx, "nearby", nearbyPath, params, &page); err != nil {
		return nil, err
	}
	if err := c.checkStatus(ctx, page.Status, page.ErrorMessage); err != nil {
		return nil, err
	}

	results := append([]PlaceResult(nil), page.Results...)
	token := page.NextPageToken
	pages := 1

	for token != "" && pages < maxPages {
		var next nearbyResponse
		ready := false
		for attempt := 0; attempt < c.maxTokenAttempts; attempt++ {
			// The upstream requires an interval before a fresh token is valid.
			if err := sleepCtx(ctx, c.settleDelay); err != nil {
				return results, err
			}
			next = nearbyResponse{}
			if err := c.get(ctx, "nearby", nearbyPath, map[string]string{"pagetoken": token}, &next); err != nil {
				return results, err
			}
			if next.Status != StatusInvalidRequest {
				ready = true
				break
			}
			c.metrics.IncTokenRetry()
			logger.CtxDebug(ctx, "Page token not ready yet, retrying (attempt %d)", attempt+1)
		}
		if !ready {
			return results, fmt.Errorf("%w after %d attempts", ErrPaginationTimeout, c.maxTokenAttempts)
		}
		if err := c.checkStatus(ctx, next.Status, next.ErrorMessage); err != nil {
			return results, err
		}
		results = append(results, next.Results...)
		token = next.NextPageToken
		pages++
	}

	return results, nil
}

// Details retrieves the full attribute set for one place: name, address,
// phone (international format preferred over local), website, rating, review
// count, and review timestamps.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - placeID: upstream place identifier.
// Returns:
//   - *domain.PlaceDetails: extracted details.
//   - error: *APIError on any non-success status.
func (c *Client) Details(ctx context.Context, placeID string) (*domain.PlaceDetails, error) {
	var resp detailsResponse
	params := map[string]string{
		"place_id": placeID,
		"fields":   detailsFields,
	}
	if err := c.get(ctx, "details", detailsPath, params, &resp); err != nil {
		return nil, err
	}
	if err := c.checkStatus(ctx, resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}

	result := resp.Result
	phone := result.InternationalPhoneNumber
	if phone == "" {
		phone = result.FormattedPhoneNumber
	}
	reviewTimes := make([]int64, 0, len(result.Reviews))
	for _, review := range result.Reviews {
		if review.Time != nil {
			reviewTimes = append(reviewTimes, *review.Time)
		}
	}

	return &domain.PlaceDetails{
		PlaceID:      placeID,
		Name:         result.Name,
		Address:      result.FormattedAddress,
		Phone:        phone,
		Website:      result.Website,
		Rating:       result.Rating,
		ReviewsCount: result.UserRatingsTotal,
		ReviewTimes:  reviewTimes,
	}, nil
}

// get issues one rate-limited GET against the API and decodes the JSON body
// into out. HTTP-level failures are returned; upstream status handling is the
// caller's concern.
func (c *Client) get(ctx context.Context, phase, path string, params map[string]string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("key", c.apiKey).
		SetResult(out).
		Get(c.baseURL + path)
	c.metrics.IncRequest(phase)
	c.metrics.ObserveDuration(time.Since(start))

	if err != nil {
		return fmt.Errorf("places API request failed: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("places API returned HTTP %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	return nil
}

// checkStatus applies the upstream status contract: success and zero-results
// pass; a not-yet-active token passes so the caller can retry it; quota
// exceeded triggers the cooling-off delay and passes the page through; any
// other status is fatal for the call.
func (c *Client) checkStatus(ctx context.Context, status, message string) error {
	switch status {
	case StatusOK, StatusZeroResults, StatusInvalidRequest:
		return nil
	case StatusOverQueryLimit:
		c.metrics.IncQuotaBackoff()
		logger.CtxWarn(ctx, "Quota exceeded, cooling off for %s", c.quotaCooldown)
		return sleepCtx(ctx, c.quotaCooldown)
	default:
		return &APIError{Status: status, Message: message}
	}
}

// sleepCtx blocks for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
