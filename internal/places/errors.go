package places

import (
	"errors"
	"fmt"
)

// Upstream status values with dedicated handling.
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusInvalidRequest = "INVALID_REQUEST"
	StatusOverQueryLimit = "OVER_QUERY_LIMIT"
)

// ErrNoGeocodeResult indicates the upstream returned zero geocode results for
// an area label.
var ErrNoGeocodeResult = errors.New("no geocode results")

// ErrPaginationTimeout indicates a continuation token never became ready
// within the bounded retry budget. Results gathered before the timeout are
// still returned alongside it.
var ErrPaginationTimeout = errors.New("pagination token never became ready")

// APIError is a fatal upstream error status for a single call. Quota and
// token-settling statuses are handled internally and never surface as an
// APIError.
type APIError struct {
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("places API error: %s", e.Status)
	}
	return fmt.Sprintf("places API error: %s | %s", e.Status, e.Message)
}
