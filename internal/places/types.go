package places

import "github.com/timmy/leadscout/internal/domain"

// Wire types for the Google Maps web service JSON responses. Only the fields
// this pipeline consumes are mapped.

type geocodeResponse struct {
	Results      []geocodeResult `json:"results"`
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

type geocodeResult struct {
	FormattedAddress string          `json:"formatted_address"`
	Geometry         geocodeGeometry `json:"geometry"`
}

type geocodeGeometry struct {
	Location domain.LatLng    `json:"location"`
	Viewport *domain.Viewport `json:"viewport,omitempty"`
}

type nearbyResponse struct {
	Results       []PlaceResult `json:"results"`
	NextPageToken string        `json:"next_page_token,omitempty"`
	Status        string        `json:"status"`
	ErrorMessage  string        `json:"error_message,omitempty"`
}

// PlaceResult is one raw nearby-search hit.
type PlaceResult struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	Geometry         placeGeometry `json:"geometry"`
	BusinessStatus   *string       `json:"business_status,omitempty"`
	Rating           *float64      `json:"rating,omitempty"`
	UserRatingsTotal *int          `json:"user_ratings_total,omitempty"`
	Types            []string      `json:"types,omitempty"`
	Vicinity         *string       `json:"vicinity,omitempty"`
}

type placeGeometry struct {
	Location domain.LatLng `json:"location"`
}

type detailsResponse struct {
	Result       detailsResult `json:"result"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type detailsResult struct {
	Name                     string         `json:"name"`
	FormattedAddress         string         `json:"formatted_address,omitempty"`
	FormattedPhoneNumber     string         `json:"formatted_phone_number,omitempty"`
	InternationalPhoneNumber string         `json:"international_phone_number,omitempty"`
	Website                  string         `json:"website,omitempty"`
	Rating                   *float64       `json:"rating,omitempty"`
	UserRatingsTotal         *int           `json:"user_ratings_total,omitempty"`
	Reviews                  []detailReview `json:"reviews,omitempty"`
}

type detailReview struct {
	AuthorName string `json:"author_name,omitempty"`
	Rating     *int   `json:"rating,omitempty"`
	Time       *int64 `json:"time,omitempty"`
}
