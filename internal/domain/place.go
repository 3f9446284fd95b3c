package domain

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Viewport is the bounding rectangle returned by geocoding for an area label.
// Absence of a viewport triggers single-point fallback behavior in the grid
// partitioner.
type Viewport struct {
	Northeast LatLng `json:"northeast"`
	Southwest LatLng `json:"southwest"`
}

// PlaceSummary is a transient search result, keyed by PlaceID for
// deduplication across grid points. Never persisted.
type PlaceSummary struct {
	PlaceID string
	Name    string
	Lat     float64
	Lng     float64
}

// PlaceDetails holds the full attribute set fetched for a single place.
// ReviewTimes are unix-epoch seconds in the order the upstream returned them;
// entries without a timestamp are dropped at extraction time.
type PlaceDetails struct {
	PlaceID      string
	Name         string
	Address      string
	Phone        string
	Website      string
	Rating       *float64
	ReviewsCount *int
	ReviewTimes  []int64
}
