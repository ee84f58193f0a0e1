// Package address validates street addresses through an external geocoding
// capability. The core only needs structured components back; widget
// mechanics stay outside.
package address

import "context"

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	PlaceID     string
	Description string
}

// Resolved is a fully geocoded address with the components the wizard needs
// to populate city, region, and postal code.
type Resolved struct {
	Formatted  string
	Latitude   float64
	Longitude  float64
	City       string
	RegionCode string
	PostalCode string
}

// Geocoder is the external resolution capability. Implementations must
// surface "no match" via sentinel.ErrNotFound (optionally wrapped) so the
// service can distinguish it from transport failure.
type Geocoder interface {
	Autocomplete(ctx context.Context, text string) ([]Suggestion, error)
	Resolve(ctx context.Context, placeID string) (*Resolved, error)
	Geocode(ctx context.Context, freeText string) (*Resolved, error)
}
