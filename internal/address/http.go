package address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	dErrors "lingo/pkg/domain-errors"
	"lingo/pkg/platform/sentinel"
)

// HTTPGeocoder implements Geocoder against an HTTP geocoding API.
type HTTPGeocoder struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ Geocoder = (*HTTPGeocoder)(nil)

// HTTPGeocoderOption configures the HTTPGeocoder.
type HTTPGeocoderOption func(*HTTPGeocoder)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) HTTPGeocoderOption {
	return func(g *HTTPGeocoder) { g.httpClient = hc }
}

func NewHTTPGeocoder(baseURL, apiKey string, timeout time.Duration, opts ...HTTPGeocoderOption) *HTTPGeocoder {
	g := &HTTPGeocoder{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type geocodeResponse struct {
	Formatted  string  `json:"formatted_address"`
	Latitude   float64 `json:"lat"`
	Longitude  float64 `json:"lng"`
	City       string  `json:"city"`
	RegionCode string  `json:"region_code"`
	PostalCode string  `json:"postal_code"`
}

type suggestionResponse struct {
	Predictions []struct {
		PlaceID     string `json:"place_id"`
		Description string `json:"description"`
	} `json:"predictions"`
}

func (g *HTTPGeocoder) Autocomplete(ctx context.Context, text string) ([]Suggestion, error) {
	var resp suggestionResponse
	if err := g.get(ctx, "/autocomplete", url.Values{"input": {text}}, &resp); err != nil {
		return nil, err
	}
	suggestions := make([]Suggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		suggestions = append(suggestions, Suggestion{PlaceID: p.PlaceID, Description: p.Description})
	}
	return suggestions, nil
}

func (g *HTTPGeocoder) Resolve(ctx context.Context, placeID string) (*Resolved, error) {
	var resp geocodeResponse
	if err := g.get(ctx, "/place", url.Values{"place_id": {placeID}}, &resp); err != nil {
		return nil, err
	}
	return resolvedFrom(resp), nil
}

func (g *HTTPGeocoder) Geocode(ctx context.Context, freeText string) (*Resolved, error) {
	var resp geocodeResponse
	if err := g.get(ctx, "/geocode", url.Values{"address": {freeText}}, &resp); err != nil {
		return nil, err
	}
	return resolvedFrom(resp), nil
}

func resolvedFrom(resp geocodeResponse) *Resolved {
	return &Resolved{
		Formatted:  resp.Formatted,
		Latitude:   resp.Latitude,
		Longitude:  resp.Longitude,
		City:       resp.City,
		RegionCode: resp.RegionCode,
		PostalCode: resp.PostalCode,
	}
}

func (g *HTTPGeocoder) get(ctx context.Context, path string, query url.Values, target any) error {
	query.Set("key", g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to build geocoding request")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err // context errors pass through for the service to classify
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to parse geocoding response")
		}
		return nil
	case http.StatusNotFound:
		return sentinel.ErrNotFound
	default:
		return fmt.Errorf("geocoding request returned status %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}
}
