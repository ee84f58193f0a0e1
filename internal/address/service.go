package address

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	dErrors "lingo/pkg/domain-errors"
	"lingo/pkg/platform/sentinel"
)

// DefaultTimeout bounds one geocoding round trip. Expiry surfaces as a
// failure outcome without automatic retry; the user retries manually.
const DefaultTimeout = 10 * time.Second

// Input is the free-text address the user entered on the address step.
type Input struct {
	Line1 string
	Line2 string
	City  string
	State string
	Zip   string
}

func (in Input) freeText(withLine2 bool) string {
	parts := []string{in.Line1}
	if withLine2 && in.Line2 != "" {
		parts = append(parts, in.Line2)
	}
	for _, p := range []string{in.City, in.State, in.Zip} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Service wraps the geocoder with the wizard's timeout and retry policy.
type Service struct {
	geocoder Geocoder
	timeout  time.Duration
	logger   *slog.Logger
}

type Option func(*Service)

func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(geocoder Geocoder, opts ...Option) *Service {
	s := &Service{geocoder: geocoder, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Suggest proxies autocomplete with the service timeout.
func (s *Service) Suggest(ctx context.Context, text string) ([]Suggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	suggestions, err := s.geocoder.Autocomplete(ctx, text)
	if err != nil {
		return nil, s.translate(ctx, err)
	}
	return suggestions, nil
}

// ResolvePlace geocodes a selected autocomplete candidate.
func (s *Service) ResolvePlace(ctx context.Context, placeID string) (*Resolved, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resolved, err := s.geocoder.Resolve(ctx, placeID)
	if err != nil {
		return nil, s.translate(ctx, err)
	}
	return resolved, nil
}

// Validate geocodes a manually entered address. When a secondary line was
// supplied and the full address finds no match, it retries once with the
// secondary line stripped before surfacing failure: unit and suite numbers
// routinely confuse geocoders.
func (s *Service) Validate(ctx context.Context, in Input) (*Resolved, error) {
	resolved, err := s.geocodeOnce(ctx, in.freeText(true))
	if err == nil {
		return resolved, nil
	}
	if in.Line2 == "" || !dErrors.HasCode(err, dErrors.CodeAddressNotFound) {
		return nil, err
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "retrying address validation without secondary line")
	}
	return s.geocodeOnce(ctx, in.freeText(false))
}

func (s *Service) geocodeOnce(ctx context.Context, freeText string) (*Resolved, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resolved, err := s.geocoder.Geocode(ctx, freeText)
	if err != nil {
		return nil, s.translate(ctx, err)
	}
	return resolved, nil
}

// translate maps geocoder failures onto the domain taxonomy: not-found is
// recoverable by editing the input, timeout by retrying, anything else is a
// transport fault.
func (s *Service) translate(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeAddressNotFound, "no matching address found")
	case errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded:
		return dErrors.New(dErrors.CodeTimeout, "address validation timed out")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "address validation failed")
	}
}
