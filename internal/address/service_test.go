package address

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "lingo/pkg/domain-errors"
	"lingo/pkg/platform/sentinel"
)

// fakeGeocoder records calls and returns scripted results per free-text query.
type fakeGeocoder struct {
	geocodeCalls []string
	results      map[string]*Resolved
	err          error
	delay        time.Duration
}

func (f *fakeGeocoder) Autocomplete(ctx context.Context, text string) ([]Suggestion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []Suggestion{{PlaceID: "p1", Description: text}}, nil
}

func (f *fakeGeocoder) Resolve(ctx context.Context, placeID string) (*Resolved, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &Resolved{Formatted: placeID}, nil
}

func (f *fakeGeocoder) Geocode(ctx context.Context, freeText string) (*Resolved, error) {
	f.geocodeCalls = append(f.geocodeCalls, freeText)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r, ok := f.results[freeText]; ok {
		return r, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return nil, sentinel.ErrNotFound
}

type AddressServiceSuite struct {
	suite.Suite
	geocoder *fakeGeocoder
}

func TestAddressServiceSuite(t *testing.T) {
	suite.Run(t, new(AddressServiceSuite))
}

func (s *AddressServiceSuite) SetupTest() {
	s.geocoder = &fakeGeocoder{results: map[string]*Resolved{}}
}

func (s *AddressServiceSuite) input() Input {
	return Input{Line1: "233 S Wacker Dr", Line2: "Suite 4400", City: "Chicago", State: "IL", Zip: "60606"}
}

func (s *AddressServiceSuite) TestValidateSuccess() {
	full := "233 S Wacker Dr, Suite 4400, Chicago, IL, 60606"
	s.geocoder.results[full] = &Resolved{Formatted: full, City: "Chicago", RegionCode: "IL", PostalCode: "60606"}

	resolved, err := New(s.geocoder).Validate(context.Background(), s.input())
	s.Require().NoError(err)
	s.Equal("Chicago", resolved.City)
	s.Len(s.geocoder.geocodeCalls, 1)
}

func (s *AddressServiceSuite) TestRetryWithoutSecondaryLine() {
	stripped := "233 S Wacker Dr, Chicago, IL, 60606"
	s.geocoder.results[stripped] = &Resolved{Formatted: stripped, City: "Chicago"}

	resolved, err := New(s.geocoder).Validate(context.Background(), s.input())
	s.Require().NoError(err)
	s.Equal(stripped, resolved.Formatted)

	s.Require().Len(s.geocoder.geocodeCalls, 2)
	s.Contains(s.geocoder.geocodeCalls[0], "Suite 4400")
	s.NotContains(s.geocoder.geocodeCalls[1], "Suite 4400")
}

func (s *AddressServiceSuite) TestNoRetryWithoutSecondaryLine() {
	in := s.input()
	in.Line2 = ""

	_, err := New(s.geocoder).Validate(context.Background(), in)
	s.True(dErrors.HasCode(err, dErrors.CodeAddressNotFound))
	s.Len(s.geocoder.geocodeCalls, 1)
}

func (s *AddressServiceSuite) TestNotFoundAfterRetry() {
	_, err := New(s.geocoder).Validate(context.Background(), s.input())
	s.True(dErrors.HasCode(err, dErrors.CodeAddressNotFound))
	s.Len(s.geocoder.geocodeCalls, 2)
}

func (s *AddressServiceSuite) TestTimeoutSurfacesAsTimeout() {
	s.geocoder.delay = 50 * time.Millisecond

	_, err := New(s.geocoder, WithTimeout(5*time.Millisecond)).Validate(context.Background(), s.input())
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
}

func (s *AddressServiceSuite) TestTransportFailureDistinctFromNotFound() {
	s.geocoder.err = errors.New("connection reset")
	in := s.input()
	in.Line2 = ""

	_, err := New(s.geocoder).Validate(context.Background(), in)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.False(dErrors.HasCode(err, dErrors.CodeAddressNotFound))
}
