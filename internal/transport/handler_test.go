package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"lingo/internal/address"
	"lingo/internal/refdata"
	"lingo/internal/submission"
	"lingo/internal/wizard"
	id "lingo/pkg/domain"
	dErrors "lingo/pkg/domain-errors"
	"lingo/pkg/testutil"
)

// fakeProfileAPI lets each test script the backend without a server.
type fakeProfileAPI struct {
	record    *submission.ProfileRecord
	createErr error
	updateErr error

	created, updated int
}

func (f *fakeProfileAPI) CreateProfile(ctx context.Context, token string, p *submission.Payload, files map[string][]byte) error {
	f.created++
	return f.createErr
}

func (f *fakeProfileAPI) SubmitUpdate(ctx context.Context, token string, p *submission.Payload, files map[string][]byte) error {
	f.updated++
	return f.updateErr
}

func (f *fakeProfileAPI) FetchProfile(ctx context.Context, token string) (*submission.ProfileRecord, error) {
	if f.record == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "no stored profile")
	}
	return f.record, nil
}

func (f *fakeProfileAPI) FetchPendingUpdate(ctx context.Context, token string) (*submission.PendingUpdate, error) {
	return &submission.PendingUpdate{Status: "pending", SubmittedAt: time.Now()}, nil
}

func (f *fakeProfileAPI) CancelPendingUpdate(ctx context.Context, token string) error {
	return nil
}

type fakeGeocoder struct{}

func (fakeGeocoder) Autocomplete(ctx context.Context, text string) ([]address.Suggestion, error) {
	return []address.Suggestion{{PlaceID: "p1", Description: text + ", Chicago, IL"}}, nil
}

func (fakeGeocoder) Resolve(ctx context.Context, placeID string) (*address.Resolved, error) {
	return &address.Resolved{Formatted: "233 S Wacker Dr, Chicago, IL 60606", City: "Chicago", RegionCode: "IL", PostalCode: "60606"}, nil
}

func (fakeGeocoder) Geocode(ctx context.Context, freeText string) (*address.Resolved, error) {
	return &address.Resolved{Formatted: freeText, City: "Chicago", RegionCode: "IL", PostalCode: "60606"}, nil
}

type HandlerSuite struct {
	suite.Suite
	api    *fakeProfileAPI
	wizard *wizard.Service
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.api = &fakeProfileAPI{}

	refStore := refdata.NewStore(&refdata.StaticLoader{Data: testutil.ReferenceData()})
	s.wizard = wizard.NewService(refStore, s.api, wizard.WithLogger(logger))
	addressService := address.New(fakeGeocoder{}, address.WithLogger(logger))

	h := NewHandler(s.wizard, addressService, logger)
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		encoded, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer backend-token")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder, target any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), target))
}

func (s *HandlerSuite) startSession(mode string) string {
	rec := s.do(http.MethodPost, "/sessions", map[string]string{"mode": mode})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var view struct {
		SessionID string `json:"session_id"`
		Step      int    `json:"step"`
	}
	s.decode(rec, &view)
	s.Require().NotEmpty(view.SessionID)
	return view.SessionID
}

func (s *HandlerSuite) TestStartSession() {
	s.Run("fresh", func() {
		rec := s.do(http.MethodPost, "/sessions", map[string]string{"mode": "fresh"})
		s.Require().Equal(http.StatusCreated, rec.Code)

		var view struct {
			Mode     string `json:"mode"`
			Step     int    `json:"step"`
			StepName string `json:"step_name"`
			Visited  []int  `json:"visited_steps"`
		}
		s.decode(rec, &view)
		s.Equal("fresh", view.Mode)
		s.Equal(1, view.Step)
		s.Equal("personal", view.StepName)
		s.Equal([]int{1}, view.Visited)
	})

	s.Run("mode is normalized before dispatch", func() {
		rec := s.do(http.MethodPost, "/sessions", map[string]string{"mode": "  FRESH "})
		s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	})

	s.Run("unknown mode", func() {
		rec := s.do(http.MethodPost, "/sessions", map[string]string{"mode": "bulk"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("missing mode", func() {
		rec := s.do(http.MethodPost, "/sessions", map[string]string{})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("resubmission requires a rejected profile", func() {
		s.api.record = &submission.ProfileRecord{FirstName: "Ana"}
		rec := s.do(http.MethodPost, "/sessions", map[string]string{"mode": "resubmission"})
		s.Equal(http.StatusConflict, rec.Code)
	})
}

func (s *HandlerSuite) TestNavigation() {
	sid := s.startSession("fresh")

	rec := s.do(http.MethodPost, "/sessions/"+sid+"/advance", map[string]any{
		"personal": map[string]string{
			"first_name": "Ana",
			"last_name":  "Reyes",
			"email":      "ana.reyes@example.com",
			"phone":      "+1-312-555-0148",
		},
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var view struct {
		Step int `json:"step"`
	}
	s.decode(rec, &view)
	s.Equal(2, view.Step)

	s.Run("invalid step output is a validation error", func() {
		rec := s.do(http.MethodPost, "/sessions/"+sid+"/advance", map[string]any{
			"personal": map[string]string{"first_name": "Ana"},
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("retreat", func() {
		rec := s.do(http.MethodPost, "/sessions/"+sid+"/retreat", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.decode(rec, &view)
		s.Equal(1, view.Step)
	})

	s.Run("jump past the frontier is forbidden", func() {
		rec := s.do(http.MethodPost, "/sessions/"+sid+"/jump", map[string]int{"step": 7})
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("jump out of range is rejected before the sequencer", func() {
		rec := s.do(http.MethodPost, "/sessions/"+sid+"/jump", map[string]int{"step": 12})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestSelectService() {
	sid := s.startSession("fresh")

	s.Run("gated selection without certification", func() {
		rec := s.do(http.MethodPost, "/sessions/"+sid+"/services", map[string]string{
			"service_type_id": testutil.SvcLegal.String(),
			"rate_type":       "platform",
		})
		s.Equal(http.StatusForbidden, rec.Code)

		var body map[string]string
		s.decode(rec, &body)
		s.Equal("ineligible_service", body["error"])
	})

	s.Run("ungated platform selection", func() {
		rec := s.do(http.MethodPost, "/sessions/"+sid+"/services", map[string]string{
			"service_type_id": testutil.SvcPhone.String(),
			"rate_type":       "platform",
		})
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("rate type is normalized before dispatch", func() {
		rec := s.do(http.MethodPost, "/sessions/"+sid+"/services", map[string]string{
			"service_type_id": " " + testutil.SvcPhone.String() + " ",
			"rate_type":       "PLATFORM",
		})
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("missing service type id", func() {
		rec := s.do(http.MethodPost, "/sessions/"+sid+"/services", map[string]string{
			"rate_type": "platform",
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("non-positive custom amount", func() {
		rec := s.do(http.MethodPost, "/sessions/"+sid+"/services", map[string]any{
			"service_type_id": testutil.SvcPhone.String(),
			"rate_type":       "custom",
			"custom":          map[string]any{"amount": 0, "unit": "minute"},
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("custom rate above the cap", func() {
		rec := s.do(http.MethodPost, "/sessions/"+sid+"/services", map[string]any{
			"service_type_id": testutil.SvcPhone.String(),
			"rate_type":       "custom",
			"custom":          map[string]any{"amount": 2000, "unit": "minute"},
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("deselect", func() {
		rec := s.do(http.MethodDelete, "/sessions/"+sid+"/services/"+testutil.SvcPhone.String(), nil)
		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *HandlerSuite) TestResubmissionFlow() {
	s.api.record = &submission.ProfileRecord{
		FirstName:      "Ana",
		LastName:       "Reyes",
		Email:          "ana.reyes@example.com",
		Phone:          "+1-312-555-0148",
		RejectedFields: []string{"w9_address"},
	}
	sid := s.startSession("resubmission")

	s.Run("field under the rejected section is flagged", func() {
		rec := s.do(http.MethodGet, "/sessions/"+sid+"/flags?field=w9_city", nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		var body map[string]bool
		s.decode(rec, &body)
		s.True(body["flagged"])
	})

	s.Run("sibling field outside the section is not", func() {
		rec := s.do(http.MethodGet, "/sessions/"+sid+"/flags?field=w9_ssn", nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		var body map[string]bool
		s.decode(rec, &body)
		s.False(body["flagged"])
	})

	s.Run("reentry steps", func() {
		rec := s.do(http.MethodGet, "/sessions/"+sid+"/reentry-steps", nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		var body struct {
			Steps []struct {
				Step int    `json:"step"`
				Name string `json:"name"`
			} `json:"steps"`
		}
		s.decode(rec, &body)
		s.Require().Len(body.Steps, 1)
		s.Equal("tax_form", body.Steps[0].Name)
	})
}

func (s *HandlerSuite) TestSubmit() {
	sid := s.startSession("fresh")

	state := s.sessionState(sid)
	state.Draft = testutil.CompleteDraft(time.Now())
	for state.Sequencer.Current != wizard.StepReview {
		state.Sequencer.Advance()
	}

	rec := s.do(http.MethodPost, "/sessions/"+sid+"/submit", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal(1, s.api.created)
	s.Equal(0, s.api.updated)

	s.Run("session is gone after success", func() {
		rec := s.do(http.MethodGet, "/sessions/"+sid, nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerSuite) TestSubmitRejected() {
	s.api.createErr = dErrors.New(dErrors.CodeSubmissionRejected, "w9 address does not match")

	sid := s.startSession("fresh")
	state := s.sessionState(sid)
	state.Draft = testutil.CompleteDraft(time.Now())
	for state.Sequencer.Current != wizard.StepReview {
		state.Sequencer.Advance()
	}

	rec := s.do(http.MethodPost, "/sessions/"+sid+"/submit", nil)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	s.Run("session survives for correction", func() {
		rec := s.do(http.MethodGet, "/sessions/"+sid, nil)
		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *HandlerSuite) TestAttachFile() {
	sid := s.startSession("fresh")

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+sid+"/files/w9_file", bytes.NewReader([]byte("%PDF-1.7")))
	req.Header.Set("Authorization", "Bearer backend-token")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *HandlerSuite) TestAddressEndpoints() {
	s.Run("suggest", func() {
		rec := s.do(http.MethodPost, "/address/suggest", map[string]string{"text": "233 S Wacker"})
		s.Require().Equal(http.StatusOK, rec.Code)

		var body struct {
			Suggestions []suggestionView `json:"suggestions"`
		}
		s.decode(rec, &body)
		s.Require().Len(body.Suggestions, 1)
		s.Equal("p1", body.Suggestions[0].PlaceID)
	})

	s.Run("validate", func() {
		rec := s.do(http.MethodPost, "/address/validate", map[string]string{
			"line1": "233 S Wacker Dr",
			"city":  "Chicago",
			"state": "IL",
			"zip":   "60606",
		})
		s.Require().Equal(http.StatusOK, rec.Code)

		var body addressView
		s.decode(rec, &body)
		s.Equal("Chicago", body.City)
	})
}

func (s *HandlerSuite) TestPendingUpdate() {
	rec := s.do(http.MethodGet, "/profile/pending-update", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var pending submission.PendingUpdate
	s.decode(rec, &pending)
	s.Equal("pending", pending.Status)

	rec = s.do(http.MethodDelete, "/profile/pending-update", nil)
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *HandlerSuite) TestUnknownSession() {
	rec := s.do(http.MethodGet, "/sessions/0b0b2f1e-9f7a-4b58-9a5f-2f3344556677", nil)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/sessions/not-a-uuid", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

// sessionState reaches into the service directly for test setup the HTTP
// surface does not expose.
func (s *HandlerSuite) sessionState(sid string) *wizard.State {
	sessionID, err := id.ParseSessionID(sid)
	s.Require().NoError(err)
	state, err := s.wizard.Get(sessionID)
	s.Require().NoError(err)
	return state
}
