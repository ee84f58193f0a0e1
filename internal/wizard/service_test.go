package wizard

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ReferenceSource,ProfileAPI

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	id "lingo/pkg/domain"
	dErrors "lingo/pkg/domain-errors"
	"lingo/pkg/requestcontext"
	"lingo/pkg/testutil"
	"lingo/internal/profile"
	"lingo/internal/rates"
	"lingo/internal/submission"
	"lingo/internal/wizard/mocks"
)

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRefs *mocks.MockReferenceSource
	mockAPI  *mocks.MockProfileAPI
	service  *Service
	now      time.Time
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRefs = mocks.NewMockReferenceSource(s.ctrl)
	s.mockAPI = mocks.NewMockProfileAPI(s.ctrl)
	s.now = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(
		s.mockRefs,
		s.mockAPI,
		WithLogger(logger),
		WithClock(func() time.Time { return s.now }),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) expectSnapshot() {
	s.mockRefs.EXPECT().Snapshot(gomock.Any()).Return(testutil.ReferenceData(), nil)
}

// storedRecord is a minimal backend profile for prefill-based starts.
func (s *ServiceSuite) storedRecord(rejected ...string) *submission.ProfileRecord {
	return &submission.ProfileRecord{
		FirstName:    "Ana",
		LastName:     "Reyes",
		Email:        "ana.reyes@example.com",
		Phone:        "+1-312-555-0148",
		AddressLine1: "233 S Wacker Dr",
		City:         "Chicago",
		RegionCode:   "IL",
		PostalCode:   "60606",
		Languages: []submission.LanguageEntry{
			{LanguageID: testutil.LangSpanish.String()},
		},
		ServiceRates: []submission.StoredServiceRate{
			{
				ServiceTypeID: testutil.SvcPhone.String(),
				RateType:      "platform",
				Amount:        "0.75",
				Unit:          "minute",
			},
		},
		RejectedFields: rejected,
	}
}

func (s *ServiceSuite) TestStartFresh() {
	s.expectSnapshot()

	state, err := s.service.StartFresh(context.Background())
	s.Require().NoError(err)

	s.Run("session begins at the first step in linear mode", func() {
		s.Equal(ModeFresh, state.Sequencer.Mode)
		s.Equal(StepPersonal, state.Sequencer.Current)
		s.Len(state.Sequencer.Visited, 1)
	})

	s.Run("draft starts empty", func() {
		s.Empty(state.Draft.Languages)
		s.Empty(state.Draft.ServiceSelections)
	})

	s.Run("session is retrievable by id", func() {
		got, err := s.service.Get(state.ID)
		s.Require().NoError(err)
		s.Same(state, got)
	})
}

func (s *ServiceSuite) TestStartEditProfilePrefills() {
	s.expectSnapshot()
	s.mockAPI.EXPECT().FetchProfile(gomock.Any(), "tok").Return(s.storedRecord(), nil)

	state, err := s.service.StartEditProfile(context.Background(), "tok")
	s.Require().NoError(err)

	s.Equal(ModeEditProfile, state.Sequencer.Mode)
	s.Len(state.Sequencer.Visited, int(lastStep), "every step is pre-visited")
	s.Equal("Ana", state.Draft.Personal.FirstName)
	s.Equal([]id.LanguageID{testutil.LangSpanish}, state.Draft.Languages)
	s.Empty(state.Rejections)
}

func (s *ServiceSuite) TestStartResubmission() {
	s.Run("retains the rejection set", func() {
		s.expectSnapshot()
		s.mockAPI.EXPECT().FetchProfile(gomock.Any(), "tok").
			Return(s.storedRecord("w9_address", "email"), nil)

		state, err := s.service.StartResubmission(context.Background(), "tok")
		s.Require().NoError(err)
		s.Equal(ModeResubmission, state.Sequencer.Mode)

		flagged, err := s.service.IsFlagged(state.ID, "w9_city")
		s.Require().NoError(err)
		s.True(flagged, "field under a rejected section is flagged")

		flagged, err = s.service.IsFlagged(state.ID, "w9_ssn")
		s.Require().NoError(err)
		s.False(flagged)

		steps, err := s.service.StepsRequiringReentry(state.ID)
		s.Require().NoError(err)
		s.Equal([]Step{StepPersonal, StepTaxForm}, steps)
	})

	s.Run("profile without rejections cannot be resubmitted", func() {
		s.expectSnapshot()
		s.mockAPI.EXPECT().FetchProfile(gomock.Any(), "tok").Return(s.storedRecord(), nil)

		_, err := s.service.StartResubmission(context.Background(), "tok")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *ServiceSuite) TestSelectService() {
	s.expectSnapshot()
	state, err := s.service.StartFresh(context.Background())
	s.Require().NoError(err)

	s.Run("gated service without certificate is rejected", func() {
		_, err := s.service.SelectService(state.ID, testutil.SvcLegal, id.RatePlatform, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeIneligibleService))
		s.Empty(state.Draft.ServiceSelections, "draft unchanged on rejection")
	})

	s.Run("ungated service selects on the platform rate", func() {
		_, err := s.service.SelectService(state.ID, testutil.SvcPhone, id.RatePlatform, nil)
		s.Require().NoError(err)
		s.Require().Contains(state.Draft.ServiceSelections, testutil.SvcPhone)
		s.Equal(0.85, state.Draft.ServiceSelections[testutil.SvcPhone].Rate.Amount)
	})

	s.Run("spanish adjusts the conditional platform amount", func() {
		state.Draft.SetLanguages([]id.LanguageID{testutil.LangSpanish})
		_, err := s.service.SelectService(state.ID, testutil.SvcPhone, id.RatePlatform, nil)
		s.Require().NoError(err)
		s.Equal(0.75, state.Draft.ServiceSelections[testutil.SvcPhone].Rate.Amount)
	})

	s.Run("gated service unlocks with a qualifying certificate", func() {
		state.Draft.Certificates = []profile.Certificate{testutil.CourtCertificate(s.now)}
		_, err := s.service.SelectService(state.ID, testutil.SvcLegal, id.RatePlatform, nil)
		s.Require().NoError(err)
		s.Require().Contains(state.Draft.ServiceSelections, testutil.SvcLegal)
	})

	s.Run("incomplete certificate does not unlock", func() {
		state.Draft.Certificates = []profile.Certificate{{CertificateTypeID: testutil.CertTypeCourt}}
		_, err := s.service.SelectService(state.ID, testutil.SvcVideo, id.RatePlatform, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeIneligibleService))
	})

	s.Run("unknown service type", func() {
		_, err := s.service.SelectService(state.ID, id.ServiceTypeID(uuid.New()), id.RatePlatform, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("deselect removes the selection", func() {
		_, err := s.service.DeselectService(state.ID, testutil.SvcPhone)
		s.Require().NoError(err)
		s.NotContains(state.Draft.ServiceSelections, testutil.SvcPhone)
	})
}

func (s *ServiceSuite) TestSelectServiceCustomRate() {
	s.expectSnapshot()
	state, err := s.service.StartFresh(context.Background())
	s.Require().NoError(err)

	_, err = s.service.SelectService(state.ID, testutil.SvcPhone, id.RateCustom, &rates.CustomRateInput{
		Amount: 1.10,
		Unit:   rates.UnitMinute,
	})
	s.Require().NoError(err)
	s.Require().Contains(state.Draft.ServiceSelections, testutil.SvcPhone)
	s.Equal(1.10, state.Draft.ServiceSelections[testutil.SvcPhone].Rate.Amount)

	s.Run("out-of-bounds amount rejected", func() {
		_, err := s.service.SelectService(state.ID, testutil.SvcPhone, id.RateCustom, &rates.CustomRateInput{
			Amount: 1500,
			Unit:   rates.UnitMinute,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestNavigation() {
	s.expectSnapshot()
	state, err := s.service.StartFresh(context.Background())
	s.Require().NoError(err)

	state, err = s.service.Advance(state.ID, StepOutput{})
	s.Require().NoError(err)
	s.Equal(StepAddress, state.Sequencer.Current)

	state, err = s.service.Retreat(state.ID)
	s.Require().NoError(err)
	s.Equal(StepPersonal, state.Sequencer.Current)

	s.Run("jump ahead of the frontier is refused in fresh mode", func() {
		_, err := s.service.JumpTo(state.ID, StepReview)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeStepNotNavigable))
	})

	s.Run("jump to a visited step succeeds", func() {
		state, err = s.service.JumpTo(state.ID, StepAddress)
		s.Require().NoError(err)
		s.Equal(StepAddress, state.Sequencer.Current)
	})
}

func (s *ServiceSuite) TestAdvanceMergesOutput() {
	s.expectSnapshot()
	state, err := s.service.StartFresh(context.Background())
	s.Require().NoError(err)

	out := StepOutput{
		Personal: &profile.PersonalInfo{
			FirstName: "Ana",
			LastName:  "Reyes",
			Email:     "ana.reyes@example.com",
			Phone:     "+1-312-555-0148",
		},
	}
	state, err = s.service.Advance(state.ID, out)
	s.Require().NoError(err)
	s.Equal("Ana", state.Draft.Personal.FirstName)
	s.Equal(StepAddress, state.Sequencer.Current)

	s.Run("invalid output leaves draft and position alone", func() {
		bad := StepOutput{Personal: &profile.PersonalInfo{FirstName: "Ana"}}
		_, err := s.service.Advance(state.ID, bad)
		s.Require().Error(err)
		s.Equal(StepAddress, state.Sequencer.Current)
		s.Equal("Reyes", state.Draft.Personal.LastName)
	})
}

func (s *ServiceSuite) walkToReview(state *State) {
	for state.Sequencer.Current != StepReview {
		state.Sequencer.Advance()
	}
}

func (s *ServiceSuite) TestSubmitFresh() {
	s.expectSnapshot()
	state, err := s.service.StartFresh(context.Background())
	s.Require().NoError(err)
	state.Draft = testutil.CompleteDraft(s.now)

	s.Run("refused before the review step", func() {
		err := s.service.Submit(context.Background(), state.ID, "tok")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.walkToReview(state)

	s.Run("posts to the create endpoint and discards the session", func() {
		s.mockAPI.EXPECT().
			CreateProfile(gomock.Any(), "tok", gomock.Any(), gomock.Any()).
			Return(nil)

		s.Require().NoError(s.service.Submit(context.Background(), state.ID, "tok"))

		_, err := s.service.Get(state.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestSubmitRejectedKeepsDraft() {
	s.expectSnapshot()
	state, err := s.service.StartFresh(context.Background())
	s.Require().NoError(err)
	state.Draft = testutil.CompleteDraft(s.now)
	s.walkToReview(state)

	s.mockAPI.EXPECT().
		CreateProfile(gomock.Any(), "tok", gomock.Any(), gomock.Any()).
		Return(dErrors.New(dErrors.CodeSubmissionRejected, "w9 address does not match"))

	err = s.service.Submit(context.Background(), state.ID, "tok")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeSubmissionRejected))

	got, err := s.service.Get(state.ID)
	s.Require().NoError(err, "session survives a rejection")
	s.Equal("Ana", got.Draft.Personal.FirstName)
}

func (s *ServiceSuite) TestSubmitRechecksEligibility() {
	s.expectSnapshot()
	state, err := s.service.StartFresh(context.Background())
	s.Require().NoError(err)
	state.Draft = testutil.CompleteDraft(s.now)
	s.walkToReview(state)

	// The legal selection was gated by the court certificate; deleting the
	// row after selection must not slip through review.
	state.Draft.Certificates = nil

	err = s.service.Submit(context.Background(), state.ID, "tok")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeIneligibleService))

	_, err = s.service.Get(state.ID)
	s.Require().NoError(err, "session survives for correction")
}

func (s *ServiceSuite) TestAuditLogCarriesRequestContext() {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	service := NewService(s.mockRefs, s.mockAPI, WithLogger(logger))
	s.expectSnapshot()

	interpreter := id.InterpreterID(uuid.New())
	ctx := requestcontext.WithInterpreterID(context.Background(), interpreter)
	ctx = requestcontext.WithDevice(ctx, requestcontext.Device{Browser: "Chrome", OS: "Windows 10"})

	_, err := service.StartFresh(ctx)
	s.Require().NoError(err)

	out := logs.String()
	s.Contains(out, `"event":"wizard_session_started"`)
	s.Contains(out, interpreter.String())
	s.Contains(out, `"device_os":"Windows 10"`)
}

func (s *ServiceSuite) TestSubmitEditProfileUsesUpdateEndpoint() {
	s.expectSnapshot()
	s.mockAPI.EXPECT().FetchProfile(gomock.Any(), "tok").Return(s.storedRecord(), nil)

	state, err := s.service.StartEditProfile(context.Background(), "tok")
	s.Require().NoError(err)
	state.Draft = testutil.CompleteDraft(s.now)

	state, err = s.service.JumpTo(state.ID, StepReview)
	s.Require().NoError(err, "edit mode jumps freely")

	s.mockAPI.EXPECT().
		SubmitUpdate(gomock.Any(), "tok", gomock.Any(), gomock.Any()).
		Return(nil)

	s.Require().NoError(s.service.Submit(context.Background(), state.ID, "tok"))
}

func (s *ServiceSuite) TestSubmitIncompleteDraftRefused() {
	s.expectSnapshot()
	state, err := s.service.StartFresh(context.Background())
	s.Require().NoError(err)

	draft := testutil.CompleteDraft(s.now)
	draft.AgreementAccepted = false
	state.Draft = draft
	s.walkToReview(state)

	err = s.service.Submit(context.Background(), state.ID, "tok")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestAbandon() {
	s.expectSnapshot()
	state, err := s.service.StartFresh(context.Background())
	s.Require().NoError(err)

	s.service.Abandon(state.ID)
	_, err = s.service.Get(state.ID)
	s.Require().Error(err)
}

func (s *ServiceSuite) TestAttachFile() {
	s.expectSnapshot()
	state, err := s.service.StartFresh(context.Background())
	s.Require().NoError(err)

	s.Require().NoError(s.service.AttachFile(state.ID, "w9_file", []byte("pdf")))
	s.Equal([]byte("pdf"), state.files["w9_file"])
}
