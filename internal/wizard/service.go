package wizard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	id "lingo/pkg/domain"
	dErrors "lingo/pkg/domain-errors"
	"lingo/internal/profile"
	"lingo/internal/rates"
	"lingo/internal/refdata"
	"lingo/internal/resubmit"
	"lingo/internal/submission"
	wizardmetrics "lingo/internal/wizard/metrics"
	"lingo/pkg/requestcontext"
)

// ReferenceSource supplies the parametric snapshot for a session.
type ReferenceSource interface {
	Snapshot(ctx context.Context) (*refdata.ReferenceData, error)
}

// ProfileAPI is the profile backend surface the wizard needs.
type ProfileAPI interface {
	CreateProfile(ctx context.Context, token string, p *submission.Payload, files map[string][]byte) error
	SubmitUpdate(ctx context.Context, token string, p *submission.Payload, files map[string][]byte) error
	FetchProfile(ctx context.Context, token string) (*submission.ProfileRecord, error)
	FetchPendingUpdate(ctx context.Context, token string) (*submission.PendingUpdate, error)
	CancelPendingUpdate(ctx context.Context, token string) error
}

// State is one live wizard run: sequencer, draft, reference snapshot, and any
// rejection set it was started with. The draft has a single writer (the
// active step); the mutex serializes facade requests racing on one session.
type State struct {
	ID         id.SessionID
	Sequencer  *Session
	Draft      *profile.Draft
	Ref        *refdata.ReferenceData
	Rejections resubmit.RejectionSet

	files map[string][]byte
	mu    sync.Mutex
}

// Service orchestrates wizard sessions end to end.
type Service struct {
	refs      ReferenceSource
	api       ProfileAPI
	assembler *submission.Assembler

	logger  *slog.Logger
	metrics *wizardmetrics.Metrics
	tracer  trace.Tracer
	now     func() time.Time

	mu       sync.Mutex
	sessions map[id.SessionID]*State
}

type ServiceOption func(*Service)

func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *wizardmetrics.Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// WithClock injects time for deterministic testing.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

func NewService(refs ReferenceSource, api ProfileAPI, opts ...ServiceOption) *Service {
	s := &Service{
		refs:      refs,
		api:       api,
		assembler: submission.NewAssembler(),
		tracer:    otel.Tracer("lingo/wizard"),
		now:       time.Now,
		sessions:  make(map[id.SessionID]*State),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartFresh begins a first application: empty draft, linear walk.
func (s *Service) StartFresh(ctx context.Context) (*State, error) {
	ctx, span := s.tracer.Start(ctx, "wizard.StartFresh")
	defer span.End()

	ref, err := s.refs.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	state := s.register(ModeFresh, profile.NewDraft(), ref, nil)
	s.logStart(ctx, state, ModeFresh)
	return state, nil
}

// StartEditProfile begins an amendment of an approved profile: draft
// prefilled from the stored profile, every step navigable.
func (s *Service) StartEditProfile(ctx context.Context, token string) (*State, error) {
	ctx, span := s.tracer.Start(ctx, "wizard.StartEditProfile")
	defer span.End()

	ref, record, err := s.loadForPrefill(ctx, token)
	if err != nil {
		return nil, err
	}
	state := s.register(ModeEditProfile, submission.DraftFromRecord(record), ref, nil)
	s.logStart(ctx, state, ModeEditProfile)
	return state, nil
}

// StartResubmission resumes after an admin rejection: draft prefilled, all
// steps visited, and the rejection set retained so fields can be decorated.
func (s *Service) StartResubmission(ctx context.Context, token string) (*State, error) {
	ctx, span := s.tracer.Start(ctx, "wizard.StartResubmission")
	defer span.End()

	ref, record, err := s.loadForPrefill(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(record.RejectedFields) == 0 {
		return nil, dErrors.New(dErrors.CodeConflict, "profile has no rejected submission to resume")
	}
	rejections := resubmit.NewRejectionSet(record.RejectedFields)
	state := s.register(ModeResubmission, submission.DraftFromRecord(record), ref, rejections)
	s.logStart(ctx, state, ModeResubmission)
	return state, nil
}

func (s *Service) loadForPrefill(ctx context.Context, token string) (*refdata.ReferenceData, *submission.ProfileRecord, error) {
	ref, err := s.refs.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	record, err := s.api.FetchProfile(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	return ref, record, nil
}

func (s *Service) register(mode Mode, d *profile.Draft, ref *refdata.ReferenceData, rejections resubmit.RejectionSet) *State {
	state := &State{
		ID:         id.SessionID(uuid.New()),
		Sequencer:  NewSession(mode),
		Draft:      d,
		Ref:        ref,
		Rejections: rejections,
		files:      make(map[string][]byte),
	}
	s.mu.Lock()
	s.sessions[state.ID] = state
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.IncSessionStarted(string(mode))
	}
	return state
}

// Get returns a live session.
func (s *Service) Get(sessionID id.SessionID) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "wizard session not found")
	}
	return state, nil
}

// Abandon discards a session and its draft.
func (s *Service) Abandon(sessionID id.SessionID) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Advance merges the step's output into the draft and moves the sequencer
// forward (or back to review when in the edit detour).
func (s *Service) Advance(sessionID id.SessionID, out StepOutput) (*State, error) {
	state, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := merge(state.Draft, out, state.Ref, s.now()); err != nil {
		return nil, err
	}
	state.Sequencer.Advance()
	s.countTransition("advance")
	return state, nil
}

// Retreat moves one step back without touching the draft.
func (s *Service) Retreat(sessionID id.SessionID) (*State, error) {
	state, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	state.Sequencer.Retreat()
	s.countTransition("retreat")
	return state, nil
}

// JumpTo navigates directly to a step, subject to the sequencer's rules.
func (s *Service) JumpTo(sessionID id.SessionID, step Step) (*State, error) {
	state, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := state.Sequencer.JumpTo(step); err != nil {
		return nil, err
	}
	s.countTransition("jump")
	return state, nil
}

// EditFrom enters the edit-from-review detour.
func (s *Service) EditFrom(sessionID id.SessionID, step Step) (*State, error) {
	state, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := state.Sequencer.EditFrom(step); err != nil {
		return nil, err
	}
	s.countTransition("edit_from")
	return state, nil
}

// SelectService adds a service selection after checking the certification
// gate and resolving the effective rate. An ineligible selection rejects
// without mutating the draft.
func (s *Service) SelectService(sessionID id.SessionID, sid id.ServiceTypeID, rateType id.RateType, custom *rates.CustomRateInput) (*State, error) {
	state, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	st, ok := state.Ref.ServiceTypeByID(sid)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown service type")
	}

	held := state.Ref.CertificateCodes(heldCertificateTypes(state.Draft))
	if !rates.IsServiceSelectable(st.Code, held) {
		if s.metrics != nil {
			s.metrics.IncIneligibleSelection()
		}
		return nil, dErrors.New(dErrors.CodeIneligibleService,
			st.Name+" requires a qualifying certification")
	}

	speaksSpanish := state.Ref.HasLanguageNamed("Spanish", state.Draft.Languages)
	spec, err := rates.ComputeEffectiveRate(st.Code, st.PlatformRate, rateType, speaksSpanish, custom)
	if err != nil {
		return nil, err
	}

	state.Draft.PutSelection(&profile.ServiceSelection{
		ServiceTypeID: sid,
		RateType:      rateType,
		Rate:          spec,
	})
	return state, nil
}

// DeselectService removes a selection and its overrides.
func (s *Service) DeselectService(sessionID id.SessionID, sid id.ServiceTypeID) (*State, error) {
	state, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	state.Draft.RemoveSelection(sid)
	return state, nil
}

// SetLanguageOverride stores a per-language rate refinement on a selection.
func (s *Service) SetLanguageOverride(sessionID id.SessionID, sid id.ServiceTypeID, lid id.LanguageID, lr rates.LanguageRate) (*State, error) {
	state, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := state.Draft.SetLanguageOverride(sid, lid, lr); err != nil {
		return nil, err
	}
	return state, nil
}

// AttachFile stores an uploaded document for inclusion in the multipart body.
func (s *Service) AttachFile(sessionID id.SessionID, name string, content []byte) error {
	state, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	state.files[name] = content
	return nil
}

// IsFlagged reports whether a field was rejected on the prior submission,
// directly or through its section.
func (s *Service) IsFlagged(sessionID id.SessionID, fieldID string) (bool, error) {
	state, err := s.Get(sessionID)
	if err != nil {
		return false, err
	}
	return resubmit.IsFlagged(fieldID, state.Rejections), nil
}

// StepsRequiringReentry lists the steps the rejection set touches.
func (s *Service) StepsRequiringReentry(sessionID id.SessionID) ([]Step, error) {
	state, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	names := resubmit.StepsRequiringReentry(state.Rejections)
	steps := make([]Step, 0, len(names))
	for _, name := range names {
		if step, ok := StepByName(name); ok {
			steps = append(steps, step)
		}
	}
	return steps, nil
}

// Submit assembles the draft and posts it: the create endpoint for fresh and
// resubmission sessions, the queued-update endpoint when amending an approved
// profile. The session is discarded on success and preserved on rejection so
// the user can correct and resubmit.
func (s *Service) Submit(ctx context.Context, sessionID id.SessionID, token string) error {
	ctx, span := s.tracer.Start(ctx, "wizard.Submit")
	defer span.End()

	state, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	if state.Sequencer.Current != StepReview {
		return dErrors.New(dErrors.CodeInvariantViolation, "submission is only available from the review step")
	}
	if err := submission.ValidateForSubmission(state.Draft, state.Ref, s.now()); err != nil {
		return err
	}
	if err := s.recheckEligibility(state); err != nil {
		return err
	}

	payload, err := s.assembler.Assemble(state.Draft)
	if err != nil {
		return err
	}

	if state.Sequencer.Mode == ModeEditProfile {
		err = s.api.SubmitUpdate(ctx, token, payload, state.files)
	} else {
		err = s.api.CreateProfile(ctx, token, payload, state.files)
	}
	if err != nil {
		s.countSubmission("rejected")
		s.logEvent(ctx, "wizard_submission_failed",
			"session_id", state.ID,
			"mode", state.Sequencer.Mode,
			"error", err,
		)
		return err // draft preserved for correction
	}

	s.countSubmission("accepted")
	s.logEvent(ctx, "wizard_submission_accepted",
		"session_id", state.ID,
		"mode", state.Sequencer.Mode,
	)

	s.mu.Lock()
	delete(s.sessions, state.ID)
	s.mu.Unlock()
	return nil
}

// PendingUpdate proxies the queued-update inspection endpoint.
func (s *Service) PendingUpdate(ctx context.Context, token string) (*submission.PendingUpdate, error) {
	return s.api.FetchPendingUpdate(ctx, token)
}

// CancelPendingUpdate withdraws a queued update.
func (s *Service) CancelPendingUpdate(ctx context.Context, token string) error {
	return s.api.CancelPendingUpdate(ctx, token)
}

// recheckEligibility re-runs the certification gate over every selection. The
// gate is checked when a service is picked, but the user can delete the
// qualifying certificate row afterwards and walk back to review.
func (s *Service) recheckEligibility(state *State) error {
	held := state.Ref.CertificateCodes(heldCertificateTypes(state.Draft))
	for _, sid := range state.Draft.SelectedServiceTypes() {
		st, ok := state.Ref.ServiceTypeByID(sid)
		if !ok {
			continue
		}
		if !rates.IsServiceSelectable(st.Code, held) {
			if s.metrics != nil {
				s.metrics.IncIneligibleSelection()
			}
			return dErrors.New(dErrors.CodeIneligibleService,
				st.Name+" requires a qualifying certification")
		}
	}
	return nil
}

// heldCertificateTypes collects the certificate types on complete rows only;
// half-filled rows prove nothing.
func heldCertificateTypes(d *profile.Draft) []id.CertificateTypeID {
	var out []id.CertificateTypeID
	for _, c := range d.Certificates {
		if c.Complete() {
			out = append(out, c.CertificateTypeID)
		}
	}
	return out
}

func (s *Service) countTransition(event string) {
	if s.metrics != nil {
		s.metrics.IncStepTransition(event)
	}
}

func (s *Service) countSubmission(outcome string) {
	if s.metrics != nil {
		s.metrics.IncSubmission(outcome)
	}
}

func (s *Service) logStart(ctx context.Context, state *State, mode Mode) {
	s.logEvent(ctx, "wizard_session_started",
		"session_id", state.ID,
		"mode", mode,
	)
}

// logEvent emits an audit line decorated with whatever the middleware put on
// the context: the authenticated interpreter and the client device summary.
func (s *Service) logEvent(ctx context.Context, event string, attributes ...any) {
	if s.logger == nil {
		return
	}
	args := append(attributes, "event", event, "log_type", "audit")
	if iid := requestcontext.InterpreterID(ctx); !iid.IsNil() {
		args = append(args, "interpreter_id", iid)
	}
	if d, ok := requestcontext.DeviceInfo(ctx); ok {
		args = append(args, "device_os", d.OS, "device_browser", d.Browser, "device_mobile", d.Mobile)
	}
	s.logger.InfoContext(ctx, event, args...)
}
