// Package transport is the thin HTTP layer over the wizard service. Handlers
// delegate to the service without embedding workflow logic so transport
// concerns stay isolated.
package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"lingo/internal/address"
	"lingo/internal/rates"
	"lingo/internal/submission"
	"lingo/internal/wizard"
	id "lingo/pkg/domain"
	dErrors "lingo/pkg/domain-errors"
	"lingo/pkg/platform/httputil"
	"lingo/pkg/requestcontext"
)

// Service defines the wizard operations the HTTP layer exposes.
type Service interface {
	StartFresh(ctx context.Context) (*wizard.State, error)
	StartEditProfile(ctx context.Context, token string) (*wizard.State, error)
	StartResubmission(ctx context.Context, token string) (*wizard.State, error)
	Get(sessionID id.SessionID) (*wizard.State, error)
	Abandon(sessionID id.SessionID)

	Advance(sessionID id.SessionID, out wizard.StepOutput) (*wizard.State, error)
	Retreat(sessionID id.SessionID) (*wizard.State, error)
	JumpTo(sessionID id.SessionID, step wizard.Step) (*wizard.State, error)
	EditFrom(sessionID id.SessionID, step wizard.Step) (*wizard.State, error)

	SelectService(sessionID id.SessionID, sid id.ServiceTypeID, rateType id.RateType, custom *rates.CustomRateInput) (*wizard.State, error)
	DeselectService(sessionID id.SessionID, sid id.ServiceTypeID) (*wizard.State, error)
	SetLanguageOverride(sessionID id.SessionID, sid id.ServiceTypeID, lid id.LanguageID, lr rates.LanguageRate) (*wizard.State, error)
	AttachFile(sessionID id.SessionID, name string, content []byte) error

	IsFlagged(sessionID id.SessionID, fieldID string) (bool, error)
	StepsRequiringReentry(sessionID id.SessionID) ([]wizard.Step, error)

	Submit(ctx context.Context, sessionID id.SessionID, token string) error
	PendingUpdate(ctx context.Context, token string) (*submission.PendingUpdate, error)
	CancelPendingUpdate(ctx context.Context, token string) error
}

// AddressService defines the address validation operations.
type AddressService interface {
	Suggest(ctx context.Context, text string) ([]address.Suggestion, error)
	ResolvePlace(ctx context.Context, placeID string) (*address.Resolved, error)
	Validate(ctx context.Context, in address.Input) (*address.Resolved, error)
}

// Handler handles wizard session endpoints.
type Handler struct {
	logger  *slog.Logger
	wizard  Service
	address AddressService
}

func NewHandler(wizard Service, addr AddressService, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		wizard:  wizard,
		address: addr,
	}
}

// Register mounts the session routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/sessions", h.handleStartSession)
	r.Get("/sessions/{sessionID}", h.handleGetSession)
	r.Delete("/sessions/{sessionID}", h.handleAbandonSession)

	r.Post("/sessions/{sessionID}/advance", h.handleAdvance)
	r.Post("/sessions/{sessionID}/retreat", h.handleRetreat)
	r.Post("/sessions/{sessionID}/jump", h.handleJump)
	r.Post("/sessions/{sessionID}/edit-from", h.handleEditFrom)

	r.Post("/sessions/{sessionID}/services", h.handleSelectService)
	r.Delete("/sessions/{sessionID}/services/{serviceTypeID}", h.handleDeselectService)
	r.Put("/sessions/{sessionID}/services/{serviceTypeID}/languages/{languageID}", h.handleLanguageOverride)
	r.Post("/sessions/{sessionID}/files/{name}", h.handleAttachFile)

	r.Get("/sessions/{sessionID}/flags", h.handleFieldFlag)
	r.Get("/sessions/{sessionID}/reentry-steps", h.handleReentrySteps)

	r.Post("/sessions/{sessionID}/submit", h.handleSubmit)

	r.Get("/profile/pending-update", h.handlePendingUpdate)
	r.Delete("/profile/pending-update", h.handleCancelPendingUpdate)

	r.Post("/address/suggest", h.handleAddressSuggest)
	r.Post("/address/resolve", h.handleAddressResolve)
	r.Post("/address/validate", h.handleAddressValidate)
}

// bearerToken extracts the raw bearer token so it can be forwarded to the
// profile backend. The auth middleware has already validated it.
func bearerToken(r *http.Request) string {
	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return token
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (id.SessionID, bool) {
	sid, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid session id"))
		return id.SessionID{}, false
	}
	return sid, true
}

type startSessionRequest struct {
	Mode string `json:"mode"`
}

func (r *startSessionRequest) Normalize() {
	r.Mode = strings.ToLower(strings.TrimSpace(r.Mode))
}

func (r *startSessionRequest) Validate() error {
	switch wizard.Mode(r.Mode) {
	case wizard.ModeFresh, wizard.ModeEditProfile, wizard.ModeResubmission:
		return nil
	}
	return dErrors.New(dErrors.CodeInvalidInput, "mode must be fresh, edit_profile, or resubmission")
}

func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[startSessionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	var state *wizard.State
	var err error
	switch wizard.Mode(req.Mode) {
	case wizard.ModeEditProfile:
		state, err = h.wizard.StartEditProfile(ctx, bearerToken(r))
	case wizard.ModeResubmission:
		state, err = h.wizard.StartResubmission(ctx, bearerToken(r))
	default:
		state, err = h.wizard.StartFresh(ctx)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to start session",
			"mode", req.Mode,
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, newSessionView(state))
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	state, err := h.wizard.Get(sid)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionView(state))
}

func (h *Handler) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	h.wizard.Abandon(sid)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	out, ok := httputil.DecodeJSON[wizard.StepOutput](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	state, err := h.wizard.Advance(sid, *out)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionView(state))
}

func (h *Handler) handleRetreat(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	state, err := h.wizard.Retreat(sid)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionView(state))
}

type stepRequest struct {
	Step int `json:"step"`
}

func (h *Handler) handleJump(w http.ResponseWriter, r *http.Request) {
	h.handleStepChange(w, r, h.wizard.JumpTo)
}

func (h *Handler) handleEditFrom(w http.ResponseWriter, r *http.Request) {
	h.handleStepChange(w, r, h.wizard.EditFrom)
}

func (h *Handler) handleStepChange(w http.ResponseWriter, r *http.Request, apply func(id.SessionID, wizard.Step) (*wizard.State, error)) {
	ctx := r.Context()
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeJSON[stepRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	step, err := wizard.ParseStep(req.Step)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	state, err := apply(sid, step)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionView(state))
}

type selectServiceRequest struct {
	ServiceTypeID string           `json:"service_type_id"`
	RateType      string           `json:"rate_type"`
	Custom        *customRateInput `json:"custom,omitempty"`
}

type customRateInput struct {
	Amount               float64  `json:"amount"`
	Unit                 string   `json:"unit"`
	MinimumHours         float64  `json:"minimum_hours,omitempty"`
	IntervalMinutes      int      `json:"interval_minutes,omitempty"`
	SecondIntervalAmount *float64 `json:"second_interval_amount,omitempty"`
	SecondIntervalUnit   *string  `json:"second_interval_unit,omitempty"`
}

func (r *selectServiceRequest) Normalize() {
	r.ServiceTypeID = strings.TrimSpace(r.ServiceTypeID)
	r.RateType = strings.ToLower(strings.TrimSpace(r.RateType))
	if r.Custom != nil {
		r.Custom.Unit = strings.ToLower(strings.TrimSpace(r.Custom.Unit))
		if r.Custom.SecondIntervalUnit != nil {
			unit := strings.ToLower(strings.TrimSpace(*r.Custom.SecondIntervalUnit))
			r.Custom.SecondIntervalUnit = &unit
		}
	}
}

func (r *selectServiceRequest) Validate() error {
	if r.ServiceTypeID == "" {
		return dErrors.New(dErrors.CodeValidation, "service_type_id is required")
	}
	if r.RateType == "" {
		return dErrors.New(dErrors.CodeValidation, "rate_type is required")
	}
	if r.Custom != nil && r.Custom.Amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "custom rate amount must be positive")
	}
	return nil
}

func (c *customRateInput) toDomain() (*rates.CustomRateInput, error) {
	in := &rates.CustomRateInput{
		Amount:               c.Amount,
		MinimumHours:         c.MinimumHours,
		IntervalMinutes:      c.IntervalMinutes,
		SecondIntervalAmount: c.SecondIntervalAmount,
	}
	if c.Unit != "" {
		unit, err := rates.ParseRateUnit(c.Unit)
		if err != nil {
			return nil, err
		}
		in.Unit = unit
	}
	if c.SecondIntervalUnit != nil {
		unit, err := rates.ParseRateUnit(*c.SecondIntervalUnit)
		if err != nil {
			return nil, err
		}
		in.SecondIntervalUnit = &unit
	}
	return in, nil
}

func (h *Handler) handleSelectService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[selectServiceRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	serviceTypeID, err := id.ParseServiceTypeID(req.ServiceTypeID)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid service type id"))
		return
	}

	var custom *rates.CustomRateInput
	if req.Custom != nil {
		custom, err = req.Custom.toDomain()
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	state, err := h.wizard.SelectService(sid, serviceTypeID, id.RateType(req.RateType), custom)
	if err != nil {
		h.logger.WarnContext(ctx, "service selection rejected",
			"session_id", sid,
			"service_type_id", serviceTypeID,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionView(state))
}

func (h *Handler) handleDeselectService(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	serviceTypeID, err := id.ParseServiceTypeID(chi.URLParam(r, "serviceTypeID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid service type id"))
		return
	}
	state, err := h.wizard.DeselectService(sid, serviceTypeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionView(state))
}

type languageOverrideRequest struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

func (h *Handler) handleLanguageOverride(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	serviceTypeID, err := id.ParseServiceTypeID(chi.URLParam(r, "serviceTypeID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid service type id"))
		return
	}
	languageID, err := id.ParseLanguageID(chi.URLParam(r, "languageID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid language id"))
		return
	}
	req, ok := httputil.DecodeJSON[languageOverrideRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	unit, err := rates.ParseRateUnit(req.Unit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	state, err := h.wizard.SetLanguageOverride(sid, serviceTypeID, languageID, rates.LanguageRate{
		Amount: req.Amount,
		Unit:   unit,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionView(state))
}

// maxUploadBytes caps a single document upload.
const maxUploadBytes = 8 << 20

func (h *Handler) handleAttachFile(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "name")
	if name == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "file name is required"))
		return
	}

	content, err := readAll(r, maxUploadBytes)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "could not read file content"))
		return
	}
	if err := h.wizard.AttachFile(sid, name, content); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleFieldFlag(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	field := r.URL.Query().Get("field")
	if field == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "field query parameter is required"))
		return
	}
	flagged, err := h.wizard.IsFlagged(sid, field)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"flagged": flagged})
}

func (h *Handler) handleReentrySteps(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	steps, err := h.wizard.StepsRequiringReentry(sid)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]stepView, 0, len(steps))
	for _, step := range steps {
		out = append(out, stepView{Step: int(step), Name: step.String()})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]stepView{"steps": out})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if err := h.wizard.Submit(ctx, sid, bearerToken(r)); err != nil {
		h.logger.WarnContext(ctx, "submission failed",
			"session_id", sid,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "submitted"})
}

func (h *Handler) handlePendingUpdate(w http.ResponseWriter, r *http.Request) {
	pending, err := h.wizard.PendingUpdate(r.Context(), bearerToken(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, pending)
}

func (h *Handler) handleCancelPendingUpdate(w http.ResponseWriter, r *http.Request) {
	if err := h.wizard.CancelPendingUpdate(r.Context(), bearerToken(r)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type suggestRequest struct {
	Text string `json:"text"`
}

func (h *Handler) handleAddressSuggest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[suggestRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	suggestions, err := h.address.Suggest(ctx, req.Text)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]suggestionView, 0, len(suggestions))
	for _, sug := range suggestions {
		out = append(out, suggestionView{PlaceID: sug.PlaceID, Description: sug.Description})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]suggestionView{"suggestions": out})
}

type resolveRequest struct {
	PlaceID string `json:"place_id"`
}

func (h *Handler) handleAddressResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[resolveRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	resolved, err := h.address.ResolvePlace(ctx, req.PlaceID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newAddressView(resolved))
}

type validateAddressRequest struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2,omitempty"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

func (h *Handler) handleAddressValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[validateAddressRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	resolved, err := h.address.Validate(ctx, address.Input{
		Line1: req.Line1,
		Line2: req.Line2,
		City:  req.City,
		State: req.State,
		Zip:   req.Zip,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "address validation failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newAddressView(resolved))
}
