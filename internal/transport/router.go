package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lingo/pkg/platform/health"
	"lingo/pkg/platform/middleware/auth"
	"lingo/pkg/platform/middleware/device"
	"lingo/pkg/platform/middleware/request"
)

// maxBodyBytes must stay above maxUploadBytes so document uploads pass the
// shared body limit before the per-file cap applies.
const maxBodyBytes = 10 << 20

// NewRouter wires the public endpoints with the middleware stack. Health and
// metrics stay outside the auth boundary; everything else requires a bearer
// token from the identity provider.
func NewRouter(h *Handler, healthHandler *health.Handler, validator auth.TokenValidator, metrics *request.Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(device.Capture)
	r.Use(request.Logger(logger, metrics))

	healthHandler.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(validator, logger))
		r.Use(request.BodyLimit(maxBodyBytes))
		h.Register(r)
	})

	return r
}
