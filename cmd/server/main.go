package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"lingo/internal/address"
	"lingo/internal/platform/config"
	"lingo/internal/platform/httpserver"
	"lingo/internal/platform/logger"
	"lingo/internal/refdata"
	"lingo/internal/submission"
	"lingo/internal/transport"
	"lingo/internal/wizard"
	wizardmetrics "lingo/internal/wizard/metrics"
	"lingo/pkg/platform/health"
	"lingo/pkg/platform/middleware/auth"
	"lingo/pkg/platform/middleware/request"
)

// main wires dependencies and keeps the server lifecycle small. Workflow
// logic lives in the internal packages.
func main() {
	_ = godotenv.Load() // optional .env for local development

	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log.Info("initializing onboarding facade",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"profile_api", cfg.ProfileAPIBaseURL,
	)

	refStore := refdata.NewStore(refdata.NewClient(cfg.ProfileAPIBaseURL, cfg.ProfileAPITimeout))
	profileAPI := submission.NewClient(cfg.ProfileAPIBaseURL, cfg.ProfileAPITimeout)

	geocoder := address.NewHTTPGeocoder(cfg.GeocoderBaseURL, cfg.GeocoderAPIKey, cfg.GeocoderTimeout)
	addressService := address.New(geocoder,
		address.WithTimeout(cfg.GeocoderTimeout),
		address.WithLogger(log),
	)

	wizardService := wizard.NewService(refStore, profileAPI,
		wizard.WithLogger(log),
		wizard.WithMetrics(wizardmetrics.New()),
	)

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("reference_data", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ProfileAPITimeout)
		defer cancel()
		_, err := refStore.Snapshot(ctx)
		return err
	})

	handler := transport.NewHandler(wizardService, addressService, log)
	validator := auth.NewHMACValidator(cfg.JWTSigningKey)
	router := transport.NewRouter(handler, healthHandler, validator, request.NewMetrics(), log)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
