// Package config loads facade configuration from the environment so main
// stays lean.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures everything the server needs at startup.
type Config struct {
	Addr        string `env:"LINGO_ADDR" envDefault:":8080"`
	Environment string `env:"LINGO_ENV" envDefault:"development"`

	// ProfileAPIBaseURL is the interpreter profile backend that serves
	// /parametric/all and receives submissions.
	ProfileAPIBaseURL string        `env:"PROFILE_API_BASE_URL" envDefault:"http://localhost:9000"`
	ProfileAPITimeout time.Duration `env:"PROFILE_API_TIMEOUT" envDefault:"30s"`

	GeocoderBaseURL string        `env:"GEOCODER_BASE_URL" envDefault:"http://localhost:9100"`
	GeocoderAPIKey  string        `env:"GEOCODER_API_KEY"`
	GeocoderTimeout time.Duration `env:"GEOCODER_TIMEOUT" envDefault:"10s"`

	// JWTSigningKey verifies bearer tokens issued by the identity provider.
	// The default is for development only.
	JWTSigningKey string `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// FromEnv parses the configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
