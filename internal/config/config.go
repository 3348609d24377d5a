// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables; defaults come
// from the env-default tags.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" env-default:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `env:"DATABASE_URL"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// DBMaxConns bounds the pgx connection pool shared by all requests.
	DBMaxConns int32 `env:"DB_MAX_CONNS" env-default:"10"`

	// MaxBodyBytes limits incoming request body sizes.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" env-default:"1048576"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error when a required variable is not set.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("config: required environment variable not set: DATABASE_URL")
	}
	return cfg, nil
}
