package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds process-wide settings loaded from the environment.
type Config struct {
	Port       string        `env:"NOTEKEEP_PORT" envDefault:"8080"`
	DBPath     string        `env:"NOTEKEEP_DB_PATH" envDefault:"notekeep.db"`
	JWTSecret  string        `env:"NOTEKEEP_JWT_SECRET"`
	TokenTTL   time.Duration `env:"NOTEKEEP_TOKEN_TTL" envDefault:"0"`
	BcryptCost int           `env:"NOTEKEEP_BCRYPT_COST" envDefault:"10"`
	LogLevel   string        `env:"NOTEKEEP_LOG_LEVEL" envDefault:"info"`
	LogFormat  string        `env:"NOTEKEEP_LOG_FORMAT" envDefault:"text"`
}

// Load parses configuration from environment variables.
// The signing secret has no default: refusing to start beats
// signing tokens with a well-known value.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("NOTEKEEP_JWT_SECRET is required")
	}
	return cfg, nil
}
