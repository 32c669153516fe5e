// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Addr            string        `env:"TRIPSPLIT_ADDR" envDefault:":8080"`
	DBPath          string        `env:"TRIPSPLIT_DB_PATH" envDefault:"./data/trips.db"`
	JWTSecret       string        `env:"TRIPSPLIT_JWT_SECRET"`
	TokenTTL        time.Duration `env:"TRIPSPLIT_TOKEN_TTL" envDefault:"24h"`
	DefaultCurrency string        `env:"TRIPSPLIT_DEFAULT_CURRENCY" envDefault:"JPY"`
	ShutdownTimeout time.Duration `env:"TRIPSPLIT_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("TRIPSPLIT_JWT_SECRET is required"))
	} else if len(c.JWTSecret) < 16 {
		errs = append(errs, errors.New("TRIPSPLIT_JWT_SECRET must be at least 16 characters"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TRIPSPLIT_TOKEN_TTL must be positive"))
	}
	if len(c.DefaultCurrency) != 3 {
		errs = append(errs, fmt.Errorf("TRIPSPLIT_DEFAULT_CURRENCY %q is not a currency code", c.DefaultCurrency))
	}
	return errors.Join(errs...)
}
