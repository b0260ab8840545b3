package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	HTTP     HTTP       `envPrefix:"HTTP_"`
	Database Database   `envPrefix:"DATABASE_"`
	JWT      JWT        `envPrefix:"JWT_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port int `env:"PORT" envDefault:"8080"`
	// BaseURL is the public address used in login links.
	BaseURL    string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	StaticPath string `env:"STATIC_PATH"`
}

// Database contains database connection parameters.
type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"`
	Path   string `env:"PATH" envDefault:"./data/superlists.db"`
	DSN    string `env:"DSN"`
}

// JWT contains session token parameters.
type JWT struct {
	Secret          string        `env:"SECRET" envDefault:"devsecret"`
	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"720h"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("DATABASE_PATH is required for sqlite")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return errors.New("DATABASE_DSN is required for postgres")
		}
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.Database.Driver)
	}

	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWT.SessionDuration <= 0 {
		return errors.New("JWT_SESSION_DURATION must be positive")
	}
	return nil
}
