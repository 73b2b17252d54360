package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/beesaferoot/gorm-purge/purge"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`

	Identity IdentityConfig `envPrefix:"IDENTITY_"`
	Purge    PurgeConfig    `envPrefix:"PURGE_"`
	Log      LogConfig      `envPrefix:"LOG_"`
}

type IdentityConfig struct {
	URL        string        `env:"URL"`
	ServiceKey string        `env:"SERVICE_KEY"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type PurgeConfig struct {
	Transactional bool   `env:"TRANSACTIONAL" envDefault:"true"`
	LockDir       string `env:"LOCK_DIR"`
	BatchSize     int    `env:"BATCH_SIZE" envDefault:"10000"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"console"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables only.
func LoadFrom(environment map[string]string) (Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, &purge.ConfigurationError{Cause: err}
	}
	if cfg.Purge.LockDir == "" {
		cfg.Purge.LockDir = os.TempDir()
	}
	return cfg, nil
}

// Validate checks everything a purge needs before any data is touched.
func (c Config) Validate() error {
	var result *multierror.Error
	if err := c.ValidateStore(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.Identity.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.Log.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return &purge.ConfigurationError{Cause: err}
	}
	return nil
}

// ValidateStore checks only what read-only commands need.
func (c Config) ValidateStore() error {
	var result *multierror.Error
	if strings.TrimSpace(c.DatabaseURL) == "" {
		result = multierror.Append(result, errors.New("DATABASE_URL is required"))
	}
	if c.Purge.BatchSize <= 0 {
		result = multierror.Append(result, fmt.Errorf("PURGE_BATCH_SIZE must be positive, got %d", c.Purge.BatchSize))
	}
	return result.ErrorOrNil()
}

func (c IdentityConfig) Validate() error {
	var result *multierror.Error
	if c.URL == "" {
		result = multierror.Append(result, errors.New("IDENTITY_URL is required"))
	} else if u, err := url.Parse(c.URL); err != nil || !u.IsAbs() || u.Host == "" {
		result = multierror.Append(result, fmt.Errorf("IDENTITY_URL must be an absolute url, got %q", c.URL))
	}
	if c.ServiceKey == "" {
		result = multierror.Append(result, errors.New("IDENTITY_SERVICE_KEY is required"))
	}
	if c.Timeout <= 0 {
		result = multierror.Append(result, errors.New("IDENTITY_TIMEOUT must be positive"))
	}
	return result.ErrorOrNil()
}

func (c LogConfig) Validate() error {
	switch strings.ToLower(c.Format) {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.Format)
	}
}

// ValidateUserID checks the target id has the identity provider's id format.
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return &purge.ConfigurationError{Cause: errors.New("target user id is required")}
	}
	if _, err := uuid.Parse(userID); err != nil {
		return &purge.ConfigurationError{Cause: fmt.Errorf("target user id %q is not a valid uuid: %w", userID, err)}
	}
	return nil
}
