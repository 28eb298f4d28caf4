// Package config loads CLI defaults from the environment. Flags given on
// the command line take precedence over these values.
package config

import (
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"

	"github.com/roach88/saju/internal/trend"
)

// Formats lists the accepted output formats.
var Formats = []string{"text", "json", "markdown"}

// Config holds environment-derived defaults.
type Config struct {
	// DB is the archive path used by --save and history.
	DB string `env:"SAJU_DB" envDefault:"saju.db"`
	// MaxSpan caps trend ranges.
	MaxSpan int `env:"SAJU_MAX_SPAN" envDefault:"200"`
	// Format is the default output format, one of Formats.
	Format string `env:"SAJU_FORMAT" envDefault:"text"`
	// Workers bounds parallel trend scoring.
	Workers int `env:"SAJU_WORKERS" envDefault:"4"`
	// Verbose enables debug logging.
	Verbose bool `env:"SAJU_VERBOSE"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config from the environment and checks its ranges.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects out-of-range values.
func (c Config) Validate() error {
	if c.MaxSpan < 1 || c.MaxSpan > trend.MaxSpan {
		return fmt.Errorf("SAJU_MAX_SPAN must be within 1..%d, got %d", trend.MaxSpan, c.MaxSpan)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("SAJU_FORMAT must be one of %v, got %q", Formats, c.Format)
	}
	if c.Workers < 1 {
		return fmt.Errorf("SAJU_WORKERS must be positive, got %d", c.Workers)
	}
	return nil
}
