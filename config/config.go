// Package config reads tool and server settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// SaveDir holds the save-slot database. Empty keeps saves in memory.
	SaveDir string `env:"CIRCUIT_SAVE_DIR"`
	// Levels is a YAML level pack; empty uses the built-in pack.
	Levels      string `env:"CIRCUIT_LEVELS"`
	LogLevel    string `env:"CIRCUIT_LOG_LEVEL" envDefault:"info"`
	MetricsAddr string `env:"CIRCUIT_METRICS_ADDR"`
	MaxPasses   int    `env:"CIRCUIT_MAX_PASSES" envDefault:"50"`
}

// Load reads the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads settings from vars instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.MaxPasses <= 0 {
		return Config{}, fmt.Errorf("parse env: CIRCUIT_MAX_PASSES must be positive, got %d", c.MaxPasses)
	}
	if _, err := c.Level(); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// Level maps LogLevel onto a slog level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("CIRCUIT_LOG_LEVEL: %w", err)
	}
	return l, nil
}
