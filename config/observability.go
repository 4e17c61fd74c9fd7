package config

import (
	"log/slog"
	"strings"
)

// ObservabilityConfig groups logging and metrics configuration.
type ObservabilityConfig struct {
	// LevelName is the minimum log level name (debug, info, warn, error).
	// Empty means debug in dev mode and info otherwise.
	LevelName string `env:"LOG_LEVEL"`

	// Format is "json" (default) or "text".
	Format string `env:"LOG_FORMAT" envDefault:"json"`

	// Level is resolved from LevelName by Sanitize.
	Level slog.Level

	// StatsD metrics. Disabled unless STATSD_ENABLED is true and STATSD_ADDR is set.
	StatsDEnabled bool   `env:"STATSD_ENABLED" envDefault:"false"`
	StatsDAddr    string `env:"STATSD_ADDR"`
	StatsDPrefix  string `env:"STATSD_PREFIX"  envDefault:"blogui"`
}

// Sanitize resolves the log level and normalizes the format.
// Unknown level names fall back to the mode default.
func (c *ObservabilityConfig) Sanitize(isDev bool) {
	c.Level = slog.LevelInfo
	if isDev {
		c.Level = slog.LevelDebug
	}
	name := strings.TrimSpace(c.LevelName)
	if name != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(name)); err == nil {
			c.Level = lvl
		}
	}

	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format != "text" {
		c.Format = "json"
	}

	c.StatsDAddr = strings.TrimSpace(c.StatsDAddr)
	if c.StatsDAddr == "" {
		c.StatsDEnabled = false
	}
}
