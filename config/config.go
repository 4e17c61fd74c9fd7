package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: Blog API client configuration
//   - storage.go: Credential storage, Redis and the catalog cache
//   - http.go: Local HTTP server configuration
//   - ui.go: Listing sizes, upload limits and session restore timing
//   - observability.go: Logging and StatsD metrics
type AppConfig struct {
	// IsDev controls development mode behavior (verbose logging, .env loading).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	API         APIConfig
	Credentials CredentialConfig
	Redis       RedisConfig `envPrefix:"REDIS_"`
	HTTP        HTTPConfig
	UI          UIConfig

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Credentials.Sanitize()
	c.Redis.Sanitize()
	c.HTTP.Sanitize()
	c.UI.Sanitize()

	c.detectDevMode()
	c.Observability.Sanitize(c.IsDev)
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
