package config

import (
	"strings"
	"time"
)

// APIConfig configures the REST client for the blog API.
type APIConfig struct {
	// URL is the API base, including the /api prefix.
	URL string `env:"API_URL" envDefault:"http://localhost:5000/api"`

	// Timeout bounds each request.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"30s"`

	// ErrorExpression is a JMESPath expression that extracts the message from error bodies.
	ErrorExpression string `env:"API_ERROR_EXPRESSION" envDefault:"error || message || errors[0].msg"`

	UserAgent string `env:"API_USER_AGENT" envDefault:"favoriteblog-ui"`
}

// Sanitize applies guardrails to API client configuration.
func (a *APIConfig) Sanitize() {
	a.URL = strings.TrimRight(strings.TrimSpace(a.URL), "/")
	if a.URL == "" {
		a.URL = "http://localhost:5000/api"
	}
	if a.Timeout <= 0 {
		a.Timeout = 30 * time.Second
	}
}
