package config

import (
	"fmt"
	"strings"
	"time"
)

// CredentialBackend selects where the bearer credential is persisted.
type CredentialBackend string

const (
	// CredentialBackendFile stores the credential in a JSON file under the user config dir.
	CredentialBackendFile CredentialBackend = "file"
	// CredentialBackendRedis stores the credential in Redis.
	CredentialBackendRedis CredentialBackend = "redis"
	// CredentialBackendMemory keeps the credential in process memory only.
	CredentialBackendMemory CredentialBackend = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for CredentialBackend.
func (b *CredentialBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch CredentialBackend(v) {
	case CredentialBackendFile, CredentialBackendRedis, CredentialBackendMemory:
		*b = CredentialBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid CredentialBackend: %q (valid options: file, redis, memory)", v)
	}
}

// CredentialConfig configures durable credential storage.
type CredentialConfig struct {
	Backend CredentialBackend `env:"CREDENTIAL_BACKEND" envDefault:"file"`

	// File is the credential file path. Empty means <user config dir>/favoriteblog/credentials.json.
	File string `env:"CREDENTIAL_FILE"`

	// Key is the fixed storage key for the credential.
	Key string `env:"CREDENTIAL_KEY" envDefault:"favoriteblog.token"`
}

// Sanitize applies guardrails to credential storage configuration.
func (c *CredentialConfig) Sanitize() {
	c.File = strings.TrimSpace(c.File)
	c.Key = strings.TrimSpace(c.Key)
	if c.Key == "" {
		c.Key = "favoriteblog.token"
	}
	if c.Backend == "" {
		c.Backend = CredentialBackendFile
	}
}

// RedisConfig contains Redis connection settings used by the redis credential
// backend and the catalog cache.
type RedisConfig struct {
	URI       string `env:"URI"        envDefault:"localhost:6379"`
	Password  string `env:"PASSWORD"   envDefault:""`
	DB        int    `env:"DB"         envDefault:"0"`
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"blogui:"`

	// CatalogCacheTTL caches categories and featured posts in Redis. Zero disables it.
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"0s"`
}

// Sanitize trims the URI and clamps negative durations.
func (c *RedisConfig) Sanitize() {
	c.URI = strings.TrimSpace(c.URI)
	if c.CatalogCacheTTL < 0 {
		c.CatalogCacheTTL = 0
	}
}
