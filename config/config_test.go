package config

import (
	"log/slog"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.URL != "http://localhost:5000/api" {
		t.Fatalf("unexpected API URL %q", cfg.API.URL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Fatalf("unexpected API timeout %s", cfg.API.Timeout)
	}
	if cfg.API.ErrorExpression != "error || message || errors[0].msg" {
		t.Fatalf("unexpected error expression %q", cfg.API.ErrorExpression)
	}
	if cfg.Credentials.Backend != CredentialBackendFile {
		t.Fatalf("expected file backend, got %q", cfg.Credentials.Backend)
	}
	if cfg.Credentials.Key != "favoriteblog.token" {
		t.Fatalf("unexpected credential key %q", cfg.Credentials.Key)
	}
	if cfg.Redis.URI != "localhost:6379" || cfg.Redis.KeyPrefix != "blogui:" {
		t.Fatalf("unexpected redis config %#v", cfg.Redis)
	}
	if cfg.HTTP.Addr != "127.0.0.1:8080" {
		t.Fatalf("unexpected HTTP addr %q", cfg.HTTP.Addr)
	}
	if cfg.UI.PostsPerPage != 10 || cfg.UI.CommentsPerPage != 20 || cfg.UI.PaginationMaxVisible != 5 {
		t.Fatalf("unexpected UI config %#v", cfg.UI)
	}
	if cfg.UI.MaxImageBytes != 5<<20 {
		t.Fatalf("unexpected max image bytes %d", cfg.UI.MaxImageBytes)
	}
	if cfg.Observability.Level != slog.LevelInfo {
		t.Fatalf("expected info level, got %s", cfg.Observability.Level)
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("API_URL", " https://blog.example.com/api/ ")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("CREDENTIAL_BACKEND", "Redis")
	t.Setenv("CREDENTIAL_KEY", "custom.token")
	t.Setenv("REDIS_URI", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("POSTS_PER_PAGE", "25")
	t.Setenv("SESSION_RESTORE_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "warn")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.URL != "https://blog.example.com/api" {
		t.Fatalf("expected trimmed URL, got %q", cfg.API.URL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.API.Timeout)
	}
	if cfg.Credentials.Backend != CredentialBackendRedis {
		t.Fatalf("expected redis backend, got %q", cfg.Credentials.Backend)
	}
	if cfg.Credentials.Key != "custom.token" {
		t.Fatalf("unexpected key %q", cfg.Credentials.Key)
	}
	if cfg.Redis.URI != "redis:6379" || cfg.Redis.DB != 2 {
		t.Fatalf("unexpected redis config %#v", cfg.Redis)
	}
	if cfg.HTTP.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %q", cfg.HTTP.Addr)
	}
	if cfg.UI.PostsPerPage != 25 || cfg.UI.RestoreTimeout != 3*time.Second {
		t.Fatalf("unexpected UI config %#v", cfg.UI)
	}
	if cfg.Observability.Level != slog.LevelWarn {
		t.Fatalf("expected warn level, got %s", cfg.Observability.Level)
	}
}

func TestCredentialBackend_UnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    CredentialBackend
		wantErr bool
	}{
		{"file", CredentialBackendFile, false},
		{" MEMORY ", CredentialBackendMemory, false},
		{"redis", CredentialBackendRedis, false},
		{"localStorage", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var b CredentialBackend
			err := b.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, b)
			}
		})
	}
}

func TestAppConfig_InvalidBackend(t *testing.T) {
	t.Setenv("CREDENTIAL_BACKEND", "cookie")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatalf("expected parse error for invalid backend")
	}
}

func TestUIConfig_Sanitize(t *testing.T) {
	cfg := UIConfig{PostsPerPage: 0, CommentsPerPage: 500, PaginationMaxVisible: -1, MaxImageBytes: 0}
	cfg.Sanitize()

	if cfg.PostsPerPage != defaultPostsPerPage {
		t.Fatalf("expected default posts per page, got %d", cfg.PostsPerPage)
	}
	if cfg.CommentsPerPage != defaultCommentsPerPage {
		t.Fatalf("expected default comments per page, got %d", cfg.CommentsPerPage)
	}
	if cfg.PaginationMaxVisible != defaultMaxVisiblePages {
		t.Fatalf("expected default window, got %d", cfg.PaginationMaxVisible)
	}
	if cfg.MaxImageBytes != defaultMaxImageBytes || cfg.RestoreTimeout != defaultRestoreTimeout {
		t.Fatalf("unexpected limits %#v", cfg)
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	cfg := HTTPConfig{CompressionLevel: 12}
	cfg.Sanitize()
	if cfg.CompressionLevel != 9 {
		t.Fatalf("expected clamp to 9, got %d", cfg.CompressionLevel)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected default shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestObservabilityConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityConfig{LevelName: "nonsense", Format: " TEXT "}
	cfg.Sanitize(true)
	if cfg.Level != slog.LevelDebug {
		t.Fatalf("expected dev default debug level, got %s", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Fatalf("expected text format, got %q", cfg.Format)
	}

	cfg = ObservabilityConfig{LevelName: "error"}
	cfg.Sanitize(true)
	if cfg.Level != slog.LevelError {
		t.Fatalf("expected explicit error level, got %s", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Fatalf("expected json format, got %q", cfg.Format)
	}
}

func TestAppConfig_DetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	cfg := AppConfig{}
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Fatalf("expected dev mode from NODE_ENV")
	}
}

func TestObservabilityConfig_StatsD(t *testing.T) {
	t.Setenv("STATSD_ENABLED", "true")
	t.Setenv("STATSD_ADDR", " 127.0.0.1:8125 ")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()
	if !cfg.Observability.StatsDEnabled || cfg.Observability.StatsDAddr != "127.0.0.1:8125" {
		t.Fatalf("unexpected statsd config %#v", cfg.Observability)
	}
	if cfg.Observability.StatsDPrefix != "blogui" {
		t.Fatalf("expected default prefix, got %q", cfg.Observability.StatsDPrefix)
	}

	obs := ObservabilityConfig{StatsDEnabled: true, StatsDAddr: "  "}
	obs.Sanitize(false)
	if obs.StatsDEnabled {
		t.Fatalf("expected statsd disabled without an address")
	}
}

func TestRedisConfig_CatalogCacheTTL(t *testing.T) {
	t.Setenv("REDIS_CATALOG_CACHE_TTL", "90s")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()
	if cfg.Redis.CatalogCacheTTL != 90*time.Second {
		t.Fatalf("expected 90s catalog TTL, got %s", cfg.Redis.CatalogCacheTTL)
	}

	r := RedisConfig{URI: " redis:6379 ", CatalogCacheTTL: -time.Second}
	r.Sanitize()
	if r.URI != "redis:6379" || r.CatalogCacheTTL != 0 {
		t.Fatalf("unexpected sanitized redis config %#v", r)
	}
}
