package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/favoriteblog/blog-ui/config"
	"github.com/favoriteblog/blog-ui/internal/adapters/api"
	"github.com/favoriteblog/blog-ui/internal/adapters/cache"
	"github.com/favoriteblog/blog-ui/internal/adapters/credstore"
	"github.com/favoriteblog/blog-ui/internal/observability/statsd"
	"github.com/favoriteblog/blog-ui/internal/ports"
	"github.com/favoriteblog/blog-ui/internal/service"
)

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Sessions  *service.SessionStore
	Posts     *service.PostService
	Comments  *service.CommentService
	Admin     *service.AdminService
	Dashboard *service.DashboardService

	Client  *api.Client
	Metrics *statsd.Client
	// owned holds Redis clients opened here; injected clients are not closed.
	owned []redis.UniversalClient
}

// Close waits for background session work, then releases the metrics
// connection and the Redis client, if any.
func (c ServiceContainer) Close() error {
	if c.Sessions != nil {
		c.Sessions.Wait()
	}
	var errs []error
	if err := c.Metrics.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close statsd: %w", err))
	}
	for _, r := range c.owned {
		if err := r.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ServiceDeps contains the inputs needed to build the service container.
type ServiceDeps struct {
	Config *config.AppConfig
	Logger *slog.Logger
	// Credentials overrides the configured credential backend (tests).
	Credentials ports.CredentialStore
	// Redis overrides the connection used by the redis credential backend and
	// the catalog cache.
	Redis redis.UniversalClient
}

// NewServices wires the API client, the session store and the content services.
// The session is not restored; callers start Restore when they are ready.
func NewServices(ctx context.Context, deps ServiceDeps) (ServiceContainer, error) {
	if deps.Config == nil {
		return ServiceContainer{}, errors.New("app config is required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sink, err := statsd.New(statsd.Config{
		Enabled:    cfg.Observability.StatsDEnabled,
		Address:    cfg.Observability.StatsDAddr,
		Prefix:     cfg.Observability.StatsDPrefix,
		GlobalTags: map[string]string{"service": "blog-ui"},
		Logger:     logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create statsd client: %w", err)
	}

	client, err := api.NewClient(api.Options{
		BaseURL:         cfg.API.URL,
		ErrorExpression: cfg.API.ErrorExpression,
		UserAgent:       cfg.API.UserAgent,
		Timeout:         cfg.API.Timeout,
		Logger:          logger,
		Metrics:         sink,
	})
	if err != nil {
		_ = sink.Close()
		return ServiceContainer{}, fmt.Errorf("create API client: %w", err)
	}

	creds, credRedis, err := buildCredentialStore(ctx, deps, logger)
	if err != nil {
		_ = sink.Close()
		return ServiceContainer{}, err
	}
	var owned []redis.UniversalClient
	if credRedis != nil {
		owned = append(owned, credRedis)
	}

	shared := deps.Redis
	if shared == nil {
		shared = credRedis
	}
	blog, cacheRedis, err := buildCatalog(ctx, cfg, client, shared, logger)
	if err != nil {
		_ = ServiceContainer{Metrics: sink, owned: owned}.Close()
		return ServiceContainer{}, err
	}
	if cacheRedis != nil {
		owned = append(owned, cacheRedis)
	}

	sessions := service.NewSessionStore(service.SessionStoreOptions{
		API:            client,
		Credentials:    creds,
		Logger:         logger,
		RestoreTimeout: cfg.UI.RestoreTimeout,
		Metrics:        sink,
	})
	client.SetSession(sessions)

	return ServiceContainer{
		Sessions: sessions,
		Posts: service.NewPostService(service.PostServiceOptions{
			API:           blog,
			Sessions:      sessions,
			Logger:        logger,
			PageSize:      cfg.UI.PostsPerPage,
			MaxImageBytes: cfg.UI.MaxImageBytes,
		}),
		Comments: service.NewCommentService(service.CommentServiceOptions{
			API:      blog,
			Sessions: sessions,
			Logger:   logger,
			PageSize: cfg.UI.CommentsPerPage,
		}),
		Admin: service.NewAdminService(service.AdminServiceOptions{
			Users:    blog,
			Comments: blog,
			Sessions: sessions,
			Logger:   logger,
		}),
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			API:      blog,
			Sessions: sessions,
			Logger:   logger,
			PageSize: cfg.UI.PostsPerPage,
		}),
		Client:  client,
		Metrics: sink,
		owned:   owned,
	}, nil
}

// buildCredentialStore selects the durable store for the bearer credential.
// The returned Redis client is non-nil only when this function opened it.
func buildCredentialStore(
	ctx context.Context,
	deps ServiceDeps,
	logger *slog.Logger,
) (ports.CredentialStore, redis.UniversalClient, error) {
	if deps.Credentials != nil {
		return deps.Credentials, nil, nil
	}
	cfg := deps.Config

	switch cfg.Credentials.Backend {
	case config.CredentialBackendMemory:
		logger.Warn("credential storage is in-memory; sessions will not survive a restart")
		return credstore.NewMemoryStore(), nil, nil

	case config.CredentialBackendRedis:
		client := deps.Redis
		var owned redis.UniversalClient
		if client == nil {
			c, err := ConnectRedis(ctx, cfg.Redis, logger)
			if err != nil {
				return nil, nil, fmt.Errorf("connect credential redis: %w", err)
			}
			client, owned = c, c
		}
		return credstore.NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.Credentials.Key), owned, nil

	default:
		path := cfg.Credentials.File
		if path == "" {
			p, err := credstore.DefaultFilePath()
			if err != nil {
				return nil, nil, fmt.Errorf("resolve credential file: %w", err)
			}
			path = p
		}
		store, err := credstore.NewFileStore(path, cfg.Credentials.Key)
		if err != nil {
			return nil, nil, fmt.Errorf("open credential file: %w", err)
		}
		logger.Debug("credential storage", "backend", "file", "path", store.Path())
		return store, nil, nil
	}
}

// buildCatalog wraps the API client with the Redis catalog cache when a TTL is
// configured. shared is reused when non-nil; otherwise a connection is opened
// and returned so the caller can close it.
func buildCatalog(
	ctx context.Context,
	cfg *config.AppConfig,
	client *api.Client,
	shared redis.UniversalClient,
	logger *slog.Logger,
) (ports.BlogAPI, redis.UniversalClient, error) {
	ttl := cfg.Redis.CatalogCacheTTL
	if ttl <= 0 {
		return client, nil, nil
	}

	conn := shared
	var owned redis.UniversalClient
	if conn == nil {
		c, err := ConnectRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect catalog cache redis: %w", err)
		}
		conn, owned = c, c
	}

	logger.Info("catalog cache enabled", "ttl", ttl.String())
	return cache.NewCatalog(cache.CatalogOptions{
		API:    client,
		Store:  cache.NewRedisCache(conn, cfg.Redis.KeyPrefix),
		TTL:    ttl,
		Logger: logger,
	}), owned, nil
}
