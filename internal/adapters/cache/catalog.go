package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/favoriteblog/blog-ui/internal/domain/model"
	obserrors "github.com/favoriteblog/blog-ui/internal/observability/errors"
	"github.com/favoriteblog/blog-ui/internal/ports"
)

// Cache keys, relative to the RedisCache prefix.
const (
	CategoriesKey = "catalog:categories"
	FeaturedKey   = "catalog:featured"
)

// Store is the subset of RedisCache the catalog needs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) (int64, error)
}

// CatalogOptions groups dependencies for NewCatalog.
type CatalogOptions struct {
	API    ports.BlogAPI
	Store  Store
	TTL    time.Duration
	Logger *slog.Logger
}

// Catalog decorates a BlogAPI with read-through caching of the category list
// and featured posts. Post writes drop the featured entry. Cache failures are
// logged and the call falls through to the API.
type Catalog struct {
	ports.BlogAPI

	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.BlogAPI = (*Catalog)(nil)

// NewCatalog wraps opts.API.
func NewCatalog(opts CatalogOptions) *Catalog {
	if opts.API == nil {
		panic("BlogAPI is required")
	}
	if opts.Store == nil {
		panic("cache Store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		BlogAPI: opts.API,
		store:   opts.Store,
		ttl:     opts.TTL,
		logger:  logger.With("component", "catalog_cache"),
	}
}

func (c *Catalog) Categories(ctx context.Context) ([]model.Category, error) {
	return readThrough(ctx, c, CategoriesKey, c.BlogAPI.Categories)
}

func (c *Catalog) FeaturedPosts(ctx context.Context) ([]model.Post, error) {
	return readThrough(ctx, c, FeaturedKey, c.BlogAPI.FeaturedPosts)
}

func (c *Catalog) CreatePost(ctx context.Context, in model.PostInput) (model.Post, error) {
	p, err := c.BlogAPI.CreatePost(ctx, in)
	if err == nil {
		c.invalidate(ctx)
	}
	return p, err
}

func (c *Catalog) UpdatePost(ctx context.Context, id string, in model.PostInput) (model.Post, error) {
	p, err := c.BlogAPI.UpdatePost(ctx, id, in)
	if err == nil {
		c.invalidate(ctx)
	}
	return p, err
}

func (c *Catalog) DeletePost(ctx context.Context, id string) error {
	err := c.BlogAPI.DeletePost(ctx, id)
	if err == nil {
		c.invalidate(ctx)
	}
	return err
}

// Post counts per category change with posts too.
func (c *Catalog) invalidate(ctx context.Context) {
	if _, err := c.store.Delete(ctx, FeaturedKey, CategoriesKey); err != nil {
		c.logger.WarnContext(ctx, "catalog invalidation failed", "error", err, "error_type", obserrors.Classify(err))
	}
}

func readThrough[T any](ctx context.Context, c *Catalog, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if raw, err := c.store.Get(ctx, key); err != nil {
		c.logger.WarnContext(ctx, "catalog cache read failed", "key", key, "error", err, "error_type", obserrors.Classify(err))
	} else if raw != nil {
		var cached []T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		c.logger.DebugContext(ctx, "discarding undecodable catalog entry", "key", key)
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return items, nil
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "catalog cache write failed", "key", key, "error", err, "error_type", obserrors.Classify(err))
	}
	return items, nil
}
