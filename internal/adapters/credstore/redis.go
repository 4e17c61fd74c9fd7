package credstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	"github.com/favoriteblog/blog-ui/internal/ports"
)

// DefaultRedisPrefix namespaces credential keys.
const DefaultRedisPrefix = "blogui:"

var _ ports.CredentialStore = (*RedisStore)(nil)

// RedisStore keeps the credential in Redis so several front-end processes share one session.
// When the credential is a JWT the key expires together with it.
type RedisStore struct {
	client redis.UniversalClient
	key    string
	now    func() time.Time
}

// NewRedisStore creates a Redis-backed store. Empty prefix/key use the defaults.
func NewRedisStore(client redis.UniversalClient, prefix, key string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{client: client, key: prefix + key, now: time.Now}
}

// Key returns the full Redis key.
func (s *RedisStore) Key() string { return s.key }

func (s *RedisStore) Load(ctx context.Context) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	if v == "" {
		return "", false, nil
	}
	return v, true, nil
}

func (s *RedisStore) Save(ctx context.Context, credential string) error {
	if credential == "" {
		return errors.New("credential cannot be empty")
	}
	var ttl time.Duration
	if exp, ok := domainauth.CredentialExpiry(credential); ok {
		ttl = exp.Sub(s.now())
		if ttl <= 0 {
			return errors.New("credential is expired")
		}
	}
	if err := s.client.Set(ctx, s.key, credential, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
