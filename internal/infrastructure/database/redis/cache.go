package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

var (
	ErrCacheMiss        = errors.New(errors.CodeNotFound, "cache miss")
	ErrCacheUnavailable = errors.New(errors.CodeUnavailable, "cache unavailable")
)

// Cache is a prefixed TTL blob cache shared by every api server replica.
type Cache struct {
	client     *Client
	logger     logging.Logger
	prefix     string
	defaultTTL time.Duration
	scanCount  int64
}

type CacheOption func(*Cache)

func WithPrefix(prefix string) CacheOption {
	return func(c *Cache) { c.prefix = prefix }
}

func WithDefaultTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.defaultTTL = ttl }
}

// NewCache uses the client's key prefix unless WithPrefix overrides it.
func NewCache(client *Client, log logging.Logger, opts ...CacheOption) *Cache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	c := &Cache{
		client:     client,
		logger:     log,
		prefix:     client.KeyPrefix(),
		defaultTTL: time.Hour,
		scanCount:  100,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) fullKey(key string) string { return c.prefix + key }

func (c *Cache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, c.fullKey(key), data, ttl).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to write to cache")
	}
	return nil
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to get from cache")
	}
	return data, nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.fullKey(key)).Err()
}

// Count scans the prefix; it is O(keyspace) and meant for health output.
func (c *Cache) Count(ctx context.Context) (int, error) {
	var (
		cursor uint64
		n      int
	)
	match := c.prefix + "*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, match, c.scanCount).Result()
		if err != nil {
			return n, errors.Wrap(err, errors.ErrCodeCacheError, "failed to scan cache")
		}
		n += len(keys)
		cursor = next
		if cursor == 0 {
			return n, nil
		}
	}
}

// TTL reports the remaining lifetime of key.
func (c *Cache) TTL(ctx context.Context, key string) (time.Duration, error) {
	return c.client.TTL(ctx, c.fullKey(key)).Result()
}

func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx); err != nil {
		return ErrCacheUnavailable.WithCause(err)
	}
	return nil
}

//Personal.AI order the ending
