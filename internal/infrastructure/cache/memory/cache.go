// Package memory provides an in-process TTL blob cache backed by go-cache.
// It is the default run store backend of a single api server.
package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

// ErrCacheMiss is returned by Get for absent or expired keys.
var ErrCacheMiss = errors.New(errors.CodeNotFound, "cache miss")

// Cache is a TTL cache of byte slices.
type Cache struct {
	c      *gocache.Cache
	logger logging.Logger
}

// NewCache creates a cache whose entries default to ttl and are swept every
// cleanupInterval.  A non-positive ttl keeps entries until deleted.
func NewCache(ttl, cleanupInterval time.Duration, logger logging.Logger) *Cache {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	c := gocache.New(ttl, cleanupInterval)
	c.OnEvicted(func(key string, _ interface{}) {
		logger.Debug("cache entry evicted", logging.String("key", key))
	})
	return &Cache{c: c, logger: logger}
}

// Set stores a copy of data.  ttl of zero uses the cache default.
func (m *Cache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m.c.Set(key, buf, ttl)
	return nil
}

// Get returns the stored bytes or ErrCacheMiss.
func (m *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := m.c.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	return v.([]byte), nil
}

func (m *Cache) Delete(ctx context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

// Count includes expired entries not yet swept.
func (m *Cache) Count(ctx context.Context) (int, error) {
	return m.c.ItemCount(), nil
}

// Flush drops every entry.
func (m *Cache) Flush() { m.c.Flush() }

//Personal.AI order the ending
