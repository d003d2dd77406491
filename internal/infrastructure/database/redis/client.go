package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/admet-prioritizer/internal/config"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

var (
	ErrClientClosed     = errors.New(errors.CodeUnavailable, "redis client is closed")
	ErrConnectionFailed = errors.New(errors.CodeUnavailable, "redis connection failed")
)

// Client wraps a go-redis client and refuses commands once closed.
type Client struct {
	rdb    redis.UniversalClient
	cfg    config.RedisConfig
	logger logging.Logger
	mu     sync.RWMutex
	closed bool
}

// NewClient connects to the configured server and pings it once.
func NewClient(cfg config.RedisConfig, log logging.Logger) (*Client, error) {
	applyDefaults(&cfg)
	if log == nil {
		log = logging.NewNopLogger()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	c := &Client{rdb: rdb, cfg: cfg, logger: log}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		_ = rdb.Close()
		return nil, ErrConnectionFailed.WithCause(err)
	}

	log.Info("Redis client connected", logging.String("addr", cfg.Addr), logging.Int("db", cfg.DB))
	return c, nil
}

// newClientFromRDB wraps an existing go-redis client without pinging it.
func newClientFromRDB(rdb redis.UniversalClient, cfg config.RedisConfig, log logging.Logger) *Client {
	applyDefaults(&cfg)
	return &Client{rdb: rdb, cfg: cfg, logger: log}
}

func applyDefaults(cfg *config.RedisConfig) {
	if cfg.Addr == "" {
		cfg.Addr = config.DefaultRedisAddr
	}
	if cfg.PoolSize == 0 {
		cfg.PoolSize = config.DefaultRedisPoolSize
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = config.DefaultRedisTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = config.DefaultRedisTimeout
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = config.DefaultRedisKeyPrefix
	}
}

// KeyPrefix is the namespace applied to every cache key.
func (c *Client) KeyPrefix() string { return c.cfg.KeyPrefix }

func (c *Client) Ping(ctx context.Context) error {
	if c.isClosed() {
		return ErrClientClosed
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	err := c.rdb.Close()
	if err == nil {
		c.logger.Info("Closed Redis client")
	} else {
		c.logger.Error("Failed to close Redis client", logging.Err(err))
	}
	return err
}

// Underlying exposes the go-redis client for commands the wrapper lacks.
func (c *Client) Underlying() redis.UniversalClient { return c.rdb }

func (c *Client) Get(ctx context.Context, key string) *redis.StringCmd {
	if c.isClosed() {
		cmd := redis.NewStringCmd(ctx)
		cmd.SetErr(ErrClientClosed)
		return cmd
	}
	return c.rdb.Get(ctx, key)
}

func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if c.isClosed() {
		cmd := redis.NewStatusCmd(ctx)
		cmd.SetErr(ErrClientClosed)
		return cmd
	}
	return c.rdb.Set(ctx, key, value, expiration)
}

func (c *Client) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if c.isClosed() {
		return closedIntCmd(ctx)
	}
	return c.rdb.Del(ctx, keys...)
}

func (c *Client) Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd {
	if c.isClosed() {
		cmd := redis.NewScanCmd(ctx, nil)
		cmd.SetErr(ErrClientClosed)
		return cmd
	}
	return c.rdb.Scan(ctx, cursor, match, count)
}

func (c *Client) TTL(ctx context.Context, key string) *redis.DurationCmd {
	if c.isClosed() {
		cmd := redis.NewDurationCmd(ctx, 0)
		cmd.SetErr(ErrClientClosed)
		return cmd
	}
	return c.rdb.TTL(ctx, key)
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func closedIntCmd(ctx context.Context) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	cmd.SetErr(ErrClientClosed)
	return cmd
}

//Personal.AI order the ending
