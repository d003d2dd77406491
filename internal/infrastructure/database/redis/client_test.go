package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/admet-prioritizer/internal/config"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient(config.RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestNewClient_Success(t *testing.T) {
	client, _ := newTestClient(t)
	assert.NoError(t, client.Underlying().Ping(context.Background()).Err())
	assert.Equal(t, config.DefaultRedisKeyPrefix, client.KeyPrefix())
}

func TestNewClient_ConnectionFailed(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := NewClient(config.RedisConfig{Addr: addr}, logging.NewNopLogger())
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, errors.IsCode(err, errors.CodeUnavailable))
}

func TestClient_Operations(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "foo", "bar", 0).Err())
	val, err := client.Get(ctx, "foo").Result()
	require.NoError(t, err)
	assert.Equal(t, "bar", val)

	deleted, err := client.Del(ctx, "foo").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestClient_Close(t *testing.T) {
	client, _ := newTestClient(t)

	assert.NoError(t, client.Close())
	assert.NoError(t, client.Close())

	assert.Equal(t, ErrClientClosed, client.Get(context.Background(), "foo").Err())
	assert.Equal(t, ErrClientClosed, client.Ping(context.Background()))
}

//Personal.AI order the ending
