package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

func TestCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewCache(time.Minute, time.Minute, nil)

	data := []byte("payload")
	require.NoError(t, c.Set(ctx, "k", data, 0))
	data[0] = 'X'

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	n, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.True(t, errors.IsNotFound(err))
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewCache(time.Minute, 0, nil)

	require.NoError(t, c.Set(ctx, "short", []byte("x"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "short")
	assert.Equal(t, ErrCacheMiss, err)
}

func TestCache_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewCache(time.Minute, 0, nil)

	assert.ErrorIs(t, c.Set(ctx, "k", []byte("x"), 0), context.Canceled)
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCache_Flush(t *testing.T) {
	ctx := context.Background()
	c := NewCache(0, 0, nil)
	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))

	c.Flush()
	n, _ := c.Count(ctx)
	assert.Zero(t, n)
}

//Personal.AI order the ending
