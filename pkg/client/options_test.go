package client

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	logger := &testLogger{}
	c, err := NewClient("https://prioritizer.local",
		WithHTTPClient(hc),
		WithLogger(logger),
		WithRetryMax(5),
		WithRetryWait(time.Second, 10*time.Second),
		WithUserAgent("bench/1.0"),
		WithAPIKey("secret"),
	)
	require.NoError(t, err)
	assert.Same(t, hc, c.httpClient)
	assert.Same(t, logger, c.logger)
	assert.Equal(t, 5, c.retryMax)
	assert.Equal(t, time.Second, c.retryWaitMin)
	assert.Equal(t, 10*time.Second, c.retryWaitMax)
	assert.Equal(t, "bench/1.0", c.userAgent)
	assert.Equal(t, "secret", c.apiKey)
}

func TestOptions_IgnoreInvalidValues(t *testing.T) {
	c, err := NewClient("http://prioritizer.local",
		WithHTTPClient(nil),
		WithLogger(nil),
		WithRetryMax(-1),
		WithRetryWait(2*time.Second, time.Second),
		WithUserAgent(""),
	)
	require.NoError(t, err)
	assert.NotNil(t, c.httpClient)
	assert.NotNil(t, c.logger)
	assert.Equal(t, 3, c.retryMax)
	assert.Equal(t, 2*time.Second, c.retryWaitMin)
	assert.Equal(t, 5*time.Second, c.retryWaitMax)
	assert.Contains(t, c.userAgent, "prioritizer-go-client/")

	c, err = NewClient("http://prioritizer.local", WithRetryWait(0, time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, c.retryWaitMin)
}

func TestWithAPIKey_SetsBearer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}, WithAPIKey("k"))
	_, err := c.Ready(context.Background())
	require.NoError(t, err)
}

//Personal.AI order the ending
