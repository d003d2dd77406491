package client

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/admet-prioritizer/pkg/errors"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithRetryWait(time.Millisecond, 5*time.Millisecond)}, opts...)
	client, err := NewClient(server.URL, opts...)
	require.NoError(t, err)
	return client
}

type testLogger struct {
	mu      sync.Mutex
	lastMsg string
	count   int32
}

func (l *testLogger) Debugf(format string, args ...interface{}) { l.log(format, args...) }
func (l *testLogger) Infof(format string, args ...interface{})  { l.log(format, args...) }
func (l *testLogger) Errorf(format string, args ...interface{}) { l.log(format, args...) }
func (l *testLogger) log(format string, args ...interface{}) {
	atomic.AddInt32(&l.count, 1)
	l.mu.Lock()
	l.lastMsg = fmt.Sprintf(format, args...)
	l.mu.Unlock()
}

func writeError(w http.ResponseWriter, status int, code, msg, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"code": code, "message": msg, "detail": detail})
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("http://prioritizer.local:8501/")
	require.NoError(t, err)
	assert.Equal(t, "http://prioritizer.local:8501", c.BaseURL())
	assert.Equal(t, 3, c.retryMax)
	assert.Contains(t, c.userAgent, "prioritizer-go-client/")

	for _, bad := range []string{"", "ftp://host", "not a url"} {
		_, err := NewClient(bad)
		require.Error(t, err, bad)
		assert.Equal(t, errors.CodeInvalidParam, errors.GetCode(err))
	}
}

func TestPrioritizeExample(t *testing.T) {
	var got ctypes.PrioritizeRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/prioritize", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ctypes.PrioritizeResponse{
			Summary: ctypes.RunSummaryDTO{RunID: "r1", Total: 6, Passed: 4, Invalid: 2},
		})
	})

	resp, err := c.PrioritizeExample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "example", got.Source)
	assert.Equal(t, 4, resp.Summary.Passed)
}

func TestPrioritizeCSV_SchemaError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, string(errors.CodeSchema), "Input data must contain 'SMILES' and 'Docking_Score' columns.", "")
	})

	_, err := c.PrioritizeCSV(context.Background(), "a,b\n1,2\n")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, string(errors.CodeSchema), apiErr.Code)
	assert.False(t, apiErr.IsUnready())
}

func TestAPIError_Unready(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusUnprocessableEntity, string(errors.CodeUnreadyInput), "Please upload a CSV file to start analysis.", "")
	})
	_, err := c.Prioritize(context.Background(), ctypes.PrioritizeRequest{Source: "paste"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsUnready())
	assert.Contains(t, apiErr.Error(), "Please upload a CSV file")
}

func TestGetRun_NotFound(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/api/v1/runs/abc", r.URL.Path)
		writeError(w, http.StatusNotFound, string(errors.CodeRunNotFound), "run abc not found or expired", "")
	})

	_, err := c.GetRun(context.Background(), "abc")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "4xx must not be retried")
}

func TestExportCSVAndDepiction(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/runs/r1/export.csv":
			assert.Equal(t, "text/csv", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte("SMILES,Docking_Score\n"))
		case "/runs/r1/depictions/2.png":
			_, _ = w.Write([]byte("\x89PNG"))
		default:
			http.NotFound(w, r)
		}
	})

	data, err := c.ExportCSV(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "SMILES,Docking_Score\n", string(data))

	png, err := c.Depiction(context.Background(), "r1", 2)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(png))

	_, err = c.Depiction(context.Background(), "r1", 9)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "404 page not found", apiErr.Message)
}

func TestRetry_ServerErrors(t *testing.T) {
	var calls int32
	logger := &testLogger{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			writeError(w, http.StatusInternalServerError, "COMMON_001", "internal server error", "")
			return
		}
		_ = json.NewEncoder(w).Encode(HealthStatus{Status: "ready"})
	}, WithLogger(logger))

	hs, err := c.Ready(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ready", hs.Status)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Greater(t, atomic.LoadInt32(&logger.count), int32(0))
}

func TestRetry_Exhausted(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeError(w, http.StatusServiceUnavailable, "COMMON_008", "not ready", "")
	}, WithRetryMax(2))

	_, err := c.Ready(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsServerError())
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetry_RateLimited(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(ctypes.PrioritizeResponse{})
	})

	_, err := c.GetRun(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.GetRun(ctx, "r1")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := NewClient(url, WithRetryMax(1), WithRetryWait(time.Millisecond, time.Millisecond))
	require.NoError(t, err)
	_, err = c.GetRun(context.Background(), "r1")
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, stderrors.As(err, &apiErr))
}

func TestCalculateBackoff(t *testing.T) {
	c := &Client{retryWaitMin: 100 * time.Millisecond, retryWaitMax: 300 * time.Millisecond}
	b1 := c.calculateBackoff(1)
	assert.GreaterOrEqual(t, b1, 100*time.Millisecond)
	assert.Less(t, b1, 125*time.Millisecond)

	b5 := c.calculateBackoff(5)
	assert.GreaterOrEqual(t, b5, 300*time.Millisecond)
	assert.Less(t, b5, 375*time.Millisecond)
}

//Personal.AI order the ending
