package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/admet-prioritizer/internal/application/prioritization"
	"github.com/turtacn/admet-prioritizer/internal/domain/molecule"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/cache/memory"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/admet-prioritizer/internal/interfaces/http/handlers"
	"github.com/turtacn/admet-prioritizer/internal/interfaces/http/middleware"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

func newTestRouter(t *testing.T) (http.Handler, prometheus.MetricsCollector) {
	t.Helper()
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "test"}, nil)
	require.NoError(t, err)
	metrics := prometheus.NewAppMetrics(collector)

	store := prioritization.NewRunStore(memory.NewCache(time.Minute, 0, nil), time.Minute, nil)
	svc := prioritization.NewService(molecule.NewService(nil, nil), metrics, nil)
	runner := prioritization.NewRunner(svc, nil, prioritization.WithRunStore(store, "memory"))
	options := func() prioritization.Options { return prioritization.DefaultOptions() }

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = []string{"https://lab.example.org"}

	return NewRouter(RouterConfig{
		PageHandler:       handlers.NewPageHandler(runner, options, 1<<20, nil),
		PrioritizeHandler: handlers.NewPrioritizeHandler(runner, options, 1<<20, nil),
		ArtifactHandler:   handlers.NewArtifactHandler(runner, nil),
		HealthHandler:     handlers.NewHealthHandler("test"),
		CORS:              cors,
		Logging:           middleware.DefaultLoggingConfig(),
		Metrics:           metrics,
		MetricsCollector:  collector,
	}), collector
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_EndToEnd(t *testing.T) {
	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/prioritize", strings.NewReader(`{"source":"example"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(h, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var resp ctypes.PrioritizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, link := range []string{resp.Links["self"], resp.Links["export"], resp.Links["chart_scatter"], resp.Links["chart_violations"], resp.Candidates[0].DepictionURL} {
		w := serve(h, httptest.NewRequest(http.MethodGet, link, nil))
		assert.Equal(t, http.StatusOK, w.Code, link)
	}
}

func TestRouter_Probes(t *testing.T) {
	h, _ := newTestRouter(t)
	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/readyz", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	assert.Equal(t, http.StatusNotFound, serve(h, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)).Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	h, _ := newTestRouter(t)
	w := serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/prioritize", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_Metrics(t *testing.T) {
	h, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/prioritize", strings.NewReader(`{"source":"paste","data":"x,y\n"}`))
	req.Header.Set("Content-Type", "application/json")
	serve(h, req)

	w := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.Contains(t, body, `test_http_requests_total{method="POST",path="/api/v1/prioritize",status_code="400"} 1`)
	assert.Contains(t, body, `test_runs_total{outcome="rejected",source="paste"} 1`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	h, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/prioritize", nil)
	req.Header.Set("Origin", "https://lab.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := serve(h, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://lab.example.org", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_DebugProfiler(t *testing.T) {
	h := NewRouter(RouterConfig{Debug: true})
	w := serve(h, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

//Personal.AI order the ending
