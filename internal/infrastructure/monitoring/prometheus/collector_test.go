package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "test", Subsystem: "unit"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func scrape(t *testing.T, c MetricsCollector) string {
	t.Helper()
	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewMetricsCollector_RequiresNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{}, nil)
	assert.Error(t, err)
}

func TestNewMetricsCollector_ProcessMetrics(t *testing.T) {
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "test", EnableProcessMetrics: true, EnableGoMetrics: true}, nil)
	require.NoError(t, err)
	out := scrape(t, c)
	assert.Contains(t, out, "go_goroutines")
}

func TestRegisterCounter(t *testing.T) {
	c := newTestCollector(t)
	vec := c.RegisterCounter("things_total", "Things", "kind")
	vec.WithLabelValues("a").Inc()
	vec.WithLabelValues("a").Add(2)

	out := scrape(t, c)
	assert.Contains(t, out, `test_unit_things_total{kind="a"} 3`)
}

func TestRegisterCounter_Idempotent(t *testing.T) {
	c := newTestCollector(t)
	first := c.RegisterCounter("dup_total", "Dup", "kind")
	second := c.RegisterCounter("dup_total", "Dup", "kind")
	first.WithLabelValues("x").Inc()
	second.WithLabelValues("x").Inc()

	out := scrape(t, c)
	assert.Contains(t, out, `test_unit_dup_total{kind="x"} 2`)
}

func TestRegister_TypeMismatchDegradesToNoop(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("shared", "Shared", "kind")

	g := c.RegisterGauge("shared", "Shared", "kind")
	assert.NotPanics(t, func() { g.WithLabelValues("x").Set(4) })
	h := c.RegisterHistogram("shared", "Shared", nil, "kind")
	assert.NotPanics(t, func() { h.WithLabelValues("x").Observe(1) })
}

func TestRegisterGaugeAndHistogram(t *testing.T) {
	c := newTestCollector(t)
	g := c.RegisterGauge("level", "Level", "name")
	g.WithLabelValues("q").Set(5)
	g.WithLabelValues("q").Dec()

	h := c.RegisterHistogram("latency_seconds", "Latency", []float64{1, 2}, "op")
	h.WithLabelValues("read").Observe(1.5)

	out := scrape(t, c)
	assert.Contains(t, out, `test_unit_level{name="q"} 4`)
	assert.Contains(t, out, `test_unit_latency_seconds_bucket{op="read",le="2"} 1`)

	n, err := testutil.GatherAndCount(c.Gatherer(), "test_unit_latency_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNopCollector(t *testing.T) {
	c := NewNopCollector()
	assert.NotPanics(t, func() {
		c.RegisterCounter("a", "a").WithLabelValues().Inc()
		c.RegisterGauge("b", "b").WithLabelValues().Set(1)
		c.RegisterHistogram("c", "c", nil).WithLabelValues().Observe(1)
	})
	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTimer(t *testing.T) {
	c := newTestCollector(t)
	h := c.RegisterHistogram("timer_seconds", "Timer", nil)
	timer := NewTimer(h.WithLabelValues())
	time.Sleep(time.Millisecond)
	assert.Greater(t, timer.ObserveDuration(), time.Duration(0))

	assert.NotPanics(t, func() { NewTimer(nil).ObserveDuration() })
}

//Personal.AI order the ending
