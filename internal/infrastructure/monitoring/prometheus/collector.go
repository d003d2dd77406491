// Package prometheus exposes the service's metrics through a private
// Prometheus registry.  Callers depend on the small vector interfaces below so
// that a disabled or failed registration degrades to no-op instruments.
package prometheus

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
)

// MetricsCollector registers instruments and serves the scrape endpoint.
type MetricsCollector interface {
	RegisterCounter(name, help string, labels ...string) CounterVec
	RegisterGauge(name, help string, labels ...string) GaugeVec
	RegisterHistogram(name, help string, buckets []float64, labels ...string) HistogramVec
	Handler() http.Handler
	Gatherer() prometheus.Gatherer
}

// CounterVec is a labelled counter family.
type CounterVec interface {
	WithLabelValues(lvs ...string) Counter
}

// Counter only goes up.
type Counter interface {
	Inc()
	Add(delta float64)
}

// GaugeVec is a labelled gauge family.
type GaugeVec interface {
	WithLabelValues(lvs ...string) Gauge
}

// Gauge can go up and down.
type Gauge interface {
	Set(value float64)
	Inc()
	Dec()
}

// HistogramVec is a labelled histogram family.
type HistogramVec interface {
	WithLabelValues(lvs ...string) Histogram
}

// Histogram observes samples into buckets.
type Histogram interface {
	Observe(value float64)
}

// CollectorConfig configures the registry.
type CollectorConfig struct {
	Namespace            string
	Subsystem            string
	EnableProcessMetrics bool
	EnableGoMetrics      bool
	DefaultBuckets       []float64
	ConstLabels          map[string]string
}

type registryCollector struct {
	registry *prometheus.Registry
	cfg      CollectorConfig
	logger   logging.Logger

	mu         sync.Mutex
	registered map[string]prometheus.Collector
}

// NewMetricsCollector creates a collector backed by a fresh registry.
func NewMetricsCollector(cfg CollectorConfig, logger logging.Logger) (MetricsCollector, error) {
	if cfg.Namespace == "" {
		return nil, fmt.Errorf("namespace is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	registry := prometheus.NewRegistry()
	if cfg.EnableProcessMetrics {
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: cfg.Namespace}))
	}
	if cfg.EnableGoMetrics {
		registry.MustRegister(collectors.NewGoCollector())
	}
	if cfg.DefaultBuckets == nil {
		cfg.DefaultBuckets = prometheus.DefBuckets
	}

	return &registryCollector{
		registry:   registry,
		cfg:        cfg,
		logger:     logger,
		registered: make(map[string]prometheus.Collector),
	}, nil
}

func (c *registryCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (c *registryCollector) Gatherer() prometheus.Gatherer { return c.registry }

// register returns the collector already registered under name, if any, so
// repeated registration is idempotent.
func (c *registryCollector) register(name string, col prometheus.Collector) (prometheus.Collector, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fq := prometheus.BuildFQName(c.cfg.Namespace, c.cfg.Subsystem, name)
	if existing, ok := c.registered[fq]; ok {
		return existing, nil
	}
	if err := c.registry.Register(col); err != nil {
		return nil, err
	}
	c.registered[fq] = col
	return col, nil
}

func (c *registryCollector) RegisterCounter(name, help string, labels ...string) CounterVec {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.cfg.Namespace, Subsystem: c.cfg.Subsystem,
		Name: name, Help: help, ConstLabels: c.cfg.ConstLabels,
	}, labels)
	got, err := c.register(name, vec)
	if err != nil {
		c.logger.Error("register counter", logging.String("name", name), logging.Err(err))
		return noopCounterVec{}
	}
	v, ok := got.(*prometheus.CounterVec)
	if !ok {
		c.logger.Warn("metric type mismatch", logging.String("name", name), logging.String("want", "counter"))
		return noopCounterVec{}
	}
	return counterVec{v}
}

func (c *registryCollector) RegisterGauge(name, help string, labels ...string) GaugeVec {
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: c.cfg.Namespace, Subsystem: c.cfg.Subsystem,
		Name: name, Help: help, ConstLabels: c.cfg.ConstLabels,
	}, labels)
	got, err := c.register(name, vec)
	if err != nil {
		c.logger.Error("register gauge", logging.String("name", name), logging.Err(err))
		return noopGaugeVec{}
	}
	v, ok := got.(*prometheus.GaugeVec)
	if !ok {
		c.logger.Warn("metric type mismatch", logging.String("name", name), logging.String("want", "gauge"))
		return noopGaugeVec{}
	}
	return gaugeVec{v}
}

func (c *registryCollector) RegisterHistogram(name, help string, buckets []float64, labels ...string) HistogramVec {
	if buckets == nil {
		buckets = c.cfg.DefaultBuckets
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: c.cfg.Namespace, Subsystem: c.cfg.Subsystem,
		Name: name, Help: help, ConstLabels: c.cfg.ConstLabels, Buckets: buckets,
	}, labels)
	got, err := c.register(name, vec)
	if err != nil {
		c.logger.Error("register histogram", logging.String("name", name), logging.Err(err))
		return noopHistogramVec{}
	}
	v, ok := got.(*prometheus.HistogramVec)
	if !ok {
		c.logger.Warn("metric type mismatch", logging.String("name", name), logging.String("want", "histogram"))
		return noopHistogramVec{}
	}
	return histogramVec{v}
}

type nopCollector struct{}

// NewNopCollector returns a collector whose instruments record nothing and
// whose handler answers 404; used when metrics are disabled.
func NewNopCollector() MetricsCollector { return nopCollector{} }

func (nopCollector) RegisterCounter(string, string, ...string) CounterVec { return noopCounterVec{} }
func (nopCollector) RegisterGauge(string, string, ...string) GaugeVec     { return noopGaugeVec{} }
func (nopCollector) RegisterHistogram(string, string, []float64, ...string) HistogramVec {
	return noopHistogramVec{}
}
func (nopCollector) Handler() http.Handler         { return http.NotFoundHandler() }
func (nopCollector) Gatherer() prometheus.Gatherer { return prometheus.NewRegistry() }

type counterVec struct{ v *prometheus.CounterVec }

func (c counterVec) WithLabelValues(lvs ...string) Counter { return c.v.WithLabelValues(lvs...) }

type gaugeVec struct{ v *prometheus.GaugeVec }

func (g gaugeVec) WithLabelValues(lvs ...string) Gauge { return g.v.WithLabelValues(lvs...) }

type histogramVec struct{ v *prometheus.HistogramVec }

func (h histogramVec) WithLabelValues(lvs ...string) Histogram { return h.v.WithLabelValues(lvs...) }

type noopCounterVec struct{}

func (noopCounterVec) WithLabelValues(...string) Counter { return noopInstrument{} }

type noopGaugeVec struct{}

func (noopGaugeVec) WithLabelValues(...string) Gauge { return noopInstrument{} }

type noopHistogramVec struct{}

func (noopHistogramVec) WithLabelValues(...string) Histogram { return noopInstrument{} }

type noopInstrument struct{}

func (noopInstrument) Inc()            {}
func (noopInstrument) Dec()            {}
func (noopInstrument) Add(float64)     {}
func (noopInstrument) Set(float64)     {}
func (noopInstrument) Observe(float64) {}

// Timer observes elapsed wall time into a histogram.
type Timer struct {
	h     Histogram
	start time.Time
}

// NewTimer starts a timer.
func NewTimer(h Histogram) *Timer { return &Timer{h: h, start: time.Now()} }

// ObserveDuration records the elapsed time in seconds and returns it.
func (t *Timer) ObserveDuration() time.Duration {
	d := time.Since(t.start)
	if t.h != nil {
		t.h.Observe(d.Seconds())
	}
	return d
}

//Personal.AI order the ending
