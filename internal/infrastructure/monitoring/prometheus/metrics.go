package prometheus

import (
	"strconv"
	"time"
)

// Bucket layouts.
var (
	HTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	RunDurationBuckets  = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}
	RunSizeBuckets      = []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000}
)

// AppMetrics holds the service's instruments.
type AppMetrics struct {
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	RunsTotal         CounterVec
	RunDuration       HistogramVec
	RunRecords        HistogramVec
	CandidatesTotal   CounterVec
	RecordFailures    CounterVec
	DepictionFailures CounterVec

	StoredRuns      GaugeVec
	PublishTotal    CounterVec
	PublishDuration HistogramVec
}

// NewAppMetrics registers every instrument on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal:   collector.RegisterCounter("http_requests_total", "HTTP requests served", "method", "path", "status_code"),
		HTTPRequestDuration: collector.RegisterHistogram("http_request_duration_seconds", "HTTP request latency", HTTPDurationBuckets, "method", "path"),
		HTTPActiveRequests:  collector.RegisterGauge("http_active_requests", "HTTP requests in flight", "method"),

		RunsTotal:         collector.RegisterCounter("runs_total", "Analysis runs by input source and outcome", "source", "outcome"),
		RunDuration:       collector.RegisterHistogram("run_duration_seconds", "Analysis run latency", RunDurationBuckets, "source"),
		RunRecords:        collector.RegisterHistogram("run_records", "Records per analysis run", RunSizeBuckets, "source"),
		CandidatesTotal:   collector.RegisterCounter("candidates_total", "Evaluated candidates by status", "status"),
		RecordFailures:    collector.RegisterCounter("record_failures_total", "Records that failed in isolation", "code"),
		DepictionFailures: collector.RegisterCounter("depiction_failures_total", "Interpretable structures without a depiction"),

		StoredRuns:      collector.RegisterGauge("stored_runs", "Runs held in the artifact store", "backend"),
		PublishTotal:    collector.RegisterCounter("publish_total", "Artifact and event publications", "sink", "outcome"),
		PublishDuration: collector.RegisterHistogram("publish_duration_seconds", "Publication latency", HTTPDurationBuckets, "sink"),
	}
}

// RecordHTTPRequest records one served request.
func (m *AppMetrics) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RunObservation is what one finished (or aborted) run reports.
type RunObservation struct {
	Source     string
	Outcome    string
	Duration   time.Duration
	Records    int
	ByStatus   map[string]int
	Failures   map[string]int
	Depictions int
	Drawable   int
}

// Run outcomes.
const (
	OutcomeCompleted = "completed"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)

// RecordRun records a run.
func (m *AppMetrics) RecordRun(o RunObservation) {
	m.RunsTotal.WithLabelValues(o.Source, o.Outcome).Inc()
	m.RunDuration.WithLabelValues(o.Source).Observe(o.Duration.Seconds())
	if o.Outcome != OutcomeCompleted {
		return
	}
	m.RunRecords.WithLabelValues(o.Source).Observe(float64(o.Records))
	for status, n := range o.ByStatus {
		m.CandidatesTotal.WithLabelValues(status).Add(float64(n))
	}
	for code, n := range o.Failures {
		m.RecordFailures.WithLabelValues(code).Add(float64(n))
	}
	if missing := o.Drawable - o.Depictions; missing > 0 {
		m.DepictionFailures.WithLabelValues().Add(float64(missing))
	}
}

// SetStoredRuns reports the number of runs held by an artifact backend.
func (m *AppMetrics) SetStoredRuns(backend string, n int) {
	m.StoredRuns.WithLabelValues(backend).Set(float64(n))
}

// RecordPublish records one publication to sink ("minio", "kafka").
func (m *AppMetrics) RecordPublish(sink string, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.PublishTotal.WithLabelValues(sink, outcome).Inc()
	m.PublishDuration.WithLabelValues(sink).Observe(d.Seconds())
}

//Personal.AI order the ending
