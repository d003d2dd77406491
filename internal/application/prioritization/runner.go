package prioritization

import (
	"context"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	"github.com/turtacn/admet-prioritizer/pkg/types/common"
)

// RunResult is a finished run together with its publication outcome.
type RunResult struct {
	Report *Report

	// Published is nil when no publisher is configured.
	Published *PublishResult

	// PublishErr is the publication failure, if any.  The run itself still
	// succeeded.
	PublishErr error
}

// Runner analyzes a request, keeps the report for later downloads and hands
// it to the publisher.  Both the store and the publisher are optional.
type Runner struct {
	svc       Service
	store     RunStore
	backend   string
	publisher *Publisher
	metrics   *prometheus.AppMetrics
	logger    logging.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunStore keeps every report in store.  backend labels the store in
// metrics.
func WithRunStore(store RunStore, backend string) RunnerOption {
	return func(r *Runner) {
		r.store = store
		r.backend = backend
	}
}

// WithPublisher publishes every report through p.
func WithPublisher(p *Publisher) RunnerOption {
	return func(r *Runner) { r.publisher = p }
}

// WithRunnerMetrics reports the stored run count to m.
func WithRunnerMetrics(m *prometheus.AppMetrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner wraps svc.
func NewRunner(svc Service, logger logging.Logger, opts ...RunnerOption) *Runner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	r := &Runner{svc: svc, logger: logger.Named("runner")}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run analyzes req.  A failure to store the report fails the run, because
// its downloads would not resolve; a failure to publish does not.
func (r *Runner) Run(ctx context.Context, req *AnalysisRequest) (*RunResult, error) {
	report, err := r.svc.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	res := &RunResult{Report: report}

	if r.store != nil {
		if err := r.store.Save(ctx, report); err != nil {
			return nil, err
		}
		r.observeStore(ctx)
	}

	if r.publisher.Enabled() {
		res.Published, res.PublishErr = r.publisher.Publish(ctx, report)
		if res.PublishErr != nil {
			r.logger.Warn("run not fully published",
				logging.String("run_id", string(report.RunID)), logging.Err(res.PublishErr))
		}
	}
	return res, nil
}

// Lookup returns a stored report.
func (r *Runner) Lookup(ctx context.Context, id common.ID) (*Report, error) {
	if r.store == nil {
		return nil, errors.Newf(errors.CodeRunNotFound, "run %s not found or expired", id)
	}
	return r.store.Get(ctx, id)
}

// Stored reports whether finished runs are kept for download.
func (r *Runner) Stored() bool { return r.store != nil }

func (r *Runner) observeStore(ctx context.Context) {
	if r.metrics == nil {
		return
	}
	n, err := r.store.Count(ctx)
	if err != nil {
		r.logger.Debug("cannot count stored runs", logging.Err(err))
		return
	}
	r.metrics.SetStoredRuns(r.backend, n)
}

//Personal.AI order the ending
