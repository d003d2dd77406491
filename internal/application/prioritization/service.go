package prioritization

import (
	"context"
	"fmt"
	"time"

	"github.com/turtacn/admet-prioritizer/internal/domain/candidate"
	"github.com/turtacn/admet-prioritizer/internal/domain/molecule"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
	"github.com/turtacn/admet-prioritizer/pkg/types/common"
)

// Service runs analysis requests.
type Service interface {
	// Analyze runs the pipeline for req.  Unready input, schema errors and
	// malformed tables abort before evaluation; per-record problems never
	// abort and are reported in the Report instead.
	Analyze(ctx context.Context, req *AnalysisRequest) (*Report, error)
}

type serviceImpl struct {
	interp  molecule.Interpreter
	metrics *prometheus.AppMetrics
	logger  logging.Logger
	now     func() time.Time
}

// NewService constructs the pipeline service.  metrics may be nil.
func NewService(interp molecule.Interpreter, metrics *prometheus.AppMetrics, logger logging.Logger) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		interp:  interp,
		metrics: metrics,
		logger:  logger.Named("prioritization"),
		now:     time.Now,
	}
}

func (s *serviceImpl) Analyze(ctx context.Context, req *AnalysisRequest) (report *Report, err error) {
	if req == nil {
		return nil, errors.Unready("Please provide input data to start analysis.")
	}
	started := s.now()
	runID := common.NewID()
	log := s.logger.With(logging.String("run_id", string(runID)), logging.String("source", string(req.Source)))

	defer func() {
		if r := recover(); r != nil {
			log.Error("analysis aborted", logging.Any("panic", r))
			report, err = nil, errors.Newf(errors.CodePipeline, "An error occurred during analysis: %v", r)
		}
		s.observe(req, report, err, s.now().Sub(started))
	}()

	records, err := s.readInput(req)
	if err != nil {
		if errors.IsUnready(err) {
			log.Info("analysis not started", logging.String("reason", err.Error()))
		} else {
			log.Warn("input rejected", logging.Err(err))
		}
		return nil, err
	}

	evaluator, err := candidate.NewEvaluator(s.interp, req.Options.Evaluation, log)
	if err != nil {
		return nil, err
	}
	evaluated, failures, err := evaluator.EvaluateAll(ctx, records)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePipeline, "analysis interrupted")
	}

	report = &Report{
		RunID:      runID,
		Source:     req.Source,
		Candidates: candidate.Rank(evaluated),
		Failures:   failures,
		Options:    req.Options,
		CreatedAt:  started.UTC(),
		Duration:   s.now().Sub(started),
	}
	log.Info("analysis complete",
		logging.Int("total", len(report.Candidates)),
		logging.Int("passed", report.PassCount()),
		logging.Int("failed", report.FailCount()),
		logging.Int("invalid", report.InvalidCount()),
		logging.Int("record_failures", len(failures)),
		logging.Duration("duration", report.Duration))
	return report, nil
}

func (s *serviceImpl) readInput(req *AnalysisRequest) ([]candidate.CandidateRecord, error) {
	n := &Normalizer{
		StructureColumn: req.Options.StructureColumn,
		ScoreColumn:     req.Options.ScoreColumn,
		MaxRecords:      req.Options.MaxRecords,
	}
	switch req.Source {
	case ctypes.SourceExample:
		return n.NormalizeText(ExampleData)
	case ctypes.SourcePaste:
		return n.NormalizeText(req.Text)
	case ctypes.SourceUpload:
		if req.Upload == nil {
			return nil, errors.Unready("Please upload a CSV file to start analysis.")
		}
		return n.Normalize(req.Upload)
	case "":
		return nil, errors.Unready("Please provide input data to start analysis.")
	default:
		return nil, errors.InvalidParam(fmt.Sprintf("unknown input source %q", req.Source))
	}
}

func (s *serviceImpl) observe(req *AnalysisRequest, report *Report, err error, d time.Duration) {
	if s.metrics == nil {
		return
	}
	obs := prometheus.RunObservation{Source: string(req.Source), Duration: d}
	switch {
	case err == nil && report != nil:
		obs.Outcome = prometheus.OutcomeCompleted
		obs.Records = len(report.Candidates)
		obs.ByStatus = report.StatusCounts()
		obs.Failures = map[string]int{}
		for _, f := range report.Failures {
			obs.Failures[string(f.Code)]++
		}
		for _, c := range report.Candidates {
			if c.ParseStatus == ctypes.ParseParseable && !c.IsRecordFailure() {
				obs.Drawable++
				if len(c.Depiction) > 0 {
					obs.Depictions++
				}
			}
		}
		if req.Options.Evaluation.SkipDepictions {
			obs.Drawable = obs.Depictions
		}
	case errors.IsCode(err, errors.CodePipeline):
		obs.Outcome = prometheus.OutcomeError
	default:
		obs.Outcome = prometheus.OutcomeRejected
	}
	s.metrics.RecordRun(obs)
}

//Personal.AI order the ending
