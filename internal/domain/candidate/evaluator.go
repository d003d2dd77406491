package candidate

import (
	"context"
	"fmt"

	"github.com/turtacn/admet-prioritizer/internal/domain/molecule"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

// Options configures one evaluation run.  The value is copied into the
// Evaluator and never shared with other runs.
type Options struct {
	Rules          RuleSet
	Admet          AdmetHeuristic
	DepictionSize  int
	SkipDepictions bool
}

// DefaultOptions returns the standard thresholds and a 200px depiction.
func DefaultOptions() Options {
	return Options{
		Rules:         DefaultRuleSet(),
		Admet:         DefaultAdmetHeuristic(),
		DepictionSize: molecule.DefaultDepictionSize,
	}
}

// Evaluator turns CandidateRecords into EvaluatedCandidates.
type Evaluator struct {
	interp molecule.Interpreter
	opts   Options
	logger logging.Logger
}

// NewEvaluator constructs an Evaluator.
func NewEvaluator(interp molecule.Interpreter, opts Options, logger logging.Logger) (*Evaluator, error) {
	if interp == nil {
		return nil, errors.InvalidParam("structure interpreter is required")
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidParam, "invalid rule thresholds")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Evaluator{interp: interp, opts: opts, logger: logger}, nil
}

// Options returns the evaluator's options.
func (e *Evaluator) Options() Options { return e.opts }

// Evaluate evaluates one record.  It never fails: an uninterpretable
// structure yields an InvalidInput candidate, and any other problem,
// including a panic inside the interpreter, is captured as a record failure.
func (e *Evaluator) Evaluate(ctx context.Context, rec CandidateRecord) (out EvaluatedCandidate) {
	out = EvaluatedCandidate{Record: rec, ParseStatus: ctypes.ParseUnparseable, Classification: ctypes.ClassInvalidInput}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("record evaluation panicked",
				logging.Int("index", rec.Index),
				logging.String("smiles", rec.Structure),
				logging.Any("panic", r))
			out = e.failed(rec, out.ParseStatus, out.Assessment, fmt.Sprintf("unexpected error: %v", r))
		}
	}()

	interp, err := e.interp.Interpret(ctx, rec.Structure)
	if err != nil {
		if !errors.IsCode(err, errors.CodeInvalidSMILES) {
			return e.failed(rec, ctypes.ParseUnparseable, nil, err.Error())
		}
		e.logger.Warn("structure interpretation failed",
			logging.Int("index", rec.Index),
			logging.String("smiles", rec.Structure),
			logging.Err(err))
		out.Failure = err.Error()
		out.FailureCode = errors.CodeInvalidSMILES
		return out
	}

	d := interp.Descriptors
	breaches := e.opts.Rules.Breaches(d)
	assessment := &Assessment{
		Descriptors: d,
		Violations:  len(breaches),
		Breaches:    breaches,
		Admet:       e.opts.Admet.Label(d),
	}
	out.ParseStatus = ctypes.ParseParseable
	out.Assessment = assessment

	if !rec.HasScore {
		return e.failed(rec, ctypes.ParseParseable, assessment,
			fmt.Sprintf("docking score %q is not a number", rec.ScoreText))
	}

	out.Classification = e.opts.Rules.Classify(assessment.Violations)

	if !e.opts.SkipDepictions {
		png, err := e.interp.Depict(ctx, interp.Molecule, e.opts.DepictionSize)
		if err != nil {
			e.logger.Warn("depiction skipped", logging.Int("index", rec.Index), logging.Err(err))
		} else {
			out.Depiction = png
		}
	}

	e.logger.Debug("record evaluated",
		logging.Int("index", rec.Index),
		logging.String("status", out.StatusLabel()),
		logging.Int("violations", assessment.Violations))
	return out
}

func (e *Evaluator) failed(rec CandidateRecord, status ctypes.ParseStatus, a *Assessment, msg string) EvaluatedCandidate {
	e.logger.Warn("record failed",
		logging.Int("index", rec.Index),
		logging.String("smiles", rec.Structure),
		logging.String("reason", msg))
	return EvaluatedCandidate{
		Record:         rec,
		ParseStatus:    status,
		Assessment:     a,
		Classification: ctypes.ClassInvalidInput,
		Failure:        msg,
		FailureCode:    errors.CodeRecordFailure,
	}
}

// EvaluateAll evaluates records in order and returns one candidate per
// record plus the isolated record failures.  A cancelled context stops the
// run and is returned as the error.
func (e *Evaluator) EvaluateAll(ctx context.Context, recs []CandidateRecord) ([]EvaluatedCandidate, []RecordFailure, error) {
	out := make([]EvaluatedCandidate, 0, len(recs))
	var failures []RecordFailure
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		c := e.Evaluate(ctx, rec)
		if c.IsRecordFailure() {
			failures = append(failures, RecordFailure{
				Index:     rec.Index,
				Structure: rec.Structure,
				Code:      c.FailureCode,
				Message:   c.Failure,
			})
		}
		out = append(out, c)
	}
	return out, failures, nil
}

//Personal.AI order the ending
