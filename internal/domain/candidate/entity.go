// Package candidate holds the evaluation and ranking rules applied to
// candidate molecules: the rule-of-five screen, the ADMET placeholder label,
// and the pass-only ranking by docking score.
package candidate

import (
	"math"
	"strconv"
	"strings"

	"github.com/turtacn/admet-prioritizer/internal/domain/molecule"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

// CandidateRecord is one normalized input row.
type CandidateRecord struct {
	// Index is the zero-based row position in the input table.
	Index int

	// Structure is the structure text exactly as supplied.
	Structure string

	// ScoreText is the docking score cell as supplied.
	ScoreText string

	// DockingScore is ScoreText read as a number; valid only when HasScore.
	DockingScore float64
	HasScore     bool
}

// NewCandidateRecord builds a record from raw cells.  An unreadable or
// non-finite score is not an error here; the evaluator reports it as an isolated record failure.
func NewCandidateRecord(index int, structure, score string) CandidateRecord {
	rec := CandidateRecord{Index: index, Structure: structure, ScoreText: score}
	if v, err := strconv.ParseFloat(strings.TrimSpace(score), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		rec.DockingScore = v
		rec.HasScore = true
	}
	return rec
}

// Assessment groups the values that exist only for interpretable structures.
// Keeping them behind one pointer means they are present or absent together.
type Assessment struct {
	Descriptors molecule.Descriptors
	Violations  int
	Breaches    []Rule
	Admet       ctypes.AdmetLabel
}

// EvaluatedCandidate is the result of evaluating one CandidateRecord.  It is
// built once by the Evaluator; ranking returns copies with Rank set.
type EvaluatedCandidate struct {
	Record         CandidateRecord
	ParseStatus    ctypes.ParseStatus
	Assessment     *Assessment
	Classification ctypes.Classification

	// Rank is the 1-based final rank; zero means unranked.
	Rank int

	// Failure describes why the record could not be fully evaluated.
	Failure     string
	FailureCode errors.ErrorCode

	// Depiction is a PNG, nil when the structure was not interpretable or
	// rendering failed.
	Depiction []byte
}

// IsPass reports whether the candidate passed the screen.
func (c EvaluatedCandidate) IsPass() bool { return c.Classification == ctypes.ClassPass }

// Ranked reports whether a final rank was assigned.
func (c EvaluatedCandidate) Ranked() bool { return c.Rank > 0 }

// IsRecordFailure reports whether the record failed for a reason other than
// an uninterpretable structure.
func (c EvaluatedCandidate) IsRecordFailure() bool {
	return c.FailureCode == errors.CodeRecordFailure
}

// StatusLabel is the display label used in tables and exports.
func (c EvaluatedCandidate) StatusLabel() string {
	if c.IsRecordFailure() {
		return ctypes.StatusLabelRecordFailure
	}
	return c.Classification.StatusLabel()
}

// RankText renders the rank, "-" when unranked.
func (c EvaluatedCandidate) RankText() string {
	if !c.Ranked() {
		return "-"
	}
	return strconv.Itoa(c.Rank)
}

// RecordFailure reports a record that failed in isolation.
type RecordFailure struct {
	Index     int
	Structure string
	Code      errors.ErrorCode
	Message   string
}

// ToDTO converts the candidate to its wire form.
func (c EvaluatedCandidate) ToDTO() ctypes.EvaluatedCandidateDTO {
	dto := ctypes.EvaluatedCandidateDTO{
		Index:          c.Record.Index,
		Structure:      c.Record.Structure,
		ParseStatus:    c.ParseStatus,
		Classification: c.Classification,
		Status:         c.StatusLabel(),
		Failure:        c.Failure,
	}
	if c.Record.HasScore {
		score := c.Record.DockingScore
		dto.DockingScore = &score
	}
	if a := c.Assessment; a != nil {
		dto.Descriptors = &ctypes.DescriptorsDTO{
			MolecularWeight: a.Descriptors.MolecularWeight,
			LogP:            a.Descriptors.LogP,
			HDonors:         a.Descriptors.HDonors,
			HAcceptors:      a.Descriptors.HAcceptors,
		}
		v := a.Violations
		dto.Violations = &v
		label := a.Admet
		dto.Admet = &label
	}
	if c.Ranked() {
		r := c.Rank
		dto.Rank = &r
	}
	return dto
}

// ToDTO converts the failure to its wire form.
func (f RecordFailure) ToDTO() ctypes.RecordFailureDTO {
	return ctypes.RecordFailureDTO{Index: f.Index, Structure: f.Structure, Code: string(f.Code), Message: f.Message}
}

//Personal.AI order the ending
