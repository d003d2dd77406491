// Package candidate defines the candidate-domain Data Transfer Objects,
// enumerations and request/response structures shared by the CLI, the HTTP
// API and the event producer.  No domain logic lives here, only plain data
// types that are safe to import from any layer.
package candidate

import (
	"fmt"
	"strings"

	"github.com/turtacn/admet-prioritizer/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// ParseStatus
// ─────────────────────────────────────────────────────────────────────────────

// ParseStatus records whether a candidate's structure text could be
// interpreted as a molecule.
type ParseStatus string

const (
	// ParseParseable means the structure was interpreted and descriptors exist.
	ParseParseable ParseStatus = "parseable"

	// ParseUnparseable means the structure text was rejected by the parser.
	// Descriptors, violations, ADMET label and depiction are all absent.
	ParseUnparseable ParseStatus = "unparseable"
)

// ─────────────────────────────────────────────────────────────────────────────
// Classification
// ─────────────────────────────────────────────────────────────────────────────

// Classification is the outcome of the drug-likeness screen.
type Classification string

const (
	// ClassPass marks a candidate with at most one rule-of-five violation.
	ClassPass Classification = "Pass"

	// ClassFail marks a candidate with two or more violations.
	ClassFail Classification = "Fail"

	// ClassInvalidInput marks a candidate that could not be evaluated, either
	// because its structure is unparseable or because the record failed in
	// isolation (for example an unreadable docking score).
	ClassInvalidInput Classification = "InvalidInput"
)

// Status labels rendered in tables and exports.
const (
	StatusLabelPass    = "Pass"
	StatusLabelFail    = "Fail (Lipinski Violation)"
	StatusLabelInvalid = "Invalid SMILES"

	// StatusLabelRecordFailure marks a record that failed in isolation for a
	// reason other than its structure, e.g. an unreadable docking score.
	StatusLabelRecordFailure = "Invalid Input"
)

// StatusLabel returns the human-facing label for the classification.
func (c Classification) StatusLabel() string {
	switch c {
	case ClassPass:
		return StatusLabelPass
	case ClassFail:
		return StatusLabelFail
	default:
		return StatusLabelInvalid
	}
}

// IsFailLabel reports whether a status label counts towards the fail summary.
// Only labels containing "Fail" do; invalid inputs are counted on their own.
func IsFailLabel(label string) bool {
	return strings.Contains(label, "Fail")
}

// ─────────────────────────────────────────────────────────────────────────────
// AdmetLabel
// ─────────────────────────────────────────────────────────────────────────────

// AdmetLabel is the coarse ADMET estimate attached to interpretable candidates.
// It is a placeholder heuristic, not a prediction.
type AdmetLabel string

const (
	AdmetGood     AdmetLabel = "Good"
	AdmetModerate AdmetLabel = "Moderate"
)

// ─────────────────────────────────────────────────────────────────────────────
// InputSource
// ─────────────────────────────────────────────────────────────────────────────

// InputSource names where the tabular input comes from.
type InputSource string

const (
	// SourceExample uses the bundled example data set.
	SourceExample InputSource = "example"

	// SourcePaste uses CSV text supplied inline.
	SourcePaste InputSource = "paste"

	// SourceUpload uses an uploaded CSV file.
	SourceUpload InputSource = "upload"
)

// ParseInputSource converts a user-supplied string to an InputSource.
// Matching is case-insensitive and accepts the labels shown in the web UI.
func ParseInputSource(s string) (InputSource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "example", "use example data":
		return SourceExample, nil
	case "paste", "paste custom data":
		return SourcePaste, nil
	case "upload", "upload csv file":
		return SourceUpload, nil
	}
	return "", fmt.Errorf("unknown input source %q", s)
}

// ─────────────────────────────────────────────────────────────────────────────
// DTOs
// ─────────────────────────────────────────────────────────────────────────────

// DescriptorsDTO holds the four computed molecular descriptors.
type DescriptorsDTO struct {
	// MolecularWeight is the average molecular weight in Da.
	MolecularWeight float64 `json:"mw"`

	// LogP is the Crippen-style octanol/water partition estimate.
	LogP float64 `json:"logp"`

	// HDonors is the hydrogen-bond donor count.
	HDonors int `json:"h_donors"`

	// HAcceptors is the hydrogen-bond acceptor count.
	HAcceptors int `json:"h_acceptors"`
}

// EvaluatedCandidateDTO is one evaluated and (possibly) ranked candidate.
type EvaluatedCandidateDTO struct {
	// Index is the zero-based position of the record in the input table.
	Index int `json:"index"`

	// Structure is the structure text as supplied.
	Structure string `json:"smiles"`

	// DockingScore is the score as supplied; nil when it could not be read.
	DockingScore *float64 `json:"docking_score"`

	ParseStatus    ParseStatus     `json:"parse_status"`
	Descriptors    *DescriptorsDTO `json:"descriptors,omitempty"`
	Violations     *int            `json:"violations,omitempty"`
	Classification Classification  `json:"classification"`

	// Status is the display label derived from Classification.
	Status string `json:"status"`

	Admet *AdmetLabel `json:"admet_predict,omitempty"`

	// Rank is the 1-based final rank; nil for non-Pass candidates.
	Rank *int `json:"final_rank,omitempty"`

	// Failure explains an isolated per-record failure, if any.
	Failure string `json:"failure,omitempty"`

	// DepictionURL is set by the HTTP layer when a depiction is available.
	DepictionURL string `json:"depiction_url,omitempty"`
}

// RecordFailureDTO reports a record that failed in isolation.
type RecordFailureDTO struct {
	Index     int    `json:"index"`
	Structure string `json:"smiles"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// RunSummaryDTO aggregates the counts of one analysis run.
type RunSummaryDTO struct {
	RunID      common.ID        `json:"run_id"`
	Source     InputSource      `json:"source"`
	Total      int              `json:"total"`
	Passed     int              `json:"passed"`
	Failed     int              `json:"failed"`
	Invalid    int              `json:"invalid"`
	Failures   int              `json:"record_failures"`
	DurationMs int64            `json:"duration_ms"`
	CreatedAt  common.Timestamp `json:"created_at"`
}

// PrioritizeRequest is the JSON body of POST /api/v1/prioritize.
type PrioritizeRequest struct {
	// Source is one of "example", "paste".  Uploads use multipart forms.
	Source string `json:"source" validate:"required,oneof=example paste"`

	// Data is CSV text; required when Source is "paste".
	Data string `json:"data" validate:"required_if=Source paste"`
}

// PrioritizeResponse is returned by the prioritize endpoint.
type PrioritizeResponse struct {
	Summary    RunSummaryDTO           `json:"summary"`
	Candidates []EvaluatedCandidateDTO `json:"candidates"`
	Failures   []RecordFailureDTO      `json:"failures,omitempty"`
	Links      map[string]string       `json:"links,omitempty"`
}

// RunCompletedEvent is published after a run finishes.
type RunCompletedEvent struct {
	EventID    string           `json:"event_id"`
	RunID      common.ID        `json:"run_id"`
	Source     InputSource      `json:"source"`
	Total      int              `json:"total"`
	Passed     int              `json:"passed"`
	Failed     int              `json:"failed"`
	Invalid    int              `json:"invalid"`
	TopRanked  []string         `json:"top_ranked,omitempty"`
	ExportKey  string           `json:"export_key,omitempty"`
	OccurredAt common.Timestamp `json:"occurred_at"`
}

//Personal.AI order the ending
