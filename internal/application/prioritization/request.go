// Package prioritization runs the candidate pipeline for one request: it
// normalizes the chosen input, evaluates and ranks every record, and builds
// the run report consumed by the CLI, the web front end and the exporters.
package prioritization

import (
	_ "embed"
	"io"

	"github.com/turtacn/admet-prioritizer/internal/config"
	"github.com/turtacn/admet-prioritizer/internal/domain/candidate"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

// ExampleData is the bundled example table.
//
//go:embed example.csv
var ExampleData string

// Options is the immutable per-request configuration of the pipeline.
type Options struct {
	StructureColumn string
	ScoreColumn     string
	MaxRecords      int
	Evaluation      candidate.Options
}

// DefaultOptions returns the options of a default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultPipelineConfig())
}

// OptionsFromConfig snapshots a pipeline configuration.
func OptionsFromConfig(cfg config.PipelineConfig) Options {
	return Options{
		StructureColumn: cfg.StructureColumn,
		ScoreColumn:     cfg.ScoreColumn,
		MaxRecords:      cfg.MaxRecords,
		Evaluation: candidate.Options{
			Rules: candidate.RuleSet{
				MaxMolecularWeight: cfg.Rules.MaxMolecularWeight,
				MaxLogP:            cfg.Rules.MaxLogP,
				MaxHDonors:         cfg.Rules.MaxHDonors,
				MaxHAcceptors:      cfg.Rules.MaxHAcceptors,
				MaxViolations:      cfg.Rules.MaxViolations,
			},
			Admet: candidate.AdmetHeuristic{
				MaxLogP:    cfg.Admet.MaxLogP,
				MaxHDonors: cfg.Admet.MaxHDonors,
			},
			DepictionSize:  cfg.DepictionSize,
			SkipDepictions: cfg.SkipDepictions,
		},
	}
}

// AnalysisRequest carries everything one run needs.  No state outside the
// request influences the result.
type AnalysisRequest struct {
	Source ctypes.InputSource

	// Text is the pasted table, used when Source is SourcePaste.
	Text string

	// Upload is the uploaded table, used when Source is SourceUpload.  A nil
	// Upload means nothing was uploaded yet.
	Upload     io.Reader
	UploadName string

	Options Options
}

//Personal.AI order the ending
