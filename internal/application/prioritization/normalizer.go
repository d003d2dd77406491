package prioritization

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/turtacn/admet-prioritizer/internal/domain/candidate"
	apperrors "github.com/turtacn/admet-prioritizer/pkg/errors"
)

// Default column names.
const (
	DefaultStructureColumn = "SMILES"
	DefaultScoreColumn     = "Docking_Score"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalizer reads a delimited table with a header row into candidate
// records.  Column lookup is by exact name; nothing else is validated.
type Normalizer struct {
	StructureColumn string
	ScoreColumn     string

	// MaxRecords caps the number of data rows; zero means unlimited.
	MaxRecords int
}

// NewNormalizer returns a Normalizer for the standard column names.
func NewNormalizer() *Normalizer {
	return &Normalizer{StructureColumn: DefaultStructureColumn, ScoreColumn: DefaultScoreColumn}
}

// NormalizeText normalizes inline table text.  Surrounding whitespace is
// trimmed first; text that is empty after trimming is not ready input.
func (n *Normalizer) NormalizeText(text string) ([]candidate.CandidateRecord, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, apperrors.Unready("Please provide input data to start analysis.")
	}
	return n.Normalize(strings.NewReader(trimmed))
}

// Normalize reads a table from r.  It fails with a schema error, before any
// row is read, when either required column is missing from the header.
func (n *Normalizer) Normalize(r io.Reader) ([]candidate.CandidateRecord, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.New(apperrors.CodeInputMalformed, "no columns to parse from input")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInputMalformed, "cannot read header row")
	}

	structureIdx, scoreIdx := -1, -1
	for i, name := range header {
		switch name {
		case n.structureColumn():
			if structureIdx < 0 {
				structureIdx = i
			}
		case n.scoreColumn():
			if scoreIdx < 0 {
				scoreIdx = i
			}
		}
	}
	if structureIdx < 0 || scoreIdx < 0 {
		return nil, apperrors.Schema(fmt.Sprintf("Input data must contain '%s' and '%s' columns.",
			n.structureColumn(), n.scoreColumn())).
			WithDetail("found columns: " + strings.Join(header, ", "))
	}

	var records []candidate.CandidateRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInputMalformed, "cannot read table row")
		}
		if n.MaxRecords > 0 && len(records) >= n.MaxRecords {
			return nil, apperrors.Newf(apperrors.CodeInputTooLarge,
				"input has more than %d records", n.MaxRecords)
		}
		records = append(records, candidate.NewCandidateRecord(len(records), cell(row, structureIdx), cell(row, scoreIdx)))
	}
	return records, nil
}

func (n *Normalizer) structureColumn() string {
	if n.StructureColumn == "" {
		return DefaultStructureColumn
	}
	return n.StructureColumn
}

func (n *Normalizer) scoreColumn() string {
	if n.ScoreColumn == "" {
		return DefaultScoreColumn
	}
	return n.ScoreColumn
}

// cell returns row[i], or "" for short rows.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

//Personal.AI order the ending
