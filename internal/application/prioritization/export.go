package prioritization

import (
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/turtacn/admet-prioritizer/internal/domain/candidate"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

// ExportFileName is the download name of the results table.
const ExportFileName = "admet_docking_results.csv"

// ExportColumns is the header of the exported table.
var ExportColumns = []string{
	"SMILES", "Docking_Score", "Status", "MW", "LogP",
	"HDonors", "HAcceptors", "Violations", "ADMET_Predict", "Final_Rank",
}

// WriteCSV writes the report's candidates in final order, one row per input
// record.  Fields that do not apply to a candidate are left empty.
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return errors.Wrap(err, errors.CodeExportFailed, "write header")
	}
	for _, c := range r.Candidates {
		if err := cw.Write(ExportRow(c)); err != nil {
			return errors.Wrap(err, errors.CodeExportFailed, "write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.CodeExportFailed, "flush export")
	}
	return nil
}

// ExportCSV renders the report as CSV bytes.
func ExportCSV(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportRow renders one candidate in ExportColumns order.
func ExportRow(c candidate.EvaluatedCandidate) []string {
	row := []string{c.Record.Structure, ScoreText(c.Record), c.StatusLabel(), "", "", "", "", "", "", c.RankText()}
	if a := c.Assessment; a != nil {
		row[3] = FormatRounded(a.Descriptors.MolecularWeight)
		row[4] = FormatRounded(a.Descriptors.LogP)
		row[5] = strconv.Itoa(a.Descriptors.HDonors)
		row[6] = strconv.Itoa(a.Descriptors.HAcceptors)
		row[7] = strconv.Itoa(a.Violations)
		row[8] = string(a.Admet)
	}
	return row
}

// FormatRounded rounds v to two decimals and prints it with at least one
// decimal digit.
func FormatRounded(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

//Personal.AI order the ending
