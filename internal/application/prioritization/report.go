package prioritization

import (
	"strconv"
	"strings"
	"time"

	"github.com/turtacn/admet-prioritizer/internal/domain/candidate"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
	"github.com/turtacn/admet-prioritizer/pkg/types/common"
)

// Report is the outcome of one run.  Candidates are in final order: ranked
// Pass candidates first, then everything else in input order.
type Report struct {
	RunID      common.ID
	Source     ctypes.InputSource
	Candidates []candidate.EvaluatedCandidate
	Failures   []candidate.RecordFailure
	Options    Options
	CreatedAt  time.Time
	Duration   time.Duration
}

// PassCount is the number of Pass candidates.
func (r *Report) PassCount() int { return candidate.PassCount(r.Candidates) }

// FailCount counts candidates whose status label contains "Fail".
func (r *Report) FailCount() int {
	n := 0
	for _, c := range r.Candidates {
		if ctypes.IsFailLabel(c.StatusLabel()) {
			n++
		}
	}
	return n
}

// InvalidCount counts candidates classified as invalid input.
func (r *Report) InvalidCount() int {
	n := 0
	for _, c := range r.Candidates {
		if c.Classification == ctypes.ClassInvalidInput {
			n++
		}
	}
	return n
}

// StatusCounts returns the number of candidates per status label.
func (r *Report) StatusCounts() map[string]int {
	out := map[string]int{}
	for _, c := range r.Candidates {
		out[c.StatusLabel()]++
	}
	return out
}

// Summary returns the run counts.
func (r *Report) Summary() ctypes.RunSummaryDTO {
	return ctypes.RunSummaryDTO{
		RunID:      r.RunID,
		Source:     r.Source,
		Total:      len(r.Candidates),
		Passed:     r.PassCount(),
		Failed:     r.FailCount(),
		Invalid:    r.InvalidCount(),
		Failures:   len(r.Failures),
		DurationMs: r.Duration.Milliseconds(),
		CreatedAt:  common.Timestamp(r.CreatedAt),
	}
}

// TopRanked returns the structures of the first n ranked candidates.
func (r *Report) TopRanked(n int) []string {
	var out []string
	for _, c := range r.Candidates {
		if len(out) == n || !c.Ranked() {
			break
		}
		out = append(out, c.Record.Structure)
	}
	return out
}

// GalleryItem is one depiction with its caption.
type GalleryItem struct {
	// Position is the candidate's position in Report.Candidates.
	Position int
	Caption  string
	PNG      []byte
}

// Gallery returns the depictions in final order, each captioned with its own
// structure and score.
func (r *Report) Gallery() []GalleryItem {
	var out []GalleryItem
	for i, c := range r.Candidates {
		if len(c.Depiction) == 0 {
			continue
		}
		out = append(out, GalleryItem{
			Position: i,
			Caption:  c.Record.Structure + " | Score: " + ScoreText(c.Record),
			PNG:      c.Depiction,
		})
	}
	return out
}

// Depiction returns the PNG of the candidate at position, if any.
func (r *Report) Depiction(position int) ([]byte, bool) {
	if position < 0 || position >= len(r.Candidates) {
		return nil, false
	}
	png := r.Candidates[position].Depiction
	return png, len(png) > 0
}

// ToResponse converts the report to the JSON API response.  depictionURL,
// when non-nil, builds the URL of the depiction at a position.
func (r *Report) ToResponse(links map[string]string, depictionURL func(position int) string) ctypes.PrioritizeResponse {
	resp := ctypes.PrioritizeResponse{
		Summary:    r.Summary(),
		Candidates: make([]ctypes.EvaluatedCandidateDTO, 0, len(r.Candidates)),
		Links:      links,
	}
	for i, c := range r.Candidates {
		dto := c.ToDTO()
		if depictionURL != nil && len(c.Depiction) > 0 {
			dto.DepictionURL = depictionURL(i)
		}
		resp.Candidates = append(resp.Candidates, dto)
	}
	for _, f := range r.Failures {
		resp.Failures = append(resp.Failures, f.ToDTO())
	}
	return resp
}

// ScoreText renders a docking score the way the export writes it: floats
// always carry a decimal point, unreadable scores are echoed verbatim.
func ScoreText(rec candidate.CandidateRecord) string {
	if !rec.HasScore {
		return rec.ScoreText
	}
	s := strconv.FormatFloat(rec.DockingScore, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

//Personal.AI order the ending
