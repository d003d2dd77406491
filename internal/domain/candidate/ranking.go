package candidate

import "sort"

// ScoreOrder is the direction in which docking scores are ranked.
type ScoreOrder int

const (
	// ScoreOrderAscending ranks the lowest docking score first.  This is the
	// usual convention for binding energies and the one the ranker applies;
	// inputs that use the opposite sign convention are ranked incorrectly.
	ScoreOrderAscending ScoreOrder = iota
)

// Rank returns the final ordering of cands: Pass candidates sorted by
// ascending docking score with ranks 1..K (ties keep input order), followed
// by every other candidate unranked in input order.  cands is not modified.
func Rank(cands []EvaluatedCandidate) []EvaluatedCandidate {
	pass := make([]EvaluatedCandidate, 0, len(cands))
	rest := make([]EvaluatedCandidate, 0, len(cands))
	for _, c := range cands {
		c.Rank = 0
		if c.IsPass() {
			pass = append(pass, c)
		} else {
			rest = append(rest, c)
		}
	}

	sort.SliceStable(pass, func(i, j int) bool {
		return pass[i].Record.DockingScore < pass[j].Record.DockingScore
	})
	for i := range pass {
		pass[i].Rank = i + 1
	}
	return append(pass, rest...)
}

// PassCount returns the number of Pass candidates.
func PassCount(cands []EvaluatedCandidate) int {
	n := 0
	for _, c := range cands {
		if c.IsPass() {
			n++
		}
	}
	return n
}

//Personal.AI order the ending
