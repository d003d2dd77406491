package candidate

import (
	"fmt"

	"github.com/turtacn/admet-prioritizer/internal/domain/molecule"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

// Rule identifies one of the four rule-of-five thresholds.
type Rule string

const (
	RuleMolecularWeight Rule = "molecular_weight"
	RuleLogP            Rule = "logp"
	RuleHDonors         Rule = "h_donors"
	RuleHAcceptors      Rule = "h_acceptors"
)

// RuleSet holds the rule-of-five thresholds.  Each rule is breached when the
// descriptor is strictly greater than its limit.
type RuleSet struct {
	MaxMolecularWeight float64
	MaxLogP            float64
	MaxHDonors         int
	MaxHAcceptors      int

	// MaxViolations is the largest violation count that still passes.
	MaxViolations int
}

// DefaultRuleSet returns Lipinski's thresholds with one violation allowed.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		MaxMolecularWeight: 500,
		MaxLogP:            5,
		MaxHDonors:         5,
		MaxHAcceptors:      10,
		MaxViolations:      1,
	}
}

// Validate checks that the thresholds are usable.
func (r RuleSet) Validate() error {
	switch {
	case r.MaxMolecularWeight <= 0:
		return fmt.Errorf("max molecular weight must be positive, got %v", r.MaxMolecularWeight)
	case r.MaxHDonors < 0:
		return fmt.Errorf("max h-bond donors must not be negative, got %d", r.MaxHDonors)
	case r.MaxHAcceptors < 0:
		return fmt.Errorf("max h-bond acceptors must not be negative, got %d", r.MaxHAcceptors)
	case r.MaxViolations < 0 || r.MaxViolations > 4:
		return fmt.Errorf("max violations must be within [0,4], got %d", r.MaxViolations)
	}
	return nil
}

// Breaches returns the rules d breaches, in fixed rule order.
func (r RuleSet) Breaches(d molecule.Descriptors) []Rule {
	var out []Rule
	if d.MolecularWeight > r.MaxMolecularWeight {
		out = append(out, RuleMolecularWeight)
	}
	if d.LogP > r.MaxLogP {
		out = append(out, RuleLogP)
	}
	if d.HDonors > r.MaxHDonors {
		out = append(out, RuleHDonors)
	}
	if d.HAcceptors > r.MaxHAcceptors {
		out = append(out, RuleHAcceptors)
	}
	return out
}

// Violations counts the breached rules, always within [0,4].
func (r RuleSet) Violations(d molecule.Descriptors) int {
	return len(r.Breaches(d))
}

// Classify maps a violation count to Pass or Fail.
func (r RuleSet) Classify(violations int) ctypes.Classification {
	if violations <= r.MaxViolations {
		return ctypes.ClassPass
	}
	return ctypes.ClassFail
}

// AdmetHeuristic is the placeholder ADMET label: Good when logP is strictly
// below MaxLogP and donors do not exceed MaxHDonors, Moderate otherwise.  It
// is not a prediction.
type AdmetHeuristic struct {
	MaxLogP    float64
	MaxHDonors int
}

// DefaultAdmetHeuristic returns the logP<5, HBD≤5 heuristic.
func DefaultAdmetHeuristic() AdmetHeuristic {
	return AdmetHeuristic{MaxLogP: 5, MaxHDonors: 5}
}

// Label returns the ADMET label for d.
func (h AdmetHeuristic) Label(d molecule.Descriptors) ctypes.AdmetLabel {
	if d.LogP < h.MaxLogP && d.HDonors <= h.MaxHDonors {
		return ctypes.AdmetGood
	}
	return ctypes.AdmetModerate
}

//Personal.AI order the ending
