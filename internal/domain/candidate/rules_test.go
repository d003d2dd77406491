package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/admet-prioritizer/internal/domain/molecule"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

func TestRuleSet_Breaches(t *testing.T) {
	t.Parallel()

	rules := DefaultRuleSet()
	tests := []struct {
		name string
		d    molecule.Descriptors
		want []Rule
	}{
		{"none", molecule.Descriptors{MolecularWeight: 180, LogP: 1.3, HDonors: 1, HAcceptors: 3}, nil},
		{"thresholds are inclusive", molecule.Descriptors{MolecularWeight: 500, LogP: 5, HDonors: 5, HAcceptors: 10}, nil},
		{"weight only", molecule.Descriptors{MolecularWeight: 500.01}, []Rule{RuleMolecularWeight}},
		{"logp and donors", molecule.Descriptors{LogP: 5.1, HDonors: 6}, []Rule{RuleLogP, RuleHDonors}},
		{"all four", molecule.Descriptors{MolecularWeight: 900, LogP: 7, HDonors: 8, HAcceptors: 12},
			[]Rule{RuleMolecularWeight, RuleLogP, RuleHDonors, RuleHAcceptors}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rules.Breaches(tt.d))
			assert.Equal(t, len(tt.want), rules.Violations(tt.d))
		})
	}
}

func TestRuleSet_Classify(t *testing.T) {
	t.Parallel()

	rules := DefaultRuleSet()
	for v := 0; v <= 4; v++ {
		want := ctypes.ClassFail
		if v <= 1 {
			want = ctypes.ClassPass
		}
		assert.Equal(t, want, rules.Classify(v), "violations=%d", v)
	}

	strict := rules
	strict.MaxViolations = 0
	assert.Equal(t, ctypes.ClassFail, strict.Classify(1))
}

func TestRuleSet_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, DefaultRuleSet().Validate())

	bad := []func(*RuleSet){
		func(r *RuleSet) { r.MaxMolecularWeight = 0 },
		func(r *RuleSet) { r.MaxHDonors = -1 },
		func(r *RuleSet) { r.MaxHAcceptors = -1 },
		func(r *RuleSet) { r.MaxViolations = 5 },
		func(r *RuleSet) { r.MaxViolations = -1 },
	}
	for i, mutate := range bad {
		r := DefaultRuleSet()
		mutate(&r)
		assert.Error(t, r.Validate(), "case %d", i)
	}
}

func TestAdmetHeuristic_Label(t *testing.T) {
	t.Parallel()

	h := DefaultAdmetHeuristic()
	assert.Equal(t, ctypes.AdmetGood, h.Label(molecule.Descriptors{LogP: 4.99, HDonors: 5}))
	assert.Equal(t, ctypes.AdmetModerate, h.Label(molecule.Descriptors{LogP: 5, HDonors: 0}))
	assert.Equal(t, ctypes.AdmetModerate, h.Label(molecule.Descriptors{LogP: 1, HDonors: 6}))
}

//Personal.AI order the ending
