package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptors_ReferenceMolecules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		smiles string
		mw     float64
		logP   float64
		hbd    int
		hba    int
	}{
		{"aspirin", "CC(=O)Oc1ccccc1C(=O)O", 180.159, 1.3101, 1, 3},
		{"ethanol", "CCO", 46.069, -0.0014, 1, 1},
		{"benzene", "c1ccccc1", 78.114, 1.6866, 0, 0},
	}

	calc := NewCalculator()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := ParseSMILES(tt.smiles)
			require.NoError(t, err)

			d, err := calc.Compute(m)
			require.NoError(t, err)
			assert.InDelta(t, tt.mw, d.MolecularWeight, 1e-3)
			assert.InDelta(t, tt.logP, d.LogP, 1e-3)
			assert.Equal(t, tt.hbd, d.HDonors)
			assert.Equal(t, tt.hba, d.HAcceptors)
		})
	}
}

func TestNumHDonorsAndAcceptors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		smiles string
		hbd    int
		hba    int
	}{
		{"pyridine", "c1ccncc1", 0, 1},
		{"pyrrole", "c1cc[nH]c1", 1, 0},
		{"acetamide", "CC(N)=O", 1, 1},
		{"methylamine", "CN", 1, 1},
		{"trimethylamine", "CN(C)C", 0, 1},
		{"dimethyl ether", "COC", 0, 1},
		{"fluoromethane", "CF", 0, 1},
		{"ammonium", "C[NH3+]", 1, 0},
		{"acetate", "CC(=O)[O-]", 0, 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := ParseSMILES(tt.smiles)
			require.NoError(t, err)
			assert.Equal(t, tt.hbd, NumHDonors(m), "donors")
			assert.Equal(t, tt.hba, NumHAcceptors(m), "acceptors")
		})
	}
}

func TestMolWt(t *testing.T) {
	t.Parallel()

	m, err := ParseSMILES("c1ccncc1")
	require.NoError(t, err)
	assert.InDelta(t, 79.102, MolWt(m), 1e-3)

	// isotope labels use the mass number
	labelled, err := ParseSMILES("[13CH4]")
	require.NoError(t, err)
	assert.InDelta(t, 13+4*1.008, MolWt(labelled), 1e-9)
}

func TestMolLogP_MoreLipophilicWithLongerChain(t *testing.T) {
	t.Parallel()

	short, err := ParseSMILES("CCCC")
	require.NoError(t, err)
	long, err := ParseSMILES("CCCCCCCC")
	require.NoError(t, err)
	assert.Greater(t, MolLogP(long), MolLogP(short))

	alcohol, err := ParseSMILES("CCCCO")
	require.NoError(t, err)
	assert.Less(t, MolLogP(alcohol), MolLogP(short))
}

//Personal.AI order the ending
