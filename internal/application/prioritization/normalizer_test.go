package prioritization

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

func TestNormalizer_ExampleData(t *testing.T) {
	recs, err := NewNormalizer().NormalizeText(ExampleData)
	require.NoError(t, err)
	require.Len(t, recs, 6)

	assert.Equal(t, "CC(=O)Oc1ccccc1C(=O)O", recs[0].Structure)
	assert.Equal(t, -7.2, recs[0].DockingScore)
	assert.Equal(t, "InvalidSMILES", recs[5].Structure)
	for i, r := range recs {
		assert.Equal(t, i, r.Index)
		assert.True(t, r.HasScore)
	}
}

func TestNormalizer_SchemaError(t *testing.T) {
	tests := map[string]string{
		"missing score":     "SMILES,Score\nCCO,-1\n",
		"missing structure": "smiles,Docking_Score\nCCO,-1\n",
		"wrong case both":   "Smiles,docking_score\n",
		"single column":     "SMILES\nCCO\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			recs, err := NewNormalizer().Normalize(strings.NewReader(input))
			assert.Nil(t, recs)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeSchema), "got %v", err)
			assert.Contains(t, err.Error(), "Input data must contain 'SMILES' and 'Docking_Score' columns.")
		})
	}
}

func TestNormalizer_ExtraColumnsAndOrder(t *testing.T) {
	in := "Name,Docking_Score,Notes,SMILES\naspirin,-7.2,x,CC(=O)Oc1ccccc1C(=O)O\nshort,-1\n"
	recs, err := NewNormalizer().Normalize(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "CC(=O)Oc1ccccc1C(=O)O", recs[0].Structure)
	assert.Equal(t, -7.2, recs[0].DockingScore)
	assert.Equal(t, "", recs[1].Structure)
}

func TestNormalizer_NoOtherValidation(t *testing.T) {
	in := "SMILES,Docking_Score\nnot-a-molecule,strong\n,\n"
	recs, err := NewNormalizer().Normalize(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.False(t, recs[0].HasScore)
	assert.Equal(t, "strong", recs[0].ScoreText)
}

func TestNormalizer_ByteOrderMark(t *testing.T) {
	in := "\ufeffSMILES,Docking_Score\nCCO,-3\n"
	recs, err := NewNormalizer().Normalize(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestNormalizer_EmptyAndMalformed(t *testing.T) {
	_, err := NewNormalizer().NormalizeText("   \n ")
	assert.True(t, errors.IsUnready(err))

	_, err = NewNormalizer().Normalize(strings.NewReader(""))
	assert.True(t, errors.IsCode(err, errors.CodeInputMalformed))
}

func TestNormalizer_HeaderOnly(t *testing.T) {
	recs, err := NewNormalizer().Normalize(strings.NewReader("SMILES,Docking_Score\n"))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestNormalizer_MaxRecords(t *testing.T) {
	n := NewNormalizer()
	n.MaxRecords = 2
	_, err := n.Normalize(strings.NewReader("SMILES,Docking_Score\nC,1\nC,2\nC,3\n"))
	assert.True(t, errors.IsCode(err, errors.CodeInputTooLarge))

	recs, err := n.Normalize(strings.NewReader("SMILES,Docking_Score\nC,1\nC,2\n"))
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestNormalizer_CustomColumns(t *testing.T) {
	n := &Normalizer{StructureColumn: "smi", ScoreColumn: "score"}
	recs, err := n.Normalize(strings.NewReader("smi,score\nCCO,-1.5\n"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, -1.5, recs[0].DockingScore)
}

//Personal.AI order the ending
