package molecule

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"

	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

func TestBondStrokeWidth(t *testing.T) {
	// 1.6 px in 26.6 fixed point, rounded to the nearest 1/64.
	assert.Equal(t, fixed.Int26_6(102), bondStrokeWidth())
}

func TestDepict_ProducesSizedPNG(t *testing.T) {
	t.Parallel()

	for _, smiles := range []string{"C", "CC(=O)Oc1ccccc1C(=O)O", "C1=CC=C2C(=C1)C=CC(=O)C2=O", "CC#N.[Na+]"} {
		m, err := ParseSMILES(smiles)
		require.NoError(t, err)

		data, err := Depict(m, DefaultDepictionSize)
		require.NoError(t, err, smiles)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, DefaultDepictionSize, img.Bounds().Dx())
		assert.Equal(t, DefaultDepictionSize, img.Bounds().Dy())

		inked := false
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y && !inked; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, _ := img.At(x, y).RGBA()
				if r != 0xffff || g != 0xffff || bl != 0xffff {
					inked = true
					break
				}
			}
		}
		assert.True(t, inked, "%s rendered blank", smiles)
	}
}

func TestDepict_CustomAndDefaultSize(t *testing.T) {
	t.Parallel()

	m, err := ParseSMILES("CCO")
	require.NoError(t, err)

	data, err := Depict(m, 120)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width)

	data, err = Depict(m, 0)
	require.NoError(t, err)
	cfg, err = png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultDepictionSize, cfg.Width)
}

func TestDepict_Errors(t *testing.T) {
	t.Parallel()

	_, err := Depict(nil, 200)
	assert.True(t, errors.IsCode(err, errors.CodeDepictionFailed))

	m, err := ParseSMILES("CC")
	require.NoError(t, err)
	_, err = Depict(m, 8)
	assert.True(t, errors.IsCode(err, errors.CodeDepictionFailed))
}

func TestAtomLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		smiles string
		index  int
		want   string
	}{
		{"CO", 1, "OH"},
		{"CN", 1, "NH2"},
		{"C[NH3+]", 1, "NH3+"},
		{"C[O-]", 1, "O-"},
		{"CCl", 1, "Cl"},
		{"[13CH4]", 0, "13CH4"},
	}
	for _, tt := range tests {
		m, err := ParseSMILES(tt.smiles)
		require.NoError(t, err)
		assert.Equal(t, tt.want, atomLabel(m.Atoms[tt.index]), tt.smiles)
	}
}

//Personal.AI order the ending
