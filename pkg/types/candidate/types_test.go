package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassification_StatusLabel(t *testing.T) {
	assert.Equal(t, "Pass", ClassPass.StatusLabel())
	assert.Equal(t, "Fail (Lipinski Violation)", ClassFail.StatusLabel())
	assert.Equal(t, "Invalid SMILES", ClassInvalidInput.StatusLabel())
}

func TestIsFailLabel(t *testing.T) {
	assert.True(t, IsFailLabel(StatusLabelFail))
	assert.False(t, IsFailLabel(StatusLabelPass))
	assert.False(t, IsFailLabel(StatusLabelInvalid))
}

func TestParseInputSource(t *testing.T) {
	cases := map[string]InputSource{
		"example":           SourceExample,
		"Use Example Data":  SourceExample,
		" PASTE ":           SourcePaste,
		"Paste Custom Data": SourcePaste,
		"Upload CSV File":   SourceUpload,
	}
	for in, want := range cases {
		got, err := ParseInputSource(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseInputSource("ftp")
	assert.Error(t, err)
}

//Personal.AI order the ending
