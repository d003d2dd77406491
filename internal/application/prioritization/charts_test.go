package prioritization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

func TestScatterPoints_PassOnly(t *testing.T) {
	report := runExample(t)
	points := report.ScatterPoints()
	require.Len(t, points, 4)
	assert.Equal(t, -7.5, points[0].DockingScore)
	for _, p := range points {
		assert.Greater(t, p.MolecularWeight, 0.0)
		assert.LessOrEqual(t, p.Violations, 1)
	}
}

func TestViolationBars(t *testing.T) {
	report := runExample(t)
	bars := report.ViolationBars()
	require.Len(t, bars, 2)
	assert.Equal(t, ctypes.StatusLabelPass, bars[0].Status)
	assert.Equal(t, ctypes.StatusLabelInvalid, bars[1].Status)
	assert.Zero(t, bars[1].Violations)
}

func TestRenderCharts(t *testing.T) {
	report := runExample(t)

	html, err := RenderChart(report.ScatterChart())
	require.NoError(t, err)
	assert.Contains(t, string(html), ScatterChartTitle)

	html, err = RenderChart(report.ViolationsChart())
	require.NoError(t, err)
	assert.Contains(t, string(html), ViolationsChartTitle)
}

//Personal.AI order the ending
