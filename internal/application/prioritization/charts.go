package prioritization

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

// Chart titles.
const (
	ScatterChartTitle    = "MW vs Docking Score"
	ViolationsChartTitle = "Lipinski Violations by Category"
)

// ScatterPoint is one Pass candidate in the weight/score scatter.
type ScatterPoint struct {
	MolecularWeight float64
	DockingScore    float64
	Violations      int
	Structure       string
}

// ScatterPoints returns the Pass candidates' weight and score, in final order.
func (r *Report) ScatterPoints() []ScatterPoint {
	var out []ScatterPoint
	for _, c := range r.Candidates {
		if !c.IsPass() || c.Assessment == nil {
			continue
		}
		out = append(out, ScatterPoint{
			MolecularWeight: c.Assessment.Descriptors.MolecularWeight,
			DockingScore:    c.Record.DockingScore,
			Violations:      c.Assessment.Violations,
			Structure:       c.Record.Structure,
		})
	}
	return out
}

// ViolationBar is the summed violation count of one status label.
type ViolationBar struct {
	Status     string
	Violations int
}

// ViolationBars sums violations per status label over all candidates.
// Labels appear in order of first occurrence in the final table.
func (r *Report) ViolationBars() []ViolationBar {
	var out []ViolationBar
	pos := map[string]int{}
	for _, c := range r.Candidates {
		label := c.StatusLabel()
		i, ok := pos[label]
		if !ok {
			i = len(out)
			pos[label] = i
			out = append(out, ViolationBar{Status: label})
		}
		if c.Assessment != nil {
			out[i].Violations += c.Assessment.Violations
		}
	}
	return out
}

// ScatterChart builds the weight/score scatter, one series per violation
// count.
func (r *Report) ScatterChart() *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: ScatterChartTitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: "MW", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Docking_Score", Type: "value"}),
	)

	series := map[int][]opts.ScatterData{}
	for _, p := range r.ScatterPoints() {
		series[p.Violations] = append(series[p.Violations], opts.ScatterData{
			Name:  p.Structure,
			Value: []interface{}{p.MolecularWeight, p.DockingScore},
		})
	}
	keys := make([]int, 0, len(series))
	for k := range series {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		sc.AddSeries(fmt.Sprintf("Violations = %d", k), series[k])
	}
	return sc
}

// ViolationsChart builds the per-status violation bar chart.
func (r *Report) ViolationsChart() *charts.Bar {
	bars := r.ViolationBars()
	labels := make([]string, len(bars))
	data := make([]opts.BarData, len(bars))
	for i, b := range bars {
		labels[i] = b.Status
		data[i] = opts.BarData{Name: b.Status, Value: b.Violations}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: ViolationsChartTitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Status"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Violations"}),
	)
	bar.SetXAxis(labels).AddSeries("Violations", data)
	return bar
}

// Renderer is implemented by every go-echarts chart.
type Renderer interface {
	Render(w io.Writer) error
}

// RenderChart renders a chart as a standalone HTML page.
func RenderChart(c Renderer) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "render chart")
	}
	return buf.Bytes(), nil
}

//Personal.AI order the ending
