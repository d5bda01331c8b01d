package charts

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/wcharczuk/go-chart/v2"

	"datachat/internal/dataset"
)

type barChart struct {
	holder *dataset.Holder
	out    *artifactWriter
}

func (b *barChart) Name() string { return "generate_bar_chart" }

func (b *barChart) Description() string {
	return "Generate a bar chart to show categorical data with numeric values. Use for comparisons between categories."
}

func (b *barChart) Invoke(_ context.Context) Outcome {
	t := b.holder.Table()
	if t == nil {
		return Outcome{Text: noDataMessage}
	}

	xi, okX := t.FirstCategorical()
	yi, okY := t.FirstNumeric()
	if !okX || !okY {
		return Outcome{Text: "Data doesn't have suitable columns for a bar chart: one categorical and one numeric column are required."}
	}

	groups := sumByGroup(t, xi, yi)
	if len(groups) == 0 {
		return Outcome{Text: "Data has no rows to plot as a bar chart."}
	}

	bars := make([]chart.Value, 0, len(groups))
	for _, g := range groups {
		bars = append(bars, chart.Value{Label: g.label, Value: g.value})
	}

	xName := t.Columns[xi].Name
	yName := t.Columns[yi].Name
	graph := chart.BarChart{
		Title:    fmt.Sprintf("%s by %s", yName, xName),
		Width:    900,
		Height:   600,
		BarWidth: 40,
		Bars:     bars,
	}

	path := b.out.path("bar")
	if err := renderPNG(path, graph.Render); err != nil {
		return Outcome{Text: fmt.Sprintf("Error generating bar chart: %v", err)}
	}
	return Outcome{
		Text:     fmt.Sprintf("Bar chart of %s by %s generated: %s", yName, xName, filepath.Base(path)),
		Artifact: path,
	}
}

type group struct {
	label string
	value float64
}

// sumByGroup sums the numeric column per distinct category, descending
// by summed value.
func sumByGroup(t *dataset.Table, xi, yi int) []group {
	sums := make(map[string]float64)
	var order []string
	for r := range t.Rows {
		label := t.Cell(r, xi)
		v, ok := t.Float(r, yi)
		if !ok {
			continue
		}
		if _, seen := sums[label]; !seen {
			order = append(order, label)
		}
		sums[label] += v
	}

	groups := make([]group, 0, len(order))
	for _, label := range order {
		groups = append(groups, group{label: label, value: sums[label]})
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].value > groups[j].value })
	return groups
}

// renderPNG writes a chart render function's output to path.
func renderPNG(path string, render func(chart.RendererProvider, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(chart.PNG, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
