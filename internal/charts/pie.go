package charts

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/wcharczuk/go-chart/v2"

	"datachat/internal/dataset"
)

type pieChart struct {
	holder *dataset.Holder
	out    *artifactWriter
}

func (p *pieChart) Name() string { return "generate_pie_chart" }

func (p *pieChart) Description() string {
	return "Generate a pie chart to show percentage distribution of categorical data. Use for showing parts of a whole."
}

func (p *pieChart) Invoke(_ context.Context) Outcome {
	t := p.holder.Table()
	if t == nil {
		return Outcome{Text: noDataMessage}
	}

	ci, ok := t.FirstCategorical()
	if !ok {
		return Outcome{Text: "Data doesn't have a categorical column for a pie chart."}
	}

	counts := make(map[string]int)
	var order []string
	for r := range t.Rows {
		v := t.Cell(r, ci)
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	if len(order) == 0 {
		return Outcome{Text: "Data has no rows to plot as a pie chart."}
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })

	values := make([]chart.Value, 0, len(order))
	for _, label := range order {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", label, counts[label]),
			Value: float64(counts[label]),
		})
	}

	name := t.Columns[ci].Name
	graph := chart.PieChart{
		Title:  fmt.Sprintf("Distribution of %s", name),
		Width:  700,
		Height: 700,
		Values: values,
	}

	path := p.out.path("pie")
	if err := renderPNG(path, graph.Render); err != nil {
		return Outcome{Text: fmt.Sprintf("Error generating pie chart: %v", err)}
	}
	return Outcome{
		Text:     fmt.Sprintf("Pie chart of the %s distribution generated: %s", name, filepath.Base(path)),
		Artifact: path,
	}
}
