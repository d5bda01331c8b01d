package charts

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"datachat/internal/dataset"
)

// Formats tried when converting the temporal column to chronological
// values. Rows whose value parses with none of them are skipped.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02/01/2006",
	"2006-01",
	"Jan-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2006",
	"2006",
}

type lineChart struct {
	holder *dataset.Holder
	out    *artifactWriter
}

func (l *lineChart) Name() string { return "generate_line_chart" }

func (l *lineChart) Description() string {
	return "Generate a line chart to show trends over time or continuous data. Use for time series analysis."
}

func (l *lineChart) Invoke(_ context.Context) Outcome {
	t := l.holder.Table()
	if t == nil {
		return Outcome{Text: noDataMessage}
	}

	xi, okX := t.FirstTemporal()
	yi, okY := t.FirstNumeric()
	if !okX || !okY {
		return Outcome{Text: "Data doesn't have suitable date and numeric columns for a line chart."}
	}

	type point struct {
		x time.Time
		y float64
	}
	var points []point
	for r := range t.Rows {
		ts, ok := parseDate(t.Cell(r, xi))
		if !ok {
			continue
		}
		v, ok := t.Float(r, yi)
		if !ok {
			continue
		}
		points = append(points, point{x: ts, y: v})
	}
	if len(points) < 2 {
		return Outcome{Text: fmt.Sprintf("Column %q has fewer than two parseable date values; cannot draw a line chart.", t.Columns[xi].Name)}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].x.Before(points[j].x) })

	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.x
		ys[i] = p.y
	}

	xName := t.Columns[xi].Name
	yName := t.Columns[yi].Name
	graph := chart.Chart{
		Title:  fmt.Sprintf("%s Over Time", yName),
		Width:  900,
		Height: 600,
		XAxis: chart.XAxis{
			Name:           xName,
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{Name: yName},
		Series: []chart.Series{
			chart.TimeSeries{Name: yName, XValues: xs, YValues: ys},
		},
	}

	path := l.out.path("line")
	if err := renderPNG(path, graph.Render); err != nil {
		return Outcome{Text: fmt.Sprintf("Error generating line chart: %v", err)}
	}
	return Outcome{
		Text:     fmt.Sprintf("Line chart of %s over %s generated: %s", yName, xName, filepath.Base(path)),
		Artifact: path,
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
