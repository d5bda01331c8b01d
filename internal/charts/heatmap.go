package charts

import (
	"context"
	"fmt"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"datachat/internal/dataset"
)

type heatmap struct {
	holder *dataset.Holder
	out    *artifactWriter
}

func (h *heatmap) Name() string { return "generate_heatmap" }

func (h *heatmap) Description() string {
	return "Generate a correlation heatmap to show relationships between numeric variables."
}

func (h *heatmap) Invoke(_ context.Context) Outcome {
	t := h.holder.Table()
	if t == nil {
		return Outcome{Text: noDataMessage}
	}

	cols := t.NumericColumns()
	if len(cols) < 2 {
		return Outcome{Text: "Need at least 2 numeric columns for a correlation heatmap."}
	}

	// Rows with any unparseable cell in the selected columns are dropped
	// so the matrix stays rectangular.
	var data []float64
	rows := 0
	for r := range t.Rows {
		vals := make([]float64, 0, len(cols))
		ok := true
		for _, c := range cols {
			v, parsed := t.Float(r, c)
			if !parsed {
				ok = false
				break
			}
			vals = append(vals, v)
		}
		if !ok {
			continue
		}
		data = append(data, vals...)
		rows++
	}
	if rows < 2 {
		return Outcome{Text: "Not enough complete numeric rows to compute correlations."}
	}

	corr := mat.NewSymDense(len(cols), nil)
	stat.CorrelationMatrix(corr, mat.NewDense(rows, len(cols), data), nil)

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = t.Columns[c].Name
	}

	path := h.out.path("heatmap")
	if err := renderHeatmap(path, corr, names); err != nil {
		return Outcome{Text: fmt.Sprintf("Error generating heatmap: %v", err)}
	}
	return Outcome{
		Text:     fmt.Sprintf("Correlation heatmap of %d numeric columns generated: %s", len(cols), filepath.Base(path)),
		Artifact: path,
	}
}

func renderHeatmap(path string, corr *mat.SymDense, names []string) error {
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)

	hm := plotter.NewHeatMap(corrGrid{m: corr}, cm.Palette(255))
	hm.Min = -1
	hm.Max = 1

	p := plot.New()
	p.Title.Text = "Correlation Heatmap"
	p.Add(hm)
	p.NominalX(names...)
	p.NominalY(names...)
	p.X.Tick.Label.Rotation = -0.6
	p.X.Tick.Label.XAlign = -0.5

	return p.Save(6*vg.Inch, 5*vg.Inch, path)
}

// corrGrid adapts a symmetric correlation matrix to plotter.GridXYZ.
type corrGrid struct {
	m *mat.SymDense
}

func (g corrGrid) Dims() (int, int) {
	n := g.m.SymmetricDim()
	return n, n
}
func (g corrGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }
