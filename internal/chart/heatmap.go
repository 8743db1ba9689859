package chart

import (
	"image/color"
	"math"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot/plotter"
)

// HeatmapChart describes a grid of values; Values[row][col].
type HeatmapChart struct {
	Title   string
	XLabel  string
	YLabel  string
	Columns []string
	Rows    []string // drawn top to bottom
	Values  [][]float64
	Low     color.RGBA
	High    color.RGBA
}

// cells adapts a HeatmapChart to plotter.GridXYZ with the first row on top.
type cells struct{ c *HeatmapChart }

func (g cells) Dims() (int, int) { return len(g.c.Columns), len(g.c.Rows) }
func (g cells) X(col int) float64 { return float64(col) }
func (g cells) Y(row int) float64 { return float64(row) }
func (g cells) Z(col, row int) float64 {
	r := len(g.c.Rows) - 1 - row
	if col >= len(g.c.Values[r]) {
		return math.NaN()
	}
	return g.c.Values[r][col]
}

// Heatmap renders c to path. NaN cells are left white.
func (s Style) Heatmap(path string, c HeatmapChart) error {
	if len(c.Rows) == 0 || len(c.Columns) == 0 || len(c.Values) != len(c.Rows) {
		return eris.Errorf("chart: %s has no grid", path)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range c.Values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return eris.Errorf("chart: %s has only empty cells", path)
	}
	if hi == lo {
		hi = lo + 1
	}

	p := s.newPlot(c.Title, c.XLabel, c.YLabel)
	hm := plotter.NewHeatMap(cells{&c}, newGradient(c.Low, c.High, 64))
	hm.Min, hm.Max = lo, hi
	hm.NaN = color.White
	p.Add(hm)

	rows := make([]string, len(c.Rows))
	for i, r := range c.Rows {
		rows[len(c.Rows)-1-i] = r
	}
	p.NominalX(c.Columns...)
	p.NominalY(rows...)
	return s.save(p, path)
}
