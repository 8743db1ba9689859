package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Bar is one labelled bar.
type Bar struct {
	Label string
	Value float64
	Text  string // printed at the end of the bar when set
}

// BarChart describes a horizontal bar chart. Bars are drawn top to bottom in
// the given order.
type BarChart struct {
	Title  string
	XLabel string
	YLabel string
	Bars   []Bar
	// Colors overrides the palette per bar when set.
	Colors []color.Color
	// Format labels the value axis; nil keeps the default ticks.
	Format func(v float64) string
}

// HorizontalBars renders c to path.
func (s Style) HorizontalBars(path string, c BarChart) error {
	if len(c.Bars) == 0 {
		return eris.Errorf("chart: %s has no bars", path)
	}
	p := s.newPlot(c.Title, c.XLabel, c.YLabel)
	if err := s.addHorizontalBars(p, c); err != nil {
		return err
	}
	return s.save(p, path)
}

func (s Style) addHorizontalBars(p *plot.Plot, c BarChart) error {
	n := len(c.Bars)
	labels := make([]string, n)
	var lo, hi float64
	var points plotter.XYs
	var texts []string

	for i, b := range c.Bars {
		// Bottom row is the last bar so the first bar sits on top.
		row := n - 1 - i
		labels[row] = b.Label

		bars, err := plotter.NewBarChart(plotter.Values{b.Value}, vg.Points(s.barWidth(n)))
		if err != nil {
			return eris.Wrapf(err, "chart: bar %q", b.Label)
		}
		bars.Horizontal = true
		bars.XMin = float64(row)
		bars.Color = s.colorAt(i)
		if i < len(c.Colors) {
			bars.Color = c.Colors[i]
		}
		bars.LineStyle.Width = vg.Points(1)
		bars.LineStyle.Color = color.Black
		p.Add(bars)

		lo, hi = math.Min(lo, b.Value), math.Max(hi, b.Value)
		if b.Text != "" {
			points = append(points, plotter.XY{X: b.Value, Y: float64(row)})
			texts = append(texts, b.Text)
		}
	}

	if len(points) > 0 {
		lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: texts})
		if err != nil {
			return eris.Wrap(err, "chart: bar labels")
		}
		for i := range lbl.TextStyle {
			lbl.TextStyle[i].Font.Size = s.TickSize
			lbl.TextStyle[i].YAlign = draw.YCenter
			lbl.TextStyle[i].XAlign = draw.XLeft
		}
		lbl.Offset = vg.Point{X: vg.Points(4)}
		p.Add(lbl)
	}

	p.NominalY(labels...)
	p.X.Min = lo
	p.X.Max = hi * 1.15
	if hi <= 0 {
		p.X.Max = 1
	}
	if c.Format != nil {
		format := c.Format
		p.X.Tick.Marker = plot.TickerFunc(func(min, max float64) []plot.Tick {
			ticks := plot.DefaultTicks{}.Ticks(min, max)
			for i := range ticks {
				if ticks[i].Label != "" {
					ticks[i].Label = format(ticks[i].Value)
				}
			}
			return ticks
		})
	}
	return nil
}

func (s Style) barWidth(n int) float64 {
	h := float64(s.Height / vg.Points(1))
	w := h * 0.6 / float64(n)
	return math.Max(4, math.Min(w, 40))
}

// StackedChart describes a 100% stacked bar chart.
type StackedChart struct {
	Title  string
	XLabel string
	YLabel string
	Groups []string    // x categories
	Stacks []string    // legend entries
	Values [][]float64 // Values[group][stack]
	Colors []color.Color
	Note   string
}

// StackedBars renders c to path with the y axis formatted as percent.
func (s Style) StackedBars(path string, c StackedChart) error {
	if len(c.Groups) == 0 || len(c.Stacks) == 0 {
		return eris.Errorf("chart: %s has no data", path)
	}
	title := c.Title
	if c.Note != "" {
		title += "\n" + c.Note
	}
	p := s.newPlot(title, c.XLabel, c.YLabel)

	var below *plotter.BarChart
	for j, name := range c.Stacks {
		vals := make(plotter.Values, len(c.Groups))
		for i := range c.Groups {
			if j < len(c.Values[i]) {
				vals[i] = c.Values[i][j]
			}
		}
		bars, err := plotter.NewBarChart(vals, vg.Points(s.barWidth(len(c.Groups))*1.5))
		if err != nil {
			return eris.Wrapf(err, "chart: stack %q", name)
		}
		bars.Color = s.colorAt(j)
		if j < len(c.Colors) {
			bars.Color = c.Colors[j]
		}
		bars.LineStyle.Width = vg.Points(1)
		bars.LineStyle.Color = color.Black
		if below != nil {
			bars.StackOn(below)
		}
		below = bars
		p.Add(bars)
		p.Legend.Add(name, bars)
	}

	p.NominalX(c.Groups...)
	p.Y.Min, p.Y.Max = 0, 100
	p.Y.Tick.Marker = plot.TickerFunc(func(min, max float64) []plot.Tick {
		var ticks []plot.Tick
		for v := 0.0; v <= 100; v += 20 {
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("%.0f%%", v)})
		}
		return ticks
	})
	p.Legend.Top = true
	p.Legend.XOffs = vg.Points(-8)
	return s.save(p, path)
}
