package chart

import (
	"image/color"
	"math"
	"strconv"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	ink      = color.RGBA{R: 0x1f, G: 0x1f, B: 0x1f, A: 255}
	covidRed = color.RGBA{R: 255, A: 255}
)

// Point is one (x, y) observation.
type Point struct {
	X float64
	Y float64
}

// Series is a named line.
type Series struct {
	Name   string
	Points []Point
}

// Band shades an x range, such as the COVID years.
type Band struct {
	Label string
	Start float64
	End   float64
}

// LineChart describes a line chart.
type LineChart struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
	Band   *Band // optional
	// Colors overrides the palette per series when set.
	Colors []color.Color
	// Single draws one heavy dark line without a legend.
	Single bool
}

func xys(points []Point) plotter.XYs {
	out := make(plotter.XYs, len(points))
	for i, p := range points {
		out[i].X, out[i].Y = p.X, p.Y
	}
	return out
}

// yearTicks labels every whole x value between the data bounds.
func yearTicks(lo, hi float64) []plot.Tick {
	var ticks []plot.Tick
	for y := math.Ceil(lo); y <= hi; y++ {
		ticks = append(ticks, plot.Tick{Value: y, Label: strconv.Itoa(int(y))})
	}
	return ticks
}

// Line renders c to path.
func (s Style) Line(path string, c LineChart) error {
	if len(c.Series) == 0 {
		return eris.Errorf("chart: %s has no series", path)
	}

	p := s.newPlot(c.Title, c.XLabel, c.YLabel)
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymax := math.Inf(-1)
	for i, series := range c.Series {
		if len(series.Points) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(xys(series.Points))
		if err != nil {
			return eris.Wrapf(err, "chart: line %q", series.Name)
		}
		col := s.colorAt(i)
		if i < len(c.Colors) {
			col = c.Colors[i]
		}
		line.Color = col
		line.Width = vg.Points(2)
		points.Color = col
		points.Shape = draw.CircleGlyph{}
		if c.Single {
			line.Color, points.Color = ink, ink
			line.Width = vg.Points(4)
			points.Radius = vg.Points(4)
		}
		p.Add(line, points)
		if !c.Single && series.Name != "" {
			p.Legend.Add(series.Name, line, points)
		}

		for _, pt := range series.Points {
			xmin, xmax = math.Min(xmin, pt.X), math.Max(xmax, pt.X)
			ymax = math.Max(ymax, pt.Y)
		}
	}
	if math.IsInf(xmin, 1) {
		return eris.Errorf("chart: %s has no points", path)
	}

	if c.Band != nil {
		top := ymax * 1.05
		if top <= 0 {
			top = 1
		}
		if err := addBand(p, *c.Band, top); err != nil {
			return err
		}
	}

	p.Y.Min = 0
	p.X.Tick.Marker = plot.ConstantTicks(yearTicks(xmin, xmax))
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return s.save(p, path)
}

// addBand shades the band and marks its edges with dashed lines.
func addBand(p *plot.Plot, b Band, top float64) error {
	fill, err := plotter.NewPolygon(plotter.XYs{
		{X: b.Start, Y: 0}, {X: b.Start, Y: top}, {X: b.End, Y: top}, {X: b.End, Y: 0},
	})
	if err != nil {
		return eris.Wrap(err, "chart: band")
	}
	fill.Color = color.NRGBA{R: 255, A: 77}
	fill.LineStyle.Width = 0
	p.Add(fill)
	if b.Label != "" {
		p.Legend.Add(b.Label, fill)
	}

	for _, x := range []float64{b.Start, b.End} {
		edge, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: top}})
		if err != nil {
			return eris.Wrap(err, "chart: band edge")
		}
		edge.Color = covidRed
		edge.Width = vg.Points(2)
		edge.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		p.Add(edge)
	}
	return nil
}
