package chart

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sells-group/tourism-cli/internal/geo"
)

var (
	redsLow    = color.RGBA{R: 0xff, G: 0xf5, B: 0xf0, A: 255}
	redsHigh   = color.RGBA{R: 0x67, G: 0x00, B: 0x0d, A: 255}
	noDataGrey = color.RGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 255}
)

// calloutOffsets place the numbers of the top prefectures away from their
// centroids, in map units. A zero offset prints the number on the centroid.
var calloutOffsets = [][2]float64{
	{1.2, -1.5}, {1.5, -1.2}, {1.5, -0.8}, {-1.2, 1.5}, {-1.8, 0.6},
	{-0.9, -1.2}, {0.8, -1.8}, {1.8, -0.9}, {0, 0}, {0.8, -1.8},
}

// ChoroplethChart describes a shaded prefecture map. Ranked lists the
// prefecture names to number, best first.
type ChoroplethChart struct {
	Title  string
	Areas  []geo.Shaded
	Ranked []string
}

// Choropleth renders c to path.
func (s Style) Choropleth(path string, c ChoroplethChart) error {
	if len(c.Areas) == 0 {
		return eris.Errorf("chart: %s has no areas", path)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, a := range c.Areas {
		if a.HasRate {
			lo, hi = math.Min(lo, a.Rate), math.Max(hi, a.Rate)
		}
	}
	reds := newGradient(redsLow, redsHigh, 64)

	p := s.newPlot(c.Title, "", "")
	p.HideAxes()

	byName := make(map[string]geo.Shaded, len(c.Areas))
	prefs := make([]geo.Prefecture, 0, len(c.Areas))
	for _, a := range c.Areas {
		byName[a.Name] = a
		prefs = append(prefs, a.Prefecture)

		fill := color.Color(noDataGrey)
		if a.HasRate {
			fill = reds.at(a.Rate, lo, hi)
		}
		for _, ring := range a.Rings() {
			pts := make(plotter.XYs, 0, len(ring)/2)
			for i := 0; i+1 < len(ring); i += 2 {
				pts = append(pts, plotter.XY{X: ring[i], Y: ring[i+1]})
			}
			poly, err := plotter.NewPolygon(pts)
			if err != nil {
				return eris.Wrapf(err, "chart: polygon %s", a.Name)
			}
			poly.Color = fill
			poly.LineStyle.Width = vg.Points(0.5)
			poly.LineStyle.Color = color.Black
			p.Add(poly)
		}
	}

	var legend strings.Builder
	legend.WriteString("Top 10 Prefectures:")
	var numberXYs plotter.XYs
	var numbers []string
	for i, name := range c.Ranked {
		a, ok := byName[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&legend, "\n%d. %s: %.1f%%", i+1, a.Survey, a.Rate)

		cx, cy := a.Centroid.X(), a.Centroid.Y()
		var off [2]float64
		if i < len(calloutOffsets) {
			off = calloutOffsets[i]
		}
		if off != [2]float64{} {
			leader, err := plotter.NewLine(plotter.XYs{{X: cx, Y: cy}, {X: cx + off[0], Y: cy + off[1]}})
			if err != nil {
				return eris.Wrap(err, "chart: leader line")
			}
			leader.Width = vg.Points(0.8)
			leader.Color = color.Black
			p.Add(leader)
		}
		numberXYs = append(numberXYs, plotter.XY{X: cx + off[0]*1.15, Y: cy + off[1]*1.15})
		numbers = append(numbers, fmt.Sprint(i+1))
	}

	if len(numbers) > 0 {
		lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: numberXYs, Labels: numbers})
		if err != nil {
			return eris.Wrap(err, "chart: callouts")
		}
		for i := range lbl.TextStyle {
			lbl.TextStyle[i].Font.Size = vg.Points(10)
			lbl.TextStyle[i].XAlign = draw.XCenter
			lbl.TextStyle[i].YAlign = draw.YCenter
		}
		p.Add(lbl)
	}

	b := geo.Bounds(prefs)
	p.X.Min, p.X.Max = b.Min(0), b.Max(0)
	p.Y.Min, p.Y.Max = b.Min(1), b.Max(1)

	if len(numbers) > 0 {
		box, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{{X: b.Min(0), Y: b.Max(1)}},
			Labels: []string{legend.String()},
		})
		if err != nil {
			return eris.Wrap(err, "chart: legend")
		}
		box.TextStyle[0].Font.Size = s.TickSize
		box.TextStyle[0].YAlign = draw.YTop
		p.Add(box)
	}

	return s.save(p, path)
}
