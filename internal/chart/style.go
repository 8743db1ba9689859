// Package chart renders the tourism charts with gonum/plot.
package chart

import (
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Style is shared by every chart.
type Style struct {
	Palette   []color.Color
	Width     vg.Length
	Height    vg.Length
	TitleSize vg.Length
	LabelSize vg.Length
	TickSize  vg.Length
}

// NewStyle builds a style from hex colours and a page size in inches.
func NewStyle(hexPalette []string, widthIn, heightIn float64) (Style, error) {
	pal, err := ParsePalette(hexPalette)
	if err != nil {
		return Style{}, err
	}
	if widthIn <= 0 || heightIn <= 0 {
		return Style{}, eris.Errorf("chart: page size %vx%v must be positive", widthIn, heightIn)
	}
	return Style{
		Palette:   pal,
		Width:     vg.Length(widthIn) * vg.Inch,
		Height:    vg.Length(heightIn) * vg.Inch,
		TitleSize: vg.Points(18),
		LabelSize: vg.Points(14),
		TickSize:  vg.Points(12),
	}, nil
}

// ParsePalette parses "#rrggbb" colours.
func ParsePalette(hex []string) ([]color.Color, error) {
	if len(hex) == 0 {
		return nil, eris.New("chart: empty palette")
	}
	out := make([]color.Color, len(hex))
	for i, h := range hex {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// ParseHex parses one "#rrggbb" colour.
func ParseHex(h string) (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(h), "#")
	if len(s) != 6 {
		return color.RGBA{}, eris.Errorf("chart: bad colour %q", h)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, eris.Errorf("chart: bad colour %q", h)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// colorAt cycles through the palette.
func (s Style) colorAt(i int) color.Color {
	if len(s.Palette) == 0 {
		return color.Black
	}
	return s.Palette[i%len(s.Palette)]
}

// newPlot creates a plot with the style's fonts applied.
func (s Style) newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = s.TitleSize
	p.Title.Padding = vg.Points(12)
	p.X.Label.Text = xLabel
	p.X.Label.TextStyle.Font.Size = s.LabelSize
	p.Y.Label.Text = yLabel
	p.Y.Label.TextStyle.Font.Size = s.LabelSize
	p.X.Tick.Label.Font.Size = s.TickSize
	p.Y.Tick.Label.Font.Size = s.TickSize
	p.Legend.TextStyle.Font.Size = s.TickSize
	return p
}

// save writes p to path, creating the directory. The format follows the extension.
func (s Style) save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "chart: create dir for %s", path)
	}
	if err := p.Save(s.Width, s.Height, path); err != nil {
		return eris.Wrapf(err, "chart: save %s", path)
	}
	return nil
}

// lerp blends two colours; t in [0, 1].
func lerp(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// gradient is a palette.Palette running from one colour to another.
type gradient []color.Color

func newGradient(from, to color.RGBA, n int) gradient {
	g := make(gradient, n)
	for i := range g {
		g[i] = lerp(from, to, float64(i)/float64(n-1))
	}
	return g
}

func (g gradient) Colors() []color.Color { return g }

// at picks the gradient colour for v within [lo, hi].
func (g gradient) at(v, lo, hi float64) color.Color {
	if hi <= lo {
		return g[len(g)-1]
	}
	i := int((v - lo) / (hi - lo) * float64(len(g)-1))
	if i < 0 {
		i = 0
	}
	if i >= len(g) {
		i = len(g) - 1
	}
	return g[i]
}
