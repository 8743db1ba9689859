package chart

import (
	"fmt"
	"image"
	stdpalette "image/color/palette"
	imagedraw "image/draw"
	"image/gif"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/sells-group/tourism-cli/internal/analysis"
)

// RaceChart describes an animated bar chart race.
type RaceChart struct {
	Title  string
	XLabel string
	Frames []analysis.RaceFrame
	// DelayMS is the display time of each frame; the last frame holds for
	// ten times as long.
	DelayMS int
	// Width and Height override the style page size for the animation.
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// RaceGIF renders every frame with gonum/plot and writes an animated GIF.
// Each country keeps its colour across frames.
func (s Style) RaceGIF(path string, c RaceChart) error {
	if len(c.Frames) == 0 {
		return eris.Errorf("chart: %s has no frames", path)
	}
	w, h := c.Width, c.Height
	if w == 0 || h == 0 {
		w, h = 8*vg.Inch, 4.5*vg.Inch
	}
	dpi := c.DPI
	if dpi == 0 {
		dpi = 72
	}
	delay := c.DelayMS / 10
	if delay < 1 {
		delay = 1
	}

	colors := make(map[string]int)
	anim := &gif.GIF{LoopCount: 0}
	for i, f := range c.Frames {
		bc := BarChart{
			Title:  fmt.Sprintf("%s\n%d", c.Title, f.Year),
			XLabel: c.XLabel,
			Format: Millions,
		}
		for _, b := range f.Bars {
			idx, ok := colors[b.Country]
			if !ok {
				idx = len(colors)
				colors[b.Country] = idx
			}
			bc.Bars = append(bc.Bars, Bar{Label: b.Country, Value: b.Value, Text: Millions(b.Value)})
			bc.Colors = append(bc.Colors, s.colorAt(idx))
		}
		if len(bc.Bars) == 0 {
			continue
		}

		p := s.newPlot(bc.Title, bc.XLabel, "")
		if err := s.addHorizontalBars(p, bc); err != nil {
			return err
		}

		canvas := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
		p.Draw(draw.New(canvas))
		img := canvas.Image()

		frame := image.NewPaletted(img.Bounds(), stdpalette.Plan9)
		imagedraw.Draw(frame, frame.Rect, img, img.Bounds().Min, imagedraw.Src)
		anim.Image = append(anim.Image, frame)

		d := delay
		if i == len(c.Frames)-1 {
			d = delay * 10
		}
		anim.Delay = append(anim.Delay, d)
	}
	if len(anim.Image) == 0 {
		return eris.Errorf("chart: %s has only empty frames", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "chart: create dir for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "chart: create %s", path)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		_ = f.Close()
		return eris.Wrapf(err, "chart: encode %s", path)
	}
	return eris.Wrapf(f.Close(), "chart: close %s", path)
}

// Millions prints a count as "12.3M".
func Millions(v float64) string {
	return fmt.Sprintf("%.1fM", v/1e6)
}
