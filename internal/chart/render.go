package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/hostcompare/internal/utils"
)

// Renderer draws a Figure into w in the given format (png, svg, pdf).
type Renderer interface {
	Render(fig *Figure, w io.Writer, format string) error
}

// GonumRenderer renders Figures with gonum.org/v1/plot.
type GonumRenderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewGonumRenderer returns a renderer producing images of the given size in inches.
func NewGonumRenderer(widthIn, heightIn float64) *GonumRenderer {
	if widthIn <= 0 {
		widthIn = 15
	}
	if heightIn <= 0 {
		heightIn = 10
	}
	return &GonumRenderer{Width: vg.Length(widthIn) * vg.Inch, Height: vg.Length(heightIn) * vg.Inch}
}

// SupportedFormat reports whether format can be rendered.
func SupportedFormat(format string) bool {
	switch strings.ToLower(format) {
	case "png", "svg", "pdf", "jpg", "jpeg", "tif", "tiff", "eps":
		return true
	}
	return false
}

// Render implements Renderer.
func (r *GonumRenderer) Render(fig *Figure, w io.Writer, format string) error {
	if fig == nil || len(fig.Edges) < 2 {
		return fmt.Errorf("render: figure has no bins")
	}
	if !SupportedFormat(format) {
		return fmt.Errorf("render: unsupported format %q", format)
	}
	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.X.Min = fig.Edges[0]
	p.X.Max = fig.Edges[len(fig.Edges)-1]
	p.Y.Min = 0
	p.Y.Max = fig.YMax
	p.Y.Tick.Marker = percentTicks{}
	p.X.Tick.Marker = fixedTicks(fig.XTicks)
	p.Legend.Top = true
	if fig.Grid {
		g := plotter.NewGrid()
		g.Vertical.Color = color.Gray{Y: 200}
		g.Horizontal.Color = color.Gray{Y: 200}
		p.Add(g)
	}

	for _, s := range fig.Series {
		switch fig.Kind {
		case KindCumulative:
			l, err := plotter.NewLine(stepPoints(fig.Edges, s.Heights))
			if err != nil {
				return fmt.Errorf("render %s series: %w", s.Group, err)
			}
			l.StepStyle = plotter.PostStep
			l.LineStyle = draw.LineStyle{Color: s.Color, Width: vg.Points(1.5)}
			p.Add(l)
		default:
			p.Add(bars(fig, s))
		}
	}

	for _, m := range fig.Markers {
		l, err := plotter.NewLine(plotter.XYs{{X: m.X, Y: 0}, {X: m.X, Y: fig.YMax}})
		if err != nil {
			return fmt.Errorf("render marker: %w", err)
		}
		l.LineStyle = draw.LineStyle{Color: m.Color, Width: vg.Points(1), Dashes: []vg.Length{vg.Points(4), vg.Points(3)}}
		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{{X: m.LabelX, Y: m.LabelY}},
			Labels: []string{m.Label},
		})
		if err != nil {
			return fmt.Errorf("render marker label: %w", err)
		}
		for i := range lbl.TextStyle {
			lbl.TextStyle[i].Color = m.Color
		}
		p.Add(l, lbl)
	}

	for _, e := range fig.Legend {
		p.Legend.Add(e.Label, legendThumb{color: e.Color, line: fig.Kind == KindCumulative})
	}

	wt, err := p.WriterTo(r.Width, r.Height, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render write: %w", err)
	}
	return nil
}

// Save renders fig to path, choosing the format from the extension.
func Save(r Renderer, fig *Figure, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return fmt.Errorf("save %s: missing file extension", path)
	}
	var buf bytes.Buffer
	if err := r.Render(fig, &buf, format); err != nil {
		return err
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func bars(fig *Figure, s Series) *plotter.Histogram {
	bins := make([]plotter.HistogramBin, len(s.Heights))
	for i, h := range s.Heights {
		bins[i] = plotter.HistogramBin{Min: fig.Edges[i], Max: fig.Edges[i+1], Weight: h}
	}
	fill := color.NRGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: uint8(fig.Opacity * 255)}
	return &plotter.Histogram{
		Bins:      bins,
		Width:     fig.BinWidth(),
		FillColor: fill,
		LineStyle: draw.LineStyle{Color: fill, Width: vg.Points(0.5)},
	}
}

// stepPoints holds each level from its bin's left edge to the last edge.
func stepPoints(edges, levels []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(levels)+1)
	for i, y := range levels {
		pts = append(pts, plotter.XY{X: edges[i], Y: y})
	}
	if n := len(levels); n > 0 {
		pts = append(pts, plotter.XY{X: edges[n], Y: levels[n-1]})
	}
	return pts
}

type percentTicks struct{}

func (percentTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = strconv.FormatFloat(ticks[i].Value*100, 'g', 4, 64) + "%"
		}
	}
	return ticks
}

type fixedTicks []float64

func (f fixedTicks) Ticks(min, max float64) []plot.Tick {
	if len(f) == 0 {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	// Thin crowded axes so labels stay legible.
	step := len(f)/20 + 1
	ticks := make([]plot.Tick, 0, len(f))
	for i, v := range f {
		t := plot.Tick{Value: v}
		if i%step == 0 {
			t.Label = strconv.FormatFloat(v, 'g', 6, 64)
		}
		ticks = append(ticks, t)
	}
	return ticks
}

type legendThumb struct {
	color color.Color
	line  bool
}

func (t legendThumb) Thumbnail(c *draw.Canvas) {
	if t.line {
		y := c.Center().Y
		c.StrokeLine2(draw.LineStyle{Color: t.color, Width: vg.Points(1.5)}, c.Min.X, y, c.Max.X, y)
		return
	}
	c.FillPolygon(t.color, []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	})
}
