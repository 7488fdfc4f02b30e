package chart

import (
	"github.com/phanxgames/quill"
)

// plotMargin is the padding, in pixels, between the surface edge and the
// plot area.
const plotMargin = 40.0

// plotRect computes the plot area inside a surface of the given pixel size.
func plotRect(w, h int) quill.Rect {
	return quill.Rect{
		X:      plotMargin,
		Y:      plotMargin,
		Width:  float64(w) - 2*plotMargin,
		Height: float64(h) - 2*plotMargin,
	}
}

// xAt projects sample index i of n evenly across the plot width.
func xAt(plot quill.Rect, i, n int) float64 {
	if n <= 1 {
		return plot.X + plot.Width/2
	}
	return plot.X + plot.Width*float64(i)/float64(n-1)
}

// yAt projects a data value onto the plot, Y increasing downward. A
// zero-range dataset maps to the vertical center.
func yAt(plot quill.Rect, b Bounds, v float64) float64 {
	if b.Range == 0 {
		return plot.Y + plot.Height/2
	}
	return plot.Y + plot.Height*(1-(v-b.Min)/b.Range)
}

// axisKind draws one horizontal or vertical rule with evenly spaced tick
// marks. Axis primitives are static: they never animate, so the registry
// skips their per-frame update entirely.
var axisKind = quill.MustDefine(renderAxis, quill.Capabilities{
	Defaults: quill.Style{
		"length":      0.0,
		"ticks":       5.0,
		"ticksize":    4.0,
		"strokewidth": 1.0,
		"static":      true,
	},
})

var axisColor = quill.Color{R: 0.45, G: 0.45, B: 0.5, A: 1}

func renderAxis(p *quill.Primitive, s *quill.Surface) {
	length, _ := p.Property("length")
	ticks, _ := p.Property("ticks")
	ticksize, _ := p.Property("ticksize")
	width, _ := p.Property("strokewidth")
	vertical, _ := p.Data["vertical"].(bool)
	c := styleColor(p, "stroke", axisColor)

	if vertical {
		s.StrokeLine(0, 0, 0, length, width, c)
	} else {
		s.StrokeLine(0, 0, length, 0, width, c)
	}
	n := int(ticks)
	if n < 1 {
		return
	}
	for i := 0; i <= n; i++ {
		at := length * float64(i) / float64(n)
		if vertical {
			s.StrokeLine(-ticksize, at, 0, at, width, c)
		} else {
			s.StrokeLine(at, 0, at, ticksize, width, c)
		}
	}
}

// buildAxes creates the x and y axis primitives for a plot area and adds
// them to the registry, x axis along the bottom edge, y axis along the left.
func buildAxes(ctx quill.Context, theme quill.Theme, plot quill.Rect) {
	style := theme.Style("axis")
	x := axisKind.New(quill.Style{
		"x":      plot.X,
		"y":      plot.Y + plot.Height,
		"length": plot.Width,
	}, style)
	y := axisKind.New(quill.Style{
		"x":        plot.X,
		"y":        plot.Y,
		"length":   plot.Height,
		"vertical": true,
	}, style)
	ctx.Registry.Add(x, y)
}
