package chart

import (
	"github.com/phanxgames/quill"
)

// Built-in line chart: one axis pair, one polyline per series, and a
// hoverable dot on every data point.

// lineKind renders one series polyline. Projected points are stored local to
// the primitive origin so a whole series can slide and fade as a unit.
var lineKind = quill.MustDefine(renderLine, quill.Capabilities{
	Defaults: quill.Style{"strokewidth": 2.0},
})

func renderLine(p *quill.Primitive, s *quill.Surface) {
	pts, _ := p.Data["points"].([]quill.Vec2)
	if len(pts) < 2 {
		return
	}
	width, _ := p.Property("strokewidth")
	s.StrokePolyline(pts, width, styleColor(p, "stroke", seriesPalette[0]))
}

// dotKind marks one data point. Hovering swells the dot; the radius eases
// back when the pointer leaves.
var dotKind = quill.MustDefine(renderDot, quill.Capabilities{
	IsInside: dotInside,
	Bounds:   dotBounds,
	Init:     dotInit,
	Defaults: quill.Style{"radius": 4.0, "hoverradius": 7.0},
	Events: map[quill.EventType]quill.EventHandler{
		quill.EventOver: dotOver,
		quill.EventOut:  dotOut,
	},
})

func renderDot(p *quill.Primitive, s *quill.Surface) {
	r, _ := p.Property("radius")
	s.FillCircle(0, 0, r, styleColor(p, "fill", seriesPalette[0]))
}

func dotInside(p *quill.Primitive, x, y float64) bool {
	r, _ := p.Property("radius")
	return x*x+y*y <= r*r
}

func dotBounds(p *quill.Primitive) quill.Rect {
	r, _ := p.Property("radius")
	return quill.Rect{X: -r, Y: -r, Width: 2 * r, Height: 2 * r}
}

// dotInit records the resting radius before styles can swell it, so hover
// can ease back to it.
func dotInit(p *quill.Primitive) {
	if _, ok := p.Data["baseradius"]; ok {
		return
	}
	r, _ := p.Property("radius")
	p.Data["baseradius"] = r
}

const dotHoverFrames = 8

func dotOver(ev quill.Event) {
	p := ev.Primitive
	// A dot at rest holds its true resting radius, styles included; refresh
	// the recorded base so release returns to it. Mid-release re-entry keeps
	// the earlier record instead of capturing a transient value.
	if len(p.Tasks()) == 0 {
		r, _ := p.Property("radius")
		p.Data["baseradius"] = r
	}
	r, _ := p.Property("hoverradius")
	_ = p.Animate(map[string]float64{"radius": r}, dotHoverFrames, nil, "outquad")
}

func dotOut(ev quill.Event) {
	p := ev.Primitive
	r, _ := p.Property("baseradius")
	_ = p.Animate(map[string]float64{"radius": r}, dotHoverFrames, nil, "outquad")
}

// lineEntranceSeconds is the duration of the initial fade-in.
const lineEntranceSeconds = 0.8

// InitLine lays out a line chart: axes along the plot edges, one polyline
// per series in first-set order, and one dot per point. Series fade in from
// the left; dots fade in place.
func InitLine(ctx quill.Context, data *Dataset, theme quill.Theme) error {
	plot := plotRect(ctx.Surface.Width(), ctx.Surface.Height())
	bounds := data.Bounds()

	buildAxes(ctx, theme, plot)

	lineStyle := theme.Style("line")
	dotStyle := theme.Style("dot")

	for si, name := range data.SeriesNames() {
		pts := data.Series(name)
		tint := seriesPalette[si%len(seriesPalette)]

		local := make([]quill.Vec2, len(pts))
		for i, pt := range pts {
			local[i] = quill.Vec2{X: xAt(plot, i, len(pts)), Y: yAt(plot, bounds, pt.Y)}
		}

		line := lineKind.New(quill.Style{
			"points": local,
			"stroke": tint,
			"series": name,
			"index":  si,
			"alpha":  0.0,
		}, lineStyle)
		ctx.Registry.Add(line)
		if err := line.Transition("fadeinleft", lineEntranceSeconds, nil, ""); err != nil {
			return err
		}

		for i, pt := range pts {
			dot := dotKind.New(quill.Style{
				"x":      local[i].X,
				"y":      local[i].Y,
				"value":  pt.Y,
				"fill":   tint,
				"series": name,
				"index":  i,
				"alpha":  0.0,
			}, dotStyle)
			ctx.Registry.Add(dot)
			if err := dot.Transition("fadein", lineEntranceSeconds, nil, ""); err != nil {
				return err
			}
		}
	}
	return nil
}
