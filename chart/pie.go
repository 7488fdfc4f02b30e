package chart

import (
	"math"

	"github.com/phanxgames/quill"
)

// Built-in pie chart: one slice per point of the first series. Slices sweep
// open on entry and explode outward on click.

// sliceSegments controls arc smoothness: one polygon edge per this many
// radians of sweep.
const sliceSegments = 0.08

// sliceKind renders one pie slice as a triangle fan. The slice's angular
// extent lives in the animatable "start"/"sweep" properties, so the entrance
// animation simply grows sweep; "offset" is the explode distance along the
// slice bisector.
var sliceKind = quill.MustDefine(renderSlice, quill.Capabilities{
	IsInside: sliceInside,
	Bounds:   sliceBounds,
	Defaults: quill.Style{
		"radius":  80.0,
		"start":   0.0,
		"sweep":   0.0,
		"offset":  0.0,
		"explode": 14.0,
	},
	Events: map[quill.EventType]quill.EventHandler{
		quill.EventClick: sliceClick,
	},
})

// sliceOrigin returns the fan origin after the explode offset along the
// bisector.
func sliceOrigin(p *quill.Primitive) (float64, float64) {
	start, _ := p.Property("start")
	sweep, _ := p.Property("sweep")
	offset, _ := p.Property("offset")
	mid := start + sweep/2
	return math.Cos(mid) * offset, math.Sin(mid) * offset
}

func renderSlice(p *quill.Primitive, s *quill.Surface) {
	r, _ := p.Property("radius")
	start, _ := p.Property("start")
	sweep, _ := p.Property("sweep")
	if sweep <= 0 || r <= 0 {
		return
	}
	ox, oy := sliceOrigin(p)

	segments := int(sweep/sliceSegments) + 2
	pts := make([]quill.Vec2, 0, segments+2)
	pts = append(pts, quill.Vec2{X: ox, Y: oy})
	for i := 0; i <= segments; i++ {
		a := start + sweep*float64(i)/float64(segments)
		pts = append(pts, quill.Vec2{X: ox + math.Cos(a)*r, Y: oy + math.Sin(a)*r})
	}
	s.FillPolygon(pts, styleColor(p, "fill", seriesPalette[0]))
}

func sliceInside(p *quill.Primitive, x, y float64) bool {
	r, _ := p.Property("radius")
	start, _ := p.Property("start")
	sweep, _ := p.Property("sweep")
	if sweep <= 0 || r <= 0 {
		return false
	}
	ox, oy := sliceOrigin(p)
	dx, dy := x-ox, y-oy
	if dx*dx+dy*dy > r*r {
		return false
	}
	a := math.Mod(math.Atan2(dy, dx)-start, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a <= sweep
}

func sliceBounds(p *quill.Primitive) quill.Rect {
	r, _ := p.Property("radius")
	offset, _ := p.Property("offset")
	e := r + offset
	return quill.Rect{X: -e, Y: -e, Width: 2 * e, Height: 2 * e}
}

const sliceClickFrames = 12

// sliceClick toggles the explode offset.
func sliceClick(ev quill.Event) {
	p := ev.Primitive
	offset, _ := p.Property("offset")
	target, _ := p.Property("explode")
	if offset > 0 {
		target = 0
	}
	_ = p.Animate(map[string]float64{"offset": target}, sliceClickFrames, nil, "outback")
}

// pieEntranceFrames is the duration of the opening sweep animation.
const pieEntranceFrames = 45

// pieStart is the angle the first slice opens from (twelve o'clock).
const pieStart = -math.Pi / 2

// InitPie lays out a pie chart from the first series. Slice angles are
// proportional to each point's share of the series total; negative values
// are rejected before any primitive is created.
func InitPie(ctx quill.Context, data *Dataset, theme quill.Theme) error {
	names := data.SeriesNames()
	if len(names) == 0 {
		return &ValidationError{Reason: "no series"}
	}
	series := names[0]
	pts := data.Series(series)

	total := 0.0
	for _, pt := range pts {
		if pt.Y < 0 {
			return &ValidationError{Series: series, Reason: "pie values must be non-negative"}
		}
		total += pt.Y
	}
	if total <= 0 {
		return &ValidationError{Series: series, Reason: "pie requires a positive total"}
	}

	w, h := ctx.Surface.Width(), ctx.Surface.Height()
	cx, cy := float64(w)/2, float64(h)/2
	radius := math.Min(float64(w), float64(h))/2 - plotMargin

	style := theme.Style("slice")
	start := pieStart
	for i, pt := range pts {
		sweep := 2 * math.Pi * pt.Y / total
		slice := sliceKind.New(quill.Style{
			"x":      cx,
			"y":      cy,
			"radius": radius,
			"start":  start,
			"value":  pt.Y,
			"fill":   seriesPalette[i%len(seriesPalette)],
			"index":  i,
		}, style)
		ctx.Registry.Add(slice)
		// Sweep opens from zero; hit testing follows the growing extent.
		if err := slice.Animate(map[string]float64{"sweep": sweep}, pieEntranceFrames, nil, "outcubic"); err != nil {
			return err
		}
		start += sweep
	}
	return nil
}
