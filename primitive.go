package quill

import (
	"fmt"
	"sort"
	"strings"
)

// RenderFunc draws a primitive onto the surface. It runs inside a scoped
// transform (translate, rotate, scale) and paint state (alpha) that the
// registry restores afterwards, so the callback may adjust both freely.
type RenderFunc func(p *Primitive, s *Surface)

// InsideFunc reports whether a point lies inside the primitive. The point is
// given in local coordinates, relative to the primitive's origin.
type InsideFunc func(p *Primitive, x, y float64) bool

// BoundsFunc returns the primitive's axis-aligned bounding box in local
// coordinates.
type BoundsFunc func(p *Primitive) Rect

// InitFunc is an optional construction hook. It runs after instance data has
// been merged and before the resolved style is applied.
type InitFunc func(p *Primitive)

// Capabilities declares the optional behavior of a primitive kind. Only the
// render function is mandatory (passed to Define directly).
type Capabilities struct {
	// IsInside enables hit testing. Kinds without it never match spatial
	// queries and never receive pointer events.
	IsInside InsideFunc

	// Bounds enables bounding-box queries.
	Bounds BoundsFunc

	// Init runs once per instance during construction.
	Init InitFunc

	// Events maps event types to handlers shared by all instances of the
	// kind. Declaring events requires IsInside: handlers without hit testing
	// are unreachable and treated as a definition mistake.
	Events map[EventType]EventHandler

	// Defaults is the kind's per-item default property template, merged under
	// instance data. Its numeric keys join the animatable property set.
	Defaults Style
}

// Kind is a primitive factory created by Define. One Kind is shared by all
// instances of a primitive sort (a pie slice, an axis line, a data dot).
type Kind struct {
	render   RenderFunc
	isInside InsideFunc
	bounds   BoundsFunc
	init     InitFunc
	events   map[EventType]EventHandler
	defaults Style

	// animatable is the per-kind property descriptor set, fixed at
	// definition time: the core transform properties plus every numeric key
	// of the defaults template.
	animatable map[string]bool
}

// Define creates a primitive kind from a render function and its optional
// capabilities. It returns a DefinitionError when render is nil or when
// events are declared without an IsInside predicate.
func Define(render RenderFunc, caps Capabilities) (*Kind, error) {
	if render == nil {
		return nil, &DefinitionError{Reason: "render function is required"}
	}
	if len(caps.Events) > 0 && caps.IsInside == nil {
		return nil, &DefinitionError{Reason: "events declared without an isInside predicate"}
	}
	k := &Kind{
		render:   render,
		isInside: caps.IsInside,
		bounds:   caps.Bounds,
		init:     caps.Init,
		events:   caps.Events,
		defaults: caps.Defaults,
		animatable: map[string]bool{
			"x": true, "y": true, "rotation": true, "scale": true, "alpha": true,
		},
	}
	for key, v := range caps.Defaults {
		if _, ok := toFloat(v); ok {
			k.animatable[key] = true
		}
	}
	return k, nil
}

// MustDefine is like Define but panics on a definition error. Intended for
// package-level kind variables.
func MustDefine(render RenderFunc, caps Capabilities) *Kind {
	k, err := Define(render, caps)
	if err != nil {
		panic(err)
	}
	return k
}

// Primitive is a drawable, animatable, optionally hit-testable visual
// instance. Identity is reference identity; no two instances compare equal
// by value.
type Primitive struct {
	kind *Kind

	// Transform and paint.
	X, Y     float64
	Rotation float64
	Scale    float64
	Alpha    float64

	// Index is a z-ordering hint carried for chart layout code (slice index,
	// series index). The registry itself orders by insertion.
	Index int

	// Visible gates rendering and hit testing. Static freezes the animation
	// queue: static primitives are skipped by Registry.Update but still
	// painted. MouseEnabled gates all pointer dispatch.
	Visible      bool
	Static       bool
	MouseEnabled bool

	// Data holds the merged non-core properties (defaults < data < style).
	// Numeric entries are addressable by name through Property/SetProperty.
	Data map[string]any

	// Per-primitive event handlers, seeded from the kind's events at
	// construction. May be replaced per instance.
	OnOver  EventHandler
	OnMove  EventHandler
	OnOut   EventHandler
	OnClick EventHandler

	// animatable is the instance property descriptor set: the kind's set
	// plus the numeric keys the instance data introduced at construction.
	animatable map[string]bool

	tasks []*Task
}

// New constructs a primitive instance. Properties resolve in three layers
// with fixed precedence — built-in defaults, then the kind's defaults and
// the caller's data, then the resolved style last — and the Init hook runs
// between data and style:
//
//	defaults < kind defaults < data < (Init) < style
//
// A kind with no event handlers constructs with MouseEnabled=false so it
// never pays for hit testing; data or style may still override the flag.
func (k *Kind) New(data, style Style) *Primitive {
	p := &Primitive{
		kind:         k,
		Scale:        1,
		Alpha:        1,
		Visible:      true,
		MouseEnabled: true,
		Data:         map[string]any{},
	}
	if len(k.events) == 0 {
		p.MouseEnabled = false
	} else {
		p.OnOver = k.events[EventOver]
		p.OnMove = k.events[EventMove]
		p.OnOut = k.events[EventOut]
		p.OnClick = k.events[EventClick]
	}

	p.applyProperties(k.defaults)
	p.applyProperties(data)

	p.animatable = make(map[string]bool, len(k.animatable)+len(data))
	for name := range k.animatable {
		p.animatable[name] = true
	}
	for name, v := range data {
		if _, ok := toFloat(v); ok {
			p.animatable[name] = true
		}
	}

	if k.init != nil {
		k.init(p)
	}
	p.applyProperties(style)
	return p
}

// applyProperties merges src onto the primitive: recognized core keys set the
// matching fields, nested maps merge deeply into Data, and everything else is
// written to Data as-is. Later layers win on conflicting keys.
func (p *Primitive) applyProperties(src Style) {
	for key, v := range src {
		if f, ok := toFloat(v); ok {
			switch key {
			case "x":
				p.X = f
				continue
			case "y":
				p.Y = f
				continue
			case "rotation":
				p.Rotation = f
				continue
			case "scale":
				p.Scale = f
				continue
			case "alpha":
				p.Alpha = f
				continue
			case "index":
				p.Index = int(f)
				continue
			}
		}
		if b, ok := v.(bool); ok {
			switch key {
			case "visible":
				p.Visible = b
				continue
			case "static":
				p.Static = b
				continue
			case "mouseEnabled", "mouseenabled":
				p.MouseEnabled = b
				continue
			}
		}
		if nested, ok := v.(map[string]any); ok {
			if cur, ok := p.Data[key].(map[string]any); ok {
				p.Data[key] = mergeMaps(cur, nested)
			} else {
				p.Data[key] = mergeMaps(map[string]any{}, nested)
			}
			continue
		}
		p.Data[key] = v
	}
}

// mergeMaps writes overlay's entries over base, recursing into maps present
// on both sides. base is mutated and returned.
func mergeMaps(base, overlay map[string]any) map[string]any {
	for key, v := range overlay {
		if nested, ok := v.(map[string]any); ok {
			if cur, ok := base[key].(map[string]any); ok {
				base[key] = mergeMaps(cur, nested)
				continue
			}
			base[key] = mergeMaps(map[string]any{}, nested)
			continue
		}
		base[key] = v
	}
	return base
}

// Kind returns the kind this primitive was constructed from.
func (p *Primitive) Kind() *Kind {
	return p.kind
}

// Property returns the named numeric property. The core transform properties
// resolve to the struct fields; any other name resolves through Data. ok is
// false when the property is absent or not numeric.
func (p *Primitive) Property(name string) (value float64, ok bool) {
	switch name {
	case "x":
		return p.X, true
	case "y":
		return p.Y, true
	case "rotation":
		return p.Rotation, true
	case "scale":
		return p.Scale, true
	case "alpha":
		return p.Alpha, true
	}
	v, present := p.Data[name]
	if !present {
		return 0, false
	}
	return toFloat(v)
}

// SetProperty writes a numeric property by name.
func (p *Primitive) SetProperty(name string, value float64) {
	switch name {
	case "x":
		p.X = value
	case "y":
		p.Y = value
	case "rotation":
		p.Rotation = value
	case "scale":
		p.Scale = value
	case "alpha":
		p.Alpha = value
	default:
		p.Data[name] = value
	}
}

// Animate schedules one interpolation task per entry in props, each running
// for the given frame count under the named easing curve (unknown names fall
// back to the default curve).
//
// Validation is per property and the call is partial-success: properties the
// instance lacks, that are not numeric, or that are outside its animatable
// set are reported in the returned PropertyError while every valid property
// is scheduled normally.
//
// onComplete, when non-nil, is attached to every scheduled task and fires
// once per task as it completes. Tasks targeting a property that is already
// animating run independently of the existing task.
func (p *Primitive) Animate(props map[string]float64, frames int, onComplete func(), easing string) error {
	if frames < 1 {
		frames = 1
	}
	fn := EasingByName(easing)

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var rejected []string
	for _, name := range names {
		current, ok := p.Property(name)
		if !ok || !p.animatable[name] {
			rejected = append(rejected, name)
			continue
		}
		p.tasks = append(p.tasks, newTask(name, current, props[name], frames, fn, onComplete))
	}
	if len(rejected) > 0 {
		return &PropertyError{Properties: rejected}
	}
	return nil
}

// transitionFPS converts transition durations to frame counts. The conversion
// is fixed at 60 frames per second regardless of the actual tick rate.
const transitionFPS = 60

// transitionSlide is the horizontal travel distance, in surface pixels, of
// the directional fade transitions.
const transitionSlide = 50.0

// Transition schedules a named preset animation:
//
//   - "fadeout": alpha to 0
//   - "fadein": alpha to 1
//   - "fadeinright": x jumps backward by the slide distance, then alpha to 1
//     and x back to its original position
//   - "fadeinleft": the mirror of fadeinright
//
// seconds defaults to 1 when zero or negative. Easing and completion follow
// Animate semantics.
func (p *Primitive) Transition(name string, seconds float64, onComplete func(), easing string) error {
	if seconds <= 0 {
		seconds = 1
	}
	frames := int(seconds * transitionFPS)

	switch strings.ToLower(name) {
	case "fadeout":
		return p.Animate(map[string]float64{"alpha": 0}, frames, onComplete, easing)
	case "fadein":
		return p.Animate(map[string]float64{"alpha": 1}, frames, onComplete, easing)
	case "fadeinright":
		p.X -= transitionSlide
		return p.Animate(map[string]float64{"alpha": 1, "x": p.X + transitionSlide}, frames, onComplete, easing)
	case "fadeinleft":
		p.X += transitionSlide
		return p.Animate(map[string]float64{"alpha": 1, "x": p.X - transitionSlide}, frames, onComplete, easing)
	}
	return fmt.Errorf("quill: unknown transition %q", name)
}

// IsInside reports whether the local point (x, y) falls inside the primitive.
// Kinds without an IsInside capability never match.
func (p *Primitive) IsInside(x, y float64) bool {
	if p.kind.isInside == nil {
		return false
	}
	return p.kind.isInside(p, x, y)
}

// BoundingBox returns the primitive's local bounding box. ok is false for
// kinds without a Bounds capability.
func (p *Primitive) BoundingBox() (r Rect, ok bool) {
	if p.kind.bounds == nil {
		return Rect{}, false
	}
	return p.kind.bounds(p), true
}

// render invokes the kind's render callback inside a scoped transform
// (translate, rotate, scale) and paint state. The prior state is restored
// unconditionally, even when the callback panics or leaves the state dirty.
func (p *Primitive) render(s *Surface) {
	saved := s.save()
	defer s.restore(saved)
	s.transformBy(p.X, p.Y, p.Rotation, p.Scale)
	s.scaleAlpha(p.Alpha)
	p.kind.render(p, s)
}

// handler returns the instance handler for an event type, nil when unset.
func (p *Primitive) handler(ev EventType) EventHandler {
	switch ev {
	case EventOver:
		return p.OnOver
	case EventMove:
		return p.OnMove
	case EventOut:
		return p.OnOut
	case EventClick:
		return p.OnClick
	}
	return nil
}
