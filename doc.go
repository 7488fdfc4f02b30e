// Package quill is a frame-driven runtime for interactive, animatable 2D
// chart primitives on [Ebitengine].
//
// Quill provides the pieces every canvas chart needs under the hood: a
// persistent drawing [Surface], an ordered [Registry] of live primitives
// with spatial hit testing, a per-primitive animation task queue driven by
// [gween] easing curves, a throttled pointer [Dispatcher] for hover and
// click events, and an [Engine] that ticks them all once per frame.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	engine := quill.NewEngine(640, 480)
//	// ... define kinds and add primitives ...
//	quill.Run(engine, quill.RunConfig{
//		Title: "My Chart", Width: 640, Height: 480,
//	})
//
// Without a window, [Engine.Start] drives the same tick from a fixed ~16.7ms
// timer, rendering into the engine's offscreen surface.
//
// # Primitives
//
// Every visual element is a [Primitive] built from a [Kind]. A kind pairs a
// render callback with optional capabilities — hit testing, bounds, an init
// hook, event handlers, and a default property template:
//
//	dot := quill.MustDefine(renderDot, quill.Capabilities{
//		IsInside: func(p *quill.Primitive, x, y float64) bool {
//			r, _ := p.Property("radius")
//			return x*x+y*y <= r*r
//		},
//		Defaults: quill.Style{"radius": 4.0},
//		Events: map[quill.EventType]quill.EventHandler{
//			quill.EventClick: onDotClick,
//		},
//	})
//	p := dot.New(quill.Style{"x": 120.0, "y": 80.0}, style)
//	engine.Registry().Add(p)
//
// Numeric properties animate by name over a fixed frame count:
//
//	p.Animate(map[string]float64{"radius": 8}, 15, nil, "outquad")
//	p.Transition("fadein", 0.5, nil, "")
//
// Chart-type layout (axes, lines, pies) lives in the quill/chart subpackage.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package quill
