package quill

import (
	"fmt"
	"os"
)

// Registry is the ordered collection of live primitives driving per-frame
// update, render, and spatial queries.
//
// Insertion order is the single ordering contract: Add appends, and Update,
// Render, and ObjectsUnder all traverse forward in insertion order. The
// first-added primitive is therefore updated first, painted first (bottom of
// the z stack), and hit-tested first.
//
// Adding the same reference twice without an intervening Remove makes Remove
// ambiguous (it deletes the first match only); don't do it.
type Registry struct {
	prims []*Primitive

	// OnPanic receives panics recovered at the per-primitive boundary during
	// update, render, and event dispatch. One failing primitive never halts
	// traversal of the rest nor the frame loop. The default reports to
	// stderr; set to nil to drop reports.
	OnPanic func(p *Primitive, op string, v any)
}

// NewRegistry creates an empty registry. An empty registry is a valid, fully
// functional state for every operation.
func NewRegistry() *Registry {
	return &Registry{OnPanic: reportPanic}
}

func reportPanic(p *Primitive, op string, v any) {
	_, _ = fmt.Fprintf(os.Stderr, "[quill] recovered panic during %s: %v\n", op, v)
}

// Add appends primitives to the end of the registry, preserving the given
// order.
func (r *Registry) Add(prims ...*Primitive) {
	r.prims = append(r.prims, prims...)
}

// Remove deletes the first reference-equal entry. Removing an absent
// primitive is a no-op, not an error.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (r *Registry) Remove(p *Primitive) {
	for i, q := range r.prims {
		if q == p {
			copy(r.prims[i:], r.prims[i+1:])
			r.prims[len(r.prims)-1] = nil
			r.prims = r.prims[:len(r.prims)-1]
			return
		}
	}
}

// Len returns the number of live primitives.
func (r *Registry) Len() int {
	return len(r.prims)
}

// Has reports whether the primitive is currently registered.
func (r *Registry) Has(p *Primitive) bool {
	for _, q := range r.prims {
		if q == p {
			return true
		}
	}
	return false
}

// Primitives returns the live list in insertion order. The returned slice
// MUST NOT be mutated by the caller.
func (r *Registry) Primitives() []*Primitive {
	return r.prims
}

// ObjectsUnder returns the primitives whose hit predicate contains the
// surface point (x, y), in registry order. The point is translated into each
// primitive's local space before testing. Primitives that are invisible,
// mouse-disabled, or of a kind without an IsInside capability never match.
// Pure query; no state is mutated.
func (r *Registry) ObjectsUnder(x, y float64) []*Primitive {
	var hits []*Primitive
	for _, p := range r.prims {
		if !p.Visible || !p.MouseEnabled {
			continue
		}
		if p.IsInside(x-p.X, y-p.Y) {
			hits = append(hits, p)
		}
	}
	return hits
}

// Update advances every non-static primitive's animation task queue, in
// insertion order. A panic inside one primitive's update is recovered,
// reported through OnPanic, and traversal continues.
func (r *Registry) Update() {
	for _, p := range r.prims {
		if p.Static {
			continue
		}
		r.updateOne(p)
	}
}

func (r *Registry) updateOne(p *Primitive) {
	defer r.recoverPanic(p, "update")
	p.advanceTasks()
}

// Render paints every visible primitive onto the surface, in the same
// insertion order Update uses. A panic inside one primitive's render is
// recovered after its transform and paint state have been restored, and
// traversal continues.
func (r *Registry) Render(s *Surface) {
	for _, p := range r.prims {
		if !p.Visible {
			continue
		}
		r.renderOne(p, s)
	}
}

func (r *Registry) renderOne(p *Primitive, s *Surface) {
	defer r.recoverPanic(p, "render")
	p.render(s)
}

// fire delivers an event to a primitive's handler with the same per-primitive
// panic isolation as update and render.
func (r *Registry) fire(p *Primitive, ev EventType, x, y float64) {
	h := p.handler(ev)
	if h == nil {
		return
	}
	defer r.recoverPanic(p, "event")
	h(Event{
		Primitive: p,
		Type:      ev,
		X:         x,
		Y:         y,
		LocalX:    x - p.X,
		LocalY:    y - p.Y,
	})
}

// recoverPanic is installed via defer at every per-primitive boundary.
func (r *Registry) recoverPanic(p *Primitive, op string) {
	if v := recover(); v != nil {
		if r.OnPanic != nil {
			r.OnPanic(p, op, v)
		}
	}
}
