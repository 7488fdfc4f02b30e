package quill

import "sync"

// Dispatcher is the pointer hover/click state machine built on registry
// queries. Hover state per primitive is a two-state machine: entering fires
// "over", staying while the pointer moves fires "move", leaving fires "out".
//
// Move inputs arrive as asynchronous callbacks that only write the latest
// pointer position; the position is consulted at the next tick boundary, so
// fast successive moves within one frame coalesce and only the final
// position is observed. Click dispatch is synchronous and independent of
// ticks; when a fallback engine loop owns the ticks, clicks route through
// Engine.Click so handlers never race a tick.
type Dispatcher struct {
	registry *Registry

	// Latest sampled pointer position (depth-1 latest-value slot). Guarded
	// by mu: Move may be called from a goroutine other than the ticking one.
	mu                 sync.Mutex
	pointerX, pointerY float64
	sampled            bool

	// Coordinates used by the previous tick's hit test.
	lastX, lastY float64
	checked      bool

	// hover is the set of primitives currently flagged pointer-over. It is
	// not authoritative state: it exists only to diff events and is replaced
	// from query results each tick.
	hover map[*Primitive]bool
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{
		registry: reg,
		hover:    map[*Primitive]bool{},
	}
}

// Move records the latest pointer position in surface-local pixel
// coordinates. It performs no dispatch; the next tick consumes the position.
// Safe to call from any goroutine.
func (d *Dispatcher) Move(x, y float64) {
	d.mu.Lock()
	d.pointerX, d.pointerY = x, y
	d.sampled = true
	d.mu.Unlock()
}

// Hovering reports whether the primitive is currently flagged pointer-over.
func (d *Dispatcher) Hovering(p *Primitive) bool {
	return d.hover[p]
}

// tick diffs the hover state against the current query results. When the
// pointer has not moved since the previous tick, no hit test runs and no
// event fires — this throttle is a deliberate contract, not an internal
// detail.
func (d *Dispatcher) tick() {
	d.mu.Lock()
	x, y, sampled := d.pointerX, d.pointerY, d.sampled
	d.mu.Unlock()
	if !sampled {
		return
	}
	if d.checked && x == d.lastX && y == d.lastY {
		return
	}

	current := d.registry.ObjectsUnder(x, y)
	next := make(map[*Primitive]bool, len(current))
	for _, p := range current {
		next[p] = true
		if d.hover[p] {
			d.registry.fire(p, EventMove, x, y)
		} else {
			d.registry.fire(p, EventOver, x, y)
		}
	}
	for p := range d.hover {
		if next[p] {
			continue
		}
		// A primitive removed from the registry while hovered leaves the
		// buffer silently; it is no longer live, so no "out" fires.
		if d.registry.Has(p) {
			d.registry.fire(p, EventOut, x, y)
		}
	}

	d.hover = next
	d.lastX, d.lastY = x, y
	d.checked = true
}

// Click synchronously fires "click" on every primitive under (x, y), in
// registry order. It bypasses the move throttle and does not touch hover
// state.
func (d *Dispatcher) Click(x, y float64) {
	for _, p := range d.registry.ObjectsUnder(x, y) {
		d.registry.fire(p, EventClick, x, y)
	}
}
