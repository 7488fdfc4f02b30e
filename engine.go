package quill

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// tickInterval approximates a 60 Hz display refresh for the fallback
// scheduler.
const tickInterval = 16700 * time.Microsecond

// Engine is the frame scheduler. Each tick, while running, it dispatches
// pointer hover events, advances every primitive's animation queue, and
// repaints the surface — in that order, with no tick overlapping another.
//
// Two scheduling sources exist. Hosted: the engine implements ebiten.Game,
// and the display's refresh signal drives ticks through Update (see Run).
// Fallback: when not hosted, Start launches a fixed ~16.7ms ticker.
type Engine struct {
	registry *Registry
	pointer  *Dispatcher
	surface  *Surface

	// Background is the fill applied to the surface at the start of every
	// frame. A fully transparent background leaves the cleared canvas.
	Background Color

	running atomic.Bool
	hosted  bool

	// loopGen invalidates fallback loops from before the latest Start. A
	// stop/start cycle inside one tick interval would otherwise leave the
	// old loop alive: it sleeps through the Stop and wakes to a running flag
	// set by the new Start.
	loopGen atomic.Uint64

	// frameMu serializes ticks against pointer input arriving from other
	// goroutines in fallback mode. One tick never overlaps another.
	frameMu sync.Mutex

	// Press edge detection for hosted click input.
	prevPressed bool
}

// NewEngine creates an engine with a fresh registry, pointer dispatcher, and
// an offscreen surface of the given pixel size.
func NewEngine(width, height int) *Engine {
	reg := NewRegistry()
	return &Engine{
		registry: reg,
		pointer:  NewDispatcher(reg),
		surface:  NewSurface(width, height),
	}
}

// Registry returns the engine's primitive registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Pointer returns the engine's pointer dispatcher. Hosts without a window
// feed positions through Dispatcher.Move, which is safe from any goroutine;
// clicks go through Engine.Click while the fallback ticker runs.
func (e *Engine) Pointer() *Dispatcher {
	return e.pointer
}

// Surface returns the engine's drawing surface.
func (e *Engine) Surface() *Surface {
	return e.surface
}

// Context is the capability bundle handed to chart-initialization code: the
// registry to add primitives to and the surface they will be drawn on.
// Passing it explicitly replaces any notion of shared global chart state.
type Context struct {
	Registry *Registry
	Surface  *Surface
}

// Context returns the engine's initialization context.
func (e *Engine) Context() Context {
	return Context{Registry: e.registry, Surface: e.surface}
}

// Running reports whether the engine is in the running state.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// Start transitions the engine from idle to running. When the engine is not
// hosted by an ebiten game loop, Start also launches the fallback ticker
// that drives Tick until Stop. Starting a running engine is a no-op.
func (e *Engine) Start() {
	if !e.running.CompareAndSwap(false, true) {
		return
	}
	gen := e.loopGen.Add(1)
	if !e.hosted {
		go e.loop(gen)
	}
}

// Stop transitions the engine to idle. The next already-scheduled tick
// observes the flag, performs no work, and reschedules nothing. Animation
// remaining-frame counts freeze while stopped; missed ticks are never
// replayed across a stop/start cycle.
func (e *Engine) Stop() {
	e.running.Store(false)
}

// loop is the fallback scheduler used when no display loop hosts the engine.
func (e *Engine) loop(gen uint64) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for range ticker.C {
		if !e.keepTicking(gen) {
			return
		}
		e.Tick()
	}
}

// keepTicking reports whether the loop spawned with the given generation
// token should run another tick. A loop from before the latest Start exits
// even when the engine is running again.
func (e *Engine) keepTicking(gen uint64) bool {
	return e.running.Load() && e.loopGen.Load() == gen
}

// Tick runs one frame: pointer hover dispatch, then animation update, then
// surface repaint. No-op when the engine is idle.
func (e *Engine) Tick() {
	if !e.running.Load() {
		return
	}
	e.frameMu.Lock()
	defer e.frameMu.Unlock()
	e.pointer.tick()
	e.registry.Update()
	e.surface.Clear()
	if e.Background.A > 0 {
		e.surface.Background(e.Background)
	}
	e.registry.Render(e.surface)
}

// Click dispatches a raw click at surface-local pixel coordinates,
// serialized against the frame loop. Headless hosts call this rather than
// the dispatcher directly while the fallback ticker runs, so click handlers
// never race a tick mutating the same primitives.
func (e *Engine) Click(x, y float64) {
	e.frameMu.Lock()
	defer e.frameMu.Unlock()
	e.pointer.Click(x, y)
}

// Update implements ebiten.Game. It samples pointer input from the host
// window and runs one tick while the engine is running.
func (e *Engine) Update() error {
	if !e.running.Load() {
		return nil
	}
	e.samplePointer()
	e.Tick()
	return nil
}

// samplePointer feeds the host cursor into the dispatcher and detects click
// presses by edge, mirroring raw click input.
func (e *Engine) samplePointer() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	e.pointer.Move(x, y)

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if pressed && !e.prevPressed {
		e.pointer.Click(x, y)
	}
	e.prevPressed = pressed
}

// Draw implements ebiten.Game by blitting the persistent surface to the
// screen.
func (e *Engine) Draw(screen *ebiten.Image) {
	screen.DrawImage(e.surface.Image(), nil)
}

// Layout implements ebiten.Game.
func (e *Engine) Layout(_, _ int) (int, int) {
	return e.surface.Width(), e.surface.Height()
}

// RunConfig configures the window for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// Run opens a window sized to the config, starts the engine, and blocks
// inside ebiten's game loop until the window closes. The display refresh
// signal becomes the engine's tick source.
func Run(e *Engine, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = e.surface.Width()
	}
	if h <= 0 {
		h = e.surface.Height()
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)

	e.hosted = true
	e.Start()
	return ebiten.RunGame(e)
}
