// Package chart builds ready-to-run charts on top of the quill runtime.
//
// The runtime core knows nothing about chart types: it renders, animates,
// and hit-tests primitives. This package supplies the collaborators around
// it — validated datasets, per-type layout initializers (line, pie), and the
// top-level Config/New entry point that wires them into an Engine.
package chart

import (
	"fmt"

	"github.com/phanxgames/quill"
)

// ConfigurationError reports missing or unsupported top-level chart setup.
// New raises it synchronously, before any primitive exists.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "chart: invalid configuration: " + e.Reason
}

// Initializer builds the primitives of one chart type into the context.
// Chart types are injected capabilities: a custom Initializer in Config
// replaces the built-in table lookup entirely.
type Initializer func(ctx quill.Context, data *Dataset, theme quill.Theme) error

// initializers is the built-in chart-type table. Read-only.
var initializers = map[string]Initializer{
	"line": InitLine,
	"pie":  InitPie,
}

// Config is the explicit top-level chart setup.
type Config struct {
	// Width and Height size the drawing surface in pixels. Required.
	Width, Height int

	// Type selects a built-in chart type ("line", "pie"). Ignored when
	// Initializer is set.
	Type string

	// Initializer, when non-nil, is an injected chart-type handler used
	// instead of the built-in table.
	Initializer Initializer

	// Data is the source dataset. Required; validated before any primitive
	// is created.
	Data *Dataset

	// Theme layers per-kind styles over the built-in defaults.
	Theme quill.Theme

	// Background fills the surface at the start of every frame.
	Background quill.Color
}

// Chart couples a validated dataset with the engine running its primitives.
type Chart struct {
	engine *quill.Engine
	data   *Dataset
}

// New validates the configuration, refreshes the dataset, and builds the
// chart's primitives into a fresh engine. Configuration and data errors
// abort before any primitive exists.
func New(cfg Config) (*Chart, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &ConfigurationError{Reason: "surface size is required"}
	}
	if cfg.Data == nil {
		return nil, &ConfigurationError{Reason: "data is required"}
	}
	init := cfg.Initializer
	if init == nil {
		if cfg.Type == "" {
			return nil, &ConfigurationError{Reason: "chart type is required"}
		}
		var ok bool
		init, ok = initializers[cfg.Type]
		if !ok {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("unsupported chart type %q", cfg.Type)}
		}
	}
	if err := cfg.Data.Refresh(); err != nil {
		return nil, err
	}

	engine := quill.NewEngine(cfg.Width, cfg.Height)
	engine.Background = cfg.Background
	if err := init(engine.Context(), cfg.Data, cfg.Theme); err != nil {
		return nil, err
	}
	return &Chart{engine: engine, data: cfg.Data}, nil
}

// Engine returns the chart's engine for starting, stopping, and pointer
// wiring.
func (c *Chart) Engine() *quill.Engine {
	return c.engine
}

// Data returns the chart's dataset.
func (c *Chart) Data() *Dataset {
	return c.data
}

// Run opens a window and drives the chart until it closes.
func (c *Chart) Run(title string) error {
	return quill.Run(c.engine, quill.RunConfig{
		Title:  title,
		Width:  c.engine.Surface().Width(),
		Height: c.engine.Surface().Height(),
	})
}

// num normalizes the numeric types that reach style maps from Go literals
// and YAML decoding.
func num(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// styleColor reads a color property that may be a quill.Color value (set by
// initializers) or an {r, g, b, a} map (set by YAML themes).
func styleColor(p *quill.Primitive, key string, fallback quill.Color) quill.Color {
	switch v := p.Data[key].(type) {
	case quill.Color:
		return v
	case map[string]any:
		c := fallback
		if f, ok := num(v["r"]); ok {
			c.R = f
		}
		if f, ok := num(v["g"]); ok {
			c.G = f
		}
		if f, ok := num(v["b"]); ok {
			c.B = f
		}
		if f, ok := num(v["a"]); ok {
			c.A = f
		}
		return c
	}
	return fallback
}

// seriesPalette is the default color cycle assigned to series and slices in
// order.
var seriesPalette = []quill.Color{
	{R: 0.31, G: 0.62, B: 0.93, A: 1}, // blue
	{R: 0.94, G: 0.49, B: 0.31, A: 1}, // orange
	{R: 0.37, G: 0.80, B: 0.53, A: 1}, // green
	{R: 0.85, G: 0.37, B: 0.62, A: 1}, // pink
	{R: 0.95, G: 0.78, B: 0.32, A: 1}, // yellow
	{R: 0.58, G: 0.47, B: 0.88, A: 1}, // violet
}
