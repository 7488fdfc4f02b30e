package chart

import (
	"errors"
	"testing"

	"github.com/phanxgames/quill"
)

func twoSeries() *Dataset {
	d := NewDataset()
	d.SetSeries("a", []Point{{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 2}})
	d.SetSeries("b", []Point{{X: 0, Y: 2}, {X: 1, Y: 1}, {X: 2, Y: 4}})
	return d
}

func TestNewRequiresSize(t *testing.T) {
	_, err := New(Config{Type: "line", Data: twoSeries()})
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want *ConfigurationError", err)
	}
}

func TestNewRequiresData(t *testing.T) {
	_, err := New(Config{Width: 100, Height: 100, Type: "line"})
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want *ConfigurationError", err)
	}
}

func TestNewRequiresType(t *testing.T) {
	_, err := New(Config{Width: 100, Height: 100, Data: twoSeries()})
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want *ConfigurationError", err)
	}
}

func TestNewUnsupportedType(t *testing.T) {
	_, err := New(Config{Width: 100, Height: 100, Type: "hexbin", Data: twoSeries()})
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want *ConfigurationError", err)
	}
}

func TestNewPropagatesDataValidation(t *testing.T) {
	d := NewDataset()
	d.SetSeries("a", nil)
	_, err := New(Config{Width: 100, Height: 100, Type: "line", Data: d})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestNewCustomInitializer(t *testing.T) {
	called := false
	c, err := New(Config{
		Width:  100,
		Height: 100,
		Type:   "hexbin", // ignored when Initializer is set
		Data:   twoSeries(),
		Initializer: func(ctx quill.Context, data *Dataset, theme quill.Theme) error {
			called = true
			if ctx.Registry == nil || ctx.Surface == nil {
				t.Error("initializer should receive a complete context")
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !called {
		t.Fatal("custom initializer should replace the built-in table")
	}
	if c.Engine() == nil || c.Data() == nil {
		t.Error("chart accessors should be wired")
	}
}

func TestNewInitializerErrorAborts(t *testing.T) {
	boom := errors.New("layout failure")
	_, err := New(Config{
		Width:  100,
		Height: 100,
		Data:   twoSeries(),
		Initializer: func(ctx quill.Context, data *Dataset, theme quill.Theme) error {
			return boom
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the initializer's error", err)
	}
}

func TestNewLineChartPrimitiveCount(t *testing.T) {
	data := twoSeries()
	c, err := New(Config{Width: 400, Height: 300, Type: "line", Data: data})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// 2 axes + per series one polyline and one dot per point.
	want := 2 + 2*(1+3)
	if got := c.Engine().Registry().Len(); got != want {
		t.Errorf("primitives = %d, want %d", got, want)
	}
}

func TestNewPieChartPrimitiveCount(t *testing.T) {
	d := NewDataset()
	d.SetSeries("share", []Point{{Y: 3}, {Y: 5}, {Y: 2}})
	c, err := New(Config{Width: 300, Height: 300, Type: "pie", Data: d})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := c.Engine().Registry().Len(); got != 3 {
		t.Errorf("primitives = %d, want one slice per point", got)
	}
}

func TestStyleColorForms(t *testing.T) {
	k := quill.MustDefine(func(p *quill.Primitive, s *quill.Surface) {}, quill.Capabilities{})

	direct := k.New(quill.Style{"fill": quill.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}}, nil)
	if c := styleColor(direct, "fill", quill.ColorWhite); c.G != 0.2 {
		t.Errorf("direct color G = %f, want 0.2", c.G)
	}

	// YAML themes decode colors as nested maps.
	themed := k.New(quill.Style{"fill": map[string]any{"r": 0.5, "g": 1, "b": 0.25}}, nil)
	c := styleColor(themed, "fill", quill.Color{A: 1})
	if c.R != 0.5 || c.G != 1 || c.B != 0.25 || c.A != 1 {
		t.Errorf("themed color = %+v", c)
	}

	missing := k.New(nil, nil)
	if c := styleColor(missing, "fill", seriesPalette[2]); c != seriesPalette[2] {
		t.Errorf("missing color = %+v, want the fallback", c)
	}
}
