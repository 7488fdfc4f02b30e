package quill

import (
	"errors"
	"testing"
)

func TestDefineRequiresRender(t *testing.T) {
	_, err := Define(nil, Capabilities{})
	var derr *DefinitionError
	if !errors.As(err, &derr) {
		t.Fatalf("err = %v, want *DefinitionError", err)
	}
}

func TestDefineRequiresIsInsideForEvents(t *testing.T) {
	_, err := Define(noopRender, Capabilities{
		Events: map[EventType]EventHandler{
			EventClick: func(Event) {},
		},
	})
	var derr *DefinitionError
	if !errors.As(err, &derr) {
		t.Fatalf("err = %v, want *DefinitionError", err)
	}
}

func TestMustDefinePanicsOnBadDefinition(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustDefine to panic on a nil render function")
		}
	}()
	MustDefine(nil, Capabilities{})
}

func TestNewAppliesBuiltinDefaults(t *testing.T) {
	k := MustDefine(noopRender, Capabilities{})
	p := k.New(nil, nil)

	if p.Scale != 1 || p.Alpha != 1 {
		t.Errorf("Scale = %f, Alpha = %f, want 1, 1", p.Scale, p.Alpha)
	}
	if !p.Visible {
		t.Error("new primitives should be visible")
	}
	if p.Static {
		t.Error("new primitives should not be static")
	}
}

func TestNewPropertyPrecedence(t *testing.T) {
	k := MustDefine(noopRender, Capabilities{
		Defaults: Style{"radius": 4.0, "stroke": 1.0, "tone": 0.5},
	})
	p := k.New(
		Style{"radius": 6.0, "stroke": 2.0},
		Style{"radius": 9.0},
	)

	// style > data > kind defaults.
	if r, _ := p.Property("radius"); r != 9 {
		t.Errorf("radius = %f, want 9 (style wins)", r)
	}
	if s, _ := p.Property("stroke"); s != 2 {
		t.Errorf("stroke = %f, want 2 (data over defaults)", s)
	}
	if v, _ := p.Property("tone"); v != 0.5 {
		t.Errorf("tone = %f, want 0.5 (kind default survives)", v)
	}
}

func TestNewInitRunsBetweenDataAndStyle(t *testing.T) {
	var seen float64
	k := MustDefine(noopRender, Capabilities{
		Defaults: Style{"radius": 4.0},
		Init: func(p *Primitive) {
			// Data is merged, style is not.
			seen, _ = p.Property("radius")
			p.Data["baseradius"] = seen
		},
	})
	p := k.New(Style{"radius": 6.0}, Style{"radius": 9.0})

	if seen != 6 {
		t.Errorf("Init observed radius %f, want 6 (data applied, style pending)", seen)
	}
	if base, _ := p.Property("baseradius"); base != 6 {
		t.Errorf("baseradius = %f, want 6", base)
	}
	if r, _ := p.Property("radius"); r != 9 {
		t.Errorf("radius = %f, want 9 after style", r)
	}
}

func TestNewCorePropertiesFromStyle(t *testing.T) {
	k := MustDefine(noopRender, Capabilities{})
	p := k.New(Style{"x": 10.0, "y": 20, "rotation": 0.5, "scale": 2.0, "alpha": 0.25, "index": 3}, nil)

	if p.X != 10 || p.Y != 20 {
		t.Errorf("position = (%f, %f), want (10, 20)", p.X, p.Y)
	}
	if p.Rotation != 0.5 || p.Scale != 2 || p.Alpha != 0.25 {
		t.Errorf("rotation/scale/alpha = %f/%f/%f", p.Rotation, p.Scale, p.Alpha)
	}
	if p.Index != 3 {
		t.Errorf("Index = %d, want 3", p.Index)
	}
}

func TestNewBoolFlags(t *testing.T) {
	k := MustDefine(noopRender, Capabilities{})
	p := k.New(Style{"visible": false, "static": true, "mouseEnabled": true}, nil)

	if p.Visible {
		t.Error("visible=false should clear Visible")
	}
	if !p.Static {
		t.Error("static=true should set Static")
	}
	if !p.MouseEnabled {
		t.Error("mouseEnabled=true should set MouseEnabled")
	}
}

func TestNewMouseDisabledWithoutEvents(t *testing.T) {
	silent := MustDefine(noopRender, Capabilities{
		IsInside: func(p *Primitive, x, y float64) bool { return true },
	})
	if silent.New(nil, nil).MouseEnabled {
		t.Error("a kind with no events should construct mouse-disabled")
	}

	loud := MustDefine(noopRender, Capabilities{
		IsInside: func(p *Primitive, x, y float64) bool { return true },
		Events: map[EventType]EventHandler{
			EventClick: func(Event) {},
		},
	})
	if !loud.New(nil, nil).MouseEnabled {
		t.Error("a kind with events should construct mouse-enabled")
	}
}

func TestNewSeedsHandlersFromKind(t *testing.T) {
	clicked := false
	k := MustDefine(noopRender, Capabilities{
		IsInside: func(p *Primitive, x, y float64) bool { return true },
		Events: map[EventType]EventHandler{
			EventClick: func(Event) { clicked = true },
		},
	})
	p := k.New(nil, nil)

	if p.OnClick == nil {
		t.Fatal("OnClick should be seeded from the kind's events")
	}
	p.OnClick(Event{})
	if !clicked {
		t.Error("seeded handler should be the kind's handler")
	}
	if p.OnOver != nil || p.OnMove != nil || p.OnOut != nil {
		t.Error("undeclared handlers should stay nil")
	}
}

func TestNewMergesNestedMaps(t *testing.T) {
	k := MustDefine(noopRender, Capabilities{
		Defaults: Style{"font": map[string]any{"size": 12.0, "family": "mono"}},
	})
	p := k.New(Style{"font": map[string]any{"size": 16.0}}, nil)

	font, ok := p.Data["font"].(map[string]any)
	if !ok {
		t.Fatal("font should remain a nested map")
	}
	if font["size"] != 16.0 {
		t.Errorf("font.size = %v, want 16 (data wins)", font["size"])
	}
	if font["family"] != "mono" {
		t.Errorf("font.family = %v, want mono (default survives)", font["family"])
	}
}

func TestPropertyAndSetProperty(t *testing.T) {
	k := MustDefine(noopRender, Capabilities{Defaults: Style{"radius": 4.0}})
	p := k.New(nil, nil)

	p.SetProperty("x", 7)
	if v, ok := p.Property("x"); !ok || v != 7 {
		t.Errorf("x = %f (ok=%v), want 7", v, ok)
	}

	p.SetProperty("radius", 11)
	if v, ok := p.Property("radius"); !ok || v != 11 {
		t.Errorf("radius = %f (ok=%v), want 11", v, ok)
	}

	if _, ok := p.Property("missing"); ok {
		t.Error("absent property should report ok=false")
	}
}

func TestIsInsidePassthrough(t *testing.T) {
	k := MustDefine(noopRender, Capabilities{
		IsInside: func(p *Primitive, x, y float64) bool {
			return x*x+y*y <= 25
		},
	})
	p := k.New(nil, nil)

	if !p.IsInside(3, 4) {
		t.Error("(3,4) should be inside radius 5")
	}
	if p.IsInside(4, 4) {
		t.Error("(4,4) should be outside radius 5")
	}

	bare := MustDefine(noopRender, Capabilities{}).New(nil, nil)
	if bare.IsInside(0, 0) {
		t.Error("a kind without IsInside should never match")
	}
}

func TestBoundingBox(t *testing.T) {
	k := MustDefine(noopRender, Capabilities{
		Bounds: func(p *Primitive) Rect {
			return Rect{X: -5, Y: -5, Width: 10, Height: 10}
		},
	})
	r, ok := k.New(nil, nil).BoundingBox()
	if !ok {
		t.Fatal("expected a bounding box")
	}
	if !r.Contains(0, 0) || r.Contains(6, 0) {
		t.Errorf("unexpected box %+v", r)
	}

	if _, ok := MustDefine(noopRender, Capabilities{}).New(nil, nil).BoundingBox(); ok {
		t.Error("a kind without Bounds should report ok=false")
	}
}
