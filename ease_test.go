package quill

import (
	"math"
	"testing"
)

func TestEasingByNameKnownCurves(t *testing.T) {
	// Linear at the midpoint of 0→100 over duration 1 should be exactly 50.
	fn := EasingByName("linear")
	got := float64(fn(0.5, 0, 100, 1))
	if math.Abs(got-50) > 0.01 {
		t.Errorf("linear midpoint = %f, want 50", got)
	}

	// OutQuad should be ahead of linear at the midpoint.
	out := float64(EasingByName("outquad")(0.5, 0, 100, 1))
	if out <= got {
		t.Errorf("outquad midpoint = %f, want > %f", out, got)
	}
}

func TestEasingByNameCaseInsensitive(t *testing.T) {
	a := EasingByName("OutCubic")
	b := EasingByName("outcubic")
	if float64(a(0.3, 0, 1, 1)) != float64(b(0.3, 0, 1, 1)) {
		t.Error("easing lookup should ignore case")
	}
}

func TestEasingByNameUnknownFallsBack(t *testing.T) {
	// An unknown name degrades to the default curve rather than failing.
	def := EasingByName(DefaultEasing)
	got := EasingByName("no-such-curve")
	if float64(got(0.5, 0, 100, 1)) != float64(def(0.5, 0, 100, 1)) {
		t.Error("unknown easing should fall back to the default curve")
	}

	empty := EasingByName("")
	if float64(empty(0.5, 0, 100, 1)) != float64(def(0.5, 0, 100, 1)) {
		t.Error("empty easing name should fall back to the default curve")
	}
}
