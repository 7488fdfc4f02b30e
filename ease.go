package quill

import (
	"strings"

	"github.com/tanema/gween/ease"
)

// DefaultEasing is the curve name substituted for unknown or empty easing
// names. An unrecognized name is never an error.
const DefaultEasing = "outquad"

// easings maps lowercase curve names to gween easing functions.
var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"inquart":    ease.InQuart,
	"outquart":   ease.OutQuart,
	"inoutquart": ease.InOutQuart,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
	"inexpo":     ease.InExpo,
	"outexpo":    ease.OutExpo,
	"inoutexpo":  ease.InOutExpo,
	"incirc":     ease.InCirc,
	"outcirc":    ease.OutCirc,
	"inoutcirc":  ease.InOutCirc,
	"inback":     ease.InBack,
	"outback":    ease.OutBack,
	"inoutback":  ease.InOutBack,
	"inbounce":   ease.InBounce,
	"outbounce":  ease.OutBounce,
	"inelastic":  ease.InElastic,
	"outelastic": ease.OutElastic,
}

// EasingByName returns the named easing function. Unknown or empty names fall
// back to the default curve (DefaultEasing) rather than failing, so a typo in
// a style file degrades gracefully.
func EasingByName(name string) ease.TweenFunc {
	if fn, ok := easings[strings.ToLower(name)]; ok {
		return fn
	}
	return easings[DefaultEasing]
}
