package quill

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Style is a flattened property dictionary for one primitive kind: property
// name to value, with any nested "default" buckets already merged away.
// Styles apply last during primitive construction, overriding defaults and
// data for the same keys.
type Style map[string]any

// Theme maps primitive-kind names to their styles.
type Theme map[string]Style

// Style returns the theme's style for a kind. Missing kinds (and nil themes)
// yield an empty style, never an error.
func (t Theme) Style(kind string) Style {
	if s, ok := t[kind]; ok {
		return s
	}
	return Style{}
}

// Merge returns a new theme with overlay's kinds merged over t. Styles
// present in both merge key by key, overlay winning.
func (t Theme) Merge(overlay Theme) Theme {
	out := make(Theme, len(t)+len(overlay))
	for kind, s := range t {
		out[kind] = Style(cloneMap(s))
	}
	for kind, s := range overlay {
		if base, ok := out[kind]; ok {
			out[kind] = MergeStyles(base, s)
			continue
		}
		out[kind] = Style(cloneMap(s))
	}
	return out
}

// MergeStyles returns a new style with overlay's entries written over base.
// Nested maps merge deeply. Neither argument is mutated.
func MergeStyles(base, overlay Style) Style {
	return Style(mergeMaps(cloneMap(base), overlay))
}

// ResolveStyle applies the three-layer style precedence for one kind:
// built-in defaults, then the theme's entry, then user options, each later
// layer winning on conflicting keys.
func ResolveStyle(defaults, theme, options Style) Style {
	return MergeStyles(MergeStyles(defaults, theme), options)
}

// cloneMap deep-copies a property map so merges never alias their inputs.
func cloneMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		if nested, ok := v.(map[string]any); ok {
			out[k] = cloneMap(nested)
			continue
		}
		out[k] = v
	}
	return out
}

// LoadTheme parses a YAML theme document: a mapping of primitive-kind names
// to flattened style dictionaries.
//
//	slice:
//	  strokewidth: 2
//	  explode: 12
//	dot:
//	  radius: 4
func LoadTheme(data []byte) (Theme, error) {
	var raw map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	theme := make(Theme, len(raw))
	for kind, style := range raw {
		theme[kind] = Style(style)
	}
	return theme, nil
}
