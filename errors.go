package quill

import "strings"

// DefinitionError reports an invalid primitive kind definition: a missing
// render function, or event handlers declared without a hit-test predicate.
// Returned by Define at definition time, never at per-frame runtime.
type DefinitionError struct {
	Reason string
}

func (e *DefinitionError) Error() string {
	return "quill: invalid primitive definition: " + e.Reason
}

// PropertyError reports the properties an Animate call rejected because they
// do not exist on the instance or are not numeric. The remaining properties
// of the same call were scheduled normally.
type PropertyError struct {
	Properties []string
}

func (e *PropertyError) Error() string {
	return "quill: properties not animatable: " + strings.Join(e.Properties, ", ")
}
