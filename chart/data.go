package chart

import (
	"fmt"
	"math"
)

// Point is one data sample.
type Point struct {
	X, Y float64
}

// Bounds describes the vertical extent of a refreshed dataset.
type Bounds struct {
	Min, Max, Range float64
}

// ValidationError reports malformed source data. Refresh raises it before
// the runtime ever sees the dataset, so the registry and engine only consume
// validated input.
type ValidationError struct {
	Series string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Series == "" {
		return "chart: invalid data: " + e.Reason
	}
	return fmt.Sprintf("chart: invalid data in series %q: %s", e.Series, e.Reason)
}

// Dataset holds named, ordered series of points. Series keep first-set
// order, which chart initializers use for palette assignment and stacking.
type Dataset struct {
	names  []string
	series map[string][]Point
	bounds Bounds
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{series: map[string][]Point{}}
}

// SetSeries stores or replaces a named series.
func (d *Dataset) SetSeries(name string, points []Point) {
	if _, ok := d.series[name]; !ok {
		d.names = append(d.names, name)
	}
	d.series[name] = points
}

// Refresh validates every series and recomputes the dataset bounds. A
// dataset with no series, an empty series, or a non-finite value fails with
// a ValidationError.
func (d *Dataset) Refresh() error {
	if len(d.names) == 0 {
		return &ValidationError{Reason: "no series"}
	}
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, name := range d.names {
		pts := d.series[name]
		if len(pts) == 0 {
			return &ValidationError{Series: name, Reason: "empty series"}
		}
		for _, pt := range pts {
			if math.IsNaN(pt.X) || math.IsInf(pt.X, 0) || math.IsNaN(pt.Y) || math.IsInf(pt.Y, 0) {
				return &ValidationError{Series: name, Reason: "non-finite value"}
			}
			if pt.Y < lo {
				lo = pt.Y
			}
			if pt.Y > hi {
				hi = pt.Y
			}
		}
	}
	d.bounds = Bounds{Min: lo, Max: hi, Range: hi - lo}
	return nil
}

// SeriesNames returns the series names in first-set order. The returned
// slice MUST NOT be mutated by the caller.
func (d *Dataset) SeriesNames() []string {
	return d.names
}

// Series returns the points of a named series, nil when absent.
func (d *Dataset) Series(name string) []Point {
	return d.series[name]
}

// Points returns the full name-to-points mapping. The returned map MUST NOT
// be mutated by the caller.
func (d *Dataset) Points() map[string][]Point {
	return d.series
}

// Bounds returns the extent computed by the last successful Refresh.
func (d *Dataset) Bounds() Bounds {
	return d.bounds
}
