// Package axis maps data values to device coordinates and draws axes.
//
// [AxisData] is the product of axis generation: tick marks, labels,
// gridline positions and a pair of pure functions converting between
// values and device positions along a [Range]. The same AxisData value is
// used by the axis renderable and by the plot area in one render, so
// ticks and plotted points always agree.
package axis

// Range is a span of device coordinates. Low is where the smallest value
// lands and High where the largest does; for a vertical axis on a y-down
// surface Low is therefore the larger number.
type Range struct {
	Low, High float64
}

// Reversed swaps the endpoints of r.
func (r Range) Reversed() Range { return Range{Low: r.High, High: r.Low} }

// Span returns High-Low.
func (r Range) Span() float64 { return r.High - r.Low }

type limitKind int

const (
	limitValue limitKind = iota
	limitMin
	limitMax
)

// Limit is a position along an axis: a data value or one of the two ends
// of the visible range. The sentinels let plots draw edge-to-edge marks
// without knowing the axis range.
type Limit[T any] struct {
	kind limitKind
	v    T
}

// Min is the low end of the axis, whatever value it shows.
func Min[T any]() Limit[T] { return Limit[T]{kind: limitMin} }

// Max is the high end of the axis, whatever value it shows.
func Max[T any]() Limit[T] { return Limit[T]{kind: limitMax} }

// Value is the position of v.
func Value[T any](v T) Limit[T] { return Limit[T]{kind: limitValue, v: v} }

// IsValue reports whether l wraps a data value, and returns it.
func (l Limit[T]) IsValue() (T, bool) { return l.v, l.kind == limitValue }

// Tick is a tick mark. Length is measured away from the plot area.
type Tick[T any] struct {
	Value  T
	Length float64
}

// Label is a tick label.
type Label[T any] struct {
	Value T
	Text  string
}

// AxisData is everything a render needs to know about one axis.
type AxisData[T any] struct {
	Ticks  []Tick[T]
	Labels []Label[T]
	Grid   []T

	// Viewport maps a value to a device coordinate within r.
	Viewport func(r Range, v T) float64
	// Inverse maps a device coordinate within r back to a value.
	Inverse func(r Range, d float64) T

	// Reversed is set by [Reverse].
	Reversed bool
}

// Map returns the device coordinate of l along r. Min and Max map to the
// ends of r where the smallest and largest values are shown.
func (a AxisData[T]) Map(r Range, l Limit[T]) float64 {
	ends := r
	if a.Reversed {
		ends = r.Reversed()
	}
	switch l.kind {
	case limitMin:
		return ends.Low
	case limitMax:
		return ends.High
	}
	return a.Viewport(r, l.v)
}

// AxisFn builds the axis for a set of data values.
type AxisFn[T any] func(values []T) AxisData[T]

// Override adjusts generated axis data.
type Override[T any] func(AxisData[T]) AxisData[T]

// Reverse flips the direction of a, so the largest value lands at
// r.Low. Ticks, labels and gridlines follow because they are placed
// through Viewport.
func Reverse[T any](a AxisData[T]) AxisData[T] {
	vp, inv := a.Viewport, a.Inverse
	a.Viewport = func(r Range, v T) float64 { return vp(r.Reversed(), v) }
	a.Inverse = func(r Range, d float64) T { return inv(r.Reversed(), d) }
	a.Reversed = !a.Reversed
	return a
}

// HideGrid removes gridlines.
func HideGrid[T any](a AxisData[T]) AxisData[T] {
	a.Grid = nil
	return a
}

// HideTicks removes tick marks.
func HideTicks[T any](a AxisData[T]) AxisData[T] {
	a.Ticks = nil
	return a
}

// HideLabels removes tick labels.
func HideLabels[T any](a AxisData[T]) AxisData[T] {
	a.Labels = nil
	return a
}

// Compose applies overrides left to right.
func Compose[T any](fs ...Override[T]) Override[T] {
	return func(a AxisData[T]) AxisData[T] {
		for _, f := range fs {
			if f != nil {
				a = f(a)
			}
		}
		return a
	}
}
