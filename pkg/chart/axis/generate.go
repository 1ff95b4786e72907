package axis

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/scale"
)

// Numeric is the set of value types the built-in generators handle.
type Numeric interface {
	~float32 | ~float64 |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Options control tick generation.
type Options struct {
	// MaxTicks bounds the number of major ticks. Zero means 5.
	MaxTicks int
	// Tight keeps the data range as is instead of widening it to the
	// nearest major ticks.
	Tight bool
	// TickLength and MinorTickLength default to 5 and 2.
	TickLength, MinorTickLength float64
	// Format renders tick labels. The default is %.6g.
	Format func(float64) string
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{MaxTicks: 5, TickLength: 5, MinorTickLength: 2}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxTicks <= 0 {
		o.MaxTicks = d.MaxTicks
	}
	if o.TickLength == 0 {
		o.TickLength = d.TickLength
	}
	if o.MinorTickLength == 0 {
		o.MinorTickLength = d.MinorTickLength
	}
	if o.Format == nil {
		o.Format = func(v float64) string { return fmt.Sprintf("%.6g", v) }
	}
	return o
}

// AutoScaled returns a generator covering the range of the data.
// An empty data set gets the range [0,1]; a single distinct value v gets
// v±1%, or [-1,1] when v is zero.
func AutoScaled[T Numeric](opts Options) AxisFn[T] {
	return func(values []T) AxisData[T] {
		lo, hi := dataRange(values)
		ls := scale.Linear{Min: lo, Max: hi}
		o := opts.withDefaults()
		if !o.Tight {
			ls.Nice(scale.TickOptions{Max: o.MaxTicks})
		}
		major, minor := ls.Ticks(scale.TickOptions{Max: o.MaxTicks})
		return linearAxis[T](ls, major, minor, o)
	}
}

// Scaled returns a generator that ignores the data and always covers
// [lo, hi].
func Scaled[T Numeric](opts Options, lo, hi T) AxisFn[T] {
	return func([]T) AxisData[T] {
		l, h := widen(float64(min(lo, hi)), float64(max(lo, hi)))
		ls := scale.Linear{Min: l, Max: h}
		o := opts.withDefaults()
		major, minor := ls.Ticks(scale.TickOptions{Max: o.MaxTicks})
		return linearAxis[T](ls, major, minor, o)
	}
}

// Fixed returns a generator covering [lo, hi] with exactly the given
// major ticks, each labelled and gridded.
func Fixed[T Numeric](opts Options, lo, hi T, ticks []T) AxisFn[T] {
	return func([]T) AxisData[T] {
		l, h := widen(float64(min(lo, hi)), float64(max(lo, hi)))
		ls := scale.Linear{Min: l, Max: h}
		major := make([]float64, 0, len(ticks))
		for _, t := range ticks {
			if v := float64(t); v >= l && v <= h {
				major = append(major, v)
			}
		}
		return linearAxis[T](ls, major, nil, opts.withDefaults())
	}
}

func dataRange[T Numeric](values []T) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		lo, hi = math.Min(lo, f), math.Max(hi, f)
	}
	if lo > hi {
		return 0, 1
	}
	return widen(lo, hi)
}

// widen makes a degenerate range usable.
func widen(lo, hi float64) (float64, float64) {
	if lo != hi {
		return lo, hi
	}
	if lo == 0 {
		return -1, 1
	}
	d := math.Abs(lo) * 0.01
	return lo - d, hi + d
}

func linearAxis[T Numeric](ls scale.Linear, major, minor []float64, o Options) AxisData[T] {
	integral := isIntegral[T]()
	a := AxisData[T]{
		Viewport: func(r Range, v T) float64 {
			return r.Low + ls.Map(float64(v))*r.Span()
		},
		Inverse: func(r Range, d float64) T {
			if r.Span() == 0 {
				return T(ls.Min)
			}
			v := ls.Unmap((d - r.Low) / r.Span())
			if integral {
				v = math.Round(v)
			}
			return T(v)
		},
	}

	// Integer axes only mark values they can hold.
	representable := func(v float64) bool { return !integral || float64(T(v)) == v }
	isMajor := make(map[float64]bool, len(major))
	for _, v := range major {
		if !representable(v) {
			continue
		}
		isMajor[v] = true
		a.Ticks = append(a.Ticks, Tick[T]{Value: T(v), Length: o.TickLength})
		a.Labels = append(a.Labels, Label[T]{Value: T(v), Text: o.Format(v)})
		a.Grid = append(a.Grid, T(v))
	}
	for _, v := range minor {
		if !isMajor[v] && representable(v) {
			a.Ticks = append(a.Ticks, Tick[T]{Value: T(v), Length: o.MinorTickLength})
		}
	}
	return a
}

// isIntegral reports whether T is one of the integer kinds.
func isIntegral[T Numeric]() bool {
	half := 0.5
	return float64(T(half)) != half
}

// Bounds returns the values at both ends of a, in ascending order.
func Bounds[T Numeric](a AxisData[T]) (lo, hi T) {
	r := Range{Low: 0, High: 1}
	lo, hi = a.Inverse(r, 0), a.Inverse(r, 1)
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}
