package axis

import (
	"math"

	"github.com/matzehuels/chartgrid/pkg/chart/renderable"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// Side is the edge of the plot area an axis is attached to.
type Side int

const (
	Bottom Side = iota
	Top
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case Bottom:
		return "bottom"
	case Top:
		return "top"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Horizontal reports whether s runs along the x direction.
func (s Side) Horizontal() bool { return s == Bottom || s == Top }

// Style is the look of an axis.
type Style struct {
	Line     canvas.LineStyle // axis line and ticks
	Label    canvas.FontStyle
	Grid     canvas.LineStyle
	LabelGap float64 // between tick ends and labels
}

// DefaultStyle returns a thin black axis with dashed grey gridlines.
func DefaultStyle() Style {
	return Style{
		Line:     canvas.SolidLine(1, canvas.Black),
		Label:    canvas.DefaultFont,
		Grid:     canvas.DashedLine(1, []float64{3, 3}, canvas.Opaque(0xcc, 0xcc, 0xcc)),
		LabelGap: 10,
	}
}

// Axis is axis data ready to be drawn on one side of a plot area.
type Axis[T any] struct {
	Side  Side
	Style Style
	Data  AxisData[T]
}

// DeviceRange returns the range values map into for a plot area of the
// given size: left to right for x, bottom to top for y.
func DeviceRange(side Side, size canvas.Size) Range {
	if side.Horizontal() {
		return Range{Low: 0, High: size.W}
	}
	return Range{Low: size.H, High: 0}
}

func (a Axis[T]) tickSize() float64 {
	t := 0.0
	for _, tk := range a.Data.Ticks {
		t = math.Max(t, tk.Length)
	}
	return t
}

func (a Axis[T]) labelSizes(c canvas.Canvas) []canvas.Size {
	sizes := make([]canvas.Size, len(a.Data.Labels))
	for i, l := range a.Data.Labels {
		te := c.MeasureText(a.Style.Label, l.Text)
		sizes[i] = canvas.Size{W: te.W, H: te.H}
	}
	return sizes
}

// Renderable draws the axis line, ticks and labels of a. It sits against
// the plot area: a bottom axis occupies a cell directly below it, and so
// on. Pick queries return the axis value under the point.
func Renderable[T any](a Axis[T]) renderable.Renderable[T] {
	return renderable.Renderable[T]{
		Measure: func(c canvas.Canvas) canvas.Size {
			var maxW, maxH float64
			for _, s := range a.labelSizes(c) {
				maxW, maxH = math.Max(maxW, s.W), math.Max(maxH, s.H)
			}
			depth := a.tickSize()
			if len(a.Data.Labels) > 0 {
				depth += a.Style.LabelGap
			}
			if a.Side.Horizontal() {
				return canvas.Size{W: maxW, H: depth + maxH}
			}
			return canvas.Size{W: depth + maxW, H: maxH}
		},
		Draw: func(c canvas.Canvas, size canvas.Size) renderable.PickFn[T] {
			canvas.Scoped(c, func() { a.draw(c, size) })
			r := DeviceRange(a.Side, size)
			return func(p canvas.Point) (T, bool) {
				if !size.Contains(p) {
					var zero T
					return zero, false
				}
				if a.Side.Horizontal() {
					return a.Data.Inverse(r, p.X), true
				}
				return a.Data.Inverse(r, p.Y), true
			}
		},
	}
}

func (a Axis[T]) draw(c canvas.Canvas, size canvas.Size) {
	r := DeviceRange(a.Side, size)
	ls := a.Style.Line
	ls.Cap = canvas.CapSquare

	// Ends of the axis line, and the point at device coordinate d moved o
	// units away from the plot area.
	var from, to canvas.Point
	var at func(d, offset float64) canvas.Point
	switch a.Side {
	case Bottom:
		from, to = canvas.Point{}, canvas.Point{X: size.W}
		at = func(d, o float64) canvas.Point { return canvas.Point{X: d, Y: o} }
	case Top:
		from, to = canvas.Point{Y: size.H}, canvas.Point{X: size.W, Y: size.H}
		at = func(d, o float64) canvas.Point { return canvas.Point{X: d, Y: size.H - o} }
	case Left:
		from, to = canvas.Point{X: size.W}, canvas.Point{X: size.W, Y: size.H}
		at = func(d, o float64) canvas.Point { return canvas.Point{X: size.W - o, Y: d} }
	default:
		from, to = canvas.Point{}, canvas.Point{Y: size.H}
		at = func(d, o float64) canvas.Point { return canvas.Point{X: o, Y: d} }
	}

	canvas.Polyline(c, ls, from, to)
	for _, tk := range a.Data.Ticks {
		d := a.Data.Viewport(r, tk.Value)
		canvas.Polyline(c, ls, at(d, 0), at(d, tk.Length))
	}

	offset := a.tickSize() + a.Style.LabelGap
	h, v := labelAnchors(a.Side)
	for _, l := range a.Data.Labels {
		d := a.Data.Viewport(r, l.Value)
		renderable.DrawText(c, a.Style.Label, h, v, 0, at(d, offset), l.Text)
	}
}

func labelAnchors(s Side) (renderable.HAnchor, renderable.VAnchor) {
	switch s {
	case Bottom:
		return renderable.HCentre, renderable.VTop
	case Top:
		return renderable.HCentre, renderable.VBottom
	case Left:
		return renderable.HRight, renderable.VCentre
	}
	return renderable.HLeft, renderable.VCentre
}

// Overhang returns how far the labels at the two device ends of a stick
// out past the ends of the axis: half the width of the leftmost and
// rightmost labels for horizontal axes, half the height of the topmost
// and bottommost labels for vertical ones. It is computed from the final
// data, so overrides and reversal are taken into account.
func Overhang[T any](c canvas.Canvas, a Axis[T]) (start, end float64) {
	if len(a.Data.Labels) == 0 {
		return 0, 0
	}
	r := Range{Low: 0, High: 1}
	if !a.Side.Horizontal() {
		r = Range{Low: 1, High: 0}
	}
	first, last := 0, 0
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, l := range a.Data.Labels {
		d := a.Data.Viewport(r, l.Value)
		if d < lo {
			lo, first = d, i
		}
		if d > hi {
			hi, last = d, i
		}
	}
	sizes := a.labelSizes(c)
	if a.Side.Horizontal() {
		return sizes[first].W / 2, sizes[last].W / 2
	}
	return sizes[first].H / 2, sizes[last].H / 2
}

// DrawGrid draws the gridlines of a across a plot area of the given size.
func DrawGrid[T any](c canvas.Canvas, a Axis[T], size canvas.Size) {
	r := DeviceRange(a.Side, size)
	for _, g := range a.Data.Grid {
		d := a.Data.Viewport(r, g)
		if a.Side.Horizontal() {
			canvas.Polyline(c, a.Style.Grid, canvas.Point{X: d}, canvas.Point{X: d, Y: size.H})
		} else {
			canvas.Polyline(c, a.Style.Grid, canvas.Point{Y: d}, canvas.Point{X: size.W, Y: d})
		}
	}
}
