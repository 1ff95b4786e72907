// Package renderable defines the building block of every chart: a node
// that can report its minimum size and draw itself into a rectangle,
// returning a function that maps points back to logical elements.
//
// # Contract
//
// Measure returns the minimum bounding box of a node. It may consult the
// canvas for styling and font metrics but never for the target rectangle.
//
// Draw paints into the rectangle whose top-left corner is (0,0) in the
// canvas's current coordinate space, sized by the caller. It can be called
// with any non-negative size, smaller than the minimum included, and it
// never fails. The returned [PickFn] takes points in the same local
// coordinate space and is only meaningful for the render that produced it.
//
// Combinators that change coordinates (margins, grids) translate before
// drawing and apply the inverse shift before delegating pick queries, so
// pick results always line up with what was painted.
package renderable

import (
	"math"

	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// PickFn maps a point in local coordinates to a logical element.
// The boolean is false when nothing pickable lies under the point.
type PickFn[P any] func(p canvas.Point) (P, bool)

// NoPick returns a pick function that never hits.
func NoPick[P any]() PickFn[P] {
	return func(canvas.Point) (P, bool) {
		var zero P
		return zero, false
	}
}

// Renderable is a measurable, drawable node.
type Renderable[P any] struct {
	Measure func(c canvas.Canvas) canvas.Size
	Draw    func(c canvas.Canvas, size canvas.Size) PickFn[P]
}

// Empty measures as zero, draws nothing and never picks.
func Empty[P any]() Renderable[P] {
	return Spacer[P](canvas.Size{})
}

// Spacer occupies size but draws nothing and never picks.
func Spacer[P any](size canvas.Size) Renderable[P] {
	return Renderable[P]{
		Measure: func(canvas.Canvas) canvas.Size { return size },
		Draw:    func(canvas.Canvas, canvas.Size) PickFn[P] { return NoPick[P]() },
	}
}

// FillBackground paints fs over the whole target before drawing r.
func FillBackground[P any](fs canvas.FillStyle, r Renderable[P]) Renderable[P] {
	return Renderable[P]{
		Measure: r.Measure,
		Draw: func(c canvas.Canvas, size canvas.Size) PickFn[P] {
			canvas.Scoped(c, func() {
				c.ClipRect(0, 0, size.W, size.H)
				canvas.FillRect(c, fs, 0, 0, size.W, size.H)
			})
			return r.Draw(c, size)
		},
	}
}

// Margins are distances added around a renderable.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// Uniform returns margins of m on every side.
func Uniform(m float64) Margins { return Margins{m, m, m, m} }

// AddMargins surrounds r with empty space. Pick queries outside the inner
// rectangle miss; the rest are shifted into the inner coordinate space.
func AddMargins[P any](m Margins, r Renderable[P]) Renderable[P] {
	return Renderable[P]{
		Measure: func(c canvas.Canvas) canvas.Size {
			s := r.Measure(c)
			return canvas.Size{W: s.W + m.Left + m.Right, H: s.H + m.Top + m.Bottom}
		},
		Draw: func(c canvas.Canvas, size canvas.Size) PickFn[P] {
			inner := canvas.Size{
				W: math.Max(0, size.W-m.Left-m.Right),
				H: math.Max(0, size.H-m.Top-m.Bottom),
			}
			var pick PickFn[P]
			canvas.Scoped(c, func() {
				c.Translate(m.Left, m.Top)
				pick = r.Draw(c, inner)
			})
			return Shift(pick, canvas.Point{X: m.Left, Y: m.Top}, inner)
		},
	}
}

// Shift adapts pick, produced for a rectangle of size inner drawn at
// offset, to the enclosing coordinate space. Points outside the inner
// rectangle miss.
func Shift[P any](pick PickFn[P], offset canvas.Point, inner canvas.Size) PickFn[P] {
	return func(p canvas.Point) (P, bool) {
		q := p.Sub(offset)
		if !inner.Contains(q) {
			var zero P
			return zero, false
		}
		return pick(q)
	}
}

// MapPick transforms every hit of r with f.
func MapPick[P, Q any](r Renderable[P], f func(P) Q) Renderable[Q] {
	return MapPickOptional(r, func(p P) (Q, bool) { return f(p), true })
}

// MapPickOptional transforms hits of r with f, dropping those for which f
// reports false.
func MapPickOptional[P, Q any](r Renderable[P], f func(P) (Q, bool)) Renderable[Q] {
	return Renderable[Q]{
		Measure: r.Measure,
		Draw: func(c canvas.Canvas, size canvas.Size) PickFn[Q] {
			pick := r.Draw(c, size)
			return func(p canvas.Point) (Q, bool) {
				v, ok := pick(p)
				if !ok {
					var zero Q
					return zero, false
				}
				return f(v)
			}
		},
	}
}

// SetPickFn draws r but answers pick queries with fn.
func SetPickFn[P, Q any](r Renderable[P], fn PickFn[Q]) Renderable[Q] {
	return Renderable[Q]{
		Measure: r.Measure,
		Draw: func(c canvas.Canvas, size canvas.Size) PickFn[Q] {
			r.Draw(c, size)
			return fn
		},
	}
}

// Embed defers building a renderable until it is measured or drawn, so the
// construction can read canvas state such as font metrics.
func Embed[P any](build func(c canvas.Canvas) Renderable[P]) Renderable[P] {
	return Renderable[P]{
		Measure: func(c canvas.Canvas) canvas.Size { return build(c).Measure(c) },
		Draw: func(c canvas.Canvas, size canvas.Size) PickFn[P] {
			return build(c).Draw(c, size)
		},
	}
}
