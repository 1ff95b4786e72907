// Package grid arranges renderables in rows and columns.
//
// A [Grid] is a rectangular array of cells. Tight cells ([Tval]) claim
// their measured size; weighted cells ([Weighted]) claim nothing up front
// and share whatever space is left over, in proportion to the row and
// column weights. Grids compose with [Above], [Beside] and [Overlay] and
// become a single renderable with [ToRenderable].
//
// Sizing runs in two passes. The first measures every tight cell: a row
// is as tall as its tallest tight cell, a column as wide as its widest.
// The second distributes the difference between the target and the sum
// of those baselines across rows and columns by weight. When the target
// is smaller than the baselines the difference is negative and weighted
// rows and columns shrink, never below zero.
package grid

import (
	"math"

	"github.com/matzehuels/chartgrid/pkg/chart/renderable"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

type layer[P any] struct {
	r        renderable.Renderable[P]
	weighted bool
	wx, wy   float64
}

// cell holds one or more layers drawn in order; overlays add layers.
type cell[P any] []layer[P]

// Grid is an immutable rectangular arrangement of renderables.
type Grid[P any] struct {
	rows       [][]cell[P]
	rowWeights []float64 // nil means derived from cells
	colWeights []float64
}

// Empty returns the grid with no cells. It is the identity of Above,
// Beside and Overlay.
func Empty[P any]() Grid[P] { return Grid[P]{} }

// Tval places r in a 1x1 grid at its measured size.
func Tval[P any](r renderable.Renderable[P]) Grid[P] {
	return single(layer[P]{r: r})
}

// Weighted places r in a 1x1 grid that takes a share of spare space
// proportional to wx horizontally and wy vertically.
func Weighted[P any](wx, wy float64, r renderable.Renderable[P]) Grid[P] {
	return single(layer[P]{r: r, weighted: true, wx: math.Max(0, wx), wy: math.Max(0, wy)})
}

func single[P any](l layer[P]) Grid[P] {
	return Grid[P]{rows: [][]cell[P]{{{l}}}}
}

// Dims returns the number of rows and columns.
func (g Grid[P]) Dims() (rows, cols int) {
	if len(g.rows) == 0 {
		return 0, 0
	}
	return len(g.rows), len(g.rows[0])
}

// IsEmpty reports whether g has no cells.
func (g Grid[P]) IsEmpty() bool { return len(g.rows) == 0 }

// RowWeights returns the weight of each row: the override when set,
// otherwise the largest vertical weight of any cell in the row.
func (g Grid[P]) RowWeights() []float64 {
	if g.rowWeights != nil {
		return append([]float64(nil), g.rowWeights...)
	}
	ws := make([]float64, len(g.rows))
	for i, row := range g.rows {
		for _, c := range row {
			for _, l := range c {
				ws[i] = math.Max(ws[i], l.wy)
			}
		}
	}
	return ws
}

// ColWeights returns the weight of each column: the override when set,
// otherwise the largest horizontal weight of any cell in the column.
func (g Grid[P]) ColWeights() []float64 {
	_, n := g.Dims()
	if g.colWeights != nil {
		return append([]float64(nil), g.colWeights...)
	}
	ws := make([]float64, n)
	for _, row := range g.rows {
		for j, c := range row {
			for _, l := range c {
				ws[j] = math.Max(ws[j], l.wx)
			}
		}
	}
	return ws
}

// WithRowWeights returns g with its row weights overridden.
func (g Grid[P]) WithRowWeights(ws ...float64) (Grid[P], error) {
	if len(ws) != len(g.rows) {
		return g, errors.New(errors.ErrCodeShapeMismatch, "grid has %d rows, got %d row weights", len(g.rows), len(ws))
	}
	g.rowWeights = nonNegative(ws)
	return g, nil
}

// WithColWeights returns g with its column weights overridden.
func (g Grid[P]) WithColWeights(ws ...float64) (Grid[P], error) {
	if _, n := g.Dims(); len(ws) != n {
		return g, errors.New(errors.ErrCodeShapeMismatch, "grid has %d columns, got %d column weights", n, len(ws))
	}
	g.colWeights = nonNegative(ws)
	return g, nil
}

func nonNegative(ws []float64) []float64 {
	out := make([]float64, len(ws))
	for i, w := range ws {
		out[i] = math.Max(0, w)
	}
	return out
}

// Above stacks a on top of b. Both must have the same number of columns
// unless one of them is empty.
func Above[P any](a, b Grid[P]) (Grid[P], error) {
	if a.IsEmpty() {
		return b, nil
	}
	if b.IsEmpty() {
		return a, nil
	}
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != bc {
		return Grid[P]{}, errors.New(errors.ErrCodeShapeMismatch,
			"cannot place %dx%d grid above %dx%d grid: column counts differ", ar, ac, br, bc)
	}
	out := Grid[P]{rows: make([][]cell[P], 0, ar+br)}
	out.rows = append(out.rows, a.rows...)
	out.rows = append(out.rows, b.rows...)
	if a.rowWeights != nil || b.rowWeights != nil {
		out.rowWeights = append(a.RowWeights(), b.RowWeights()...)
	}
	if a.colWeights != nil || b.colWeights != nil {
		out.colWeights = maxWeights(a.ColWeights(), b.ColWeights())
	}
	return out, nil
}

// Beside places a to the left of b. Both must have the same number of
// rows unless one of them is empty.
func Beside[P any](a, b Grid[P]) (Grid[P], error) {
	if a.IsEmpty() {
		return b, nil
	}
	if b.IsEmpty() {
		return a, nil
	}
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br {
		return Grid[P]{}, errors.New(errors.ErrCodeShapeMismatch,
			"cannot place %dx%d grid beside %dx%d grid: row counts differ", ar, ac, br, bc)
	}
	out := Grid[P]{rows: make([][]cell[P], ar)}
	for i := range out.rows {
		row := make([]cell[P], 0, ac+bc)
		row = append(row, a.rows[i]...)
		out.rows[i] = append(row, b.rows[i]...)
	}
	if a.colWeights != nil || b.colWeights != nil {
		out.colWeights = append(a.ColWeights(), b.ColWeights()...)
	}
	if a.rowWeights != nil || b.rowWeights != nil {
		out.rowWeights = maxWeights(a.RowWeights(), b.RowWeights())
	}
	return out, nil
}

// Overlay draws over on top of under, cell by cell. Both grids must have
// the same shape unless one of them is empty. Pick queries try over
// first.
func Overlay[P any](under, over Grid[P]) (Grid[P], error) {
	if under.IsEmpty() {
		return over, nil
	}
	if over.IsEmpty() {
		return under, nil
	}
	ur, uc := under.Dims()
	or, oc := over.Dims()
	if ur != or || uc != oc {
		return Grid[P]{}, errors.New(errors.ErrCodeShapeMismatch,
			"cannot overlay %dx%d grid on %dx%d grid", or, oc, ur, uc)
	}
	out := Grid[P]{rows: make([][]cell[P], ur)}
	for i := range out.rows {
		out.rows[i] = make([]cell[P], uc)
		for j := range out.rows[i] {
			c := make(cell[P], 0, len(under.rows[i][j])+len(over.rows[i][j]))
			c = append(c, under.rows[i][j]...)
			out.rows[i][j] = append(c, over.rows[i][j]...)
		}
	}
	if under.rowWeights != nil || over.rowWeights != nil {
		out.rowWeights = maxWeights(under.RowWeights(), over.RowWeights())
	}
	if under.colWeights != nil || over.colWeights != nil {
		out.colWeights = maxWeights(under.ColWeights(), over.ColWeights())
	}
	return out, nil
}

func maxWeights(a, b []float64) []float64 {
	out := make([]float64, max(len(a), len(b)))
	for i := range out {
		if i < len(a) {
			out[i] = a[i]
		}
		if i < len(b) {
			out[i] = math.Max(out[i], b[i])
		}
	}
	return out
}

// AboveN stacks grids top to bottom.
func AboveN[P any](gs ...Grid[P]) (Grid[P], error) {
	return fold(Above[P], gs)
}

// BesideN places grids left to right.
func BesideN[P any](gs ...Grid[P]) (Grid[P], error) {
	return fold(Beside[P], gs)
}

func fold[P any](op func(a, b Grid[P]) (Grid[P], error), gs []Grid[P]) (Grid[P], error) {
	out := Empty[P]()
	for _, g := range gs {
		var err error
		if out, err = op(out, g); err != nil {
			return Grid[P]{}, err
		}
	}
	return out, nil
}

// MustAbove is like Above but panics on a shape mismatch. It is meant for
// layouts whose shape is fixed in code.
func MustAbove[P any](a, b Grid[P]) Grid[P] { return must(Above(a, b)) }

// MustBeside is like Beside but panics on a shape mismatch.
func MustBeside[P any](a, b Grid[P]) Grid[P] { return must(Beside(a, b)) }

// MustAboveN is like AboveN but panics on a shape mismatch.
func MustAboveN[P any](gs ...Grid[P]) Grid[P] { return must(AboveN(gs...)) }

// MustBesideN is like BesideN but panics on a shape mismatch.
func MustBesideN[P any](gs ...Grid[P]) Grid[P] { return must(BesideN(gs...)) }

// MustOverlay is like Overlay but panics on a shape mismatch.
func MustOverlay[P any](under, over Grid[P]) Grid[P] { return must(Overlay(under, over)) }

func must[P any](g Grid[P], err error) Grid[P] {
	if err != nil {
		panic(err)
	}
	return g
}

// ToRenderable turns g into a single renderable. Pick queries visit cells
// in row-major order and the first hit wins.
func ToRenderable[P any](g Grid[P]) renderable.Renderable[P] {
	return renderable.Renderable[P]{
		Measure: func(c canvas.Canvas) canvas.Size {
			ws, hs := g.baselines(c)
			return canvas.Size{W: sum(ws), H: sum(hs)}
		},
		Draw: func(c canvas.Canvas, size canvas.Size) renderable.PickFn[P] {
			return g.draw(c, size)
		},
	}
}

// baselines measures every tight layer and returns column widths and
// row heights before spare space is distributed.
func (g Grid[P]) baselines(c canvas.Canvas) (ws, hs []float64) {
	rows, cols := g.Dims()
	ws, hs = make([]float64, cols), make([]float64, rows)
	for i, row := range g.rows {
		for j, cl := range row {
			for _, l := range cl {
				if l.weighted {
					continue
				}
				s := l.r.Measure(c)
				ws[j] = math.Max(ws[j], s.W)
				hs[i] = math.Max(hs[i], s.H)
			}
		}
	}
	return ws, hs
}

// Distribute adds extra to base in proportion to weights. Zero total
// weight distributes nothing. Results are clamped at zero.
func Distribute(base, weights []float64, extra float64) []float64 {
	total := sum(weights)
	out := make([]float64, len(base))
	for i, b := range base {
		out[i] = b
		if total > 0 {
			out[i] += extra * weights[i] / total
		}
		out[i] = math.Max(0, out[i])
	}
	return out
}

func (g Grid[P]) draw(c canvas.Canvas, size canvas.Size) renderable.PickFn[P] {
	ws, hs := g.baselines(c)
	ws = Distribute(ws, g.ColWeights(), size.W-sum(ws))
	hs = Distribute(hs, g.RowWeights(), size.H-sum(hs))

	var picks []renderable.PickFn[P]
	y := 0.0
	for i, row := range g.rows {
		x := 0.0
		for j, cl := range row {
			cs := canvas.Size{W: ws[j], H: hs[i]}
			offset := canvas.Point{X: x, Y: y}
			layers := make([]renderable.PickFn[P], len(cl))
			for k, l := range cl {
				canvas.Scoped(c, func() {
					c.Translate(offset.X, offset.Y)
					layers[k] = l.r.Draw(c, cs)
				})
			}
			for k := len(layers) - 1; k >= 0; k-- {
				picks = append(picks, renderable.Shift(layers[k], offset, cs))
			}
			x += ws[j]
		}
		y += hs[i]
	}

	return func(p canvas.Point) (P, bool) {
		for _, pick := range picks {
			if v, ok := pick(p); ok {
				return v, true
			}
		}
		var zero P
		return zero, false
	}
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}
