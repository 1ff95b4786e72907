package canvas

import "math"

// Point is a position in device units.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Size is the extent of a rectangle whose origin is implicitly (0,0).
type Size struct {
	W, H float64
}

// Max returns the component-wise maximum of s and o.
func (s Size) Max(o Size) Size { return Size{math.Max(s.W, o.W), math.Max(s.H, o.H)} }

// Grow returns s enlarged by dw and dh, clamped at zero.
func (s Size) Grow(dw, dh float64) Size {
	return Size{math.Max(0, s.W+dw), math.Max(0, s.H+dh)}
}

// Contains reports whether p lies inside [0,W] x [0,H].
func (s Size) Contains(p Point) bool {
	return p.X >= 0 && p.X <= s.W && p.Y >= 0 && p.Y <= s.H
}

// Rect is an axis-aligned rectangle given by two corners.
type Rect struct {
	Min, Max Point
}

// RectOf returns the rectangle at (x,y) with size (w,h).
func RectOf(x, y, w, h float64) Rect {
	return Rect{Point{x, y}, Point{x + w, y + h}}
}

// Size returns the extent of r.
func (r Rect) Size() Size { return Size{r.Max.X - r.Min.X, r.Max.Y - r.Min.Y} }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Matrix is a 2D affine transform mapping (x,y) to
// (XX*x + XY*y + X0, YX*x + YY*y + Y0).
type Matrix struct {
	XX, YX, XY, YY, X0, Y0 float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{XX: 1, YY: 1}
}

// Multiply returns the transform applying b first, then a.
func (a Matrix) Multiply(b Matrix) Matrix {
	return Matrix{
		XX: a.XX*b.XX + a.XY*b.YX,
		YX: a.YX*b.XX + a.YY*b.YX,
		XY: a.XX*b.XY + a.XY*b.YY,
		YY: a.YX*b.XY + a.YY*b.YY,
		X0: a.XX*b.X0 + a.XY*b.Y0 + a.X0,
		Y0: a.YX*b.X0 + a.YY*b.Y0 + a.Y0,
	}
}

// Translate returns a with a translation by (dx,dy) applied before it.
func (a Matrix) Translate(dx, dy float64) Matrix {
	return a.Multiply(Matrix{XX: 1, YY: 1, X0: dx, Y0: dy})
}

// Rotate returns a with a rotation by angle radians applied before it.
func (a Matrix) Rotate(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return a.Multiply(Matrix{XX: c, YX: s, XY: -s, YY: c})
}

// Apply maps p through a.
func (a Matrix) Apply(p Point) Point {
	return Point{
		X: a.XX*p.X + a.XY*p.Y + a.X0,
		Y: a.YX*p.X + a.YY*p.Y + a.Y0,
	}
}

// IsIdentity reports whether a leaves every point unchanged.
func (a Matrix) IsIdentity() bool {
	return a == Identity()
}

// Invert returns the inverse of a, or false when a is singular.
func (a Matrix) Invert() (Matrix, bool) {
	det := a.XX*a.YY - a.XY*a.YX
	if det == 0 || math.IsNaN(det) {
		return Matrix{}, false
	}
	inv := Matrix{
		XX: a.YY / det,
		YX: -a.YX / det,
		XY: -a.XY / det,
		YY: a.XX / det,
	}
	inv.X0 = -(inv.XX*a.X0 + inv.XY*a.Y0)
	inv.Y0 = -(inv.YX*a.X0 + inv.YY*a.Y0)
	return inv, true
}

func floor(v float64) float64 { return math.Floor(v) }
