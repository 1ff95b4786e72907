package renderable

import (
	"math"

	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// CornerKind selects how rectangle corners are drawn.
type CornerKind int

const (
	CornerSquare CornerKind = iota
	CornerBevel
	CornerRounded
)

// Corners describes the corners of a [Rectangle].
type Corners struct {
	Kind   CornerKind
	Radius float64
}

// Square corners.
var Square = Corners{}

// Bevel cuts each corner diagonally at distance r.
func Bevel(r float64) Corners { return Corners{Kind: CornerBevel, Radius: r} }

// Rounded rounds each corner with radius r.
func Rounded(r float64) Corners { return Corners{Kind: CornerRounded, Radius: r} }

// RectangleSpec configures a [Rectangle]. A nil Fill or Line skips that
// part.
type RectangleSpec struct {
	MinSize canvas.Size
	Fill    *canvas.FillStyle
	Line    *canvas.LineStyle
	Corners Corners
}

// Rectangle fills and strokes the whole target. It never picks.
func Rectangle[P any](spec RectangleSpec) Renderable[P] {
	return Renderable[P]{
		Measure: func(canvas.Canvas) canvas.Size { return spec.MinSize },
		Draw: func(c canvas.Canvas, size canvas.Size) PickFn[P] {
			canvas.Scoped(c, func() {
				if spec.Fill != nil {
					rectPath(c, spec.Corners, size)
					c.Fill(*spec.Fill)
				}
				if spec.Line != nil {
					rectPath(c, spec.Corners, size)
					c.Stroke(*spec.Line)
				}
			})
			return NoPick[P]()
		},
	}
}

func rectPath(c canvas.Canvas, k Corners, size canvas.Size) {
	w, h := size.W, size.H
	r := math.Max(0, math.Min(k.Radius, math.Min(w, h)/2))
	switch {
	case k.Kind == CornerBevel && r > 0:
		c.MoveTo(r, 0)
		c.LineTo(w-r, 0)
		c.LineTo(w, r)
		c.LineTo(w, h-r)
		c.LineTo(w-r, h)
		c.LineTo(r, h)
		c.LineTo(0, h-r)
		c.LineTo(0, r)
	case k.Kind == CornerRounded && r > 0:
		c.MoveTo(r, 0)
		c.Arc(w-r, r, r, -math.Pi/2, 0)
		c.Arc(w-r, h-r, r, 0, math.Pi/2)
		c.Arc(r, h-r, r, math.Pi/2, math.Pi)
		c.Arc(r, r, r, math.Pi, 3*math.Pi/2)
	default:
		p0 := c.AlignPoint(canvas.Point{})
		p1 := c.AlignPoint(canvas.Point{X: w, Y: h})
		c.MoveTo(p0.X, p0.Y)
		c.LineTo(p1.X, p0.Y)
		c.LineTo(p1.X, p1.Y)
		c.LineTo(p0.X, p1.Y)
	}
	c.ClosePath()
}
