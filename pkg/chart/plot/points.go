package plot

import (
	"math"

	"github.com/matzehuels/chartgrid/pkg/chart/legend"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// Shape is a marker shape.
type Shape int

const (
	Circle Shape = iota
	Square
)

// PointStyle is the look of a marker.
type PointStyle struct {
	Shape  Shape
	Radius float64
	Fill   canvas.Color
	Border canvas.LineStyle
}

// FilledCircles returns solid circular markers.
func FilledCircles(radius float64, c canvas.Color) PointStyle {
	return PointStyle{Shape: Circle, Radius: radius, Fill: c}
}

// Draw draws one marker centred on p.
func (s PointStyle) Draw(c canvas.Canvas, p canvas.Point) {
	trace := func() {
		switch s.Shape {
		case Square:
			r := s.Radius
			c.MoveTo(p.X-r, p.Y-r)
			c.LineTo(p.X+r, p.Y-r)
			c.LineTo(p.X+r, p.Y+r)
			c.LineTo(p.X-r, p.Y+r)
		default:
			c.MoveTo(p.X+s.Radius, p.Y)
			c.Arc(p.X, p.Y, s.Radius, 0, 2*math.Pi)
		}
		c.ClosePath()
	}
	if !s.Fill.IsTransparent() {
		trace()
		c.Fill(canvas.SolidFill(s.Fill))
	}
	if !s.Border.Color.IsTransparent() && s.Border.Width > 0 {
		trace()
		c.Stroke(s.Border)
	}
}

// Points draws a marker at each value.
type Points[X, Y any] struct {
	Title  string
	Style  PointStyle
	Values []XY[X, Y]
}

// Render implements [Plot].
func (p Points[X, Y]) Render(c canvas.Canvas, pmap PointMapFn[X, Y]) {
	for _, v := range p.Values {
		p.Style.Draw(c, v.Map(pmap))
	}
}

// Legend implements [Plot].
func (p Points[X, Y]) Legend() []legend.Item {
	return legendItem(p.Title, func(c canvas.Canvas, r canvas.Rect) {
		p.Style.Draw(c, canvas.Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2})
	})
}

// AllPoints implements [Plot].
func (p Points[X, Y]) AllPoints() ([]X, []Y) { return splitXY(p.Values) }

// Band is a vertical span at one x value.
type Band[X, Y any] struct {
	X         X
	Low, High Y
}

// FillBetween fills the area between two curves.
type FillBetween[X, Y any] struct {
	Title  string
	Fill   canvas.FillStyle
	Values []Band[X, Y]
}

// Render implements [Plot].
func (f FillBetween[X, Y]) Render(c canvas.Canvas, pmap PointMapFn[X, Y]) {
	if len(f.Values) == 0 {
		return
	}
	first := Pt(f.Values[0].X, f.Values[0].High).Map(pmap)
	c.MoveTo(first.X, first.Y)
	for _, b := range f.Values[1:] {
		p := Pt(b.X, b.High).Map(pmap)
		c.LineTo(p.X, p.Y)
	}
	for i := len(f.Values) - 1; i >= 0; i-- {
		p := Pt(f.Values[i].X, f.Values[i].Low).Map(pmap)
		c.LineTo(p.X, p.Y)
	}
	c.ClosePath()
	c.Fill(f.Fill)
}

// Legend implements [Plot].
func (f FillBetween[X, Y]) Legend() []legend.Item {
	return legendItem(f.Title, func(c canvas.Canvas, r canvas.Rect) {
		s := r.Size()
		canvas.FillRect(c, f.Fill, r.Min.X, r.Min.Y, s.W, s.H)
	})
}

// AllPoints implements [Plot].
func (f FillBetween[X, Y]) AllPoints() ([]X, []Y) {
	xs := make([]X, 0, len(f.Values))
	ys := make([]Y, 0, 2*len(f.Values))
	for _, b := range f.Values {
		xs = append(xs, b.X)
		ys = append(ys, b.Low, b.High)
	}
	return xs, ys
}
