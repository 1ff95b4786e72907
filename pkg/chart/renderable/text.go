package renderable

import (
	"math"

	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// HAnchor places text horizontally relative to its anchor.
type HAnchor int

const (
	HLeft HAnchor = iota
	HCentre
	HRight
)

// VAnchor places text vertically relative to its anchor.
type VAnchor int

const (
	VTop VAnchor = iota
	VCentre
	VBottom
)

// TextSize returns the bounding box of s rotated by angle radians.
func TextSize(c canvas.Canvas, fs canvas.FontStyle, angle float64, s string) canvas.Size {
	te := c.MeasureText(fs, s)
	return RotatedSize(canvas.Size{W: te.W, H: te.H}, angle)
}

// RotatedSize returns the axis-aligned extent of a w x h box rotated by
// angle radians.
func RotatedSize(s canvas.Size, angle float64) canvas.Size {
	sin, cos := math.Abs(math.Sin(angle)), math.Abs(math.Cos(angle))
	return canvas.Size{
		W: s.W*cos + s.H*sin,
		H: s.W*sin + s.H*cos,
	}
}

// DrawText draws s rotated by angle so that the anchor point of its
// rotated bounding box lands on p. For example HLeft/VCentre puts the
// middle of the box's left edge on p.
func DrawText(c canvas.Canvas, fs canvas.FontStyle, h HAnchor, v VAnchor, angle float64, p canvas.Point, s string) {
	if s == "" {
		return
	}
	te := c.MeasureText(fs, s)
	box := RotatedSize(canvas.Size{W: te.W, H: te.H}, angle)
	centre := canvas.Point{
		X: p.X + anchorOffset(int(h), box.W),
		Y: p.Y + anchorOffset(int(v), box.H),
	}
	canvas.Scoped(c, func() {
		c.Translate(centre.X, centre.Y)
		c.Rotate(angle)
		c.DrawText(fs, -te.W/2, te.H/2-te.Descent, s)
	})
}

// anchorOffset returns the distance from an anchor to the box centre:
// start anchors sit half a box before the centre, end anchors half after.
func anchorOffset(a int, extent float64) float64 {
	switch a {
	case 0:
		return extent / 2
	case 2:
		return -extent / 2
	}
	return 0
}

// Label renders a single line of text. Its minimum size is the rotated
// bounding box of the text; within a larger target it is placed by the
// anchors. Any point inside the target picks the text. The text is
// rotated by degrees, clockwise on a y-down surface.
func Label(fs canvas.FontStyle, h HAnchor, v VAnchor, degrees float64, text string) Renderable[string] {
	angle := degrees * math.Pi / 180
	return Renderable[string]{
		Measure: func(c canvas.Canvas) canvas.Size {
			if text == "" {
				return canvas.Size{}
			}
			return TextSize(c, fs, angle, text)
		},
		Draw: func(c canvas.Canvas, size canvas.Size) PickFn[string] {
			p := canvas.Point{
				X: anchorPos(int(h), size.W),
				Y: anchorPos(int(v), size.H),
			}
			canvas.Scoped(c, func() {
				c.ClipRect(0, 0, size.W, size.H)
				DrawText(c, fs, h, v, angle, p, text)
			})
			return func(p canvas.Point) (string, bool) {
				if text == "" || !size.Contains(p) {
					return "", false
				}
				return text, true
			}
		},
	}
}

func anchorPos(a int, extent float64) float64 {
	switch a {
	case 0:
		return 0
	case 2:
		return extent
	}
	return extent / 2
}
