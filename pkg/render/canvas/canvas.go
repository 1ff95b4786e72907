// Package canvas defines the immediate-mode 2D drawing surface that chart
// renderables paint onto.
//
// # Overview
//
// A [Canvas] is a path-based surface with a transform and clip stack:
//
//   - Save/Restore push and pop the transform and clip state
//   - Translate/Rotate modify the current transform
//   - ClipRect intersects the clip region with a rectangle
//   - MoveTo/LineTo/Arc/ClosePath build a path; Fill/Stroke consume it
//   - MeasureText/FontExtents/DrawText handle text
//
// All coordinates are floating-point device units. Bitmap backends snap
// stroke coordinates to pixel centres through [Canvas.AlignPoint]; vector
// backends leave them unchanged.
//
// Backends live in subpackages: [raster] paints onto an image with
// fogleman/gg, [vector] writes SVG with ajstarks/svgo. [Recorder] is an
// in-memory canvas with deterministic metrics for tests.
//
// [raster]: github.com/matzehuels/chartgrid/pkg/render/canvas/raster
// [vector]: github.com/matzehuels/chartgrid/pkg/render/canvas/vector
package canvas

// Canvas is the drawing surface consumed by renderables.
type Canvas interface {
	// Save pushes the transform and clip state.
	Save()
	// Restore pops the state pushed by the matching Save.
	Restore()

	Translate(dx, dy float64)
	// Rotate rotates the coordinate space by angle radians.
	Rotate(angle float64)
	// Transform returns the current user-to-device transform.
	Transform() Matrix

	// ClipRect intersects the clip region with the rectangle in user space.
	ClipRect(x, y, w, h float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a circular arc from angle a1 to a2 (radians, increasing),
	// connected to the current point by a straight segment.
	Arc(cx, cy, r, a1, a2 float64)
	ClosePath()

	// Fill fills and clears the current path.
	Fill(FillStyle)
	// Stroke strokes and clears the current path.
	Stroke(LineStyle)

	MeasureText(fs FontStyle, s string) TextExtents
	FontExtents(fs FontStyle) FontExtents
	// DrawText draws s with its baseline starting at (x,y).
	DrawText(fs FontStyle, x, y float64, s string)

	// AlignPoint adjusts a user-space point so that thin strokes render
	// crisply on this surface.
	AlignPoint(p Point) Point
}

// Scoped runs fn between Save and Restore. Restore runs on every exit
// path of fn, panics included.
func Scoped(c Canvas, fn func()) {
	c.Save()
	defer c.Restore()
	fn()
}

// Polyline strokes the open path through pts.
func Polyline(c Canvas, ls LineStyle, pts ...Point) {
	if len(pts) < 2 {
		return
	}
	p := c.AlignPoint(pts[0])
	c.MoveTo(p.X, p.Y)
	for _, q := range pts[1:] {
		q = c.AlignPoint(q)
		c.LineTo(q.X, q.Y)
	}
	c.Stroke(ls)
}

// FillRect fills the rectangle at (x,y) with size (w,h).
func FillRect(c Canvas, fs FillStyle, x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
	c.Fill(fs)
}

// SnapToPixel maps p in user space to the centre of the device pixel
// containing it, expressed back in user space. Bitmap canvases use it as
// their AlignPoint implementation.
func SnapToPixel(m Matrix, p Point) Point {
	d := m.Apply(p)
	d = Point{floor(d.X) + 0.5, floor(d.Y) + 0.5}
	inv, ok := m.Invert()
	if !ok {
		return p
	}
	return inv.Apply(d)
}
