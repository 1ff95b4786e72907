// Package raster implements [canvas.Canvas] on top of fogleman/gg.
//
// Stroke coordinates are snapped to pixel centres so that one pixel wide
// lines stay crisp.
package raster

import (
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/chartgrid/pkg/fonts"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// Canvas paints onto an RGBA image.
type Canvas struct {
	dc    *gg.Context
	m     canvas.Matrix
	stack []canvas.Matrix
}

// New returns a canvas of w x h pixels scaled by scale (2 for a 2x image
// of the same logical size).
func New(w, h int, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(int(math.Ceil(float64(w)*scale)), int(math.Ceil(float64(h)*scale)))
	dc.Scale(scale, scale)
	return &Canvas{
		dc: dc,
		m:  canvas.Matrix{XX: scale, YY: scale},
	}
}

// Image returns the painted image.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

func (c *Canvas) Save() {
	c.dc.Push()
	c.stack = append(c.stack, c.m)
}

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.dc.Pop()
	c.m = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) Translate(dx, dy float64) {
	c.dc.Translate(dx, dy)
	c.m = c.m.Translate(dx, dy)
}

func (c *Canvas) Rotate(angle float64) {
	c.dc.Rotate(angle)
	c.m = c.m.Rotate(angle)
}

func (c *Canvas) Transform() canvas.Matrix { return c.m }

func (c *Canvas) ClipRect(x, y, w, h float64) {
	c.dc.NewSubPath()
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Clip()
}

func (c *Canvas) MoveTo(x, y float64) { c.dc.MoveTo(x, y) }
func (c *Canvas) LineTo(x, y float64) { c.dc.LineTo(x, y) }
func (c *Canvas) ClosePath()          { c.dc.ClosePath() }

func (c *Canvas) Arc(cx, cy, r, a1, a2 float64) {
	c.dc.DrawArc(cx, cy, r, a1, a2)
}

func (c *Canvas) Fill(fs canvas.FillStyle) {
	if fs.Color.IsTransparent() {
		c.dc.ClearPath()
		return
	}
	c.dc.SetColor(fs.Color.NRGBA())
	c.dc.Fill()
}

func (c *Canvas) Stroke(ls canvas.LineStyle) {
	if ls.Color.IsTransparent() || ls.Width <= 0 {
		c.dc.ClearPath()
		return
	}
	c.dc.SetColor(ls.Color.NRGBA())
	c.dc.SetLineWidth(ls.Width)
	c.dc.SetDash(ls.Dashes...)
	switch ls.Cap {
	case canvas.CapRound:
		c.dc.SetLineCapRound()
	case canvas.CapSquare:
		c.dc.SetLineCapSquare()
	default:
		c.dc.SetLineCapButt()
	}
	switch ls.Join {
	case canvas.JoinRound:
		c.dc.SetLineJoinRound()
	default:
		c.dc.SetLineJoinBevel()
	}
	c.dc.Stroke()
}

func (c *Canvas) MeasureText(fs canvas.FontStyle, s string) canvas.TextExtents {
	w, m := fonts.Measure(variant(fs), fs.Size, s)
	return canvas.TextExtents{W: w, H: m.Ascent + m.Descent, Ascent: m.Ascent, Descent: m.Descent}
}

func (c *Canvas) FontExtents(fs canvas.FontStyle) canvas.FontExtents {
	_, m := fonts.Measure(variant(fs), fs.Size, "")
	return canvas.FontExtents{Ascent: m.Ascent, Descent: m.Descent, Height: m.Height}
}

func (c *Canvas) DrawText(fs canvas.FontStyle, x, y float64, s string) {
	face, err := fonts.Face(variant(fs), fs.Size)
	if err != nil {
		return
	}
	c.dc.SetFontFace(face)
	c.dc.SetColor(fs.Color.NRGBA())
	c.dc.DrawString(s, x, y)
}

// AlignPoint snaps p to the centre of its device pixel.
func (c *Canvas) AlignPoint(p canvas.Point) canvas.Point {
	return canvas.SnapToPixel(c.m, p)
}

func variant(fs canvas.FontStyle) fonts.Variant {
	return fonts.VariantOf(fs.Weight == canvas.WeightBold, fs.Slant == canvas.SlantItalic)
}

var _ canvas.Canvas = (*Canvas)(nil)
