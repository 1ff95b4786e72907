// Package vector implements [canvas.Canvas] as an SVG document written with
// ajstarks/svgo.
//
// The canvas tracks its own transform and emits every path in absolute
// device coordinates, so the output needs no nested transforms except for
// text, which is placed with a matrix so rotated labels stay text.
package vector

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/chartgrid/pkg/fonts"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

type state struct {
	m      canvas.Matrix
	groups int // clip groups opened since the matching Save
}

// Canvas writes SVG elements as drawing calls arrive.
type Canvas struct {
	s      *svg.SVG
	state  state
	stack  []state
	path   strings.Builder
	clipID int
	closed bool
}

// New starts an SVG document of w x h units on out. Close must be called
// to finish the document.
func New(out io.Writer, w, h int) *Canvas {
	s := svg.New(out)
	s.Start(w, h)
	return &Canvas{s: s, state: state{m: canvas.Identity()}}
}

// Close ends any open groups and the document. It is safe to call twice.
func (c *Canvas) Close() {
	if c.closed {
		return
	}
	for len(c.stack) > 0 {
		c.Restore()
	}
	c.endGroups()
	c.s.End()
	c.closed = true
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.state)
	c.state.groups = 0
}

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.endGroups()
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) endGroups() {
	for ; c.state.groups > 0; c.state.groups-- {
		c.s.Gend()
	}
}

func (c *Canvas) Translate(dx, dy float64) { c.state.m = c.state.m.Translate(dx, dy) }
func (c *Canvas) Rotate(angle float64)     { c.state.m = c.state.m.Rotate(angle) }
func (c *Canvas) Transform() canvas.Matrix { return c.state.m }

func (c *Canvas) ClipRect(x, y, w, h float64) {
	c.clipID++
	id := "clip" + strconv.Itoa(c.clipID)
	m := c.state.m
	pts := []canvas.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
	var d strings.Builder
	for i, p := range pts {
		p = m.Apply(p)
		if i == 0 {
			d.WriteString("M")
		} else {
			d.WriteString(" L")
		}
		d.WriteString(num(p.X) + " " + num(p.Y))
	}
	d.WriteString(" Z")

	c.s.Def()
	c.s.ClipPath(`id="` + id + `"`)
	c.s.Path(d.String())
	c.s.ClipEnd()
	c.s.DefEnd()
	c.s.Group(`clip-path="url(#` + id + `)"`)
	c.state.groups++
}

func (c *Canvas) MoveTo(x, y float64) {
	p := c.state.m.Apply(canvas.Point{X: x, Y: y})
	c.segment("M", p)
}

func (c *Canvas) LineTo(x, y float64) {
	p := c.state.m.Apply(canvas.Point{X: x, Y: y})
	if c.path.Len() == 0 {
		c.segment("M", p)
		return
	}
	c.segment("L", p)
}

func (c *Canvas) segment(cmd string, p canvas.Point) {
	if c.path.Len() > 0 {
		c.path.WriteByte(' ')
	}
	c.path.WriteString(cmd + num(p.X) + " " + num(p.Y))
}

// Arc emits SVG arc commands. The transform is a composition of
// translations and rotations, so circles map to circles of equal radius.
func (c *Canvas) Arc(cx, cy, r, a1, a2 float64) {
	at := func(a float64) (float64, float64) { return cx + r*math.Cos(a), cy + r*math.Sin(a) }
	c.LineTo(at(a1))
	for a1 < a2 {
		next := math.Min(a2, a1+math.Pi)
		x, y := at(next)
		p := c.state.m.Apply(canvas.Point{X: x, Y: y})
		fmt.Fprintf(&c.path, " A%s %s 0 0 1 %s %s", num(r), num(r), num(p.X), num(p.Y))
		a1 = next
	}
}

func (c *Canvas) ClosePath() {
	if c.path.Len() > 0 {
		c.path.WriteString(" Z")
	}
}

func (c *Canvas) takePath() string {
	d := c.path.String()
	c.path.Reset()
	return d
}

func (c *Canvas) Fill(fs canvas.FillStyle) {
	d := c.takePath()
	if d == "" || fs.Color.IsTransparent() {
		return
	}
	attrs := []string{`fill="` + fs.Color.Hex() + `"`, `stroke="none"`}
	if fs.Color.A < 1 {
		attrs = append(attrs, `fill-opacity="`+num(fs.Color.A)+`"`)
	}
	c.s.Path(d, attrs...)
}

func (c *Canvas) Stroke(ls canvas.LineStyle) {
	d := c.takePath()
	if d == "" || ls.Color.IsTransparent() || ls.Width <= 0 {
		return
	}
	attrs := []string{
		`fill="none"`,
		`stroke="` + ls.Color.Hex() + `"`,
		`stroke-width="` + num(ls.Width) + `"`,
		`stroke-linecap="` + capName(ls.Cap) + `"`,
		`stroke-linejoin="` + joinName(ls.Join) + `"`,
	}
	if ls.Color.A < 1 {
		attrs = append(attrs, `stroke-opacity="`+num(ls.Color.A)+`"`)
	}
	if len(ls.Dashes) > 0 {
		ds := make([]string, len(ls.Dashes))
		for i, v := range ls.Dashes {
			ds[i] = num(v)
		}
		attrs = append(attrs, `stroke-dasharray="`+strings.Join(ds, ",")+`"`)
	}
	c.s.Path(d, attrs...)
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
	if s == "" || fs.Color.IsTransparent() {
		return
	}
	m := c.state.m.Translate(x, y)
	c.s.Gtransform(fmt.Sprintf("matrix(%s %s %s %s %s %s)",
		num(m.XX), num(m.YX), num(m.XY), num(m.YY), num(m.X0), num(m.Y0)))
	attrs := []string{
		`font-family="` + fonts.FontFamily + `"`,
		`font-size="` + num(fs.Size) + `"`,
		`fill="` + fs.Color.Hex() + `"`,
	}
	if fs.Weight == canvas.WeightBold {
		attrs = append(attrs, `font-weight="bold"`)
	}
	if fs.Slant == canvas.SlantItalic {
		attrs = append(attrs, `font-style="italic"`)
	}
	if fs.Color.A < 1 {
		attrs = append(attrs, `fill-opacity="`+num(fs.Color.A)+`"`)
	}
	c.s.Text(0, 0, s, attrs...)
	c.s.Gend()
}

// AlignPoint returns p unchanged; SVG viewers anti-alias on their own.
func (c *Canvas) AlignPoint(p canvas.Point) canvas.Point { return p }

func variant(fs canvas.FontStyle) fonts.Variant {
	return fonts.VariantOf(fs.Weight == canvas.WeightBold, fs.Slant == canvas.SlantItalic)
}

func capName(lc canvas.LineCap) string {
	switch lc {
	case canvas.CapRound:
		return "round"
	case canvas.CapSquare:
		return "square"
	}
	return "butt"
}

func joinName(lj canvas.LineJoin) string {
	switch lj {
	case canvas.JoinRound:
		return "round"
	case canvas.JoinBevel:
		return "bevel"
	}
	return "miter"
}

func num(v float64) string {
	if math.Abs(v) < 1e-9 {
		return "0"
	}
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

var _ canvas.Canvas = (*Canvas)(nil)
