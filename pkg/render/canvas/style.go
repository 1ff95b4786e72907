package canvas

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a non-premultiplied RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Transparent = Color{}
)

// Opaque returns an opaque color from 8-bit components.
func Opaque(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// IsTransparent reports whether drawing with c has no visible effect.
func (c Color) IsTransparent() bool { return c.A <= 0 }

// Hex returns the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// NRGBA converts c for use with image/color consumers.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(c.A)*255 + 0.5)}
}

// String implements fmt.Stringer.
func (c Color) String() string {
	if c.A >= 1 {
		return c.Hex()
	}
	return fmt.Sprintf("%s@%.2f", c.Hex(), c.A)
}

var namedColors = map[string]Color{
	"black":       Black,
	"white":       White,
	"transparent": Transparent,
	"none":        Transparent,
	"red":         Opaque(0xd6, 0x27, 0x28),
	"green":       Opaque(0x2c, 0xa0, 0x2c),
	"blue":        Opaque(0x1f, 0x77, 0xb4),
	"orange":      Opaque(0xff, 0x7f, 0x0e),
	"purple":      Opaque(0x94, 0x67, 0xbd),
	"gray":        Opaque(0x7f, 0x7f, 0x7f),
	"grey":        Opaque(0x7f, 0x7f, 0x7f),
	"lightgray":   Opaque(0xd3, 0xd3, 0xd3),
}

// ParseColor parses a named color or a #rgb/#rrggbb hex string.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	return Color{cf.R, cf.G, cf.B, 1}, nil
}

// Palette returns n visually distinct colors, starting from the
// classic category colors and continuing with evenly spaced hues.
func Palette(n int) []Color {
	base := []Color{
		namedColors["blue"], namedColors["orange"], namedColors["green"],
		namedColors["red"], namedColors["purple"],
	}
	out := make([]Color, 0, n)
	for i := 0; i < n; i++ {
		if i < len(base) {
			out = append(out, base[i])
			continue
		}
		h := float64(i-len(base)) * 360 / float64(max(1, n-len(base)))
		cf := colorful.Hcl(h, 0.6, 0.55).Clamped()
		out = append(out, Color{cf.R, cf.G, cf.B, 1})
	}
	return out
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

// LineCap is the shape used at the end of open strokes.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the shape used where stroke segments meet.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// LineStyle describes how paths are stroked.
type LineStyle struct {
	Width  float64
	Color  Color
	Dashes []float64
	Cap    LineCap
	Join   LineJoin
}

// SolidLine returns a plain line style.
func SolidLine(width float64, c Color) LineStyle {
	return LineStyle{Width: width, Color: c, Cap: CapButt, Join: JoinBevel}
}

// DashedLine returns a dashed line style.
func DashedLine(width float64, dashes []float64, c Color) LineStyle {
	s := SolidLine(width, c)
	s.Dashes = dashes
	return s
}

// FillStyle describes how closed paths are filled.
type FillStyle struct {
	Color Color
}

// SolidFill returns a fill style painting c.
func SolidFill(c Color) FillStyle { return FillStyle{Color: c} }

// FontWeight selects between regular and bold faces.
type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
)

// FontSlant selects between upright and italic faces.
type FontSlant int

const (
	SlantNormal FontSlant = iota
	SlantItalic
)

// FontStyle describes how text is set.
type FontStyle struct {
	Family string
	Size   float64
	Weight FontWeight
	Slant  FontSlant
	Color  Color
}

// DefaultFont is a 10pt regular sans-serif face.
var DefaultFont = FontStyle{Family: "sans-serif", Size: 10, Color: Black}

// WithSize returns fs with a different size.
func (fs FontStyle) WithSize(size float64) FontStyle {
	fs.Size = size
	return fs
}

// Bold returns fs in the bold weight.
func (fs FontStyle) Bold() FontStyle {
	fs.Weight = WeightBold
	return fs
}

// TextExtents are the metrics of a laid out string.
type TextExtents struct {
	W, H            float64 // advance width, ascent+descent
	Ascent, Descent float64
}

// FontExtents are the metrics of a font face, independent of text.
type FontExtents struct {
	Ascent, Descent, Height float64
}
