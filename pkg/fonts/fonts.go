// Package fonts provides font faces and metrics for chart text.
//
// The Go font family is embedded through golang.org/x/image/font/gofont,
// so both the raster and the SVG canvas measure text identically without
// relying on system fonts.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// FontFamily is the CSS font-family written into SVG output.
const FontFamily = "Go, 'Helvetica Neue', Arial, sans-serif"

// Variant selects one of the embedded faces.
type Variant int

const (
	Regular Variant = iota
	Bold
	Italic
	BoldItalic
)

var ttfs = [...][]byte{
	Regular:    goregular.TTF,
	Bold:       gobold.TTF,
	Italic:     goitalic.TTF,
	BoldItalic: gobolditalic.TTF,
}

type faceKey struct {
	v    Variant
	size float64
}

var (
	parsed     [len(ttfs)]*truetype.Font
	parseOnce  [len(ttfs)]sync.Once
	parseErr   [len(ttfs)]error
	faces      sync.Map // faceKey -> font.Face
	facesMutex sync.Mutex
)

func parse(v Variant) (*truetype.Font, error) {
	parseOnce[v].Do(func() {
		parsed[v], parseErr[v] = truetype.Parse(ttfs[v])
	})
	return parsed[v], parseErr[v]
}

// Face returns a cached face for the variant at size points (72 DPI, so
// one point is one device unit).
func Face(v Variant, size float64) (font.Face, error) {
	if v < Regular || v > BoldItalic {
		return nil, fmt.Errorf("unknown font variant %d", v)
	}
	if size <= 0 {
		size = 10
	}
	key := faceKey{v, size}
	if f, ok := faces.Load(key); ok {
		return f.(font.Face), nil
	}

	facesMutex.Lock()
	defer facesMutex.Unlock()
	if f, ok := faces.Load(key); ok {
		return f.(font.Face), nil
	}
	ft, err := parse(v)
	if err != nil {
		return nil, err
	}
	f := truetype.NewFace(ft, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
	faces.Store(key, f)
	return f, nil
}

// Metrics are the vertical metrics of a face in device units.
type Metrics struct {
	Ascent, Descent, Height float64
}

// FaceMetrics returns the vertical metrics of f.
func FaceMetrics(f font.Face) Metrics {
	m := f.Metrics()
	return Metrics{
		Ascent:  toFloat(m.Ascent),
		Descent: toFloat(m.Descent),
		Height:  toFloat(m.Height),
	}
}

// Advance returns the advance width of s set in f.
func Advance(f font.Face, s string) float64 {
	return toFloat(font.MeasureString(f, s))
}

// Measure returns the advance width and vertical metrics of s, falling
// back to a 0.6em-per-rune approximation if the face cannot be loaded.
func Measure(v Variant, size float64, s string) (w float64, m Metrics) {
	f, err := Face(v, size)
	if err != nil {
		return 0.6 * size * float64(len([]rune(s))), Metrics{0.8 * size, 0.2 * size, 1.2 * size}
	}
	return Advance(f, s), FaceMetrics(f)
}

func toFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

// VariantOf picks the face for the given weight and slant.
func VariantOf(bold, italic bool) Variant {
	switch {
	case bold && italic:
		return BoldItalic
	case bold:
		return Bold
	case italic:
		return Italic
	}
	return Regular
}
