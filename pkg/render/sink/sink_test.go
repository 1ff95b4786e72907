package sink

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/chartgrid/pkg/chart/renderable"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/render"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// boxed is the label "hi" inside a margin of 10.
func boxed() renderable.Renderable[string] {
	label := renderable.Label(canvas.DefaultFont, renderable.HCentre, renderable.VCentre, 0, "hi")
	return renderable.AddMargins(renderable.Uniform(10), label)
}

var size = canvas.Size{W: 40, H: 30}

func TestRenderSVG(t *testing.T) {
	out, pick, err := RenderSVG(boxed(), size)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(out)
	for _, want := range []string{"<svg", `width="40"`, `height="30"`, ">hi<", "</svg>"} {
		if !strings.Contains(s, want) {
			t.Errorf("SVG missing %q:\n%s", want, s)
		}
	}
	if got, ok := pick(canvas.Point{X: 20, Y: 15}); !ok || got != "hi" {
		t.Errorf("pick(20,15) = %q, %v, want hi", got, ok)
	}
	if _, ok := pick(canvas.Point{X: 2, Y: 2}); ok {
		t.Error("pick in the margin should miss")
	}
}

func TestRenderPNG(t *testing.T) {
	tests := []struct {
		name string
		opts []PNGOption
		w, h int
	}{
		{"default scale", nil, 80, 60},
		{"scale 1", []PNGOption{WithScale(1)}, 40, 30},
		{"non-positive scale ignored", []PNGOption{WithScale(0)}, 80, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, pick, err := RenderPNG(boxed(), size, tt.opts...)
			if err != nil {
				t.Fatalf("RenderPNG: %v", err)
			}
			cfg, err := png.DecodeConfig(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if cfg.Width != tt.w || cfg.Height != tt.h {
				t.Errorf("image = %dx%d, want %dx%d", cfg.Width, cfg.Height, tt.w, tt.h)
			}
			if got, ok := pick(canvas.Point{X: 20, Y: 15}); !ok || got != "hi" {
				t.Errorf("pick uses chart units: got %q, %v", got, ok)
			}
		})
	}
}

func TestRenderInvalidSize(t *testing.T) {
	_, _, err := RenderSVG(boxed(), canvas.Size{})
	if !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("RenderSVG(0x0) = %v, want INVALID_SIZE", err)
	}
	_, _, err = RenderPNG(boxed(), canvas.Size{W: 5000, H: 10}, WithScale(2))
	if !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("RenderPNG(10000px) = %v, want INVALID_SIZE", err)
	}
}

func TestRenderPDF(t *testing.T) {
	if !render.CanConvert() {
		t.Skip("rsvg-convert not installed")
	}
	out, _, err := RenderPDF(context.Background(), boxed(), size)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestPickMap(t *testing.T) {
	c := canvas.NewRecorder()
	pick := boxed().Draw(c, size)
	got := PickMap(pick, size, 4, 3, func(s string) rune { return rune(s[0]) })
	want := []string{"....", ".hh.", "...."}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("PickMap =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
	if PickMap(pick, size, 0, 3, func(string) rune { return 'x' }) != nil {
		t.Error("PickMap with no columns should be nil")
	}
}
