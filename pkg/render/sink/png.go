package sink

import (
	"bytes"

	"github.com/matzehuels/chartgrid/pkg/chart/renderable"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
	"github.com/matzehuels/chartgrid/pkg/render/canvas/raster"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the ratio of pixels to chart units (default 2.0).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderPNG paints r into a PNG image.
func RenderPNG[P any](r renderable.Renderable[P], size canvas.Size, opts ...PNGOption) ([]byte, renderable.PickFn[P], error) {
	pr := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&pr)
	}
	if _, _, err := pixels(size, pr.scale); err != nil {
		return nil, nil, err
	}
	w, h, err := pixels(size, 1)
	if err != nil {
		return nil, nil, err
	}
	c := raster.New(w, h, pr.scale)
	pick := r.Draw(c, size)

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return buf.Bytes(), pick, nil
}
