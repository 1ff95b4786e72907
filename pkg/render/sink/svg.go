package sink

import (
	"bytes"
	"math"

	"github.com/matzehuels/chartgrid/pkg/chart/renderable"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
	"github.com/matzehuels/chartgrid/pkg/render/canvas/vector"
)

// RenderSVG draws r as an SVG document of the given size.
func RenderSVG[P any](r renderable.Renderable[P], size canvas.Size) ([]byte, renderable.PickFn[P], error) {
	w, h, err := pixels(size, 1)
	if err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	c := vector.New(&buf, w, h)
	pick := r.Draw(c, size)
	c.Close()
	return buf.Bytes(), pick, nil
}

// pixels rounds a size, scaled, up to whole device units and checks it.
func pixels(size canvas.Size, scale float64) (int, int, error) {
	w, h := int(math.Ceil(size.W*scale)), int(math.Ceil(size.H*scale))
	if err := errors.ValidateSize(w, h); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}
