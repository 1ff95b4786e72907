package sink

import (
	"context"

	"github.com/matzehuels/chartgrid/pkg/chart/renderable"
	"github.com/matzehuels/chartgrid/pkg/render"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// RenderPDF renders r as SVG and converts it to PDF.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF[P any](ctx context.Context, r renderable.Renderable[P], size canvas.Size) ([]byte, renderable.PickFn[P], error) {
	svg, pick, err := RenderSVG(r, size)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := render.ToPDF(ctx, svg)
	if err != nil {
		return nil, nil, err
	}
	return pdf, pick, nil
}
