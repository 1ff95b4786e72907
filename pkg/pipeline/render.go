package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/chartgrid/pkg/chart/renderable"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/observability"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
	"github.com/matzehuels/chartgrid/pkg/render/sink"
)

// Render draws chart in each of formats. The returned pick function
// belongs to the first format drawn.
func Render(ctx context.Context, chart renderable.Renderable[Pick], w, h int, formats []string, scale float64) (map[string][]byte, PickFn, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats, w, h)
	start := time.Now()

	artifacts, pick, err := render(ctx, chart, w, h, formats, scale)

	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	return artifacts, pick, err
}

func render(ctx context.Context, chart renderable.Renderable[Pick], w, h int, formats []string, scale float64) (map[string][]byte, PickFn, error) {
	size := canvas.Size{W: float64(w), H: float64(h)}
	artifacts := make(map[string][]byte, len(formats))
	var pick PickFn

	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		var (
			data []byte
			p    PickFn
			err  error
		)
		switch format {
		case sink.FormatSVG:
			data, p, err = sink.RenderSVG(chart, size)
		case sink.FormatPNG:
			data, p, err = sink.RenderPNG(chart, size, sink.WithScale(scale))
		case sink.FormatPDF:
			data, p, err = sink.RenderPDF(ctx, chart, size)
		default:
			err = errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
		}
		if err != nil {
			return nil, nil, err
		}
		artifacts[format] = data
		if pick == nil {
			pick = p
		}
	}
	return artifacts, pick, nil
}
