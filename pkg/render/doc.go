// Package render turns renderables into files.
//
// Drawing happens on the canvases under [canvas]: [vector] writes SVG and
// [raster] paints PNG images. The [sink] package wraps both behind
// RenderSVG, RenderPNG and RenderPDF. PDF output is produced from the SVG
// with the external rsvg-convert tool through [ToPDF].
//
//	svg, pick, err := sink.RenderSVG(chart, canvas.Size{W: 800, H: 600})
//	pdf, err := render.ToPDF(ctx, svg)
//
// [canvas]: github.com/matzehuels/chartgrid/pkg/render/canvas
// [vector]: github.com/matzehuels/chartgrid/pkg/render/canvas/vector
// [raster]: github.com/matzehuels/chartgrid/pkg/render/canvas/raster
// [sink]: github.com/matzehuels/chartgrid/pkg/render/sink
package render
