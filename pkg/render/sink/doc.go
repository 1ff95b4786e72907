// Package sink renders a renderable to SVG, PNG or PDF bytes.
//
// Every sink draws the renderable once at the requested size and returns
// its pick function alongside the output, so callers can answer pick
// queries about exactly what was written:
//
//	svg, pick, err := sink.RenderSVG(chart, canvas.Size{W: 800, H: 600})
//	p, ok := pick(canvas.Point{X: 400, Y: 300})
//
// Pick coordinates are chart units; a PNG rendered with [WithScale] still
// answers queries in unscaled units.
package sink

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF}
