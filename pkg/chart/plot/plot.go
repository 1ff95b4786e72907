// Package plot defines what a layout needs from a plot and provides the
// common plot types.
//
// A [Plot] draws through a [PointMapFn] that the plot area builds from its
// axes, so plots never see device ranges or axis state directly. The
// layout collects [Plot.AllPoints] from every plot before generating
// axes, which is how axis ranges end up covering the data.
package plot

import (
	"github.com/matzehuels/chartgrid/pkg/chart/axis"
	"github.com/matzehuels/chartgrid/pkg/chart/legend"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// PointMapFn maps an (x, y) position to plot area device coordinates.
type PointMapFn[X, Y any] func(x axis.Limit[X], y axis.Limit[Y]) canvas.Point

// Plot is a drawable data series.
type Plot[X, Y any] interface {
	// Render draws the plot. The canvas is clipped to the plot area.
	Render(c canvas.Canvas, pmap PointMapFn[X, Y])
	// Legend returns the legend entries of the plot, possibly none.
	Legend() []legend.Item
	// AllPoints returns the values the axes need to cover.
	AllPoints() ([]X, []Y)
}

// XY is a data point.
type XY[X, Y any] struct {
	X X
	Y Y
}

// Pt returns the data point (x, y).
func Pt[X, Y any](x X, y Y) XY[X, Y] { return XY[X, Y]{x, y} }

// Map maps a data point through pmap.
func (p XY[X, Y]) Map(pmap PointMapFn[X, Y]) canvas.Point {
	return pmap(axis.Value(p.X), axis.Value(p.Y))
}

// LimitXY is a position that may use axis sentinels.
type LimitXY[X, Y any] struct {
	X axis.Limit[X]
	Y axis.Limit[Y]
}

func splitXY[X, Y any](pts []XY[X, Y]) ([]X, []Y) {
	xs := make([]X, 0, len(pts))
	ys := make([]Y, 0, len(pts))
	for _, p := range pts {
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	return xs, ys
}

func lineSample(ls canvas.LineStyle) func(canvas.Canvas, canvas.Rect) {
	return func(c canvas.Canvas, r canvas.Rect) {
		y := (r.Min.Y + r.Max.Y) / 2
		canvas.Polyline(c, ls, canvas.Point{X: r.Min.X, Y: y}, canvas.Point{X: r.Max.X, Y: y})
	}
}

func legendItem(title string, sample func(canvas.Canvas, canvas.Rect)) []legend.Item {
	if title == "" {
		return nil
	}
	return []legend.Item{{Title: title, Sample: sample}}
}
