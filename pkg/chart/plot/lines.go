package plot

import (
	"github.com/matzehuels/chartgrid/pkg/chart/axis"
	"github.com/matzehuels/chartgrid/pkg/chart/legend"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// Lines draws one polyline per series.
type Lines[X, Y any] struct {
	Title  string
	Style  canvas.LineStyle
	Values [][]XY[X, Y]
	// LimitValues are polylines whose points may sit on axis ends.
	// Only their concrete values count towards the axis ranges.
	LimitValues [][]LimitXY[X, Y]
}

// Render implements [Plot].
func (l Lines[X, Y]) Render(c canvas.Canvas, pmap PointMapFn[X, Y]) {
	for _, series := range l.Values {
		pts := make([]canvas.Point, len(series))
		for i, p := range series {
			pts[i] = p.Map(pmap)
		}
		canvas.Polyline(c, l.Style, pts...)
	}
	for _, series := range l.LimitValues {
		pts := make([]canvas.Point, len(series))
		for i, p := range series {
			pts[i] = pmap(p.X, p.Y)
		}
		canvas.Polyline(c, l.Style, pts...)
	}
}

// Legend implements [Plot].
func (l Lines[X, Y]) Legend() []legend.Item { return legendItem(l.Title, lineSample(l.Style)) }

// AllPoints implements [Plot].
func (l Lines[X, Y]) AllPoints() ([]X, []Y) {
	var xs []X
	var ys []Y
	for _, series := range l.Values {
		sx, sy := splitXY(series)
		xs, ys = append(xs, sx...), append(ys, sy...)
	}
	for _, series := range l.LimitValues {
		for _, p := range series {
			if x, ok := p.X.IsValue(); ok {
				xs = append(xs, x)
			}
			if y, ok := p.Y.IsValue(); ok {
				ys = append(ys, y)
			}
		}
	}
	return xs, ys
}

// HLine is a horizontal reference line across the whole plot area.
type HLine[X, Y any] struct {
	Title string
	Style canvas.LineStyle
	Value Y
}

// Render implements [Plot].
func (h HLine[X, Y]) Render(c canvas.Canvas, pmap PointMapFn[X, Y]) {
	y := axis.Value(h.Value)
	canvas.Polyline(c, h.Style, pmap(axis.Min[X](), y), pmap(axis.Max[X](), y))
}

// Legend implements [Plot].
func (h HLine[X, Y]) Legend() []legend.Item { return legendItem(h.Title, lineSample(h.Style)) }

// AllPoints implements [Plot]. The line spans any x range, so it
// contributes no x values.
func (h HLine[X, Y]) AllPoints() ([]X, []Y) { return nil, []Y{h.Value} }

// VLine is a vertical reference line across the whole plot area.
type VLine[X, Y any] struct {
	Title string
	Style canvas.LineStyle
	Value X
}

// Render implements [Plot].
func (v VLine[X, Y]) Render(c canvas.Canvas, pmap PointMapFn[X, Y]) {
	x := axis.Value(v.Value)
	canvas.Polyline(c, v.Style, pmap(x, axis.Min[Y]()), pmap(x, axis.Max[Y]()))
}

// Legend implements [Plot].
func (v VLine[X, Y]) Legend() []legend.Item { return legendItem(v.Title, lineSample(v.Style)) }

// AllPoints implements [Plot].
func (v VLine[X, Y]) AllPoints() ([]X, []Y) { return []X{v.Value}, nil }
