// Package layout assembles a complete chart: title, up to four axes with
// their titles, a plot area holding any number of plots, and a legend.
//
// A [Layout] is a plain value. [ToRenderable] turns it into a renderable
// whose pick function reports which part of the chart lies under a
// point, as a [Pick]. Axes are generated from the plotted data on every
// render, so the same layout can be drawn at different sizes or with
// different data without rebuilding it.
package layout

import (
	"github.com/matzehuels/chartgrid/pkg/chart/axis"
	"github.com/matzehuels/chartgrid/pkg/chart/legend"
	"github.com/matzehuels/chartgrid/pkg/chart/plot"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// LayoutAxis configures one axis of a layout.
type LayoutAxis[T any] struct {
	Title      string
	TitleStyle canvas.FontStyle
	Style      axis.Style
	// Visible decides from the data whether the axis is shown. A hidden
	// axis has no title, ticks, labels or gridlines, and plots that need
	// it are not drawn.
	Visible  func(values []T) bool
	Generate axis.AxisFn[T]
	Override axis.Override[T]
	Reverse  bool
}

// VisibleIfData shows an axis when it has at least one value.
func VisibleIfData[T any](values []T) bool { return len(values) > 0 }

// AlwaysVisible shows an axis regardless of data.
func AlwaysVisible[T any]([]T) bool { return true }

// NeverVisible hides an axis.
func NeverVisible[T any]([]T) bool { return false }

// DefaultAxis returns an auto-scaled axis shown when it has data.
func DefaultAxis[T axis.Numeric]() LayoutAxis[T] {
	return LayoutAxis[T]{
		TitleStyle: canvas.DefaultFont,
		Style:      axis.DefaultStyle(),
		Visible:    VisibleIfData[T],
		Generate:   axis.AutoScaled[T](axis.DefaultOptions()),
	}
}

// build evaluates the axis for the given data, or returns nil when the
// axis is hidden.
func (la LayoutAxis[T]) build(side axis.Side, values []T) *axis.Axis[T] {
	if la.Visible == nil || !la.Visible(values) || la.Generate == nil {
		return nil
	}
	data := la.Generate(values)
	if la.Override != nil {
		data = la.Override(data)
	}
	if la.Reverse {
		data = axis.Reverse(data)
	}
	return &axis.Axis[T]{Side: side, Style: la.Style, Data: data}
}

// Either is a plot tagged with the y axis it is drawn against.
type Either[X, Y any] struct {
	Plot  plot.Plot[X, Y]
	Right bool
}

// Left tags p for the left y axis.
func Left[X, Y any](p plot.Plot[X, Y]) Either[X, Y] { return Either[X, Y]{Plot: p} }

// Right tags p for the right y axis.
func Right[X, Y any](p plot.Plot[X, Y]) Either[X, Y] { return Either[X, Y]{Plot: p, Right: true} }

// YAxesControl derives the values each y axis is generated from, given
// the values of the plots on each side.
type YAxesControl[Y any] func(left, right []Y) ([]Y, []Y)

// IndependentYAxes generates each y axis from its own plots.
func IndependentYAxes[Y any](left, right []Y) ([]Y, []Y) { return left, right }

// LinkedYAxes generates both y axes from all plots, so they show the
// same range.
func LinkedYAxes[Y any](left, right []Y) ([]Y, []Y) {
	all := make([]Y, 0, len(left)+len(right))
	all = append(append(all, left...), right...)
	return all, all
}

// Layout describes a chart.
type Layout[X, Y any] struct {
	Background     canvas.FillStyle
	PlotBackground *canvas.FillStyle

	Title      string
	TitleStyle canvas.FontStyle

	Bottom, Top LayoutAxis[X]
	Left, Right LayoutAxis[Y]
	YAxes       YAxesControl[Y]

	Margin float64
	// Plots are drawn in order, so later plots cover earlier ones.
	Plots  []Either[X, Y]
	Legend *legend.Style
	// GridLast draws gridlines over the plots instead of under them.
	GridLast bool
}

// New returns a layout with a white background, auto-scaled bottom, left
// and right axes shown when they have data, a hidden top axis,
// independent y axes, a margin of 10 and a legend.
func New[X, Y axis.Numeric]() Layout[X, Y] {
	top := DefaultAxis[X]()
	top.Visible = NeverVisible[X]
	ls := legend.DefaultStyle()
	return Layout[X, Y]{
		Background: canvas.SolidFill(canvas.White),
		TitleStyle: canvas.DefaultFont.WithSize(15).Bold(),
		Bottom:     DefaultAxis[X](),
		Top:        top,
		Left:       DefaultAxis[Y](),
		Right:      DefaultAxis[Y](),
		YAxes:      IndependentYAxes[Y],
		Margin:     10,
		Legend:     &ls,
	}
}

// WithTitle returns l with the chart title set.
func (l Layout[X, Y]) WithTitle(title string) Layout[X, Y] {
	l.Title = title
	return l
}

// WithMargin returns l with margin m around the plot area and legend.
func (l Layout[X, Y]) WithMargin(m float64) Layout[X, Y] {
	l.Margin = m
	return l
}

// WithPlots returns l with ps appended to its plots.
func (l Layout[X, Y]) WithPlots(ps ...Either[X, Y]) Layout[X, Y] {
	l.Plots = append(append([]Either[X, Y](nil), l.Plots...), ps...)
	return l
}

// WithLegend returns l with the given legend style; nil hides the legend.
func (l Layout[X, Y]) WithLegend(s *legend.Style) Layout[X, Y] {
	l.Legend = s
	return l
}

// WithGridLast returns l with gridlines drawn over the plots when v is
// true.
func (l Layout[X, Y]) WithGridLast(v bool) Layout[X, Y] {
	l.GridLast = v
	return l
}

// WithBackground returns l with the given background.
func (l Layout[X, Y]) WithBackground(fs canvas.FillStyle) Layout[X, Y] {
	l.Background = fs
	return l
}

// WithPlotBackground returns l with the plot area filled by fs.
func (l Layout[X, Y]) WithPlotBackground(fs canvas.FillStyle) Layout[X, Y] {
	l.PlotBackground = &fs
	return l
}

// WithYAxes returns l with the given y axis control.
func (l Layout[X, Y]) WithYAxes(f YAxesControl[Y]) Layout[X, Y] {
	l.YAxes = f
	return l
}

// WithBottomAxis returns l with the bottom axis replaced.
func (l Layout[X, Y]) WithBottomAxis(a LayoutAxis[X]) Layout[X, Y] {
	l.Bottom = a
	return l
}

// WithTopAxis returns l with the top axis replaced.
func (l Layout[X, Y]) WithTopAxis(a LayoutAxis[X]) Layout[X, Y] {
	l.Top = a
	return l
}

// WithLeftAxis returns l with the left axis replaced.
func (l Layout[X, Y]) WithLeftAxis(a LayoutAxis[Y]) Layout[X, Y] {
	l.Left = a
	return l
}

// WithRightAxis returns l with the right axis replaced.
func (l Layout[X, Y]) WithRightAxis(a LayoutAxis[Y]) Layout[X, Y] {
	l.Right = a
	return l
}

// values collects the data of all plots: x values, and y values per side.
func (l Layout[X, Y]) values() (xs []X, left, right []Y) {
	for _, e := range l.Plots {
		if e.Plot == nil {
			continue
		}
		px, py := e.Plot.AllPoints()
		xs = append(xs, px...)
		if e.Right {
			right = append(right, py...)
		} else {
			left = append(left, py...)
		}
	}
	return xs, left, right
}

// legendItems returns the legend entries of the plots on one side.
func (l Layout[X, Y]) legendItems(right bool) []legend.Item {
	var items []legend.Item
	for _, e := range l.Plots {
		if e.Plot == nil || e.Right != right {
			continue
		}
		for _, it := range e.Plot.Legend() {
			if it.Title != "" {
				items = append(items, it)
			}
		}
	}
	return items
}
