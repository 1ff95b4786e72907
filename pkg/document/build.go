package document

import (
	"github.com/matzehuels/chartgrid/pkg/chart/axis"
	"github.com/matzehuels/chartgrid/pkg/chart/layout"
	"github.com/matzehuels/chartgrid/pkg/chart/legend"
	"github.com/matzehuels/chartgrid/pkg/chart/plot"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// Chart is the layout type documents build.
type Chart = layout.Layout[float64, float64]

// Default series styling.
const (
	DefaultLineWidth   = 1.5
	DefaultPointRadius = 3
)

// Build turns the document into a layout. The document must be valid.
func (d *Document) Build() (Chart, error) {
	if err := d.Validate(); err != nil {
		return Chart{}, err
	}
	l := layout.New[float64, float64]().WithTitle(d.Title)
	if d.Margin != nil {
		l = l.WithMargin(*d.Margin)
	}
	l = l.WithGridLast(d.GridLast)
	if d.LinkYAxes {
		l = l.WithYAxes(layout.LinkedYAxes[float64])
	}
	if d.Background != "" {
		l = l.WithBackground(canvas.SolidFill(mustColor(d.Background)))
	}
	if d.PlotBackground != "" {
		l = l.WithPlotBackground(canvas.SolidFill(mustColor(d.PlotBackground)))
	}
	if d.Legend.Hidden {
		l = l.WithLegend(nil)
	} else {
		ls := legend.DefaultStyle()
		ls.MaxColumns = d.Legend.MaxColumns
		l = l.WithLegend(&ls)
	}

	l = l.WithBottomAxis(d.Axes.Bottom.apply(l.Bottom)).
		WithTopAxis(d.Axes.Top.apply(l.Top)).
		WithLeftAxis(d.Axes.Left.apply(l.Left)).
		WithRightAxis(d.Axes.Right.apply(l.Right))

	palette := canvas.Palette(len(d.Series))
	for i, s := range d.Series {
		color := palette[i]
		if s.Color != "" {
			color = mustColor(s.Color)
		}
		p := s.plot(color)
		if s.right() {
			l = l.WithPlots(layout.Right(p))
		} else {
			l = l.WithPlots(layout.Left(p))
		}
	}
	return l, nil
}

// apply configures la from the axis section. Unset fields keep la's
// values.
func (a Axis) apply(la layout.LayoutAxis[float64]) layout.LayoutAxis[float64] {
	la.Title = a.Title
	la.Reverse = a.Reverse
	switch a.Visible {
	case VisibleAuto:
		la.Visible = layout.VisibleIfData[float64]
	case VisibleAlways:
		la.Visible = layout.AlwaysVisible[float64]
	case VisibleNever:
		la.Visible = layout.NeverVisible[float64]
	}

	opts := axis.DefaultOptions()
	if a.MaxTicks > 0 {
		opts.MaxTicks = a.MaxTicks
	}
	opts.Tight = a.Tight
	switch {
	case len(a.Ticks) > 0:
		la.Generate = axis.Fixed(opts, *a.Min, *a.Max, a.Ticks)
	case a.Min != nil:
		la.Generate = axis.Scaled(opts, *a.Min, *a.Max)
	default:
		la.Generate = axis.AutoScaled[float64](opts)
	}

	var overrides []axis.Override[float64]
	if a.HideGrid {
		overrides = append(overrides, axis.HideGrid[float64])
	}
	if a.HideTicks {
		overrides = append(overrides, axis.HideTicks[float64])
	}
	if a.HideLabels {
		overrides = append(overrides, axis.HideLabels[float64])
	}
	if len(overrides) > 0 {
		la.Override = axis.Compose(overrides...)
	}
	return la
}

func (s Series) plot(color canvas.Color) plot.Plot[float64, float64] {
	width := s.Width
	if width == 0 {
		width = DefaultLineWidth
	}
	line := canvas.SolidLine(width, color)
	if len(s.Dash) > 0 {
		line = canvas.DashedLine(width, s.Dash, color)
	}

	switch s.kind() {
	case KindPoints:
		style := plot.FilledCircles(DefaultPointRadius, color)
		if s.Radius > 0 {
			style.Radius = s.Radius
		}
		if s.Shape == "square" {
			style.Shape = plot.Square
		}
		return plot.Points[float64, float64]{Title: s.Title, Style: style, Values: points(s.Points)}
	case KindHLine:
		return plot.HLine[float64, float64]{Title: s.Title, Style: line, Value: *s.Value}
	case KindVLine:
		return plot.VLine[float64, float64]{Title: s.Title, Style: line, Value: *s.Value}
	case KindArea:
		bands := make([]plot.Band[float64, float64], len(s.Bands))
		for i, b := range s.Bands {
			bands[i] = plot.Band[float64, float64]{X: b[0], Low: b[1], High: b[2]}
		}
		return plot.FillBetween[float64, float64]{Title: s.Title, Fill: canvas.SolidFill(color.WithAlpha(0.4)), Values: bands}
	}
	return plot.Lines[float64, float64]{
		Title:  s.Title,
		Style:  line,
		Values: [][]plot.XY[float64, float64]{points(s.Points)},
	}
}

func points(ps [][2]float64) []plot.XY[float64, float64] {
	out := make([]plot.XY[float64, float64], len(ps))
	for i, p := range ps {
		out[i] = plot.Pt(p[0], p[1])
	}
	return out
}

// mustColor parses a color Validate has already accepted.
func mustColor(s string) canvas.Color {
	c, err := canvas.ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
