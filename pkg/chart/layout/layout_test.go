package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chartgrid/pkg/chart/axis"
	"github.com/matzehuels/chartgrid/pkg/chart/plot"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

type xy = plot.XY[float64, float64]

func diagonal(title string) plot.Lines[float64, float64] {
	return plot.Lines[float64, float64]{
		Title:  title,
		Style:  canvas.SolidLine(1, canvas.Black),
		Values: [][]xy{{plot.Pt(0.0, 0.0), plot.Pt(1.0, 1.0), plot.Pt(2.0, 2.0)}},
	}
}

// seriesStroke returns the stroke of the three point diagonal. Axis
// lines, ticks and gridlines all have two points.
func seriesStroke(t *testing.T, c *canvas.Recorder) canvas.Op {
	t.Helper()
	var found []canvas.Op
	for _, op := range c.Strokes() {
		if len(op.Points) == 3 {
			found = append(found, op)
		}
	}
	require.Len(t, found, 1)
	return found[0]
}

func draw(l Layout[float64, float64]) (*canvas.Recorder, func(canvas.Point) (Pick[float64, float64], bool)) {
	c := canvas.NewRecorder()
	pick := ToRenderable(l).Draw(c, canvas.Size{W: 400, H: 300})
	return c, pick
}

func TestRoundTrip(t *testing.T) {
	l := New[float64, float64]().
		WithTitle("T").
		WithMargin(10).
		WithPlots(Left[float64, float64](plot.Lines[float64, float64]{
			Style:  canvas.SolidLine(1, canvas.Black),
			Values: [][]xy{{plot.Pt(0.0, 0.0), plot.Pt(1.0, 1.0), plot.Pt(2.0, 0.0)}},
		}))

	c, pick := draw(l)
	assert.Equal(t, 0, c.Depth())

	p, ok := pick(canvas.Point{X: 5, Y: 5})
	require.True(t, ok)
	assert.Equal(t, PickTitle, p.Kind)
	assert.Equal(t, "T", p.Text)

	// The peak sits on the top edge of the plot area; pick a quarter
	// pixel inside it.
	at := seriesStroke(t, c).Points[1]
	p, ok = pick(canvas.Point{X: at.X, Y: at.Y + 0.25})
	require.True(t, ok)
	assert.Equal(t, PickPlotArea, p.Kind)
	assert.InDelta(t, 1, p.X, 1e-9)
	assert.InDelta(t, 1, p.YLeft, 0.01)
	assert.Equal(t, p.YLeft, p.YRight, "a single y axis fills both values")
}

func TestPlotsAreClipped(t *testing.T) {
	c, _ := draw(New[float64, float64]().WithPlots(Left[float64, float64](diagonal(""))))
	s := seriesStroke(t, c)
	assert.NotEqual(t, canvas.Rect{}, s.Clip)
	for _, p := range s.Points {
		assert.True(t, s.Clip.Contains(p), "%v outside %v", p, s.Clip)
	}
}

func TestInvisibleAxis(t *testing.T) {
	bottom := DefaultAxis[float64]()
	bottom.Title = "time"
	bottom.Visible = NeverVisible[float64]
	l := New[float64, float64]().
		WithBottomAxis(bottom).
		WithPlots(Left[float64, float64](diagonal("")))

	c, pick := draw(l)
	for _, op := range c.Strokes() {
		assert.NotEqual(t, 3, len(op.Points), "plots without an x axis are skipped")
	}
	_, ok := pick(canvas.Point{X: 200, Y: 150})
	assert.False(t, ok)

	// Neither the axis nor its title take any space.
	a := l.axes()
	require.Nil(t, a.bottom)
	require.NotNil(t, a.left)
	rc := canvas.NewRecorder()
	lStart, lEnd := axis.Overhang(rc, *a.left)
	left := axis.Renderable(*a.left).Measure(rc)
	m := l.Margin
	size := l.measure(rc)
	assert.InDelta(t, 2*m+lStart+left.H+lEnd, size.H, 1e-9)
	assert.InDelta(t, 2*m+left.W, size.W, 1e-9)

	// Where a visible bottom axis sits, nothing is picked.
	_, ok = pick(canvas.Point{X: 200, Y: 284})
	assert.False(t, ok)

	_, pick = draw(l.WithBottomAxis(DefaultAxis[float64]()))
	p, ok := pick(canvas.Point{X: 200, Y: 284})
	require.True(t, ok)
	assert.Equal(t, PickXBottomAxis, p.Kind)
}

func TestMeasureCoversAxes(t *testing.T) {
	l := New[float64, float64]().
		WithLegend(nil).
		WithPlots(Left[float64, float64](diagonal("")))

	a := l.axes()
	require.NotNil(t, a.bottom)
	require.NotNil(t, a.left)
	c := canvas.NewRecorder()
	bottom := axis.Renderable(*a.bottom).Measure(c)
	left := axis.Renderable(*a.left).Measure(c)
	m := l.Margin

	size := l.measure(c)
	assert.GreaterOrEqual(t, size.W, left.W+bottom.W+2*m)
	assert.GreaterOrEqual(t, size.H, left.H+bottom.H+2*m)
}

func TestAxisTitles(t *testing.T) {
	bottom := DefaultAxis[float64]()
	bottom.Title = "time"
	left := DefaultAxis[float64]()
	left.Title = "value"
	hidden := DefaultAxis[float64]()
	hidden.Title = "unused"
	hidden.Visible = NeverVisible[float64]
	l := New[float64, float64]().
		WithBottomAxis(bottom).
		WithLeftAxis(left).
		WithTopAxis(hidden).
		WithPlots(Left[float64, float64](diagonal("")))

	c, pick := draw(l)
	var texts []string
	for _, op := range c.Texts() {
		texts = append(texts, op.Text)
	}
	assert.Contains(t, texts, "time")
	assert.Contains(t, texts, "value")
	assert.NotContains(t, texts, "unused")

	// The bottom title is the last row above the outer margin.
	p, ok := pick(canvas.Point{X: 200, Y: 285})
	require.True(t, ok)
	assert.Equal(t, PickXBottomAxisTitle, p.Kind)
	assert.Equal(t, "time", p.Text)

	// The left title is the first column inside the outer margin.
	p, ok = pick(canvas.Point{X: 15, Y: 150})
	require.True(t, ok)
	assert.Equal(t, PickYLeftAxisTitle, p.Kind)
}

func TestLegend(t *testing.T) {
	untitled := New[float64, float64]().WithPlots(Left[float64, float64](diagonal("")))
	hidden := untitled.WithLegend(nil)
	c := canvas.NewRecorder()
	assert.Equal(t, hidden.measure(c), untitled.measure(c), "untitled plots take no legend space")

	titled := New[float64, float64]().WithPlots(Left[float64, float64](diagonal("a")))
	assert.Greater(t, titled.measure(c).H, untitled.measure(c).H)

	// Legend row: 10 high with a bottom margin of 10; the entry starts
	// after a left margin of 10.
	_, pick := draw(titled)
	p, ok := pick(canvas.Point{X: 15, Y: 285})
	require.True(t, ok)
	assert.Equal(t, PickLegend, p.Kind)
	assert.Equal(t, "a", p.Text)
}

func TestReverse(t *testing.T) {
	base := New[float64, float64]().WithPlots(Left[float64, float64](diagonal("")))
	c, _ := draw(base)
	pts := seriesStroke(t, c).Points
	assert.Greater(t, pts[0].Y, pts[2].Y, "y grows upwards")

	left := DefaultAxis[float64]()
	left.Reverse = true
	c, pick := draw(base.WithLeftAxis(left))
	pts = seriesStroke(t, c).Points
	assert.Less(t, pts[0].Y, pts[2].Y, "reversed y grows downwards")

	p, ok := pick(pts[1])
	require.True(t, ok)
	assert.InDelta(t, 1, p.YLeft, 1e-9)
}

func TestIndependentAndLinkedYAxes(t *testing.T) {
	small := plot.Lines[float64, float64]{Values: [][]xy{{plot.Pt(0.0, 0.0), plot.Pt(1.0, 1.0)}}}
	big := plot.Lines[float64, float64]{Values: [][]xy{{plot.Pt(0.0, 0.0), plot.Pt(1.0, 100.0)}}}
	l := New[float64, float64]().WithPlots(Left[float64, float64](small), Right[float64, float64](big))

	a := l.axes()
	require.NotNil(t, a.left)
	require.NotNil(t, a.right)
	assert.NotEqual(t, len(a.left.Data.Labels), 0)
	leftTop := a.left.Data.Labels[len(a.left.Data.Labels)-1].Value
	rightTop := a.right.Data.Labels[len(a.right.Data.Labels)-1].Value
	assert.Less(t, leftTop, rightTop)

	a = l.WithYAxes(LinkedYAxes[float64]).axes()
	assert.Equal(t, a.left.Data.Labels, a.right.Data.Labels)

	_, pick := draw(l)
	_, ok := pick(canvas.Point{X: 200, Y: 150})
	require.True(t, ok)
}

func TestBuildersCopy(t *testing.T) {
	base := New[float64, float64]()
	withPlot := base.WithPlots(Left[float64, float64](diagonal("")))
	assert.Empty(t, base.Plots)
	assert.Len(t, withPlot.Plots, 1)

	again := withPlot.WithPlots(Right[float64, float64](diagonal("")))
	assert.Len(t, withPlot.Plots, 1)
	assert.Len(t, again.Plots, 2)
}

func TestPickString(t *testing.T) {
	tests := []struct {
		p    Pick[float64, float64]
		want string
	}{
		{Pick[float64, float64]{Kind: PickTitle, Text: "T"}, `title "T"`},
		{Pick[float64, float64]{Kind: PickXBottomAxis, X: 2}, "x-bottom-axis x=2"},
		{Pick[float64, float64]{Kind: PickYRightAxis, YRight: 3}, "y-right-axis y=3"},
		{Pick[float64, float64]{Kind: PickPlotArea, X: 1, YLeft: 2, YRight: 3}, "plot-area x=1 y=2/3"},
		{Pick[float64, float64]{}, "none"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func (l Layout[X, Y]) measure(c canvas.Canvas) canvas.Size {
	return ToRenderable(l).Measure(c)
}
