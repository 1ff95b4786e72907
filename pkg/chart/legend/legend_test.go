package legend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

func counting(n *int) func(canvas.Canvas, canvas.Rect) {
	return func(canvas.Canvas, canvas.Rect) { *n++ }
}

func TestEmptyLegend(t *testing.T) {
	c := canvas.NewRecorder()
	r := Renderable(DefaultStyle(), []Item{{Title: ""}, {Title: ""}})
	assert.Equal(t, canvas.Size{}, r.Measure(c))
	pick := r.Draw(c, canvas.Size{W: 100, H: 20})
	assert.Empty(t, c.Ops)
	_, ok := pick(canvas.Point{X: 1, Y: 1})
	assert.False(t, ok)
}

func TestGrouping(t *testing.T) {
	var a, b int
	items := []Item{
		{Title: "a", Sample: counting(&a)},
		{Title: "", Sample: counting(&b)},
		{Title: "a", Sample: counting(&a)},
		{Title: "bb"},
	}
	assert.Equal(t, 2, Len(items))

	c := canvas.NewRecorder()
	r := Renderable(DefaultStyle(), items)
	// "a" is 20 + 5 + 6 wide, "bb" adds 5 + 20 + 5 + 12.
	size := r.Measure(c)
	assert.InDelta(t, 73, size.W, 1e-9)
	assert.InDelta(t, 10, size.H, 1e-9)

	r.Draw(c, size)
	assert.Equal(t, 2, a, "both samples of the grouped entry are drawn")
	assert.Equal(t, 0, b, "untitled items are dropped")
	assert.Len(t, c.Texts(), 2)
	assert.Equal(t, 0, c.Depth())
}

func TestPick(t *testing.T) {
	c := canvas.NewRecorder()
	r := Renderable(DefaultStyle(), []Item{{Title: "a"}, {Title: "bb"}})
	pick := r.Draw(c, r.Measure(c))

	got, ok := pick(canvas.Point{X: 10, Y: 5})
	require.True(t, ok)
	assert.Equal(t, "a", got)

	got, ok = pick(canvas.Point{X: 40, Y: 5})
	require.True(t, ok)
	assert.Equal(t, "bb", got)

	_, ok = pick(canvas.Point{X: 33, Y: 5})
	assert.False(t, ok, "spacing between entries does not pick")
}

func TestMaxColumns(t *testing.T) {
	s := DefaultStyle()
	s.MaxColumns = 1
	c := canvas.NewRecorder()
	r := Renderable(s, []Item{{Title: "a"}, {Title: "bb"}})

	size := r.Measure(c)
	assert.InDelta(t, 37, size.W, 1e-9)
	assert.InDelta(t, 22.5, size.H, 1e-9)

	pick := r.Draw(c, size)
	got, ok := pick(canvas.Point{X: 5, Y: 20})
	require.True(t, ok)
	assert.Equal(t, "bb", got)
}
