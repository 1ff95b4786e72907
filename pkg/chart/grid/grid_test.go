package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chartgrid/pkg/chart/renderable"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// box measures as size, records the size it was drawn at, and picks its
// name anywhere inside.
func box(name string, size canvas.Size, drawn map[string]canvas.Size) renderable.Renderable[string] {
	return renderable.Renderable[string]{
		Measure: func(canvas.Canvas) canvas.Size { return size },
		Draw: func(c canvas.Canvas, s canvas.Size) renderable.PickFn[string] {
			if drawn != nil {
				drawn[name] = s
			}
			return func(canvas.Point) (string, bool) { return name, true }
		},
	}
}

func sz(w, h float64) canvas.Size { return canvas.Size{W: w, H: h} }

func TestShapeLaw(t *testing.T) {
	a := MustBeside(Tval(box("a", sz(1, 1), nil)), Tval(box("b", sz(1, 1), nil)))
	b := MustBesideN(Tval(box("c", sz(1, 1), nil)), Tval(box("d", sz(1, 1), nil)), Tval(box("e", sz(1, 1), nil)))

	_, err := Above(a, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeShapeMismatch))

	_, err = Beside(MustAbove(a, a), a)
	assert.True(t, errors.Is(err, errors.ErrCodeShapeMismatch))

	_, err = Overlay(a, b)
	assert.True(t, errors.Is(err, errors.ErrCodeShapeMismatch))

	assert.Panics(t, func() { MustAbove(a, b) })

	g, err := Above(a, a)
	require.NoError(t, err)
	rows, cols := g.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
}

func TestEmptyIsIdentity(t *testing.T) {
	a := MustBeside(Tval(box("a", sz(1, 1), nil)), Tval(box("b", sz(1, 1), nil)))
	for name, op := range map[string]func(x, y Grid[string]) (Grid[string], error){
		"above":   Above[string],
		"beside":  Beside[string],
		"overlay": Overlay[string],
	} {
		t.Run(name, func(t *testing.T) {
			left, err := op(Empty[string](), a)
			require.NoError(t, err)
			right, err := op(a, Empty[string]())
			require.NoError(t, err)
			r1, c1 := left.Dims()
			r2, c2 := right.Dims()
			assert.Equal(t, []int{1, 2}, []int{r1, c1})
			assert.Equal(t, []int{1, 2}, []int{r2, c2})
		})
	}
}

func TestAboveIsAssociative(t *testing.T) {
	drawn1 := map[string]canvas.Size{}
	drawn2 := map[string]canvas.Size{}
	mk := func(d map[string]canvas.Size) (Grid[string], Grid[string], Grid[string]) {
		return Tval(box("a", sz(5, 1), d)), Weighted(1, 1, box("b", sz(0, 0), d)), Tval(box("c", sz(3, 2), d))
	}
	a, b, c := mk(drawn1)
	left := MustAbove(MustAbove(a, b), c)
	a, b, c = mk(drawn2)
	right := MustAbove(a, MustAbove(b, c))

	rc := canvas.NewRecorder()
	assert.Equal(t, ToRenderable(left).Measure(rc), ToRenderable(right).Measure(rc))
	ToRenderable(left).Draw(rc, sz(20, 20))
	ToRenderable(right).Draw(rc, sz(20, 20))
	assert.Equal(t, drawn1, drawn2)
}

func TestWeightDistribution(t *testing.T) {
	drawn := map[string]canvas.Size{}
	g := MustAboveN(
		Weighted(1, 1, box("r0", sz(0, 0), drawn)),
		Weighted(0, 0, box("r1", sz(0, 0), drawn)),
		Weighted(0, 3, box("r2", sz(0, 0), drawn)),
	)
	assert.Equal(t, []float64{1, 0, 3}, g.RowWeights())

	r := ToRenderable(g)
	c := canvas.NewRecorder()
	assert.Equal(t, sz(0, 0), r.Measure(c))

	const H = 200
	r.Draw(c, sz(40, H))
	assert.InDelta(t, H/4.0, drawn["r0"].H, 1e-9)
	assert.InDelta(t, 0, drawn["r1"].H, 1e-9)
	assert.InDelta(t, 3*H/4.0, drawn["r2"].H, 1e-9)
	assert.InDelta(t, 40, drawn["r0"].W, 1e-9)
}

func TestZeroWeightsDistributeNothing(t *testing.T) {
	drawn := map[string]canvas.Size{}
	g := MustBesideN(
		Tval(box("a", sz(10, 5), drawn)),
		Tval(box("b", sz(20, 7), drawn)),
	)
	ToRenderable(g).Draw(canvas.NewRecorder(), sz(100, 100))
	assert.Equal(t, sz(10, 7), drawn["a"])
	assert.Equal(t, sz(20, 7), drawn["b"])
}

func TestTightBaselines(t *testing.T) {
	drawn := map[string]canvas.Size{}
	g := MustAbove(
		MustBeside(Tval(box("a", sz(10, 5), drawn)), Weighted(1, 0, box("b", sz(50, 50), drawn))),
		MustBeside(Tval(box("c", sz(4, 9), drawn)), Tval(box("d", sz(6, 2), drawn))),
	)
	r := ToRenderable(g)
	c := canvas.NewRecorder()
	// Column 1 is 6 wide from d; b is weighted and does not count.
	assert.Equal(t, sz(16, 14), r.Measure(c))

	r.Draw(c, sz(30, 14))
	assert.Equal(t, sz(10, 5), drawn["a"])
	assert.Equal(t, sz(20, 5), drawn["b"])
	assert.Equal(t, sz(20, 9), drawn["d"])
}

func TestNegativeExtraShrinksWeighted(t *testing.T) {
	drawn := map[string]canvas.Size{}
	g := MustBeside(Tval(box("a", sz(10, 1), drawn)), Weighted(1, 1, box("b", sz(0, 0), drawn)))
	ToRenderable(g).Draw(canvas.NewRecorder(), sz(4, 1))
	assert.Equal(t, 0.0, drawn["b"].W)
	assert.Equal(t, 10.0, drawn["a"].W)
}

func TestWeightOverrides(t *testing.T) {
	drawn := map[string]canvas.Size{}
	g := MustBeside(Weighted(1, 1, box("a", sz(0, 0), drawn)), Weighted(1, 1, box("b", sz(0, 0), drawn)))
	g, err := g.WithColWeights(1, 3)
	require.NoError(t, err)
	ToRenderable(g).Draw(canvas.NewRecorder(), sz(100, 10))
	assert.InDelta(t, 25, drawn["a"].W, 1e-9)
	assert.InDelta(t, 75, drawn["b"].W, 1e-9)

	_, err = g.WithRowWeights(1, 2)
	assert.True(t, errors.Is(err, errors.ErrCodeShapeMismatch))
}

func TestOverlayPickPrecedence(t *testing.T) {
	under := MustBeside(Tval(box("u0", sz(10, 10), nil)), Tval(box("u1", sz(10, 10), nil)))
	over := MustBeside(Tval(box("o0", sz(10, 10), nil)), Tval(renderable.Empty[string]()))

	pick := ToRenderable(MustOverlay(under, over)).Draw(canvas.NewRecorder(), sz(20, 10))

	got, ok := pick(canvas.Point{X: 5, Y: 5})
	require.True(t, ok)
	assert.Equal(t, "o0", got)

	got, ok = pick(canvas.Point{X: 15, Y: 5})
	require.True(t, ok)
	assert.Equal(t, "u1", got)
}

func TestPickTranslatesIntoCells(t *testing.T) {
	var seen canvas.Point
	inner := renderable.Renderable[string]{
		Measure: func(canvas.Canvas) canvas.Size { return sz(10, 10) },
		Draw: func(canvas.Canvas, canvas.Size) renderable.PickFn[string] {
			return func(p canvas.Point) (string, bool) { seen = p; return "inner", true }
		},
	}
	g := MustAbove(Tval(renderable.Spacer[string](sz(10, 30))), Tval(inner))
	pick := ToRenderable(g).Draw(canvas.NewRecorder(), sz(10, 40))

	got, ok := pick(canvas.Point{X: 4, Y: 33})
	require.True(t, ok)
	assert.Equal(t, "inner", got)
	assert.Equal(t, canvas.Point{X: 4, Y: 3}, seen)

	_, ok = pick(canvas.Point{X: 4, Y: 41})
	assert.False(t, ok)
}

func TestDrawRestoresCanvasState(t *testing.T) {
	c := canvas.NewRecorder()
	g := MustBeside(Tval(box("a", sz(1, 1), nil)), Tval(box("b", sz(1, 1), nil)))
	ToRenderable(g).Draw(c, sz(2, 1))
	assert.Equal(t, 0, c.Depth())
	assert.True(t, c.Transform().IsIdentity())
}

func TestDistribute(t *testing.T) {
	got := Distribute([]float64{0, 0, 0}, []float64{1, 0, 3}, 100)
	assert.Equal(t, []float64{25, 0, 75}, got)

	got = Distribute([]float64{5, 5}, []float64{0, 0}, 100)
	assert.Equal(t, []float64{5, 5}, got)
}
