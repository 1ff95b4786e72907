package layout

import (
	"github.com/matzehuels/chartgrid/pkg/chart/axis"
	"github.com/matzehuels/chartgrid/pkg/chart/grid"
	"github.com/matzehuels/chartgrid/pkg/chart/legend"
	"github.com/matzehuels/chartgrid/pkg/chart/renderable"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// axes holds the axes evaluated for one render. Hidden axes are nil.
type axes[X, Y any] struct {
	bottom, top *axis.Axis[X]
	left, right *axis.Axis[Y]
}

func (l Layout[X, Y]) axes() axes[X, Y] {
	xs, ly, ry := l.values()
	if l.YAxes != nil {
		ly, ry = l.YAxes(ly, ry)
	}
	return axes[X, Y]{
		bottom: l.Bottom.build(axis.Bottom, xs),
		top:    l.Top.build(axis.Top, xs),
		left:   l.Left.build(axis.Left, ly),
		right:  l.Right.build(axis.Right, ry),
	}
}

// x returns the axis plots are placed against horizontally.
func (a axes[X, Y]) x() *axis.Axis[X] {
	if a.bottom != nil {
		return a.bottom
	}
	return a.top
}

// y returns the axis a plot on the given side is placed against.
func (a axes[X, Y]) y(right bool) *axis.Axis[Y] {
	if right {
		return a.right
	}
	return a.left
}

// ToRenderable turns l into a renderable chart. The result measures to
// the smallest size that fits every part; any extra space goes to the
// plot area.
func ToRenderable[X, Y any](l Layout[X, Y]) renderable.Renderable[Pick[X, Y]] {
	return renderable.Embed(func(c canvas.Canvas) renderable.Renderable[Pick[X, Y]] {
		a := l.axes()
		body := grid.MustAboveN(
			grid.Tval(l.titleRenderable()),
			grid.Tval(l.plotGridRenderable(c, a)),
			grid.Tval(l.legendRenderable()),
		)
		// Spare space goes to the plot grid row.
		body = mustWeights(body.WithRowWeights(0, 1, 0))
		body = mustWeights(body.WithColWeights(1))
		return renderable.FillBackground(l.Background, grid.ToRenderable(body))
	})
}

func mustWeights[P any](g grid.Grid[P], err error) grid.Grid[P] {
	if err != nil {
		panic(err)
	}
	return g
}

func (l Layout[X, Y]) titleRenderable() renderable.Renderable[Pick[X, Y]] {
	if l.Title == "" {
		return renderable.Empty[Pick[X, Y]]()
	}
	title := renderable.Label(l.TitleStyle, renderable.HCentre, renderable.VCentre, 0, l.Title)
	return renderable.AddMargins(renderable.Margins{Top: l.Margin / 2},
		renderable.MapPick(title, textPick[X, Y](PickTitle)))
}

// plotGridRenderable arranges the plot area with the axes, axis titles
// and corner spacers around it:
//
//	.      .   ttitle .   .
//	.      tl  taxis  tr  .
//	ltitle lax plot   rax rtitle
//	.      bl  baxis  br  .
//	.      .   btitle .   .
//
// The corners reserve room for axis labels that hang past the ends of
// the plot area.
func (l Layout[X, Y]) plotGridRenderable(c canvas.Canvas, a axes[X, Y]) renderable.Renderable[Pick[X, Y]] {
	e := grid.Tval(renderable.Empty[Pick[X, Y]]())

	var tStart, tEnd, bStart, bEnd, lStart, lEnd, rStart, rEnd float64
	if a.top != nil {
		tStart, tEnd = axis.Overhang(c, *a.top)
	}
	if a.bottom != nil {
		bStart, bEnd = axis.Overhang(c, *a.bottom)
	}
	if a.left != nil {
		lStart, lEnd = axis.Overhang(c, *a.left)
	}
	if a.right != nil {
		rStart, rEnd = axis.Overhang(c, *a.right)
	}
	spacer := func(w, h float64) grid.Grid[Pick[X, Y]] {
		return grid.Tval(renderable.Spacer[Pick[X, Y]](canvas.Size{W: w, H: h}))
	}
	tl, tr := spacer(tStart, lStart), spacer(tEnd, rStart)
	bl, br := spacer(bStart, lEnd), spacer(bEnd, rEnd)

	xTitle := func(la LayoutAxis[X], ax *axis.Axis[X], k PickKind, v renderable.VAnchor) grid.Grid[Pick[X, Y]] {
		if ax == nil || la.Title == "" {
			return e
		}
		lbl := renderable.Label(la.TitleStyle, renderable.HCentre, v, 0, la.Title)
		return grid.Tval(renderable.MapPick(lbl, textPick[X, Y](k)))
	}
	yTitle := func(la LayoutAxis[Y], ax *axis.Axis[Y], k PickKind) grid.Grid[Pick[X, Y]] {
		if ax == nil || la.Title == "" {
			return e
		}
		lbl := renderable.Label(la.TitleStyle, renderable.HCentre, renderable.VCentre, -90, la.Title)
		return grid.Tval(renderable.MapPick(lbl, textPick[X, Y](k)))
	}
	xAxis := func(ax *axis.Axis[X], k PickKind) grid.Grid[Pick[X, Y]] {
		if ax == nil {
			return e
		}
		return grid.Tval(renderable.MapPick(axis.Renderable(*ax), func(v X) Pick[X, Y] {
			return Pick[X, Y]{Kind: k, X: v}
		}))
	}
	yAxis := func(ax *axis.Axis[Y], k PickKind) grid.Grid[Pick[X, Y]] {
		if ax == nil {
			return e
		}
		return grid.Tval(renderable.MapPick(axis.Renderable(*ax), func(v Y) Pick[X, Y] {
			if k == PickYRightAxis {
				return Pick[X, Y]{Kind: k, YRight: v}
			}
			return Pick[X, Y]{Kind: k, YLeft: v}
		}))
	}

	parts := grid.MustAboveN(
		grid.MustBesideN(e, e, xTitle(l.Top, a.top, PickXTopAxisTitle, renderable.VBottom), e, e),
		grid.MustBesideN(e, tl, xAxis(a.top, PickXTopAxis), tr, e),
		grid.MustBesideN(
			yTitle(l.Left, a.left, PickYLeftAxisTitle),
			yAxis(a.left, PickYLeftAxis),
			grid.Tval(l.plotArea(a)),
			yAxis(a.right, PickYRightAxis),
			yTitle(l.Right, a.right, PickYRightAxisTitle),
		),
		grid.MustBesideN(e, bl, xAxis(a.bottom, PickXBottomAxis), br, e),
		grid.MustBesideN(e, e, xTitle(l.Bottom, a.bottom, PickXBottomAxisTitle, renderable.VTop), e, e),
	)
	background := grid.MustAboveN(
		grid.MustBesideN(e, e, e, e, e),
		grid.MustBesideN(e, e, e, e, e),
		grid.MustBesideN(e, e, grid.Weighted(1, 1, renderable.Empty[Pick[X, Y]]()), e, e),
		grid.MustBesideN(e, e, e, e, e),
		grid.MustBesideN(e, e, e, e, e),
	)
	return renderable.AddMargins(renderable.Uniform(l.Margin),
		grid.ToRenderable(grid.MustOverlay(background, parts)))
}

// plotArea draws gridlines and plots, clipped to the area. Plots whose x
// or y axis is hidden are skipped.
func (l Layout[X, Y]) plotArea(a axes[X, Y]) renderable.Renderable[Pick[X, Y]] {
	return renderable.Renderable[Pick[X, Y]]{
		Measure: func(canvas.Canvas) canvas.Size { return canvas.Size{} },
		Draw: func(c canvas.Canvas, size canvas.Size) renderable.PickFn[Pick[X, Y]] {
			canvas.Scoped(c, func() {
				c.ClipRect(0, 0, size.W, size.H)
				if l.PlotBackground != nil {
					canvas.FillRect(c, *l.PlotBackground, 0, 0, size.W, size.H)
				}
				if !l.GridLast {
					drawGrids(c, a, size)
				}
				for _, e := range l.Plots {
					xa, ya := a.x(), a.y(e.Right)
					if e.Plot == nil || xa == nil || ya == nil {
						continue
					}
					xr, yr := axis.DeviceRange(xa.Side, size), axis.DeviceRange(ya.Side, size)
					pmap := func(x axis.Limit[X], y axis.Limit[Y]) canvas.Point {
						return canvas.Point{X: xa.Data.Map(xr, x), Y: ya.Data.Map(yr, y)}
					}
					canvas.Scoped(c, func() { e.Plot.Render(c, pmap) })
				}
				if l.GridLast {
					drawGrids(c, a, size)
				}
			})
			return l.plotAreaPick(a, size)
		},
	}
}

func drawGrids[X, Y any](c canvas.Canvas, a axes[X, Y], size canvas.Size) {
	for _, ax := range []*axis.Axis[X]{a.bottom, a.top} {
		if ax != nil {
			axis.DrawGrid(c, *ax, size)
		}
	}
	for _, ax := range []*axis.Axis[Y]{a.left, a.right} {
		if ax != nil {
			axis.DrawGrid(c, *ax, size)
		}
	}
}

// plotAreaPick reports the data coordinates under a point. With only one
// y axis its value fills both y fields; with no x or y axis nothing is
// picked.
func (l Layout[X, Y]) plotAreaPick(a axes[X, Y], size canvas.Size) renderable.PickFn[Pick[X, Y]] {
	return func(p canvas.Point) (Pick[X, Y], bool) {
		xa := a.x()
		if !size.Contains(p) || xa == nil || (a.left == nil && a.right == nil) {
			return Pick[X, Y]{}, false
		}
		pk := Pick[X, Y]{Kind: PickPlotArea, X: xa.Data.Inverse(axis.DeviceRange(xa.Side, size), p.X)}
		yAt := func(ax *axis.Axis[Y]) Y { return ax.Data.Inverse(axis.DeviceRange(ax.Side, size), p.Y) }
		switch {
		case a.left != nil && a.right != nil:
			pk.YLeft, pk.YRight = yAt(a.left), yAt(a.right)
		case a.left != nil:
			pk.YLeft = yAt(a.left)
			pk.YRight = pk.YLeft
		default:
			pk.YRight = yAt(a.right)
			pk.YLeft = pk.YRight
		}
		return pk, true
	}
}

// legendRenderable places the entries of left plots at the left edge and
// those of right plots at the right edge.
func (l Layout[X, Y]) legendRenderable() renderable.Renderable[Pick[X, Y]] {
	if l.Legend == nil {
		return renderable.Empty[Pick[X, Y]]()
	}
	left, right := l.legendItems(false), l.legendItems(true)
	if legend.Len(left) == 0 && legend.Len(right) == 0 {
		return renderable.Empty[Pick[X, Y]]()
	}
	side := func(items []legend.Item) grid.Grid[Pick[X, Y]] {
		return grid.Tval(renderable.MapPick(legend.Renderable(*l.Legend, items), textPick[X, Y](PickLegend)))
	}
	row := grid.MustBesideN(side(left), grid.Weighted(1, 1, renderable.Empty[Pick[X, Y]]()), side(right))
	m := l.Margin
	return renderable.AddMargins(renderable.Margins{Bottom: m, Left: m, Right: m}, grid.ToRenderable(row))
}
