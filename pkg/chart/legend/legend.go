// Package legend draws the strip of plot samples and titles shown below
// a chart.
package legend

import (
	"math"

	"github.com/matzehuels/chartgrid/pkg/chart/grid"
	"github.com/matzehuels/chartgrid/pkg/chart/renderable"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// Item is one legend entry contributed by a plot. Sample draws a small
// picture of the plot into r.
type Item struct {
	Title  string
	Sample func(c canvas.Canvas, r canvas.Rect)
}

// Style is the look of a legend.
type Style struct {
	Label canvas.FontStyle
	// SampleWidth is the width of the area each sample is drawn into.
	SampleWidth float64
	// Spacing separates a sample from its title, and entries from each
	// other.
	Spacing float64
	// MaxColumns wraps entries onto several rows. Zero keeps one row.
	MaxColumns int
}

// DefaultStyle returns the legend style used by new layouts.
func DefaultStyle() Style {
	return Style{
		Label:       canvas.DefaultFont,
		SampleWidth: 20,
		Spacing:     5,
	}
}

type entry struct {
	title   string
	samples []func(c canvas.Canvas, r canvas.Rect)
}

// group merges items that share a title into one entry, keeping the
// order of first appearance. Items without a title are dropped.
func group(items []Item) []entry {
	var out []entry
	index := map[string]int{}
	for _, it := range items {
		if it.Title == "" {
			continue
		}
		i, ok := index[it.Title]
		if !ok {
			i = len(out)
			index[it.Title] = i
			out = append(out, entry{title: it.Title})
		}
		if it.Sample != nil {
			out[i].samples = append(out[i].samples, it.Sample)
		}
	}
	return out
}

// Len returns the number of entries items produce after grouping.
func Len(items []Item) int { return len(group(items)) }

// Renderable lays out the entries for items. Pick queries return the
// title of the entry under the point.
func Renderable(s Style, items []Item) renderable.Renderable[string] {
	entries := group(items)
	if len(entries) == 0 {
		return renderable.Empty[string]()
	}
	cols := len(entries)
	if s.MaxColumns > 0 && s.MaxColumns < cols {
		cols = s.MaxColumns
	}

	var rows []grid.Grid[string]
	for start := 0; start < len(entries); start += cols {
		var cells []grid.Grid[string]
		for j := 0; j < cols; j++ {
			cell := renderable.Empty[string]()
			if k := start + j; k < len(entries) {
				cell = entryRenderable(s, entries[k])
			}
			var m renderable.Margins
			if j > 0 {
				m.Left = s.Spacing
			}
			if start > 0 {
				m.Top = s.Spacing / 2
			}
			cells = append(cells, grid.Tval(renderable.AddMargins(m, cell)))
		}
		rows = append(rows, grid.MustBesideN(cells...))
	}
	return grid.ToRenderable(grid.MustAboveN(rows...))
}

func entryRenderable(s Style, e entry) renderable.Renderable[string] {
	return renderable.Renderable[string]{
		Measure: func(c canvas.Canvas) canvas.Size {
			te := c.MeasureText(s.Label, e.title)
			return canvas.Size{W: s.SampleWidth + s.Spacing + te.W, H: te.H}
		},
		Draw: func(c canvas.Canvas, size canvas.Size) renderable.PickFn[string] {
			sample := canvas.RectOf(0, 0, math.Min(s.SampleWidth, size.W), size.H)
			for _, draw := range e.samples {
				canvas.Scoped(c, func() {
					c.ClipRect(0, 0, sample.Max.X, sample.Max.Y)
					draw(c, sample)
				})
			}
			canvas.Scoped(c, func() {
				c.ClipRect(0, 0, size.W, size.H)
				x := s.SampleWidth + s.Spacing
				renderable.DrawText(c, s.Label, renderable.HLeft, renderable.VCentre, 0,
					canvas.Point{X: x, Y: size.H / 2}, e.title)
			})
			return func(p canvas.Point) (string, bool) {
				if !size.Contains(p) {
					return "", false
				}
				return e.title, true
			}
		},
	}
}
