package sink

import (
	"strings"

	"github.com/matzehuels/chartgrid/pkg/chart/renderable"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// Miss marks cells of a pick map where nothing was picked.
const Miss = '.'

// PickMap samples pick at the centres of a cols x rows grid laid over
// size. It returns one string per row holding glyph(p) for each hit and
// [Miss] elsewhere, a coarse picture of what lies where.
func PickMap[P any](pick renderable.PickFn[P], size canvas.Size, cols, rows int, glyph func(P) rune) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	out := make([]string, rows)
	cw, ch := size.W/float64(cols), size.H/float64(rows)
	var b strings.Builder
	for j := 0; j < rows; j++ {
		b.Reset()
		for i := 0; i < cols; i++ {
			p := canvas.Point{X: (float64(i) + 0.5) * cw, Y: (float64(j) + 0.5) * ch}
			if v, ok := pick(p); ok {
				b.WriteRune(glyph(v))
			} else {
				b.WriteRune(Miss)
			}
		}
		out[j] = b.String()
	}
	return out
}
