package canvas

import (
	"math"
	"unicode/utf8"
)

// OpKind identifies a recorded drawing operation.
type OpKind int

const (
	OpFill OpKind = iota + 1
	OpStroke
	OpText
)

// Op is one drawing operation captured by a [Recorder]. Points are in
// device coordinates, i.e. with the transform in effect at the time of
// the call already applied.
type Op struct {
	Kind   OpKind
	Points []Point
	Text   string
	Clip   Rect // device-space clip bounds, zero when unclipped
	Line   LineStyle
	Fill   FillStyle
	Font   FontStyle
}

type recorderState struct {
	m       Matrix
	clip    Rect
	clipped bool
}

// Recorder is a [Canvas] that records operations instead of painting.
//
// Text metrics are synthetic: every rune advances 0.6 em, ascent is
// 0.8 em and descent 0.2 em. This makes layouts reproducible without
// font files.
type Recorder struct {
	Ops []Op

	state recorderState
	stack []recorderState
	path  []Point
	depth int
	max   int
}

// NewRecorder returns an empty recorder with an identity transform.
func NewRecorder() *Recorder {
	return &Recorder{state: recorderState{m: Identity()}}
}

// Depth returns the number of unmatched Save calls.
func (r *Recorder) Depth() int { return r.depth }

// MaxDepth returns the deepest Save nesting seen so far.
func (r *Recorder) MaxDepth() int { return r.max }

// Reset discards recorded operations.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Texts returns the recorded text operations.
func (r *Recorder) Texts() []Op { return r.filter(OpText) }

// Strokes returns the recorded stroke operations.
func (r *Recorder) Strokes() []Op { return r.filter(OpStroke) }

// Fills returns the recorded fill operations.
func (r *Recorder) Fills() []Op { return r.filter(OpFill) }

func (r *Recorder) filter(k OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.state)
	r.depth++
	r.max = max(r.max, r.depth)
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.depth--
}

func (r *Recorder) Translate(dx, dy float64) { r.state.m = r.state.m.Translate(dx, dy) }
func (r *Recorder) Rotate(angle float64)     { r.state.m = r.state.m.Rotate(angle) }
func (r *Recorder) Transform() Matrix        { return r.state.m }

func (r *Recorder) ClipRect(x, y, w, h float64) {
	a := r.state.m.Apply(Point{x, y})
	b := r.state.m.Apply(Point{x + w, y + h})
	rc := Rect{
		Min: Point{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Point{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
	if r.state.clipped {
		rc.Min.X = math.Max(rc.Min.X, r.state.clip.Min.X)
		rc.Min.Y = math.Max(rc.Min.Y, r.state.clip.Min.Y)
		rc.Max.X = math.Min(rc.Max.X, r.state.clip.Max.X)
		rc.Max.Y = math.Min(rc.Max.Y, r.state.clip.Max.Y)
	}
	r.state.clip, r.state.clipped = rc, true
}

func (r *Recorder) MoveTo(x, y float64) { r.path = append(r.path, r.state.m.Apply(Point{x, y})) }
func (r *Recorder) LineTo(x, y float64) { r.path = append(r.path, r.state.m.Apply(Point{x, y})) }

func (r *Recorder) Arc(cx, cy, rad, a1, a2 float64) {
	const steps = 8
	for i := 0; i <= steps; i++ {
		a := a1 + (a2-a1)*float64(i)/steps
		r.LineTo(cx+rad*math.Cos(a), cy+rad*math.Sin(a))
	}
}

func (r *Recorder) ClosePath() {
	if len(r.path) > 0 {
		r.path = append(r.path, r.path[0])
	}
}

func (r *Recorder) Fill(fs FillStyle) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Points: r.takePath(), Fill: fs, Clip: r.state.clip})
}

func (r *Recorder) Stroke(ls LineStyle) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, Points: r.takePath(), Line: ls, Clip: r.state.clip})
}

func (r *Recorder) takePath() []Point {
	p := r.path
	r.path = nil
	return p
}

func (r *Recorder) MeasureText(fs FontStyle, s string) TextExtents {
	fe := r.FontExtents(fs)
	return TextExtents{
		W:       0.6 * fs.Size * float64(utf8.RuneCountInString(s)),
		H:       fe.Ascent + fe.Descent,
		Ascent:  fe.Ascent,
		Descent: fe.Descent,
	}
}

func (r *Recorder) FontExtents(fs FontStyle) FontExtents {
	return FontExtents{Ascent: 0.8 * fs.Size, Descent: 0.2 * fs.Size, Height: 1.2 * fs.Size}
}

func (r *Recorder) DrawText(fs FontStyle, x, y float64, s string) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpText,
		Points: []Point{r.state.m.Apply(Point{x, y})},
		Text:   s,
		Font:   fs,
		Clip:   r.state.clip,
	})
}

// AlignPoint leaves points unchanged, like a vector surface.
func (r *Recorder) AlignPoint(p Point) Point { return p }

var _ Canvas = (*Recorder)(nil)
