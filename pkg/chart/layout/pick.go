package layout

import "fmt"

// PickKind identifies which part of a layout a pick hit.
type PickKind int

const (
	PickNone PickKind = iota
	PickLegend
	PickTitle
	PickXBottomAxisTitle
	PickXTopAxisTitle
	PickYLeftAxisTitle
	PickYRightAxisTitle
	PickXBottomAxis
	PickXTopAxis
	PickYLeftAxis
	PickYRightAxis
	PickPlotArea
)

var pickKindNames = [...]string{
	PickNone:             "none",
	PickLegend:           "legend",
	PickTitle:            "title",
	PickXBottomAxisTitle: "x-bottom-axis-title",
	PickXTopAxisTitle:    "x-top-axis-title",
	PickYLeftAxisTitle:   "y-left-axis-title",
	PickYRightAxisTitle:  "y-right-axis-title",
	PickXBottomAxis:      "x-bottom-axis",
	PickXTopAxis:         "x-top-axis",
	PickYLeftAxis:        "y-left-axis",
	PickYRightAxis:       "y-right-axis",
	PickPlotArea:         "plot-area",
}

func (k PickKind) String() string {
	if k < 0 || int(k) >= len(pickKindNames) {
		return fmt.Sprintf("PickKind(%d)", int(k))
	}
	return pickKindNames[k]
}

// Pick is the result of a pick query on a layout. Which fields are set
// depends on Kind:
//
//   - PickLegend, PickTitle and the axis title kinds set Text
//   - PickXBottomAxis and PickXTopAxis set X
//   - PickYLeftAxis sets YLeft, PickYRightAxis sets YRight
//   - PickPlotArea sets X, YLeft and YRight; with a single y axis both
//     y fields hold its value
type Pick[X, Y any] struct {
	Kind   PickKind
	Text   string
	X      X
	YLeft  Y
	YRight Y
}

func (p Pick[X, Y]) String() string {
	switch p.Kind {
	case PickLegend, PickTitle, PickXBottomAxisTitle, PickXTopAxisTitle, PickYLeftAxisTitle, PickYRightAxisTitle:
		return fmt.Sprintf("%s %q", p.Kind, p.Text)
	case PickXBottomAxis, PickXTopAxis:
		return fmt.Sprintf("%s x=%v", p.Kind, p.X)
	case PickYLeftAxis:
		return fmt.Sprintf("%s y=%v", p.Kind, p.YLeft)
	case PickYRightAxis:
		return fmt.Sprintf("%s y=%v", p.Kind, p.YRight)
	case PickPlotArea:
		return fmt.Sprintf("%s x=%v y=%v/%v", p.Kind, p.X, p.YLeft, p.YRight)
	}
	return p.Kind.String()
}

func textPick[X, Y any](k PickKind) func(string) Pick[X, Y] {
	return func(s string) Pick[X, Y] { return Pick[X, Y]{Kind: k, Text: s} }
}
