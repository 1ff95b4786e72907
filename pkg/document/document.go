// Package document reads chart documents: TOML or JSON descriptions of a
// chart that [Document.Build] turns into a [layout.Layout].
//
// A minimal document:
//
//	title = "Latency"
//
//	[axes.left]
//	title = "ms"
//
//	[[series]]
//	title = "p50"
//	points = [[0, 12], [1, 14], [2, 11]]
//
// Series default to lines on the left axis, coloured from a shared
// palette in order of appearance.
package document

// Document is a parsed chart document. TOML and JSON use the same keys.
type Document struct {
	Title          string   `toml:"title" json:"title,omitempty"`
	Margin         *float64 `toml:"margin" json:"margin,omitempty"`
	GridLast       bool     `toml:"grid_last" json:"grid_last,omitempty"`
	LinkYAxes      bool     `toml:"link_y_axes" json:"link_y_axes,omitempty"`
	Background     string   `toml:"background" json:"background,omitempty"`
	PlotBackground string   `toml:"plot_background" json:"plot_background,omitempty"`

	// Width and Height are the preferred output size; callers may
	// override them.
	Width  int `toml:"width" json:"width,omitempty"`
	Height int `toml:"height" json:"height,omitempty"`

	Legend Legend   `toml:"legend" json:"legend"`
	Axes   Axes     `toml:"axes" json:"axes"`
	Series []Series `toml:"series" json:"series"`
}

// Legend configures the legend.
type Legend struct {
	Hidden     bool `toml:"hidden" json:"hidden,omitempty"`
	MaxColumns int  `toml:"max_columns" json:"max_columns,omitempty"`
}

// Axes holds the four axis sections.
type Axes struct {
	Bottom Axis `toml:"bottom" json:"bottom"`
	Top    Axis `toml:"top" json:"top"`
	Left   Axis `toml:"left" json:"left"`
	Right  Axis `toml:"right" json:"right"`
}

// Visibility values of [Axis.Visible].
const (
	VisibleAuto   = "auto"
	VisibleAlways = "always"
	VisibleNever  = "never"
)

// Axis configures one axis. Min and Max fix the range; Ticks, which need
// both, fix the major ticks too.
type Axis struct {
	Title      string    `toml:"title" json:"title,omitempty"`
	Visible    string    `toml:"visible" json:"visible,omitempty"`
	Reverse    bool      `toml:"reverse" json:"reverse,omitempty"`
	Min        *float64  `toml:"min" json:"min,omitempty"`
	Max        *float64  `toml:"max" json:"max,omitempty"`
	Ticks      []float64 `toml:"ticks" json:"ticks,omitempty"`
	MaxTicks   int       `toml:"max_ticks" json:"max_ticks,omitempty"`
	Tight      bool      `toml:"tight" json:"tight,omitempty"`
	HideGrid   bool      `toml:"hide_grid" json:"hide_grid,omitempty"`
	HideTicks  bool      `toml:"hide_ticks" json:"hide_ticks,omitempty"`
	HideLabels bool      `toml:"hide_labels" json:"hide_labels,omitempty"`
}

// Series kinds.
const (
	KindLines  = "lines"
	KindPoints = "points"
	KindHLine  = "hline"
	KindVLine  = "vline"
	KindArea   = "area"
)

// Series is one plot.
type Series struct {
	Title string `toml:"title" json:"title,omitempty"`
	Kind  string `toml:"kind" json:"kind,omitempty"`
	// Axis is "left" or "right".
	Axis  string    `toml:"axis" json:"axis,omitempty"`
	Color string    `toml:"color" json:"color,omitempty"`
	Width float64   `toml:"width" json:"width,omitempty"`
	Dash  []float64 `toml:"dash" json:"dash,omitempty"`

	// Points are [x, y] pairs for lines and points.
	Points [][2]float64 `toml:"points" json:"points,omitempty"`
	// Bands are [x, low, high] triples for areas.
	Bands [][3]float64 `toml:"bands" json:"bands,omitempty"`
	// Value positions hline and vline series.
	Value *float64 `toml:"value" json:"value,omitempty"`

	// Shape ("circle" or "square") and Radius style points.
	Shape  string  `toml:"shape" json:"shape,omitempty"`
	Radius float64 `toml:"radius" json:"radius,omitempty"`
}

func (s Series) kind() string {
	if s.Kind == "" {
		return KindLines
	}
	return s.Kind
}

func (s Series) right() bool { return s.Axis == "right" }
