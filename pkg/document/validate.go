package document

import (
	"fmt"
	"math"

	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

// Validate checks the document for values Build cannot use. The error
// names the offending field.
func (d *Document) Validate() error {
	if d.Margin != nil && (*d.Margin < 0 || !finite(*d.Margin)) {
		return invalid("margin", "must be a non-negative number, got %v", *d.Margin)
	}
	if d.Width != 0 || d.Height != 0 {
		if err := errors.ValidateSize(d.Width, d.Height); err != nil {
			return err
		}
	}
	if err := checkColor("background", d.Background); err != nil {
		return err
	}
	if err := checkColor("plot_background", d.PlotBackground); err != nil {
		return err
	}
	if d.Legend.MaxColumns < 0 {
		return invalid("legend.max_columns", "must not be negative")
	}
	axes := []struct {
		name string
		axis Axis
	}{
		{"bottom", d.Axes.Bottom}, {"top", d.Axes.Top}, {"left", d.Axes.Left}, {"right", d.Axes.Right},
	}
	for _, a := range axes {
		if err := a.axis.validate("axes." + a.name); err != nil {
			return err
		}
	}
	for i, s := range d.Series {
		if err := s.validate(fmt.Sprintf("series[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func (a Axis) validate(field string) error {
	switch a.Visible {
	case "", VisibleAuto, VisibleAlways, VisibleNever:
	default:
		return invalid(field+".visible", "must be auto, always or never, got %q", a.Visible)
	}
	if (a.Min == nil) != (a.Max == nil) {
		return invalid(field, "min and max must be set together")
	}
	if a.Min != nil {
		if !finite(*a.Min) || !finite(*a.Max) {
			return invalid(field, "min and max must be finite")
		}
		if *a.Min >= *a.Max {
			return invalid(field, "min %v must be less than max %v", *a.Min, *a.Max)
		}
	}
	if len(a.Ticks) > 0 && a.Min == nil {
		return invalid(field+".ticks", "need min and max")
	}
	if a.MaxTicks < 0 {
		return invalid(field+".max_ticks", "must not be negative")
	}
	return nil
}

func (s Series) validate(field string) error {
	switch s.Axis {
	case "", "left", "right":
	default:
		return invalid(field+".axis", "must be left or right, got %q", s.Axis)
	}
	if err := checkColor(field+".color", s.Color); err != nil {
		return err
	}
	if s.Width < 0 || s.Radius < 0 {
		return invalid(field, "width and radius must not be negative")
	}
	switch s.kind() {
	case KindLines, KindPoints:
		if len(s.Points) == 0 {
			return invalid(field+".points", "%s series needs points", s.kind())
		}
		for j, p := range s.Points {
			if !finite(p[0]) || !finite(p[1]) {
				return invalid(fmt.Sprintf("%s.points[%d]", field, j), "must be finite")
			}
		}
	case KindHLine, KindVLine:
		if s.Value == nil || !finite(*s.Value) {
			return invalid(field+".value", "%s series needs a finite value", s.kind())
		}
	case KindArea:
		if len(s.Bands) == 0 {
			return invalid(field+".bands", "area series needs bands")
		}
		for j, b := range s.Bands {
			if !finite(b[0]) || !finite(b[1]) || !finite(b[2]) {
				return invalid(fmt.Sprintf("%s.bands[%d]", field, j), "must be finite")
			}
		}
	default:
		return invalid(field+".kind", "unknown kind %q", s.Kind)
	}
	switch s.Shape {
	case "", "circle", "square":
	default:
		return invalid(field+".shape", "must be circle or square, got %q", s.Shape)
	}
	return nil
}

func checkColor(field, c string) error {
	if c == "" {
		return nil
	}
	if err := errors.ValidateColor(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidColor, err, "%s", field)
	}
	if _, err := canvas.ParseColor(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidColor, err, "%s", field)
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return errors.Field(errors.ErrCodeInvalidDocument, field, format, args...)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
