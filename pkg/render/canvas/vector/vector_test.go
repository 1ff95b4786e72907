package vector

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

func TestStrokeUsesDeviceCoordinates(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, 100, 100)
	canvas.Scoped(c, func() {
		c.Translate(10, 20)
		canvas.Polyline(c, canvas.SolidLine(2, canvas.Black), canvas.Point{X: 0, Y: 0}, canvas.Point{X: 5, Y: 0})
	})
	c.Close()

	out := buf.String()
	if !strings.Contains(out, `d="M10 20 L15 20"`) {
		t.Errorf("output missing translated path:\n%s", out)
	}
	if !strings.Contains(out, `stroke-width="2"`) {
		t.Errorf("output missing stroke width:\n%s", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Errorf("document not closed:\n%s", out)
	}
}

func TestClipGroupsClosedOnRestore(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, 50, 50)
	canvas.Scoped(c, func() {
		c.ClipRect(0, 0, 10, 10)
		c.ClipRect(5, 5, 10, 10)
		canvas.FillRect(c, canvas.SolidFill(canvas.Black), 0, 0, 50, 50)
	})
	c.Close()

	out := buf.String()
	if got := strings.Count(out, "<g "); got != 2 {
		t.Errorf("opened groups = %d, want 2", got)
	}
	if got := strings.Count(out, "</g>"); got != 2 {
		t.Errorf("closed groups = %d, want 2", got)
	}
	if !strings.Contains(out, `clip-path="url(#clip2)"`) {
		t.Errorf("output missing nested clip reference:\n%s", out)
	}
}

func TestRotatedText(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, 50, 50)
	c.Rotate(-math.Pi / 2)
	c.DrawText(canvas.DefaultFont, 0, 0, "a<b")
	c.Close()

	out := buf.String()
	if !strings.Contains(out, `transform="matrix(0 -1 1 0 0 0)"`) {
		t.Errorf("output missing rotation matrix:\n%s", out)
	}
	if !strings.Contains(out, "a&lt;b") {
		t.Errorf("text not escaped:\n%s", out)
	}
}

func TestTransparentFillSkipped(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, 10, 10)
	canvas.FillRect(c, canvas.SolidFill(canvas.Transparent), 0, 0, 10, 10)
	c.Close()
	if strings.Contains(buf.String(), "<path") {
		t.Errorf("transparent fill emitted a path:\n%s", buf.String())
	}
}
