package render

import (
	"context"
	"testing"

	"github.com/matzehuels/chartgrid/pkg/errors"
)

func TestToPDFWithoutConverter(t *testing.T) {
	old := converter
	converter = "chartgrid-no-such-converter"
	defer func() { converter = old }()

	if CanConvert() {
		t.Fatal("CanConvert() = true for a missing binary")
	}
	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF error = %v, want UNSUPPORTED", err)
	}
}

func TestToPDF(t *testing.T) {
	if !CanConvert() {
		t.Skip("rsvg-convert not installed")
	}
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`
	pdf, err := ToPDF(context.Background(), []byte(svg))
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if len(pdf) < 4 || string(pdf[:4]) != "%PDF" {
		t.Errorf("ToPDF output does not start with %%PDF: %q", pdf[:min(len(pdf), 8)])
	}
}
