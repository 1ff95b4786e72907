package render

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/matzehuels/chartgrid/pkg/errors"
)

// converter is the external SVG converter.
var converter = "rsvg-convert"

// ToPDF converts an SVG document to PDF with rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// CanConvert reports whether the external converter is installed.
func CanConvert() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

func convert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !CanConvert() {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}
	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, converter, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "%s: %s", converter, stderr.String())
	}
	return out.Bytes(), nil
}
