package errors

import (
	"strings"
	"unicode"
)

// MaxDimension bounds the width and height of a rendered chart.
const MaxDimension = 8192

// ValidateSize validates the requested output size of a chart in device
// units.
func ValidateSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidSize, "size must be positive, got %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidSize, "size %dx%d exceeds maximum of %d", width, height, MaxDimension)
	}
	return nil
}

// ValidateFormat validates an output format against the supported set.
// The comparison is case-insensitive.
func ValidateFormat(format string, supported ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	for _, s := range supported {
		if strings.EqualFold(format, s) {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (supported: %s)", format, strings.Join(supported, ", "))
}

// ValidateColor checks that s looks like a color the document format
// accepts: a #rgb or #rrggbb hex string, or a plain lowercase name.
// Whether a name is known is left to the color parser.
func ValidateColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return New(ErrCodeInvalidColor, "hex color must have 3 or 6 digits: %q", s)
		}
		for _, r := range hex {
			if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
				return New(ErrCodeInvalidColor, "invalid hex digit in color %q", s)
			}
		}
		return nil
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return New(ErrCodeInvalidColor, "invalid color name %q", s)
		}
	}
	return nil
}

// ValidatePath validates a document path supplied by a client.
// It rejects control characters and null bytes, which no file system
// should see.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}
	return nil
}
