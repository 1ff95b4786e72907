package errors

import (
	"testing"
)

func TestValidateSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"typical", 800, 600, false},
		{"one pixel", 1, 1, false},
		{"max", MaxDimension, MaxDimension, false},

		{"zero width", 0, 600, true},
		{"negative height", 800, -1, true},
		{"too wide", MaxDimension + 1, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSize(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSize(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSize) {
				t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeInvalidSize)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	supported := []string{"svg", "png", "pdf"}
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"svg", "svg", false},
		{"upper case", "PNG", false},

		{"empty", "", true},
		{"unknown", "gif", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.input, supported...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"short hex", "#fff", false},
		{"long hex", "#1f77b4", false},
		{"name", "black", false},

		{"empty", "", true},
		{"bad length", "#ffff", true},
		{"bad digit", "#ggg", true},
		{"css function", "rgb(1,2,3)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "charts/latency.toml", false},
		{"absolute", "/tmp/chart.json", false},

		{"empty", "", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
