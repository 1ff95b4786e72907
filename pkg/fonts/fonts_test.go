package fonts

import "testing"

func TestFaceCached(t *testing.T) {
	a, err := Face(Regular, 12)
	if err != nil {
		t.Fatalf("Face error: %v", err)
	}
	b, _ := Face(Regular, 12)
	if a != b {
		t.Error("Face should return the cached face for identical keys")
	}
}

func TestMeasureGrowsWithText(t *testing.T) {
	w1, m := Measure(Regular, 12, "a")
	w2, _ := Measure(Regular, 12, "aaaa")
	if w2 <= w1 {
		t.Errorf("width(aaaa) = %v, want > width(a) = %v", w2, w1)
	}
	if m.Ascent <= 0 || m.Descent <= 0 {
		t.Errorf("metrics = %+v, want positive ascent and descent", m)
	}
}

func TestVariantOf(t *testing.T) {
	tests := []struct {
		bold, italic bool
		want         Variant
	}{
		{false, false, Regular},
		{true, false, Bold},
		{false, true, Italic},
		{true, true, BoldItalic},
	}
	for _, tt := range tests {
		if got := VariantOf(tt.bold, tt.italic); got != tt.want {
			t.Errorf("VariantOf(%v, %v) = %v, want %v", tt.bold, tt.italic, got, tt.want)
		}
	}
}

func TestFaceUnknownVariant(t *testing.T) {
	if _, err := Face(Variant(42), 10); err == nil {
		t.Error("Face(42) error = nil, want error")
	}
}
