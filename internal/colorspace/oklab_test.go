package colorspace

import (
	"math"
	"testing"
)

func TestOklabRoundTrip(t *testing.T) {
	tests := []ColorF32{
		{R: 0.2, G: 0.5, B: 0.9, A: 1},
		{R: 1, G: 1, B: 1, A: 1},
		{R: 0, G: 0, B: 0, A: 1},
		{R: 0.8, G: 0.1, B: 0.3, A: 0.5},
	}
	for _, c := range tests {
		lab := LinearSRGBToOklab(c)
		back := OklabToLinearSRGB(lab)
		if math.Abs(float64(back.R-c.R)) > 1e-4 ||
			math.Abs(float64(back.G-c.G)) > 1e-4 ||
			math.Abs(float64(back.B-c.B)) > 1e-4 {
			t.Errorf("round trip %+v -> %+v -> %+v", c, lab, back)
		}
		if back.A != c.A {
			t.Errorf("alpha should pass through unchanged: got %v, want %v", back.A, c.A)
		}
	}
}

func TestOklabWhiteIsAchromatic(t *testing.T) {
	lab := LinearSRGBToOklab(ColorF32{R: 1, G: 1, B: 1, A: 1})
	if math.Abs(float64(lab.G)) > 1e-3 || math.Abs(float64(lab.B)) > 1e-3 {
		t.Errorf("white should have near-zero a,b; got a=%v b=%v", lab.G, lab.B)
	}
	if lab.R < 0.99 || lab.R > 1.01 {
		t.Errorf("white should have L close to 1, got %v", lab.R)
	}
}
