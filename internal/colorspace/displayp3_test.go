package colorspace

import (
	"math"
	"testing"
)

func TestDisplayP3RoundTrip(t *testing.T) {
	tests := []ColorF32{
		{R: 0.2, G: 0.5, B: 0.9, A: 1},
		{R: 1, G: 0, B: 0, A: 1},
		{R: 0, G: 1, B: 0, A: 1},
	}
	for _, c := range tests {
		p3 := LinearSRGBToLinearP3(c)
		back := LinearP3ToLinearSRGB(p3)
		if math.Abs(float64(back.R-c.R)) > 1e-4 ||
			math.Abs(float64(back.G-c.G)) > 1e-4 ||
			math.Abs(float64(back.B-c.B)) > 1e-4 {
			t.Errorf("round trip %+v -> %+v -> %+v", c, p3, back)
		}
	}
}

func TestDisplayP3WhiteUnchanged(t *testing.T) {
	white := ColorF32{R: 1, G: 1, B: 1, A: 1}
	got := LinearSRGBToLinearP3(white)
	if math.Abs(float64(got.R-1)) > 1e-3 || math.Abs(float64(got.G-1)) > 1e-3 || math.Abs(float64(got.B-1)) > 1e-3 {
		t.Errorf("white point should map to white under same-D65 gamut conversion, got %+v", got)
	}
}
