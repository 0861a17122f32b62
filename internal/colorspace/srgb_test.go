package colorspace

import (
	"math"
	"testing"
)

func TestSRGBLinearRoundTrip(t *testing.T) {
	for _, s := range []float32{0, 0.04045, 0.1, 0.5, 0.9, 1.0} {
		l := SRGBToLinear(s)
		back := LinearToSRGB(l)
		if math.Abs(float64(back-s)) > 1e-5 {
			t.Errorf("round trip sRGB=%v -> linear=%v -> sRGB=%v, want ~%v", s, l, back, s)
		}
	}
}

func TestSRGBToLinearKnownValues(t *testing.T) {
	tests := []struct {
		s    float32
		want float32
	}{
		{0, 0},
		{1, 1},
		{0.5, 0.214041}, // standard sRGB midtone
	}
	for _, tc := range tests {
		got := SRGBToLinear(tc.s)
		if math.Abs(float64(got-tc.want)) > 1e-4 {
			t.Errorf("SRGBToLinear(%v) = %v, want %v", tc.s, got, tc.want)
		}
	}
}

func TestFastLUTMatchesReference(t *testing.T) {
	for i := range 256 {
		ref := SRGBToLinear(float32(i) / 255.0)
		fast := SRGBToLinearFast(uint8(i))
		if math.Abs(float64(ref-fast)) > 1e-6 {
			t.Errorf("SRGBToLinearFast(%d) = %v, want ~%v", i, fast, ref)
		}
	}
}

func TestU8F32RoundTrip(t *testing.T) {
	c := ColorU8{R: 10, G: 128, B: 255, A: 64}
	back := F32ToU8(U8ToF32(c))
	if back != c {
		t.Errorf("round trip %+v -> %+v, want %+v", c, back, c)
	}
}
