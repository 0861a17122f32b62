package raster

import (
	"testing"

	"github.com/gogpu/cag/internal/blend"
)

// AddOutputFullPixel/AddOutputFullRegion store a color already in output
// space; At must return it unconverted instead of running it through
// AccumulationToOutput a second time.
func TestBufferOutputFullPixelNotDoubleConverted(t *testing.T) {
	buf := NewBuffer(2, 2, RasterSRGB)

	out := blend.Vec4{R: 0.5, G: 0.25, B: 0.75, A: 1}
	buf.AddOutputFullPixel(out, 0, 0)

	got := buf.At(0, 0)
	approxEqual(t, got.R, out.R, 1e-6, "R")
	approxEqual(t, got.G, out.G, 1e-6, "G")
	approxEqual(t, got.B, out.B, 1e-6, "B")
	approxEqual(t, got.A, out.A, 1e-6, "A")
}

func TestBufferOutputFullRegionNotDoubleConverted(t *testing.T) {
	buf := NewBuffer(2, 2, RasterDisplayP3)

	out := blend.Vec4{R: 0.1, G: 0.2, B: 0.3, A: 1}
	buf.AddOutputFullRegion(out, 0, 0, 2, 2)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			got := buf.At(x, y)
			approxEqual(t, got.R, out.R, 1e-6, "R")
			approxEqual(t, got.G, out.G, 1e-6, "G")
			approxEqual(t, got.B, out.B, 1e-6, "B")
		}
	}
}

// A client-space write to a pixel previously written in output space must
// not blend the two incompatible spaces together.
func TestBufferClientWriteClearsOutputFlag(t *testing.T) {
	buf := NewBuffer(1, 1, RasterSRGB)

	buf.AddOutputFullPixel(blend.Vec4{R: 1, G: 1, B: 1, A: 1}, 0, 0)
	buf.AddClientFullPixel(blend.Vec4{R: 0, G: 0, B: 0, A: 1}, 0, 0)

	got := buf.At(0, 0)
	if got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("At() = %+v, want black after client overwrite", got)
	}
}

func TestBufferClientFullPixelConvertsThroughAccumulation(t *testing.T) {
	buf := NewBuffer(1, 1, RasterSRGB)

	buf.AddClientFullPixel(blend.Vec4{R: 1, G: 1, B: 1, A: 1}, 0, 0)

	got := buf.At(0, 0)
	if got.R != 1 || got.G != 1 || got.B != 1 || got.A != 1 {
		t.Errorf("At() = %+v, want white survives the identity sRGB round trip", got)
	}
}
