package colorspace

import "math"

// SRGBToLinear converts an sRGB component to linear (EOTF).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return float32(math.Pow(float64((s+0.055)/1.055), 2.4))
}

// LinearToSRGB converts a linear component to sRGB (OETF).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
func LinearToSRGB(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*float32(math.Pow(float64(l), 1.0/2.4)) - 0.055
}

// SRGBToLinearColor converts RGB from sRGB to linear; alpha is unchanged.
func SRGBToLinearColor(c ColorF32) ColorF32 {
	return ColorF32{R: SRGBToLinear(c.R), G: SRGBToLinear(c.G), B: SRGBToLinear(c.B), A: c.A}
}

// LinearToSRGBColor converts RGB from linear to sRGB; alpha is unchanged.
func LinearToSRGBColor(c ColorF32) ColorF32 {
	return ColorF32{R: LinearToSRGB(c.R), G: LinearToSRGB(c.G), B: LinearToSRGB(c.B), A: c.A}
}

// U8ToF32 maps each uint8 component [0,255] to float32 [0,1].
func U8ToF32(c ColorU8) ColorF32 {
	return ColorF32{
		R: float32(c.R) / 255.0,
		G: float32(c.G) / 255.0,
		B: float32(c.B) / 255.0,
		A: float32(c.A) / 255.0,
	}
}

// F32ToU8 maps each float32 component [0,1] to uint8 [0,255] with rounding.
func F32ToU8(c ColorF32) ColorU8 {
	return ColorU8{R: clampAndRound(c.R), G: clampAndRound(c.G), B: clampAndRound(c.B), A: clampAndRound(c.A)}
}

func clampAndRound(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255.0 + 0.5)
}

// sRGBToLinearLUT provides O(1) sRGB byte -> linear float32 conversion,
// used by the raster's output-stage byte path. 256 entries, 1KB.
var sRGBToLinearLUT [256]float32

// linearToSRGBLUT provides O(1) linear float32 -> sRGB byte conversion.
// 4096 entries (12-bit) is more precision than an 8-bit output needs.
var linearToSRGBLUT [4096]uint8

func init() {
	for i := range 256 {
		sRGBToLinearLUT[i] = SRGBToLinear(float32(i) / 255.0)
	}
	for i := range 4096 {
		l := float32(i) / 4095.0
		s := LinearToSRGB(l)
		linearToSRGBLUT[i] = clampAndRound(s)
	}
}

// SRGBToLinearFast converts an sRGB byte to linear float32 via lookup table.
func SRGBToLinearFast(s uint8) float32 {
	return sRGBToLinearLUT[s]
}

// LinearToSRGBFast converts a linear float32 to an sRGB byte via lookup table.
func LinearToSRGBFast(l float32) uint8 {
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	index := int(l*4095.0 + 0.5)
	if index > 4095 {
		index = 4095
	}
	return linearToSRGBLUT[index]
}
