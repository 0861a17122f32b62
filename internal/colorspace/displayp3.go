package colorspace

// Linear-sRGB <-> linear-Display-P3 conversion via the standard 3x3 primaries
// matrices (both color spaces share the D65 white point, so no chromatic
// adaptation step is needed). This is the natural extension of the teacher's
// per-channel transfer-function approach (SRGBToLinear/LinearToSRGB) to a
// per-gamut linear transform: a fixed matrix multiply instead of a table
// lookup, since the map is linear rather than a nonlinear per-channel curve.

// linearSRGBToP3 and its inverse are derived from the sRGB and Display-P3
// primaries and the D65 white point (Bruce Lindbloom's RGB working space
// matrices, sRGB primaries -> P3 primaries, both linearized).
var linearSRGBToP3 = [3][3]float32{
	{0.8224621, 0.1775380, 0.0000000},
	{0.0331941, 0.9668058, 0.0000000},
	{0.0170827, 0.0723974, 0.9105199},
}

var linearP3ToSRGB = [3][3]float32{
	{1.2249401, -0.2249404, 0.0000000},
	{-0.0420569, 1.0420571, 0.0000000},
	{-0.0196376, -0.0786361, 1.0982735},
}

func applyMatrix(m [3][3]float32, c ColorF32) ColorF32 {
	return ColorF32{
		R: m[0][0]*c.R + m[0][1]*c.G + m[0][2]*c.B,
		G: m[1][0]*c.R + m[1][1]*c.G + m[1][2]*c.B,
		B: m[2][0]*c.R + m[2][1]*c.G + m[2][2]*c.B,
		A: c.A,
	}
}

// LinearSRGBToLinearP3 converts linear-sRGB to linear Display-P3.
func LinearSRGBToLinearP3(c ColorF32) ColorF32 {
	return applyMatrix(linearSRGBToP3, c)
}

// LinearP3ToLinearSRGB converts linear Display-P3 to linear-sRGB.
func LinearP3ToLinearSRGB(c ColorF32) ColorF32 {
	return applyMatrix(linearP3ToSRGB, c)
}
