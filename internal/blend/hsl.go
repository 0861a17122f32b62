// Package blend implements HSL-based non-separable blend modes.
//
// This file implements the non-separable blend modes (Hue, Saturation, Color, Luminosity)
// per W3C Compositing and Blending Level 1 specification.
//
// These modes require color space conversion and operate on the entire RGB triplet
// rather than individual channels.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
//   - Section 8: Non-separable blend modes
package blend

// Lum returns the luminance of a color using BT.601 coefficients.
// Formula: Lum(r, g, b) = 0.30*r + 0.59*g + 0.11*b
//
// Parameters are normalized float32 values in [0, 1].
func Lum(r, g, b float32) float32 {
	return 0.30*r + 0.59*g + 0.11*b
}

// Sat returns the saturation (max - min) of a color.
// Formula: Sat(r, g, b) = max(r, g, b) - min(r, g, b)
//
// Parameters are normalized float32 values in [0, 1].
func Sat(r, g, b float32) float32 {
	return max3(r, g, b) - min3(r, g, b)
}

// ClipColor clips color components to [0,1] while preserving luminance.
// This implements the W3C spec ClipColor algorithm.
//
// If any component is outside [0,1], the color is scaled towards the luminance
// to bring it back into range while maintaining the relative relationships.
func ClipColor(r, g, b float32) (float32, float32, float32) {
	l := Lum(r, g, b)
	n := min3(r, g, b)
	x := max3(r, g, b)

	// If minimum component is negative, scale towards luminance
	if n < 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}

	// If maximum component exceeds 1, scale towards luminance
	if x > 1 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}

	return r, g, b
}

// SetLum sets the luminance of a color while preserving saturation and hue.
// This implements the W3C spec SetLum algorithm.
//
// The algorithm adjusts the color's luminance to the target value l,
// then clips the result to [0,1] while maintaining relative relationships.
func SetLum(r, g, b, l float32) (float32, float32, float32) {
	d := l - Lum(r, g, b)
	r += d
	g += d
	b += d
	return ClipColor(r, g, b)
}

// SetSat sets the saturation of a color while preserving hue and luminosity relationships.
// This implements the W3C spec SetSat algorithm.
//
// The algorithm works by identifying min, mid, max components and scaling them
// to achieve the target saturation while preserving their relative ordering.
func SetSat(r, g, b, s float32) (float32, float32, float32) {
	// Find which component is which (min, mid, max)
	minPtr, midPtr, maxPtr := sortRGB(&r, &g, &b)

	minVal := *minPtr
	midVal := *midPtr
	maxVal := *maxPtr

	// Apply SetSat per W3C spec
	if maxVal > minVal {
		// Non-grayscale: scale to new saturation
		*midPtr = ((midVal - minVal) * s) / (maxVal - minVal)
		*maxPtr = s
		*minPtr = 0
	} else {
		// Grayscale: all components equal, can't meaningfully set saturation
		// Keep the luminosity by returning the original equal values
		// Saturation remains 0
		*minPtr = minVal
		*midPtr = midVal
		*maxPtr = maxVal
	}

	return r, g, b
}

// sortRGB returns pointers to r, g, b sorted by value (minPtr, midPtr, maxPtr).
func sortRGB(r, g, b *float32) (minPtr, midPtr, maxPtr *float32) {
	switch {
	case *r <= *g && *g <= *b:
		// r <= g <= b
		return r, g, b
	case *r <= *b && *b <= *g:
		// r <= b < g
		return r, b, g
	case *b <= *r && *r <= *g:
		// b < r <= g
		return b, r, g
	case *g <= *r && *r <= *b:
		// g < r <= b
		return g, r, b
	case *g <= *b && *b <= *r:
		// g <= b < r
		return g, b, r
	default:
		// b < g < r
		return b, g, r
	}
}

// hslBlendHue uses the hue of the source with saturation and luminosity of the backdrop.
// Formula: SetLum(SetSat(Cs, Sat(Cb)), Lum(Cb))
//
// This creates a color with the hue of the source and the saturation and luminosity
// of the backdrop.
func hslBlendHue(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	// SetSat(Cs, Sat(Cb))
	satB := Sat(dr, dg, db)
	r, g, b := SetSat(sr, sg, sb, satB)

	// SetLum(result, Lum(Cb))
	lumB := Lum(dr, dg, db)
	return SetLum(r, g, b, lumB)
}

// hslBlendSaturation uses the saturation of the source with hue and luminosity of the backdrop.
// Formula: SetLum(SetSat(Cb, Sat(Cs)), Lum(Cb))
//
// This creates a color with the saturation of the source and the hue and luminosity
// of the backdrop.
func hslBlendSaturation(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	// SetSat(Cb, Sat(Cs))
	satS := Sat(sr, sg, sb)
	r, g, b := SetSat(dr, dg, db, satS)

	// SetLum(result, Lum(Cb))
	lumB := Lum(dr, dg, db)
	return SetLum(r, g, b, lumB)
}

// hslBlendColor uses the hue and saturation of the source with luminosity of the backdrop.
// Formula: SetLum(Cs, Lum(Cb))
//
// This creates a color with the hue and saturation of the source and the luminosity
// of the backdrop.
func hslBlendColor(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	lumB := Lum(dr, dg, db)
	return SetLum(sr, sg, sb, lumB)
}

// hslBlendLuminosity uses the luminosity of the source with hue and saturation of the backdrop.
// Formula: SetLum(Cb, Lum(Cs))
//
// This creates a color with the luminosity of the source and the hue and saturation
// of the backdrop.
func hslBlendLuminosity(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	lumS := Lum(sr, sg, sb)
	return SetLum(dr, dg, db, lumS)
}

// Utility functions

// min3 returns the minimum of three float32 values.
func min3(a, b, c float32) float32 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// max3 returns the maximum of three float32 values.
func max3(a, b, c float32) float32 {
	if a > b {
		if a > c {
			return a
		}
		return c
	}
	if b > c {
		return b
	}
	return c
}

// blendHue wraps hslBlendHue as a non-separable Vec4 blend function.
func blendHue(src, dst Vec4) Vec4 {
	return nonSeparableBlend(src, dst, hslBlendHue)
}

// blendSaturation wraps hslBlendSaturation as a non-separable Vec4 blend function.
func blendSaturation(src, dst Vec4) Vec4 {
	return nonSeparableBlend(src, dst, hslBlendSaturation)
}

// blendColor wraps hslBlendColor as a non-separable Vec4 blend function.
func blendColor(src, dst Vec4) Vec4 {
	return nonSeparableBlend(src, dst, hslBlendColor)
}

// blendLuminosity wraps hslBlendLuminosity as a non-separable Vec4 blend function.
func blendLuminosity(src, dst Vec4) Vec4 {
	return nonSeparableBlend(src, dst, hslBlendLuminosity)
}

// nonSeparableBlend applies a non-separable blend function under premultiplied
// alpha, per the standard compositing formula:
//
//	Result = (1 - Sa) * D + (1 - Da) * S + Sa * Da * B(Cs, Cb)
//
// src and dst are premultiplied float32 Vec4 in [0,1].
func nonSeparableBlend(src, dst Vec4, blendFunc func(sr, sg, sb, dr, dg, db float32) (float32, float32, float32)) Vec4 {
	if src.A == 0 {
		return dst
	}
	if dst.A == 0 {
		return src
	}

	sur, sug, sub := src.R/src.A, src.G/src.A, src.B/src.A
	dur, dug, dub := dst.R/dst.A, dst.G/dst.A, dst.B/dst.A

	blendR, blendG, blendB := blendFunc(sur, sug, sub, dur, dug, dub)

	invSa := 1 - src.A
	invDa := 1 - dst.A
	saDa := src.A * dst.A

	return Vec4{
		R: dst.R*invSa + src.R*invDa + saDa*blendR,
		G: dst.G*invSa + src.G*invDa + saDa*blendG,
		B: dst.B*invSa + src.B*invDa + saDa*blendB,
		A: src.A + dst.A*invSa,
	}
}
