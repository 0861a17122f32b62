// Package colorspace implements the color space conversions the render
// program IR's conversion operators and the rasterizer's RasterColorConverter
// need: sRGB, linear-sRGB, Oklab, and linear Display-P3.
//
// Adapted from the teacher's internal/color package: ColorF32/ColorU8 and the
// sRGB<->linear transfer functions are kept near-verbatim (same formulas,
// same LUT-acceleration idiom); Oklab and Display-P3 are new and computed
// directly (matrix multiplies plus a cube root for Oklab), with no lookup
// table of their own.
package colorspace

// Space identifies one of the color spaces this module understands.
type Space uint8

const (
	SRGB Space = iota
	LinearSRGB
	Oklab
	LinearDisplayP3
)

// ColorF32 is a color with float32 components in [0,1] (Oklab's L is also in
// roughly [0,1] but a/b range roughly [-0.4,0.4]). RGB-space colors have
// alpha always linear, never gamma-encoded, matching the teacher's
// convention.
type ColorF32 struct {
	R, G, B, A float32
}

// ColorU8 is a color with uint8 components in [0,255].
type ColorU8 struct {
	R, G, B, A uint8
}
