package raster

import (
	"github.com/gogpu/cag/internal/blend"
	"github.com/gogpu/cag/internal/colorspace"
)

// RasterColorSpaceTag is the per-raster u32 tag spec §6 defines: 0 = sRGB,
// 1 = Display-P3.
type RasterColorSpaceTag uint32

const (
	RasterSRGB      RasterColorSpaceTag = 0
	RasterDisplayP3 RasterColorSpaceTag = 1
)

// RasterColorConverter mediates between the three color spaces spec §3/§4.4
// name: client (whatever space the caller's OutputRaster expects partial
// contributions in), accumulation (premultiplied linear-sRGB, where the
// render program evaluates), and output (the raster's final tag:
// sRGB255 or Display-P3). Contract: returned vectors are shared scratch
// storage; callers must not retain them (spec §6).
type RasterColorConverter interface {
	ClientToAccumulation(c blend.Vec4) blend.Vec4
	ClientToOutput(c blend.Vec4) blend.Vec4
	AccumulationToOutput(c blend.Vec4) blend.Vec4
}

// converter is the concrete RasterColorConverter this module ships: client
// space is always treated as premultiplied linear-sRGB (the accumulation
// space itself), so ClientToAccumulation is the identity and the only real
// work is AccumulationToOutput's conversion to the raster's output tag.
type converter struct {
	scratch blend.Vec4
	output  RasterColorSpaceTag
}

// NewRasterColorConverter builds the converter mediating into output's
// color space.
func NewRasterColorConverter(output RasterColorSpaceTag) RasterColorConverter {
	return &converter{output: output}
}

func (c *converter) ClientToAccumulation(v blend.Vec4) blend.Vec4 {
	c.scratch = v
	return c.scratch
}

func (c *converter) ClientToOutput(v blend.Vec4) blend.Vec4 {
	return c.AccumulationToOutput(v)
}

func (c *converter) AccumulationToOutput(v blend.Vec4) blend.Vec4 {
	switch c.output {
	case RasterDisplayP3:
		c.scratch = premultipliedLinearSRGBToP3(v)
	default:
		c.scratch = premultipliedLinearSRGBToSRGB255(v)
	}
	return c.scratch
}

// premultipliedLinearSRGBToSRGB255 unpremultiplies, gamma-encodes, and
// re-premultiplies v, matching spec §4.4's conversion pipeline: unpremultiply
// if needed -> non-linear->linear source (already linear here) ->
// source-linear->linear-sRGB (identity here) -> linear-sRGB->target-linear
// (identity) -> linear->non-linear target -> premultiply if needed.
func premultipliedLinearSRGBToSRGB255(v blend.Vec4) blend.Vec4 {
	u := unpremultiply(v)
	encoded := colorspace.LinearToSRGBColor(colorspace.ColorF32{R: u.R, G: u.G, B: u.B, A: u.A})
	return premultiply(blend.Vec4{R: encoded.R, G: encoded.G, B: encoded.B, A: u.A})
}

func premultipliedLinearSRGBToP3(v blend.Vec4) blend.Vec4 {
	u := unpremultiply(v)
	p3Linear := colorspace.LinearSRGBToLinearP3(colorspace.ColorF32{R: u.R, G: u.G, B: u.B, A: u.A})
	encoded := colorspace.LinearToSRGBColor(p3Linear)
	return premultiply(blend.Vec4{R: encoded.R, G: encoded.G, B: encoded.B, A: u.A})
}

func unpremultiply(c blend.Vec4) blend.Vec4 {
	if c.A == 0 {
		return blend.Vec4{}
	}
	return blend.Vec4{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}

func premultiply(c blend.Vec4) blend.Vec4 {
	return blend.Vec4{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}
