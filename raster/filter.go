package raster

import "golang.org/x/image/draw"

// FilterKind names the reconstruction filters spec §4.4 lists: Box,
// Bilinear, and Mitchell-Netravali.
type FilterKind uint8

const (
	FilterBox FilterKind = iota
	FilterBilinear
	FilterMitchellNetravali
)

func (k FilterKind) String() string {
	switch k {
	case FilterBox:
		return "box"
	case FilterBilinear:
		return "bilinear"
	case FilterMitchellNetravali:
		return "mitchell-netravali"
	default:
		return "unknown"
	}
}

// boxKernel is a unit-support indicator, evaluated as a 1x1 filter with a
// trivial closed form (spec §4.4: "for the Box filter, the weight is the
// clipped polygon's area divided by pixel area"). It is expressed as a
// draw.Kernel too, so AnalyticWeight's separable quadrature path has one
// code path for all three filters, with Box short-circuited to the exact
// area formula before that path is ever reached.
var boxKernel = draw.Kernel{
	Support: 0.5,
	At: func(t float64) float64 {
		if t < -0.5 || t > 0.5 {
			return 0
		}
		return 1
	},
}

// kernelFor returns the 1D separable kernel backing kind, reusing
// golang.org/x/image/draw's BiLinear and CatmullRom tables (the closest
// upstream analogue to Mitchell-Netravali's cubic family; gogpu/gg and
// seehuhn-go-render both already depend on golang.org/x/image, and
// draw.Kernel's Support/At shape is exactly the "filter scale and radius"
// pair spec §4.4 asks the rasterizer to carry) scaled by filterScale.
func kernelFor(kind FilterKind, filterScale float64) draw.Kernel {
	if filterScale <= 0 {
		filterScale = 1
	}
	var base draw.Kernel
	switch kind {
	case FilterBilinear:
		base = draw.BiLinear
	case FilterMitchellNetravali:
		base = draw.CatmullRom
	default:
		base = boxKernel
	}
	return draw.Kernel{
		Support: base.Support * filterScale,
		At: func(t float64) float64 {
			return base.At(t / filterScale)
		},
	}
}

// filterRadius returns the pixel-space support radius for kind at the
// given scale, used to size each face's filter-clip rect in the fine pass.
func filterRadius(kind FilterKind, filterScale float64) float64 {
	return kernelFor(kind, filterScale).Support
}
