package raster

import "github.com/gogpu/cag/internal/blend"

// OutputRaster is the target spec §6 describes: it accepts partial-pixel
// contributions, full-pixel writes, and full-region writes, in either
// client or output color space. Contract: the raster never retains the
// color argument; it must copy.
type OutputRaster interface {
	AddClientPartialPixel(c blend.Vec4, x, y int)
	AddClientFullPixel(c blend.Vec4, x, y int)
	AddOutputFullPixel(c blend.Vec4, x, y int)
	AddClientFullRegion(c blend.Vec4, x, y, w, h int)
	AddOutputFullRegion(c blend.Vec4, x, y, w, h int)
}

// Buffer is the OutputRaster this module ships: a plain premultiplied
// float32 pixel grid plus a RasterColorConverter mediating client,
// accumulation, and output space, matching the "client/accumulation/
// output" three-space discipline spec §3/§4.4 requires.
//
// RasterColorConverter only converts accumulation -> output, never the
// reverse (spec §6 names exactly three one-way conversions), so a pixel
// written through one of the Output* methods below cannot be folded back
// into accumulation space for storage. Buffer instead remembers which
// pixels were written in output space directly, in outputWritten, and
// has At skip the accumulation->output conversion for them.
type Buffer struct {
	Width, Height int
	Pixels        []blend.Vec4 // accumulation-space unless outputWritten[i]

	// outputWritten marks pixels last written via AddOutputFullPixel or
	// AddOutputFullRegion; At returns Pixels[i] for these unconverted
	// instead of running it through AccumulationToOutput a second time.
	outputWritten []bool

	converter RasterColorConverter
}

// NewBuffer allocates a blank width x height Buffer converting into
// output's color space.
func NewBuffer(width, height int, output RasterColorSpaceTag) *Buffer {
	return &Buffer{
		Width:         width,
		Height:        height,
		Pixels:        make([]blend.Vec4, width*height),
		outputWritten: make([]bool, width*height),
		converter:     NewRasterColorConverter(output),
	}
}

func (b *Buffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0, false
	}
	return y*b.Width + x, true
}

// AddClientPartialPixel accumulates a partial coverage contribution c
// (already premultiplied, already weighted by coverage) into pixel (x,y),
// converting from client to accumulation space first.
func (b *Buffer) AddClientPartialPixel(c blend.Vec4, x, y int) {
	i, ok := b.index(x, y)
	if !ok {
		return
	}
	a := b.converter.ClientToAccumulation(c)
	p := b.Pixels[i]
	if b.outputWritten[i] {
		// Prior content is output-space and can't be unconverted back
		// into accumulation space; start this pixel over from a instead
		// of mixing two different color spaces together.
		p = blend.Vec4{}
		b.outputWritten[i] = false
	}
	b.Pixels[i] = blend.Vec4{R: p.R + a.R, G: p.G + a.G, B: p.B + a.B, A: p.A + a.A}
}

// AddClientFullPixel overwrites pixel (x,y) with a fully-covered client
// color, converted to accumulation space.
func (b *Buffer) AddClientFullPixel(c blend.Vec4, x, y int) {
	i, ok := b.index(x, y)
	if !ok {
		return
	}
	b.Pixels[i] = b.converter.ClientToAccumulation(c)
	b.outputWritten[i] = false
}

// AddOutputFullPixel overwrites pixel (x,y) with a color already in output
// space. There is no output->accumulation conversion to run it through
// (RasterColorConverter is one-way), so the pixel is stored as-is and
// flagged in outputWritten; At returns it unconverted.
func (b *Buffer) AddOutputFullPixel(c blend.Vec4, x, y int) {
	i, ok := b.index(x, y)
	if !ok {
		return
	}
	b.Pixels[i] = c
	b.outputWritten[i] = true
}

// AddClientFullRegion fills the w x h rect at (x,y) with a fully-covered
// client color — the analytic rasterizer's fast path for a face whose
// clipped polygon fully covers a bin and whose program is constant (spec
// §4.4's isFullArea && isConstant branch).
func (b *Buffer) AddClientFullRegion(c blend.Vec4, x, y, w, h int) {
	a := b.converter.ClientToAccumulation(c)
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			if i, ok := b.index(xx, yy); ok {
				b.Pixels[i] = a
				b.outputWritten[i] = false
			}
		}
	}
}

// AddOutputFullRegion is AddClientFullRegion's output-space counterpart:
// see AddOutputFullPixel for why the region is stored unconverted.
func (b *Buffer) AddOutputFullRegion(c blend.Vec4, x, y, w, h int) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			if i, ok := b.index(xx, yy); ok {
				b.Pixels[i] = c
				b.outputWritten[i] = true
			}
		}
	}
}

// At returns pixel (x,y) converted to output space, the final step of
// spec §4.4's color-space discipline — unless the pixel was last written
// through AddOutputFullPixel/AddOutputFullRegion, in which case it is
// already in output space and is returned as stored.
func (b *Buffer) At(x, y int) blend.Vec4 {
	i, ok := b.index(x, y)
	if !ok {
		return blend.Vec4{}
	}
	if b.outputWritten[i] {
		return b.Pixels[i]
	}
	return b.converter.AccumulationToOutput(b.Pixels[i])
}
