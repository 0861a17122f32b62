// Command cagdemo exercises the cag/program/raster pipeline against the
// boundary scenarios spec §8 names: a solid unit square, two overlapping
// rectangles under even-odd fill, and a two-stop linear gradient. It writes
// each scenario's resolved pixel grid to stdout as plain text rather than
// an image file, since the module's Non-goals (spec §1) exclude an image
// codec.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gogpu/cag/cag"
	"github.com/gogpu/cag/internal/blend"
	"github.com/gogpu/cag/program"
	"github.com/gogpu/cag/raster"
)

func main() {
	var (
		scenario = flag.String("scenario", "square", "scenario to run: square, overlap, gradient")
	)
	flag.Parse()

	var err error
	switch *scenario {
	case "square":
		err = runSquare()
	case "overlap":
		err = runOverlap()
	case "gradient":
		err = runGradient()
	default:
		log.Fatalf("unknown scenario %q (want square, overlap, or gradient)", *scenario)
	}
	if err != nil {
		log.Fatalf("cagdemo: %v", err)
	}
}

func square(x0, y0, x1, y1 float64, id int32) cag.RenderPath {
	return cag.RenderPath{
		ID: id,
		Points: []cag.Point{
			{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
		},
	}
}

// runSquare renders spec §8 scenario 1: a single unit square, solid red,
// through a 1x1 Box filter; the expected single pixel is (1,0,0,1).
func runSquare() error {
	paths := []cag.RenderPath{square(0, 0, 1, 1, 0)}
	prog := program.NewColor(program.Vec4{R: 1, G: 0, B: 0, A: 1})

	out := raster.NewBuffer(1, 1, raster.RasterSRGB)
	cfg := raster.NewTwoPassConfig(1, 1).WithFilter(raster.FilterBox, 1.0)

	if err := raster.Rasterize(paths, prog, out, cfg, cag.NonZeroWinding); err != nil {
		return err
	}
	printPixel(out, 0, 0)
	return nil
}

// runOverlap renders a one-row variant of spec §8 scenario 2: two
// overlapping 1.5x1 rectangles composited under even-odd fill, producing
// three regions (red-only, blue-only, and their overlap, which even-odd
// leaves transparent).
func runOverlap() error {
	paths := []cag.RenderPath{
		square(0, 0, 1.5, 1, 0),
		square(0.5, 0, 2, 1, 1),
	}
	redMask := program.NewBlend(blend.SourceIn, program.NewColor(program.Vec4{R: 1, G: 0, B: 0, A: 1}), program.NewPathBoolean(0))
	blueMask := program.NewBlend(blend.SourceIn, program.NewColor(program.Vec4{R: 0, G: 0, B: 1, A: 1}), program.NewPathBoolean(1))
	prog := program.NewBlend(blend.SourceOver, blueMask, redMask)

	out := raster.NewBuffer(2, 1, raster.RasterSRGB)
	cfg := raster.NewTwoPassConfig(2, 1).WithFilter(raster.FilterBox, 1.0)

	if err := raster.Rasterize(paths, prog, out, cfg, cag.EvenOdd); err != nil {
		return err
	}
	printPixel(out, 0, 0)
	printPixel(out, 1, 0)
	return nil
}

// runGradient renders a variant of spec §8 scenario 3: a red-to-blue
// linear gradient with Pad extend spanning x=0..2 across a 2x1 raster
// under a Box filter; pixel centers land at t=0.25 and t=0.75, giving
// linear (0.75,0,0.25,1) and (0.25,0,0.75,1), which the sRGB output
// prints as roughly (0.881,0,0.537,1) and (0.537,0,0.881,1).
func runGradient() error {
	paths := []cag.RenderPath{square(0, 0, 2, 1, 0)}
	stops := []program.GradientStop{
		{Ratio: 0, Color: program.Vec4{R: 1, G: 0, B: 0, A: 1}},
		{Ratio: 1, Color: program.Vec4{R: 0, G: 0, B: 1, A: 1}},
	}
	prog := program.NewLinearGradient(program.AccuracyUnsplitCentroid, program.ExtendPad, stops, func(ctx *program.EvalContext) float64 {
		return ctx.Centroid.X / 2
	})

	out := raster.NewBuffer(2, 1, raster.RasterSRGB)
	cfg := raster.NewTwoPassConfig(2, 1).WithFilter(raster.FilterBox, 1.0)

	if err := raster.Rasterize(paths, prog, out, cfg, cag.NonZeroWinding); err != nil {
		return err
	}
	printPixel(out, 0, 0)
	printPixel(out, 1, 0)
	return nil
}

func printPixel(out *raster.Buffer, x, y int) {
	c := out.At(x, y)
	fmt.Printf("(%d,%d) = (%.3f, %.3f, %.3f, %.3f)\n", x, y, c.R, c.G, c.B, c.A)
}
