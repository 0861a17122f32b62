package raster

import (
	"math"
	"testing"

	"github.com/gogpu/cag/cag"
	"github.com/gogpu/cag/internal/blend"
	"github.com/gogpu/cag/program"
)

func squarePath(x0, y0, x1, y1 float64, id int32) cag.RenderPath {
	return cag.RenderPath{
		ID: id,
		Points: []cag.Point{
			{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
		},
	}
}

func approxEqual(t *testing.T, got, want, eps float32, what string) {
	t.Helper()
	if math.Abs(float64(got-want)) > float64(eps) {
		t.Errorf("%s = %v, want %v (+/- %v)", what, got, want, eps)
	}
}

// spec §8 scenario 1: a single unit square, solid red, through a 1x1 Box
// filter, produces exactly pixel (1,0,0,1).
func TestRasterizeSolidSquare(t *testing.T) {
	paths := []cag.RenderPath{squarePath(0, 0, 1, 1, 0)}
	prog := program.NewColor(program.Vec4{R: 1, G: 0, B: 0, A: 1})

	out := NewBuffer(1, 1, RasterSRGB)
	cfg := NewTwoPassConfig(1, 1).WithFilter(FilterBox, 1.0)

	if err := Rasterize(paths, prog, out, cfg, cag.NonZeroWinding); err != nil {
		t.Fatalf("Rasterize: %v", err)
	}

	c := out.At(0, 0)
	approxEqual(t, c.R, 1, 1e-4, "R")
	approxEqual(t, c.G, 0, 1e-4, "G")
	approxEqual(t, c.B, 0, 1e-4, "B")
	approxEqual(t, c.A, 1, 1e-4, "A")
}

// spec §8 scenario 2: two overlapping unit-height squares under even-odd
// fill produce three faces — red-only, blue-only, and the overlap, whose
// summed parity is even and so is filtered out of the arrangement
// entirely, leaving that pixel blank.
func TestRasterizeOverlapEvenOdd(t *testing.T) {
	paths := []cag.RenderPath{
		squarePath(0, 0, 2, 1, 0),
		squarePath(1, 0, 3, 1, 1),
	}
	redMask := program.NewBlend(blend.SourceIn,
		program.NewColor(program.Vec4{R: 1, G: 0, B: 0, A: 1}),
		program.NewPathBoolean(0))
	blueMask := program.NewBlend(blend.SourceIn,
		program.NewColor(program.Vec4{R: 0, G: 0, B: 1, A: 1}),
		program.NewPathBoolean(1))
	prog := program.NewBlend(blend.SourceOver, blueMask, redMask)

	out := NewBuffer(3, 1, RasterSRGB)
	cfg := NewTwoPassConfig(3, 1).WithFilter(FilterBox, 1.0)

	if err := Rasterize(paths, prog, out, cfg, cag.EvenOdd); err != nil {
		t.Fatalf("Rasterize: %v", err)
	}

	left := out.At(0, 0)    // inside path 0 only
	middle := out.At(1, 0)  // inside both: even parity, excluded
	right := out.At(2, 0)   // inside path 1 only
	approxEqual(t, left.R, 1, 1e-3, "left.R")
	approxEqual(t, left.B, 0, 1e-3, "left.B")
	approxEqual(t, middle.A, 0, 1e-3, "middle.A")
	approxEqual(t, right.B, 1, 1e-3, "right.B")
	approxEqual(t, right.R, 0, 1e-3, "right.R")
}

// spec §8 scenario 3: a red-to-blue linear gradient sampled at two pixel
// centroids (t=0.25, t=0.75 of a width-2 raster) lands on distinguishable
// colors, each closer to its nearer stop than to the other.
func TestRasterizeLinearGradient(t *testing.T) {
	paths := []cag.RenderPath{squarePath(0, 0, 2, 1, 0)}
	stops := []program.GradientStop{
		{Ratio: 0, Color: program.Vec4{R: 1, G: 0, B: 0, A: 1}},
		{Ratio: 1, Color: program.Vec4{R: 0, G: 0, B: 1, A: 1}},
	}
	prog := program.NewLinearGradient(program.AccuracyUnsplitCentroid, program.ExtendPad, stops,
		func(ctx *program.EvalContext) float64 { return ctx.Centroid.X / 2 })

	out := NewBuffer(2, 1, RasterSRGB)
	cfg := NewTwoPassConfig(2, 1).WithFilter(FilterBox, 1.0)

	if err := Rasterize(paths, prog, out, cfg, cag.NonZeroWinding); err != nil {
		t.Fatalf("Rasterize: %v", err)
	}

	left := out.At(0, 0)
	right := out.At(1, 0)
	if left.R <= right.R {
		t.Errorf("expected left pixel redder than right: left=%v right=%v", left, right)
	}
	if left.B >= right.B {
		t.Errorf("expected right pixel bluer than left: left=%v right=%v", left, right)
	}
}

// A predicate that accepts no face at all (every path filtered out of the
// arrangement) produces a blank raster, not an error (spec §7's
// "degenerate cases produce a blank raster" contract).
func TestRasterizeDegenerateIsBlank(t *testing.T) {
	paths := []cag.RenderPath{squarePath(0, 0, 1, 1, 0)}
	prog := program.NewColor(program.Vec4{R: 1, G: 1, B: 1, A: 1})
	out := NewBuffer(1, 1, RasterSRGB)
	cfg := NewTwoPassConfig(1, 1)
	rejectAll := func(map[int32]int) bool { return false }

	if err := Rasterize(paths, prog, out, cfg, rejectAll); err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	c := out.At(0, 0)
	if c.A != 0 {
		t.Errorf("expected blank pixel, got %v", c)
	}
}

func TestTwoPassConfigValidate(t *testing.T) {
	cfg := NewTwoPassConfig(0, 10)
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero width")
	}
}
