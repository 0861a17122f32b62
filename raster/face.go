package raster

import (
	"github.com/gogpu/cag/internal/clip"
	"github.com/gogpu/cag/program"
)

// RenderableFace is the unit the rasterizer consumes (spec §3): a face's
// boundary polygon(s), its precomputed per-path winding map, and the
// render program that shades it.
type RenderableFace struct {
	// Outer is the face's outer boundary, in raster pixel space, CCW.
	Outer []clip.Point
	// Inners are the face's hole boundaries (if any), CW.
	Inners [][]clip.Point
	// Winding maps an input path id to its winding number at this face,
	// bound into program.EvalContext.Winding during evaluation.
	Winding map[int32]int
	// Program is this face's shading program, already simplified.
	Program program.Node
	// Compiled is Program's compiled postfix stream (program.Compile),
	// used by the fine pass's stack evaluator instead of tree recursion.
	Compiled program.Program
	// Flags records which evaluation-context fields Program reads
	// (AnalyzeProgram), letting the fine pass hoist constant programs out
	// of the per-pixel loop.
	Flags ProgramFlags
}

// NewRenderableFace builds a RenderableFace, simplifying and compiling prog
// once up front so the fine pass never repeats that work per pixel.
func NewRenderableFace(outer []clip.Point, inners [][]clip.Point, winding map[int32]int, prog program.Node) RenderableFace {
	simplified := program.Simplify(prog)
	return RenderableFace{
		Outer:    outer,
		Inners:   inners,
		Winding:  winding,
		Program:  simplified,
		Compiled: program.Compile(simplified),
		Flags:    AnalyzeProgram(simplified),
	}
}

// ProgramFlags are the packed per-record bits spec §4.4/§6 describe:
// needsCentroid, needsFace, isConstant. The fourth bit, isFullArea, is
// carried per bin entry (binEntry, FineFaceRecord) rather than here.
type ProgramFlags struct {
	NeedsCentroid bool
	NeedsFace     bool
	IsConstant    bool
}

// AnalyzeProgram walks n's tree once and reports which evaluation-context
// fields it reads, so the fine pass can hoist constant programs out of the
// per-pixel loop (isConstant) and skip computing a face polygon / centroid
// it will never look at.
func AnalyzeProgram(n program.Node) ProgramFlags {
	var flags ProgramFlags
	var walk func(program.Node)
	walk = func(n program.Node) {
		switch n.Op() {
		case program.OpBarycentric, program.OpNormalDebug:
			flags.NeedsFace = true
		case program.OpLinearBlend, program.OpLinearGradient, program.OpRadialGradient:
			flags.NeedsCentroid = true
		case program.OpImage:
			flags.NeedsCentroid = true
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(n)
	flags.IsConstant = !flags.NeedsCentroid && !flags.NeedsFace && !dependsOnWinding(n)
	return flags
}

// dependsOnWinding reports whether n's tree contains a PathBoolean leaf,
// the only operator that reads the per-face winding map rather than pixel
// geometry — a program built from it alone is still per-face constant
// (the winding map does not vary within a face), but this module treats
// any PathBoolean use conservatively as non-constant since most programs
// that reach for it do so to vary by sample in a parent Blend/Filter.
func dependsOnWinding(n program.Node) bool {
	if n.Op() == program.OpPathBoolean {
		return true
	}
	for _, c := range n.Children() {
		if dependsOnWinding(c) {
			return true
		}
	}
	return false
}

// Polygon returns the face's outer boundary; callers needing hole-aware
// clipping should clip each of Outer and Inners independently and combine
// with even-odd semantics, since this module's clip primitives operate on
// simple polygons (spec §4.3 non-goal: no nested clip-region stack).
func (f RenderableFace) Polygon() []clip.Point {
	return f.Outer
}
