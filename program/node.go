// Package program implements the render-program intermediate
// representation: an immutable tree of shading operators that evaluates to
// a premultiplied color at a point, or compiles to a postfix instruction
// stream for a stack-based evaluator. Color-space conversion nodes call
// into internal/colorspace; blend nodes call into internal/blend, matching
// this module's choice to keep color math in one place and let the IR
// just sequence it.
//
// Node is a tagged union expressed the way the teacher's render/scene.go
// expresses its draw-command stream: a small op tag plus a concrete struct
// per operator, rather than deep interface inheritance (spec §9's "tree-
// shaped render programs" design note).
package program

import "github.com/gogpu/cag/internal/blend"

// Vec4 is the color type render-program nodes evaluate to: premultiplied,
// channel values usually in [0,1] (gradients and some filters can briefly
// exceed that range before a final clamp at output).
type Vec4 = blend.Vec4

// Op tags every concrete Node so simplification and instruction
// compilation can switch on it without a type assertion in the hot path.
type Op uint8

const (
	OpColor Op = iota
	OpPathBoolean
	OpAlpha
	OpPremultiply
	OpUnpremultiply
	OpConvertColorSpace
	OpNormalDebug
	OpBarycentric
	OpDepth
	OpImage
	OpBlend
	OpStack
	OpLinearBlend
	OpLinearGradient
	OpRadialGradient
	OpFilter
)

// Node is the common interface every render-program operator implements.
type Node interface {
	// Op returns the node's operator tag.
	Op() Op
	// Children returns the node's fixed child list. Callers must not
	// mutate the returned slice.
	Children() []Node
	// WithChildren returns a node identical to this one but with the
	// given children, or this node unchanged if children is identity-equal
	// to the current child list (same length, same pointers in the same
	// positions).
	WithChildren(children []Node) Node
	// FullyTransparent reports whether this node evaluates to (0,0,0,0)
	// for every context, computed bottom-up at construction time.
	FullyTransparent() bool
	// FullyOpaque reports whether this node's alpha channel is always 1.
	FullyOpaque() bool
	// Evaluate maps an evaluation context to a premultiplied color.
	Evaluate(ctx *EvalContext) Vec4
	// WriteInstructions emits this node's postfix instruction stream
	// (children first, then this node's own instruction) into out.
	WriteInstructions(out *InstructionWriter)
}

// sameChildren reports whether candidate is identical, slot for slot, to
// current — the check WithChildren uses to decide whether it can return
// the receiver unchanged instead of allocating.
func sameChildren(current, candidate []Node) bool {
	if len(current) != len(candidate) {
		return false
	}
	for i := range current {
		if current[i] != candidate[i] {
			return false
		}
	}
	return true
}

// EvalContext is the RenderEvaluationContext spec §4.2 describes: the
// inputs a node's Evaluate needs to produce a color at one sample point.
type EvalContext struct {
	// PixelCenter is the sample point in face/path space.
	PixelCenter Point
	// PixelBounds is the AABB of the pixel (or sub-pixel bin) being
	// evaluated, needed by image sampling and pixel-center-accuracy
	// gradient modes.
	PixelBounds Rect
	// Centroid is the clipped face region's centroid, used by
	// centroid-accuracy gradient and linear-blend modes.
	Centroid Point
	// FacePolygon is the clipped face boundary in the node's evaluation
	// space, needed by Barycentric* and NormalDebug.
	FacePolygon []Point
	// Winding maps an input path id to its winding number at this sample,
	// needed by PathBoolean.
	Winding map[int32]int
}

// Point is a plain 2D evaluation-space point.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned evaluation-space rectangle.
type Rect struct {
	X, Y, W, H float64
}
