package program

import "github.com/gogpu/cag/internal/blend"

// BlendNode composites two children, a over b, using a blend.Mode.
type BlendNode struct {
	Mode blend.Mode
	A, B Node
}

func NewBlend(mode blend.Mode, a, b Node) *BlendNode {
	return &BlendNode{Mode: mode, A: a, B: b}
}

func (n *BlendNode) Op() Op           { return OpBlend }
func (n *BlendNode) Children() []Node { return []Node{n.A, n.B} }
func (n *BlendNode) WithChildren(c []Node) Node {
	if sameChildren(n.Children(), c) {
		return n
	}
	return &BlendNode{Mode: n.Mode, A: c[0], B: c[1]}
}
func (n *BlendNode) FullyTransparent() bool {
	return n.A.FullyTransparent() && n.B.FullyTransparent()
}
func (n *BlendNode) FullyOpaque() bool {
	return n.Mode == blend.Source && n.A.FullyOpaque() ||
		n.Mode == blend.SourceOver && (n.A.FullyOpaque() || n.B.FullyOpaque())
}
func (n *BlendNode) Evaluate(ctx *EvalContext) Vec4 {
	a := n.A.Evaluate(ctx)
	b := n.B.Evaluate(ctx)
	return blend.Blend(n.Mode, a, b)
}
func (n *BlendNode) WriteInstructions(out *InstructionWriter) {
	n.B.WriteInstructions(out)
	n.A.WriteInstructions(out)
	out.emitBlend(n.Mode)
}

// StackNode composites its children in painter's-algorithm order: the
// last child is the bottommost layer, the first is drawn last (on top).
type StackNode struct {
	Layers []Node
}

func NewStack(layers ...Node) *StackNode {
	return &StackNode{Layers: layers}
}

func (n *StackNode) Op() Op           { return OpStack }
func (n *StackNode) Children() []Node { return n.Layers }
func (n *StackNode) WithChildren(c []Node) Node {
	if sameChildren(n.Children(), c) {
		return n
	}
	return &StackNode{Layers: c}
}
func (n *StackNode) FullyTransparent() bool {
	for _, l := range n.Layers {
		if !l.FullyTransparent() {
			return false
		}
	}
	return true
}
func (n *StackNode) FullyOpaque() bool {
	for _, l := range n.Layers {
		if l.FullyOpaque() {
			return true
		}
	}
	return false
}
func (n *StackNode) Evaluate(ctx *EvalContext) Vec4 {
	var acc Vec4
	for i := len(n.Layers) - 1; i >= 0; i-- {
		acc = blend.Blend(blend.SourceOver, n.Layers[i].Evaluate(ctx), acc)
	}
	return acc
}
func (n *StackNode) WriteInstructions(out *InstructionWriter) {
	for i := len(n.Layers) - 1; i >= 0; i-- {
		n.Layers[i].WriteInstructions(out)
		if i != len(n.Layers)-1 {
			out.emitBlend(blend.SourceOver)
		}
	}
	if len(n.Layers) == 0 {
		out.emitColor(Vec4{})
	}
}

// Accuracy selects how a gradient or linear-blend node samples its
// interpolation parameter relative to a clipped face region.
//
// This module implements only UnsplitCentroid semantics (see DESIGN.md's
// Open Question entry): the node evaluates once, at ctx.Centroid, rather
// than pre-splitting the face along iso-lines. The enum is kept with all
// three spec-named values so program descriptions stay forward-compatible
// with a future split-aware fine pass.
type Accuracy uint8

const (
	AccuracyUnsplitCentroid Accuracy = iota
	AccuracySplitPixelCenter
	AccuracySplitAccurate
)

// LinearBlendNode interpolates between Zero and One along a caller-chosen
// scalar axis (encoded implicitly by how the evaluation context's
// Centroid/PixelCenter is derived upstream); t is recomputed per
// evaluation the same way a LinearGradientNode would with two stops.
type LinearBlendNode struct {
	Accuracy Accuracy
	Zero, One Node
	T        func(ctx *EvalContext) float64
}

func NewLinearBlend(accuracy Accuracy, zero, one Node, t func(ctx *EvalContext) float64) *LinearBlendNode {
	return &LinearBlendNode{Accuracy: accuracy, Zero: zero, One: one, T: t}
}

func (n *LinearBlendNode) Op() Op           { return OpLinearBlend }
func (n *LinearBlendNode) Children() []Node { return []Node{n.Zero, n.One} }
func (n *LinearBlendNode) WithChildren(c []Node) Node {
	if sameChildren(n.Children(), c) {
		return n
	}
	return &LinearBlendNode{Accuracy: n.Accuracy, Zero: c[0], One: c[1], T: n.T}
}
func (n *LinearBlendNode) FullyTransparent() bool {
	return n.Zero.FullyTransparent() && n.One.FullyTransparent()
}
func (n *LinearBlendNode) FullyOpaque() bool {
	return n.Zero.FullyOpaque() && n.One.FullyOpaque()
}
func (n *LinearBlendNode) Evaluate(ctx *EvalContext) Vec4 {
	t := clampUnit(n.T(ctx))
	z := n.Zero.Evaluate(ctx)
	o := n.One.Evaluate(ctx)
	return ratioBlend(z, o, t)
}
func (n *LinearBlendNode) WriteInstructions(out *InstructionWriter) {
	n.Zero.WriteInstructions(out)
	n.One.WriteInstructions(out)
	out.emitLinearBlend(n)
}

func clampUnit(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// GradientStop is one (ratio, color) pair of a gradient node; stops must
// be sorted by ascending Ratio before construction.
type GradientStop struct {
	Ratio float32
	Color Vec4
}

// ExtendMode selects how a gradient handles t outside [0,1]. Values match
// spec §6's 2-bit binary encoding (Pad=0, Reflect=1, Repeat=2).
type ExtendMode uint8

const (
	ExtendPad ExtendMode = iota
	ExtendReflect
	ExtendRepeat
)

// LinearGradientNode interpolates colors along a 1D ratio computed by T.
type LinearGradientNode struct {
	Accuracy Accuracy
	Extend   ExtendMode
	Stops    []GradientStop
	T        func(ctx *EvalContext) float64
}

func NewLinearGradient(accuracy Accuracy, extend ExtendMode, stops []GradientStop, t func(ctx *EvalContext) float64) *LinearGradientNode {
	return &LinearGradientNode{Accuracy: accuracy, Extend: extend, Stops: stops, T: t}
}

func (n *LinearGradientNode) Op() Op           { return OpLinearGradient }
func (n *LinearGradientNode) Children() []Node { return nil }
func (n *LinearGradientNode) WithChildren([]Node) Node { return n }
func (n *LinearGradientNode) FullyTransparent() bool {
	for _, s := range n.Stops {
		if s.Color.A != 0 {
			return false
		}
	}
	return true
}
func (n *LinearGradientNode) FullyOpaque() bool {
	for _, s := range n.Stops {
		if s.Color.A != 1 {
			return false
		}
	}
	return true
}
func (n *LinearGradientNode) Evaluate(ctx *EvalContext) Vec4 {
	t := extendT(n.T(ctx), n.Extend)
	return sampleGradient(n.Stops, t)
}
func (n *LinearGradientNode) WriteInstructions(out *InstructionWriter) {
	out.emitGradient(n)
}

func (n *LinearGradientNode) gradientHeaderValue() gradientHeader {
	return gradientHeader{kind: gradientLinear, extend: n.Extend, accuracy: uint8(n.Accuracy)}
}
func (n *LinearGradientNode) gradientStopsValue() []GradientStop { return n.Stops }
func (n *LinearGradientNode) gradientT(ctx *EvalContext) float64 { return extendT(n.T(ctx), n.Extend) }

// RadialGradientKind selects the radial gradient's geometric
// parameterization.
type RadialGradientKind uint8

const (
	RadialCircular RadialGradientKind = iota
	RadialStrip
	RadialFocalOnCircle
	RadialCone
)

// RadialGradientNode interpolates colors along a ratio computed from a
// radial parameterization by T (the parameterization's geometry is the
// caller's responsibility; this node only owns the stop table and extend
// semantics, mirroring LinearGradientNode).
type RadialGradientNode struct {
	Kind     RadialGradientKind
	Accuracy Accuracy
	Extend   ExtendMode
	Stops    []GradientStop
	T        func(ctx *EvalContext) float64
}

func NewRadialGradient(kind RadialGradientKind, accuracy Accuracy, extend ExtendMode, stops []GradientStop, t func(ctx *EvalContext) float64) *RadialGradientNode {
	return &RadialGradientNode{Kind: kind, Accuracy: accuracy, Extend: extend, Stops: stops, T: t}
}

func (n *RadialGradientNode) Op() Op           { return OpRadialGradient }
func (n *RadialGradientNode) Children() []Node { return nil }
func (n *RadialGradientNode) WithChildren([]Node) Node { return n }
func (n *RadialGradientNode) FullyTransparent() bool {
	for _, s := range n.Stops {
		if s.Color.A != 0 {
			return false
		}
	}
	return true
}
func (n *RadialGradientNode) FullyOpaque() bool {
	for _, s := range n.Stops {
		if s.Color.A != 1 {
			return false
		}
	}
	return true
}
func (n *RadialGradientNode) Evaluate(ctx *EvalContext) Vec4 {
	t := extendT(n.T(ctx), n.Extend)
	return sampleGradient(n.Stops, t)
}
func (n *RadialGradientNode) WriteInstructions(out *InstructionWriter) {
	out.emitGradient(n)
}

func (n *RadialGradientNode) gradientHeaderValue() gradientHeader {
	return gradientHeader{kind: gradientRadial, radial: n.Kind, extend: n.Extend, accuracy: uint8(n.Accuracy)}
}
func (n *RadialGradientNode) gradientStopsValue() []GradientStop { return n.Stops }
func (n *RadialGradientNode) gradientT(ctx *EvalContext) float64 { return extendT(n.T(ctx), n.Extend) }

// FilterNode applies a 4x4 color matrix (row-major, operating on
// unpremultiplied rgba as a column vector with an implicit 1 appended for
// the translation row) to its child's color.
type FilterNode struct {
	Child  Node
	Matrix [20]float32 // 4x5: 4 output channels, 5 inputs (r,g,b,a,1)
}

func NewFilter(child Node, matrix [20]float32) *FilterNode {
	return &FilterNode{Child: child, Matrix: matrix}
}

func (n *FilterNode) Op() Op           { return OpFilter }
func (n *FilterNode) Children() []Node { return []Node{n.Child} }
func (n *FilterNode) WithChildren(c []Node) Node {
	if sameChildren(n.Children(), c) {
		return n
	}
	return &FilterNode{Child: c[0], Matrix: n.Matrix}
}
func (n *FilterNode) FullyTransparent() bool { return false }
func (n *FilterNode) FullyOpaque() bool      { return false }
func (n *FilterNode) Evaluate(ctx *EvalContext) Vec4 {
	c := n.Child.Evaluate(ctx)
	var u Vec4
	if c.A != 0 {
		u = Vec4{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
	}
	in := [5]float32{u.R, u.G, u.B, u.A, 1}
	var out [4]float32
	for row := 0; row < 4; row++ {
		var sum float32
		for col := 0; col < 5; col++ {
			sum += n.Matrix[row*5+col] * in[col]
		}
		out[row] = sum
	}
	return Vec4{R: out[0] * out[3], G: out[1] * out[3], B: out[2] * out[3], A: out[3]}
}
func (n *FilterNode) WriteInstructions(out *InstructionWriter) {
	n.Child.WriteInstructions(out)
	out.emitFilter(n.Matrix)
}
