package program

import "github.com/gogpu/cag/internal/colorspace"

// AlphaNode scales its child's alpha (and, being premultiplied, its color
// channels too) by a constant factor.
type AlphaNode struct {
	Child  Node
	Factor float32
}

func NewAlpha(child Node, factor float32) *AlphaNode {
	return &AlphaNode{Child: child, Factor: factor}
}

func (n *AlphaNode) Op() Op           { return OpAlpha }
func (n *AlphaNode) Children() []Node { return []Node{n.Child} }
func (n *AlphaNode) WithChildren(c []Node) Node {
	if sameChildren(n.Children(), c) {
		return n
	}
	return &AlphaNode{Child: c[0], Factor: n.Factor}
}
func (n *AlphaNode) FullyTransparent() bool {
	return n.Factor == 0 || n.Child.FullyTransparent()
}
func (n *AlphaNode) FullyOpaque() bool {
	return n.Factor == 1 && n.Child.FullyOpaque()
}
func (n *AlphaNode) Evaluate(ctx *EvalContext) Vec4 {
	c := n.Child.Evaluate(ctx)
	return Vec4{R: c.R * n.Factor, G: c.G * n.Factor, B: c.B * n.Factor, A: c.A * n.Factor}
}
func (n *AlphaNode) WriteInstructions(out *InstructionWriter) {
	n.Child.WriteInstructions(out)
	out.emitAlpha(n.Factor)
}

// PremultiplyNode multiplies its child's rgb channels by its alpha.
type PremultiplyNode struct {
	Child Node
}

func NewPremultiply(child Node) *PremultiplyNode { return &PremultiplyNode{Child: child} }

func (n *PremultiplyNode) Op() Op           { return OpPremultiply }
func (n *PremultiplyNode) Children() []Node { return []Node{n.Child} }
func (n *PremultiplyNode) WithChildren(c []Node) Node {
	if sameChildren(n.Children(), c) {
		return n
	}
	return &PremultiplyNode{Child: c[0]}
}
func (n *PremultiplyNode) FullyTransparent() bool { return n.Child.FullyTransparent() }
func (n *PremultiplyNode) FullyOpaque() bool      { return n.Child.FullyOpaque() }
func (n *PremultiplyNode) Evaluate(ctx *EvalContext) Vec4 {
	c := n.Child.Evaluate(ctx)
	return Vec4{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}
func (n *PremultiplyNode) WriteInstructions(out *InstructionWriter) {
	n.Child.WriteInstructions(out)
	out.emit(instrPremultiply, nil)
}

// UnpremultiplyNode divides its child's rgb channels by its alpha; if
// alpha is zero the result is all-zero, per spec §4.2's stack-evaluator
// contract.
type UnpremultiplyNode struct {
	Child Node
}

func NewUnpremultiply(child Node) *UnpremultiplyNode { return &UnpremultiplyNode{Child: child} }

func (n *UnpremultiplyNode) Op() Op           { return OpUnpremultiply }
func (n *UnpremultiplyNode) Children() []Node { return []Node{n.Child} }
func (n *UnpremultiplyNode) WithChildren(c []Node) Node {
	if sameChildren(n.Children(), c) {
		return n
	}
	return &UnpremultiplyNode{Child: c[0]}
}
func (n *UnpremultiplyNode) FullyTransparent() bool { return n.Child.FullyTransparent() }
func (n *UnpremultiplyNode) FullyOpaque() bool      { return n.Child.FullyOpaque() }
func (n *UnpremultiplyNode) Evaluate(ctx *EvalContext) Vec4 {
	c := n.Child.Evaluate(ctx)
	if c.A == 0 {
		return Vec4{}
	}
	return Vec4{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}
func (n *UnpremultiplyNode) WriteInstructions(out *InstructionWriter) {
	n.Child.WriteInstructions(out)
	out.emit(instrUnpremultiply, nil)
}

// ColorSpace tags the color space a ConvertColorSpaceNode converts
// between.
type ColorSpace uint8

const (
	SpaceSRGB ColorSpace = iota
	SpaceLinearSRGB
	SpaceOklab
	SpaceLinearDisplayP3
)

// ConvertColorSpaceNode converts its (unpremultiplied) child color from
// From to To. Programs compose this with Premultiply/Unpremultiply
// (spec's "Premultiply(f(Unpremultiply(x)))" pattern) rather than handling
// premultiplication internally, so algebraic simplification can fold
// matching conversions away; see ConvertColorSpace in pipeline.go.
type ConvertColorSpaceNode struct {
	Child  Node
	From   ColorSpace
	To     ColorSpace
}

func NewConvertColorSpace(child Node, from, to ColorSpace) *ConvertColorSpaceNode {
	return &ConvertColorSpaceNode{Child: child, From: from, To: to}
}

func (n *ConvertColorSpaceNode) Op() Op           { return OpConvertColorSpace }
func (n *ConvertColorSpaceNode) Children() []Node { return []Node{n.Child} }
func (n *ConvertColorSpaceNode) WithChildren(c []Node) Node {
	if sameChildren(n.Children(), c) {
		return n
	}
	return &ConvertColorSpaceNode{Child: c[0], From: n.From, To: n.To}
}
func (n *ConvertColorSpaceNode) FullyTransparent() bool { return n.Child.FullyTransparent() }
func (n *ConvertColorSpaceNode) FullyOpaque() bool      { return n.Child.FullyOpaque() }
func (n *ConvertColorSpaceNode) Evaluate(ctx *EvalContext) Vec4 {
	c := n.Child.Evaluate(ctx)
	return convertChannel(c, n.From, n.To)
}
func (n *ConvertColorSpaceNode) WriteInstructions(out *InstructionWriter) {
	n.Child.WriteInstructions(out)
	out.emitConvert(n.From, n.To)
}

// convertChannel converts c's rgb channels (alpha passes through
// unchanged) by routing through linear-sRGB as the common space, per
// internal/colorspace's conversion set.
func convertChannel(c Vec4, from, to ColorSpace) Vec4 {
	if from == to {
		return c
	}
	linear := toLinearSRGB(c, from)
	return fromLinearSRGB(linear, to)
}

func toLinearSRGB(c Vec4, space ColorSpace) colorspace.ColorF32 {
	cf := colorspace.ColorF32{R: c.R, G: c.G, B: c.B, A: c.A}
	switch space {
	case SpaceSRGB:
		return colorspace.SRGBToLinearColor(cf)
	case SpaceLinearSRGB:
		return cf
	case SpaceOklab:
		return colorspace.OklabToLinearSRGB(cf)
	case SpaceLinearDisplayP3:
		return colorspace.LinearP3ToLinearSRGB(cf)
	default:
		return cf
	}
}

func fromLinearSRGB(linear colorspace.ColorF32, space ColorSpace) Vec4 {
	var out colorspace.ColorF32
	switch space {
	case SpaceSRGB:
		out = colorspace.LinearToSRGBColor(linear)
	case SpaceLinearSRGB:
		out = linear
	case SpaceOklab:
		out = colorspace.LinearSRGBToOklab(linear)
	case SpaceLinearDisplayP3:
		out = colorspace.LinearSRGBToLinearP3(linear)
	default:
		out = linear
	}
	return Vec4{R: out.R, G: out.G, B: out.B, A: out.A}
}

// NormalDebugNode visualizes the face polygon's local edge normal as a
// color, for debugging CAG boundary geometry.
type NormalDebugNode struct{}

func NewNormalDebug() *NormalDebugNode { return &NormalDebugNode{} }

func (n *NormalDebugNode) Op() Op                     { return OpNormalDebug }
func (n *NormalDebugNode) Children() []Node           { return nil }
func (n *NormalDebugNode) WithChildren([]Node) Node    { return n }
func (n *NormalDebugNode) FullyTransparent() bool      { return false }
func (n *NormalDebugNode) FullyOpaque() bool           { return true }
func (n *NormalDebugNode) Evaluate(ctx *EvalContext) Vec4 {
	if len(ctx.FacePolygon) < 2 {
		return Vec4{A: 1}
	}
	a, b := ctx.FacePolygon[0], ctx.FacePolygon[1]
	dx, dy := b.X-a.X, b.Y-a.Y
	length := dx*dx + dy*dy
	if length == 0 {
		return Vec4{A: 1}
	}
	nx, ny := -dy, dx
	return Vec4{R: float32(nx*0.5 + 0.5), G: float32(ny*0.5 + 0.5), B: 1, A: 1}
}
func (n *NormalDebugNode) WriteInstructions(out *InstructionWriter) {
	out.emit(instrNormalDebug, nil)
}

// BarycentricChannel selects which barycentric coordinate a
// BarycentricNode visualizes.
type BarycentricChannel uint8

const (
	BarycentricU BarycentricChannel = iota
	BarycentricV
	BarycentricW
)

// BarycentricNode visualizes a face polygon's barycentric coordinates
// relative to its first three vertices, another CAG-debugging aid.
type BarycentricNode struct {
	Channel BarycentricChannel
}

func NewBarycentric(ch BarycentricChannel) *BarycentricNode {
	return &BarycentricNode{Channel: ch}
}

func (n *BarycentricNode) Op() Op                  { return OpBarycentric }
func (n *BarycentricNode) Children() []Node        { return nil }
func (n *BarycentricNode) WithChildren([]Node) Node { return n }
func (n *BarycentricNode) FullyTransparent() bool  { return false }
func (n *BarycentricNode) FullyOpaque() bool       { return true }
func (n *BarycentricNode) Evaluate(ctx *EvalContext) Vec4 {
	if len(ctx.FacePolygon) < 3 {
		return Vec4{A: 1}
	}
	u, v, w := barycentricOf(ctx.FacePolygon[0], ctx.FacePolygon[1], ctx.FacePolygon[2], ctx.Centroid)
	var val float64
	switch n.Channel {
	case BarycentricU:
		val = u
	case BarycentricV:
		val = v
	default:
		val = w
	}
	return Vec4{R: float32(val), G: float32(val), B: float32(val), A: 1}
}
func (n *BarycentricNode) WriteInstructions(out *InstructionWriter) {
	out.emitBarycentric(n.Channel)
}

func barycentricOf(a, b, c, p Point) (u, v, w float64) {
	v0x, v0y := b.X-a.X, b.Y-a.Y
	v1x, v1y := c.X-a.X, c.Y-a.Y
	v2x, v2y := p.X-a.X, p.Y-a.Y
	d00 := v0x*v0x + v0y*v0y
	d01 := v0x*v1x + v0y*v1y
	d11 := v1x*v1x + v1y*v1y
	d20 := v2x*v0x + v2y*v0y
	d21 := v2x*v1x + v2y*v1y
	denom := d00*d11 - d01*d01
	if denom == 0 {
		return 1, 0, 0
	}
	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	u = 1 - v - w
	return u, v, w
}

// DepthNode visualizes a constant per-face depth value, normalized to
// [0,1] by the caller before construction.
type DepthNode struct {
	Depth float32
}

func NewDepth(depth float32) *DepthNode { return &DepthNode{Depth: depth} }

func (n *DepthNode) Op() Op                  { return OpDepth }
func (n *DepthNode) Children() []Node        { return nil }
func (n *DepthNode) WithChildren([]Node) Node { return n }
func (n *DepthNode) FullyTransparent() bool  { return false }
func (n *DepthNode) FullyOpaque() bool       { return true }
func (n *DepthNode) Evaluate(*EvalContext) Vec4 {
	return Vec4{R: n.Depth, G: n.Depth, B: n.Depth, A: 1}
}
func (n *DepthNode) WriteInstructions(out *InstructionWriter) {
	out.emitDepth(n.Depth)
}

// ImageExtend selects how an ImageNode samples outside [0,1] texture
// coordinates.
type ImageExtend uint8

const (
	ImageExtendPad ImageExtend = iota
	ImageExtendRepeat
	ImageExtendReflect
)

// ImageFilter selects the reconstruction filter an ImageNode uses between
// samples.
type ImageFilter uint8

const (
	ImageFilterNearest ImageFilter = iota
	ImageFilterBilinear
)

// ImageSampler is the pixel source an ImageNode reads from; owned by the
// caller and read-only during rasterization, matching RenderPath and
// OutputRaster's lifetime contract.
type ImageSampler interface {
	// Sample returns the premultiplied color at normalized coordinate
	// (u,v), where (0,0) is the top-left corner and (1,1) the
	// bottom-right.
	Sample(u, v float64) Vec4
}

// ImageNode samples an image sampler through an affine transform, extend
// mode, and reconstruction filter.
type ImageNode struct {
	Sampler   ImageSampler
	Extend    ImageExtend
	Filter    ImageFilter
	Transform Transform
}

// Transform is a 2D affine transform (row-major 2x3).
type Transform struct {
	A, B, C, D, E, F float64
}

// Apply maps p through t.
func (t Transform) Apply(p Point) Point {
	return Point{X: t.A*p.X + t.C*p.Y + t.E, Y: t.B*p.X + t.D*p.Y + t.F}
}

func NewImage(sampler ImageSampler, extend ImageExtend, filter ImageFilter, transform Transform) *ImageNode {
	return &ImageNode{Sampler: sampler, Extend: extend, Filter: filter, Transform: transform}
}

func (n *ImageNode) Op() Op                  { return OpImage }
func (n *ImageNode) Children() []Node        { return nil }
func (n *ImageNode) WithChildren([]Node) Node { return n }
func (n *ImageNode) FullyTransparent() bool  { return false }
func (n *ImageNode) FullyOpaque() bool       { return false }
func (n *ImageNode) Evaluate(ctx *EvalContext) Vec4 {
	p := n.Transform.Apply(ctx.PixelCenter)
	u, v := applyExtend(p.X, n.Extend), applyExtend(p.Y, n.Extend)
	return n.Sampler.Sample(u, v)
}
func (n *ImageNode) WriteInstructions(out *InstructionWriter) {
	out.emitImage(n)
}

func applyExtend(t float64, extend ImageExtend) float64 {
	switch extend {
	case ImageExtendPad:
		if t < 0 {
			return 0
		}
		if t > 1 {
			return 1
		}
		return t
	case ImageExtendRepeat:
		f := t - float64(int64(t))
		if f < 0 {
			f += 1
		}
		return f
	case ImageExtendReflect:
		return reflectExtend(t)
	default:
		return t
	}
}
