package program

import "github.com/gogpu/cag/internal/blend"

// opcode identifies one stack-evaluator instruction. Spec §4.2 describes
// the stream as a "postfix byte/opcode stream"; this module represents
// each instruction as a small tagged struct rather than raw bytes, since
// several operators (gradients, images, filters) carry operand payloads
// too large to pack compactly without a real wire-format spec driving it
// — the struct form keeps WriteInstructions/Eval symmetric and testable
// while remaining a genuine postfix instruction stream.
type opcode uint8

const (
	instrColor opcode = iota
	instrPathBoolean
	instrAlpha
	instrPremultiply
	instrUnpremultiply
	instrConvert
	instrNormalDebug
	instrBarycentric
	instrDepth
	instrImage
	instrBlend
	instrLinearBlend
	instrGradient
	instrFilter
)

// instruction is one entry of the postfix stream. Only the fields
// relevant to op are populated; this is the "immediate operand block"
// spec §4.2 describes sitting alongside each opcode.
type instruction struct {
	op opcode

	color      Vec4
	pathID     int32
	factor     float32
	fromSpace  ColorSpace
	toSpace    ColorSpace
	barycentricChannel BarycentricChannel
	depth      float32
	image      *ImageNode
	blendMode  blend.Mode
	linearBlend *LinearBlendNode
	gradient   gradientSource
	matrix     [20]float32
}

// gradientSource lets instructions.go's Eval re-invoke a gradient node's T
// closure and extend/accuracy settings without needing to serialize a
// context-dependent function into the instruction stream.
type gradientSource interface {
	gradientHeaderValue() gradientHeader
	gradientStopsValue() []GradientStop
	gradientT(ctx *EvalContext) float64
}

// InstructionWriter accumulates a program's compiled postfix instruction
// stream.
type InstructionWriter struct {
	Instructions []instruction
}

func (w *InstructionWriter) emit(op opcode, fill func(*instruction)) {
	ins := instruction{op: op}
	if fill != nil {
		fill(&ins)
	}
	w.Instructions = append(w.Instructions, ins)
}

func (w *InstructionWriter) emitColor(v Vec4) {
	w.emit(instrColor, func(i *instruction) { i.color = v })
}

func (w *InstructionWriter) emitPathBoolean(pathID int32) {
	w.emit(instrPathBoolean, func(i *instruction) { i.pathID = pathID })
}

func (w *InstructionWriter) emitAlpha(factor float32) {
	w.emit(instrAlpha, func(i *instruction) { i.factor = factor })
}

func (w *InstructionWriter) emitConvert(from, to ColorSpace) {
	w.emit(instrConvert, func(i *instruction) { i.fromSpace = from; i.toSpace = to })
}

func (w *InstructionWriter) emitBarycentric(ch BarycentricChannel) {
	w.emit(instrBarycentric, func(i *instruction) { i.barycentricChannel = ch })
}

func (w *InstructionWriter) emitDepth(depth float32) {
	w.emit(instrDepth, func(i *instruction) { i.depth = depth })
}

func (w *InstructionWriter) emitImage(n *ImageNode) {
	w.emit(instrImage, func(i *instruction) { i.image = n })
}

func (w *InstructionWriter) emitBlend(mode blend.Mode) {
	w.emit(instrBlend, func(i *instruction) { i.blendMode = mode })
}

func (w *InstructionWriter) emitLinearBlend(n *LinearBlendNode) {
	w.emit(instrLinearBlend, func(i *instruction) { i.linearBlend = n })
}

func (w *InstructionWriter) emitGradient(src gradientSource) {
	w.emit(instrGradient, func(i *instruction) { i.gradient = src })
}

func (w *InstructionWriter) emitFilter(matrix [20]float32) {
	w.emit(instrFilter, func(i *instruction) { i.matrix = matrix })
}

// Program is a compiled postfix instruction stream, named so packages
// outside program (e.g. raster, which caches one per RenderableFace) can
// hold a value of this type without needing to name the unexported
// instruction element type.
type Program []instruction

// Eval runs p against ctx; equivalent to calling the package-level Eval
// function with p as the stream.
func (p Program) Eval(ctx *EvalContext) Vec4 { return Eval(p, ctx) }

// Compile runs n's WriteInstructions into a fresh InstructionWriter and
// returns the resulting stream.
func Compile(n Node) Program {
	w := &InstructionWriter{}
	n.WriteInstructions(w)
	return w.Instructions
}

// stackCapacity bounds the fixed-capacity Vec4 stack spec §4.2 calls for;
// render programs in this module are shallow trees (depth well under this)
// so a fixed array avoids a heap allocation per evaluation.
const stackCapacity = 64

// Eval executes stream against ctx using a fixed-capacity stack evaluator,
// and must produce a result bit-identical to the tree form's Evaluate for
// the same program and context (spec §8's "instruction evaluation equals
// tree evaluation" invariant).
func Eval(stream []instruction, ctx *EvalContext) Vec4 {
	var stack [stackCapacity]Vec4
	sp := 0
	push := func(v Vec4) { stack[sp] = v; sp++ }
	pop := func() Vec4 { sp--; return stack[sp] }

	for _, ins := range stream {
		switch ins.op {
		case instrColor:
			push(ins.color)
		case instrPathBoolean:
			if ctx.Winding[ins.pathID] != 0 {
				push(Vec4{R: 1, G: 1, B: 1, A: 1})
			} else {
				push(Vec4{})
			}
		case instrAlpha:
			c := pop()
			push(Vec4{R: c.R * ins.factor, G: c.G * ins.factor, B: c.B * ins.factor, A: c.A * ins.factor})
		case instrPremultiply:
			c := pop()
			push(Vec4{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A})
		case instrUnpremultiply:
			c := pop()
			if c.A == 0 {
				push(Vec4{})
			} else {
				push(Vec4{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A})
			}
		case instrConvert:
			c := pop()
			push(convertChannel(c, ins.fromSpace, ins.toSpace))
		case instrNormalDebug:
			push((&NormalDebugNode{}).Evaluate(ctx))
		case instrBarycentric:
			push((&BarycentricNode{Channel: ins.barycentricChannel}).Evaluate(ctx))
		case instrDepth:
			push(Vec4{R: ins.depth, G: ins.depth, B: ins.depth, A: 1})
		case instrImage:
			push(ins.image.Evaluate(ctx))
		case instrBlend:
			a := pop()
			b := pop()
			push(blend.Blend(ins.blendMode, a, b))
		case instrLinearBlend:
			o := pop()
			z := pop()
			t := clampUnit(ins.linearBlend.T(ctx))
			push(ratioBlend(z, o, t))
		case instrGradient:
			t := ins.gradient.gradientT(ctx)
			push(sampleGradient(ins.gradient.gradientStopsValue(), t))
		case instrFilter:
			c := pop()
			push(applyFilterMatrix(c, ins.matrix))
		}
	}
	if sp == 0 {
		return Vec4{}
	}
	return stack[sp-1]
}

func applyFilterMatrix(c Vec4, matrix [20]float32) Vec4 {
	var u Vec4
	if c.A != 0 {
		u = Vec4{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
	}
	in := [5]float32{u.R, u.G, u.B, u.A, 1}
	var out [4]float32
	for row := 0; row < 4; row++ {
		var sum float32
		for col := 0; col < 5; col++ {
			sum += matrix[row*5+col] * in[col]
		}
		out[row] = sum
	}
	return Vec4{R: out[0] * out[3], G: out[1] * out[3], B: out[2] * out[3], A: out[3]}
}
