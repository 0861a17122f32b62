package program

import (
	"testing"

	"github.com/gogpu/cag/internal/blend"
)

func evalBoth(t *testing.T, n Node, ctx *EvalContext) (tree, instr Vec4) {
	t.Helper()
	tree = n.Evaluate(ctx)
	instr = Eval(Compile(n), ctx)
	return
}

func approxVec4(a, b Vec4, eps float32) bool {
	d := func(x, y float32) float32 {
		if x > y {
			return x - y
		}
		return y - x
	}
	return d(a.R, b.R) <= eps && d(a.G, b.G) <= eps && d(a.B, b.B) <= eps && d(a.A, b.A) <= eps
}

func TestInstructionEvaluationMatchesTreeEvaluation(t *testing.T) {
	ctx := &EvalContext{
		PixelCenter: Point{X: 0.5, Y: 0.5},
		Centroid:    Point{X: 0.5, Y: 0.5},
		FacePolygon: []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		Winding:     map[int32]int{0: 1, 1: 0},
	}

	red := NewColor(Vec4{R: 1, A: 1})
	blue := NewColor(Vec4{B: 1, A: 1})

	cases := []Node{
		red,
		NewPathBoolean(0),
		NewPathBoolean(1),
		NewAlpha(red, 0.5),
		NewPremultiply(NewColor(Vec4{R: 1, G: 1, B: 1, A: 0.5})),
		NewUnpremultiply(NewColor(Vec4{R: 0.25, A: 0.5})),
		NewConvertColorSpace(red, SpaceSRGB, SpaceLinearSRGB),
		NewNormalDebug(),
		NewBarycentric(BarycentricU),
		NewDepth(0.75),
		NewBlend(blend.SourceOver, red, blue),
		NewStack(red, blue),
		NewLinearBlend(AccuracyUnsplitCentroid, red, blue, func(ctx *EvalContext) float64 { return 0.5 }),
		NewLinearGradient(AccuracyUnsplitCentroid, ExtendPad,
			[]GradientStop{{Ratio: 0, Color: Vec4{R: 1, A: 1}}, {Ratio: 1, Color: Vec4{B: 1, A: 1}}},
			func(ctx *EvalContext) float64 { return 0.25 }),
		NewRadialGradient(RadialCircular, AccuracyUnsplitCentroid, ExtendRepeat,
			[]GradientStop{{Ratio: 0, Color: Vec4{R: 1, A: 1}}, {Ratio: 1, Color: Vec4{G: 1, A: 1}}},
			func(ctx *EvalContext) float64 { return 1.25 }),
		NewFilter(red, [20]float32{
			0, 0, 0, 0, 0,
			0, 1, 0, 0, 0,
			0, 0, 1, 0, 0,
			0, 0, 0, 1, 0,
		}),
	}

	for i, n := range cases {
		tree, instr := evalBoth(t, n, ctx)
		if !approxVec4(tree, instr, 1e-6) {
			t.Errorf("case %d (%T): tree=%v instr=%v", i, n, tree, instr)
		}
	}
}

func TestSimplifyAlphaZeroIsTransparent(t *testing.T) {
	n := NewAlpha(NewColor(Vec4{R: 1, A: 1}), 0)
	s := Simplify(n)
	if !s.FullyTransparent() {
		t.Fatalf("expected simplified node to be fully transparent, got %#v", s)
	}
}

func TestSimplifyNestedAlphaCollapses(t *testing.T) {
	n := NewAlpha(NewAlpha(NewColor(Vec4{R: 1, A: 1}), 0.5), 0.5)
	s := Simplify(n)
	a, ok := s.(*AlphaNode)
	if !ok {
		t.Fatalf("expected *AlphaNode, got %T", s)
	}
	if a.Factor != 0.25 {
		t.Fatalf("expected combined factor 0.25, got %v", a.Factor)
	}
}

func TestSimplifyOpaqueOverDropsBelow(t *testing.T) {
	opaque := NewColor(Vec4{R: 1, G: 1, B: 1, A: 1})
	n := NewBlend(blend.SourceOver, opaque, NewColor(Vec4{G: 1, A: 1}))
	s := Simplify(n)
	if s != Node(opaque) {
		t.Fatalf("expected simplification to drop the bottom layer, got %#v", s)
	}
}

func TestSimplifyStackDropsBelowOpaqueLayer(t *testing.T) {
	top := NewColor(Vec4{R: 1, A: 1})
	bottom := NewColor(Vec4{G: 1, A: 1})
	transparent := NewColor(Vec4{})
	n := NewStack(transparent, top, bottom)
	s := Simplify(n)
	if s != Node(top) {
		t.Fatalf("expected stack to collapse to its only visible opaque layer, got %#v", s)
	}
}

func TestSimplifyPreservesEvaluation(t *testing.T) {
	ctx := &EvalContext{Winding: map[int32]int{}}
	opaque := NewColor(Vec4{R: 1, G: 0.5, B: 0.25, A: 1})
	transparent := NewColor(Vec4{})
	progs := []Node{
		NewStack(transparent, NewAlpha(opaque, 1), transparent),
		NewBlend(blend.SourceOver, opaque, NewColor(Vec4{B: 1, A: 1})),
		NewAlpha(NewAlpha(opaque, 0.5), 0.5),
		NewPremultiply(NewUnpremultiply(opaque)),
	}
	for i, p := range progs {
		before := p.Evaluate(ctx)
		after := Simplify(p).Evaluate(ctx)
		if !approxVec4(before, after, 1e-6) {
			t.Errorf("case %d: evaluation changed after simplify: before=%v after=%v", i, before, after)
		}
	}
}

func TestGradientExtendModes(t *testing.T) {
	stops := []GradientStop{{Ratio: 0, Color: Vec4{R: 1, A: 1}}, {Ratio: 1, Color: Vec4{B: 1, A: 1}}}

	pad := NewLinearGradient(AccuracyUnsplitCentroid, ExtendPad, stops, func(*EvalContext) float64 { return 1.5 })
	if c := pad.Evaluate(&EvalContext{}); c != (Vec4{B: 1, A: 1}) {
		t.Errorf("pad extend beyond 1 should clamp to last stop, got %v", c)
	}

	repeat := NewLinearGradient(AccuracyUnsplitCentroid, ExtendRepeat, stops, func(*EvalContext) float64 { return 1.0 })
	if c := repeat.Evaluate(&EvalContext{}); c != (Vec4{R: 1, A: 1}) {
		t.Errorf("repeat extend at exactly 1.0 should wrap to t=0, got %v", c)
	}

	reflect := NewRadialGradient(RadialCircular, AccuracyUnsplitCentroid, ExtendReflect, stops, func(*EvalContext) float64 { return 1.5 })
	got := reflect.Evaluate(&EvalContext{})
	want := sampleGradient(stops, 0.5)
	if !approxVec4(got, want, 1e-6) {
		t.Errorf("reflect extend at t=1.5 should mirror to t=0.5, got %v want %v", got, want)
	}
}

func TestGradientSanityTwoStopBoundary(t *testing.T) {
	stops := []GradientStop{
		{Ratio: 0, Color: Vec4{R: 1, A: 1}},
		{Ratio: 1, Color: Vec4{B: 1, A: 1}},
	}
	n := NewLinearGradient(AccuracyUnsplitCentroid, ExtendPad, stops, func(ctx *EvalContext) float64 {
		return ctx.PixelCenter.X
	})

	left := n.Evaluate(&EvalContext{PixelCenter: Point{X: 0}})
	right := n.Evaluate(&EvalContext{PixelCenter: Point{X: 1}})
	mid := n.Evaluate(&EvalContext{PixelCenter: Point{X: 0.5}})

	if left != (Vec4{R: 1, A: 1}) {
		t.Errorf("left edge should be pure red, got %v", left)
	}
	if right != (Vec4{B: 1, A: 1}) {
		t.Errorf("right edge should be pure blue, got %v", right)
	}
	if !approxVec4(mid, Vec4{R: 0.5, B: 0.5, A: 1}, 1e-6) {
		t.Errorf("midpoint should be an even red/blue mix, got %v", mid)
	}
}

func TestColorSpaceRoundTripThroughOklab(t *testing.T) {
	orig := NewColor(Vec4{R: 0.6, G: 0.2, B: 0.8, A: 1})
	toOklab := NewConvertColorSpace(orig, SpaceSRGB, SpaceOklab)
	back := NewConvertColorSpace(toOklab, SpaceOklab, SpaceSRGB)

	ctx := &EvalContext{}
	got := back.Evaluate(ctx)
	want := orig.Evaluate(ctx)
	if !approxVec4(got, want, 1e-3) {
		t.Errorf("sRGB -> Oklab -> sRGB round trip drifted: got %v want %v", got, want)
	}
}

func TestWithChildrenReturnsSameNodeWhenUnchanged(t *testing.T) {
	child := NewColor(Vec4{R: 1, A: 1})
	n := NewAlpha(child, 0.5)
	if n.WithChildren(n.Children()) != Node(n) {
		t.Fatal("WithChildren with identical children should return the receiver unchanged")
	}
}
