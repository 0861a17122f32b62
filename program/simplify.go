package program

import "github.com/gogpu/cag/internal/blend"

// Simplify rewrites n bottom-up into an equivalent, often smaller, program:
// fully-transparent subtrees collapse to a single ColorNode{}, and a Stack
// or Blend(SourceOver) whose upper layer is fully opaque drops everything
// beneath it, since it can never show through. Simplification must preserve
// evaluation: simplified(p).Evaluate(ctx) == p.Evaluate(ctx) for every ctx
// (spec §8's soundness property) — each rewrite below only fires when the
// dropped subtree provably cannot influence the result.
func Simplify(n Node) Node {
	children := n.Children()
	if len(children) == 0 {
		return simplifyLeaf(n)
	}

	newChildren := make([]Node, len(children))
	changed := false
	for i, c := range children {
		sc := Simplify(c)
		newChildren[i] = sc
		if sc != c {
			changed = true
		}
	}
	current := n
	if changed {
		current = n.WithChildren(newChildren)
	}
	return simplifyNode(current)
}

func simplifyLeaf(n Node) Node {
	if n.FullyTransparent() {
		if cn, ok := n.(*ColorNode); ok && cn.Value == (Vec4{}) {
			return n
		}
		return transparentColor
	}
	return n
}

var transparentColor = NewColor(Vec4{})

func simplifyNode(n Node) Node {
	if n.FullyTransparent() {
		if cn, ok := n.(*ColorNode); ok && cn.Value == (Vec4{}) {
			return n
		}
		return transparentColor
	}

	switch t := n.(type) {
	case *BlendNode:
		return simplifyBlend(t)
	case *StackNode:
		return simplifyStack(t)
	case *AlphaNode:
		if t.Factor == 1 {
			return t.Child
		}
		if inner, ok := t.Child.(*AlphaNode); ok {
			return Simplify(&AlphaNode{Child: inner.Child, Factor: t.Factor * inner.Factor})
		}
		return t
	case *PremultiplyNode:
		if inner, ok := t.Child.(*UnpremultiplyNode); ok {
			return inner.Child
		}
		return t
	case *UnpremultiplyNode:
		if inner, ok := t.Child.(*PremultiplyNode); ok {
			return inner.Child
		}
		return t
	case *ConvertColorSpaceNode:
		if t.From == t.To {
			return t.Child
		}
		if inner, ok := t.Child.(*ConvertColorSpaceNode); ok && inner.To == t.From {
			return Simplify(&ConvertColorSpaceNode{Child: inner.Child, From: inner.From, To: t.To})
		}
		return t
	default:
		return n
	}
}

func simplifyBlend(n *BlendNode) Node {
	if n.Mode == blend.Source && n.A.FullyOpaque() {
		return n.A
	}
	if n.Mode == blend.SourceOver {
		if n.A.FullyOpaque() {
			return n.A
		}
		if n.B.FullyTransparent() {
			return n.A
		}
		if n.A.FullyTransparent() {
			return n.B
		}
	}
	return n
}

func simplifyStack(n *StackNode) Node {
	layers := make([]Node, 0, len(n.Layers))
	for _, l := range n.Layers {
		if l.FullyTransparent() {
			continue
		}
		layers = append(layers, l)
		if l.FullyOpaque() {
			break
		}
	}
	if len(layers) == 0 {
		return transparentColor
	}
	if len(layers) == 1 {
		return layers[0]
	}
	if len(layers) == len(n.Layers) {
		return n
	}
	return &StackNode{Layers: layers}
}
