package blend

// Porter-Duff compositing operators, float32 premultiplied alpha.
// Formulas match the 1984 "Compositing Digital Images" algebra; see blend.go
// for the mode enum these implement.

func blendClear(_, _ Vec4) Vec4 { return Vec4{} }

func blendSource(src, _ Vec4) Vec4 { return src }

func blendDestination(_, dst Vec4) Vec4 { return dst }

// blendSourceOver: S + D*(1-Sa). The default compositing mode.
func blendSourceOver(src, dst Vec4) Vec4 {
	inv := 1 - src.A
	return Vec4{
		R: src.R + dst.R*inv,
		G: src.G + dst.G*inv,
		B: src.B + dst.B*inv,
		A: src.A + dst.A*inv,
	}
}

// blendDestinationOver: S*(1-Da) + D.
func blendDestinationOver(src, dst Vec4) Vec4 {
	inv := 1 - dst.A
	return Vec4{
		R: src.R*inv + dst.R,
		G: src.G*inv + dst.G,
		B: src.B*inv + dst.B,
		A: src.A*inv + dst.A,
	}
}

// blendSourceIn: S*Da.
func blendSourceIn(src, dst Vec4) Vec4 {
	return Vec4{src.R * dst.A, src.G * dst.A, src.B * dst.A, src.A * dst.A}
}

// blendDestinationIn: D*Sa.
func blendDestinationIn(src, dst Vec4) Vec4 {
	return Vec4{dst.R * src.A, dst.G * src.A, dst.B * src.A, dst.A * src.A}
}

// blendSourceOut: S*(1-Da).
func blendSourceOut(src, dst Vec4) Vec4 {
	inv := 1 - dst.A
	return Vec4{src.R * inv, src.G * inv, src.B * inv, src.A * inv}
}

// blendDestinationOut: D*(1-Sa).
func blendDestinationOut(src, dst Vec4) Vec4 {
	inv := 1 - src.A
	return Vec4{dst.R * inv, dst.G * inv, dst.B * inv, dst.A * inv}
}

// blendSourceAtop: S*Da + D*(1-Sa).
func blendSourceAtop(src, dst Vec4) Vec4 {
	inv := 1 - src.A
	return Vec4{
		R: src.R*dst.A + dst.R*inv,
		G: src.G*dst.A + dst.G*inv,
		B: src.B*dst.A + dst.B*inv,
		A: dst.A,
	}
}

// blendDestinationAtop: S*(1-Da) + D*Sa.
func blendDestinationAtop(src, dst Vec4) Vec4 {
	inv := 1 - dst.A
	return Vec4{
		R: src.R*inv + dst.R*src.A,
		G: src.G*inv + dst.G*src.A,
		B: src.B*inv + dst.B*src.A,
		A: src.A,
	}
}

// blendXor: S*(1-Da) + D*(1-Sa).
func blendXor(src, dst Vec4) Vec4 {
	invDa := 1 - dst.A
	invSa := 1 - src.A
	return Vec4{
		R: src.R*invDa + dst.R*invSa,
		G: src.G*invDa + dst.G*invSa,
		B: src.B*invDa + dst.B*invSa,
		A: src.A*invDa + dst.A*invSa,
	}
}

// blendPlus: S + D, clamped to 1.
func blendPlus(src, dst Vec4) Vec4 {
	return Vec4{
		R: clamp01(src.R + dst.R),
		G: clamp01(src.G + dst.G),
		B: clamp01(src.B + dst.B),
		A: clamp01(src.A + dst.A),
	}
}
