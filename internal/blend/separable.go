package blend

import "math"

// Separable W3C blend modes: each operates per-channel on unpremultiplied
// values, then is composited under the standard formula
//
//	Result = (1-Sa)*D + (1-Da)*S + Sa*Da*B(Cs,Cb)
//
// matching the teacher's separableBlend helper, generalized from byte/div255
// arithmetic to float32 in [0,1].

func separable(chanFn func(s, d float32) float32) Func {
	return func(src, dst Vec4) Vec4 {
		if src.A == 0 {
			return dst
		}
		if dst.A == 0 {
			return src
		}
		sur, sug, sub := src.R/src.A, src.G/src.A, src.B/src.A
		dur, dug, dub := dst.R/dst.A, dst.G/dst.A, dst.B/dst.A

		br := chanFn(sur, dur)
		bg := chanFn(sug, dug)
		bb := chanFn(sub, dub)

		invSa := 1 - src.A
		invDa := 1 - dst.A
		saDa := src.A * dst.A

		return Vec4{
			R: dst.R*invSa + src.R*invDa + saDa*br,
			G: dst.G*invSa + src.G*invDa + saDa*bg,
			B: dst.B*invSa + src.B*invDa + saDa*bb,
			A: src.A + dst.A*invSa,
		}
	}
}

func multiplyChan(s, d float32) float32 { return s * d }

func screenChan(s, d float32) float32 { return 1 - (1-s)*(1-d) }

func overlayChan(s, d float32) float32 { return hardLightChan(d, s) }

func darkenChan(s, d float32) float32 {
	if s < d {
		return s
	}
	return d
}

func lightenChan(s, d float32) float32 {
	if s > d {
		return s
	}
	return d
}

func colorDodgeChan(s, d float32) float32 {
	if d == 0 {
		return 0
	}
	if s == 1 {
		return 1
	}
	return clamp01(d / (1 - s))
}

func colorBurnChan(s, d float32) float32 {
	if d == 1 {
		return 1
	}
	if s == 0 {
		return 0
	}
	return 1 - clamp01((1-d)/s)
}

func hardLightChan(s, d float32) float32 {
	if s <= 0.5 {
		return multiplyChan(2*s, d)
	}
	return screenChan(2*s-1, d)
}

func softLightChan(s, d float32) float32 {
	if s <= 0.5 {
		return d - (1-2*s)*d*(1-d)
	}
	var g float32
	if d <= 0.25 {
		g = ((16*d-12)*d + 4) * d
	} else {
		g = float32(math.Sqrt(float64(d)))
	}
	return d + (2*s-1)*(g-d)
}

func differenceChan(s, d float32) float32 {
	if s > d {
		return s - d
	}
	return d - s
}

func exclusionChan(s, d float32) float32 { return s + d - 2*s*d }
