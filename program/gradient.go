package program

import "sort"

// extendT maps t into [0,1] according to extend, per spec §4.2's formulas:
// Pad clamps, Repeat takes the fractional part, Reflect mirrors back and
// forth.
func extendT(t float64, extend ExtendMode) float64 {
	switch extend {
	case ExtendPad:
		return clampUnit(t)
	case ExtendRepeat:
		f := t - float64(int64(t))
		if f < 0 {
			f += 1
		}
		return f
	case ExtendReflect:
		return reflectExtend(t)
	default:
		return clampUnit(t)
	}
}

// reflectExtend implements spec §4.2's reflect formula: section = i mod
// 2N; if section < N then section else 2N-section-1, generalized to
// continuous t by operating on a single period N=1 (t in "half-periods").
func reflectExtend(t float64) float64 {
	period := t - 2*float64(int64(t/2))
	if period < 0 {
		period += 2
	}
	if period <= 1 {
		return period
	}
	return 2 - period
}

// sampleGradient locates the stop interval containing t (already mapped
// into [0,1] by extendT) and blends the two adjacent stops.
func sampleGradient(stops []GradientStop, t float64) Vec4 {
	if len(stops) == 0 {
		return Vec4{}
	}
	if len(stops) == 1 {
		return stops[0].Color
	}
	tf := float32(t)
	if tf <= stops[0].Ratio {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if tf >= last.Ratio {
		return last.Color
	}

	i := sort.Search(len(stops), func(i int) bool { return stops[i].Ratio > tf }) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(stops)-1 {
		return stops[len(stops)-1].Color
	}
	a, b := stops[i], stops[i+1]
	span := b.Ratio - a.Ratio
	if span <= 0 {
		return a.Color
	}
	u := float64((tf - a.Ratio) / span)
	return ratioBlend(a.Color, b.Color, u)
}

// ratioBlend linearly interpolates between a and b in premultiplied space
// by u in [0,1].
func ratioBlend(a, b Vec4, u float64) Vec4 {
	uf := float32(u)
	inv := 1 - uf
	return Vec4{
		R: a.R*inv + b.R*uf,
		G: a.G*inv + b.G*uf,
		B: a.B*inv + b.B*uf,
		A: a.A*inv + b.A*uf,
	}
}

// beforeRatioCount returns the number of stops with Ratio <= t, the
// 16-bit search hint spec §6's gradient header packs.
func beforeRatioCount(stops []GradientStop, t float32) uint16 {
	n := sort.Search(len(stops), func(i int) bool { return stops[i].Ratio > t })
	return uint16(n)
}

// gradientKind distinguishes the linear/radial header shape.
type gradientKind uint8

const (
	gradientLinear gradientKind = iota
	gradientRadial
)

// gradientHeader is the in-memory form of spec §6's packed gradient
// header; encode packs it into the documented bit layout.
type gradientHeader struct {
	kind     gradientKind
	radial   RadialGradientKind
	extend   ExtendMode
	accuracy uint8
}

// encode packs h and the stop count's before-ratio hint into a u32
// per spec §6: low 16 bits before-ratio count, next 2 bits gradient type
// (radial only; 0 for linear), next 2 bits extend mode, next bits
// accuracy (2 for linear, 3 for radial).
func (h gradientHeader) encode(beforeRatio uint16) uint32 {
	v := uint32(beforeRatio)
	typeField := uint32(0)
	if h.kind == gradientRadial {
		typeField = uint32(h.radial)
	}
	v |= typeField << 16
	v |= uint32(h.extend) << 18
	v |= uint32(h.accuracy) << 20
	return v
}
