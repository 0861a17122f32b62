package cag

import (
	"math"
	"math/big"

	"github.com/gogpu/cag/bigrat"
)

// snapBound is the signed-integer half-range (±2^20) input coordinates are
// snapped into, leaving headroom so that a cross-product of two edges'
// components (each up to 2*snapBound) fits inside a 128-bit signed
// intermediate with room to spare for the subsequent subtraction.
const snapBound = 1 << 20

// integerMatrix is the affine transform (scale, then translate) that maps
// the input paths' bounding box into [-snapBound, snapBound] on each axis.
// Its inverse is recorded so a caller can map results back to input space.
type integerMatrix struct {
	scale                float64
	translateX, translateY float64
}

// apply maps an input-space point to a snapped integer point.
func (m integerMatrix) apply(p Point) (int32, int32, bool) {
	x := (p.X - m.translateX) * m.scale
	y := (p.Y - m.translateY) * m.scale
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	xi := math.Round(x)
	yi := math.Round(y)
	if xi < -snapBound || xi > snapBound || yi < -snapBound || yi > snapBound {
		return 0, 0, false
	}
	return int32(xi), int32(yi), true
}

// Inverse maps a snapped rational point back to input (float64) space.
func (m integerMatrix) Inverse(p bigrat.Point) Point {
	x := p.X.Float64()/m.scale + m.translateX
	y := p.Y.Float64()/m.scale + m.translateY
	return Point{X: x, Y: y}
}

// computeIntegerMatrix derives the affine transform mapping the bounding
// box of every point across paths into the snapped integer range. Returns
// an InvalidInput error if there are no usable points, or if any
// coordinate is non-finite.
func computeIntegerMatrix(paths []RenderPath) (integerMatrix, error) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	seen := false

	for _, path := range paths {
		if len(path.Points) < 3 {
			return integerMatrix{}, newError("computeIntegerMatrix", InvalidInput, ErrTooFewVertices)
		}
		for _, p := range path.Points {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				return integerMatrix{}, newError("computeIntegerMatrix", InvalidInput, ErrNonFiniteCoordinate)
			}
			seen = true
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if !seen {
		return integerMatrix{}, newError("computeIntegerMatrix", InvalidInput, ErrTooFewVertices)
	}

	width := maxX - minX
	height := maxY - minY
	span := math.Max(width, height)
	if span == 0 {
		// A single degenerate point; pick an arbitrary unit scale so the
		// matrix is still invertible.
		span = 1
	}

	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	scale := (2 * snapBound * 0.999) / span

	return integerMatrix{scale: scale, translateX: cx, translateY: cy}, nil
}

// snapPaths converts every edge of every path into an IntegerEdge via m,
// assigning stable per-path EdgeID values.
func snapPaths(paths []RenderPath, m integerMatrix) ([]IntegerEdge, error) {
	var edges []IntegerEdge
	for _, path := range paths {
		n := len(path.Points)
		for i := 0; i < n; i++ {
			a := path.Points[i]
			b := path.Points[(i+1)%n]
			x0, y0, ok0 := m.apply(a)
			x1, y1, ok1 := m.apply(b)
			if !ok0 || !ok1 {
				return nil, newError("snapPaths", NumericRange, ErrIntegerOverflow)
			}
			if x0 == x1 && y0 == y1 {
				continue // zero-length edge after snapping; skip per spec §4.1 failure semantics
			}
			edges = append(edges, IntegerEdge{
				X0: x0, Y0: y0, X1: x1, Y1: y1,
				PathID: path.ID,
				EdgeID: int32(i),
			})
		}
	}
	return edges, nil
}

// rationalOf converts an integer-snapped endpoint into an exact bigrat
// point (denominator 1).
func rationalOf(x, y int32) bigrat.Point {
	return bigrat.NewPoint(
		bigrat.NewFromBigInt(big.NewInt(int64(x)), big.NewInt(1)),
		bigrat.NewFromBigInt(big.NewInt(int64(y)), big.NewInt(1)),
	)
}
