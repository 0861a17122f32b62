package cag

import (
	"math/big"
	"sort"

	"github.com/gogpu/cag/bigrat"
)

// aabb is an axis-aligned bounding box over snapped integer coordinates,
// used to cheaply reject edge pairs before the exact intersection test.
type aabb struct {
	minX, minY, maxX, maxY int32
}

func boundsOf(e IntegerEdge) aabb {
	b := aabb{minX: e.X0, maxX: e.X0, minY: e.Y0, maxY: e.Y0}
	if e.X1 < b.minX {
		b.minX = e.X1
	}
	if e.X1 > b.maxX {
		b.maxX = e.X1
	}
	if e.Y1 < b.minY {
		b.minY = e.Y1
	}
	if e.Y1 > b.maxY {
		b.maxY = e.Y1
	}
	return b
}

func (a aabb) overlaps(o aabb) bool {
	return a.minX <= o.maxX && a.maxX >= o.minX && a.minY <= o.maxY && a.maxY >= o.minY
}

// findIntersections tests every unordered pair of edges whose AABBs
// overlap for a segment-segment intersection, using exact integer
// cross-products (via math/big so the intermediate never overflows
// regardless of the snap bound), and appends a RationalIntersection to
// both edges on a hit. Spec §4.1 step 2.
func findIntersections(edges []IntegerEdge) {
	bounds := make([]aabb, len(edges))
	for i := range edges {
		bounds[i] = boundsOf(edges[i])
	}

	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			if !bounds[i].overlaps(bounds[j]) {
				continue
			}
			intersectPair(&edges[i], &edges[j])
		}
	}

	for i := range edges {
		sort.Slice(edges[i].Intersections, func(a, b int) bool {
			return edges[i].Intersections[a].T.Cmp(edges[i].Intersections[b].T) < 0
		})
	}
}

// cross2 returns the exact z-component of the cross product of (x1,y1)
// and (x2,y2), as a big.Int.
func cross2(x1, y1, x2, y2 int64) *big.Int {
	a := new(big.Int).Mul(big.NewInt(x1), big.NewInt(y2))
	b := new(big.Int).Mul(big.NewInt(y1), big.NewInt(x2))
	return a.Sub(a, b)
}

// intersectPair tests segments e and f for intersection using the exact
// parametric line-intersection formula, and if they cross (or collinearly
// overlap), appends the hit to both edges' intersection lists.
//
// p = e.P0 + t*d1, q = f.P0 + u*d2, d1 = e.P1-e.P0, d2 = f.P1-f.P0.
// t = cross(f.P0-e.P0, d2) / cross(d1, d2); u = cross(f.P0-e.P0, d1) / cross(d1, d2).
func intersectPair(e, f *IntegerEdge) {
	d1x, d1y := int64(e.X1-e.X0), int64(e.Y1-e.Y0)
	d2x, d2y := int64(f.X1-f.X0), int64(f.Y1-f.Y0)

	denom := cross2(d1x, d1y, d2x, d2y)
	if denom.Sign() == 0 {
		intersectCollinear(e, f)
		return
	}

	ex, ey := int64(f.X0-e.X0), int64(f.Y0-e.Y0)
	tNum := cross2(ex, ey, d2x, d2y)
	uNum := cross2(ex, ey, d1x, d1y)

	// Reject unless both t and u lie in [0,1]; compare numerators against
	// the (possibly negative) denominator by cross-multiplying against a
	// positive denominator sign.
	tR := bigrat.NewFromBigInt(tNum, denom)
	uR := bigrat.NewFromBigInt(uNum, denom)

	if tR.Sign() < 0 || tR.Cmp(bigrat.One) > 0 {
		return
	}
	if uR.Sign() < 0 || uR.Cmp(bigrat.One) > 0 {
		return
	}

	px := bigrat.NewFromBigInt(big.NewInt(int64(e.X0)), big.NewInt(1)).Add(tR.Mul(bigrat.NewFromBigInt(big.NewInt(d1x), big.NewInt(1))))
	py := bigrat.NewFromBigInt(big.NewInt(int64(e.Y0)), big.NewInt(1)).Add(tR.Mul(bigrat.NewFromBigInt(big.NewInt(d1y), big.NewInt(1))))
	point := bigrat.NewPoint(px, py)

	e.Intersections = append(e.Intersections, RationalIntersection{T: tR, Point: point})
	f.Intersections = append(f.Intersections, RationalIntersection{T: uR, Point: point})
}

// intersectCollinear handles the degenerate parallel case: if the two
// segments lie on the same line and their projections overlap, the shared
// overlap endpoints are recorded as intersections on both edges (spec
// §4.1's tie-break for collinear stacks).
func intersectCollinear(e, f *IntegerEdge) {
	recordCollinearOverlap(e, f)
	recordCollinearOverlap(f, e)
}

// recordCollinearOverlap records on e, in e's own parameterization, the
// endpoints of its collinear overlap with f that fall strictly inside e.
func recordCollinearOverlap(e, f *IntegerEdge) {
	d1x, d1y := int64(e.X1-e.X0), int64(e.Y1-e.Y0)
	fx, fy := int64(f.X0-e.X0), int64(f.Y0-e.Y0)
	if cross2(d1x, d1y, fx, fy).Sign() != 0 {
		return // parallel but not on the same line
	}

	length2 := d1x*d1x + d1y*d1y
	if length2 == 0 {
		return
	}

	paramOf := func(x, y int64) bigrat.Rational {
		num := x*d1x + y*d1y
		return bigrat.New(num, length2)
	}

	t0 := bigrat.Zero
	t1 := bigrat.One
	u0 := paramOf(int64(f.X0-e.X0), int64(f.Y0-e.Y0))
	u1 := paramOf(int64(f.X1-e.X0), int64(f.Y1-e.Y0))

	lo, hi := u0, u1
	if lo.Cmp(hi) > 0 {
		lo, hi = hi, lo
	}
	if hi.Cmp(t0) < 0 || lo.Cmp(t1) > 0 {
		return
	}
	if lo.Cmp(t0) < 0 {
		lo = t0
	}
	if hi.Cmp(t1) > 0 {
		hi = t1
	}
	if lo.Equal(t0) && hi.Equal(t1) {
		return // fully coincident overlap spans the whole edge; nothing to split
	}

	recordOverlapEndpoint(e, lo)
	recordOverlapEndpoint(e, hi)
}

func recordOverlapEndpoint(e *IntegerEdge, t bigrat.Rational) {
	if t.Sign() <= 0 || t.Cmp(bigrat.One) >= 0 {
		return
	}
	x := bigrat.NewFromBigInt(big.NewInt(int64(e.X0)), big.NewInt(1)).Add(t.Mul(bigrat.NewFromBigInt(big.NewInt(int64(e.X1-e.X0)), big.NewInt(1))))
	y := bigrat.NewFromBigInt(big.NewInt(int64(e.Y0)), big.NewInt(1)).Add(t.Mul(bigrat.NewFromBigInt(big.NewInt(int64(e.Y1-e.Y0)), big.NewInt(1))))
	e.Intersections = append(e.Intersections, RationalIntersection{T: t, Point: bigrat.NewPoint(x, y)})
}
