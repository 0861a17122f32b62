package cag

import "github.com/gogpu/cag/bigrat"

// splitEdges walks every IntegerEdge's sorted intersection list and emits
// one RationalHalfEdge pair (forward and its twin) per sub-segment,
// including the trivial whole-edge case when an edge has no intersections.
// Spec §4.1 step 3.
func splitEdges(edges []IntegerEdge) []RationalHalfEdge {
	var arena []RationalHalfEdge

	for edgeIdx := range edges {
		e := &edges[edgeIdx]
		start := rationalOf(e.X0, e.Y0)
		end := rationalOf(e.X1, e.Y1)

		points := make([]bigrat.Point, 0, len(e.Intersections)+2)
		points = append(points, start)
		for _, in := range e.Intersections {
			points = append(points, in.Point)
		}
		points = append(points, end)

		for i := 0; i+1 < len(points); i++ {
			a, b := points[i], points[i+1]
			if a.X.Equal(b.X) && a.Y.Equal(b.Y) {
				continue // zero-length sub-segment; skip per spec §4.1
			}
			fwdIdx := halfEdgeIndex(len(arena))
			arena = append(arena, RationalHalfEdge{
				Start: a, End: b,
				OwningEdge: int32(edgeIdx),
				Twin:       fwdIdx + 1,
				Next:       invalidHalfEdge,
				dir:        octantOf(b.Sub(a)),
			})
			bwdIdx := halfEdgeIndex(len(arena))
			arena = append(arena, RationalHalfEdge{
				Start: b, End: a,
				OwningEdge: int32(edgeIdx),
				Twin:       fwdIdx,
				Next:       invalidHalfEdge,
				dir:        octantOf(a.Sub(b)),
			})
			_ = bwdIdx
		}
	}

	return arena
}

// octantOf buckets a direction vector into one of eight compass octants by
// the signs of its components and which component has greater magnitude,
// giving a cheap total preorder that the angular sort refines with exact
// cross-product comparisons only among vectors in the same octant.
func octantOf(v bigrat.Vector) direction {
	xSign := v.X.Sign()
	ySign := v.Y.Sign()

	switch {
	case xSign > 0 && ySign >= 0:
		if v.X.Cmp(v.Y) >= 0 {
			return 0
		}
		return 1
	case xSign <= 0 && ySign > 0:
		if v.Y.Cmp(v.X.Neg()) >= 0 {
			return 2
		}
		return 3
	case xSign < 0 && ySign <= 0:
		if v.X.Neg().Cmp(v.Y.Neg()) >= 0 {
			return 4
		}
		return 5
	default: // xSign >= 0 && ySign < 0
		if v.Y.Neg().Cmp(v.X) >= 0 {
			return 6
		}
		return 7
	}
}
