package cag

import "github.com/gogpu/cag/bigrat"

// recoverFaces groups boundaries into faces: each outer boundary starts a
// bounded face, gains the inner boundaries grouped under it, and any inner
// boundary with no containing outer becomes a hole of the unbounded face.
// Spec §4.1 step 5.
func recoverFaces(boundaries []RationalBoundary, arena []RationalHalfEdge) []RationalFace {
	outerOf, unboundedInners := groupInnerBoundaries(boundaries, arena)

	var faces []RationalFace
	for i, b := range boundaries {
		if b.Kind != boundaryOuter {
			continue
		}
		faces = append(faces, RationalFace{
			Outer:  i,
			Inners: outerOf[i],
		})
	}
	if len(unboundedInners) > 0 {
		faces = append(faces, RationalFace{
			Outer:  -1,
			Inners: unboundedInners,
		})
	}
	return faces
}

// evaluateWinding computes, for every face and every distinct path id
// present in edges, the winding number of that path around an interior
// sample point of the face. Spec §4.1 step 6.
func evaluateWinding(faces []RationalFace, boundaries []RationalBoundary, arena []RationalHalfEdge, edges []IntegerEdge, pathIDs []int32) {
	for i := range faces {
		f := &faces[i]
		f.Winding = make(map[int32]int, len(pathIDs))
		if f.IsUnbounded() {
			for _, id := range pathIDs {
				f.Winding[id] = 0
			}
			continue
		}
		sample := interiorSample(arena, boundaries[f.Outer])
		for _, id := range pathIDs {
			f.Winding[id] = windingNumber(edges, sample, id)
		}
	}
}

// interiorSample derives a sample point for the boundary: the midpoint of
// its first half-edge nudged 1/1000 of the way toward the average of its
// vertices, which keeps it off the boundary itself without needing a
// general point-in-polygon search. For a convex boundary the point lies
// inside; for a non-convex boundary it is not guaranteed to.
func interiorSample(arena []RationalHalfEdge, b RationalBoundary) bigrat.Point {
	h := arena[b.HalfEdges[0]]
	mid := bigrat.NewPoint(
		h.Start.X.Add(h.End.X).Div(bigrat.New(2, 1)),
		h.Start.Y.Add(h.End.Y).Div(bigrat.New(2, 1)),
	)

	centroid := centroidOf(arena, b)
	nudge := bigrat.New(1, 1000)
	toward := centroid.Sub(mid)
	return bigrat.Point{
		X: mid.X.Add(toward.X.Mul(nudge)),
		Y: mid.Y.Add(toward.Y.Mul(nudge)),
	}
}

func centroidOf(arena []RationalHalfEdge, b RationalBoundary) bigrat.Point {
	sumX, sumY := bigrat.Zero, bigrat.Zero
	n := bigrat.NewFromInt64(int64(len(b.HalfEdges)))
	for _, idx := range b.HalfEdges {
		h := arena[idx]
		sumX = sumX.Add(h.Start.X)
		sumY = sumY.Add(h.Start.Y)
	}
	return bigrat.NewPoint(sumX.Div(n), sumY.Div(n))
}

// windingNumber computes the winding number of the closed polygon formed
// by pathID's edges around point p, by an exact signed crossing count
// along the ray p -> (+infinity, p.Y).
func windingNumber(edges []IntegerEdge, p bigrat.Point, pathID int32) int {
	w := 0
	for _, e := range edges {
		if e.PathID != pathID {
			continue
		}
		a := rationalOf(e.X0, e.Y0)
		c := rationalOf(e.X1, e.Y1)
		if a.Y.Cmp(p.Y) <= 0 {
			if c.Y.Cmp(p.Y) > 0 && isLeft(a, c, p).Sign() > 0 {
				w++
			}
		} else {
			if c.Y.Cmp(p.Y) <= 0 && isLeft(a, c, p).Sign() < 0 {
				w--
			}
		}
	}
	return w
}

// isLeft returns a positive value if p is left of the directed line a->c,
// zero if collinear, negative if right: the standard exact winding-number
// crossing test (Sunday's algorithm), generalized here from floats to
// bigrat.Rational.
func isLeft(a, c, p bigrat.Point) bigrat.Rational {
	return c.Sub(a).Cross(p.Sub(a))
}

// FacePredicate decides whether a face with the given per-path winding map
// survives into the renderable set. Spec §4.1 step 7.
type FacePredicate func(winding map[int32]int) bool

// NonZeroWinding is the default single-path predicate: a face is inside if
// any path has a non-zero winding number around it.
func NonZeroWinding(winding map[int32]int) bool {
	for _, w := range winding {
		if w != 0 {
			return true
		}
	}
	return false
}

// EvenOdd treats each path's parity (winding mod 2) as the fill rule and
// includes the face if an odd number of paths cover it with odd parity.
func EvenOdd(winding map[int32]int) bool {
	odd := 0
	for _, w := range winding {
		if w%2 != 0 {
			odd++
		}
	}
	return odd%2 == 1
}

// filterFaces returns the subset of faces for which predicate returns true.
func filterFaces(faces []RationalFace, predicate FacePredicate) []RationalFace {
	var out []RationalFace
	for _, f := range faces {
		if predicate(f.Winding) {
			out = append(out, f)
		}
	}
	return out
}
