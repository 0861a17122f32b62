package cag

import (
	"sort"

	"github.com/gogpu/cag/bigrat"
	lvlathcore "github.com/katalvlaran/lvlath/graph/core"
	"github.com/katalvlaran/lvlath/graph/algorithms"
)

// vertexKey identifies a vertex by its exact rational coordinates; two
// points compare equal as keys iff their Rationals are equal by
// cross-multiplication, which is why the key is built from the reduced
// string form rather than from float64 coordinates.
type vertexKey string

func keyOf(p bigrat.Point) vertexKey {
	return vertexKey(p.X.String() + "," + p.Y.String())
}

// linkNext assigns the Next index of every half-edge in arena, completing
// the cyclic boundary structure. Spec §4.1 step 4.
func linkNext(arena []RationalHalfEdge) {
	outgoing := make(map[vertexKey][]halfEdgeIndex)
	for i := range arena {
		k := keyOf(arena[i].Start)
		outgoing[k] = append(outgoing[k], halfEdgeIndex(i))
	}

	for k, group := range outgoing {
		sort.Slice(group, func(a, b int) bool {
			return angularLess(arena[group[a]], arena[group[b]])
		})
		outgoing[k] = group
	}

	for i := range arena {
		h := &arena[i]
		twin := arena[h.Twin]
		k := keyOf(twin.Start) // == h.End
		group := outgoing[k]
		pos := indexOf(group, h.Twin)
		nextPos := (pos + 1) % len(group)
		h.Next = group[nextPos]
	}
}

func indexOf(group []halfEdgeIndex, target halfEdgeIndex) int {
	for i, g := range group {
		if g == target {
			return i
		}
	}
	return -1
}

// angularLess orders two half-edges sharing a start vertex by their
// direction, CCW starting from the positive x-axis: first by octant (a
// cheap total preorder), then within the same octant by the exact sign of
// their cross product so ties never depend on floating-point angle.
func angularLess(a, b RationalHalfEdge) bool {
	if a.dir != b.dir {
		return a.dir < b.dir
	}
	cross := a.Vector().Cross(b.Vector())
	return cross.Sign() > 0
}

// buildBoundaries walks the linked half-edge arena into cyclic boundaries,
// classifying each as outer (CCW, positive signed area) or inner (CW).
// Spec §4.1 step 5 (the boundary-walk half).
func buildBoundaries(arena []RationalHalfEdge) []RationalBoundary {
	visited := make([]bool, len(arena))
	var boundaries []RationalBoundary

	for i := range arena {
		if visited[i] {
			continue
		}
		var loop []halfEdgeIndex
		cur := halfEdgeIndex(i)
		for {
			if visited[cur] {
				break
			}
			visited[cur] = true
			loop = append(loop, cur)
			cur = arena[cur].Next
		}
		if len(loop) == 0 {
			continue
		}
		area := signedArea(arena, loop)
		kind := boundaryOuter
		if area.Sign() < 0 {
			kind = boundaryInner
		}
		boundaries = append(boundaries, RationalBoundary{
			HalfEdges:  loop,
			Kind:       kind,
			SignedArea: area,
		})
	}
	return boundaries
}

// signedArea computes twice the polygon area of loop via the shoelace
// formula over exact rationals.
func signedArea(arena []RationalHalfEdge, loop []halfEdgeIndex) bigrat.Rational {
	sum := bigrat.Zero
	for _, idx := range loop {
		h := arena[idx]
		term := h.Start.X.Mul(h.End.Y).Sub(h.End.X.Mul(h.Start.Y))
		sum = sum.Add(term)
	}
	return sum
}

// groupInnerBoundaries associates each inner boundary with the outer
// boundary that most tightly contains it. The containment itself — which
// outer, if any, holds a given inner — can only be decided by the exact
// point-in-polygon test against every candidate outer (keeping the
// smallest-area container, since that is the tightest enclosing one); no
// graph traversal can substitute for that geometric test. Once every
// inner boundary's container edge is known, though, grouping inners by
// their container is exactly a connected-components-from-a-source
// problem, so that half is handed to lvlath's graph/core and
// graph/algorithms rather than re-walked by hand: each inner contributes
// one edge to its container (or to a synthetic "unbounded" vertex when no
// outer contains it), and outerOf/unboundedInners are read back from
// DFS's visitation order starting at each outer/"unbounded" vertex in
// turn, not accumulated separately during the containment loop.
//
// Grounded on the teacher's lvlath prim_kruskal.go idiom of building a
// plain graph and reducing a grouping problem to a traversal over it;
// lvlath does not export a standalone union-find type, so the containment
// edges themselves (rather than an explicit disjoint-set) carry the
// grouping here.
func groupInnerBoundaries(boundaries []RationalBoundary, arena []RationalHalfEdge) (outerOf map[int][]int, unboundedInners []int) {
	const unboundedNodeID = "unbounded"

	g := lvlathcore.NewGraph(false, false)
	nodeToBoundary := make(map[string]int, len(boundaries))

	var outerIdx, innerIdx []int
	for i, b := range boundaries {
		id := boundaryNodeID(i)
		g.AddVertex(&lvlathcore.Vertex{ID: id})
		nodeToBoundary[id] = i
		if b.Kind == boundaryOuter {
			outerIdx = append(outerIdx, i)
		} else {
			innerIdx = append(innerIdx, i)
		}
	}
	g.AddVertex(&lvlathcore.Vertex{ID: unboundedNodeID})

	for _, ii := range innerIdx {
		container := -1
		for _, oi := range outerIdx {
			if boundaryContains(arena, boundaries[oi], representativePoint(arena, boundaries[ii])) {
				if container < 0 || boundaries[oi].SignedArea.Cmp(boundaries[container].SignedArea) < 0 {
					container = oi
				}
			}
		}
		if container < 0 {
			g.AddEdge(boundaryNodeID(ii), unboundedNodeID, 1)
			continue
		}
		g.AddEdge(boundaryNodeID(ii), boundaryNodeID(container), 1)
	}

	// Each outer (or "unbounded") vertex sits at the center of a one-level
	// star of inner vertices; DFS from it visits exactly that outer/
	// unbounded's group, which is read back into outerOf/unboundedInners
	// here instead of being tracked a second time during the loop above.
	outerOf = make(map[int][]int)
	for _, oi := range outerIdx {
		res, err := algorithms.DFS(g, boundaryNodeID(oi), &algorithms.DFSOptions{})
		if err != nil {
			continue
		}
		for _, v := range res.Order {
			if v.ID == boundaryNodeID(oi) {
				continue
			}
			outerOf[oi] = append(outerOf[oi], nodeToBoundary[v.ID])
		}
	}
	if res, err := algorithms.DFS(g, unboundedNodeID, &algorithms.DFSOptions{}); err == nil {
		for _, v := range res.Order {
			if v.ID == unboundedNodeID {
				continue
			}
			unboundedInners = append(unboundedInners, nodeToBoundary[v.ID])
		}
	}

	return outerOf, unboundedInners
}

func boundaryNodeID(i int) string {
	const letters = "0123456789abcdefghijklmnopqrstuvwxyz"
	if i == 0 {
		return "b0"
	}
	buf := make([]byte, 0, 8)
	n := i
	for n > 0 {
		buf = append([]byte{letters[n%36]}, buf...)
		n /= 36
	}
	return "b" + string(buf)
}

// representativePoint picks a stable interior-ish point of a boundary (its
// first vertex) to use as the probe for containment tests; exact
// containment of the whole boundary only requires one point, since
// boundaries never self-intersect once the arrangement has split all
// edges at their intersections.
func representativePoint(arena []RationalHalfEdge, b RationalBoundary) bigrat.Point {
	return arena[b.HalfEdges[0]].Start
}

// boundaryContains reports whether point p lies strictly inside the
// polygon traced by boundary b, via an exact-arithmetic ray cast to the
// right along increasing X at p.Y.
func boundaryContains(arena []RationalHalfEdge, b RationalBoundary, p bigrat.Point) bool {
	crossings := 0
	for _, idx := range b.HalfEdges {
		h := arena[idx]
		a, c := h.Start, h.End
		if (a.Y.Cmp(p.Y) > 0) != (c.Y.Cmp(p.Y) > 0) {
			// x of intersection of edge a-c with horizontal line y=p.Y
			t := p.Y.Sub(a.Y).Div(c.Y.Sub(a.Y))
			xAtY := a.X.Add(t.Mul(c.X.Sub(a.X)))
			if xAtY.Cmp(p.X) > 0 {
				crossings++
			}
		}
	}
	return crossings%2 == 1
}
