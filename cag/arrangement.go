package cag

// Arrangement holds every intermediate structure the 7-step pipeline
// (spec §4.1) builds: snapped edges, the half-edge arena, boundaries, and
// the recovered faces. All of it is owned by a single Build call and does
// not escape it, other than through the Faces the caller keeps.
type Arrangement struct {
	Matrix integerMatrix
	Edges  []IntegerEdge
	arena  []RationalHalfEdge

	Boundaries []RationalBoundary
	Faces      []RationalFace
}

// Snap performs step 1 of the pipeline: compute toIntegerMatrix from the
// input paths' bounding box and emit one IntegerEdge per path edge.
//
// Grounded on the teacher's internal/path flattening code, which computes
// a bounding box and fits an affine transform into a target viewport; here
// the target is a signed integer range rather than a float viewport.
func Snap(paths []RenderPath) (*Arrangement, error) {
	m, err := computeIntegerMatrix(paths)
	if err != nil {
		return nil, err
	}
	edges, err := snapPaths(paths, m)
	if err != nil {
		return nil, err
	}
	return &Arrangement{Matrix: m, Edges: edges}, nil
}

// FindIntersections performs step 2: pairwise AABB-filtered exact
// intersection detection between every edge. The degenerate
// single-threaded case (spec's default) is a plain double loop; see
// parallel_bridge.go for the workgroup-dispatched variant built on top of
// the parallel package.
func (a *Arrangement) FindIntersections() error {
	findIntersections(a.Edges)
	return nil
}

// Build runs steps 3 through 7 of the pipeline (edge splitting, boundary
// construction, face recovery, winding evaluation, and filtering) and
// stores the result on the Arrangement. FindIntersections must have been
// called first.
func (a *Arrangement) Build(predicate FacePredicate) error {
	if predicate == nil {
		predicate = NonZeroWinding
	}

	a.arena = splitEdges(a.Edges)
	if len(a.arena) == 0 {
		return newError("Build", Degenerate, ErrNoFaces)
	}

	linkNext(a.arena)
	a.Boundaries = buildBoundaries(a.arena)

	faces := recoverFaces(a.Boundaries, a.arena)
	evaluateWinding(faces, a.Boundaries, a.arena, a.Edges, a.pathIDs())

	filtered := filterFaces(faces, predicate)
	if len(filtered) == 0 {
		a.Faces = nil
		return newError("Build", Degenerate, ErrNoFaces)
	}
	a.Faces = filtered
	return nil
}

// pathIDs returns the distinct path ids present across a's edges, in
// first-seen order.
func (a *Arrangement) pathIDs() []int32 {
	seen := make(map[int32]bool)
	var ids []int32
	for _, e := range a.Edges {
		if !seen[e.PathID] {
			seen[e.PathID] = true
			ids = append(ids, e.PathID)
		}
	}
	return ids
}

// BoundaryPolygon materializes boundary b as a plain vertex loop in input
// (float64) space, for handoff to the clip and raster packages.
func (a *Arrangement) BoundaryPolygon(b RationalBoundary) []Point {
	poly := make([]Point, 0, len(b.HalfEdges))
	for _, idx := range b.HalfEdges {
		poly = append(poly, a.Matrix.Inverse(a.arena[idx].Start))
	}
	return poly
}

// HalfEdgeArena exposes the underlying arena for packages (raster) that
// need to walk a face's boundaries directly; callers must not mutate it.
func (a *Arrangement) HalfEdgeArena() []RationalHalfEdge {
	return a.arena
}
