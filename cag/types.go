// Package cag implements the constructive-area-geometry arrangement engine:
// it turns a set of input polygonal paths into disjoint faces, each labeled
// with the winding number of every input path around it. The pipeline
// (snap, intersect, split, build boundaries, recover faces, evaluate
// winding, filter) mirrors the half-edge arrangement this module's render
// program and rasterizer consume.
//
// Grounded on the teacher's internal/raster edge/AET data shapes (same
// naming idiom for edge structs) generalized from scanline floats to exact
// rational arithmetic from this module's bigrat package.
package cag

import "github.com/gogpu/cag/bigrat"

// RenderPath is an input closed polygonal path plus a numeric id. It is
// owned by the caller and read only during rasterization.
type RenderPath struct {
	ID     int32
	Points []Point
}

// Point is a plain float64 input vertex, the unit paths are given in before
// snapping to the integer lattice.
type Point struct {
	X, Y float64
}

// IntegerEdge is a directed segment with 32-bit integer endpoints, produced
// by snapping an input path edge through the arrangement's toIntegerMatrix.
// Its coordinates are chosen to fit within a bound that keeps any two
// edges' cross-products inside a 128-bit signed intermediate.
type IntegerEdge struct {
	X0, Y0   int32
	X1, Y1   int32
	PathID   int32 // back-reference to the originating RenderPath
	EdgeID   int32 // index of this edge within its path

	Intersections []RationalIntersection // sorted by T
}

// RationalIntersection is a (t, point) pair: t is the parametric position
// along the owning IntegerEdge in [0,1], point is the exact rational
// coordinate of the intersection.
type RationalIntersection struct {
	T     bigrat.Rational
	Point bigrat.Point
}

// direction classifies a half-edge's outgoing direction into one of eight
// compass octants before exact angular comparison, so that the common case
// (two half-edges in different octants) short-circuits the cross-product
// computation the tie-break needs.
type direction int

// halfEdgeIndex refers to a RationalHalfEdge by its position in an
// Arrangement's half-edge arena. Spec §9 calls for an arena of 32-bit
// indices rather than pointers so the structure (which is inherently
// cyclic: twin and next references) stays flat and GC-friendly.
type halfEdgeIndex int32

const invalidHalfEdge halfEdgeIndex = -1

// RationalHalfEdge is one oriented half of a split IntegerEdge sub-segment.
// Every half-edge has exactly one twin (the oppositely oriented half of the
// same sub-segment) and one next (the next half-edge CCW around its
// end-vertex, continuing the boundary it belongs to).
type RationalHalfEdge struct {
	Start, End bigrat.Point

	OwningEdge int32 // index into the Arrangement's IntegerEdge slice
	Twin       halfEdgeIndex
	Next       halfEdgeIndex

	dir direction // octant of (End - Start), cached for angular sort
}

// Vector returns the exact displacement from Start to End.
func (h RationalHalfEdge) Vector() bigrat.Vector {
	return h.End.Sub(h.Start)
}

// boundaryKind classifies a RationalBoundary by the sign of its signed
// area: CCW loops are outer, CW loops are inner (holes).
type boundaryKind int

const (
	boundaryOuter boundaryKind = iota
	boundaryInner
)

// RationalBoundary is a cyclic ordered sequence of half-edges bounding a
// planar region.
type RationalBoundary struct {
	HalfEdges []halfEdgeIndex
	Kind      boundaryKind
	// SignedArea is twice the polygon area (shoelace sum), exact and
	// sign-carrying; its sign determines Kind.
	SignedArea bigrat.Rational
}

// RationalFace is a connected open region: one outer boundary (absent only
// for the unbounded face) and zero or more inner boundaries (holes).
type RationalFace struct {
	Outer  int // index into Arrangement.Boundaries, or -1 for the unbounded face
	Inners []int

	// Winding maps each input path id to the winding number of that path
	// around any interior point of this face (constant by the
	// Jordan-curve theorem).
	Winding map[int32]int
}

// IsUnbounded reports whether f is the arrangement's distinguished
// unbounded face.
func (f RationalFace) IsUnbounded() bool {
	return f.Outer < 0
}
