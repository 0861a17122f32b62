package cag

import (
	"errors"
	"testing"

	"github.com/gogpu/cag/bigrat"
)

func unitSquare(id int32) RenderPath {
	return RenderPath{
		ID: id,
		Points: []Point{
			{X: 0, Y: 0},
			{X: 1, Y: 0},
			{X: 1, Y: 1},
			{X: 0, Y: 1},
		},
	}
}

func buildArrangement(t *testing.T, paths []RenderPath, predicate FacePredicate) *Arrangement {
	t.Helper()
	a, err := Snap(paths)
	if err != nil {
		t.Fatalf("Snap: %v", err)
	}
	if err := a.FindIntersections(); err != nil {
		t.Fatalf("FindIntersections: %v", err)
	}
	if err := a.Build(predicate); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return a
}

func TestSingleSquareProducesOneFace(t *testing.T) {
	a := buildArrangement(t, []RenderPath{unitSquare(0)}, nil)

	if len(a.Faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(a.Faces))
	}
	f := a.Faces[0]
	if f.IsUnbounded() {
		t.Fatal("the single square's interior should not be the unbounded face")
	}
	if w := f.Winding[0]; w == 0 {
		t.Errorf("expected non-zero winding for path 0, got %d", w)
	}
}

func TestHalfEdgeParity(t *testing.T) {
	a := buildArrangement(t, []RenderPath{unitSquare(0)}, nil)
	arena := a.HalfEdgeArena()

	for i, h := range arena {
		twin := arena[h.Twin]
		if twin.Twin != halfEdgeIndex(i) {
			t.Errorf("half-edge %d: twin(twin(h)) != h", i)
		}
		if !twin.Start.X.Equal(h.End.X) || !twin.Start.Y.Equal(h.End.Y) {
			t.Errorf("half-edge %d: twin.start != h.end", i)
		}
	}
}

func TestBoundaryClosureAndAreaSign(t *testing.T) {
	a := buildArrangement(t, []RenderPath{unitSquare(0)}, nil)
	arena := a.HalfEdgeArena()

	for _, b := range a.Boundaries {
		sumX, sumY := bigrat.Zero, bigrat.Zero
		for _, idx := range b.HalfEdges {
			h := arena[idx]
			v := h.Vector()
			sumX = sumX.Add(v.X)
			sumY = sumY.Add(v.Y)
		}
		if !sumX.Equal(bigrat.Zero) || !sumY.Equal(bigrat.Zero) {
			t.Errorf("boundary direction vectors should sum to the origin, got (%s, %s)", sumX, sumY)
		}

		switch b.Kind {
		case boundaryOuter:
			if b.SignedArea.Sign() <= 0 {
				t.Errorf("outer boundary should have positive signed area, got %s", b.SignedArea)
			}
		case boundaryInner:
			if b.SignedArea.Sign() >= 0 {
				t.Errorf("inner boundary should have negative signed area, got %s", b.SignedArea)
			}
		}
	}
}

func TestWindingConstantAcrossBoundedFaces(t *testing.T) {
	a := buildArrangement(t, []RenderPath{unitSquare(0)}, NonZeroWinding)
	for _, f := range a.Faces {
		if f.IsUnbounded() {
			continue
		}
		for id, w := range f.Winding {
			if w != 1 && w != -1 {
				t.Errorf("expected unit winding for path %d in a single convex square, got %d", id, w)
			}
		}
	}
}

func TestDegenerateNoFacesSurviveFilter(t *testing.T) {
	a, err := Snap([]RenderPath{unitSquare(0)})
	if err != nil {
		t.Fatalf("Snap: %v", err)
	}
	if err := a.FindIntersections(); err != nil {
		t.Fatalf("FindIntersections: %v", err)
	}
	err = a.Build(func(winding map[int32]int) bool { return false })
	if err == nil {
		t.Fatal("expected a Degenerate error when every face is filtered out")
	}
	var cagErr *Error
	if !errors.As(err, &cagErr) {
		t.Fatalf("expected *cag.Error, got %T", err)
	}
	if cagErr.Kind != Degenerate {
		t.Errorf("expected Degenerate kind, got %v", cagErr.Kind)
	}
}

func TestSnapRejectsTooFewVertices(t *testing.T) {
	_, err := Snap([]RenderPath{{ID: 0, Points: []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}}})
	if err == nil {
		t.Fatal("expected an error for a path with fewer than 3 vertices")
	}
}

func TestOverlappingSquaresProduceMultipleFaces(t *testing.T) {
	left := unitSquare(0)
	right := RenderPath{
		ID: 1,
		Points: []Point{
			{X: 0.5, Y: 0.5},
			{X: 1.5, Y: 0.5},
			{X: 1.5, Y: 1.5},
			{X: 0.5, Y: 1.5},
		},
	}
	a := buildArrangement(t, []RenderPath{left, right}, NonZeroWinding)

	if len(a.Faces) < 2 {
		t.Fatalf("expected at least 2 faces from two overlapping squares, got %d", len(a.Faces))
	}
}
