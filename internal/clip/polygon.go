package clip

// EdgeCounts is the minX/minY/maxX/maxY edge-touch quadruple spec §4.3/§4.4/§6
// requires: each field counts how many boundary edges of the clipped polygon
// run along that side of box, oriented inward minus outward. The fine
// rasterizer pass uses these to add the closed-form contribution of strips
// that fully cover one dimension of a bin without re-integrating them.
type EdgeCounts struct {
	MinX, MinY, MaxX, MaxY int32
}

// side identifies one of the four AABB half-planes, in clip order.
type side int

const (
	sideMinX side = iota
	sideMaxX
	sideMinY
	sideMaxY
)

// ClipPolygonAABB clips poly (given as a CCW or CW-oriented vertex loop)
// against box using Sutherland-Hodgman, preserving winding, and returns the
// clipped polygon plus the edge-touch counts used by the analytic rasterizer.
//
// Adapted from the teacher's Cohen-Sutherland line clipper
// (internal/clip/edge_clipper.go's outcode/ClipLine machinery), generalized
// from a single-segment clip to a 4-plane Sutherland-Hodgman polygon clip.
func ClipPolygonAABB(poly []Point, box Rect) ([]Point, EdgeCounts) {
	if len(poly) == 0 {
		return nil, EdgeCounts{}
	}

	var counts EdgeCounts
	current := poly

	planes := [4]side{sideMinX, sideMaxX, sideMinY, sideMaxY}
	for _, s := range planes {
		current = clipAgainstSide(current, box, s, &counts)
		if len(current) == 0 {
			return nil, EdgeCounts{}
		}
	}
	return current, counts
}

func inside(p Point, box Rect, s side) bool {
	switch s {
	case sideMinX:
		return p.X >= box.X
	case sideMaxX:
		return p.X <= box.Right()
	case sideMinY:
		return p.Y >= box.Y
	default: // sideMaxY
		return p.Y <= box.Bottom()
	}
}

// intersectSide returns the point where segment a-b crosses the half-plane
// boundary for side s.
func intersectSide(a, b Point, box Rect, s side) Point {
	switch s {
	case sideMinX:
		t := (box.X - a.X) / (b.X - a.X)
		return Point{X: box.X, Y: a.Y + t*(b.Y-a.Y)}
	case sideMaxX:
		t := (box.Right() - a.X) / (b.X - a.X)
		return Point{X: box.Right(), Y: a.Y + t*(b.Y-a.Y)}
	case sideMinY:
		t := (box.Y - a.Y) / (b.Y - a.Y)
		return Point{X: a.X + t*(b.X-a.X), Y: box.Y}
	default: // sideMaxY
		t := (box.Bottom() - a.Y) / (b.Y - a.Y)
		return Point{X: a.X + t*(b.X-a.X), Y: box.Bottom()}
	}
}

// bumpCount records that a generated clip edge runs along side s, oriented
// inward (entering the box) or outward (leaving it).
func bumpCount(counts *EdgeCounts, s side, inward bool) {
	delta := int32(1)
	if !inward {
		delta = -1
	}
	switch s {
	case sideMinX:
		counts.MinX += delta
	case sideMaxX:
		counts.MaxX += delta
	case sideMinY:
		counts.MinY += delta
	case sideMaxY:
		counts.MaxY += delta
	}
}

func clipAgainstSide(poly []Point, box Rect, s side, counts *EdgeCounts) []Point {
	n := len(poly)
	if n == 0 {
		return nil
	}
	out := make([]Point, 0, n+2)
	prev := poly[n-1]
	prevIn := inside(prev, box, s)

	for _, cur := range poly {
		curIn := inside(cur, box, s)
		switch {
		case curIn && prevIn:
			out = append(out, cur)
		case curIn && !prevIn:
			ix := intersectSide(prev, cur, box, s)
			bumpCount(counts, s, true)
			out = append(out, ix, cur)
		case !curIn && prevIn:
			ix := intersectSide(prev, cur, box, s)
			bumpCount(counts, s, false)
			out = append(out, ix)
		}
		prev, prevIn = cur, curIn
	}
	return out
}
