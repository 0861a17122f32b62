package raster

import "github.com/gogpu/cag/internal/clip"

// polygonArea returns the signed area of poly via the shoelace formula;
// positive for CCW loops. Used both for Box-filter coverage weight and for
// face-boundary orientation checks during clipping.
func polygonArea(poly []clip.Point) float64 {
	if len(poly) < 3 {
		return 0
	}
	var sum float64
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// polygonCentroid returns poly's area centroid. Falls back to the simple
// vertex average for degenerate (near-zero-area) polygons, matching the
// clipped-sliver case the fine pass otherwise skips via a zero-weight
// short-circuit.
func polygonCentroid(poly []clip.Point) clip.Point {
	area := polygonArea(poly)
	if len(poly) == 0 {
		return clip.Point{}
	}
	if area == 0 {
		var sx, sy float64
		for _, p := range poly {
			sx += p.X
			sy += p.Y
		}
		n := float64(len(poly))
		return clip.Point{X: sx / n, Y: sy / n}
	}
	var cx, cy float64
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		cross := a.X*b.Y - b.X*a.Y
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	return clip.Point{X: cx / (6 * area), Y: cy / (6 * area)}
}

// boundingBox returns poly's axis-aligned bounding rect.
func boundingBox(poly []clip.Point) clip.Rect {
	if len(poly) == 0 {
		return clip.Rect{}
	}
	minX, minY := poly[0].X, poly[0].Y
	maxX, maxY := minX, minY
	for _, p := range poly[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return clip.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
