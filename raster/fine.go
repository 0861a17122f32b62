package raster

import (
	"github.com/gogpu/cag/internal/clip"
	"github.com/gogpu/cag/program"
)

// FinePass runs spec §4.4 step 2 over bins (as produced by CoarsePass):
// for each bin, for each face touching it, either writes a full-region
// output directly (isFullArea && isConstant) or clips the face to each
// pixel's filter support and accumulates an analytically-weighted sample.
//
// Grounded on gogpu/gg's internal/gpu/tilecompute/fine.go per-bin sampling
// loop and internal/raster's AnalyticFiller trapezoidal-coverage idiom,
// generalized from one fill rule to arbitrary RenderableFace programs.
func FinePass(cfg TwoPassConfig, faces []RenderableFace, bins [][]binEntry, out OutputRaster) {
	binsWide := cfg.binsWide()
	radius := filterRadius(cfg.FilterKind, float64(cfg.FilterScale))

	for idx, entries := range bins {
		if len(entries) == 0 {
			continue
		}
		bx := idx % binsWide
		by := idx / binsWide
		rect := binRect(cfg, bx, by)

		x0 := clampInt(int(rect.X), 0, cfg.RasterWidth)
		x1 := clampInt(int(rect.Right()), 0, cfg.RasterWidth)
		y0 := clampInt(int(rect.Y), 0, cfg.RasterHeight)
		y1 := clampInt(int(rect.Bottom()), 0, cfg.RasterHeight)

		for _, entry := range entries {
			face := &faces[entry.faceIndex]

			if entry.isFullArea && face.Flags.IsConstant {
				color := face.Compiled.Eval(&program.EvalContext{Winding: face.Winding})
				out.AddClientFullRegion(color, x0, y0, x1-x0, y1-y0)
				continue
			}

			for py := y0; py < y1; py++ {
				for px := x0; px < x1; px++ {
					weight, centroid, clippedOuter := pixelCoverage(entry, px, py, radius, cfg.FilterKind, float32(cfg.FilterScale))
					if weight <= 0 {
						continue
					}
					ctx := &program.EvalContext{
						PixelCenter: program.Point{X: float64(px) + 0.5, Y: float64(py) + 0.5},
						PixelBounds: program.Rect{X: float64(px), Y: float64(py), W: 1, H: 1},
						Centroid:    program.Point{X: centroid.X, Y: centroid.Y},
						Winding:     face.Winding,
					}
					if face.Flags.NeedsFace {
						ctx.FacePolygon = toProgramPoints(clippedOuter)
					}
					color := face.Compiled.Eval(ctx)
					weighted := scaleColor(color, weight)
					out.AddClientPartialPixel(weighted, px, py)
				}
			}
		}
	}
}

// pixelCoverage clips entry's outer and inner boundaries to pixel (px,py)'s
// filter-support rect and returns the net coverage weight (outer weight
// minus the sum of hole weights, per the Jordan-curve-hole subtraction a
// face with inner boundaries needs), the outer polygon's centroid, and the
// clipped outer polygon itself (for programs that need FacePolygon).
func pixelCoverage(entry binEntry, px, py int, radius float64, kind FilterKind, scale float32) (float64, clip.Point, []clip.Point) {
	clipRect := clip.Rect{
		X: float64(px) + 0.5 - radius,
		Y: float64(py) + 0.5 - radius,
		W: 2 * radius,
		H: 2 * radius,
	}

	clippedOuter, outerCounts := clip.ClipPolygonAABB(entry.outer, clipRect)
	if len(clippedOuter) == 0 {
		return 0, clip.Point{}, nil
	}
	weight, centroid := AnalyticWeight(clippedOuter, clipRect, outerCounts, kind, float64(scale))

	for _, inner := range entry.inners {
		clippedInner, innerCounts := clip.ClipPolygonAABB(inner, clipRect)
		if len(clippedInner) == 0 {
			continue
		}
		holeWeight, _ := AnalyticWeight(clippedInner, clipRect, innerCounts, kind, float64(scale))
		weight -= holeWeight
	}
	return clampWeight(weight), centroid, clippedOuter
}

func scaleColor(c program.Vec4, w float64) program.Vec4 {
	wf := float32(w)
	return program.Vec4{R: c.R * wf, G: c.G * wf, B: c.B * wf, A: c.A * wf}
}

func toProgramPoints(pts []clip.Point) []program.Point {
	out := make([]program.Point, len(pts))
	for i, p := range pts {
		out[i] = program.Point{X: p.X, Y: p.Y}
	}
	return out
}
