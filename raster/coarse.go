package raster

import "github.com/gogpu/cag/internal/clip"

// binEntry is one face's clipped contribution to a single bin: grounded on
// gogpu/gg's internal/gpu/tilecompute/coarse.go binning pass, generalized
// from GPU draw-object indices to this module's RenderableFace slice index.
type binEntry struct {
	faceIndex  int
	outer      []clip.Point
	inners     [][]clip.Point
	counts     clip.EdgeCounts
	isFullArea bool
}

// binRect returns the pixel-space AABB of bin (bx,by) under cfg.
func binRect(cfg TwoPassConfig, bx, by int) clip.Rect {
	return clip.Rect{
		X: float64(bx * cfg.BinWidth),
		Y: float64(by * cfg.BinHeight),
		W: float64(cfg.BinWidth),
		H: float64(cfg.BinHeight),
	}
}

// CoarsePass bins faces into cfg's bin grid (spec §4.4 step 1): for each
// face, it determines the bins the face's AABB overlaps and clips the
// face's outer and inner boundaries to each, recording the edge-touch
// counts and an isFullArea flag for bins the face's outer boundary (with
// no holes) exactly covers.
//
// Returns a flat slice of bins in row-major (by*binsWide+bx) order, each
// holding the faces that touch it in input order — the Go equivalent of
// spec §6's per-bin linked list, without needing an explicit next-address
// arena since Go slices already give bounded, GC-friendly per-bin lists.
func CoarsePass(cfg TwoPassConfig, faces []RenderableFace) [][]binEntry {
	binsWide, binsHigh := cfg.binsWide(), cfg.binsHigh()
	bins := make([][]binEntry, binsWide*binsHigh)

	for fi, f := range faces {
		if len(f.Outer) == 0 {
			continue
		}
		bbox := boundingBox(f.Outer)
		minBX := clampInt(int(bbox.X)/cfg.BinWidth, 0, binsWide-1)
		maxBX := clampInt(int(bbox.Right())/cfg.BinWidth, 0, binsWide-1)
		minBY := clampInt(int(bbox.Y)/cfg.BinHeight, 0, binsHigh-1)
		maxBY := clampInt(int(bbox.Bottom())/cfg.BinHeight, 0, binsHigh-1)

		for by := minBY; by <= maxBY; by++ {
			for bx := minBX; bx <= maxBX; bx++ {
				rect := binRect(cfg, bx, by)
				clippedOuter, counts := clip.ClipPolygonAABB(f.Outer, rect)
				if len(clippedOuter) == 0 {
					continue
				}
				var clippedInners [][]clip.Point
				for _, inner := range f.Inners {
					ci, _ := clip.ClipPolygonAABB(inner, rect)
					if len(ci) > 0 {
						clippedInners = append(clippedInners, ci)
					}
				}
				entry := binEntry{
					faceIndex:  fi,
					outer:      clippedOuter,
					inners:     clippedInners,
					counts:     counts,
					isFullArea: len(clippedInners) == 0 && isFullArea(clippedOuter, rect),
				}
				idx := by*binsWide + bx
				bins[idx] = append(bins[idx], entry)
			}
		}
	}
	return bins
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
