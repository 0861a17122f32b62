package raster

import (
	"errors"

	"github.com/gogpu/cag/cag"
	"github.com/gogpu/cag/internal/clip"
	"github.com/gogpu/cag/program"
)

// Rasterize is the top-level entry point spec §7 names: it runs paths
// through the CAG arrangement (cag.Snap / FindIntersections / Build), pairs
// each surviving face with prog to form a RenderableFace, and rasterizes
// the result into out under cfg's two-pass scheme.
//
// A degenerate arrangement (every input path cancelled under predicate)
// leaves out untouched and returns nil, per spec §7: "degenerate cases
// produce a blank raster, not an error". Any other CAG or config error is
// returned to the caller unwrapped.
func Rasterize(paths []cag.RenderPath, prog program.Node, out OutputRaster, cfg TwoPassConfig, predicate cag.FacePredicate) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	arrangement, err := cag.Snap(paths)
	if err != nil {
		return err
	}
	if err := arrangement.FindIntersections(); err != nil {
		return err
	}
	if err := arrangement.Build(predicate); err != nil {
		var cagErr *cag.Error
		if errors.As(err, &cagErr) && cagErr.Kind == cag.Degenerate {
			return nil
		}
		return err
	}

	faces := buildRenderableFaces(arrangement, prog)
	if len(faces) == 0 {
		return nil
	}

	bins := CoarsePass(cfg, faces)
	FinePass(cfg, faces, bins, out)
	return nil
}

// buildRenderableFaces materializes every non-unbounded face recovered by
// arrangement into a RenderableFace sharing prog (spec §7's single shared
// render program, evaluated per face against that face's own winding map
// via program.EvalContext.Winding / the PathBoolean leaf).
func buildRenderableFaces(arrangement *cag.Arrangement, prog program.Node) []RenderableFace {
	var out []RenderableFace
	simplified := program.Simplify(prog)
	compiled := program.Compile(simplified)
	flags := AnalyzeProgram(simplified)

	for _, face := range arrangement.Faces {
		if face.IsUnbounded() {
			continue
		}
		outer := toClipPoints(arrangement.BoundaryPolygon(arrangement.Boundaries[face.Outer]))
		if len(outer) < 3 {
			continue
		}
		var inners [][]clip.Point
		for _, idx := range face.Inners {
			poly := toClipPoints(arrangement.BoundaryPolygon(arrangement.Boundaries[idx]))
			if len(poly) >= 3 {
				inners = append(inners, poly)
			}
		}
		out = append(out, RenderableFace{
			Outer:    outer,
			Inners:   inners,
			Winding:  face.Winding,
			Program:  simplified,
			Compiled: compiled,
			Flags:    flags,
		})
	}
	return out
}

func toClipPoints(pts []cag.Point) []clip.Point {
	out := make([]clip.Point, len(pts))
	for i, p := range pts {
		out[i] = clip.Point{X: p.X, Y: p.Y}
	}
	return out
}
