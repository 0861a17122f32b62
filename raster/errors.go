// Package raster implements the analytic rasterizer (spec §4.4): it pairs
// CAG faces with render-program nodes as RenderableFaces, clips them to a
// two-pass tile/bin grid, and integrates each clipped micro-polygon against
// a reconstruction filter into an OutputRaster.
//
// Grounded on gogpu/gg's internal/gpu/tilecompute coarse/fine split for the
// two-pass structure and internal/raster's AnalyticFiller/AlphaRuns for the
// trapezoidal-coverage idiom, generalized from one fill rule and an
// implicit box filter to the full RenderableFace / Box-Bilinear-Mitchell
// filter family this module needs.
package raster

import (
	"errors"
	"fmt"
)

// Kind classifies the failure modes the rasterizer can report, matching
// cag.Kind's categories (spec §7) so callers branching on errors.As see one
// consistent taxonomy across the module.
type Kind int

const (
	// InvalidInput covers a render program whose instruction stream is
	// malformed, or a TwoPassConfig with a non-positive dimension.
	InvalidInput Kind = iota
	// NumericRange names a filter scale or raster dimension that would
	// overflow the tile/bin grid's integer bookkeeping; no function in
	// this package returns it.
	NumericRange
	// Degenerate marks a rasterize call with zero renderable faces; the
	// caller receives a blank raster, not this error (spec §7).
	Degenerate
	// KernelInvariant marks a bug in the coarse/fine pipeline itself (a
	// fine-face record pointing past its bin's edge list, for instance).
	KernelInvariant
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case NumericRange:
		return "numeric range"
	case Degenerate:
		return "degenerate"
	case KernelInvariant:
		return "kernel invariant"
	default:
		return "unknown"
	}
}

// Error is the error type of this package's own checks (config
// validation, record packing). Rasterize passes errors from the cag
// arrangement through unchanged, as *cag.Error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("raster: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("raster: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

var (
	// ErrInvalidConfig is wrapped when a TwoPassConfig fails validation.
	ErrInvalidConfig = errors.New("raster: invalid two-pass config")
	// ErrNoFaces names the zero-RenderableFaces case. Rasterize does not
	// return it: with zero faces it returns nil and leaves the raster blank.
	ErrNoFaces = errors.New("raster: no renderable faces")
	// ErrRecordOverflow is wrapped when a fine-face record's packed bit
	// fields cannot represent the value being encoded.
	ErrRecordOverflow = errors.New("raster: fine-face record field overflow")
)
