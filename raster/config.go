package raster

// Default tile/bin dimensions. A tile is defaultTileBins bins square; a bin
// is defaultBinPixels pixels square (16x16 bins per spec §4.4's coarse
// pass, with a 64px tile — 4x4 bins — matching the teacher's former
// 64px-tile convention for cache-friendly work granularity).
const (
	defaultBinPixels  = 16
	defaultTilePixels = 64
	defaultTileBins   = defaultTilePixels / defaultBinPixels
)

// TwoPassConfig is the uniform spec §6 lists: raster/tile/bin dimensions,
// filter kind and scale, and the output color space tag. Mirrors
// gpucore.PipelineConfig's "config struct with a defaulting constructor"
// convention (see DESIGN.md / SPEC_FULL.md §1 Configuration).
type TwoPassConfig struct {
	RasterWidth, RasterHeight int
	TileWidth, TileHeight     int
	BinWidth, BinHeight       int
	FilterKind                FilterKind
	FilterScale               float32
	RasterColorSpace          RasterColorSpaceTag
}

// NewTwoPassConfig builds a TwoPassConfig for a width x height raster,
// defaulting tile/bin sizes and the Box filter at unit scale, matching the
// boundary scenarios of spec §8 (1x1 Box, 2x1 Box).
func NewTwoPassConfig(width, height int) TwoPassConfig {
	return TwoPassConfig{
		RasterWidth:      width,
		RasterHeight:     height,
		TileWidth:        defaultTileBins,
		TileHeight:       defaultTileBins,
		BinWidth:         defaultBinPixels,
		BinHeight:        defaultBinPixels,
		FilterKind:       FilterBox,
		FilterScale:      1,
		RasterColorSpace: RasterSRGB,
	}
}

// WithFilter returns a copy of cfg using the given filter kind and scale.
func (cfg TwoPassConfig) WithFilter(kind FilterKind, scale float32) TwoPassConfig {
	cfg.FilterKind = kind
	cfg.FilterScale = scale
	return cfg
}

// Validate checks cfg's dimensions are usable, returning *Error(InvalidInput)
// otherwise.
func (cfg TwoPassConfig) Validate() error {
	if cfg.RasterWidth <= 0 || cfg.RasterHeight <= 0 {
		return newError("Validate", InvalidInput, ErrInvalidConfig)
	}
	if cfg.BinWidth <= 0 || cfg.BinHeight <= 0 || cfg.TileWidth <= 0 || cfg.TileHeight <= 0 {
		return newError("Validate", InvalidInput, ErrInvalidConfig)
	}
	if cfg.FilterScale <= 0 {
		return newError("Validate", InvalidInput, ErrInvalidConfig)
	}
	return nil
}

// binsWide and binsHigh return the number of bins spanning the raster.
func (cfg TwoPassConfig) binsWide() int { return ceilDiv(cfg.RasterWidth, cfg.BinWidth) }
func (cfg TwoPassConfig) binsHigh() int { return ceilDiv(cfg.RasterHeight, cfg.BinHeight) }

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
