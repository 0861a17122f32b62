package raster

import "github.com/gogpu/cag/internal/clip"

// fineFaceFlagBits are the high bits of a packed record's bits field (spec
// §6): bit 28 needsCentroid, 29 needsFace, 30 isConstant, 31 isFullArea.
const (
	flagNeedsCentroid uint32 = 1 << 28
	flagNeedsFace     uint32 = 1 << 29
	flagIsConstant    uint32 = 1 << 30
	flagIsFullArea    uint32 = 1 << 31

	programIndexMask uint32 = 1<<24 - 1
)

// FineFaceRecord is the Go-ergonomic form of spec §6's per-bin fine-face
// record: which face, which slice of the bin's edge arena it clipped to,
// the edge-touch counts from clipping, whether it fully covers the bin,
// and the next record in this bin's linked list (addressed by index into
// the bin's record arena rather than a raw GPU pointer).
type FineFaceRecord struct {
	FaceIndex   int
	EdgesIndex  int
	NumEdges    int
	Counts      clip.EdgeCounts
	IsFullArea  bool
	Flags       ProgramFlags
	NextAddress int32 // -1 terminates the list
}

// packedFineFaceRecord is the five-u32 wire layout spec §6 specifies,
// exercised by Pack/Unpack for a future GPU backend that needs the exact
// bit-for-bit encoding (this module's own coarse/fine passes operate on
// the internal binEntry and use neither FineFaceRecord nor this form).
type packedFineFaceRecord struct {
	Bits        uint32
	EdgesIndex  uint32
	NumEdges    uint32
	ClipCounts  uint32
	NextAddress uint32
}

// Pack encodes r into spec §6's wire layout. FaceIndex must fit in 24 bits
// and each EdgeCounts field in a signed byte; Pack returns
// ErrRecordOverflow otherwise.
func (r FineFaceRecord) Pack() (packedFineFaceRecord, error) {
	if r.FaceIndex < 0 || uint32(r.FaceIndex) > programIndexMask {
		return packedFineFaceRecord{}, newError("Pack", InvalidInput, ErrRecordOverflow)
	}
	for _, c := range []int32{r.Counts.MinX, r.Counts.MinY, r.Counts.MaxX, r.Counts.MaxY} {
		if c < -128 || c > 127 {
			return packedFineFaceRecord{}, newError("Pack", InvalidInput, ErrRecordOverflow)
		}
	}

	bits := uint32(r.FaceIndex) & programIndexMask
	if r.Flags.NeedsCentroid {
		bits |= flagNeedsCentroid
	}
	if r.Flags.NeedsFace {
		bits |= flagNeedsFace
	}
	if r.Flags.IsConstant {
		bits |= flagIsConstant
	}
	if r.IsFullArea {
		bits |= flagIsFullArea
	}

	clipCounts := uint32(uint8(int8(r.Counts.MinX))) |
		uint32(uint8(int8(r.Counts.MinY)))<<8 |
		uint32(uint8(int8(r.Counts.MaxX)))<<16 |
		uint32(uint8(int8(r.Counts.MaxY)))<<24

	next := uint32(0xFFFFFFFF)
	if r.NextAddress >= 0 {
		next = uint32(r.NextAddress)
	}

	return packedFineFaceRecord{
		Bits:        bits,
		EdgesIndex:  uint32(r.EdgesIndex),
		NumEdges:    uint32(r.NumEdges),
		ClipCounts:  clipCounts,
		NextAddress: next,
	}, nil
}

// Unpack decodes p back into a FineFaceRecord, inverting Pack.
func (p packedFineFaceRecord) Unpack() FineFaceRecord {
	next := int32(-1)
	if p.NextAddress != 0xFFFFFFFF {
		next = int32(p.NextAddress)
	}
	return FineFaceRecord{
		FaceIndex: int(p.Bits & programIndexMask),
		Flags: ProgramFlags{
			NeedsCentroid: p.Bits&flagNeedsCentroid != 0,
			NeedsFace:     p.Bits&flagNeedsFace != 0,
			IsConstant:    p.Bits&flagIsConstant != 0,
		},
		IsFullArea:  p.Bits&flagIsFullArea != 0,
		EdgesIndex:  int(p.EdgesIndex),
		NumEdges:    int(p.NumEdges),
		NextAddress: next,
		Counts: clip.EdgeCounts{
			MinX: int32(int8(uint8(p.ClipCounts))),
			MinY: int32(int8(uint8(p.ClipCounts >> 8))),
			MaxX: int32(int8(uint8(p.ClipCounts >> 16))),
			MaxY: int32(int8(uint8(p.ClipCounts >> 24))),
		},
	}
}
