package debugblock

import (
	"github.com/joshuapare/allockit/internal/align"
	"github.com/joshuapare/allockit/internal/buf"
)

const (
	// HeaderSize is the packed header width: size and align (pointer width
	// each), tag (1 byte), state (1 byte). 18 bytes on 64-bit, 10 on 32-bit.
	HeaderSize = 2*buf.PtrSize + 2

	// SentinelSize is the width of each guard value.
	SentinelSize uintptr = 4

	// SentinelValue is written on both sides of the user region.
	SentinelValue uint32 = 0xCCCCCCCC

	// FillByte marks header and block padding. It only aids inspection.
	FillByte byte = 0xBF
)

// Header field offsets.
const (
	sizeField  = 0
	alignField = buf.PtrSize
	tagField   = 2 * buf.PtrSize
	stateField = 2*buf.PtrSize + 1
)

// UserOffset is the offset of the user region: the first address aligned to
// a that leaves room for the header and the underrun sentinel.
func UserOffset(a uintptr) uintptr {
	return align.Up(HeaderSize+SentinelSize, a)
}

// UnderrunOffset is the offset of the sentinel directly before the user region.
func UnderrunOffset(a uintptr) uintptr {
	return UserOffset(a) - SentinelSize
}

// OverrunOffset is the offset of the sentinel directly after the user region.
func OverrunOffset(size, a uintptr) uintptr {
	return UserOffset(a) + size
}

// PaddingOffset is where the block padding (if any) starts.
func PaddingOffset(size, a uintptr) uintptr {
	return OverrunOffset(size, a) + SentinelSize
}

// BlockSize returns the total block size for a user region of size bytes at
// alignment a. The result is a multiple of a.
func BlockSize(size, a uintptr) uintptr {
	return align.Up(HeaderSize+SentinelSize, a) + align.Up(size+SentinelSize, a)
}

// HeaderPaddingSize returns the gap between the header and the underrun
// sentinel. Zero when none is needed.
func HeaderPaddingSize(a uintptr) uintptr {
	return UnderrunOffset(a) - HeaderSize
}

// BlockPaddingSize returns the gap between the overrun sentinel and the end
// of the block. Zero when none is needed.
func BlockPaddingSize(blockSize, size, a uintptr) uintptr {
	return blockSize - PaddingOffset(size, a)
}

// blockSizeOverflowSafe is BlockSize with wrap-around detection for
// caller-supplied sizes.
func blockSizeOverflowSafe(size, a uintptr) (uintptr, bool) {
	user, ok := buf.AddOverflowSafe(size, SentinelSize)
	if !ok {
		return 0, false
	}
	if user, ok = buf.AlignUpOverflowSafe(user, a); !ok {
		return 0, false
	}
	return buf.AddOverflowSafe(UserOffset(a), user)
}

// Region names one contiguous part of a block.
type Region struct {
	Name   string  `json:"name"`
	Offset uintptr `json:"offset"`
	Size   uintptr `json:"size"`
}

// Layout describes every region of a block, in address order.
type Layout struct {
	Size      uintptr  `json:"size"`
	Align     uintptr  `json:"align"`
	BlockSize uintptr  `json:"block_size"`
	Regions   []Region `json:"regions"`
}

// Describe lays out a block for a user region of size bytes at alignment a,
// exactly as Prepare writes it. Zero-sized padding regions are omitted.
func Describe(size, a uintptr) Layout {
	blockSize := BlockSize(size, a)
	regions := []Region{{Name: "header", Offset: 0, Size: HeaderSize}}
	if n := HeaderPaddingSize(a); n > 0 {
		regions = append(regions, Region{Name: "header padding", Offset: HeaderSize, Size: n})
	}
	regions = append(regions,
		Region{Name: "underrun sentinel", Offset: UnderrunOffset(a), Size: SentinelSize},
		Region{Name: "user block", Offset: UserOffset(a), Size: size},
		Region{Name: "overrun sentinel", Offset: OverrunOffset(size, a), Size: SentinelSize},
	)
	if n := BlockPaddingSize(blockSize, size, a); n > 0 {
		regions = append(regions, Region{Name: "block padding", Offset: PaddingOffset(size, a), Size: n})
	}
	return Layout{Size: size, Align: a, BlockSize: blockSize, Regions: regions}
}

// plan applies the adjustments Allocate makes to a request: the effective
// alignment, the size rounded up to it, and an overflow-checked block size.
func plan(size, a uintptr) (alignedSize, effAlign, blockSize uintptr, err error) {
	a = align.Effective(a)
	size, ok := buf.AlignUpOverflowSafe(size, a)
	if !ok {
		return 0, 0, 0, ErrSizeOverflow
	}
	blockSize, ok = blockSizeOverflowSafe(size, a)
	if !ok {
		return 0, 0, 0, ErrSizeOverflow
	}
	return size, a, blockSize, nil
}

// Plan returns the layout Allocate would produce for a request of size bytes
// at alignment a (0 for the default).
func Plan(size, a uintptr) (Layout, error) {
	size, a, _, err := plan(size, a)
	if err != nil {
		return Layout{}, err
	}
	return Describe(size, a), nil
}
