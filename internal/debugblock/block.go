package debugblock

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/allockit/internal/align"
	"github.com/joshuapare/allockit/internal/buf"
)

// State is the lifecycle tag stored in a block header.
type State uint8

const (
	StateUninitialized State = 0
	StateDeallocated   State = 1
	StateAllocated     State = 2
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateDeallocated:
		return "deallocated"
	case StateAllocated:
		return "allocated"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Header is the decoded form of the bytes at offset 0 of a block.
type Header struct {
	Size  uintptr
	Align uintptr
	Tag   uint8
	State State
}

// Metadata is a header plus both sentinel values as read from a block.
type Metadata struct {
	Header   Header
	Underrun uint32
	Overrun  uint32
}

// Intact reports whether both sentinels still hold SentinelValue.
func (m Metadata) Intact() bool {
	return m.Underrun == SentinelValue && m.Overrun == SentinelValue
}

// AllocFunc obtains size bytes aligned to align from the underlying heap.
type AllocFunc func(size, align uintptr) (unsafe.Pointer, error)

// FreeFunc returns a block obtained from the matching AllocFunc.
type FreeFunc func(ptr unsafe.Pointer, size, align uintptr)

func encodeHeader(b []byte, h Header) {
	buf.PutUintptr(b[sizeField:], h.Size)
	buf.PutUintptr(b[alignField:], h.Align)
	b[tagField] = h.Tag
	b[stateField] = byte(h.State)
}

func decodeHeader(b []byte) Header {
	return Header{
		Size:  buf.Uintptr(b[sizeField:]),
		Align: buf.Uintptr(b[alignField:]),
		Tag:   b[tagField],
		State: State(b[stateField]),
	}
}

func region(block []byte, off, n uintptr) []byte {
	if !buf.Has(block, off, n) {
		panic(fmt.Sprintf("debugblock: region [%d:+%d] outside block of %d bytes", off, n, len(block)))
	}
	return block[off : off+n]
}

// Prepare embeds debug metadata into block, which must hold at least
// BlockSize(size, a) bytes, and returns the user region.
func Prepare(block []byte, size, a uintptr, tag uint8) []byte {
	blockSize := BlockSize(size, a)
	block = region(block, 0, blockSize)

	encodeHeader(block, Header{Size: size, Align: a, Tag: tag, State: StateAllocated})
	buf.Fill(region(block, HeaderSize, HeaderPaddingSize(a)), FillByte)

	buf.PutU32(region(block, UnderrunOffset(a), SentinelSize), SentinelValue)
	buf.PutU32(region(block, OverrunOffset(size, a), SentinelSize), SentinelValue)

	buf.Fill(region(block, PaddingOffset(size, a), BlockPaddingSize(blockSize, size, a)), FillByte)
	return region(block, UserOffset(a), size)
}

// Extract reads the header and both sentinels of a block prepared for a user
// region of size bytes at alignment a.
func Extract(block []byte, size, a uintptr) Metadata {
	return Metadata{
		Header:   decodeHeader(region(block, 0, HeaderSize)),
		Underrun: buf.U32(region(block, UnderrunOffset(a), SentinelSize)),
		Overrun:  buf.U32(region(block, OverrunOffset(size, a), SentinelSize)),
	}
}

// Validate checks a block against the size, alignment and tag the caller
// believes it was allocated with, and flips its state to Deallocated. Any
// mismatch is reported and never returns. addr is the user pointer, used
// only in diagnostics.
func Validate(block []byte, addr, size, a uintptr, tag uint8) {
	hdr := region(block, 0, HeaderSize)
	h := decodeHeader(hdr)

	// A header that was never written would otherwise surface as a size
	// mismatch against zero.
	if h == (Header{}) {
		report(addr, NotAllocated, "Memory was not allocated")
	}
	if h.Size != size {
		report(addr, SizeMismatch, "Size is %d, but should be %d", size, h.Size)
	}
	if h.Align != a {
		report(addr, AlignMismatch, "Alignment is %d, but should be %d", a, h.Align)
	}
	if h.Tag != tag {
		report(addr, TagMismatch, "Tag is %d, but should be %d", tag, h.Tag)
	}

	switch h.State {
	case StateAllocated:
	case StateUninitialized:
		report(addr, NotAllocated, "Memory was not allocated")
	case StateDeallocated:
		report(addr, AlreadyDeallocated, "Memory was already deallocated")
	default:
		report(addr, InvalidState, "Block state %d is invalid", uint8(h.State))
	}
	h.State = StateDeallocated
	encodeHeader(hdr, h)

	if buf.U32(region(block, UnderrunOffset(a), SentinelSize)) != SentinelValue {
		report(addr, Underrun, "Memory was written before the begin of the block")
	}
	if buf.U32(region(block, OverrunOffset(size, a), SentinelSize)) != SentinelValue {
		report(addr, Overrun, "Memory was written after the end of the block")
	}
}

// Allocate obtains an instrumented block through alloc and returns the
// pointer to its user region. The size is rounded up to the effective
// alignment before the block is laid out.
func Allocate(size, a uintptr, tag uint8, alloc AllocFunc) (unsafe.Pointer, error) {
	size, a, blockSize, err := plan(size, a)
	if err != nil {
		return nil, err
	}

	block, err := alloc(blockSize, a)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, ErrNilBlock
	}

	Prepare(buf.Bytes(block, blockSize), size, a, tag)
	return align.Offset(block, int(UserOffset(a))), nil
}

// Deallocate validates the block behind ptr and hands the original block,
// its full size and the effective alignment to free. size, a and tag must be
// the values passed to Allocate.
func Deallocate(ptr unsafe.Pointer, size, a uintptr, tag uint8, free FreeFunc) {
	a = align.Effective(a)
	size = align.Up(size, a)
	blockSize := BlockSize(size, a)

	block := align.Offset(ptr, -int(UserOffset(a)))
	Validate(buf.Bytes(block, blockSize), uintptr(ptr), size, a, tag)
	free(block, blockSize, a)
}
