package memory

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/allockit/internal/debugblock"
)

// Tag identifies the concrete kind of an allocator. It is embedded in debug
// block headers to catch memory released through a different kind than the
// one that allocated it.
type Tag uint8

const (
	TagUnknown Tag = 0
	TagNative  Tag = 1
	TagSystem  Tag = 2

	// TagUser is the first tag reserved for user-defined allocators.
	TagUser Tag = 16
)

func (t Tag) String() string {
	switch t {
	case TagUnknown:
		return "unknown"
	case TagNative:
		return "native"
	case TagSystem:
		return "system"
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// Allocator is the capability set shared by every allocator.
//
// Allocate returns (nil, nil) for a zero size without touching the
// underlying heap. align must be zero (platform default) or a power of two.
//
// Deallocate is a no-op for a nil pointer or zero size. size and align must
// be the values passed to Allocate; only debug builds verify this.
type Allocator interface {
	Allocate(size, align uintptr) (unsafe.Pointer, error)
	Deallocate(ptr unsafe.Pointer, size, align uintptr)
	Tag() Tag
	MaxSize() uintptr
	IsEqual(other Allocator) bool
}

// Equal reports whether a and b are interchangeable: memory allocated by one
// may be released by the other. It delegates to a.IsEqual.
func Equal(a, b Allocator) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.IsEqual(b)
}

// allocateWith serves a built-in allocator request from raw. Zero-size
// requests never reach raw.
func allocateWith(size, a uintptr, tag Tag, raw debugblock.AllocFunc) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, nil
	}
	p, err := allocate(size, a, tag, raw)
	if err != nil {
		return nil, newAllocationError(size, a, tag, err)
	}
	return p, nil
}

func deallocateWith(p unsafe.Pointer, size, a uintptr, tag Tag, free debugblock.FreeFunc) {
	if p == nil || size == 0 {
		return
	}
	deallocate(p, size, a, tag, free)
}
