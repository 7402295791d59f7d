package memory

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/allockit/internal/align"
	"github.com/joshuapare/allockit/internal/buf"
	"github.com/joshuapare/allockit/internal/osmem"
)

// NativeAllocator allocates from the Go runtime heap. The zero value is ready
// to use; all instances are equal.
type NativeAllocator struct{}

var _ Allocator = NativeAllocator{}

// Allocate implements Allocator.
func (NativeAllocator) Allocate(size, a uintptr) (unsafe.Pointer, error) {
	return allocateWith(size, a, TagNative, nativeAlloc)
}

// Deallocate implements Allocator.
func (NativeAllocator) Deallocate(p unsafe.Pointer, size, a uintptr) {
	deallocateWith(p, size, a, TagNative, nativeFree)
}

// Tag returns TagNative.
func (NativeAllocator) Tag() Tag { return TagNative }

// MaxSize returns the largest uintptr.
func (NativeAllocator) MaxSize() uintptr { return buf.MaxUintptr }

// IsEqual reports whether other is a NativeAllocator, by value or pointer.
func (NativeAllocator) IsEqual(other Allocator) bool {
	switch other.(type) {
	case NativeAllocator, *NativeAllocator:
		return true
	}
	return false
}

const maxInt = uintptr(^uint(0) >> 1)

// nativeAlloc over-allocates a pointer-free byte slice and returns its first
// address aligned to a. The interior pointer keeps the whole array alive.
func nativeAlloc(size, a uintptr) (p unsafe.Pointer, err error) {
	a = align.Effective(a)
	n, ok := buf.AddOverflowSafe(size, a-1)
	if !ok || n > maxInt {
		return nil, errRequestTooLarge
	}
	// The runtime aborts the process instead of failing make when the
	// system cannot back the array.
	if limit := osmem.CommitLimit(); limit != 0 && uint64(n) > limit {
		return nil, errRequestTooLarge
	}

	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("memory: runtime heap: %v", r)
		}
	}()
	raw := make([]byte, n)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(raw)), align.Up(base, a)-base), nil
}

// nativeFree leaves reclamation to the garbage collector.
func nativeFree(unsafe.Pointer, uintptr, uintptr) {}
