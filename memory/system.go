package memory

import (
	"unsafe"

	"github.com/joshuapare/allockit/internal/buf"
	"github.com/joshuapare/allockit/internal/logger"
	"github.com/joshuapare/allockit/internal/osmem"
)

// SystemAllocator maps anonymous pages directly from the operating system and
// unmaps them on Deallocate. In debug builds the page holding each block
// header is never unmapped. The zero value is ready to use; all instances
// are equal.
//
// Every request occupies at least one page, so it suits large or long-lived
// buffers rather than small objects.
type SystemAllocator struct{}

var _ Allocator = SystemAllocator{}

// Allocate implements Allocator.
func (SystemAllocator) Allocate(size, a uintptr) (unsafe.Pointer, error) {
	return allocateWith(size, a, TagSystem, systemAlloc)
}

// Deallocate implements Allocator.
func (SystemAllocator) Deallocate(p unsafe.Pointer, size, a uintptr) {
	deallocateWith(p, size, a, TagSystem, systemFree)
}

// Tag returns TagSystem.
func (SystemAllocator) Tag() Tag { return TagSystem }

// MaxSize returns the largest uintptr.
func (SystemAllocator) MaxSize() uintptr { return buf.MaxUintptr }

// IsEqual reports whether other is a SystemAllocator, by value or pointer.
func (SystemAllocator) IsEqual(other Allocator) bool {
	switch other.(type) {
	case SystemAllocator, *SystemAllocator:
		return true
	}
	return false
}

func systemAlloc(size, a uintptr) (unsafe.Pointer, error) {
	return osmem.Alloc(size, a)
}

// systemFree cannot report failure to the caller; an unmap error means the
// range was never mapped by us and is logged. Debug builds keep the first
// page of every block mapped so a repeated release still finds its header.
func systemFree(p unsafe.Pointer, size, a uintptr) {
	release := osmem.Free
	if DebugBuild {
		release = osmem.Retire
	}
	if err := release(p, size, a); err != nil {
		logger.Error("system allocator: release failed",
			"addr", uintptr(p), "size", size, "align", a, "error", err)
	}
}
