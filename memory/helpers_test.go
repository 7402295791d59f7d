package memory

import (
	"bytes"
	"testing"
	"unsafe"

	"github.com/joshuapare/allockit/internal/logger"
)

// countingAllocator is a user-defined allocator that forwards to the native
// heap and records traffic.
type countingAllocator struct {
	allocs   int
	frees    int
	lastSize uintptr
}

func (c *countingAllocator) Allocate(size, a uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, nil
	}
	c.allocs++
	c.lastSize = size
	return NativeAllocator{}.Allocate(size, a)
}

func (c *countingAllocator) Deallocate(p unsafe.Pointer, size, a uintptr) {
	if p == nil || size == 0 {
		return
	}
	c.frees++
	NativeAllocator{}.Deallocate(p, size, a)
}

func (c *countingAllocator) Tag() Tag         { return TagUser }
func (c *countingAllocator) MaxSize() uintptr { return NativeAllocator{}.MaxSize() }

func (c *countingAllocator) IsEqual(other Allocator) bool {
	o, ok := other.(*countingAllocator)
	return ok && o == c
}

// withGlobal installs a for the duration of a test.
func withGlobal(t testing.TB, a Allocator) {
	t.Helper()
	SetGlobalAllocator(a)
	t.Cleanup(ResetGlobalAllocator)
}

// quietLogger captures diagnostics for the duration of a test.
func quietLogger(t testing.TB) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	prev := logger.L
	logger.Init(logger.Options{Output: &out})
	t.Cleanup(func() { logger.L = prev })
	return &out
}

func allocators() []Allocator {
	return []Allocator{NativeAllocator{}, SystemAllocator{}}
}
