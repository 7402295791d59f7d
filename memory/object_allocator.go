package memory

import (
	"unsafe"

	"github.com/joshuapare/allockit/internal/align"
)

// ObjectAllocator is a typed view over the global allocator that allocates in
// units of T. It holds no state; all instances are equal.
type ObjectAllocator[T any] struct{}

// RequiredAlignment is the minimum alignment used for every request: the
// larger of T's alignment and the platform default.
func (ObjectAllocator[T]) RequiredAlignment() uintptr {
	_, al := layoutOf[T]()
	return max(al, align.Default)
}

func (o ObjectAllocator[T]) chooseAlign(a uintptr) uintptr {
	return max(a, o.RequiredAlignment())
}

// Allocate reserves storage for n values of T.
func (o ObjectAllocator[T]) Allocate(n int, a uintptr) (*T, error) {
	if err := checkPointerFree[T](); err != nil {
		return nil, err
	}
	size, ok := arraySize[T](n)
	if !ok {
		return nil, newAllocationError(o.MaxSize(), a, o.Tag(), errRequestTooLarge)
	}
	p, err := GlobalAllocator().Allocate(size, o.chooseAlign(a))
	if err != nil {
		return nil, err
	}
	return (*T)(p), nil
}

// Deallocate releases storage from Allocate with the same n and a.
func (o ObjectAllocator[T]) Deallocate(p *T, n int, a uintptr) {
	size, ok := arraySize[T](n)
	if p == nil || !ok {
		return
	}
	GlobalAllocator().Deallocate(unsafe.Pointer(p), size, o.chooseAlign(a))
}

// Tag returns the global allocator's tag.
func (ObjectAllocator[T]) Tag() Tag {
	return GlobalAllocator().Tag()
}

// MaxSize returns how many values of T the global allocator can serve at once.
func (ObjectAllocator[T]) MaxSize() uintptr {
	size, _ := layoutOf[T]()
	if size == 0 {
		return GlobalAllocator().MaxSize()
	}
	return GlobalAllocator().MaxSize() / size
}

// IsEqual always reports true.
func (ObjectAllocator[T]) IsEqual(ObjectAllocator[T]) bool { return true }
