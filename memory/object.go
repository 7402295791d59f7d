package memory

import (
	"unsafe"

	"github.com/joshuapare/allockit/internal/buf"
)

func layoutOf[T any]() (size, align uintptr) {
	var zero T
	return unsafe.Sizeof(zero), unsafe.Alignof(zero)
}

func arraySize[T any](n int) (uintptr, bool) {
	if n < 0 {
		return 0, false
	}
	size, _ := layoutOf[T]()
	return buf.MulOverflowSafe(uintptr(n), size)
}

// AllocateObject reserves uninitialized storage for n values of T through a
// (nil selects the global allocator). The result is nil when n or the size
// of T is zero.
func AllocateObject[T any](a Allocator, n int) (*T, error) {
	if err := checkPointerFree[T](); err != nil {
		return nil, err
	}
	size, ok := arraySize[T](n)
	_, al := layoutOf[T]()
	if !ok {
		return nil, newAllocationError(buf.MaxUintptr, al, Use(a).Tag(), errRequestTooLarge)
	}
	p, err := Use(a).Allocate(size, al)
	if err != nil {
		return nil, err
	}
	return (*T)(p), nil
}

// DeallocateObject releases storage obtained from AllocateObject with the
// same allocator and count.
func DeallocateObject[T any](a Allocator, p *T, n int) {
	if p == nil || n <= 0 {
		return
	}
	size, ok := arraySize[T](n)
	if !ok {
		return
	}
	_, al := layoutOf[T]()
	Use(a).Deallocate(unsafe.Pointer(p), size, al)
}

// Create allocates a T through a (nil selects the global allocator) and
// initializes it to v.
func Create[T any](a Allocator, v T) (*T, error) {
	if size, _ := layoutOf[T](); size == 0 {
		if err := checkPointerFree[T](); err != nil {
			return nil, err
		}
		return new(T), nil
	}
	p, err := AllocateObject[T](a, 1)
	if err != nil {
		return nil, err
	}
	*p = v
	return p, nil
}

// Delete releases a value obtained from Create with the same allocator.
func Delete[T any](a Allocator, p *T) {
	DeallocateObject(a, p, 1)
}

// CreateArray allocates n zeroed values of T through a (nil selects the
// global allocator).
func CreateArray[T any](a Allocator, n int) ([]T, error) {
	p, err := AllocateObject[T](a, n)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return make([]T, n), nil
	}
	s := unsafe.Slice(p, n)
	clear(s)
	return s, nil
}

// DeleteArray releases a slice obtained from CreateArray with the same
// allocator. Only len(s) is used.
func DeleteArray[T any](a Allocator, s []T) {
	if len(s) == 0 {
		return
	}
	DeallocateObject(a, unsafe.SliceData(s), len(s))
}
