package memory

import (
	"unsafe"

	"github.com/joshuapare/allockit/internal/align"
	"github.com/joshuapare/allockit/internal/buf"
)

// internalAllocator backs every Resource regardless of the global allocator,
// so a resource can always be released after SetGlobalAllocator.
var internalAllocator Allocator = NativeAllocator{}

// Resource owns a raw memory block that can serve as backing storage for
// other allocators. The zero value is empty.
//
// A Resource must be released with Destroy; it is not tracked by a finalizer.
type Resource struct {
	ptr  unsafe.Pointer
	size uintptr
}

// NewResource allocates a resource of size bytes at the default alignment.
// A zero size yields an empty resource.
func NewResource(size uintptr) (*Resource, error) {
	p, err := internalAllocator.Allocate(size, 0)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &Resource{}, nil
	}
	return &Resource{ptr: p, size: size}, nil
}

// Empty reports whether r owns no memory.
func (r *Resource) Empty() bool {
	return r.ptr == nil && r.size == 0
}

// Data returns the start of the block, or nil when empty.
func (r *Resource) Data() unsafe.Pointer { return r.ptr }

// Size returns the block size in bytes.
func (r *Resource) Size() uintptr { return r.size }

// Bytes views the block as a byte slice. The slice is only valid until the
// resource is destroyed or released.
func (r *Resource) Bytes() []byte {
	return buf.Bytes(r.ptr, r.size)
}

// Contains reports whether [p, p+n) lies entirely within the block.
func (r *Resource) Contains(p unsafe.Pointer, n uintptr) bool {
	if r.Empty() || p == nil || n == 0 {
		return false
	}
	base := uintptr(r.ptr)
	begin := uintptr(p)
	end, ok := buf.AddOverflowSafe(begin, n)
	if !ok {
		return false
	}
	return align.Within(base, base+r.size, begin, end)
}

// Swap exchanges the blocks owned by r and other.
func (r *Resource) Swap(other *Resource) {
	r.ptr, other.ptr = other.ptr, r.ptr
	r.size, other.size = other.size, r.size
}

// Release gives up ownership and returns the block. The caller becomes
// responsible for returning it to the internal native allocator.
func (r *Resource) Release() (unsafe.Pointer, uintptr) {
	p, n := r.ptr, r.size
	r.ptr, r.size = nil, 0
	return p, n
}

// Destroy frees the block and leaves r empty. It is safe to call repeatedly.
func (r *Resource) Destroy() {
	if r.ptr != nil && r.size > 0 {
		internalAllocator.Deallocate(r.ptr, r.size, 0)
	}
	r.ptr, r.size = nil, 0
}

// Clone returns an independent copy of the block.
func (r *Resource) Clone() (*Resource, error) {
	c, err := NewResource(r.size)
	if err != nil {
		return nil, err
	}
	copy(c.Bytes(), r.Bytes())
	return c, nil
}

// Equal reports whether r and other refer to the same block.
func (r *Resource) Equal(other *Resource) bool {
	return r.ptr == other.ptr && r.size == other.size
}
