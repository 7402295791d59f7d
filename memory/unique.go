package memory

// Unique owns a single value allocated through an Allocator. The zero value
// is empty and owns nothing.
type Unique[T any] struct {
	ptr   *T
	alloc Allocator
}

// MakeUnique allocates a T initialized to v through a (nil selects the
// global allocator) and wraps it.
func MakeUnique[T any](a Allocator, v T) (Unique[T], error) {
	a = Use(a)
	p, err := Create(a, v)
	if err != nil {
		return Unique[T]{}, err
	}
	return Unique[T]{ptr: p, alloc: a}, nil
}

// AdoptUnique takes ownership of p, which must come from Create with a.
func AdoptUnique[T any](a Allocator, p *T) Unique[T] {
	return Unique[T]{ptr: p, alloc: Use(a)}
}

// Get returns the owned value, or nil.
func (u *Unique[T]) Get() *T { return u.ptr }

// Empty reports whether u owns nothing.
func (u *Unique[T]) Empty() bool { return u.ptr == nil }

// Release gives up ownership without freeing and returns the value.
func (u *Unique[T]) Release() *T {
	p := u.ptr
	u.ptr = nil
	return p
}

// Reset frees the owned value, if any.
func (u *Unique[T]) Reset() {
	if u.ptr != nil {
		Delete(u.alloc, u.ptr)
		u.ptr = nil
	}
}

// Swap exchanges the values owned by u and other.
func (u *Unique[T]) Swap(other *Unique[T]) {
	*u, *other = *other, *u
}

// UniqueArray owns a fixed-length array allocated through an Allocator.
type UniqueArray[T any] struct {
	s     []T
	alloc Allocator
}

// MakeUniqueArray allocates n zeroed values through a (nil selects the global
// allocator).
func MakeUniqueArray[T any](a Allocator, n int) (UniqueArray[T], error) {
	a = Use(a)
	s, err := CreateArray[T](a, n)
	if err != nil {
		return UniqueArray[T]{}, err
	}
	return UniqueArray[T]{s: s, alloc: a}, nil
}

// At returns a pointer to element i, or an *OverrunError when i is out of range.
func (u *UniqueArray[T]) At(i int) (*T, error) {
	if i < 0 || i >= len(u.s) {
		return nil, &OverrunError{Index: i, Len: len(u.s)}
	}
	return &u.s[i], nil
}

// Slice returns the owned elements. The slice is only valid while u owns them.
func (u *UniqueArray[T]) Slice() []T { return u.s }

// Len returns the element count.
func (u *UniqueArray[T]) Len() int { return len(u.s) }

// Release gives up ownership without freeing and returns the elements.
func (u *UniqueArray[T]) Release() []T {
	s := u.s
	u.s = nil
	return s
}

// Reset frees the owned elements, if any.
func (u *UniqueArray[T]) Reset() {
	if u.s != nil {
		DeleteArray(u.alloc, u.s)
		u.s = nil
	}
}

// Swap exchanges the arrays owned by u and other.
func (u *UniqueArray[T]) Swap(other *UniqueArray[T]) {
	*u, *other = *other, *u
}
