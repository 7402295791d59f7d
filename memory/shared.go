package memory

import "sync/atomic"

// refCounter lives in allocator memory next to the shared value.
type refCounter struct {
	refs atomic.Int64
}

func newRefCounter(a Allocator) (*refCounter, error) {
	c, err := AllocateObject[refCounter](a, 1)
	if err != nil {
		return nil, err
	}
	c.refs.Store(1)
	return c, nil
}

// release drops one reference and reports whether it was the last.
func (c *refCounter) release() bool {
	return c.refs.Add(-1) == 0
}

// Shared owns a value jointly with its clones. The value and its counter are
// freed when the last owner calls Reset. The zero value is empty.
type Shared[T any] struct {
	ptr   *T
	ctr   *refCounter
	alloc Allocator
}

// MakeShared allocates a T initialized to v through a (nil selects the
// global allocator).
func MakeShared[T any](a Allocator, v T) (Shared[T], error) {
	a = Use(a)
	p, err := Create(a, v)
	if err != nil {
		return Shared[T]{}, err
	}
	c, err := newRefCounter(a)
	if err != nil {
		Delete(a, p)
		return Shared[T]{}, err
	}
	return Shared[T]{ptr: p, ctr: c, alloc: a}, nil
}

// ShareUnique moves the value owned by u into a new Shared. u is left empty.
func ShareUnique[T any](u *Unique[T]) (Shared[T], error) {
	if u.Empty() {
		return Shared[T]{}, nil
	}
	a := u.alloc
	c, err := newRefCounter(a)
	if err != nil {
		return Shared[T]{}, err
	}
	return Shared[T]{ptr: u.Release(), ctr: c, alloc: a}, nil
}

// Get returns the shared value, or nil.
func (s *Shared[T]) Get() *T { return s.ptr }

// UseCount returns the number of owners, or 0 when empty.
func (s *Shared[T]) UseCount() int64 {
	if s.ctr == nil {
		return 0
	}
	return s.ctr.refs.Load()
}

// Unique reports whether s is the only owner.
func (s *Shared[T]) Unique() bool { return s.UseCount() == 1 }

// Clone returns a new owner of the same value.
func (s *Shared[T]) Clone() Shared[T] {
	if s.ctr != nil {
		s.ctr.refs.Add(1)
	}
	return *s
}

// Reset drops s's ownership, freeing the value if s was the last owner.
func (s *Shared[T]) Reset() {
	if s.ctr != nil && s.ctr.release() {
		Delete(s.alloc, s.ptr)
		Delete(s.alloc, s.ctr)
	}
	*s = Shared[T]{}
}

// Swap exchanges the values owned by s and other.
func (s *Shared[T]) Swap(other *Shared[T]) {
	*s, *other = *other, *s
}

// SharedArray owns a fixed-length array jointly with its clones.
type SharedArray[T any] struct {
	s     []T
	ctr   *refCounter
	alloc Allocator
}

// MakeSharedArray allocates n zeroed values through a (nil selects the global
// allocator).
func MakeSharedArray[T any](a Allocator, n int) (SharedArray[T], error) {
	a = Use(a)
	s, err := CreateArray[T](a, n)
	if err != nil {
		return SharedArray[T]{}, err
	}
	c, err := newRefCounter(a)
	if err != nil {
		DeleteArray(a, s)
		return SharedArray[T]{}, err
	}
	return SharedArray[T]{s: s, ctr: c, alloc: a}, nil
}

// ShareUniqueArray moves the elements owned by u into a new SharedArray.
func ShareUniqueArray[T any](u *UniqueArray[T]) (SharedArray[T], error) {
	if u.s == nil {
		return SharedArray[T]{}, nil
	}
	a := u.alloc
	c, err := newRefCounter(a)
	if err != nil {
		return SharedArray[T]{}, err
	}
	return SharedArray[T]{s: u.Release(), ctr: c, alloc: a}, nil
}

// At returns a pointer to element i, or an *OverrunError when i is out of range.
func (s *SharedArray[T]) At(i int) (*T, error) {
	if i < 0 || i >= len(s.s) {
		return nil, &OverrunError{Index: i, Len: len(s.s)}
	}
	return &s.s[i], nil
}

// Slice returns the shared elements.
func (s *SharedArray[T]) Slice() []T { return s.s }

// Len returns the element count.
func (s *SharedArray[T]) Len() int { return len(s.s) }

// UseCount returns the number of owners, or 0 when empty.
func (s *SharedArray[T]) UseCount() int64 {
	if s.ctr == nil {
		return 0
	}
	return s.ctr.refs.Load()
}

// Unique reports whether s is the only owner.
func (s *SharedArray[T]) Unique() bool { return s.UseCount() == 1 }

// Clone returns a new owner of the same elements.
func (s *SharedArray[T]) Clone() SharedArray[T] {
	if s.ctr != nil {
		s.ctr.refs.Add(1)
	}
	return *s
}

// Reset drops s's ownership, freeing the elements if s was the last owner.
func (s *SharedArray[T]) Reset() {
	if s.ctr != nil && s.ctr.release() {
		DeleteArray(s.alloc, s.s)
		Delete(s.alloc, s.ctr)
	}
	*s = SharedArray[T]{}
}

// Swap exchanges the elements owned by s and other.
func (s *SharedArray[T]) Swap(other *SharedArray[T]) {
	*s, *other = *other, *s
}
