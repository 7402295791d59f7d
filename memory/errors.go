package memory

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocationFailure matches every error returned by Allocate when the
	// underlying heap cannot satisfy a request.
	ErrAllocationFailure = errors.New("memory: allocation failure")

	// ErrResourceOverrun indicates an index past the end of an array wrapper.
	ErrResourceOverrun = errors.New("memory: resource overrun")

	// ErrPointerType indicates an element type that holds Go pointers.
	ErrPointerType = errors.New("memory: type holds Go pointers")

	// errRequestTooLarge is the cause recorded when a request cannot be
	// represented by the heap at all.
	errRequestTooLarge = errors.New("memory: request exceeds addressable size")
)

// AllocationError describes a failed Allocate call.
type AllocationError struct {
	Size  uintptr
	Align uintptr
	Tag   Tag
	Err   error // underlying cause
}

func newAllocationError(size, align uintptr, tag Tag, err error) *AllocationError {
	return &AllocationError{Size: size, Align: align, Tag: tag, Err: err}
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("memory: %s allocator cannot provide %d bytes at alignment %d: %v",
		e.Tag, e.Size, e.Align, e.Err)
}

// Unwrap exposes both ErrAllocationFailure and the underlying cause.
func (e *AllocationError) Unwrap() []error {
	return []error{ErrAllocationFailure, e.Err}
}

// OverrunError describes an out-of-range index on an array wrapper.
type OverrunError struct {
	Index int
	Len   int
}

func (e *OverrunError) Error() string {
	return fmt.Sprintf("memory: index %d out of range [0:%d]", e.Index, e.Len)
}

func (e *OverrunError) Unwrap() error { return ErrResourceOverrun }
