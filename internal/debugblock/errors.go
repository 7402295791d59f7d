package debugblock

import (
	"errors"
	"fmt"
)

var (
	// ErrSizeOverflow indicates the instrumented block size does not fit in a uintptr.
	ErrSizeOverflow = errors.New("debugblock: block size overflows")

	// ErrNilBlock indicates the raw allocation function returned neither memory nor an error.
	ErrNilBlock = errors.New("debugblock: raw allocation returned nil")

	// ErrCorruption matches every *CorruptionError with errors.Is.
	ErrCorruption = errors.New("debugblock: corrupted block")
)

// Kind classifies a corruption report.
type Kind uint8

const (
	SizeMismatch Kind = iota + 1
	AlignMismatch
	TagMismatch
	NotAllocated
	AlreadyDeallocated
	InvalidState
	Underrun
	Overrun
)

var kindNames = [...]string{
	SizeMismatch:       "size-mismatch",
	AlignMismatch:      "align-mismatch",
	TagMismatch:        "tag-mismatch",
	NotAllocated:       "not-allocated",
	AlreadyDeallocated: "already-deallocated",
	InvalidState:       "invalid-state",
	Underrun:           "underrun",
	Overrun:            "overrun",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// CorruptionError is the panic value raised when a block fails validation.
type CorruptionError struct {
	Addr   uintptr // user pointer handed to Deallocate
	Kind   Kind
	Reason string
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("Corrupted block at %#x. %s.", e.Addr, e.Reason)
}

// Is reports whether target is ErrCorruption.
func (e *CorruptionError) Is(target error) bool {
	return target == ErrCorruption
}
