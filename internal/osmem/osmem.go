// Package osmem maps and unmaps anonymous memory directly from the operating
// system. Mappings are page granular; callers ask for bytes and an alignment
// and get back the start of a region at least that large.
package osmem

import (
	"errors"
	"sync"

	"github.com/joshuapare/allockit/internal/align"
	"github.com/joshuapare/allockit/internal/buf"
)

var (
	// ErrZeroSize is returned when a zero-length mapping is requested.
	ErrZeroSize = errors.New("osmem: zero-size mapping")

	// ErrBadAlignment is returned when align is neither zero nor a power of two.
	ErrBadAlignment = errors.New("osmem: alignment must be zero or a power of two")

	// ErrTooLarge is returned when rounding the request to pages overflows.
	ErrTooLarge = errors.New("osmem: mapping size overflows")
)

// MappedSize returns the number of bytes a request of size bytes occupies
// once rounded to whole pages.
func MappedSize(size uintptr) (uintptr, bool) {
	return buf.AlignUpOverflowSafe(size, PageSize())
}

func checkRequest(size, a uintptr) (uintptr, error) {
	if size == 0 {
		return 0, ErrZeroSize
	}
	if !align.IsZeroOrPow2(a) {
		return 0, ErrBadAlignment
	}
	length, ok := MappedSize(size)
	if !ok {
		return 0, ErrTooLarge
	}
	return length, nil
}

var commitLimitOnce = sync.OnceValue(commitLimit)

// CommitLimit returns how many bytes the system can back at once: memory plus
// swap on Linux and FreeBSD, the commit limit on Windows, physical memory on
// the other BSDs. It returns 0 when the limit is unknown. The value is read
// once per process.
func CommitLimit() uint64 {
	return commitLimitOnce()
}
