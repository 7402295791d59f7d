//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris) && !windows

package osmem

import (
	"sync"
	"unsafe"

	"github.com/joshuapare/allockit/internal/align"
)

const fallbackPageSize = 4096

// live keeps heap-backed regions reachable until Free.
var live sync.Map // uintptr -> []byte

// PageSize returns the emulated page size.
func PageSize() uintptr {
	return fallbackPageSize
}

// Alloc takes memory from the Go heap when the platform has no anonymous
// mapping primitive.
func Alloc(size, a uintptr) (unsafe.Pointer, error) {
	length, err := checkRequest(size, a)
	if err != nil {
		return nil, err
	}
	a = max(a, fallbackPageSize)
	if length > uintptr(maxInt)-a {
		return nil, ErrTooLarge
	}
	raw := make([]byte, length+a)
	base := uintptr(unsafe.Pointer(&raw[0]))
	off := align.Up(base, a) - base
	p := unsafe.Pointer(&raw[off])
	live.Store(uintptr(p), raw)
	return p, nil
}

// Free drops the reference taken by Alloc.
func Free(p unsafe.Pointer, size, a uintptr) error {
	if p == nil || size == 0 {
		return nil
	}
	live.Delete(uintptr(p))
	return nil
}

// Retire keeps the region reachable for the life of the process.
func Retire(p unsafe.Pointer, size, a uintptr) error {
	return nil
}

const maxInt = int(^uint(0) >> 1)
