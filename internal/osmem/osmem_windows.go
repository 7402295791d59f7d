//go:build windows

package osmem

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/joshuapare/allockit/internal/align"
	"github.com/joshuapare/allockit/internal/buf"
)

// granularity is the alignment VirtualAlloc guarantees for new reservations.
const granularity = 64 << 10

// reserveAttempts bounds the race between releasing a probe reservation and
// reserving the aligned address inside it.
const reserveAttempts = 8

// PageSize returns the system page size.
func PageSize() uintptr {
	return uintptr(os.Getpagesize())
}

func commit(addr, length uintptr) (unsafe.Pointer, error) {
	p, err := windows.VirtualAlloc(addr, length, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Pointer(p), nil
}

// Alloc commits at least size bytes of zeroed read-write memory whose start
// is aligned to a. Alignments above the allocation granularity probe for a
// large enough free range, release it and reserve the aligned address.
func Alloc(size, a uintptr) (unsafe.Pointer, error) {
	length, err := checkRequest(size, a)
	if err != nil {
		return nil, err
	}
	if a <= granularity {
		p, err := commit(0, length)
		if err != nil {
			return nil, fmt.Errorf("osmem: VirtualAlloc %d bytes: %w", length, err)
		}
		return p, nil
	}

	total, ok := buf.AddOverflowSafe(length, a)
	if !ok {
		return nil, ErrTooLarge
	}
	for range reserveAttempts {
		probe, err := windows.VirtualAlloc(0, total, windows.MEM_RESERVE, windows.PAGE_NOACCESS)
		if err != nil {
			return nil, fmt.Errorf("osmem: VirtualAlloc reserve %d bytes: %w", total, err)
		}
		if err := windows.VirtualFree(probe, 0, windows.MEM_RELEASE); err != nil {
			return nil, fmt.Errorf("osmem: VirtualFree probe: %w", err)
		}
		if p, err := commit(align.Up(probe, a), length); err == nil {
			return p, nil
		}
	}
	return nil, fmt.Errorf("osmem: no %d-aligned range of %d bytes after %d attempts", a, length, reserveAttempts)
}

// Free releases a region returned by Alloc.
func Free(p unsafe.Pointer, size, a uintptr) error {
	if p == nil || size == 0 {
		return nil
	}
	if err := windows.VirtualFree(uintptr(p), 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("osmem: VirtualFree: %w", err)
	}
	return nil
}

// Retire decommits every page of a region returned by Alloc except the
// first, which stays committed so a header stored there can still be read.
// The reservation itself is never released.
func Retire(p unsafe.Pointer, size, a uintptr) error {
	if p == nil || size == 0 {
		return nil
	}
	length, ok := MappedSize(size)
	if !ok {
		return ErrTooLarge
	}
	page := PageSize()
	if length <= page {
		return nil
	}
	if err := windows.VirtualFree(uintptr(p)+page, length-page, windows.MEM_DECOMMIT); err != nil {
		return fmt.Errorf("osmem: VirtualFree decommit: %w", err)
	}
	return nil
}
