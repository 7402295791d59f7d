//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package osmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/allockit/internal/align"
	"github.com/joshuapare/allockit/internal/buf"
)

// PageSize returns the system page size.
func PageSize() uintptr {
	return uintptr(unix.Getpagesize())
}

func mapAnon(length uintptr) (unsafe.Pointer, error) {
	p, err := unix.MmapPtr(-1, 0, nil, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("osmem: mmap %d bytes: %w", length, err)
	}
	return p, nil
}

// Alloc maps at least size bytes of zeroed read-write memory whose start is
// aligned to a. Alignments up to the page size come for free; larger ones
// over-map by a and unmap the unaligned head and tail.
func Alloc(size, a uintptr) (unsafe.Pointer, error) {
	length, err := checkRequest(size, a)
	if err != nil {
		return nil, err
	}
	if a <= PageSize() {
		return mapAnon(length)
	}

	total, ok := buf.AddOverflowSafe(length, a)
	if !ok {
		return nil, ErrTooLarge
	}
	p, err := mapAnon(total)
	if err != nil {
		return nil, err
	}
	base := uintptr(p)
	start := align.Up(base, a)
	if head := start - base; head > 0 {
		if err := unix.MunmapPtr(p, head); err != nil {
			_ = unix.MunmapPtr(p, total)
			return nil, fmt.Errorf("osmem: trim head: %w", err)
		}
	}
	aligned := unsafe.Add(p, start-base)
	if tail := base + total - (start + length); tail > 0 {
		if err := unix.MunmapPtr(unsafe.Add(aligned, length), tail); err != nil {
			_ = unix.MunmapPtr(aligned, length)
			return nil, fmt.Errorf("osmem: trim tail: %w", err)
		}
	}
	return aligned, nil
}

// Free unmaps a region returned by Alloc. size and a must match the request.
func Free(p unsafe.Pointer, size, a uintptr) error {
	if p == nil || size == 0 {
		return nil
	}
	length, ok := MappedSize(size)
	if !ok {
		return ErrTooLarge
	}
	if err := unix.MunmapPtr(p, length); err != nil {
		return fmt.Errorf("osmem: munmap %d bytes: %w", length, err)
	}
	return nil
}

// Retire unmaps every page of a region returned by Alloc except the first.
// The first page stays mapped read-write and is never handed out again, so a
// header stored there can still be read after the release.
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
	if err := unix.MunmapPtr(unsafe.Add(p, page), length-page); err != nil {
		return fmt.Errorf("osmem: munmap %d retired bytes: %w", length-page, err)
	}
	return nil
}
