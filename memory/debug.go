//go:build debug

package memory

import (
	"unsafe"

	"github.com/joshuapare/allockit/internal/align"
	"github.com/joshuapare/allockit/internal/debugblock"
)

// DebugBuild reports whether allocations are instrumented with guard blocks.
const DebugBuild = true

func assertAlignment(a uintptr) {
	if !align.IsZeroOrPow2(a) {
		panic("alignment must be a power of 2")
	}
}

func allocate(size, a uintptr, tag Tag, raw debugblock.AllocFunc) (unsafe.Pointer, error) {
	assertAlignment(a)
	return debugblock.Allocate(size, a, uint8(tag), raw)
}

func deallocate(p unsafe.Pointer, size, a uintptr, tag Tag, free debugblock.FreeFunc) {
	assertAlignment(a)
	debugblock.Deallocate(p, size, a, uint8(tag), free)
}
