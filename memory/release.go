//go:build !debug

package memory

import (
	"unsafe"

	"github.com/joshuapare/allockit/internal/debugblock"
)

// DebugBuild reports whether allocations are instrumented with guard blocks.
const DebugBuild = false

func allocate(size, a uintptr, _ Tag, raw debugblock.AllocFunc) (unsafe.Pointer, error) {
	return raw(size, a)
}

func deallocate(p unsafe.Pointer, size, a uintptr, _ Tag, free debugblock.FreeFunc) {
	free(p, size, a)
}
