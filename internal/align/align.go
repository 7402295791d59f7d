// Package align holds the alignment and address arithmetic shared by the
// allocators and the debug block engine.
package align

import "unsafe"

// Default is the alignment every allocation gets when the caller asks for
// none. It matches the platform's default allocation alignment: twice the
// pointer width (16 bytes on 64-bit targets, 8 bytes on 32-bit targets).
const Default = 2 * unsafe.Sizeof(uintptr(0))

// IsPow2 reports whether x is a power of two. Zero is not.
func IsPow2(x uintptr) bool {
	return x != 0 && x&(x-1) == 0
}

// IsZeroOrPow2 reports whether x is zero or a power of two, the set of
// alignment values the allocator contract accepts.
func IsZeroOrPow2(x uintptr) bool {
	return x == 0 || IsPow2(x)
}

// Up returns x aligned up to the next multiple of a. a must be a power of two.
//
// Example:
//
//	Up(1, 8)  = 8
//	Up(8, 8)  = 8
//	Up(22, 2) = 22
//	Up(22, 8) = 24
func Up(x, a uintptr) uintptr {
	mask := a - 1
	return (x + mask) &^ mask
}

// Effective returns the alignment actually used for a request of alignment a:
// the larger of a and Default.
func Effective(a uintptr) uintptr {
	if a >= Default {
		return a
	}
	return Default
}

// Offset moves p by off bytes, forward or backward.
func Offset(p unsafe.Pointer, off int) unsafe.Pointer {
	return unsafe.Add(p, off)
}

// Within reports whether [blockBegin, blockEnd) lies inside [baseBegin, baseEnd).
func Within(baseBegin, baseEnd, blockBegin, blockEnd uintptr) bool {
	return blockBegin >= baseBegin && blockEnd <= baseEnd
}
