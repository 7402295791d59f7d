package buf

import "unsafe"

// MaxUintptr is the largest value representable by uintptr.
const MaxUintptr = ^uintptr(0)

// AddOverflowSafe adds a and b, returning ok = false when the result would wrap.
func AddOverflowSafe(a, b uintptr) (uintptr, bool) {
	if a > MaxUintptr-b {
		return 0, false
	}
	return a + b, true
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result would wrap.
// Used for count * elementSize calculations in the array helpers.
func MulOverflowSafe(a, b uintptr) (uintptr, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > MaxUintptr/b {
		return 0, false
	}
	return a * b, true
}

// AlignUpOverflowSafe rounds x up to a multiple of the power of two a,
// returning ok = false when the rounded value would wrap.
func AlignUpOverflowSafe(x, a uintptr) (uintptr, bool) {
	sum, ok := AddOverflowSafe(x, a-1)
	if !ok {
		return 0, false
	}
	return sum &^ (a - 1), true
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n uintptr) ([]byte, bool) {
	if off > uintptr(len(b)) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > uintptr(len(b)) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n uintptr) bool {
	_, ok := Slice(b, off, n)
	return ok
}

// Bytes views the n bytes starting at p as a byte slice. The caller
// guarantees that the memory is valid for the lifetime of the slice.
func Bytes(p unsafe.Pointer, n uintptr) []byte {
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}

// Fill sets every byte of b to v.
func Fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}
