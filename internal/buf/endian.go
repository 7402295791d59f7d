// Package buf contains bounds-checked arithmetic and fixed-width field
// packing for raw memory blocks.
//
// Fields are packed in the machine's native byte order so that a block
// inspected in a debugger reads the same as the equivalent C layout.
package buf

import (
	"encoding/binary"
	"unsafe"
)

// PtrSize is the width in bytes of a pointer-sized field.
const PtrSize = unsafe.Sizeof(uintptr(0))

// U32 reads a native-order uint32 from b. Returns 0 when b is too short.
func U32(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.NativeEndian.Uint32(b)
}

// PutU32 writes v to b in native order. It is a no-op when b is too short.
func PutU32(b []byte, v uint32) {
	if len(b) < 4 {
		return
	}
	binary.NativeEndian.PutUint32(b, v)
}

// Uintptr reads a pointer-width native-order value from b. Returns 0 when b
// is too short.
func Uintptr(b []byte) uintptr {
	if uintptr(len(b)) < PtrSize {
		return 0
	}
	if PtrSize == 8 {
		return uintptr(binary.NativeEndian.Uint64(b))
	}
	return uintptr(binary.NativeEndian.Uint32(b))
}

// PutUintptr writes v to b as a pointer-width native-order value. It is a
// no-op when b is too short.
func PutUintptr(b []byte, v uintptr) {
	if uintptr(len(b)) < PtrSize {
		return
	}
	if PtrSize == 8 {
		binary.NativeEndian.PutUint64(b, uint64(v))
		return
	}
	binary.NativeEndian.PutUint32(b, uint32(v))
}
