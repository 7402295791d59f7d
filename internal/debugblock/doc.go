// Package debugblock wraps allocations with guard metadata so that misuse is
// caught when the memory is released.
//
// # Block Layout
//
// Every user request of size S and alignment A becomes one larger block:
//
//	offset 0                     header (size, align, tag, state)
//	HeaderSize                   header padding, filled with 0xBF
//	UserOffset(A) - SentinelSize underrun sentinel 0xCCCCCCCC
//	UserOffset(A)                user region, S bytes
//	OverrunOffset(S, A)          overrun sentinel 0xCCCCCCCC
//	PaddingOffset(S, A)          block padding, filled with 0xBF
//
// The header is 18 bytes on 64-bit targets and 10 bytes on 32-bit targets:
// two pointer-width fields followed by a tag byte and a state byte, packed in
// native byte order at fixed offsets.
//
// # Validation
//
// Deallocate recovers the block from the user pointer and checks, in order,
// the stored size, the stored alignment, the allocator tag, the block state
// and both sentinels. The first failed check is reported as
//
//	Corrupted block at 0x<addr>. <reason>.
//
// on the diagnostic logger and then raised as a panic carrying a
// *CorruptionError. Corruption is never returned as an error.
//
// # State Machine
//
//	Uninitialized --Prepare--> Allocated --Deallocate--> Deallocated
//
// Deallocated is terminal. Releasing it again reports a double free.
//
// The allocators in package memory only call into this package when built
// with the debug tag. Release builds use the raw heap paths directly.
package debugblock
