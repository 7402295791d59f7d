// Package memory provides a polymorphic allocator abstraction over manually
// managed memory.
//
// # Overview
//
// Every allocator implements the Allocator interface:
//
//   - Allocate(size, align): obtain size bytes aligned to align (0 = default)
//   - Deallocate(ptr, size, align): return memory with the exact request values
//   - Tag(): identify the concrete kind for cross-checking
//   - MaxSize(): largest representable request
//   - IsEqual(other): value equality between instances
//
// # Implementations
//
// NativeAllocator: Go runtime heap. Memory stays reachable through the
// returned pointer and is reclaimed by the garbage collector once dropped.
//
// SystemAllocator: anonymous page mappings requested from the OS. Memory is
// unmapped on Deallocate and is invisible to the garbage collector. Debug
// builds keep the first page of each released block mapped so double frees
// are still reported.
//
// # Global Allocator
//
// GlobalAllocator returns the process-wide allocator used by every helper that
// is not handed one explicitly. It starts as a NativeAllocator and can be
// swapped with SetGlobalAllocator. Code that prefers explicit state can carry
// an allocator in a context.Context with WithAllocator and FromContext.
//
// # Debug Builds
//
// Building with -tags debug wraps every allocation made by the built-in
// allocators in a guarded block: a header recording size, alignment and
// allocator tag, plus a sentinel on each side of the user region. Deallocate
// validates all of it and panics with a *debugblock.CorruptionError after
// writing a diagnostic to standard error when anything is off:
//
//	Corrupted block at 0xc000012340. Memory was written after the end of the block.
//
// Release builds take the direct path and trust the caller's size and
// alignment completely. Passing values that differ from the ones used at
// allocation is undefined behavior there.
//
// # Pointer-Free Memory
//
// Memory from these allocators is not scanned by the garbage collector. The
// typed helpers (Create, CreateArray, Unique, Shared, ...) reject element
// types that hold Go pointers with ErrPointerType.
package memory
