package memory

import (
	"context"
	"sync/atomic"
)

// global holds the active allocator. nil means the default NativeAllocator.
var global atomic.Pointer[Allocator]

// GlobalAllocator returns the process-wide allocator.
func GlobalAllocator() Allocator {
	if p := global.Load(); p != nil {
		return *p
	}
	return NativeAllocator{}
}

// SetGlobalAllocator makes a the process-wide allocator. Passing nil resets
// to the default. The registry does not own a: memory allocated through the
// previous allocator must still be released through it.
func SetGlobalAllocator(a Allocator) {
	if a == nil {
		global.Store(nil)
		return
	}
	global.Store(&a)
}

// ResetGlobalAllocator restores the default NativeAllocator.
func ResetGlobalAllocator() {
	global.Store(nil)
}

// Use returns a, or the global allocator when a is nil.
func Use(a Allocator) Allocator {
	if a != nil {
		return a
	}
	return GlobalAllocator()
}

type ctxKey struct{}

// WithAllocator returns a copy of ctx carrying a.
func WithAllocator(ctx context.Context, a Allocator) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the allocator carried by ctx, falling back to the
// global allocator.
func FromContext(ctx context.Context) Allocator {
	if a, ok := ctx.Value(ctxKey{}).(Allocator); ok && a != nil {
		return a
	}
	return GlobalAllocator()
}
