package debugblock

import (
	"bytes"
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/allockit/internal/align"
	"github.com/joshuapare/allockit/internal/logger"
)

// quietLogger routes diagnostics into a buffer for the duration of a test.
func quietLogger(t testing.TB) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	prev := logger.L
	logger.Init(logger.Options{Output: &out})
	t.Cleanup(func() { logger.L = prev })
	return &out
}

// expectCorruption runs fn and requires it to panic with a *CorruptionError of kind.
func expectCorruption(t testing.TB, kind Kind, fn func()) (cerr *CorruptionError) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected %s report", kind)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.As(err, &cerr), "panic value %T is not a *CorruptionError", r)
		require.Equal(t, kind, cerr.Kind, "unexpected report: %v", cerr)
	}()
	fn()
	return nil
}

// testHeap is a raw allocator over Go slices that remembers every block it
// hands out so tests can inspect and corrupt them.
type testHeap struct {
	blocks  map[uintptr][]byte
	allocs  int
	frees   int
	lastLen uintptr
	lastAl  uintptr
	fail    error
}

func newTestHeap() *testHeap {
	return &testHeap{blocks: make(map[uintptr][]byte)}
}

func (h *testHeap) alloc(size, a uintptr) (unsafe.Pointer, error) {
	h.allocs++
	if h.fail != nil {
		return nil, h.fail
	}
	raw := make([]byte, size+a)
	base := uintptr(unsafe.Pointer(&raw[0]))
	off := align.Up(base, a) - base
	block := raw[off : off+size]
	p := unsafe.Pointer(&block[0])
	h.blocks[uintptr(p)] = block
	return p, nil
}

func (h *testHeap) free(ptr unsafe.Pointer, size, a uintptr) {
	h.frees++
	h.lastLen, h.lastAl = size, a
}

// block returns the backing slice of the block that holds user pointer p.
func (h *testHeap) block(t testing.TB, p unsafe.Pointer, a uintptr) []byte {
	t.Helper()
	b, ok := h.blocks[uintptr(p)-UserOffset(align.Effective(a))]
	require.True(t, ok, "pointer %p not from this heap", p)
	return b
}
