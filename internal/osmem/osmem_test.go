package osmem

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/allockit/internal/buf"
)

func TestPageSize(t *testing.T) {
	ps := PageSize()
	require.NotZero(t, ps)
	assert.Zero(t, ps&(ps-1), "page size %d is not a power of two", ps)
}

func TestMappedSize(t *testing.T) {
	ps := PageSize()

	n, ok := MappedSize(1)
	require.True(t, ok)
	assert.Equal(t, ps, n)

	n, ok = MappedSize(ps + 1)
	require.True(t, ok)
	assert.Equal(t, 2*ps, n)

	_, ok = MappedSize(buf.MaxUintptr)
	assert.False(t, ok)
}

func TestAllocFree(t *testing.T) {
	tests := []struct {
		name  string
		size  uintptr
		align uintptr
	}{
		{"default", 100, 0},
		{"page", 3 * PageSize(), PageSize()},
		{"small align", 10, 16},
		{"over page", 5000, 4 * PageSize()},
		{"huge align", 1, 1 << 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Alloc(tt.size, tt.align)
			require.NoError(t, err)
			require.NotNil(t, p)
			if tt.align != 0 {
				assert.Zero(t, uintptr(p)%tt.align)
			}

			mem := buf.Bytes(p, tt.size)
			for i := range mem {
				require.Zero(t, mem[i], "byte %d not zeroed", i)
				mem[i] = byte(i)
			}
			assert.Equal(t, byte(tt.size-1), mem[tt.size-1])

			require.NoError(t, Free(p, tt.size, tt.align))
		})
	}
}

func TestAllocRejects(t *testing.T) {
	_, err := Alloc(0, 0)
	assert.ErrorIs(t, err, ErrZeroSize)

	_, err = Alloc(64, 48)
	assert.ErrorIs(t, err, ErrBadAlignment)

	_, err = Alloc(buf.MaxUintptr, 0)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFreeNil(t *testing.T) {
	assert.NoError(t, Free(nil, 64, 0))
	var x [8]byte
	assert.NoError(t, Free(unsafe.Pointer(&x), 0, 0))
}

func TestRetireKeepsFirstPage(t *testing.T) {
	ps := PageSize()
	for _, size := range []uintptr{64, ps, 3*ps + 1} {
		p, err := Alloc(size, 0)
		require.NoError(t, err)
		mem := buf.Bytes(p, 16)
		mem[0], mem[15] = 0xA1, 0xB2

		require.NoError(t, Retire(p, size, 0))
		assert.Equal(t, byte(0xA1), mem[0], "size %d", size)
		assert.Equal(t, byte(0xB2), mem[15], "size %d", size)
	}
	assert.NoError(t, Retire(nil, 64, 0))
}

func TestCommitLimit(t *testing.T) {
	limit := CommitLimit()
	assert.Equal(t, limit, CommitLimit())
	switch runtime.GOOS {
	case "linux", "darwin", "freebsd", "windows":
		assert.NotZero(t, limit)
		assert.GreaterOrEqual(t, limit, uint64(PageSize()))
	}
}
