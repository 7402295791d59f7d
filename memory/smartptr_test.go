package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnique(t *testing.T) {
	c := &countingAllocator{}
	u, err := MakeUnique(c, point{X: 3})
	require.NoError(t, err)
	require.False(t, u.Empty())
	assert.Equal(t, int32(3), u.Get().X)

	var other Unique[point]
	u.Swap(&other)
	assert.True(t, u.Empty())
	assert.Equal(t, int32(3), other.Get().X)

	other.Reset()
	assert.True(t, other.Empty())
	assert.Equal(t, 1, c.frees)
	other.Reset()
	assert.Equal(t, 1, c.frees)
}

func TestUniqueRelease(t *testing.T) {
	u, err := MakeUnique[int64](nil, 7)
	require.NoError(t, err)
	p := u.Release()
	assert.True(t, u.Empty())
	assert.Equal(t, int64(7), *p)

	adopted := AdoptUnique(nil, p)
	assert.Equal(t, p, adopted.Get())
	adopted.Reset()
}

func TestUniqueArray(t *testing.T) {
	u, err := MakeUniqueArray[uint16](SystemAllocator{}, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, u.Len())

	p, err := u.At(4)
	require.NoError(t, err)
	*p = 9
	assert.Equal(t, uint16(9), u.Slice()[4])

	for _, i := range []int{5, -1, 100} {
		_, err = u.At(i)
		assert.ErrorIs(t, err, ErrResourceOverrun)
		var oerr *OverrunError
		require.True(t, errors.As(err, &oerr))
		assert.Equal(t, i, oerr.Index)
		assert.Equal(t, 5, oerr.Len)
	}

	var other UniqueArray[uint16]
	other.Swap(&u)
	assert.Zero(t, u.Len())
	assert.Equal(t, 5, other.Len())
	other.Reset()
	assert.Zero(t, other.Len())

	u2, err := MakeUniqueArray[uint16](nil, 2)
	require.NoError(t, err)
	s := u2.Release()
	assert.Len(t, s, 2)
	DeleteArray(nil, s)
}

func TestShared(t *testing.T) {
	c := &countingAllocator{}
	s, err := MakeShared(c, point{Y: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.UseCount())
	assert.True(t, s.Unique())

	s2 := s.Clone()
	assert.Equal(t, int64(2), s.UseCount())
	assert.Equal(t, int64(2), s2.UseCount())
	assert.Same(t, s.Get(), s2.Get())
	assert.False(t, s.Unique())

	s.Reset()
	assert.Zero(t, s.UseCount())
	assert.Nil(t, s.Get())
	assert.Zero(t, c.frees, "value still owned by the clone")
	assert.True(t, s2.Unique())

	s2.Reset()
	assert.Equal(t, 2, c.frees, "value and counter released")
}

func TestShareUnique(t *testing.T) {
	u, err := MakeUnique[int32](nil, 11)
	require.NoError(t, err)
	p := u.Get()

	s, err := ShareUnique(&u)
	require.NoError(t, err)
	assert.True(t, u.Empty())
	assert.Same(t, p, s.Get())
	assert.Equal(t, int64(1), s.UseCount())
	s.Reset()

	var empty Unique[int32]
	s, err = ShareUnique(&empty)
	require.NoError(t, err)
	assert.Zero(t, s.UseCount())
}

func TestSharedConcurrentClone(t *testing.T) {
	s, err := MakeShared[uint64](nil, 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 16 {
		c := s.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			inner := c.Clone()
			inner.Reset()
			c.Reset()
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), s.UseCount())
	s.Reset()
}

func TestSharedArray(t *testing.T) {
	s, err := MakeSharedArray[int32](nil, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	clone := s.Clone()
	p, err := clone.At(2)
	require.NoError(t, err)
	*p = -5
	assert.Equal(t, int32(-5), s.Slice()[2])
	assert.Equal(t, int64(2), s.UseCount())

	_, err = s.At(3)
	assert.ErrorIs(t, err, ErrResourceOverrun)

	var other SharedArray[int32]
	other.Swap(&clone)
	assert.Zero(t, clone.UseCount())
	other.Reset()
	assert.True(t, s.Unique())
	s.Reset()
	assert.Zero(t, s.Len())

	u, err := MakeUniqueArray[int32](nil, 4)
	require.NoError(t, err)
	sa, err := ShareUniqueArray(&u)
	require.NoError(t, err)
	assert.Equal(t, 4, sa.Len())
	assert.Zero(t, u.Len())
	sa.Reset()
}
