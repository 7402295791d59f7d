package debugblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/allockit/internal/align"
	"github.com/joshuapare/allockit/internal/buf"
)

func TestHeaderSize(t *testing.T) {
	switch buf.PtrSize {
	case 8:
		assert.Equal(t, uintptr(18), HeaderSize)
	case 4:
		assert.Equal(t, uintptr(10), HeaderSize)
	}
}

func TestBlockSize(t *testing.T) {
	tests := []struct {
		size, align, want uintptr
	}{
		// equal on every architecture due to high alignment
		{0x0000_FFFF, 32, 0x0001_0040},
		{0x1000_0000, 128, 0x1000_0100},
		{0xFFFF_0000, 512, 0xFFFF_0400},
	}
	if buf.PtrSize == 8 {
		tests = append(tests,
			struct{ size, align, want uintptr }{128, 2, 154},
			struct{ size, align, want uintptr }{4096, 8, 4128},
		)
	} else {
		tests = append(tests,
			struct{ size, align, want uintptr }{128, 2, 146},
			struct{ size, align, want uintptr }{4096, 8, 4120},
		)
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BlockSize(tt.size, tt.align), "BlockSize(%#x, %d)", tt.size, tt.align)
	}
}

func TestBlockSizeProperties(t *testing.T) {
	aligns := []uintptr{1, 2, 4, 8, 16, 32, 64, 128, 512, 4096}
	for _, a := range aligns {
		for size := uintptr(0); size < 300; size += 7 {
			bs := BlockSize(size, a)
			assert.GreaterOrEqual(t, bs, HeaderSize+2*SentinelSize+size, "size=%d align=%d", size, a)
			assert.Zero(t, bs%a, "BlockSize(%d, %d)=%d not a multiple of align", size, a, bs)
			assert.Equal(t, bs, BlockSize(size, a), "BlockSize must be pure")
			assert.Zero(t, UserOffset(a)%a, "user offset must be aligned")
			assert.Equal(t, bs, PaddingOffset(size, a)+BlockPaddingSize(bs, size, a))
		}
	}
}

func TestBlockSizeOverflowSafe(t *testing.T) {
	bs, ok := blockSizeOverflowSafe(4096, 8)
	require.True(t, ok)
	assert.Equal(t, BlockSize(4096, 8), bs)

	_, ok = blockSizeOverflowSafe(buf.MaxUintptr-16, 16)
	assert.False(t, ok)
	_, ok = blockSizeOverflowSafe(buf.MaxUintptr-UserOffset(16)-SentinelSize+1, 16)
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	l := Describe(100, 32)
	require.Equal(t, BlockSize(100, 32), l.BlockSize)

	names := make([]string, 0, len(l.Regions))
	var next uintptr
	for _, r := range l.Regions {
		names = append(names, r.Name)
		assert.Equal(t, next, r.Offset, "regions must be contiguous at %s", r.Name)
		next = r.Offset + r.Size
	}
	assert.Equal(t, l.BlockSize, next, "regions must cover the block")
	assert.Equal(t, []string{
		"header", "header padding", "underrun sentinel",
		"user block", "overrun sentinel", "block padding",
	}, names)

	// align 1: no header padding, no block padding
	l = Describe(37, 1)
	for _, r := range l.Regions {
		assert.NotEqual(t, "header padding", r.Name)
		assert.NotEqual(t, "block padding", r.Name)
	}
}

func TestPlan(t *testing.T) {
	l, err := Plan(37, 1)
	require.NoError(t, err)
	assert.Equal(t, align.Default, l.Align)
	assert.Equal(t, align.Up(37, align.Default), l.Size)
	assert.Equal(t, BlockSize(l.Size, l.Align), l.BlockSize)

	l, err = Plan(100, 256)
	require.NoError(t, err)
	assert.Equal(t, uintptr(256), l.Align)
	assert.Equal(t, uintptr(256), l.Size)
	assert.Equal(t, uintptr(768), l.BlockSize)

	_, err = Plan(buf.MaxUintptr-8, 0)
	assert.ErrorIs(t, err, ErrSizeOverflow)
}
