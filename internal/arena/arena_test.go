package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinearAllocAndExhaustion(t *testing.T) {
	l := NewLinear(make([]byte, 16))
	tag := l.Tag()
	a, ok := l.Alloc(tag, 8, 1)
	require.True(t, ok)
	require.Len(t, a, 8)
	b, ok := l.Alloc(tag, 8, 1)
	require.True(t, ok)
	require.Len(t, b, 8)
	_, ok = l.Alloc(tag, 1, 1)
	require.False(t, ok, "expected exhausted Linear to fail")
	info := l.Info(tag)
	require.Equal(t, int64(2), info.Allocations)
	require.Equal(t, int64(16), info.BytesAllocated)
}

func TestLinearResetInvalidatesGeneration(t *testing.T) {
	l := NewLinear(make([]byte, 16))
	tag := l.Tag()
	data, _ := l.Store(tag, []byte("hello"), 1)
	require.True(t, l.Contains(tag, data), "expected fresh allocation to be contained")
	g0 := l.Generation(tag)
	l.Reset(tag)
	require.NotEqual(t, g0, l.Generation(tag), "expected generation to change after Reset")
}

func TestAutoGrowsAcrossBlocks(t *testing.T) {
	a := NewAuto()
	tag := a.NewTag()
	total := 0
	for i := 0; i < 2000; i++ {
		data, ok := a.Store(tag, []byte("some out-of-place bytes"), 8)
		require.True(t, ok, "Store failed at iteration %d", i)
		total += len(data)
	}
	info := a.Info(tag)
	require.Equal(t, int64(2000), info.Allocations)
	require.Equal(t, int64(total), info.BytesAllocated)
}

func TestAutoContainsAndReset(t *testing.T) {
	a := NewAuto()
	tag := a.NewTag()
	data, ok := a.Store(tag, []byte("abc"), 1)
	require.True(t, ok, "Store failed")
	require.True(t, a.Contains(tag, data), "expected Contains to be true right after Store")
	other := a.NewTag()
	require.False(t, a.Contains(other, data), "data from tag should not be contained in a different tag")
	a.Reset(tag)
	require.False(t, a.Contains(tag, data), "expected Contains to be false after Reset")
}

func TestAlignment(t *testing.T) {
	a := NewAuto()
	tag := a.NewTag()
	_, ok := a.Alloc(tag, 1, 1)
	require.True(t, ok, "Alloc(1,1) failed")
	data, ok := a.Alloc(tag, 8, 8)
	require.True(t, ok, "Alloc(8,8) failed")
	require.Zero(t, addr(data)%8, "expected 8-byte alignment")
}
