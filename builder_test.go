package fy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderIntInlineVsOutOfPlace(t *testing.T) {
	b := NewBuilder()
	small := b.Int(42)
	require.True(t, small.IsInPlace(), "expected small int to build in-place")
	big := b.Int(math.MaxInt64)
	require.False(t, big.IsInPlace(), "expected int above inline range to build out-of-place")
	require.Equal(t, int64(math.MaxInt64), CastInt64Default(big, 0), "expected round-trip of out-of-place int")
}

func TestBuilderUintAboveSignedMax(t *testing.T) {
	b := NewBuilder()
	v := b.Uint(math.MaxUint64)
	require.True(t, v.IsUnsignedNoCheck(), "expected unsigned-range-extend flag set")
	require.Equal(t, uint64(math.MaxUint64), CastUint64Default(v, 0), "expected exact round-trip")
	require.Equal(t, int64(-7), CastInt64Default(v, -7), "expected signed cast of overflowing value to return default")
}

func TestBuilderFloatInlineAlwaysAndDoubleConditionally(t *testing.T) {
	b := NewBuilder()
	f := b.Float(3.5)
	require.True(t, f.IsInPlace(), "expected Float to always inline-pack")

	exact := b.Double(2.5) // exact in float32
	require.True(t, exact.IsInPlace(), "expected float32-exact double to inline-pack")

	lossy := b.Double(math.Pi) // not exactly representable in float32
	require.False(t, lossy.IsInPlace(), "expected float32-lossy double to build out-of-place")
	require.Equal(t, math.Pi, CastFloat64Default(lossy, 0), "expected exact double round-trip")
}

// S4 (dedup).
func TestScenarioS4Dedup(t *testing.T) {
	b := NewBuilder(WithDedup(true))
	s := "xyz_long_enough_to_be_out_of_place"
	v1 := b.String(s)
	v2 := b.String(s)
	require.False(t, v1.IsInPlace(), "test string must be long enough to go out-of-place")
	require.Equal(t, v1.Word(), v2.Word(), "expected dedup-enabled identical strings to be word-equal")
}

func TestBuilderDedupDisabledProducesDistinctStorage(t *testing.T) {
	b := NewBuilder(WithDedup(false))
	s := "xyz_long_enough_to_be_out_of_place"
	v1 := b.String(s)
	v2 := b.String(s)
	require.NotEqual(t, v1.Word(), v2.Word(), "expected dedup-disabled identical strings to allocate distinct storage")
	require.Equal(t, 0, Compare(v1, v2), "expected content-equal strings to still compare equal without dedup")
}

func TestBuilderStringInlineBoundary(t *testing.T) {
	b := NewBuilder()
	short := b.String("1234567") // 7 bytes
	require.True(t, short.IsInPlace(), "expected a 7-byte string to inline-pack")
	long := b.String("12345678") // 8 bytes
	require.False(t, long.IsInPlace(), "expected an 8-byte string to build out-of-place")
}

func TestAllocationFailureReturnsInvalid(t *testing.T) {
	tiny := newTinyFailingAllocator()
	b := NewBuilder(WithAllocator(tiny))
	v := b.String("this string is definitely long enough to escape inline packing")
	require.True(t, v.IsInvalid(), "expected a failed allocation to yield Invalid")
	require.Equal(t, int64(1), b.AllocationFailures(), "expected one counted allocation failure")
}
