package fy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// These exercise decodeIntRecord/decodeFloatRecord/stringLen directly
// against the raw bytes an out-of-place Builder constructor actually
// stores, proving the encode/decode pair the record layout relies on is
// a true round trip rather than a one-way encoder.

func TestIntRecordRoundTripsThroughRawBytes(t *testing.T) {
	b := NewBuilder()
	v := b.Int(inlineIntMax + 1)
	require.False(t, v.IsInPlace())

	got := decodeIntRecord(v.src.data)
	require.Equal(t, inlineIntMax+1, got.v)
	require.False(t, got.unsignedExtend)
}

func TestUintRecordRoundTripsUnsignedExtendFlag(t *testing.T) {
	b := NewBuilder()
	v := b.Uint(uint64(math.MaxInt64) + 1)
	require.False(t, v.IsInPlace())

	got := decodeIntRecord(v.src.data)
	require.True(t, got.unsignedExtend)
	require.Equal(t, uint64(math.MaxInt64)+1, uint64(got.v))
}

func TestFloatRecordRoundTripsThroughRawBytes(t *testing.T) {
	b := NewBuilder()
	v := b.Double(math.Pi)
	require.False(t, v.IsInPlace())

	require.Equal(t, math.Pi, decodeFloatRecord(v.src.data))
}

func TestStringRecordLengthPrefixRoundTrips(t *testing.T) {
	b := NewBuilder()
	s := "a string long enough to need out-of-place storage"
	v := b.String(s)
	require.False(t, v.IsInPlace())

	n, width := stringLen(v.src.data)
	require.Equal(t, uint64(len(s)), n)
	require.Equal(t, s, string(v.src.data[width:width+int(n)]))
}
