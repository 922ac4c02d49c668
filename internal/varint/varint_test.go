package varint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, 1 << 40, ^uint64(0)}
	for _, v := range values {
		buf := Encode(nil, v)
		got, n := DecodeNoCheck(buf)
		require.Equal(t, v, got)
		require.Equal(t, len(buf), n)
		require.Equal(t, len(buf), SkipNoCheck(buf))
	}
}

func TestMinimalEncoding(t *testing.T) {
	require.Len(t, Encode(nil, 0), 1)
	require.Len(t, Encode(nil, 127), 1)
	require.Len(t, Encode(nil, 128), 2)
}
