package fy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildLocalSucceedsWithSmallBuffer(t *testing.T) {
	v := BuildLocal(func(b *Builder) Value {
		return b.Int(42)
	})
	require.Equal(t, int64(42), CastInt64Default(v, -1))
}

func TestBuildLocalDoublesUntilLargeStringFits(t *testing.T) {
	big := make([]byte, 10_000)
	for i := range big {
		big[i] = 'x'
	}
	s := string(big)
	v := BuildLocal(func(b *Builder) Value {
		return b.String(s)
	})
	require.Equal(t, s, CastStringDefault(v, ""), "expected large string to eventually fit after doubling")
}
