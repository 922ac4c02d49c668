package fy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildScalarCoversMatrix(t *testing.T) {
	b := NewBuilder()
	cases := []struct {
		name string
		v    Value
		want func(Value) bool
	}{
		{"int8", BuildScalar(b, int8(5)), func(v Value) bool { return CastInt64Default(v, -1) == 5 }},
		{"uint32", BuildScalar(b, uint32(9)), func(v Value) bool { return CastUint64Default(v, 0) == 9 }},
		{"float32", BuildScalar(b, float32(1.5)), func(v Value) bool { return v.IsFloat() }},
		{"string", BuildScalar(b, "short"), func(v Value) bool { return CastStringDefault(v, "") == "short" }},
		{"bool", BuildScalar(b, true), func(v Value) bool { return CastBoolDefault(v, false) == true }},
	}
	for _, c := range cases {
		require.True(t, c.want(c.v), "%s: unexpected value %v", c.name, c.v)
	}
}

func TestScalarCodecInPlacePredicateMatchesBuilder(t *testing.T) {
	b := NewBuilder()
	require.True(t, Int64Codec.InPlace(42), "expected 42 to be in-place by the codec's predicate")
	v := Int64Codec.Build(b, 42)
	require.True(t, v.IsInPlace(), "expected codec's predicate to agree with the builder's actual result")
}
