package fy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromTextScalar(t *testing.T) {
	b := NewBuilder()
	v, err := FromText(strings.NewReader("42\n"), b)
	require.NoError(t, err)
	require.True(t, v.IsInt())
	require.Equal(t, int64(42), CastInt64Default(v, -1))
}

func TestFromTextSequence(t *testing.T) {
	b := NewBuilder()
	v, err := FromText(strings.NewReader("[1, 2, 3]\n"), b)
	require.NoError(t, err)
	require.True(t, v.IsSequence())
	items, n := v.SequenceGetItems()
	require.Equal(t, 3, n)
	for i, want := range []int64{1, 2, 3} {
		require.Equal(t, want, CastInt64Default(items[i], -1), "item %d", i)
	}
}

func TestFromTextMapping(t *testing.T) {
	b := NewBuilder()
	v, err := FromText(strings.NewReader("a: 1\nb: 2\n"), b)
	require.NoError(t, err)
	require.True(t, v.IsMapping())
	pairs, n := v.MappingGetPairs()
	require.Equal(t, 2, n)
	require.Equal(t, "a", CastStringDefault(pairs[0].Key, ""))
	require.Equal(t, int64(1), CastInt64Default(pairs[0].Value, -1))
}

func TestFromTextAnchorAndAlias(t *testing.T) {
	b := NewBuilder()
	v, err := FromText(strings.NewReader("- &a 7\n- *a\n"), b)
	require.NoError(t, err)
	items, n := v.SequenceGetItems()
	require.Equal(t, 2, n)
	require.True(t, items[0].IsIndirect(), "expected first item to carry an anchor decoration")
	require.True(t, items[1].IsAlias(), "expected second item to be an alias")
}

func TestFromTextUnknownAnchorErrors(t *testing.T) {
	b := NewBuilder()
	_, err := FromText(strings.NewReader("*missing\n"), b)
	require.Error(t, err, "expected an error referencing an unknown anchor")
}

func TestFromTextEmptyStream(t *testing.T) {
	b := NewBuilder()
	v, err := FromText(strings.NewReader(""), b)
	require.NoError(t, err)
	require.True(t, v.IsInvalid(), "expected Invalid for an empty stream")
}
