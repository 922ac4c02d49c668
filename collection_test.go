package fy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequenceCreateEmptyIsCanonical(t *testing.T) {
	b := NewBuilder()
	empty := b.SequenceCreate(nil, false)
	require.True(t, empty.IsInPlace(), "expected empty sequence to be in-place/canonical")
	require.Equal(t, emptySeqWord, empty.Word(), "expected canonical all-zero word")
}

func TestSequenceMutatorsReturnNewValues(t *testing.T) {
	b := NewBuilder()
	s := b.SequenceCreate([]Value{b.Int(1), b.Int(2), b.Int(3)}, false)
	appended := b.SequenceAppend(s, b.Int(4))

	_, n := s.SequenceGetItems()
	require.Equal(t, 3, n, "expected original sequence untouched at length 3")

	items, n := appended.SequenceGetItems()
	require.Equal(t, 4, n)
	require.Equal(t, int64(4), CastInt64Default(items[3], -1))
}

func TestSequenceInsertReplaceRemove(t *testing.T) {
	b := NewBuilder()
	s := b.SequenceCreate([]Value{b.Int(1), b.Int(3)}, false)
	withInsert := b.SequenceInsert(s, 1, b.Int(2))
	items, _ := withInsert.SequenceGetItems()
	for i, want := range []int64{1, 2, 3} {
		require.Equal(t, want, CastInt64Default(items[i], -1), "items[%d]", i)
	}

	replaced := b.SequenceReplace(withInsert, 0, b.Int(100))
	items, _ = replaced.SequenceGetItems()
	require.Equal(t, int64(100), CastInt64Default(items[0], -1), "expected items[0]=100 after replace")

	removed := b.SequenceRemove(replaced, 1)
	items, n := removed.SequenceGetItems()
	require.Equal(t, 2, n)
	require.Equal(t, int64(3), CastInt64Default(items[1], -1))
}

// S3-style mapping behavior exercised through the builder rather than
// hand-built Value literals.
func TestMappingCreateAndAssocDisassoc(t *testing.T) {
	b := NewBuilder()
	m, err := b.MappingCreate([]Pair{
		{Key: b.String("a"), Value: b.Int(1)},
		{Key: b.String("b"), Value: b.Int(2)},
	}, false)
	require.NoError(t, err)
	assoced := b.MappingAssoc(m, b.String("c"), b.Int(3))
	_, gotN := assoced.MappingGetPairs()
	require.Equal(t, 3, gotN, "expected 3 pairs after assoc")
	require.Equal(t, int64(3), CastInt64Default(assoced.MappingGetValue(b.String("c")), -1), "expected assoc to add key c")

	updated := b.MappingAssoc(m, b.String("a"), b.Int(100))
	require.Equal(t, int64(100), CastInt64Default(updated.MappingGetValue(b.String("a")), -1), "expected assoc on existing key to replace in place")
	updPairs, _ := updated.MappingGetPairs()
	require.Equal(t, "a", updPairs[0].Key.GetStringNoCheck(), "expected assoc-replace to preserve original position")

	disassoced := b.MappingDisassoc(m, b.String("a"))
	require.True(t, disassoced.MappingGetValue(b.String("a")).IsInvalid(), "expected disassoc to remove key a")
}

func TestMappingDuplicateKeyRejection(t *testing.T) {
	b := NewBuilder(WithDuplicateKeyRejection(true))
	_, err := b.MappingCreate([]Pair{
		{Key: b.String("a"), Value: b.Int(1)},
		{Key: b.String("a"), Value: b.Int(2)},
	}, false)
	require.Error(t, err, "expected duplicate-key rejection to error")
}
