package fy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func seqItems(t *testing.T, v Value) []int64 {
	t.Helper()
	items, _ := v.SequenceGetItems()
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = CastInt64Default(it, -1)
	}
	return out
}

func TestOpCreateSeqAndItems(t *testing.T) {
	b := NewBuilder()
	res, err := b.Op(OpCreateSeq, OpArgs{Items: []Value{b.Int(1), b.Int(2)}})
	require.NoError(t, err)
	require.True(t, res.Value.IsSequence())
	items, err := b.Op(OpItems, OpArgs{Target: res.Value})
	require.NoError(t, err)
	require.Len(t, items.Items, 2)
}

func TestOpCreateMapDuplicateKeyErrors(t *testing.T) {
	b := NewBuilder()
	_, err := b.Op(OpCreateMap, OpArgs{Pairs: []Pair{
		{Key: b.String("a"), Value: b.Int(1)},
		{Key: b.String("a"), Value: b.Int(2)},
	}})
	require.Error(t, err, "expected a duplicate-key error")
}

func TestOpAppendAssocDisassoc(t *testing.T) {
	b := NewBuilder()
	seq := b.SequenceCreate([]Value{b.Int(1)}, false)
	res, err := b.Op(OpAppend, OpArgs{Target: seq, Item: b.Int(2)})
	require.NoError(t, err)
	got := seqItems(t, res.Value)
	require.Equal(t, []int64{1, 2}, got)

	m, err := b.MappingCreate(nil, false)
	require.NoError(t, err)
	res, err = b.Op(OpAssoc, OpArgs{Target: m, Key: b.String("k"), Value: b.Int(9)})
	require.NoError(t, err)
	require.Equal(t, int64(9), CastInt64Default(res.Value.MappingGetValue(b.String("k")), -1))

	res, err = b.Op(OpDisassoc, OpArgs{Target: res.Value, Key: b.String("k")})
	require.NoError(t, err)
	require.True(t, res.Value.MappingGetValue(b.String("k")).IsInvalid(), "expected key to be gone after disassoc")
}

func TestOpKeysValuesContains(t *testing.T) {
	b := NewBuilder()
	m, err := b.MappingCreate([]Pair{
		{Key: b.String("a"), Value: b.Int(1)},
		{Key: b.String("b"), Value: b.Int(2)},
	}, false)
	require.NoError(t, err)
	keys, err := b.Op(OpKeys, OpArgs{Target: m})
	require.NoError(t, err)
	require.Len(t, keys.Items, 2)
	vals, err := b.Op(OpValues, OpArgs{Target: m})
	require.NoError(t, err)
	require.Len(t, vals.Items, 2)

	contains, err := b.Op(OpContains, OpArgs{Target: m, Key: b.String("a")})
	require.NoError(t, err)
	require.True(t, contains.Bool, "expected contains(a) = true")

	contains, err = b.Op(OpContains, OpArgs{Target: m, Key: b.String("z")})
	require.NoError(t, err)
	require.False(t, contains.Bool, "expected contains(z) = false")
}

func TestOpConcatMergeReverse(t *testing.T) {
	b := NewBuilder()
	s1 := b.SequenceCreate([]Value{b.Int(1), b.Int(2)}, false)
	s2 := b.SequenceCreate([]Value{b.Int(3)}, false)
	res, err := b.Op(OpConcat, OpArgs{Items: []Value{s1, s2}})
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3}, seqItems(t, res.Value))

	rev, err := b.Op(OpReverse, OpArgs{Target: res.Value})
	require.NoError(t, err)
	require.Equal(t, []int64{3, 2, 1}, seqItems(t, rev.Value))

	m1, _ := b.MappingCreate([]Pair{{Key: b.String("a"), Value: b.Int(1)}}, false)
	m2, _ := b.MappingCreate([]Pair{{Key: b.String("a"), Value: b.Int(2)}, {Key: b.String("b"), Value: b.Int(3)}}, false)
	merged, err := b.Op(OpMerge, OpArgs{Items: []Value{m1, m2}})
	require.NoError(t, err)
	_, n := merged.Value.MappingGetPairs()
	require.Equal(t, 2, n, "expected 2 pairs after merge")
	require.Equal(t, int64(2), CastInt64Default(merged.Value.MappingGetValue(b.String("a")), -1), "expected merge to let m2 override m1's \"a\"")
}

func TestOpUniqueAndSort(t *testing.T) {
	b := NewBuilder()
	seq := b.SequenceCreate([]Value{b.Int(3), b.Int(1), b.Int(3), b.Int(2)}, false)
	uniq, err := b.Op(OpUnique, OpArgs{Target: seq})
	require.NoError(t, err)
	require.Len(t, seqItems(t, uniq.Value), 3)

	sorted, err := b.Op(OpSort, OpArgs{Target: seq})
	require.NoError(t, err)
	got := seqItems(t, sorted.Value)
	require.Equal(t, int64(1), got[0])
	require.Equal(t, int64(3), got[len(got)-1])
}

func TestOpFilterAndMapSequentialAndParallel(t *testing.T) {
	b := NewBuilder()
	seq := b.SequenceCreate([]Value{b.Int(1), b.Int(2), b.Int(3), b.Int(4)}, false)
	for _, parallel := range []bool{false, true} {
		filtered, err := b.Op(OpFilter, OpArgs{
			Target:    seq,
			Parallel:  parallel,
			Predicate: func(v Value) bool { return CastInt64Default(v, 0)%2 == 0 },
		})
		require.NoError(t, err, "parallel=%v", parallel)
		require.Equal(t, []int64{2, 4}, seqItems(t, filtered.Value), "parallel=%v", parallel)

		mapped, err := b.Op(OpMap, OpArgs{
			Target:    seq,
			Parallel:  parallel,
			Transform: func(v Value) Value { return b.Int(CastInt64Default(v, 0) * 10) },
		})
		require.NoError(t, err, "parallel=%v", parallel)
		require.Equal(t, []int64{10, 20, 30, 40}, seqItems(t, mapped.Value), "parallel=%v", parallel)
	}
}

func TestOpReduce(t *testing.T) {
	b := NewBuilder()
	seq := b.SequenceCreate([]Value{b.Int(1), b.Int(2), b.Int(3)}, false)
	res, err := b.Op(OpReduce, OpArgs{
		Target: seq,
		Init:   b.Int(0),
		Reducer: func(acc, v Value) Value {
			return b.Int(CastInt64Default(acc, 0) + CastInt64Default(v, 0))
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), CastInt64Default(res.Value, -1), "expected reduce sum 6")
}

func TestOpGetGetAtGetAtPathSet(t *testing.T) {
	b := NewBuilder()
	inner := b.SequenceCreate([]Value{b.Int(10), b.Int(20)}, false)
	m, err := b.MappingCreate([]Pair{{Key: b.String("nums"), Value: inner}}, false)
	require.NoError(t, err)

	res, err := b.Op(OpGet, OpArgs{Target: m, Key: b.String("nums")})
	require.NoError(t, err)
	require.True(t, res.Value.IsSequence())

	at, err := b.Op(OpGetAt, OpArgs{Target: inner, Index: 1})
	require.NoError(t, err)
	require.Equal(t, int64(20), CastInt64Default(at.Value, -1))

	path, err := b.Op(OpGetAtPath, OpArgs{Target: m, Path: []Value{b.String("nums"), b.Int(0)}})
	require.NoError(t, err)
	require.Equal(t, int64(10), CastInt64Default(path.Value, -1))

	set, err := b.Op(OpSet, OpArgs{Target: inner, Index: 0, Value: b.Int(99)})
	require.NoError(t, err)
	require.Equal(t, int64(99), seqItems(t, set.Value)[0])
}

func TestOpParseAndEmitRoundTrip(t *testing.T) {
	b := NewBuilder()
	parsed, err := b.Op(OpParse, OpArgs{Reader: strings.NewReader("[1, 2, 3]\n")})
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3}, seqItems(t, parsed.Value))

	sink := newRecordingSink()
	_, err = b.Op(OpEmit, OpArgs{Sink: sink, DocState: DocumentState{Root: parsed.Value}})
	require.NoError(t, err)
	require.NotEmpty(t, sink.events, "expected emit to produce events")
	require.Equal(t, StreamStartEvent, sink.events[0].Type)
}
