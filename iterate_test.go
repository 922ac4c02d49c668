package fy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, it *Iterator) []IterEvent {
	t.Helper()
	var out []IterEvent
	for {
		ev, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, ev)
	}
	require.NoError(t, it.Err())
	return out
}

func TestIteratorScalarStreamScope(t *testing.T) {
	b := NewBuilder()
	it := NewIterator(b.Int(7), ScopeStreamDocumentBody)
	evs := drain(t, it)

	wantTypes := []EventType{StreamStartEvent, DocumentStartEvent, ScalarEvent, DocumentEndEvent, StreamEndEvent}
	require.Len(t, evs, len(wantTypes))
	for i, want := range wantTypes {
		require.Equal(t, want, evs[i].Type, "event %d", i)
	}
	require.Equal(t, "7", evs[2].Text)
	require.True(t, it.Done(), "expected iterator to be done")
}

func TestIteratorBodyOnlyScope(t *testing.T) {
	b := NewBuilder()
	it := NewIterator(b.Bool(true), ScopeBodyOnly)
	evs := drain(t, it)
	require.Len(t, evs, 1)
	require.Equal(t, ScalarEvent, evs[0].Type)
	require.Equal(t, "true", evs[0].Text)
}

func TestIteratorDocumentBodyScope(t *testing.T) {
	b := NewBuilder()
	it := NewIterator(b.Null(), ScopeDocumentBody)
	evs := drain(t, it)
	wantTypes := []EventType{DocumentStartEvent, ScalarEvent, DocumentEndEvent}
	require.Len(t, evs, len(wantTypes))
	for i, want := range wantTypes {
		require.Equal(t, want, evs[i].Type, "event %d", i)
	}
}

func TestIteratorSequence(t *testing.T) {
	b := NewBuilder()
	seq := b.SequenceCreate([]Value{b.Int(1), b.Int(2)}, false)
	it := NewIterator(seq, ScopeBodyOnly)
	evs := drain(t, it)

	wantTypes := []EventType{SequenceStartEvent, ScalarEvent, ScalarEvent, SequenceEndEvent}
	require.Len(t, evs, len(wantTypes))
	for i, want := range wantTypes {
		require.Equal(t, want, evs[i].Type, "event %d", i)
	}
	require.True(t, evs[0].Value.IsSequence(), "start event should carry the sequence value")
	require.True(t, evs[3].Value.IsSequence(), "end event should carry the sequence value")
}

func TestIteratorMapping(t *testing.T) {
	b := NewBuilder()
	m, err := b.MappingCreate([]Pair{{Key: b.String("a"), Value: b.Int(1)}}, false)
	require.NoError(t, err)
	it := NewIterator(m, ScopeBodyOnly)
	evs := drain(t, it)

	wantTypes := []EventType{MappingStartEvent, ScalarEvent, ScalarEvent, MappingEndEvent}
	require.Len(t, evs, len(wantTypes))
	require.Equal(t, "a", evs[1].Text)
	require.Equal(t, "1", evs[2].Text)
}

func TestIteratorAnchorAndAlias(t *testing.T) {
	b := NewBuilder()
	anchored := b.IndirectCreate(IndirectParts{Value: b.Int(9), Anchor: "a"})
	seq := b.SequenceCreate([]Value{anchored, b.AliasCreate("a")}, false)
	it := NewIterator(seq, ScopeBodyOnly)
	evs := drain(t, it)

	wantTypes := []EventType{SequenceStartEvent, ScalarEvent, AliasEvent, SequenceEndEvent}
	require.Len(t, evs, len(wantTypes))
	require.Equal(t, "a", evs[1].Anchor, "expected anchored scalar to carry anchor")
	require.Equal(t, "a", evs[2].Anchor, "expected alias to reference anchor")
}

func TestIteratorNestedCollections(t *testing.T) {
	b := NewBuilder()
	inner := b.SequenceCreate([]Value{b.Int(1), b.Int(2)}, false)
	outer, err := b.MappingCreate([]Pair{{Key: b.String("nums"), Value: inner}}, false)
	require.NoError(t, err)
	it := NewIterator(outer, ScopeBodyOnly)
	evs := drain(t, it)

	wantTypes := []EventType{
		MappingStartEvent, ScalarEvent, SequenceStartEvent, ScalarEvent, ScalarEvent, SequenceEndEvent, MappingEndEvent,
	}
	require.Len(t, evs, len(wantTypes))
	for i, want := range wantTypes {
		require.Equal(t, want, evs[i].Type, "event %d", i)
	}
}

func TestIteratorCloseMidTraversal(t *testing.T) {
	b := NewBuilder()
	seq := b.SequenceCreate([]Value{b.Int(1), b.Int(2), b.Int(3)}, false)
	it := NewIterator(seq, ScopeBodyOnly)
	_, ok := it.Next()
	require.True(t, ok, "expected a first event")
	it.Close()
	require.True(t, it.Done(), "expected Done() after Close")
	_, ok = it.Next()
	require.False(t, ok, "expected Next to report exhaustion after Close")
}

func TestIteratorDocumentDirectives(t *testing.T) {
	b := NewBuilder()
	ds := DocumentState{
		Root:            b.Int(1),
		VersionExplicit: true,
		VersionMajor:    1,
		VersionMinor:    1,
		TagsExplicit:    true,
		Tags:            []TagDirective{{Handle: "!e!", Prefix: "tag:example.com,2000:"}},
	}
	it := NewDocumentIterator(ds, ScopeStreamDocumentBody)
	evs := drain(t, it)
	require.Equal(t, DocumentStartEvent, evs[1].Type)
	require.True(t, evs[1].VersionExplicit)
	require.Equal(t, 1, evs[1].VersionMajor)
	require.Equal(t, 1, evs[1].VersionMinor)
	require.Len(t, evs[1].Tags, 1)
	require.Equal(t, "!e!", evs[1].Tags[0].Handle)
}
