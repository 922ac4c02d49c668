package dedup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupMissThenInsertThenHit(t *testing.T) {
	ix := New(true, nil)
	iov := [][]byte{[]byte("hello "), []byte("world")}
	_, ok := ix.Lookup(iov)
	require.False(t, ok, "expected miss before insert")
	stored := []byte("hello world")
	ix.Insert(stored)
	got, ok := ix.Lookup(iov)
	require.True(t, ok, "expected hit after insert")
	require.Same(t, &stored[0], &got[0], "expected Lookup to return the stored slice, not a copy")
}

func TestParentChainWalk(t *testing.T) {
	parent := New(true, nil)
	parent.Insert([]byte("from-parent"))
	child := New(true, parent)
	got, ok := child.Lookup([][]byte{[]byte("from-parent")})
	require.True(t, ok, "expected child Lookup to find parent entry")
	require.Equal(t, "from-parent", string(got))
}

func TestDisabledLinkStopsWalk(t *testing.T) {
	grandparent := New(true, nil)
	grandparent.Insert([]byte("only-in-grandparent"))
	parent := New(false, grandparent)
	child := New(true, parent)
	_, ok := child.Lookup([][]byte{[]byte("only-in-grandparent")})
	require.False(t, ok, "expected walk to stop at the disabled parent link")
}

func TestDisabledIndexNeverInserts(t *testing.T) {
	ix := New(false, nil)
	ix.Insert([]byte("x"))
	_, ok := ix.Lookup([][]byte{[]byte("x")})
	require.False(t, ok, "disabled index should not record insertions")
}
