package fy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// S6 (anchor + alias).
func TestScenarioS6AnchorAndAlias(t *testing.T) {
	b := NewBuilder()
	anchored := b.IndirectCreate(IndirectParts{Value: b.Int(7), Anchor: "a"})
	require.Equal(t, Int, anchored.GetType(), "expected indirect wrapping int to report Int")
	parts := anchored.IndirectGet()
	require.Equal(t, "a", parts.Anchor)
	require.Equal(t, int64(7), CastInt64Default(parts.Value, -1))

	alias := b.AliasCreate("a")
	require.True(t, alias.IsAlias(), "expected value-less indirect to be an Alias")
	require.Equal(t, "a", alias.IndirectGet().Anchor, "expected alias to carry the referenced anchor")
}

func TestInternalizeSkipsCopyWhenAlreadyOwned(t *testing.T) {
	b := NewBuilder()
	s := b.String("already-owned-long-enough-string")
	require.Equal(t, s.Word(), b.Internalize(s).Word(), "expected internalize of an already-owned value to be a no-op")
}

func TestInternalizeCopiesForeignValue(t *testing.T) {
	src := NewBuilder()
	dest := NewBuilder()
	v := src.String("foreign-builder-owns-this-long-string")
	got := dest.Internalize(v)
	require.NotEqual(t, v.Word(), got.Word(), "expected internalize across builders to copy into dest's arena")
	require.Equal(t, 0, Compare(got, v), "expected copied value to compare equal to the original")
}

func TestInternalizeParentChainAvoidsCopy(t *testing.T) {
	parent := NewBuilder()
	child := NewBuilder(WithParent(parent))
	v := parent.String("owned-by-the-parent-long-enough-string")
	require.Equal(t, v.Word(), child.Internalize(v).Word(), "expected internalize to recognize a value already reachable via the parent chain")
}

func TestCopyPreservesIndirectDecoration(t *testing.T) {
	src := NewBuilder()
	dest := NewBuilder()
	wrapped := src.IndirectCreate(IndirectParts{Value: src.String("payload-long-enough-to-escape-inline"), Anchor: "n1", Tag: "!!str"})
	copied := dest.Copy(wrapped)
	parts := copied.IndirectGet()
	require.Equal(t, "n1", parts.Anchor)
	require.Equal(t, "!!str", parts.Tag)
	require.Equal(t, "payload-long-enough-to-escape-inline", CastStringDefault(parts.Value, ""), "expected copy to preserve wrapped value content")
}

func TestExportIntoLongerLivedParent(t *testing.T) {
	scratch := NewBuilder()
	long := NewBuilder()
	v := scratch.SequenceCreate([]Value{scratch.Int(1), scratch.Int(2)}, false)
	exported := Export(v, long)
	scratch.Reset()
	require.False(t, exported.IsInvalid(), "expected exported value to survive scratch builder reset")
	items, n := exported.SequenceGetItems()
	require.Equal(t, 2, n)
	require.Equal(t, int64(1), CastInt64Default(items[0], -1))
}
