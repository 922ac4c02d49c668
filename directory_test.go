package fy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectoryRoundTripMinimal(t *testing.T) {
	b := NewBuilder()
	ds := DocumentState{Root: b.Int(42)}

	dir, err := StateToDirectory(b, ds)
	require.NoError(t, err)
	got, err := DirectoryToState(dir)
	require.NoError(t, err)
	require.Equal(t, int64(42), CastInt64Default(got.Root, -1))
	require.False(t, got.VersionExplicit)
	require.False(t, got.TagsExplicit)
}

func TestDirectoryRoundTripVersionAndTags(t *testing.T) {
	b := NewBuilder()
	ds := DocumentState{
		Root:            b.String("hi"),
		VersionMajor:    1,
		VersionMinor:    1,
		VersionExplicit: true,
		Tags: []TagDirective{
			{Handle: "!e!", Prefix: "tag:example.com,2000:"},
			{Handle: "!!", Prefix: "tag:yaml.org,2002:"},
		},
		TagsExplicit: true,
	}

	dir, err := StateToDirectory(b, ds)
	require.NoError(t, err)
	got, err := DirectoryToState(dir)
	require.NoError(t, err)

	require.True(t, got.VersionExplicit)
	require.Equal(t, 1, got.VersionMajor)
	require.Equal(t, 1, got.VersionMinor)
	require.True(t, got.TagsExplicit)
	require.Len(t, got.Tags, 2)
	require.Equal(t, "!e!", got.Tags[0].Handle)
	require.Equal(t, "tag:example.com,2000:", got.Tags[0].Prefix)
	require.Equal(t, "!!", got.Tags[1].Handle)
	require.Equal(t, "tag:yaml.org,2002:", got.Tags[1].Prefix)
	require.Equal(t, "hi", CastStringDefault(got.Root, ""))
}

func TestDirectoryToStateRequiresMapping(t *testing.T) {
	b := NewBuilder()
	_, err := DirectoryToState(b.Int(1))
	require.Error(t, err, "expected an error for a non-mapping directory")
}

func TestDirectoryToStateRequiresRootKey(t *testing.T) {
	b := NewBuilder()
	empty, err := b.MappingCreate(nil, false)
	require.NoError(t, err)
	_, err = DirectoryToState(empty)
	require.Error(t, err, "expected an error for a directory missing its root key")
}
