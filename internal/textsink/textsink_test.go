package textsink

import (
	"strings"
	"testing"

	"github.com/modfy/fy"
	"github.com/stretchr/testify/require"
)

func TestStyleDowngradesCountsUnsafePlainRequest(t *testing.T) {
	var out strings.Builder
	sink := New(&out)
	enc := fy.NewEncoder(sink, fy.WithDisableDirectory(true))

	b := fy.NewBuilder()
	multiline := b.IndirectCreate(fy.IndirectParts{Value: b.String("line one\nline two"), Style: fy.PlainStyle})

	require.Equal(t, 0, enc.StyleDowngrades())
	require.NoError(t, enc.EmitDocument(fy.DocumentState{Root: multiline}))
	require.NoError(t, enc.Sync())
	require.Greater(t, enc.StyleDowngrades(), 0, "expected a multiline value to downgrade away from PlainStyle")
}

func TestStyleDowngradesStaysZeroForSafeRequest(t *testing.T) {
	var out strings.Builder
	sink := New(&out)
	enc := fy.NewEncoder(sink, fy.WithDisableDirectory(true))

	b := fy.NewBuilder()
	plain := b.IndirectCreate(fy.IndirectParts{Value: b.String("short"), Style: fy.PlainStyle})

	require.NoError(t, enc.EmitDocument(fy.DocumentState{Root: plain}))
	require.NoError(t, enc.Sync())
	require.Equal(t, 0, enc.StyleDowngrades())
}

func TestSetSimpleKeyMaxLengthForcesExplicitKeyForm(t *testing.T) {
	b := fy.NewBuilder()
	longKey := strings.Repeat("k", 20)
	m, err := b.MappingCreate([]fy.Pair{{Key: b.String(longKey), Value: b.Int(1)}}, false)
	require.NoError(t, err)

	var out strings.Builder
	sink := New(&out)
	sink.SetSimpleKeyMaxLength(4) // shorter than longKey, forces the "? key" explicit form
	enc := fy.NewEncoder(sink, fy.WithDisableDirectory(true))
	require.NoError(t, enc.EmitDocument(fy.DocumentState{Root: m}))
	require.NoError(t, enc.Sync())

	rendered := out.String()
	require.Contains(t, rendered, "?", "expected the explicit key indicator once the simple-key threshold is undercut")
	require.Contains(t, rendered, longKey)
}
