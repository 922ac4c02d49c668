// Package fuzz round-trips YAML text through fy's parser and encoder:
// FromText builds a value, Encoder/textsink re-emits it as text, and a
// second FromText must build an equal value. Unlike the teacher's fuzz
// target, there is no second implementation in this repository to diff
// against, so the oracle is the round trip itself.
package fuzz

import (
	"strings"
	"testing"

	"github.com/modfy/fy"
	"github.com/modfy/fy/internal/textsink"
	"github.com/stretchr/testify/require"
)

var seedCorpus = []string{
	"", "null", "true", "false", "42", "-17", "3.14", ".inf", "-.inf", ".nan",
	"hello world", "'quoted string'", `"escaped \n string"`, "[1, 2, 3]",
	"a: 1\nb: 2\n", "- 1\n- 2\n- 3\n", "nested:\n  a: 1\n  b: [2, 3]\n",
	"a: &x 1\nb: *x\n", "seq: [A,B,C]", "flow: {a: 1, b: 2}",
	"empty_seq: []", "empty_map: {}", "v: !!str 123",
	"%YAML 1.1\n---\nv: 1\n", "long: " + strings.Repeat("x", 200),
	"deep: [[[[[1]]]]]",
}

func FuzzRoundTrip(f *testing.F) {
	for _, s := range seedCorpus {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, data string) {
		b1 := fy.NewBuilder()
		first, err := fy.FromText(strings.NewReader(data), b1)
		if err != nil {
			return // malformed input is not a fuzz failure, just skip it
		}

		var out strings.Builder
		sink := textsink.New(&out)
		enc := fy.NewEncoder(sink, fy.WithDisableDirectory(true))
		require.NoError(t, enc.EmitDocument(fy.DocumentState{Root: first}), "re-emit failed for %q", data)
		require.NoError(t, enc.Sync(), "sync failed for %q", data)

		b2 := fy.NewBuilder()
		second, err := fy.FromText(strings.NewReader(out.String()), b2)
		require.NoError(t, err, "re-parse failed for %q (emitted %q)", data, out.String())

		require.Equal(t, 0, fy.Compare(first, second), "round trip changed value: %q -> %q -> %v vs %v", data, out.String(), first, second)
	})
}
