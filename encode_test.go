package fy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []Event
	failAt int // -1 disables
}

func newRecordingSink() *recordingSink { return &recordingSink{failAt: -1} }

func (s *recordingSink) Emit(ev Event) error {
	if s.failAt == len(s.events) {
		return errors.New("sink failure")
	}
	s.events = append(s.events, ev)
	return nil
}

func TestScenarioS1EncodesOneScalarEvent(t *testing.T) {
	b := NewBuilder()
	sink := newRecordingSink()
	enc := NewEncoder(sink, WithDisableDirectory(true))
	require.NoError(t, enc.EmitDocument(DocumentState{Root: b.Int(42)}))
	require.NoError(t, enc.Sync())

	wantTypes := []EventType{StreamStartEvent, DocumentStartEvent, ScalarEvent, DocumentEndEvent, StreamEndEvent}
	require.Len(t, sink.events, len(wantTypes))
	for i, want := range wantTypes {
		require.Equal(t, want, sink.events[i].Type, "event %d", i)
	}
	require.Equal(t, "42", sink.events[2].Text)
}

// S5 (document with directives).
func TestScenarioS5DocumentWithDirectives(t *testing.T) {
	b := NewBuilder()
	sink := newRecordingSink()
	enc := NewEncoder(sink)

	ds := DocumentState{
		Root:            b.String("data"),
		VersionMajor:    1,
		VersionMinor:    2,
		VersionExplicit: true,
		Tags:            []TagDirective{{Handle: "!t!", Prefix: "tag:x,2025:"}},
		TagsExplicit:    true,
	}
	dir, err := StateToDirectory(b, ds)
	require.NoError(t, err)
	require.NoError(t, enc.Emit(dir))
	require.NoError(t, enc.Sync())

	wantTypes := []EventType{StreamStartEvent, DocumentStartEvent, ScalarEvent, DocumentEndEvent, StreamEndEvent}
	require.Len(t, sink.events, len(wantTypes))
	docStart := sink.events[1]
	require.True(t, docStart.VersionExplicit)
	require.Equal(t, 1, docStart.VersionMajor)
	require.Equal(t, 2, docStart.VersionMinor)
	require.Len(t, docStart.Tags, 1)
	require.Equal(t, "!t!", docStart.Tags[0].Handle)
	require.Equal(t, "data", sink.events[2].Text)
}

// S6 (anchor + alias), through the encoder.
func TestScenarioS6EncodesAnchorThenAlias(t *testing.T) {
	b := NewBuilder()
	sink := newRecordingSink()
	enc := NewEncoder(sink, WithDisableDirectory(true))

	anchored := b.IndirectCreate(IndirectParts{Value: b.Int(7), Anchor: "a"})
	seq := b.SequenceCreate([]Value{anchored, b.AliasCreate("a")}, false)

	require.NoError(t, enc.EmitDocument(DocumentState{Root: seq}))
	var scalarEv, aliasEv *Event
	for i := range sink.events {
		switch sink.events[i].Type {
		case ScalarEvent:
			scalarEv = &sink.events[i]
		case AliasEvent:
			aliasEv = &sink.events[i]
		}
	}
	require.NotNil(t, scalarEv)
	require.Equal(t, "a", scalarEv.Anchor)
	require.Equal(t, "7", scalarEv.Text)
	require.NotNil(t, aliasEv)
	require.Equal(t, "a", aliasEv.Anchor)
}

func TestEncoderStateMachineErrorSticky(t *testing.T) {
	b := NewBuilder()
	sink := newRecordingSink()
	sink.failAt = 2 // fail on the scalar event
	enc := NewEncoder(sink, WithDisableDirectory(true))

	require.Error(t, enc.EmitDocument(DocumentState{Root: b.Int(1)}), "expected sink failure to propagate")
	require.Error(t, enc.EmitDocument(DocumentState{Root: b.Int(2)}), "expected encoder to be error-sticky after a sink failure")
	enc.Reset()
	sink.failAt = -1
	require.NoError(t, enc.EmitDocument(DocumentState{Root: b.Int(3)}), "expected reset encoder to accept a new document")
}

func TestScalarTextFormatting(t *testing.T) {
	b := NewBuilder()
	cases := []struct {
		v    Value
		want string
	}{
		{b.Null(), "null"},
		{b.Bool(true), "true"},
		{b.Bool(false), "false"},
		{b.Int(-7), "-7"},
		{b.Uint(18446744073709551615), "18446744073709551615"},
		{b.Double(2.5), "2.5"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, scalarText(c.v))
	}
}
