package fy

import (
	"math"
	"strconv"

	"github.com/modfy/fy/internal/resolve"
)

// EventType enumerates the event alphabet an EventSink consumes
// (spec.md §4.F).
type EventType uint8

const (
	StreamStartEvent EventType = iota
	StreamEndEvent
	DocumentStartEvent
	DocumentEndEvent
	SequenceStartEvent
	SequenceEndEvent
	MappingStartEvent
	MappingEndEvent
	ScalarEvent
	AliasEvent
)

// Event is the neutral, sink-facing event the encoder emits. Only the
// fields relevant to Type are populated.
type Event struct {
	Type EventType

	Anchor string
	Tag    string
	Style  Style
	Text   string // ScalarEvent only

	VersionMajor, VersionMinor int
	VersionExplicit            bool
	Tags                       []TagDirective
}

// EventSink is the downstream consumer the encoder drives (spec.md §6
// "Event sink contract"). Implementations must treat Event's string
// fields as valid only for the duration of the call.
type EventSink interface {
	Emit(ev Event) error
}

// StyleDowngradeReporter is an optional EventSink capability: a sink that
// can tell the caller how many scalars it rendered in a style other than
// the one requested, because the content made the request unsafe (e.g. a
// PlainStyle request for a value containing a line break).
type StyleDowngradeReporter interface {
	StyleDowngrades() int
}

// StyleDowngrades reports how many scalars the encoder's sink had to
// render in a fallback style, or 0 if the sink doesn't track that.
func (e *Encoder) StyleDowngrades() int {
	if r, ok := e.sink.(StyleDowngradeReporter); ok {
		return r.StyleDowngrades()
	}
	return 0
}

type encoderState uint8

const (
	stateFresh encoderState = iota
	stateAfterDocEnd
	stateDone
	stateError
)

// Encoder walks generic values and drives an EventSink with a
// well-formed stream/document/collection/scalar event sequence
// (spec.md §4.F), following the state machine: fresh → after-doc-end
// (repeatable) → done, with any sink failure making the encoder
// error-sticky until Reset.
type Encoder struct {
	sink  EventSink
	state encoderState

	// disableDirectory treats EmitDocument's root value directly as the
	// document root instead of unpacking a directory mapping, per
	// spec.md §4.F's emit(value, flags).
	disableDirectory bool
}

// EncoderOption configures an Encoder at construction.
type EncoderOption func(*Encoder)

// WithDisableDirectory makes EmitDocument treat its Value argument as
// the literal document root rather than a directory mapping.
func WithDisableDirectory(disable bool) EncoderOption {
	return func(e *Encoder) { e.disableDirectory = disable }
}

// NewEncoder constructs an Encoder over sink.
func NewEncoder(sink EventSink, opts ...EncoderOption) *Encoder {
	e := &Encoder{sink: sink}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reset clears the encoder's error-sticky state, allowing further
// documents.
func (e *Encoder) Reset() { e.state = stateFresh }

func (e *Encoder) fail(op string, cause error) error {
	e.state = stateError
	return newError(ErrEncoderFailure, op, cause)
}

// EmitDocument emits StreamStart (if not already emitted), a
// DocumentStart carrying version/tags only when ds marks them explicit,
// the document body, then DocumentEnd (spec.md §4.F "emit_document").
func (e *Encoder) EmitDocument(ds DocumentState) error {
	if e.state == stateDone || e.state == stateError {
		return e.fail("EmitDocument", nil)
	}
	if e.state == stateFresh {
		if err := e.sink.Emit(Event{Type: StreamStartEvent}); err != nil {
			return e.fail("EmitDocument", err)
		}
	}
	start := Event{Type: DocumentStartEvent}
	if ds.VersionExplicit {
		start.VersionExplicit = true
		start.VersionMajor, start.VersionMinor = ds.VersionMajor, ds.VersionMinor
	}
	if ds.TagsExplicit {
		start.Tags = ds.Tags
	}
	if err := e.sink.Emit(start); err != nil {
		return e.fail("EmitDocument", err)
	}
	if err := e.encode(ds.Root, ds.Tags); err != nil {
		return e.fail("EmitDocument", err)
	}
	if err := e.sink.Emit(Event{Type: DocumentEndEvent}); err != nil {
		return e.fail("EmitDocument", err)
	}
	e.state = stateAfterDocEnd
	return nil
}

// EncodeValue emits v directly as a single document body without any
// stream/document framing; EmitDocument produces a complete stream.
// EncodeValue is exposed for callers (e.g. the iterator, tests) that
// just want the value's own event shape.
func (e *Encoder) EncodeValue(v Value) error {
	return e.encode(v, nil)
}

// Emit accepts either a directory (see DirectoryToState) or, when the
// encoder was built WithDisableDirectory(true), treats v directly as
// the root (spec.md §4.F "emit(value, flags)").
func (e *Encoder) Emit(v Value) error {
	if e.disableDirectory {
		return e.EmitDocument(DocumentState{Root: v})
	}
	ds, err := DirectoryToState(v)
	if err != nil {
		return err
	}
	return e.EmitDocument(ds)
}

// Sync ensures a matched StreamEnd has been emitted if StreamStart ever
// was; idempotent (spec.md §4.F).
func (e *Encoder) Sync() error {
	switch e.state {
	case stateAfterDocEnd:
		if err := e.sink.Emit(Event{Type: StreamEndEvent}); err != nil {
			return e.fail("Sync", err)
		}
		e.state = stateDone
	}
	return nil
}

func (e *Encoder) encode(v Value, tagTable []TagDirective) error {
	if v.kind == Indirect && v.ind != nil {
		parts := v.IndirectGet()
		if parts.Value.IsInvalid() {
			return e.sink.Emit(Event{Type: AliasEvent, Anchor: parts.Anchor})
		}
		return e.encodeDecorated(parts.Value, parts.Anchor, shortenTag(parts.Tag, tagTable), parts.Style, tagTable)
	}
	return e.encodeDecorated(v, "", "", AnyStyle, tagTable)
}

func (e *Encoder) encodeDecorated(v Value, anchor, tag string, style Style, tagTable []TagDirective) error {
	switch v.kind {
	case Null, Bool, Int, Float, String:
		return e.sink.Emit(Event{Type: ScalarEvent, Anchor: anchor, Tag: tag, Style: style, Text: scalarText(v)})
	case Sequence:
		if err := e.sink.Emit(Event{Type: SequenceStartEvent, Anchor: anchor, Tag: tag, Style: style}); err != nil {
			return err
		}
		items, _ := v.SequenceGetItems()
		for _, it := range items {
			if err := e.encode(it, tagTable); err != nil {
				return err
			}
		}
		return e.sink.Emit(Event{Type: SequenceEndEvent})
	case Mapping:
		if err := e.sink.Emit(Event{Type: MappingStartEvent, Anchor: anchor, Tag: tag, Style: style}); err != nil {
			return err
		}
		pairs, _ := v.MappingGetPairs()
		for _, p := range pairs {
			if err := e.encode(p.Key, tagTable); err != nil {
				return err
			}
			if err := e.encode(p.Value, tagTable); err != nil {
				return err
			}
		}
		return e.sink.Emit(Event{Type: MappingEndEvent})
	}
	return newError(ErrInvalidInput, "encode", nil)
}

// scalarText formats v's text per spec.md §4.F: decimal integers
// (unsigned-range-extended values print unsigned), true/false, null,
// and short-form general-format floats with .nan/.inf/-.inf for the
// non-finite cases.
func scalarText(v Value) string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		if v.i != 0 {
			return "true"
		}
		return "false"
	case Int:
		if v.unsignedExtend {
			return strconv.FormatUint(uint64(v.i), 10)
		}
		return strconv.FormatInt(v.i, 10)
	case Float:
		return formatFloat(v.f)
	case String:
		return v.s
	}
	return ""
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// shortenTag shortens tag against tagTable's active directives, falling
// back to the teacher's hardcoded "!!" handle table, then to the
// verbatim tag if neither matches (spec.md §4.F).
func shortenTag(tag string, tagTable []TagDirective) string {
	if tag == "" {
		return ""
	}
	table := make([]resolve.TagDirective, len(tagTable))
	for i, td := range tagTable {
		table[i] = resolve.TagDirective{Handle: td.Handle, Prefix: td.Prefix}
	}
	if shortened := resolve.ShortTagByTable(tag, table); shortened != tag {
		return shortened
	}
	return resolve.ShortTag(tag)
}
