package fy

import "github.com/modfy/fy/internal/yamlh"

// IterScope selects which outer events an Iterator generates around a
// value's body (spec.md §4.G "a flag selects which outer events are
// generated").
type IterScope uint8

const (
	// ScopeStreamDocumentBody emits StreamStart/StreamEnd around a single
	// DocumentStart/DocumentEnd pair around the body.
	ScopeStreamDocumentBody IterScope = iota
	// ScopeDocumentBody emits only DocumentStart/DocumentEnd around the
	// body, no stream framing.
	ScopeDocumentBody
	// ScopeBodyOnly emits just the body's own event stream.
	ScopeBodyOnly
)

type iterState uint8

const (
	iterWaitingStreamStart iterState = iota
	iterWaitingDocumentStart
	iterWaitingBodyStartOrDocumentEnd
	iterBody
	iterWaitingDocumentEnd
	iterWaitingStreamEndOrDocumentStart
	iterDone
)

// iterFrame is one entry of the traversal stack (spec.md §4.G "each
// collection frame records {value, index, processed_key_flag}").
type iterFrame struct {
	orig  Value // the possibly-Indirect value as it appeared to the parent
	value Value // unwrapped Sequence/Mapping
	items []Value
	pairs []Pair
	index int
	onKey bool // mapping only: false before the key of pairs[index] is emitted
}

// IterEvent is one step an Iterator yields: the same neutral event
// alphabet the encoder drives a sink with, plus the underlying Value the
// step corresponds to (spec.md §4.G "produces events or values on
// demand").
type IterEvent struct {
	Event
	Value Value
}

// Iterator is the demand-driven, pull-based event/value generator of
// spec.md §4.G, walking the state machine:
//
//	WaitingStreamStart → WaitingDocumentStart → WaitingBodyStartOrDocumentEnd
//	                                            ↓
//	                                          Body ⇄ (stack of collection frames)
//	                                            ↓
//	                                      WaitingDocumentEnd → WaitingStreamEndOrDocumentStart
//	                                                                              ↓ / ↑
//	                                                                           StreamEnd
//
// Multi-document streams aren't modelled: a single Iterator walks one
// document, the same one-document-at-a-time shape EmitDocument and
// FromText use; a caller wanting several documents in one stream
// constructs one Iterator per document, same as it calls EmitDocument
// repeatedly on one Encoder.
type Iterator struct {
	state       iterState
	scope       IterScope
	ds          DocumentState
	bodyStarted bool
	stack       []iterFrame
	err         error
}

// NewIterator walks root as an anonymous value: no directory, no
// version/tag directives.
func NewIterator(root Value, scope IterScope) *Iterator {
	return NewDocumentIterator(DocumentState{Root: root}, scope)
}

// NewDocumentIterator walks ds, a document directory (spec.md §4.G "An
// explicit root vs a document-directory input selects the outer
// iteration count"): the DocumentStart event it produces carries ds's
// version/tag directives exactly as EmitDocument would.
func NewDocumentIterator(ds DocumentState, scope IterScope) *Iterator {
	it := &Iterator{scope: scope, ds: ds}
	it.stack = make([]iterFrame, 0, yamlh.Initial_stack_size)
	switch scope {
	case ScopeStreamDocumentBody:
		it.state = iterWaitingStreamStart
	case ScopeDocumentBody:
		it.state = iterWaitingDocumentStart
	default:
		it.state = iterBody
	}
	return it
}

// Err returns the error that made the most recent Next call fail, or
// nil if the iterator is still healthy or has finished cleanly (spec.md
// §7 "IteratorError... observable via a getter").
func (it *Iterator) Err() error { return it.err }

// Done reports whether the iterator has no further events to produce,
// whether because it finished cleanly or because it errored.
func (it *Iterator) Done() bool { return it.state == iterDone }

// Close frees the traversal stack (spec.md §4.G "cleanup frees the
// traversal stack"), safe to call at any point mid-traversal since the
// iterator is single-consumer and non-blocking.
func (it *Iterator) Close() {
	it.stack = nil
	it.state = iterDone
}

// Next advances the iterator by one step, returning the produced event
// and true, or a zero IterEvent and false once the iterator is
// exhausted or has failed (distinguish the two with Err).
func (it *Iterator) Next() (IterEvent, bool) {
	if it.err != nil || it.state == iterDone {
		return IterEvent{}, false
	}
	switch it.state {
	case iterWaitingStreamStart:
		it.state = iterWaitingDocumentStart
		return IterEvent{Event: Event{Type: StreamStartEvent}}, true

	case iterWaitingDocumentStart:
		start := Event{Type: DocumentStartEvent}
		if it.ds.VersionExplicit {
			start.VersionExplicit = true
			start.VersionMajor, start.VersionMinor = it.ds.VersionMajor, it.ds.VersionMinor
		}
		if it.ds.TagsExplicit {
			start.Tags = it.ds.Tags
		}
		it.state = iterWaitingBodyStartOrDocumentEnd
		return IterEvent{Event: start}, true

	case iterWaitingBodyStartOrDocumentEnd:
		it.state = iterBody
		return it.stepBody()

	case iterBody:
		return it.stepBody()

	case iterWaitingDocumentEnd:
		it.state = it.afterDocumentEndState()
		return IterEvent{Event: Event{Type: DocumentEndEvent}}, true

	case iterWaitingStreamEndOrDocumentStart:
		it.state = iterDone
		return IterEvent{Event: Event{Type: StreamEndEvent}}, true
	}
	it.err = newError(ErrIteratorError, "Next", nil)
	return IterEvent{}, false
}

func (it *Iterator) afterBodyState() iterState {
	if it.scope == ScopeBodyOnly {
		return iterDone
	}
	return iterWaitingDocumentEnd
}

func (it *Iterator) afterDocumentEndState() iterState {
	if it.scope == ScopeDocumentBody {
		return iterDone
	}
	return iterWaitingStreamEndOrDocumentStart
}

// stepBody advances the body traversal by exactly one event: entering
// the root (first call), descending into or across a collection's
// children, or popping a finished frame, per spec.md §4.G's "next()
// advances by one step" rule.
func (it *Iterator) stepBody() (IterEvent, bool) {
	if len(it.stack) == 0 {
		if it.bodyStarted {
			it.state = it.afterBodyState()
			return it.Next()
		}
		it.bodyStarted = true
		return it.enter(it.ds.Root)
	}

	top := &it.stack[len(it.stack)-1]
	switch top.value.kind {
	case Sequence:
		if top.index >= len(top.items) {
			ev := IterEvent{Event: Event{Type: SequenceEndEvent}, Value: top.orig}
			it.stack = it.stack[:len(it.stack)-1]
			return ev, true
		}
		item := top.items[top.index]
		top.index++
		return it.enter(item)

	case Mapping:
		if top.index >= len(top.pairs) {
			ev := IterEvent{Event: Event{Type: MappingEndEvent}, Value: top.orig}
			it.stack = it.stack[:len(it.stack)-1]
			return ev, true
		}
		if !top.onKey {
			top.onKey = true
			return it.enter(top.pairs[top.index].Key)
		}
		top.onKey = false
		v := top.pairs[top.index].Value
		top.index++
		return it.enter(v)
	}

	it.err = newError(ErrIteratorError, "Next", nil)
	return IterEvent{}, false
}

// enter produces the event for descending into v: a Scalar or Alias
// leaf, or a SequenceStart/MappingStart that pushes a new frame.
func (it *Iterator) enter(v Value) (IterEvent, bool) {
	anchor, tag, style := "", "", AnyStyle
	cur := v
	if cur.kind == Indirect && cur.ind != nil {
		parts := cur.IndirectGet()
		if parts.Value.IsInvalid() {
			return IterEvent{Event: Event{Type: AliasEvent, Anchor: parts.Anchor}, Value: v}, true
		}
		anchor, tag, style = parts.Anchor, shortenTag(parts.Tag, it.ds.Tags), parts.Style
		cur = parts.Value
	}

	switch cur.kind {
	case Null, Bool, Int, Float, String:
		return IterEvent{
			Event: Event{Type: ScalarEvent, Anchor: anchor, Tag: tag, Style: style, Text: scalarText(cur)},
			Value: v,
		}, true
	case Sequence:
		items, _ := cur.SequenceGetItems()
		it.stack = append(it.stack, iterFrame{orig: v, value: cur, items: items})
		return IterEvent{Event: Event{Type: SequenceStartEvent, Anchor: anchor, Tag: tag, Style: style}, Value: v}, true
	case Mapping:
		pairs, _ := cur.MappingGetPairs()
		it.stack = append(it.stack, iterFrame{orig: v, value: cur, pairs: pairs})
		return IterEvent{Event: Event{Type: MappingStartEvent, Anchor: anchor, Tag: tag, Style: style}, Value: v}, true
	}

	it.err = newError(ErrInvalidInput, "Next", nil)
	return IterEvent{}, false
}
