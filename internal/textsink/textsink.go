// Package textsink adapts fy's neutral encoder events onto the teacher's
// libyaml-derived emitter state machine, producing actual YAML text
// (spec.md §6 "event sink contract").
package textsink

import (
	"io"

	"github.com/modfy/fy"
	"github.com/modfy/fy/internal/emitter"
	"github.com/modfy/fy/internal/yamlh"
)

// Sink implements fy.EventSink over internal/emitter, exactly the way
// the teacher's own Encoder drove its emitter.Emitter.
type Sink struct {
	emitter *emitter.Emitter
}

var _ fy.EventSink = (*Sink)(nil)

// New returns an fy.EventSink that writes YAML text to w.
func New(w io.Writer) *Sink {
	return &Sink{emitter: emitter.New(w)}
}

// SetIndent forwards to the underlying emitter (teacher's Emitter.SetIndent).
func (s *Sink) SetIndent(spaces int) { s.emitter.SetIndent(spaces) }

// SetSimpleKeyMaxLength forwards to the underlying emitter, overriding how
// long a rendered key may be before the emitter drops the inline
// "key: value" shorthand in favor of an explicit key form.
func (s *Sink) SetSimpleKeyMaxLength(n int) { s.emitter.SetSimpleKeyMaxLength(n) }

// StyleDowngrades implements fy.StyleDowngradeReporter, surfacing how many
// scalars the underlying emitter had to render in a style other than the
// one fy.Style requested.
func (s *Sink) StyleDowngrades() int { return s.emitter.StyleDowngrades() }

// Emit translates ev and feeds it to the emitter. final is set on
// StreamEnd, matching the teacher's Encoder.Close, so the emitter
// flushes its trailing state.
func (s *Sink) Emit(ev fy.Event) error {
	return s.emitter.Emit(translate(ev), ev.Type == fy.StreamEndEvent)
}

func translate(ev fy.Event) *yamlh.Event {
	switch ev.Type {
	case fy.StreamStartEvent:
		return &yamlh.Event{Type: yamlh.STREAM_START_EVENT, Encoding: yamlh.UTF8_ENCODING}
	case fy.StreamEndEvent:
		return &yamlh.Event{Type: yamlh.STREAM_END_EVENT}
	case fy.DocumentStartEvent:
		e := &yamlh.Event{
			Type:     yamlh.DOCUMENT_START_EVENT,
			Implicit: !ev.VersionExplicit && len(ev.Tags) == 0,
		}
		if ev.VersionExplicit {
			e.Version_directive = &yamlh.VersionDirective{Major: int8(ev.VersionMajor), Minor: int8(ev.VersionMinor)}
		}
		for _, td := range ev.Tags {
			e.Tag_directives = append(e.Tag_directives, yamlh.TagDirective{Handle: []byte(td.Handle), Prefix: []byte(td.Prefix)})
		}
		return e
	case fy.DocumentEndEvent:
		return &yamlh.Event{Type: yamlh.DOCUMENT_END_EVENT, Implicit: true}
	case fy.SequenceStartEvent:
		return &yamlh.Event{
			Type:     yamlh.SEQUENCE_START_EVENT,
			Anchor:   []byte(ev.Anchor),
			Tag:      []byte(ev.Tag),
			Implicit: ev.Tag == "",
			Style:    yamlh.YamlStyle(sequenceStyle(ev.Style)),
		}
	case fy.SequenceEndEvent:
		return &yamlh.Event{Type: yamlh.SEQUENCE_END_EVENT}
	case fy.MappingStartEvent:
		return &yamlh.Event{
			Type:     yamlh.MAPPING_START_EVENT,
			Anchor:   []byte(ev.Anchor),
			Tag:      []byte(ev.Tag),
			Implicit: ev.Tag == "",
			Style:    yamlh.YamlStyle(mappingStyle(ev.Style)),
		}
	case fy.MappingEndEvent:
		return &yamlh.Event{Type: yamlh.MAPPING_END_EVENT}
	case fy.ScalarEvent:
		return &yamlh.Event{
			Type:            yamlh.SCALAR_EVENT,
			Anchor:          []byte(ev.Anchor),
			Tag:             []byte(ev.Tag),
			Value:           []byte(ev.Text),
			Implicit:        ev.Tag == "",
			Quoted_implicit: ev.Tag == "",
			Style:           yamlh.YamlStyle(scalarStyle(ev.Style)),
		}
	case fy.AliasEvent:
		return &yamlh.Event{Type: yamlh.ALIAS_EVENT, Anchor: []byte(ev.Anchor)}
	}
	return &yamlh.Event{}
}

func scalarStyle(s fy.Style) yamlh.YamlScalarStyle {
	switch s {
	case fy.PlainStyle:
		return yamlh.PLAIN_SCALAR_STYLE
	case fy.SingleQuotedStyle:
		return yamlh.SINGLE_QUOTED_SCALAR_STYLE
	case fy.DoubleQuotedStyle:
		return yamlh.DOUBLE_QUOTED_SCALAR_STYLE
	case fy.LiteralStyle:
		return yamlh.LITERAL_SCALAR_STYLE
	case fy.FoldedStyle:
		return yamlh.FOLDED_SCALAR_STYLE
	}
	return yamlh.ANY_SCALAR_STYLE
}

func sequenceStyle(s fy.Style) yamlh.YamlSequenceStyle {
	switch s {
	case fy.FlowStyle:
		return yamlh.FLOW_SEQUENCE_STYLE
	case fy.BlockStyle:
		return yamlh.BLOCK_SEQUENCE_STYLE
	}
	return yamlh.ANY_SEQUENCE_STYLE
}

func mappingStyle(s fy.Style) yamlh.YamlMappingStyle {
	switch s {
	case fy.FlowStyle:
		return yamlh.FLOW_MAPPING_STYLE
	case fy.BlockStyle:
		return yamlh.BLOCK_MAPPING_STYLE
	}
	return yamlh.ANY_MAPPING_STYLE
}
