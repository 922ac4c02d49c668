// Package textsource wraps the teacher's libyaml-derived scanner/parser
// (internal/parserc) behind a small pull-based event pump that yields a
// neutral, builder-independent event tree (spec.md §6 "parser
// contract"). It never imports the root fy package so fy can import it
// without a cycle.
package textsource

import (
	"io"

	"github.com/modfy/fy/internal/parserc"
	"github.com/modfy/fy/internal/yamlh"
)

// EventType mirrors fy.EventType's alphabet one-for-one; kept distinct
// so this package has no dependency on the root package.
type EventType uint8

const (
	StreamStart EventType = iota
	StreamEnd
	DocumentStart
	DocumentEnd
	SequenceStart
	SequenceEnd
	MappingStart
	MappingEnd
	Scalar
	Alias
	None // yamlh.NO_EVENT / TAIL_COMMENT_EVENT: no event was produced
)

// Style is the already-decoded presentation style of a Scalar/Sequence/
// MappingStart event (the yamlh bit flags resolved at translation time,
// so callers never need to import internal/yamlh's flag constants).
type Style uint8

const (
	StyleAny Style = iota
	StylePlain
	StyleSingleQuoted
	StyleDoubleQuoted
	StyleLiteral
	StyleFolded
	StyleBlock
	StyleFlow
)

// TagDirective is a {handle, prefix} tag-shorthand declaration (spec.md
// §6 directory `tags` key), the string-typed shape of yamlh.TagDirective.
type TagDirective struct {
	Handle string
	Prefix string
}

// Event is the neutral event this package's Source yields.
type Event struct {
	Type EventType

	Anchor string
	Tag    string
	Text   string // Scalar only
	Style  Style

	VersionMajor, VersionMinor int
	VersionExplicit            bool
	Tags                       []TagDirective
}

// Source pulls and translates one event at a time from the teacher's
// parserc.YamlParser.
type Source struct {
	p *parserc.YamlParser
}

// New constructs a Source reading YAML text from r.
func New(r io.Reader) *Source {
	return &Source{p: parserc.New(r)}
}

// Next returns the next event in document order, translated out of
// yamlh's vocabulary.
func (s *Source) Next() (Event, error) {
	ev, err := parserc.Parse(s.p)
	if err != nil {
		return Event{}, err
	}
	return translate(ev), nil
}

func translate(ev *yamlh.Event) Event {
	out := Event{
		Anchor: string(ev.Anchor),
		Tag:    string(ev.Tag),
		Text:   string(ev.Value),
	}
	switch ev.Type {
	case yamlh.STREAM_START_EVENT:
		out.Type = StreamStart
	case yamlh.STREAM_END_EVENT:
		out.Type = StreamEnd
	case yamlh.DOCUMENT_START_EVENT:
		out.Type = DocumentStart
		if ev.Version_directive != nil {
			out.VersionExplicit = true
			out.VersionMajor = int(ev.Version_directive.Major)
			out.VersionMinor = int(ev.Version_directive.Minor)
		}
		for _, td := range ev.Tag_directives {
			out.Tags = append(out.Tags, TagDirective{Handle: string(td.Handle), Prefix: string(td.Prefix)})
		}
	case yamlh.DOCUMENT_END_EVENT:
		out.Type = DocumentEnd
	case yamlh.SEQUENCE_START_EVENT:
		out.Type = SequenceStart
		out.Style = sequenceStyle(ev.Sequence_style())
	case yamlh.SEQUENCE_END_EVENT:
		out.Type = SequenceEnd
	case yamlh.MAPPING_START_EVENT:
		out.Type = MappingStart
		out.Style = mappingStyle(ev.Mapping_style())
	case yamlh.MAPPING_END_EVENT:
		out.Type = MappingEnd
	case yamlh.SCALAR_EVENT:
		out.Type = Scalar
		out.Style = scalarStyle(ev.Scalar_style())
	case yamlh.ALIAS_EVENT:
		out.Type = Alias
	default:
		out.Type = None
	}
	return out
}

func scalarStyle(s yamlh.YamlScalarStyle) Style {
	switch {
	case s&yamlh.DOUBLE_QUOTED_SCALAR_STYLE != 0:
		return StyleDoubleQuoted
	case s&yamlh.SINGLE_QUOTED_SCALAR_STYLE != 0:
		return StyleSingleQuoted
	case s&yamlh.LITERAL_SCALAR_STYLE != 0:
		return StyleLiteral
	case s&yamlh.FOLDED_SCALAR_STYLE != 0:
		return StyleFolded
	case s&yamlh.PLAIN_SCALAR_STYLE != 0:
		return StylePlain
	}
	return StyleAny
}

func sequenceStyle(s yamlh.YamlSequenceStyle) Style {
	switch s {
	case yamlh.FLOW_SEQUENCE_STYLE:
		return StyleFlow
	case yamlh.BLOCK_SEQUENCE_STYLE:
		return StyleBlock
	}
	return StyleAny
}

func mappingStyle(s yamlh.YamlMappingStyle) Style {
	switch s {
	case yamlh.FLOW_MAPPING_STYLE:
		return StyleFlow
	case yamlh.BLOCK_MAPPING_STYLE:
		return StyleBlock
	}
	return StyleAny
}
