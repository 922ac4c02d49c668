package fy

import (
	"io"
	"time"

	"github.com/modfy/fy/internal/resolve"
	"github.com/modfy/fy/internal/textsource"
)

// FromText parses one YAML document from r into b, calling exactly the
// builder constructors spec.md §6's parser contract describes: one
// constructor call per scalar/collection, in document order, with
// anchors resolved by name as they're encountered (spec.md §6 "the
// parser issues one document_start/document_end pair per document").
//
// Anchors only resolve to values that finished building before the
// alias referencing them is parsed — unlike the teacher's mutable Node
// graph, fy's immutable Value can't represent a self-referential cycle.
func FromText(r io.Reader, b *Builder) (Value, error) {
	d := &textDecoder{src: textsource.New(r), anchors: make(map[string]bool), builder: b}

	if err := d.advance(); err != nil {
		return InvalidValue, newError(ErrInvalidInput, "FromText", err)
	}
	if d.cur.Type != textsource.StreamStart {
		return InvalidValue, newError(ErrInvalidInput, "FromText", nil)
	}
	if err := d.advance(); err != nil {
		return InvalidValue, newError(ErrInvalidInput, "FromText", err)
	}
	if d.cur.Type == textsource.StreamEnd {
		return InvalidValue, nil // empty stream: no document to decode
	}
	if d.cur.Type != textsource.DocumentStart {
		return InvalidValue, newError(ErrInvalidInput, "FromText", nil)
	}
	if err := d.advance(); err != nil {
		return InvalidValue, newError(ErrInvalidInput, "FromText", err)
	}

	v, err := d.parseNode()
	if err != nil {
		return InvalidValue, err
	}
	if d.cur.Type != textsource.DocumentEnd {
		return InvalidValue, newError(ErrInvalidInput, "FromText", nil)
	}
	return v, nil
}

type textDecoder struct {
	src     *textsource.Source
	cur     textsource.Event
	anchors map[string]bool
	builder *Builder
}

func (d *textDecoder) advance() error {
	ev, err := d.src.Next()
	if err != nil {
		return err
	}
	d.cur = ev
	return nil
}

func (d *textDecoder) parseNode() (Value, error) {
	switch d.cur.Type {
	case textsource.Scalar:
		return d.scalar()
	case textsource.Alias:
		return d.alias()
	case textsource.SequenceStart:
		return d.sequence()
	case textsource.MappingStart:
		return d.mapping()
	}
	return InvalidValue, newError(ErrInvalidInput, "FromText", nil)
}

func (d *textDecoder) scalar() (Value, error) {
	ev := d.cur
	style := fyStyle(ev.Style)

	var v Value
	var explicitTag string
	switch {
	case ev.Tag != "" && ev.Tag != "!":
		explicitTag = resolve.ShortTag(ev.Tag)
		v = d.builder.String(ev.Text)
	case style != AnyStyle:
		v = d.builder.String(ev.Text)
	default:
		_, out, err := resolve.Resolve("", ev.Text)
		if err != nil {
			return InvalidValue, newError(ErrInvalidInput, "FromText", err)
		}
		v = buildResolved(d.builder, ev.Text, out)
	}

	if ev.Anchor != "" || explicitTag != "" || style != AnyStyle {
		v = d.builder.IndirectCreate(IndirectParts{Value: v, Anchor: ev.Anchor, Tag: explicitTag, Style: style})
	}
	if ev.Anchor != "" {
		d.anchors[ev.Anchor] = true
	}
	if err := d.advance(); err != nil {
		return InvalidValue, newError(ErrInvalidInput, "FromText", err)
	}
	return v, nil
}

func (d *textDecoder) alias() (Value, error) {
	anchor := d.cur.Anchor
	if !d.anchors[anchor] {
		return InvalidValue, newError(ErrInvalidInput, "FromText", nil)
	}
	v := d.builder.AliasCreate(anchor)
	if err := d.advance(); err != nil {
		return InvalidValue, newError(ErrInvalidInput, "FromText", err)
	}
	return v, nil
}

func (d *textDecoder) sequence() (Value, error) {
	anchor, tag, style := d.cur.Anchor, d.cur.Tag, fyStyle(d.cur.Style)
	if err := d.advance(); err != nil {
		return InvalidValue, newError(ErrInvalidInput, "FromText", err)
	}
	var items []Value
	for d.cur.Type != textsource.SequenceEnd {
		item, err := d.parseNode()
		if err != nil {
			return InvalidValue, err
		}
		items = append(items, item)
	}
	v := d.builder.SequenceCreate(items, false)
	if decorTag := explicitTagOrEmpty(tag, "!!seq"); anchor != "" || decorTag != "" {
		v = d.builder.IndirectCreate(IndirectParts{Value: v, Anchor: anchor, Tag: decorTag, Style: style})
	}
	if anchor != "" {
		d.anchors[anchor] = true
	}
	if err := d.advance(); err != nil {
		return InvalidValue, newError(ErrInvalidInput, "FromText", err)
	}
	return v, nil
}

func (d *textDecoder) mapping() (Value, error) {
	anchor, tag, style := d.cur.Anchor, d.cur.Tag, fyStyle(d.cur.Style)
	if err := d.advance(); err != nil {
		return InvalidValue, newError(ErrInvalidInput, "FromText", err)
	}
	var pairs []Pair
	for d.cur.Type != textsource.MappingEnd {
		key, err := d.parseNode()
		if err != nil {
			return InvalidValue, err
		}
		val, err := d.parseNode()
		if err != nil {
			return InvalidValue, err
		}
		pairs = append(pairs, Pair{Key: key, Value: val})
	}
	v, err := d.builder.MappingCreate(pairs, false)
	if err != nil {
		return InvalidValue, err
	}
	if decorTag := explicitTagOrEmpty(tag, "!!map"); anchor != "" || decorTag != "" {
		v = d.builder.IndirectCreate(IndirectParts{Value: v, Anchor: anchor, Tag: decorTag, Style: style})
	}
	if anchor != "" {
		d.anchors[anchor] = true
	}
	if err := d.advance(); err != nil {
		return InvalidValue, newError(ErrInvalidInput, "FromText", err)
	}
	return v, nil
}

// explicitTagOrEmpty returns "" when tag is absent or equal to the
// collection's implicit default (so untagged sequences/mappings don't
// carry a redundant Indirect decoration), else the shortened tag.
func explicitTagOrEmpty(tag, defaultTag string) string {
	if tag == "" || tag == "!" {
		return ""
	}
	short := resolve.ShortTag(tag)
	if short == defaultTag {
		return ""
	}
	return short
}

func fyStyle(s textsource.Style) Style {
	switch s {
	case textsource.StylePlain:
		return PlainStyle
	case textsource.StyleSingleQuoted:
		return SingleQuotedStyle
	case textsource.StyleDoubleQuoted:
		return DoubleQuotedStyle
	case textsource.StyleLiteral:
		return LiteralStyle
	case textsource.StyleFolded:
		return FoldedStyle
	case textsource.StyleBlock:
		return BlockStyle
	case textsource.StyleFlow:
		return FlowStyle
	}
	return AnyStyle
}

// buildResolved builds the Value implied by resolve.Resolve's dynamically
// typed result. Timestamps have no dedicated kind in spec.md §3's closed
// Kind set, so they're carried as their literal text (a String), the
// same fallback the closed set forces for !!binary.
func buildResolved(b *Builder, text string, out interface{}) Value {
	switch x := out.(type) {
	case bool:
		return b.Bool(x)
	case int:
		return b.Int(int64(x))
	case int64:
		return b.Int(x)
	case uint64:
		return b.Uint(x)
	case float64:
		return b.Double(x)
	case string:
		return b.String(x)
	case time.Time:
		return b.String(text)
	case nil:
		return b.Null()
	}
	return b.String(text)
}
