// Package fy implements a space-efficient tagged generic value
// representation, a deduplicating arena-backed builder, and a streaming
// YAML/JSON-shaped encoder and iterator, per SPEC_FULL.md.
package fy

import (
	"math"

	"github.com/modfy/fy/internal/arena"
)

// Kind classifies a Value (spec.md §3 "Value kinds").
type Kind uint8

const (
	Invalid Kind = iota
	Null
	Bool
	Int
	Float
	String
	Sequence
	Mapping
	Indirect
	Alias
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	case Indirect:
		return "indirect"
	case Alias:
		return "alias"
	}
	return "unknown"
}

// Style is the scalar/collection presentation style carried by an
// Indirect (spec.md §3 "Indirect record").
type Style uint8

const (
	AnyStyle Style = iota
	PlainStyle
	SingleQuotedStyle
	DoubleQuotedStyle
	LiteralStyle
	FoldedStyle
	BlockStyle
	FlowStyle
)

// Synthetic tagged-word constants mirroring spec.md §3's bit layout
// table. Word() derives an inspectable uint64 from these; they are not
// the Value's actual backing storage (design note §9 licenses an
// explicit-tag representation so long as the kind set, predicates, and
// cast operations stay observably the same).
const (
	tagSequenceOrMapping uint64 = 0b000
	tagIntInline         uint64 = 0b001
	tagIntOut            uint64 = 0b010
	tagFloatInline       uint64 = 0b011
	tagFloatOut          uint64 = 0b100
	tagStringInline      uint64 = 0b101
	tagStringOut         uint64 = 0b110
	tagIndirectPtr       uint64 = 0b111

	mapBit uint64 = 1 << 3

	wordInvalid     uint64 = ^uint64(0)
	wordNullEscape  uint64 = 0x0F
	wordTrueEscape  uint64 = 0x1F
	wordFalseEscape uint64 = 0x2F

	emptySeqWord uint64 = 0
	emptyMapWord uint64 = mapBit
)

// source records the arena provenance of an out-of-place Value: which
// allocator and tag it was built under, the generation it was built
// under (for the liveness check that stands in for "became dangling"
// once the owning builder resets — see internal/arena's doc comment),
// and the exact backing bytes so Word() and Relocate have a genuine
// address to report.
type source struct {
	alloc      arena.Allocator
	tag        arena.Tag
	gen        uint64
	data       []byte
	relocDelta int64
}

func (s *source) live() bool {
	if s == nil || s.alloc == nil {
		return true // in-place, always live
	}
	return s.alloc.Generation(s.tag) == s.gen
}

// Value is the tagged generic value spec.md §3 describes: one small,
// copyable struct representing Null, Bool, Int, Float, String,
// Sequence, Mapping, Indirect, or Alias.
type Value struct {
	kind   Kind
	inline bool // true: self-contained, outlives any builder

	// scalar payloads
	i              int64 // Int
	unsignedExtend bool  // Int: value exceeds signed max
	f              float64
	floatIsFloat32 bool // Float: was built through the float32 path
	s              string

	// collection payloads (record := count + ordered contents)
	items []Value
	pairs []Pair

	// indirect/alias payload
	ind *indirectData

	src source
}

// InvalidValue is the sentinel invalid value; its Word() is `~0` per
// spec.md §3, and it never appears in a well-formed emitted stream.
var InvalidValue = Value{kind: Invalid, inline: true}

// NullValue is the canonical, in-place null.
var NullValue = Value{kind: Null, inline: true}

// TrueValue and FalseValue are the canonical, in-place booleans.
var (
	TrueValue  = Value{kind: Bool, inline: true, i: 1}
	FalseValue = Value{kind: Bool, inline: true, i: 0}
)

func boolValue(b bool) Value {
	if b {
		return TrueValue
	}
	return FalseValue
}

// live reports whether v's out-of-place backing (if any) is still
// within its generation. In-place values are always live.
func (v Value) live() bool {
	return v.src.live()
}

// GetType classifies v. For an Indirect it dereferences to the wrapped
// value's raw kind (following at most one level of wrapping, per
// spec.md §4.D's edge case on doubly-wrapped indirects); an Indirect
// with no wrapped value is an Alias.
func (v Value) GetType() Kind {
	if !v.live() {
		return Invalid
	}
	if v.kind == Indirect {
		if v.ind != nil && v.ind.hasValue {
			return v.ind.value.kind
		}
		return Alias
	}
	return v.kind
}

func (v Value) IsInvalid() bool  { return v.GetType() == Invalid }
func (v Value) IsNull() bool     { return v.GetType() == Null }
func (v Value) IsBool() bool     { return v.GetType() == Bool }
func (v Value) IsInt() bool      { return v.GetType() == Int }
func (v Value) IsFloat() bool    { return v.GetType() == Float }
func (v Value) IsString() bool   { return v.GetType() == String }
func (v Value) IsSequence() bool { return v.GetType() == Sequence }
func (v Value) IsMapping() bool  { return v.GetType() == Mapping }
func (v Value) IsIndirect() bool { return v.kind == Indirect && v.ind != nil && v.ind.hasValue }
func (v Value) IsAlias() bool    { return v.GetType() == Alias }

// IsInPlace reports whether v carries no out-of-place pointer: true for
// every inline scalar, every escape code, and the canonical empty
// collections (spec.md §4.D).
func (v Value) IsInPlace() bool {
	if v.kind == Sequence || v.kind == Mapping {
		return len(v.items) == 0 && len(v.pairs) == 0
	}
	return v.inline
}

// unwrap follows one level of Indirect to the wrapped value, the way
// every scalar/collection accessor below needs to before reading a
// payload field (spec.md §4.D: "get_type... dereferences to the wrapped
// value's kind").
func (v Value) unwrap() Value {
	if v.kind == Indirect && v.ind != nil && v.ind.hasValue {
		return v.ind.value
	}
	return v
}

// GetBoolNoCheck returns v's boolean payload; the caller must already
// know GetType(v) == Bool.
func (v Value) GetBoolNoCheck() bool { return v.unwrap().i != 0 }

// GetIntNoCheck returns v's integer payload as a signed int64. If the
// value is unsigned-range-extended above math.MaxInt64 the bit pattern
// is returned as-is (reinterpret with GetUintNoCheck for the unsigned
// value).
func (v Value) GetIntNoCheck() int64 { return v.unwrap().i }

// GetUintNoCheck returns v's integer payload reinterpreted as unsigned,
// for values whose unsigned-range-extend flag is set.
func (v Value) GetUintNoCheck() uint64 { return uint64(v.unwrap().i) }

// IsUnsignedNoCheck reports whether v's integer exceeds signed max and
// should be treated (and emitted) as unsigned.
func (v Value) IsUnsignedNoCheck() bool { return v.unwrap().unsignedExtend }

// GetFloatNoCheck returns v's float payload as a double.
func (v Value) GetFloatNoCheck() float64 { return v.unwrap().f }

// GetStringNoCheck returns v's string payload. The returned string
// shares storage with the arena (or is a Go literal for in-place short
// strings); it is valid only while v remains live.
func (v Value) GetStringNoCheck() string { return v.unwrap().s }

// GetStringSize is the convenience pairing of bytes and length spec.md
// §8 scenario S2 names.
func (v Value) GetStringSize() (string, int) {
	s := v.GetStringNoCheck()
	return s, len(s)
}

// SequenceGetItems is zero-copy access to a sequence's record (spec.md
// §4.D).
func (v Value) SequenceGetItems() ([]Value, int) {
	u := v.unwrap()
	return u.items, len(u.items)
}

// MappingGetPairs is zero-copy access to a mapping's record.
func (v Value) MappingGetPairs() ([]Pair, int) {
	u := v.unwrap()
	return u.pairs, len(u.pairs)
}

// MappingGetValue linearly scans pairs comparing keys with Compare,
// returning InvalidValue if key isn't present.
func (v Value) MappingGetValue(key Value) Value {
	u := v.unwrap()
	for _, p := range u.pairs {
		if Compare(p.Key, key) == 0 {
			return p.Value
		}
	}
	return InvalidValue
}

// IndirectParts is the materialized decorator spec.md §4.D's
// `indirect_get` returns: fields are InvalidValue/zero when absent.
type IndirectParts struct {
	Value   Value
	Anchor  string
	Tag     string
	Style   Style
	Comment string
}

// IndirectGet materializes v's decorator fields. Calling it on a
// non-Indirect/Alias value returns a zero IndirectParts with
// Value == InvalidValue.
func (v Value) IndirectGet() IndirectParts {
	if v.kind != Indirect || v.ind == nil {
		return IndirectParts{Value: InvalidValue}
	}
	p := IndirectParts{Style: v.ind.style, Comment: v.ind.comment}
	if v.ind.hasValue {
		p.Value = v.ind.value
	} else {
		p.Value = InvalidValue
	}
	if v.ind.hasAnchor {
		p.Anchor = v.ind.anchor
	}
	if v.ind.hasTag {
		p.Tag = v.ind.tag
	}
	return p
}

// Word derives the inspectable tagged-word representation of v
// (spec.md §3's bit-layout table), for tests and diagnostics. It is not
// v's real storage (see design note §9): constructors never branch on
// it; Compare uses it as an equality fast path, and tests inspect it.
func (v Value) Word() uint64 {
	if !v.live() {
		return wordInvalid
	}
	switch v.kind {
	case Invalid:
		return wordInvalid
	case Null:
		return wordNullEscape
	case Bool:
		if v.i != 0 {
			return wordTrueEscape
		}
		return wordFalseEscape
	case Int:
		if v.inline {
			return uint64(v.i)<<3 | tagIntInline
		}
		return v.ptrWord() | tagIntOut
	case Float:
		if v.inline {
			return uint64(math.Float32bits(float32(v.f)))<<32 | tagFloatInline
		}
		return v.ptrWord() | tagFloatOut
	case String:
		if v.inline {
			w := tagStringInline
			w |= uint64(len(v.s)&0x7) << 4
			for i := 0; i < len(v.s); i++ {
				w |= uint64(v.s[i]) << uint(8+8*i)
			}
			return w
		}
		return v.ptrWord() | tagStringOut
	case Sequence, Mapping:
		if len(v.items) == 0 && len(v.pairs) == 0 {
			if v.kind == Mapping {
				return emptyMapWord
			}
			return emptySeqWord
		}
		w := v.ptrWord() | tagSequenceOrMapping
		if v.kind == Mapping {
			w |= mapBit
		}
		return w
	case Indirect, Alias:
		return v.ptrWord() | tagIndirectPtr
	}
	return wordInvalid
}

// ptrWord returns the low-bits-cleared synthetic address portion of an
// out-of-place Value's tagged word.
func (v Value) ptrWord() uint64 {
	a := addrOf(v.src.data)
	if a == 0 {
		return 0
	}
	a += uint64(v.src.relocDelta)
	return a &^ 0xF
}
