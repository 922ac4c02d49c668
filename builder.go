package fy

import (
	"math"

	"github.com/modfy/fy/internal/arena"
	"github.com/modfy/fy/internal/dedup"
)

// Inline integer range: 61-bit signed (3 tag bits consumed from a
// 64-bit word), per spec.md §3's tagged-word table.
const (
	inlineIntBits = 61
	inlineIntMax  = int64(1)<<60 - 1
	inlineIntMin  = -(int64(1) << 60)

	// inlineStringMaxLen is the longest string packable into the upper
	// 56 bits of a word (7 bytes), per spec.md §3.
	inlineStringMaxLen = 7

	recordAlign     = 8
	collectionAlign = 16
)

// Builder is the generic builder of spec.md §4.E: an arena-backed
// constructor set that decides between in-place and out-of-place
// encoding, optionally deduplicating out-of-place content and rejecting
// duplicate mapping keys.
type Builder struct {
	alloc  arena.Allocator
	tag    arena.Tag
	dedup  *dedup.Index
	parent *Builder

	rejectDuplicateKeys bool

	allocationFailures int64
}

// BuilderOption configures a Builder at construction time, the teacher's
// functional-options idiom (mirrored from Emitter.SetIndent's style of
// post-construction configuration, generalized to construction-time
// options per SPEC_FULL.md's ambient-stack section).
type BuilderOption func(*Builder)

// WithAllocator overrides the default arena.NewAuto backend, e.g. with
// an internal/arena.Linear for the retry harness.
func WithAllocator(a arena.Allocator) BuilderOption {
	return func(b *Builder) { b.alloc = a }
}

// WithDedup enables or disables this builder's own dedup level. Parent
// levels are controlled by WithParent's builder independently.
func WithDedup(enabled bool) BuilderOption {
	return func(b *Builder) { b.dedup = dedup.New(enabled, parentDedup(b.parent)) }
}

// WithParent chains this builder's internalize/contains queries and
// dedup lookups to an ancestor builder, per spec.md §3's "parent-chained
// builders form an acyclic lookup graph".
func WithParent(parent *Builder) BuilderOption {
	return func(b *Builder) { b.parent = parent }
}

// WithDuplicateKeyRejection makes MappingCreate and Assoc refuse a key
// equal to one already present (spec.md §4.E).
func WithDuplicateKeyRejection(reject bool) BuilderOption {
	return func(b *Builder) { b.rejectDuplicateKeys = reject }
}

func parentDedup(parent *Builder) *dedup.Index {
	if parent == nil {
		return nil
	}
	return parent.dedup
}

// NewBuilder constructs a Builder over a fresh tag of its allocator (the
// "auto" backend by default). Dedup is disabled unless WithDedup(true)
// is passed.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.alloc == nil {
		b.alloc = arena.NewAuto()
	}
	if b.dedup == nil {
		b.dedup = dedup.New(false, parentDedup(b.parent))
	}
	b.tag = b.alloc.NewTag()
	return b
}

// AllocationFailures returns the count of allocator failures this
// builder has observed (spec.md §5 "Allocation-failure discipline").
func (b *Builder) AllocationFailures() int64 { return b.allocationFailures }

// Info reports this builder's arena counters (spec.md §6 "Allocator
// info").
func (b *Builder) Info() arena.Info { return b.alloc.Info(b.tag) }

// Reset invalidates every value this builder has produced; subsequent
// queries on them report Invalid (spec.md §3 "Lifecycle and
// ownership").
func (b *Builder) Reset() { b.alloc.Reset(b.tag) }

// Release hints that data backing a previously built value is no
// longer needed.
func (b *Builder) Release(data []byte) { b.alloc.Release(b.tag, data) }

// Trim returns unused arena capacity to the OS where possible.
func (b *Builder) Trim() { b.alloc.Trim(b.tag) }

func (b *Builder) markFailure() {
	b.allocationFailures++
}

// storeRecord is the common out-of-place path: dedup-lookup first, then
// arena.Store on miss, inserting the newly stored bytes at whatever
// level actually served the store (this builder's own index — insertion
// always happens at the innermost enabled level, per spec.md §4.C).
func (b *Builder) storeRecord(iov [][]byte, align int) (data []byte, ok bool) {
	if data, hit := b.dedup.Lookup(iov); hit {
		return data, true
	}
	data, ok = b.alloc.Storev(b.tag, iov, align)
	if !ok {
		b.markFailure()
		return nil, false
	}
	b.dedup.Insert(data)
	return data, true
}

func (b *Builder) source(data []byte) source {
	return source{alloc: b.alloc, tag: b.tag, gen: b.alloc.Generation(b.tag), data: data}
}

// --- Scalar constructors (spec.md §4.E) ---

// Null returns the canonical in-place null.
func (b *Builder) Null() Value { return NullValue }

// Bool returns the canonical in-place boolean.
func (b *Builder) Bool(v bool) Value { return boolValue(v) }

// Int builds a signed integer, inline when it fits the 61-bit inline
// range, out-of-place otherwise.
func (b *Builder) Int(v int64) Value {
	if v >= inlineIntMin && v <= inlineIntMax {
		return Value{kind: Int, inline: true, i: v}
	}
	return b.outOfPlaceInt(v, false)
}

// Uint builds an unsigned integer: inline when representable in the
// inline range (which, being nonnegative, always fits signed int64),
// out-of-place with the unsigned-range-extend flag set when it exceeds
// math.MaxInt64.
func (b *Builder) Uint(v uint64) Value {
	if v <= uint64(inlineIntMax) {
		return Value{kind: Int, inline: true, i: int64(v)}
	}
	return b.outOfPlaceInt(int64(v), v > math.MaxInt64)
}

func (b *Builder) outOfPlaceInt(v int64, unsignedExtend bool) Value {
	rec := encodeIntRecord(intRecord{v: v, unsignedExtend: unsignedExtend})
	data, ok := b.storeRecord([][]byte{rec}, recordAlign)
	if !ok {
		return InvalidValue
	}
	return Value{kind: Int, i: v, unsignedExtend: unsignedExtend, src: b.source(data)}
}

// Float builds a single-precision float; it always inline-packs (spec.md
// §3: "inline float: single-precision packed into the upper 32 bits").
func (b *Builder) Float(v float32) Value {
	return Value{kind: Float, inline: true, f: float64(v), floatIsFloat32: true}
}

// Double builds a double-precision float. Per DESIGN.md's resolution of
// spec.md §9's open float-precision question, it inline-packs only when
// v round-trips through float32 without loss; otherwise it stores a
// full out-of-place double so CastFloat64Default is always exact for
// values built through this constructor.
func (b *Builder) Double(v float64) Value {
	if f32 := float32(v); float64(f32) == v {
		return Value{kind: Float, inline: true, f: v}
	}
	rec := encodeFloatRecord(v)
	data, ok := b.storeRecord([][]byte{rec}, recordAlign)
	if !ok {
		return InvalidValue
	}
	return Value{kind: Float, f: v, src: b.source(data)}
}

// String builds a string, inline when its length is ≤7 bytes, otherwise
// out-of-place as a length-prefixed, NUL-terminated record (spec.md
// §3). Out-of-place construction is deduplicated.
func (b *Builder) String(s string) Value {
	if len(s) <= inlineStringMaxLen {
		return Value{kind: String, inline: true, s: s}
	}
	prefix := make([]byte, 0, 9)
	prefix = appendStringLen(prefix, uint64(len(s)))
	data, ok := b.storeRecord([][]byte{prefix, []byte(s), {0}}, recordAlign)
	if !ok {
		return InvalidValue
	}
	return Value{kind: String, s: s, src: b.source(data)}
}
