package fy

// markerSize is the size of the dummy allocation collection constructors
// make solely to obtain a genuine tag/generation-backed address for
// Word()'s pointer synthesis and for arena.Contains/Relocate range
// tests. The actual items/pairs live in ordinary (GC-tracked) Go slices
// rather than being serialized into the arena byte-for-byte — design
// note §9 licenses an explicit-tag representation, and collection
// mutation (insert/replace/append/...) would otherwise require
// re-flattening the whole record on every edit.
const markerSize = collectionAlign

func (b *Builder) newMarker() ([]byte, bool) {
	data, ok := b.alloc.Alloc(b.tag, markerSize, collectionAlign)
	if !ok {
		b.markFailure()
		return nil, false
	}
	return data, true
}

// newRecordMarker is newMarker's 8-byte-aligned counterpart, for
// out-of-place records that aren't collections (spec.md §3: "all other
// out-of-place pointers require 8-byte alignment").
func (b *Builder) newRecordMarker() ([]byte, bool) {
	data, ok := b.alloc.Alloc(b.tag, markerSize, recordAlign)
	if !ok {
		b.markFailure()
		return nil, false
	}
	return data, true
}

// SequenceCreate builds a Sequence from items, in order. If internalize
// is true, every item not already owned by this builder's arena chain is
// copied in first (spec.md §4.E). An empty items slice yields the
// canonical in-place empty sequence.
func (b *Builder) SequenceCreate(items []Value, internalize bool) Value {
	if len(items) == 0 {
		return Value{kind: Sequence}
	}
	out := make([]Value, len(items))
	for i, it := range items {
		if internalize {
			out[i] = b.Internalize(it)
		} else {
			out[i] = it
		}
	}
	marker, ok := b.newMarker()
	if !ok {
		return InvalidValue
	}
	return Value{kind: Sequence, items: out, src: b.source(marker)}
}

// MappingCreate builds a Mapping from pairs, in insertion order. If
// internalize is true, every key and value is internalized first. If
// the builder was configured with WithDuplicateKeyRejection, an equal
// key appearing twice returns an *Error of kind ErrDuplicateKey. An
// empty pairs slice yields the canonical in-place empty mapping.
func (b *Builder) MappingCreate(pairs []Pair, internalize bool) (Value, error) {
	if len(pairs) == 0 {
		return Value{kind: Mapping}, nil
	}
	out := make([]Pair, len(pairs))
	for i, p := range pairs {
		k, v := p.Key, p.Value
		if internalize {
			k = b.Internalize(k)
			v = b.Internalize(v)
		}
		if b.rejectDuplicateKeys {
			for j := 0; j < i; j++ {
				if Compare(out[j].Key, k) == 0 {
					return InvalidValue, newError(ErrDuplicateKey, "MappingCreate", nil)
				}
			}
		}
		out[i] = Pair{Key: k, Value: v}
	}
	marker, ok := b.newMarker()
	if !ok {
		return InvalidValue, newError(ErrAllocationFailure, "MappingCreate", nil)
	}
	return Value{kind: Mapping, pairs: out, src: b.source(marker)}, nil
}

func cloneSequenceWith(v Value, b *Builder, mutate func(items []Value) []Value) Value {
	items, _ := v.SequenceGetItems()
	next := mutate(append([]Value(nil), items...))
	if len(next) == 0 {
		return Value{kind: Sequence}
	}
	marker, ok := b.newMarker()
	if !ok {
		return InvalidValue
	}
	return Value{kind: Sequence, items: next, src: b.source(marker)}
}

// SequenceInsert returns a new sequence with item inserted at index
// (0 ≤ index ≤ len). Sequences are immutable; mutators return modified
// copies (spec.md §4.E).
func (b *Builder) SequenceInsert(v Value, index int, item Value) Value {
	return cloneSequenceWith(v, b, func(items []Value) []Value {
		if index < 0 || index > len(items) {
			return items
		}
		out := make([]Value, 0, len(items)+1)
		out = append(out, items[:index]...)
		out = append(out, item)
		out = append(out, items[index:]...)
		return out
	})
}

// SequenceReplace returns a new sequence with the item at index replaced
// by item.
func (b *Builder) SequenceReplace(v Value, index int, item Value) Value {
	return cloneSequenceWith(v, b, func(items []Value) []Value {
		if index < 0 || index >= len(items) {
			return items
		}
		items[index] = item
		return items
	})
}

// SequenceAppend returns a new sequence with item appended.
func (b *Builder) SequenceAppend(v Value, item Value) Value {
	return cloneSequenceWith(v, b, func(items []Value) []Value {
		return append(items, item)
	})
}

// SequenceRemove returns a new sequence with the item at index removed.
func (b *Builder) SequenceRemove(v Value, index int) Value {
	return cloneSequenceWith(v, b, func(items []Value) []Value {
		if index < 0 || index >= len(items) {
			return items
		}
		return append(items[:index], items[index+1:]...)
	})
}

func cloneMappingWith(v Value, b *Builder, mutate func(pairs []Pair) []Pair) Value {
	pairs, _ := v.MappingGetPairs()
	next := mutate(append([]Pair(nil), pairs...))
	if len(next) == 0 {
		return Value{kind: Mapping}
	}
	marker, ok := b.newMarker()
	if !ok {
		return InvalidValue
	}
	return Value{kind: Mapping, pairs: next, src: b.source(marker)}
}

// MappingAssoc returns a new mapping with key bound to value: replacing
// the existing pair if key is already present (in place, preserving its
// position), or appending a new pair otherwise.
func (b *Builder) MappingAssoc(v Value, key, value Value) Value {
	return cloneMappingWith(v, b, func(pairs []Pair) []Pair {
		for i, p := range pairs {
			if Compare(p.Key, key) == 0 {
				pairs[i].Value = value
				return pairs
			}
		}
		return append(pairs, Pair{Key: key, Value: value})
	})
}

// MappingDisassoc returns a new mapping with key removed, if present.
func (b *Builder) MappingDisassoc(v Value, key Value) Value {
	return cloneMappingWith(v, b, func(pairs []Pair) []Pair {
		for i, p := range pairs {
			if Compare(p.Key, key) == 0 {
				return append(pairs[:i], pairs[i+1:]...)
			}
		}
		return pairs
	})
}

// MappingSetValue is an alias for MappingAssoc, matching spec.md §4.E's
// mapping mutator name "set_value".
func (b *Builder) MappingSetValue(v Value, key, value Value) Value {
	return b.MappingAssoc(v, key, value)
}

// MappingAppend inserts a pair at the end unconditionally, even if key
// already exists (used by callers that have already excluded
// duplicates, e.g. merge/concat style ops).
func (b *Builder) MappingAppend(v Value, key, value Value) Value {
	return cloneMappingWith(v, b, func(pairs []Pair) []Pair {
		return append(pairs, Pair{Key: key, Value: value})
	})
}
