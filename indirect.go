package fy

// IndirectCreate builds an Indirect decorator wrapping parts.Value (or
// none, for an Alias) together with whatever optional anchor/tag/style/
// comment fields are set (spec.md §4.E "indirect_create"). Pass
// InvalidValue for parts.Value to build a value-less Alias.
func (b *Builder) IndirectCreate(parts IndirectParts) Value {
	ind := &indirectData{style: parts.Style, comment: parts.Comment}
	if !parts.Value.IsInvalid() {
		ind.hasValue = true
		ind.value = parts.Value
	}
	if parts.Anchor != "" {
		ind.hasAnchor = true
		ind.anchor = parts.Anchor
	}
	if parts.Tag != "" {
		ind.hasTag = true
		ind.tag = parts.Tag
	}
	marker, ok := b.newRecordMarker()
	if !ok {
		return InvalidValue
	}
	return Value{kind: Indirect, ind: ind, src: b.source(marker)}
}

// AliasCreate builds an Alias: an Indirect with no wrapped value and the
// given anchor (spec.md §3: "Alias... encoded as an indirect with no
// value but an anchor string").
func (b *Builder) AliasCreate(anchor string) Value {
	return b.IndirectCreate(IndirectParts{Value: InvalidValue, Anchor: anchor})
}

// contains reports whether v's out-of-place backing already lives in
// this builder's arena or one of its ancestors' (spec.md §4.E
// "internalize": "already in arena is tested by an arena-membership
// query").
func (b *Builder) contains(v Value) bool {
	if v.IsInPlace() {
		return true
	}
	for cur := b; cur != nil; cur = cur.parent {
		if v.src.alloc == cur.alloc && cur.alloc.Contains(cur.tag, v.src.data) {
			return true
		}
	}
	return false
}

// Internalize returns v unchanged if it is already reachable from this
// builder's arena chain (in-place values always qualify); otherwise it
// deep-copies v into this builder via Copy (spec.md §4.E).
func (b *Builder) Internalize(v Value) Value {
	if b.contains(v) {
		return v
	}
	return b.Copy(v)
}

// Copy deep-copies any out-of-place parts of v into this builder,
// rebuilding it from its constructors rather than byte-copying arena
// records — every nested scalar, collection, and indirect is
// reconstructed through this builder, so the result is fully internalized
// and participates in this builder's dedup index going forward.
func (b *Builder) Copy(v Value) Value {
	// Handled on the raw kind, not GetType(), so an Indirect's
	// anchor/tag/style/comment survive the copy instead of being
	// discarded by dereferencing through to the wrapped value's kind.
	if v.kind == Indirect && v.ind != nil {
		parts := v.IndirectGet()
		if !parts.Value.IsInvalid() {
			parts.Value = b.Copy(parts.Value)
		}
		return b.IndirectCreate(parts)
	}
	switch v.kind {
	case Null:
		return NullValue
	case Bool:
		return boolValue(v.GetBoolNoCheck())
	case Int:
		if v.unsignedExtend {
			return b.Uint(uint64(v.i))
		}
		return b.Int(v.i)
	case Float:
		if v.floatIsFloat32 {
			return b.Float(float32(v.f))
		}
		return b.Double(v.f)
	case String:
		return b.String(v.s)
	case Sequence:
		return b.SequenceCreate(v.items, true)
	case Mapping:
		out, err := b.MappingCreate(v.pairs, true)
		if err != nil {
			return InvalidValue
		}
		return out
	}
	return InvalidValue
}

// Export transfers v from its originating (often short-lived, scratch)
// builder into dest, a longer-lived parent, via Internalize — the
// "exported value" of spec.md §3.
func Export(v Value, dest *Builder) Value {
	return dest.Internalize(v)
}
