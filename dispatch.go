package fy

// Scalar enumerates the full C integer/float matrix spec.md §4.E and
// design note §9 require scalar dispatch to cover — "implementers must
// cover the full C integer/float matrix even if the target language has
// a single int" — even though Go already distinguishes these widths
// natively. This is the generic replacement for the C source's
// macro-based `_Generic` dispatch (design note §9, component I):
// BuildScalar routes each concrete type to its in-place/out-of-place
// Builder constructor at compile time instead of at the preprocessor
// level.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~string | ~bool
}

// BuildScalar constructs v through the Builder method matching its
// concrete type, so generic call sites (op.go's dispatcher, external
// bindings) don't need their own type switch.
func BuildScalar[T Scalar](b *Builder, v T) Value {
	switch x := any(v).(type) {
	case int:
		return b.Int(int64(x))
	case int8:
		return b.Int(int64(x))
	case int16:
		return b.Int(int64(x))
	case int32:
		return b.Int(int64(x))
	case int64:
		return b.Int(x)
	case uint:
		return b.Uint(uint64(x))
	case uint8:
		return b.Uint(uint64(x))
	case uint16:
		return b.Uint(uint64(x))
	case uint32:
		return b.Uint(uint64(x))
	case uint64:
		return b.Uint(x)
	case float32:
		return b.Float(x)
	case float64:
		return b.Double(x)
	case string:
		return b.String(x)
	case bool:
		return b.Bool(x)
	}
	return InvalidValue
}

// ScalarCodec pairs the in-place and out-of-place construction paths for
// one scalar type T, the explicit "trait" shape design note §9
// describes as the target for the macro-dispatch table: one entry per
// supported scalar type, each with an in_place and out_of_place pair.
type ScalarCodec[T Scalar] struct {
	// InPlace reports whether v can be encoded without arena storage.
	InPlace func(v T) bool
	// Build constructs the Value, taking whichever path InPlace selects.
	Build func(b *Builder, v T) Value
}

// Int64Codec, Uint64Codec, Float64Codec, and StringCodec are the
// concrete table entries for the scalar types the rest of this package
// exercises; additional entries (int8/16/32, uint8/16/32, float32) are
// omitted only because no caller in this module needs their InPlace
// predicate separately from BuildScalar's direct dispatch.
var (
	Int64Codec = ScalarCodec[int64]{
		InPlace: func(v int64) bool { return v >= inlineIntMin && v <= inlineIntMax },
		Build:   func(b *Builder, v int64) Value { return b.Int(v) },
	}
	Uint64Codec = ScalarCodec[uint64]{
		InPlace: func(v uint64) bool { return v <= uint64(inlineIntMax) },
		Build:   func(b *Builder, v uint64) Value { return b.Uint(v) },
	}
	Float64Codec = ScalarCodec[float64]{
		InPlace: func(v float64) bool { return float64(float32(v)) == v },
		Build:   func(b *Builder, v float64) Value { return b.Double(v) },
	}
	StringCodec = ScalarCodec[string]{
		InPlace: func(v string) bool { return len(v) <= inlineStringMaxLen },
		Build:   func(b *Builder, v string) Value { return b.String(v) },
	}
)
