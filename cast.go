package fy

import "math"

// CastBoolDefault returns v's boolean payload, or d if v is not a Bool.
func CastBoolDefault(v Value, d bool) bool {
	if !v.IsBool() {
		return d
	}
	return v.GetBoolNoCheck()
}

// CastInt64Default returns v's integer payload as int64, or d if v is
// not an Int or its unsigned-extended value exceeds math.MaxInt64 (the
// "return the default" branch of spec.md §9's open question on signed
// overflow).
func CastInt64Default(v Value, d int64) int64 {
	if !v.IsInt() {
		return d
	}
	if v.IsUnsignedNoCheck() && v.GetUintNoCheck() > math.MaxInt64 {
		return d
	}
	return v.GetIntNoCheck()
}

// CastUint64Default returns v's integer payload as uint64, or d if v is
// not an Int or its signed value is negative.
func CastUint64Default(v Value, d uint64) uint64 {
	if !v.IsInt() {
		return d
	}
	if !v.IsUnsignedNoCheck() && v.GetIntNoCheck() < 0 {
		return d
	}
	return v.GetUintNoCheck()
}

func castSignedDefault(v Value, d, lo, hi int64) int64 {
	if !v.IsInt() {
		return d
	}
	x := CastInt64Default(v, d)
	if x < lo || x > hi {
		return d
	}
	return x
}

// CastInt8Default, CastInt16Default, CastInt32Default narrow v's integer
// payload to the named width, returning d unless the value is exactly
// representable (spec.md §4.D: "Integer range checks are exact").
func CastInt8Default(v Value, d int8) int8 {
	return int8(castSignedDefault(v, int64(d), math.MinInt8, math.MaxInt8))
}

func CastInt16Default(v Value, d int16) int16 {
	return int16(castSignedDefault(v, int64(d), math.MinInt16, math.MaxInt16))
}

func CastInt32Default(v Value, d int32) int32 {
	return int32(castSignedDefault(v, int64(d), math.MinInt32, math.MaxInt32))
}

func castUnsignedDefault(v Value, d, hi uint64) uint64 {
	if !v.IsInt() {
		return d
	}
	x := CastUint64Default(v, d)
	if x > hi {
		return d
	}
	return x
}

// CastUint8Default, CastUint16Default, CastUint32Default narrow v's
// integer payload to the named unsigned width.
func CastUint8Default(v Value, d uint8) uint8 {
	return uint8(castUnsignedDefault(v, uint64(d), math.MaxUint8))
}

func CastUint16Default(v Value, d uint16) uint16 {
	return uint16(castUnsignedDefault(v, uint64(d), math.MaxUint16))
}

func CastUint32Default(v Value, d uint32) uint32 {
	return uint32(castUnsignedDefault(v, uint64(d), math.MaxUint32))
}

// CastFloat64Default returns v's float payload as a double, or d if v is
// not a Float. Values built via Builder.Double are always returned
// exactly (DESIGN.md's resolution of spec.md §9's float-precision
// question); values built via Builder.Float were already truncated to
// float32 precision at construction time.
func CastFloat64Default(v Value, d float64) float64 {
	if !v.IsFloat() {
		return d
	}
	return v.GetFloatNoCheck()
}

// CastFloat32Default returns v's float payload narrowed to float32, or d
// if v is not a Float or the value doesn't round-trip through float32
// losslessly.
func CastFloat32Default(v Value, d float32) float32 {
	if !v.IsFloat() {
		return d
	}
	f := v.GetFloatNoCheck()
	f32 := float32(f)
	if float64(f32) != f {
		return d
	}
	return f32
}

// CastStringDefault returns v's string payload, or d if v is not a
// String.
func CastStringDefault(v Value, d string) string {
	if !v.IsString() {
		return d
	}
	return v.GetStringNoCheck()
}
