package fy

import (
	"testing"

	"github.com/modfy/fy/internal/arena"
	"github.com/stretchr/testify/require"
)

func inlineInt(n int64) Value {
	return Value{kind: Int, inline: true, i: n}
}

func outOfPlaceString(t *testing.T, s string) Value {
	t.Helper()
	a := arena.NewLinear(make([]byte, 256))
	tag := a.NewTag()
	data, ok := a.Store(tag, []byte(s), 8)
	require.True(t, ok, "arena store failed")
	return Value{
		kind: String,
		s:    s,
		src:  source{alloc: a, tag: tag, gen: a.Generation(tag), data: data},
	}
}

// S1 (inline scalar).
func TestScenarioS1InlineScalar(t *testing.T) {
	v := inlineInt(42)
	require.True(t, v.IsInPlace())
	require.Equal(t, uint64(0b001), v.Word()&0b111, "expected tag bits 001")
	require.Equal(t, int32(42), CastInt32Default(v, -1))
}

// S2 (out-of-place string).
func TestScenarioS2OutOfPlaceString(t *testing.T) {
	v := outOfPlaceString(t, "hello world")
	require.False(t, v.IsInPlace())
	require.Equal(t, uint64(0b110), v.Word()&0b111, "expected tag bits 110")
	s, n := v.GetStringSize()
	require.Equal(t, "hello world", s)
	require.Equal(t, 11, n)
}

func TestCompareBasics(t *testing.T) {
	a, b := inlineInt(1), inlineInt(1)
	require.Equal(t, 0, Compare(a, b), "expected equal ints to compare 0")
	c := inlineInt(2)
	require.Less(t, Compare(a, c), 0, "expected 1 < 2")
	require.NotEqual(t, 0, Compare(InvalidValue, a), "expected Invalid to never compare equal")
}

func TestCompareMappingOrderSensitive(t *testing.T) {
	m1 := Value{kind: Mapping, pairs: []Pair{
		{Key: stringLit("a"), Value: inlineInt(1)},
		{Key: stringLit("b"), Value: inlineInt(2)},
	}}
	m2 := Value{kind: Mapping, pairs: []Pair{
		{Key: stringLit("b"), Value: inlineInt(2)},
		{Key: stringLit("a"), Value: inlineInt(1)},
	}}
	require.NotEqual(t, 0, Compare(m1, m2), "expected reordered mapping to compare unequal (order-sensitive default)")
}

func stringLit(s string) Value {
	return Value{kind: String, inline: true, s: s}
}

// S3 (mapping order).
func TestScenarioS3MappingOrder(t *testing.T) {
	m := Value{kind: Mapping, pairs: []Pair{
		{Key: stringLit("a"), Value: inlineInt(1)},
		{Key: stringLit("b"), Value: inlineInt(2)},
		{Key: stringLit("c"), Value: inlineInt(3)},
	}}
	pairs, n := m.MappingGetPairs()
	require.Equal(t, 3, n)
	require.Equal(t, "a", pairs[0].Key.GetStringNoCheck())
	got := m.MappingGetValue(stringLit("b"))
	require.Equal(t, int64(2), CastInt64Default(got, -1))
	absent := m.MappingGetValue(stringLit("d"))
	require.True(t, absent.IsInvalid(), "expected lookup of absent key to yield Invalid")
}

func TestRelocateShiftsOutOfPlaceOnly(t *testing.T) {
	v := outOfPlaceString(t, "relocate-me-0123456789")
	before := v.ptrWord()
	out := Relocate(before, before+1, v, 1024)
	require.Equal(t, before+1024, out.ptrWord())
	in := inlineInt(7)
	require.Equal(t, in.Word(), Relocate(0, ^uint64(0), in, 99).Word(), "expected in-place value untouched by relocate")
}

func TestGetTypeIndirectionOneLevel(t *testing.T) {
	inner := inlineInt(7)
	indirect := Value{kind: Indirect, ind: &indirectData{hasValue: true, value: inner}}
	require.Equal(t, Int, indirect.GetType(), "expected indirect wrapping int to report Int")

	alias := Value{kind: Indirect, ind: &indirectData{hasValue: false}}
	require.Equal(t, Alias, alias.GetType(), "expected valueless indirect to report Alias")

	doublyWrapped := Value{kind: Indirect, ind: &indirectData{hasValue: true, value: indirect}}
	require.Equal(t, Indirect, doublyWrapped.GetType(), "expected doubly-wrapped indirect to report Indirect (one level only)")
}

func TestCastDefaultsAndRangeChecks(t *testing.T) {
	require.Equal(t, int8(-1), CastInt8Default(inlineInt(200), -1), "expected out-of-range int8 cast to return default")
	require.Equal(t, int8(100), CastInt8Default(inlineInt(100), -1), "expected exact-range int8 cast to succeed")
	require.Equal(t, "fallback", CastStringDefault(inlineInt(1), "fallback"), "expected wrong-kind cast to return default")
}

func TestInvalidValueAfterGenerationAdvance(t *testing.T) {
	v := outOfPlaceString(t, "soon-to-be-invalid-0123456789")
	require.False(t, v.IsInvalid(), "expected freshly built value to be valid")
	v.src.alloc.Reset(v.src.tag)
	require.True(t, v.IsInvalid(), "expected value built under a reset tag to report Invalid")
	require.Equal(t, wordInvalid, v.Word())
}
