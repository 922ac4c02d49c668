package fy

import (
	"encoding/binary"
	"math"

	"github.com/modfy/fy/internal/varint"
)

// Pair is one key/value entry of a Mapping, in insertion order
// (spec.md §3 "Mapping").
type Pair struct {
	Key   Value
	Value Value
}

// intRecord is the out-of-place integer record of spec.md §3: a signed
// value plus the single "unsigned-range-extend" flag that says the
// value exceeds signed max and should be emitted as unsigned.
type intRecord struct {
	v              int64
	unsignedExtend bool
}

const intRecordSize = 9 // 8 bytes of value + 1 flag byte

func encodeIntRecord(r intRecord) []byte {
	buf := make([]byte, intRecordSize)
	binary.LittleEndian.PutUint64(buf, uint64(r.v))
	if r.unsignedExtend {
		buf[8] = 1
	}
	return buf
}

func decodeIntRecord(buf []byte) intRecord {
	return intRecord{
		v:              int64(binary.LittleEndian.Uint64(buf)),
		unsignedExtend: buf[8] != 0,
	}
}

// floatRecord is the out-of-place float record of spec.md §3: a double.
const floatRecordSize = 8

func encodeFloatRecord(f float64) []byte {
	buf := make([]byte, floatRecordSize)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
	return buf
}

func decodeFloatRecord(buf []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(buf))
}

// appendStringLen appends the variable-length length prefix (codec A)
// that precedes every out-of-place string record's bytes.
func appendStringLen(buf []byte, n uint64) []byte {
	return varint.Encode(buf, n)
}

// stringLen decodes the length prefix at the start of an out-of-place
// string record, returning the length and the prefix's byte width.
func stringLen(buf []byte) (n uint64, width int) {
	return varint.DecodeNoCheck(buf)
}

// indirectData is the indirect record of spec.md §3: a flag word
// followed by 0-3 values in fixed order {value, anchor, tag}, each
// present iff its flag bit is set, plus the single optional comment
// field SPEC_FULL.md's "Supplemented features" section adds.
//
// Style bits live in the flag word in the real C layout; here they are
// just another field, per design note §9's license to use an explicit
// tag instead of packed bits for the parts that aren't the observable
// API surface.
type indirectData struct {
	hasValue  bool
	value     Value
	hasAnchor bool
	anchor    string
	hasTag    bool
	tag       string
	style     Style
	comment   string
}
