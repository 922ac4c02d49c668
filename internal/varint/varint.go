// Package varint implements the length codec used for out-of-place
// strings and collection records: a little-endian sequence of 7-bit
// groups with the high bit set on every byte but the last.
//
// The algorithm is exactly encoding/binary's unsigned varint, so this
// package is a thin, size-limited wrapper over it rather than a
// reimplementation.
package varint

import "encoding/binary"

// MaxLen64 is the largest number of bytes Encode can produce for a
// 64-bit length.
const MaxLen64 = binary.MaxVarintLen64

// MaxLen32 is the largest number of bytes a 32-bit build's length codec
// can produce.
const MaxLen32 = binary.MaxVarintLen32

// Encode appends the minimal continuation-bit encoding of v to buf and
// returns the updated slice.
func Encode(buf []byte, v uint64) []byte {
	return binary.AppendUvarint(buf, v)
}

// DecodeNoCheck reads a varint from the front of buf. The caller must
// ensure buf holds a complete, well-formed encoding; bounds are not
// re-checked here.
func DecodeNoCheck(buf []byte) (value uint64, bytesRead int) {
	v, n := binary.Uvarint(buf)
	if n <= 0 {
		// binary.Uvarint only returns n<=0 on an incomplete or
		// over-wide input; callers of DecodeNoCheck promise that
		// never happens, but fail safe rather than panic.
		return 0, 0
	}
	return v, n
}

// SkipNoCheck returns the number of bytes the varint at the front of buf
// occupies, without materializing its value.
func SkipNoCheck(buf []byte) (bytesRead int) {
	_, n := DecodeNoCheck(buf)
	return n
}
