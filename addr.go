package fy

import "unsafe"

// addrOf returns the address of a non-empty byte slice's first byte, for
// Word()'s synthetic out-of-place pointer construction. A nil or empty
// slice has no address worth reporting.
func addrOf(b []byte) uint64 {
	if len(b) == 0 {
		return 0
	}
	return uint64(uintptr(unsafe.Pointer(&b[0])))
}
