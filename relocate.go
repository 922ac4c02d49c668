package fy

// Relocate rewrites v's out-of-place pointer by delta if its synthetic
// address (Word(), masked to the pointer portion) lies in [start, end);
// in-place values are returned unchanged (spec.md §4.D "relocate").
//
// The arena backends in this module never move existing block memory —
// growth always appends a new block — so Relocate has no real caller in
// internal/arena today. It is kept as a pure, testable transform over
// Value's synthetic address so a future compacting backend (or a caller
// migrating values between two allocators) has a correct primitive to
// call; relocDelta lets it avoid mutating backing bytes in place.
func Relocate(start, end uint64, v Value, delta int64) Value {
	if v.IsInPlace() {
		return v
	}
	addr := v.ptrWord()
	if addr < start || addr >= end {
		return v
	}
	out := v
	out.src.relocDelta += delta
	return out
}
