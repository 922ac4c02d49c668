package fy

import "github.com/modfy/fy/internal/arena"

// retryInitialSize and retryCeiling bound the local-op retry harness of
// spec.md §4.E: "allocate a stack buffer (starting small)... if it
// fails... and the buffer is below a ceiling, double the buffer and
// retry." This stands in for the C source's alloca-based short-lived
// builder (design note §9).
const (
	retryInitialSize = 256
	retryCeiling     = 1 << 20 // 1 MiB
)

// BuildLocal runs build against a scratch Builder backed by an
// internal/arena.Linear buffer, doubling the buffer and retrying on
// allocation failure until either build succeeds or the buffer would
// exceed retryCeiling. It is meant for callers who want a value without
// paying for a long-lived arena: the dedup index (if any) and the
// parent chain are still honored via opts, but the underlying storage
// is a fixed-size, reset-per-attempt Linear buffer.
//
// build must be idempotent and free of side effects beyond calls on the
// Builder passed to it — a failed attempt is simply discarded and
// retried from scratch against a bigger buffer (spec.md §4.E: "without
// side effects this is safe").
func BuildLocal(build func(b *Builder) Value, opts ...BuilderOption) Value {
	for size := retryInitialSize; size <= retryCeiling; size *= 2 {
		lin := arena.NewLinear(make([]byte, size))
		b := NewBuilder(append([]BuilderOption{WithAllocator(lin)}, opts...)...)
		v := build(b)
		if b.AllocationFailures() == 0 {
			return v
		}
	}
	return InvalidValue
}
