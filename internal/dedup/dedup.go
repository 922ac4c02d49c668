// Package dedup implements the content-addressed lookup spec.md §4.C
// describes: a hash-indexed table over previously stored byte strings
// within a tag, walked across a parent chain of builders.
//
// Stdlib justification: no example in this repository's retrieval pack
// imports a non-cryptographic hash library (xxhash, murmur, fnv-family);
// hash/maphash is the standard library's own fast mixer and is exactly
// what spec.md §4.C asks for ("a fast non-cryptographic 64-bit mixer
// over the byte stream").
package dedup

import (
	"bytes"
	"hash/maphash"
	"sync"
)

// seed is shared by every Index in the process so that two Index values
// with the same parent-chain depth hash equal content identically; the
// hash is never persisted or compared across processes, so a
// process-lifetime seed is sufficient.
var seed = maphash.MakeSeed()

func sum(iov [][]byte) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	for _, b := range iov {
		_, _ = h.Write(b)
	}
	return h.Sum64()
}

type entry struct {
	data []byte
}

// Index is one builder's dedup table. It may chain to a parent index
// that belongs to an ancestor builder; the child never mutates the
// parent (design note §9, "parent-chained dedup index is an acyclic
// graph of borrow-only references").
type Index struct {
	mu      sync.Mutex
	enabled bool
	parent  *Index
	table   map[uint64][]entry
}

// New creates a dedup index. parent may be nil.
func New(enabled bool, parent *Index) *Index {
	return &Index{enabled: enabled, parent: parent, table: make(map[uint64][]entry)}
}

// Enabled reports whether this index (not its parents) performs lookups
// and insertions.
func (ix *Index) Enabled() bool { return ix != nil && ix.enabled }

// Lookup walks from ix up its parent chain, stopping at (and not
// consulting) the first dedup-disabled link, and returns a previously
// stored byte slice equal to the concatenation of iov, if one exists.
func (ix *Index) Lookup(iov [][]byte) (data []byte, ok bool) {
	if ix == nil {
		return nil, false
	}
	h := sum(iov)
	for cur := ix; cur != nil && cur.enabled; cur = cur.parent {
		cur.mu.Lock()
		bucket := cur.table[h]
		for _, e := range bucket {
			if iovEqual(e.data, iov) {
				cur.mu.Unlock()
				return e.data, true
			}
		}
		cur.mu.Unlock()
	}
	return nil, false
}

// Insert records data (already stored in the arena by the caller) under
// this index, the "innermost dedup-enabled level" spec.md §4.C requires
// insertion to happen at. A no-op on a disabled index.
func (ix *Index) Insert(data []byte) {
	if ix == nil || !ix.enabled {
		return
	}
	h := sum([][]byte{data})
	ix.mu.Lock()
	ix.table[h] = append(ix.table[h], entry{data: data})
	ix.mu.Unlock()
}

func iovEqual(flat []byte, iov [][]byte) bool {
	n := 0
	for _, b := range iov {
		n += len(b)
	}
	if len(flat) != n {
		return false
	}
	off := 0
	for _, b := range iov {
		if !bytes.Equal(flat[off:off+len(b)], b) {
			return false
		}
		off += len(b)
	}
	return true
}
