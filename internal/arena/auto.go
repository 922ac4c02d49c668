package arena

import (
	"sync"

	mmap "github.com/edsrzf/mmap-go"
)

// blockSize is the minimum size of a freshly grown block, rounding up
// small requests so a long sequence of tiny allocations doesn't thrash
// the backing mapping.
const blockSize = 64 * 1024

// block is one contiguous allocation unit inside a tag's arena. It is
// backed either by an anonymous memory mapping (the common case) or, if
// mapping failed, by a plain heap slice — the "chain of blocks" fallback
// spec.md §4.B describes.
type block struct {
	buf    []byte
	used   int
	mapped mmap.MMap // non-nil when buf is backed by a mapping
}

func newBlock(size int) *block {
	if size < blockSize {
		size = blockSize
	}
	if m, err := mmap.MapRegion(nil, size, mmap.RDWR, mmap.ANON, 0); err == nil {
		return &block{buf: []byte(m), mapped: m}
	}
	// mmap-go's anonymous mapping isn't available on every platform;
	// fall back to a plain heap block rather than fail the allocation.
	return &block{buf: make([]byte, size)}
}

func (b *block) unmap() {
	if b.mapped != nil {
		_ = b.mapped.Unmap()
	}
}

type tagState struct {
	gen    uint64
	blocks []*block
	info   counters
}

// Auto is the allocator backend spec.md §4.B calls "auto": it grows an
// mmap-backed region per tag, falling back to heap blocks when mapping
// isn't available. Grounded on saferwall-pe/file.go's use of
// github.com/edsrzf/mmap-go to map PE file bytes; here the mapping is
// anonymous and writable instead of a read-only file view.
type Auto struct {
	mu   sync.Mutex
	tags map[Tag]*tagState
}

// NewAuto constructs an empty Auto allocator.
func NewAuto() *Auto {
	return &Auto{tags: make(map[Tag]*tagState)}
}

func (a *Auto) state(tag Tag) *tagState {
	st, ok := a.tags[tag]
	if !ok {
		st = &tagState{}
		a.tags[tag] = st
	}
	return st
}

func (a *Auto) NewTag() Tag {
	a.mu.Lock()
	defer a.mu.Unlock()
	t := nextTag()
	a.tags[t] = &tagState{}
	return t
}

func (a *Auto) Alloc(tag Tag, size, align int) ([]byte, bool) {
	if size < 0 {
		return nil, false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	st := a.state(tag)
	if n := len(st.blocks); n > 0 {
		last := st.blocks[n-1]
		start := alignUp(last.used, align)
		if start+size <= len(last.buf) {
			last.used = start + size
			st.info.allocations++
			st.info.bytesAllocated += int64(size)
			return last.buf[start : start+size : start+size], true
		}
	}
	nb := newBlock(size)
	if len(nb.buf) < size {
		return nil, false
	}
	start := alignUp(0, align)
	if start+size > len(nb.buf) {
		return nil, false
	}
	nb.used = start + size
	st.blocks = append(st.blocks, nb)
	st.info.allocations++
	st.info.bytesAllocated += int64(size)
	return nb.buf[start : start+size : start+size], true
}

func (a *Auto) Store(tag Tag, data []byte, align int) ([]byte, bool) {
	dst, ok := a.Alloc(tag, len(data), align)
	if !ok {
		return nil, false
	}
	copy(dst, data)
	return dst, true
}

func (a *Auto) Storev(tag Tag, iov [][]byte, align int) ([]byte, bool) {
	total := 0
	for _, b := range iov {
		total += len(b)
	}
	dst, ok := a.Alloc(tag, total, align)
	if !ok {
		return nil, false
	}
	n := 0
	for _, b := range iov {
		n += copy(dst[n:], b)
	}
	return dst, true
}

func (a *Auto) Release(tag Tag, data []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.tags[tag]
	if !ok {
		return
	}
	st.info.bytesFreed += int64(len(data))
}

// Trim unmaps any block that is entirely unused, returning its memory
// to the OS. The active (last) block is left alone since it may still
// be growing into.
func (a *Auto) Trim(tag Tag) {
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.tags[tag]
	if !ok {
		return
	}
	kept := st.blocks[:0]
	for i, b := range st.blocks {
		if b.used == 0 && i != len(st.blocks)-1 {
			b.unmap()
			continue
		}
		kept = append(kept, b)
	}
	st.blocks = kept
}

func (a *Auto) Info(tag Tag) Info {
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.tags[tag]
	if !ok {
		return Info{Backend: "auto"}
	}
	return st.info.snapshot("auto")
}

func (a *Auto) Reset(tag Tag) {
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.tags[tag]
	if !ok {
		return
	}
	for _, b := range st.blocks {
		b.unmap()
	}
	st.info.bytesFreed += int64(st.info.bytesAllocated)
	st.blocks = nil
	st.gen++
}

func (a *Auto) Generation(tag Tag) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.tags[tag]
	if !ok {
		return 0
	}
	return st.gen
}

func (a *Auto) Contains(tag Tag, data []byte) bool {
	if len(data) == 0 {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.tags[tag]
	if !ok {
		return false
	}
	d := addr(data)
	for _, b := range st.blocks {
		if len(b.buf) == 0 {
			continue
		}
		lo, hi := addr(b.buf), addr(b.buf)+uintptr(len(b.buf))
		if d >= lo && d < hi {
			return true
		}
	}
	return false
}
