package fy

import "github.com/modfy/fy/internal/arena"

// failingAllocator implements arena.Allocator and fails every
// allocation, exercising spec.md §5's "allocation-failure discipline"
// without needing to actually exhaust a real backend.
type failingAllocator struct {
	gen uint64
}

func newTinyFailingAllocator() *failingAllocator { return &failingAllocator{} }

func (f *failingAllocator) NewTag() arena.Tag                                  { return 1 }
func (f *failingAllocator) Alloc(arena.Tag, int, int) ([]byte, bool)           { return nil, false }
func (f *failingAllocator) Store(arena.Tag, []byte, int) ([]byte, bool)        { return nil, false }
func (f *failingAllocator) Storev(arena.Tag, [][]byte, int) ([]byte, bool)     { return nil, false }
func (f *failingAllocator) Release(arena.Tag, []byte)                         {}
func (f *failingAllocator) Trim(arena.Tag)                                    {}
func (f *failingAllocator) Info(arena.Tag) arena.Info                         { return arena.Info{Backend: "failing"} }
func (f *failingAllocator) Reset(tag arena.Tag)                              { f.gen++ }
func (f *failingAllocator) Generation(arena.Tag) uint64                      { return f.gen }
func (f *failingAllocator) Contains(arena.Tag, []byte) bool                  { return false }
