package bufferpool

import "github.com/tuannm99/novapool/internal/storage"

// Frame is one fixed slot of the pool. Its data slice points into the pool arena
// and is never reallocated while the pool is initialized.
type Frame struct {
	data       []byte
	pageNum    storage.PageNumber
	slot       int
	pinCount   int
	dirty      bool
	occupied   bool
	lastAccess uint64
}

func (f *Frame) PageNum() storage.PageNumber { return f.pageNum }
func (f *Frame) Slot() int                   { return f.slot }
func (f *Frame) PinCount() int               { return f.pinCount }
func (f *Frame) Dirty() bool                 { return f.dirty }
func (f *Frame) Occupied() bool              { return f.occupied }
func (f *Frame) LastAccess() uint64          { return f.lastAccess }

// release marks the frame free without touching its recency.
func (f *Frame) release() {
	f.pageNum = storage.NoPage
	f.pinCount = 0
	f.dirty = false
	f.occupied = false
}

// frameTable owns every frame plus the single arena backing their buffers.
type frameTable struct {
	arena  []byte
	frames []Frame
}

func newFrameTable(n int) *frameTable {
	ft := &frameTable{
		arena:  make([]byte, n*storage.PageSize),
		frames: make([]Frame, n),
	}
	for i := range ft.frames {
		off := i * storage.PageSize
		ft.frames[i] = Frame{
			data:    ft.arena[off : off+storage.PageSize : off+storage.PageSize],
			pageNum: storage.NoPage,
			slot:    i,
		}
	}
	return ft
}

func (ft *frameTable) len() int { return len(ft.frames) }

func (ft *frameTable) at(slot int) *Frame { return &ft.frames[slot] }

func (ft *frameTable) anyPinned() bool {
	for i := range ft.frames {
		if ft.frames[i].pinCount > 0 {
			return true
		}
	}
	return false
}

// free drops the arena so buffers handed out earlier stop aliasing pool memory.
func (ft *frameTable) free() {
	for i := range ft.frames {
		ft.frames[i].data = nil
	}
	ft.arena = nil
	ft.frames = nil
}
