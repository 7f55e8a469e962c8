package bufferpool

import (
	"fmt"
	"strings"

	"github.com/tuannm99/novapool/internal/storage"
)

// Snapshot is a copy of the per-frame state and I/O counters at one point in time.
type Snapshot struct {
	Strategy      Strategy
	FrameContents []storage.PageNumber
	DirtyFlags    []bool
	FixCounts     []int
	NumReadIO     int
	NumWriteIO    int
}

// String renders the frames as "[page marker pins]" joined by commas, where the
// marker is 'x' for a dirty frame and a space otherwise.
func (s Snapshot) String() string {
	var b strings.Builder
	for i, pageNum := range s.FrameContents {
		if i > 0 {
			b.WriteByte(',')
		}
		marker := " "
		if s.DirtyFlags[i] {
			marker = "x"
		}
		fmt.Fprintf(&b, "[%d%s%d]", pageNum, marker, s.FixCounts[i])
	}
	return b.String()
}

func (p *Pool) snapshotLocked() Snapshot {
	n := p.frames.len()
	s := Snapshot{
		Strategy:      p.strategy,
		FrameContents: make([]storage.PageNumber, n),
		DirtyFlags:    make([]bool, n),
		FixCounts:     make([]int, n),
		NumReadIO:     p.reads,
		NumWriteIO:    p.writes,
	}
	for i := range n {
		f := p.frames.at(i)
		if !f.occupied {
			s.FrameContents[i] = storage.NoPage
			continue
		}
		s.FrameContents[i] = f.pageNum
		s.DirtyFlags[i] = f.dirty
		s.FixCounts[i] = f.pinCount
	}
	return s
}

// Stats returns a snapshot of the pool.
func (p *Pool) Stats() (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return Snapshot{}, opError("stats", storage.NoPage, ErrNotInitialized)
	}
	return p.snapshotLocked(), nil
}

// FrameContents lists the resident page per frame, NoPage for free frames.
// It returns nil when the pool is not initialized.
func (p *Pool) FrameContents() []storage.PageNumber {
	s, err := p.Stats()
	if err != nil {
		return nil
	}
	return s.FrameContents
}

func (p *Pool) DirtyFlags() []bool {
	s, err := p.Stats()
	if err != nil {
		return nil
	}
	return s.DirtyFlags
}

func (p *Pool) FixCounts() []int {
	s, err := p.Stats()
	if err != nil {
		return nil
	}
	return s.FixCounts
}

// NumReadIO is the number of blocks read since Init, 0 when not initialized.
func (p *Pool) NumReadIO() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return 0
	}
	return p.reads
}

func (p *Pool) NumWriteIO() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return 0
	}
	return p.writes
}
