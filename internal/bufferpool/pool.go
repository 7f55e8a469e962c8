package bufferpool

import (
	"sync"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/tuannm99/novapool/internal/pageindex"
	"github.com/tuannm99/novapool/internal/storage"
)

// PageHandle is returned by Pin. Data aliases the frame buffer and stays valid
// only until the matching Unpin.
type PageHandle struct {
	PageNum storage.PageNumber
	Data    []byte
}

// Pool caches pages of one page file in a fixed number of frames.
type Pool struct {
	log           *zap.Logger
	meter         metric.Meter
	metrics       *poolMetrics
	opener        Opener
	lruK          int
	indexCapacity int

	mu          sync.Mutex
	initialized bool
	pageFile    string
	strategy    Strategy
	frames      *frameTable
	index       pageindex.Index
	store       BlockStore
	replacer    Replacer
	clock       uint64
	reads       int
	writes      int
}

func NewPool(opts ...Option) *Pool {
	p := &Pool{}
	defaultOptions(p)
	for _, opt := range opts {
		opt(p)
	}

	m, err := newPoolMetrics(p.meter)
	if err != nil {
		p.log.Warn("metric instruments unavailable, recording disabled", zap.Error(err))
		m = noopPoolMetrics()
	}
	p.metrics = m
	return p
}

// Init opens pageFile and allocates numFrames empty frames managed by strategy.
// The file must already exist.
func (p *Pool) Init(pageFile string, numFrames int, strategy Strategy) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return opError("init", storage.NoPage, ErrAlreadyInitialized)
	}
	if numFrames <= 0 {
		return opError("init", storage.NoPage, ErrInvalidFrameCount)
	}
	repl, err := newReplacer(strategy, numFrames, p.lruK)
	if err != nil {
		return opError("init", storage.NoPage, err)
	}

	store, err := p.opener(pageFile)
	if err != nil {
		return opError("init", storage.NoPage, err)
	}

	p.pageFile = pageFile
	p.strategy = strategy
	p.frames = newFrameTable(numFrames)
	p.index = pageindex.New(p.indexCapacity)
	p.store = store
	p.replacer = repl
	p.clock = 0
	p.reads = 0
	p.writes = 0
	p.metrics.withStrategy(strategy)

	// Frame 0 oldest, frame N-1 newest.
	for i := range numFrames {
		p.touch(i)
	}
	p.initialized = true

	p.log.Info("buffer pool initialized",
		zap.String("page_file", pageFile),
		zap.Int("frames", numFrames),
		zap.Stringer("strategy", strategy),
	)
	return nil
}

// Initialized reports whether Init succeeded and Shutdown has not run since.
func (p *Pool) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

func (p *Pool) Strategy() Strategy {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.strategy
}

func (p *Pool) PageFile() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pageFile
}

func (p *Pool) NumFrames() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return 0
	}
	return p.frames.len()
}

// touch stamps slot with the next clock value.
func (p *Pool) touch(slot int) {
	f := p.frames.at(slot)
	f.lastAccess = p.clock
	p.replacer.RecordAccess(slot, p.clock)
	p.clock++
}

// Pin makes pageNum resident, increments its pin count and returns its buffer.
// The file grows with zero pages when pageNum lies past its end.
func (p *Pool) Pin(pageNum storage.PageNumber) (*PageHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return nil, opError("pin", pageNum, ErrNotInitialized)
	}
	if pageNum < 0 {
		return nil, opError("pin", pageNum, ErrInvalidPageNumber)
	}

	// 1) HIT
	if slot, ok := p.index.Lookup(pageNum); ok {
		f := p.frames.at(slot)
		p.touch(slot)
		f.pinCount++
		p.metrics.add(p.metrics.hits)
		p.log.Debug("pin hit", zap.Int32("page", int32(pageNum)), zap.Int("slot", slot))
		return &PageHandle{PageNum: pageNum, Data: f.data}, nil
	}

	// 2) MISS: claim a victim
	p.metrics.add(p.metrics.misses)
	slot, ok := p.replacer.Victim(p.frames.frames)
	if !ok {
		return nil, opError("pin", pageNum, ErrNoFreeFrame)
	}
	f := p.frames.at(slot)
	p.touch(slot)

	if f.occupied {
		if f.dirty {
			if err := p.writeBack(f); err != nil {
				return nil, opError("pin", pageNum, err)
			}
		}
		if err := p.index.Remove(f.pageNum); err != nil {
			return nil, opError("pin", pageNum, err)
		}
		p.metrics.add(p.metrics.evictions)
		p.log.Debug("evicted page",
			zap.Int32("page", int32(f.pageNum)),
			zap.Int("slot", slot),
		)
		f.release()
	}

	// 3) LOAD
	if err := p.index.Insert(pageNum, slot); err != nil {
		return nil, opError("pin", pageNum, err)
	}
	if err := p.load(f, pageNum); err != nil {
		_ = p.index.Remove(pageNum)
		f.release()
		p.replacer.Reset(slot)
		return nil, opError("pin", pageNum, err)
	}

	f.pageNum = pageNum
	f.dirty = false
	f.pinCount = 1
	f.occupied = true
	p.replacer.Reset(slot)
	p.touch(slot)

	p.log.Debug("pin miss", zap.Int32("page", int32(pageNum)), zap.Int("slot", slot))
	return &PageHandle{PageNum: pageNum, Data: f.data}, nil
}

func (p *Pool) load(f *Frame, pageNum storage.PageNumber) error {
	if err := p.store.EnsureCapacity(int32(pageNum) + 1); err != nil {
		return err
	}
	if err := p.store.ReadBlock(pageNum, f.data); err != nil {
		return err
	}
	p.reads++
	p.metrics.add(p.metrics.reads)
	return nil
}

// writeBack persists f and clears its dirty flag.
func (p *Pool) writeBack(f *Frame) error {
	if err := p.store.WriteBlock(f.pageNum, f.data); err != nil {
		return err
	}
	p.writes++
	p.metrics.add(p.metrics.writes)
	f.dirty = false
	p.log.Debug("wrote page", zap.Int32("page", int32(f.pageNum)), zap.Int("slot", f.slot))
	return nil
}

// resident returns the frame holding pageNum.
func (p *Pool) resident(op string, pageNum storage.PageNumber) (*Frame, error) {
	if !p.initialized {
		return nil, opError(op, pageNum, ErrNotInitialized)
	}
	slot, ok := p.index.Lookup(pageNum)
	if !ok {
		return nil, opError(op, pageNum, ErrPageNotResident)
	}
	return p.frames.at(slot), nil
}

// Unpin releases one pin on pageNum. Extra unpins leave the count at zero.
func (p *Pool) Unpin(pageNum storage.PageNumber) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := p.resident("unpin", pageNum)
	if err != nil {
		return err
	}
	p.touch(f.slot)
	if f.pinCount == 0 {
		p.log.Warn("unpin of unpinned page", zap.Int32("page", int32(pageNum)))
		return nil
	}
	f.pinCount--
	return nil
}

func (p *Pool) MarkDirty(pageNum storage.PageNumber) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := p.resident("mark dirty", pageNum)
	if err != nil {
		return err
	}
	p.touch(f.slot)
	f.dirty = true
	return nil
}

// ForcePage writes pageNum back immediately. Pinned pages are refused.
func (p *Pool) ForcePage(pageNum storage.PageNumber) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := p.resident("force", pageNum)
	if err != nil {
		return err
	}
	if f.pinCount != 0 {
		return opError("force", pageNum, ErrPagePinned)
	}
	if err := p.writeBack(f); err != nil {
		return opError("force", pageNum, err)
	}
	p.touch(f.slot)
	return nil
}

// FlushAll writes every dirty, unpinned frame. Dirty pinned frames are skipped.
func (p *Pool) FlushAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return opError("flush", storage.NoPage, ErrNotInitialized)
	}
	return p.flushLocked()
}

func (p *Pool) flushLocked() error {
	for i := range p.frames.len() {
		f := p.frames.at(i)
		if !f.occupied || !f.dirty || f.pinCount != 0 {
			continue
		}
		if err := p.writeBack(f); err != nil {
			return opError("flush", f.pageNum, err)
		}
		p.touch(i)
	}
	return nil
}

// Shutdown flushes, closes the page file and returns the pool to the
// uninitialized state. It refuses while any page is pinned.
func (p *Pool) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return opError("shutdown", storage.NoPage, ErrNotInitialized)
	}
	if p.frames.anyPinned() {
		return opError("shutdown", storage.NoPage, ErrPoolBusy)
	}
	if err := p.flushLocked(); err != nil {
		return err
	}

	closeErr := p.store.Close()

	p.frames.free()
	p.index.Destroy()
	p.frames = nil
	p.index = nil
	p.store = nil
	p.replacer = nil
	p.initialized = false

	p.log.Info("buffer pool shut down",
		zap.String("page_file", p.pageFile),
		zap.Int("reads", p.reads),
		zap.Int("writes", p.writes),
	)
	if closeErr != nil {
		return opError("shutdown", storage.NoPage, closeErr)
	}
	return nil
}
