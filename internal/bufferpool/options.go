package bufferpool

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/tuannm99/novapool/internal/pageindex"
	"github.com/tuannm99/novapool/internal/storage"
)

// BlockStore is the page-granular file the pool reads from and writes back to.
// *storage.PageFile satisfies it.
type BlockStore interface {
	ReadBlock(pageNum storage.PageNumber, dst []byte) error
	WriteBlock(pageNum storage.PageNumber, src []byte) error
	EnsureCapacity(numPages int32) error
	Close() error
}

// Opener opens the block store named by Init's path.
type Opener func(path string) (BlockStore, error)

var _ BlockStore = (*storage.PageFile)(nil)

func openPageFile(path string) (BlockStore, error) {
	pf, err := storage.OpenPageFile(path)
	if err != nil {
		return nil, err
	}
	return pf, nil
}

type Option func(*Pool)

func WithLogger(l *zap.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.log = l
		}
	}
}

func WithMeter(m metric.Meter) Option {
	return func(p *Pool) {
		if m != nil {
			p.meter = m
		}
	}
}

func WithOpener(o Opener) Option {
	return func(p *Pool) {
		if o != nil {
			p.opener = o
		}
	}
}

// WithLRUK sets the history depth for StrategyLRUK. Values below 1 are ignored.
func WithLRUK(k int) Option {
	return func(p *Pool) {
		if k >= 1 {
			p.lruK = k
		}
	}
}

func WithIndexCapacity(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.indexCapacity = n
		}
	}
}

func defaultOptions(p *Pool) {
	p.log = zap.NewNop()
	p.meter = noop.NewMeterProvider().Meter("")
	p.opener = openPageFile
	p.lruK = DefaultLRUK
	p.indexCapacity = pageindex.DefaultCapacity
}
