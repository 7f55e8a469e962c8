// Package pageindex maps resident page numbers to the frame slot holding them.
package pageindex

import (
	"errors"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/tuannm99/novapool/internal/storage"
)

// DefaultCapacity is the bucket hint used by the buffer pool.
const DefaultCapacity = 256

var ErrNotInitialized = errors.New("pageindex: not initialized")

// Index is the associative lookup the buffer pool keeps in sync with its frame table.
type Index interface {
	Insert(pageNum storage.PageNumber, slot int) error
	Lookup(pageNum storage.PageNumber) (slot int, ok bool)
	Remove(pageNum storage.PageNumber) error
	Len() int
	Destroy()
}

var _ Index = (*MapIndex)(nil)

// MapIndex is an Index backed by xsync.MapOf.
type MapIndex struct {
	capacity int
	m        *xsync.MapOf[storage.PageNumber, int]
}

// New returns an initialized index. A non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *MapIndex {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MapIndex{
		capacity: capacity,
		m:        xsync.NewMapOfPresized[storage.PageNumber, int](capacity),
	}
}

func (ix *MapIndex) Capacity() int { return ix.capacity }

// Insert sets (or overwrites) the slot for pageNum.
func (ix *MapIndex) Insert(pageNum storage.PageNumber, slot int) error {
	if ix.m == nil {
		return ErrNotInitialized
	}
	ix.m.Store(pageNum, slot)
	return nil
}

func (ix *MapIndex) Lookup(pageNum storage.PageNumber) (int, bool) {
	if ix.m == nil {
		return 0, false
	}
	return ix.m.Load(pageNum)
}

// Remove deletes pageNum. Removing an absent key is not an error.
func (ix *MapIndex) Remove(pageNum storage.PageNumber) error {
	if ix.m == nil {
		return ErrNotInitialized
	}
	ix.m.Delete(pageNum)
	return nil
}

func (ix *MapIndex) Len() int {
	if ix.m == nil {
		return 0
	}
	return ix.m.Size()
}

// Destroy drops every mapping and releases the table.
func (ix *MapIndex) Destroy() {
	if ix.m == nil {
		return
	}
	ix.m.Clear()
	ix.m = nil
}
