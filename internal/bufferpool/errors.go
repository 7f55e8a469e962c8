package bufferpool

import (
	"errors"
	"fmt"

	"github.com/tuannm99/novapool/internal/storage"
)

var (
	ErrNotInitialized     = errors.New("bufferpool: pool not initialized")
	ErrAlreadyInitialized = errors.New("bufferpool: pool already initialized")
	ErrPageNotResident    = errors.New("bufferpool: page not resident")
	ErrNoFreeFrame        = errors.New("bufferpool: no free frame available (all pinned)")
	ErrInvalidPageNumber  = errors.New("bufferpool: invalid page number")
	ErrPagePinned         = errors.New("bufferpool: page is pinned")
	ErrPoolBusy           = errors.New("bufferpool: pool has pinned pages")
	ErrInvalidFrameCount  = errors.New("bufferpool: frame count must be positive")
	ErrUnknownStrategy    = errors.New("bufferpool: unknown replacement strategy")
)

// PoolError records the operation and page that failed. Err is one of the
// sentinels above or an error from the block store.
type PoolError struct {
	Op      string
	PageNum storage.PageNumber
	Err     error
}

func (e *PoolError) Error() string {
	if e.PageNum == storage.NoPage {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s page %d: %v", e.Op, e.PageNum, e.Err)
}

func (e *PoolError) Unwrap() error { return e.Err }

func opError(op string, pageNum storage.PageNumber, err error) error {
	return &PoolError{Op: op, PageNum: pageNum, Err: err}
}
