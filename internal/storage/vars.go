package storage

import (
	"errors"
)

const (
	OneB  = 1 << 0  // 1
	OneKB = 1 << 10 // 1,024

	PageSize = 1 << 12 // 4,096 (4 KiB)

	// MaxAttempts bounds the retries of every file primitive before an error is surfaced.
	MaxAttempts = 5
)

const (
	FileMode0644 = 0o644
	FileMode0664 = 0o664
	FileMode0755 = 0o755
)

// PageNumber addresses a block inside a page file. Valid numbers start at 0.
type PageNumber int32

// NoPage marks a frame that holds no page. It is never a valid block address.
const NoPage PageNumber = -1

var (
	ErrFileNotFound      = errors.New("storage: page file not found")
	ErrFileHandleNotInit = errors.New("storage: page file handle not initialized")
	ErrNonExistingPage   = errors.New("storage: read or write of non-existing page")
	ErrWriteFailed       = errors.New("storage: write failed")
	ErrInvalidBuffer     = errors.New("storage: buffer size != PageSize")
)
