package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// PageFile is a file made of PageSize blocks addressed by PageNumber.
// The block count is cached at open time and advanced only by appends.
type PageFile struct {
	fileName   string
	totalPages int32
	file       *os.File
}

// CreatePageFile creates (or truncates) path so it holds exactly one zero-filled page.
func CreatePageFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, FileMode0644)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, err)
	}
	defer closeQuietly(f)

	empty := make([]byte, PageSize)
	if err := retry(func() error { return writeFull(f, empty, 0) }); err != nil {
		return fmt.Errorf("%w: init %s: %v", ErrWriteFailed, path, err)
	}
	return nil
}

// DestroyPageFile removes path from disk.
func DestroyPageFile(path string) error {
	if err := retry(func() error { return os.Remove(path) }); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, err)
	}
	return nil
}

// OpenPageFile opens an existing page file for reading and writing.
// It never creates the file; a missing file yields ErrFileNotFound.
func OpenPageFile(path string) (*PageFile, error) {
	var f *os.File
	err := retry(func() error {
		var openErr error
		f, openErr = os.OpenFile(path, os.O_RDWR, 0)
		return openErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, err)
	}

	info, err := f.Stat()
	if err != nil {
		closeQuietly(f)
		return nil, fmt.Errorf("%w: stat %s: %v", ErrFileNotFound, path, err)
	}

	return &PageFile{
		fileName:   path,
		totalPages: int32(info.Size() / PageSize),
		file:       f,
	}, nil
}

func (pf *PageFile) FileName() string { return pf.fileName }

// TotalPages reports how many whole blocks the file holds.
func (pf *PageFile) TotalPages() int32 { return pf.totalPages }

// Close releases the underlying file. Closing twice returns ErrFileHandleNotInit.
func (pf *PageFile) Close() error {
	if pf == nil || pf.file == nil {
		return ErrFileHandleNotInit
	}
	if err := retry(pf.file.Close); err != nil {
		return fmt.Errorf("close %s: %w", pf.fileName, err)
	}
	pf.file = nil
	return nil
}

// ReadBlock reads exactly one page into dst. The page must be in [0, TotalPages).
func (pf *PageFile) ReadBlock(pageNum PageNumber, dst []byte) error {
	if err := pf.check(pageNum, dst); err != nil {
		return err
	}

	off := int64(pageNum) * PageSize
	return retry(func() error {
		n, err := pf.file.ReadAt(dst, off)
		if n == PageSize {
			return nil
		}
		if err == nil || errors.Is(err, io.EOF) {
			return permanent(fmt.Errorf("%w: short read of page %d (%d bytes)", ErrNonExistingPage, pageNum, n))
		}
		return err
	})
}

// WriteBlock writes exactly one page from src. The page must be in [0, TotalPages).
func (pf *PageFile) WriteBlock(pageNum PageNumber, src []byte) error {
	if err := pf.check(pageNum, src); err != nil {
		return err
	}

	off := int64(pageNum) * PageSize
	if err := retry(func() error { return writeFull(pf.file, src, off) }); err != nil {
		return fmt.Errorf("%w: page %d: %v", ErrWriteFailed, pageNum, err)
	}
	return nil
}

// AppendEmptyBlock grows the file by one zero-filled page.
func (pf *PageFile) AppendEmptyBlock() error {
	if pf == nil || pf.file == nil {
		return ErrFileHandleNotInit
	}

	empty := make([]byte, PageSize)
	off := int64(pf.totalPages) * PageSize
	if err := retry(func() error { return writeFull(pf.file, empty, off) }); err != nil {
		return fmt.Errorf("%w: append page %d: %v", ErrWriteFailed, pf.totalPages, err)
	}
	pf.totalPages++
	return nil
}

// EnsureCapacity appends empty pages until the file holds at least numPages pages.
func (pf *PageFile) EnsureCapacity(numPages int32) error {
	if pf == nil || pf.file == nil {
		return ErrFileHandleNotInit
	}
	for pf.totalPages < numPages {
		if err := pf.AppendEmptyBlock(); err != nil {
			return err
		}
	}
	return nil
}

func (pf *PageFile) check(pageNum PageNumber, buf []byte) error {
	if pf == nil || pf.file == nil {
		return ErrFileHandleNotInit
	}
	if len(buf) != PageSize {
		return ErrInvalidBuffer
	}
	if pageNum < 0 || int32(pageNum) >= pf.totalPages {
		return fmt.Errorf("%w: page %d of %d", ErrNonExistingPage, pageNum, pf.totalPages)
	}
	return nil
}

func writeFull(f *os.File, src []byte, off int64) error {
	n, err := f.WriteAt(src, off)
	if err != nil {
		return err
	}
	if n != len(src) {
		return io.ErrShortWrite
	}
	return nil
}

func closeQuietly(f *os.File) {
	_ = f.Close()
}
