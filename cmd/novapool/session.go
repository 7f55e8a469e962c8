package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tuannm99/novapool/internal/bufferpool"
	"github.com/tuannm99/novapool/internal/storage"
)

var errUsage = errors.New("usage")

// session runs REPL commands against one pool.
type session struct {
	pool *bufferpool.Pool
	out  io.Writer

	// defaults for a bare "init"
	pageFile string
	frames   int
	strategy bufferpool.Strategy
}

const helpText = `commands:
  create <file>                     create a page file holding one empty page
  destroy <file>                    delete a page file
  init [file] [frames] [strategy]   open the pool (fifo|lru|clock|lfu|lru_k)
  pin <page> | unpin <page>         pin or release a page
  dirty <page> | force <page>       mark dirty or write back an unpinned page
  write <page> <text>               pin, overwrite with text, mark dirty, unpin
  read <page>                       pin, print the page text, unpin
  flush                             write back every dirty unpinned page
  stats                             print frame contents and I/O counters
  shutdown                          flush and close the pool

meta commands:
  \q | quit | exit                  quit
  \history                          print history
  \help                             show help`

func (s *session) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "create":
		if len(args) != 1 {
			return fmt.Errorf("%w: create <file>", errUsage)
		}
		if err := storage.CreatePageFile(args[0]); err != nil {
			return err
		}
		s.printf("created %s\n", args[0])

	case "destroy":
		if len(args) != 1 {
			return fmt.Errorf("%w: destroy <file>", errUsage)
		}
		if err := storage.DestroyPageFile(args[0]); err != nil {
			return err
		}
		s.printf("destroyed %s\n", args[0])

	case "init":
		return s.init(args)

	case "pin":
		n, err := pageArg(cmd, args)
		if err != nil {
			return err
		}
		if _, err := s.pool.Pin(n); err != nil {
			return err
		}
		s.printf("pinned page %d\n", n)

	case "unpin":
		return s.pageOp(cmd, args, s.pool.Unpin)

	case "dirty":
		return s.pageOp(cmd, args, s.pool.MarkDirty)

	case "force":
		return s.pageOp(cmd, args, s.pool.ForcePage)

	case "write":
		return s.write(line, args)

	case "read":
		return s.read(args)

	case "flush":
		if err := s.pool.FlushAll(); err != nil {
			return err
		}
		s.printf("OK\n")

	case "stats":
		snap, err := s.pool.Stats()
		if err != nil {
			return err
		}
		s.printf("%s %s\nreads=%d writes=%d\n", snap.Strategy, snap, snap.NumReadIO, snap.NumWriteIO)

	case "shutdown":
		if err := s.pool.Shutdown(); err != nil {
			return err
		}
		s.printf("OK\n")

	default:
		return fmt.Errorf("unknown command: %s (type \\help)", cmd)
	}
	return nil
}

func (s *session) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *session) init(args []string) error {
	pageFile, frames, strategy := s.pageFile, s.frames, s.strategy

	if len(args) > 3 {
		return fmt.Errorf("%w: init [file] [frames] [strategy]", errUsage)
	}
	if len(args) > 0 {
		pageFile = args[0]
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: frames must be a number: %q", errUsage, args[1])
		}
		frames = n
	}
	if len(args) > 2 {
		st, err := bufferpool.ParseStrategy(args[2])
		if err != nil {
			return err
		}
		strategy = st
	}

	if err := s.pool.Init(pageFile, frames, strategy); err != nil {
		return err
	}
	s.printf("initialized %s with %d frames (%s)\n", pageFile, frames, strategy)
	return nil
}

func (s *session) pageOp(cmd string, args []string, op func(storage.PageNumber) error) error {
	n, err := pageArg(cmd, args)
	if err != nil {
		return err
	}
	if err := op(n); err != nil {
		return err
	}
	s.printf("OK\n")
	return nil
}

func (s *session) write(line string, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: write <page> <text>", errUsage)
	}
	n, err := pageArg("write", args[:1])
	if err != nil {
		return err
	}

	// Keep the text's inner spacing.
	text := strings.TrimSpace(line)
	text = strings.TrimSpace(text[len(strings.Fields(text)[0]):])
	text = strings.TrimSpace(text[len(args[0]):])

	h, err := s.pool.Pin(n)
	if err != nil {
		return err
	}
	clear(h.Data)
	copy(h.Data, text)

	if err := s.pool.MarkDirty(n); err != nil {
		_ = s.pool.Unpin(n)
		return err
	}
	if err := s.pool.Unpin(n); err != nil {
		return err
	}
	s.printf("wrote %d bytes to page %d\n", min(len(text), storage.PageSize), n)
	return nil
}

func (s *session) read(args []string) error {
	n, err := pageArg("read", args)
	if err != nil {
		return err
	}

	h, err := s.pool.Pin(n)
	if err != nil {
		return err
	}
	data := h.Data
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	s.printf("%q\n", data)
	return s.pool.Unpin(n)
}

func pageArg(cmd string, args []string) (storage.PageNumber, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s <page>", errUsage, cmd)
	}
	n, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: page must be a number: %q", errUsage, args[0])
	}
	return storage.PageNumber(n), nil
}
