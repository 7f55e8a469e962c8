package storage

import "errors"

// permanentError stops retry early; the wrapped error is returned as is.
type permanentError struct{ err error }

func (p permanentError) Error() string { return p.err.Error() }
func (p permanentError) Unwrap() error { return p.err }

func permanent(err error) error { return permanentError{err: err} }

// retry runs op up to MaxAttempts times and returns the last error.
func retry(op func() error) error {
	var err error
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		var p permanentError
		if errors.As(err, &p) {
			return p.err
		}
	}
	return err
}
