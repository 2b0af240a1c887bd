package executor

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrOutsideRoot is returned for paths that would resolve outside the output root
var ErrOutsideRoot = errors.New("path escapes output root")

// EntryError represents a failed attempt to materialize a single path.
// It carries the operation and the root-relative path; the underlying
// error is available through Unwrap.
type EntryError struct {
	Op   string // "mkdir" or "touch"
	Path string // Path relative to the output root
	Err  error  // Underlying error
}

// NewEntryError creates an EntryError
func NewEntryError(op, path string, err error) *EntryError {
	return &EntryError{Op: op, Path: path, Err: err}
}

// Error implements the error interface for EntryError.
// The OS error is reported without repeating its absolute path.
func (e *EntryError) Error() string {
	cause := e.Err
	var pathErr *fs.PathError
	if errors.As(cause, &pathErr) {
		cause = pathErr.Err
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, cause)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *EntryError) Unwrap() error {
	return e.Err
}

// IsEntryError checks if an error is an EntryError.
func IsEntryError(err error) bool {
	var entryErr *EntryError
	return errors.As(err, &entryErr)
}
