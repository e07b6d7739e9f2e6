package service

import (
	"errors"
	"fmt"
)

// ErrNotFound marks an unresolvable identity. Handlers map it to 404.
var ErrNotFound = errors.New("not found")

// ValidationError reports input the caller must correct; never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func newValidationError(msg string) error { return &ValidationError{Msg: msg} }

// StorageError wraps a backend failure. The handler surfaces a generic
// message and attaches the wrapped detail for diagnostics only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
