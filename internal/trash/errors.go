package trash

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTrashDir is returned when the engine is built without a trash root
	ErrNoTrashDir = errors.New("trash directory is not configured")

	// ErrTrashDirNotAbs is returned when the trash root is a relative path
	ErrTrashDirNotAbs = errors.New("trash directory must be an absolute path")
)

// TransferError wraps an error with the step of the transfer that failed
type TransferError struct {
	Op   string // "copy", "remove" or "rollback"
	Path string // path the step operated on
	Err  error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

func newTransferError(op, path string, err error) error {
	return &TransferError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
