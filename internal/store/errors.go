package store

import (
	"errors"
	"fmt"
)

// ErrUnavailable means the backend could not be read or written. A scan that
// hits it stops without filling anything and is not retried.
var ErrUnavailable = errors.New("storage unavailable")

// CorruptError means the stored blob is not valid state JSON.
type CorruptError struct {
	Cause error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("stored state is corrupt: %v", e.Cause)
}

func (e *CorruptError) Unwrap() error {
	return e.Cause
}

// UnknownBackendError is returned by Open for an unsupported backend kind.
type UnknownBackendError struct {
	Kind string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown store backend %q (want memory, file, sqlite or postgres)", e.Kind)
}
