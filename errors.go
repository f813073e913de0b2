package bamsift

import (
	"errors"
	"fmt"

	"github.com/hupe1980/bamsift/readset"
)

// ErrDriverUsed is returned when a Driver is run more than once.
// A used driver, successful or failed, cannot be reused.
var ErrDriverUsed = errors.New("driver already used")

// SourceError indicates that an input source (a read list or the BAM
// container itself) could not be opened or read. It is raised before any
// record of that source is consumed.
//
// The original underlying error can be accessed via errors.Unwrap.
type SourceError struct {
	Name  string
	cause error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("unreadable source %s: %v", e.Name, e.cause)
}

func (e *SourceError) Unwrap() error { return e.cause }

// DecodeError indicates that a record could not be decoded from the input
// container. Any outputs written before the failure are not authoritative.
//
// The original underlying error can be accessed via errors.Unwrap.
type DecodeError struct {
	Record int64 // zero-based index of the failing record
	cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode record %d: %v", e.Record, e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }

// WriteError indicates that an output could not be created, written or
// flushed. Any outputs written before the failure are not authoritative.
//
// The original underlying error can be accessed via errors.Unwrap.
type WriteError struct {
	Name  string
	cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Name, e.cause)
}

func (e *WriteError) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var le *readset.LoadError
	if errors.As(err, &le) {
		return &SourceError{Name: le.Name, cause: err}
	}

	return err
}
