// Package source abstracts where bamsift reads its inputs from and writes
// its outputs to. Implementations exist for the local file system
// (LocalStore) and for object storage (source/s3, source/minio).
package source

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a named source does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for sequential access to named data streams.
type Store interface {
	// Open opens the named stream for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Create creates the named stream for writing, truncating any
	// previous content. The returned writer must be closed to make the
	// stream durable; Close reports the final result.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}
