package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore implements Store using the local file system.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
// An empty root resolves names as ordinary paths, which is what the CLI
// wants: names are exactly the paths the user supplied.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) path(name string) string {
	if s.root == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.root, name)
}

// Open opens the named file for reading.
func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(s.path(name))
}

// Create creates the named file, truncating it if it already exists.
func (s *LocalStore) Create(_ context.Context, name string) (io.WriteCloser, error) {
	return os.Create(s.path(name))
}
