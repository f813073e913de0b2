package source

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// OpenText opens the named stream and transparently decompresses it based on
// its extension. Recognized extensions: .gz, .zst and .lz4; anything else is
// passed through unchanged.
func OpenText(ctx context.Context, store Store, name string) (io.ReadCloser, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	switch path.Ext(name) {
	case ".gz":
		zr, err := gzip.NewReader(rc)
		if err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", name, err)
		}
		return &decompressReader{Reader: zr, closers: []io.Closer{zr, rc}}, nil
	case ".zst":
		zr, err := zstd.NewReader(rc)
		if err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("failed to open zstd stream %s: %w", name, err)
		}
		drc := zr.IOReadCloser()
		return &decompressReader{Reader: drc, closers: []io.Closer{drc, rc}}, nil
	case ".lz4":
		return &decompressReader{Reader: lz4.NewReader(rc), closers: []io.Closer{rc}}, nil
	default:
		return rc, nil
	}
}

// decompressReader bundles a decompressing reader with everything that has
// to be closed underneath it, outermost first.
type decompressReader struct {
	io.Reader
	closers []io.Closer
}

func (r *decompressReader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
