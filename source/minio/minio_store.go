// Package minio provides a MinIO implementation of the source.Store
// interface for S3-compatible object storage.
package minio

import (
	"context"
	"errors"
	"io"
	"path"
	"sync/atomic"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/bamsift/source"
)

// Store implements source.Store for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a new MinIO source store.
// rootPrefix is prepended to all names (e.g. "runs/2024/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens an object for sequential reading.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	// GetObject is lazy; surface missing objects on open, not first read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil, source.ErrNotFound
		}
		return nil, err
	}
	return obj, nil
}

// Create starts a streaming upload to the named object. The returned
// writer must be closed to complete the upload; Close reports the final
// upload result.
func (s *Store) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	pr, pw := io.Pipe()

	w := &uploadWriter{
		pw:   pw,
		done: make(chan error, 1),
	}

	// Upload in the background; the pipe backpressures the writer.
	go func() {
		_, err := s.client.PutObject(ctx, s.bucket, s.key(name), pr, -1, minio.PutObjectOptions{})
		_ = pr.CloseWithError(err)
		w.done <- err
	}()

	return w, nil
}

// uploadWriter implements io.WriteCloser over a background MinIO upload.
type uploadWriter struct {
	pw       *io.PipeWriter
	done     chan error
	finished atomic.Bool
}

func (w *uploadWriter) Write(p []byte) (int, error) {
	return w.pw.Write(p)
}

func (w *uploadWriter) Close() error {
	if !w.finished.CompareAndSwap(false, true) {
		return errors.New("already closed")
	}
	if err := w.pw.Close(); err != nil {
		return err
	}
	return <-w.done
}
