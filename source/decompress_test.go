package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

func TestOpenText(t *testing.T) {
	const content = "read1\nread2\nread3\n"

	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	// Plain passthrough.
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "plain.txt"), []byte(content), 0o600))

	// Gzip.
	f, err := os.Create(filepath.Join(tmpDir, "list.txt.gz"))
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	// Zstd.
	f, err = os.Create(filepath.Join(tmpDir, "list.txt.zst"))
	require.NoError(t, err)
	zw, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	// LZ4.
	f, err = os.Create(filepath.Join(tmpDir, "list.txt.lz4"))
	require.NoError(t, err)
	lw := lz4.NewWriter(f)
	_, err = lw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, lw.Close())
	require.NoError(t, f.Close())

	for _, name := range []string{"plain.txt", "list.txt.gz", "list.txt.zst", "list.txt.lz4"} {
		t.Run(name, func(t *testing.T) {
			r, err := OpenText(ctx, store, name)
			require.NoError(t, err)

			data, err := io.ReadAll(r)
			require.NoError(t, err)
			require.Equal(t, content, string(data))
			require.NoError(t, r.Close())
		})
	}
}

func TestOpenText_CorruptGzip(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "bad.gz"), []byte("not gzip"), 0o600))

	_, err := OpenText(context.Background(), store, "bad.gz")
	require.Error(t, err)
}
