package csvfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"catalog-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
)

// Blob reads and writes whole named files.
type Blob interface {
	// Read returns the file content, or nil when the file does not exist.
	Read(ctx context.Context, name string) ([]byte, error)
	// Write replaces the file content.
	Write(ctx context.Context, name string, data []byte) error
}

// FSBlob stores files in a directory of an afero file system.
type FSBlob struct {
	fs  afero.Fs
	dir string
}

// NewFSBlob creates a blob rooted at dir on fs.
func NewFSBlob(fs afero.Fs, dir string) *FSBlob {
	return &FSBlob{fs: fs, dir: dir}
}

func (b *FSBlob) Read(_ context.Context, name string) ([]byte, error) {
	data, err := afero.ReadFile(b.fs, filepath.Join(b.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (b *FSBlob) Write(_ context.Context, name string, data []byte) error {
	if err := b.fs.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", b.dir, err)
	}
	if err := afero.WriteFile(b.fs, filepath.Join(b.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// BucketBlob stores files as objects under a key prefix.
type BucketBlob struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucketBlob creates a blob in bucket, keying objects as prefix/name.
func NewBucketBlob(client storage.Client, bucket, prefix string) *BucketBlob {
	return &BucketBlob{client: client, bucket: bucket, prefix: prefix}
}

func (b *BucketBlob) key(name string) string {
	if b.prefix == "" {
		return name
	}
	return path.Join(b.prefix, name)
}

func (b *BucketBlob) Read(ctx context.Context, name string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.key(name), minio.GetObjectOptions{})
	if storage.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", b.key(name), err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if storage.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.key(name), err)
	}
	return data, nil
}

func (b *BucketBlob) Write(ctx context.Context, name string, data []byte) error {
	_, err := b.client.PutObject(ctx, b.bucket, b.key(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", b.key(name), err)
	}
	return nil
}
