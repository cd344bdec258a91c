package storage

import (
	"context"
	"io"
)

// Storage abstracts the blob store used for profile images. Paths are
// relative, forward-slash separated keys.
type Storage interface {
	// Save writes content under path, replacing any existing file.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at path. The caller closes the returned reader.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at path.
	Delete(ctx context.Context, path string) error
}
