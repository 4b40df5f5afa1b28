package storage

import (
	"context"
	"io"
)

// ObjectStorage is the opaque key-to-bytes store holding photos (photos/),
// reference documents (pdfs/), and voice notes (audio/).
type ObjectStorage interface {
	// EnsureBucket creates the bucket if it does not already exist.
	EnsureBucket(ctx context.Context) error

	// ListByPrefix returns the keys of every object under the given prefix,
	// following pagination to exhaustion.
	ListByPrefix(ctx context.Context, prefix string) ([]string, error)

	// Upload uploads an object to storage.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download downloads an object from storage.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete deletes an object from storage.
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists.
	Exists(ctx context.Context, key string) (bool, error)
}

// IsNotFound reports whether err denotes a missing object rather than a
// transport failure.
func IsNotFound(err error) bool {
	return isNotFoundErr(err)
}
