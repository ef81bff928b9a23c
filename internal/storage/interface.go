package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound   = errors.New("file not found")
	ErrInvalidKey = errors.New("invalid storage key")
)

// DocumentStorage stores uploaded KYC documents under opaque keys.
// The local implementation backs development, a bucket based one can
// replace it without touching callers.
type DocumentStorage interface {
	// Save writes the reader to key and returns the number of bytes stored.
	Save(ctx context.Context, key string, r io.Reader) (int64, error)

	// Open returns a reader for key, ErrNotFound when it does not exist.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether key exists and its size.
	Exists(ctx context.Context, key string) (bool, int64, error)

	Delete(ctx context.Context, key string) error
}
