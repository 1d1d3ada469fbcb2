package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("stored object not found")

// Storage holds media blobs by key. Keys are forward-slash relative paths
// generated by the upload handler, never raw client input.
type Storage interface {
	Save(ctx context.Context, key string, contentType string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}
