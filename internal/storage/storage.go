package storage

import (
	"context"
	"io"
)

// Storage persists uploaded audio blobs. Save returns the full path the
// blob was written to; that path is what gets recorded on the video row.
type Storage interface {
	Save(ctx context.Context, name string, data io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Remove(ctx context.Context, path string) error
}
