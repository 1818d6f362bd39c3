package storage

import (
	"context"
	"io"
)

// Store abstracts where uploaded room photos live. The only implementation
// today is the local disk, but handlers depend on this interface so an
// object-store backend can be swapped in without touching them.
type Store interface {
	Save(ctx context.Context, path string, content io.Reader) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}
