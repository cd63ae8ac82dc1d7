package storage

import (
	"context"
	"io"
)

// Storage is the port for the external media host. Room photos are written
// through it and referenced everywhere else as opaque URL strings.
type Storage interface {
	// Save stores content under the given relative path and returns the
	// public URL the stored object is reachable at.
	Save(ctx context.Context, path string, content io.Reader) (string, error)

	// Delete removes the object at the given relative path.
	Delete(ctx context.Context, path string) error
}
