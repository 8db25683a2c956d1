package ports

import (
	"context"
	"io"
)

// ObjectStore wraps the blob store's resumable upload, delete and locate
// primitives. Implementations keep no state beyond an in-flight transfer.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string, progress func(float64)) (string, error)
	DownloadURL(key string) (string, error)
	PublicURL(key string) string
	Delete(ctx context.Context, key string) error
	Bucket() string
}
