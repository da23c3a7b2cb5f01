package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned download URLs.
const DefaultDownloadURLExpiry = 7 * 24 * time.Hour

// FileStorage defines the interface for object storage operations.
// Profile photos are the only object class; keys are derived from the
// owning user's id.
type FileStorage interface {
	// Upload stores binary content under the given key.
	Upload(ctx context.Context, objectKey string, contentType string, data []byte) error

	// DownloadURL creates a temporary URL that allows GET requests for
	// the object directly from the storage provider.
	DownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
