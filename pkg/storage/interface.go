package storage

import (
	"context"
	"time"
)

// Store is where packaged job output is pushed for download.
type Store interface {
	// Upload pushes the file at localPath to key. Failures are logged & reported
	// as false; an upload is never fatal to a job.
	Upload(ctx context.Context, localPath, key string) bool

	// PresignedURL returns a time limited download link for key.
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Configured is false when there is nowhere to upload to.
	Configured() bool
}
