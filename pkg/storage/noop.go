package storage

import (
	"context"
	"fmt"
	"time"

	ie "github.com/voidshard/platen/pkg/errors"
)

// Noop is used when no bucket is configured; uploads are skipped.
type Noop struct{}

func (n *Noop) Configured() bool {
	return false
}

func (n *Noop) Upload(ctx context.Context, localPath, key string) bool {
	return false
}

func (n *Noop) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "", fmt.Errorf("%w object storage is not configured", ie.ErrStorage)
}
