package ratelimit

import (
	"context"
)

// Limiter decides whether a caller (identified by key id or network address)
// may make another request right now.
type Limiter interface {
	Allow(ctx context.Context, id string) (bool, error)
}
