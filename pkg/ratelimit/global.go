package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Global is a single token bucket shared by every caller; it caps the process as a
// whole regardless of how requests are spread over identifiers.
type Global struct {
	lim *rate.Limiter
}

// NewGlobal returns a limiter allowing rps requests per second with the given burst.
func NewGlobal(rps float64, burst int) *Global {
	if burst <= 0 {
		burst = 1
	}
	return &Global{lim: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (g *Global) Allow(ctx context.Context, id string) (bool, error) {
	return g.lim.Allow(), nil
}
