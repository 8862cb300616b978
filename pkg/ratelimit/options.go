package ratelimit

import (
	"time"
)

const (
	defLimit         = 60
	defWindow        = 60 * time.Second
	defSweepInterval = 5 * time.Minute
	defRedisPrefix   = "platen:rate"
)

// Options for fixed window limiters.
type Options struct {
	// Limit is the number of requests permitted per identifier per window.
	// Defaults to 60.
	Limit int

	// Window is the length of a window.
	// Defaults to 60s.
	Window time.Duration

	// Retention is how long past the end of its window an idle entry is kept
	// before a sweep removes it (in memory only).
	Retention time.Duration

	// SweepInterval is how often Run sweeps (in memory only).
	// Defaults to 5 minutes.
	SweepInterval time.Duration

	// Prefix for redis keys (redis only).
	// Defaults to "platen:rate".
	Prefix string
}

func (o *Options) SetDefaults() {
	if o.Limit <= 0 {
		o.Limit = defLimit
	}
	if o.Window <= 0 {
		o.Window = defWindow
	}
	if o.SweepInterval <= 0 {
		o.SweepInterval = defSweepInterval
	}
	if o.Retention < 0 {
		o.Retention = 0
	}
	if o.Prefix == "" {
		o.Prefix = defRedisPrefix
	}
}
