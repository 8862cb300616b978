package ratelimit

import (
	"context"
	"log"
	"sync"
	"time"
)

var timeNow = time.Now

type window struct {
	count int
	start time.Time
}

// FixedWindow is an in memory, per identifier, fixed window counter.
//
// Bursts across a window boundary can reach nearly twice the limit, and state is
// process local: a restart (or a second instance) starts counting afresh.
type FixedWindow struct {
	opts *Options

	lock    sync.Mutex
	windows map[string]*window
}

func NewFixedWindow(opts *Options) *FixedWindow {
	if opts == nil {
		opts = &Options{}
	}
	opts.SetDefaults()
	return &FixedWindow{opts: opts, windows: map[string]*window{}}
}

// Allow records a request from id, returning false if id is over the limit.
func (f *FixedWindow) Allow(ctx context.Context, id string) (bool, error) {
	return f.allow(id, timeNow()), nil
}

func (f *FixedWindow) allow(id string, now time.Time) bool {
	f.lock.Lock()
	defer f.lock.Unlock()

	w, ok := f.windows[id]
	if !ok {
		w = &window{start: now}
		f.windows[id] = w
	}

	if now.Sub(w.start) > f.opts.Window {
		w.count = 1
		w.start = now
		return true
	}
	if w.count >= f.opts.Limit {
		return false
	}
	w.count++
	return true
}

// Sweep drops entries whose window ended more than Retention ago, returning how
// many were removed.
func (f *FixedWindow) Sweep() int {
	now := timeNow()
	f.lock.Lock()
	defer f.lock.Unlock()

	removed := 0
	for id, w := range f.windows {
		if now.Sub(w.start) > f.opts.Window+f.opts.Retention {
			delete(f.windows, id)
			removed++
		}
	}
	return removed
}

// Len is the number of identifiers currently tracked.
func (f *FixedWindow) Len() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.windows)
}

// Run sweeps every SweepInterval until the context is done.
func (f *FixedWindow) Run(ctx context.Context) {
	tick := time.NewTicker(f.opts.SweepInterval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if n := f.Sweep(); n > 0 {
				log.Println("[RateLimit] swept", n, "idle windows,", f.Len(), "still tracked")
			}
		}
	}
}
