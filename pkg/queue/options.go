package queue

import (
	"crypto/tls"
	"os"
	"time"

	"github.com/voidshard/platen/internal/utils"
)

const (
	defaultWorkers = 2
)

// Options are options for the queue.
type Options struct {
	// Workers is the max number of jobs executed at once.
	Workers int

	// ShutdownTimeout is how long Close waits before cancelling running work.
	// Zero waits forever.
	ShutdownTimeout time.Duration

	// URL encodes how we'll connect to the queue (asynq only).
	URL string

	// TLSConfig needed to connect to the queue (optional).
	TLSConfig *tls.Config

	// Instance names this process's queue (asynq only). Defaults to the hostname.
	Instance string
}

func (o *Options) SetDefaults() {
	if o.Workers < 1 {
		o.Workers = defaultWorkers
	}
	if o.ShutdownTimeout < 0 {
		o.ShutdownTimeout = 0
	}
	if o.Instance == "" {
		host, err := os.Hostname()
		if err != nil || host == "" {
			host = utils.NewRandomID()
		}
		o.Instance = host
	}
}

// New returns an asynq backed queue if a URL is given, otherwise an in process Pool.
func New(opts *Options) (Queue, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.URL != "" {
		return NewAsynqQueue(opts)
	}
	return NewPool(opts), nil
}
