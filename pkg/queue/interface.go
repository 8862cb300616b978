package queue

import (
	"context"
)

// Handler runs one job. It is called at most once per enqueued job id &
// must not panic out (panics are recovered & logged, but the job is lost).
// An error means the id could not be run at all; job failures are not errors.
type Handler func(ctx context.Context, jobID string) error

type Queue interface {
	// Register the handler that work is dispatched to. Queued work is held
	// until a handler is registered. Only one handler may be registered.
	Register(handler Handler) error

	// Enqueue a job id for execution. Returns as soon as the id is accepted.
	Enqueue(jobID string) error

	// Close stops intake, waits for queued & running work & releases resources.
	//
	// If the shutdown timeout passes first the context given to running
	// handlers is cancelled.
	Close() error
}
