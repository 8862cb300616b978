package pipeline

import (
	"context"
)

// Executor runs the document pipeline for one resolved configuration.
//
// Run blocks until the pipeline is done; it writes its artifacts under the
// config's run_output_dir. A returned error fails the job with err.Error().
type Executor interface {
	Run(ctx context.Context, cfg map[string]interface{}) error
}

// Func adapts a function into an Executor.
type Func func(ctx context.Context, cfg map[string]interface{}) error

func (f Func) Run(ctx context.Context, cfg map[string]interface{}) error {
	return f(ctx, cfg)
}
