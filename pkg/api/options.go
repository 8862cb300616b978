package api

import (
	"github.com/voidshard/platen/internal/core"
	"github.com/voidshard/platen/pkg/config"
	"github.com/voidshard/platen/pkg/database"
	"github.com/voidshard/platen/pkg/queue"
	"github.com/voidshard/platen/pkg/storage"
)

const (
	defPipelineCommand = "platen-pipeline"
)

// Options passed to the Platen API on creation
type Options struct {
	Database *database.Options
	Queue    *queue.Options
	Storage  *storage.Options
	Config   *config.Options
	Manager  *core.Options

	// PipelineCommand is the command line run for each job, it is handed
	// "--config <run_output_dir>/config.yaml".
	PipelineCommand string
}

func (o *Options) SetDefaults() {
	if o.Database == nil {
		o.Database = &database.Options{}
	}
	if o.Queue == nil {
		o.Queue = &queue.Options{}
	}
	if o.Storage == nil {
		o.Storage = &storage.Options{}
	}
	if o.Config == nil {
		o.Config = &config.Options{}
	}
	if o.Manager == nil {
		o.Manager = &core.Options{}
	}
	if o.PipelineCommand == "" {
		o.PipelineCommand = defPipelineCommand
	}
}

// OptionsDefault runs Platen against a local sqlite file with an in process
// worker pool & no object storage.
func OptionsDefault() *Options {
	o := &Options{}
	o.SetDefaults()
	return o
}
