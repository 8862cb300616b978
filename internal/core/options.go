package core

import (
	"time"
)

const (
	defOutputRoot    = "output"
	defUploadRoot    = "uploads"
	defPresignExpiry = time.Hour
)

// Options for the Manager
type Options struct {
	// OutputRoot is where job output dirs are made unless the config sets run_output_dir.
	OutputRoot string

	// UploadRoot is where uploaded PDFs are kept.
	UploadRoot string

	// PresignExpiry is how long download links are valid for.
	PresignExpiry time.Duration
}

func (o *Options) SetDefaults() {
	if o.OutputRoot == "" {
		o.OutputRoot = defOutputRoot
	}
	if o.UploadRoot == "" {
		o.UploadRoot = defUploadRoot
	}
	if o.PresignExpiry <= 0 {
		o.PresignExpiry = defPresignExpiry
	}
}
