package api

import (
	"context"
	"encoding/json"
	"io"

	"github.com/voidshard/platen/pkg/structs"
)

// API represents the functions Platen servers should expose.
type API interface {
	// Jobs; implemented in platen/internal/core.Manager

	StoreUpload(filename string, r io.Reader) (string, error)
	CreateJob(req *structs.CreateJobRequest) (*structs.JobSummary, error)
	RegenerateJob(id string, req *structs.RegenerateRequest) (*structs.JobSummary, error)
	DeleteJob(id string) (bool, error)

	Job(id string) (*structs.JobDetail, error)
	JobStatus(id string) (*structs.JobStatusView, error)
	Jobs(q *structs.Query) ([]*structs.JobSummary, error)

	SavePlate(id string, plate json.RawMessage) error
	LoadPlate(id string) (json.RawMessage, error)
	OutputFile(id, rel string) (string, error)
	DownloadURL(ctx context.Context, id string) (*structs.DownloadResponse, error)

	ConfigMetadata() *structs.ConfigMetadata

	// Keys & quota; implemented in platen/pkg/quota.Ledger

	CreateKey(req *structs.CreateKeyRequest) (*structs.CreateKeyResponse, error)
	ValidateKey(raw string) (*structs.APIKey, error)
	Keys() ([]*structs.APIKey, error)
	RevokeKey(id string) (bool, error)

	// ReserveQuota takes one generation from the key, erroring with
	// ErrQuotaExceeded if there is none left.
	ReserveQuota(keyID string) error

	// RefundQuota hands back a generation taken by ReserveQuota.
	RefundQuota(keyID string) error

	Close() error
}

type Server interface {
	ServeForever(api API) error
	Close() error
}
