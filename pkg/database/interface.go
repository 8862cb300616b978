package database

import (
	"github.com/voidshard/platen/pkg/structs"
)

// JobStore is the durable home of job records; the in memory registry is
// rebuilt from it on start up.
//
// Each call runs in its own transaction.
type JobStore interface {
	// SaveJob inserts or replaces the job with the same ID.
	SaveJob(j *structs.Job) error

	// Job returns the job with the given ID, or errors.ErrNotFound.
	Job(id string) (*structs.Job, error)

	// Jobs returns jobs matching the query, newest first.
	Jobs(q *structs.Query) ([]*structs.Job, error)

	// UpdateJob sets only the non-nil fields of the patch (plus updated_at).
	UpdateJob(id string, p *structs.JobPatch) error

	// AppendJobEvent adds an event to the end of the job's event list.
	AppendJobEvent(id string, e *structs.JobEvent) error

	// DeleteJob removes a job, returning if anything was deleted.
	DeleteJob(id string) (bool, error)
}

// KeyStore holds API key records & their usage counters.
type KeyStore interface {
	InsertKey(k *structs.APIKey) error

	// KeyByHash returns the active key with the given hash, or errors.ErrNotFound.
	KeyByHash(hash string) (*structs.APIKey, error)

	// Key returns a key by ID regardless of whether it's active.
	Key(id string) (*structs.APIKey, error)

	// Keys returns all keys, newest first.
	Keys() ([]*structs.APIKey, error)

	// IncrementKeyUsage adds one to the usage counter iff the key is active and
	// under its ceiling. The read & write happen under one exclusive transaction.
	IncrementKeyUsage(id string) (bool, error)

	// DecrementKeyUsage gives back one unit of usage, never dropping below zero.
	DecrementKeyUsage(id string) (bool, error)

	// RevokeKey marks a key inactive. Rows are never deleted.
	RevokeKey(id string) (bool, error)
}

type Database interface {
	JobStore
	KeyStore

	Close() error
}
