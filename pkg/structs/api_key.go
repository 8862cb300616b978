package structs

import (
	"time"
)

// APIKey is a credential record in the quota ledger.
//
// The raw key is never stored, only its sha256 hash.
type APIKey struct {
	ID                 string    `json:"id"`
	KeyHash            string    `json:"-"`
	Prefix             string    `json:"prefix"`
	Owner              string    `json:"owner"`
	MaxGenerations     int64     `json:"max_generations"`
	CurrentGenerations int64     `json:"current_generations"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
}

// HasQuota is true if the key is active and under its ceiling.
func (k *APIKey) HasQuota() bool {
	return k.IsActive && k.CurrentGenerations < k.MaxGenerations
}

// CreateKeyRequest asks the ledger to issue a new key.
type CreateKeyRequest struct {
	Owner          string `json:"owner"`
	MaxGenerations int64  `json:"max_generations,omitempty"`
}

// CreateKeyResponse carries the raw key; this is the only time it's visible.
type CreateKeyResponse struct {
	Key    string  `json:"key"`
	Record *APIKey `json:"record"`
}
