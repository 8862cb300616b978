package quota

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voidshard/platen/pkg/database"
	ie "github.com/voidshard/platen/pkg/errors"
	"github.com/voidshard/platen/pkg/structs"
)

const (
	// KeyPrefix marks raw keys as ours; handy for secret scanners.
	KeyPrefix = "plt_"

	DefaultMaxGenerations = 100

	keyBytes     = 32
	prefixLength = 8
	maxOwnerLen  = 200
)

var timeNow = func() time.Time {
	return time.Now().UTC()
}

// Ledger issues API keys & enforces the number of job creating operations each
// key may perform.
type Ledger struct {
	db database.KeyStore
}

func NewLedger(db database.KeyStore) *Ledger {
	return &Ledger{db: db}
}

// CreateKey issues a new key. The raw key is returned here and never again.
func (l *Ledger) CreateKey(owner string, maxGenerations int64) (string, *structs.APIKey, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" || len(owner) > maxOwnerLen {
		return "", nil, fmt.Errorf("%w owner must be 1-%d characters", ie.ErrValidation, maxOwnerLen)
	}
	if maxGenerations < 0 {
		return "", nil, fmt.Errorf("%w max generations must not be negative", ie.ErrValidation)
	}
	if maxGenerations == 0 {
		maxGenerations = DefaultMaxGenerations
	}

	raw, err := newRawKey()
	if err != nil {
		return "", nil, err
	}

	rec := &structs.APIKey{
		ID:             uuid.New().String(),
		KeyHash:        hashKey(raw),
		Prefix:         raw[:prefixLength],
		Owner:          owner,
		MaxGenerations: maxGenerations,
		IsActive:       true,
		CreatedAt:      timeNow(),
	}
	return raw, rec, l.db.InsertKey(rec)
}

// ValidateKey returns the active record matching the raw key, or ErrNotFound.
func (l *Ledger) ValidateKey(raw string) (*structs.APIKey, error) {
	if !strings.HasPrefix(raw, KeyPrefix) {
		return nil, fmt.Errorf("%w api key", ie.ErrNotFound)
	}
	hash := hashKey(raw)
	rec, err := l.db.KeyByHash(hash)
	if err != nil {
		return nil, err
	}
	// the lookup is an index probe; compare again in constant time
	if subtle.ConstantTimeCompare([]byte(hash), []byte(rec.KeyHash)) != 1 || !rec.IsActive {
		return nil, fmt.Errorf("%w api key", ie.ErrNotFound)
	}
	return rec, nil
}

// CheckQuota is an advisory look at whether a key has usage left.
// IncrementUsage is the only authority.
func (l *Ledger) CheckQuota(id string) (bool, error) {
	rec, err := l.db.Key(id)
	if errors.Is(err, ie.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return rec.HasQuota(), nil
}

// IncrementUsage atomically consumes one unit of quota, returning false (and
// changing nothing) if the key is at its ceiling or inactive.
func (l *Ledger) IncrementUsage(id string) (bool, error) {
	return l.db.IncrementKeyUsage(id)
}

// Reserve consumes one unit of quota ahead of creating a job. Callers that then
// fail to create the job must call Refund.
func (l *Ledger) Reserve(id string) error {
	ok, err := l.IncrementUsage(id)
	if err != nil {
		return fmt.Errorf("%w %v", ie.ErrPersistence, err)
	}
	if !ok {
		return fmt.Errorf("%w for key %s", ie.ErrQuotaExceeded, id)
	}
	return nil
}

// Refund hands back a unit consumed by Reserve.
func (l *Ledger) Refund(id string) error {
	_, err := l.db.DecrementKeyUsage(id)
	return err
}

// RevokeKey deactivates a key; its usage history is kept.
func (l *Ledger) RevokeKey(id string) (bool, error) {
	return l.db.RevokeKey(id)
}

// Keys lists every key, newest first.
func (l *Ledger) Keys() ([]*structs.APIKey, error) {
	return l.db.Keys()
}

func newRawKey() (string, error) {
	buf := make([]byte, keyBytes)
	_, err := rand.Read(buf)
	if err != nil {
		return "", err
	}
	return KeyPrefix + base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
