package ports

import (
	"context"
	"time"

	"returns/internal/core/domain/model/kernel"
)

// IdempotencyRecord maps a client-supplied idempotency key to the case its
// creation request produced. The fingerprint is a hash of the request
// payload, used to detect the same key being reused with different content.
type IdempotencyRecord struct {
	Key         string
	Fingerprint string
	CaseID      kernel.UUID
	ExpiresAt   time.Time
}

// IdempotencyRepository defines the persistence contract for the idempotency
// ledger. Get and Add run inside the same transaction that inserts the case,
// so two racing retries of an identical creation request produce exactly one
// case.
type IdempotencyRepository interface {
	// Get retrieves the record for a key. Returns errs.ErrObjectNotFound
	// when the key has not been used.
	Get(ctx context.Context, key string) (IdempotencyRecord, error)

	// Add persists a new record. The key is unique; inserting a duplicate
	// fails at the storage level, which the creation flow treats as losing
	// the race and replays the winner's case.
	Add(ctx context.Context, record IdempotencyRecord) error

	// DeleteExpired removes records whose retention window has passed.
	// Returns the number of removed records.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
