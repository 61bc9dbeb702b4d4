package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command, ensuring proper
// isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Every command
// executes its read-guard-apply-persist sequence inside a single unit of
// work so no partial transition is ever observable.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	Rollback(ctx context.Context) error

	// CaseRepository returns a CaseRepository bound to the current transaction.
	CaseRepository() CaseRepository

	// IdempotencyRepository returns an IdempotencyRepository bound to the
	// current transaction.
	IdempotencyRepository() IdempotencyRepository
}
