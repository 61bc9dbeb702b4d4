// Package commands contains the state-changing operations of the case
// resolution engine. Implements the Command pattern: every transition is a
// Command object validated at construction plus a Handler that runs the
// read-guard-apply-persist sequence inside a single transaction and returns
// the full authoritative snapshot.
package commands

import (
	"context"

	"returns/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Handlers declare the narrowest composition they need.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CaseRepoFactory provides access to the case repository within a transaction.
	CaseRepoFactory interface {
		CaseRepository() ports.CaseRepository
	}

	// IdempotencyRepoFactory provides access to the idempotency ledger within
	// a transaction.
	IdempotencyRepoFactory interface {
		IdempotencyRepository() ports.IdempotencyRepository
	}

	// CaseUoW manages transactions for commands that only touch the case row.
	CaseUoW interface {
		TxManager
		CaseRepoFactory
	}

	// CaseUoWFactory creates new case unit of work instances.
	CaseUoWFactory interface {
		Create() CaseUoW
	}

	// UoW manages transactions spanning the case row and the idempotency
	// ledger. Creation inserts both atomically.
	UoW interface {
		TxManager
		CaseRepoFactory
		IdempotencyRepoFactory
	}

	// UoWFactory creates new unit of work instances for creation.
	UoWFactory interface {
		Create() UoW
	}
)
