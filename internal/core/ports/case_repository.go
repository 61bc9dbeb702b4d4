// Package ports defines the contracts between the case resolution core and
// its infrastructure: persistence, the parcel-tracking collaborator, and the
// outward progress-event channel.
package ports

import (
	"context"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/core/domain/model/rescase"
)

// CaseRepository defines the persistence contract for case aggregates.
type CaseRepository interface {
	// Add persists a new case aggregate.
	Add(ctx context.Context, aggregate *rescase.Case) error

	// Update persists changes to an existing case. Implementations guard the
	// write with the aggregate version so concurrent commands for the same
	// case cannot lose updates; a stale version surfaces as
	// errs.ErrVersionIsInvalid.
	Update(ctx context.Context, aggregate *rescase.Case) error

	// Get retrieves the case identified by (parcelID, caseID).
	Get(ctx context.Context, parcelID, caseID kernel.UUID) (*rescase.Case, error)

	// GetOpenByParcel retrieves the parcel's case in a non-terminal state,
	// if any. A parcel has at most one such case at a time.
	GetOpenByParcel(ctx context.Context, parcelID kernel.UUID) (*rescase.Case, error)

	// GetAllByParcel retrieves the parcel's full case history, open and
	// closed, newest first.
	GetAllByParcel(ctx context.Context, parcelID kernel.UUID) ([]*rescase.Case, error)
}
