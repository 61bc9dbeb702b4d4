// Package queries contains the read-side operations of the case resolution
// engine. Query handlers read the database directly and project rows into
// response shapes; they never mutate state.
package queries

import (
	"errors"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/pkg/guard"
)

var ErrGetCaseQueryIsNotConstructed = errors.New(
	"GetCaseQuery must be created via NewGetCaseQuery constructor",
)

// GetCaseQuery retrieves the full snapshot of a single case.
//
// Example:
//
//	query, err := NewGetCaseQuery(parcelID, caseID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetCaseQueryHandler(db)
//	snapshot, err := handler.Handle(ctx, query)
type GetCaseQuery struct {
	parcelID kernel.UUID
	caseID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCaseQuery creates a query for the case identified by
// (parcelID, caseID).
func NewGetCaseQuery(parcelID, caseID kernel.UUID) (GetCaseQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetCaseQuery{}, err
	}
	if err := caseID.Validate(); err != nil {
		return GetCaseQuery{}, err
	}

	return GetCaseQuery{
		parcelID: parcelID,
		caseID:   caseID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCaseQuery) Validate() error {
	return q.guard.Validate(ErrGetCaseQueryIsNotConstructed)
}

// ParcelID returns the identifier of the parcel the case belongs to.
func (q GetCaseQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// CaseID returns the identifier of the case to fetch.
func (q GetCaseQuery) CaseID() kernel.UUID {
	return q.caseID
}
