package queries

import (
	"errors"
	"time"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/pkg/guard"
)

var ErrGetCaseHistoryQueryIsNotConstructed = errors.New(
	"GetCaseHistoryQuery must be created via NewGetCaseHistoryQuery constructor",
)

// GetCaseHistoryQuery retrieves the case history of a parcel: every case
// ever opened against it, open and closed, newest first.
type GetCaseHistoryQuery struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCaseHistoryQuery creates a history query for the given parcel.
func NewGetCaseHistoryQuery(parcelID kernel.UUID) (GetCaseHistoryQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetCaseHistoryQuery{}, err
	}

	return GetCaseHistoryQuery{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCaseHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetCaseHistoryQueryIsNotConstructed)
}

// ParcelID returns the identifier of the parcel whose history is requested.
func (q GetCaseHistoryQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// GetCaseHistoryQueryResponse is one history entry. It carries enough for a
// list view; the full snapshot of a single case comes from GetCaseQuery.
type GetCaseHistoryQueryResponse struct {
	CaseID      string     `json:"caseId"`
	State       string     `json:"state"`
	StateLabel  string     `json:"stateLabel"`
	Reason      string     `json:"reason"`
	ReasonLabel string     `json:"reasonLabel"`
	RequestedAt time.Time  `json:"requestedAt"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`
	Version     int64      `json:"version"`
}
