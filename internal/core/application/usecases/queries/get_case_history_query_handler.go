package queries

import (
	"context"
	"database/sql"

	"returns/internal/core/application/projection"
	"returns/internal/core/domain/model/kernel"
	"returns/internal/core/domain/model/rescase"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCaseHistoryQueryHandler retrieves the per-parcel case list from the
// database. A parcel with no cases yields an empty list, not an error.
type GetCaseHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetCaseHistoryQueryHandler creates a handler for case history queries.
func NewGetCaseHistoryQueryHandler(db *gorm.DB) GetCaseHistoryQueryHandler {
	return GetCaseHistoryQueryHandler{db: db}
}

// Handle executes the query and returns the parcel's cases, newest first.
func (h GetCaseHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetCaseHistoryQuery,
) ([]GetCaseHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetCaseHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			state,
			reason,
			requested_at,
			closed_at,
			version
		FROM cases
		WHERE parcel_id = ?
		ORDER BY requested_at DESC
	`, query.ParcelID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			state       int
			entry       GetCaseHistoryQueryResponse
			requestedAt sql.NullTime
			closedAt    sql.NullTime
		)

		err = rows.Scan(
			&id,
			&state,
			&entry.Reason,
			&requestedAt,
			&closedAt,
			&entry.Version,
		)
		if err != nil {
			return nil, err
		}

		caseID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		entry.CaseID = caseID.String()
		entry.State = projection.StateWireName(rescase.State(state))
		entry.StateLabel = projection.StateLabel(rescase.State(state))
		entry.ReasonLabel = projection.ReasonLabel(entry.Reason)
		entry.RequestedAt = requestedAt.Time
		if closedAt.Valid {
			entry.ClosedAt = &closedAt.Time
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
