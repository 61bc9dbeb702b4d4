package queries

import (
	"context"
	"database/sql"

	"returns/internal/core/application/projection"
	"returns/internal/core/domain/model/kernel"
	"returns/internal/core/domain/model/rescase"
	"returns/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCaseQueryHandler retrieves a case row and projects it into the full
// snapshot: state, labels, derived permissions, hint and warnings. The
// snapshot is rebuilt through the domain aggregate so the permissions a
// reader sees are derived by exactly the code the command side enforces.
type GetCaseQueryHandler struct {
	db *gorm.DB
}

// NewGetCaseQueryHandler creates a handler for single-case snapshot queries.
func NewGetCaseQueryHandler(db *gorm.DB) GetCaseQueryHandler {
	return GetCaseQueryHandler{db: db}
}

// Handle executes the query and returns the case snapshot.
func (h GetCaseQueryHandler) Handle(
	ctx context.Context,
	query GetCaseQuery,
) (projection.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return projection.Snapshot{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			parcel_id,
			state,
			reason,
			comment,
			requested_at,
			decision_at,
			closed_at,
			reverse_track_number,
			receipt_confirmed,
			receipt_confirmed_at,
			exchange_parcel_id,
			exchange_parcel_number,
			cancel_unavailable_reason,
			version
		FROM cases
		WHERE id = ? AND parcel_id = ?
	`, query.CaseID().Bytes(), query.ParcelID().Bytes()).Rows()
	if err != nil {
		return projection.Snapshot{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return projection.Snapshot{}, err
		}
		return projection.Snapshot{}, errs.NewObjectNotFoundError("case", query.CaseID().String())
	}

	aggregate, err := scanCase(rows)
	if err != nil {
		return projection.Snapshot{}, err
	}

	return projection.FromCase(aggregate), nil
}

// scanCase rehydrates a case aggregate from a cases-table row.
func scanCase(rows *sql.Rows) (*rescase.Case, error) {
	var (
		id                      uuid.UUID
		parcelID                uuid.UUID
		state                   int
		reason                  string
		comment                 string
		requestedAt             sql.NullTime
		decisionAt              sql.NullTime
		closedAt                sql.NullTime
		reverseTrackNumber      sql.NullString
		receiptConfirmed        bool
		receiptConfirmedAt      sql.NullTime
		exchangeParcelID        uuid.NullUUID
		exchangeParcelNumber    sql.NullString
		cancelUnavailableReason string
		version                 int64
	)

	err := rows.Scan(
		&id,
		&parcelID,
		&state,
		&reason,
		&comment,
		&requestedAt,
		&decisionAt,
		&closedAt,
		&reverseTrackNumber,
		&receiptConfirmed,
		&receiptConfirmedAt,
		&exchangeParcelID,
		&exchangeParcelNumber,
		&cancelUnavailableReason,
		&version,
	)
	if err != nil {
		return nil, err
	}

	caseID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	caseParcelID, err := kernel.UUIDFromBytes(parcelID[:])
	if err != nil {
		return nil, err
	}

	params := rescase.RestoreCaseParams{
		ID:                      caseID,
		ParcelID:                caseParcelID,
		State:                   rescase.State(state),
		Reason:                  reason,
		Comment:                 comment,
		RequestedAt:             requestedAt.Time,
		ReceiptConfirmed:        receiptConfirmed,
		CancelUnavailableReason: cancelUnavailableReason,
		Version:                 version,
	}

	if decisionAt.Valid {
		params.DecisionAt = &decisionAt.Time
	}
	if closedAt.Valid {
		params.ClosedAt = &closedAt.Time
	}
	if receiptConfirmedAt.Valid {
		params.ReceiptConfirmedAt = &receiptConfirmedAt.Time
	}

	if reverseTrackNumber.Valid {
		track, trackErr := kernel.NewTrackNumber(reverseTrackNumber.String)
		if trackErr != nil {
			return nil, trackErr
		}
		params.ReverseTrack = &track
	}

	if exchangeParcelID.Valid {
		exchangeID, idErr := kernel.UUIDFromBytes(exchangeParcelID.UUID[:])
		if idErr != nil {
			return nil, idErr
		}
		params.ExchangeParcelID = &exchangeID
	}

	if exchangeParcelNumber.Valid {
		number, numberErr := kernel.NewTrackNumber(exchangeParcelNumber.String)
		if numberErr != nil {
			return nil, numberErr
		}
		params.ExchangeParcelNumber = &number
	}

	return rescase.RestoreCase(params)
}
