// Package caserepo provides data transfer objects and mapping functions for
// case persistence. This package implements the repository pattern for the
// case aggregate, handling the conversion between domain entities and
// database representations.
package caserepo

import (
	"time"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/core/domain/model/rescase"

	"github.com/google/uuid"
)

// CaseDTO represents the database structure for persisting case aggregates.
// The parcel_id index backs both the open-case lookup on creation and the
// per-parcel history listing.
type CaseDTO struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ParcelID                uuid.UUID  `gorm:"type:uuid;index"`
	State                   int        `gorm:"index"`
	Reason                  string     `gorm:"type:text"`
	Comment                 string     `gorm:"type:text"`
	RequestedAt             time.Time  `gorm:"not null"`
	DecisionAt              *time.Time
	ClosedAt                *time.Time
	ReverseTrackNumber      *string `gorm:"type:varchar(64)"`
	ReceiptConfirmed        bool
	ReceiptConfirmedAt      *time.Time
	ExchangeParcelID        *uuid.UUID `gorm:"type:uuid"`
	ExchangeParcelNumber    *string    `gorm:"type:varchar(64)"`
	CancelUnavailableReason string     `gorm:"type:text"`
	Version                 int64      `gorm:"not null"`
}

// TableName specifies the database table name for case entities.
func (CaseDTO) TableName() string {
	return "cases"
}

// fromDomain converts a case domain aggregate to its database representation.
func fromDomain(aggregate *rescase.Case) CaseDTO {
	dto := CaseDTO{
		ID:                      aggregate.ID().Bytes(),
		ParcelID:                aggregate.ParcelID().Bytes(),
		State:                   int(aggregate.State()),
		Reason:                  aggregate.Reason(),
		Comment:                 aggregate.Comment(),
		RequestedAt:             aggregate.RequestedAt(),
		DecisionAt:              aggregate.DecisionAt(),
		ClosedAt:                aggregate.ClosedAt(),
		ReceiptConfirmed:        aggregate.ReceiptConfirmed(),
		ReceiptConfirmedAt:      aggregate.ReceiptConfirmedAt(),
		CancelUnavailableReason: aggregate.CancelUnavailableReason(),
		Version:                 aggregate.Version(),
	}

	if track := aggregate.ReverseTrack(); track != nil {
		value := track.String()
		dto.ReverseTrackNumber = &value
	}

	if id := aggregate.ExchangeParcelID(); id != nil {
		raw := id.Bytes()
		dto.ExchangeParcelID = &raw
	}

	if number := aggregate.ExchangeParcelNumber(); number != nil {
		value := number.String()
		dto.ExchangeParcelNumber = &value
	}

	return dto
}

// toDomain converts a database DTO to a case domain aggregate.
// Reconstructs the complete aggregate using RestoreCase, which re-checks the
// structural invariants of the persisted row.
func toDomain(dto CaseDTO) (*rescase.Case, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	params := rescase.RestoreCaseParams{
		ID:                      id,
		ParcelID:                parcelID,
		State:                   rescase.State(dto.State),
		Reason:                  dto.Reason,
		Comment:                 dto.Comment,
		RequestedAt:             dto.RequestedAt,
		DecisionAt:              dto.DecisionAt,
		ClosedAt:                dto.ClosedAt,
		ReceiptConfirmed:        dto.ReceiptConfirmed,
		ReceiptConfirmedAt:      dto.ReceiptConfirmedAt,
		CancelUnavailableReason: dto.CancelUnavailableReason,
		Version:                 dto.Version,
	}

	if dto.ReverseTrackNumber != nil {
		track, trackErr := kernel.NewTrackNumber(*dto.ReverseTrackNumber)
		if trackErr != nil {
			return nil, trackErr
		}
		params.ReverseTrack = &track
	}

	if dto.ExchangeParcelID != nil {
		exchangeID, idErr := kernel.UUIDFromBytes((*dto.ExchangeParcelID)[:])
		if idErr != nil {
			return nil, idErr
		}
		params.ExchangeParcelID = &exchangeID
	}

	if dto.ExchangeParcelNumber != nil {
		number, numberErr := kernel.NewTrackNumber(*dto.ExchangeParcelNumber)
		if numberErr != nil {
			return nil, numberErr
		}
		params.ExchangeParcelNumber = &number
	}

	return rescase.RestoreCase(params)
}
