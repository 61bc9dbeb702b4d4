// Package idemrepo persists the idempotency ledger: the mapping from
// client-supplied idempotency keys to the cases their creation requests
// produced.
package idemrepo

import (
	"time"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/core/ports"

	"github.com/google/uuid"
)

// IdempotencyRecordDTO represents the database structure for ledger entries.
// The key is the primary key, so a racing duplicate insert fails with a
// unique violation instead of producing a second case. The expires_at index
// backs the retention purge.
type IdempotencyRecordDTO struct {
	Key         string    `gorm:"type:varchar(255);primaryKey"`
	Fingerprint string    `gorm:"type:varchar(64);not null"`
	CaseID      uuid.UUID `gorm:"type:uuid;not null"`
	ExpiresAt   time.Time `gorm:"index;not null"`
}

// TableName specifies the database table name for ledger entries.
func (IdempotencyRecordDTO) TableName() string {
	return "idempotency_records"
}

func fromRecord(record ports.IdempotencyRecord) IdempotencyRecordDTO {
	return IdempotencyRecordDTO{
		Key:         record.Key,
		Fingerprint: record.Fingerprint,
		CaseID:      record.CaseID.Bytes(),
		ExpiresAt:   record.ExpiresAt,
	}
}

func toRecord(dto IdempotencyRecordDTO) (ports.IdempotencyRecord, error) {
	caseID, err := kernel.UUIDFromBytes(dto.CaseID[:])
	if err != nil {
		return ports.IdempotencyRecord{}, err
	}

	return ports.IdempotencyRecord{
		Key:         dto.Key,
		Fingerprint: dto.Fingerprint,
		CaseID:      caseID,
		ExpiresAt:   dto.ExpiresAt,
	}, nil
}
