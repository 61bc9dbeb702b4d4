package idemrepo

import (
	"context"
	"errors"
	"time"

	"returns/internal/core/ports"
	"returns/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormIdempotencyRepository implements IdempotencyRepository using GORM.
// Requires the connection to be opened with TranslateError so a duplicate
// key insert surfaces as gorm.ErrDuplicatedKey.
type GormIdempotencyRepository struct {
	db *gorm.DB
}

// NewGormIdempotencyRepository creates a new GORM idempotency repository.
func NewGormIdempotencyRepository(db *gorm.DB) *GormIdempotencyRepository {
	return &GormIdempotencyRepository{db: db}
}

// Get retrieves the ledger record for a key. Expired records are treated as
// absent so a key becomes reusable once its retention window passes.
func (r *GormIdempotencyRepository) Get(ctx context.Context, key string) (ports.IdempotencyRecord, error) {
	var dto IdempotencyRecordDTO
	err := r.db.WithContext(ctx).
		First(&dto, "key = ? AND expires_at > ?", key, time.Now().UTC()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, errs.NewObjectNotFoundError("idempotency record", key)
		}
		return ports.IdempotencyRecord{}, err
	}

	return toRecord(dto)
}

// Add inserts a new ledger record. A concurrent insert of the same key is
// surfaced as errs.ErrIdempotencyConflict so the caller can replay the
// winner's result.
func (r *GormIdempotencyRepository) Add(ctx context.Context, record ports.IdempotencyRecord) error {
	// An expired row still occupies the key until the purge job runs; clear
	// it first so the key is reusable as soon as its window passes.
	err := r.db.WithContext(ctx).
		Where("key = ? AND expires_at <= ?", record.Key, time.Now().UTC()).
		Delete(&IdempotencyRecordDTO{}).Error
	if err != nil {
		return err
	}

	dto := fromRecord(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewIdempotencyConflictError(record.Key)
		}
		return err
	}

	return nil
}

// DeleteExpired removes ledger records whose retention window passed before
// now. Returns the number of deleted records.
func (r *GormIdempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&IdempotencyRecordDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
