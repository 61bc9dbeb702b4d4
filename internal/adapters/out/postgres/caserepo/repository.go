package caserepo

import (
	"context"
	"errors"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/core/domain/model/rescase"
	"returns/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCaseRepository implements CaseRepository using GORM.
type GormCaseRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCaseRepository creates a new GORM case repository.
func NewGormCaseRepository(db *gorm.DB, tracker aggregateTracker) *GormCaseRepository {
	return &GormCaseRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new case to the database.
func (r *GormCaseRepository) Add(ctx context.Context, aggregate *rescase.Case) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing case to the database. The write is guarded by the
// aggregate version: the row is updated only if it still holds the version
// the aggregate was loaded with. Zero affected rows means another command
// won the race, surfaced as errs.ErrVersionIsInvalid so the caller can retry
// against fresh state.
func (r *GormCaseRepository) Update(ctx context.Context, aggregate *rescase.Case) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CaseDTO{}).
		Where("id = ? AND version < ?", dto.ID, dto.Version).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("case " + aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves the case identified by (parcelID, caseID).
func (r *GormCaseRepository) Get(ctx context.Context, parcelID, caseID kernel.UUID) (*rescase.Case, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}
	if err := caseID.Validate(); err != nil {
		return nil, err
	}

	var dto CaseDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND parcel_id = ?", caseID.Bytes(), parcelID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("case", caseID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOpenByParcel retrieves the parcel's case in a non-terminal state, if any.
func (r *GormCaseRepository) GetOpenByParcel(ctx context.Context, parcelID kernel.UUID) (*rescase.Case, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dto CaseDTO
	err := r.db.WithContext(ctx).
		First(&dto, "parcel_id = ? AND state != ?", parcelID.Bytes(), int(rescase.Closed)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("open case for parcel", parcelID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByParcel retrieves the parcel's full case history, newest first.
func (r *GormCaseRepository) GetAllByParcel(ctx context.Context, parcelID kernel.UUID) ([]*rescase.Case, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CaseDTO
	err := r.db.WithContext(ctx).
		Order("requested_at DESC").
		Find(&dtos, "parcel_id = ?", parcelID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	cases := make([]*rescase.Case, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		cases = append(cases, aggregate)
	}

	return cases, nil
}
