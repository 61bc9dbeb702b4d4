package commands

import (
	"context"
	"errors"
	"time"

	"returns/internal/core/application/projection"
	"returns/internal/core/domain/model/kernel"
	"returns/internal/core/domain/model/rescase"
	"returns/internal/core/ports"
	"returns/internal/pkg/errs"
)

// Retention window of idempotency records. Clients may retry a creation
// request for at least this long and still hit the ledger.
const idempotencyRetention = 24 * time.Hour

// CreateCaseCommandHandler opens a new return/exchange case for an eligible
// parcel. Creation is idempotent: the idempotency ledger is consulted and
// written inside the same transaction that inserts the case, so two racing
// retries of the identical request produce exactly one case.
//
// Errors callers branch on: errs.ErrNotEligible (parcel refused or an open
// case exists), errs.ErrIdempotencyConflict (key reused with a different
// payload).
type CreateCaseCommandHandler struct {
	uowFactory  UoWFactory
	eligibility ports.ParcelEligibility
}

// NewCreateCaseCommandHandler creates a handler for case creation.
// Requires a UoWFactory spanning the case store and the idempotency ledger,
// and the parcel-tracking eligibility collaborator.
func NewCreateCaseCommandHandler(
	uowFactory UoWFactory,
	eligibility ports.ParcelEligibility,
) CreateCaseCommandHandler {
	return CreateCaseCommandHandler{
		uowFactory:  uowFactory,
		eligibility: eligibility,
	}
}

// Handle processes the creation command and returns the snapshot of the
// created (or replayed) case.
func (h CreateCaseCommandHandler) Handle(
	ctx context.Context,
	cmd CreateCaseCommand,
) (projection.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return projection.Snapshot{}, err
	}

	snapshot, err := h.create(ctx, cmd)
	if errors.Is(err, errLostInsertRace) {
		// A concurrent retry of the same request claimed the key first;
		// the winner's case is in the ledger now.
		return h.replay(ctx, cmd)
	}
	return snapshot, err
}

// errLostInsertRace marks a creation attempt that lost the ledger insert to a
// concurrent request with the same idempotency key. Internal to the handler.
var errLostInsertRace = errors.New("idempotency key claimed concurrently")

func (h CreateCaseCommandHandler) create(
	ctx context.Context,
	cmd CreateCaseCommand,
) (projection.Snapshot, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return projection.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	caseRepo := uow.CaseRepository()
	idemRepo := uow.IdempotencyRepository()

	// The ledger is consulted before any eligibility gate: a retry of an
	// already-applied request must replay the stored case even though the
	// open case it created makes the parcel ineligible by now.
	record, err := idemRepo.Get(ctx, cmd.IdempotencyKey())
	switch {
	case err == nil:
		return h.replayRecord(ctx, caseRepo, cmd, record)
	case !errors.Is(err, errs.ErrObjectNotFound):
		return projection.Snapshot{}, err
	}

	eligible, err := h.eligibility.CanRegisterReturn(ctx, cmd.ParcelID())
	if err != nil {
		return projection.Snapshot{}, err
	}
	if !eligible {
		return projection.Snapshot{}, errs.NewNotEligibleError(
			cmd.ParcelID().String(), "parcel tracking refused return registration")
	}

	if err = h.ensureNoOpenCase(ctx, caseRepo, cmd.ParcelID()); err != nil {
		return projection.Snapshot{}, err
	}

	aggregate, err := rescase.NewCase(
		kernel.NewUUID(),
		cmd.ParcelID(),
		cmd.Reason(),
		cmd.Comment(),
		cmd.ReverseTrack(),
		cmd.IsExchange(),
		cmd.RequestedAt(),
	)
	if err != nil {
		return projection.Snapshot{}, err
	}

	if err = caseRepo.Add(ctx, aggregate); err != nil {
		return projection.Snapshot{}, err
	}

	if err = idemRepo.Add(ctx, ports.IdempotencyRecord{
		Key:         cmd.IdempotencyKey(),
		Fingerprint: cmd.Fingerprint(),
		CaseID:      aggregate.ID(),
		ExpiresAt:   cmd.RequestedAt().Add(idempotencyRetention),
	}); err != nil {
		if errors.Is(err, errs.ErrIdempotencyConflict) {
			return projection.Snapshot{}, errLostInsertRace
		}
		return projection.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return projection.Snapshot{}, err
	}

	return projection.FromCase(aggregate), nil
}

// replay serves a retried creation request from the ledger after losing the
// insert race: a fresh transaction reads the winner's record and case.
func (h CreateCaseCommandHandler) replay(
	ctx context.Context,
	cmd CreateCaseCommand,
) (projection.Snapshot, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return projection.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	record, err := uow.IdempotencyRepository().Get(ctx, cmd.IdempotencyKey())
	if err != nil {
		return projection.Snapshot{}, err
	}

	return h.replayRecord(ctx, uow.CaseRepository(), cmd, record)
}

func (h CreateCaseCommandHandler) replayRecord(
	ctx context.Context,
	caseRepo ports.CaseRepository,
	cmd CreateCaseCommand,
	record ports.IdempotencyRecord,
) (projection.Snapshot, error) {
	if record.Fingerprint != cmd.Fingerprint() {
		return projection.Snapshot{}, errs.NewIdempotencyConflictError(cmd.IdempotencyKey())
	}

	aggregate, err := caseRepo.Get(ctx, cmd.ParcelID(), record.CaseID)
	if err != nil {
		return projection.Snapshot{}, err
	}

	return projection.FromCase(aggregate), nil
}

func (h CreateCaseCommandHandler) ensureNoOpenCase(
	ctx context.Context,
	caseRepo ports.CaseRepository,
	parcelID kernel.UUID,
) error {
	_, err := caseRepo.GetOpenByParcel(ctx, parcelID)
	switch {
	case err == nil:
		return errs.NewNotEligibleError(parcelID.String(), "an open case already exists for the parcel")
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	default:
		return err
	}
}
