package commands

import (
	"context"

	"returns/internal/core/application/projection"
	"returns/internal/core/domain/model/rescase"
	"returns/internal/core/ports"
	"returns/internal/pkg/errs"
)

// CreateExchangeParcelCommandHandler creates the outgoing exchange parcel in
// the parcel-tracking service and links it to the case, moving the case into
// exchange fulfillment.
//
// The permission guard runs before the parcel-tracking call so a forbidden
// command never creates a parcel. Re-issuing the command on a case that
// already has an exchange parcel is a no-op success; no second parcel is
// created.
type CreateExchangeParcelCommandHandler struct {
	uowFactory    CaseUoWFactory
	parcelFactory ports.ExchangeParcelFactory
}

// NewCreateExchangeParcelCommandHandler creates a handler for exchange parcel
// creation. Requires the parcel-tracking factory collaborator.
func NewCreateExchangeParcelCommandHandler(
	uowFactory CaseUoWFactory,
	parcelFactory ports.ExchangeParcelFactory,
) CreateExchangeParcelCommandHandler {
	return CreateExchangeParcelCommandHandler{
		uowFactory:    uowFactory,
		parcelFactory: parcelFactory,
	}
}

// Handle processes the command and returns the snapshot of the case after
// the parcel is linked.
func (h CreateExchangeParcelCommandHandler) Handle(
	ctx context.Context,
	cmd CreateExchangeParcelCommand,
) (projection.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return projection.Snapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return projection.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	caseRepo := uow.CaseRepository()

	aggregate, err := caseRepo.Get(ctx, cmd.ParcelID(), cmd.CaseID())
	if err != nil {
		return projection.Snapshot{}, err
	}

	// A closed case keeps its exchange-parcel linkage for audit, so the
	// terminal check must run before the already-linked short circuit.
	if aggregate.State().IsTerminal() {
		return projection.Snapshot{}, errs.NewCaseClosedError(cmd.CaseID().String())
	}

	if aggregate.ExchangeParcelID() != nil {
		return projection.FromCase(aggregate), nil
	}

	if !aggregate.Permissions().AllowCreateExchangeParcel {
		return projection.Snapshot{}, errs.NewTransitionNotAllowedError(
			rescase.PermissionCreateExchangeParcel)
	}

	summary, err := h.parcelFactory.Create(ctx, cmd.ParcelID())
	if err != nil {
		return projection.Snapshot{}, err
	}

	if err = aggregate.AttachExchangeParcel(summary.ID, summary.Number); err != nil {
		return projection.Snapshot{}, err
	}

	if err = caseRepo.Update(ctx, aggregate); err != nil {
		return projection.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return projection.Snapshot{}, err
	}

	return projection.FromCase(aggregate), nil
}
