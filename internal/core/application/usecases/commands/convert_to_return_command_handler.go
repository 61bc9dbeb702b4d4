package commands

import (
	"context"

	"returns/internal/core/application/projection"
	"returns/internal/core/domain/model/rescase"
	"returns/internal/core/ports"
	"returns/internal/pkg/errs"
)

// ConvertToReturnCommandHandler cancels the exchange flow of a case and
// reopens it as a plain return. When an exchange parcel exists the handler
// first asks parcel tracking whether it was already dispatched; a dispatched
// parcel blocks the reversal permanently. The learned blocking fact is
// persisted on the case so later attempts and snapshot readers see it
// without another tracking call.
type ConvertToReturnCommandHandler struct {
	uowFactory CaseUoWFactory
	tracker    ports.ExchangeParcelTracker
}

// NewConvertToReturnCommandHandler creates a handler for exchange reversal.
// Requires the parcel-tracking dispatch-status collaborator.
func NewConvertToReturnCommandHandler(
	uowFactory CaseUoWFactory,
	tracker ports.ExchangeParcelTracker,
) ConvertToReturnCommandHandler {
	return ConvertToReturnCommandHandler{
		uowFactory: uowFactory,
		tracker:    tracker,
	}
}

// Handle processes the command and returns the snapshot of the case as an
// open return.
func (h ConvertToReturnCommandHandler) Handle(
	ctx context.Context,
	cmd ConvertToReturnCommand,
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

	if err = h.checkDispatch(ctx, caseRepo, uow, aggregate); err != nil {
		return projection.Snapshot{}, err
	}

	loadedVersion := aggregate.Version()
	if err = aggregate.ConvertToReturn(); err != nil {
		return projection.Snapshot{}, err
	}

	if aggregate.Version() != loadedVersion {
		if err = caseRepo.Update(ctx, aggregate); err != nil {
			return projection.Snapshot{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return projection.Snapshot{}, err
	}

	return projection.FromCase(aggregate), nil
}

// checkDispatch consults parcel tracking when the case still holds an
// exchange parcel and no blocking fact is known yet. A dispatched parcel is
// recorded on the case and committed before the refusal is returned, so the
// error survives the transaction rollback of the aborted conversion.
func (h ConvertToReturnCommandHandler) checkDispatch(
	ctx context.Context,
	caseRepo ports.CaseRepository,
	uow CaseUoW,
	aggregate *rescase.Case,
) error {
	if aggregate.State() == rescase.OpenReturn || aggregate.State() == rescase.Closed {
		return nil
	}
	if aggregate.ExchangeParcelID() == nil || aggregate.CancelUnavailableReason() != "" {
		return nil
	}

	dispatched, err := h.tracker.IsDispatched(ctx, *aggregate.ExchangeParcelID())
	if err != nil {
		return err
	}
	if !dispatched {
		return nil
	}

	aggregate.BlockCancel(rescase.ReasonCancelBlockedByDispatch)
	if err = caseRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return errs.NewTransitionNotAllowedErrorWithReason(
		rescase.PermissionConvertToReturn, rescase.ReasonCancelBlockedByDispatch)
}
