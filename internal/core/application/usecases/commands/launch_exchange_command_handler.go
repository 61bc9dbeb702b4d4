package commands

import (
	"context"
	"time"

	"returns/internal/core/application/projection"
)

// LaunchExchangeCommandHandler moves an open return into the exchange flow.
// Re-issuing the command on a case already in an exchange state is a no-op
// success returning the current snapshot.
type LaunchExchangeCommandHandler struct {
	uowFactory CaseUoWFactory
}

// NewLaunchExchangeCommandHandler creates a handler for launching exchanges.
func NewLaunchExchangeCommandHandler(uowFactory CaseUoWFactory) LaunchExchangeCommandHandler {
	return LaunchExchangeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command and returns the snapshot of the case after
// the transition.
func (h LaunchExchangeCommandHandler) Handle(
	ctx context.Context,
	cmd LaunchExchangeCommand,
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

	loadedVersion := aggregate.Version()
	if err = aggregate.LaunchExchange(time.Now().UTC()); err != nil {
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
