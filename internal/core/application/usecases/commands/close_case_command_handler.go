package commands

import (
	"context"
	"time"

	"returns/internal/core/application/projection"
)

// CloseCaseCommandHandler moves a case into the terminal state. Closing an
// already closed case is an error, not a no-op, so a stale client learns the
// case is gone.
type CloseCaseCommandHandler struct {
	uowFactory CaseUoWFactory
}

// NewCloseCaseCommandHandler creates a handler for closing cases.
func NewCloseCaseCommandHandler(uowFactory CaseUoWFactory) CloseCaseCommandHandler {
	return CloseCaseCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command and returns the snapshot of the closed case.
func (h CloseCaseCommandHandler) Handle(
	ctx context.Context,
	cmd CloseCaseCommand,
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

	if err = aggregate.Close(time.Now().UTC()); err != nil {
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
