package commands

import (
	"context"
	"time"

	"returns/internal/core/application/projection"
	"returns/internal/core/ports"
)

// ConfirmReceiptCommandHandler records that the returned goods arrived at
// the warehouse. Confirmation is monotonic: repeating it on a case that is
// already confirmed is a no-op success. After a successful commit the fact
// is pushed to the progress-event publisher.
type ConfirmReceiptCommandHandler struct {
	uowFactory CaseUoWFactory
	publisher  ports.CaseEventPublisher
}

// NewConfirmReceiptCommandHandler creates a handler for receipt confirmation.
func NewConfirmReceiptCommandHandler(
	uowFactory CaseUoWFactory,
	publisher ports.CaseEventPublisher,
) ConfirmReceiptCommandHandler {
	return ConfirmReceiptCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the command and returns the snapshot of the case after
// confirmation.
func (h ConfirmReceiptCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmReceiptCommand,
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
	if err = aggregate.ConfirmReceipt(time.Now().UTC()); err != nil {
		return projection.Snapshot{}, err
	}

	changed := aggregate.Version() != loadedVersion
	if changed {
		if err = caseRepo.Update(ctx, aggregate); err != nil {
			return projection.Snapshot{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return projection.Snapshot{}, err
	}

	if changed {
		confirmed := true
		_ = h.publisher.PublishCaseChanged(ctx, ports.CaseChangedEvent{
			ParcelID:         aggregate.ParcelID(),
			CaseID:           aggregate.ID(),
			State:            projection.StateWireName(aggregate.State()),
			Version:          aggregate.Version(),
			ReceiptConfirmed: &confirmed,
		})
	}

	return projection.FromCase(aggregate), nil
}
