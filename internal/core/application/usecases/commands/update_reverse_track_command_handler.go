package commands

import (
	"context"

	"returns/internal/core/application/projection"
	"returns/internal/core/domain/model/rescase"
	"returns/internal/core/ports"
)

// UpdateReverseTrackCommandHandler stores the reverse shipment track number
// and/or comment on an open case. After a successful commit the change is
// pushed to the progress-event publisher; publish failures never fail the
// command.
type UpdateReverseTrackCommandHandler struct {
	uowFactory CaseUoWFactory
	publisher  ports.CaseEventPublisher
}

// NewUpdateReverseTrackCommandHandler creates a handler for reverse track
// updates.
func NewUpdateReverseTrackCommandHandler(
	uowFactory CaseUoWFactory,
	publisher ports.CaseEventPublisher,
) UpdateReverseTrackCommandHandler {
	return UpdateReverseTrackCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the command and returns the snapshot of the updated case.
func (h UpdateReverseTrackCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateReverseTrackCommand,
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
	if err = aggregate.UpdateReverseTrack(cmd.ReverseTrack(), cmd.Comment()); err != nil {
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
		h.publish(ctx, aggregate, cmd)
	}

	return projection.FromCase(aggregate), nil
}

func (h UpdateReverseTrackCommandHandler) publish(
	ctx context.Context,
	aggregate *rescase.Case,
	cmd UpdateReverseTrackCommand,
) {
	event := ports.CaseChangedEvent{
		ParcelID: aggregate.ParcelID(),
		CaseID:   aggregate.ID(),
		State:    projection.StateWireName(aggregate.State()),
		Version:  aggregate.Version(),
		Comment:  cmd.Comment(),
	}
	if cmd.ReverseTrack() != nil {
		number := cmd.ReverseTrack().String()
		event.ReverseTrackNumber = &number
	}

	_ = h.publisher.PublishCaseChanged(ctx, event)
}
