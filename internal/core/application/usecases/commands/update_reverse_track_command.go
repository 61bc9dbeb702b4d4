package commands

import (
	"errors"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/pkg/guard"
)

var (
	ErrUpdateReverseTrackCommandIsNotConstructed = errors.New(
		"UpdateReverseTrackCommand must be created via NewUpdateReverseTrackCommand constructor",
	)
	ErrNothingToUpdate = errors.New("either reverse track or comment must be provided")
)

// UpdateReverseTrackCommand represents the customer supplying or correcting
// the reverse shipment track number and/or the case comment. Fields left nil
// are kept unchanged.
type UpdateReverseTrackCommand struct { //nolint:recvcheck //using for validation
	parcelID     kernel.UUID
	caseID       kernel.UUID
	reverseTrack *kernel.TrackNumber
	comment      *string

	guard guard.ConstructorGuard
}

// NewUpdateReverseTrackCommand creates a command to update the reverse track
// number and/or comment of the case identified by (parcelID, caseID). At
// least one of the two fields must be supplied.
func NewUpdateReverseTrackCommand(
	parcelID kernel.UUID,
	caseID kernel.UUID,
	reverseTrack *kernel.TrackNumber,
	comment *string,
) (UpdateReverseTrackCommand, error) {
	trackCommand := UpdateReverseTrackCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		trackCommand.setParcelID(parcelID),
		trackCommand.setCaseID(caseID),
		trackCommand.setReverseTrack(reverseTrack),
	); err != nil {
		return UpdateReverseTrackCommand{}, err
	}

	if trackCommand.reverseTrack == nil && trackCommand.comment == nil {
		return UpdateReverseTrackCommand{}, ErrNothingToUpdate
	}

	return trackCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateReverseTrackCommand) Validate() error {
	return c.guard.Validate(ErrUpdateReverseTrackCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel the case belongs to.
func (c UpdateReverseTrackCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// CaseID returns the identifier of the case to update.
func (c UpdateReverseTrackCommand) CaseID() kernel.UUID {
	return c.caseID
}

// ReverseTrack returns the new reverse track number, or nil to keep the
// current one.
func (c UpdateReverseTrackCommand) ReverseTrack() *kernel.TrackNumber {
	return c.reverseTrack
}

// Comment returns the new comment, or nil to keep the current one.
func (c UpdateReverseTrackCommand) Comment() *string {
	return c.comment
}

func (c *UpdateReverseTrackCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *UpdateReverseTrackCommand) setCaseID(caseID kernel.UUID) error {
	if err := caseID.Validate(); err != nil {
		return err
	}

	c.caseID = caseID
	return nil
}

func (c *UpdateReverseTrackCommand) setReverseTrack(track *kernel.TrackNumber) error {
	if track == nil {
		return nil
	}
	if err := track.Validate(); err != nil {
		return err
	}

	c.reverseTrack = track
	return nil
}
