package commands

import (
	"errors"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/pkg/guard"
)

var ErrCloseCaseCommandIsNotConstructed = errors.New(
	"CloseCaseCommand must be created via NewCloseCaseCommand constructor",
)

// CloseCaseCommand represents the request to finish a case and move it into
// the terminal state.
type CloseCaseCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	caseID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewCloseCaseCommand creates a command to close the case identified by
// (parcelID, caseID).
func NewCloseCaseCommand(parcelID, caseID kernel.UUID) (CloseCaseCommand, error) {
	closeCommand := CloseCaseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		closeCommand.setParcelID(parcelID),
		closeCommand.setCaseID(caseID),
	); err != nil {
		return CloseCaseCommand{}, err
	}

	return closeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseCaseCommand) Validate() error {
	return c.guard.Validate(ErrCloseCaseCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel the case belongs to.
func (c CloseCaseCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// CaseID returns the identifier of the case to close.
func (c CloseCaseCommand) CaseID() kernel.UUID {
	return c.caseID
}

func (c *CloseCaseCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CloseCaseCommand) setCaseID(caseID kernel.UUID) error {
	if err := caseID.Validate(); err != nil {
		return err
	}

	c.caseID = caseID
	return nil
}
