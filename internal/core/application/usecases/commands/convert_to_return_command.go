package commands

import (
	"errors"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/pkg/guard"
)

var ErrConvertToReturnCommandIsNotConstructed = errors.New(
	"ConvertToReturnCommand must be created via NewConvertToReturnCommand constructor",
)

// ConvertToReturnCommand represents the request to cancel an exchange flow
// and reopen the case as a plain return.
type ConvertToReturnCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	caseID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewConvertToReturnCommand creates a command to convert the case identified
// by (parcelID, caseID) back to a plain return.
func NewConvertToReturnCommand(parcelID, caseID kernel.UUID) (ConvertToReturnCommand, error) {
	convertCommand := ConvertToReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		convertCommand.setParcelID(parcelID),
		convertCommand.setCaseID(caseID),
	); err != nil {
		return ConvertToReturnCommand{}, err
	}

	return convertCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ConvertToReturnCommand) Validate() error {
	return c.guard.Validate(ErrConvertToReturnCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel the case belongs to.
func (c ConvertToReturnCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// CaseID returns the identifier of the case to convert.
func (c ConvertToReturnCommand) CaseID() kernel.UUID {
	return c.caseID
}

func (c *ConvertToReturnCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *ConvertToReturnCommand) setCaseID(caseID kernel.UUID) error {
	if err := caseID.Validate(); err != nil {
		return err
	}

	c.caseID = caseID
	return nil
}
