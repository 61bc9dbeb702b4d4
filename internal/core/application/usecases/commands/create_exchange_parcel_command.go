package commands

import (
	"errors"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/pkg/guard"
)

var ErrCreateExchangeParcelCommandIsNotConstructed = errors.New(
	"CreateExchangeParcelCommand must be created via NewCreateExchangeParcelCommand constructor",
)

// CreateExchangeParcelCommand represents the request to create the outgoing
// exchange parcel for an approved exchange case.
type CreateExchangeParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	caseID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateExchangeParcelCommand creates a command to create the exchange
// parcel for the case identified by (parcelID, caseID).
func NewCreateExchangeParcelCommand(parcelID, caseID kernel.UUID) (CreateExchangeParcelCommand, error) {
	parcelCommand := CreateExchangeParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		parcelCommand.setParcelID(parcelID),
		parcelCommand.setCaseID(caseID),
	); err != nil {
		return CreateExchangeParcelCommand{}, err
	}

	return parcelCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateExchangeParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateExchangeParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel the case belongs to.
func (c CreateExchangeParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// CaseID returns the identifier of the case to attach the parcel to.
func (c CreateExchangeParcelCommand) CaseID() kernel.UUID {
	return c.caseID
}

func (c *CreateExchangeParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CreateExchangeParcelCommand) setCaseID(caseID kernel.UUID) error {
	if err := caseID.Validate(); err != nil {
		return err
	}

	c.caseID = caseID
	return nil
}
