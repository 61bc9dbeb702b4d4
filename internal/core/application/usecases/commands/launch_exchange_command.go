package commands

import (
	"errors"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/pkg/guard"
)

var ErrLaunchExchangeCommandIsNotConstructed = errors.New(
	"LaunchExchangeCommand must be created via NewLaunchExchangeCommand constructor",
)

// LaunchExchangeCommand represents an operator's decision to turn an open
// return into an exchange.
type LaunchExchangeCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	caseID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewLaunchExchangeCommand creates a command to launch an exchange for the
// case identified by (parcelID, caseID).
func NewLaunchExchangeCommand(parcelID, caseID kernel.UUID) (LaunchExchangeCommand, error) {
	launchCommand := LaunchExchangeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		launchCommand.setParcelID(parcelID),
		launchCommand.setCaseID(caseID),
	); err != nil {
		return LaunchExchangeCommand{}, err
	}

	return launchCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c LaunchExchangeCommand) Validate() error {
	return c.guard.Validate(ErrLaunchExchangeCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel the case belongs to.
func (c LaunchExchangeCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// CaseID returns the identifier of the case to transition.
func (c LaunchExchangeCommand) CaseID() kernel.UUID {
	return c.caseID
}

func (c *LaunchExchangeCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *LaunchExchangeCommand) setCaseID(caseID kernel.UUID) error {
	if err := caseID.Validate(); err != nil {
		return err
	}

	c.caseID = caseID
	return nil
}
