package commands

import (
	"errors"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/pkg/guard"
)

var ErrConfirmReceiptCommandIsNotConstructed = errors.New(
	"ConfirmReceiptCommand must be created via NewConfirmReceiptCommand constructor",
)

// ConfirmReceiptCommand represents the warehouse confirming that the
// returned goods arrived.
type ConfirmReceiptCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	caseID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmReceiptCommand creates a command to confirm receipt for the case
// identified by (parcelID, caseID).
func NewConfirmReceiptCommand(parcelID, caseID kernel.UUID) (ConfirmReceiptCommand, error) {
	receiptCommand := ConfirmReceiptCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		receiptCommand.setParcelID(parcelID),
		receiptCommand.setCaseID(caseID),
	); err != nil {
		return ConfirmReceiptCommand{}, err
	}

	return receiptCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmReceiptCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReceiptCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel the case belongs to.
func (c ConfirmReceiptCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// CaseID returns the identifier of the case to confirm receipt for.
func (c ConfirmReceiptCommand) CaseID() kernel.UUID {
	return c.caseID
}

func (c *ConfirmReceiptCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *ConfirmReceiptCommand) setCaseID(caseID kernel.UUID) error {
	if err := caseID.Validate(); err != nil {
		return err
	}

	c.caseID = caseID
	return nil
}
