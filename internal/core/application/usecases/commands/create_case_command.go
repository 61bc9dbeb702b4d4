package commands

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/pkg/guard"
)

var (
	ErrCreateCaseCommandIsNotConstructed = errors.New(
		"CreateCaseCommand must be created via NewCreateCaseCommand constructor",
	)
	ErrReasonIsRequired         = errors.New("reason is required")
	ErrIdempotencyKeyIsRequired = errors.New("idempotency key is required")
)

// CreateCaseCommand represents a customer's request to open a return or
// exchange case against a parcel. Duplicate submits are protected by the
// client-supplied idempotency key.
//
// Example:
//
//	cmd, err := NewCreateCaseCommand(parcelID, "size_mismatch", "", nil, false, "k1", time.Now())
//	if err != nil {
//	    return fmt.Errorf("invalid case data: %w", err)
//	}
//
//	handler := NewCreateCaseCommandHandler(uowFactory, eligibility)
//	snapshot, err := handler.Handle(ctx, cmd)
type CreateCaseCommand struct { //nolint:recvcheck //using for validation
	parcelID       kernel.UUID
	reason         string
	comment        string
	reverseTrack   *kernel.TrackNumber
	isExchange     bool
	idempotencyKey string
	requestedAt    time.Time

	guard guard.ConstructorGuard
}

// NewCreateCaseCommand creates a command to open a case. Validates that the
// parcel ID is valid, reason and idempotency key are not empty, and the
// reverse track number, if supplied, is well formed.
func NewCreateCaseCommand(
	parcelID kernel.UUID,
	reason string,
	comment string,
	reverseTrack *kernel.TrackNumber,
	isExchange bool,
	idempotencyKey string,
	requestedAt time.Time,
) (CreateCaseCommand, error) {
	caseCommand := CreateCaseCommand{
		comment:     comment,
		isExchange:  isExchange,
		requestedAt: requestedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		caseCommand.setParcelID(parcelID),
		caseCommand.setReason(reason),
		caseCommand.setReverseTrack(reverseTrack),
		caseCommand.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return CreateCaseCommand{}, err
	}

	return caseCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCaseCommand) Validate() error {
	return c.guard.Validate(ErrCreateCaseCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel the case is opened against.
func (c CreateCaseCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Reason returns the customer-supplied reason code or text.
func (c CreateCaseCommand) Reason() string {
	return c.reason
}

// Comment returns the optional free-text comment.
func (c CreateCaseCommand) Comment() string {
	return c.comment
}

// ReverseTrack returns the optional reverse shipment track number.
func (c CreateCaseCommand) ReverseTrack() *kernel.TrackNumber {
	return c.reverseTrack
}

// IsExchange reports whether the customer requested an exchange rather than
// a plain return.
func (c CreateCaseCommand) IsExchange() bool {
	return c.isExchange
}

// IdempotencyKey returns the client-supplied duplicate-submit token.
func (c CreateCaseCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

// RequestedAt returns when the customer submitted the request.
func (c CreateCaseCommand) RequestedAt() time.Time {
	return c.requestedAt
}

// Fingerprint hashes the material payload of the command. A reused
// idempotency key whose fingerprint differs is rejected as a conflict
// rather than silently merged. The submission timestamp is excluded so a
// client that regenerates it on retry still replays cleanly.
func (c CreateCaseCommand) Fingerprint() string {
	track := ""
	if c.reverseTrack != nil {
		track = c.reverseTrack.String()
	}

	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%s|%s|%t",
		c.parcelID, c.reason, c.comment, track, c.isExchange))
	return hex.EncodeToString(sum[:])
}

func (c *CreateCaseCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CreateCaseCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}

func (c *CreateCaseCommand) setReverseTrack(track *kernel.TrackNumber) error {
	if track == nil {
		return nil
	}
	if err := track.Validate(); err != nil {
		return err
	}

	c.reverseTrack = track
	return nil
}

func (c *CreateCaseCommand) setIdempotencyKey(key string) error {
	if key == "" {
		return ErrIdempotencyKeyIsRequired
	}

	c.idempotencyKey = key
	return nil
}
