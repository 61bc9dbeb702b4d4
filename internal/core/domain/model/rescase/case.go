package rescase

import (
	"errors"
	"time"

	"returns/internal/core/domain/model/kernel"
	"returns/internal/pkg/errs"
)

var (
	// ErrCaseIsNotConstructed is returned when a Case instance was not
	// created through NewCase or RestoreCase.
	ErrCaseIsNotConstructed = errors.New("Case must be created via NewCase or RestoreCase")

	// ErrReasonIsRequired is returned when a case is created without a reason.
	ErrReasonIsRequired = errors.New("reason is required")
)

// ReasonCancelBlockedByDispatch is the human-readable blocking reason stored
// when the exchange parcel has already been handed to the carrier.
const ReasonCancelBlockedByDispatch = "exchange parcel has already been dispatched"

// Case is the aggregate root of a return/exchange request. It owns the
// lifecycle state, the side-flags that gate transitions, and the linkage to
// the exchange parcel once one is created.
//
// All mutations go through transition methods that re-derive the permission
// set first; callers never patch state directly. Each effective mutation
// bumps the version counter, which persistence uses for optimistic locking
// and snapshots expose so consumers can discard stale ones.
type Case struct {
	id       kernel.UUID
	parcelID kernel.UUID
	state    State

	reason  string
	comment string

	requestedAt time.Time
	decisionAt  *time.Time
	closedAt    *time.Time

	reverseTrack *kernel.TrackNumber

	receiptConfirmed   bool
	receiptConfirmedAt *time.Time

	exchangeParcelID     *kernel.UUID
	exchangeParcelNumber *kernel.TrackNumber

	cancelUnavailableReason string

	version int64

	isConstructed bool
}

// NewCase creates a case for a customer-initiated return or exchange
// request. The initial state is OpenReturn, or OpenExchange when isExchange
// is set. Reason is required; comment and reverse track are optional.
func NewCase(
	id kernel.UUID,
	parcelID kernel.UUID,
	reason string,
	comment string,
	reverseTrack *kernel.TrackNumber,
	isExchange bool,
	requestedAt time.Time,
) (*Case, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, ErrReasonIsRequired
	}
	if reverseTrack != nil {
		if err := reverseTrack.Validate(); err != nil {
			return nil, err
		}
	}
	if requestedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("requestedAt")
	}

	state := OpenReturn
	if isExchange {
		state = OpenExchange
	}

	return &Case{
		id:            id,
		parcelID:      parcelID,
		state:         state,
		reason:        reason,
		comment:       comment,
		reverseTrack:  reverseTrack,
		requestedAt:   requestedAt.UTC(),
		version:       1,
		isConstructed: true,
	}, nil
}

// RestoreCaseParams carries the persisted fields of a case for rehydration.
type RestoreCaseParams struct {
	ID                      kernel.UUID
	ParcelID                kernel.UUID
	State                   State
	Reason                  string
	Comment                 string
	RequestedAt             time.Time
	DecisionAt              *time.Time
	ClosedAt                *time.Time
	ReverseTrack            *kernel.TrackNumber
	ReceiptConfirmed        bool
	ReceiptConfirmedAt      *time.Time
	ExchangeParcelID        *kernel.UUID
	ExchangeParcelNumber    *kernel.TrackNumber
	CancelUnavailableReason string
	Version                 int64
}

// RestoreCase rehydrates a case from persistence, enforcing the structural
// invariants: closedAt is set exactly for closed cases, an exchange parcel
// is linked only where the state allows it, and the receipt timestamp
// accompanies the receipt flag.
func RestoreCase(p RestoreCaseParams) (*Case, error) {
	if err := p.ID.Validate(); err != nil {
		return nil, err
	}
	if err := p.ParcelID.Validate(); err != nil {
		return nil, err
	}
	if err := p.State.Validate(); err != nil {
		return nil, err
	}
	if p.Reason == "" {
		return nil, ErrReasonIsRequired
	}
	if err := p.State.ValidateCanHaveExchangeParcel(p.ExchangeParcelID != nil); err != nil {
		return nil, err
	}
	if (p.ClosedAt != nil) != (p.State == Closed) {
		return nil, errs.NewValueIsInvalidError("closedAt must be set exactly for closed cases")
	}
	if p.ReceiptConfirmed != (p.ReceiptConfirmedAt != nil) {
		return nil, errs.NewValueIsInvalidError("receiptConfirmedAt must accompany receiptConfirmed")
	}
	if p.Version < 1 {
		return nil, errs.NewVersionIsInvalidError("case")
	}

	return &Case{
		id:                      p.ID,
		parcelID:                p.ParcelID,
		state:                   p.State,
		reason:                  p.Reason,
		comment:                 p.Comment,
		requestedAt:             p.RequestedAt,
		decisionAt:              p.DecisionAt,
		closedAt:                p.ClosedAt,
		reverseTrack:            p.ReverseTrack,
		receiptConfirmed:        p.ReceiptConfirmed,
		receiptConfirmedAt:      p.ReceiptConfirmedAt,
		exchangeParcelID:        p.ExchangeParcelID,
		exchangeParcelNumber:    p.ExchangeParcelNumber,
		cancelUnavailableReason: p.CancelUnavailableReason,
		version:                 p.Version,
		isConstructed:           true,
	}, nil
}

// Validate ensures the Case instance was constructed through NewCase or
// RestoreCase rather than as a zero value.
func (c *Case) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCaseIsNotConstructed
	}
	return nil
}

// IsEqual compares two cases by identifier.
func (c *Case) IsEqual(other *Case) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the case identifier.
func (c *Case) ID() kernel.UUID { return c.id }

// ParcelID returns the identifier of the owning parcel.
func (c *Case) ParcelID() kernel.UUID { return c.parcelID }

// State returns the current lifecycle state.
func (c *Case) State() State { return c.state }

// Reason returns the customer-supplied reason code or text.
func (c *Case) Reason() string { return c.reason }

// Comment returns the free-text comment, amendable while non-terminal.
func (c *Case) Comment() string { return c.comment }

// RequestedAt returns when the customer submitted the request.
func (c *Case) RequestedAt() time.Time { return c.requestedAt }

// DecisionAt returns when the exchange decision was made, or nil.
func (c *Case) DecisionAt() *time.Time { return c.decisionAt }

// ClosedAt returns when the case was closed, or nil while non-terminal.
func (c *Case) ClosedAt() *time.Time { return c.closedAt }

// ReverseTrack returns the reverse shipment track number, or nil.
func (c *Case) ReverseTrack() *kernel.TrackNumber { return c.reverseTrack }

// ReceiptConfirmed reports whether the returned goods physically arrived.
func (c *Case) ReceiptConfirmed() bool { return c.receiptConfirmed }

// ReceiptConfirmedAt returns when receipt was confirmed, or nil.
func (c *Case) ReceiptConfirmedAt() *time.Time { return c.receiptConfirmedAt }

// ExchangeParcelID returns the linked exchange parcel identifier, or nil.
func (c *Case) ExchangeParcelID() *kernel.UUID { return c.exchangeParcelID }

// ExchangeParcelNumber returns the exchange parcel track number, or nil.
func (c *Case) ExchangeParcelNumber() *kernel.TrackNumber { return c.exchangeParcelNumber }

// CancelUnavailableReason returns the text explaining why converting back to
// a return is blocked, or "" when it is not.
func (c *Case) CancelUnavailableReason() string { return c.cancelUnavailableReason }

// Version returns the monotonic mutation counter of the case.
func (c *Case) Version() int64 { return c.version }

// Permissions derives the current action-permission set of the case.
func (c *Case) Permissions() Permissions {
	return DerivePermissions(c)
}

// LaunchExchange converts an open return into an open exchange and records
// the decision time. Re-issuing the command once the case is already in an
// exchange state is a no-op success.
func (c *Case) LaunchExchange(now time.Time) error {
	if err := c.guardNotClosed(); err != nil {
		return err
	}
	if c.state == OpenExchange || c.state == ExchangeInProgress {
		return nil
	}
	if !DerivePermissions(c).AllowLaunchExchange {
		return errs.NewTransitionNotAllowedError(PermissionLaunchExchange)
	}

	newState, err := c.state.LaunchExchange()
	if err != nil {
		return err
	}

	decisionAt := now.UTC()
	c.state = newState
	c.decisionAt = &decisionAt
	c.version++
	return nil
}

// AttachExchangeParcel links the created exchange parcel to the case and
// moves the exchange into fulfillment. Re-issuing the command once a parcel
// is linked is a no-op success.
func (c *Case) AttachExchangeParcel(exchangeParcelID kernel.UUID, number kernel.TrackNumber) error {
	if err := c.guardNotClosed(); err != nil {
		return err
	}
	if c.exchangeParcelID != nil {
		return nil
	}
	if !DerivePermissions(c).AllowCreateExchangeParcel {
		return errs.NewTransitionNotAllowedError(PermissionCreateExchangeParcel)
	}
	if err := exchangeParcelID.Validate(); err != nil {
		return err
	}
	if err := number.Validate(); err != nil {
		return err
	}

	newState, err := c.state.StartExchangeFulfillment()
	if err != nil {
		return err
	}

	c.state = newState
	c.exchangeParcelID = &exchangeParcelID
	c.exchangeParcelNumber = &number
	c.version++
	return nil
}

// ConvertToReturn cancels the exchange flow and reopens the case as a plain
// return. The exchange parcel, if any, is detached from the case's active
// flow, not deleted. Re-issuing the command on an open return is a no-op
// success. When a downstream fact blocks the reversal the error carries the
// stored blocking reason.
func (c *Case) ConvertToReturn() error {
	if err := c.guardNotClosed(); err != nil {
		return err
	}
	if c.state == OpenReturn {
		return nil
	}
	if !DerivePermissions(c).AllowConvertToReturn {
		return errs.NewTransitionNotAllowedErrorWithReason(
			PermissionConvertToReturn, c.cancelUnavailableReason)
	}

	newState, err := c.state.ConvertToReturn()
	if err != nil {
		return err
	}

	c.state = newState
	c.exchangeParcelID = nil
	c.exchangeParcelNumber = nil
	c.cancelUnavailableReason = ""
	c.version++
	return nil
}

// Close moves the case to the terminal state. A plain return closes freely;
// an exchange closes only after receipt of the returned goods is confirmed.
func (c *Case) Close(now time.Time) error {
	if err := c.guardNotClosed(); err != nil {
		return err
	}
	if !DerivePermissions(c).AllowClose {
		return errs.NewTransitionNotAllowedErrorWithReason(
			PermissionClose, "receipt of the returned goods is not confirmed")
	}

	newState, err := c.state.Close()
	if err != nil {
		return err
	}

	closedAt := now.UTC()
	c.state = newState
	c.closedAt = &closedAt
	c.version++
	return nil
}

// UpdateReverseTrack amends the reverse track number and/or the comment.
// Nil arguments leave the corresponding field untouched. The version is
// bumped only when something actually changed.
func (c *Case) UpdateReverseTrack(track *kernel.TrackNumber, comment *string) error {
	if err := c.guardNotClosed(); err != nil {
		return err
	}

	changed := false
	if track != nil {
		if err := track.Validate(); err != nil {
			return err
		}
		if c.reverseTrack == nil || !c.reverseTrack.IsEqual(*track) {
			value := *track
			c.reverseTrack = &value
			changed = true
		}
	}
	if comment != nil && c.comment != *comment {
		c.comment = *comment
		changed = true
	}

	if changed {
		c.version++
	}
	return nil
}

// ConfirmReceipt records that the returned goods physically arrived. The
// flag is monotonic: confirming an already-confirmed case is a no-op
// success, and nothing ever unsets it.
func (c *Case) ConfirmReceipt(now time.Time) error {
	if err := c.guardNotClosed(); err != nil {
		return err
	}
	if c.receiptConfirmed {
		return nil
	}

	confirmedAt := now.UTC()
	c.receiptConfirmed = true
	c.receiptConfirmedAt = &confirmedAt
	c.version++
	return nil
}

// BlockCancel records a downstream fact that makes converting the exchange
// back to a return unavailable. While set, AllowConvertToReturn derives
// false and the reason is surfaced in snapshots and errors.
func (c *Case) BlockCancel(reason string) {
	if reason == "" || c.cancelUnavailableReason == reason {
		return
	}
	c.cancelUnavailableReason = reason
	c.version++
}

func (c *Case) guardNotClosed() error {
	if c.state.IsTerminal() {
		return errs.NewCaseClosedError(c.id.String())
	}
	return nil
}
