// Package projection assembles the authoritative snapshot returned by every
// command and query. Both UI surfaces (detail modal and list row) replace
// their local view with the snapshot wholesale, so it must be complete and
// internally consistent.
//
// The projector never derives permissions itself; it calls
// rescase.DerivePermissions, which guarantees the flags a caller renders
// and the flags the command processor enforces are always identical.
package projection

import (
	"time"

	"returns/internal/core/domain/model/rescase"
)

// PermissionSet mirrors rescase.Permissions with the wire field names.
type PermissionSet struct {
	AllowLaunchExchange       bool `json:"allowLaunchExchange"`
	AllowCreateExchangeParcel bool `json:"allowCreateExchangeParcel"`
	AllowUpdateReverseTrack   bool `json:"allowUpdateReverseTrack"`
	AllowConfirmReceipt       bool `json:"allowConfirmReceipt"`
	AllowClose                bool `json:"allowClose"`
	AllowConvertToReturn      bool `json:"allowConvertToReturn"`
	AllowConvertToExchange    bool `json:"allowConvertToExchange"`
}

// ExchangeParcelView summarizes the linked exchange parcel.
type ExchangeParcelView struct {
	ID          string `json:"id"`
	Number      string `json:"number"`
	StatusLabel string `json:"statusLabel"`
}

// Snapshot is the full representation of a case. Every command returns one;
// callers resynchronize by overwriting their local view with it. Version is
// monotonic per case so consumers on unordered channels can discard stale
// snapshots.
type Snapshot struct {
	CaseID   string `json:"caseId"`
	ParcelID string `json:"parcelId"`

	State      string `json:"state"`
	StateLabel string `json:"stateLabel"`

	Reason      string `json:"reason"`
	ReasonLabel string `json:"reasonLabel"`
	Comment     string `json:"comment,omitempty"`

	RequestedAt time.Time  `json:"requestedAt"`
	DecisionAt  *time.Time `json:"decisionAt,omitempty"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`

	ReverseTrackNumber string `json:"reverseTrackNumber,omitempty"`

	ReceiptConfirmed   bool       `json:"receiptConfirmed"`
	ReceiptConfirmedAt *time.Time `json:"receiptConfirmedAt,omitempty"`

	ExchangeParcel *ExchangeParcelView `json:"exchangeParcel,omitempty"`

	Permissions PermissionSet `json:"permissions"`

	Hint     string   `json:"hint,omitempty"`
	Warnings []string `json:"warnings"`

	CancelUnavailableReason string `json:"cancelUnavailableReason,omitempty"`

	Version int64 `json:"version"`
}

// FromCase projects a case aggregate into its snapshot.
func FromCase(c *rescase.Case) Snapshot {
	permissions := rescase.DerivePermissions(c)

	snapshot := Snapshot{
		CaseID:                  c.ID().String(),
		ParcelID:                c.ParcelID().String(),
		State:                   StateWireName(c.State()),
		StateLabel:              StateLabel(c.State()),
		Reason:                  c.Reason(),
		ReasonLabel:             ReasonLabel(c.Reason()),
		Comment:                 c.Comment(),
		RequestedAt:             c.RequestedAt(),
		DecisionAt:              c.DecisionAt(),
		ClosedAt:                c.ClosedAt(),
		ReceiptConfirmed:        c.ReceiptConfirmed(),
		ReceiptConfirmedAt:      c.ReceiptConfirmedAt(),
		Permissions:             fromPermissions(permissions),
		Hint:                    deriveHint(c, permissions),
		Warnings:                deriveWarnings(c),
		CancelUnavailableReason: c.CancelUnavailableReason(),
		Version:                 c.Version(),
	}

	if track := c.ReverseTrack(); track != nil {
		snapshot.ReverseTrackNumber = track.String()
	}

	if id := c.ExchangeParcelID(); id != nil {
		view := &ExchangeParcelView{
			ID:          id.String(),
			StatusLabel: exchangeStatusLabel(c),
		}
		if number := c.ExchangeParcelNumber(); number != nil {
			view.Number = number.String()
		}
		snapshot.ExchangeParcel = view
	}

	return snapshot
}

func fromPermissions(p rescase.Permissions) PermissionSet {
	return PermissionSet{
		AllowLaunchExchange:       p.AllowLaunchExchange,
		AllowCreateExchangeParcel: p.AllowCreateExchangeParcel,
		AllowUpdateReverseTrack:   p.AllowUpdateReverseTrack,
		AllowConfirmReceipt:       p.AllowConfirmReceipt,
		AllowClose:                p.AllowClose,
		AllowConvertToReturn:      p.AllowConvertToReturn,
		AllowConvertToExchange:    p.AllowConvertToExchange,
	}
}

// deriveHint produces the single advisory string for the current state.
// Deterministic: the same case always yields the same hint.
func deriveHint(c *rescase.Case, permissions rescase.Permissions) string {
	if permissions.AllowCreateExchangeParcel && !c.ReceiptConfirmed() {
		return "Confirm receipt of the returned goods before creating the exchange parcel"
	}
	if c.State() == rescase.OpenReturn && c.ReverseTrack() == nil {
		return "Add the reverse track number so the returned shipment can be traced"
	}
	return ""
}

func deriveWarnings(c *rescase.Case) []string {
	warnings := make([]string, 0)

	inExchange := c.State() == rescase.OpenExchange || c.State() == rescase.ExchangeInProgress
	if inExchange && !c.ReceiptConfirmed() {
		warnings = append(warnings,
			"The case cannot be closed until receipt of the returned goods is confirmed")
	}
	if reason := c.CancelUnavailableReason(); reason != "" {
		warnings = append(warnings, "Cancelling the exchange is unavailable: "+reason)
	}

	return warnings
}

func exchangeStatusLabel(c *rescase.Case) string {
	if c.CancelUnavailableReason() != "" {
		return "Dispatched"
	}
	if c.State() == rescase.Closed {
		return "Delivered"
	}
	return "Preparing for dispatch"
}
