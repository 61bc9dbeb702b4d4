package rescase

// Permission names surfaced in TransitionNotAllowed errors and snapshots.
// They match the JSON field names of the permission set.
const (
	PermissionLaunchExchange       = "allowLaunchExchange"
	PermissionCreateExchangeParcel = "allowCreateExchangeParcel"
	PermissionUpdateReverseTrack   = "allowUpdateReverseTrack"
	PermissionConfirmReceipt       = "allowConfirmReceipt"
	PermissionClose                = "allowClose"
	PermissionConvertToReturn      = "allowConvertToReturn"
	PermissionConvertToExchange    = "allowConvertToExchange"
)

// Permissions is the derived action-permission set of a case: which
// transitions are currently legal given the state and side-flags.
//
// Permissions is a projection, not stored state. It is recomputed from the
// authoritative case on every read and before every command, so the flags a
// caller renders and the flags the command processor enforces are always
// identical.
type Permissions struct {
	AllowLaunchExchange       bool
	AllowCreateExchangeParcel bool
	AllowUpdateReverseTrack   bool
	AllowConfirmReceipt       bool
	AllowClose                bool
	AllowConvertToReturn      bool
	AllowConvertToExchange    bool
}

// DerivePermissions computes the permission set for a case. It is a pure
// function of (state, receiptConfirmed, exchange parcel linkage,
// cancelUnavailableReason) and performs no external calls.
//
// Rules:
//   - reverse track may be updated while the case is not closed
//   - receipt may be confirmed once, while the case is not closed
//   - an exchange may be launched only from an open return; converting a
//     return to an exchange is the same transition reached from a different
//     surface, so both flags derive identically
//   - the exchange parcel may be created once, while the exchange is open
//   - an exchange may be converted back to a return unless a downstream
//     fact blocks it (in which case cancelUnavailableReason names the cause)
//   - a plain return may be closed freely; an exchange may be closed only
//     after physical receipt of the returned goods is confirmed, so an
//     in-flight exchange is never silently discarded
func DerivePermissions(c *Case) Permissions {
	if c == nil {
		return Permissions{}
	}

	open := c.state != Closed
	isReturn := c.state == OpenReturn
	inExchange := c.state == OpenExchange || c.state == ExchangeInProgress

	return Permissions{
		AllowUpdateReverseTrack:   open,
		AllowConfirmReceipt:       open && !c.receiptConfirmed,
		AllowLaunchExchange:       isReturn,
		AllowConvertToExchange:    isReturn,
		AllowCreateExchangeParcel: c.state == OpenExchange && c.exchangeParcelID == nil,
		AllowConvertToReturn:      inExchange && c.cancelUnavailableReason == "",
		AllowClose:                open && (isReturn || c.receiptConfirmed),
	}
}
