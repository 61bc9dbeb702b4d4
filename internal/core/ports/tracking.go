package ports

import (
	"context"

	"returns/internal/core/domain/model/kernel"
)

// ParcelEligibility is the single fact this engine consumes from parcel
// tracking: whether a parcel is currently eligible to start a return.
type ParcelEligibility interface {
	CanRegisterReturn(ctx context.Context, parcelID kernel.UUID) (bool, error)
}

// ExchangeParcelSummary describes the exchange parcel created for a case,
// as reported by the parcel-tracking service.
type ExchangeParcelSummary struct {
	ID     kernel.UUID
	Number kernel.TrackNumber
}

// ExchangeParcelFactory creates the outgoing exchange parcel in the
// parcel-tracking service. The call must be synchronous and fast; the
// enclosing transaction is abandoned with a retryable error otherwise.
type ExchangeParcelFactory interface {
	Create(ctx context.Context, parcelID kernel.UUID) (ExchangeParcelSummary, error)
}

// ExchangeParcelTracker reports downstream facts about a created exchange
// parcel that gate case transitions.
type ExchangeParcelTracker interface {
	// IsDispatched reports whether the exchange parcel has already been
	// handed to the carrier, which blocks converting the exchange back to a
	// plain return.
	IsDispatched(ctx context.Context, exchangeParcelID kernel.UUID) (bool, error)
}
