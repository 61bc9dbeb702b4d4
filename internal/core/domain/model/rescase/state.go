package rescase

import (
	"fmt"

	"returns/internal/pkg/errs"
)

// State represents the lifecycle state of a return/exchange case.
// It implements a state machine with defined transitions:
//
//	OpenReturn ──> OpenExchange ──> ExchangeInProgress
//	    ^               │                  │
//	    └───────────────┴──────────────────┘
//	          (convert back to return)
//
//	OpenReturn / OpenExchange / ExchangeInProgress ──> Closed (terminal)
//
// State is a value object that validates transitions and provides string
// representations for persistence and display.
type State int

const (
	// Unknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	Unknown State = iota

	// OpenReturn is the initial state of a plain return request, and the
	// state an exchange reverts to when it is converted back to a return.
	OpenReturn

	// OpenExchange indicates the customer chose an exchange and the case is
	// waiting for the exchange parcel to be created.
	OpenExchange

	// ExchangeInProgress indicates the exchange parcel has been created and
	// the exchange is being fulfilled.
	ExchangeInProgress

	// Closed is the terminal state. No further transitions are accepted.
	Closed
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:            "Unknown",
		OpenReturn:         "OpenReturn",
		OpenExchange:       "OpenExchange",
		ExchangeInProgress: "ExchangeInProgress",
		Closed:             "Closed",
	}
}

func getValidStateStrings() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		OpenReturn:         "OpenReturn",
		OpenExchange:       "OpenExchange",
		ExchangeInProgress: "ExchangeInProgress",
		Closed:             "Closed",
	}
}

// Validate checks if the State value is one of the defined lifecycle states.
// Unknown (0) and any other values are invalid.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid",
			fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the name of the state, or "Unknown" for invalid values.
// Implements fmt.Stringer and is safe on any State value.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the state accepts no further transitions.
func (s State) IsTerminal() bool {
	return s == Closed
}

// LaunchExchange transitions the state to OpenExchange.
//
// Valid transitions:
//   - OpenReturn -> OpenExchange
func (s State) LaunchExchange() (State, error) {
	if s != OpenReturn {
		return 0, errs.NewValueIsInvalidErrorWithCause("state is invalid",
			fmt.Errorf("%s is not a valid state to launch an exchange", s))
	}
	return OpenExchange, nil
}

// StartExchangeFulfillment transitions the state to ExchangeInProgress.
// Used when the exchange parcel is created and linked to the case.
//
// Valid transitions:
//   - OpenExchange -> ExchangeInProgress
func (s State) StartExchangeFulfillment() (State, error) {
	if s != OpenExchange {
		return 0, errs.NewValueIsInvalidErrorWithCause("state is invalid",
			fmt.Errorf("%s is not a valid state to start exchange fulfillment", s))
	}
	return ExchangeInProgress, nil
}

// ConvertToReturn transitions the state back to OpenReturn, cancelling the
// exchange flow without closing the case.
//
// Valid transitions:
//   - OpenExchange -> OpenReturn
//   - ExchangeInProgress -> OpenReturn
func (s State) ConvertToReturn() (State, error) {
	if s != OpenExchange && s != ExchangeInProgress {
		return 0, errs.NewValueIsInvalidErrorWithCause("state is invalid",
			fmt.Errorf("%s is not a valid state to convert to a return", s))
	}
	return OpenReturn, nil
}

// Close transitions the state to the terminal Closed state.
//
// Valid transitions:
//   - OpenReturn -> Closed
//   - OpenExchange -> Closed
//   - ExchangeInProgress -> Closed
func (s State) Close() (State, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s == Closed {
		return 0, errs.NewValueIsInvalidErrorWithCause("state is invalid",
			fmt.Errorf("%s is already terminal", s))
	}
	return Closed, nil
}

// ValidateCanHaveExchangeParcel validates the consistency between case state
// and exchange parcel linkage when rehydrating from persistence.
//
// An exchange parcel may become linked only in OpenExchange or
// ExchangeInProgress; a closed case keeps its linkage for audit history.
// ExchangeInProgress requires one to be linked.
func (s State) ValidateCanHaveExchangeParcel(linked bool) error {
	if linked && s != OpenExchange && s != ExchangeInProgress && s != Closed {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid",
			fmt.Errorf("%s is not a valid state to have an exchange parcel", s))
	}
	if !linked && s == ExchangeInProgress {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid",
			fmt.Errorf("%s requires an exchange parcel", s))
	}
	return nil
}
