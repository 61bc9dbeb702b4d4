package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEligible is the sentinel for case creation against a parcel that
	// is not currently eligible to start a return.
	ErrNotEligible = errors.New("parcel is not eligible")

	// ErrCaseClosed is the sentinel for commands issued against a terminal case.
	ErrCaseClosed = errors.New("case is closed")

	// ErrTransitionNotAllowed is the sentinel for commands whose permission
	// guard derived false for the current case state.
	ErrTransitionNotAllowed = errors.New("transition is not allowed")

	// ErrIdempotencyConflict is the sentinel for a reused idempotency key
	// whose payload differs from the original request.
	ErrIdempotencyConflict = errors.New("idempotency key conflict")
)

// NotEligibleError reports that a parcel cannot accept a new case, either
// because the tracking service refused it or because an open case exists.
type NotEligibleError struct {
	ParcelID string
	Reason   string
}

// NewNotEligibleError creates a NotEligibleError for the given parcel.
func NewNotEligibleError(parcelID, reason string) *NotEligibleError {
	return &NotEligibleError{ParcelID: parcelID, Reason: reason}
}

func (e *NotEligibleError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: parcel %s (%s)", ErrNotEligible, e.ParcelID, e.Reason)
	}
	return fmt.Sprintf("%s: parcel %s", ErrNotEligible, e.ParcelID)
}

func (e *NotEligibleError) Unwrap() error {
	return ErrNotEligible
}

// CaseClosedError reports a command against a case in the terminal state.
type CaseClosedError struct {
	CaseID string
}

// NewCaseClosedError creates a CaseClosedError for the given case.
func NewCaseClosedError(caseID string) *CaseClosedError {
	return &CaseClosedError{CaseID: caseID}
}

func (e *CaseClosedError) Error() string {
	return fmt.Sprintf("%s: case %s", ErrCaseClosed, e.CaseID)
}

func (e *CaseClosedError) Unwrap() error {
	return ErrCaseClosed
}

// TransitionNotAllowedError reports which permission guard blocked a command
// and, when known, the human-readable blocking reason.
type TransitionNotAllowedError struct {
	Permission string
	Reason     string
}

// NewTransitionNotAllowedError creates a TransitionNotAllowedError naming
// the permission that derived false.
func NewTransitionNotAllowedError(permission string) *TransitionNotAllowedError {
	return &TransitionNotAllowedError{Permission: permission}
}

// NewTransitionNotAllowedErrorWithReason creates a TransitionNotAllowedError
// carrying the blocking reason surfaced to the caller.
func NewTransitionNotAllowedErrorWithReason(permission, reason string) *TransitionNotAllowedError {
	return &TransitionNotAllowedError{Permission: permission, Reason: reason}
}

func (e *TransitionNotAllowedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s (%s)", ErrTransitionNotAllowed, e.Permission, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrTransitionNotAllowed, e.Permission)
}

func (e *TransitionNotAllowedError) Unwrap() error {
	return ErrTransitionNotAllowed
}

// IdempotencyConflictError reports a reused idempotency key with a payload
// fingerprint that differs from the stored one.
type IdempotencyConflictError struct {
	Key string
}

// NewIdempotencyConflictError creates an IdempotencyConflictError for the key.
func NewIdempotencyConflictError(key string) *IdempotencyConflictError {
	return &IdempotencyConflictError{Key: key}
}

func (e *IdempotencyConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrIdempotencyConflict, e.Key)
}

func (e *IdempotencyConflictError) Unwrap() error {
	return ErrIdempotencyConflict
}
