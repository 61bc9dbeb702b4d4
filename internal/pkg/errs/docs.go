// Package errs provides standardized error types for the returns service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is support
//
// Besides the generic value errors, the package carries the command error
// taxonomy of the case resolution engine: NotEligible, CaseClosed,
// TransitionNotAllowed and IdempotencyConflict. Callers branch on the
// sentinel values to decide whether a failed command is retryable.
package errs
