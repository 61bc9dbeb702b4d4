// Package rescase contains the return/exchange case aggregate: the state
// machine driving a customer's return or exchange request against a parcel,
// and the pure permission derivation that decides which transitions are
// currently legal.
//
// Invariants maintained by the aggregate:
//   - receipt confirmation is monotonic: once confirmed it is never unset
//   - an exchange parcel is linked only while the case is in an exchange state
//   - closedAt is set exactly when the case reaches the terminal Closed state
//   - a closed case accepts no further transitions
//
// Permissions are never stored as the source of truth: they are recomputed
// from the case row by DerivePermissions on every read and on every command.
package rescase
