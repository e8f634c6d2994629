// Package errs provides standardized error types for the logistics application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two error families:
//
// Value errors, used by domain constructors and input validation:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value is outside its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//
// Workflow errors, used by the order lifecycle to classify how an operation
// failed against the escrow ledger and the order store:
//   - UnauthorizedError: The acting party is not allowed to perform the transition
//   - InvalidStateError: The transition is not legal from the order's current status
//   - AlreadyClaimedError: A delivery agent lost the race for an unassigned order
//   - ConflictError: A concurrent update won; the caller must refresh and retry
//   - LedgerFailureError: The ledger rejected a deployment or contract call
//   - LedgerTimeoutError: The ledger call timed out; it may or may not have executed
//   - PartialFailureError: The ledger call succeeded but the order store write
//     failed, leaving the two systems divergent until reconciled
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach to error handling improves error reporting,
// makes error handling more consistent, and enables better error classification
// and handling throughout the application.
package errs
