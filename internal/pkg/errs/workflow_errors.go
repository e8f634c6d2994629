package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the workflow error family. These classify failures of
// order lifecycle operations against the escrow ledger and the order store.
var (
	// ErrUnauthorized indicates the acting party may not perform the transition.
	ErrUnauthorized = errors.New("actor is not authorized")

	// ErrInvalidState indicates the transition is not legal from the current status.
	ErrInvalidState = errors.New("transition is not allowed from current status")

	// ErrAlreadyClaimed indicates another delivery agent holds the claim.
	ErrAlreadyClaimed = errors.New("contract is already claimed")

	// ErrConflict indicates a concurrent update won; the caller must refresh.
	ErrConflict = errors.New("concurrent update conflict")

	// ErrLedgerFailure indicates the ledger rejected a deployment or contract call.
	ErrLedgerFailure = errors.New("ledger call failed")

	// ErrLedgerTimeout indicates a ledger call timed out with unknown outcome.
	ErrLedgerTimeout = errors.New("ledger call timed out")

	// ErrPartialFailure indicates the ledger call succeeded but the order store
	// write did not. The order record and the on-chain state are divergent until
	// a store-only retry converges them.
	ErrPartialFailure = errors.New("ledger succeeded but order store write failed")
)

// UnauthorizedError is returned when the caller's identity does not match the
// actor authorized for the attempted transition. Never mutates state.
type UnauthorizedError struct {
	ActorID   string
	Operation string
}

// NewUnauthorizedError creates an UnauthorizedError for the given actor and operation.
func NewUnauthorizedError(actorID, operation string) *UnauthorizedError {
	return &UnauthorizedError{ActorID: actorID, Operation: operation}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: actor %s may not perform %s", ErrUnauthorized, e.ActorID, e.Operation)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// InvalidStateError is returned when an operation is attempted from a status
// outside its allowed source set. Never mutates state.
type InvalidStateError struct {
	Operation string
	Status    string
}

// NewInvalidStateError creates an InvalidStateError for the operation and current status.
func NewInvalidStateError(operation, status string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Status: status}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s is not allowed while %s", ErrInvalidState, e.Operation, e.Status)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// AlreadyClaimedError is returned when an order already has a delivery agent,
// or lost the claim compare-and-set to a concurrent agent. Never mutates state.
type AlreadyClaimedError struct {
	OrderID string
}

// NewAlreadyClaimedError creates an AlreadyClaimedError for the given order.
func NewAlreadyClaimedError(orderID string) *AlreadyClaimedError {
	return &AlreadyClaimedError{OrderID: orderID}
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("%s: order %s", ErrAlreadyClaimed, e.OrderID)
}

func (e *AlreadyClaimedError) Unwrap() error {
	return ErrAlreadyClaimed
}

// ConflictError is returned when an optimistic precondition failed because a
// concurrent operation changed the order first. The caller should re-read the
// order before deciding whether to retry.
type ConflictError struct {
	ParamName string
	Cause     error
}

// NewConflictError creates a ConflictError for the named parameter.
func NewConflictError(paramName string) *ConflictError {
	return &ConflictError{ParamName: paramName}
}

// NewConflictErrorWithCause creates a ConflictError carrying the underlying cause.
func NewConflictErrorWithCause(paramName string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrConflict, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConflict, e.ParamName)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// LedgerFailureError is returned when the escrow ledger rejects a deployment
// or contract execution. The operation aborts before any store write, so the
// order record is untouched.
type LedgerFailureError struct {
	Function string
	Cause    error
}

// NewLedgerFailureError creates a LedgerFailureError for the failed contract function.
func NewLedgerFailureError(function string, cause error) *LedgerFailureError {
	return &LedgerFailureError{Function: function, Cause: cause}
}

func (e *LedgerFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrLedgerFailure, e.Function, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrLedgerFailure, e.Function)
}

func (e *LedgerFailureError) Unwrap() error {
	return ErrLedgerFailure
}

// LedgerTimeoutError is returned when a ledger call times out. The call may or
// may not have executed; callers must not retry it blindly, since the contract
// mutation could apply twice.
type LedgerTimeoutError struct {
	Function string
	Cause    error
}

// NewLedgerTimeoutError creates a LedgerTimeoutError for the timed-out contract function.
func NewLedgerTimeoutError(function string, cause error) *LedgerTimeoutError {
	return &LedgerTimeoutError{Function: function, Cause: cause}
}

func (e *LedgerTimeoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrLedgerTimeout, e.Function, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrLedgerTimeout, e.Function)
}

func (e *LedgerTimeoutError) Unwrap() error {
	return ErrLedgerTimeout
}

// PartialFailureError is returned when the ledger call succeeded but the
// subsequent order store write failed. It carries everything a caller needs
// to retry the store write alone: the order, the contract that already moved,
// and the status the record should converge to. The operation that produced
// it must never re-issue the ledger call for the same request.
type PartialFailureError struct {
	OrderID      string
	ContractID   string
	TargetStatus string
	Cause        error
}

// NewPartialFailureError creates a PartialFailureError describing the divergence.
func NewPartialFailureError(orderID, contractID, targetStatus string, cause error) *PartialFailureError {
	return &PartialFailureError{
		OrderID:      orderID,
		ContractID:   contractID,
		TargetStatus: targetStatus,
		Cause:        cause,
	}
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: order %s, contract %s, target status %s (cause: %s)",
		ErrPartialFailure, e.OrderID, e.ContractID, e.TargetStatus, e.Cause)
}

func (e *PartialFailureError) Unwrap() error {
	return ErrPartialFailure
}
