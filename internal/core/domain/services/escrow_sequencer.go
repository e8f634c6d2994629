package services

import (
	"errors"

	"logistics/internal/core/domain/model/contract"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// EscrowSequencer is a domain service encoding the dual-write protocol of the
// delivery-escrow workflow: every status-changing operation first executes its
// contract function on the ledger, and only after the ledger succeeds writes
// the new status to the store.
//
// The ordering rule keeps failure modes one-sided. A ledger failure before the
// store write leaves both sides unchanged and the operation simply fails. A
// store failure after the ledger moved leaves the sides divergent, and the
// sequencer surfaces that divergence as a PartialFailureError so the caller
// can report the order for reconciliation instead of pretending the operation
// failed cleanly.
type EscrowSequencer struct{}

// NewEscrowSequencer creates a new EscrowSequencer instance.
func NewEscrowSequencer() EscrowSequencer {
	return EscrowSequencer{}
}

// FunctionFor returns the contract function the ledger must execute before the
// store may record the target status.
//
// Mapping:
//   - PickedUp  -> acceptDelivery
//   - InTransit -> confirmPickup
//   - Delivered -> confirmDelivery
//   - Cancelled -> refund
//
// Pending and Assigned have no mapping: deployment and funding precede Pending,
// and claiming an order is a store-only compare-and-set with no ledger call.
func (s EscrowSequencer) FunctionFor(target order.Status) (contract.Function, error) {
	switch target {
	case order.PickedUp:
		return contract.FunctionAcceptDelivery, nil
	case order.InTransit:
		return contract.FunctionConfirmPickup, nil
	case order.Delivered:
		return contract.FunctionConfirmDelivery, nil
	case order.Cancelled:
		return contract.FunctionRefund, nil
	default:
		return contract.FunctionUnknown, errs.NewValueIsInvalidErrorWithCause("status",
			errors.New(target.String()+" has no ledger contract function"))
	}
}

// ClassifyStoreFailure interprets a store-write error that happened after the
// ledger call for the target status already succeeded.
//
// Conflict and AlreadyClaimed pass through unchanged: they mean another writer
// got there first and the stored row is consistent, just newer than the caller's
// snapshot. Every other failure means the ledger and the store now disagree and
// is wrapped in a PartialFailureError carrying the order, contract and target
// status needed for reconciliation.
//
// Returns nil when cause is nil so callers can classify unconditionally.
func (s EscrowSequencer) ClassifyStoreFailure(
	orderID kernel.UUID,
	contractID *contract.ID,
	target order.Status,
	cause error,
) error {
	if cause == nil {
		return nil
	}

	if errors.Is(cause, errs.ErrConflict) || errors.Is(cause, errs.ErrAlreadyClaimed) {
		return cause
	}

	contractRef := ""
	if contractID != nil {
		contractRef = contractID.String()
	}

	return errs.NewPartialFailureError(orderID.String(), contractRef, target.String(), cause)
}
