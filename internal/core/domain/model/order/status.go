package order

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow the
// delivery-escrow workflow in strict sequence.
//
// State transitions (actor in parentheses):
//
//	Pending ──claim(agent)──> Assigned ──accept(agent)──> PickedUp
//	   │                          │                           │
//	   │                          └───────pickup(agent)───────┴──> InTransit
//	   │                                                              │
//	cancel(customer/store)                              deliver(customer)
//	   │                                                              │
//	   v                                                              v
//	Cancelled                                                     Delivered
//
// Delivered and Cancelled are terminal. Every forward transition is monotonic;
// cancellation is only reachable from Pending.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the escrow contract is deployed and
	// funded, and the order waits on the marketplace for a delivery agent.
	Pending

	// Assigned indicates a delivery agent claimed the order's contract.
	Assigned

	// PickedUp indicates the agent accepted the delivery on the ledger and
	// collected the goods from the store.
	PickedUp

	// InTransit indicates the pickup was confirmed on the ledger and the
	// goods are on their way to the customer.
	InTransit

	// Delivered indicates the customer confirmed receipt; escrowed funds
	// are released. Terminal for the workflow, though rating fields may
	// still be set once.
	Delivered

	// Cancelled indicates the order was cancelled while Pending and any
	// escrowed funds were refunded. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Assigned:  "ASSIGNED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "PENDING",
		Assigned:  "ASSIGNED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// StatusFromName parses a status from its persisted or wire name
// (for example "IN_TRANSIT"). Returns an error for unknown names.
func StatusFromName(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status name", name))
}

// Validate checks if the Status value is valid.
// Valid statuses are Pending through Cancelled; Unknown and out-of-range
// values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("PENDING", "ASSIGNED", ...).
// Implements fmt.Stringer; safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateCanHaveAgent validates the consistency between order status and
// delivery agent assignment: an agent is set if and only if the status is
// Assigned, PickedUp, InTransit or Delivered.
func (s Status) ValidateCanHaveAgent(agent bool) error {
	claimed := s == Assigned || s == PickedUp || s == InTransit || s == Delivered

	if agent && !claimed {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have a delivery agent", s))
	}

	if !agent && claimed {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no delivery agent", s))
	}

	return nil
}

// Assign transitions the status to Assigned when an agent claims the order.
//
// Valid transitions:
//   - Pending -> Assigned
//
// Unlike the rest of the workflow this transition fails with AlreadyClaimed
// rather than InvalidState, because any non-Pending source means another
// agent holds (or held) the claim.
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return 0, errs.ErrAlreadyClaimed
	}
	return Assigned, nil
}

// Accept transitions the status to PickedUp when the assigned agent accepts
// the delivery on the ledger.
//
// Valid transitions:
//   - Assigned -> PickedUp
func (s Status) Accept() (Status, error) {
	if s != Assigned {
		return 0, errs.NewInvalidStateError("acceptDelivery", s.String())
	}
	return PickedUp, nil
}

// Pickup transitions the status to InTransit once the pickup is confirmed on
// the ledger.
//
// Valid transitions:
//   - Assigned -> InTransit (agent confirms pickup without a separate accept step)
//   - PickedUp -> InTransit
func (s Status) Pickup() (Status, error) {
	if s != Assigned && s != PickedUp {
		return 0, errs.NewInvalidStateError("confirmPickup", s.String())
	}
	return InTransit, nil
}

// Deliver transitions the status to Delivered when the customer confirms
// receipt and the escrow releases.
//
// Valid transitions:
//   - InTransit -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != InTransit {
		return 0, errs.NewInvalidStateError("confirmDelivery", s.String())
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//
// Cancellation after an agent claimed the order is not supported: the escrow
// refund path only exists while no delivery work has started.
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError("cancelOrder", s.String())
	}
	return Cancelled, nil
}
