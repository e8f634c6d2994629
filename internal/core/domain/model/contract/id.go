package contract

import (
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrIDIsNotConstructed is returned when validating a zero-value ID.
// Contract IDs must be created via NewID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError(
	"contract ID must be created via NewID constructor")

// ID is the ledger-assigned identifier of a deployed escrow contract
// (for example "0.0.5005"). It is set on an order exactly once, after a
// successful deployment, and never reassigned.
//
// The zero value is invalid; use NewID.
type ID struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewID creates a contract ID from its ledger string representation.
// The value must not be empty; beyond that the ledger owns the format.
func NewID(value string) (ID, error) {
	if value == "" {
		return ID{}, errs.NewValueIsRequiredError("contract ID")
	}

	return ID{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the ID was created through NewID.
func (id ID) Validate() error {
	return id.guard.Validate(ErrIDIsNotConstructed)
}

// String returns the ledger string representation of the contract ID.
func (id ID) String() string {
	return id.value
}

// IsEqual compares two contract IDs by value.
func (id ID) IsEqual(other ID) bool {
	return id.value == other.value
}
