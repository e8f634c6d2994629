package kernel

import (
	"fmt"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
// Money must be created via NewMoney or MoneyFromMinorUnits.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney or MoneyFromMinorUnits constructors")

// Money is an immutable value object representing a monetary amount in minor
// units (cents, tinybars). Order prices and delivery fees are fixed at order
// creation and never recalculated, so Money carries no currency: every amount
// in the system is denominated in the ledger's native unit.
//
// The zero value is invalid; use the constructors.
//
// Example:
//
//	price, err := kernel.NewMoney(10000) // 100.00 in minor units
//	if err != nil {
//	    // handle validation error
//	}
type Money struct { //nolint:recvcheck //using for validation
	amount int64
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money amount from minor units.
// The amount must not be negative.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}

	return Money{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// MoneyFromMinorUnits is an alias constructor used when reconstructing
// amounts from persistence, where the value was already validated.
func MoneyFromMinorUnits(amount int64) (Money, error) {
	return NewMoney(amount)
}

// Validate ensures the Money instance was created through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns the sum of two amounts as a new Money value.
func (m Money) Add(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}

	return NewMoney(m.amount + other.amount)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String returns the amount in minor units as a decimal string.
func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}
