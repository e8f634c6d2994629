package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

var ErrRecoverOrderCommandIsNotConstructed = errors.New(
	"RecoverOrderCommand must be created via NewRecoverOrderCommand constructor",
)

// RecoverOrderCommand represents a reconciliation request for an order whose
// ledger contract already moved but whose stored record did not, typically
// raised by an operator after a reported partial failure.
type RecoverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status

	guard guard.ConstructorGuard
}

// NewRecoverOrderCommand creates a command to converge an order's stored
// status onto the status the ledger already reached.
func NewRecoverOrderCommand(orderID kernel.UUID, target order.Status) (RecoverOrderCommand, error) {
	cmd := RecoverOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
	); err != nil {
		return RecoverOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecoverOrderCommand) Validate() error {
	return c.guard.Validate(ErrRecoverOrderCommandIsNotConstructed)
}

// OrderID returns the order being reconciled.
func (c RecoverOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the status the store must converge to.
func (c RecoverOrderCommand) Target() order.Status {
	return c.target
}

func (c *RecoverOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecoverOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
