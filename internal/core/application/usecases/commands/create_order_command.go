package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer's request to place a new order.
// Encapsulates the order's parties and amounts in ledger minor units.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(userID, storeID, 10000, 1500)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s awaiting a delivery agent", placed.ID())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID      kernel.UUID
	storeID     kernel.UUID
	totalPrice  int64
	deliveryFee int64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that both parties are valid, the total price is positive and the
// delivery fee is not negative. Returns an error if any validation fails.
func NewCreateOrderCommand(userID, storeID kernel.UUID, totalPrice, deliveryFee int64) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParties(userID, storeID),
		cmd.setAmounts(totalPrice, deliveryFee),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// UserID returns the customer placing the order.
func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// StoreID returns the store fulfilling the order.
func (c CreateOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

// TotalPrice returns the order total in ledger minor units.
func (c CreateOrderCommand) TotalPrice() int64 {
	return c.totalPrice
}

// DeliveryFee returns the delivery fee in ledger minor units.
func (c CreateOrderCommand) DeliveryFee() int64 {
	return c.deliveryFee
}

func (c *CreateOrderCommand) setParties(userID, storeID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if err := storeID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	c.storeID = storeID
	return nil
}

func (c *CreateOrderCommand) setAmounts(totalPrice, deliveryFee int64) error {
	if totalPrice <= 0 {
		return errs.NewValueIsInvalidError("totalPrice")
	}
	if deliveryFee < 0 {
		return errs.NewValueIsInvalidError("deliveryFee")
	}

	c.totalPrice = totalPrice
	c.deliveryFee = deliveryFee
	return nil
}
