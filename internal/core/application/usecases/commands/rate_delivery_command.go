package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrRateDeliveryCommandIsNotConstructed = errors.New(
	"RateDeliveryCommand must be created via NewRateDeliveryCommand constructor",
)

// RateDeliveryCommand represents the customer rating a delivered order.
// The rating is an integer in [1, 5]; the review text is optional.
type RateDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	rating     int
	review     *string

	guard guard.ConstructorGuard
}

// NewRateDeliveryCommand creates a command to rate a delivery.
func NewRateDeliveryCommand(orderID, customerID kernel.UUID, rating int, review *string) (RateDeliveryCommand, error) {
	cmd := RateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setRating(rating),
	); err != nil {
		return RateDeliveryCommand{}, err
	}

	cmd.review = review
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRateDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being rated.
func (c RateDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the rating customer.
func (c RateDeliveryCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Rating returns the rating value in [1, 5].
func (c RateDeliveryCommand) Rating() int {
	return c.rating
}

// Review returns the optional review text.
func (c RateDeliveryCommand) Review() *string {
	return c.review
}

func (c *RateDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RateDeliveryCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *RateDeliveryCommand) setRating(rating int) error {
	if rating < 1 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}

	c.rating = rating
	return nil
}
