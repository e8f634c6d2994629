package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
)

// RateDeliveryCommandHandler handles rating a delivered order.
//
// Rating is store-only: the escrow settled at delivery confirmation, so no
// contract function runs. The rating is written at most once: the aggregate
// rejects a second rating on the loaded snapshot, and the store write is
// conditional on the row still being delivered and unrated, so a concurrent
// rater that slipped in after our read loses with a conflict.
type RateDeliveryCommandHandler struct {
	orders ports.OrderRepository
}

// NewRateDeliveryCommandHandler creates a handler for rating operations.
func NewRateDeliveryCommandHandler(orders ports.OrderRepository) RateDeliveryCommandHandler {
	return RateDeliveryCommandHandler{
		orders: orders,
	}
}

// Handle processes the rating command and returns the updated order.
func (h RateDeliveryCommandHandler) Handle(ctx context.Context, cmd RateDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err = aggregate.Rate(cmd.CustomerID(), cmd.Rating(), cmd.Review(), now); err != nil {
		return nil, err
	}

	if err = h.orders.Rate(ctx, aggregate.ID(), cmd.Rating(), cmd.Review(), now); err != nil {
		return nil, err
	}

	return aggregate, nil
}
