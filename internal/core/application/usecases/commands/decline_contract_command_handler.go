package commands

import (
	"context"

	"logistics/internal/core/ports"
)

// DeclineContractCommandHandler handles an agent declining a marketplace order.
//
// Declining is store-only and idempotent per agent. The aggregate validates
// that the order is still Pending and unclaimed; the store write itself is
// guarded the same way, so a decline racing a claim simply loses.
type DeclineContractCommandHandler struct {
	orders ports.OrderRepository
}

// NewDeclineContractCommandHandler creates a handler for decline operations.
func NewDeclineContractCommandHandler(orders ports.OrderRepository) DeclineContractCommandHandler {
	return DeclineContractCommandHandler{
		orders: orders,
	}
}

// Handle processes the decline command.
func (h DeclineContractCommandHandler) Handle(ctx context.Context, cmd DeclineContractCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Decline(cmd.AgentID()); err != nil {
		return err
	}

	return h.orders.Decline(ctx, cmd.OrderID(), cmd.AgentID())
}
