package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
)

// ClaimContractCommandHandler handles claiming a marketplace order.
//
// Claiming is a store-only operation with no ledger call: the agent's on-chain
// commitment happens later via acceptDelivery. At-most-one-claim is enforced
// by the store's atomic compare-and-set, so under concurrent claims exactly
// one agent wins and every other caller fails AlreadyClaimed.
type ClaimContractCommandHandler struct {
	orders ports.OrderRepository
	events ports.OrderEventPublisher
	log    *slog.Logger
}

// NewClaimContractCommandHandler creates a handler for claim operations.
func NewClaimContractCommandHandler(
	orders ports.OrderRepository,
	events ports.OrderEventPublisher,
	log *slog.Logger,
) ClaimContractCommandHandler {
	return ClaimContractCommandHandler{
		orders: orders,
		events: events,
		log:    log,
	}
}

// Handle processes the claim command and returns the claimed order.
// Returns AlreadyClaimedError when another agent holds the claim and
// ObjectNotFoundError when the order does not exist.
func (h ClaimContractCommandHandler) Handle(ctx context.Context, cmd ClaimContractCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := h.orders.Claim(ctx, cmd.OrderID(), cmd.AgentID(), now); err != nil {
		return nil, err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	publishTransition(ctx, h.events, h.log, aggregate, cmd.AgentID(), now)
	return aggregate, nil
}
