package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// ConfirmPickupCommandHandler handles the agent's pickup confirmation.
//
// Executes the confirmPickup contract function on the ledger, then moves the
// order to InTransit in the store. The transition is valid from Assigned as
// well as PickedUp, covering agents that skip the separate acceptance step.
type ConfirmPickupCommandHandler struct {
	orders    ports.OrderRepository
	ledger    ports.EscrowLedgerClient
	events    ports.OrderEventPublisher
	sequencer services.EscrowSequencer
	log       *slog.Logger
}

// NewConfirmPickupCommandHandler creates a handler for pickup confirmations.
func NewConfirmPickupCommandHandler(
	orders ports.OrderRepository,
	ledger ports.EscrowLedgerClient,
	events ports.OrderEventPublisher,
	log *slog.Logger,
) ConfirmPickupCommandHandler {
	return ConfirmPickupCommandHandler{
		orders:    orders,
		ledger:    ledger,
		events:    events,
		sequencer: services.NewEscrowSequencer(),
		log:       log,
	}
}

// Handle processes the pickup confirmation and returns the updated order.
func (h ConfirmPickupCommandHandler) Handle(ctx context.Context, cmd ConfirmPickupCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	loadedStatus := aggregate.Status()

	now := time.Now().UTC()
	if err = aggregate.ConfirmPickup(cmd.AgentID(), now); err != nil {
		return nil, err
	}

	contractID := aggregate.Contract()
	if contractID == nil {
		return nil, errs.NewConflictError("order has no escrow contract attached")
	}

	if _, err = h.ledger.ConfirmPickup(ctx, *contractID); err != nil {
		return nil, err
	}

	if err = h.orders.Update(ctx, aggregate, loadedStatus); err != nil {
		classified := h.sequencer.ClassifyStoreFailure(aggregate.ID(), contractID, aggregate.Status(), err)
		h.log.ErrorContext(ctx, "order store write failed after ledger pickup confirmation",
			slog.String("orderId", aggregate.ID().String()),
			slog.Any("error", classified),
		)
		return nil, classified
	}

	publishTransition(ctx, h.events, h.log, aggregate, cmd.AgentID(), now)
	return aggregate, nil
}
