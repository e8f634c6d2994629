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

// AcceptDeliveryCommandHandler handles the agent's on-chain acceptance.
//
// Ledger first, store second: the acceptDelivery contract function runs before
// the order moves to PickedUp in the store. A store failure after the ledger
// succeeded is surfaced as a partial failure for reconciliation.
type AcceptDeliveryCommandHandler struct {
	orders    ports.OrderRepository
	ledger    ports.EscrowLedgerClient
	events    ports.OrderEventPublisher
	sequencer services.EscrowSequencer
	log       *slog.Logger
}

// NewAcceptDeliveryCommandHandler creates a handler for acceptance operations.
func NewAcceptDeliveryCommandHandler(
	orders ports.OrderRepository,
	ledger ports.EscrowLedgerClient,
	events ports.OrderEventPublisher,
	log *slog.Logger,
) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{
		orders:    orders,
		ledger:    ledger,
		events:    events,
		sequencer: services.NewEscrowSequencer(),
		log:       log,
	}
}

// Handle processes the acceptance command and returns the updated order.
func (h AcceptDeliveryCommandHandler) Handle(ctx context.Context, cmd AcceptDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	loadedStatus := aggregate.Status()

	now := time.Now().UTC()
	if err = aggregate.AcceptDelivery(cmd.AgentID(), now); err != nil {
		return nil, err
	}

	contractID := aggregate.Contract()
	if contractID == nil {
		return nil, errs.NewConflictError("order has no escrow contract attached")
	}

	if _, err = h.ledger.AcceptDelivery(ctx, *contractID, cmd.AgentID(), aggregate.DeliveryFee()); err != nil {
		return nil, err
	}

	if err = h.orders.Update(ctx, aggregate, loadedStatus); err != nil {
		classified := h.sequencer.ClassifyStoreFailure(aggregate.ID(), contractID, aggregate.Status(), err)
		h.logStoreFailure(ctx, aggregate, classified)
		return nil, classified
	}

	publishTransition(ctx, h.events, h.log, aggregate, cmd.AgentID(), now)
	return aggregate, nil
}

func (h AcceptDeliveryCommandHandler) logStoreFailure(ctx context.Context, aggregate *order.Order, err error) {
	h.log.ErrorContext(ctx, "order store write failed after ledger acceptance",
		slog.String("orderId", aggregate.ID().String()),
		slog.String("status", aggregate.Status().String()),
		slog.Any("error", err),
	)
}
