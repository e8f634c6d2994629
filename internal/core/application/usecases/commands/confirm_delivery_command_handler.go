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

// ConfirmDeliveryCommandHandler handles the customer's receipt confirmation.
//
// This is the settlement step: the confirmDelivery contract function releases
// the escrowed price to the store and the fee to the agent, and the order
// moves to Delivered in the store. A store failure after the release is the
// most serious partial failure in the workflow because the money already
// moved, so it is logged and reported with full reconciliation context.
type ConfirmDeliveryCommandHandler struct {
	orders    ports.OrderRepository
	ledger    ports.EscrowLedgerClient
	events    ports.OrderEventPublisher
	sequencer services.EscrowSequencer
	log       *slog.Logger
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmations.
func NewConfirmDeliveryCommandHandler(
	orders ports.OrderRepository,
	ledger ports.EscrowLedgerClient,
	events ports.OrderEventPublisher,
	log *slog.Logger,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		orders:    orders,
		ledger:    ledger,
		events:    events,
		sequencer: services.NewEscrowSequencer(),
		log:       log,
	}
}

// Handle processes the delivery confirmation and returns the updated order.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	loadedStatus := aggregate.Status()

	agentID := aggregate.DeliveryAgent()
	now := time.Now().UTC()
	if err = aggregate.ConfirmDelivery(cmd.CustomerID(), now); err != nil {
		return nil, err
	}

	contractID := aggregate.Contract()
	if contractID == nil {
		return nil, errs.NewConflictError("order has no escrow contract attached")
	}

	_, err = h.ledger.ConfirmDelivery(ctx, *contractID, cmd.CustomerID(), aggregate.StoreID(), *agentID)
	if err != nil {
		return nil, err
	}

	if err = h.orders.Update(ctx, aggregate, loadedStatus); err != nil {
		classified := h.sequencer.ClassifyStoreFailure(aggregate.ID(), contractID, aggregate.Status(), err)
		h.log.ErrorContext(ctx, "order store write failed after escrow release",
			slog.String("orderId", aggregate.ID().String()),
			slog.String("contractId", contractID.String()),
			slog.Any("error", classified),
		)
		return nil, classified
	}

	publishTransition(ctx, h.events, h.log, aggregate, cmd.CustomerID(), now)
	return aggregate, nil
}
