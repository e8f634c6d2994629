package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// CreateOrderCommandHandler handles order placement.
//
// Placement is the one operation that touches the ledger twice: it deploys a
// fresh escrow contract owned by the store, funds it with the full escrow
// amount from the customer, and only then persists the order in Pending
// status. A ledger failure before the store write aborts placement cleanly;
// a store failure after funding is reported as a partial failure carrying the
// funded contract's ID for manual review.
type CreateOrderCommandHandler struct {
	orders    ports.OrderRepository
	ledger    ports.EscrowLedgerClient
	events    ports.OrderEventPublisher
	sequencer services.EscrowSequencer
	log       *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	orders ports.OrderRepository,
	ledger ports.EscrowLedgerClient,
	events ports.OrderEventPublisher,
	log *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		orders:    orders,
		ledger:    ledger,
		events:    events,
		sequencer: services.NewEscrowSequencer(),
		log:       log,
	}
}

// Handle processes the order placement command.
// Deploys and funds the escrow contract, then persists the order. The order ID
// is generated here so the caller cannot collide identifiers.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	totalPrice, err := kernel.NewMoney(cmd.TotalPrice())
	if err != nil {
		return nil, err
	}
	deliveryFee, err := kernel.NewMoney(cmd.DeliveryFee())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	aggregate, err := order.NewOrder(kernel.NewUUID(), cmd.UserID(), cmd.StoreID(), totalPrice, deliveryFee, now)
	if err != nil {
		return nil, err
	}

	contractID, err := h.ledger.DeployEscrow(ctx, aggregate.StoreID(), totalPrice, deliveryFee)
	if err != nil {
		return nil, err
	}
	if err = aggregate.AttachContract(contractID); err != nil {
		return nil, err
	}

	escrowAmount, err := aggregate.EscrowAmount()
	if err != nil {
		return nil, err
	}
	if _, err = h.ledger.FundEscrow(ctx, contractID, escrowAmount); err != nil {
		return nil, err
	}

	if err = h.orders.Add(ctx, aggregate); err != nil {
		classified := h.sequencer.ClassifyStoreFailure(aggregate.ID(), aggregate.Contract(), order.Pending, err)
		h.log.ErrorContext(ctx, "order store write failed after escrow funding",
			slog.String("orderId", aggregate.ID().String()),
			slog.String("contractId", contractID.String()),
			slog.Any("error", err),
		)
		return nil, classified
	}

	publishTransition(ctx, h.events, h.log, aggregate, cmd.UserID(), now)
	return aggregate, nil
}
