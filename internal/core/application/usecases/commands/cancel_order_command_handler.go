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

// CancelOrderCommandHandler handles cancellation of pending orders.
//
// Executes the refund contract function on the ledger, returning the escrowed
// funds to the customer, then moves the order to Cancelled in the store.
// Cancellation is only possible while the order is Pending; the compare-and-set
// store write closes the race against a concurrent claim.
type CancelOrderCommandHandler struct {
	orders    ports.OrderRepository
	ledger    ports.EscrowLedgerClient
	events    ports.OrderEventPublisher
	sequencer services.EscrowSequencer
	log       *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for cancellation operations.
func NewCancelOrderCommandHandler(
	orders ports.OrderRepository,
	ledger ports.EscrowLedgerClient,
	events ports.OrderEventPublisher,
	log *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		orders:    orders,
		ledger:    ledger,
		events:    events,
		sequencer: services.NewEscrowSequencer(),
		log:       log,
	}
}

// Handle processes the cancellation and returns the cancelled order.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	loadedStatus := aggregate.Status()

	now := time.Now().UTC()
	if err = aggregate.Cancel(cmd.ActorID(), now); err != nil {
		return nil, err
	}

	contractID := aggregate.Contract()
	if contractID == nil {
		return nil, errs.NewConflictError("order has no escrow contract attached")
	}

	if _, err = h.ledger.Refund(ctx, *contractID); err != nil {
		return nil, err
	}

	if err = h.orders.Update(ctx, aggregate, loadedStatus); err != nil {
		classified := h.sequencer.ClassifyStoreFailure(aggregate.ID(), contractID, aggregate.Status(), err)
		h.log.ErrorContext(ctx, "order store write failed after escrow refund",
			slog.String("orderId", aggregate.ID().String()),
			slog.String("contractId", contractID.String()),
			slog.Any("error", classified),
		)
		return nil, classified
	}

	publishTransition(ctx, h.events, h.log, aggregate, cmd.ActorID(), now)
	return aggregate, nil
}
