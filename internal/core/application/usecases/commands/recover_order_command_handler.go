package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
)

// RecoverOrderCommandHandler reconciles an order after a partial failure.
//
// Recovery is store-only: the ledger already executed the contract function
// for the target status, so the handler re-applies just the missing store
// write via the aggregate's idempotent convergence. Converging to the current
// status is a no-op success, making retries safe.
//
// An order whose initial store write never landed cannot be recovered here
// because there is no row to converge; that case stays with manual review.
type RecoverOrderCommandHandler struct {
	orders ports.OrderRepository
	events ports.OrderEventPublisher
	log    *slog.Logger
}

// NewRecoverOrderCommandHandler creates a handler for reconciliation.
func NewRecoverOrderCommandHandler(
	orders ports.OrderRepository,
	events ports.OrderEventPublisher,
	log *slog.Logger,
) RecoverOrderCommandHandler {
	return RecoverOrderCommandHandler{
		orders: orders,
		events: events,
		log:    log,
	}
}

// Handle processes the recovery command and returns the converged order.
func (h RecoverOrderCommandHandler) Handle(ctx context.Context, cmd RecoverOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	loadedStatus := aggregate.Status()

	now := time.Now().UTC()
	if err = aggregate.Converge(cmd.Target(), now); err != nil {
		return nil, err
	}

	if aggregate.Status() == loadedStatus {
		return aggregate, nil
	}

	if err = h.orders.Update(ctx, aggregate, loadedStatus); err != nil {
		return nil, err
	}

	h.log.InfoContext(ctx, "order converged after partial failure",
		slog.String("orderId", aggregate.ID().String()),
		slog.String("from", loadedStatus.String()),
		slog.String("to", aggregate.Status().String()),
	)

	publishTransition(ctx, h.events, h.log, aggregate, aggregate.UserID(), now)
	return aggregate, nil
}
