package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
)

// publishTransition broadcasts a completed transition to the message broker.
// Publishing is best effort: failures are logged and never fail the operation
// that already committed.
func publishTransition(
	ctx context.Context,
	events ports.OrderEventPublisher,
	log *slog.Logger,
	aggregate *order.Order,
	actorID kernel.UUID,
	at time.Time,
) {
	event := ports.NewOrderEvent(aggregate, actorID.String(), at)
	if err := events.Publish(ctx, event); err != nil {
		log.WarnContext(ctx, "failed to publish order event",
			slog.String("orderId", event.OrderID),
			slog.String("status", event.Status),
			slog.Any("error", err),
		)
	}
}
