package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/order"
)

// OrderEvent describes a completed order transition for downstream consumers
// (notifications, analytics, settlement audit).
type OrderEvent struct {
	OrderID    string    `json:"orderId"`
	ContractID string    `json:"contractId,omitempty"`
	Status     string    `json:"status"`
	ActorID    string    `json:"actorId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewOrderEvent builds an event snapshot from an order after a transition.
func NewOrderEvent(aggregate *order.Order, actorID string, at time.Time) OrderEvent {
	event := OrderEvent{
		OrderID:    aggregate.ID().String(),
		Status:     aggregate.Status().String(),
		ActorID:    actorID,
		OccurredAt: at,
	}
	if contractID := aggregate.Contract(); contractID != nil {
		event.ContractID = contractID.String()
	}
	return event
}

// OrderEventPublisher defines the contract for broadcasting order transitions
// to the message broker. Publishing is best effort: a failed publish must not
// fail the workflow operation that produced the event.
type OrderEventPublisher interface {
	// Publish sends the event to the broker, keyed by the order's new status.
	Publish(ctx context.Context, event OrderEvent) error
}
