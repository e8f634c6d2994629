// Package ports defines the outbound contracts of the application core.
// These interfaces establish boundaries between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// The store is the single source of truth for off-chain order state. Writes
// that race with other actors use compare-and-set semantics: the caller names
// the state it observed, and the write fails with a conflict when the stored
// row moved on in the meantime.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// Returns ConflictError if an order with the same identifier already exists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, guarded by the
	// status the caller loaded the aggregate at. The write applies only while
	// the stored row is still in expected status; otherwise ConflictError is
	// returned and the caller should re-read and retry or give up.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Claim atomically assigns a delivery agent to a pending, unclaimed order.
	// Exactly one concurrent caller wins; every other caller receives
	// AlreadyClaimedError. Returns ObjectNotFoundError when the order does
	// not exist.
	Claim(ctx context.Context, orderID kernel.UUID, agentID kernel.UUID, at time.Time) error

	// Decline records that an agent passed on a pending, unclaimed order so
	// the marketplace stops offering it to them. Idempotent per agent.
	Decline(ctx context.Context, orderID kernel.UUID, agentID kernel.UUID) error

	// Rate atomically writes the customer's rating onto a delivered, unrated
	// order. Exactly one concurrent caller wins; every other caller receives
	// ConflictError. Returns ObjectNotFoundError when the order does not exist.
	Rate(ctx context.Context, orderID kernel.UUID, rating int, review *string, at time.Time) error
}
