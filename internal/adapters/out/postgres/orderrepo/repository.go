package orderrepo

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// Concurrency-sensitive writes run as single conditional UPDATE statements:
// the WHERE clause carries the state the caller observed, and RowsAffected
// tells whether this writer won. No transaction is ever held across a ledger
// call.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
// Returns ConflictError when an order with the same ID already exists.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isDuplicateKey(err) {
			return errs.NewConflictErrorWithCause("orderID", err)
		}
		return err
	}

	return nil
}

// Update saves an existing order, guarded by the status the caller loaded it
// at. Zero rows affected means either the row is gone (ObjectNotFoundError)
// or another writer moved it past the expected status (ConflictError).
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.explainMissedWrite(ctx, aggregate.ID())
	}

	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Claim atomically assigns an agent to a pending, unclaimed order. The single
// conditional UPDATE is what makes concurrent claims safe: the database picks
// exactly one winner and every loser sees zero rows affected.
func (r *GormOrderRepository) Claim(ctx context.Context, orderID, agentID kernel.UUID, at time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := agentID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND delivery_agent_id IS NULL", orderID.Bytes(), order.Pending.String()).
		Updates(map[string]any{
			"status":            order.Assigned.String(),
			"delivery_agent_id": agentID.Bytes(),
			"assigned_at":       at,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&OrderDTO{}).
			Where("id = ?", orderID.Bytes()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", orderID.String())
		}
		return errs.NewAlreadyClaimedError(orderID.String())
	}

	return nil
}

// Decline appends the agent to the order's declined list while the order is
// still pending and unclaimed. Idempotent: a repeated decline, or one that
// lost a race against a claim, affects zero rows and succeeds silently.
func (r *GormOrderRepository) Decline(ctx context.Context, orderID, agentID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := agentID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE orders
		SET declined_agent_ids = array_append(COALESCE(declined_agent_ids, '{}'), ?)
		WHERE id = ?
		  AND status = ?
		  AND delivery_agent_id IS NULL
		  AND NOT (? = ANY(COALESCE(declined_agent_ids, '{}')))
	`, agentID.String(), orderID.Bytes(), order.Pending.String(), agentID.String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&OrderDTO{}).
			Where("id = ?", orderID.Bytes()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", orderID.String())
		}
	}

	return nil
}

// Rate writes the rating onto a delivered, unrated order. The rating does not
// change the order's status, so the status guard alone cannot close the race
// between two raters; the `rating IS NULL` condition is what picks the single
// winner, the same way Claim's `delivery_agent_id IS NULL` does.
func (r *GormOrderRepository) Rate(
	ctx context.Context, orderID kernel.UUID, rating int, review *string, at time.Time,
) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND rating IS NULL", orderID.Bytes(), order.Delivered.String()).
		Updates(map[string]any{
			"rating":   rating,
			"review":   review,
			"rated_at": at,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&OrderDTO{}).
			Where("id = ?", orderID.Bytes()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", orderID.String())
		}
		return errs.NewConflictError("order is already rated or not delivered")
	}

	return nil
}

// explainMissedWrite distinguishes a vanished row from a concurrent update
// after a conditional write affected zero rows.
func (r *GormOrderRepository) explainMissedWrite(ctx context.Context, orderID kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", orderID.Bytes()).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("order", orderID.String())
	}
	return errs.NewConflictError("order status changed concurrently")
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
