// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database rows
// and the compare-and-set writes the workflow's concurrency rules rely on.
package orderrepo

import (
	"time"

	"logistics/internal/core/domain/model/contract"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored by its wire name so rows stay readable; per-transition
// timestamps preserve the audit trail; declined agent IDs live in a text array
// filtered directly in marketplace queries.
type OrderDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;index"`
	StoreID          uuid.UUID `gorm:"type:uuid;index"`
	TotalPrice       int64
	DeliveryFee      int64
	Status           string         `gorm:"type:varchar(16);index"`
	ContractID       *string        `gorm:"type:varchar(64)"`
	DeliveryAgentID  *uuid.UUID     `gorm:"type:uuid;index"`
	Rating           *int
	Review           *string
	DeclinedAgentIDs pq.StringArray `gorm:"type:text[]"`
	CreatedAt        time.Time
	AssignedAt       *time.Time
	PickedUpAt       *time.Time
	InTransitAt      *time.Time
	DeliveredAt      *time.Time
	RatedAt          *time.Time
	CancelledAt      *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var contractID *string
	if id := aggregate.Contract(); id != nil {
		value := id.String()
		contractID = &value
	}

	var agentID *uuid.UUID
	if id := aggregate.DeliveryAgent(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	var declined pq.StringArray
	for _, id := range aggregate.DeclinedAgents() {
		declined = append(declined, id.String())
	}

	timestamps := aggregate.Timestamps()
	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		UserID:           aggregate.UserID().Bytes(),
		StoreID:          aggregate.StoreID().Bytes(),
		TotalPrice:       aggregate.TotalPrice().Amount(),
		DeliveryFee:      aggregate.DeliveryFee().Amount(),
		Status:           aggregate.Status().String(),
		ContractID:       contractID,
		DeliveryAgentID:  agentID,
		Rating:           aggregate.Rating(),
		Review:           aggregate.Review(),
		DeclinedAgentIDs: declined,
		CreatedAt:        timestamps.CreatedAt,
		AssignedAt:       timestamps.AssignedAt,
		PickedUpAt:       timestamps.PickedUpAt,
		InTransitAt:      timestamps.InTransitAt,
		DeliveredAt:      timestamps.DeliveredAt,
		RatedAt:          timestamps.RatedAt,
		CancelledAt:      timestamps.CancelledAt,
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, which re-validates the stored state against the invariants.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	totalPrice, err := kernel.MoneyFromMinorUnits(dto.TotalPrice)
	if err != nil {
		return nil, err
	}
	deliveryFee, err := kernel.MoneyFromMinorUnits(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromName(dto.Status)
	if err != nil {
		return nil, err
	}

	var contractID *contract.ID
	if dto.ContractID != nil {
		parsed, contractErr := contract.NewID(*dto.ContractID)
		if contractErr != nil {
			return nil, contractErr
		}
		contractID = &parsed
	}

	var agentID *kernel.UUID
	if dto.DeliveryAgentID != nil {
		parsed, agentErr := kernel.UUIDFromBytes((*dto.DeliveryAgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &parsed
	}

	declined := make([]kernel.UUID, 0, len(dto.DeclinedAgentIDs))
	for _, raw := range dto.DeclinedAgentIDs {
		parsed, declinedErr := kernel.UUIDFromString(raw)
		if declinedErr != nil {
			return nil, declinedErr
		}
		declined = append(declined, parsed)
	}
	if len(declined) == 0 {
		declined = nil
	}

	return order.RestoreOrder(
		id, userID, storeID,
		totalPrice, deliveryFee,
		status,
		contractID, agentID,
		dto.Rating, dto.Review,
		declined,
		order.Timestamps{
			CreatedAt:   dto.CreatedAt,
			AssignedAt:  dto.AssignedAt,
			PickedUpAt:  dto.PickedUpAt,
			InTransitAt: dto.InTransitAt,
			DeliveredAt: dto.DeliveredAt,
			RatedAt:     dto.RatedAt,
			CancelledAt: dto.CancelledAt,
		},
	)
}
