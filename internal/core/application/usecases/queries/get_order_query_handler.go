package queries

import (
	"context"
	"database/sql"
	"errors"

	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order read model from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFoundError when no order with
// the given ID exists.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			store_id,
			total_price,
			delivery_fee,
			status,
			contract_id,
			delivery_agent_id,
			rating,
			review,
			created_at,
			assigned_at,
			picked_up_at,
			in_transit_at,
			delivered_at,
			rated_at,
			cancelled_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		response   GetOrderQueryResponse
		id         uuid.UUID
		userID     uuid.UUID
		storeID    uuid.UUID
		contractID sql.NullString
		agentID    uuid.NullUUID
	)

	err := row.Scan(
		&id,
		&userID,
		&storeID,
		&response.TotalPrice,
		&response.DeliveryFee,
		&response.Status,
		&contractID,
		&agentID,
		&response.Rating,
		&response.Review,
		&response.CreatedAt,
		&response.AssignedAt,
		&response.PickedUpAt,
		&response.InTransitAt,
		&response.DeliveredAt,
		&response.RatedAt,
		&response.CancelledAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.OrderID = id.String()
	response.UserID = userID.String()
	response.StoreID = storeID.String()
	response.ContractID = contractID.String
	if agentID.Valid {
		response.DeliveryAgentID = agentID.UUID.String()
	}

	return response, nil
}
