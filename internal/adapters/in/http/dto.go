package http

import (
	"time"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/contract"
	"logistics/internal/core/domain/model/order"
)

// CreateOrderRequest is the payload for placing a new order.
type CreateOrderRequest struct {
	UserID      string `json:"userId"`
	StoreID     string `json:"storeId"`
	TotalPrice  int64  `json:"totalPrice"`
	DeliveryFee int64  `json:"deliveryFee"`
}

// AgentRequest identifies the delivery agent performing an action.
type AgentRequest struct {
	AgentID string `json:"agentId"`
}

// CustomerRequest identifies the customer performing an action.
type CustomerRequest struct {
	CustomerID string `json:"customerId"`
}

// ActorRequest identifies the party performing an action that more than one
// role is allowed to take, such as cancelling a pending order.
type ActorRequest struct {
	ActorID string `json:"actorId"`
}

// RateDeliveryRequest is the payload for rating a completed delivery.
type RateDeliveryRequest struct {
	CustomerID string  `json:"customerId"`
	Rating     int     `json:"rating"`
	Review     *string `json:"review,omitempty"`
}

// RecoverOrderRequest names the status an inconsistent order should be
// converged to after a partial failure.
type RecoverOrderRequest struct {
	TargetStatus string `json:"targetStatus"`
}

// OrderResponse is the full order representation returned by every endpoint
// that reads or mutates a single order.
type OrderResponse struct {
	OrderID         string     `json:"orderId"`
	UserID          string     `json:"userId"`
	StoreID         string     `json:"storeId"`
	TotalPrice      int64      `json:"totalPrice"`
	DeliveryFee     int64      `json:"deliveryFee"`
	Status          string     `json:"status"`
	ContractID      string     `json:"contractId,omitempty"`
	DeliveryAgentID string     `json:"deliveryAgentId,omitempty"`
	Rating          *int       `json:"rating,omitempty"`
	Review          *string    `json:"review,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	AssignedAt      *time.Time `json:"assignedAt,omitempty"`
	PickedUpAt      *time.Time `json:"pickedUpAt,omitempty"`
	InTransitAt     *time.Time `json:"inTransitAt,omitempty"`
	DeliveredAt     *time.Time `json:"deliveredAt,omitempty"`
	RatedAt         *time.Time `json:"ratedAt,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
}

// ContractSummaryResponse is one entry of a marketplace or dashboard listing.
type ContractSummaryResponse struct {
	OrderID     string    `json:"orderId"`
	ContractID  string    `json:"contractId,omitempty"`
	StoreID     string    `json:"storeId"`
	TotalPrice  int64     `json:"totalPrice"`
	DeliveryFee int64     `json:"deliveryFee"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ContractListingResponse wraps a listing with its size.
type ContractListingResponse struct {
	Contracts []ContractSummaryResponse `json:"contracts"`
	Count     int                       `json:"count"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	ContractID string `json:"contractId,omitempty"`
}

func orderFromAggregate(aggregate *order.Order) OrderResponse {
	stamps := aggregate.Timestamps()

	response := OrderResponse{
		OrderID:     aggregate.ID().String(),
		UserID:      aggregate.UserID().String(),
		StoreID:     aggregate.StoreID().String(),
		TotalPrice:  aggregate.TotalPrice().Amount(),
		DeliveryFee: aggregate.DeliveryFee().Amount(),
		Status:      aggregate.Status().String(),
		Rating:      aggregate.Rating(),
		Review:      aggregate.Review(),
		CreatedAt:   stamps.CreatedAt,
		AssignedAt:  timePtr(stamps.AssignedAt),
		PickedUpAt:  timePtr(stamps.PickedUpAt),
		InTransitAt: timePtr(stamps.InTransitAt),
		DeliveredAt: timePtr(stamps.DeliveredAt),
		RatedAt:     timePtr(stamps.RatedAt),
		CancelledAt: timePtr(stamps.CancelledAt),
	}

	if contractID := aggregate.Contract(); contractID != nil {
		response.ContractID = contractID.String()
	}
	if agentID := aggregate.DeliveryAgent(); agentID != nil {
		response.DeliveryAgentID = agentID.String()
	}

	return response
}

func orderFromReadModel(model queries.GetOrderQueryResponse) OrderResponse {
	return OrderResponse{
		OrderID:         model.OrderID,
		UserID:          model.UserID,
		StoreID:         model.StoreID,
		TotalPrice:      model.TotalPrice,
		DeliveryFee:     model.DeliveryFee,
		Status:          model.Status,
		ContractID:      model.ContractID,
		DeliveryAgentID: model.DeliveryAgentID,
		Rating:          model.Rating,
		Review:          model.Review,
		CreatedAt:       model.CreatedAt,
		AssignedAt:      model.AssignedAt,
		PickedUpAt:      model.PickedUpAt,
		InTransitAt:     model.InTransitAt,
		DeliveredAt:     model.DeliveredAt,
		RatedAt:         model.RatedAt,
		CancelledAt:     model.CancelledAt,
	}
}

func timePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := *t
	return &value
}

func summariesResponse(listing []contract.Summary) ContractListingResponse {
	contracts := make([]ContractSummaryResponse, 0, len(listing))
	for _, summary := range listing {
		contracts = append(contracts, ContractSummaryResponse{
			OrderID:     summary.OrderID,
			ContractID:  summary.ContractID,
			StoreID:     summary.StoreID,
			TotalPrice:  summary.TotalPrice,
			DeliveryFee: summary.DeliveryFee,
			Status:      summary.Status,
			CreatedAt:   summary.CreatedAt,
		})
	}

	return ContractListingResponse{Contracts: contracts, Count: len(contracts)}
}
