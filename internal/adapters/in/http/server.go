// Package http exposes the order workflow over a REST API.
// It translates transport concerns (request binding, status codes) into
// application commands and queries, and maps the workflow's error taxonomy
// onto HTTP semantics.
package http

import (
	"errors"
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrder     commands.CreateOrderCommandHandler
	claimContract   commands.ClaimContractCommandHandler
	acceptDelivery  commands.AcceptDeliveryCommandHandler
	confirmPickup   commands.ConfirmPickupCommandHandler
	confirmDelivery commands.ConfirmDeliveryCommandHandler
	rateDelivery    commands.RateDeliveryCommandHandler
	cancelOrder     commands.CancelOrderCommandHandler
	declineContract commands.DeclineContractCommandHandler
	recoverOrder    commands.RecoverOrderCommandHandler

	availableContracts queries.GetAvailableContractsQueryHandler
	agentContracts     queries.GetAgentContractsQueryHandler
	getOrder           queries.GetOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrder commands.CreateOrderCommandHandler,
	claimContract commands.ClaimContractCommandHandler,
	acceptDelivery commands.AcceptDeliveryCommandHandler,
	confirmPickup commands.ConfirmPickupCommandHandler,
	confirmDelivery commands.ConfirmDeliveryCommandHandler,
	rateDelivery commands.RateDeliveryCommandHandler,
	cancelOrder commands.CancelOrderCommandHandler,
	declineContract commands.DeclineContractCommandHandler,
	recoverOrder commands.RecoverOrderCommandHandler,
	availableContracts queries.GetAvailableContractsQueryHandler,
	agentContracts queries.GetAgentContractsQueryHandler,
	getOrder queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrder:        createOrder,
		claimContract:      claimContract,
		acceptDelivery:     acceptDelivery,
		confirmPickup:      confirmPickup,
		confirmDelivery:    confirmDelivery,
		rateDelivery:       rateDelivery,
		cancelOrder:        cancelOrder,
		declineContract:    declineContract,
		recoverOrder:       recoverOrder,
		availableContracts: availableContracts,
		agentContracts:     agentContracts,
		getOrder:           getOrder,
	}
}

// RegisterRoutes binds every endpoint onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:id", s.GetOrder)
	v1.POST("/orders/:id/claim", s.ClaimContract)
	v1.POST("/orders/:id/decline", s.DeclineContract)
	v1.POST("/orders/:id/accept", s.AcceptDelivery)
	v1.POST("/orders/:id/pickup", s.ConfirmPickup)
	v1.POST("/orders/:id/delivery", s.ConfirmDelivery)
	v1.POST("/orders/:id/rating", s.RateDelivery)
	v1.POST("/orders/:id/cancel", s.CancelOrder)
	v1.POST("/orders/:id/recover", s.RecoverOrder)

	v1.GET("/contracts/available", s.GetAvailableContracts)
	v1.GET("/agents/:agentId/contracts", s.GetAgentContracts)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	userID, err := kernel.UUIDFromString(request.UserID)
	if err != nil {
		return writeError(ctx, err)
	}
	storeID, err := kernel.UUIDFromString(request.StoreID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(userID, storeID, request.TotalPrice, request.DeliveryFee)
	if err != nil {
		return writeError(ctx, err)
	}

	placed, err := s.createOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromAggregate(placed))
}

// ClaimContract handles POST /api/v1/orders/:id/claim.
func (s *Server) ClaimContract(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request AgentRequest
	if err = ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}
	agentID, err := kernel.UUIDFromString(request.AgentID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewClaimContractCommand(orderID, agentID)
	if err != nil {
		return writeError(ctx, err)
	}

	claimed, err := s.claimContract.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(claimed))
}

// DeclineContract handles POST /api/v1/orders/:id/decline.
func (s *Server) DeclineContract(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request AgentRequest
	if err = ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}
	agentID, err := kernel.UUIDFromString(request.AgentID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeclineContractCommand(orderID, agentID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.declineContract.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptDelivery handles POST /api/v1/orders/:id/accept.
func (s *Server) AcceptDelivery(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request AgentRequest
	if err = ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}
	agentID, err := kernel.UUIDFromString(request.AgentID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAcceptDeliveryCommand(orderID, agentID)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.acceptDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(updated))
}

// ConfirmPickup handles POST /api/v1/orders/:id/pickup.
func (s *Server) ConfirmPickup(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request AgentRequest
	if err = ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}
	agentID, err := kernel.UUIDFromString(request.AgentID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmPickupCommand(orderID, agentID)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.confirmPickup.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(updated))
}

// ConfirmDelivery handles POST /api/v1/orders/:id/delivery.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request CustomerRequest
	if err = ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}
	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, customerID)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.confirmDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(updated))
}

// RateDelivery handles POST /api/v1/orders/:id/rating.
func (s *Server) RateDelivery(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request RateDeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}
	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRateDeliveryCommand(orderID, customerID, request.Rating, request.Review)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.rateDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(updated))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request ActorRequest
	if err = ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}
	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	cancelled, err := s.cancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(cancelled))
}

// RecoverOrder handles POST /api/v1/orders/:id/recover.
func (s *Server) RecoverOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request RecoverOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromName(request.TargetStatus)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRecoverOrderCommand(orderID, target)
	if err != nil {
		return writeError(ctx, err)
	}

	converged, err := s.recoverOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(converged))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromReadModel(response))
}

// GetAvailableContracts handles GET /api/v1/contracts/available. The agentId
// query parameter is optional; when present, orders that agent declined are
// hidden from the listing.
func (s *Server) GetAvailableContracts(ctx echo.Context) error {
	var excludingAgentID *kernel.UUID
	if raw := ctx.QueryParam("agentId"); raw != "" {
		agentID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return writeError(ctx, err)
		}
		excludingAgentID = &agentID
	}

	query, err := queries.NewGetAvailableContractsQuery(excludingAgentID)
	if err != nil {
		return writeError(ctx, err)
	}

	listing, err := s.availableContracts.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summariesResponse(listing))
}

// GetAgentContracts handles GET /api/v1/agents/:agentId/contracts.
func (s *Server) GetAgentContracts(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("agentId"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetAgentContractsQuery(agentID)
	if err != nil {
		return writeError(ctx, err)
	}

	listing, err := s.agentContracts.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summariesResponse(listing))
}

func pathOrderID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps the workflow's error taxonomy onto HTTP status codes.
// Partial failures keep the contract reference in the payload so operators
// can find the funded contract behind an inconsistent order.
func writeError(ctx echo.Context, err error) error {
	var partial *errs.PartialFailureError
	if errors.As(err, &partial) {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:       http.StatusInternalServerError,
			Message:    "Order may need manual review: " + partial.Error(),
			ContractID: partial.ContractID,
		})
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrAlreadyClaimed),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrLedgerTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, errs.ErrLedgerFailure):
		status = http.StatusBadGateway
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
