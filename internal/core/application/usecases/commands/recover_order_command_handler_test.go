package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecoverOrderCommandHandler_Handle_ConvergesStoreStatus(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	aggregate := restoreTestOrder(t, kernel.NewUUID(), kernel.NewUUID(), order.InTransit, &agentID)
	cmd, _ := commands.NewRecoverOrderCommand(aggregate.ID(), order.Delivered)

	repo := new(MockOrderRepository)
	events := new(MockOrderEventPublisher)
	mock.InOrder(
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", ctx, aggregate, order.InTransit).Return(nil).Once(),
		events.On("Publish", ctx, mock.AnythingOfType("ports.OrderEvent")).Return(nil).Once(),
	)

	h := commands.NewRecoverOrderCommandHandler(repo, events, testLogger())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, result.Status())
	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestRecoverOrderCommandHandler_Handle_AlreadyConverged(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	aggregate := restoreTestOrder(t, kernel.NewUUID(), kernel.NewUUID(), order.Delivered, &agentID)
	cmd, _ := commands.NewRecoverOrderCommand(aggregate.ID(), order.Delivered)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	h := commands.NewRecoverOrderCommandHandler(repo, new(MockOrderEventPublisher), testLogger())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, result.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecoverOrderCommandHandler_Handle_IllegalConvergence(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreTestOrder(t, kernel.NewUUID(), kernel.NewUUID(), order.Pending, nil)
	cmd, _ := commands.NewRecoverOrderCommand(aggregate.ID(), order.Delivered)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	h := commands.NewRecoverOrderCommandHandler(repo, new(MockOrderEventPublisher), testLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestRecoverOrderCommandHandler_Handle_MissingOrder(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, _ := commands.NewRecoverOrderCommand(orderID, order.Cancelled)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, orderID).
		Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once()

	h := commands.NewRecoverOrderCommandHandler(repo, new(MockOrderEventPublisher), testLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewRecoverOrderCommand_InvalidTarget(t *testing.T) {
	_, err := commands.NewRecoverOrderCommand(kernel.NewUUID(), order.Unknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
