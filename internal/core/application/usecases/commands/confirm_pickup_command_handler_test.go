package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmPickupCommandHandler_Handle_FromAssigned(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	aggregate := restoreTestOrder(t, kernel.NewUUID(), kernel.NewUUID(), order.Assigned, &agentID)
	cmd, _ := commands.NewConfirmPickupCommand(aggregate.ID(), agentID)

	repo := new(MockOrderRepository)
	ledger := new(MockEscrowLedgerClient)
	events := new(MockOrderEventPublisher)
	mock.InOrder(
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		ledger.On("ConfirmPickup", ctx, *aggregate.Contract()).
			Return(ports.Receipt{Status: "SUCCESS"}, nil).Once(),
		repo.On("Update", ctx, aggregate, order.Assigned).Return(nil).Once(),
		events.On("Publish", ctx, mock.AnythingOfType("ports.OrderEvent")).Return(nil).Once(),
	)

	h := commands.NewConfirmPickupCommandHandler(repo, ledger, events, testLogger())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InTransit, result.Status())
	repo.AssertExpectations(t)
	ledger.AssertExpectations(t)
}

func TestConfirmPickupCommandHandler_Handle_FromPickedUp(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	aggregate := restoreTestOrder(t, kernel.NewUUID(), kernel.NewUUID(), order.PickedUp, &agentID)
	cmd, _ := commands.NewConfirmPickupCommand(aggregate.ID(), agentID)

	repo := new(MockOrderRepository)
	ledger := new(MockEscrowLedgerClient)
	events := new(MockOrderEventPublisher)
	mock.InOrder(
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		ledger.On("ConfirmPickup", ctx, *aggregate.Contract()).
			Return(ports.Receipt{Status: "SUCCESS"}, nil).Once(),
		repo.On("Update", ctx, aggregate, order.PickedUp).Return(nil).Once(),
		events.On("Publish", ctx, mock.AnythingOfType("ports.OrderEvent")).Return(nil).Once(),
	)

	h := commands.NewConfirmPickupCommandHandler(repo, ledger, events, testLogger())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InTransit, result.Status())
}

func TestConfirmPickupCommandHandler_Handle_InvalidState(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	aggregate := restoreTestOrder(t, kernel.NewUUID(), kernel.NewUUID(), order.InTransit, &agentID)
	cmd, _ := commands.NewConfirmPickupCommand(aggregate.ID(), agentID)

	repo := new(MockOrderRepository)
	ledger := new(MockEscrowLedgerClient)
	repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	h := commands.NewConfirmPickupCommandHandler(repo, ledger, new(MockOrderEventPublisher), testLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	ledger.AssertNotCalled(t, "ConfirmPickup", mock.Anything, mock.Anything)
}

func TestConfirmPickupCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, _ := commands.NewConfirmPickupCommand(orderID, kernel.NewUUID())

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, orderID).
		Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once()

	h := commands.NewConfirmPickupCommandHandler(
		repo, new(MockEscrowLedgerClient), new(MockOrderEventPublisher), testLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
