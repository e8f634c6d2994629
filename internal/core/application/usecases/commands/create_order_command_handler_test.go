package commands_test

import (
	"errors"
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

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	storeID := kernel.NewUUID()
	cmd, _ := commands.NewCreateOrderCommand(userID, storeID, 10000, 1500)
	contractID := testContractID(t)

	repo := new(MockOrderRepository)
	ledger := new(MockEscrowLedgerClient)
	events := new(MockOrderEventPublisher)
	mock.InOrder(
		ledger.On("DeployEscrow", ctx, storeID, testMoney(t, 10000), testMoney(t, 1500)).
			Return(contractID, nil).Once(),
		ledger.On("FundEscrow", ctx, contractID, testMoney(t, 11500)).
			Return(ports.Receipt{ContractID: contractID, Status: "SUCCESS"}, nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		events.On("Publish", ctx, mock.AnythingOfType("ports.OrderEvent")).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(repo, ledger, events, testLogger())
	placed, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, placed)
	assert.Equal(t, order.Pending, placed.Status())
	require.NotNil(t, placed.Contract())
	assert.Equal(t, contractID.String(), placed.Contract().String())
	repo.AssertExpectations(t)
	ledger.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewCreateOrderCommandHandler(
		new(MockOrderRepository), new(MockEscrowLedgerClient), new(MockOrderEventPublisher), testLogger())

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestCreateOrderCommandHandler_Handle_DeployError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), 10000, 1500)

	repo := new(MockOrderRepository)
	ledger := new(MockEscrowLedgerClient)
	deployErr := errs.NewLedgerFailureError("deployContract", errors.New("CONTRACT_REVERT_EXECUTED"))
	ledger.On("DeployEscrow", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(testContractID(t), deployErr).Once()

	h := commands.NewCreateOrderCommandHandler(repo, ledger, new(MockOrderEventPublisher), testLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrLedgerFailure)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	ledger.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_FundError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), 10000, 1500)
	contractID := testContractID(t)

	repo := new(MockOrderRepository)
	ledger := new(MockEscrowLedgerClient)
	fundErr := errs.NewLedgerTimeoutError("fundContract", errors.New("deadline exceeded"))
	mock.InOrder(
		ledger.On("DeployEscrow", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(contractID, nil).Once(),
		ledger.On("FundEscrow", ctx, contractID, mock.Anything).
			Return(ports.Receipt{}, fundErr).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(repo, ledger, new(MockOrderEventPublisher), testLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrLedgerTimeout)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	ledger.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_StoreFailureAfterFunding(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), 10000, 1500)
	contractID := testContractID(t)

	repo := new(MockOrderRepository)
	ledger := new(MockEscrowLedgerClient)
	mock.InOrder(
		ledger.On("DeployEscrow", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(contractID, nil).Once(),
		ledger.On("FundEscrow", ctx, contractID, mock.Anything).
			Return(ports.Receipt{ContractID: contractID, Status: "SUCCESS"}, nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Return(errors.New("connection refused")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(repo, ledger, new(MockOrderEventPublisher), testLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPartialFailure)

	var partial *errs.PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, contractID.String(), partial.ContractID)
	assert.Equal(t, "PENDING", partial.TargetStatus)
	repo.AssertExpectations(t)
	ledger.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_PublishFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), 10000, 1500)
	contractID := testContractID(t)

	repo := new(MockOrderRepository)
	ledger := new(MockEscrowLedgerClient)
	events := new(MockOrderEventPublisher)
	mock.InOrder(
		ledger.On("DeployEscrow", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(contractID, nil).Once(),
		ledger.On("FundEscrow", ctx, contractID, mock.Anything).
			Return(ports.Receipt{ContractID: contractID, Status: "SUCCESS"}, nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		events.On("Publish", ctx, mock.AnythingOfType("ports.OrderEvent")).
			Return(errors.New("broker unavailable")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(repo, ledger, events, testLogger())
	placed, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, placed)
	events.AssertExpectations(t)
}
