package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"logistics/internal/core/domain/model/contract"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	args := m.Called(ctx, aggregate, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Claim(ctx context.Context, orderID, agentID kernel.UUID, at time.Time) error {
	args := m.Called(ctx, orderID, agentID, at)
	return args.Error(0)
}

func (m *MockOrderRepository) Decline(ctx context.Context, orderID, agentID kernel.UUID) error {
	args := m.Called(ctx, orderID, agentID)
	return args.Error(0)
}

func (m *MockOrderRepository) Rate(
	ctx context.Context, orderID kernel.UUID, rating int, review *string, at time.Time,
) error {
	args := m.Called(ctx, orderID, rating, review, at)
	return args.Error(0)
}

type MockEscrowLedgerClient struct{ mock.Mock }

func (m *MockEscrowLedgerClient) DeployEscrow(
	ctx context.Context, storeID kernel.UUID, amount, fee kernel.Money,
) (contract.ID, error) {
	args := m.Called(ctx, storeID, amount, fee)
	return args.Get(0).(contract.ID), args.Error(1)
}

func (m *MockEscrowLedgerClient) FundEscrow(
	ctx context.Context, contractID contract.ID, amount kernel.Money,
) (ports.Receipt, error) {
	args := m.Called(ctx, contractID, amount)
	return args.Get(0).(ports.Receipt), args.Error(1)
}

func (m *MockEscrowLedgerClient) AcceptDelivery(
	ctx context.Context, contractID contract.ID, agentID kernel.UUID, fee kernel.Money,
) (ports.Receipt, error) {
	args := m.Called(ctx, contractID, agentID, fee)
	return args.Get(0).(ports.Receipt), args.Error(1)
}

func (m *MockEscrowLedgerClient) ConfirmPickup(ctx context.Context, contractID contract.ID) (ports.Receipt, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).(ports.Receipt), args.Error(1)
}

func (m *MockEscrowLedgerClient) ConfirmDelivery(
	ctx context.Context, contractID contract.ID, customerID, storeID, agentID kernel.UUID,
) (ports.Receipt, error) {
	args := m.Called(ctx, contractID, customerID, storeID, agentID)
	return args.Get(0).(ports.Receipt), args.Error(1)
}

func (m *MockEscrowLedgerClient) Refund(ctx context.Context, contractID contract.ID) (ports.Receipt, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).(ports.Receipt), args.Error(1)
}

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMoney(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount)
	require.NoError(t, err)
	return m
}

func testContractID(t *testing.T) contract.ID {
	t.Helper()
	id, err := contract.NewID("0.0.5005")
	require.NoError(t, err)
	return id
}

// restoreTestOrder builds an order snapshot in the given status, with the
// contract attached and the agent set where the status requires one.
func restoreTestOrder(
	t *testing.T,
	userID, storeID kernel.UUID,
	status order.Status,
	agentID *kernel.UUID,
) *order.Order {
	t.Helper()

	contractID := testContractID(t)
	now := time.Now().UTC()
	timestamps := order.Timestamps{CreatedAt: now}
	if agentID != nil {
		timestamps.AssignedAt = &now
	}

	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), userID, storeID,
		testMoney(t, 10000), testMoney(t, 1500),
		status,
		&contractID, agentID,
		nil, nil, nil,
		timestamps,
	)
	require.NoError(t, err)
	return aggregate
}
