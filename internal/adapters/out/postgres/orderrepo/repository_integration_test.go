package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/core/domain/model/contract"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies persistence behavior, in
// particular the conditional writes that close concurrency races, against a
// real PostgreSQL instance.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
	suite.repository = orderrepo.NewGormOrderRepository(db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *OrderRepositoryIntegrationTestSuite) newPendingOrder() *order.Order {
	totalPrice, err := kernel.NewMoney(10000)
	suite.Require().NoError(err)
	deliveryFee, err := kernel.NewMoney(1500)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		totalPrice, deliveryFee,
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)

	contractID, err := contract.NewID("0.0.5005")
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AttachContract(contractID))
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	aggregate := suite.newPendingOrder()

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(aggregate))
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(aggregate.UserID(), loaded.UserID())
	suite.Equal(aggregate.StoreID(), loaded.StoreID())
	suite.Equal(int64(10000), loaded.TotalPrice().Amount())
	suite.Equal(int64(1500), loaded.DeliveryFee().Amount())
	suite.Require().NotNil(loaded.Contract())
	suite.Equal("0.0.5005", loaded.Contract().String())
	suite.Nil(loaded.DeliveryAgent())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_Conflict() {
	ctx := context.Background()
	aggregate := suite.newPendingOrder()

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	err := suite.repository.Add(ctx, aggregate)

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_Missing_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_AssignsAgent() {
	ctx := context.Background()
	aggregate := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	agentID := kernel.NewUUID()
	at := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(suite.repository.Claim(ctx, aggregate.ID(), agentID, at))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, loaded.Status())
	suite.Require().NotNil(loaded.DeliveryAgent())
	suite.True(loaded.DeliveryAgent().IsEqual(agentID))
	suite.Require().NotNil(loaded.Timestamps().AssignedAt)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_SecondAgent_AlreadyClaimed() {
	ctx := context.Background()
	aggregate := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	winner := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Claim(ctx, aggregate.ID(), winner, time.Now().UTC()))

	err := suite.repository.Claim(ctx, aggregate.ID(), kernel.NewUUID(), time.Now().UTC())
	suite.Require().ErrorIs(err, errs.ErrAlreadyClaimed)

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(loaded.DeliveryAgent().IsEqual(winner))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_Missing_NotFound() {
	err := suite.repository.Claim(context.Background(), kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestClaim_Concurrent_ExactlyOneWinner races many claimers against one
// pending order and requires a single winner, everyone else AlreadyClaimed.
func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_Concurrent_ExactlyOneWinner() {
	ctx := context.Background()
	aggregate := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	const claimers = 8
	resultsCh := make(chan error, claimers)
	var wg sync.WaitGroup
	for range claimers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resultsCh <- suite.repository.Claim(ctx, aggregate.ID(), kernel.NewUUID(), time.Now().UTC())
		}()
	}
	wg.Wait()
	close(resultsCh)

	var wins, losses int
	for err := range resultsCh {
		switch {
		case err == nil:
			wins++
		default:
			suite.Require().ErrorIs(err, errs.ErrAlreadyClaimed)
			losses++
		}
	}

	suite.Equal(1, wins)
	suite.Equal(claimers-1, losses)

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, loaded.Status())
	suite.NotNil(loaded.DeliveryAgent())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_GuardedByExpectedStatus() {
	ctx := context.Background()
	aggregate := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	agentID := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Claim(ctx, aggregate.ID(), agentID, time.Now().UTC()))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.AcceptDelivery(agentID, time.Now().UTC().Truncate(time.Microsecond)))

	suite.Require().NoError(suite.repository.Update(ctx, loaded, order.Assigned))

	reloaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PickedUp, reloaded.Status())
	suite.Require().NotNil(reloaded.Timestamps().PickedUpAt)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleSnapshot_Conflict() {
	ctx := context.Background()
	aggregate := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	// Another writer claims the order after our snapshot was taken.
	suite.Require().NoError(suite.repository.Claim(ctx, aggregate.ID(), kernel.NewUUID(), time.Now().UTC()))

	userID := aggregate.UserID()
	suite.Require().NoError(aggregate.Cancel(userID, time.Now().UTC()))
	err := suite.repository.Update(ctx, aggregate, order.Pending)

	suite.Require().ErrorIs(err, errs.ErrConflict)

	loaded, loadErr := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(loadErr)
	suite.Equal(order.Assigned, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingRow_NotFound() {
	ctx := context.Background()
	aggregate := suite.newPendingOrder()

	userID := aggregate.UserID()
	suite.Require().NoError(aggregate.Cancel(userID, time.Now().UTC()))
	err := suite.repository.Update(ctx, aggregate, order.Pending)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDecline_AppendsOnce() {
	ctx := context.Background()
	aggregate := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	agentID := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Decline(ctx, aggregate.ID(), agentID))
	suite.Require().NoError(suite.repository.Decline(ctx, aggregate.ID(), agentID))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().Len(loaded.DeclinedAgents(), 1)
	suite.True(loaded.DeclinedAgents()[0].IsEqual(agentID))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDecline_ClaimedOrder_NoOp() {
	ctx := context.Background()
	aggregate := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	suite.Require().NoError(suite.repository.Claim(ctx, aggregate.ID(), kernel.NewUUID(), time.Now().UTC()))

	suite.Require().NoError(suite.repository.Decline(ctx, aggregate.ID(), kernel.NewUUID()))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Empty(loaded.DeclinedAgents())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDecline_Missing_NotFound() {
	err := suite.repository.Decline(context.Background(), kernel.NewUUID(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// deliverOrder walks a fresh order through claim, pickup and delivery so the
// rating tests start from a delivered row.
func (suite *OrderRepositoryIntegrationTestSuite) deliverOrder(ctx context.Context) *order.Order {
	aggregate := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	agentID := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Claim(ctx, aggregate.ID(), agentID, time.Now().UTC()))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(loaded.ConfirmPickup(agentID, now))
	suite.Require().NoError(suite.repository.Update(ctx, loaded, order.Assigned))

	userID := loaded.UserID()
	suite.Require().NoError(loaded.ConfirmDelivery(userID, now))
	suite.Require().NoError(suite.repository.Update(ctx, loaded, order.InTransit))

	return loaded
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRate_PersistsRating() {
	ctx := context.Background()
	delivered := suite.deliverOrder(ctx)

	review := "left at the door as asked"
	at := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(suite.repository.Rate(ctx, delivered.ID(), 4, &review, at))

	reloaded, err := suite.repository.Get(ctx, delivered.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, reloaded.Status())
	suite.Require().NotNil(reloaded.Rating())
	suite.Equal(4, *reloaded.Rating())
	suite.Require().NotNil(reloaded.Review())
	suite.Equal(review, *reloaded.Review())
	suite.Require().NotNil(reloaded.Timestamps().RatedAt)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRate_SecondWrite_Conflict() {
	ctx := context.Background()
	delivered := suite.deliverOrder(ctx)

	suite.Require().NoError(suite.repository.Rate(ctx, delivered.ID(), 5, nil, time.Now().UTC()))

	err := suite.repository.Rate(ctx, delivered.ID(), 1, nil, time.Now().UTC())
	suite.Require().ErrorIs(err, errs.ErrConflict)

	reloaded, loadErr := suite.repository.Get(ctx, delivered.ID())
	suite.Require().NoError(loadErr)
	suite.Require().NotNil(reloaded.Rating())
	suite.Equal(5, *reloaded.Rating())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRate_NotDelivered_Conflict() {
	ctx := context.Background()
	aggregate := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	err := suite.repository.Rate(ctx, aggregate.ID(), 3, nil, time.Now().UTC())
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRate_Missing_NotFound() {
	err := suite.repository.Rate(context.Background(), kernel.NewUUID(), 3, nil, time.Now().UTC())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestRate_Concurrent_ExactlyOneWinner races many raters against one delivered
// order. The status guard alone cannot separate them because rating leaves the
// status at Delivered; the unrated-row condition must pick a single winner.
func (suite *OrderRepositoryIntegrationTestSuite) TestRate_Concurrent_ExactlyOneWinner() {
	ctx := context.Background()
	delivered := suite.deliverOrder(ctx)

	const raters = 8
	resultsCh := make(chan error, raters)
	var wg sync.WaitGroup
	for i := range raters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rating := 1 + i%5
			resultsCh <- suite.repository.Rate(ctx, delivered.ID(), rating, nil, time.Now().UTC())
		}()
	}
	wg.Wait()
	close(resultsCh)

	var wins, losses int
	for err := range resultsCh {
		switch {
		case err == nil:
			wins++
		default:
			suite.Require().ErrorIs(err, errs.ErrConflict)
			losses++
		}
	}

	suite.Equal(1, wins)
	suite.Equal(raters-1, losses)

	reloaded, err := suite.repository.Get(ctx, delivered.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(reloaded.Rating())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
