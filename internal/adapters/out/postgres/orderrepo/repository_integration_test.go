package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"courierdispatch/internal/adapters/out/postgres/orderrepo"
	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/core/domain/model/order"
	"courierdispatch/internal/core/ports"
	"courierdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(key string, aggregate any) {
	m.Called(key, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.DeliveryHoursDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE delivery_hours, orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTrip() {
	ctx := context.Background()
	original := suite.newOrder(1, "12.34", 3, "09:00-12:00", "16:00-21:30")

	suite.Require().NoError(suite.repository.Add(ctx, original))
	restored, err := suite.repository.Get(ctx, 1)

	suite.Require().NoError(err)
	suite.Equal(int64(1), restored.ID())
	suite.Equal("12.34", restored.Weight().String())
	suite.Equal(kernel.RegionID(3), restored.Region())
	suite.Equal([]string{"09:00-12:00", "16:00-21:30"}, kernel.FormatTimeWindows(restored.DeliveryHours()))
	suite.False(restored.IsClaimed())
	suite.False(restored.IsCompleted())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", "order:1", original)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFoundError() {
	restored, err := suite.repository.GetForUpdate(context.Background(), 404)

	suite.Nil(restored)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClaimAndComplete() {
	ctx := context.Background()
	o := suite.newOrder(1, "1", 1, "09:00-12:00")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	batchID := kernel.NewUUID()
	suite.Require().NoError(o.Claim(batchID))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	completedAt := time.Date(2021, 1, 10, 10, 33, 1, 0, time.UTC)
	suite.Require().NoError(o.Complete(completedAt))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	restored, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.True(restored.BatchID().IsEqual(batchID))
	suite.Require().NotNil(restored.CompletedAt())
	suite.True(completedAt.Equal(*restored.CompletedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClaimedByAnotherBatch_Conflicts() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(1, "1", 1, "09:00-12:00")))

	first, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)

	suite.Require().NoError(first.Claim(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Claim(kernel.NewUUID()))
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, ports.ErrOrderClaimConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Release_ClearsBatch() {
	ctx := context.Background()
	o := suite.newOrder(1, "1", 1, "09:00-12:00")
	suite.Require().NoError(o.Claim(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.Release())
	suite.Require().NoError(suite.repository.Update(ctx, o))

	restored, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Nil(restored.BatchID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsNotFoundError() {
	err := suite.repository.Update(context.Background(), suite.newOrder(9, "1", 1, "09:00-12:00"))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetUnclaimedInRegions_FiltersClaimedCompletedAndForeign() {
	ctx := context.Background()
	batchID := kernel.NewUUID()

	free := suite.newOrder(5, "1", 1, "09:00-12:00")
	other := suite.newOrder(2, "1", 2, "09:00-12:00")
	foreign := suite.newOrder(3, "1", 9, "09:00-12:00")
	claimed := suite.newOrder(4, "1", 1, "09:00-12:00")
	suite.Require().NoError(claimed.Claim(batchID))
	done := suite.newOrder(1, "1", 1, "09:00-12:00")
	suite.Require().NoError(done.Claim(batchID))
	suite.Require().NoError(done.Complete(time.Now()))

	for _, o := range []*order.Order{free, other, foreign, claimed, done} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	orders, err := suite.repository.GetUnclaimedInRegions(ctx, []kernel.RegionID{1, 2})
	suite.Require().NoError(err)
	suite.Equal([]int64{2, 5}, ids(orders))

	pending, err := suite.repository.GetPendingInBatch(ctx, batchID)
	suite.Require().NoError(err)
	suite.Equal([]int64{4}, ids(pending))

	empty, err := suite.repository.GetUnclaimedInRegions(ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetUnclaimedInRegions_SkipsRowsLockedByOtherTransaction() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(1, "1", 1, "09:00-12:00")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(2, "1", 1, "09:00-12:00")))

	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	locking := orderrepo.NewGormOrderRepository(tx, suite.tracker)
	_, err := locking.GetForUpdate(ctx, 1)
	suite.Require().NoError(err)

	orders, err := suite.repository.GetUnclaimedInRegions(ctx, []kernel.RegionID{1})
	suite.Require().NoError(err)
	suite.Equal([]int64{2}, ids(orders))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestExistingIDs() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(2, "1", 1, "09:00-12:00")))

	existing, err := suite.repository.ExistingIDs(ctx, []int64{1, 2, 3})

	suite.Require().NoError(err)
	suite.Equal([]int64{2}, existing)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(id int64, weight string, region kernel.RegionID, hours ...string) *order.Order {
	windows, err := kernel.ParseTimeWindows(hours)
	suite.Require().NoError(err)

	o, err := order.NewOrder(id, kernel.MustWeight(weight), region, windows)
	suite.Require().NoError(err)
	return o
}

func ids(orders []*order.Order) []int64 {
	out := make([]int64, len(orders))
	for i, o := range orders {
		out[i] = o.ID()
	}
	return out
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
