package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"courierdispatch/internal/adapters/out/postgres/courierrepo"
	"courierdispatch/internal/core/domain/model/courier"
	"courierdispatch/internal/core/domain/model/kernel"
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

type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
	tracker    *MockAggregateTracker
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}, &courierrepo.WorkingHoursDTO{}))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE working_hours, couriers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = courierrepo.NewGormCourierRepository(suite.db, suite.tracker)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTrip() {
	ctx := context.Background()
	original := suite.newCourier(7, kernel.Bike, []kernel.RegionID{22, 1, 12}, "09:00-11:00", "14:00-18:30")
	suite.tracker.On("TrackAggregate", "courier:7", original).Once()

	suite.Require().NoError(suite.repository.Add(ctx, original))
	restored, err := suite.repository.Get(ctx, 7)

	suite.Require().NoError(err)
	suite.Equal(original.ID(), restored.ID())
	suite.Equal(kernel.Bike, restored.VehicleType())
	suite.Equal([]kernel.RegionID{1, 12, 22}, restored.Regions())
	suite.Equal([]string{"09:00-11:00", "14:00-18:30"}, kernel.FormatTimeWindows(restored.WorkingHours()))
	suite.Nil(restored.CurrentBatch())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAdd_DuplicateID_Fails() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", "courier:1", mock.Anything).Once()

	suite.Require().NoError(suite.repository.Add(ctx, suite.newCourier(1, kernel.Foot, []kernel.RegionID{1}, "09:00-10:00")))
	err := suite.repository.Add(ctx, suite.newCourier(1, kernel.Car, []kernel.RegionID{2}, "09:00-10:00"))

	suite.Require().Error(err)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFoundError() {
	restored, err := suite.repository.Get(context.Background(), 404)

	suite.Nil(restored)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_ReplacesProfileAndBatch() {
	ctx := context.Background()
	c := suite.newCourier(3, kernel.Car, []kernel.RegionID{1, 2}, "09:00-12:00", "13:00-15:00")
	suite.tracker.On("TrackAggregate", "courier:3", c).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, c))

	batchID := kernel.NewUUID()
	suite.Require().NoError(c.ChangeVehicleType(kernel.Foot))
	suite.Require().NoError(c.ChangeRegions([]kernel.RegionID{5}))
	suite.Require().NoError(c.ChangeWorkingHours(suite.windows("20:00-21:00")))
	suite.Require().NoError(c.AttachBatch(batchID))
	suite.Require().NoError(suite.repository.Update(ctx, c))

	restored, err := suite.repository.GetForUpdate(ctx, 3)
	suite.Require().NoError(err)
	suite.Equal(kernel.Foot, restored.VehicleType())
	suite.Equal([]kernel.RegionID{5}, restored.Regions())
	suite.Equal([]string{"20:00-21:00"}, kernel.FormatTimeWindows(restored.WorkingHours()))
	suite.Require().NotNil(restored.CurrentBatch())
	suite.True(restored.CurrentBatch().IsEqual(batchID))

	var hoursCount int64
	suite.Require().NoError(suite.db.Model(&courierrepo.WorkingHoursDTO{}).Count(&hoursCount).Error)
	suite.Equal(int64(1), hoursCount)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_DetachBatch_StoresNull() {
	ctx := context.Background()
	c := suite.newCourier(4, kernel.Car, []kernel.RegionID{1}, "09:00-12:00")
	suite.Require().NoError(c.AttachBatch(kernel.NewUUID()))
	suite.tracker.On("TrackAggregate", "courier:4", c).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, c))

	c.DetachBatch()
	suite.Require().NoError(suite.repository.Update(ctx, c))

	restored, err := suite.repository.Get(ctx, 4)
	suite.Require().NoError(err)
	suite.Nil(restored.CurrentBatch())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsNotFoundError() {
	err := suite.repository.Update(context.Background(), suite.newCourier(99, kernel.Foot, []kernel.RegionID{1}, "09:00-10:00"))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestExistingIDs() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, suite.newCourier(1, kernel.Foot, []kernel.RegionID{1}, "09:00-10:00")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newCourier(3, kernel.Foot, []kernel.RegionID{1}, "09:00-10:00")))

	existing, err := suite.repository.ExistingIDs(ctx, []int64{3, 2, 1})

	suite.Require().NoError(err)
	suite.Equal([]int64{1, 3}, existing)

	none, err := suite.repository.ExistingIDs(ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *CourierRepositoryIntegrationTestSuite) newCourier(
	id int64,
	vehicle kernel.VehicleType,
	regions []kernel.RegionID,
	hours ...string,
) *courier.Courier {
	c, err := courier.NewCourier(id, vehicle, regions, suite.windows(hours...))
	suite.Require().NoError(err)
	return c
}

func (suite *CourierRepositoryIntegrationTestSuite) windows(raw ...string) []kernel.TimeWindow {
	w, err := kernel.ParseTimeWindows(raw)
	suite.Require().NoError(err)
	return w
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
