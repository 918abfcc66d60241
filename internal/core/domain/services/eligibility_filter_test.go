package services_test

import (
	"testing"
	"time"

	"courierdispatch/internal/core/domain/model/courier"
	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/core/domain/model/order"
	"courierdispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibilityFilter_FindMatching(t *testing.T) {
	filter := services.NewEligibilityFilter()
	c := footCourier(t, 1)

	tests := []struct {
		name    string
		orders  []*order.Order
		wantIDs []int64
	}{
		{
			name:    "weight equal to capacity is included",
			orders:  []*order.Order{newOrder(t, 1, "10", 1, "09:00-12:00")},
			wantIDs: []int64{1},
		},
		{
			name:    "weight above capacity is excluded",
			orders:  []*order.Order{newOrder(t, 1, "10.01", 1, "09:00-12:00")},
			wantIDs: []int64{},
		},
		{
			name:    "foreign region is excluded",
			orders:  []*order.Order{newOrder(t, 1, "4", 2, "09:00-12:00")},
			wantIDs: []int64{},
		},
		{
			name:    "delivery outside working hours is excluded",
			orders:  []*order.Order{newOrder(t, 1, "4", 1, "13:00-14:00", "21:00-22:00")},
			wantIDs: []int64{},
		},
		{
			name: "result is sorted by id",
			orders: []*order.Order{
				newOrder(t, 9, "1", 1, "10:00-11:00"),
				newOrder(t, 3, "2", 1, "19:00-20:00"),
				newOrder(t, 5, "3", 1, "08:00-09:30"),
			},
			wantIDs: []int64{3, 5, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := filter.FindMatching(c, tt.orders)

			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, orderIDs(matched))
		})
	}
}

func TestEligibilityFilter_FindMatching_SkipsCompleted(t *testing.T) {
	filter := services.NewEligibilityFilter()
	c := footCourier(t, 1)
	done := newOrder(t, 1, "4", 1, "09:00-12:00")
	require.NoError(t, done.Claim(kernel.NewUUID()))
	require.NoError(t, done.Complete(time.Now()))

	matched, err := filter.FindMatching(c, []*order.Order{done})

	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestEligibilityFilter_FindMatching_CapacityPerVehicle(t *testing.T) {
	filter := services.NewEligibilityFilter()
	heavy := newOrder(t, 1, "15", 1, "09:00-12:00")
	heaviest := newOrder(t, 2, "50", 1, "09:00-12:00")

	for vehicle, want := range map[kernel.VehicleType][]int64{
		kernel.Foot: {},
		kernel.Bike: {1},
		kernel.Car:  {1, 2},
	} {
		t.Run(vehicle.String(), func(t *testing.T) {
			c, err := courier.NewCourier(1, vehicle, []kernel.RegionID{1}, windows(t, "09:00-12:00"))
			require.NoError(t, err)

			matched, err := filter.FindMatching(c, []*order.Order{heaviest, heavy})

			require.NoError(t, err)
			assert.Equal(t, want, orderIDs(matched))
		})
	}
}

func TestEligibilityFilter_FindMatching_InvalidInput(t *testing.T) {
	filter := services.NewEligibilityFilter()

	_, err := filter.FindMatching(nil, nil)
	require.ErrorIs(t, err, courier.ErrCourierIsNotConstructed)

	_, err = filter.FindMatching(footCourier(t, 1), []*order.Order{{}})
	require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
}
