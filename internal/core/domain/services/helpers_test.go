package services_test

import (
	"testing"

	"courierdispatch/internal/core/domain/model/courier"
	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func windows(t *testing.T, raw ...string) []kernel.TimeWindow {
	t.Helper()
	w, err := kernel.ParseTimeWindows(raw)
	require.NoError(t, err)
	return w
}

func window(t *testing.T, raw string) kernel.TimeWindow {
	t.Helper()
	w, err := kernel.ParseTimeWindow(raw)
	require.NoError(t, err)
	return w
}

// footCourier serves region 1 during 09:00-12:00 and 18:00-20:00.
func footCourier(t *testing.T, id int64) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(id, kernel.Foot, []kernel.RegionID{1}, windows(t, "09:00-12:00", "18:00-20:00"))
	require.NoError(t, err)
	return c
}

func newOrder(t *testing.T, id int64, weight string, region kernel.RegionID, hours ...string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(id, kernel.MustWeight(weight), region, windows(t, hours...))
	require.NoError(t, err)
	return o
}

func orderIDs(orders []*order.Order) []int64 {
	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID()
	}
	return ids
}
