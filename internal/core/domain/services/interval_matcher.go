package services

import (
	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/core/domain/model/order"
)

type IntervalMatcher struct{}

func NewIntervalMatcher() IntervalMatcher {
	return IntervalMatcher{}
}

// Overlaps reports whether the delivery window D=(ds,de) intersects any working
// window W=(ws,we):
//
//	ws < ds < we        delivery starts inside the shift
//	ws < de < we        delivery ends inside the shift
//	ds <= ws, de >= we  delivery covers the whole shift
//
// Windows that only touch at an endpoint do not overlap.
func (IntervalMatcher) Overlaps(working []kernel.TimeWindow, delivery kernel.TimeWindow) bool {
	ds, de := delivery.StartMinute(), delivery.EndMinute()
	for _, w := range working {
		ws, we := w.StartMinute(), w.EndMinute()
		switch {
		case ws < ds && ds < we:
			return true
		case ws < de && de < we:
			return true
		case ds <= ws && de >= we:
			return true
		}
	}
	return false
}

// IsSuitable reports whether at least one of the order's delivery windows overlaps the working windows.
func (m IntervalMatcher) IsSuitable(o *order.Order, working []kernel.TimeWindow) bool {
	for _, d := range o.DeliveryHours() {
		if m.Overlaps(working, d) {
			return true
		}
	}
	return false
}
