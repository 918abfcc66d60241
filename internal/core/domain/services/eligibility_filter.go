package services

import (
	"cmp"
	"slices"

	"courierdispatch/internal/core/domain/model/courier"
	"courierdispatch/internal/core/domain/model/order"
)

type EligibilityFilter struct {
	matcher IntervalMatcher
}

func NewEligibilityFilter() EligibilityFilter {
	return EligibilityFilter{matcher: NewIntervalMatcher()}
}

// FindMatching returns the candidates the courier can take: weight within the
// vehicle's load capacity (inclusive), not completed, in one of the courier's
// regions and deliverable during its working hours. Claim state is not inspected;
// the caller decides which pool is passed in.
//
// The result is sorted by ascending order id. An unmapped vehicle class yields
// kernel.ErrUnknownVehicleType.
func (f EligibilityFilter) FindMatching(c *courier.Courier, candidates []*order.Order) ([]*order.Order, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	capacity, err := c.VehicleType().LoadCapacity()
	if err != nil {
		return nil, err
	}
	working := c.WorkingHours()

	matched := make([]*order.Order, 0, len(candidates))
	for _, o := range candidates {
		if err := o.Validate(); err != nil {
			return nil, err
		}

		switch {
		case o.IsCompleted():
		case !o.Weight().FitsInto(capacity):
		case !c.ServesRegion(o.Region()):
		case !f.matcher.IsSuitable(o, working):
		default:
			matched = append(matched, o)
		}
	}

	slices.SortFunc(matched, func(a, b *order.Order) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return matched, nil
}
