package commands

import (
	"errors"
	"fmt"

	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/core/domain/model/order"
	"courierdispatch/internal/pkg/errs"
	"courierdispatch/internal/pkg/guard"
)

var (
	ErrCreateOrdersCommandIsNotConstructed = errors.New(
		"CreateOrdersCommand must be created via NewCreateOrdersCommand constructor",
	)
	ErrOrdersAreRequired = errs.NewValueIsRequiredError("data")
)

// OrderDraft is one order of a bulk registration request, as received.
type OrderDraft struct {
	ID            int64
	Weight        float64
	Region        int64
	DeliveryHours []string
}

// CreateOrdersCommand registers several orders at once. Either all of them are
// created or none.
type CreateOrdersCommand struct {
	orders []*order.Order

	guard guard.ConstructorGuard
}

func NewCreateOrdersCommand(drafts []OrderDraft) (CreateOrdersCommand, error) {
	if len(drafts) == 0 {
		return CreateOrdersCommand{}, ErrOrdersAreRequired
	}

	var (
		orders  = make([]*order.Order, 0, len(drafts))
		seen    = make(map[int64]struct{}, len(drafts))
		invalid []int64
		causes  []error
	)
	for _, d := range drafts {
		o, err := draftToOrder(d)
		if err == nil {
			if _, dup := seen[d.ID]; dup {
				err = fmt.Errorf("order %d is repeated in the request", d.ID)
			}
		}
		seen[d.ID] = struct{}{}
		if err != nil {
			invalid = append(invalid, d.ID)
			causes = append(causes, err)
			continue
		}
		orders = append(orders, o)
	}

	if len(invalid) > 0 {
		return CreateOrdersCommand{}, &InvalidItemsError{Collection: "orders", IDs: invalid, Cause: errors.Join(causes...)}
	}

	return CreateOrdersCommand{orders: orders, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrdersCommandIsNotConstructed)
}

func (c CreateOrdersCommand) Orders() []*order.Order {
	return c.orders
}

func (c CreateOrdersCommand) IDs() []int64 {
	ids := make([]int64, len(c.orders))
	for i, o := range c.orders {
		ids[i] = o.ID()
	}
	return ids
}

func draftToOrder(d OrderDraft) (*order.Order, error) {
	weight, weightErr := kernel.WeightFromFloat(d.Weight)
	region, regionErr := kernel.NewRegionID(d.Region)
	hours, hoursErr := kernel.ParseTimeWindows(d.DeliveryHours)
	if err := errors.Join(weightErr, regionErr, hoursErr); err != nil {
		return nil, fmt.Errorf("order %d: %w", d.ID, err)
	}

	o, err := order.NewOrder(d.ID, weight, region, hours)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", d.ID, err)
	}
	return o, nil
}
