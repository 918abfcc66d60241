package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/pkg/errs"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrDeliveryHoursAreRequired = errs.NewValueIsRequiredError("delivery_hours")
	ErrOrderAlreadyClaimed      = errors.New("order is already claimed by a batch")
	ErrOrderAlreadyCompleted    = errors.New("order is already completed")
)

type Order struct {
	id int64

	weight kernel.Weight

	region kernel.RegionID

	deliveryHours []kernel.TimeWindow

	batchID *kernel.UUID

	completedAt *time.Time

	isConstructed bool
}

func NewOrder(id int64, weight kernel.Weight, region kernel.RegionID, deliveryHours []kernel.TimeWindow) (*Order, error) {
	return RestoreOrder(id, weight, region, deliveryHours, nil, nil)
}

// RestoreOrder rebuilds an order loaded from storage together with its claim and completion state.
func RestoreOrder(
	id int64,
	weight kernel.Weight,
	region kernel.RegionID,
	deliveryHours []kernel.TimeWindow,
	batchID *kernel.UUID,
	completedAt *time.Time,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setWeight(weight),
		order.setRegion(region),
		order.setDeliveryHours(deliveryHours),
		order.setBatch(batchID),
	); err != nil {
		return nil, err
	}
	if completedAt != nil {
		at := *completedAt
		order.completedAt = &at
	}

	return order, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() int64 {
	return o.id
}

func (o *Order) Weight() kernel.Weight {
	return o.weight
}

func (o *Order) Region() kernel.RegionID {
	return o.region
}

func (o *Order) DeliveryHours() []kernel.TimeWindow {
	return slices.Clone(o.deliveryHours)
}

// BatchID returns the claiming batch, or nil for an unclaimed order.
func (o *Order) BatchID() *kernel.UUID {
	if o.batchID == nil {
		return nil
	}
	id := *o.batchID
	return &id
}

func (o *Order) CompletedAt() *time.Time {
	if o.completedAt == nil {
		return nil
	}
	at := *o.completedAt
	return &at
}

func (o *Order) IsCompleted() bool {
	return o.completedAt != nil
}

func (o *Order) IsClaimed() bool {
	return o.batchID != nil
}

func (o *Order) IsInFlight() bool {
	return o.IsClaimed() && !o.IsCompleted()
}

// Claim binds an open, unclaimed order to a batch.
func (o *Order) Claim(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	if o.IsCompleted() {
		return ErrOrderAlreadyCompleted
	}
	if o.IsClaimed() {
		return ErrOrderAlreadyClaimed
	}

	o.batchID = &batchID
	return nil
}

// Release returns an open order to the unclaimed pool.
func (o *Order) Release() error {
	if o.IsCompleted() {
		return ErrOrderAlreadyCompleted
	}
	o.batchID = nil
	return nil
}

func (o *Order) Complete(at time.Time) error {
	if o.IsCompleted() {
		return ErrOrderAlreadyCompleted
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("complete_time")
	}
	o.completedAt = &at
	return nil
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%d is not greater than 0", id))
	}
	o.id = id
	return nil
}

func (o *Order) setWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}
	o.weight = weight
	return nil
}

func (o *Order) setRegion(region kernel.RegionID) error {
	if region <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("region", fmt.Errorf("%d is not greater than 0", region))
	}
	o.region = region
	return nil
}

func (o *Order) setDeliveryHours(windows []kernel.TimeWindow) error {
	if len(windows) == 0 {
		return ErrDeliveryHoursAreRequired
	}
	for _, w := range windows {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	o.deliveryHours = slices.Clone(windows)
	return nil
}

func (o *Order) setBatch(batchID *kernel.UUID) error {
	if batchID == nil {
		return nil
	}
	if err := batchID.Validate(); err != nil {
		return err
	}
	id := *batchID
	o.batchID = &id
	return nil
}
