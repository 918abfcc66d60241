package batch

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/pkg/errs"
	"courierdispatch/internal/pkg/guard"
)

var (
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")
	ErrOrdersAreRequired     = errs.NewValueIsRequiredError("orders")
	ErrOrderNotInBatch       = errors.New("order is not pending in this batch")
)

type Batch struct {
	id          kernel.UUID
	courierID   int64
	vehicleType kernel.VehicleType
	assignedAt  time.Time
	notStarted  []int64
	finished    []int64
	guard       guard.ConstructorGuard
}

// NewBatch issues a batch whose every order is not started yet.
func NewBatch(
	id kernel.UUID,
	courierID int64,
	vehicleType kernel.VehicleType,
	assignedAt time.Time,
	orderIDs []int64,
) (*Batch, error) {
	if len(orderIDs) == 0 {
		return nil, ErrOrdersAreRequired
	}
	return RestoreBatch(id, courierID, vehicleType, assignedAt, orderIDs, nil)
}

// RestoreBatch rebuilds a batch from storage. Either set may be empty.
func RestoreBatch(
	id kernel.UUID,
	courierID int64,
	vehicleType kernel.VehicleType,
	assignedAt time.Time,
	notStarted []int64,
	finished []int64,
) (*Batch, error) {
	b := &Batch{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setCourierID(courierID),
		b.setVehicleType(vehicleType),
		b.setAssignedAt(assignedAt),
	); err != nil {
		return nil, err
	}
	b.notStarted = sortedCopy(notStarted)
	b.finished = sortedCopy(finished)

	return b, nil
}

func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}
	return b.guard.Validate(ErrBatchIsNotConstructed)
}

func (b *Batch) ID() kernel.UUID {
	return b.id
}

func (b *Batch) CourierID() int64 {
	return b.courierID
}

// VehicleType is the courier's vehicle class frozen at assignment time.
func (b *Batch) VehicleType() kernel.VehicleType {
	return b.vehicleType
}

func (b *Batch) AssignedAt() time.Time {
	return b.assignedAt
}

// NotStarted returns the pending order ids in ascending order.
func (b *Batch) NotStarted() []int64 {
	return slices.Clone(b.notStarted)
}

func (b *Batch) Finished() []int64 {
	return slices.Clone(b.finished)
}

func (b *Batch) BelongsTo(courierID int64) bool {
	return b.courierID == courierID
}

func (b *Batch) IsPending(orderID int64) bool {
	_, found := slices.BinarySearch(b.notStarted, orderID)
	return found
}

func (b *Batch) IsDrained() bool {
	return len(b.notStarted) == 0
}

// Finish moves a pending order to the finished set.
func (b *Batch) Finish(orderID int64) error {
	if err := b.Drop(orderID); err != nil {
		return err
	}
	idx, _ := slices.BinarySearch(b.finished, orderID)
	b.finished = slices.Insert(b.finished, idx, orderID)
	return nil
}

// Drop removes a pending order without finishing it.
func (b *Batch) Drop(orderID int64) error {
	idx, found := slices.BinarySearch(b.notStarted, orderID)
	if !found {
		return fmt.Errorf("%w: order %d, batch %s", ErrOrderNotInBatch, orderID, b.id)
	}
	b.notStarted = slices.Delete(b.notStarted, idx, idx+1)
	return nil
}

func (b *Batch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Batch) setCourierID(courierID int64) error {
	if courierID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", fmt.Errorf("%d is not greater than 0", courierID))
	}
	b.courierID = courierID
	return nil
}

func (b *Batch) setVehicleType(vehicleType kernel.VehicleType) error {
	if _, err := vehicleType.PayoutRate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("courier_type", err)
	}
	b.vehicleType = vehicleType
	return nil
}

func (b *Batch) setAssignedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("assign_time")
	}
	b.assignedAt = at
	return nil
}

func sortedCopy(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
