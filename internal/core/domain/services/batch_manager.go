package services

import (
	"errors"
	"time"

	"courierdispatch/internal/core/domain/model/batch"
	"courierdispatch/internal/core/domain/model/courier"
	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/core/domain/model/order"
)

var (
	ErrOrderNotAssigned = errors.New("order is not assigned to any batch")
	ErrWrongCourier     = errors.New("order is assigned to another courier")

	ErrOrderAlreadyCompleted = order.ErrOrderAlreadyCompleted
)

// BatchManager holds the state transitions of assignment batches. It mutates the
// aggregates it is given and leaves persistence to the caller.
type BatchManager struct {
	filter EligibilityFilter
}

func NewBatchManager() BatchManager {
	return BatchManager{filter: NewEligibilityFilter()}
}

// Assign returns the courier's current batch unchanged (reused == true) while it
// still has not-started orders. Otherwise it matches the unclaimed open
// candidates and, if any match, issues a new batch with the given id, claims every
// matched order and makes the batch the courier's current one. When nothing
// matches it returns a nil batch and mutates nothing.
//
// current must be the batch referenced by the courier, or nil when the reference
// is empty or dangling.
func (m BatchManager) Assign(
	c *courier.Courier,
	current *batch.Batch,
	candidates []*order.Order,
	batchID kernel.UUID,
	now time.Time,
) (*batch.Batch, bool, error) {
	if err := c.Validate(); err != nil {
		return nil, false, err
	}
	if current != nil && current.BelongsTo(c.ID()) && !current.IsDrained() {
		return current, true, nil
	}

	pool := make([]*order.Order, 0, len(candidates))
	for _, o := range candidates {
		if !o.IsClaimed() {
			pool = append(pool, o)
		}
	}

	matched, err := m.filter.FindMatching(c, pool)
	if err != nil {
		return nil, false, err
	}
	if len(matched) == 0 {
		return nil, false, nil
	}

	ids := make([]int64, len(matched))
	for i, o := range matched {
		ids[i] = o.ID()
	}

	issued, err := batch.NewBatch(batchID, c.ID(), c.VehicleType(), now, ids)
	if err != nil {
		return nil, false, err
	}

	for _, o := range matched {
		if err = o.Claim(issued.ID()); err != nil {
			return nil, false, err
		}
	}
	if err = c.AttachBatch(issued.ID()); err != nil {
		return nil, false, err
	}

	return issued, false, nil
}

// Complete marks the order finished at the given time on behalf of the courier.
// b is the batch referenced by the order, or nil when it could not be found.
func (m BatchManager) Complete(o *order.Order, c *courier.Courier, b *batch.Batch, at time.Time) error {
	if err := errors.Join(o.Validate(), c.Validate()); err != nil {
		return err
	}

	batchID := o.BatchID()
	if batchID == nil || b == nil || !b.ID().IsEqual(*batchID) {
		return ErrOrderNotAssigned
	}
	if !b.BelongsTo(c.ID()) {
		return ErrWrongCourier
	}
	if o.IsCompleted() {
		return ErrOrderAlreadyCompleted
	}

	if err := o.Complete(at); err != nil {
		return err
	}
	return b.Finish(o.ID())
}

// Reconcile re-checks the batch's not-started orders against the courier's
// current profile. Orders that no longer qualify are released back to the pool
// and dropped from the batch; they are returned so the caller can persist them.
// Nothing is ever added to the batch.
func (m BatchManager) Reconcile(c *courier.Courier, b *batch.Batch, notStarted []*order.Order) ([]*order.Order, error) {
	if b == nil {
		return nil, nil
	}
	if err := errors.Join(c.Validate(), b.Validate()); err != nil {
		return nil, err
	}

	pending := make([]*order.Order, 0, len(notStarted))
	for _, o := range notStarted {
		if b.IsPending(o.ID()) {
			pending = append(pending, o)
		}
	}

	kept, err := m.filter.FindMatching(c, pending)
	if err != nil {
		return nil, err
	}
	stillEligible := make(map[int64]struct{}, len(kept))
	for _, o := range kept {
		stillEligible[o.ID()] = struct{}{}
	}

	var released []*order.Order
	for _, o := range pending {
		if _, ok := stillEligible[o.ID()]; ok {
			continue
		}
		if err = o.Release(); err != nil {
			return nil, err
		}
		if err = b.Drop(o.ID()); err != nil {
			return nil, err
		}
		released = append(released, o)
	}

	return released, nil
}
