package commands

import (
	"context"
	"errors"
	"time"

	"courierdispatch/internal/core/domain/model/batch"
	"courierdispatch/internal/core/domain/model/courier"
	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/core/domain/services"
	"courierdispatch/internal/pkg/errs"
)

// AssignmentResult is the batch the courier should work on.
type AssignmentResult struct {
	BatchID    kernel.UUID
	OrderIDs   []int64
	AssignedAt time.Time
	// Reused is true when the courier already had an unfinished batch.
	Reused bool
}

type AssignOrdersCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

func NewAssignOrdersCommandHandler(uowFactory UoWFactory, now func() time.Time) AssignOrdersCommandHandler {
	if now == nil {
		now = time.Now
	}
	return AssignOrdersCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle returns ErrCourierNotFound for unknown couriers and ErrNoEligibleOrders
// when a new batch would be empty. The courier row is locked for the whole
// transaction and the order pool is read skipping rows locked by concurrent
// assignments.
func (h AssignOrdersCommandHandler) Handle(ctx context.Context, cmd AssignOrdersCommand) (AssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()
	batchRepo := uow.BatchRepository()

	c, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AssignmentResult{}, ErrCourierNotFound
	}
	if err != nil {
		return AssignmentResult{}, err
	}

	current, err := resolveCurrentBatch(ctx, batchRepo, c)
	if err != nil {
		return AssignmentResult{}, err
	}
	if current != nil && current.BelongsTo(c.ID()) && !current.IsDrained() {
		return resultOf(current, true), nil
	}

	pool, err := orderRepo.GetUnclaimedInRegions(ctx, c.Regions())
	if err != nil {
		return AssignmentResult{}, err
	}

	issued, reused, err := services.NewBatchManager().Assign(c, current, pool, kernel.NewUUID(), h.now().UTC())
	if err != nil {
		return AssignmentResult{}, err
	}
	if issued == nil {
		return AssignmentResult{}, ErrNoEligibleOrders
	}
	if reused {
		return resultOf(issued, true), nil
	}

	if err = batchRepo.Add(ctx, issued); err != nil {
		return AssignmentResult{}, err
	}
	for _, o := range pool {
		if !o.IsClaimed() {
			continue
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return AssignmentResult{}, err
		}
	}
	if err = courierRepo.Update(ctx, c); err != nil {
		return AssignmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignmentResult{}, err
	}

	return resultOf(issued, false), nil
}

// resolveCurrentBatch loads the batch referenced by the courier. A dangling
// reference resolves to nil.
func resolveCurrentBatch(ctx context.Context, batchRepo batchGetter, c *courier.Courier) (*batch.Batch, error) {
	return resolveBatch(ctx, batchRepo, c.CurrentBatch())
}

// resolveBatch loads a referenced batch, treating unknown ids as nil.
func resolveBatch(ctx context.Context, batchRepo batchGetter, ref *kernel.UUID) (*batch.Batch, error) {
	if ref == nil {
		return nil, nil
	}

	b, err := batchRepo.Get(ctx, *ref)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

type batchGetter interface {
	Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error)
}

func resultOf(b *batch.Batch, reused bool) AssignmentResult {
	return AssignmentResult{
		BatchID:    b.ID(),
		OrderIDs:   b.NotStarted(),
		AssignedAt: b.AssignedAt(),
		Reused:     reused,
	}
}
