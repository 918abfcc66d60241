package commands

import (
	"context"
	"errors"

	"courierdispatch/internal/core/domain/model/courier"
	"courierdispatch/internal/core/domain/services"
	"courierdispatch/internal/pkg/errs"
)

type UpdateCourierCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateCourierCommandHandler(uowFactory UoWFactory) UpdateCourierCommandHandler {
	return UpdateCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the patch and then releases every not-started order of the
// courier's current batch that the new profile can no longer carry.
func (h UpdateCourierCommandHandler) Handle(ctx context.Context, cmd UpdateCourierCommand) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	c, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrCourierNotFound
	}
	if err != nil {
		return nil, err
	}

	regions, err := cmd.Apply(c)
	if err != nil {
		return nil, err
	}
	if len(regions) > 0 {
		if err = uow.RegionRepository().EnsureExist(ctx, regions); err != nil {
			return nil, err
		}
	}

	current, err := resolveCurrentBatch(ctx, uow.BatchRepository(), c)
	if err != nil {
		return nil, err
	}
	if current != nil {
		pending, err := orderRepo.GetPendingInBatch(ctx, current.ID())
		if err != nil {
			return nil, err
		}
		released, err := services.NewBatchManager().Reconcile(c, current, pending)
		if err != nil {
			return nil, err
		}
		for _, o := range released {
			if err = orderRepo.Update(ctx, o); err != nil {
				return nil, err
			}
		}
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
