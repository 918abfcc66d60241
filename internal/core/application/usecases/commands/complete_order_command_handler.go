package commands

import (
	"context"
	"errors"

	"courierdispatch/internal/core/domain/services"
	"courierdispatch/internal/pkg/errs"
)

type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCompleteOrderCommandHandler(uowFactory UoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle finishes the order on behalf of the courier. Errors, in the order they
// are checked: ErrCourierNotFound, ErrOrderNotFound, ErrOrderNotAssigned,
// ErrWrongCourier, ErrOrderAlreadyCompleted.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CourierRepository().GetForUpdate(ctx, cmd.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrCourierNotFound
	}
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	batchRepo := uow.BatchRepository()
	b, err := resolveBatch(ctx, batchRepo, o.BatchID())
	if err != nil {
		return err
	}

	if err = services.NewBatchManager().Complete(o, c, b, cmd.CompleteTime().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
