package commands

import (
	"context"

	"courierdispatch/internal/core/domain/model/kernel"
)

type CreateOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrdersCommandHandler(uowFactory OrderUoWFactory) CreateOrdersCommandHandler {
	return CreateOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateOrdersCommandHandler) Handle(ctx context.Context, cmd CreateOrdersCommand) ([]int64, error) {
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

	orderRepo := uow.OrderRepository()

	taken, err := orderRepo.ExistingIDs(ctx, cmd.IDs())
	if err != nil {
		return nil, err
	}
	if len(taken) > 0 {
		return nil, &InvalidItemsError{Collection: "orders", IDs: taken}
	}

	regions := make([]kernel.RegionID, 0, len(cmd.Orders()))
	for _, o := range cmd.Orders() {
		regions = append(regions, o.Region())
	}
	if err = uow.RegionRepository().EnsureExist(ctx, regions); err != nil {
		return nil, err
	}

	for _, o := range cmd.Orders() {
		if err = orderRepo.Add(ctx, o); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return cmd.IDs(), nil
}
