package commands

import (
	"context"

	"courierdispatch/internal/core/domain/model/kernel"
)

type CreateCouriersCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewCreateCouriersCommandHandler(uowFactory CourierUoWFactory) CreateCouriersCommandHandler {
	return CreateCouriersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores every courier of the command in one transaction. Couriers whose
// id is already taken are reported through *InvalidItemsError.
func (h CreateCouriersCommandHandler) Handle(ctx context.Context, cmd CreateCouriersCommand) ([]int64, error) {
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

	taken, err := courierRepo.ExistingIDs(ctx, cmd.IDs())
	if err != nil {
		return nil, err
	}
	if len(taken) > 0 {
		return nil, &InvalidItemsError{Collection: "couriers", IDs: taken}
	}

	var regions []kernel.RegionID
	for _, c := range cmd.Couriers() {
		regions = append(regions, c.Regions()...)
	}
	if err = uow.RegionRepository().EnsureExist(ctx, regions); err != nil {
		return nil, err
	}

	for _, c := range cmd.Couriers() {
		if err = courierRepo.Add(ctx, c); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return cmd.IDs(), nil
}
