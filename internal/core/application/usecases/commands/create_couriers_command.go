package commands

import (
	"errors"
	"fmt"

	"courierdispatch/internal/core/domain/model/courier"
	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/pkg/errs"
	"courierdispatch/internal/pkg/guard"
)

var (
	ErrCreateCouriersCommandIsNotConstructed = errors.New(
		"CreateCouriersCommand must be created via NewCreateCouriersCommand constructor",
	)
	ErrCouriersAreRequired = errs.NewValueIsRequiredError("data")
)

// CourierDraft is one courier of a bulk registration request, as received.
type CourierDraft struct {
	ID           int64
	VehicleType  string
	Regions      []int64
	WorkingHours []string
}

// CreateCouriersCommand registers several couriers at once. Either all of them
// are created or none.
//
// Example:
//
//	cmd, err := NewCreateCouriersCommand([]CourierDraft{
//	    {ID: 1, VehicleType: "foot", Regions: []int64{1, 12}, WorkingHours: []string{"11:35-14:05"}},
//	})
//	var invalid *InvalidItemsError
//	if errors.As(err, &invalid) {
//	    // invalid.IDs lists the rejected couriers
//	}
type CreateCouriersCommand struct {
	couriers []*courier.Courier

	guard guard.ConstructorGuard
}

// NewCreateCouriersCommand validates every draft and returns an *InvalidItemsError
// naming all invalid or repeated ids.
func NewCreateCouriersCommand(drafts []CourierDraft) (CreateCouriersCommand, error) {
	if len(drafts) == 0 {
		return CreateCouriersCommand{}, ErrCouriersAreRequired
	}

	var (
		couriers = make([]*courier.Courier, 0, len(drafts))
		seen     = make(map[int64]struct{}, len(drafts))
		invalid  []int64
		causes   []error
	)
	for _, d := range drafts {
		c, err := draftToCourier(d)
		if err == nil {
			if _, dup := seen[d.ID]; dup {
				err = fmt.Errorf("courier %d is repeated in the request", d.ID)
			}
		}
		seen[d.ID] = struct{}{}
		if err != nil {
			invalid = append(invalid, d.ID)
			causes = append(causes, err)
			continue
		}
		couriers = append(couriers, c)
	}

	if len(invalid) > 0 {
		return CreateCouriersCommand{}, &InvalidItemsError{Collection: "couriers", IDs: invalid, Cause: errors.Join(causes...)}
	}

	return CreateCouriersCommand{couriers: couriers, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateCouriersCommand) Validate() error {
	return c.guard.Validate(ErrCreateCouriersCommandIsNotConstructed)
}

// Couriers returns the validated couriers in request order.
func (c CreateCouriersCommand) Couriers() []*courier.Courier {
	return c.couriers
}

func (c CreateCouriersCommand) IDs() []int64 {
	ids := make([]int64, len(c.couriers))
	for i, cr := range c.couriers {
		ids[i] = cr.ID()
	}
	return ids
}

func draftToCourier(d CourierDraft) (*courier.Courier, error) {
	vehicle, vehicleErr := kernel.ParseVehicleType(d.VehicleType)
	if vehicleErr != nil {
		vehicleErr = errs.NewValueIsInvalidErrorWithCause("courier_type", vehicleErr)
	}
	regions, regionsErr := parseRegions(d.Regions)
	hours, hoursErr := kernel.ParseTimeWindows(d.WorkingHours)
	if err := errors.Join(vehicleErr, regionsErr, hoursErr); err != nil {
		return nil, fmt.Errorf("courier %d: %w", d.ID, err)
	}

	c, err := courier.NewCourier(d.ID, vehicle, regions, hours)
	if err != nil {
		return nil, fmt.Errorf("courier %d: %w", d.ID, err)
	}
	return c, nil
}

func parseRegions(raw []int64) ([]kernel.RegionID, error) {
	regions := make([]kernel.RegionID, 0, len(raw))
	var errList []error
	for _, r := range raw {
		region, err := kernel.NewRegionID(r)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		regions = append(regions, region)
	}
	if len(errList) > 0 {
		return nil, errors.Join(errList...)
	}
	return regions, nil
}
