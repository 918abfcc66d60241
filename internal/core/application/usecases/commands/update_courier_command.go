package commands

import (
	"errors"
	"fmt"

	"courierdispatch/internal/core/domain/model/courier"
	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/pkg/errs"
	"courierdispatch/internal/pkg/guard"
)

var ErrUpdateCourierCommandIsNotConstructed = errors.New(
	"UpdateCourierCommand must be created via NewUpdateCourierCommand constructor",
)

// CourierPatch carries the raw fields of a partial courier update.
// Omitted fields are left unchanged; an empty patch only re-checks the current batch.
type CourierPatch struct {
	VehicleType  *string
	Regions      []int64
	WorkingHours []string

	// HasRegions and HasWorkingHours tell an omitted list from an empty one.
	HasRegions      bool
	HasWorkingHours bool
}

type UpdateCourierCommand struct {
	courierID    int64
	vehicleType  *kernel.VehicleType
	regions      []kernel.RegionID
	workingHours []kernel.TimeWindow

	guard guard.ConstructorGuard
}

func NewUpdateCourierCommand(courierID int64, patch CourierPatch) (UpdateCourierCommand, error) {
	cmd := UpdateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setVehicleType(patch.VehicleType),
		cmd.setRegions(patch.HasRegions, patch.Regions),
		cmd.setWorkingHours(patch.HasWorkingHours, patch.WorkingHours),
	); err != nil {
		return UpdateCourierCommand{}, err
	}

	return cmd, nil
}

func (c UpdateCourierCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierCommandIsNotConstructed)
}

func (c UpdateCourierCommand) CourierID() int64 {
	return c.courierID
}

// Apply changes the courier in place. Regions touched by the update are
// returned so the caller can register them.
func (c UpdateCourierCommand) Apply(target *courier.Courier) ([]kernel.RegionID, error) {
	if c.vehicleType != nil {
		if err := target.ChangeVehicleType(*c.vehicleType); err != nil {
			return nil, err
		}
	}
	if c.regions != nil {
		if err := target.ChangeRegions(c.regions); err != nil {
			return nil, err
		}
	}
	if c.workingHours != nil {
		if err := target.ChangeWorkingHours(c.workingHours); err != nil {
			return nil, err
		}
	}
	return c.regions, nil
}

func (c *UpdateCourierCommand) setCourierID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", fmt.Errorf("%d is not greater than 0", id))
	}
	c.courierID = id
	return nil
}

func (c *UpdateCourierCommand) setVehicleType(raw *string) error {
	if raw == nil {
		return nil
	}
	vehicle, err := kernel.ParseVehicleType(*raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("courier_type", err)
	}
	c.vehicleType = &vehicle
	return nil
}

func (c *UpdateCourierCommand) setRegions(present bool, raw []int64) error {
	if !present {
		return nil
	}
	if len(raw) == 0 {
		return courier.ErrRegionsAreRequired
	}
	regions, err := parseRegions(raw)
	if err != nil {
		return err
	}
	c.regions = regions
	return nil
}

func (c *UpdateCourierCommand) setWorkingHours(present bool, raw []string) error {
	if !present {
		return nil
	}
	if len(raw) == 0 {
		return courier.ErrWorkingHoursAreRequired
	}
	hours, err := kernel.ParseTimeWindows(raw)
	if err != nil {
		return err
	}
	c.workingHours = hours
	return nil
}
