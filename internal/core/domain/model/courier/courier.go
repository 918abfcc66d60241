package courier

import (
	"errors"
	"fmt"
	"slices"

	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/pkg/errs"
	"courierdispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrRegionsAreRequired is returned when a courier would be left without serviceable regions.
	ErrRegionsAreRequired = errs.NewValueIsRequiredError("regions")
	// ErrWorkingHoursAreRequired is returned when a courier would be left without working windows.
	ErrWorkingHoursAreRequired = errs.NewValueIsRequiredError("working_hours")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery courier and its capabilities.
// It is an aggregate root; the orders it carries live in a separate Batch aggregate
// referenced by id.
//
// Business rules:
//   - id is positive and immutable
//   - vehicleType maps to a load capacity and payout rate
//   - regions is a non-empty, deduplicated, ascending set
//   - workingHours is non-empty
type Courier struct {
	id           int64
	vehicleType  kernel.VehicleType
	regions      []kernel.RegionID
	workingHours []kernel.TimeWindow
	currentBatch *kernel.UUID
	guard        guard.ConstructorGuard
}

// NewCourier creates a courier without a current batch.
//
// Example:
//
//	hours, _ := kernel.ParseTimeWindows([]string{"09:00-18:00"})
//	c, err := courier.NewCourier(7, kernel.Bike, []kernel.RegionID{1, 12}, hours)
func NewCourier(
	id int64,
	vehicleType kernel.VehicleType,
	regions []kernel.RegionID,
	workingHours []kernel.TimeWindow,
) (*Courier, error) {
	return RestoreCourier(id, vehicleType, regions, workingHours, nil)
}

// RestoreCourier rebuilds a courier loaded from storage, including its current batch reference.
func RestoreCourier(
	id int64,
	vehicleType kernel.VehicleType,
	regions []kernel.RegionID,
	workingHours []kernel.TimeWindow,
	currentBatch *kernel.UUID,
) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.ChangeVehicleType(vehicleType),
		courier.ChangeRegions(regions),
		courier.ChangeWorkingHours(workingHours),
		courier.setCurrentBatch(currentBatch),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id == other.id
}

func (c *Courier) ID() int64 {
	return c.id
}

func (c *Courier) VehicleType() kernel.VehicleType {
	return c.vehicleType
}

// Regions returns a copy of the serviceable regions in ascending order.
func (c *Courier) Regions() []kernel.RegionID {
	return slices.Clone(c.regions)
}

func (c *Courier) WorkingHours() []kernel.TimeWindow {
	return slices.Clone(c.workingHours)
}

// CurrentBatch returns the id of the batch the courier was last assigned, or nil.
// The batch may no longer exist; callers resolve it before use.
func (c *Courier) CurrentBatch() *kernel.UUID {
	if c.currentBatch == nil {
		return nil
	}
	id := *c.currentBatch
	return &id
}

// ServesRegion reports whether the region is in the courier's serviceable set.
func (c *Courier) ServesRegion(region kernel.RegionID) bool {
	_, found := slices.BinarySearch(c.regions, region)
	return found
}

// ChangeVehicleType replaces the vehicle class. Batches already issued keep the class
// they were created with.
func (c *Courier) ChangeVehicleType(vehicleType kernel.VehicleType) error {
	if _, err := vehicleType.LoadCapacity(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("courier_type", err)
	}
	c.vehicleType = vehicleType
	return nil
}

// ChangeRegions replaces the serviceable regions. Duplicates are collapsed.
func (c *Courier) ChangeRegions(regions []kernel.RegionID) error {
	if len(regions) == 0 {
		return ErrRegionsAreRequired
	}
	for _, r := range regions {
		if r <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("regions", fmt.Errorf("%d is not greater than 0", r))
		}
	}

	normalized := slices.Clone(regions)
	slices.Sort(normalized)
	c.regions = slices.Compact(normalized)
	return nil
}

func (c *Courier) ChangeWorkingHours(windows []kernel.TimeWindow) error {
	if len(windows) == 0 {
		return ErrWorkingHoursAreRequired
	}
	for _, w := range windows {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	c.workingHours = slices.Clone(windows)
	return nil
}

// AttachBatch records the batch the courier is now working on.
func (c *Courier) AttachBatch(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	c.currentBatch = &batchID
	return nil
}

// DetachBatch clears a dangling or drained batch reference.
func (c *Courier) DetachBatch() {
	c.currentBatch = nil
}

func (c *Courier) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", fmt.Errorf("%d is not greater than 0", id))
	}
	c.id = id
	return nil
}

func (c *Courier) setCurrentBatch(batchID *kernel.UUID) error {
	if batchID == nil {
		c.currentBatch = nil
		return nil
	}
	return c.AttachBatch(*batchID)
}
