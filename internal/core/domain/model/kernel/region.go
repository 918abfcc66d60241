package kernel

import (
	"fmt"

	"courierdispatch/internal/pkg/errs"
)

// RegionID identifies a delivery region. Regions carry no attributes beyond their id.
type RegionID int64

func NewRegionID(id int64) (RegionID, error) {
	if id <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("region", fmt.Errorf("%d is not greater than 0", id))
	}
	return RegionID(id), nil
}

func (r RegionID) Int64() int64 {
	return int64(r)
}
