package queries

import (
	"errors"
	"fmt"

	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/pkg/errs"
	"courierdispatch/internal/pkg/guard"
)

var ErrGetCourierQueryIsNotConstructed = errors.New(
	"GetCourierQuery must be created via NewGetCourierQuery constructor",
)

// GetCourierQuery reads a courier profile together with its rating and earnings.
//
// Example:
//
//	query, _ := NewGetCourierQuery(7)
//	profile, err := NewGetCourierQueryHandler(db).Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown courier
//	}
//	if profile.Rating != nil {
//	    fmt.Printf("courier %d: rating %.2f\n", profile.ID, *profile.Rating)
//	}
type GetCourierQuery struct {
	courierID int64

	guard guard.ConstructorGuard
}

func NewGetCourierQuery(courierID int64) (GetCourierQuery, error) {
	if courierID <= 0 {
		return GetCourierQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"courier_id", fmt.Errorf("%d is not greater than 0", courierID),
		)
	}
	return GetCourierQuery{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCourierQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierQueryIsNotConstructed)
}

func (q GetCourierQuery) CourierID() int64 {
	return q.courierID
}

// GetCourierQueryResponse is the courier read model.
type GetCourierQueryResponse struct {
	ID           int64
	VehicleType  kernel.VehicleType
	Regions      []int64
	WorkingHours []string
	// Rating is nil until the courier finishes at least one order.
	Rating   *float64
	Earnings int
}
