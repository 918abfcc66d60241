package commands

import (
	"errors"
	"fmt"
	"strings"

	"courierdispatch/internal/core/domain/services"
	"courierdispatch/internal/pkg/errs"
)

var (
	ErrCourierNotFound  = errors.New("courier not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrNoEligibleOrders = errors.New("no eligible orders for courier")

	ErrOrderNotAssigned      = services.ErrOrderNotAssigned
	ErrWrongCourier          = services.ErrWrongCourier
	ErrOrderAlreadyCompleted = services.ErrOrderAlreadyCompleted
)

// InvalidItemsError reports which items of a bulk request were rejected.
// Nothing of the request is persisted when it is returned.
type InvalidItemsError struct {
	// Collection is "couriers" or "orders".
	Collection string
	IDs        []int64
	Cause      error
}

func (e *InvalidItemsError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = fmt.Sprint(id)
	}
	msg := fmt.Sprintf("invalid %s: [%s]", e.Collection, strings.Join(ids, ", "))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *InvalidItemsError) Unwrap() []error {
	if e.Cause == nil {
		return []error{errs.ErrValueIsInvalid}
	}
	return []error{errs.ErrValueIsInvalid, e.Cause}
}
