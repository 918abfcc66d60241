package queries

import (
	"errors"

	"courierdispatch/internal/pkg/guard"
)

var ErrGetOrderBacklogQueryIsNotConstructed = errors.New(
	"GetOrderBacklogQuery must be created via NewGetOrderBacklogQuery constructor",
)

// GetOrderBacklogQuery counts orders by lifecycle stage.
type GetOrderBacklogQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrderBacklogQuery() GetOrderBacklogQuery {
	return GetOrderBacklogQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrderBacklogQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderBacklogQueryIsNotConstructed)
}

type GetOrderBacklogQueryResponse struct {
	// Unclaimed orders wait for a courier.
	Unclaimed int64
	// InFlight orders sit in a batch and are not completed yet.
	InFlight  int64
	Completed int64
}
