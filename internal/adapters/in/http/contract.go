package http

import (
	"context"

	"courierdispatch/internal/core/application/usecases/commands"
	"courierdispatch/internal/core/application/usecases/queries"
	"courierdispatch/internal/core/domain/model/courier"
)

type (
	CreateCouriersHandler interface {
		Handle(ctx context.Context, cmd commands.CreateCouriersCommand) ([]int64, error)
	}

	UpdateCourierHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateCourierCommand) (*courier.Courier, error)
	}

	GetCourierHandler interface {
		Handle(ctx context.Context, query queries.GetCourierQuery) (queries.GetCourierQueryResponse, error)
	}

	CreateOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrdersCommand) ([]int64, error)
	}

	AssignOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.AssignOrdersCommand) (commands.AssignmentResult, error)
	}

	CompleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteOrderCommand) error
	}
)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateCouriers CreateCouriersHandler
	UpdateCourier  UpdateCourierHandler
	GetCourier     GetCourierHandler
	CreateOrders   CreateOrdersHandler
	AssignOrders   AssignOrdersHandler
	CompleteOrder  CompleteOrderHandler
}
