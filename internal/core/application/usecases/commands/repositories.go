package commands

import (
	"context"

	"courierdispatch/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	BatchRepoFactory interface {
		BatchRepository() ports.BatchRepository
	}

	RegionRepoFactory interface {
		RegionRepository() ports.RegionRepository
	}

	// OrderUoW is enough to register orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		RegionRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW is enough to register couriers.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
		RegionRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW is used by commands that touch couriers, orders and batches together.
	UoW interface {
		TxManager
		CourierRepoFactory
		OrderRepoFactory
		BatchRepoFactory
		RegionRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
