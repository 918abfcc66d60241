package ports

import (
	"context"
	"errors"

	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/core/domain/model/order"
)

// ErrOrderClaimConflict is returned by Update when another batch claimed the order first.
var ErrOrderClaimConflict = errors.New("order was claimed by another batch")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists claim and completion state. Claiming an order only succeeds
	// while the stored row is unclaimed or already claimed by the same batch;
	// otherwise ErrOrderClaimConflict is returned.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// GetUnclaimedInRegions returns open, unclaimed orders of the given regions in
	// ascending id order. Rows locked by a concurrent transaction are skipped, so two
	// couriers never receive the same order.
	GetUnclaimedInRegions(ctx context.Context, regions []kernel.RegionID) ([]*order.Order, error)

	// GetPendingInBatch returns the open orders claimed by the batch.
	GetPendingInBatch(ctx context.Context, batchID kernel.UUID) ([]*order.Order, error)

	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}
