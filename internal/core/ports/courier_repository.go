package ports

import (
	"context"

	"courierdispatch/internal/core/domain/model/courier"
)

// CourierRepository defines the persistence contract for courier aggregates,
// including their working windows and current batch reference.
type CourierRepository interface {
	// Add persists a new courier. Fails when the id is already taken.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists the profile and current batch reference of an existing courier.
	// Working windows are replaced as a whole.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get returns errs.ObjectNotFoundError when the courier does not exist.
	Get(ctx context.Context, id int64) (*courier.Courier, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	// Commands that read-modify-write a courier use it to serialize per courier.
	GetForUpdate(ctx context.Context, id int64) (*courier.Courier, error)

	// ExistingIDs returns the subset of ids that are already stored.
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}
