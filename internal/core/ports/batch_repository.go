package ports

import (
	"context"

	"courierdispatch/internal/core/domain/model/batch"
	"courierdispatch/internal/core/domain/model/kernel"
)

// BatchRepository stores batch headers. The not-started and finished sets are
// derived from the orders claimed by the batch, so they are persisted through
// OrderRepository.Update.
type BatchRepository interface {
	Add(ctx context.Context, aggregate *batch.Batch) error

	// Get returns errs.ObjectNotFoundError for unknown ids, which is how a dangling
	// courier reference is detected.
	Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error)
}
