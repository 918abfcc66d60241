package ports

import (
	"context"

	"courierdispatch/internal/core/domain/model/kernel"
)

// RegionRepository registers regions on first use. Regions are never deleted.
type RegionRepository interface {
	EnsureExist(ctx context.Context, regions []kernel.RegionID) error
}
