// Package batchrepo stores batch headers. Membership is read back from the
// orders table, where every claimed order keeps its batch_id.
package batchrepo

import (
	"context"
	"errors"

	"courierdispatch/internal/core/domain/model/batch"
	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

func NewGormBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchRepository {
	return &GormBatchRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormBatchRepository) Add(ctx context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate("batch:"+aggregate.ID().String(), aggregate)
	return nil
}

func (r *GormBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var dto BatchDTO
	err := db.First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("batch", id.String())
	}
	if err != nil {
		return nil, err
	}

	var rows []orderStateRow
	if err = db.Table("orders").
		Select("order_id, completed_at IS NOT NULL AS completed").
		Where("batch_id = ?", id.Bytes()).
		Order("order_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, rows)
}
