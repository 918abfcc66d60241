package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/core/domain/model/order"
	"courierdispatch/internal/core/ports"
	"courierdispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(trackingKey(aggregate.ID()), aggregate)
	return nil
}

// Update writes the claim and completion state. A claimed order is only written
// while the stored row is unclaimed or owned by the same batch.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	query := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("order_id = ?", dto.ID)
	if dto.BatchID != nil {
		query = query.Where("(batch_id IS NULL OR batch_id = ?)", *dto.BatchID)
	}

	result := query.Select("BatchID", "CompletedAt").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, dto.ID); err != nil {
			return err
		}
		return fmt.Errorf("%w: order %d", ports.ErrOrderClaimConflict, dto.ID)
	}

	r.tracker.TrackAggregate(trackingKey(aggregate.ID()), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormOrderRepository) GetUnclaimedInRegions(ctx context.Context, regions []kernel.RegionID) ([]*order.Order, error) {
	if len(regions) == 0 {
		return []*order.Order{}, nil
	}

	var dtos []OrderDTO
	if err := r.withHours(r.db.WithContext(ctx)).
		Clauses(clause.Locking{
			Strength: clause.LockingStrengthUpdate,
			Options:  clause.LockingOptionsSkipLocked,
		}).
		Where("batch_id IS NULL AND completed_at IS NULL").
		Where("region IN ?", regionIDs(regions)).
		Order("order_id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormOrderRepository) GetPendingInBatch(ctx context.Context, batchID kernel.UUID) ([]*order.Order, error) {
	if err := batchID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.withHours(r.db.WithContext(ctx)).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("batch_id = ? AND completed_at IS NULL", batchID.Bytes()).
		Order("order_id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormOrderRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	existing := make([]int64, 0)
	if len(ids) == 0 {
		return existing, nil
	}

	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("order_id IN ?", ids).
		Order("order_id").
		Pluck("order_id", &existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *GormOrderRepository) get(db *gorm.DB, id int64) (*order.Order, error) {
	var dto OrderDTO
	err := r.withHours(db).First(&dto, "order_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) withHours(db *gorm.DB) *gorm.DB {
	return db.Preload("DeliveryHours", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

func trackingKey(id int64) string {
	return fmt.Sprintf("order:%d", id)
}

func regionIDs(regions []kernel.RegionID) []int64 {
	ids := make([]int64, len(regions))
	for i, r := range regions {
		ids[i] = r.Int64()
	}
	return ids
}
