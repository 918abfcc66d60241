package courierrepo

import (
	"context"
	"errors"
	"fmt"

	"courierdispatch/internal/core/domain/model/courier"
	"courierdispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
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

// Update rewrites the courier row and replaces its working windows.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&CourierDTO{}).
		Where("courier_id = ?", dto.ID).
		Select("CourierType", "Regions", "CurrentBatchID").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", dto.ID)
	}

	if err := db.Where("courier_id = ?", dto.ID).Delete(&WorkingHoursDTO{}).Error; err != nil {
		return err
	}
	if err := db.Create(&dto.WorkingHours).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(trackingKey(aggregate.ID()), aggregate)
	return nil
}

func (r *GormCourierRepository) Get(ctx context.Context, id int64) (*courier.Courier, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormCourierRepository) GetForUpdate(ctx context.Context, id int64) (*courier.Courier, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormCourierRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	existing := make([]int64, 0)
	if len(ids) == 0 {
		return existing, nil
	}

	if err := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("courier_id IN ?", ids).
		Order("courier_id").
		Pluck("courier_id", &existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *GormCourierRepository) get(db *gorm.DB, id int64) (*courier.Courier, error) {
	var dto CourierDTO
	err := db.
		Preload("WorkingHours", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&dto, "courier_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("courier", id)
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func trackingKey(id int64) string {
	return fmt.Sprintf("courier:%d", id)
}
