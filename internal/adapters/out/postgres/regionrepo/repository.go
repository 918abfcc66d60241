// Package regionrepo keeps the registry of known delivery regions.
package regionrepo

import (
	"context"
	"slices"

	"courierdispatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegionDTO struct {
	ID int64 `gorm:"primaryKey;autoIncrement:false"`
}

func (RegionDTO) TableName() string {
	return "regions"
}

type GormRegionRepository struct {
	db *gorm.DB
}

func NewGormRegionRepository(db *gorm.DB) *GormRegionRepository {
	return &GormRegionRepository{db: db}
}

// EnsureExist inserts the regions that are not registered yet.
func (r *GormRegionRepository) EnsureExist(ctx context.Context, regions []kernel.RegionID) error {
	if len(regions) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(regions))
	for _, region := range regions {
		ids = append(ids, region.Int64())
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	dtos := make([]RegionDTO, len(ids))
	for i, id := range ids {
		dtos[i] = RegionDTO{ID: id}
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dtos).Error
}
