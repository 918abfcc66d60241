package batchrepo

import (
	"time"

	"courierdispatch/internal/core/domain/model/batch"
	"courierdispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type BatchDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID   int64     `gorm:"not null;index"`
	CourierType string    `gorm:"type:varchar(4);not null"`
	AssignedAt  time.Time `gorm:"type:timestamptz;not null"`
}

func (BatchDTO) TableName() string {
	return "batches"
}

// orderStateRow is one order claimed by the batch.
type orderStateRow struct {
	OrderID   int64
	Completed bool
}

func fromDomain(aggregate *batch.Batch) BatchDTO {
	return BatchDTO{
		ID:          aggregate.ID().Bytes(),
		CourierID:   aggregate.CourierID(),
		CourierType: aggregate.VehicleType().String(),
		AssignedAt:  aggregate.AssignedAt(),
	}
}

func toDomain(dto BatchDTO, orders []orderStateRow) (*batch.Batch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var notStarted, finished []int64
	for _, o := range orders {
		if o.Completed {
			finished = append(finished, o.OrderID)
			continue
		}
		notStarted = append(notStarted, o.OrderID)
	}

	return batch.RestoreBatch(id, dto.CourierID, kernel.VehicleType(dto.CourierType), dto.AssignedAt, notStarted, finished)
}
