package courierrepo

import (
	"courierdispatch/internal/core/domain/model/courier"
	"courierdispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CourierDTO struct {
	ID             int64             `gorm:"column:courier_id;primaryKey;autoIncrement:false"`
	CourierType    string            `gorm:"type:varchar(4);not null"`
	Regions        pq.Int64Array     `gorm:"type:bigint[];not null"`
	CurrentBatchID *uuid.UUID        `gorm:"type:uuid"`
	WorkingHours   []WorkingHoursDTO `gorm:"foreignKey:CourierID;references:ID;constraint:OnDelete:CASCADE"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

type WorkingHoursDTO struct {
	ID          uint  `gorm:"primaryKey"`
	CourierID   int64 `gorm:"not null;index"`
	StartMinute int   `gorm:"type:smallint;not null"`
	EndMinute   int   `gorm:"type:smallint;not null"`
}

func (WorkingHoursDTO) TableName() string {
	return "working_hours"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	regions := make(pq.Int64Array, 0, len(aggregate.Regions()))
	for _, r := range aggregate.Regions() {
		regions = append(regions, r.Int64())
	}

	hours := make([]WorkingHoursDTO, 0, len(aggregate.WorkingHours()))
	for _, w := range aggregate.WorkingHours() {
		hours = append(hours, WorkingHoursDTO{
			CourierID:   aggregate.ID(),
			StartMinute: w.StartMinute(),
			EndMinute:   w.EndMinute(),
		})
	}

	var batchID *uuid.UUID
	if current := aggregate.CurrentBatch(); current != nil {
		raw := current.Bytes()
		batchID = &raw
	}

	return CourierDTO{
		ID:             aggregate.ID(),
		CourierType:    aggregate.VehicleType().String(),
		Regions:        regions,
		CurrentBatchID: batchID,
		WorkingHours:   hours,
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	regions := make([]kernel.RegionID, 0, len(dto.Regions))
	for _, r := range dto.Regions {
		regions = append(regions, kernel.RegionID(r))
	}

	hours := make([]kernel.TimeWindow, 0, len(dto.WorkingHours))
	for _, h := range dto.WorkingHours {
		w, err := kernel.NewTimeWindow(h.StartMinute, h.EndMinute)
		if err != nil {
			return nil, err
		}
		hours = append(hours, w)
	}

	var batchID *kernel.UUID
	if dto.CurrentBatchID != nil {
		id, err := kernel.UUIDFromBytes(dto.CurrentBatchID[:])
		if err != nil {
			return nil, err
		}
		batchID = &id
	}

	return courier.RestoreCourier(dto.ID, kernel.VehicleType(dto.CourierType), regions, hours, batchID)
}
