// Package orderrepo maps the Order aggregate to the orders and delivery_hours tables.
package orderrepo

import (
	"time"

	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. batch_id and completed_at together encode the
// order lifecycle: both null means unclaimed, batch_id only means in flight.
type OrderDTO struct {
	ID            int64              `gorm:"column:order_id;primaryKey;autoIncrement:false"`
	Weight        decimal.Decimal    `gorm:"type:numeric(4,2);not null"`
	Region        int64              `gorm:"not null;index"`
	BatchID       *uuid.UUID         `gorm:"type:uuid;index"`
	CompletedAt   *time.Time         `gorm:"type:timestamptz"`
	DeliveryHours []DeliveryHoursDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type DeliveryHoursDTO struct {
	ID          uint  `gorm:"primaryKey"`
	OrderID     int64 `gorm:"not null;index"`
	StartMinute int   `gorm:"type:smallint;not null"`
	EndMinute   int   `gorm:"type:smallint;not null"`
}

func (DeliveryHoursDTO) TableName() string {
	return "delivery_hours"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	hours := make([]DeliveryHoursDTO, 0, len(aggregate.DeliveryHours()))
	for _, w := range aggregate.DeliveryHours() {
		hours = append(hours, DeliveryHoursDTO{
			OrderID:     aggregate.ID(),
			StartMinute: w.StartMinute(),
			EndMinute:   w.EndMinute(),
		})
	}

	var batchID *uuid.UUID
	if b := aggregate.BatchID(); b != nil {
		raw := b.Bytes()
		batchID = &raw
	}

	return OrderDTO{
		ID:            aggregate.ID(),
		Weight:        aggregate.Weight().Decimal(),
		Region:        aggregate.Region().Int64(),
		BatchID:       batchID,
		CompletedAt:   aggregate.CompletedAt(),
		DeliveryHours: hours,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	weight, err := kernel.NewWeight(dto.Weight)
	if err != nil {
		return nil, err
	}

	hours := make([]kernel.TimeWindow, 0, len(dto.DeliveryHours))
	for _, h := range dto.DeliveryHours {
		w, wErr := kernel.NewTimeWindow(h.StartMinute, h.EndMinute)
		if wErr != nil {
			return nil, wErr
		}
		hours = append(hours, w)
	}

	var batchID *kernel.UUID
	if dto.BatchID != nil {
		id, idErr := kernel.UUIDFromBytes(dto.BatchID[:])
		if idErr != nil {
			return nil, idErr
		}
		batchID = &id
	}

	return order.RestoreOrder(dto.ID, weight, kernel.RegionID(dto.Region), hours, batchID, dto.CompletedAt)
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
