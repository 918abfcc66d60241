package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetOrderBacklogQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderBacklogQueryHandler(db *gorm.DB) GetOrderBacklogQueryHandler {
	return GetOrderBacklogQueryHandler{db: db}
}

func (h GetOrderBacklogQueryHandler) Handle(
	ctx context.Context,
	query GetOrderBacklogQuery,
) (GetOrderBacklogQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderBacklogQueryResponse{}, err
	}

	var response GetOrderBacklogQueryResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE batch_id IS NULL AND completed_at IS NULL)     AS unclaimed,
			COUNT(*) FILTER (WHERE batch_id IS NOT NULL AND completed_at IS NULL) AS in_flight,
			COUNT(*) FILTER (WHERE completed_at IS NOT NULL)                      AS completed
		FROM orders
	`).Row().Scan(&response.Unclaimed, &response.InFlight, &response.Completed)
	if err != nil {
		return GetOrderBacklogQueryResponse{}, err
	}

	return response, nil
}
