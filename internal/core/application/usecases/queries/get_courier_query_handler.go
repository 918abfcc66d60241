package queries

import (
	"context"
	"database/sql"
	"errors"

	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/core/domain/services"
	"courierdispatch/internal/pkg/errs"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// gorm expands "?" placeholders itself.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type GetCourierQueryHandler struct {
	db     *gorm.DB
	scorer services.PerformanceScorer
}

func NewGetCourierQueryHandler(db *gorm.DB) GetCourierQueryHandler {
	return GetCourierQueryHandler{db: db, scorer: services.NewPerformanceScorer()}
}

// Handle returns errs.ObjectNotFoundError for unknown couriers. Rating and
// earnings are computed from the orders the courier finished, each priced with
// the vehicle type of the batch it was delivered in.
func (h GetCourierQueryHandler) Handle(ctx context.Context, query GetCourierQuery) (GetCourierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	response := GetCourierQueryResponse{ID: query.CourierID()}

	var profile struct {
		CourierType string
		Regions     pq.Int64Array
	}
	profileSQL, args, err := qb.Select("courier_type", "regions").
		From("couriers").
		Where(sq.Eq{"courier_id": query.CourierID()}).
		ToSql()
	if err != nil {
		return GetCourierQueryResponse{}, err
	}
	err = db.Raw(profileSQL, args...).Row().Scan(&profile.CourierType, &profile.Regions)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCourierQueryResponse{}, errs.NewObjectNotFoundError("courier_id", query.CourierID())
	}
	if err != nil {
		return GetCourierQueryResponse{}, err
	}
	response.VehicleType = kernel.VehicleType(profile.CourierType)
	response.Regions = []int64(profile.Regions)

	if response.WorkingHours, err = h.workingHours(db, query.CourierID()); err != nil {
		return GetCourierQueryResponse{}, err
	}

	deliveries, err := h.deliveries(db, query.CourierID())
	if err != nil {
		return GetCourierQueryResponse{}, err
	}

	if rating, ok := h.scorer.Rating(deliveries); ok {
		response.Rating = &rating
	}
	if response.Earnings, err = h.scorer.Earnings(deliveries); err != nil {
		return GetCourierQueryResponse{}, err
	}

	return response, nil
}

func (h GetCourierQueryHandler) workingHours(db *gorm.DB, courierID int64) ([]string, error) {
	query, args, err := qb.Select("start_minute", "end_minute").
		From("working_hours").
		Where(sq.Eq{"courier_id": courierID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]kernel.TimeWindow, 0)
	for rows.Next() {
		var start, end int
		if err = rows.Scan(&start, &end); err != nil {
			return nil, err
		}
		w, err := kernel.NewTimeWindow(start, end)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return kernel.FormatTimeWindows(windows), nil
}

func (h GetCourierQueryHandler) deliveries(db *gorm.DB, courierID int64) ([]services.CompletedDelivery, error) {
	query, args, err := qb.Select("o.order_id", "o.region", "o.completed_at", "b.assigned_at", "b.courier_type").
		From("orders o").
		Join("batches b ON b.id = o.batch_id").
		Where(sq.Eq{"b.courier_id": courierID}).
		Where(sq.NotEq{"o.completed_at": nil}).
		OrderBy("o.completed_at", "o.order_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]services.CompletedDelivery, 0)
	for rows.Next() {
		var (
			d           services.CompletedDelivery
			region      int64
			vehicleType string
		)
		if err = rows.Scan(&d.OrderID, &region, &d.CompletedAt, &d.AssignedAt, &vehicleType); err != nil {
			return nil, err
		}
		d.Region = kernel.RegionID(region)
		d.VehicleType = kernel.VehicleType(vehicleType)
		deliveries = append(deliveries, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
