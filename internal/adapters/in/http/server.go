package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"courierdispatch/internal/core/application/usecases/commands"
	"courierdispatch/internal/core/application/usecases/queries"
	"courierdispatch/internal/core/domain/model/courier"
	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/pkg/errs"
	"courierdispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"
)

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	log      *zap.Logger
}

func NewServer(handlers Handlers, log *zap.Logger) *Server {
	return &Server{
		handlers: handlers,
		log:      log,
	}
}

// RegisterHandlers mounts the API routes on e.
func RegisterHandlers(e *echo.Echo, s *Server) {
	e.POST("/couriers", s.CreateCouriers)
	e.GET("/couriers/:courier_id", s.GetCourier)
	e.PATCH("/couriers/:courier_id", s.UpdateCourier)
	e.POST("/orders", s.CreateOrders)
	e.POST("/orders/assign", s.AssignOrders)
	e.POST("/orders/complete", s.CompleteOrder)
}

// CreateCouriers handles POST /couriers.
func (s *Server) CreateCouriers(c echo.Context) error {
	items, err := readBulk(c)
	if err != nil {
		return s.badRequest(c, err)
	}

	drafts := make([]commands.CourierDraft, 0, len(items))
	var malformed []int64
	for _, raw := range items {
		var item courierItem
		err := decodeStrict(raw, &item)
		if err == nil && (item.CourierID == nil || item.CourierType == nil || item.Regions == nil || item.WorkingHours == nil) {
			err = errMissingField
		}
		if err != nil {
			malformed = append(malformed, itemID(raw, "courier_id"))
			continue
		}
		drafts = append(drafts, commands.CourierDraft{
			ID:           *item.CourierID,
			VehicleType:  *item.CourierType,
			Regions:      *item.Regions,
			WorkingHours: *item.WorkingHours,
		})
	}

	var cmd commands.CreateCouriersCommand
	if len(drafts) > 0 {
		cmd, err = commands.NewCreateCouriersCommand(drafts)
	}
	if invalid := collectInvalid(malformed, err); len(invalid) > 0 {
		return s.invalidItems(c, "couriers", invalid)
	}
	if err != nil {
		return s.badRequest(c, err)
	}

	ids, err := s.handlers.CreateCouriers.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, map[string][]idItem{"couriers": idItems(ids)})
}

// GetCourier handles GET /couriers/{courier_id}.
func (s *Server) GetCourier(c echo.Context) error {
	courierID, err := bindCourierID(c)
	if err != nil {
		return s.badRequest(c, err)
	}

	query, err := queries.NewGetCourierQuery(courierID)
	if err != nil {
		return s.badRequest(c, err)
	}

	profile, err := s.handlers.GetCourier.Handle(c.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, courierProfileResponse{
		courierResponse: courierResponse{
			CourierID:    profile.ID,
			CourierType:  profile.VehicleType.String(),
			Regions:      profile.Regions,
			WorkingHours: profile.WorkingHours,
		},
		Rating:   profile.Rating,
		Earnings: profile.Earnings,
	})
}

// UpdateCourier handles PATCH /couriers/{courier_id}.
func (s *Server) UpdateCourier(c echo.Context) error {
	courierID, err := bindCourierID(c)
	if err != nil {
		return s.badRequest(c, err)
	}

	var req courierPatchRequest
	if err = readStrict(c, &req); err != nil {
		return s.badRequest(c, err)
	}

	patch := commands.CourierPatch{VehicleType: req.CourierType}
	if req.Regions != nil {
		patch.Regions, patch.HasRegions = *req.Regions, true
	}
	if req.WorkingHours != nil {
		patch.WorkingHours, patch.HasWorkingHours = *req.WorkingHours, true
	}

	cmd, err := commands.NewUpdateCourierCommand(courierID, patch)
	if err != nil {
		return s.badRequest(c, err)
	}

	updated, err := s.handlers.UpdateCourier.Handle(c.Request().Context(), cmd)
	if errors.Is(err, commands.ErrCourierNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toCourierResponse(updated))
}

// CreateOrders handles POST /orders.
func (s *Server) CreateOrders(c echo.Context) error {
	items, err := readBulk(c)
	if err != nil {
		return s.badRequest(c, err)
	}

	drafts := make([]commands.OrderDraft, 0, len(items))
	var malformed []int64
	for _, raw := range items {
		var item orderItem
		err := decodeStrict(raw, &item)
		if err == nil && (item.OrderID == nil || item.Weight == nil || item.Region == nil || item.DeliveryHours == nil) {
			err = errMissingField
		}
		if err != nil {
			malformed = append(malformed, itemID(raw, "order_id"))
			continue
		}
		drafts = append(drafts, commands.OrderDraft{
			ID:            *item.OrderID,
			Weight:        *item.Weight,
			Region:        *item.Region,
			DeliveryHours: *item.DeliveryHours,
		})
	}

	var cmd commands.CreateOrdersCommand
	if len(drafts) > 0 {
		cmd, err = commands.NewCreateOrdersCommand(drafts)
	}
	if invalid := collectInvalid(malformed, err); len(invalid) > 0 {
		return s.invalidItems(c, "orders", invalid)
	}
	if err != nil {
		return s.badRequest(c, err)
	}

	ids, err := s.handlers.CreateOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, map[string][]idItem{"orders": idItems(ids)})
}

// AssignOrders handles POST /orders/assign. A courier with nothing to deliver
// gets an empty order list rather than an error.
func (s *Server) AssignOrders(c echo.Context) error {
	var req assignRequest
	if err := readStrict(c, &req); err != nil {
		return s.badRequest(c, err)
	}

	cmd, err := commands.NewAssignOrdersCommand(req.CourierID)
	if err != nil {
		return s.badRequest(c, err)
	}

	result, err := s.handlers.AssignOrders.Handle(c.Request().Context(), cmd)
	switch {
	case errors.Is(err, commands.ErrNoEligibleOrders):
		return c.JSON(http.StatusOK, assignResponse{Orders: []idItem{}})
	case errors.Is(err, commands.ErrCourierNotFound):
		return s.badRequest(c, err)
	case err != nil:
		return s.fail(c, err)
	}

	if !result.Reused {
		metrics.BatchesIssued.Inc()
		metrics.OrdersAssigned.Add(float64(len(result.OrderIDs)))
	}

	return c.JSON(http.StatusOK, assignResponse{
		Orders:     idItems(result.OrderIDs),
		AssignTime: result.AssignedAt.UTC().Format(time.RFC3339Nano),
	})
}

// CompleteOrder handles POST /orders/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	var req completeRequest
	if err := readStrict(c, &req); err != nil {
		return s.badRequest(c, err)
	}

	completeTime, err := time.Parse(time.RFC3339Nano, req.CompleteTime)
	if err != nil {
		return s.badRequest(c, errs.NewValueIsInvalidErrorWithCause("complete_time", err))
	}

	cmd, err := commands.NewCompleteOrderCommand(req.CourierID, req.OrderID, completeTime)
	if err != nil {
		return s.badRequest(c, err)
	}

	err = s.handlers.CompleteOrder.Handle(c.Request().Context(), cmd)
	switch {
	case errors.Is(err, commands.ErrCourierNotFound),
		errors.Is(err, commands.ErrOrderNotFound),
		errors.Is(err, commands.ErrOrderNotAssigned),
		errors.Is(err, commands.ErrWrongCourier),
		errors.Is(err, commands.ErrOrderAlreadyCompleted):
		return s.badRequest(c, err)
	case err != nil:
		return s.fail(c, err)
	}

	metrics.OrdersCompleted.Inc()

	return c.JSON(http.StatusOK, completeResponse{OrderID: req.OrderID})
}

func (s *Server) badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, validationErrorResponse{
		ValidationError: map[string]any{"message": err.Error()},
	})
}

func (s *Server) invalidItems(c echo.Context, collection string, ids []int64) error {
	return c.JSON(http.StatusBadRequest, validationErrorResponse{
		ValidationError: map[string]any{collection: idItems(ids)},
	})
}

// fail maps unexpected errors. Domain validation failures that reach this
// point are still client errors; everything else is logged and hidden.
func (s *Server) fail(c echo.Context, err error) error {
	var invalid *commands.InvalidItemsError
	if errors.As(err, &invalid) {
		return s.invalidItems(c, invalid.Collection, invalid.IDs)
	}
	if !errors.Is(err, kernel.ErrUnknownVehicleType) && isValidationError(err) {
		return s.badRequest(c, err)
	}

	s.log.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("route", c.Path()),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func isValidationError(err error) bool {
	return errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}

func readBulk(c echo.Context) ([]json.RawMessage, error) {
	var req bulkRequest
	if err := readStrict(c, &req); err != nil {
		return nil, err
	}
	if len(req.Data) == 0 {
		return nil, errs.NewValueIsRequiredError("data")
	}
	return req.Data, nil
}

func readStrict(c echo.Context, dst any) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	if err = decodeStrict(raw, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

func bindCourierID(c echo.Context) (int64, error) {
	var courierID int64
	err := runtime.BindStyledParameterWithOptions("simple", "courier_id", c.Param("courier_id"), &courierID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("courier_id", err)
	}
	return courierID, nil
}

// collectInvalid merges ids of malformed items with the ids rejected by the
// command constructor.
func collectInvalid(malformed []int64, err error) []int64 {
	invalid := append([]int64(nil), malformed...)
	var items *commands.InvalidItemsError
	if errors.As(err, &items) {
		invalid = append(invalid, items.IDs...)
	}
	return invalid
}

func toCourierResponse(c *courier.Courier) courierResponse {
	regions := make([]int64, len(c.Regions()))
	for i, r := range c.Regions() {
		regions[i] = r.Int64()
	}
	return courierResponse{
		CourierID:    c.ID(),
		CourierType:  c.VehicleType().String(),
		Regions:      regions,
		WorkingHours: kernel.FormatTimeWindows(c.WorkingHours()),
	}
}
