package http

import (
	"bytes"
	"encoding/json"
	"errors"
)

type idItem struct {
	ID int64 `json:"id"`
}

type bulkRequest struct {
	Data []json.RawMessage `json:"data"`
}

type courierItem struct {
	CourierID    *int64    `json:"courier_id"`
	CourierType  *string   `json:"courier_type"`
	Regions      *[]int64  `json:"regions"`
	WorkingHours *[]string `json:"working_hours"`
}

type orderItem struct {
	OrderID       *int64    `json:"order_id"`
	Weight        *float64  `json:"weight"`
	Region        *int64    `json:"region"`
	DeliveryHours *[]string `json:"delivery_hours"`
}

type courierPatchRequest struct {
	CourierType  *string   `json:"courier_type"`
	Regions      *[]int64  `json:"regions"`
	WorkingHours *[]string `json:"working_hours"`
}

type courierResponse struct {
	CourierID    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int64  `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

type courierProfileResponse struct {
	courierResponse
	Rating   *float64 `json:"rating,omitempty"`
	Earnings int      `json:"earnings"`
}

type assignRequest struct {
	CourierID int64 `json:"courier_id"`
}

type assignResponse struct {
	Orders     []idItem `json:"orders"`
	AssignTime string   `json:"assign_time,omitempty"`
}

type completeRequest struct {
	CourierID    int64  `json:"courier_id"`
	OrderID      int64  `json:"order_id"`
	CompleteTime string `json:"complete_time"`
}

type completeResponse struct {
	OrderID int64 `json:"order_id"`
}

type validationErrorResponse struct {
	ValidationError map[string]any `json:"validation_error"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var errMissingField = errors.New("required field is missing")

// decodeStrict rejects unknown fields and trailing data.
func decodeStrict(raw []byte, dst any) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if decoder.More() {
		return errors.New("unexpected data after the object")
	}
	return nil
}

// itemID extracts an item id for error reporting even when the rest of the
// item is malformed.
func itemID(raw []byte, field string) int64 {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0
	}
	var id int64
	_ = json.Unmarshal(probe[field], &id)
	return id
}

func idItems(ids []int64) []idItem {
	items := make([]idItem, len(ids))
	for i, id := range ids {
		items[i] = idItem{ID: id}
	}
	return items
}
