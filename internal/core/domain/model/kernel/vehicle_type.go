package kernel

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnknownVehicleType is returned when a vehicle class has no capacity or payout rate mapping.
var ErrUnknownVehicleType = errors.New("unknown vehicle type")

type VehicleType string

const (
	Foot VehicleType = "foot"
	Bike VehicleType = "bike"
	Car  VehicleType = "car"
)

type vehicleTraits struct {
	capacity   int64
	payoutRate int
}

var vehicleTable = map[VehicleType]vehicleTraits{
	Foot: {capacity: 10, payoutRate: 2},
	Bike: {capacity: 15, payoutRate: 5},
	Car:  {capacity: 50, payoutRate: 9},
}

// ParseVehicleType converts the wire representation ("foot", "bike", "car").
func ParseVehicleType(s string) (VehicleType, error) {
	v := VehicleType(s)
	if _, ok := vehicleTable[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVehicleType, s)
	}
	return v, nil
}

func (v VehicleType) String() string {
	return string(v)
}

// LoadCapacity is the maximum order weight the vehicle class may carry.
func (v VehicleType) LoadCapacity() (decimal.Decimal, error) {
	traits, ok := vehicleTable[v]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownVehicleType, string(v))
	}
	return decimal.NewFromInt(traits.capacity), nil
}

// PayoutRate is the earnings multiplier applied to every finished order.
func (v VehicleType) PayoutRate() (int, error) {
	traits, ok := vehicleTable[v]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVehicleType, string(v))
	}
	return traits.payoutRate, nil
}
