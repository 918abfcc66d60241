package kernel

import (
	"errors"
	"fmt"

	"courierdispatch/internal/pkg/errs"
	"courierdispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const weightPrecision = 2

var (
	minWeight = decimal.NewFromFloat(0.01)
	maxWeight = decimal.NewFromInt(50)

	ErrWeightIsNotConstructed = errors.New("Weight must be created via NewWeight constructor")
)

// Weight of an order in kilograms, at most two fractional digits, in (0, 50].
type Weight struct {
	value decimal.Decimal
	guard guard.ConstructorGuard
}

func NewWeight(value decimal.Decimal) (Weight, error) {
	if !value.Equal(value.Round(weightPrecision)) {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s has more than two decimal places", value))
	}
	if value.LessThan(minWeight) || value.GreaterThan(maxWeight) {
		return Weight{}, errs.NewValueIsOutOfRangeError("weight", value.String(), minWeight.String(), maxWeight.String())
	}
	return Weight{value: value, guard: guard.NewConstructorGuard()}, nil
}

// WeightFromFloat accepts JSON numbers such as 0.23 or 12.
func WeightFromFloat(value float64) (Weight, error) {
	return NewWeight(decimal.NewFromFloat(value))
}

// MustWeight panics on invalid input. Intended for tests and constants.
func MustWeight(s string) Weight {
	w, err := NewWeight(decimal.RequireFromString(s))
	if err != nil {
		panic(err)
	}
	return w
}

func (w Weight) Decimal() decimal.Decimal {
	return w.value
}

func (w Weight) Float64() float64 {
	f, _ := w.value.Float64()
	return f
}

func (w Weight) String() string {
	return w.value.StringFixed(weightPrecision)
}

// FitsInto reports whether the weight does not exceed capacity. The bound is inclusive.
func (w Weight) FitsInto(capacity decimal.Decimal) bool {
	return w.value.LessThanOrEqual(capacity)
}

func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}
