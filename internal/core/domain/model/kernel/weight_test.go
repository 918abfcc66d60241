package kernel_test

import (
	"testing"

	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalOf(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestNewWeight(t *testing.T) {
	t.Run("accepts bounds", func(t *testing.T) {
		low, err := kernel.WeightFromFloat(0.01)
		require.NoError(t, err)
		assert.Equal(t, "0.01", low.String())

		high, err := kernel.WeightFromFloat(50)
		require.NoError(t, err)
		assert.Equal(t, "50.00", high.String())
	})

	t.Run("rejects zero and above fifty", func(t *testing.T) {
		_, err := kernel.WeightFromFloat(0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = kernel.WeightFromFloat(50.01)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects more than two decimals", func(t *testing.T) {
		_, err := kernel.WeightFromFloat(1.234)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestWeight_FitsInto(t *testing.T) {
	capacity := decimalOf(10)

	assert.True(t, kernel.MustWeight("10").FitsInto(capacity))
	assert.True(t, kernel.MustWeight("9.99").FitsInto(capacity))
	assert.False(t, kernel.MustWeight("10.01").FitsInto(capacity))
}

func TestWeight_ZeroValue(t *testing.T) {
	var w kernel.Weight

	assert.ErrorIs(t, w.Validate(), kernel.ErrWeightIsNotConstructed)
}
