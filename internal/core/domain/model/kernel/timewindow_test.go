package kernel_test

import (
	"testing"

	"courierdispatch/internal/core/domain/model/kernel"
	"courierdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeWindow(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart int
		wantEnd   int
		wantErr   bool
	}{
		{name: "morning window", input: "09:00-11:30", wantStart: 540, wantEnd: 690},
		{name: "whole day", input: "00:00-23:59", wantStart: 0, wantEnd: 1439},
		{name: "missing separator", input: "09:00", wantErr: true},
		{name: "single digit hour", input: "9:00-11:00", wantErr: true},
		{name: "hour out of range", input: "09:00-24:00", wantErr: true},
		{name: "minute out of range", input: "09:60-10:00", wantErr: true},
		{name: "empty window", input: "10:00-10:00", wantErr: true},
		{name: "crosses midnight", input: "22:00-02:00", wantErr: true},
		{name: "garbage", input: "ab:cd-ef:gh", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := kernel.ParseTimeWindow(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, w.StartMinute())
			assert.Equal(t, tt.wantEnd, w.EndMinute())
			assert.Equal(t, tt.input, w.String())
			assert.NoError(t, w.Validate())
		})
	}
}

func TestNewTimeWindow_OutOfRange(t *testing.T) {
	_, err := kernel.NewTimeWindow(-1, 10)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = kernel.NewTimeWindow(10, 24*60)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestParseTimeWindows(t *testing.T) {
	t.Run("parses all entries", func(t *testing.T) {
		windows, err := kernel.ParseTimeWindows([]string{"09:00-11:00", "14:00-18:00"})

		require.NoError(t, err)
		assert.Equal(t, []string{"09:00-11:00", "14:00-18:00"}, kernel.FormatTimeWindows(windows))
	})

	t.Run("joins every failure", func(t *testing.T) {
		_, err := kernel.ParseTimeWindows([]string{"bad", "09:00-11:00", "12:00-11:00"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad")
		assert.Contains(t, err.Error(), "12:00")
	})
}

func TestTimeWindow_ZeroValue(t *testing.T) {
	var w kernel.TimeWindow

	assert.ErrorIs(t, w.Validate(), kernel.ErrTimeWindowIsNotConstructed)
}
