package services_test

import (
	"testing"

	"courierdispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestIntervalMatcher_Overlaps(t *testing.T) {
	matcher := services.NewIntervalMatcher()

	tests := []struct {
		name     string
		working  []string
		delivery string
		want     bool
	}{
		{name: "delivery starts inside shift", working: []string{"09:00-12:00"}, delivery: "11:00-14:00", want: true},
		{name: "delivery ends inside shift", working: []string{"09:00-12:00"}, delivery: "07:00-10:00", want: true},
		{name: "delivery covers shift", working: []string{"10:00-11:00"}, delivery: "09:00-12:00", want: true},
		{name: "identical windows", working: []string{"09:00-12:00"}, delivery: "09:00-12:00", want: true},
		{name: "delivery inside shift", working: []string{"09:00-12:00"}, delivery: "10:00-11:00", want: true},
		{name: "touching at shift end", working: []string{"09:00-12:00"}, delivery: "12:00-14:00", want: false},
		{name: "touching at shift start", working: []string{"09:00-12:00"}, delivery: "08:00-09:00", want: false},
		{name: "disjoint", working: []string{"09:00-12:00"}, delivery: "13:00-14:00", want: false},
		{
			name:     "shifts only touch delivery",
			working:  []string{"08:00-09:00", "17:00-18:00"},
			delivery: "09:00-12:00",
			want:     false,
		},
		{
			name:     "one minute past the touching point",
			working:  []string{"08:00-09:01", "17:00-18:00"},
			delivery: "09:00-12:00",
			want:     true,
		},
		{name: "second shift matches", working: []string{"06:00-07:00", "19:00-21:00"}, delivery: "20:00-23:00", want: true},
		{name: "no shifts", working: nil, delivery: "09:00-12:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			working := windows(t, tt.working...)

			assert.Equal(t, tt.want, matcher.Overlaps(working, window(t, tt.delivery)))
		})
	}
}

func TestIntervalMatcher_IsSuitable(t *testing.T) {
	matcher := services.NewIntervalMatcher()
	working := windows(t, "09:00-12:00", "18:00-20:00")

	t.Run("any delivery window is enough", func(t *testing.T) {
		o := newOrder(t, 1, "1", 1, "13:00-14:00", "19:00-20:00")

		assert.True(t, matcher.IsSuitable(o, working))
	})

	t.Run("no delivery window fits", func(t *testing.T) {
		o := newOrder(t, 1, "1", 1, "12:00-14:00", "20:00-21:00")

		assert.False(t, matcher.IsSuitable(o, working))
	})
}
