package services

import (
	"cmp"
	"math"
	"slices"
	"time"

	"courierdispatch/internal/core/domain/model/kernel"
)

const (
	deliveryBaseRate   = 500
	ratingCeilingSecs  = 3600
	ratingScale        = 5
	ratingDecimalPower = 100
)

// CompletedDelivery is one finished order together with the assign time and the
// frozen vehicle class of the batch it was finished in.
type CompletedDelivery struct {
	OrderID     int64
	Region      kernel.RegionID
	CompletedAt time.Time
	AssignedAt  time.Time
	VehicleType kernel.VehicleType
}

type PerformanceScorer struct{}

func NewPerformanceScorer() PerformanceScorer {
	return PerformanceScorer{}
}

// Rating derives a score in [0, 5] from the fastest average per-region delivery
// time t (seconds): round((3600 - min(t, 3600)) / 3600 * 5, 2).
// The second result is false when there are no deliveries.
func (PerformanceScorer) Rating(deliveries []CompletedDelivery) (float64, bool) {
	if len(deliveries) == 0 {
		return 0, false
	}

	byRegion := make(map[kernel.RegionID][]CompletedDelivery)
	for _, d := range deliveries {
		byRegion[d.Region] = append(byRegion[d.Region], d)
	}

	fastest := int64(math.MaxInt64)
	for _, group := range byRegion {
		fastest = min(fastest, averageSeconds(group))
	}

	t := max(min(fastest, ratingCeilingSecs), 0)
	rating := float64(ratingCeilingSecs-t) / ratingCeilingSecs * ratingScale
	return math.Round(rating*ratingDecimalPower) / ratingDecimalPower, true
}

// Earnings sums 500 * payout rate of the batch vehicle class over every delivery.
func (PerformanceScorer) Earnings(deliveries []CompletedDelivery) (int, error) {
	total := 0
	for _, d := range deliveries {
		rate, err := d.VehicleType.PayoutRate()
		if err != nil {
			return 0, err
		}
		total += deliveryBaseRate * rate
	}
	return total, nil
}

// averageSeconds is the mean time between consecutive completions of a region,
// the first one measured from its batch's assign time, rounded to whole seconds.
func averageSeconds(group []CompletedDelivery) int64 {
	sorted := slices.Clone(group)
	slices.SortStableFunc(sorted, func(a, b CompletedDelivery) int {
		if c := a.CompletedAt.Compare(b.CompletedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.OrderID, b.OrderID)
	})

	var total time.Duration
	prev := sorted[0].AssignedAt
	for _, d := range sorted {
		total += d.CompletedAt.Sub(prev)
		prev = d.CompletedAt
	}

	mean := total.Seconds() / float64(len(sorted))
	return int64(math.Round(mean))
}
