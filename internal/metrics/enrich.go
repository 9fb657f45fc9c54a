// Package metrics computes derived per-video metrics from canonical
// records without mutating the inputs: interaction rate, publish hour and
// the categorical fans bucket.
package metrics

import (
	"math"

	"douyinsight/domain/record"
)

// BucketLabels are the fans-count histogram buckets, low to high. Ranges
// are half-open on the right: a fans count of exactly 100 belongs to
// "100-999", not "0-99".
var BucketLabels = []string{"0-99", "100-999", "1000-9999", "10000-99999", "100000+"}

var bucketUpperBounds = []int64{100, 1000, 10000, 100000}

// EnrichedVideo is a canonical video plus derived fields. PublishHour is
// -1 when the publish time is unknown; such records are excluded from
// time-based aggregations.
type EnrichedVideo struct {
	record.Video
	InteractionRate float64 `json:"interaction_rate"`
	PublishHour     int     `json:"publish_hour"`
	FansBucket      string  `json:"fans_bucket"`
}

// FansBucket assigns the categorical bucket for a fans count. Negative
// input is treated as 0, the normalizer's default for invalid counters.
func FansBucket(fans int64) string {
	for i, bound := range bucketUpperBounds {
		if fans < bound {
			return BucketLabels[i]
		}
	}
	return BucketLabels[len(BucketLabels)-1]
}

// InteractionRate divides total engagement by the fan count, flooring the
// divisor at 1 so a zero fan count yields the same ratio as one fan.
func InteractionRate(v record.Video) float64 {
	fans := v.FansCount
	if fans < 1 {
		fans = 1
	}
	return float64(v.TotalInteractions()) / float64(fans)
}

// Enrich computes derived fields for every record. Degenerate interaction
// rates (NaN or infinite, possible with corrupted inputs) are replaced by
// the column mean of the valid values, or 0 when no valid value exists.
// The regression preprocessing applies the same repair.
func Enrich(videos []record.Video) []EnrichedVideo {
	enriched := make([]EnrichedVideo, len(videos))
	rates := make([]float64, len(videos))

	for i, v := range videos {
		rates[i] = InteractionRate(v)

		hour := -1
		if v.PublishTime != nil {
			hour = v.PublishTime.Hour()
		}

		enriched[i] = EnrichedVideo{
			Video:       v,
			PublishHour: hour,
			FansBucket:  FansBucket(v.FansCount),
		}
	}

	RepairColumn(rates)
	for i := range enriched {
		enriched[i].InteractionRate = rates[i]
	}
	return enriched
}

// RepairColumn replaces NaN/Inf entries in place with the mean of the
// finite entries, or 0 when the column has no finite value.
func RepairColumn(vals []float64) {
	var sum float64
	var n int
	for _, v := range vals {
		if isFinite(v) {
			sum += v
			n++
		}
	}

	fill := 0.0
	if n > 0 {
		fill = sum / float64(n)
	}
	for i, v := range vals {
		if !isFinite(v) {
			vals[i] = fill
		}
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
