package analysis

import (
	"math"

	"runboard/internal/store"
)

// Sex selects the Banister coefficient pair
type Sex int

const (
	Male Sex = iota
	Female
)

// HRZones holds the athlete heart rate inputs used for TRIMP scoring
type HRZones struct {
	RestingHR float64
	MaxHR     float64
	Sex       Sex
}

// DefaultZones returns sensible defaults if not configured
func DefaultZones() HRZones {
	return HRZones{
		RestingHR: 60,
		MaxHR:     185,
		Sex:       Male,
	}
}

// trimpCoefficients returns the Banister (a, b) pair for the athlete's sex
func trimpCoefficients(sex Sex) (float64, float64) {
	if sex == Female {
		return 0.86, 1.67
	}
	return 0.64, 1.92
}

// moderateEffortReserve is the heart-rate-reserve fraction assumed when an
// activity carries neither heart rate nor a perceived-effort score
const moderateEffortReserve = 0.6

// TRIMP calculates the Banister training impulse for a steady effort:
// duration (min) * HRR * a * e^(b * HRR), rounded to a whole score.
// Returns 0 when the heart rate inputs are nonsensical.
func TRIMP(durationMinutes, avgHR float64, zones HRZones) float64 {
	if avgHR <= zones.RestingHR || zones.MaxHR <= zones.RestingHR {
		return 0
	}

	hrr := clamp((avgHR-zones.RestingHR)/(zones.MaxHR-zones.RestingHR), 0, 1)
	a, b := trimpCoefficients(zones.Sex)

	return math.Round(durationMinutes * hrr * a * math.Exp(b*hrr))
}

// ActivityTRIMP scores a single activity. Preference order: recorded heart
// rate, then the provider's perceived-effort score taken verbatim, then a
// flat moderate-effort estimate from duration alone. The order is a
// contract: every downstream fitness number depends on it.
func ActivityTRIMP(a store.Activity, zones HRZones) float64 {
	minutes := a.MovingTime / 60

	if a.AverageHeartrate != nil && *a.AverageHeartrate > 0 {
		return TRIMP(minutes, *a.AverageHeartrate, zones)
	}

	if a.SufferScore != nil && *a.SufferScore > 0 {
		return *a.SufferScore
	}

	estimatedHR := zones.RestingHR + moderateEffortReserve*(zones.MaxHR-zones.RestingHR)
	return TRIMP(minutes, estimatedHR, zones)
}

// DailyLoads buckets run TRIMP by local calendar date. Multiple runs on one
// day sum into a single bucket. Keys are YYYY-MM-DD; bucketing truncates
// the local timestamp string directly since only the date portion matters.
func DailyLoads(activities []store.Activity, zones HRZones) map[string]float64 {
	loads := make(map[string]float64)

	for _, a := range activities {
		if !IsRunLike(a) {
			continue
		}
		key := DateKeyFromTimestamp(a.StartDateLocal)
		if key == "" {
			continue
		}
		loads[key] += ActivityTRIMP(a, zones)
	}

	return loads
}
