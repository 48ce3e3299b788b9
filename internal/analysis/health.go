package analysis

import (
	"math"
	"time"

	"runboard/internal/store"
)

// Health metric windows, in days
const (
	rampWindowDays       = 7
	efficiencyWindowDays = 28
	gapTrendWindowDays   = 14
	consistencyWeeks     = 6
)

// runsBetween returns the run-like activities whose local calendar day
// falls in [start, end], both inclusive date-only bounds.
func runsBetween(activities []store.Activity, start, end time.Time) []store.Activity {
	var runs []store.Activity
	for _, a := range activities {
		if !IsRunLike(a) {
			continue
		}
		d := activityDate(a)
		if d.IsZero() || d.Before(start) || d.After(end) {
			continue
		}
		runs = append(runs, a)
	}
	return runs
}

// trailingWindow returns the date-only bounds of the n-day window ending at
// the anchor, inclusive.
func trailingWindow(anchor time.Time, days int) (time.Time, time.Time) {
	end := dateOnly(anchor)
	return end.AddDate(0, 0, -(days - 1)), end
}

// ACWR returns the acute:chronic workload ratio as of the anchor date: the
// latest ATL over CTL from a full-history load replay. Returns nil when
// there are no runs or chronic load is not yet established.
func ACWR(activities []store.Activity, zones HRZones, anchor time.Time) *float64 {
	loads := DailyLoads(activities, zones)
	history := TrainingLoadHistory(loads, anchor, anchor)
	if len(history) == 0 {
		return nil
	}

	latest := history[len(history)-1]
	if latest.CTL <= 0 {
		return nil
	}

	ratio := round2(latest.ATL / latest.CTL)
	return &ratio
}

// ACWRBand classifies an acute:chronic ratio into its risk band
func ACWRBand(acwr float64) string {
	switch {
	case acwr > 1.5:
		return "high"
	case acwr > 1.3:
		return "caution"
	case acwr >= 0.8:
		return "balanced"
	default:
		return "low"
	}
}

// WeeklyRamp compares trailing-week distance against the week before
type WeeklyRamp struct {
	RampKm      float64
	RampPercent *float64 // nil when the previous week had no distance
}

// Ramp computes the week-over-week distance change ending at the anchor
// date: the trailing 7 local calendar days versus the preceding 7.
func Ramp(activities []store.Activity, anchor time.Time) WeeklyRamp {
	curStart, curEnd := trailingWindow(anchor, rampWindowDays)
	prevEnd := curStart.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(rampWindowDays - 1))

	current := totalDistanceKm(runsBetween(activities, curStart, curEnd))
	previous := totalDistanceKm(runsBetween(activities, prevStart, prevEnd))

	ramp := WeeklyRamp{RampKm: current - previous}
	if previous > 0 {
		pct := ramp.RampKm / previous * 100
		ramp.RampPercent = &pct
	}
	return ramp
}

// ConsistencyScore scores 0-100 how regular training has been over the
// trailing six weekly buckets: 65% weekly run frequency (four runs a week
// scores full marks), 35% week-to-week stability (one minus the
// coefficient of variation of weekly run counts). All buckets empty
// scores 0.
func ConsistencyScore(activities []store.Activity, anchor time.Time) int {
	counts := make([]float64, consistencyWeeks)
	total := 0.0

	end := dateOnly(anchor)
	for w := 0; w < consistencyWeeks; w++ {
		weekEnd := end.AddDate(0, 0, -7*w)
		weekStart := weekEnd.AddDate(0, 0, -6)
		n := float64(len(runsBetween(activities, weekStart, weekEnd)))
		counts[w] = n
		total += n
	}

	if total == 0 {
		return 0
	}

	mean := total / consistencyWeeks
	frequency := math.Min(1, mean/4)

	var variance float64
	for _, n := range counts {
		variance += (n - mean) * (n - mean)
	}
	stdDev := math.Sqrt(variance / consistencyWeeks)
	cov := stdDev / mean
	stability := math.Max(0, 1-math.Min(cov, 1))

	return int(math.Round(100 * (0.65*frequency + 0.35*stability)))
}

// LongRunRatio returns the longest run's share of trailing-week distance as
// a percentage, or nil when the week is empty.
func LongRunRatio(activities []store.Activity, anchor time.Time) *float64 {
	start, end := trailingWindow(anchor, rampWindowDays)
	runs := runsBetween(activities, start, end)

	var totalKm, longestKm float64
	for _, a := range runs {
		km := a.Distance / MetersPerKm
		totalKm += km
		if km > longestKm {
			longestKm = km
		}
	}

	if totalKm <= 0 {
		return nil
	}

	ratio := longestKm / totalKm * 100
	return &ratio
}

// EfficiencyIndex returns meters covered per heartbeat over the trailing 28
// days, counting only runs with a recorded positive heart rate. Higher is
// more economical. Returns nil when no heartbeats accumulated.
func EfficiencyIndex(activities []store.Activity, anchor time.Time) *float64 {
	start, end := trailingWindow(anchor, efficiencyWindowDays)

	var meters, beats float64
	for _, a := range runsBetween(activities, start, end) {
		if a.AverageHeartrate == nil || *a.AverageHeartrate <= 0 {
			continue
		}
		beats += *a.AverageHeartrate / 60 * a.MovingTime
		meters += a.Distance
	}

	if beats <= 0 {
		return nil
	}

	index := meters / beats
	return &index
}

// GAPTrend compares the average estimated grade-adjusted pace over the
// trailing 14 days against the prior 14 days. The result is a signed
// seconds-per-km delta; negative means faster. Returns nil when either
// window has no usable runs.
func GAPTrend(activities []store.Activity, anchor time.Time) *float64 {
	curStart, curEnd := trailingWindow(anchor, gapTrendWindowDays)
	prevEnd := curStart.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(gapTrendWindowDays - 1))

	current, okCur := averageEstimatedGAP(runsBetween(activities, curStart, curEnd))
	previous, okPrev := averageEstimatedGAP(runsBetween(activities, prevStart, prevEnd))
	if !okCur || !okPrev {
		return nil
	}

	delta := (current - previous) * MetersPerKm
	return &delta
}

// averageEstimatedGAP averages the summary GAP pace (seconds per meter)
// across runs where it is computable.
func averageEstimatedGAP(runs []store.Activity) (float64, bool) {
	var sum float64
	var count int
	for _, a := range runs {
		if pace := EstimatedGAPPace(a); pace > 0 {
			sum += pace
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func totalDistanceKm(runs []store.Activity) float64 {
	var km float64
	for _, a := range runs {
		km += a.Distance / MetersPerKm
	}
	return km
}
