package analysis

import (
	"math"
	"time"

	"runboard/internal/store"
)

// riegelExponent is the empirical endurance fatigue exponent
const riegelExponent = 1.06

// Readiness sub-score windows, in days
const (
	qualityWindowDays = 28
	longRunWindowDays = 14
)

// Riegel extrapolates a reference performance to another distance:
// t2 = t1 * (d2/d1)^1.06. Returns 0 for non-positive inputs.
func Riegel(t1, d1, d2 float64) float64 {
	if t1 <= 0 || d1 <= 0 || d2 <= 0 {
		return 0
	}
	return t1 * math.Pow(d2/d1, riegelExponent)
}

// PeriodMode selects how the prediction window is derived
type PeriodMode string

const (
	PeriodAll   PeriodMode = "all"
	PeriodYear  PeriodMode = "year"
	PeriodMonth PeriodMode = "month"
)

// Period selects the activity window race predictions are computed over
type Period struct {
	Mode  PeriodMode
	Year  int
	Month time.Month
}

// PredictionTarget is a standard race distance
type PredictionTarget struct {
	Name   string
	Meters float64
}

// PredictionTargets defines the distances predictions are produced for
var PredictionTargets = []PredictionTarget{
	{"5K", Distance5K},
	{"10K", Distance10K},
	{"Half Marathon", DistanceHalf},
}

// RacePrediction is a predicted time for one target distance
type RacePrediction struct {
	Name             string
	TargetMeters     float64
	PredictedSeconds float64
	PredictedPace    float64  // m/s at the predicted time
	DeltaSeconds     *float64 // vs the previous period, nil without one
	IsFaster         bool
}

// RaceOutlook is the full predictor output for a period
type RaceOutlook struct {
	PeriodStart time.Time
	PeriodEnd   time.Time

	CTL float64
	TSB float64

	AveragePace float64 // distance-weighted, seconds per meter
	ReferenceID int64   // longest run backing the extrapolation

	Predictions []RacePrediction

	Readiness     int
	ReadinessBand string
}

// periodWindows resolves the current and previous comparison windows for a
// period selector. Ends are clamped to "now" when the selected period is
// still in progress. All bounds are inclusive date-only days.
func periodWindows(p Period, now time.Time) (curStart, curEnd, prevStart, prevEnd time.Time) {
	today := dateOnly(now)

	switch p.Mode {
	case PeriodMonth:
		curStart = time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
		curEnd = curStart.AddDate(0, 1, -1)
		prevStart = curStart.AddDate(0, -1, 0)
		prevEnd = curStart.AddDate(0, 0, -1)
	case PeriodYear:
		curStart = time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		curEnd = time.Date(p.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
		prevStart = curStart.AddDate(-1, 0, 0)
		prevEnd = curStart.AddDate(0, 0, -1)
	default: // PeriodAll: trailing 90 days vs the 90 before that
		curEnd = today
		curStart = curEnd.AddDate(0, 0, -89)
		prevEnd = curStart.AddDate(0, 0, -1)
		prevStart = prevEnd.AddDate(0, 0, -89)
	}

	if curEnd.After(today) {
		curEnd = today
	}
	return
}

// PredictRaces extrapolates the period's best reference run to the standard
// race distances, adjusted for current fitness and freshness. The CTL/TSB
// anchor is replayed over the entire history, not just the selected window,
// so it reflects true accumulated fitness. Returns nil when the window has
// no qualifying runs.
func PredictRaces(activities []store.Activity, period Period, zones HRZones, now time.Time) *RaceOutlook {
	curStart, curEnd, prevStart, prevEnd := periodWindows(period, now)

	var ctl, tsb float64
	if fitness, ok := CurrentFitness(activities, zones, curEnd); ok {
		ctl = fitness.CTL
		tsb = fitness.TSB
	}

	curRuns := runsBetween(activities, curStart, curEnd)
	var totalDist, totalTime float64
	for _, a := range curRuns {
		totalDist += a.Distance
		totalTime += a.MovingTime
	}
	if len(curRuns) == 0 || totalDist <= 0 {
		return nil
	}

	reference := longestRun(curRuns)
	if reference == nil || reference.MovingTime <= 0 {
		return nil
	}

	fitnessMult := fitnessMultiplier(ctl)
	freshnessMult := freshnessMultiplier(tsb)

	// Unadjusted baseline from the previous period, if it had any runs
	var prevRef *store.Activity
	if prevRuns := runsBetween(activities, prevStart, prevEnd); len(prevRuns) > 0 {
		prevRef = longestRun(prevRuns)
	}

	outlook := &RaceOutlook{
		PeriodStart: curStart,
		PeriodEnd:   curEnd,
		CTL:         ctl,
		TSB:         tsb,
		AveragePace: totalTime / totalDist,
		ReferenceID: reference.ID,
	}

	for _, target := range PredictionTargets {
		base := Riegel(reference.MovingTime, reference.Distance, target.Meters)
		if base <= 0 {
			continue
		}
		predicted := base * fitnessMult * freshnessMult

		p := RacePrediction{
			Name:             target.Name,
			TargetMeters:     target.Meters,
			PredictedSeconds: predicted,
			PredictedPace:    target.Meters / predicted,
		}

		if prevRef != nil && prevRef.MovingTime > 0 {
			if prevBase := Riegel(prevRef.MovingTime, prevRef.Distance, target.Meters); prevBase > 0 {
				delta := predicted - prevBase
				p.DeltaSeconds = &delta
				p.IsFaster = delta < 0
			}
		}

		outlook.Predictions = append(outlook.Predictions, p)
	}

	periodAvgSpeed := totalDist / totalTime
	outlook.Readiness = ReadinessScore(activities, zones, curEnd, ctl, tsb, periodAvgSpeed)
	outlook.ReadinessBand = ReadinessBand(outlook.Readiness)

	return outlook
}

// fitnessMultiplier scales predicted times by chronic load: a well-trained
// athlete beats a cold Riegel extrapolation, a detrained one misses it.
func fitnessMultiplier(ctl float64) float64 {
	switch {
	case ctl > 40:
		return 0.98
	case ctl > 25:
		return 0.99
	case ctl < 10:
		return 1.02
	default:
		return 1.0
	}
}

// freshnessMultiplier scales predicted times by form
func freshnessMultiplier(tsb float64) float64 {
	switch {
	case tsb > 15:
		return 0.985
	case tsb > 5:
		return 0.99
	case tsb < -15:
		return 1.03
	case tsb < -5:
		return 1.015
	default:
		return 1.0
	}
}

// longestRun returns the run covering the most distance, breaking ties by
// lower ID for determinism.
func longestRun(runs []store.Activity) *store.Activity {
	var best *store.Activity
	for i := range runs {
		a := &runs[i]
		if a.Distance <= 0 {
			continue
		}
		if best == nil || a.Distance > best.Distance ||
			(a.Distance == best.Distance && a.ID < best.ID) {
			best = a
		}
	}
	return best
}

// ReadinessScore composes a 0-100 race readiness from four weighted
// sub-scores as of the anchor date: base fitness (CTL, 35), freshness
// centered on a TSB of +8 (25), quality-session density over the trailing
// 28 days (20), and long-run support over the trailing 14 days (20).
// periodAvgSpeed is the selected period's distance-weighted average speed,
// the relative baseline for quality-run detection.
func ReadinessScore(activities []store.Activity, zones HRZones, anchor time.Time, ctl, tsb, periodAvgSpeed float64) int {
	fitness := clamp((ctl-8)/32, 0, 1) * 35
	freshness := (1 - clamp(math.Abs(tsb-8)/25, 0, 1)) * 25

	qStart, qEnd := trailingWindow(anchor, qualityWindowDays)
	var qualityCount int
	for _, a := range runsBetween(activities, qStart, qEnd) {
		if isQualityRun(a, zones, periodAvgSpeed) {
			qualityCount++
		}
	}
	quality := clamp(float64(qualityCount)/6, 0, 1) * 20

	lStart, lEnd := trailingWindow(anchor, longRunWindowDays)
	var longestKm float64
	for _, a := range runsBetween(activities, lStart, lEnd) {
		if km := a.Distance / MetersPerKm; km > longestKm {
			longestKm = km
		}
	}
	longRun := clamp(longestKm/16, 0, 1) * 20

	return int(math.Round(fitness + freshness + quality + longRun))
}

// isQualityRun detects a hard session: at least 5K, pushed either by heart
// rate, by pace relative to the period average, or by perceived effort.
func isQualityRun(a store.Activity, zones HRZones, periodAvgSpeed float64) bool {
	if a.Distance < Distance5K {
		return false
	}
	if a.AverageHeartrate != nil && *a.AverageHeartrate >= 0.82*zones.MaxHR {
		return true
	}
	if periodAvgSpeed > 0 && activitySpeed(a) >= 1.03*periodAvgSpeed {
		return true
	}
	if a.SufferScore != nil && *a.SufferScore >= 50 {
		return true
	}
	return false
}

// activitySpeed prefers the recorded average speed, deriving it when absent
func activitySpeed(a store.Activity) float64 {
	if a.AverageSpeed > 0 {
		return a.AverageSpeed
	}
	if a.MovingTime > 0 {
		return a.Distance / a.MovingTime
	}
	return 0
}

// ReadinessBand classifies a readiness score
func ReadinessBand(score int) string {
	switch {
	case score >= 75:
		return "ready"
	case score >= 55:
		return "building"
	default:
		return "base"
	}
}
