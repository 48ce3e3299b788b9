package analysis

import (
	"math"
	"time"

	"runboard/internal/store"
)

// DayMetric is one day of the training load history
type DayMetric struct {
	Date  string  // YYYY-MM-DD
	CTL   float64 // Chronic Training Load (42-day decay) - "Fitness"
	ATL   float64 // Acute Training Load (7-day decay) - "Fatigue"
	TSB   float64 // Training Stress Balance (CTL - ATL) - "Form"
	TRIMP float64 // that day's bucketed load
}

// TrainingLoadHistory expands daily TRIMP buckets into one metric per
// calendar day of [windowStart, windowEnd]. CTL and ATL are cumulative
// recurrences, so decay is replayed from the earliest bucketed date even
// when it precedes the window; starting mid-history would understate
// fitness near the window start. Rest days carry no load but still decay
// the accumulated state. Returns nil when there are no loads at all.
func TrainingLoadHistory(dailyLoads map[string]float64, windowStart, windowEnd time.Time) []DayMetric {
	if len(dailyLoads) == 0 {
		return nil
	}

	var earliest time.Time
	for key := range dailyLoads {
		d, err := time.Parse("2006-01-02", key)
		if err != nil {
			continue
		}
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
	}
	if earliest.IsZero() {
		return nil
	}

	start := dateOnly(windowStart)
	end := dateOnly(windowEnd)
	replayFrom := start
	if earliest.Before(replayFrom) {
		replayFrom = earliest
	}

	// Per-day retention for each decay constant
	ctlKeep := math.Exp(-1.0 / CTLTimeConstant)
	atlKeep := math.Exp(-1.0 / ATLTimeConstant)

	var metrics []DayMetric
	var ctl, atl float64

	for d := replayFrom; !d.After(end); d = d.AddDate(0, 0, 1) {
		load := dailyLoads[d.Format("2006-01-02")]

		ctl = ctl*ctlKeep + load*(1-ctlKeep)
		atl = atl*atlKeep + load*(1-atlKeep)

		if d.Before(start) {
			continue
		}

		metrics = append(metrics, DayMetric{
			Date:  d.Format("2006-01-02"),
			CTL:   round1(ctl),
			ATL:   round1(atl),
			TSB:   round1(ctl - atl),
			TRIMP: load,
		})
	}

	return metrics
}

// CurrentFitness returns the CTL/ATL/TSB state as of the anchor date,
// replayed over the full activity history. ok is false when there is no
// run history to replay.
func CurrentFitness(activities []store.Activity, zones HRZones, anchor time.Time) (DayMetric, bool) {
	loads := DailyLoads(activities, zones)
	history := TrainingLoadHistory(loads, anchor, anchor)
	if len(history) == 0 {
		return DayMetric{}, false
	}
	return history[len(history)-1], true
}

// FormDescription returns a human-readable description of TSB
func FormDescription(tsb float64) string {
	switch {
	case tsb > 25:
		return "Very fresh (possibly detrained)"
	case tsb > 10:
		return "Fresh and ready to race"
	case tsb > 0:
		return "Neutral - good for training"
	case tsb > -10:
		return "Slightly fatigued"
	case tsb > -25:
		return "Tired but building fitness"
	default:
		return "Very fatigued - rest needed"
	}
}
