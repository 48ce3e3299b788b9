package service

import (
	"fmt"
	"time"

	"runboard/internal/analysis"
	"runboard/internal/store"
)

// PredictionDisplay represents a formatted prediction for display
type PredictionDisplay struct {
	TargetLabel   string // "5K", "10K", "Half Marathon"
	PredictedTime string // formatted duration "M:SS" or "H:MM:SS"
	PredictedPace string // formatted pace per km, "4:30"
	Delta         string // signed delta vs previous period, "" without one
	IsFaster      bool
}

// OutlookData contains all data needed for the race outlook screen
type OutlookData struct {
	HasPredictions bool

	PeriodLabel string
	PeriodStart string // "Jan 02, 2006"
	PeriodEnd   string

	CTL float64
	TSB float64

	Readiness     int
	ReadinessBand string

	ReferenceRun *store.Activity

	Predictions []PredictionDisplay
}

// Outlook computes race predictions for the period and formats them for
// display. HasPredictions is false when the period holds no qualifying runs.
func (q *QueryService) Outlook(period analysis.Period, now time.Time) (*OutlookData, error) {
	_, runs, err := q.loadRuns()
	if err != nil {
		return nil, err
	}

	now = wallClockUTC(now)

	data := &OutlookData{PeriodLabel: periodLabel(period)}

	outlook := analysis.PredictRaces(runs, period, q.zones, now)
	if outlook == nil {
		return data, nil
	}

	data.HasPredictions = true
	data.PeriodStart = outlook.PeriodStart.Format("Jan 02, 2006")
	data.PeriodEnd = outlook.PeriodEnd.Format("Jan 02, 2006")
	data.CTL = outlook.CTL
	data.TSB = outlook.TSB
	data.Readiness = outlook.Readiness
	data.ReadinessBand = outlook.ReadinessBand

	if ref, err := q.store.GetActivity(outlook.ReferenceID); err == nil {
		data.ReferenceRun = ref
	}

	for _, p := range outlook.Predictions {
		display := PredictionDisplay{
			TargetLabel:   p.Name,
			PredictedTime: FormatDuration(int(p.PredictedSeconds)),
			IsFaster:      p.IsFaster,
		}
		if p.PredictedPace > 0 {
			display.PredictedPace = FormatPace(analysis.MetersPerKm / p.PredictedPace)
		}
		if p.DeltaSeconds != nil {
			display.Delta = FormatDelta(*p.DeltaSeconds)
		}
		data.Predictions = append(data.Predictions, display)
	}

	return data, nil
}

// periodLabel returns a human-readable label for the period selector
func periodLabel(p analysis.Period) string {
	switch p.Mode {
	case analysis.PeriodYear:
		return fmt.Sprintf("%d", p.Year)
	case analysis.PeriodMonth:
		return fmt.Sprintf("%s %d", p.Month, p.Year)
	default:
		return "Last 90 days"
	}
}

// PeriodForNow returns the month period containing now
func PeriodForNow(now time.Time) analysis.Period {
	return analysis.Period{Mode: analysis.PeriodMonth, Year: now.Year(), Month: now.Month()}
}
