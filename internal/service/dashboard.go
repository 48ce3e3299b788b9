package service

import (
	"time"

	"runboard/internal/analysis"
	"runboard/internal/store"
)

// DashboardData contains all data needed for the dashboard
type DashboardData struct {
	// Current fitness
	HasFitness      bool
	CTL             float64
	ATL             float64
	TSB             float64
	FormDescription string

	// Health panel
	ACWR         *float64
	ACWRBand     string
	RampKm       float64
	RampPercent  *float64
	Consistency  int
	LongRunRatio *float64
	Efficiency   *float64
	GAPTrend     *float64 // seconds per km, negative is faster

	// This week (Monday start)
	WeekRunCount   int
	WeekDistanceKm float64
	WeekTime       int // seconds

	// Recent activities, newest first
	RecentRuns []store.Activity

	// For charts
	CTLHistory   []float64
	ATLHistory   []float64
	ChartDates   []string  // date keys aligned with CTL/ATL history
	WeeklyKm     []float64 // last 12 weeks of distance
	WeeklyLabels []string  // week labels (e.g., "Jan 06")
}

// Dashboard computes all dashboard data as of the given anchor time.
func (q *QueryService) Dashboard(anchor time.Time) (*DashboardData, error) {
	_, runs, err := q.loadRuns()
	if err != nil {
		return nil, err
	}

	// Activity timestamps parse as wall-clock UTC, so the anchor has to be
	// compared the same way.
	anchor = wallClockUTC(anchor)

	data := &DashboardData{}

	if fitness, ok := analysis.CurrentFitness(runs, q.zones, anchor); ok {
		data.HasFitness = true
		data.CTL = fitness.CTL
		data.ATL = fitness.ATL
		data.TSB = fitness.TSB
		data.FormDescription = analysis.FormDescription(fitness.TSB)
	}

	data.ACWR = analysis.ACWR(runs, q.zones, anchor)
	if data.ACWR != nil {
		data.ACWRBand = analysis.ACWRBand(*data.ACWR)
	}
	ramp := analysis.Ramp(runs, anchor)
	data.RampKm = ramp.RampKm
	data.RampPercent = ramp.RampPercent
	data.Consistency = analysis.ConsistencyScore(runs, anchor)
	data.LongRunRatio = analysis.LongRunRatio(runs, anchor)
	data.Efficiency = analysis.EfficiencyIndex(runs, anchor)
	data.GAPTrend = analysis.GAPTrend(runs, anchor)

	data.WeekRunCount, data.WeekDistanceKm, data.WeekTime = weekStats(runs, anchor)
	data.RecentRuns = recentRuns(runs, RecentRunsLimit)
	data.CTLHistory, data.ATLHistory, data.ChartDates = buildLoadHistory(runs, q.zones, anchor)
	data.WeeklyKm, data.WeeklyLabels = buildWeeklyChart(runs, anchor)

	return data, nil
}

// buildLoadHistory builds the CTL/ATL chart series for the last 90 days
func buildLoadHistory(runs []store.Activity, zones analysis.HRZones, anchor time.Time) (ctl, atl []float64, dates []string) {
	loads := analysis.DailyLoads(runs, zones)
	windowStart := anchor.AddDate(0, 0, -(LoadChartDays - 1))
	history := analysis.TrainingLoadHistory(loads, windowStart, anchor)

	for _, day := range history {
		ctl = append(ctl, day.CTL)
		atl = append(atl, day.ATL)
		dates = append(dates, day.Date)
	}
	return ctl, atl, dates
}

// weekStats sums the current week's runs (Monday start)
func weekStats(runs []store.Activity, anchor time.Time) (runCount int, distanceKm float64, totalTime int) {
	weekStart := getMonday(anchor)

	for _, a := range runs {
		started := analysis.ParseLocalDate(a.StartDateLocal)
		if started.IsZero() || started.Before(weekStart) || started.After(anchor) {
			continue
		}
		runCount++
		distanceKm += a.Distance / analysis.MetersPerKm
		totalTime += int(a.MovingTime)
	}
	return
}

// recentRuns returns the newest runs first, at most limit of them
func recentRuns(runs []store.Activity, limit int) []store.Activity {
	recent := make([]store.Activity, 0, limit)
	for i := len(runs) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, runs[i])
	}
	return recent
}

// buildWeeklyChart builds the 12-week distance chart data
func buildWeeklyChart(runs []store.Activity, anchor time.Time) (weeklyKm []float64, labels []string) {
	numWeeks := ChartWeeks
	currentWeekStart := getMonday(anchor)

	weeklyKm = make([]float64, numWeeks)
	labels = make([]string, numWeeks)

	for i := 0; i < numWeeks; i++ {
		weekStart := currentWeekStart.AddDate(0, 0, -7*(numWeeks-1-i))
		labels[i] = weekStart.Format("Jan 02")
	}

	firstWeekStart := currentWeekStart.AddDate(0, 0, -7*(numWeeks-1))
	for _, a := range runs {
		started := analysis.ParseLocalDate(a.StartDateLocal)
		if started.IsZero() || started.Before(firstWeekStart) {
			continue
		}
		idx := findWeekIndex(started, currentWeekStart, numWeeks)
		if idx < 0 {
			continue
		}
		weeklyKm[idx] += a.Distance / analysis.MetersPerKm
	}
	return
}

// findWeekIndex returns the index of the week bucket for the given date
func findWeekIndex(date time.Time, currentWeekStart time.Time, numWeeks int) int {
	for i := 0; i < numWeeks; i++ {
		weekStart := currentWeekStart.AddDate(0, 0, -7*(numWeeks-1-i))
		weekEnd := weekStart.AddDate(0, 0, 7)
		if !date.Before(weekStart) && date.Before(weekEnd) {
			return i
		}
	}
	return -1
}

// getMonday returns the Monday of the week containing t, at midnight
func getMonday(t time.Time) time.Time {
	daysFromMonday := (int(t.Weekday()) + 6) % 7 // Monday = 0
	monday := t.AddDate(0, 0, -daysFromMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
}

// wallClockUTC reinterprets t's wall clock in UTC to match parsed activity
// timestamps, which carry no zone.
func wallClockUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
