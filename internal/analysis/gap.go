package analysis

import (
	"math"

	"runboard/internal/store"
)

// Grade clamp for the metabolic cost curve. The polynomial was fitted on
// treadmill grades within this range; beyond it the quintic blows up.
const (
	minGrade = -0.45
	maxGrade = 0.45
)

// flatCost is the metabolic cost of level running, the curve's baseline
const flatCost = 3.6

// maxSummaryGrade caps the crude gain/distance grade estimate used when
// only summary data is available
const maxSummaryGrade = 0.25

// MetabolicCost evaluates the Minetti energy-cost curve (J/kg/m) for
// running at the given decimal grade. Grade is clamped to the fitted range.
func MetabolicCost(grade float64) float64 {
	g := clamp(grade, minGrade, maxGrade)
	return ((((155.4*g-30.4)*g-43.3)*g+46.3)*g+19.5)*g + flatCost
}

// GAPAdjustmentFactor is the energy cost of the given grade relative to
// flat ground. Values above 1 mean the terrain costs more than flat; actual
// pace divided by this factor yields the flat-equivalent pace.
func GAPAdjustmentFactor(grade float64) float64 {
	return MetabolicCost(grade) / MetabolicCost(0)
}

// GAP converts an actual pace (seconds per meter) at a grade into the
// equivalent flat-ground pace.
func GAP(paceSecPerMeter, grade float64) float64 {
	return paceSecPerMeter / GAPAdjustmentFactor(grade)
}

// ActivityGAPResult summarizes a per-sample GAP reduction. Paces are in
// seconds per meter.
type ActivityGAPResult struct {
	OverallGAPPace    float64
	AverageActualPace float64
	GAPPaces          []float64
	TotalAdjustedTime float64 // flat-equivalent moving seconds
}

// ActivityGAP reduces 1 Hz velocity (m/s) and decimal grade streams into
// grade-adjusted pace. Samples at or below zero velocity are treated as
// stopped: they contribute a zero to the pace series and are excluded from
// the aggregates. A grade sample of NaN counts as flat. Empty or
// mismatched streams yield the zero result.
func ActivityGAP(velocities, grades []float64) ActivityGAPResult {
	var result ActivityGAPResult
	if len(velocities) == 0 || len(velocities) != len(grades) {
		return result
	}

	var totalDistance, totalTime, totalAdjusted float64
	paces := make([]float64, 0, len(velocities))

	for i, v := range velocities {
		if v <= 0 {
			paces = append(paces, 0)
			continue
		}

		grade := grades[i]
		if math.IsNaN(grade) {
			grade = 0
		}

		factor := GAPAdjustmentFactor(grade)
		pace := 1 / v
		paces = append(paces, pace/factor)

		totalDistance += v // 1s sample: v m/s covers v meters
		totalTime++
		totalAdjusted += 1 / factor
	}

	result.GAPPaces = paces
	result.TotalAdjustedTime = totalAdjusted
	if totalDistance > 0 {
		result.OverallGAPPace = totalAdjusted / totalDistance
		result.AverageActualPace = totalTime / totalDistance
	}
	return result
}

// EstimatedGAPPace approximates an activity's grade-adjusted pace (seconds
// per meter) from summary fields alone, deriving an average grade from
// total climb over distance. Unlike the per-sample reduction this only
// corrects the overall pace for aggregate climb, which understates rolling
// terrain; it exists for metrics that never see full streams. Returns 0 if
// pace cannot be computed.
func EstimatedGAPPace(a store.Activity) float64 {
	if a.Distance <= 0 || a.MovingTime <= 0 {
		return 0
	}
	grade := clamp(a.TotalElevationGain/a.Distance, 0, maxSummaryGrade)
	pace := a.MovingTime / a.Distance
	return GAP(pace, grade)
}
