package analysis

import "math"

// Standard race distances in meters
const (
	Distance5K   = 5000.0
	Distance10K  = 10000.0
	DistanceHalf = 21097.5
)

const (
	// Exponential decay time constants (days) for the load recurrences
	CTLTimeConstant = 42.0
	ATLTimeConstant = 7.0

	MetersPerKm = 1000.0
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
