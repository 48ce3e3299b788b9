package service

import (
	"fmt"
	"math"
)

// FormatDuration formats seconds as "H:MM:SS" or "M:SS"
func FormatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatPace formats seconds-per-unit-distance as "M:SS"
func FormatPace(secondsPerUnit float64) string {
	if secondsPerUnit <= 0 || math.IsInf(secondsPerUnit, 0) || math.IsNaN(secondsPerUnit) {
		return "-:--"
	}
	total := int(math.Round(secondsPerUnit))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatDelta formats a signed seconds delta as "+M:SS" or "-M:SS"
func FormatDelta(seconds float64) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
	}
	total := int(math.Round(math.Abs(seconds)))
	return fmt.Sprintf("%s%d:%02d", sign, total/60, total%60)
}
