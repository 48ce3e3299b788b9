package analysis

import (
	"fmt"
	"time"

	"runboard/internal/store"
)

func floatPtr(f float64) *float64 {
	return &f
}

var nextTestID int64

// makeRun builds a run activity on the given local date
func makeRun(date string, distanceMeters, movingTimeSeconds float64, avgHR *float64) store.Activity {
	nextTestID++
	return store.Activity{
		ID:               nextTestID,
		Name:             fmt.Sprintf("Run %d", nextTestID),
		Type:             "Run",
		StartDateLocal:   date + "T07:00:00",
		Distance:         distanceMeters,
		MovingTime:       movingTimeSeconds,
		ElapsedTime:      movingTimeSeconds,
		AverageSpeed:     speedOrZero(distanceMeters, movingTimeSeconds),
		AverageHeartrate: avgHR,
	}
}

func speedOrZero(distance, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return distance / seconds
}

// dayKey formats an offset in days from a base date as YYYY-MM-DD
func dayKey(base time.Time, offset int) string {
	return base.AddDate(0, 0, offset).Format("2006-01-02")
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
