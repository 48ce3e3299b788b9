// Package fitimport loads activity summaries from FIT files into the store.
package fitimport

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tormoder/fit"

	"runboard/internal/store"
)

const localTimeLayout = "2006-01-02T15:04:05"

// ImportFile decodes a single FIT activity file and upserts it into the store.
// Non-running sessions are imported as-is; the analysis layer filters by type.
func ImportFile(s *store.Store, path string) (store.Activity, error) {
	f, err := os.Open(path)
	if err != nil {
		return store.Activity{}, fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()

	decoded, err := fit.Decode(f)
	if err != nil {
		return store.Activity{}, fmt.Errorf("decode FIT file: %w", err)
	}

	activity, err := decoded.Activity()
	if err != nil {
		return store.Activity{}, fmt.Errorf("activity FIT expected: %w", err)
	}
	if len(activity.Sessions) == 0 {
		return store.Activity{}, fmt.Errorf("activity file has no session message")
	}

	session := activity.Sessions[0]

	start := session.StartTime
	if start.IsZero() || fit.IsBaseTime(start) {
		return store.Activity{}, fmt.Errorf("session has no start time")
	}

	elapsed := safePositive(session.GetTotalElapsedTimeScaled())
	moving := safePositive(session.GetTotalMovingTimeScaled())
	if moving == 0 {
		moving = safePositive(session.GetTotalTimerTimeScaled())
	}
	if moving == 0 {
		moving = elapsed
	}
	distance := safePositive(session.GetTotalDistanceScaled())

	avgSpeed := safePositive(session.GetEnhancedAvgSpeedScaled())
	if avgSpeed == 0 {
		avgSpeed = safePositive(session.GetAvgSpeedScaled())
	}
	if avgSpeed == 0 && moving > 0 {
		avgSpeed = distance / moving
	}

	act := store.Activity{
		ID:                 start.Unix(),
		Name:               activityName(path, session),
		Type:               activityType(session),
		SportType:          activityType(session),
		StartDateLocal:     start.Format(localTimeLayout),
		Distance:           distance,
		MovingTime:         moving,
		ElapsedTime:        elapsed,
		TotalElevationGain: float64(validUint16(session.TotalAscent)),
		AverageSpeed:       avgSpeed,
	}

	if hr := validUint8(session.AvgHeartRate); hr > 0 {
		v := float64(hr)
		act.AverageHeartrate = &v
	}
	if cal := validUint16(session.TotalCalories); cal > 0 {
		v := float64(cal)
		act.Calories = &v
	}

	if err := s.UpsertActivity(&act); err != nil {
		return store.Activity{}, fmt.Errorf("save activity: %w", err)
	}
	return act, nil
}

// ImportDir imports every .fit file in dir, returning the number imported.
// Files that fail to decode are skipped with an error on stderr rather than
// aborting the whole batch.
func ImportDir(s *store.Store, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read import directory: %w", err)
	}

	imported := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".fit") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := ImportFile(s, path); err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", entry.Name(), err)
			continue
		}
		imported++
	}
	return imported, nil
}

// activityType maps FIT sport/sub-sport to the activity type vocabulary used
// by the store and analysis layers.
func activityType(session *fit.SessionMsg) string {
	switch session.Sport {
	case fit.SportRunning:
		switch session.SubSport {
		case fit.SubSportTrail:
			return "TrailRun"
		case fit.SubSportVirtualActivity:
			return "VirtualRun"
		default:
			return "Run"
		}
	case fit.SportCycling:
		return "Ride"
	case fit.SportSwimming:
		return "Swim"
	default:
		return fmt.Sprint(session.Sport)
	}
}

func activityName(path string, session *fit.SessionMsg) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if base != "" {
		return base
	}
	return fmt.Sprintf("%s %s", activityType(session), session.StartTime.Format(time.DateOnly))
}

func safePositive(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func validUint8(v uint8) uint8 {
	if v == math.MaxUint8 {
		return 0
	}
	return v
}

func validUint16(v uint16) uint16 {
	if v == math.MaxUint16 {
		return 0
	}
	return v
}
