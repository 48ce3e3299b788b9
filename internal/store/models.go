package store

// Activity is one cached exercise session, as delivered by the upstream
// activity source. Fields mirror the provider's summary record; the core
// analytics never need per-second streams.
type Activity struct {
	ID                 int64    `db:"id"`
	Name               string   `db:"name"`
	Type               string   `db:"type"`
	SportType          string   `db:"sport_type"`
	StartDateLocal     string   `db:"start_date_local"` // raw ISO-8601 local wall-clock timestamp
	Distance           float64  `db:"distance"`         // meters
	MovingTime         float64  `db:"moving_time"`      // seconds
	ElapsedTime        float64  `db:"elapsed_time"`     // seconds
	TotalElevationGain float64  `db:"total_elevation_gain"`
	AverageSpeed       float64  `db:"average_speed"`     // m/s
	AverageHeartrate   *float64 `db:"average_heartrate"` // nullable
	SufferScore        *float64 `db:"suffer_score"`      // nullable
	Calories           *float64 `db:"calories"`          // nullable
}
