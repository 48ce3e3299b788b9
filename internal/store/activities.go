package store

import "database/sql"

// UpsertActivity inserts or updates an activity
func (s *Store) UpsertActivity(a *Activity) error {
	_, err := s.db.Exec(`
		INSERT INTO activities (
			id, name, type, sport_type, start_date_local,
			distance, moving_time, elapsed_time, total_elevation_gain,
			average_speed, average_heartrate, suffer_score, calories, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			sport_type = excluded.sport_type,
			start_date_local = excluded.start_date_local,
			distance = excluded.distance,
			moving_time = excluded.moving_time,
			elapsed_time = excluded.elapsed_time,
			total_elevation_gain = excluded.total_elevation_gain,
			average_speed = excluded.average_speed,
			average_heartrate = excluded.average_heartrate,
			suffer_score = excluded.suffer_score,
			calories = excluded.calories,
			updated_at = CURRENT_TIMESTAMP
	`,
		a.ID, a.Name, a.Type, a.SportType, a.StartDateLocal,
		a.Distance, a.MovingTime, a.ElapsedTime, a.TotalElevationGain,
		a.AverageSpeed, a.AverageHeartrate, a.SufferScore, a.Calories,
	)
	return err
}

// GetActivity retrieves an activity by ID
func (s *Store) GetActivity(id int64) (*Activity, error) {
	row := s.db.QueryRow(activitySelect+` WHERE id = ?`, id)

	a, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListActivities returns all cached activities in chronological order.
// The analytics core expects the full history per call.
func (s *Store) ListActivities() ([]Activity, error) {
	rows, err := s.db.Query(activitySelect + ` ORDER BY start_date_local ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// CountActivities returns the total number of cached activities
func (s *Store) CountActivities() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM activities`).Scan(&count)
	return count, err
}

const activitySelect = `
	SELECT id, name, type, sport_type, start_date_local,
		distance, moving_time, elapsed_time, total_elevation_gain,
		average_speed, average_heartrate, suffer_score, calories
	FROM activities`

// scanner abstracts *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(row scanner) (*Activity, error) {
	var a Activity
	err := row.Scan(
		&a.ID, &a.Name, &a.Type, &a.SportType, &a.StartDateLocal,
		&a.Distance, &a.MovingTime, &a.ElapsedTime, &a.TotalElevationGain,
		&a.AverageSpeed, &a.AverageHeartrate, &a.SufferScore, &a.Calories,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
