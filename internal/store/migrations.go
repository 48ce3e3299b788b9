package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Activity summaries. start_date_local keeps the provider's raw ISO
		// string; date normalization happens in the analysis layer.
		`CREATE TABLE IF NOT EXISTS activities (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			sport_type TEXT NOT NULL DEFAULT '',
			start_date_local TEXT NOT NULL,
			distance REAL NOT NULL,
			moving_time REAL NOT NULL,
			elapsed_time REAL NOT NULL,
			total_elevation_gain REAL NOT NULL DEFAULT 0,
			average_speed REAL NOT NULL DEFAULT 0,
			average_heartrate REAL,
			suffer_score REAL,
			calories REAL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activities_start_local ON activities(start_date_local)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_type ON activities(type)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
