package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS schedules (
			id                    TEXT PRIMARY KEY,
			name                  TEXT NOT NULL UNIQUE,
			week_start            DATE NOT NULL,
			week_starts_on_sunday INTEGER NOT NULL DEFAULT 0,
			use_12_hour_format    INTEGER NOT NULL DEFAULT 0,
			show_dates            INTEGER NOT NULL DEFAULT 1,
			working_hours_start   INTEGER NOT NULL DEFAULT 8,
			working_hours_end     INTEGER NOT NULL DEFAULT 18,
			time_increment        INTEGER NOT NULL DEFAULT 30,
			created_at            DATETIME NOT NULL,
			updated_at            DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS events (
			id           TEXT PRIMARY KEY,
			schedule_id  TEXT NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
			day          INTEGER NOT NULL CHECK(day BETWEEN 0 AND 6),
			start_minute INTEGER NOT NULL CHECK(start_minute BETWEEN 0 AND 1439),
			end_minute   INTEGER NOT NULL CHECK(end_minute BETWEEN 1 AND 1440),
			color        TEXT NOT NULL,
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			task_checked INTEGER,
			priority     TEXT NOT NULL DEFAULT '',
			position     INTEGER NOT NULL DEFAULT 0,
			CHECK(end_minute > start_minute)
		);

		CREATE INDEX IF NOT EXISTS idx_events_schedule_day ON events(schedule_id, day);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating schedule tables: %w", err)
	}

	return nil
}
