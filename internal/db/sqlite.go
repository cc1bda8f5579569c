// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/rocinante/internal/schedule"
)

// SQLite implements schedule.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ schedule.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// dsn enables foreign keys on every pooled connection so event rows cascade
// with their schedule.
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

// CreateSchedule stores a new schedule together with its events.
// Missing IDs and timestamps are filled in on s.
func (s *SQLite) CreateSchedule(ctx context.Context, sched *schedule.Schedule) error {
	if strings.TrimSpace(sched.Name) == "" {
		return fmt.Errorf("schedule name: %w", schedule.ErrEmptyTitle)
	}
	if err := sched.Settings.Validate(); err != nil {
		return err
	}

	now := time.Now()
	if sched.ID == "" {
		sched.ID = schedule.NewID()
	}
	if sched.CreatedAt.IsZero() {
		sched.CreatedAt = now
	}
	sched.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkNameTx(ctx, tx, sched.Name, ""); err != nil {
		return err
	}

	query := `
		INSERT INTO schedules (
			id, name, week_start, week_starts_on_sunday, use_12_hour_format,
			show_dates, working_hours_start, working_hours_end, time_increment,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	st := sched.Settings
	if _, err := tx.ExecContext(ctx, query,
		sched.ID,
		sched.Name,
		sched.WeekStart.Format("2006-01-02"),
		st.WeekStartsOnSunday,
		st.Use12HourFormat,
		st.ShowDates,
		st.WorkingHoursStart,
		st.WorkingHoursEnd,
		st.TimeIncrement,
		sched.CreatedAt.Format(time.RFC3339),
		sched.UpdatedAt.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("inserting schedule: %w", err)
	}

	if err := insertEventsTx(ctx, tx, sched.ID, sched.Events); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	sched.AssignDates()
	return nil
}

// GetSchedule retrieves a schedule and its events by ID or, failing that, by name.
func (s *SQLite) GetSchedule(ctx context.Context, idOrName string) (*schedule.Schedule, error) {
	query := `
		SELECT id, name, week_start, week_starts_on_sunday, use_12_hour_format,
		       show_dates, working_hours_start, working_hours_end, time_increment,
		       created_at, updated_at
		FROM schedules
		WHERE id = ? OR name = ?
		ORDER BY CASE WHEN id = ? THEN 0 ELSE 1 END
		LIMIT 1
	`

	var (
		sched     schedule.Schedule
		weekStart string
		createdAt string
		updatedAt string
	)
	st := &sched.Settings

	err := s.db.QueryRowContext(ctx, query, idOrName, idOrName, idOrName).Scan(
		&sched.ID,
		&sched.Name,
		&weekStart,
		&st.WeekStartsOnSunday,
		&st.Use12HourFormat,
		&st.ShowDates,
		&st.WorkingHoursStart,
		&st.WorkingHoursEnd,
		&st.TimeIncrement,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", schedule.ErrScheduleNotFound, idOrName)
	}
	if err != nil {
		return nil, fmt.Errorf("querying schedule: %w", err)
	}

	if sched.WeekStart, err = parseDate(weekStart); err != nil {
		return nil, fmt.Errorf("parsing week start: %w", err)
	}
	if sched.CreatedAt, err = parseDate(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if sched.UpdatedAt, err = parseDate(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	events, err := s.listEvents(ctx, sched.ID)
	if err != nil {
		return nil, err
	}
	sched.Events = events
	sched.AssignDates()

	return &sched, nil
}

// listEvents returns the events of a schedule ordered by day and start time.
func (s *SQLite) listEvents(ctx context.Context, scheduleID string) ([]schedule.Event, error) {
	query := `
		SELECT id, day, start_minute, end_minute, color, title, description,
		       task_checked, priority
		FROM events
		WHERE schedule_id = ?
		ORDER BY day, start_minute, position
	`

	rows, err := s.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []schedule.Event
	for rows.Next() {
		var (
			ev          schedule.Event
			start, end  int
			color       string
			taskChecked sql.NullBool
		)
		if err := rows.Scan(
			&ev.ID,
			&ev.Day,
			&start,
			&end,
			&color,
			&ev.Title,
			&ev.Description,
			&taskChecked,
			&ev.Priority,
		); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		ev.TimeRange = schedule.NewTimeRange(start, end)
		ev.Color = schedule.Color(color)
		if taskChecked.Valid {
			checked := taskChecked.Bool
			ev.TaskChecked = &checked
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return events, nil
}

// ListSchedules returns all schedules, most recently updated first.
func (s *SQLite) ListSchedules(ctx context.Context) ([]schedule.Summary, error) {
	query := `
		SELECT s.id, s.name, s.week_start, s.updated_at, COUNT(e.id)
		FROM schedules s
		LEFT JOIN events e ON e.schedule_id = s.id
		GROUP BY s.id
		ORDER BY s.updated_at DESC, s.name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying schedules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []schedule.Summary
	for rows.Next() {
		var (
			sum       schedule.Summary
			weekStart string
			updatedAt string
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &weekStart, &updatedAt, &sum.EventCount); err != nil {
			return nil, fmt.Errorf("scanning schedule: %w", err)
		}
		if sum.WeekStart, err = parseDate(weekStart); err != nil {
			return nil, fmt.Errorf("parsing week start: %w", err)
		}
		if sum.UpdatedAt, err = parseDate(updatedAt); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedules: %w", err)
	}

	return summaries, nil
}

// RenameSchedule changes the display name of a schedule.
// Returns ErrScheduleExists if another schedule already uses name.
func (s *SQLite) RenameSchedule(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("schedule name: %w", schedule.ErrEmptyTitle)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkNameTx(ctx, tx, name, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE schedules SET name = ?, updated_at = ? WHERE id = ?",
		name, time.Now().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("renaming schedule: %w", err)
	}
	if err := requireRow(result, schedule.ErrScheduleNotFound, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteSchedule removes a schedule and all of its events.
func (s *SQLite) DeleteSchedule(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM schedules WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}
	return requireRow(result, schedule.ErrScheduleNotFound, id)
}

// UpdateSettings replaces the schedule settings.
func (s *SQLite) UpdateSettings(ctx context.Context, id string, st schedule.Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE schedules SET
			week_starts_on_sunday = ?,
			use_12_hour_format = ?,
			show_dates = ?,
			working_hours_start = ?,
			working_hours_end = ?,
			time_increment = ?,
			updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		st.WeekStartsOnSunday,
		st.Use12HourFormat,
		st.ShowDates,
		st.WorkingHoursStart,
		st.WorkingHoursEnd,
		st.TimeIncrement,
		time.Now().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}
	return requireRow(result, schedule.ErrScheduleNotFound, id)
}

// ReplaceEvents atomically swaps the full event list of a schedule.
func (s *SQLite) ReplaceEvents(ctx context.Context, scheduleID string, events []schedule.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := touchScheduleTx(ctx, tx, scheduleID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM events WHERE schedule_id = ?", scheduleID); err != nil {
		return fmt.Errorf("clearing events: %w", err)
	}

	if err := insertEventsTx(ctx, tx, scheduleID, events); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// UpsertEvent inserts or updates one event.
// Returns ErrTimeBlockOverlap if ev overlaps another event on the same day,
// unless skipConflictCheck is set.
func (s *SQLite) UpsertEvent(ctx context.Context, scheduleID string, ev schedule.Event, skipConflictCheck bool) error {
	if err := ev.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := touchScheduleTx(ctx, tx, scheduleID); err != nil {
		return err
	}

	if !skipConflictCheck {
		if err := checkOverlapTx(ctx, tx, scheduleID, ev); err != nil {
			return err
		}
	}

	var owner string
	err = tx.QueryRowContext(ctx, "SELECT schedule_id FROM events WHERE id = ?", ev.ID).Scan(&owner)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := insertEventsTx(ctx, tx, scheduleID, []schedule.Event{ev}); err != nil {
			return err
		}
	case err != nil:
		return fmt.Errorf("looking up event: %w", err)
	case owner != scheduleID:
		return fmt.Errorf("%w: %s belongs to another schedule", schedule.ErrEventNotFound, ev.ID)
	default:
		query := `
			UPDATE events SET
				day = ?, start_minute = ?, end_minute = ?, color = ?,
				title = ?, description = ?, task_checked = ?, priority = ?
			WHERE id = ?
		`
		if _, err := tx.ExecContext(ctx, query,
			ev.Day,
			ev.Start(),
			ev.End(),
			string(ev.Color),
			ev.Title,
			ev.Description,
			nullBool(ev.TaskChecked),
			ev.Priority,
			ev.ID,
		); err != nil {
			return fmt.Errorf("updating event %q: %w", ev.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteEvent removes one event from a schedule.
func (s *SQLite) DeleteEvent(ctx context.Context, scheduleID, eventID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM events WHERE schedule_id = ? AND id = ?",
		scheduleID, eventID,
	)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	if err := requireRow(result, schedule.ErrEventNotFound, eventID); err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE schedules SET updated_at = ? WHERE id = ?",
		time.Now().Format(time.RFC3339), scheduleID,
	)
	if err != nil {
		return fmt.Errorf("touching schedule: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// insertEventsTx inserts events in order, recording their position so ties in
// start time come back in insertion order.
func insertEventsTx(ctx context.Context, tx *sql.Tx, scheduleID string, events []schedule.Event) error {
	if len(events) == 0 {
		return nil
	}

	var base int
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM events WHERE schedule_id = ?",
		scheduleID,
	).Scan(&base); err != nil {
		return fmt.Errorf("reading event position: %w", err)
	}

	query := `
		INSERT INTO events (
			id, schedule_id, day, start_minute, end_minute, color,
			title, description, task_checked, priority, position
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, ev := range events {
		if ev.ID == "" {
			ev.ID = schedule.NewID()
		}
		if err := ev.Validate(); err != nil {
			return fmt.Errorf("event %q: %w", ev.Title, err)
		}
		if _, err := stmt.ExecContext(ctx,
			ev.ID,
			scheduleID,
			ev.Day,
			ev.Start(),
			ev.End(),
			string(ev.Color),
			ev.Title,
			ev.Description,
			nullBool(ev.TaskChecked),
			ev.Priority,
			base+i,
		); err != nil {
			return fmt.Errorf("inserting event %q: %w", ev.Title, err)
		}
	}
	return nil
}

// checkNameTx returns ErrScheduleExists if a schedule other than exceptID
// already uses name.
func checkNameTx(ctx context.Context, tx *sql.Tx, name, exceptID string) error {
	var id string
	err := tx.QueryRowContext(ctx,
		"SELECT id FROM schedules WHERE name = ? AND id != ? LIMIT 1",
		name, exceptID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking schedule name: %w", err)
	}
	return fmt.Errorf("%w: %q", schedule.ErrScheduleExists, name)
}

// touchScheduleTx bumps updated_at and returns ErrScheduleNotFound if the
// schedule does not exist.
func touchScheduleTx(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := tx.ExecContext(ctx,
		"UPDATE schedules SET updated_at = ? WHERE id = ?",
		time.Now().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("touching schedule: %w", err)
	}
	return requireRow(result, schedule.ErrScheduleNotFound, id)
}

// checkOverlapTx checks if ev overlaps another event on the same day.
// Two time ranges overlap if: start1 < end2 AND start2 < end1
func checkOverlapTx(ctx context.Context, tx *sql.Tx, scheduleID string, ev schedule.Event) error {
	query := `
		SELECT id, start_minute, end_minute, title
		FROM events
		WHERE schedule_id = ?
		  AND day = ?
		  AND id != ?
		  AND start_minute < ?
		  AND end_minute > ?
		ORDER BY start_minute
		LIMIT 1
	`

	var (
		id         string
		existStart int
		existEnd   int
		title      string
	)

	err := tx.QueryRowContext(ctx, query,
		scheduleID,
		ev.Day,
		ev.ID,
		ev.End(),
		ev.Start(),
	).Scan(&id, &existStart, &existEnd, &title)

	if errors.Is(err, sql.ErrNoRows) {
		return nil // No overlap
	}
	if err != nil {
		return fmt.Errorf("checking overlap: %w", err)
	}

	return fmt.Errorf("%w: conflicts with %q (%s)",
		schedule.ErrTimeBlockOverlap, title, schedule.NewTimeRange(existStart, existEnd))
}

func requireRow(result sql.Result, notFound error, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", notFound, id)
	}
	return nil
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values (midnight) are parsed in local timezone so week starts line
// up with time.Now() based dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z"; treat as local midnight.
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' && s[11:19] == "00:00:00" {
		if t, err := time.ParseInLocation("2006-01-02", s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
