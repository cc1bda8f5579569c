package schedule

import (
	"context"
	"time"
)

// Summary is the listing form of a schedule, without its events.
type Summary struct {
	ID         string
	Name       string
	WeekStart  time.Time
	EventCount int
	UpdatedAt  time.Time
}

// Repository defines the storage interface for schedules and their events.
type Repository interface {
	// CreateSchedule stores a new schedule together with its events.
	CreateSchedule(ctx context.Context, s *Schedule) error

	// GetSchedule retrieves a schedule and its events by ID or name.
	// Returns ErrScheduleNotFound if none matches.
	GetSchedule(ctx context.Context, idOrName string) (*Schedule, error)

	// ListSchedules returns all schedules, most recently updated first.
	ListSchedules(ctx context.Context) ([]Summary, error)

	// RenameSchedule changes the display name of a schedule.
	RenameSchedule(ctx context.Context, id, name string) error

	// DeleteSchedule removes a schedule and all of its events.
	DeleteSchedule(ctx context.Context, id string) error

	// UpdateSettings replaces the schedule settings.
	UpdateSettings(ctx context.Context, id string, settings Settings) error

	// ReplaceEvents atomically swaps the full event list of a schedule.
	// Used after AI generation and overlap resolution.
	ReplaceEvents(ctx context.Context, scheduleID string, events []Event) error

	// UpsertEvent inserts or updates one event.
	// Returns ErrTimeBlockOverlap if it overlaps a same-day event, unless
	// skipConflictCheck is set (drag commits already respect collision bounds).
	UpsertEvent(ctx context.Context, scheduleID string, ev Event, skipConflictCheck bool) error

	// DeleteEvent removes one event. Returns ErrEventNotFound if absent.
	DeleteEvent(ctx context.Context, scheduleID, eventID string) error

	// Close releases any resources held by the repository.
	Close() error
}
