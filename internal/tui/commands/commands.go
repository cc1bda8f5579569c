// Package commands provides TUI command constructors and message types.
package commands

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/export"
	"github.com/javiermolinar/rocinante/internal/generate"
	"github.com/javiermolinar/rocinante/internal/schedule"
)

// Generator produces events for a schedule from a prompt.
type Generator interface {
	Generate(ctx context.Context, req generate.Request) (*generate.Result, error)
}

// ScheduleLoadedMsg is sent when a schedule and the list of stored weeks are loaded.
type ScheduleLoadedMsg struct {
	Schedule *schedule.Schedule
	Weeks    []schedule.Summary // ordered by week start
}

// EventSavedMsg is sent when a moved or edited event is persisted.
type EventSavedMsg struct {
	Event schedule.Event
}

// EventsReplacedMsg is sent after the full event list of a schedule changed.
type EventsReplacedMsg struct {
	Events  []schedule.Event
	Dropped int
	Reason  string
}

// GeneratedMsg is sent when AI generation completes and the result is saved.
type GeneratedMsg struct {
	Events   []schedule.Event
	Settings schedule.Settings
	Added    int
	Dropped  int
	Attempts int
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// WeekName is the name given to schedules created for a week on first open.
func WeekName(weekStart time.Time) string {
	return "week-" + weekStart.Format("2006-01-02")
}

// OpenWeek loads the schedule anchored at the week containing now, creating
// it with settings when none exists.
func OpenWeek(repo schedule.Repository, settings schedule.Settings, now time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		weekStart := schedule.WeekStart(now, settings.WeekStartsOnSunday)

		weeks, err := listWeeks(ctx, repo)
		if err != nil {
			return ErrMsg{Err: err}
		}
		for _, w := range weeks {
			if w.WeekStart.Equal(weekStart) {
				return loadSchedule(ctx, repo, w.ID)
			}
		}

		sched := &schedule.Schedule{
			Name:      WeekName(weekStart),
			WeekStart: weekStart,
			Settings:  settings,
		}
		err = repo.CreateSchedule(ctx, sched)
		if errors.Is(err, schedule.ErrScheduleExists) {
			return loadSchedule(ctx, repo, sched.Name)
		}
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating schedule: %w", err)}
		}
		return loadSchedule(ctx, repo, sched.ID)
	}
}

// LoadSchedule loads a schedule by ID or name.
func LoadSchedule(repo schedule.Repository, idOrName string) tea.Cmd {
	return func() tea.Msg {
		return loadSchedule(context.Background(), repo, idOrName)
	}
}

func loadSchedule(ctx context.Context, repo schedule.Repository, idOrName string) tea.Msg {
	sched, err := repo.GetSchedule(ctx, idOrName)
	if err != nil {
		return ErrMsg{Err: err}
	}
	weeks, err := listWeeks(ctx, repo)
	if err != nil {
		return ErrMsg{Err: err}
	}
	return ScheduleLoadedMsg{Schedule: sched, Weeks: weeks}
}

func listWeeks(ctx context.Context, repo schedule.Repository) ([]schedule.Summary, error) {
	weeks, err := repo.ListSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}
	slices.SortStableFunc(weeks, func(a, b schedule.Summary) int {
		if c := a.WeekStart.Compare(b.WeekStart); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return weeks, nil
}

// SaveEvent persists one event.
func SaveEvent(repo schedule.Repository, scheduleID string, ev schedule.Event, skipConflictCheck bool) tea.Cmd {
	return func() tea.Msg {
		if err := repo.UpsertEvent(context.Background(), scheduleID, ev, skipConflictCheck); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving %q: %w", ev.Title, err)}
		}
		return EventSavedMsg{Event: ev}
	}
}

// ResolveOverlaps applies earliest-start-wins resolution to events and saves
// the result.
func ResolveOverlaps(repo schedule.Repository, scheduleID string, events []schedule.Event) tea.Cmd {
	return func() tea.Msg {
		resolved := schedule.ResolveOverlaps(events)
		if err := repo.ReplaceEvents(context.Background(), scheduleID, resolved); err != nil {
			return ErrMsg{Err: fmt.Errorf("resolving overlaps: %w", err)}
		}
		return EventsReplacedMsg{
			Events:  resolved,
			Dropped: len(events) - len(resolved),
			Reason:  "resolved overlaps",
		}
	}
}

// Generate runs AI generation for sched, merges the new events with the
// existing ones and saves both events and the proposed settings.
func Generate(gen Generator, repo schedule.Repository, sched *schedule.Schedule, prompt string) tea.Cmd {
	existing := slices.Clone(sched.Events)
	id, weekStart, settings := sched.ID, sched.WeekStart, sched.Settings

	return func() tea.Msg {
		if gen == nil {
			return ErrMsg{Err: errors.New("no LLM configured")}
		}
		ctx := context.Background()

		result, err := gen.Generate(ctx, generate.Request{
			Prompt:    prompt,
			WeekStart: weekStart,
			Settings:  settings,
			Existing:  existing,
		})
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("generating: %w", err)}
		}

		merged, conflicting := generate.Merge(existing, result.Events)
		if err := repo.ReplaceEvents(ctx, id, merged); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving generated events: %w", err)}
		}
		if result.Settings != settings {
			if err := repo.UpdateSettings(ctx, id, result.Settings); err != nil {
				return ErrMsg{Err: fmt.Errorf("saving generated settings: %w", err)}
			}
		}

		return GeneratedMsg{
			Events:   merged,
			Settings: result.Settings,
			Added:    len(merged) - len(existing),
			Dropped:  result.Dropped + conflicting,
			Attempts: result.Attempts,
		}
	}
}

// CopyWeek renders sched as a plain-text agenda and hands it to copyFn.
func CopyWeek(copyFn func(string) error, sched *schedule.Schedule) tea.Cmd {
	snapshot := *sched
	snapshot.Events = slices.Clone(sched.Events)

	return func() tea.Msg {
		var buf bytes.Buffer
		if err := export.Text(&buf, &snapshot); err != nil {
			return ErrMsg{Err: fmt.Errorf("rendering week: %w", err)}
		}
		if err := copyFn(buf.String()); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying week: %w", err)}
		}
		return StatusMsgCmd{Msg: fmt.Sprintf("Copied %d events to clipboard", len(snapshot.Events))}
	}
}
