package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/javiermolinar/rocinante/internal/schedule"
)

// PrintOpts configures schedule printing behavior.
type PrintOpts struct {
	Use12Hour    bool // Use 12-hour clock labels
	Verbose      bool // Show descriptions and event IDs
	MaxDescWidth int  // Maximum title width (0 = auto)
}

// CalcMaxDescWidth calculates the maximum title width based on options.
func (o PrintOpts) CalcMaxDescWidth(defaultWidth int) int {
	if o.MaxDescWidth > 0 {
		return o.MaxDescWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	// Base: "    HH:MM-HH:MM  [color ]  " = ~28 chars
	// Duration suffix: "  XhYm" = ~7 chars
	available := termWidth() - 35
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// PrintWeek prints every day of sched with its events.
func PrintWeek(w io.Writer, sched *schedule.Schedule, opts PrintOpts) {
	header := fmt.Sprintf("%s: %s - %s", sched.Name,
		sched.WeekStart.Format("Mon Jan 2"), sched.EndDate().Format("Mon Jan 2, 2006"))
	fmt.Fprintf(w, "\n  %s\n", formatHeader(header))
	fmt.Fprintln(w, strings.Repeat("─", 74))

	maxWidth := opts.CalcMaxDescWidth(40)
	total := 0
	for day := 0; day < schedule.DaysInWeek; day++ {
		date := schedule.DateForDay(sched.WeekStart, day)
		events := sched.EventsOn(date)
		if len(events) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n  %s\n", formatHeader(date.Format("Monday, Jan 2")))
		for _, ev := range events {
			PrintEventRow(w, ev, opts, maxWidth)
			total += ev.Duration()
		}
	}

	if len(sched.Events) == 0 {
		fmt.Fprintln(w, "\n  No events scheduled.")
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %d events  |  %s scheduled\n", len(sched.Events), FormatDuration(total))
	if n := len(schedule.FindConflicts(sched.Events)); n > 0 {
		fmt.Fprintf(w, "  %s\n", formatWarn(fmt.Sprintf("%d overlapping pairs (run 'rocinante check')", n)))
	}
}

// PrintEventRow prints a single event row with consistent formatting.
func PrintEventRow(w io.Writer, ev schedule.Event, opts PrintOpts, maxWidth int) {
	title := truncate(ev.Title, maxWidth)
	tag := formatBlock(ev.Color, fmt.Sprintf("[%-6s]", ev.Color))
	duration := formatMuted(FormatDuration(ev.Duration()))

	fmt.Fprintf(w, "    %s  %s  %-*s  %s\n",
		formatRange(ev.TimeRange, opts.Use12Hour), tag, maxWidth, title, duration)

	if opts.Verbose {
		if ev.Description != "" {
			fmt.Fprintf(w, "      %s\n", formatMuted(ev.Description))
		}
		fmt.Fprintf(w, "      %s\n", formatMuted("id: "+ev.ID))
	}
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

func formatRange(tr schedule.TimeRange, use12h bool) string {
	return schedule.FormatClock(tr.StartHour, tr.StartMinute, use12h) + "-" +
		schedule.FormatClock(tr.EndHour, tr.EndMinute, use12h)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// parseDay accepts a day index (0-6) or a weekday name and returns the index
// relative to the schedule's first day.
func parseDay(s string, weekStart time.Time) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= schedule.DaysInWeek {
			return 0, fmt.Errorf("%w: %d", schedule.ErrInvalidDay, n)
		}
		return n, nil
	}
	for day := 0; day < schedule.DaysInWeek; day++ {
		name := strings.ToLower(schedule.DateForDay(weekStart, day).Weekday().String())
		if len(s) >= 2 && strings.HasPrefix(name, s) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("invalid day %q (use 0-6 or a weekday name)", s)
}

// findEvent resolves an event by ID or by case-insensitive title.
func findEvent(sched *schedule.Schedule, ref string) (schedule.Event, error) {
	if ev, ok := sched.Event(ref); ok {
		return ev, nil
	}
	var matches []schedule.Event
	for _, ev := range sched.Events {
		if strings.EqualFold(ev.Title, ref) {
			matches = append(matches, ev)
		}
	}
	switch len(matches) {
	case 0:
		return schedule.Event{}, fmt.Errorf("%w: %q", schedule.ErrEventNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return schedule.Event{}, fmt.Errorf("%d events are titled %q, use the event ID", len(matches), ref)
	}
}
