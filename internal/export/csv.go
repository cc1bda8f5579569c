// Package export writes schedules to CSV, iCalendar, JSON and plain text, and
// imports events back from iCalendar files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/javiermolinar/rocinante/internal/schedule"
)

var csvHeader = []string{"day", "date", "start", "end", "title", "description", "color"}

// CSV writes one row per event, ordered by day and start time.
func CSV(w io.Writer, sched *schedule.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, ev := range ordered(sched) {
		record := []string{
			strconv.Itoa(ev.Day),
			ev.Date.Format("2006-01-02"),
			schedule.FormatClock(ev.StartHour, ev.StartMinute, false),
			schedule.FormatClock(ev.EndHour, ev.EndMinute, false),
			ev.Title,
			ev.Description,
			string(ev.Color),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row %q: %w", ev.Title, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// ordered returns a copy of the schedule's events with dates assigned,
// sorted by day then start.
func ordered(sched *schedule.Schedule) []schedule.Event {
	cp := *sched
	cp.Events = append([]schedule.Event(nil), sched.Events...)
	cp.AssignDates()

	var out []schedule.Event
	for day := 0; day < schedule.DaysInWeek; day++ {
		out = append(out, cp.EventsOn(schedule.DateForDay(cp.WeekStart, day))...)
	}
	return out
}
