package schedule

import (
	"time"
)

// Schedule is a named week of events together with its display settings.
// It is the unit persisted by a Repository.
type Schedule struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	WeekStart time.Time `json:"weekStart"`
	Settings  Settings  `json:"settings"`
	Events    []Event   `json:"events"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WeekStart returns midnight of the first day of the week containing t.
// Weeks start on Monday unless sundayFirst is set.
func WeekStart(t time.Time, sundayFirst bool) time.Time {
	day := truncateToDay(t)
	offset := int(day.Weekday()) // Sunday = 0
	if !sundayFirst {
		offset = (offset + 6) % 7 // Monday = 0
	}
	return day.AddDate(0, 0, -offset)
}

// DateForDay returns the calendar date of day (0..6) in the week anchored at
// weekStart.
func DateForDay(weekStart time.Time, day int) time.Time {
	return truncateToDay(weekStart).AddDate(0, 0, day)
}

// DayForDate returns the day index of date relative to weekStart and whether
// it falls inside that week.
func DayForDate(weekStart, date time.Time) (int, bool) {
	start := truncateToDay(weekStart)
	d := truncateToDay(date.In(start.Location()))
	for i := 0; i < DaysInWeek; i++ {
		if start.AddDate(0, 0, i).Equal(d) {
			return i, true
		}
	}
	return 0, false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndDate returns the last day of the week.
func (s *Schedule) EndDate() time.Time {
	return DateForDay(s.WeekStart, DaysInWeek-1)
}

// Event returns the event with the given id.
func (s *Schedule) Event(id string) (Event, bool) {
	for _, ev := range s.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return Event{}, false
}

// EventsOn returns the events on the same calendar date as date, in start order.
func (s *Schedule) EventsOn(date time.Time) []Event {
	probe := Event{Date: date}
	var out []Event
	for _, ev := range s.Events {
		if ev.SameDate(probe) {
			out = append(out, ev)
		}
	}
	sortByStart(out)
	return out
}

// Siblings returns the time ranges of all events sharing the date of the event
// with the given id, excluding that event.
func (s *Schedule) Siblings(id string) []TimeRange {
	ev, ok := s.Event(id)
	if !ok {
		return nil
	}
	return SiblingRanges(ev, s.Events)
}

// SiblingRanges returns the ranges of events in all on the same date as ev,
// excluding ev itself.
func SiblingRanges(ev Event, all []Event) []TimeRange {
	var out []TimeRange
	for _, other := range all {
		if other.ID == ev.ID || !other.SameDate(ev) {
			continue
		}
		out = append(out, other.TimeRange)
	}
	return out
}

// Put replaces the event with the same id or appends it.
func (s *Schedule) Put(ev Event) {
	for i := range s.Events {
		if s.Events[i].ID == ev.ID {
			s.Events[i] = ev
			return
		}
	}
	s.Events = append(s.Events, ev)
}

// Remove deletes the event with the given id and reports whether it existed.
func (s *Schedule) Remove(id string) bool {
	for i := range s.Events {
		if s.Events[i].ID == id {
			s.Events = append(s.Events[:i], s.Events[i+1:]...)
			return true
		}
	}
	return false
}

// AssignDates recomputes every event Date from its Day and the week start.
func (s *Schedule) AssignDates() {
	for i := range s.Events {
		s.Events[i].Date = DateForDay(s.WeekStart, s.Events[i].Day)
	}
}
