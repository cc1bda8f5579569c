package generate

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/javiermolinar/rocinante/internal/schedule"
)

// Text caps applied to model output.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// ValidateCandidate converts a model candidate into an Event, repairing what
// can be repaired. It reports false when the candidate has no title, an
// out-of-range day, or unusable hours. The returned event always gets a fresh
// ID, whatever the model sent, and has no Date; the caller anchors it to a week.
func ValidateCandidate(c Candidate) (schedule.Event, bool) {
	title := truncateRunes(strings.TrimSpace(c.Title.String()), MaxTitleLength)
	if title == "" {
		return schedule.Event{}, false
	}
	if !c.Day.Set || c.Day.Value < 0 || c.Day.Value >= schedule.DaysInWeek {
		return schedule.Event{}, false
	}
	if !c.StartHour.Set || c.StartHour.Value < 0 || c.StartHour.Value > 23 {
		return schedule.Event{}, false
	}
	if !c.EndHour.Set || c.EndHour.Value < 0 || c.EndHour.Value > 24 {
		return schedule.Event{}, false
	}

	tr := schedule.TimeRange{
		StartHour:   c.StartHour.Value,
		StartMinute: clampMinute(c.StartMinute),
		EndHour:     c.EndHour.Value,
		EndMinute:   clampMinute(c.EndMinute),
	}
	if tr.EndHour == 24 {
		tr.EndMinute = 0
	}
	if tr.End() <= tr.Start() {
		// One-hour extension, capped at midnight.
		tr = schedule.NewTimeRange(tr.Start(), min(tr.Start()+60, schedule.MinutesPerDay))
	}
	if !tr.Valid() {
		return schedule.Event{}, false
	}

	color, err := schedule.ParseColor(c.Color.String())
	if err != nil {
		color = schedule.DefaultColor
	}

	ev := schedule.Event{
		ID:          schedule.NewID(),
		Day:         c.Day.Value,
		TimeRange:   tr,
		Color:       color,
		Title:       title,
		Description: truncateRunes(strings.TrimSpace(c.Description.String()), MaxDescriptionLength),
		Priority:    strings.TrimSpace(c.Priority.String()),
	}
	if c.TaskChecked.Set {
		checked := c.TaskChecked.Value
		ev.TaskChecked = &checked
	}
	return ev, true
}

// ValidateCandidates validates all candidates for the week at weekStart,
// filling Date. Invalid candidates are skipped.
func ValidateCandidates(candidates []Candidate, weekStart time.Time) []schedule.Event {
	events := make([]schedule.Event, 0, len(candidates))
	for _, c := range candidates {
		ev, ok := ValidateCandidate(c)
		if !ok {
			continue
		}
		ev.Date = schedule.DateForDay(weekStart, ev.Day)
		events = append(events, ev)
	}
	return events
}

func clampMinute(m FlexInt) int {
	if !m.Set {
		return 0
	}
	return min(max(m.Value, 0), 59)
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:limit]))
}
