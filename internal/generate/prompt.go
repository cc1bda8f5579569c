package generate

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/rocinante/internal/llm"
	"github.com/javiermolinar/rocinante/internal/schedule"
)

const systemPrompt = `You are a weekly schedule assistant. Build time blocks for one week and return JSON only.

Week:
- Day 0 is %s. Days run 0-6:
%s
- Working hours: %02d:00 to %02d:00
- Time increment: %d minutes

%s

Rules:
1. Return JSON only (no markdown, no explanation).
2. "day" is an integer 0-6 relative to the week above.
3. Hours use 24-hour time: startHour 0-23, endHour 0-24; minutes 0-59. A block may end at 24:00.
4. Every block must end after it starts and must not overlap another block on the same day.
5. Prefer the working hours unless the request says otherwise.
6. Align start and end times to the time increment.
7. "color" must be one of: %s.
8. Keep titles under %d characters and descriptions under %d characters.
9. Include "settings" only if the request asks to change them.

JSON schema:
{
  "events": [
    {
      "day": 0,
      "startHour": 9,
      "startMinute": 0,
      "endHour": 10,
      "endMinute": 30,
      "title": "string",
      "description": "string",
      "color": "blue"
    }
  ],
  "settings": {
    "weekStartsOnSunday": false,
    "use12HourFormat": false,
    "showDates": true,
    "workingHoursStart": 8,
    "workingHoursEnd": 18,
    "timeIncrement": 30
  },
  "notes": "string"
}`

const feedbackPrompt = `Your previous answer could not be used: %s
Reply again with only the JSON document described above.`

// Request describes one generation.
type Request struct {
	Prompt    string
	WeekStart time.Time
	Settings  schedule.Settings
	// Existing events are shown to the model so it can plan around them.
	Existing []schedule.Event
}

// BuildMessages returns the system and user messages for req.
func BuildMessages(req Request) []llm.Message {
	return []llm.Message{
		llm.System(buildSystemPrompt(req)),
		llm.User(req.Prompt),
	}
}

func buildSystemPrompt(req Request) string {
	s := req.Settings
	colors := make([]string, 0, len(schedule.Colors()))
	for _, c := range schedule.Colors() {
		colors = append(colors, string(c))
	}

	return fmt.Sprintf(systemPrompt,
		req.WeekStart.Format("Monday, 2006-01-02"),
		formatWeekDays(req.WeekStart),
		s.WorkingHoursStart, s.WorkingHoursEnd,
		s.TimeIncrement,
		formatExisting(req.Existing),
		strings.Join(colors, ", "),
		MaxTitleLength, MaxDescriptionLength,
	)
}

func formatWeekDays(weekStart time.Time) string {
	var b strings.Builder
	for day := 0; day < schedule.DaysInWeek; day++ {
		date := schedule.DateForDay(weekStart, day)
		fmt.Fprintf(&b, "  %d = %s\n", day, date.Format("Mon 2006-01-02"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatExisting(events []schedule.Event) string {
	if len(events) == 0 {
		return "The week is currently empty."
	}
	var b strings.Builder
	b.WriteString("Existing blocks (keep them free):\n")
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b schedule.Event) int {
		return cmp.Or(cmp.Compare(a.Day, b.Day), cmp.Compare(a.Start(), b.Start()))
	})
	for _, ev := range sorted {
		fmt.Fprintf(&b, "- day %d %s %s\n", ev.Day, ev.TimeRange, ev.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}

func feedbackMessage(err error) llm.Message {
	return llm.User(fmt.Sprintf(feedbackPrompt, err))
}
