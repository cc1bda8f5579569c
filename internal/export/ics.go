package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/rocinante/internal/schedule"
)

const productID = "-//rocinante//weekly schedule//EN"

// ErrNoEvents is returned by ParseICS when the calendar has no VEVENTs.
var ErrNoEvents = errors.New("calendar has no events")

// ICS writes the schedule as a VCALENDAR with one VEVENT per event. Wall-clock
// times are interpreted in loc (time.Local when nil). UIDs are the event IDs
// and the palette color is carried in CATEGORIES.
func ICS(w io.Writer, sched *schedule.Schedule, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(sched.Name)

	stamp := sched.UpdatedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}

	for _, ev := range ordered(sched) {
		day := time.Date(ev.Date.Year(), ev.Date.Month(), ev.Date.Day(), 0, 0, 0, 0, loc)

		vev := cal.AddEvent(ev.ID)
		vev.SetDtStampTime(stamp)
		vev.SetStartAt(day.Add(time.Duration(ev.Start()) * time.Minute))
		vev.SetEndAt(day.Add(time.Duration(ev.End()) * time.Minute))
		vev.SetSummary(ev.Title)
		if ev.Description != "" {
			vev.SetDescription(ev.Description)
		}
		vev.AddProperty(ical.ComponentPropertyCategories, string(ev.Color))
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// ImportResult holds the events read from a calendar and how many VEVENTs
// were skipped because they are all-day, span several days, fall outside the
// week or carry no usable times.
type ImportResult struct {
	Events  []schedule.Event
	Skipped int
}

// ParseICS reads VEVENTs that fall inside the week starting at weekStart.
// Times are converted to loc (time.Local when nil) before being mapped onto
// the week grid. Imported events get fresh IDs.
func ParseICS(r io.Reader, weekStart time.Time, loc *time.Location) (*ImportResult, error) {
	if loc == nil {
		loc = time.Local
	}
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, loc)

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	vevents := cal.Events()
	if len(vevents) == 0 {
		return nil, ErrNoEvents
	}

	result := &ImportResult{}
	for _, vev := range vevents {
		ev, ok := importEvent(vev, weekStart, loc)
		if !ok {
			result.Skipped++
			continue
		}
		result.Events = append(result.Events, ev)
	}
	return result, nil
}

func importEvent(vev *ical.VEvent, weekStart time.Time, loc *time.Location) (schedule.Event, bool) {
	if isAllDay(vev) {
		return schedule.Event{}, false
	}

	start, err := vev.GetStartAt()
	if err != nil {
		return schedule.Event{}, false
	}
	end, err := vev.GetEndAt()
	if err != nil {
		return schedule.Event{}, false
	}
	start, end = start.In(loc), end.In(loc)

	day, ok := schedule.DayForDate(weekStart, start)
	if !ok {
		return schedule.Event{}, false
	}

	startMin := schedule.MinutesFromMidnight(start.Hour(), start.Minute())
	midnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	endMin := int(end.Sub(midnight) / time.Minute)
	if endMin > schedule.MinutesPerDay || endMin <= startMin {
		return schedule.Event{}, false
	}

	title := "Untitled"
	if p := vev.GetProperty(ical.ComponentPropertySummary); p != nil && strings.TrimSpace(p.Value) != "" {
		title = strings.TrimSpace(p.Value)
	}

	color := schedule.DefaultColor
	if p := vev.GetProperty(ical.ComponentPropertyCategories); p != nil {
		for _, c := range strings.Split(p.Value, ",") {
			if parsed, err := schedule.ParseColor(c); err == nil {
				color = parsed
				break
			}
		}
	}

	ev, err := schedule.NewEvent(weekStart, day, title, schedule.NewTimeRange(startMin, endMin), color)
	if err != nil {
		return schedule.Event{}, false
	}
	if p := vev.GetProperty(ical.ComponentPropertyDescription); p != nil {
		ev.Description = p.Value
	}
	return ev, true
}

// isAllDay detects DATE-valued starts, either by VALUE=DATE or by a value
// without a time part.
func isAllDay(vev *ical.VEvent) bool {
	p := vev.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}
