package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/rocinante/internal/schedule"
)

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func testSchedule(t *testing.T) *schedule.Schedule {
	t.Helper()
	mk := func(day int, title, start, end string, color schedule.Color) schedule.Event {
		tr, err := schedule.ParseTimeRange(start, end)
		if err != nil {
			t.Fatalf("ParseTimeRange: %v", err)
		}
		ev, err := schedule.NewEvent(monday, day, title, tr, color)
		if err != nil {
			t.Fatalf("NewEvent: %v", err)
		}
		return ev
	}

	review := mk(2, "Review", "14:00", "15:30", schedule.ColorPurple)
	review.Description = "Quarterly numbers"

	return &schedule.Schedule{
		ID:        "sched-1",
		Name:      "work",
		WeekStart: monday,
		Settings:  schedule.DefaultSettings(),
		Events: []schedule.Event{
			review,
			mk(0, "Late", "22:00", "24:00", schedule.ColorGray),
			mk(0, "Standup", "09:00", "09:30", schedule.ColorBlue),
		},
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, testSchedule(t)); err != nil {
		t.Fatalf("CSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}

	want := [][]string{
		{"day", "date", "start", "end", "title", "description", "color"},
		{"0", "2025-01-06", "09:00", "09:30", "Standup", "", "blue"},
		{"0", "2025-01-06", "22:00", "24:00", "Late", "", "gray"},
		{"2", "2025-01-08", "14:00", "15:30", "Review", "Quarterly numbers", "purple"},
	}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d: %v", len(want), len(records), records)
	}
	for i := range want {
		if strings.Join(records[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("record %d = %v, want %v", i, records[i], want[i])
		}
	}
}

func TestCSV_QuotesFields(t *testing.T) {
	sched := testSchedule(t)
	sched.Events[0].Title = `Review, "final"`

	var buf bytes.Buffer
	if err := CSV(&buf, sched); err != nil {
		t.Fatalf("CSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if got := records[len(records)-1][4]; got != `Review, "final"` {
		t.Errorf("title = %q", got)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, testSchedule(t)); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var got schedule.Schedule
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if got.Name != "work" || len(got.Events) != 3 {
		t.Fatalf("unexpected document: %+v", got)
	}
	if got.Events[0].Title != "Standup" {
		t.Errorf("expected events in day/start order, first is %q", got.Events[0].Title)
	}
	if !strings.Contains(buf.String(), "\n  \"name\"") {
		t.Error("expected indented output")
	}
}

func TestText(t *testing.T) {
	sched := testSchedule(t)
	sched.Settings.Use12HourFormat = true

	var buf bytes.Buffer
	if err := Text(&buf, sched); err != nil {
		t.Fatalf("Text failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"work (week of Mon Jan 6, 2025)",
		"Monday, Jan 6",
		"9:00 AM - 9:30 AM  Standup",
		"10:00 PM - 12:00 AM  Late",
		"Wednesday, Jan 8",
		"Review (Quarterly numbers)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestText_Empty(t *testing.T) {
	sched := &schedule.Schedule{Name: "empty", WeekStart: monday}

	var buf bytes.Buffer
	if err := Text(&buf, sched); err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No events scheduled.") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestICS_RoundTrip(t *testing.T) {
	sched := testSchedule(t)

	var buf bytes.Buffer
	if err := ICS(&buf, sched, time.UTC); err != nil {
		t.Fatalf("ICS failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"BEGIN:VCALENDAR", "BEGIN:VEVENT", "UID:" + sched.Events[0].ID, "CATEGORIES:purple"} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar missing %q", want)
		}
	}

	res, err := ParseICS(strings.NewReader(out), monday, time.UTC)
	if err != nil {
		t.Fatalf("ParseICS failed: %v", err)
	}
	if res.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", res.Skipped)
	}
	if len(res.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(res.Events))
	}

	byTitle := map[string]schedule.Event{}
	for _, ev := range res.Events {
		byTitle[ev.Title] = ev
	}

	review := byTitle["Review"]
	if review.Day != 2 || review.TimeRange != (schedule.TimeRange{StartHour: 14, EndHour: 15, EndMinute: 30}) {
		t.Errorf("Review = day %d %v", review.Day, review.TimeRange)
	}
	if review.Color != schedule.ColorPurple {
		t.Errorf("Review color = %q, want purple", review.Color)
	}
	if review.Description != "Quarterly numbers" {
		t.Errorf("Review description = %q", review.Description)
	}
	if review.ID == sched.Events[0].ID {
		t.Error("expected imported events to get fresh IDs")
	}

	late := byTitle["Late"]
	if late.EndHour != 24 || late.EndMinute != 0 {
		t.Errorf("Late end = %02d:%02d, want 24:00", late.EndHour, late.EndMinute)
	}
}

const foreignCalendar = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:timed
DTSTAMP:20250101T000000Z
DTSTART:20250107T100000Z
DTEND:20250107T110000Z
SUMMARY:Dentist
CATEGORIES:unknown
END:VEVENT
BEGIN:VEVENT
UID:allday
DTSTAMP:20250101T000000Z
DTSTART;VALUE=DATE:20250108
DTEND;VALUE=DATE:20250109
SUMMARY:Holiday
END:VEVENT
BEGIN:VEVENT
UID:multiday
DTSTAMP:20250101T000000Z
DTSTART:20250109T220000Z
DTEND:20250110T020000Z
SUMMARY:Overnight
END:VEVENT
BEGIN:VEVENT
UID:nextweek
DTSTAMP:20250101T000000Z
DTSTART:20250114T100000Z
DTEND:20250114T110000Z
SUMMARY:Later
END:VEVENT
END:VCALENDAR
`

func TestParseICS_SkipsUnsupported(t *testing.T) {
	res, err := ParseICS(strings.NewReader(strings.ReplaceAll(foreignCalendar, "\n", "\r\n")), monday, time.UTC)
	if err != nil {
		t.Fatalf("ParseICS failed: %v", err)
	}
	if len(res.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(res.Events))
	}
	if res.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", res.Skipped)
	}

	ev := res.Events[0]
	if ev.Title != "Dentist" || ev.Day != 1 || ev.StartHour != 10 || ev.EndHour != 11 {
		t.Errorf("unexpected event: %+v", ev)
	}
	if ev.Color != schedule.DefaultColor {
		t.Errorf("Color = %q, want default", ev.Color)
	}
}

func TestParseICS_Empty(t *testing.T) {
	cal := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//test//EN\r\nEND:VCALENDAR\r\n"
	_, err := ParseICS(strings.NewReader(cal), monday, time.UTC)
	if !errors.Is(err, ErrNoEvents) {
		t.Errorf("expected ErrNoEvents, got %v", err)
	}
}
