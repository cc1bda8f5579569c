package schedule

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of a day; 24:00 is a valid exclusive end.
const MinutesPerDay = 24 * 60

// TimeRange holds wall-clock start and end components.
// EndHour may be 24 (with EndMinute 0) for a block ending at midnight.
type TimeRange struct {
	StartHour   int `json:"startHour"`
	StartMinute int `json:"startMinute"`
	EndHour     int `json:"endHour"`
	EndMinute   int `json:"endMinute"`
}

// NewTimeRange builds a TimeRange from minutes since midnight.
func NewTimeRange(start, end int) TimeRange {
	sh, sm := MinutesToClock(start)
	eh, em := MinutesToClock(end)
	return TimeRange{StartHour: sh, StartMinute: sm, EndHour: eh, EndMinute: em}
}

// Start returns the start in minutes since midnight.
func (t TimeRange) Start() int { return MinutesFromMidnight(t.StartHour, t.StartMinute) }

// End returns the end in minutes since midnight.
func (t TimeRange) End() int { return MinutesFromMidnight(t.EndHour, t.EndMinute) }

// Duration returns the block length in minutes.
func (t TimeRange) Duration() int { return t.End() - t.Start() }

// Validate checks the time invariants of an event.
func (t TimeRange) Validate() error {
	if t.StartHour < 0 || t.StartHour > 23 || t.StartMinute < 0 || t.StartMinute > 59 {
		return fmt.Errorf("start: %w", ErrInvalidTime)
	}
	if t.EndHour < 0 || t.EndHour > 24 || t.EndMinute < 0 || t.EndMinute > 59 {
		return fmt.Errorf("end: %w", ErrInvalidTime)
	}
	if t.EndHour == 24 && t.EndMinute != 0 {
		return fmt.Errorf("end: %w", ErrInvalidTime)
	}
	if t.End() <= t.Start() {
		return ErrEndBeforeStart
	}
	return nil
}

// Valid reports whether Validate succeeds.
func (t TimeRange) Valid() bool { return t.Validate() == nil }

// String renders the range as "HH:MM-HH:MM".
func (t TimeRange) String() string {
	return FormatClock(t.StartHour, t.StartMinute, false) + "-" + FormatClock(t.EndHour, t.EndMinute, false)
}

// MinutesFromMidnight converts hour and minute to minutes since midnight.
func MinutesFromMidnight(hour, minute int) int {
	return hour*60 + minute
}

// MinutesToClock splits minutes since midnight into hour and minute,
// carrying minute overflow into the hour. 1440 maps to 24:00.
func MinutesToClock(m int) (hour, minute int) {
	if m < 0 {
		m = 0
	}
	if m > MinutesPerDay {
		m = MinutesPerDay
	}
	return m / 60, m % 60
}

// SnapMinutes rounds minutes to the nearest multiple of increment.
// Ties round half up: with increment 30, 15 snaps to 30 and -15 snaps to 0.
func SnapMinutes(minutes, increment int) int {
	return snap(float64(minutes), increment)
}

// snap rounds a fractional minute value half up to a multiple of increment.
func snap(minutes float64, increment int) int {
	if increment <= 0 {
		panic(fmt.Sprintf("schedule: snap increment must be positive, got %d", increment))
	}
	inc := float64(increment)
	return int(math.Floor(minutes/inc+0.5)) * increment
}

// PxToMinutes converts a pixel displacement to minutes for the given row height
// (pixels per hour).
func PxToMinutes(px, rowHeightPx float64) float64 {
	mustRowHeight(rowHeightPx)
	return px / rowHeightPx * 60
}

// MinutesToPx converts minutes to pixels for the given row height.
func MinutesToPx(minutes, rowHeightPx float64) float64 {
	mustRowHeight(rowHeightPx)
	return minutes / 60 * rowHeightPx
}

// CalculateDraggedTime moves t by offsetPx, snapped to increment minutes and
// kept inside [minHour, maxHour]. Duration is preserved exactly.
// It panics on non-positive row height or inverted hour bounds since those
// are layout bugs, not runtime conditions.
func CalculateDraggedTime(t TimeRange, offsetPx, rowHeightPx float64, minHour, maxHour, increment int) TimeRange {
	mustRowHeight(rowHeightPx)
	mustHours(minHour, maxHour)

	delta := snap(PxToMinutes(offsetPx, rowHeightPx), increment)
	duration := t.Duration()
	start := t.Start() + delta

	lo := minHour * 60
	hi := maxHour*60 - duration
	if hi < lo {
		// Longer than the visible window: there is no legal position to move to.
		return t
	}
	start = min(max(start, lo), hi)

	return NewTimeRange(start, start+duration)
}

// ParseClock parses "HH:MM" (24:00 allowed) into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(m) != 2 || len(h) == 0 || len(h) > 2 {
		return 0, 0, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidTime, s)
	}
	hour, err = strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidTime, s)
	}
	minute, err = strconv.Atoi(m)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidTime, s)
	}
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return hour, minute, nil
}

// ParseTimeRange parses a start and end in "HH:MM" form.
func ParseTimeRange(start, end string) (TimeRange, error) {
	sh, sm, err := ParseClock(start)
	if err != nil {
		return TimeRange{}, fmt.Errorf("start time: %w", err)
	}
	eh, em, err := ParseClock(end)
	if err != nil {
		return TimeRange{}, fmt.Errorf("end time: %w", err)
	}
	tr := TimeRange{StartHour: sh, StartMinute: sm, EndHour: eh, EndMinute: em}
	if err := tr.Validate(); err != nil {
		return TimeRange{}, err
	}
	return tr, nil
}

// FormatClock formats hour and minute as "15:04" or, with use12h, "3:04 PM".
// 24:00 renders as "24:00" or "12:00 AM".
func FormatClock(hour, minute int, use12h bool) string {
	if !use12h {
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}
	suffix := "AM"
	h := hour % 24
	if h >= 12 {
		suffix = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, suffix)
}

func mustRowHeight(rowHeightPx float64) {
	if !(rowHeightPx > 0) || math.IsInf(rowHeightPx, 0) {
		panic(fmt.Sprintf("schedule: row height must be positive, got %v", rowHeightPx))
	}
}

func mustHours(minHour, maxHour int) {
	if minHour < 0 || maxHour > 24 || minHour >= maxHour {
		panic(fmt.Sprintf("schedule: invalid hour bounds [%d, %d]", minHour, maxHour))
	}
}
