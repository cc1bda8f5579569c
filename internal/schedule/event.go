// Package schedule defines the core domain types for rocinante: time blocks,
// their palette, per-schedule settings and the interval math that keeps a
// week free of overlapping blocks.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrInvalidDay     = errors.New("day must be between 0 and 6")
	ErrInvalidTime    = errors.New("time must be between 00:00 and 24:00")
	ErrEndBeforeStart = errors.New("end time must be after start time")
	ErrInvalidColor   = errors.New("unknown color")
)

// Domain errors.
var (
	ErrTimeBlockOverlap = errors.New("time block overlaps with existing event")
	ErrEventNotFound    = errors.New("event not found")
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrScheduleExists   = errors.New("schedule already exists")
)

// DaysInWeek is the number of day columns in a displayed week.
const DaysInWeek = 7

// Color is a semantic tag drawn from a fixed palette.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
	ColorOrange Color = "orange"
	ColorGray   Color = "gray"
)

// DefaultColor is used when a color is missing or unknown.
const DefaultColor = ColorBlue

var palette = []Color{
	ColorBlue, ColorGreen, ColorRed, ColorYellow,
	ColorPurple, ColorPink, ColorOrange, ColorGray,
}

// Colors returns the palette in display order.
func Colors() []Color {
	out := make([]Color, len(palette))
	copy(out, palette)
	return out
}

// Valid reports whether c is part of the palette.
func (c Color) Valid() bool {
	for _, p := range palette {
		if p == c {
			return true
		}
	}
	return false
}

// ParseColor parses a palette name case-insensitively.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}

// Event is a titled, colored time block on one day of a displayed week.
type Event struct {
	ID   string    `json:"id"`
	Day  int       `json:"day"`  // 0..6, offset from the week start
	Date time.Time `json:"date"` // derived from Day and the week start
	TimeRange
	Color       Color  `json:"color"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Template extensions. Carried through untouched.
	TaskChecked *bool  `json:"taskChecked,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// NewEvent creates a validated event for the given week.
func NewEvent(weekStart time.Time, day int, title string, tr TimeRange, color Color) (Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Event{}, ErrEmptyTitle
	}
	if day < 0 || day >= DaysInWeek {
		return Event{}, ErrInvalidDay
	}
	if err := tr.Validate(); err != nil {
		return Event{}, err
	}
	if color == "" {
		color = DefaultColor
	}
	if !color.Valid() {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	return Event{
		ID:        NewID(),
		Day:       day,
		Date:      DateForDay(weekStart, day),
		TimeRange: tr,
		Color:     color,
		Title:     title,
	}, nil
}

// NewID returns a fresh opaque event identifier.
func NewID() string {
	return uuid.NewString()
}

// Validate checks the event invariants.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if e.Day < 0 || e.Day >= DaysInWeek {
		return ErrInvalidDay
	}
	if !e.Color.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidColor, e.Color)
	}
	return e.TimeRange.Validate()
}

// SameDate reports whether both events occupy the same calendar date.
func (e Event) SameDate(other Event) bool {
	y1, m1, d1 := e.Date.Date()
	y2, m2, d2 := other.Date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// WithTime returns a copy of e with its time fields replaced.
func (e Event) WithTime(tr TimeRange) Event {
	e.TimeRange = tr
	return e
}

// String renders a compact one-line form, used in logs and CLI output.
func (e Event) String() string {
	return fmt.Sprintf("%s %s [%s] %s", e.Date.Format("2006-01-02"), e.TimeRange, e.Color, e.Title)
}
