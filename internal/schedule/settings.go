package schedule

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidSettings is returned by Settings.Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// Default working window and snap increment.
const (
	DefaultWorkingHoursStart = 8
	DefaultWorkingHoursEnd   = 18
	DefaultTimeIncrement     = 30
)

var timeIncrements = []int{5, 15, 30, 60}

// TimeIncrements returns the allowed snap increments in minutes.
func TimeIncrements() []int {
	return slices.Clone(timeIncrements)
}

// ValidIncrement reports whether minutes is an allowed snap increment.
func ValidIncrement(minutes int) bool {
	return slices.Contains(timeIncrements, minutes)
}

// Settings are the per-schedule display preferences.
type Settings struct {
	WeekStartsOnSunday bool `json:"weekStartsOnSunday"`
	Use12HourFormat    bool `json:"use12HourFormat"`
	ShowDates          bool `json:"showDates"`
	WorkingHoursStart  int  `json:"workingHoursStart"`
	WorkingHoursEnd    int  `json:"workingHoursEnd"`
	TimeIncrement      int  `json:"timeIncrement"`
}

// DefaultSettings returns the settings used for new schedules.
func DefaultSettings() Settings {
	return Settings{
		ShowDates:         true,
		WorkingHoursStart: DefaultWorkingHoursStart,
		WorkingHoursEnd:   DefaultWorkingHoursEnd,
		TimeIncrement:     DefaultTimeIncrement,
	}
}

// Validate checks the working window and increment.
func (s Settings) Validate() error {
	if s.WorkingHoursStart < 0 || s.WorkingHoursEnd > 24 || s.WorkingHoursStart >= s.WorkingHoursEnd {
		return fmt.Errorf("%w: working hours [%d, %d]", ErrInvalidSettings, s.WorkingHoursStart, s.WorkingHoursEnd)
	}
	if !ValidIncrement(s.TimeIncrement) {
		return fmt.Errorf("%w: time increment %d (want one of %v)", ErrInvalidSettings, s.TimeIncrement, timeIncrements)
	}
	return nil
}
