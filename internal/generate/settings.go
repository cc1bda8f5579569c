package generate

import "github.com/javiermolinar/rocinante/internal/schedule"

// SanitizeSettings applies the settings the model proposed on top of base.
// Missing or unusable fields keep their base value; working hours are
// clamped into [0,24] and swapped when inverted.
func SanitizeSettings(raw *RawSettings, base schedule.Settings) schedule.Settings {
	out := base
	if raw == nil {
		return out
	}

	if raw.WeekStartsOnSunday.Set {
		out.WeekStartsOnSunday = raw.WeekStartsOnSunday.Value
	}
	if raw.Use12HourFormat.Set {
		out.Use12HourFormat = raw.Use12HourFormat.Value
	}
	if raw.ShowDates.Set {
		out.ShowDates = raw.ShowDates.Value
	}

	start, end := out.WorkingHoursStart, out.WorkingHoursEnd
	if raw.WorkingHoursStart.Set {
		start = clampHour(raw.WorkingHoursStart.Value)
	}
	if raw.WorkingHoursEnd.Set {
		end = clampHour(raw.WorkingHoursEnd.Value)
	}
	if start > end {
		start, end = end, start
	}
	if start < end {
		out.WorkingHoursStart, out.WorkingHoursEnd = start, end
	}

	if raw.TimeIncrement.Set && schedule.ValidIncrement(raw.TimeIncrement.Value) {
		out.TimeIncrement = raw.TimeIncrement.Value
	}

	if out.Validate() != nil {
		return base
	}
	return out
}

func clampHour(h int) int {
	return min(max(h, 0), 24)
}
