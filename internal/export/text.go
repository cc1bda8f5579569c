package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/rocinante/internal/schedule"
)

// Text writes a human readable agenda, one heading per day that has events.
func Text(w io.Writer, sched *schedule.Schedule) error {
	use12h := sched.Settings.Use12HourFormat
	events := ordered(sched)

	var b strings.Builder
	fmt.Fprintf(&b, "%s (week of %s)\n", sched.Name, sched.WeekStart.Format("Mon Jan 2, 2006"))

	current := -1
	for _, ev := range events {
		if ev.Day != current {
			current = ev.Day
			fmt.Fprintf(&b, "\n%s\n", ev.Date.Format("Monday, Jan 2"))
		}
		fmt.Fprintf(&b, "  %s - %s  %s",
			schedule.FormatClock(ev.StartHour, ev.StartMinute, use12h),
			schedule.FormatClock(ev.EndHour, ev.EndMinute, use12h),
			ev.Title,
		)
		if ev.Description != "" {
			fmt.Fprintf(&b, " (%s)", ev.Description)
		}
		b.WriteByte('\n')
	}
	if len(events) == 0 {
		b.WriteString("\nNo events scheduled.\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
