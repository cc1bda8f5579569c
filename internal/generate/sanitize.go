package generate

import (
	"time"

	"github.com/javiermolinar/rocinante/internal/schedule"
)

// Result is a validated, conflict-free generation outcome.
type Result struct {
	Events   []schedule.Event
	Settings schedule.Settings
	// Dropped counts candidates lost to validation or overlap resolution.
	Dropped int
	// Attempts is the number of model calls it took.
	Attempts int
	Notes    string
}

// Sanitize validates every candidate of resp against the week at weekStart,
// resolves overlaps per day and sanitizes the proposed settings.
func Sanitize(resp Response, weekStart time.Time, base schedule.Settings) Result {
	valid := ValidateCandidates(resp.Events, weekStart)
	resolved := schedule.ResolveOverlaps(valid)
	return Result{
		Events:   resolved,
		Settings: SanitizeSettings(resp.Settings, base),
		Dropped:  len(resp.Events) - len(resolved),
		Notes:    resp.Notes.String(),
	}
}

// Merge adds generated events to existing ones. Generated events that overlap
// an existing event are dropped so the user's own blocks never move; the
// count of dropped events is returned.
func Merge(existing, generated []schedule.Event) ([]schedule.Event, int) {
	out := make([]schedule.Event, 0, len(existing)+len(generated))
	out = append(out, existing...)
	dropped := 0
	for _, g := range generated {
		if overlapsAny(g, existing) {
			dropped++
			continue
		}
		out = append(out, g)
	}
	return out, dropped
}

func overlapsAny(ev schedule.Event, others []schedule.Event) bool {
	for _, o := range others {
		if o.Day == ev.Day && schedule.Overlaps(o.TimeRange, ev.TimeRange) {
			return true
		}
	}
	return false
}
