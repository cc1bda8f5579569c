package schedule

import (
	"cmp"
	"math"
	"slices"
)

// NoHourLimit disables the working-hour clamp on one side of
// ComputeCollisionBounds.
const NoHourLimit = -1

// Overlaps reports whether two ranges overlap using half-open semantics:
// a block ending exactly when another starts does not overlap it.
func Overlaps(a, b TimeRange) bool {
	return a.Start() < b.End() && b.Start() < a.End()
}

// CollisionBounds is the inclusive pixel displacement range a dragged block
// may travel without touching a sibling or leaving the working hours.
// An unconstrained side holds ±Inf.
type CollisionBounds struct {
	MinOffsetPx float64
	MaxOffsetPx float64
}

// Unbounded returns bounds with no constraint on either side.
func Unbounded() CollisionBounds {
	return CollisionBounds{MinOffsetPx: math.Inf(-1), MaxOffsetPx: math.Inf(1)}
}

// Clamp limits px to the bounds.
func (b CollisionBounds) Clamp(px float64) float64 {
	return min(max(px, b.MinOffsetPx), b.MaxOffsetPx)
}

// Contains reports whether px lies within the bounds.
func (b CollisionBounds) Contains(px float64) bool {
	return px >= b.MinOffsetPx && px <= b.MaxOffsetPx
}

// snapEpsilon absorbs float error when comparing minute values derived from
// pixel offsets.
const snapEpsilon = 1e-9

// SnapOffset clamps px to the bounds and returns the offset of the nearest
// increment multiple (in minutes) that still lies inside them. Raw bounds are
// only snap-safe when every block sits on the increment grid; SnapOffset keeps
// the snapped result collision-free for arbitrary sibling times.
func (b CollisionBounds) SnapOffset(px, rowHeightPx float64, increment int) float64 {
	lo := PxToMinutes(b.MinOffsetPx, rowHeightPx)
	hi := PxToMinutes(b.MaxOffsetPx, rowHeightPx)
	delta := snap(PxToMinutes(b.Clamp(px), rowHeightPx), increment)

	inc := float64(increment)
	if float64(delta) < lo-snapEpsilon {
		delta = int(math.Ceil(lo/inc-snapEpsilon)) * increment
	}
	if float64(delta) > hi+snapEpsilon {
		delta = int(math.Floor(hi/inc+snapEpsilon)) * increment
	}
	if float64(delta) < lo-snapEpsilon || float64(delta) > hi+snapEpsilon {
		return 0
	}
	return MinutesToPx(float64(delta), rowHeightPx)
}

// ComputeCollisionBounds returns how far dragged may move. The nearest sibling
// ending at or before dragged's start sets the lower bound, the nearest sibling
// starting at or after dragged's end sets the upper bound, and the working
// hours clamp both sides. Siblings already overlapping dragged do not
// constrain. Pass NoHourLimit to leave a side unclamped by working hours.
func ComputeCollisionBounds(dragged TimeRange, siblings []TimeRange, minHour, maxHour int, rowHeightPx float64) CollisionBounds {
	mustRowHeight(rowHeightPx)
	if minHour != NoHourLimit && maxHour != NoHourLimit {
		mustHours(minHour, maxHour)
	}

	start, end := dragged.Start(), dragged.End()
	minDelta, maxDelta := math.Inf(-1), math.Inf(1)

	for _, s := range siblings {
		if s.End() <= start {
			minDelta = max(minDelta, float64(s.End()-start))
		}
		if s.Start() >= end {
			maxDelta = min(maxDelta, float64(s.Start()-end))
		}
	}

	if minHour != NoHourLimit {
		minDelta = max(minDelta, float64(minHour*60-start))
	}
	if maxHour != NoHourLimit {
		maxDelta = min(maxDelta, float64(maxHour*60-end))
	}

	if minDelta > maxDelta {
		// No legal displacement at all, e.g. a block outside the working hours.
		return CollisionBounds{}
	}

	return CollisionBounds{
		MinOffsetPx: MinutesToPx(minDelta, rowHeightPx),
		MaxOffsetPx: MinutesToPx(maxDelta, rowHeightPx),
	}
}

// ResolveOverlapsForDay turns a possibly overlapping set of same-day events
// into a non-overlapping one. Events are stably sorted by start; walking them
// in order, an event starting before the previous accepted end is shifted to
// start there if it still ends later, and dropped otherwise. Blocks whose
// resulting duration is not positive are never emitted. The input is left
// untouched.
func ResolveOverlapsForDay(events []Event) []Event {
	sorted := slices.Clone(events)
	sortByStart(sorted)

	result := make([]Event, 0, len(sorted))
	cursor := math.MinInt
	for _, ev := range sorted {
		start, end := ev.Start(), ev.End()
		if start < cursor {
			if end <= cursor {
				continue // fully swallowed
			}
			start = cursor
			ev = ev.WithTime(NewTimeRange(start, end))
		}
		if end <= start {
			continue
		}
		result = append(result, ev)
		cursor = end
	}
	return result
}

// ResolveOverlaps applies ResolveOverlapsForDay to each day independently and
// concatenates the results in ascending day order.
func ResolveOverlaps(events []Event) []Event {
	byDay := GroupByDay(events)
	days := make([]int, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	slices.Sort(days)

	result := make([]Event, 0, len(events))
	for _, day := range days {
		result = append(result, ResolveOverlapsForDay(byDay[day])...)
	}
	return result
}

// GroupByDay groups events by their day index, keeping input order per day.
func GroupByDay(events []Event) map[int][]Event {
	byDay := make(map[int][]Event)
	for _, ev := range events {
		byDay[ev.Day] = append(byDay[ev.Day], ev)
	}
	return byDay
}

// Conflict is a pair of same-day events that overlap.
type Conflict struct {
	A, B Event
}

// FindConflicts returns every overlapping pair of same-day events, ordered by
// day and start time.
func FindConflicts(events []Event) []Conflict {
	var conflicts []Conflict
	byDay := GroupByDay(events)
	days := make([]int, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	slices.Sort(days)

	for _, day := range days {
		dayEvents := slices.Clone(byDay[day])
		sortByStart(dayEvents)
		for i := 0; i < len(dayEvents); i++ {
			for j := i + 1; j < len(dayEvents); j++ {
				if dayEvents[j].Start() >= dayEvents[i].End() {
					break
				}
				if Overlaps(dayEvents[i].TimeRange, dayEvents[j].TimeRange) {
					conflicts = append(conflicts, Conflict{A: dayEvents[i], B: dayEvents[j]})
				}
			}
		}
	}
	return conflicts
}

// sortByStart stably sorts events by start time, keeping input order on ties.
func sortByStart(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		return cmp.Compare(a.Start(), b.Start())
	})
}
