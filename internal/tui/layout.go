package tui

import (
	"math"

	"github.com/javiermolinar/rocinante/internal/drag"
	"github.com/javiermolinar/rocinante/internal/schedule"
)

// Fixed layout rows.
const (
	titleLines  = 1
	headerLines = 1
	gridTop     = titleLines + headerLines
	footerLines = 2
	minColWidth = 6
)

// timeColWidth is the width of the hour gutter, including a trailing space.
func (m Model) timeColWidth() int {
	if m.settings().Use12HourFormat {
		return len("12:00 PM ")
	}
	return len("09:00 ")
}

func (m Model) calculateColWidth() int {
	w := (m.width - m.timeColWidth()) / schedule.DaysInWeek
	return max(w, minColWidth)
}

// totalLines is the number of grid lines covering the working hours.
func (m Model) totalLines() int {
	s := m.settings()
	return (s.WorkingHoursEnd - s.WorkingHoursStart) * m.rowLines
}

// visibleLines is how many grid lines fit on screen.
func (m Model) visibleLines() int {
	avail := m.height - gridTop - footerLines
	return max(0, min(avail, m.totalLines()))
}

func (m *Model) clampScroll() {
	maxScroll := max(0, m.totalLines()-m.visibleLines())
	m.scrollOffset = min(max(m.scrollOffset, 0), maxScroll)
}

// dayAt maps a terminal column to a day index.
func (m Model) dayAt(x int) (int, bool) {
	x -= m.timeColWidth()
	if x < 0 {
		return 0, false
	}
	day := x / m.colWidth
	if day >= schedule.DaysInWeek {
		return 0, false
	}
	return day, true
}

// lineAt maps a terminal row to a grid line, accounting for scroll.
func (m Model) lineAt(y int) (int, bool) {
	y -= gridTop
	if y < 0 || y >= m.visibleLines() {
		return 0, false
	}
	return y + m.scrollOffset, true
}

// blockSpan converts a drawn position into whole grid lines. Every block
// occupies at least one line.
func blockSpan(pos drag.Position) (top, height int) {
	top = int(math.Floor(pos.TopPx + 1e-9))
	bottom := int(math.Ceil(pos.TopPx + pos.HeightPx - 1e-9))
	return top, max(1, bottom-top)
}

// positionOf places tr on the grid using the current geometry.
func (m Model) positionOf(tr schedule.TimeRange) drag.Position {
	g := m.geometry()
	return drag.Position{
		TopPx:    schedule.MinutesToPx(float64(tr.Start()-g.MinHour*60), g.RowHeightPx),
		HeightPx: schedule.MinutesToPx(float64(tr.Duration()), g.RowHeightPx),
	}
}

// eventAt returns the event drawn at the terminal cell (x, y).
func (m Model) eventAt(x, y int) (schedule.Event, bool) {
	if m.sched == nil || m.colWidth <= 0 {
		return schedule.Event{}, false
	}
	day, ok := m.dayAt(x)
	if !ok {
		return schedule.Event{}, false
	}
	line, ok := m.lineAt(y)
	if !ok {
		return schedule.Event{}, false
	}

	for _, ev := range m.sched.Events {
		if ev.Day != day {
			continue
		}
		top, height := blockSpan(m.drag.VisualPosition(ev))
		if line >= top && line < top+height {
			return ev, true
		}
	}
	return schedule.Event{}, false
}
