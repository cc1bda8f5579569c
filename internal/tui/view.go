package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/rocinante/internal/schedule"
)

const helpText = "drag move • esc cancel • ←/→ week • ↑/↓ scroll • g generate • r resolve • y copy • q quit"

// cell is one grid line of one day column.
type cell struct {
	ev      *schedule.Event // nil for an empty cell
	row     int             // line index within the block
	height  int             // block height in lines
	variant blockVariant
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.sched == nil {
		if m.err != nil {
			return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
		}
		return "Loading..."
	}
	if m.visibleLines() == 0 || m.width < m.timeColWidth()+schedule.DaysInWeek*minColWidth {
		return "Terminal too small"
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTitle(), m.renderHeader())
	lines = append(lines, m.renderGrid()...)
	lines = append(lines, m.renderStatus(), m.renderHelp())
	return strings.Join(lines, "\n")
}

func (m Model) renderTitle() string {
	title := m.styles.TitleStyle.Render("rocinante")
	week := fmt.Sprintf(" %s · %s - %s", m.sched.Name,
		m.sched.WeekStart.Format("Jan 2"), m.sched.EndDate().Format("Jan 2, 2006"))
	rest := max(0, m.width-lipgloss.Width(title))
	return title + m.styles.SubtitleStyle.Width(rest).Render(ansi.Truncate(week, rest, "…"))
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(m.styles.TimeColumnStyle.Width(m.timeColWidth()).Render(""))

	today := m.now()
	showDates := m.sched.Settings.ShowDates
	for day := 0; day < schedule.DaysInWeek; day++ {
		date := schedule.DateForDay(m.sched.WeekStart, day)
		label := date.Format("Mon")
		if showDates {
			label = date.Format("Mon 02")
		}
		style := m.styles.DayHeaderStyle
		if sameDay(date, today) {
			style = m.styles.DayHeaderTodayStyle
		}
		b.WriteString(style.Width(m.colWidth).Render(ansi.Truncate(label, m.colWidth, "")))
	}
	return b.String()
}

func (m Model) renderGrid() []string {
	columns := m.buildColumns()
	s := m.settings()
	use12h := s.Use12HourFormat

	start, end := m.scrollOffset, m.scrollOffset+m.visibleLines()
	out := make([]string, 0, end-start)
	for line := start; line < end; line++ {
		var b strings.Builder

		label := ""
		if line%m.rowLines == 0 {
			label = schedule.FormatClock(s.WorkingHoursStart+line/m.rowLines, 0, use12h)
		}
		b.WriteString(m.styles.TimeColumnStyle.Width(m.timeColWidth()).Render(label))

		for day := 0; day < schedule.DaysInWeek; day++ {
			b.WriteString(m.renderCell(columns[day][line], use12h))
		}
		out = append(out, b.String())
	}
	return out
}

// buildColumns lays every event onto grid lines. The dragged event is drawn
// twice: a ghost at its stored slot and the live preview on top.
func (m Model) buildColumns() [schedule.DaysInWeek][]cell {
	total := m.totalLines()
	var columns [schedule.DaysInWeek][]cell
	for day := range columns {
		columns[day] = make([]cell, total)
	}

	session, dragging := m.drag.Session()

	for day := 0; day < schedule.DaysInWeek; day++ {
		events := m.sched.EventsOn(schedule.DateForDay(m.sched.WeekStart, day))

		var (
			prevEnd   = -1
			prevColor schedule.Color
			prevAlt   bool
		)
		for i := range events {
			ev := events[i]
			if dragging && ev.ID == session.Event.ID {
				m.paint(columns[day], ev, ev.TimeRange, blockGhost)
				continue
			}
			variant := blockNormal
			if ev.Start() == prevEnd && ev.Color == prevColor && !prevAlt {
				variant = blockAlt
			}
			m.paint(columns[day], ev, ev.TimeRange, variant)
			prevEnd, prevColor, prevAlt = ev.End(), ev.Color, variant == blockAlt
		}
	}

	if dragging {
		ev := session.Event
		if preview, ok := m.drag.Preview(); ok && ev.Day >= 0 && ev.Day < schedule.DaysInWeek {
			m.paint(columns[ev.Day], ev, preview, blockActive)
		}
	}

	return columns
}

func (m Model) paint(column []cell, ev schedule.Event, tr schedule.TimeRange, variant blockVariant) {
	top, height := blockSpan(m.positionOf(tr))
	for i := 0; i < height; i++ {
		line := top + i
		if line < 0 || line >= len(column) {
			continue
		}
		column[line] = cell{ev: &ev, row: i, height: height, variant: variant}
	}
}

func (m Model) renderCell(c cell, use12h bool) string {
	width := m.colWidth
	if c.ev == nil {
		return m.styles.EmptyCellStyle.Width(width).Render("")
	}

	text := ""
	if c.variant != blockGhost {
		switch c.row {
		case 0:
			text = c.ev.Title
			if c.height == 1 && width >= 14 {
				text = schedule.FormatClock(c.ev.StartHour, c.ev.StartMinute, use12h) + " " + text
			}
		case 1:
			text = formatRange(c.ev.TimeRange, use12h)
		case 2:
			text = c.ev.Description
		}
	}

	inner := width - 1
	content := " " + ansi.Truncate(text, inner-1, "…")
	block := m.styles.BlockStyle(c.ev.Color, c.variant).Width(inner).Render(content)
	return block + m.styles.EmptyCellStyle.Render(" ")
}

func (m Model) renderStatus() string {
	width := m.width
	if s, ok := m.drag.Session(); ok {
		preview, _ := m.drag.Preview()
		msg := fmt.Sprintf(" Moving %q: %s → %s", s.Event.Title,
			m.formatRange(s.Event.TimeRange), m.formatRange(preview))
		return m.styles.StatusDragStyle.Width(width).Render(ansi.Truncate(msg, width, "…"))
	}

	if m.statusMsg != "" {
		style := m.styles.StatusStyle
		if strings.HasPrefix(m.statusMsg, "Error:") {
			style = m.styles.StatusErrorStyle
		}
		return style.Width(width).Render(ansi.Truncate(" "+m.statusMsg, width, "…"))
	}

	msg := fmt.Sprintf(" %d events", len(m.sched.Events))
	if n := len(schedule.FindConflicts(m.sched.Events)); n > 0 {
		msg += fmt.Sprintf(" · %d overlaps (press r to resolve)", n)
	}
	return m.styles.StatusStyle.Width(width).Render(ansi.Truncate(msg, width, "…"))
}

func (m Model) renderHelp() string {
	if m.mode == ModePrompt {
		return ansi.Truncate(m.prompt.View(), m.width, "")
	}
	return m.styles.HelpStyle.Width(m.width).Render(ansi.Truncate(" "+helpText, m.width, "…"))
}

func (m Model) formatRange(tr schedule.TimeRange) string {
	return formatRange(tr, m.settings().Use12HourFormat)
}

func formatRange(tr schedule.TimeRange, use12h bool) string {
	return schedule.FormatClock(tr.StartHour, tr.StartMinute, use12h) + "-" +
		schedule.FormatClock(tr.EndHour, tr.EndMinute, use12h)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
