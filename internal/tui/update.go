package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/tui/commands"
)

const statusTTL = 3 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.colWidth = m.calculateColWidth()
		m.prompt.Width = max(10, m.width-4)
		m.clampScroll()
		return m, nil

	case commands.ScheduleLoadedMsg:
		m.drag.CancelDrag()
		m.sched = msg.Schedule
		m.weeks = msg.Weeks
		m.loading = false
		m.err = nil
		m.drag.SetGeometry(m.geometry())
		m.colWidth = m.calculateColWidth()
		m.clampScroll()
		m.logger.Debug("schedule loaded",
			"schedule_id", msg.Schedule.ID,
			"events", len(msg.Schedule.Events),
			"weeks", len(msg.Weeks),
		)
		return m, nil

	case commands.EventSavedMsg:
		if m.sched != nil {
			m.sched = withEvent(m.sched, msg.Event)
		}
		return m.setStatus(fmt.Sprintf("Moved %q to %s", msg.Event.Title, m.formatRange(msg.Event.TimeRange)))

	case commands.EventsReplacedMsg:
		if m.sched != nil {
			m.sched = withEvents(m.sched, msg.Events)
		}
		return m.setStatus(fmt.Sprintf("%s: %d events, %d dropped", capitalize(msg.Reason), len(msg.Events), msg.Dropped))

	case commands.GeneratedMsg:
		m.generating = false
		if m.sched != nil {
			m.sched = withEvents(m.sched, msg.Events)
			m.sched.Settings = msg.Settings
			m.drag.SetGeometry(m.geometry())
			m.colWidth = m.calculateColWidth()
			m.clampScroll()
		}
		return m.setStatus(fmt.Sprintf("Added %d events (%d dropped, %d attempts)", msg.Added, msg.Dropped, msg.Attempts))

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		m.generating = false
		m.logger.Warn("command failed", "error", msg.Err)
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.now().Add(5 * time.Second)
		return m, clearStatusAfter(5 * time.Second)

	case commands.StatusMsgCmd:
		return m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Cursor blink and other component messages.
	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) setStatus(msg string) (Model, tea.Cmd) {
	m.statusMsg = msg
	m.statusTime = m.now().Add(statusTTL)
	return m, clearStatusAfter(statusTTL)
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
