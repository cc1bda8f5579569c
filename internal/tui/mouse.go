package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/tui/commands"
)

// handleMouseMsg feeds press, motion and release events into the drag
// controller. Terminal rows are the pointer coordinate.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.logMouse(msg)

	if m.sched == nil || m.mode != ModeNormal {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if !m.drag.Active() {
				m.scroll(-1)
			}
			return m, nil
		case tea.MouseButtonWheelDown:
			if !m.drag.Active() {
				m.scroll(1)
			}
			return m, nil
		case tea.MouseButtonLeft:
		default:
			return m, nil
		}

		ev, ok := m.eventAt(msg.X, msg.Y)
		if !ok {
			m.drag.CancelDrag()
			return m, nil
		}
		m.drag.SetGeometry(m.geometry())
		m.drag.BeginDrag(ev, m.sched.Events, float64(msg.Y))
		return m, nil

	case tea.MouseActionMotion:
		m.drag.UpdatePointer(float64(msg.Y))
		return m, nil

	case tea.MouseActionRelease:
		return m.finishDrag()
	}

	return m, nil
}

// finishDrag ends the gesture and persists the moved event, if any.
func (m Model) finishDrag() (tea.Model, tea.Cmd) {
	if !m.drag.EndDrag() {
		return m, nil
	}
	ev, skip, ok := m.pending.take()
	if !ok {
		return m, nil
	}
	return m, commands.SaveEvent(m.repo, m.sched.ID, ev, skip)
}
