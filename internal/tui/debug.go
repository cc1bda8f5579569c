package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) logKey(msg tea.KeyMsg) {
	m.logger.Debug("key",
		"key", msg.String(),
		"mode", m.mode.String(),
		"dragging", m.drag.Active(),
	)
}

func (m Model) logMouse(msg tea.MouseMsg) {
	m.logger.Debug("mouse",
		"x", msg.X,
		"y", msg.Y,
		"action", int(msg.Action),
		"button", int(msg.Button),
		"dragging", m.drag.Active(),
	)
}
