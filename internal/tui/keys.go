package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/schedule"
	"github.com/javiermolinar/rocinante/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logKey(msg)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc":
		if m.drag.Active() {
			m.drag.CancelDrag()
			return m.setStatus("Move cancelled")
		}

	// Navigation
	case "h", "left":
		return m.shiftWeek(-1)
	case "l", "right":
		return m.shiftWeek(1)
	case "k", "up":
		m.scroll(-1)
	case "j", "down":
		m.scroll(1)

	case "g":
		if m.sched == nil || m.generating {
			return m, nil
		}
		m.drag.CancelDrag()
		m.mode = ModePrompt
		m.prompt.Reset()
		return m, tea.Batch(m.prompt.Focus(), textinput.Blink)

	case "y":
		if m.sched == nil {
			return m, nil
		}
		return m, commands.CopyWeek(m.copyFn, m.sched)

	case "r":
		if m.sched == nil {
			return m, nil
		}
		if len(schedule.FindConflicts(m.sched.Events)) == 0 {
			return m.setStatus("No overlapping events")
		}
		return m, commands.ResolveOverlaps(m.repo, m.sched.ID, m.sched.Events)
	}

	return m, nil
}

// handlePromptKeys handles keys while the generation prompt is focused.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.Reset()
		return m, nil

	case tea.KeyEnter:
		input := strings.TrimSpace(m.prompt.Value())
		if input == "" {
			return m, nil
		}
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.Reset()

		if m.generator == nil {
			gen, err := m.newGenerator()
			if err != nil {
				return m.Update(commands.ErrMsg{Err: err})
			}
			m.generator = gen
		}

		m.generating = true
		m.statusMsg = "Generating..."
		m.statusTime = m.now().Add(statusTTL)
		return m, commands.Generate(m.generator, m.repo, m.sched, input)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// shiftWeek opens the stored schedule delta weeks away from the current one.
func (m Model) shiftWeek(delta int) (tea.Model, tea.Cmd) {
	if m.sched == nil || m.loading {
		return m, nil
	}
	idx := -1
	for i, w := range m.weeks {
		if w.ID == m.sched.ID {
			idx = i
			break
		}
	}
	target := idx + delta
	if idx < 0 || target < 0 || target >= len(m.weeks) {
		if delta < 0 {
			return m.setStatus("No earlier week")
		}
		return m.setStatus("No later week")
	}

	m.drag.CancelDrag()
	m.loading = true
	return m, commands.LoadSchedule(m.repo, m.weeks[target].ID)
}

func (m *Model) scroll(delta int) {
	m.scrollOffset += delta
	m.clampScroll()
}
