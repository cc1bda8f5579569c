// Package tui provides the terminal user interface for rocinante: a week grid
// of colored time blocks that can be dragged with the mouse.
package tui

import (
	"log/slog"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/drag"
	"github.com/javiermolinar/rocinante/internal/generate"
	"github.com/javiermolinar/rocinante/internal/logging"
	"github.com/javiermolinar/rocinante/internal/schedule"
	"github.com/javiermolinar/rocinante/internal/tui/commands"
	"github.com/javiermolinar/rocinante/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt      // typing an AI generation prompt
)

func (m Mode) String() string {
	switch m {
	case ModePrompt:
		return "prompt"
	default:
		return "normal"
	}
}

// pendingCommit receives the drag controller's commit callback so Update can
// turn it into a save command.
type pendingCommit struct {
	event schedule.Event
	skip  bool
	set   bool
}

func (p *pendingCommit) take() (schedule.Event, bool, bool) {
	ev, skip, ok := p.event, p.skip, p.set
	*p = pendingCommit{}
	return ev, skip, ok
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo         schedule.Repository
	config       *config.Config
	generator    commands.Generator
	newGenerator func() (commands.Generator, error)
	copyFn       func(string) error
	logger       *slog.Logger
	now          func() time.Time

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// State
	initial string             // schedule to open; empty opens the current week
	sched   *schedule.Schedule // nil until loaded
	weeks   []schedule.Summary // stored schedules ordered by week start
	drag    *drag.Controller
	pending *pendingCommit
	mode    Mode
	loading bool

	generating bool

	// Components
	prompt textinput.Model

	// Terminal dimensions and layout
	width        int
	height       int
	rowLines     int // terminal lines per hour
	colWidth     int
	scrollOffset int // first visible grid line

	// Messages
	statusMsg  string
	statusTime time.Time

	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithSchedule opens the schedule with the given ID or name instead of the
// current week.
func WithSchedule(idOrName string) ModelOption {
	return func(m *Model) {
		m.initial = idOrName
	}
}

// WithGenerator sets the AI generator used by the prompt.
func WithGenerator(g commands.Generator) ModelOption {
	return func(m *Model) {
		m.generator = g
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) ModelOption {
	return func(m *Model) {
		m.copyFn = fn
	}
}

// WithLogger sets the logger for TUI tracing.
func WithLogger(l *slog.Logger) ModelOption {
	return func(m *Model) {
		m.logger = logging.Component(l, "tui")
	}
}

// WithClock sets the time source used to pick the current week.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model.
func New(repo schedule.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.Placeholder = "Describe the week you want..."
	ti.CharLimit = 500
	ti.Prompt = "> "
	ti.PromptStyle = styles.PromptLabel
	ti.TextStyle = styles.PromptText

	rowLines := cfg.UI.RowLines
	if rowLines <= 0 {
		rowLines = 2
	}

	m := &Model{
		repo:     repo,
		config:   cfg,
		copyFn:   clipboard.WriteAll,
		logger:   logging.Nop(),
		now:      time.Now,
		theme:    t,
		styles:   styles,
		pending:  &pendingCommit{},
		mode:     ModeNormal,
		loading:  true,
		prompt:   ti,
		rowLines: rowLines,
		colWidth: minColWidth,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newGenerator == nil {
		m.newGenerator = generatorFromConfig(cfg, m.logger)
	}

	pending := m.pending
	m.drag = drag.New(m.geometry(), func(ev schedule.Event, skip bool) {
		pending.event, pending.skip, pending.set = ev, skip, true
	}, drag.WithLogger(m.logger))

	return m
}

func generatorFromConfig(cfg *config.Config, logger *slog.Logger) func() (commands.Generator, error) {
	return func() (commands.Generator, error) {
		return generate.FromConfig(cfg.LLM, logger)
	}
}

// Init loads the initial schedule.
func (m Model) Init() tea.Cmd {
	if m.initial != "" {
		return commands.LoadSchedule(m.repo, m.initial)
	}
	return commands.OpenWeek(m.repo, m.config.Settings(), m.now())
}

// Run starts the TUI.
func Run(repo schedule.Repository, cfg *config.Config, opts ...ModelOption) error {
	model := New(repo, cfg, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// settings returns the loaded schedule's settings, or the configured defaults
// before the first load.
func (m Model) settings() schedule.Settings {
	if m.sched != nil {
		return m.sched.Settings
	}
	return m.config.Settings()
}

// geometry maps the grid onto drag geometry: one terminal line is one pixel.
func (m Model) geometry() drag.Geometry {
	s := m.settings()
	return drag.Geometry{
		RowHeightPx: float64(m.rowLines),
		MinHour:     s.WorkingHoursStart,
		MaxHour:     s.WorkingHoursEnd,
		Increment:   s.TimeIncrement,
	}
}

// withEvent returns a copy of sched with ev inserted or replaced.
func withEvent(sched *schedule.Schedule, ev schedule.Event) *schedule.Schedule {
	cp := *sched
	cp.Events = slices.Clone(sched.Events)
	ev.Date = schedule.DateForDay(cp.WeekStart, ev.Day)
	cp.Put(ev)
	return &cp
}

// withEvents returns a copy of sched with its events replaced.
func withEvents(sched *schedule.Schedule, events []schedule.Event) *schedule.Schedule {
	cp := *sched
	cp.Events = slices.Clone(events)
	cp.AssignDates()
	return &cp
}
