// Package drag binds a pointer stream to the schedule interval model: one
// gesture moves one event, previewed live and committed once at release.
package drag

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/javiermolinar/rocinante/internal/logging"
	"github.com/javiermolinar/rocinante/internal/schedule"
)

// CommitFunc receives the moved event at the end of a gesture.
// skipConflictCheck is true because the move stayed inside collision bounds.
type CommitFunc func(updated schedule.Event, skipConflictCheck bool)

// Geometry is the layout supplied by the rendering layer.
type Geometry struct {
	RowHeightPx float64 // pixels per hour
	MinHour     int     // first visible hour
	MaxHour     int     // last visible hour (exclusive)
	Increment   int     // snap increment in minutes
}

func (g Geometry) mustValidate() {
	if !(g.RowHeightPx > 0) || math.IsInf(g.RowHeightPx, 0) {
		panic(fmt.Sprintf("drag: row height must be positive, got %v", g.RowHeightPx))
	}
	if g.MinHour < 0 || g.MaxHour > 24 || g.MinHour >= g.MaxHour {
		panic(fmt.Sprintf("drag: invalid hour bounds [%d, %d]", g.MinHour, g.MaxHour))
	}
	if g.Increment <= 0 {
		panic(fmt.Sprintf("drag: increment must be positive, got %d", g.Increment))
	}
}

// Session is the state of an active gesture.
type Session struct {
	Event    schedule.Event // snapshot taken at BeginDrag
	StartY   float64
	OffsetPx float64 // raw displacement clamped to Bounds
	Bounds   schedule.CollisionBounds
	Geometry Geometry // frozen for the gesture
}

// Position is where an event should be drawn, relative to MinHour.
type Position struct {
	TopPx    float64
	HeightPx float64
}

// Controller owns the single drag session slot. It is driven from one
// goroutine (the UI loop) and is not safe for concurrent use.
type Controller struct {
	geom    Geometry
	commit  CommitFunc
	session *Session
	logger  *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for gesture tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logging.Component(l, "drag")
	}
}

// New creates an idle controller. It panics on invalid geometry.
func New(geom Geometry, commit CommitFunc, opts ...Option) *Controller {
	geom.mustValidate()
	c := &Controller{geom: geom, commit: commit, logger: logging.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geometry returns the geometry used for the next gesture.
func (c *Controller) Geometry() Geometry {
	return c.geom
}

// SetGeometry replaces the layout. An active gesture keeps its frozen copy.
func (c *Controller) SetGeometry(geom Geometry) {
	geom.mustValidate()
	c.geom = geom
}

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool {
	return c.session != nil
}

// Session returns a copy of the active session.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// BeginDrag starts a gesture on ev. all is the caller's current event list and
// must contain ev. A gesture already in progress is cancelled silently.
func (c *Controller) BeginDrag(ev schedule.Event, all []schedule.Event, pointerY float64) {
	c.session = nil

	siblings := schedule.SiblingRanges(ev, all)
	bounds := schedule.ComputeCollisionBounds(ev.TimeRange, siblings, c.geom.MinHour, c.geom.MaxHour, c.geom.RowHeightPx)

	c.session = &Session{
		Event:    ev,
		StartY:   pointerY,
		Bounds:   bounds,
		Geometry: c.geom,
	}
	c.logger.Debug("drag begin",
		"event_id", ev.ID,
		"time", ev.TimeRange.String(),
		"siblings", len(siblings),
		"min_offset_px", bounds.MinOffsetPx,
		"max_offset_px", bounds.MaxOffsetPx,
	)
}

// UpdatePointer moves the live offset. Ignored when idle.
func (c *Controller) UpdatePointer(pointerY float64) {
	if c.session == nil {
		return
	}
	c.session.OffsetPx = c.session.Bounds.Clamp(pointerY - c.session.StartY)
}

// EndDrag finishes the gesture. When the pointer moved far enough to change
// the snapped time, the final time is computed from the original snapshot and
// passed to the commit callback.
// The controller is idle afterwards either way. It reports whether a commit
// happened.
func (c *Controller) EndDrag() bool {
	s := c.session
	if s == nil {
		return false
	}
	c.session = nil

	if s.OffsetPx == 0 {
		c.logger.Debug("drag end without movement", "event_id", s.Event.ID)
		return false
	}

	final := draggedTime(s)
	if final == s.Event.TimeRange {
		c.logger.Debug("drag end at the original time", "event_id", s.Event.ID, "offset_px", s.OffsetPx)
		return false
	}

	updated := s.Event.WithTime(final)
	c.logger.Debug("drag commit",
		"event_id", updated.ID,
		"from", s.Event.TimeRange.String(),
		"to", updated.TimeRange.String(),
		"offset_px", s.OffsetPx,
	)
	if c.commit != nil {
		c.commit(updated, true)
	}
	return true
}

// CancelDrag abandons the gesture without committing.
func (c *Controller) CancelDrag() {
	if c.session != nil {
		c.logger.Debug("drag cancel", "event_id", c.session.Event.ID)
	}
	c.session = nil
}

// Preview returns the time the dragged event would commit to right now.
func (c *Controller) Preview() (schedule.TimeRange, bool) {
	if c.session == nil {
		return schedule.TimeRange{}, false
	}
	return draggedTime(c.session), true
}

// VisualPosition returns where ev should be drawn. The dragged event follows
// the snapped live offset; every other event sits at its stored time.
func (c *Controller) VisualPosition(ev schedule.Event) Position {
	if s := c.session; s != nil && s.Event.ID == ev.ID {
		return position(draggedTime(s), s.Geometry)
	}
	return position(ev.TimeRange, c.geom)
}

// draggedTime is shared by the live preview and the commit so both agree.
func draggedTime(s *Session) schedule.TimeRange {
	g := s.Geometry
	offset := s.Bounds.SnapOffset(s.OffsetPx, g.RowHeightPx, g.Increment)
	if offset == 0 {
		return s.Event.TimeRange
	}
	return schedule.CalculateDraggedTime(s.Event.TimeRange, offset, g.RowHeightPx, g.MinHour, g.MaxHour, g.Increment)
}

func position(tr schedule.TimeRange, g Geometry) Position {
	top := float64(tr.Start() - g.MinHour*60)
	return Position{
		TopPx:    schedule.MinutesToPx(top, g.RowHeightPx),
		HeightPx: schedule.MinutesToPx(float64(tr.Duration()), g.RowHeightPx),
	}
}
