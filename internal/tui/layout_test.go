package tui

import (
	"testing"

	"github.com/javiermolinar/rocinante/internal/drag"
	"github.com/javiermolinar/rocinante/internal/schedule"
)

func TestBlockSpan(t *testing.T) {
	tests := []struct {
		name       string
		pos        drag.Position
		wantTop    int
		wantHeight int
	}{
		{"whole lines", drag.Position{TopPx: 2, HeightPx: 2}, 2, 2},
		{"half line start", drag.Position{TopPx: 2.5, HeightPx: 1}, 2, 2},
		{"quarter hour block", drag.Position{TopPx: 4, HeightPx: 0.5}, 4, 1},
		{"zero height", drag.Position{TopPx: 3, HeightPx: 0}, 3, 1},
		{"float noise", drag.Position{TopPx: 1.9999999999999, HeightPx: 2.0000000000001}, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, height := blockSpan(tt.pos)
			if top != tt.wantTop || height != tt.wantHeight {
				t.Errorf("blockSpan(%+v) = (%d, %d), want (%d, %d)", tt.pos, top, height, tt.wantTop, tt.wantHeight)
			}
		})
	}
}

func TestEventAt(t *testing.T) {
	repo := newTestRepo(t)
	morning := newEvent(t, 0, "Morning", 9*60, 10*60)
	short := newEvent(t, 2, "Short", 13*60, 13*60+15)
	m := newTestModel(t, repo, createSchedule(t, repo, "week", monday, morning, short))

	wednesdayX := m.timeColWidth() + 2*m.colWidth + 1

	tests := []struct {
		name   string
		x, y   int
		wantID string
	}{
		{"first line", mondayX, rowFor(9, 0), morning.ID},
		{"last line", mondayX, rowFor(9, 30), morning.ID},
		{"just after", mondayX, rowFor(10, 0), ""},
		{"column edge", m.timeColWidth(), rowFor(9, 0), morning.ID},
		{"short block gets a line", wednesdayX, rowFor(13, 0), short.ID},
		{"below short block", wednesdayX, rowFor(13, 30), ""},
		{"past last column", m.timeColWidth() + 7*m.colWidth, rowFor(9, 0), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := m.eventAt(tt.x, tt.y)
			if tt.wantID == "" {
				if ok {
					t.Errorf("eventAt(%d,%d) = %q, want none", tt.x, tt.y, ev.Title)
				}
				return
			}
			if !ok || ev.ID != tt.wantID {
				t.Errorf("eventAt(%d,%d) = %q, %v", tt.x, tt.y, ev.Title, ok)
			}
		})
	}
}

func TestEventAt_FollowsScroll(t *testing.T) {
	repo := newTestRepo(t)
	late := newEvent(t, 4, "Late", 16*60, 17*60)
	m := newTestModel(t, repo, createSchedule(t, repo, "week", monday, late))
	m.height = 14
	m.scrollOffset = 10

	fridayX := m.timeColWidth() + 4*m.colWidth + 1
	y := rowFor(16, 0) - m.scrollOffset
	if ev, ok := m.eventAt(fridayX, y); !ok || ev.ID != late.ID {
		t.Errorf("eventAt after scroll = %q, %v", ev.Title, ok)
	}
}

func TestTimeColWidth12h(t *testing.T) {
	repo := newTestRepo(t)
	m := newTestModel(t, repo, createSchedule(t, repo, "week", monday))
	m.sched.Settings.Use12HourFormat = true

	if got := m.timeColWidth(); got != len("12:00 PM ") {
		t.Errorf("timeColWidth = %d", got)
	}
}

func TestPositionOf(t *testing.T) {
	repo := newTestRepo(t)
	m := newTestModel(t, repo, createSchedule(t, repo, "week", monday))

	pos := m.positionOf(schedule.NewTimeRange(9*60+30, 11*60))
	if pos.TopPx != 3 || pos.HeightPx != 3 {
		t.Errorf("positionOf = %+v, want top 3 height 3", pos)
	}
}
