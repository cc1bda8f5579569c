package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/javiermolinar/rocinante/internal/schedule"
)

// JSON writes the schedule as an indented JSON document.
func JSON(w io.Writer, sched *schedule.Schedule) error {
	cp := *sched
	cp.Events = ordered(sched)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cp); err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	return nil
}
