package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/drag"
	"github.com/javiermolinar/rocinante/internal/schedule"
)

// moveRowHeightPx makes one pixel one minute for command line moves.
const moveRowHeightPx = 60

func (a *App) addCmd() *cobra.Command {
	var (
		day         string
		start       string
		end         string
		colorName   string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add [schedule] [title]",
		Short: "Add an event to a schedule",
		Long: `Add a time block to a schedule. The block must not overlap another
block on the same day.

Example:
  rocinante add week-2025-01-06 "Write documentation" --day=mon --start=09:00 --end=11:00 --color=green`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := a.loadSchedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			d, err := parseDay(day, sched.WeekStart)
			if err != nil {
				return err
			}
			tr, err := schedule.ParseTimeRange(start, end)
			if err != nil {
				return err
			}
			c, err := schedule.ParseColor(colorName)
			if err != nil {
				return err
			}

			ev, err := schedule.NewEvent(sched.WeekStart, d, args[1], tr, c)
			if err != nil {
				return err
			}
			ev.Description = strings.TrimSpace(description)

			if err := a.repo.UpsertEvent(cmd.Context(), sched.ID, ev, false); err != nil {
				return fmt.Errorf("adding event: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %q on %s %s [%s] (%s)\n",
				ev.Title,
				ev.Date.Format("Mon Jan 2"),
				formatRange(ev.TimeRange, sched.Settings.Use12HourFormat),
				ev.Color,
				ev.ID,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Day of the week (0-6 from the first day, or a weekday name)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().StringVar(&colorName, "color", string(schedule.DefaultColor), "Block color")
	cmd.Flags().StringVar(&description, "desc", "", "Optional description")

	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (a *App) moveCmd() *cobra.Command {
	var by int

	cmd := &cobra.Command{
		Use:   "move [schedule] [event]",
		Short: "Move an event earlier or later",
		Long: `Move an event by a number of minutes, the way dragging it in the week grid does:
the offset is snapped to the schedule's time increment and stops at the
neighbouring blocks and the working hours.

The event is given by ID or title.

Example:
  rocinante move week-2025-01-06 "Standup" --by=30
  rocinante move week-2025-01-06 "Standup" --by=-60`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := a.loadSchedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ev, err := findEvent(sched, args[1])
			if err != nil {
				return err
			}

			var (
				moved  schedule.Event
				skip   bool
				commit bool
			)
			s := sched.Settings
			ctrl := drag.New(drag.Geometry{
				RowHeightPx: moveRowHeightPx,
				MinHour:     s.WorkingHoursStart,
				MaxHour:     s.WorkingHoursEnd,
				Increment:   s.TimeIncrement,
			}, func(updated schedule.Event, skipConflictCheck bool) {
				moved, skip, commit = updated, skipConflictCheck, true
			}, drag.WithLogger(a.logger))

			ctrl.BeginDrag(ev, sched.Events, 0)
			ctrl.UpdatePointer(float64(by))
			preview, _ := ctrl.Preview()
			ctrl.EndDrag()

			out := cmd.OutOrStdout()
			if !commit || preview == ev.TimeRange {
				fmt.Fprintf(out, "%q stays at %s: no room to move by %d minutes\n",
					ev.Title, formatRange(ev.TimeRange, s.Use12HourFormat), by)
				return nil
			}

			if err := a.repo.UpsertEvent(cmd.Context(), sched.ID, moved, skip); err != nil {
				return fmt.Errorf("moving event: %w", err)
			}

			fmt.Fprintf(out, "Moved %q: %s → %s\n", ev.Title,
				formatRange(ev.TimeRange, s.Use12HourFormat),
				formatRange(moved.TimeRange, s.Use12HourFormat))
			if delta := moved.Start() - ev.Start(); delta != by {
				fmt.Fprintf(out, "  %s\n", formatMuted(fmt.Sprintf("moved %+d minutes (requested %+d)", delta, by)))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&by, "by", 0, "Minutes to move (negative moves earlier)")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [schedule] [event]",
		Short: "Remove an event from a schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := a.loadSchedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ev, err := findEvent(sched, args[1])
			if err != nil {
				return err
			}
			if err := a.repo.DeleteEvent(cmd.Context(), sched.ID, ev.ID); err != nil {
				if errors.Is(err, schedule.ErrEventNotFound) {
					return fmt.Errorf("event %q was already removed", ev.Title)
				}
				return fmt.Errorf("removing event: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", ev.Title)
			return nil
		},
	}
}
