package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/schedule"
)

func (a *App) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [schedule]",
		Short: "Report overlapping events",
		Long: `List every pair of same-day events that overlap. Exits with an error
when any are found, so it can guard scripts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := a.loadSchedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			conflicts := schedule.FindConflicts(sched.Events)
			if len(conflicts) == 0 {
				fmt.Fprintln(out, formatOK("No overlapping events."))
				return nil
			}

			use12h := sched.Settings.Use12HourFormat
			for _, c := range conflicts {
				fmt.Fprintf(out, "  %s  %q %s overlaps %q %s\n",
					c.A.Date.Format("Mon Jan 2"),
					c.A.Title, formatRange(c.A.TimeRange, use12h),
					c.B.Title, formatRange(c.B.TimeRange, use12h),
				)
			}
			return fmt.Errorf("%d overlapping pairs (run 'rocinante resolve %s')", len(conflicts), sched.Name)
		},
	}
}

func (a *App) resolveCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "resolve [schedule]",
		Short: "Remove overlaps, earliest start wins",
		Long: `Resolve overlapping events day by day. Walking each day by start time, an
event that starts inside the previous one is pushed to start when it ends,
or dropped when nothing of it would remain.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := a.loadSchedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(schedule.FindConflicts(sched.Events)) == 0 {
				fmt.Fprintln(out, formatOK("No overlapping events."))
				return nil
			}

			resolved := schedule.ResolveOverlaps(sched.Events)
			use12h := sched.Settings.Use12HourFormat

			kept := make(map[string]schedule.Event, len(resolved))
			for _, ev := range resolved {
				kept[ev.ID] = ev
			}
			for _, ev := range sched.Events {
				after, ok := kept[ev.ID]
				switch {
				case !ok:
					fmt.Fprintf(out, "  %s %q %s\n", formatWarn("dropped"), ev.Title, formatRange(ev.TimeRange, use12h))
				case after.TimeRange != ev.TimeRange:
					fmt.Fprintf(out, "  %s %q %s → %s\n", formatMuted("moved  "), ev.Title,
						formatRange(ev.TimeRange, use12h), formatRange(after.TimeRange, use12h))
				}
			}

			if dryRun {
				fmt.Fprintln(out, "(Dry run - changes not saved)")
				return nil
			}
			if err := a.repo.ReplaceEvents(cmd.Context(), sched.ID, resolved); err != nil {
				return fmt.Errorf("saving resolved events: %w", err)
			}
			fmt.Fprintf(out, "%s %d events kept, %d dropped\n", formatOK("Resolved:"),
				len(resolved), len(sched.Events)-len(resolved))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the changes without saving")
	return cmd
}
