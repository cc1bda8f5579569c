package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/schedule"
	"github.com/javiermolinar/rocinante/internal/tui/commands"
)

func (a *App) newCmd() *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create an empty schedule",
		Long: `Create an empty schedule anchored at a week, using the configured settings.

The week defaults to the current one. Any date inside the week works.
Without a name the schedule is called week-YYYY-MM-DD.`,
		Example: `  rocinante new
  rocinante new sprint-12 --week=2025-01-08`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			settings := a.config.Settings()
			date := time.Now()
			if week != "" {
				parsed, err := time.ParseInLocation("2006-01-02", week, time.Local)
				if err != nil {
					return fmt.Errorf("invalid week date %q (want YYYY-MM-DD)", week)
				}
				date = parsed
			}
			weekStart := schedule.WeekStart(date, settings.WeekStartsOnSunday)

			name := commands.WeekName(weekStart)
			if len(args) == 1 {
				name = args[0]
			}

			sched := &schedule.Schedule{Name: name, WeekStart: weekStart, Settings: settings}
			if err := a.repo.CreateSchedule(cmd.Context(), sched); err != nil {
				return fmt.Errorf("creating schedule: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created schedule %s (%s) for the week of %s\n",
				sched.Name, sched.ID, weekStart.Format("Mon Jan 2, 2006"))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date in the week (YYYY-MM-DD, default: this week)")
	return cmd
}

func (a *App) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List schedules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			summaries, err := a.repo.ListSchedules(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing schedules: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No schedules found. Create one with 'rocinante new'.")
				return nil
			}

			for _, s := range summaries {
				fmt.Fprintf(out, "  %-24s  week of %s  %3d events  %s\n",
					s.Name,
					s.WeekStart.Format("2006-01-02"),
					s.EventCount,
					formatMuted(s.ID),
				)
			}
			return nil
		},
	}
}

func (a *App) showCmd() *cobra.Command {
	var verbose bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show [schedule]",
		Short: "Show a schedule's events",
		Long: `Display every event of a schedule grouped by day.

The schedule is given by ID or name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				DisableColor()
			}

			sched, err := a.loadSchedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			PrintWeek(cmd.OutOrStdout(), sched, PrintOpts{
				Use12Hour: sched.Settings.Use12HourFormat,
				Verbose:   verbose,
			})
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show descriptions and event IDs")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func (a *App) renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [schedule] [new-name]",
		Short: "Rename a schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := a.loadSchedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.repo.RenameSchedule(cmd.Context(), sched.ID, args[1]); err != nil {
				return fmt.Errorf("renaming schedule: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", sched.Name, args[1])
			return nil
		},
	}
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [schedule]",
		Short: "Delete a schedule and its events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := a.loadSchedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.repo.DeleteSchedule(cmd.Context(), sched.ID); err != nil {
				return fmt.Errorf("deleting schedule: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%d events)\n", sched.Name, len(sched.Events))
			return nil
		},
	}
}
