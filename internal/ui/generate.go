package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/generate"
	"github.com/javiermolinar/rocinante/internal/schedule"
)

func (a *App) generateCmd() *cobra.Command {
	var (
		replace bool
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "generate [schedule] [prompt]",
		Short: "Generate events from a natural language prompt",
		Long: `Ask the configured LLM to fill a week from a description.

Generated events that are invalid or overlap each other are dropped, and so
are those overlapping an event already in the schedule. The number of dropped
events is reported. The model may also adjust the schedule settings, such as
the working hours.

Examples:
  rocinante generate week-2025-01-06 "gym mon/wed/fri at 7am, deep work every morning"
  rocinante generate week-2025-01-06 "a relaxed week" --replace --dry-run`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := a.loadSchedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			prompt := strings.Join(args[1:], " ")

			gen, err := a.newGenerator()
			if err != nil {
				return err
			}

			existing := sched.Events
			if replace {
				existing = nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Generating...")
			result, err := gen.Generate(cmd.Context(), generate.Request{
				Prompt:    prompt,
				WeekStart: sched.WeekStart,
				Settings:  sched.Settings,
				Existing:  existing,
			})
			if err != nil {
				return fmt.Errorf("generating: %w", err)
			}

			merged, conflicting := generate.Merge(existing, result.Events)
			dropped := result.Dropped + conflicting

			preview := *sched
			preview.Events = merged
			preview.Settings = result.Settings
			preview.AssignDates()
			PrintWeek(out, &preview, PrintOpts{Use12Hour: result.Settings.Use12HourFormat})

			if result.Notes != "" {
				fmt.Fprintf(out, "\n  %s\n", formatMuted(result.Notes))
			}
			summary := fmt.Sprintf("Generated %d events in %d attempts", len(merged)-len(existing), result.Attempts)
			if dropped > 0 {
				summary += ", " + formatWarn(fmt.Sprintf("%d dropped", dropped))
			}
			fmt.Fprintf(out, "\n%s\n", summary)

			if dryRun {
				fmt.Fprintln(out, "(Dry run - events not saved)")
				return nil
			}

			if err := a.repo.ReplaceEvents(cmd.Context(), sched.ID, merged); err != nil {
				return fmt.Errorf("saving events: %w", err)
			}
			if result.Settings != sched.Settings {
				if err := a.repo.UpdateSettings(cmd.Context(), sched.ID, result.Settings); err != nil {
					return fmt.Errorf("saving settings: %w", err)
				}
				printSettingsChange(cmd, sched.Settings, result.Settings)
			}
			fmt.Fprintln(out, formatOK("Saved."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the existing events instead of adding to them")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show generated events without saving")
	return cmd
}

func printSettingsChange(cmd *cobra.Command, from, to schedule.Settings) {
	out := cmd.OutOrStdout()
	if from.WorkingHoursStart != to.WorkingHoursStart || from.WorkingHoursEnd != to.WorkingHoursEnd {
		fmt.Fprintf(out, "Working hours: %02d:00-%02d:00 → %02d:00-%02d:00\n",
			from.WorkingHoursStart, from.WorkingHoursEnd, to.WorkingHoursStart, to.WorkingHoursEnd)
	}
	if from.TimeIncrement != to.TimeIncrement {
		fmt.Fprintf(out, "Time increment: %dm → %dm\n", from.TimeIncrement, to.TimeIncrement)
	}
	if from.Use12HourFormat != to.Use12HourFormat {
		fmt.Fprintf(out, "12-hour clock: %t → %t\n", from.Use12HourFormat, to.Use12HourFormat)
	}
}
