package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/export"
	"github.com/javiermolinar/rocinante/internal/generate"
	"github.com/javiermolinar/rocinante/internal/schedule"
)

// Export formats.
const (
	formatCSV  = "csv"
	formatICS  = "ics"
	formatJSON = "json"
	formatText = "text"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [schedule]",
		Short: "Export a schedule to CSV, iCalendar, JSON or text",
		Long: `Write a schedule's events to a file or stdout.

The format defaults to the output file extension, then to CSV.

Examples:
  rocinante export week-2025-01-06 -o week.ics
  rocinante export week-2025-01-06 --format=json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := a.loadSchedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if format == "" {
				format = formatFromPath(output)
			}
			write, err := exporter(format)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return write(cmd.OutOrStdout(), sched)
			}

			path, err := resolvePath(output)
			if err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			if err := write(f, sched); err != nil {
				_ = f.Close()
				return fmt.Errorf("writing %s: %w", path, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", path, err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d events to %s\n", len(sched.Events), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: csv, ics, json or text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func exporter(format string) (func(io.Writer, *schedule.Schedule) error, error) {
	switch strings.ToLower(format) {
	case formatCSV:
		return export.CSV, nil
	case formatICS, "ical":
		return func(w io.Writer, s *schedule.Schedule) error {
			return export.ICS(w, s, nil)
		}, nil
	case formatJSON:
		return export.JSON, nil
	case formatText, "txt":
		return export.Text, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want csv, ics, json or text)", format)
	}
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ics", ".ical":
		return formatICS
	case ".json":
		return formatJSON
	case ".txt":
		return formatText
	default:
		return formatCSV
	}
}

func (a *App) importCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import [schedule] [file.ics]",
		Short: "Import events from an iCalendar file",
		Long: `Add the timed events of an iCalendar file that fall inside the schedule's week.

All-day and multi-day events are skipped, and so are events overlapping a
block already in the schedule.

Example:
  rocinante import week-2025-01-06 ~/Downloads/calendar.ics`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := a.loadSchedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			path, err := resolvePath(args[1])
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			result, err := export.ParseICS(f, sched.WeekStart, nil)
			if err != nil {
				return err
			}

			existing := sched.Events
			if replace {
				existing = nil
			}
			valid := schedule.ResolveOverlaps(result.Events)
			merged, conflicting := generate.Merge(existing, valid)
			skipped := result.Skipped + (len(result.Events) - len(valid)) + conflicting

			if err := a.repo.ReplaceEvents(cmd.Context(), sched.ID, merged); err != nil {
				return fmt.Errorf("saving imported events: %w", err)
			}

			msg := fmt.Sprintf("Imported %d events into %s", len(merged)-len(existing), sched.Name)
			if skipped > 0 {
				msg += ", " + formatWarn(fmt.Sprintf("%d skipped", skipped))
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the existing events")
	return cmd
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
