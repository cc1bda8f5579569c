package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or create configuration",
		Long: `Show the effective configuration, or write a config file with default values.

Example:
  rocinante config
  rocinante config init`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printConfig(cmd.OutOrStdout(), a.configPath(), a.config)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printConfig(cmd.OutOrStdout(), a.configPath(), a.config)
			return nil
		},
	})
	cmd.AddCommand(a.configInitCmd())

	return cmd
}

func (a *App) configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking config file: %w", err)
			}

			if err := config.Default().SaveTo(path); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func (a *App) configPath() string {
	if a.cfgPath != "" {
		return a.cfgPath
	}
	return config.DefaultConfigPath()
}

func printConfig(w io.Writer, path string, cfg *config.Config) {
	fmt.Fprintf(w, "Config file: %s\n\n", path)
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[schedule]")
	fmt.Fprintf(w, "  week_starts_on_sunday = %t\n", cfg.Schedule.WeekStartsOnSunday)
	fmt.Fprintf(w, "  use_12_hour_format    = %t\n", cfg.Schedule.Use12HourFormat)
	fmt.Fprintf(w, "  show_dates            = %t\n", cfg.Schedule.ShowDates)
	fmt.Fprintf(w, "  working_hours_start   = %d\n", cfg.Schedule.WorkingHoursStart)
	fmt.Fprintf(w, "  working_hours_end     = %d\n", cfg.Schedule.WorkingHoursEnd)
	fmt.Fprintf(w, "  time_increment        = %d\n", cfg.Schedule.TimeIncrement)
	fmt.Fprintln(w, "\n[llm]")
	fmt.Fprintf(w, "  provider              = %s\n", cfg.LLM.Provider)
	fmt.Fprintf(w, "  model                 = %s\n", cfg.LLM.Model)
	fmt.Fprintf(w, "  base_url              = %s\n", cfg.LLM.BaseURL)
	fmt.Fprintf(w, "  max_retries           = %d\n", cfg.LLM.MaxRetries)
	fmt.Fprintf(w, "  prompt_token_budget   = %d\n", cfg.LLM.PromptTokenBudget)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path               = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  row_lines             = %d\n", cfg.UI.RowLines)
	fmt.Fprintf(w, "  theme                 = %s (available: %s)\n", cfg.UI.Theme, strings.Join(theme.Names(), ", "))
}
