// Package ui implements the rocinante command line.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/db"
	"github.com/javiermolinar/rocinante/internal/generate"
	"github.com/javiermolinar/rocinante/internal/logging"
	"github.com/javiermolinar/rocinante/internal/schedule"
	"github.com/javiermolinar/rocinante/internal/tui"
	"github.com/javiermolinar/rocinante/internal/tui/commands"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   schedule.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging

	cfgPath string // config file written by "config init"

	logger   *slog.Logger
	closeLog func() error
	ownsRepo bool

	// newGenerator builds the AI generator on first use.
	newGenerator func() (commands.Generator, error)
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repo is opened lazily from the configured database path.
func NewApp(repo schedule.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, logger: logging.Nop()}
	a.newGenerator = a.generatorFromConfig

	a.root = &cobra.Command{
		Use:   "rocinante [schedule]",
		Short: "A terminal weekly schedule builder",
		Long: `Rocinante builds weekly schedules of colored time blocks.

Run without a subcommand to open the week grid: drag blocks with the mouse,
press g to generate a week from a prompt and y to copy it as text.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setupLogging()
		},
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			opts := []tui.ModelOption{tui.WithLogger(a.logger)}
			if len(args) == 1 {
				opts = append(opts, tui.WithSchedule(args[0]))
			}
			return tui.Run(a.repo, a.config, opts...)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logging.DebugLogPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.newCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.renameCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.generateCmd())
	a.root.AddCommand(a.checkCmd())
	a.root.AddCommand(a.resolveCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rocinante %s (commit: %s)\n", Version, Commit)
		},
	}
}

// SetConfigPath sets the config file used by the config commands.
func (a *App) SetConfigPath(path string) {
	a.cfgPath = path
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ExecuteArgs runs the CLI with explicit arguments.
func (a *App) ExecuteArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.root.ExecuteContext(ctx)
}

// Close releases the repository opened by the app and flushes the debug log.
func (a *App) Close() error {
	var err error
	if a.ownsRepo && a.repo != nil {
		err = a.repo.Close()
		a.repo = nil
		a.ownsRepo = false
	}
	if a.closeLog != nil {
		if cerr := a.closeLog(); err == nil {
			err = cerr
		}
		a.closeLog = nil
	}
	return err
}

func (a *App) setupLogging() error {
	if a.closeLog != nil {
		return nil
	}
	logger, closeFn, err := logging.New(logging.Options{Debug: a.debug})
	if err != nil {
		return err
	}
	a.logger, a.closeLog = logger, closeFn
	return nil
}

// ensureRepo opens the configured database unless a repository was injected.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	a.ownsRepo = true
	return nil
}

func (a *App) generatorFromConfig() (commands.Generator, error) {
	return generate.FromConfig(a.config.LLM, a.logger)
}

// loadSchedule resolves a schedule argument by ID or name.
func (a *App) loadSchedule(ctx context.Context, idOrName string) (*schedule.Schedule, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	sched, err := a.repo.GetSchedule(ctx, idOrName)
	if err != nil {
		return nil, fmt.Errorf("loading schedule %q: %w", idOrName, err)
	}
	return sched, nil
}
