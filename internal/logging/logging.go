// Package logging builds the structured logger shared by rocinante components.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// DebugLogPath is the fixed path for debug logs (easy to find in the
// current directory).
const DebugLogPath = "rocinante-debug.log"

// Options configure New.
type Options struct {
	// Debug writes debug-level JSON lines to DebugLogPath instead of stderr.
	Debug bool
	// Path overrides DebugLogPath.
	Path string
	// Stderr is used when Debug is off. Defaults to os.Stderr.
	Stderr io.Writer
}

// New creates the application logger. The returned close function flushes and
// closes the debug file; it is a no-op when Debug is off.
func New(opts Options) (*slog.Logger, func() error, error) {
	if !opts.Debug {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn})
		return slog.New(h).With("service", "rocinante"), func() error { return nil }, nil
	}

	path := opts.Path
	if path == "" {
		path = DebugLogPath
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating debug log: %w", err)
	}

	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(h).With("service", "rocinante")
	logger.Debug("debug start", "log_file", path, "time", time.Now().Format(time.RFC3339))

	closeFn := func() error {
		logger.Debug("debug end", "time", time.Now().Format(time.RFC3339))
		return f.Close()
	}
	return logger, closeFn, nil
}

// Component returns l tagged with a component name. A nil l yields Nop.
func Component(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		return Nop()
	}
	return l.With("component", name)
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
