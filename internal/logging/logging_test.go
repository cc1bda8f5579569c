package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDebugWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	logger, closeFn, err := New(Options{Debug: true, Path: path})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	Component(logger, "drag").Debug("begin", "event_id", "abc")
	if err := closeFn(); err != nil {
		t.Fatalf("close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	if entry["component"] != "drag" || entry["event_id"] != "abc" || entry["service"] != "rocinante" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNewDefaultFiltersBelowWarn(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Stderr: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer func() { _ = closeFn() }()

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestComponentNil(t *testing.T) {
	// Must not panic.
	Component(nil, "x").Error("discarded")
	Nop().Error("discarded")
}
