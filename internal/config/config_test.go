package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/rocinante/internal/schedule"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Schedule.WorkingHoursStart != 8 {
		t.Errorf("expected working_hours_start 8, got %d", cfg.Schedule.WorkingHoursStart)
	}
	if cfg.Schedule.WorkingHoursEnd != 18 {
		t.Errorf("expected working_hours_end 18, got %d", cfg.Schedule.WorkingHoursEnd)
	}
	if cfg.Schedule.TimeIncrement != 30 {
		t.Errorf("expected time_increment 30, got %d", cfg.Schedule.TimeIncrement)
	}
	if cfg.LLM.Provider != "copilot" {
		t.Errorf("expected provider copilot, got %s", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("expected model gpt-4o, got %s", cfg.LLM.Model)
	}
	if cfg.Settings() != schedule.DefaultSettings() {
		t.Errorf("default settings mismatch: %+v", cfg.Settings())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Schedule.WorkingHoursStart != 8 {
		t.Errorf("expected default working_hours_start, got %d", cfg.Schedule.WorkingHoursStart)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[schedule]
week_starts_on_sunday = true
use_12_hour_format = true
working_hours_start = 7
working_hours_end = 20
time_increment = 15

[llm]
provider = "ollama"
model = "llama3"
base_url = "http://localhost:11435"
max_retries = 4

[storage]
db_path = "/tmp/test.db"

[ui]
row_lines = 3
theme = "latte"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := schedule.Settings{
		WeekStartsOnSunday: true,
		Use12HourFormat:    true,
		ShowDates:          true, // not in file, default kept
		WorkingHoursStart:  7,
		WorkingHoursEnd:    20,
		TimeIncrement:      15,
	}
	if got := cfg.Settings(); got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
	if cfg.LLM.Provider != "ollama" || cfg.LLM.Model != "llama3" || cfg.LLM.BaseURL != "http://localhost:11435" {
		t.Errorf("unexpected llm section: %+v", cfg.LLM)
	}
	if cfg.LLM.MaxRetries != 4 {
		t.Errorf("expected max_retries 4, got %d", cfg.LLM.MaxRetries)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.RowLines != 3 {
		t.Errorf("expected row_lines 3, got %d", cfg.UI.RowLines)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[schedule\nworking_hours_start = "), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(configPath)
	if err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[schedule]
working_hours_start = 7
working_hours_end = 16

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("ROCINANTE_WORKING_HOURS_START", "10")
	t.Setenv("ROCINANTE_LLM_MODEL", "gpt-4o-mini")
	t.Setenv("ROCINANTE_USE_12_HOUR_FORMAT", "true")
	t.Setenv("ROCINANTE_TIME_INCREMENT", "60")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Schedule.WorkingHoursStart != 10 {
		t.Errorf("expected working_hours_start 10 from env, got %d", cfg.Schedule.WorkingHoursStart)
	}
	if cfg.Schedule.WorkingHoursEnd != 16 {
		t.Errorf("expected working_hours_end 16 from file, got %d", cfg.Schedule.WorkingHoursEnd)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("expected model gpt-4o-mini from env, got %s", cfg.LLM.Model)
	}
	if !cfg.Schedule.Use12HourFormat {
		t.Error("expected use_12_hour_format from env")
	}
	if cfg.Schedule.TimeIncrement != 60 {
		t.Errorf("expected time_increment 60 from env, got %d", cfg.Schedule.TimeIncrement)
	}
}

func TestLoadFrom_BadEnvValue(t *testing.T) {
	t.Setenv("ROCINANTE_UI_ROW_LINES", "many")

	if _, err := LoadFrom("/nonexistent/path/config.toml"); err == nil {
		t.Fatal("expected error for non-integer env override")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{name: "inverted working hours", mut: func(c *Config) { c.Schedule.WorkingHoursStart, c.Schedule.WorkingHoursEnd = 18, 9 }},
		{name: "working hours past midnight", mut: func(c *Config) { c.Schedule.WorkingHoursEnd = 25 }},
		{name: "bad increment", mut: func(c *Config) { c.Schedule.TimeIncrement = 10 }},
		{name: "unknown provider", mut: func(c *Config) { c.LLM.Provider = "parrot" }},
		{name: "negative retries", mut: func(c *Config) { c.LLM.MaxRetries = -1 }},
		{name: "negative token budget", mut: func(c *Config) { c.LLM.PromptTokenBudget = -5 }},
		{name: "zero row lines", mut: func(c *Config) { c.UI.RowLines = 0 }},
		{name: "unknown theme", mut: func(c *Config) { c.UI.Theme = "neon" }},
		{name: "empty db path", mut: func(c *Config) { c.Storage.DBPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Schedule.WorkingHoursStart = 6
	cfg.Schedule.WorkingHoursEnd = 14
	cfg.Schedule.WeekStartsOnSunday = true
	cfg.LLM.Provider = "lmstudio"
	cfg.Storage.DBPath = filepath.Join(tmpDir, "r.db")

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Settings() != cfg.Settings() {
		t.Errorf("settings = %+v, want %+v", loaded.Settings(), cfg.Settings())
	}
	if loaded.LLM.Provider != "lmstudio" {
		t.Errorf("expected provider lmstudio, got %s", loaded.LLM.Provider)
	}
}
