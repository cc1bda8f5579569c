// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/rocinante/internal/llm"
	"github.com/javiermolinar/rocinante/internal/schedule"
	"github.com/javiermolinar/rocinante/internal/tui/theme"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ROCINANTE_"

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	LLM      LLMConfig      `toml:"llm"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// ScheduleConfig holds the defaults given to new schedules.
type ScheduleConfig struct {
	WeekStartsOnSunday bool `toml:"week_starts_on_sunday"`
	Use12HourFormat    bool `toml:"use_12_hour_format"`
	ShowDates          bool `toml:"show_dates"`
	WorkingHoursStart  int  `toml:"working_hours_start"` // hour, 0-23
	WorkingHoursEnd    int  `toml:"working_hours_end"`   // hour, 1-24
	TimeIncrement      int  `toml:"time_increment"`      // minutes: 5, 15, 30 or 60
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider          string `toml:"provider"` // "copilot", "ollama", "lmstudio", "openai"
	Model             string `toml:"model"`    // e.g., "gpt-4o"
	BaseURL           string `toml:"base_url"` // e.g., "http://localhost:11434"
	MaxRetries        int    `toml:"max_retries"`
	PromptTokenBudget int    `toml:"prompt_token_budget"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	RowLines int    `toml:"row_lines"` // terminal lines per hour in the week grid
	Theme    string `toml:"theme"`     // "mocha" or "latte"
}

// Default returns the default configuration.
func Default() *Config {
	s := schedule.DefaultSettings()
	return &Config{
		Schedule: ScheduleConfig{
			WeekStartsOnSunday: s.WeekStartsOnSunday,
			Use12HourFormat:    s.Use12HourFormat,
			ShowDates:          s.ShowDates,
			WorkingHoursStart:  s.WorkingHoursStart,
			WorkingHoursEnd:    s.WorkingHoursEnd,
			TimeIncrement:      s.TimeIncrement,
		},
		LLM: LLMConfig{
			Provider:          llm.ProviderCopilot,
			Model:             llm.DefaultModel,
			MaxRetries:        2,
			PromptTokenBudget: 1000,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			RowLines: 2,
			Theme:    theme.DefaultName,
		},
	}
}

// Settings converts the schedule section into schedule settings.
func (c *Config) Settings() schedule.Settings {
	return schedule.Settings{
		WeekStartsOnSunday: c.Schedule.WeekStartsOnSunday,
		Use12HourFormat:    c.Schedule.Use12HourFormat,
		ShowDates:          c.Schedule.ShowDates,
		WorkingHoursStart:  c.Schedule.WorkingHoursStart,
		WorkingHoursEnd:    c.Schedule.WorkingHoursEnd,
		TimeIncrement:      c.Schedule.TimeIncrement,
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rocinante.db"
	}
	return filepath.Join(home, ".local", "share", "rocinante", "rocinante.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "rocinante", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies ROCINANTE_* overrides. Environment variables take
// precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	strs := map[string]*string{
		"LLM_PROVIDER": &cfg.LLM.Provider,
		"LLM_MODEL":    &cfg.LLM.Model,
		"LLM_BASE_URL": &cfg.LLM.BaseURL,
		"DB_PATH":      &cfg.Storage.DBPath,
		"UI_THEME":     &cfg.UI.Theme,
	}
	for key, dst := range strs {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"WORKING_HOURS_START":     &cfg.Schedule.WorkingHoursStart,
		"WORKING_HOURS_END":       &cfg.Schedule.WorkingHoursEnd,
		"TIME_INCREMENT":          &cfg.Schedule.TimeIncrement,
		"LLM_MAX_RETRIES":         &cfg.LLM.MaxRetries,
		"LLM_PROMPT_TOKEN_BUDGET": &cfg.LLM.PromptTokenBudget,
		"UI_ROW_LINES":            &cfg.UI.RowLines,
	}
	for key, dst := range ints {
		v := os.Getenv(EnvPrefix + key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s must be an integer, got %q", EnvPrefix, key, v)
		}
		*dst = n
	}

	bools := map[string]*bool{
		"WEEK_STARTS_ON_SUNDAY": &cfg.Schedule.WeekStartsOnSunday,
		"USE_12_HOUR_FORMAT":    &cfg.Schedule.Use12HourFormat,
		"SHOW_DATES":            &cfg.Schedule.ShowDates,
	}
	for key, dst := range bools {
		v := os.Getenv(EnvPrefix + key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s must be a boolean, got %q", EnvPrefix, key, v)
		}
		*dst = b
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return err
	}
	if _, err := llm.NormalizeProvider(c.LLM.Provider); err != nil {
		return err
	}
	if c.LLM.MaxRetries < 0 {
		return errors.New("max_retries cannot be negative")
	}
	if c.LLM.PromptTokenBudget < 0 {
		return errors.New("prompt_token_budget cannot be negative")
	}
	if c.UI.RowLines < 1 || c.UI.RowLines > 12 {
		return fmt.Errorf("row_lines must be between 1 and 12, got %d", c.UI.RowLines)
	}
	if !theme.Exists(c.UI.Theme) {
		return fmt.Errorf("unknown theme %q (want one of %v)", c.UI.Theme, theme.Names())
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
