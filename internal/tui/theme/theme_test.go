package theme

import (
	"slices"
	"testing"

	"github.com/javiermolinar/rocinante/internal/schedule"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
	}{
		{name: "load mocha theme", themeName: "mocha", wantName: "mocha"},
		{name: "load latte theme", themeName: "latte", wantName: "latte"},
		{name: "case insensitive", themeName: "LATTE", wantName: "latte"},
		{name: "empty name defaults to mocha", themeName: "", wantName: "mocha"},
		{name: "invalid theme falls back to mocha", themeName: "nonexistent", wantName: "mocha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
		})
	}
}

func TestLoad_EveryPaletteColorHasABlock(t *testing.T) {
	for _, name := range Names() {
		theme, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) unexpected error: %v", name, err)
		}
		for _, c := range schedule.Colors() {
			if theme.Blocks[string(c)] == "" {
				t.Errorf("theme %q has no block color for %q", name, c)
			}
		}
		if theme.Bg == "" || theme.Fg == "" || theme.Accent == "" {
			t.Errorf("theme %q missing base colors: %+v", name, theme)
		}
	}
}

func TestBlock_FallsBack(t *testing.T) {
	theme := &Theme{Accent: "#ff0000", Blocks: map[string]string{"blue": "#0000ff"}}

	if got := theme.Block(schedule.ColorBlue); got != "#0000ff" {
		t.Errorf("Block(blue) = %q", got)
	}
	if got := theme.Block(schedule.ColorPink); got != "#0000ff" {
		t.Errorf("Block(pink) = %q, want default color", got)
	}

	theme.Blocks = nil
	if got := theme.Block(schedule.ColorPink); got != "#ff0000" {
		t.Errorf("Block(pink) = %q, want accent", got)
	}
}

func TestNamesAndExists(t *testing.T) {
	names := Names()
	if !slices.Contains(names, "mocha") || !slices.Contains(names, "latte") {
		t.Fatalf("Names() = %v", names)
	}
	if !Exists("Mocha") {
		t.Error("expected Exists to be case insensitive")
	}
	if Exists("neon") {
		t.Error("expected neon to be unknown")
	}
}
