package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	result := loadConfigFromPath(filepath.Join(t.TempDir(), "missing.json"))

	if result.Status != "Default" {
		t.Errorf("Expected status Default, got %s", result.Status)
	}
	if result.HasError {
		t.Error("Missing config should not be an error")
	}
	if diff := cmp.Diff(DefaultConfig(), result.Config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := writeConfig(t, `{
		"window_width": 1280,
		"window_height": 900,
		"sort_method": 1,
		"volume": 0.5,
		"cache_size": 16,
		"progress_interval_ms": 250,
		"log_level": "debug",
		"mouse": {"wheel_inverted": true},
		"keybindings": {"next_page": ["KeyN", "ArrowRight"]}
	}`)

	result := loadConfigFromPath(path)
	if result.Status != "OK" {
		t.Fatalf("Expected status OK, got %s (%v)", result.Status, result.Warnings)
	}

	cfg := result.Config
	if cfg.WindowWidth != 1280 || cfg.WindowHeight != 900 {
		t.Errorf("unexpected window size %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
	if cfg.SortMethod != SortNatural {
		t.Errorf("Expected natural sort, got %d", cfg.SortMethod)
	}
	if cfg.Volume != 0.5 {
		t.Errorf("Expected volume 0.5, got %v", cfg.Volume)
	}
	if cfg.CacheSize != 16 || cfg.ProgressInterval != 250 {
		t.Errorf("unexpected cache %d / interval %d", cfg.CacheSize, cfg.ProgressInterval)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %q", cfg.LogLevel)
	}
	if !cfg.Mouse.WheelInverted || !cfg.Mouse.EnableMouse {
		t.Errorf("unexpected mouse settings %+v", cfg.Mouse)
	}
	if diff := cmp.Diff([]string{"KeyN", "ArrowRight"}, cfg.Keybindings[actionNextPage]); diff != "" {
		t.Errorf("next_page keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(GetDefaultKeybindings()[actionExit], cfg.Keybindings[actionExit]); diff != "" {
		t.Errorf("missing actions should get default keys (-want +got):\n%s", diff)
	}
}

func TestLoadConfigClamps(t *testing.T) {
	path := writeConfig(t, `{
		"window_width": 10,
		"window_height": 10,
		"sort_method": 9,
		"cache_size": 1000,
		"progress_interval_ms": 10,
		"volume": 3,
		"max_render_pixels": 100,
		"font_size": 4,
		"scroll_step": -1,
		"mouse": {"wheel_sensitivity": 0, "double_click_time": -5}
	}`)

	cfg := loadConfigFromPath(path).Config
	want := DefaultConfig()
	want.CacheSize = 64

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("clamped config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	result := loadConfigFromPath(writeConfig(t, `{"window_width": `))

	if result.Status != "Error" || !result.HasError {
		t.Errorf("Expected Error status, got %s", result.Status)
	}
	if len(result.Warnings) == 0 {
		t.Error("Expected a warning for the invalid file")
	}
	if diff := cmp.Diff(DefaultConfig(), result.Config); diff != "" {
		t.Errorf("Expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadConfigBindingErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"key conflict", `{"keybindings": {"next_page": ["KeyQ"]}}`},
		{"unknown key", `{"keybindings": {"exit": ["KeyFoo"]}}`},
		{"unknown modifier", `{"keybindings": {"exit": ["Super+KeyX"]}}`},
		{"unknown mouse action", `{"mousebindings": {"zoom_in": ["Ctrl+WheelSideways"]}}`},
		{"mouse conflict", `{"mousebindings": {"zoom_out": ["Ctrl+WheelUp"]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := loadConfigFromPath(writeConfig(t, tt.content))
			if result.Status != "Warning" {
				t.Errorf("Expected Warning status, got %s", result.Status)
			}
			if len(result.Warnings) == 0 {
				t.Error("Expected a warning")
			}
			if diff := cmp.Diff(GetDefaultKeybindings(), result.Config.Keybindings); diff != "" {
				t.Errorf("Expected default keybindings (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(GetDefaultMousebindings(), result.Config.Mousebindings); diff != "" {
				t.Errorf("Expected default mouse bindings (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadConfigReportsOnlyThroughWarnings(t *testing.T) {
	defer func(l zerolog.Logger) { log.Logger = l }(log.Logger)
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	for _, content := range []string{
		`{"window_width": `,
		`{"keybindings": {"next_page": ["KeyQ"]}}`,
		`{"mousebindings": {"zoom_out": ["Ctrl+WheelUp"]}}`,
	} {
		result := loadConfigFromPath(writeConfig(t, content))
		if len(result.Warnings) != 1 {
			t.Errorf("Expected one warning for %s, got %v", content, result.Warnings)
		}
	}
	if buf.Len() != 0 {
		t.Errorf("config loading should not log, got %q", buf.String())
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("NVREADER_CACHE_SIZE", "12")
	t.Setenv("NVREADER_SORT_METHOD", "2")

	cfg := loadConfigFromPath(filepath.Join(t.TempDir(), "missing.json")).Config
	if cfg.CacheSize != 12 {
		t.Errorf("Expected cache size 12 from env, got %d", cfg.CacheSize)
	}
	if cfg.SortMethod != SortEntryOrder {
		t.Errorf("Expected entry order from env, got %d", cfg.SortMethod)
	}
}

func TestDefaultBindingsAreValid(t *testing.T) {
	if err := validateKeybindings(GetDefaultKeybindings()); err != nil {
		t.Errorf("default keybindings invalid: %v", err)
	}
	if err := validateMousebindings(GetDefaultMousebindings()); err != nil {
		t.Errorf("default mouse bindings invalid: %v", err)
	}
}

func TestValidateKeyString(t *testing.T) {
	valid := getValidKeyNames()
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"KeyA", false},
		{"Ctrl+ArrowRight", false},
		{"Shift+Slash", false},
		{"ctrl+shift+F11", false},
		{"", true},
		{"Ctrl+", true},
		{"Hyper+KeyA", true},
		{"KeyAA", true},
	}
	for _, tt := range tests {
		err := validateKeyString(tt.key, valid)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateKeyString(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
		}
	}
}

func TestGetSortMethodName(t *testing.T) {
	tests := map[int]string{
		SortSimple:     "Simple",
		SortNatural:    "Natural",
		SortEntryOrder: "Entry Order",
		42:             "Simple",
	}
	for method, want := range tests {
		if got := getSortMethodName(method); got != want {
			t.Errorf("getSortMethodName(%d) = %q, want %q", method, got, want)
		}
	}
}
