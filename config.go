package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Window size constants
const (
	defaultWidth  = 1024
	defaultHeight = 768
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortSimple     = 0 // Simple string sort (lexicographical)
	SortNatural    = 1 // Natural sort order (e.g., file1, file2, file10)
	SortEntryOrder = 2 // Maintain original order (no sort)
)

const (
	defaultCacheSize        = 8
	defaultProgressInterval = 1000 // milliseconds
	defaultVolume           = 1.0
	defaultMaxRenderPixels  = 64 << 20
	defaultFontSize         = 16.0
	defaultScrollStep       = 60.0
)

// validateKeybindings validates the keybindings configuration
func validateKeybindings(keybindings map[string][]string) error {
	// Check for valid key formats and detect conflicts
	keyToAction := make(map[string]string)
	validKeys := getValidKeyNames()

	for action, keys := range keybindings {
		for _, keyStr := range keys {
			if err := validateKeyString(keyStr, validKeys); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %v", keyStr, action, err)
			}

			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

// validateKeyString validates a single key string format
func validateKeyString(keyStr string, validKeys map[string]bool) error {
	parts := strings.Split(keyStr, "+")
	if len(parts) == 0 || keyStr == "" {
		return fmt.Errorf("empty key string")
	}

	// Last part should be the actual key
	keyName := parts[len(parts)-1]
	if !validKeys[keyName] {
		return fmt.Errorf("unknown key: %s", keyName)
	}

	for i := 0; i < len(parts)-1; i++ {
		modifier := strings.ToLower(parts[i])
		if modifier != "shift" && modifier != "ctrl" && modifier != "alt" {
			return fmt.Errorf("unknown modifier: %s", parts[i])
		}
	}

	return nil
}

// getValidKeyNames returns a set of valid key names
func getValidKeyNames() map[string]bool {
	valid := make(map[string]bool)
	for name := range getKeyMapping() {
		valid[name] = true
	}
	return valid
}

// ConfigLoadResult contains the result of loading configuration. The loader
// runs before logging is set up, so problems are reported only through
// Warnings.
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
	Path     string
}

// MouseSettings contains mouse-specific configuration
type MouseSettings struct {
	EnableMouse      bool    `mapstructure:"enable_mouse"`
	WheelSensitivity float64 `mapstructure:"wheel_sensitivity"`
	WheelInverted    bool    `mapstructure:"wheel_inverted"`
	DoubleClickTime  int     `mapstructure:"double_click_time"` // milliseconds
}

type Config struct {
	WindowWidth      int                 `mapstructure:"window_width"`
	WindowHeight     int                 `mapstructure:"window_height"`
	Fullscreen       bool                `mapstructure:"fullscreen"`
	SortMethod       int                 `mapstructure:"sort_method"`
	CacheSize        int                 `mapstructure:"cache_size"`
	ProgressInterval int                 `mapstructure:"progress_interval_ms"`
	Volume           float64             `mapstructure:"volume"`
	MaxRenderPixels  int                 `mapstructure:"max_render_pixels"`
	FontSize         float64             `mapstructure:"font_size"`
	ScrollStep       float64             `mapstructure:"scroll_step"`
	LogLevel         string              `mapstructure:"log_level"`
	Mouse            MouseSettings       `mapstructure:"mouse"`
	Keybindings      map[string][]string `mapstructure:"keybindings"`
	Mousebindings    map[string][]string `mapstructure:"mousebindings"`
}

// GetDefaultMouseSettings returns the default mouse settings
func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		EnableMouse:      true,
		WheelSensitivity: 1.0,
		WheelInverted:    false,
		DoubleClickTime:  300,
	}
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		WindowWidth:      defaultWidth,
		WindowHeight:     defaultHeight,
		SortMethod:       SortSimple,
		CacheSize:        defaultCacheSize,
		ProgressInterval: defaultProgressInterval,
		Volume:           defaultVolume,
		MaxRenderPixels:  defaultMaxRenderPixels,
		FontSize:         defaultFontSize,
		ScrollStep:       defaultScrollStep,
		LogLevel:         "warn",
		Mouse:            GetDefaultMouseSettings(),
		Keybindings:      GetDefaultKeybindings(),
		Mousebindings:    GetDefaultMousebindings(),
	}
}

// getConfigPath returns the default config file path for the current OS
func getConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "nvreader", "config.json")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "nvreader.json"
		}
		return filepath.Join(home, ".config", "nvreader", "config.json")
	}
}

func loadConfig(path string) ConfigLoadResult {
	if path == "" {
		path = getConfigPath()
	}
	return loadConfigFromPath(path)
}

func newConfigViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("NVREADER")
	v.AutomaticEnv()

	// Defaults make scalar keys visible to AutomaticEnv.
	def := DefaultConfig()
	v.SetDefault("window_width", def.WindowWidth)
	v.SetDefault("window_height", def.WindowHeight)
	v.SetDefault("fullscreen", def.Fullscreen)
	v.SetDefault("sort_method", def.SortMethod)
	v.SetDefault("cache_size", def.CacheSize)
	v.SetDefault("progress_interval_ms", def.ProgressInterval)
	v.SetDefault("volume", def.Volume)
	v.SetDefault("max_render_pixels", def.MaxRenderPixels)
	v.SetDefault("font_size", def.FontSize)
	v.SetDefault("scroll_step", def.ScrollStep)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("mouse.enable_mouse", def.Mouse.EnableMouse)
	v.SetDefault("mouse.wheel_sensitivity", def.Mouse.WheelSensitivity)
	v.SetDefault("mouse.wheel_inverted", def.Mouse.WheelInverted)
	v.SetDefault("mouse.double_click_time", def.Mouse.DoubleClickTime)
	return v
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := DefaultConfig()

	result := ConfigLoadResult{
		Config:   config,
		HasError: false,
		Warnings: []string{},
		Status:   "OK",
		Path:     configPath,
	}

	v := newConfigViper(configPath)
	if _, err := os.Stat(configPath); err != nil {
		// Config file not found is not an error - use defaults and env
		result.Status = "Default"
	} else if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			result.HasError = true
			result.Status = "Error"
			result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
			return result
		}
		result.Status = "Default"
	}

	config.Keybindings = nil
	config.Mousebindings = nil
	if err := v.Unmarshal(&config); err != nil {
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config values: %v", err))
		return result
	}

	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	if config.SortMethod < SortSimple || config.SortMethod > SortEntryOrder {
		config.SortMethod = SortSimple
	}

	// Validate cache size (minimum 1, maximum 64)
	if config.CacheSize < 1 {
		config.CacheSize = defaultCacheSize
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	// Validate progress interval (minimum 50ms, maximum 5s)
	if config.ProgressInterval < 50 {
		config.ProgressInterval = defaultProgressInterval
	} else if config.ProgressInterval > 5000 {
		config.ProgressInterval = 5000
	}

	if config.Volume < 0 || config.Volume > 1 {
		config.Volume = defaultVolume
	}

	// A render budget below one megapixel would refuse ordinary pages.
	if config.MaxRenderPixels < 1<<20 {
		config.MaxRenderPixels = defaultMaxRenderPixels
	}

	// Validate font size (minimum 10px for readability)
	if config.FontSize < 10 {
		config.FontSize = defaultFontSize
	}

	if config.ScrollStep <= 0 {
		config.ScrollStep = defaultScrollStep
	}

	if config.Mouse.WheelSensitivity <= 0 {
		config.Mouse.WheelSensitivity = 1.0
	}
	if config.Mouse.DoubleClickTime <= 0 {
		config.Mouse.DoubleClickTime = GetDefaultMouseSettings().DoubleClickTime
	}

	// Validate keybindings - ensure defaults exist for missing actions
	if config.Keybindings == nil {
		config.Keybindings = GetDefaultKeybindings()
	} else {
		defaults := GetDefaultKeybindings()
		for action, defaultKeys := range defaults {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = defaultKeys
			}
		}

		if err := validateKeybindings(config.Keybindings); err != nil {
			config.Keybindings = GetDefaultKeybindings()
			result.Status = "Warning"
			result.Warnings = append(result.Warnings, fmt.Sprintf("Keybinding errors: %v", err))
		}
	}

	if config.Mousebindings == nil {
		config.Mousebindings = GetDefaultMousebindings()
	} else {
		for action, defaultActions := range GetDefaultMousebindings() {
			if _, exists := config.Mousebindings[action]; !exists {
				config.Mousebindings[action] = defaultActions
			}
		}

		if err := validateMousebindings(config.Mousebindings); err != nil {
			config.Mousebindings = GetDefaultMousebindings()
			result.Status = "Warning"
			result.Warnings = append(result.Warnings, fmt.Sprintf("Mouse binding errors: %v", err))
		}
	}

	result.Config = config
	return result
}

// getSortMethodName returns the human-readable name of a sort method
func getSortMethodName(sortMethod int) string {
	strategy := GetSortStrategy(sortMethod)
	return strategy.Name()
}
