// Package config handles configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Initial view configuration
	View ViewConfig `mapstructure:"view" toml:"view"`

	// Toolkit selection
	Backend BackendConfig `mapstructure:"backend" toml:"backend"`

	// Event loop settings
	Loop LoopConfig `mapstructure:"loop" toml:"loop"`

	// Event recording
	Trace TraceConfig `mapstructure:"trace" toml:"trace"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging" toml:"logging"`
}

// ViewConfig is applied to a view before it is shown
type ViewConfig struct {
	Title           string       `mapstructure:"title" toml:"title"`
	Width           int          `mapstructure:"width" toml:"width"`
	Height          int          `mapstructure:"height" toml:"height"`
	MinWidth        int          `mapstructure:"min_width" toml:"min_width"`
	MinHeight       int          `mapstructure:"min_height" toml:"min_height"`
	MaxWidth        int          `mapstructure:"max_width" toml:"max_width"`
	MaxHeight       int          `mapstructure:"max_height" toml:"max_height"`
	Aspect          AspectConfig `mapstructure:"aspect" toml:"aspect"`
	Resizable       bool         `mapstructure:"resizable" toml:"resizable"`
	IgnoreKeyRepeat bool         `mapstructure:"ignore_key_repeat" toml:"ignore_key_repeat"`
	Cursor          string       `mapstructure:"cursor" toml:"cursor"` // arrow, caret, crosshair, hand, no, left-right, up-down
	DoubleBuffer    bool         `mapstructure:"double_buffer" toml:"double_buffer"`
}

// AspectConfig bounds the width to height ratio. All zero means unconstrained.
type AspectConfig struct {
	MinX int `mapstructure:"min_x" toml:"min_x"`
	MinY int `mapstructure:"min_y" toml:"min_y"`
	MaxX int `mapstructure:"max_x" toml:"max_x"`
	MaxY int `mapstructure:"max_y" toml:"max_y"`
}

// BackendConfig selects the toolkit a view is opened on
type BackendConfig struct {
	Name    string `mapstructure:"name" toml:"name"`       // x11 or sim
	Display string `mapstructure:"display" toml:"display"` // X display, empty means $DISPLAY
	Drawing string `mapstructure:"drawing" toml:"drawing"` // image or stub
}

// LoopConfig controls the update loop of `viewkit run`
type LoopConfig struct {
	UpdateTimeout float64       `mapstructure:"update_timeout" toml:"update_timeout"` // Seconds, negative blocks
	Timers        []TimerConfig `mapstructure:"timers" toml:"timers"`
}

// TimerConfig is a repeating timer started after the view is shown
type TimerConfig struct {
	ID     uint64  `mapstructure:"id" toml:"id"`
	Period float64 `mapstructure:"period" toml:"period"` // Seconds
}

// TraceConfig contains event recording settings
type TraceConfig struct {
	Path string `mapstructure:"path" toml:"path"` // Empty disables recording
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level" toml:"log_level"` // Override LOG_LEVEL env var
}

// Backend names
const (
	BackendX11 = "x11"
	BackendSim = "sim"
)

// Drawing backend names
const (
	DrawingImage = "image"
	DrawingStub  = "stub"
)

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		View: ViewConfig{
			Title:           "viewkit",
			Width:           640,
			Height:          400,
			Resizable:       true,
			IgnoreKeyRepeat: true,
			Cursor:          "arrow",
			DoubleBuffer:    true,
		},
		Backend: BackendConfig{
			Name:    BackendX11,
			Display: "",
			Drawing: DrawingImage,
		},
		Loop: LoopConfig{
			UpdateTimeout: -1,
			Timers:        []TimerConfig{},
		},
		Trace: TraceConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("viewkit")
	viper.SetConfigType("toml")

	// If a specific path is set, use only that
	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		if home := os.Getenv("HOME"); home != "" {
			viper.AddConfigPath(filepath.Join(home, ".config", "viewkit"))
		}
		viper.AddConfigPath(".") // Current directory (lowest priority)
	}

	// Set defaults - need to set individual fields for proper merging
	viper.SetDefault("view.title", DefaultConfig.View.Title)
	viper.SetDefault("view.width", DefaultConfig.View.Width)
	viper.SetDefault("view.height", DefaultConfig.View.Height)
	viper.SetDefault("view.min_width", DefaultConfig.View.MinWidth)
	viper.SetDefault("view.min_height", DefaultConfig.View.MinHeight)
	viper.SetDefault("view.max_width", DefaultConfig.View.MaxWidth)
	viper.SetDefault("view.max_height", DefaultConfig.View.MaxHeight)
	viper.SetDefault("view.aspect.min_x", DefaultConfig.View.Aspect.MinX)
	viper.SetDefault("view.aspect.min_y", DefaultConfig.View.Aspect.MinY)
	viper.SetDefault("view.aspect.max_x", DefaultConfig.View.Aspect.MaxX)
	viper.SetDefault("view.aspect.max_y", DefaultConfig.View.Aspect.MaxY)
	viper.SetDefault("view.resizable", DefaultConfig.View.Resizable)
	viper.SetDefault("view.ignore_key_repeat", DefaultConfig.View.IgnoreKeyRepeat)
	viper.SetDefault("view.cursor", DefaultConfig.View.Cursor)
	viper.SetDefault("view.double_buffer", DefaultConfig.View.DoubleBuffer)

	viper.SetDefault("backend.name", DefaultConfig.Backend.Name)
	viper.SetDefault("backend.display", DefaultConfig.Backend.Display)
	viper.SetDefault("backend.drawing", DefaultConfig.Backend.Drawing)

	viper.SetDefault("loop.update_timeout", DefaultConfig.Loop.UpdateTimeout)
	viper.SetDefault("loop.timers", DefaultConfig.Loop.Timers)

	viper.SetDefault("trace.path", DefaultConfig.Trace.Path)

	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	loaded := &Config{}
	if err := viper.Unmarshal(loaded); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = loaded

	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Validate checks values viper cannot type check
func (c *Config) Validate() error {
	v := c.View
	if v.Width < 0 || v.Height < 0 || v.MinWidth < 0 || v.MinHeight < 0 || v.MaxWidth < 0 || v.MaxHeight < 0 {
		return fmt.Errorf("view sizes must not be negative")
	}
	if v.Aspect.MinX < 0 || v.Aspect.MinY < 0 || v.Aspect.MaxX < 0 || v.Aspect.MaxY < 0 {
		return fmt.Errorf("view aspect must not be negative")
	}
	if strings.IndexByte(v.Title, 0) >= 0 {
		return fmt.Errorf("view title must not contain NUL bytes")
	}

	switch c.Backend.Name {
	case BackendX11, BackendSim:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend.Name, BackendX11, BackendSim)
	}
	switch c.Backend.Drawing {
	case DrawingImage, DrawingStub:
	default:
		return fmt.Errorf("unknown drawing backend %q (want %s or %s)", c.Backend.Drawing, DrawingImage, DrawingStub)
	}

	seen := make(map[uint64]bool)
	for _, t := range c.Loop.Timers {
		if t.Period <= 0 {
			return fmt.Errorf("timer %d: period must be positive", t.ID)
		}
		if seen[t.ID] {
			return fmt.Errorf("timer %d is configured twice", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

// Save saves the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write config
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	// If override is set, use that
	if configPathOverride != "" {
		return configPathOverride
	}

	// Check if config file is already loaded
	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "viewkit.toml"
	}

	return filepath.Join(home, ".config", "viewkit", "viewkit.toml")
}

// UpdateView replaces the view section and saves
func UpdateView(viewCfg ViewConfig) error {
	next := *Get()
	next.View = viewCfg
	if err := next.Validate(); err != nil {
		return err
	}
	viper.Set("view", viewCfg)
	cfg = &next
	return Save()
}

// UpdateBackend replaces the backend section and saves
func UpdateBackend(backendCfg BackendConfig) error {
	next := *Get()
	next.Backend = backendCfg
	if err := next.Validate(); err != nil {
		return err
	}
	viper.Set("backend", backendCfg)
	cfg = &next
	return Save()
}

// AddTimer adds a timer or replaces the one with the same id
func AddTimer(timer TimerConfig) error {
	next := *Get()
	next.Loop.Timers = slices.Clone(next.Loop.Timers)

	if i := slices.IndexFunc(next.Loop.Timers, func(t TimerConfig) bool { return t.ID == timer.ID }); i >= 0 {
		next.Loop.Timers[i] = timer
	} else {
		next.Loop.Timers = append(next.Loop.Timers, timer)
	}
	return setTimers(next)
}

// RemoveTimer removes a timer from the configuration
func RemoveTimer(id uint64) error {
	next := *Get()

	i := slices.IndexFunc(next.Loop.Timers, func(t TimerConfig) bool { return t.ID == id })
	if i < 0 {
		return fmt.Errorf("timer %d not found", id)
	}
	next.Loop.Timers = slices.Delete(slices.Clone(next.Loop.Timers), i, i+1)
	return setTimers(next)
}

func setTimers(next Config) error {
	if err := next.Validate(); err != nil {
		return err
	}
	viper.Set("loop.timers", next.Loop.Timers)
	cfg = &next
	return Save()
}
