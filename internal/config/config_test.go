package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useConfigFile points the package at path with fresh viper and config state
func useConfigFile(t *testing.T, path string) {
	t.Helper()
	viper.Reset()
	SetConfigPath(path)
	Set(nil)
	t.Cleanup(func() {
		viper.Reset()
		SetConfigPath("")
		Set(nil)
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewkit.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInit(t *testing.T) {
	t.Run("initializes with defaults when no config exists", func(t *testing.T) {
		useConfigFile(t, filepath.Join(t.TempDir(), "missing.toml"))

		require.NoError(t, Init())

		c := Get()
		assert.Equal(t, "viewkit", c.View.Title)
		assert.Equal(t, 640, c.View.Width)
		assert.Equal(t, 400, c.View.Height)
		assert.True(t, c.View.IgnoreKeyRepeat)
		assert.Equal(t, BackendX11, c.Backend.Name)
		assert.Equal(t, DrawingImage, c.Backend.Drawing)
		assert.Equal(t, -1.0, c.Loop.UpdateTimeout)
		assert.Empty(t, c.Loop.Timers)
	})

	t.Run("reads every section", func(t *testing.T) {
		useConfigFile(t, writeConfig(t, `
[view]
title = "demo"
width = 32
height = 16
min_width = 8
min_height = 4
resizable = false
cursor = "hand"

[view.aspect]
min_x = 1
min_y = 1
max_x = 16
max_y = 9

[backend]
name = "sim"
drawing = "stub"

[loop]
update_timeout = 0.25

[[loop.timers]]
id = 1
period = 0.5

[[loop.timers]]
id = 7
period = 2.0

[trace]
path = "/tmp/events.trace"

[logging]
log_level = "debug"
`))

		require.NoError(t, Init())

		c := Get()
		assert.Equal(t, "demo", c.View.Title)
		assert.Equal(t, 32, c.View.Width)
		assert.Equal(t, 16, c.View.Height)
		assert.Equal(t, 8, c.View.MinWidth)
		assert.False(t, c.View.Resizable)
		assert.Equal(t, "hand", c.View.Cursor)
		assert.Equal(t, AspectConfig{MinX: 1, MinY: 1, MaxX: 16, MaxY: 9}, c.View.Aspect)
		assert.True(t, c.View.DoubleBuffer, "unset fields keep their defaults")
		assert.Equal(t, BackendSim, c.Backend.Name)
		assert.Equal(t, DrawingStub, c.Backend.Drawing)
		assert.Equal(t, 0.25, c.Loop.UpdateTimeout)
		assert.Equal(t, []TimerConfig{{ID: 1, Period: 0.5}, {ID: 7, Period: 2}}, c.Loop.Timers)
		assert.Equal(t, "/tmp/events.trace", c.Trace.Path)
		assert.Equal(t, "debug", c.Logging.LogLevel)
	})

	t.Run("rejects invalid TOML", func(t *testing.T) {
		useConfigFile(t, writeConfig(t, "[view\nwidth = 3"))

		err := Init()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("rejects unknown backend", func(t *testing.T) {
		useConfigFile(t, writeConfig(t, "[backend]\nname = \"wayland\"\n"))

		err := Init()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown backend")
		assert.Same(t, &DefaultConfig, Get(), "a rejected file leaves the defaults in place")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"negative width", func(c *Config) { c.View.Width = -1 }, "sizes must not be negative"},
		{"negative max height", func(c *Config) { c.View.MaxHeight = -5 }, "sizes must not be negative"},
		{"negative aspect", func(c *Config) { c.View.Aspect.MaxY = -1 }, "aspect must not be negative"},
		{"nul in title", func(c *Config) { c.View.Title = "a\x00b" }, "NUL"},
		{"unknown drawing", func(c *Config) { c.Backend.Drawing = "opengl" }, "unknown drawing backend"},
		{"zero timer period", func(c *Config) { c.Loop.Timers = []TimerConfig{{ID: 1}} }, "period must be positive"},
		{"duplicate timer", func(c *Config) {
			c.Loop.Timers = []TimerConfig{{ID: 2, Period: 1}, {ID: 2, Period: 3}}
		}, "configured twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig
			c.Loop.Timers = nil
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigPathResolution(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		useConfigFile(t, "/tmp/custom/viewkit.toml")
		assert.Equal(t, "/tmp/custom/viewkit.toml", GetConfigPath())
	})

	t.Run("user config directory", func(t *testing.T) {
		useConfigFile(t, "")
		t.Setenv("HOME", "/home/testuser")
		assert.Equal(t, "/home/testuser/.config/viewkit/viewkit.toml", GetConfigPath())
	})
}

func TestSaveAndTimers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "viewkit.toml")
	useConfigFile(t, path)
	require.NoError(t, Init())

	require.NoError(t, AddTimer(TimerConfig{ID: 3, Period: 0.5}))
	require.NoError(t, AddTimer(TimerConfig{ID: 3, Period: 1.5}))
	require.NoError(t, AddTimer(TimerConfig{ID: 4, Period: 2}))
	assert.Equal(t, []TimerConfig{{ID: 3, Period: 1.5}, {ID: 4, Period: 2}}, Get().Loop.Timers)

	assert.Error(t, AddTimer(TimerConfig{ID: 5}))
	require.NoError(t, RemoveTimer(3))
	assert.Error(t, RemoveTimer(3))

	view := Get().View
	view.Title = "saved"
	require.NoError(t, UpdateView(view))
	assert.FileExists(t, path)

	// Reload from disk
	viper.Reset()
	Set(nil)
	require.NoError(t, Init())
	assert.Equal(t, "saved", Get().View.Title)
	require.Len(t, Get().Loop.Timers, 1)
	assert.Equal(t, uint64(4), Get().Loop.Timers[0].ID)
}

func TestUpdateBackendRejectsInvalid(t *testing.T) {
	useConfigFile(t, filepath.Join(t.TempDir(), "viewkit.toml"))
	require.NoError(t, Init())

	err := UpdateBackend(BackendConfig{Name: "gdi", Drawing: DrawingStub})
	require.Error(t, err)
	assert.Equal(t, BackendX11, Get().Backend.Name)
}
