package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/alchemy/engine/renderer"
	"github.com/Carmen-Shannon/alchemy/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, window.Size{Width: 320, Height: 800}, cfg.InitialSize())
	assert.Equal(t, "Hello World", cfg.Window.Title)
	assert.Equal(t, renderer.DefaultClearColor, cfg.ClearColor())

	mode, err := cfg.PresentMode()
	require.NoError(t, err)
	assert.Equal(t, renderer.PresentModeVSync, mode)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[window]
width = 640
title = "Alchemy"

[renderer]
present_mode = "uncapped"
force_software = true
clear_color = [0.0, 0.0, 0.0, 1.0]

[debug]
profiling = true
log_level = "debug"
`))
	require.NoError(t, err)

	assert.Equal(t, window.Size{Width: 640, Height: 800}, cfg.InitialSize())
	assert.Equal(t, "Alchemy", cfg.Window.Title)
	assert.True(t, cfg.Renderer.ForceSoftware)
	assert.True(t, cfg.Debug.Profiling)
	assert.Equal(t, wgpu.Color{A: 1}, cfg.ClearColor())

	mode, err := cfg.PresentMode()
	require.NoError(t, err)
	assert.Equal(t, renderer.PresentModeUncapped, mode)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	assert.Len(t, cfg.WindowOptions(), 3)
	assert.Len(t, cfg.RendererOptions(nil), 4)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown key":   "[window]\ndepth = 3\n",
		"zero width":    "[window]\nwidth = 0\n",
		"present mode":  "[renderer]\npresent_mode = \"mailbox\"\n",
		"log level":     "[debug]\nlog_level = \"loud\"\n",
		"clear color":   "[renderer]\nclear_color = [2.0, 0.0, 0.0, 1.0]\n",
		"malformed":     "[window\n",
		"type mismatch": "[window]\nwidth = \"wide\"\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvPath, "")

	cfg, path, err := Resolve()
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultPath), []byte("[window]\nheight = 600\n"), 0o644))
	cfg, path, err = Resolve()
	require.NoError(t, err)
	assert.Equal(t, DefaultPath, path)
	assert.Equal(t, 600, cfg.Window.Height)

	explicit := filepath.Join(dir, "other.toml")
	require.NoError(t, os.WriteFile(explicit, []byte("[window]\ntitle = \"Other\"\n"), 0o644))
	t.Setenv(EnvPath, explicit)
	cfg, path, err = Resolve()
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
	assert.Equal(t, "Other", cfg.Window.Title)

	t.Setenv(EnvPath, filepath.Join(dir, "missing.toml"))
	_, _, err = Resolve()
	assert.Error(t, err)
}
