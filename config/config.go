// Package config loads the executable's optional TOML settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/Carmen-Shannon/alchemy/engine/renderer"
	"github.com/Carmen-Shannon/alchemy/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pelletier/go-toml/v2"
)

const (
	// EnvPath names the environment variable holding an explicit config file path.
	EnvPath = "ALCHEMY_CONFIG"

	// DefaultPath is read when EnvPath is unset and the file exists.
	DefaultPath = "alchemy.toml"
)

// Present mode names accepted in the renderer section.
const (
	PresentVSync    = "vsync"
	PresentUncapped = "uncapped"
)

// Config is the full settings file.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Debug    DebugConfig    `toml:"debug"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type RendererConfig struct {
	PresentMode   string     `toml:"present_mode"`
	ForceSoftware bool       `toml:"force_software"`
	ClearColor    [4]float64 `toml:"clear_color"`
}

type DebugConfig struct {
	Profiling bool `toml:"profiling"`
	// CPUProfile is the directory a CPU profile is written to. Empty disables CPU profiling.
	CPUProfile string `toml:"cpu_profile"`
	LogLevel   string `toml:"log_level"`
}

// Default returns the settings used when no file is present: a 320x800 "Hello World" window,
// vsync and info logging.
func Default() Config {
	c := renderer.DefaultClearColor
	return Config{
		Window: WindowConfig{
			Width:  320,
			Height: 800,
			Title:  "Hello World",
		},
		Renderer: RendererConfig{
			PresentMode: PresentVSync,
			ClearColor:  [4]float64{c.R, c.G, c.B, c.A},
		},
		Debug: DebugConfig{
			LogLevel: "info",
		},
	}
}

// Parse decodes TOML over the defaults and validates the result. Unknown keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the merged settings
//   - error: a decode or validation error
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("decode config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a settings file.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Config: the merged settings
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve finds the settings for this process. A path in EnvPath must exist; otherwise
// DefaultPath is used when present and the defaults when it is not.
//
// Returns:
//   - Config: the settings
//   - string: the file they came from, empty for the defaults
//   - error: a load error
func Resolve() (Config, string, error) {
	if path := os.Getenv(EnvPath); path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	cfg, err := Load(DefaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), "", nil
	}
	if err != nil {
		return Config{}, DefaultPath, err
	}
	return cfg, DefaultPath, nil
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if _, err := c.PresentMode(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	for _, v := range c.Renderer.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("clear color component %v outside [0, 1]", v)
		}
	}
	return nil
}

// PresentMode maps the configured name to a renderer present mode.
func (c Config) PresentMode() (renderer.PresentMode, error) {
	switch strings.ToLower(c.Renderer.PresentMode) {
	case "", PresentVSync:
		return renderer.PresentModeVSync, nil
	case PresentUncapped:
		return renderer.PresentModeUncapped, nil
	default:
		return 0, fmt.Errorf("unknown present mode %q", c.Renderer.PresentMode)
	}
}

// LogLevel parses the configured slog level name.
func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Debug.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Debug.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// ClearColor returns the configured clear color.
func (c Config) ClearColor() wgpu.Color {
	rgba := c.Renderer.ClearColor
	return wgpu.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
}

// InitialSize returns the configured window size.
func (c Config) InitialSize() window.Size {
	return window.Size{Width: uint32(c.Window.Width), Height: uint32(c.Window.Height)}
}

// WindowOptions returns the window options for these settings. The minimum size equals the
// initial size.
func (c Config) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(c.Window.Title),
		window.WithSize(c.Window.Width, c.Window.Height),
		window.WithMinSize(c.Window.Width, c.Window.Height),
	}
}

// RendererOptions returns the renderer options for these settings. The settings must have
// passed Validate.
func (c Config) RendererOptions(logger *slog.Logger) []renderer.RendererBuilderOption {
	mode, _ := c.PresentMode()
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithClearColor(c.ClearColor()),
		renderer.WithForceSoftwareRenderer(c.Renderer.ForceSoftware),
		renderer.WithLogger(logger),
	}
}
