// Command alchemy opens a window and renders the demo triangle through a fly camera.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/alchemy/config"
	"github.com/Carmen-Shannon/alchemy/engine"
	"github.com/Carmen-Shannon/alchemy/engine/renderer"
	"github.com/Carmen-Shannon/alchemy/engine/window/glfwwindow"
	"github.com/pkg/profile"
)

func main() {
	if err := run(); err != nil {
		slog.Error("alchemy failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, path, err := config.Resolve()
	if err != nil {
		return err
	}

	level, _ := cfg.LogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	if path != "" {
		logger.Info("loaded config", slog.String("path", path))
	}

	if dir := cfg.Debug.CPUProfile; dir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.NoShutdownHook).Stop()
	}

	win, err := glfwwindow.New(cfg.WindowOptions()...)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer func() {
		if err := win.Close(); err != nil {
			logger.Warn("close window", slog.Any("error", err))
		}
	}()

	r, err := renderer.NewWGPURenderer(win.SurfaceDescriptor(), win.Size(), cfg.RendererOptions(logger)...)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	eng := engine.NewEngine(win, r, newDemoApp(logger),
		engine.WithLogger(logger),
		engine.WithProfiling(cfg.Debug.Profiling),
	)
	return eng.Run()
}
