package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/alchemy/common"
	"github.com/Carmen-Shannon/alchemy/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, logs frame rate and memory statistics once per interval
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler ticked after every redraw when profiling is enabled
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithLogger sets the logger for the engine and its frame renderer. A nil logger keeps slog.Default().
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = common.Logger(logger)
	}
}

// WithClock replaces time.Now as the source of update deltas.
//
// Parameters:
//   - now: the clock
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(now func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		if now != nil {
			e.now = now
		}
	}
}
