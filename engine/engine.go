package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/alchemy/common"
	"github.com/Carmen-Shannon/alchemy/engine/profiler"
	"github.com/Carmen-Shannon/alchemy/engine/renderer"
	"github.com/Carmen-Shannon/alchemy/engine/window"
)

type engine struct {
	window   window.Window
	renderer renderer.Renderer
	factory  AppFactory

	app App
	ctx *Context

	logger           *slog.Logger
	profiler         *profiler.Profiler
	profilingEnabled bool
	now              func() time.Time

	lastDraw   time.Time
	started    bool
	startErr   error
	terminated bool
}

// Engine multiplexes window events into App callbacks and device context updates.
// It runs entirely on the calling goroutine.
type Engine interface {
	// Start constructs the App through its factory and runs OnLoad. Calling it again returns
	// the first result.
	//
	// Returns:
	//   - error: the factory or OnLoad error; the run is already terminated when non-nil
	Start() error

	// Step consumes at most one window event and dispatches it. Events that arrive after
	// termination are drained without being dispatched.
	//
	// Returns:
	//   - bool: false once the window has stopped producing events
	Step() bool

	// Run starts the App, steps until the window stops producing events and releases the renderer.
	//
	// Returns:
	//   - error: the Start error, if any
	Run() error

	// Context returns the context shared with the App.
	//
	// Returns:
	//   - *Context: the context
	Context() *Context

	// Terminated reports whether the run has ended and OnExit has been delivered.
	//
	// Returns:
	//   - bool: true after termination
	Terminated() bool
}

var _ Engine = &engine{}

// NewEngine creates an Engine over a window, a device context and an App factory.
//
// Parameters:
//   - win: the event source
//   - r: the device context
//   - factory: constructs the App
//   - options: variadic list of EngineBuilderOption functions
//
// Returns:
//   - Engine: the engine
func NewEngine(win window.Window, r renderer.Renderer, factory AppFactory, options ...EngineBuilderOption) Engine {
	e := &engine{
		window:   win,
		renderer: r,
		factory:  factory,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger), profiler.WithClock(e.now))
	}
	e.ctx = NewContext(win, r, e.logger)
	return e
}

func (e *engine) Context() *Context {
	return e.ctx
}

func (e *engine) Terminated() bool {
	return e.terminated
}

func (e *engine) Start() error {
	if e.started {
		return e.startErr
	}
	e.started = true

	if e.factory == nil {
		e.startErr = errors.New("no app factory")
		e.terminate()
		return e.startErr
	}

	app, err := e.factory(e.ctx)
	if err != nil {
		e.startErr = fmt.Errorf("create app: %w", err)
		e.logger.Error("app construction failed", slog.Any("error", err))
		e.terminate()
		return e.startErr
	}
	e.app = app

	if err := app.OnLoad(e.ctx); err != nil {
		e.startErr = fmt.Errorf("load app: %w", err)
		e.logger.Error("app load failed", slog.Any("error", err))
		e.terminate()
		return e.startErr
	}

	e.lastDraw = e.now()
	if e.ctx.ExitRequested() {
		e.terminate()
	}
	return nil
}

func (e *engine) Step() bool {
	if !e.started {
		_ = e.Start()
	}

	ev, ok := e.window.NextEvent()
	if !ok {
		return false
	}
	if e.terminated {
		return true
	}

	e.dispatch(ev)
	if e.ctx.ExitRequested() {
		e.terminate()
	}
	return true
}

func (e *engine) Run() error {
	err := e.Start()
	for e.Step() {
	}
	if !e.terminated {
		e.terminate()
	}
	e.renderer.Release()
	return err
}

func (e *engine) dispatch(ev window.Event) {
	switch ev := ev.(type) {
	case window.MainEventsCleared:
		e.window.RequestRedraw()
	case window.RedrawRequested:
		now := e.now()
		dt := now.Sub(e.lastDraw)
		e.lastDraw = now

		e.app.OnUpdate(e.ctx, dt)
		e.app.OnDraw(e.ctx)

		if e.profilingEnabled {
			e.profiler.Tick()
		}
	case window.DeviceEvent:
		if ev.IsKeyPress(common.KeyEsc) {
			e.ctx.Exit()
			return
		}
		e.app.OnInput(ev)
	case window.KeyboardInput:
		if ev.Key == common.KeyEsc && ev.State == window.Pressed {
			e.ctx.Exit()
		}
	case window.Resized:
		e.resize(ev.Size)
	case window.ScaleFactorChanged:
		e.resize(ev.NewInnerSize)
	case window.CloseRequested:
		e.ctx.Exit()
	}
}

func (e *engine) resize(size window.Size) {
	if err := e.renderer.Resize(size); err != nil {
		e.logger.Warn("renderer resize rejected", slog.String("size", size.String()), slog.Any("error", err))
	}
	e.app.OnResize(size)
}

// terminate delivers OnExit once and stops the window.
func (e *engine) terminate() {
	if e.terminated {
		return
	}
	e.terminated = true
	e.ctx.Exit()
	if e.app != nil {
		e.app.OnExit()
	}
	e.window.Exit()

	stats := e.ctx.FrameStats()
	e.logger.Info("run terminated",
		slog.Uint64("frames_presented", stats.Presented),
		slog.Uint64("frames_skipped", stats.Skipped),
		slog.Uint64("frames_recovered", stats.Recovered),
	)
}
