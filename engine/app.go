package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/alchemy/engine/renderer"
	"github.com/Carmen-Shannon/alchemy/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/alchemy/engine/window"
)

// AppFactory constructs the App once the device context exists. It runs before OnLoad.
type AppFactory func(ctx *Context) (App, error)

// App is the user code driven by the Engine. Every callback runs on the event loop thread, one at
// a time, so implementations need no locking.
type App interface {
	// OnLoad runs exactly once, before any OnUpdate or OnDraw. Resource objects and the render
	// pipeline are typically created here.
	//
	// Parameters:
	//   - ctx: the engine context
	//
	// Returns:
	//   - error: a non-nil error terminates the run
	OnLoad(ctx *Context) error

	// OnUpdate advances app state. It immediately precedes OnDraw for the same redraw.
	//
	// Parameters:
	//   - ctx: the engine context
	//   - dt: the time elapsed since the previous redraw
	OnUpdate(ctx *Context, dt time.Duration)

	// OnDraw records and submits the frame, normally through ctx.DrawFrame.
	//
	// Parameters:
	//   - ctx: the engine context
	OnDraw(ctx *Context)

	// OnInput receives raw device input. Escape presses are consumed by the engine.
	//
	// Parameters:
	//   - ev: the device event
	OnInput(ev window.DeviceEvent)

	// OnResize receives every framebuffer size change, after the renderer has been resized.
	//
	// Parameters:
	//   - size: the new framebuffer size
	OnResize(size window.Size)

	// OnExit runs exactly once, as the last callback of the run.
	OnExit()
}

// Context is the handle passed to every App callback.
type Context struct {
	renderer renderer.Renderer
	window   window.Window
	frames   *renderer.FrameRenderer

	exitRequested bool
}

// NewContext creates a Context over a window and renderer.
//
// Parameters:
//   - win: the window the App runs in
//   - r: the device context
//   - logger: the logger used by the frame renderer; nil uses slog.Default()
//
// Returns:
//   - *Context: the context
func NewContext(win window.Window, r renderer.Renderer, logger *slog.Logger) *Context {
	return &Context{
		renderer: r,
		window:   win,
		frames:   renderer.NewFrameRenderer(r, logger),
	}
}

// Renderer returns the device context.
func (c *Context) Renderer() renderer.Renderer {
	return c.renderer
}

// Window returns the host window.
func (c *Context) Window() window.Window {
	return c.window
}

// DrawFrame renders one frame with resources bound in argument order. A fatal outcome requests
// termination of the run.
//
// Parameters:
//   - resources: the resource objects to bind
//
// Returns:
//   - renderer.FrameOutcome: what happened to the frame
func (c *Context) DrawFrame(resources ...bind_group_provider.BindGroupProvider) renderer.FrameOutcome {
	outcome := c.frames.DrawFrame(resources...)
	if outcome == renderer.FrameFatal {
		c.Exit()
	}
	return outcome
}

// FrameStats returns the frame outcome counters.
func (c *Context) FrameStats() renderer.FrameStats {
	return c.frames.Stats()
}

// Exit requests termination. The engine honours it once the current callback returns.
func (c *Context) Exit() {
	c.exitRequested = true
}

// ExitRequested reports whether termination has been requested.
func (c *Context) ExitRequested() bool {
	return c.exitRequested
}
