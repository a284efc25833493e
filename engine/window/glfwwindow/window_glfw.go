// Package glfwwindow is the GLFW implementation of window.Window.
package glfwwindow

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/alchemy/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	window *glfw.Window
	loop   *window.EventLoop

	size         window.Size
	scale        float64
	cursorX      float64
	cursorY      float64
	cursorPlaced bool
}

var _ window.Window = &glfwWindow{}

// New creates the GLFW window with input callbacks. The calling goroutine is locked to its OS
// thread because GLFW must be driven from the thread that initialized it.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func New(options ...window.WindowBuilderOption) (window.Window, error) {
	cfg := window.NewConfig(options...)
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}

	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	if cfg.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(
		limit(cfg.MinWidth), limit(cfg.MinHeight),
		limit(cfg.MaxWidth), limit(cfg.MaxHeight),
	)

	gw := &glfwWindow{window: win}
	gw.loop = window.NewEventLoop(gw.pump)

	// Use framebuffer size for pixel-accurate dimensions; on high-DPI displays it differs
	// from the window size and the renderer requires pixels.
	fbWidth, fbHeight := win.GetFramebufferSize()
	gw.size = window.Size{Width: uint32(fbWidth), Height: uint32(fbHeight)}
	sx, _ := win.GetContentScale()
	gw.scale = float64(sx)

	gw.registerCallbacks()
	return gw, nil
}

func limit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}

// registerCallbacks translates GLFW callbacks into window events.
func (w *glfwWindow) registerCallbacks() {
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	w.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		state, ok := elementState(action)
		if !ok || key == glfw.KeyUnknown {
			return
		}
		w.loop.Push(window.KeyboardInput{Key: uint32(key), State: state})
		w.loop.Push(window.DeviceEvent{Kind: window.DeviceKey, Key: uint32(key), State: state})
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	w.window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		state, ok := elementState(action)
		if !ok {
			return
		}
		w.loop.Push(window.DeviceEvent{Kind: window.DeviceMouseButton, Button: uint32(button), State: state})
	})

	// GLFW reports absolute positions; device motion is relative.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	w.window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if !w.cursorPlaced {
			w.cursorX, w.cursorY, w.cursorPlaced = xpos, ypos, true
			return
		}
		dx, dy := xpos-w.cursorX, ypos-w.cursorY
		w.cursorX, w.cursorY = xpos, ypos
		w.loop.Push(window.DeviceEvent{Kind: window.DeviceMouseMotion, DeltaX: dx, DeltaY: dy})
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	w.window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.loop.Push(window.DeviceEvent{Kind: window.DeviceMouseWheel, Scroll: yoff})
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	w.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.size = window.Size{Width: uint32(width), Height: uint32(height)}
		w.loop.Push(window.Resized{Size: w.size})
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetContentScaleCallback
	w.window.SetContentScaleCallback(func(win *glfw.Window, x, _ float32) {
		w.scale = float64(x)
		fbWidth, fbHeight := win.GetFramebufferSize()
		w.size = window.Size{Width: uint32(fbWidth), Height: uint32(fbHeight)}
		w.loop.Push(window.ScaleFactorChanged{ScaleFactor: w.scale, NewInnerSize: w.size})
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCloseCallback
	w.window.SetCloseCallback(func(win *glfw.Window) {
		// The engine decides whether to close.
		win.SetShouldClose(false)
		w.loop.Push(window.CloseRequested{})
	})
}

func elementState(action glfw.Action) (window.ElementState, bool) {
	switch action {
	case glfw.Press:
		return window.Pressed, true
	case glfw.Release:
		return window.Released, true
	default:
		return 0, false
	}
}

// pump gathers one batch of platform events.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#WaitEvents
func (w *glfwWindow) pump(block bool) {
	if block {
		glfw.WaitEvents()
		return
	}
	glfw.PollEvents()
}

func (w *glfwWindow) NextEvent() (window.Event, bool) {
	return w.loop.Next()
}

func (w *glfwWindow) RequestRedraw() {
	w.loop.RequestRedraw()
}

func (w *glfwWindow) Exit() {
	w.loop.Exit()
}

func (w *glfwWindow) Size() window.Size {
	return w.size
}

// SurfaceDescriptor uses the wgpuglfw bridge package which has per-platform implementations
// (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func (w *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.window == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(w.window)
}

func (w *glfwWindow) Close() error {
	if w.window == nil {
		return errors.New("window is not initialized")
	}
	w.loop.Exit()
	w.window.Destroy()
	w.window = nil
	glfw.Terminate()
	return nil
}
