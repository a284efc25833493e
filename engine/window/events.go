package window

import "fmt"

// Size is a framebuffer size in physical pixels.
type Size struct {
	Width  uint32
	Height uint32
}

// IsZero reports whether either dimension is zero, as happens while a window is minimized.
func (s Size) IsZero() bool {
	return s.Width == 0 || s.Height == 0
}

// Aspect returns width divided by height, or 1 for a zero size.
func (s Size) Aspect() float32 {
	if s.IsZero() {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Event is a platform event emitted by a Window. The set of implementations is closed.
type Event interface {
	event()
}

// ElementState is the state of a key or button.
type ElementState int

const (
	Pressed ElementState = iota
	Released
)

func (s ElementState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// DeviceEventKind identifies which fields of a DeviceEvent are meaningful.
type DeviceEventKind int

const (
	// DeviceKey carries Key and State.
	DeviceKey DeviceEventKind = iota
	// DeviceMouseButton carries Button and State.
	DeviceMouseButton
	// DeviceMouseMotion carries DeltaX and DeltaY.
	DeviceMouseMotion
	// DeviceMouseWheel carries Scroll.
	DeviceMouseWheel
)

// DeviceEvent is raw input forwarded to the App.
type DeviceEvent struct {
	Kind   DeviceEventKind
	Key    uint32
	State  ElementState
	Button uint32
	DeltaX float64
	DeltaY float64
	Scroll float64
}

// IsKeyPress reports whether the event is a press of key.
func (e DeviceEvent) IsKeyPress(key uint32) bool {
	return e.Kind == DeviceKey && e.State == Pressed && e.Key == key
}

// MainEventsCleared is emitted after every pending platform event of a pass has been delivered.
type MainEventsCleared struct{}

// RedrawRequested is emitted once per pass after RequestRedraw.
type RedrawRequested struct{}

// CloseRequested is emitted when the user asks to close the window.
type CloseRequested struct{}

// Resized carries the new framebuffer size.
type Resized struct {
	Size Size
}

// ScaleFactorChanged carries the new content scale and the framebuffer size that goes with it.
type ScaleFactorChanged struct {
	ScaleFactor  float64
	NewInnerSize Size
}

// KeyboardInput is the window-focused keyboard event.
type KeyboardInput struct {
	Key   uint32
	State ElementState
}

func (MainEventsCleared) event()  {}
func (RedrawRequested) event()    {}
func (CloseRequested) event()     {}
func (Resized) event()            {}
func (ScaleFactorChanged) event() {}
func (KeyboardInput) event()      {}
func (DeviceEvent) event()        {}
