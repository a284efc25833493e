package window

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the platform event source driving the engine. It owns the native window, translates
// platform callbacks into Events and exposes the surface descriptor the renderer draws into.
type Window interface {
	// NextEvent returns the next event, blocking inside the platform layer when nothing is pending
	// and no redraw is outstanding.
	//
	// Returns:
	//   - Event: the next event
	//   - bool: false once Exit has been called; no further events are produced
	NextEvent() (Event, bool)

	// RequestRedraw schedules a RedrawRequested event for the current pass.
	RequestRedraw()

	// Exit stops event production. Subsequent NextEvent calls report false.
	Exit()

	// Size returns the current framebuffer size in pixels.
	//
	// Returns:
	//   - Size: the framebuffer size
	Size() Size

	// SurfaceDescriptor builds the platform specific descriptor used to create a wgpu surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil if the native window is gone
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Close destroys the native window.
	//
	// Returns:
	//   - error: an error if the window was not initialized
	Close() error
}

type pass int

const (
	passEvents pass = iota
	passCleared
	passRedraw
)

// EventLoop implements the event ordering shared by Window implementations: queued platform
// events first, then MainEventsCleared, then RedrawRequested if one was requested, then a new
// platform pass.
type EventLoop struct {
	pending []Event
	phase   pass
	redraw  bool
	drawn   bool
	exited  bool
	pump    func(block bool)
}

// NewEventLoop creates an EventLoop.
//
// Parameters:
//   - pump: called to gather platform events into the loop via Push. block is true when the
//     previous pass neither requested nor delivered a redraw, so the platform may wait.
//
// Returns:
//   - *EventLoop: the loop
func NewEventLoop(pump func(block bool)) *EventLoop {
	return &EventLoop{pump: pump}
}

// Push queues a platform event for the current pass. Events pushed after Exit are dropped.
func (l *EventLoop) Push(ev Event) {
	if l.exited {
		return
	}
	l.pending = append(l.pending, ev)
}

// RequestRedraw schedules a RedrawRequested for the current pass.
func (l *EventLoop) RequestRedraw() {
	l.redraw = true
}

// Exit stops the loop and drops anything pending.
func (l *EventLoop) Exit() {
	l.exited = true
	l.pending = nil
}

// Exited reports whether Exit has been called.
func (l *EventLoop) Exited() bool {
	return l.exited
}

// Next returns the next event in pass order.
func (l *EventLoop) Next() (Event, bool) {
	for !l.exited {
		if len(l.pending) > 0 {
			ev := l.pending[0]
			l.pending[0] = nil
			l.pending = l.pending[1:]
			return ev, true
		}

		switch l.phase {
		case passEvents:
			l.phase = passCleared
			return MainEventsCleared{}, true
		case passCleared:
			l.phase = passRedraw
			if l.redraw {
				l.redraw = false
				l.drawn = true
				return RedrawRequested{}, true
			}
		case passRedraw:
			block := !l.redraw && !l.drawn
			l.drawn = false
			l.phase = passEvents
			if l.pump != nil {
				l.pump(block)
			}
		}
	}
	return nil, false
}
