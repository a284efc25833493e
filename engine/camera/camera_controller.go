package camera

import (
	"time"

	"github.com/Carmen-Shannon/alchemy/common"
	"github.com/Carmen-Shannon/alchemy/engine/window"
	"github.com/chewxy/math32"
)

// CameraController turns device input into fly-camera movement.
// Input is accumulated as it arrives and applied to a Camera once per frame by Update,
// scaled by the frame delta.
type CameraController interface {
	// HandleInput routes a device event to the matching Process method.
	// Mouse motion only rotates the camera while the left button is held.
	//
	// Parameters:
	//   - ev: the device event
	//
	// Returns:
	//   - bool: true if the event was consumed
	HandleInput(ev window.DeviceEvent) bool

	// ProcessKeyboard records a movement key press or release.
	// W/S or Up/Down move forward and back, A/D or Left/Right strafe, Space and Left Shift rise and sink.
	//
	// Parameters:
	//   - key: the key code
	//   - state: pressed or released
	//
	// Returns:
	//   - bool: true if key is a movement key
	ProcessKeyboard(key uint32, state window.ElementState) bool

	// ProcessMouse accumulates a look rotation.
	//
	// Parameters:
	//   - dx, dy: relative pointer motion
	ProcessMouse(dx, dy float64)

	// ProcessScroll accumulates a zoom along the view direction. Positive values move forward.
	//
	// Parameters:
	//   - delta: scroll amount
	ProcessScroll(delta float64)

	// Update applies accumulated input to cam and clears the per-frame rotation and zoom.
	//
	// Parameters:
	//   - cam: the camera to move
	//   - dt: the frame delta
	Update(cam Camera, dt time.Duration)

	// Speed returns the movement speed in units per second.
	Speed() float32

	// Sensitivity returns the look and zoom sensitivity.
	Sensitivity() float32

	// Dragging reports whether the left mouse button is held.
	Dragging() bool
}

type cameraControllerImpl struct {
	amountLeft     float32
	amountRight    float32
	amountForward  float32
	amountBackward float32
	amountUp       float32
	amountDown     float32

	rotateHorizontal float32
	rotateVertical   float32
	scroll           float32

	dragging bool

	speed       float32
	sensitivity float32
}

var _ CameraController = &cameraControllerImpl{}

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithSpeed sets the movement speed in units per second.
func WithSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.speed = speed
	}
}

// WithSensitivity sets the look and zoom sensitivity.
func WithSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.sensitivity = sensitivity
	}
}

// NewCameraController creates a fly-camera controller. Speed defaults to 4 units per second
// and sensitivity to 0.4.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		speed:       4,
		sensitivity: 0.4,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) Speed() float32       { return cc.speed }
func (cc *cameraControllerImpl) Sensitivity() float32 { return cc.sensitivity }
func (cc *cameraControllerImpl) Dragging() bool       { return cc.dragging }

func (cc *cameraControllerImpl) HandleInput(ev window.DeviceEvent) bool {
	switch ev.Kind {
	case window.DeviceKey:
		return cc.ProcessKeyboard(ev.Key, ev.State)
	case window.DeviceMouseWheel:
		cc.ProcessScroll(ev.Scroll)
		return true
	case window.DeviceMouseButton:
		if ev.Button != common.MouseButtonLeft {
			return false
		}
		cc.dragging = ev.State == window.Pressed
		return true
	case window.DeviceMouseMotion:
		if cc.dragging {
			cc.ProcessMouse(ev.DeltaX, ev.DeltaY)
		}
		return true
	}
	return false
}

func (cc *cameraControllerImpl) ProcessKeyboard(key uint32, state window.ElementState) bool {
	var amount float32
	if state == window.Pressed {
		amount = 1
	}

	switch key {
	case common.KeyW, common.KeyUp:
		cc.amountForward = amount
	case common.KeyS, common.KeyDown:
		cc.amountBackward = amount
	case common.KeyA, common.KeyLeft:
		cc.amountLeft = amount
	case common.KeyD, common.KeyRight:
		cc.amountRight = amount
	case common.KeySpace:
		cc.amountUp = amount
	case common.KeyLeftShift:
		cc.amountDown = amount
	default:
		return false
	}
	return true
}

func (cc *cameraControllerImpl) ProcessMouse(dx, dy float64) {
	cc.rotateHorizontal += float32(dx)
	cc.rotateVertical += float32(dy)
}

func (cc *cameraControllerImpl) ProcessScroll(delta float64) {
	cc.scroll += float32(delta)
}

func (cc *cameraControllerImpl) Update(cam Camera, dt time.Duration) {
	seconds := float32(dt.Seconds())
	pos := cam.Position()
	yaw := cam.Yaw()

	// planar movement ignores pitch so looking down does not slow walking
	sinYaw, cosYaw := math32.Sin(yaw), math32.Cos(yaw)
	forward := [3]float32{cosYaw, 0, sinYaw}
	right := [3]float32{-sinYaw, 0, cosYaw}

	move := (cc.amountForward - cc.amountBackward) * cc.speed * seconds
	strafe := (cc.amountRight - cc.amountLeft) * cc.speed * seconds
	for i := range pos {
		pos[i] += forward[i]*move + right[i]*strafe
	}

	zoom := cc.scroll * cc.speed * cc.sensitivity * seconds
	view := cam.Forward()
	for i := range pos {
		pos[i] += view[i] * zoom
	}

	pos[1] += (cc.amountUp - cc.amountDown) * cc.speed * seconds

	cam.SetPosition(pos)
	cam.SetYaw(yaw + cc.rotateHorizontal*cc.sensitivity*seconds)
	cam.SetPitch(cam.Pitch() - cc.rotateVertical*cc.sensitivity*seconds)

	cc.scroll = 0
	cc.rotateHorizontal = 0
	cc.rotateVertical = 0
}
