package camera

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/alchemy/common"
	"github.com/Carmen-Shannon/alchemy/engine/window"
	"github.com/stretchr/testify/assert"
)

const (
	eps    = 1e-4
	math90 = 1.5707964
)

// transform applies a column-major 4x4 matrix to a point and returns clip coordinates.
func transform(m [16]float32, p [3]float32) [4]float32 {
	var out [4]float32
	for row := 0; row < 4; row++ {
		out[row] = m[row]*p[0] + m[4+row]*p[1] + m[8+row]*p[2] + m[12+row]
	}
	return out
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera(WithViewport(window.Size{Width: 320, Height: 800}))

	assert.Equal(t, [3]float32{0, 5, 10}, c.Position())
	assert.InDelta(t, 0.4, c.Aspect(), eps)
	assert.InDelta(t, 0.1, c.Near(), eps)
	assert.InDelta(t, 100, c.Far(), eps)

	f := c.Forward()
	assert.InDelta(t, 0, f[0], eps)
	assert.Less(t, f[1], float32(0))
	assert.Less(t, f[2], float32(0))
	assert.Equal(t, CameraUniform{ViewProj: c.ViewProjectionMatrix()}, c.Uniform())
	assert.Equal(t, uint64(64), CameraUniformSize)
}

func TestViewProjectionKeepsPointAheadInsideClipSpace(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 5), WithOrientation(-math90, 0))

	ahead := transform(c.ViewProjectionMatrix(), [3]float32{0, 0, 0})
	assert.Greater(t, ahead[3], float32(0))
	assert.InDelta(t, 0, ahead[0]/ahead[3], eps)
	assert.InDelta(t, 0, ahead[1]/ahead[3], eps)
	depth := ahead[2] / ahead[3]
	assert.True(t, depth > 0 && depth < 1, "depth %v outside [0, 1]", depth)

	behind := transform(c.ViewProjectionMatrix(), [3]float32{0, 0, 10})
	assert.Less(t, behind[3], float32(0))
}

func TestPitchIsClamped(t *testing.T) {
	c := NewCamera(WithOrientation(0, 10))
	assert.InDelta(t, MaxPitch, c.Pitch(), eps)

	c.SetPitch(-10)
	assert.InDelta(t, -MaxPitch, c.Pitch(), eps)
}

func TestResizeIgnoresZero(t *testing.T) {
	c := NewCamera()
	c.Resize(window.Size{Width: 640, Height: 1600})
	assert.InDelta(t, 0.4, c.Aspect(), eps)

	before := c.ProjectionMatrix()
	c.Resize(window.Size{})
	c.SetAspect(-1)
	assert.Equal(t, before, c.ProjectionMatrix())
}

func TestControllerMovesForwardOverTime(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 0), WithOrientation(0, 0))
	cc := NewCameraController(WithSpeed(2))

	assert.True(t, cc.ProcessKeyboard(common.KeyW, window.Pressed))
	cc.Update(c, 500*time.Millisecond)
	assert.InDelta(t, 1, c.Position()[0], eps)

	assert.True(t, cc.ProcessKeyboard(common.KeyW, window.Released))
	cc.Update(c, time.Second)
	assert.InDelta(t, 1, c.Position()[0], eps)

	assert.False(t, cc.ProcessKeyboard(common.KeyQ, window.Pressed))
}

func TestControllerStrafeAndVertical(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 0), WithOrientation(0, 0))
	cc := NewCameraController(WithSpeed(1))

	cc.ProcessKeyboard(common.KeyD, window.Pressed)
	cc.ProcessKeyboard(common.KeySpace, window.Pressed)
	cc.Update(c, time.Second)

	pos := c.Position()
	assert.InDelta(t, 0, pos[0], eps)
	assert.InDelta(t, 1, pos[1], eps)
	assert.InDelta(t, 1, pos[2], eps)

	cc.ProcessKeyboard(common.KeySpace, window.Released)
	cc.ProcessKeyboard(common.KeyLeftShift, window.Pressed)
	cc.ProcessKeyboard(common.KeyD, window.Released)
	cc.Update(c, time.Second)
	assert.InDelta(t, 0, c.Position()[1], eps)
}

func TestControllerLookRequiresDrag(t *testing.T) {
	c := NewCamera(WithOrientation(0, 0))
	cc := NewCameraController(WithSensitivity(1))

	motion := window.DeviceEvent{Kind: window.DeviceMouseMotion, DeltaX: 0.5, DeltaY: 0.25}
	assert.True(t, cc.HandleInput(motion))
	cc.Update(c, time.Second)
	assert.InDelta(t, 0, c.Yaw(), eps)

	press := window.DeviceEvent{Kind: window.DeviceMouseButton, Button: common.MouseButtonLeft, State: window.Pressed}
	assert.True(t, cc.HandleInput(press))
	assert.True(t, cc.Dragging())
	cc.HandleInput(motion)
	cc.Update(c, time.Second)
	assert.InDelta(t, 0.5, c.Yaw(), eps)
	assert.InDelta(t, -0.25, c.Pitch(), eps)

	// rotation is consumed by the update that applied it
	cc.Update(c, time.Second)
	assert.InDelta(t, 0.5, c.Yaw(), eps)

	right := window.DeviceEvent{Kind: window.DeviceMouseButton, Button: common.MouseButtonRight, State: window.Pressed}
	assert.False(t, cc.HandleInput(right))
}

func TestControllerScrollZoomsAlongView(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 0), WithOrientation(0, 0))
	cc := NewCameraController(WithSpeed(1), WithSensitivity(1))

	assert.True(t, cc.HandleInput(window.DeviceEvent{Kind: window.DeviceMouseWheel, Scroll: 2}))
	cc.Update(c, time.Second)
	assert.InDelta(t, 2, c.Position()[0], eps)

	cc.Update(c, time.Second)
	assert.InDelta(t, 2, c.Position()[0], eps)
}

func TestHandleInputKeys(t *testing.T) {
	cc := NewCameraController()
	assert.True(t, cc.HandleInput(window.DeviceEvent{Kind: window.DeviceKey, Key: common.KeyA, State: window.Pressed}))
	assert.False(t, cc.HandleInput(window.DeviceEvent{Kind: window.DeviceKey, Key: common.KeyE, State: window.Pressed}))
	assert.InDelta(t, 4, cc.Speed(), eps)
	assert.InDelta(t, 0.4, cc.Sensitivity(), eps)
}
