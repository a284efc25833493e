package camera

import (
	"github.com/Carmen-Shannon/alchemy/common"
	"github.com/Carmen-Shannon/alchemy/engine/window"
	"github.com/chewxy/math32"
)

// MaxPitch keeps the view direction away from the poles where LookAt degenerates.
const MaxPitch = math32.Pi/2 - 0.0001

type cameraImpl struct {
	position [3]float32
	yaw      float32
	pitch    float32
	up       [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
}

// Camera is a perspective camera oriented by yaw and pitch angles.
// Matrices are recomputed by Update and by every setter.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// Yaw returns the horizontal angle in radians. Zero looks down +X.
	//
	// Returns:
	//   - float32: yaw in radians
	Yaw() float32

	// Pitch returns the vertical angle in radians, within [-MaxPitch, MaxPitch].
	//
	// Returns:
	//   - float32: pitch in radians
	Pitch() float32

	// Forward returns the unit view direction.
	//
	// Returns:
	//   - [3]float32: the view direction
	Forward() [3]float32

	Fov() float32
	Aspect() float32
	Near() float32
	Far() float32

	// ViewMatrix returns the current 4x4 view matrix (column-major).
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix (column-major).
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns projection * view (column-major).
	ViewProjectionMatrix() [16]float32

	// Uniform returns the GPU representation of the camera.
	//
	// Returns:
	//   - CameraUniform: the uniform value
	Uniform() CameraUniform

	// SetPosition moves the camera.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position [3]float32)

	// SetYaw sets the horizontal angle in radians.
	SetYaw(yaw float32)

	// SetPitch sets the vertical angle in radians, clamped to [-MaxPitch, MaxPitch].
	SetPitch(pitch float32)

	// SetAspect sets the projection aspect ratio. Non-positive values are ignored.
	SetAspect(aspect float32)

	// Resize sets the aspect ratio from a framebuffer size. Zero sizes are ignored.
	//
	// Parameters:
	//   - size: the framebuffer size
	Resize(size window.Size)

	// Update recomputes the view and projection matrices.
	Update()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera at (0, 5, 10) looking toward the origin along -Z and slightly down.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		position: [3]float32{0, 5, 10},
		yaw:      -90 * (math32.Pi / 180),
		pitch:    -20 * (math32.Pi / 180),
		up:       [3]float32{0, 1, 0},
		fov:      45 * (math32.Pi / 180),
		aspect:   1,
		near:     0.1,
		far:      100,
	}
	for _, option := range options {
		option(c)
	}
	c.pitch = common.Clamp(c.pitch, -MaxPitch, MaxPitch)
	c.Update()
	return c
}

func (c *cameraImpl) Position() [3]float32 { return c.position }
func (c *cameraImpl) Yaw() float32         { return c.yaw }
func (c *cameraImpl) Pitch() float32       { return c.pitch }
func (c *cameraImpl) Fov() float32         { return c.fov }
func (c *cameraImpl) Aspect() float32      { return c.aspect }
func (c *cameraImpl) Near() float32        { return c.near }
func (c *cameraImpl) Far() float32         { return c.far }

func (c *cameraImpl) Forward() [3]float32 {
	sinPitch, cosPitch := math32.Sin(c.pitch), math32.Cos(c.pitch)
	sinYaw, cosYaw := math32.Sin(c.yaw), math32.Cos(c.yaw)
	return [3]float32{cosPitch * cosYaw, sinPitch, cosPitch * sinYaw}
}

func (c *cameraImpl) ViewMatrix() [16]float32           { return c.viewMatrix }
func (c *cameraImpl) ProjectionMatrix() [16]float32     { return c.projectionMatrix }
func (c *cameraImpl) ViewProjectionMatrix() [16]float32 { return c.viewProjectionMatrix }

func (c *cameraImpl) Uniform() CameraUniform {
	return CameraUniform{ViewProj: c.viewProjectionMatrix}
}

func (c *cameraImpl) SetPosition(position [3]float32) {
	c.position = position
	c.Update()
}

func (c *cameraImpl) SetYaw(yaw float32) {
	c.yaw = yaw
	c.Update()
}

func (c *cameraImpl) SetPitch(pitch float32) {
	c.pitch = common.Clamp(pitch, -MaxPitch, MaxPitch)
	c.Update()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.Update()
}

func (c *cameraImpl) Resize(size window.Size) {
	if size.IsZero() {
		return
	}
	c.SetAspect(size.Aspect())
}

func (c *cameraImpl) Update() {
	forward := c.Forward()
	center := [3]float32{
		c.position[0] + forward[0],
		c.position[1] + forward[1],
		c.position[2] + forward[2],
	}

	common.LookAt(c.viewMatrix[:], c.position, center, c.up)
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
