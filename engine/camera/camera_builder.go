package camera

import "github.com/Carmen-Shannon/alchemy/engine/window"

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's initial world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - CameraBuilderOption: a function that sets the position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = [3]float32{x, y, z}
	}
}

// WithOrientation sets the initial yaw and pitch in radians.
//
// Parameters:
//   - yaw: horizontal angle, zero looks down +X
//   - pitch: vertical angle, clamped to [-MaxPitch, MaxPitch]
//
// Returns:
//   - CameraBuilderOption: a function that sets the orientation
func WithOrientation(yaw, pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.yaw = yaw
		c.pitch = pitch
	}
}

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithViewport sets the aspect ratio from the framebuffer size. Zero sizes keep the default.
//
// Parameters:
//   - size: the framebuffer size
//
// Returns:
//   - CameraBuilderOption: a function that sets the aspect ratio
func WithViewport(size window.Size) CameraBuilderOption {
	return func(c *cameraImpl) {
		if !size.IsZero() {
			c.aspect = size.Aspect()
		}
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance (must be > 0)
//   - far: far plane distance (must be > near)
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}
