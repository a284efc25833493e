package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/alchemy/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/alchemy/engine/renderer/shader"
)

var (
	// ErrAdapterNotFound is returned when no adapter compatible with the surface is available.
	ErrAdapterNotFound = errors.New("no compatible graphics adapter found")

	// ErrDeviceRequestFailed is returned when the adapter refuses to create a device.
	ErrDeviceRequestFailed = errors.New("graphics device request failed")

	// ErrInvalidSize is returned by Resize for a zero width or height.
	ErrInvalidSize = errors.New("surface size must be non-zero")

	// ErrPipelineNotInitialized is returned when rendering or writing uniforms before InitPipeline.
	ErrPipelineNotInitialized = bind_group_provider.ErrPipelineNotInitialized

	// ErrPipelineAlreadyInitialized is returned by a second InitPipeline call.
	ErrPipelineAlreadyInitialized = errors.New("render pipeline already initialized")

	// ErrInvalidShaderBytecode is returned when a shader blob is not SPIR-V.
	ErrInvalidShaderBytecode = shader.ErrInvalidBytecode

	// ErrDeviceLost is wrapped into acquisition errors that report a lost device rather than a
	// lost surface. Recreating the swapchain cannot recover it.
	ErrDeviceLost = errors.New("graphics device lost")

	// ErrNullSurfaceTexture is the cause recorded when the surface hands back no texture.
	ErrNullSurfaceTexture = errors.New("surface returned no texture")
)

// FrameErrorKind classifies why a frame could not be rendered.
type FrameErrorKind int

const (
	// FrameLost means the swapchain must be recreated before the next frame.
	FrameLost FrameErrorKind = iota + 1

	// FrameOutdated means the surface changed underneath the swapchain; a resize event follows.
	FrameOutdated

	// FrameTimeout means no image became available in time.
	FrameTimeout

	// FrameOutOfMemory means the device ran out of memory. Fatal.
	FrameOutOfMemory
)

// String returns the kind name.
func (k FrameErrorKind) String() string {
	switch k {
	case FrameLost:
		return "lost"
	case FrameOutdated:
		return "outdated"
	case FrameTimeout:
		return "timeout"
	case FrameOutOfMemory:
		return "out of memory"
	default:
		return fmt.Sprintf("FrameErrorKind(%d)", int(k))
	}
}

// Fatal reports whether the run must terminate.
func (k FrameErrorKind) Fatal() bool {
	return k == FrameOutOfMemory
}

// Recoverable reports whether the frame renderer can correct the condition itself.
func (k FrameErrorKind) Recoverable() bool {
	return k == FrameLost
}

// FrameError is returned by Render when the swapchain image could not be acquired.
type FrameError struct {
	Kind FrameErrorKind
	Err  error
}

// Error implements error.
func (e *FrameError) Error() string {
	if e.Err == nil {
		return "frame " + e.Kind.String()
	}
	return fmt.Sprintf("frame %s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying surface error.
func (e *FrameError) Unwrap() error {
	return e.Err
}

// ClassifySurfaceError maps a surface texture acquisition error onto a *FrameError.
// Errors that already are a *FrameError pass through. A lost device is wrapped with ErrDeviceLost
// instead of being reported as a lost surface; other unrecognised errors are returned wrapped
// but unclassified.
//
// Parameters:
//   - err: the error reported while acquiring the surface texture
//
// Returns:
//   - error: nil, a *FrameError, or the wrapped unrecognised error
func ClassifySurfaceError(err error) error {
	if err == nil {
		return nil
	}
	var fe *FrameError
	if errors.As(err, &fe) {
		return err
	}

	msg := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(err.Error()))
	switch {
	case strings.Contains(msg, "devicelost"), strings.Contains(msg, "deviceislost"), strings.Contains(msg, "devicewaslost"):
		return fmt.Errorf("acquire surface texture: %w: %w", ErrDeviceLost, err)
	case strings.Contains(msg, "outofmemory"):
		return &FrameError{Kind: FrameOutOfMemory, Err: err}
	case strings.Contains(msg, "lost"):
		return &FrameError{Kind: FrameLost, Err: err}
	case strings.Contains(msg, "outdated"):
		return &FrameError{Kind: FrameOutdated, Err: err}
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timedout"):
		return &FrameError{Kind: FrameTimeout, Err: err}
	default:
		return fmt.Errorf("acquire surface texture: %w", err)
	}
}

// acquireStreak maps consecutive acquisitions that yield no surface texture onto frame errors.
// The first miss is reported as outdated; a second miss in a row as lost, so the frame renderer
// reconfigures the surface. The streak restarts after a lost report or a successful acquire.
type acquireStreak struct {
	misses int
}

func (s *acquireStreak) miss() *FrameError {
	s.misses++
	if s.misses < 2 {
		return &FrameError{Kind: FrameOutdated, Err: ErrNullSurfaceTexture}
	}
	s.misses = 0
	return &FrameError{Kind: FrameLost, Err: ErrNullSurfaceTexture}
}

func (s *acquireStreak) hit() {
	s.misses = 0
}
