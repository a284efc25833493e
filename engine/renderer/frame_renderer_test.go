package renderer_test

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/alchemy/engine/renderer"
	"github.com/Carmen-Shannon/alchemy/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawFramePresents(t *testing.T) {
	r, backend := newTestRenderer(t)
	initPipeline(t, r)
	f := renderer.NewFrameRenderer(r, nil)

	assert.Equal(t, renderer.FramePresented, f.DrawFrame())
	assert.Equal(t, 1, backend.Presented)
	assert.Equal(t, renderer.FrameStats{Presented: 1}, f.Stats())
}

func TestDrawFrameLostRecreatesSwapchainAtCurrentSize(t *testing.T) {
	r, backend := newTestRenderer(t)
	initPipeline(t, r)
	require.NoError(t, r.Resize(window.Size{Width: 640, Height: 1600}))
	f := renderer.NewFrameRenderer(r, nil)

	backend.FailNextAcquire(errors.New("Surface texture is Lost"))
	backend.Calls = nil

	assert.Equal(t, renderer.FrameRecovered, f.DrawFrame())
	assert.Equal(t, []string{"acquire", "depth 640x1600", "configure 640x1600"}, backend.Calls)
	assert.Empty(t, backend.Submitted)

	// the next frame renders against the recreated swapchain
	assert.Equal(t, renderer.FramePresented, f.DrawFrame())
	assert.Equal(t, window.Size{Width: 640, Height: 1600}, r.Size())
	assert.Equal(t, renderer.FrameStats{Presented: 1, Recovered: 1}, f.Stats())
}

func TestDrawFrameSkipsOutdatedAndTimeout(t *testing.T) {
	r, backend := newTestRenderer(t)
	initPipeline(t, r)
	f := renderer.NewFrameRenderer(r, nil)
	configured := len(backend.Configured)

	backend.FailNextAcquire(
		&renderer.FrameError{Kind: renderer.FrameOutdated},
		errors.New("SurfaceGetCurrentTextureStatus_Timeout"),
	)

	assert.Equal(t, renderer.FrameSkipped, f.DrawFrame())
	assert.Equal(t, renderer.FrameSkipped, f.DrawFrame())
	assert.Len(t, backend.Configured, configured)
	assert.Empty(t, backend.Submitted)
	assert.Equal(t, renderer.FrameStats{Skipped: 2}, f.Stats())
}

func TestDrawFrameOutOfMemoryIsFatal(t *testing.T) {
	r, backend := newTestRenderer(t)
	initPipeline(t, r)
	f := renderer.NewFrameRenderer(r, nil)

	backend.FailNextAcquire(errors.New("Surface texture: OutOfMemory"))

	assert.Equal(t, renderer.FrameFatal, f.DrawFrame())
	assert.Empty(t, backend.Submitted)
	assert.Equal(t, uint64(1), f.Stats().Fatal)
}

func TestDrawFrameDeviceLostIsFatal(t *testing.T) {
	r, backend := newTestRenderer(t)
	initPipeline(t, r)
	f := renderer.NewFrameRenderer(r, nil)
	configured := len(backend.Configured)

	backend.FailNextAcquire(errors.New("SurfaceGetCurrentTextureStatus_DeviceLost"))

	assert.Equal(t, renderer.FrameFatal, f.DrawFrame())
	assert.Len(t, backend.Configured, configured)
	assert.Equal(t, renderer.FrameStats{Fatal: 1}, f.Stats())
}

func TestDrawFrameBeforePipelineIsSkipped(t *testing.T) {
	r, backend := newTestRenderer(t)
	f := renderer.NewFrameRenderer(r, nil)

	assert.Equal(t, renderer.FrameSkipped, f.DrawFrame())
	assert.Empty(t, backend.Acquired)
}

func TestDrawFrameUnknownErrorIsSkipped(t *testing.T) {
	r, backend := newTestRenderer(t)
	initPipeline(t, r)
	f := renderer.NewFrameRenderer(r, nil)

	backend.FailNextAcquire(errors.New("surface exploded"))
	assert.Equal(t, renderer.FrameSkipped, f.DrawFrame())
	assert.Equal(t, renderer.FramePresented, f.DrawFrame())
}

func TestFrameOutcomeString(t *testing.T) {
	assert.Equal(t, "presented", renderer.FramePresented.String())
	assert.Equal(t, "fatal", renderer.FrameFatal.String())
}
