package main

import (
	"encoding/binary"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/alchemy/common"
	"github.com/Carmen-Shannon/alchemy/engine"
	"github.com/Carmen-Shannon/alchemy/engine/camera"
	"github.com/Carmen-Shannon/alchemy/engine/renderer"
	"github.com/Carmen-Shannon/alchemy/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/alchemy/engine/renderer/shader"
	"github.com/Carmen-Shannon/alchemy/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeShaders() (vertex, fragment []byte, err error) {
	module := make([]byte, 8)
	binary.LittleEndian.PutUint32(module, shader.SPIRVMagic)
	return module, module, nil
}

func newLoadedApp(t *testing.T) (*demoApp, *engine.Context, *renderertest.Backend) {
	t.Helper()
	backend := renderertest.NewBackend()
	r, err := renderer.NewRenderer(backend, window.Size{Width: 320, Height: 800})
	require.NoError(t, err)

	ctx := engine.NewContext(nil, r, slog.Default())
	app, err := newDemoApp(slog.Default())(ctx)
	require.NoError(t, err)

	demo := app.(*demoApp)
	demo.shaders = fakeShaders
	require.NoError(t, demo.OnLoad(ctx))
	return demo, ctx, backend
}

func uniformOf(t *testing.T, data []byte) camera.CameraUniform {
	t.Helper()
	var u camera.CameraUniform
	require.Len(t, data, int(camera.CameraUniformSize))
	copy(common.StructToBytes(&u), data)
	return u
}

func TestDemoLoadCreatesCameraResources(t *testing.T) {
	demo, ctx, backend := newLoadedApp(t)

	assert.True(t, ctx.Renderer().PipelineReady())
	require.Len(t, backend.Layouts, 1)
	assert.Equal(t, camera.CameraUniformSize, backend.Layouts[0].Desc.Entries[0].Buffer.MinBindingSize)

	require.Len(t, backend.Buffers, 1)
	assert.Equal(t, demo.camera.Uniform(), uniformOf(t, backend.Buffers[0].Data))
	assert.InDelta(t, 0.4, demo.camera.Aspect(), 1e-6)

	require.Len(t, backend.Pipelines, 1)
	vs := backend.Pipelines[0].Pipeline.Shader(shader.ShaderTypeVertex)
	assert.Contains(t, vs.Source(), "@vertex")
	require.NotNil(t, vs.Module().WGSLDescriptor)
}

func TestDemoLoadFailsOnShaderError(t *testing.T) {
	backend := renderertest.NewBackend()
	r, err := renderer.NewRenderer(backend, window.Size{Width: 320, Height: 800})
	require.NoError(t, err)
	ctx := engine.NewContext(nil, r, nil)

	app, err := newDemoApp(slog.Default())(ctx)
	require.NoError(t, err)
	compileErr := errors.New("bad wgsl")
	app.(*demoApp).shaders = func() ([]byte, []byte, error) { return nil, nil, compileErr }

	assert.ErrorIs(t, app.OnLoad(ctx), compileErr)
	assert.False(t, r.PipelineReady())
}

func TestDemoInputMovesCameraAndUploads(t *testing.T) {
	demo, ctx, backend := newLoadedApp(t)
	before := demo.camera.Position()

	demo.OnInput(window.DeviceEvent{Kind: window.DeviceKey, Key: common.KeyW, State: window.Pressed})
	demo.OnUpdate(ctx, 250*time.Millisecond)

	assert.NotEqual(t, before, demo.camera.Position())
	assert.Equal(t, demo.camera.Uniform(), uniformOf(t, backend.Buffers[0].Data))
	assert.Equal(t, 2, backend.Buffers[0].Writes)
}

func TestDemoDrawBindsCameraUniform(t *testing.T) {
	demo, ctx, backend := newLoadedApp(t)

	demo.OnUpdate(ctx, 16*time.Millisecond)
	demo.OnDraw(ctx)

	require.Equal(t, 1, backend.Presented)
	pass := backend.LastPass()
	require.NotNil(t, pass)
	assert.Equal(t, demo.uniform.BindGroup(), pass.BindGroups[0])
	assert.Equal(t, renderer.FrameStats{Presented: 1}, ctx.FrameStats())
}

func TestDemoResizeUpdatesAspect(t *testing.T) {
	demo, _, _ := newLoadedApp(t)

	demo.OnResize(window.Size{Width: 1600, Height: 800})
	assert.InDelta(t, 2.0, demo.camera.Aspect(), 1e-6)

	demo.OnResize(window.Size{})
	assert.InDelta(t, 2.0, demo.camera.Aspect(), 1e-6)
}

func TestDemoExitReleasesResources(t *testing.T) {
	demo, _, backend := newLoadedApp(t)

	demo.OnExit()

	assert.True(t, backend.Buffers[0].Released)
	assert.True(t, backend.Layouts[0].Released)
}
