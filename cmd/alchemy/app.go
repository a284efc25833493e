package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/alchemy/assets"
	"github.com/Carmen-Shannon/alchemy/engine"
	"github.com/Carmen-Shannon/alchemy/engine/camera"
	"github.com/Carmen-Shannon/alchemy/engine/renderer"
	bgp "github.com/Carmen-Shannon/alchemy/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/alchemy/engine/window"
)

// overlayFontSize is the point size the overlay font is loaded at.
const overlayFontSize = 14

// demoApp draws one triangle through a fly camera.
type demoApp struct {
	logger  *slog.Logger
	shaders func() (vertex, fragment []byte, err error)
	sources func() (vertex, fragment string, err error)

	camera     camera.Camera
	controller camera.CameraController
	layout     bgp.BindGroupLayout
	uniform    *bgp.Uniform[camera.CameraUniform]
}

var _ engine.App = &demoApp{}

func newDemoApp(logger *slog.Logger) engine.AppFactory {
	return func(*engine.Context) (engine.App, error) {
		return &demoApp{
			logger:     logger,
			shaders:    assets.Shaders,
			sources:    assets.Sources,
			controller: camera.NewCameraController(),
		}, nil
	}
}

func (a *demoApp) OnLoad(ctx *engine.Context) error {
	r := ctx.Renderer()
	a.camera = camera.NewCamera(camera.WithViewport(r.Size()))

	layout, err := r.CreateBindGroupLayout("Camera Bind Group Layout", camera.CameraUniformSize)
	if err != nil {
		return fmt.Errorf("camera layout: %w", err)
	}
	a.layout = layout

	a.uniform, err = bgp.NewUniform(r, layout, a.camera.Uniform(), 0, "Camera")
	if err != nil {
		return err
	}

	vertex, fragment, err := a.shaders()
	if err != nil {
		return err
	}
	vertexSrc, fragmentSrc, err := a.sources()
	if err != nil {
		return err
	}
	err = r.InitPipeline([]bgp.BindGroupLayout{layout}, vertex, fragment,
		renderer.WithShaderSources(vertexSrc, fragmentSrc))
	if err != nil {
		return err
	}

	a.logOverlayFont()
	return nil
}

func (a *demoApp) OnUpdate(ctx *engine.Context, dt time.Duration) {
	a.controller.Update(a.camera, dt)
	if err := a.uniform.Write(ctx.Renderer(), a.camera.Uniform()); err != nil {
		a.logger.Warn("camera upload failed", slog.Any("error", err))
	}
}

func (a *demoApp) OnDraw(ctx *engine.Context) {
	ctx.DrawFrame(a.uniform)
}

func (a *demoApp) OnInput(ev window.DeviceEvent) {
	a.controller.HandleInput(ev)
}

func (a *demoApp) OnResize(size window.Size) {
	a.camera.Resize(size)
}

func (a *demoApp) OnExit() {
	if a.uniform != nil {
		a.uniform.Release()
	}
	if a.layout != nil {
		a.layout.Release()
	}
	a.logger.Info("demo exited")
}

// logOverlayFont loads the overlay font so a broken embed shows up at startup.
func (a *demoApp) logOverlayFont() {
	face, err := assets.FontFace(overlayFontSize)
	if err != nil {
		a.logger.Warn("overlay font unavailable", slog.Any("error", err))
		return
	}
	defer face.Close()

	m := face.Metrics()
	a.logger.Info("overlay font loaded",
		slog.Int("size", overlayFontSize),
		slog.Int("height", m.Height.Ceil()),
		slog.Int("ascent", m.Ascent.Ceil()),
		slog.Int("descent", m.Descent.Ceil()),
	)
}
