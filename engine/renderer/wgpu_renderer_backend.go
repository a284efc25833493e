package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"unsafe"

	"github.com/Carmen-Shannon/alchemy/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/alchemy/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/alchemy/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// SetWGPULogLevel maps a level name (OFF, ERROR, WARN, INFO, DEBUG, TRACE) onto the native wgpu
// logger. Unknown names are ignored.
func SetWGPULogLevel(level string) {
	switch strings.ToUpper(level) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

type wgpuRendererBackendImpl struct {
	logger *slog.Logger

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat wgpu.TextureFormat
	acquires      acquireStreak
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, logger *slog.Logger) (b *wgpuRendererBackendImpl, err error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("nil surface descriptor")
	}
	runtime.LockOSThread()
	SetWGPULogLevel(os.Getenv("WGPU_LOG_LEVEL"))
	if os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1" {
		forceFallbackAdapter = true
	}

	b = &wgpuRendererBackendImpl{
		logger:   logger,
		instance: wgpu.CreateInstance(nil),
	}
	defer func() {
		if err != nil {
			b.Release()
			b = nil
		}
	}()

	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	b.adapter, err = b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return b, fmt.Errorf("%w: %v", ErrAdapterNotFound, err)
	}
	if b.adapter == nil {
		return b, ErrAdapterNotFound
	}

	b.device, err = b.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return b, fmt.Errorf("%w: %v", ErrDeviceRequestFailed, err)
	}
	b.queue = b.device.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		return b, errors.New("surface reports no supported formats")
	}
	b.surfaceFormat = capabilities.Formats[0]

	logger.Info("graphics device ready",
		slog.Bool("fallback_adapter", forceFallbackAdapter),
		slog.Any("surface_format", b.surfaceFormat),
	)
	return b, nil
}

func (b *wgpuRendererBackendImpl) SurfaceFormat() wgpu.TextureFormat {
	return b.surfaceFormat
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(desc SwapchainDescriptor) error {
	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.AlphaModes) == 0 {
		return errors.New("surface reports no supported alpha modes")
	}
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       desc.Usage,
		Format:      desc.Format,
		Width:       desc.Width,
		Height:      desc.Height,
		PresentMode: desc.PresentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	return nil
}

func (b *wgpuRendererBackendImpl) CreateDepthTexture(label string, width, height uint32, format wgpu.TextureFormat) (Texture, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create depth texture: %w", err)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("failed to create depth texture view: %w", err)
	}
	return &wgpuTexture{texture: tex, view: view, width: width, height: height, format: format}, nil
}

func (b *wgpuRendererBackendImpl) CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (bind_group_provider.BindGroupLayout, error) {
	layout, err := b.device.CreateBindGroupLayout(desc)
	if err != nil {
		return nil, fmt.Errorf("failed to create bind group layout %q: %w", desc.Label, err)
	}
	return &wgpuBindGroupLayout{label: desc.Label, layout: layout}, nil
}

func (b *wgpuRendererBackendImpl) CreateBuffer(label string, size uint64, usage wgpu.BufferUsage) (bind_group_provider.Buffer, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, err
	}
	return &wgpuBuffer{buffer: buf, size: size}, nil
}

func (b *wgpuRendererBackendImpl) WriteBuffer(buf bind_group_provider.Buffer, data []byte) error {
	wb, ok := buf.(*wgpuBuffer)
	if !ok || wb.buffer == nil {
		return errors.New("buffer was not created by the wgpu backend")
	}
	if uint64(len(data)) > wb.size {
		return fmt.Errorf("write of %d bytes overflows %d byte buffer", len(data), wb.size)
	}
	return b.queue.WriteBuffer(wb.buffer, 0, data)
}

func (b *wgpuRendererBackendImpl) CreateBindGroup(label string, layout bind_group_provider.BindGroupLayout, binding uint32, buf bind_group_provider.Buffer) (bind_group_provider.BindGroup, error) {
	wl, ok := layout.(*wgpuBindGroupLayout)
	if !ok || wl.layout == nil {
		return nil, errors.New("layout was not created by the wgpu backend")
	}
	wb, ok := buf.(*wgpuBuffer)
	if !ok || wb.buffer == nil {
		return nil, errors.New("buffer was not created by the wgpu backend")
	}

	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: wl.layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: binding,
				Buffer:  wb.buffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return nil, err
	}
	return &wgpuBindGroup{bindGroup: bg}, nil
}

func (b *wgpuRendererBackendImpl) CreateRenderPipeline(p pipeline.Pipeline, layouts []bind_group_provider.BindGroupLayout, colorFormat wgpu.TextureFormat) (RenderPipeline, error) {
	created := &wgpuRenderPipeline{}
	ok := false
	defer func() {
		if !ok {
			created.Release()
		}
	}()

	var err error
	created.vertex, err = b.device.CreateShaderModule(p.Shader(shader.ShaderTypeVertex).Module())
	if err != nil {
		return nil, fmt.Errorf("vertex shader module: %w", err)
	}
	created.fragment, err = b.device.CreateShaderModule(p.Shader(shader.ShaderTypeFragment).Module())
	if err != nil {
		return nil, fmt.Errorf("fragment shader module: %w", err)
	}

	bindGroupLayouts := make([]*wgpu.BindGroupLayout, len(layouts))
	for i, l := range layouts {
		wl, isWGPU := l.(*wgpuBindGroupLayout)
		if !isWGPU || wl.layout == nil {
			return nil, fmt.Errorf("bind group layout %d was not created by the wgpu backend", i)
		}
		bindGroupLayouts[i] = wl.layout
	}

	created.layout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey() + " Pipeline Layout",
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return nil, err
	}

	created.pipeline, err = b.device.CreateRenderPipeline(p.Descriptor(created.layout, created.vertex, created.fragment, colorFormat))
	if err != nil {
		return nil, err
	}

	ok = true
	return created, nil
}

func (b *wgpuRendererBackendImpl) AcquireSurfaceTexture() (SurfaceTexture, error) {
	tex, err := b.surface.GetCurrentTexture()
	if err != nil {
		return nil, ClassifySurfaceError(err)
	}
	if nullSurfaceTexture(tex) {
		return nil, b.acquires.miss()
	}
	b.acquires.hit()

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	return &wgpuSurfaceTexture{texture: tex, view: view}, nil
}

// wgpuTextureHandle mirrors the field layout of wgpu.Texture in webgpu v0.23.0.
type wgpuTextureHandle struct {
	device  unsafe.Pointer
	texture unsafe.Pointer
}

// nullSurfaceTexture reports whether GetCurrentTexture handed back no native texture.
// webgpu v0.23.0 drops the acquisition status, so a timed out, outdated or lost surface shows
// up only as a wrapper around a NULL handle.
func nullSurfaceTexture(tex *wgpu.Texture) bool {
	return tex == nil || (*wgpuTextureHandle)(unsafe.Pointer(tex)).texture == nil
}

func (b *wgpuRendererBackendImpl) BeginCommands(label string) (CommandEncoder, error) {
	encoder, err := b.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: label,
	})
	if err != nil {
		return nil, err
	}
	return &wgpuCommandEncoder{encoder: encoder}, nil
}

func (b *wgpuRendererBackendImpl) Submit(cmd CommandBuffer) {
	if wc, ok := cmd.(*wgpuCommandBuffer); ok && wc.buffer != nil {
		b.queue.Submit(wc.buffer)
	}
}

func (b *wgpuRendererBackendImpl) Present() {
	b.surface.Present()
}

func (b *wgpuRendererBackendImpl) Release() {
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

type wgpuBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
}

func (b *wgpuBuffer) Size() uint64 {
	return b.size
}

func (b *wgpuBuffer) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}

type wgpuBindGroup struct {
	bindGroup *wgpu.BindGroup
}

func (g *wgpuBindGroup) Release() {
	if g.bindGroup != nil {
		g.bindGroup.Release()
		g.bindGroup = nil
	}
}

type wgpuBindGroupLayout struct {
	label  string
	layout *wgpu.BindGroupLayout
}

func (l *wgpuBindGroupLayout) Label() string {
	return l.label
}

func (l *wgpuBindGroupLayout) Release() {
	if l.layout != nil {
		l.layout.Release()
		l.layout = nil
	}
}

type wgpuTexture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	width   uint32
	height  uint32
	format  wgpu.TextureFormat
}

func (t *wgpuTexture) Width() uint32              { return t.width }
func (t *wgpuTexture) Height() uint32             { return t.height }
func (t *wgpuTexture) Format() wgpu.TextureFormat { return t.format }

func (t *wgpuTexture) Release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

type wgpuSurfaceTexture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

func (t *wgpuSurfaceTexture) Release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

type wgpuRenderPipeline struct {
	pipeline *wgpu.RenderPipeline
	layout   *wgpu.PipelineLayout
	vertex   *wgpu.ShaderModule
	fragment *wgpu.ShaderModule
}

func (p *wgpuRenderPipeline) Release() {
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
	if p.vertex != nil {
		p.vertex.Release()
		p.vertex = nil
	}
	if p.fragment != nil {
		p.fragment.Release()
		p.fragment = nil
	}
}

type wgpuCommandBuffer struct {
	buffer *wgpu.CommandBuffer
}

func (c *wgpuCommandBuffer) Release() {
	if c.buffer != nil {
		c.buffer.Release()
		c.buffer = nil
	}
}

type wgpuCommandEncoder struct {
	encoder *wgpu.CommandEncoder
}

func (e *wgpuCommandEncoder) BeginRenderPass(desc RenderPassDescriptor) (RenderPass, error) {
	target, ok := desc.Target.(*wgpuSurfaceTexture)
	if !ok || target.view == nil {
		return nil, errors.New("render target was not acquired from the wgpu backend")
	}

	passDesc := &wgpu.RenderPassDescriptor{
		Label: desc.Label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target.view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: desc.ClearColor,
			},
		},
	}
	if depth, ok := desc.Depth.(*wgpuTexture); ok && depth.view != nil {
		passDesc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            depth.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: desc.DepthClearValue,
		}
	}

	return &wgpuRenderPass{pass: e.encoder.BeginRenderPass(passDesc)}, nil
}

func (e *wgpuCommandEncoder) Finish() (CommandBuffer, error) {
	buf, err := e.encoder.Finish(nil)
	if err != nil {
		return nil, err
	}
	return &wgpuCommandBuffer{buffer: buf}, nil
}

func (e *wgpuCommandEncoder) Release() {
	if e.encoder != nil {
		e.encoder.Release()
		e.encoder = nil
	}
}

type wgpuRenderPass struct {
	pass *wgpu.RenderPassEncoder
}

func (p *wgpuRenderPass) SetPipeline(rp RenderPipeline) {
	if wp, ok := rp.(*wgpuRenderPipeline); ok && wp.pipeline != nil {
		p.pass.SetPipeline(wp.pipeline)
	}
}

func (p *wgpuRenderPass) SetBindGroup(index uint32, bg bind_group_provider.BindGroup) {
	if wg, ok := bg.(*wgpuBindGroup); ok && wg.bindGroup != nil {
		p.pass.SetBindGroup(index, wg.bindGroup, nil)
	}
}

func (p *wgpuRenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.pass.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *wgpuRenderPass) End() {
	p.pass.End()
	p.pass.Release()
}
