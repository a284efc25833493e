// Package renderertest provides an in-memory renderer.RendererBackend that records every call,
// for exercising the renderer, the engine and apps without a GPU.
package renderertest

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/alchemy/engine/renderer"
	"github.com/Carmen-Shannon/alchemy/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/alchemy/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Buffer is a recorded GPU buffer with its current contents.
type Buffer struct {
	Label    string
	Usage    wgpu.BufferUsage
	Data     []byte
	Writes   int
	Released bool
}

func (b *Buffer) Size() uint64 { return uint64(len(b.Data)) }
func (b *Buffer) Release()     { b.Released = true }

// BindGroupLayout is a recorded layout.
type BindGroupLayout struct {
	Desc     wgpu.BindGroupLayoutDescriptor
	Released bool
}

func (l *BindGroupLayout) Label() string { return l.Desc.Label }
func (l *BindGroupLayout) Release()      { l.Released = true }

// BindGroup is a recorded bind group.
type BindGroup struct {
	Label    string
	Layout   bind_group_provider.BindGroupLayout
	Binding  uint32
	Buffer   *Buffer
	Released bool
}

func (g *BindGroup) Release() { g.Released = true }

// Texture is a recorded depth texture.
type Texture struct {
	Label    string
	W, H     uint32
	Fmt      wgpu.TextureFormat
	Released bool
}

func (t *Texture) Width() uint32              { return t.W }
func (t *Texture) Height() uint32             { return t.H }
func (t *Texture) Format() wgpu.TextureFormat { return t.Fmt }
func (t *Texture) Release()                   { t.Released = true }

// SurfaceTexture is an acquired swapchain image.
type SurfaceTexture struct {
	Frame    int
	Released bool
}

func (t *SurfaceTexture) Release() { t.Released = true }

// RenderPipeline is a recorded pipeline creation.
type RenderPipeline struct {
	Pipeline    pipeline.Pipeline
	Layouts     []bind_group_provider.BindGroupLayout
	ColorFormat wgpu.TextureFormat
	Released    bool
}

func (p *RenderPipeline) Release() { p.Released = true }

// Draw is one recorded draw call.
type Draw struct {
	VertexCount, InstanceCount, FirstVertex, FirstInstance uint32
}

// RenderPass is a recorded render pass.
type RenderPass struct {
	Desc       renderer.RenderPassDescriptor
	Pipeline   renderer.RenderPipeline
	BindGroups map[uint32]bind_group_provider.BindGroup
	Draws      []Draw
	Ended      bool
}

func (p *RenderPass) SetPipeline(rp renderer.RenderPipeline) { p.Pipeline = rp }

func (p *RenderPass) SetBindGroup(index uint32, bg bind_group_provider.BindGroup) {
	p.BindGroups[index] = bg
}

func (p *RenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.Draws = append(p.Draws, Draw{vertexCount, instanceCount, firstVertex, firstInstance})
}

func (p *RenderPass) End() { p.Ended = true }

// CommandBuffer is a finished encoder.
type CommandBuffer struct {
	Passes   []*RenderPass
	Released bool
}

func (c *CommandBuffer) Release() { c.Released = true }

type commandEncoder struct {
	passes []*RenderPass
}

func (e *commandEncoder) BeginRenderPass(desc renderer.RenderPassDescriptor) (renderer.RenderPass, error) {
	pass := &RenderPass{Desc: desc, BindGroups: map[uint32]bind_group_provider.BindGroup{}}
	e.passes = append(e.passes, pass)
	return pass, nil
}

func (e *commandEncoder) Finish() (renderer.CommandBuffer, error) {
	return &CommandBuffer{Passes: e.passes}, nil
}

func (e *commandEncoder) Release() {}

// Backend records calls made by a Renderer. Fields ending in Err make the matching call fail.
type Backend struct {
	Format wgpu.TextureFormat

	Configured    []renderer.SwapchainDescriptor
	DepthTextures []*Texture
	Layouts       []*BindGroupLayout
	Buffers       []*Buffer
	BindGroups    []*BindGroup
	Pipelines     []*RenderPipeline
	Acquired      []*SurfaceTexture
	Submitted     []*CommandBuffer
	Presented     int
	Released      bool

	// Calls lists call names in order: configure, depth, acquire, submit, present.
	Calls []string

	// AcquireErrors are returned by successive AcquireSurfaceTexture calls; a nil entry or an
	// exhausted queue acquires successfully.
	AcquireErrors []error

	ConfigureErr error
	DepthErr     error
	BufferErr    error
	PipelineErr  error
}

var _ renderer.RendererBackend = &Backend{}

// NewBackend returns a Backend reporting a BGRA8UnormSrgb surface.
func NewBackend() *Backend {
	return &Backend{Format: wgpu.TextureFormatBGRA8UnormSrgb}
}

// FailNextAcquire queues errors for the following AcquireSurfaceTexture calls.
func (b *Backend) FailNextAcquire(errs ...error) {
	b.AcquireErrors = append(b.AcquireErrors, errs...)
}

// LastConfigured returns the most recent surface configuration.
func (b *Backend) LastConfigured() renderer.SwapchainDescriptor {
	if len(b.Configured) == 0 {
		return renderer.SwapchainDescriptor{}
	}
	return b.Configured[len(b.Configured)-1]
}

// LastPass returns the render pass of the most recent submission.
func (b *Backend) LastPass() *RenderPass {
	if len(b.Submitted) == 0 {
		return nil
	}
	passes := b.Submitted[len(b.Submitted)-1].Passes
	if len(passes) == 0 {
		return nil
	}
	return passes[len(passes)-1]
}

func (b *Backend) SurfaceFormat() wgpu.TextureFormat {
	return b.Format
}

func (b *Backend) ConfigureSurface(desc renderer.SwapchainDescriptor) error {
	if b.ConfigureErr != nil {
		return b.ConfigureErr
	}
	b.Configured = append(b.Configured, desc)
	b.Calls = append(b.Calls, fmt.Sprintf("configure %dx%d", desc.Width, desc.Height))
	return nil
}

func (b *Backend) CreateDepthTexture(label string, width, height uint32, format wgpu.TextureFormat) (renderer.Texture, error) {
	if b.DepthErr != nil {
		return nil, b.DepthErr
	}
	t := &Texture{Label: label, W: width, H: height, Fmt: format}
	b.DepthTextures = append(b.DepthTextures, t)
	b.Calls = append(b.Calls, fmt.Sprintf("depth %dx%d", width, height))
	return t, nil
}

func (b *Backend) CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (bind_group_provider.BindGroupLayout, error) {
	l := &BindGroupLayout{Desc: *desc}
	b.Layouts = append(b.Layouts, l)
	return l, nil
}

func (b *Backend) CreateBuffer(label string, size uint64, usage wgpu.BufferUsage) (bind_group_provider.Buffer, error) {
	if b.BufferErr != nil {
		return nil, b.BufferErr
	}
	buf := &Buffer{Label: label, Usage: usage, Data: make([]byte, size)}
	b.Buffers = append(b.Buffers, buf)
	return buf, nil
}

func (b *Backend) WriteBuffer(buf bind_group_provider.Buffer, data []byte) error {
	mb, ok := buf.(*Buffer)
	if !ok {
		return errors.New("foreign buffer")
	}
	if len(data) > len(mb.Data) {
		return fmt.Errorf("write of %d bytes overflows %d byte buffer", len(data), len(mb.Data))
	}
	copy(mb.Data, data)
	mb.Writes++
	return nil
}

func (b *Backend) CreateBindGroup(label string, layout bind_group_provider.BindGroupLayout, binding uint32, buf bind_group_provider.Buffer) (bind_group_provider.BindGroup, error) {
	mb, ok := buf.(*Buffer)
	if !ok {
		return nil, errors.New("foreign buffer")
	}
	g := &BindGroup{Label: label, Layout: layout, Binding: binding, Buffer: mb}
	b.BindGroups = append(b.BindGroups, g)
	return g, nil
}

func (b *Backend) CreateRenderPipeline(p pipeline.Pipeline, layouts []bind_group_provider.BindGroupLayout, colorFormat wgpu.TextureFormat) (renderer.RenderPipeline, error) {
	if b.PipelineErr != nil {
		return nil, b.PipelineErr
	}
	rp := &RenderPipeline{Pipeline: p, Layouts: layouts, ColorFormat: colorFormat}
	b.Pipelines = append(b.Pipelines, rp)
	return rp, nil
}

func (b *Backend) AcquireSurfaceTexture() (renderer.SurfaceTexture, error) {
	b.Calls = append(b.Calls, "acquire")
	if len(b.AcquireErrors) > 0 {
		err := b.AcquireErrors[0]
		b.AcquireErrors = b.AcquireErrors[1:]
		if err != nil {
			return nil, renderer.ClassifySurfaceError(err)
		}
	}
	t := &SurfaceTexture{Frame: len(b.Acquired)}
	b.Acquired = append(b.Acquired, t)
	return t, nil
}

func (b *Backend) BeginCommands(string) (renderer.CommandEncoder, error) {
	return &commandEncoder{}, nil
}

func (b *Backend) Submit(cmd renderer.CommandBuffer) {
	b.Calls = append(b.Calls, "submit")
	if cb, ok := cmd.(*CommandBuffer); ok {
		b.Submitted = append(b.Submitted, cb)
	}
}

func (b *Backend) Present() {
	b.Calls = append(b.Calls, "present")
	b.Presented++
}

func (b *Backend) Release() {
	b.Released = true
}
