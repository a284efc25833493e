package renderer

import (
	"github.com/Carmen-Shannon/alchemy/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/alchemy/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing. This is the default.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// WGPU maps the present mode to its wgpu equivalent.
func (m PresentMode) WGPU() wgpu.PresentMode {
	if m == PresentModeUncapped {
		return wgpu.PresentModeImmediate
	}
	return wgpu.PresentModeFifo
}

// SwapchainDescriptor is the surface configuration applied on every resize.
type SwapchainDescriptor struct {
	Format      wgpu.TextureFormat
	Usage       wgpu.TextureUsage
	Width       uint32
	Height      uint32
	PresentMode wgpu.PresentMode
}

// DepthBuffer describes the depth texture matching the current swapchain.
type DepthBuffer struct {
	Width  uint32
	Height uint32
	Format wgpu.TextureFormat
}

// Texture is a backend-owned GPU texture together with its default view.
type Texture interface {
	Width() uint32
	Height() uint32
	Format() wgpu.TextureFormat
	Release()
}

// SurfaceTexture is the swapchain image acquired for a single frame.
type SurfaceTexture interface {
	Release()
}

// RenderPipeline is a backend-owned compiled render pipeline.
type RenderPipeline interface {
	Release()
}

// CommandBuffer is a finished, submittable list of GPU commands.
type CommandBuffer interface {
	Release()
}

// RenderPassDescriptor describes the single render pass recorded per frame.
type RenderPassDescriptor struct {
	Label           string
	Target          SurfaceTexture
	Depth           Texture
	ClearColor      wgpu.Color
	DepthClearValue float32
}

// RenderPass records draw state and draw calls for one pass.
type RenderPass interface {
	SetPipeline(p RenderPipeline)
	SetBindGroup(index uint32, bg bind_group_provider.BindGroup)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	End()
}

// CommandEncoder records passes into a CommandBuffer.
type CommandEncoder interface {
	BeginRenderPass(desc RenderPassDescriptor) (RenderPass, error)
	Finish() (CommandBuffer, error)
	Release()
}

// RendererBackend is the graphics API surface the Renderer drives. The production implementation
// wraps cogentcore/webgpu; renderertest.Backend records calls for GPU-free tests.
type RendererBackend interface {
	// SurfaceFormat reports the preferred color format of the presentation surface.
	//
	// Returns:
	//   - wgpu.TextureFormat: the first format reported by the surface capabilities
	SurfaceFormat() wgpu.TextureFormat

	// ConfigureSurface (re)configures the presentation surface. This is required whenever
	// the surface size changes.
	//
	// Parameters:
	//   - desc: the swapchain configuration to apply
	//
	// Returns:
	//   - error: an error if the surface could not be configured
	ConfigureSurface(desc SwapchainDescriptor) error

	// CreateDepthTexture allocates a render-attachment depth texture.
	//
	// Parameters:
	//   - label: the GPU object label
	//   - width: the texture width in pixels
	//   - height: the texture height in pixels
	//   - format: the depth format
	//
	// Returns:
	//   - Texture: the created texture
	//   - error: an error if allocation failed
	CreateDepthTexture(label string, width, height uint32, format wgpu.TextureFormat) (Texture, error)

	// CreateBindGroupLayout creates a bind group layout from a wgpu descriptor.
	//
	// Parameters:
	//   - desc: the layout descriptor
	//
	// Returns:
	//   - bind_group_provider.BindGroupLayout: the created layout
	//   - error: an error if creation failed
	CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (bind_group_provider.BindGroupLayout, error)

	// CreateBuffer allocates a GPU buffer.
	//
	// Parameters:
	//   - label: the GPU object label
	//   - size: the size in bytes
	//   - usage: the buffer usage flags
	//
	// Returns:
	//   - bind_group_provider.Buffer: the created buffer
	//   - error: an error if allocation failed
	CreateBuffer(label string, size uint64, usage wgpu.BufferUsage) (bind_group_provider.Buffer, error)

	// WriteBuffer enqueues a write of data at offset zero of buf.
	//
	// Parameters:
	//   - buf: a buffer created by this backend
	//   - data: the bytes to upload
	//
	// Returns:
	//   - error: an error if the write could not be enqueued
	WriteBuffer(buf bind_group_provider.Buffer, data []byte) error

	// CreateBindGroup creates a bind group exposing buf in full at binding.
	//
	// Parameters:
	//   - label: the GPU object label
	//   - layout: a layout created by this backend
	//   - binding: the binding slot within the group
	//   - buf: a buffer created by this backend
	//
	// Returns:
	//   - bind_group_provider.BindGroup: the created bind group
	//   - error: an error if creation failed
	CreateBindGroup(label string, layout bind_group_provider.BindGroupLayout, binding uint32, buf bind_group_provider.Buffer) (bind_group_provider.BindGroup, error)

	// CreateRenderPipeline compiles the shader modules and builds the GPU render pipeline.
	//
	// Parameters:
	//   - p: the pipeline description
	//   - layouts: the bind group layouts, in group index order
	//   - colorFormat: the swapchain color format
	//
	// Returns:
	//   - RenderPipeline: the created pipeline
	//   - error: an error if any GPU object could not be created
	CreateRenderPipeline(p pipeline.Pipeline, layouts []bind_group_provider.BindGroupLayout, colorFormat wgpu.TextureFormat) (RenderPipeline, error)

	// AcquireSurfaceTexture acquires the next swapchain image. Surface failures are returned as *FrameError.
	//
	// Returns:
	//   - SurfaceTexture: the acquired image
	//   - error: a *FrameError describing why no image was available
	AcquireSurfaceTexture() (SurfaceTexture, error)

	// BeginCommands opens a command encoder.
	//
	// Parameters:
	//   - label: the GPU object label
	//
	// Returns:
	//   - CommandEncoder: the encoder
	//   - error: an error if the encoder could not be created
	BeginCommands(label string) (CommandEncoder, error)

	// Submit submits a finished command buffer to the device queue.
	//
	// Parameters:
	//   - cmd: the command buffer to submit
	Submit(cmd CommandBuffer)

	// Present presents the most recently acquired surface texture.
	Present()

	// Release frees the surface, device, adapter and instance.
	Release()
}
