package renderer

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/alchemy/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/alchemy/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/alchemy/engine/renderer/shader"
	"github.com/Carmen-Shannon/alchemy/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultClearColor is the color the render pass clears to.
var DefaultClearColor = wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0}

// Renderer is the GPU device context. It owns the surface, device and queue (through its
// backend), the swapchain configuration, the depth buffer and the single render pipeline.
// A Renderer is not safe for concurrent use; it is driven from the event loop thread.
type Renderer interface {
	bind_group_provider.Device

	// Resize reconfigures the swapchain and recreates the depth buffer at size.
	// Calling it twice with the same size leaves the same observable state.
	//
	// Parameters:
	//   - size: the new framebuffer size in pixels
	//
	// Returns:
	//   - error: ErrInvalidSize (wrapped) for a zero dimension, leaving the previous configuration intact
	Resize(size window.Size) error

	// InitPipeline builds the render pipeline from SPIR-V bytecode. It must be called exactly once.
	//
	// Parameters:
	//   - layouts: the bind group layouts in group index order
	//   - vertex: the vertex shader SPIR-V bytes
	//   - fragment: the fragment shader SPIR-V bytes
	//   - options: variadic list of PipelineInitOption functions, e.g. WithShaderSources
	//
	// Returns:
	//   - error: ErrPipelineAlreadyInitialized, ErrInvalidShaderBytecode, or a backend error
	InitPipeline(layouts []bind_group_provider.BindGroupLayout, vertex, fragment []byte, options ...PipelineInitOption) error

	// Render draws and presents one frame. Each resource's bind group is bound at the group index
	// equal to its argument position.
	//
	// Parameters:
	//   - resources: the resource objects to bind for the draw
	//
	// Returns:
	//   - error: nil, ErrPipelineNotInitialized, a *FrameError, or another backend error
	Render(resources ...bind_group_provider.BindGroupProvider) error

	// CreateBindGroupLayout creates a layout with a single vertex-visible uniform buffer at binding 0.
	//
	// Parameters:
	//   - label: the GPU object label
	//   - size: the minimum binding size in bytes of the uniform
	//
	// Returns:
	//   - bind_group_provider.BindGroupLayout: the created layout
	//   - error: an error if the backend could not create the layout
	CreateBindGroupLayout(label string, size uint64) (bind_group_provider.BindGroupLayout, error)

	// Size returns the most recently accepted size.
	//
	// Returns:
	//   - window.Size: the current size
	Size() window.Size

	// SwapchainDescriptor returns the current surface configuration.
	//
	// Returns:
	//   - SwapchainDescriptor: the swapchain descriptor
	SwapchainDescriptor() SwapchainDescriptor

	// DepthBuffer returns the dimensions and format of the current depth buffer.
	//
	// Returns:
	//   - DepthBuffer: the depth buffer description
	DepthBuffer() DepthBuffer

	// Release frees the pipeline, depth buffer and backend.
	Release()
}

type renderer struct {
	backend RendererBackend
	logger  *slog.Logger

	size        window.Size
	swapchain   SwapchainDescriptor
	depth       Texture
	depthBuffer DepthBuffer
	pipeline    RenderPipeline

	presentMode          PresentMode
	clearColor           wgpu.Color
	forceFallbackAdapter bool
	pipelineOptions      []pipeline.PipelineBuilderOption
}

var _ Renderer = &renderer{}

func newRendererConfig(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		logger:      slog.Default(),
		presentMode: PresentModeVSync,
		clearColor:  DefaultClearColor,
	}
	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before a backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}
	return r
}

// NewRenderer creates a Renderer over an existing backend and configures the swapchain at size.
//
// Parameters:
//   - backend: the graphics backend to drive
//   - size: the initial framebuffer size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the device context
//   - error: an error if the initial swapchain or depth buffer could not be created
func NewRenderer(backend RendererBackend, size window.Size, options ...RendererBuilderOption) (Renderer, error) {
	r := newRendererConfig(options...)
	if err := r.init(backend, size); err != nil {
		return nil, err
	}
	return r, nil
}

// NewWGPURenderer negotiates an adapter and device for the surface described by surfaceDescriptor
// and returns a Renderer configured at size. Negotiation blocks until the device is available.
//
// Parameters:
//   - surfaceDescriptor: the platform-specific surface descriptor, typically Window.SurfaceDescriptor()
//   - size: the initial framebuffer size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the device context
//   - error: ErrAdapterNotFound or ErrDeviceRequestFailed (wrapped), or a configuration error
func NewWGPURenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, size window.Size, options ...RendererBuilderOption) (Renderer, error) {
	r := newRendererConfig(options...)
	backend, err := newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter, r.logger)
	if err != nil {
		return nil, err
	}
	if err := r.init(backend, size); err != nil {
		backend.Release()
		return nil, err
	}
	return r, nil
}

func (r *renderer) init(backend RendererBackend, size window.Size) error {
	r.backend = backend
	r.swapchain = SwapchainDescriptor{
		Format:      backend.SurfaceFormat(),
		Usage:       wgpu.TextureUsageRenderAttachment,
		PresentMode: r.presentMode.WGPU(),
	}
	if err := r.Resize(size); err != nil {
		return fmt.Errorf("configure initial surface: %w", err)
	}
	return nil
}

func (r *renderer) Resize(size window.Size) error {
	if size.IsZero() {
		return fmt.Errorf("resize to %s: %w", size, ErrInvalidSize)
	}

	// The surface is configured only once the matching depth buffer exists so a failure leaves
	// both attachments at the previous size.
	depth, err := r.backend.CreateDepthTexture("Depth Texture", size.Width, size.Height, pipeline.DefaultDepthFormat)
	if err != nil {
		return fmt.Errorf("create depth texture %s: %w", size, err)
	}

	desc := r.swapchain
	desc.Width = size.Width
	desc.Height = size.Height
	if err := r.backend.ConfigureSurface(desc); err != nil {
		depth.Release()
		return fmt.Errorf("configure surface %s: %w", size, err)
	}
	if r.depth != nil {
		r.depth.Release()
	}

	r.depth = depth
	r.depthBuffer = DepthBuffer{Width: depth.Width(), Height: depth.Height(), Format: depth.Format()}
	r.swapchain = desc
	r.size = size

	r.logger.Debug("swapchain configured",
		slog.Int("width", int(size.Width)),
		slog.Int("height", int(size.Height)),
	)
	return nil
}

func (r *renderer) InitPipeline(layouts []bind_group_provider.BindGroupLayout, vertex, fragment []byte, options ...PipelineInitOption) error {
	if r.pipeline != nil {
		return ErrPipelineAlreadyInitialized
	}

	var shaders pipelineInit
	for _, opt := range options {
		opt(&shaders)
	}

	vs, err := shader.NewShader("Vertex Shader", shader.ShaderTypeVertex, vertex, shaders.vertex...)
	if err != nil {
		return err
	}
	fs, err := shader.NewShader("Fragment Shader", shader.ShaderTypeFragment, fragment, shaders.fragment...)
	if err != nil {
		return err
	}
	p, err := pipeline.NewPipeline("Main", vs, fs, r.pipelineOptions...)
	if err != nil {
		return err
	}

	created, err := r.backend.CreateRenderPipeline(p, layouts, r.swapchain.Format)
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	r.pipeline = created

	r.logger.Info("render pipeline initialized", slog.Int("bind_groups", len(layouts)))
	return nil
}

func (r *renderer) Render(resources ...bind_group_provider.BindGroupProvider) error {
	if r.pipeline == nil {
		return ErrPipelineNotInitialized
	}
	for i, res := range resources {
		if res == nil || res.BindGroup() == nil {
			return fmt.Errorf("resource at group %d has no bind group", i)
		}
	}

	target, err := r.backend.AcquireSurfaceTexture()
	if err != nil {
		return ClassifySurfaceError(err)
	}
	if target == nil {
		return &FrameError{Kind: FrameOutdated}
	}
	defer target.Release()

	encoder, err := r.backend.BeginCommands("Render Encoder")
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass, err := encoder.BeginRenderPass(RenderPassDescriptor{
		Label:           "Render Pass",
		Target:          target,
		Depth:           r.depth,
		ClearColor:      r.clearColor,
		DepthClearValue: 1.0,
	})
	if err != nil {
		return fmt.Errorf("begin render pass: %w", err)
	}

	pass.SetPipeline(r.pipeline)
	for i, res := range resources {
		pass.SetBindGroup(uint32(i), res.BindGroup())
	}
	pass.Draw(3, 1, 0, 0)
	pass.End()

	cmd, err := encoder.Finish()
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}
	r.backend.Submit(cmd)
	cmd.Release()
	r.backend.Present()
	return nil
}

func (r *renderer) CreateBindGroupLayout(label string, size uint64) (bind_group_provider.BindGroupLayout, error) {
	return r.backend.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: false,
					MinBindingSize:   size,
				},
			},
		},
	})
}

func (r *renderer) CreateUniformBuffer(label string, size uint64) (bind_group_provider.Buffer, error) {
	return r.backend.CreateBuffer(label, size, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
}

func (r *renderer) CreateBindGroup(label string, layout bind_group_provider.BindGroupLayout, binding uint32, buf bind_group_provider.Buffer) (bind_group_provider.BindGroup, error) {
	return r.backend.CreateBindGroup(label, layout, binding, buf)
}

func (r *renderer) WriteBuffer(buf bind_group_provider.Buffer, data []byte) error {
	return r.backend.WriteBuffer(buf, data)
}

func (r *renderer) PipelineReady() bool {
	return r.pipeline != nil
}

func (r *renderer) Size() window.Size {
	return r.size
}

func (r *renderer) SwapchainDescriptor() SwapchainDescriptor {
	return r.swapchain
}

func (r *renderer) DepthBuffer() DepthBuffer {
	return r.depthBuffer
}

func (r *renderer) Release() {
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
	if r.depth != nil {
		r.depth.Release()
		r.depth = nil
	}
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}
