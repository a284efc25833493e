package pipeline

import (
	"errors"

	"github.com/Carmen-Shannon/alchemy/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultDepthFormat is the depth attachment format used by render pipelines and the depth buffer.
const DefaultDepthFormat = wgpu.TextureFormatDepth32Float

// pipeline is the implementation of the Pipeline interface.
// It carries the fixed-function state and shader stages needed to create a render pipeline.
type pipeline struct {
	pipelineKey string

	vertexShader, fragmentShader shader.Shader

	depthFormat       wgpu.TextureFormat
	depthWriteEnabled bool
	depthCompare      wgpu.CompareFunction
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline defines the interface for a render pipeline description: a vertex + fragment shader
// pair plus the depth, cull, topology and blend state used when the GPU pipeline is created.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for GPU object labels.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader bound to the given stage.
	//
	// Parameters:
	//   - shaderType: the stage of the shader to retrieve
	//
	// Returns:
	//   - shader.Shader: the shader for the stage
	Shader(shaderType shader.ShaderType) shader.Shader

	// DepthFormat returns the depth attachment format the pipeline renders against.
	//
	// Returns:
	//   - wgpu.TextureFormat: the depth format
	DepthFormat() wgpu.TextureFormat

	// DepthWriteEnabled returns whether fragments write depth.
	//
	// Returns:
	//   - bool: true if depth writing is enabled
	DepthWriteEnabled() bool

	// DepthCompare returns the depth test function.
	//
	// Returns:
	//   - wgpu.CompareFunction: the comparison used for the depth test
	DepthCompare() wgpu.CompareFunction

	// CullMode returns the face culling mode.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding order treated as front facing.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask of the single color target.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the write mask
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state of the single color target.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state
	BlendState() *wgpu.BlendState

	// Descriptor assembles the wgpu render pipeline descriptor from the pipeline state and the
	// GPU objects created by the backend.
	//
	// Parameters:
	//   - layout: the pipeline layout built from the bind group layouts
	//   - vertex: the vertex shader module
	//   - fragment: the fragment shader module
	//   - colorFormat: the swapchain color format
	//
	// Returns:
	//   - *wgpu.RenderPipelineDescriptor: the descriptor ready for Device.CreateRenderPipeline
	Descriptor(layout *wgpu.PipelineLayout, vertex, fragment *wgpu.ShaderModule, colorFormat wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor
}

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithDepthWriteEnabled sets whether fragments write depth.
//
// Parameters:
//   - enabled: true to write depth
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth write state
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithDepthCompare sets the depth test function.
//
// Parameters:
//   - compare: the comparison used for the depth test
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth compare function
func WithDepthCompare(compare wgpu.CompareFunction) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthCompare = compare
	}
}

// WithCullMode sets the face culling mode.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - PipelineBuilderOption: a function that sets the cull mode
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets the primitive topology.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - PipelineBuilderOption: a function that sets the topology
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace sets the winding order treated as front facing.
//
// Parameters:
//   - face: the front face winding
//
// Returns:
//   - PipelineBuilderOption: a function that sets the front face
func WithFrontFace(face wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = face
	}
}

// WithBlendState sets the blend state of the color target. Passing nil disables blending.
//
// Parameters:
//   - state: the blend state
//
// Returns:
//   - PipelineBuilderOption: a function that sets the blend state
func WithBlendState(state *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendState = state
	}
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline description. Defaults: triangle list, counter-clockwise
// front faces, back-face culling, Depth32Float with a Less test and depth writes, replace blending
// and a full color write mask.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - vertex: the vertex shader
//   - fragment: the fragment shader
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: the configured pipeline description
//   - error: an error if a shader is missing or bound to the wrong stage
func NewPipeline(pipelineKey string, vertex, fragment shader.Shader, opts ...PipelineBuilderOption) (Pipeline, error) {
	if vertex == nil || fragment == nil {
		return nil, errors.New("both vertex and fragment shaders must be set to create a render pipeline")
	}
	if vertex.ShaderType() != shader.ShaderTypeVertex || fragment.ShaderType() != shader.ShaderTypeFragment {
		return nil, errors.New("render pipeline shaders are bound to the wrong stages")
	}

	blend := wgpu.BlendStateReplace
	p := &pipeline{
		pipelineKey:       pipelineKey,
		vertexShader:      vertex,
		fragmentShader:    fragment,
		depthFormat:       DefaultDepthFormat,
		depthWriteEnabled: true,
		depthCompare:      wgpu.CompareFunctionLess,
		cullMode:          wgpu.CullModeBack,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState:        &blend,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) DepthFormat() wgpu.TextureFormat {
	return p.depthFormat
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthCompare() wgpu.CompareFunction {
	return p.depthCompare
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) Descriptor(layout *wgpu.PipelineLayout, vertex, fragment *wgpu.ShaderModule, colorFormat wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor {
	return &wgpu.RenderPipelineDescriptor{
		Label:  p.pipelineKey + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vertex,
			EntryPoint: p.vertexShader.EntryPoint(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fragment,
			EntryPoint: p.fragmentShader.EntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    colorFormat,
					Blend:     p.blendState,
					WriteMask: p.writeMask,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            p.depthFormat,
			DepthWriteEnabled: p.depthWriteEnabled,
			DepthCompare:      p.depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	}
}
