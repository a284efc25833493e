package renderer

import (
	"log/slog"

	"github.com/Carmen-Shannon/alchemy/common"
	"github.com/Carmen-Shannon/alchemy/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/alchemy/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option applied to a renderer during construction.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithClearColor sets the color the render pass clears to. The default is DefaultClearColor.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(c wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = c
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe). Setting WGPU_FORCE_FALLBACK_ADAPTER=1 has the same effect.
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithPipelineOptions overrides the fixed-function state of the render pipeline built by InitPipeline.
//
// Parameters:
//   - opts: pipeline options applied over the defaults
//
// Returns:
//   - RendererBuilderOption: a function that applies the pipeline options to a renderer
func WithPipelineOptions(opts ...pipeline.PipelineBuilderOption) RendererBuilderOption {
	return func(r *renderer) {
		r.pipelineOptions = append(r.pipelineOptions, opts...)
	}
}

// WithLogger sets the logger used by the renderer. A nil logger keeps slog.Default().
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger to a renderer
func WithLogger(logger *slog.Logger) RendererBuilderOption {
	return func(r *renderer) {
		r.logger = common.Logger(logger)
	}
}

type pipelineInit struct {
	vertex, fragment []shader.ShaderBuilderOption
}

// PipelineInitOption is a functional option applied to the shaders built by InitPipeline.
type PipelineInitOption func(*pipelineInit)

// WithShaderSources attaches the WGSL each stage's bytecode was compiled from. The wgpu backend
// then creates the shader modules from source; the bytecode is still validated.
//
// Parameters:
//   - vertex: the vertex stage WGSL
//   - fragment: the fragment stage WGSL
//
// Returns:
//   - PipelineInitOption: a function that attaches the sources
func WithShaderSources(vertex, fragment string) PipelineInitOption {
	return func(p *pipelineInit) {
		p.vertex = append(p.vertex, shader.WithSource(vertex))
		p.fragment = append(p.fragment, shader.WithSource(fragment))
	}
}
