package pipeline

import (
	"encoding/binary"
	"testing"

	"github.com/Carmen-Shannon/alchemy/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShader(t *testing.T, key string, shaderType shader.ShaderType) shader.Shader {
	t.Helper()
	blob := make([]byte, 8)
	binary.LittleEndian.PutUint32(blob, shader.SPIRVMagic)
	s, err := shader.NewShader(key, shaderType, blob)
	require.NoError(t, err)
	return s
}

func TestNewPipelineDefaults(t *testing.T) {
	vs := testShader(t, "vs", shader.ShaderTypeVertex)
	fs := testShader(t, "fs", shader.ShaderTypeFragment)

	p, err := NewPipeline("main", vs, fs)
	require.NoError(t, err)

	assert.Equal(t, "main", p.PipelineKey())
	assert.Same(t, vs, p.Shader(shader.ShaderTypeVertex))
	assert.Same(t, fs, p.Shader(shader.ShaderTypeFragment))
	assert.Equal(t, wgpu.TextureFormatDepth32Float, p.DepthFormat())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CompareFunctionLess, p.DepthCompare())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	require.NotNil(t, p.BlendState())
	assert.Equal(t, wgpu.BlendStateReplace, *p.BlendState())
}

func TestNewPipelineOptions(t *testing.T) {
	p, err := NewPipeline("wire",
		testShader(t, "vs", shader.ShaderTypeVertex),
		testShader(t, "fs", shader.ShaderTypeFragment),
		WithCullMode(wgpu.CullModeNone),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithDepthCompare(wgpu.CompareFunctionLessEqual),
		WithDepthWriteEnabled(false),
		WithBlendState(nil),
	)
	require.NoError(t, err)

	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, wgpu.CompareFunctionLessEqual, p.DepthCompare())
	assert.False(t, p.DepthWriteEnabled())
	assert.Nil(t, p.BlendState())
}

func TestNewPipelineRequiresStages(t *testing.T) {
	vs := testShader(t, "vs", shader.ShaderTypeVertex)
	fs := testShader(t, "fs", shader.ShaderTypeFragment)

	_, err := NewPipeline("missing", vs, nil)
	assert.Error(t, err)

	_, err = NewPipeline("swapped", fs, vs)
	assert.Error(t, err)
}

func TestDescriptor(t *testing.T) {
	vs := testShader(t, "vs", shader.ShaderTypeVertex)
	fs, err := shader.NewShader("fs", shader.ShaderTypeFragment, func() []byte {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, shader.SPIRVMagic)
		return b
	}(), shader.WithEntryPoint("fs_main"))
	require.NoError(t, err)

	p, err := NewPipeline("main", vs, fs)
	require.NoError(t, err)

	desc := p.Descriptor(nil, nil, nil, wgpu.TextureFormatBGRA8UnormSrgb)
	assert.Equal(t, "main Render Pipeline", desc.Label)
	assert.Equal(t, "main", desc.Vertex.EntryPoint)
	require.NotNil(t, desc.Fragment)
	assert.Equal(t, "fs_main", desc.Fragment.EntryPoint)
	require.Len(t, desc.Fragment.Targets, 1)
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, desc.Fragment.Targets[0].Format)
	require.NotNil(t, desc.DepthStencil)
	assert.Equal(t, wgpu.TextureFormatDepth32Float, desc.DepthStencil.Format)
	assert.Equal(t, wgpu.CompareFunctionLess, desc.DepthStencil.DepthCompare)
	assert.Equal(t, uint32(1), desc.Multisample.Count)
}
