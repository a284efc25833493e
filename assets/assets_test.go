package assets

import (
	"testing"

	"github.com/Carmen-Shannon/alchemy/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWGSLSources(t *testing.T) {
	vert, err := WGSL(TriangleVertex)
	require.NoError(t, err)
	assert.Contains(t, vert, "@vertex")
	assert.Contains(t, vert, "@group(0) @binding(0)")

	frag, err := WGSL(TriangleFragment)
	require.NoError(t, err)
	assert.Contains(t, frag, "@fragment")

	_, err = WGSL("missing.wgsl")
	assert.Error(t, err)
}

func TestSourcesMatchEmbeddedFiles(t *testing.T) {
	vertex, fragment, err := Sources()
	require.NoError(t, err)

	want, err := WGSL(TriangleVertex)
	require.NoError(t, err)
	assert.Equal(t, want, vertex)
	assert.Contains(t, fragment, "@fragment")
}

func TestShadersCompileToSPIRV(t *testing.T) {
	vertex, fragment, err := Shaders()
	require.NoError(t, err)

	for _, code := range [][]byte{vertex, fragment} {
		words, err := shader.DecodeSPIRV(code)
		require.NoError(t, err)
		assert.Equal(t, shader.SPIRVMagic, words[0])
	}

	vs, err := shader.NewShader("Vertex Shader", shader.ShaderTypeVertex, vertex)
	require.NoError(t, err)
	assert.Equal(t, "main", vs.EntryPoint())
}

func TestFontFace(t *testing.T) {
	assert.NotEmpty(t, Font())

	face, err := FontFace(14)
	require.NoError(t, err)
	defer face.Close()

	m := face.Metrics()
	assert.Greater(t, m.Height.Ceil(), 0)
	assert.Greater(t, m.Ascent.Ceil(), 0)

	// monospace: every glyph has the same advance
	a, ok := face.GlyphAdvance('i')
	require.True(t, ok)
	b, ok := face.GlyphAdvance('W')
	require.True(t, ok)
	assert.Equal(t, a, b)

	_, err = FontFace(0)
	assert.Error(t, err)
}
