package shader

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spirvBlob(words ...uint32) []byte {
	out := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func TestNewShaderDecodesWords(t *testing.T) {
	blob := spirvBlob(SPIRVMagic, 0x00010000, 7)
	s, err := NewShader("triangle.vert", ShaderTypeVertex, blob)
	require.NoError(t, err)

	assert.Equal(t, "triangle.vert", s.Key())
	assert.Equal(t, ShaderTypeVertex, s.ShaderType())
	assert.Equal(t, "main", s.EntryPoint())
	assert.Equal(t, []uint32{SPIRVMagic, 0x00010000, 7}, s.Code())
	assert.Empty(t, s.Source())

	desc := s.Module()
	require.NotNil(t, desc.SPIRVDescriptor)
	assert.Nil(t, desc.WGSLDescriptor)
	assert.Equal(t, "triangle.vert", desc.Label)
	assert.Equal(t, blob, desc.SPIRVDescriptor.Code)
	assert.Equal(t, blob, s.Bytecode())
}

func TestNewShaderKeepsOwnBytecode(t *testing.T) {
	blob := spirvBlob(SPIRVMagic, 1)
	s, err := NewShader("vert", ShaderTypeVertex, blob)
	require.NoError(t, err)

	blob[4] = 0xff
	assert.Equal(t, spirvBlob(SPIRVMagic, 1), s.Module().SPIRVDescriptor.Code)
}

func TestNewShaderWithSourceUsesWGSL(t *testing.T) {
	const src = "@vertex fn main() -> @builtin(position) vec4<f32> { return vec4<f32>(); }"
	s, err := NewShader("vert", ShaderTypeVertex, spirvBlob(SPIRVMagic), WithSource(src))
	require.NoError(t, err)
	assert.Equal(t, src, s.Source())

	desc := s.Module()
	assert.Nil(t, desc.SPIRVDescriptor)
	require.NotNil(t, desc.WGSLDescriptor)
	assert.Equal(t, src, desc.WGSLDescriptor.Code)
}

func TestNewShaderEntryPoint(t *testing.T) {
	s, err := NewShader("frag", ShaderTypeFragment, spirvBlob(SPIRVMagic), WithEntryPoint("fs_main"))
	require.NoError(t, err)
	assert.Equal(t, "fs_main", s.EntryPoint())

	s, err = NewShader("frag", ShaderTypeFragment, spirvBlob(SPIRVMagic), WithEntryPoint(""))
	require.NoError(t, err)
	assert.Equal(t, "main", s.EntryPoint())
}

func TestNewShaderRejectsMalformedBytecode(t *testing.T) {
	cases := map[string][]byte{
		"empty":      nil,
		"misaligned": {0x03, 0x02, 0x23},
		"bad magic":  spirvBlob(0xdeadbeef, 1),
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewShader("bad", ShaderTypeVertex, blob)
			assert.ErrorIs(t, err, ErrInvalidBytecode)
		})
	}
}

func TestShaderTypeStage(t *testing.T) {
	assert.Equal(t, "vertex", ShaderTypeVertex.String())
	assert.Equal(t, "fragment", ShaderTypeFragment.String())
	assert.NotEqual(t, ShaderTypeVertex.Stage(), ShaderTypeFragment.Stage())
}
