package shader

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic uint32 = 0x07230203

// ErrInvalidBytecode is returned when a blob is not a well-formed SPIR-V module header.
var ErrInvalidBytecode = errors.New("invalid shader bytecode")

// ShaderType identifies the pipeline stage a shader module is compiled for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage of a render pipeline.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage, used in pair with a vertex shader.
	ShaderTypeFragment
)

// String returns the lower-case stage name.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

// Stage returns the wgpu shader stage flag matching the shader type.
func (t ShaderType) Stage() wgpu.ShaderStage {
	if t == ShaderTypeFragment {
		return wgpu.ShaderStageFragment
	}
	return wgpu.ShaderStageVertex
}

type shader struct {
	key        string
	shaderType ShaderType
	entryPoint string
	code       []uint32
	bytecode   []byte
	source     string
}

// Shader defines the interface for a pre-built SPIR-V shader module ready for pipeline creation.
// Shaders are produced by an asset step ahead of time; this package never compiles source.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used as the GPU object label.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// ShaderType retrieves the pipeline stage of the shader.
	//
	// Returns:
	//   - ShaderType: the stage this module was compiled for
	ShaderType() ShaderType

	// EntryPoint retrieves the name of the entry point function used by the pipeline.
	//
	// Returns:
	//   - string: the entry point name
	EntryPoint() string

	// Code retrieves the SPIR-V words of the module.
	//
	// Returns:
	//   - []uint32: the module as little-endian decoded 32-bit words
	Code() []uint32

	// Bytecode retrieves the validated SPIR-V module as little-endian bytes.
	//
	// Returns:
	//   - []byte: the module bytes
	Bytecode() []byte

	// Source retrieves the WGSL text the module was compiled from, if one was attached.
	//
	// Returns:
	//   - string: the WGSL source, empty when none was attached
	Source() string

	// Module builds the wgpu descriptor for creating the GPU shader module.
	// A shader with attached WGSL source is handed to the driver as WGSL; otherwise as SPIR-V.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the module descriptor
	Module() *wgpu.ShaderModuleDescriptor
}

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithEntryPoint overrides the entry point name. The default is "main".
//
// Parameters:
//   - name: the entry point function name
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point of the shader
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		if name != "" {
			s.entryPoint = name
		}
	}
}

// WithSource attaches the WGSL text the bytecode was compiled from.
// The SPIR-V descriptor of webgpu v0.23.0 reports the code size in bytes where wgpu-native
// expects words, so a shader carrying source is created from the WGSL instead.
//
// Parameters:
//   - wgsl: the WGSL source
//
// Returns:
//   - ShaderBuilderOption: a function that sets the source of the shader
func WithSource(wgsl string) ShaderBuilderOption {
	return func(s *shader) {
		s.source = wgsl
	}
}

var _ Shader = &shader{}

// NewShader validates a SPIR-V blob and wraps it as a Shader.
// The blob must be non-empty, a multiple of four bytes long and start with SPIRVMagic.
//
// Parameters:
//   - key: the unique key of the shader
//   - shaderType: the stage the blob was compiled for
//   - bytecode: the raw SPIR-V bytes
//   - opts: a variadic list of ShaderBuilderOption functions
//
// Returns:
//   - Shader: the validated shader
//   - error: an error wrapping ErrInvalidBytecode if the blob is malformed
func NewShader(key string, shaderType ShaderType, bytecode []byte, opts ...ShaderBuilderOption) (Shader, error) {
	code, err := DecodeSPIRV(bytecode)
	if err != nil {
		return nil, fmt.Errorf("%s shader %q: %w", shaderType, key, err)
	}

	s := &shader{
		key:        key,
		shaderType: shaderType,
		entryPoint: "main",
		code:       code,
		bytecode:   append([]byte(nil), bytecode...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DecodeSPIRV converts a little-endian SPIR-V byte blob into words after checking its header.
//
// Parameters:
//   - bytecode: the raw SPIR-V bytes
//
// Returns:
//   - []uint32: the decoded words
//   - error: ErrInvalidBytecode (wrapped) when the blob is empty, misaligned or lacks the magic number
func DecodeSPIRV(bytecode []byte) ([]uint32, error) {
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("%w: empty module", ErrInvalidBytecode)
	}
	if len(bytecode)%4 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of 4", ErrInvalidBytecode, len(bytecode))
	}

	words := make([]uint32, len(bytecode)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(bytecode[i*4:])
	}
	if words[0] != SPIRVMagic {
		return nil, fmt.Errorf("%w: bad magic 0x%08x", ErrInvalidBytecode, words[0])
	}
	return words, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Code() []uint32 {
	return s.code
}

func (s *shader) Bytecode() []byte {
	return s.bytecode
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	if s.source != "" {
		return &wgpu.ShaderModuleDescriptor{
			Label: s.key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: s.source,
			},
		}
	}
	return &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		SPIRVDescriptor: &wgpu.ShaderModuleSPIRVDescriptor{
			Code: s.bytecode,
		},
	}
}
