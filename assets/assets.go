// Package assets embeds the demo's shader sources and overlay font.
package assets

import (
	"embed"
	"fmt"

	"github.com/Carmen-Shannon/alchemy/engine/renderer/shader"
	"github.com/gogpu/naga"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

// Shader source names, relative to the embedded shaders directory.
const (
	TriangleVertex   = "triangle.vert.wgsl"
	TriangleFragment = "triangle.frag.wgsl"
)

//go:embed shaders/*.wgsl
var shaderFS embed.FS

// WGSL returns the embedded source for a shader.
//
// Parameters:
//   - name: the source file name, e.g. TriangleVertex
//
// Returns:
//   - string: the WGSL source
//   - error: an error if no such source is embedded
func WGSL(name string) (string, error) {
	src, err := shaderFS.ReadFile("shaders/" + name)
	if err != nil {
		return "", fmt.Errorf("shader source %q: %w", name, err)
	}
	return string(src), nil
}

// CompileWGSL compiles an embedded WGSL source to SPIR-V bytecode and checks the result.
//
// Parameters:
//   - name: the source file name
//
// Returns:
//   - []byte: little-endian SPIR-V words
//   - error: an error if the source is missing or fails to compile
func CompileWGSL(name string) ([]byte, error) {
	src, err := WGSL(name)
	if err != nil {
		return nil, err
	}

	spirv, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile shader %q: %w", name, err)
	}
	if _, err := shader.DecodeSPIRV(spirv); err != nil {
		return nil, fmt.Errorf("compile shader %q: %w", name, err)
	}
	return spirv, nil
}

// Shaders returns the vertex and fragment bytecode for the demo triangle.
// Both stages use the entry point "main".
//
// Returns:
//   - vertex: the vertex stage SPIR-V
//   - fragment: the fragment stage SPIR-V
//   - err: the first compile error
func Shaders() (vertex, fragment []byte, err error) {
	if vertex, err = CompileWGSL(TriangleVertex); err != nil {
		return nil, nil, err
	}
	if fragment, err = CompileWGSL(TriangleFragment); err != nil {
		return nil, nil, err
	}
	return vertex, fragment, nil
}

// Sources returns the WGSL text of the demo triangle's two stages.
//
// Returns:
//   - vertex: the vertex stage WGSL
//   - fragment: the fragment stage WGSL
//   - err: an error if either source is missing
func Sources() (vertex, fragment string, err error) {
	if vertex, err = WGSL(TriangleVertex); err != nil {
		return "", "", err
	}
	if fragment, err = WGSL(TriangleFragment); err != nil {
		return "", "", err
	}
	return vertex, fragment, nil
}

// Font returns the embedded Go Mono TrueType data.
func Font() []byte {
	return gomono.TTF
}

// FontFace parses the embedded font into a face at the given point size and 72 DPI.
// The caller closes the face.
//
// Parameters:
//   - size: the font size in points
//
// Returns:
//   - font.Face: the face
//   - error: an error if size is not positive or the font cannot be parsed
func FontFace(size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size %v must be positive", size)
	}

	f, err := opentype.Parse(Font())
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}
