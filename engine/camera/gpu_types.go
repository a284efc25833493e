package camera

import "unsafe"

// CameraUniform is the GPU-aligned representation of the camera uniform buffer.
// It matches the WGSL struct bound at group 0, binding 0:
//
//	struct Camera { view_proj: mat4x4<f32> }
//
// Size: 64 bytes.
type CameraUniform struct {
	ViewProj [16]float32 // offset 0: combined view-projection matrix (mat4x4<f32>)
}

// CameraUniformSize is the byte size of CameraUniform, used as the bind group layout's minimum binding size.
const CameraUniformSize = uint64(unsafe.Sizeof(CameraUniform{}))
