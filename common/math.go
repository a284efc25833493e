package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// StructToBytes reinterprets a pointer to a value as a raw byte slice using unsafe.
// The returned slice has length equal to the value's size in memory and shares its memory.
//
// Parameters:
//   - v: pointer to the value to reinterpret
//
// Returns:
//   - []byte: byte slice view of the value's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	if size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a right-handed perspective projection matrix mapping depth to
// the WebGPU clip space range [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
func LookAt(out []float32, eye, center, up [3]float32) {
	z := normalize([3]float32{eye[0] - center[0], eye[1] - center[1], eye[2] - center[2]})
	x := normalize(cross(up, z))
	y := cross(z, x)

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -dot(x, eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -dot(y, eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -dot(z, eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// Clamp restricts v to the closed range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// normalize returns v scaled to unit length; a zero vector is returned unchanged.
func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(dot(v, v))
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
