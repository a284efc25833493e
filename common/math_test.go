package common

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}

	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)

	Mul4(out[:], m[:], id[:])
	assert.Equal(t, m, out)
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	var view [16]float32
	eye := [3]float32{0, 0, 5}
	LookAt(view[:], eye, [3]float32{0, 0, 0}, [3]float32{0, 1, 0})

	// Column-major transform of the eye point must land on the view-space origin.
	x := view[0]*eye[0] + view[4]*eye[1] + view[8]*eye[2] + view[12]
	y := view[1]*eye[0] + view[5]*eye[1] + view[9]*eye[2] + view[13]
	z := view[2]*eye[0] + view[6]*eye[1] + view[10]*eye[2] + view[14]
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, 0, z, 1e-5)
}

func TestPerspectiveDepthRange(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], 1.0, 2.0, 0.1, 100)

	ndc := func(zView float32) float32 {
		clipZ := proj[10]*zView + proj[14]
		clipW := proj[11] * zView
		return clipZ / clipW
	}
	assert.InDelta(t, 0, ndc(-0.1), 1e-4)
	assert.InDelta(t, 1, ndc(-100), 1e-4)
	assert.InDelta(t, proj[5]/2.0, proj[0], 1e-6)
}

func TestStructToBytes(t *testing.T) {
	v := struct {
		A uint32
		B uint32
	}{A: 1, B: 2}

	b := StructToBytes(&v)
	assert.Len(t, b, 8)
	assert.Equal(t, byte(1), b[0])
	assert.Equal(t, byte(2), b[4])
}

func TestClampAndCoalesce(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(3, -1, 1))
	assert.Equal(t, float32(-1), Clamp(-3, -1, 1))
	assert.Equal(t, float32(0.5), Clamp(0.5, -1, 1))
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}

func TestLoggerFallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), Logger(nil))

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Same(t, custom, Logger(custom))
}
