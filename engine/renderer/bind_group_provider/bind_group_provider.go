package bind_group_provider

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/alchemy/common"
)

// ErrPipelineNotInitialized is returned when an operation requires the render pipeline to exist.
var ErrPipelineNotInitialized = errors.New("render pipeline not initialized")

// BindGroupProvider defines the interface for GPU-resident resources that can be bound to a render pass.
// The Renderer binds each provider's BindGroup at the group index matching its position in the draw call.
type BindGroupProvider interface {
	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Binding returns the binding index the provider's buffer is attached at within its bind group.
	//
	// Returns:
	//   - uint32: the binding index
	Binding() uint32

	// BindGroup returns the bind group for shader binding.
	//
	// Returns:
	//   - BindGroup: the bind group
	BindGroup() BindGroup

	// Release releases any GPU resources held by this provider.
	Release()
}

// Uniform is a GPU-resident uniform buffer holding exactly one value of T, together with the bind
// group that exposes it to shaders. The buffer size is fixed at construction to the byte layout of T;
// Write only replaces the contents.
//
// T must be a fixed-size value type without pointers, laid out to match the shader's uniform struct.
type Uniform[T any] struct {
	label     string
	binding   uint32
	value     T
	buffer    Buffer
	bindGroup BindGroup
}

var _ BindGroupProvider = &Uniform[[16]float32]{}

// NewUniform allocates a uniform buffer sized to T, uploads initial into it and builds a bind group
// referencing the buffer at binding within layout.
//
// Parameters:
//   - device: the device to allocate from
//   - layout: the bind group layout the bind group conforms to
//   - initial: the value uploaded at creation
//   - binding: the binding index of the buffer within the bind group
//   - label: debug label for the buffer and bind group
//
// Returns:
//   - *Uniform[T]: the created resource object
//   - error: an error if any allocation fails
func NewUniform[T any](device Device, layout BindGroupLayout, initial T, binding uint32, label string) (*Uniform[T], error) {
	u := &Uniform[T]{
		label:   label,
		binding: binding,
		value:   initial,
	}

	data := common.StructToBytes(&u.value)
	if len(data) == 0 {
		return nil, fmt.Errorf("uniform %q: value type has zero size", label)
	}

	buf, err := device.CreateUniformBuffer(label+" Buffer", uint64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("uniform %q: create buffer: %w", label, err)
	}
	if err := device.WriteBuffer(buf, data); err != nil {
		buf.Release()
		return nil, fmt.Errorf("uniform %q: upload initial value: %w", label, err)
	}

	bg, err := device.CreateBindGroup(label+" Bind Group", layout, binding, buf)
	if err != nil {
		buf.Release()
		return nil, fmt.Errorf("uniform %q: create bind group: %w", label, err)
	}

	u.buffer = buf
	u.bindGroup = bg
	return u, nil
}

// Write overwrites the buffer contents with value. The pipeline must already be initialized.
// Calls happen on the dispatcher thread only, at most once per frame per object.
//
// Parameters:
//   - device: the device that owns the buffer
//   - value: the new value
//
// Returns:
//   - error: ErrPipelineNotInitialized before the pipeline exists, or the device's write error
func (u *Uniform[T]) Write(device Device, value T) error {
	if !device.PipelineReady() {
		return ErrPipelineNotInitialized
	}
	u.value = value
	if err := device.WriteBuffer(u.buffer, common.StructToBytes(&u.value)); err != nil {
		return fmt.Errorf("uniform %q: write: %w", u.label, err)
	}
	return nil
}

// Value returns the host-side copy of the last value uploaded.
func (u *Uniform[T]) Value() T {
	return u.value
}

// Size returns the fixed byte size of the buffer.
func (u *Uniform[T]) Size() uint64 {
	return u.buffer.Size()
}

// Buffer returns the underlying GPU buffer.
func (u *Uniform[T]) Buffer() Buffer {
	return u.buffer
}

func (u *Uniform[T]) Label() string {
	return u.label
}

func (u *Uniform[T]) Binding() uint32 {
	return u.binding
}

func (u *Uniform[T]) BindGroup() BindGroup {
	return u.bindGroup
}

func (u *Uniform[T]) Release() {
	if u.bindGroup != nil {
		u.bindGroup.Release()
		u.bindGroup = nil
	}
	if u.buffer != nil {
		u.buffer.Release()
		u.buffer = nil
	}
}
