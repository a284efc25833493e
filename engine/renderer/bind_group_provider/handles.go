package bind_group_provider

// Buffer is a GPU-resident buffer handle owned by the renderer backend.
type Buffer interface {
	// Size returns the byte size the buffer was created with.
	//
	// Returns:
	//   - uint64: the buffer size in bytes
	Size() uint64

	// Release frees the GPU memory backing the buffer.
	Release()
}

// BindGroup is a handle to a GPU bind group that binds host buffers to shader-visible slots.
type BindGroup interface {
	// Release frees the GPU bind group.
	Release()
}

// BindGroupLayout is a handle to a GPU bind group layout describing the shape of a bind group.
type BindGroupLayout interface {
	// Label returns the debug label the layout was created with.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Release frees the GPU bind group layout.
	Release()
}

// Device is the allocation surface a BindGroupProvider needs from the renderer.
// The Renderer satisfies it; tests may substitute their own implementation.
type Device interface {
	// CreateUniformBuffer allocates a uniform buffer of exactly size bytes.
	//
	// Parameters:
	//   - label: debug label for the buffer
	//   - size: the buffer size in bytes
	//
	// Returns:
	//   - Buffer: the allocated buffer
	//   - error: an error if the allocation fails
	CreateUniformBuffer(label string, size uint64) (Buffer, error)

	// CreateBindGroup builds a bind group that references buf at the given binding index of layout.
	//
	// Parameters:
	//   - label: debug label for the bind group
	//   - layout: the layout the bind group conforms to
	//   - binding: the binding index the buffer is attached at
	//   - buf: the buffer to reference
	//
	// Returns:
	//   - BindGroup: the created bind group
	//   - error: an error if creation fails
	CreateBindGroup(label string, layout BindGroupLayout, binding uint32, buf Buffer) (BindGroup, error)

	// WriteBuffer overwrites the contents of buf starting at offset 0.
	// The data must not be larger than the buffer.
	//
	// Parameters:
	//   - buf: the destination buffer
	//   - data: the bytes to upload
	//
	// Returns:
	//   - error: an error if the write is rejected
	WriteBuffer(buf Buffer, data []byte) error

	// PipelineReady reports whether the render pipeline, and with it the binding shape, is fixed.
	//
	// Returns:
	//   - bool: true once the pipeline has been initialized
	PipelineReady() bool
}
