// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

// BufferDesc describes a buffer resource and every view the buffer may be
// bound through. View capabilities are fixed at creation; binding a buffer
// through a view class it was not created for is a validation error.
type BufferDesc struct {
	ByteSize uint64
	// StructStride makes the buffer structured when non-zero.
	StructStride uint32
	// MaxVersions bounds the number of in-flight versions of a volatile
	// buffer. Required to be non-zero for volatile buffers.
	MaxVersions uint32
	// DebugName appears in diagnostics and native object names. Devices
	// assign a generated name when it is empty.
	DebugName string
	// Format applies to typed buffer views created from this buffer.
	Format Format

	CanHaveUAVs        bool
	CanHaveTypedViews  bool
	CanHaveRawViews    bool
	IsVertexBuffer     bool
	IsIndexBuffer      bool
	IsConstantBuffer   bool
	IsDrawIndirectArgs bool

	IsAccelStructBuildInput bool
	IsAccelStructStorage    bool
	IsShaderBindingTable    bool

	// IsVolatile marks an upload buffer whose contents only live within
	// the command list that writes them. Volatile buffers must be
	// constant buffers and cannot carry any other usage.
	IsVolatile bool

	// IsVirtual creates the buffer without backing memory; bind memory
	// later with Device.BindBufferMemory.
	IsVirtual bool

	InitialState ResourceState
	// KeepInitialState makes command lists begin tracking the buffer in
	// InitialState and return it to that state on close.
	KeepInitialState bool

	CPUAccess CPUAccessMode
}

// BufferRange selects a byte range of a buffer. A zero ByteSize means
// everything from ByteOffset to the end of the buffer.
type BufferRange struct {
	ByteOffset uint64
	ByteSize   uint64
}

// EntireBuffer selects a whole buffer regardless of its size.
var EntireBuffer = BufferRange{ByteOffset: 0, ByteSize: ^uint64(0)}

// Resolve clamps the range against the buffer size.
func (r BufferRange) Resolve(desc BufferDesc) BufferRange {
	var out BufferRange
	out.ByteOffset = min(r.ByteOffset, desc.ByteSize)
	if r.ByteSize == 0 {
		out.ByteSize = desc.ByteSize - out.ByteOffset
	} else {
		out.ByteSize = min(r.ByteSize, desc.ByteSize-out.ByteOffset)
	}
	return out
}

// IsEntireBuffer reports whether the range covers the whole buffer.
func (r BufferRange) IsEntireBuffer(desc BufferDesc) bool {
	return r.ByteOffset == 0 && (r.ByteSize == ^uint64(0) || r.ByteSize == desc.ByteSize)
}

// Buffer is a device buffer resource.
type Buffer interface {
	Resource
	// Desc returns the creation descriptor, including any patches the
	// device applied (such as a generated debug name).
	Desc() BufferDesc
	// GPUVirtualAddress returns the device address of the buffer, or 0
	// when the backend does not expose addresses.
	GPUVirtualAddress() uint64
}
