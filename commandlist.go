// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

// CommandQueue identifies one of the device's submission queues.
type CommandQueue uint8

const (
	CommandQueueGraphics CommandQueue = iota
	CommandQueueCompute
	CommandQueueCopy

	// CommandQueueCount is the number of queue kinds.
	CommandQueueCount
)

var commandQueueNames = [CommandQueueCount]string{
	CommandQueueGraphics: "Graphics",
	CommandQueueCompute:  "Compute",
	CommandQueueCopy:     "Copy",
}

// String returns the queue name.
func (q CommandQueue) String() string {
	if q < CommandQueueCount {
		return commandQueueNames[q]
	}
	return "Invalid"
}

// CommandListParameters configures a command list at creation.
type CommandListParameters struct {
	// EnableImmediateExecution lets the list use the backend's immediate
	// context when it is executed first in a submission. Lists recorded
	// concurrently must disable it.
	EnableImmediateExecution bool

	// UploadChunkSize is the allocation granularity of the upload
	// buffer used by WriteBuffer and texture writes.
	UploadChunkSize uint64

	// ScratchChunkSize is the allocation granularity of the scratch
	// buffer used by acceleration structure builds.
	ScratchChunkSize uint64

	// ScratchMaxMemory caps the total scratch memory the list may hold.
	ScratchMaxMemory uint64

	// QueueType is the queue the list records for; it must match the
	// queue the list is executed on.
	QueueType CommandQueue
}

// DefaultCommandListParameters returns the parameters of an
// immediate-capable graphics-queue list.
func DefaultCommandListParameters() CommandListParameters {
	return CommandListParameters{
		EnableImmediateExecution: true,
		UploadChunkSize:          64 * 1024,
		ScratchChunkSize:         64 * 1024,
		ScratchMaxMemory:         1024 * 1024 * 1024,
		QueueType:                CommandQueueGraphics,
	}
}

// VertexBufferBinding attaches a buffer to one vertex input slot.
type VertexBufferBinding struct {
	Buffer Buffer
	Slot   uint32
	Offset uint64
}

// IndexBufferBinding attaches an index buffer.
type IndexBufferBinding struct {
	Buffer Buffer
	// Format must be R16_UINT or R32_UINT.
	Format Format
	Offset uint32
}

// DrawArguments parameterizes a draw. An InstanceCount of zero draws
// nothing.
type DrawArguments struct {
	// VertexCount is the number of vertices, or indices for indexed
	// draws.
	VertexCount           uint32
	InstanceCount         uint32
	StartIndexLocation    uint32
	StartVertexLocation   uint32
	StartInstanceLocation uint32
}

// NewDrawArguments returns single-instance arguments for vertexCount
// vertices.
func NewDrawArguments(vertexCount uint32) DrawArguments {
	return DrawArguments{VertexCount: vertexCount, InstanceCount: 1}
}

// ComputeState is the full state of a dispatch: the pipeline and its
// binding sets, in layout order.
type ComputeState struct {
	Pipeline ComputePipeline
	Bindings []BindingSet
}

// GraphicsState is the full state of a draw.
type GraphicsState struct {
	Pipeline    GraphicsPipeline
	Framebuffer Framebuffer
	Viewport    ViewportState

	// BlendConstantColor feeds the ConstantColor blend factors.
	BlendConstantColor Color

	// Bindings holds one binding set per pipeline binding layout, in
	// layout order.
	Bindings []BindingSet

	VertexBuffers []VertexBufferBinding
	IndexBuffer   IndexBufferBinding
}

// CommandList records GPU work for submission through
// Device.ExecuteCommandLists. A list cycles through open, close, and
// execute; it may be reopened and reused after execution.
type CommandList interface {
	Resource

	// Open begins recording. The list must not already be open.
	Open() error

	// Close ends recording and makes the list executable.
	Close() error

	// WriteBuffer schedules an upload of data into buffer at destOffset.
	// The data is staged at call time; the caller may reuse it on
	// return.
	WriteBuffer(buffer Buffer, data []byte, destOffset uint64) error

	// CopyBuffer copies byteSize bytes between buffer regions.
	CopyBuffer(dest Buffer, destOffset uint64, src Buffer, srcOffset uint64, byteSize uint64) error

	// SetComputeState binds a compute pipeline and its resources.
	SetComputeState(state ComputeState) error

	// Dispatch launches compute groups using the current compute state.
	Dispatch(groupsX, groupsY, groupsZ uint32) error

	// SetGraphicsState binds a graphics pipeline, framebuffer, and
	// resources.
	SetGraphicsState(state GraphicsState) error

	// Draw draws non-indexed geometry using the current graphics state.
	Draw(args DrawArguments) error

	// DrawIndexed draws indexed geometry using the current graphics
	// state.
	DrawIndexed(args DrawArguments) error

	// BuildBottomLevelAccelStruct builds or refits a bottom-level
	// acceleration structure from geometry.
	BuildBottomLevelAccelStruct(as AccelStruct, geometries []GeometryDesc, flags AccelStructBuildFlags) error

	// BuildTopLevelAccelStruct builds or refits a top-level acceleration
	// structure from instances.
	BuildTopLevelAccelStruct(as AccelStruct, instances []InstanceDesc, flags AccelStructBuildFlags) error

	// BeginMarker opens a named range for debugging and profiling tools.
	BeginMarker(name string)

	// EndMarker closes the innermost marker range.
	EndMarker()

	// Desc returns the creation parameters.
	Desc() CommandListParameters
}
