// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

import "time"

// GraphicsAPI identifies the native API a device drives.
type GraphicsAPI uint8

const (
	GraphicsAPID3D11 GraphicsAPI = iota
	GraphicsAPID3D12
	GraphicsAPIVulkan
	GraphicsAPIWebGPU

	graphicsAPICount
)

var graphicsAPINames = [graphicsAPICount]string{
	GraphicsAPID3D11:  "D3D11",
	GraphicsAPID3D12:  "D3D12",
	GraphicsAPIVulkan: "Vulkan",
	GraphicsAPIWebGPU: "WebGPU",
}

// String returns the API name.
func (api GraphicsAPI) String() string {
	if api < graphicsAPICount {
		return graphicsAPINames[api]
	}
	return "Invalid"
}

// Feature is an optional device capability, queried with
// Device.QueryFeatureSupport.
type Feature uint8

const (
	FeatureComputeQueue Feature = iota
	FeatureConservativeRasterization
	FeatureConstantBufferRanges
	FeatureCopyQueue
	FeatureDeferredCommandLists
	FeatureHeapDirectlyIndexed
	FeatureMeshlets
	FeatureRayQuery
	FeatureRayTracingAccelStruct
	FeatureRayTracingClusters
	FeatureRayTracingOpacityMicromap
	FeatureRayTracingPipeline
	FeatureSamplerFeedback
	FeatureShaderSpecializations
	FeatureVariableRateShading
	FeatureVirtualResources
)

// MessageSeverity grades a device diagnostic.
type MessageSeverity uint8

const (
	SeverityInfo MessageSeverity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

var messageSeverityNames = [...]string{
	SeverityInfo:    "Info",
	SeverityWarning: "Warning",
	SeverityError:   "Error",
	SeverityFatal:   "Fatal",
}

// String returns the severity name.
func (s MessageSeverity) String() string {
	if int(s) < len(messageSeverityNames) {
		return messageSeverityNames[s]
	}
	return "Invalid"
}

// MessageCallback receives device diagnostics. Implementations must be
// safe for concurrent use.
type MessageCallback interface {
	Message(severity MessageSeverity, text string)
}

type logMessageCallback struct{}

func (logMessageCallback) Message(severity MessageSeverity, text string) {
	switch severity {
	case SeverityInfo:
		Logger().Info(text)
	case SeverityWarning:
		Logger().Warn(text)
	default:
		Logger().Error(text)
	}
}

// DefaultMessageCallback returns a callback that routes diagnostics
// through the package logger.
func DefaultMessageCallback() MessageCallback {
	return logMessageCallback{}
}

// EventQuery is a GPU fence set on a queue and signaled when the queue
// reaches it.
type EventQuery interface {
	Resource
}

// TimerQuery measures GPU time across a command list span.
type TimerQuery interface {
	Resource
}

// Device creates and connects GPU resources. All methods are safe for
// concurrent use unless a backend documents otherwise; command list
// recording is single-threaded per list.
//
// Creation methods return a nil handle and a non-nil error on failure;
// they never return both.
type Device interface {
	Resource

	// CreateHeap allocates a memory heap for virtual resources.
	CreateHeap(desc HeapDesc) (Heap, error)

	CreateTexture(desc TextureDesc) (Texture, error)

	// TextureMemoryRequirements reports the size and alignment a virtual
	// texture needs from a heap.
	TextureMemoryRequirements(texture Texture) (MemoryRequirements, error)

	// BindTextureMemory attaches heap memory to a virtual texture.
	BindTextureMemory(texture Texture, heap Heap, offset uint64) error

	// CreateHandleForNativeTexture adopts an externally created texture.
	CreateHandleForNativeTexture(objectType ObjectType, texture Object, desc TextureDesc) (Texture, error)

	CreateStagingTexture(desc TextureDesc, cpuAccess CPUAccessMode) (StagingTexture, error)

	// MapStagingTexture maps one slice for CPU access and returns the
	// mapped bytes and the row pitch.
	MapStagingTexture(tex StagingTexture, slice TextureSlice, cpuAccess CPUAccessMode) ([]byte, int, error)

	UnmapStagingTexture(tex StagingTexture) error

	// TextureTiling reports the tile layout of a tiled texture.
	TextureTiling(texture Texture) (TextureTilingInfo, error)

	// UpdateTextureTileMappings points texture tiles at heap memory.
	UpdateTextureTileMappings(texture Texture, mappings []TextureTilesMapping, executionQueue CommandQueue) error

	CreateSamplerFeedbackTexture(pairedTexture Texture, desc SamplerFeedbackTextureDesc) (SamplerFeedbackTexture, error)

	// CreateSamplerFeedbackForNativeTexture adopts an externally created
	// feedback map.
	CreateSamplerFeedbackForNativeTexture(objectType ObjectType, texture Object, pairedTexture Texture) (SamplerFeedbackTexture, error)

	CreateBuffer(desc BufferDesc) (Buffer, error)

	// MapBuffer maps a CPU-accessible buffer and returns its bytes. The
	// mapping stays valid until UnmapBuffer.
	MapBuffer(buffer Buffer, cpuAccess CPUAccessMode) ([]byte, error)

	UnmapBuffer(buffer Buffer) error

	// BufferMemoryRequirements reports the size and alignment a virtual
	// buffer needs from a heap.
	BufferMemoryRequirements(buffer Buffer) (MemoryRequirements, error)

	// BindBufferMemory attaches heap memory to a virtual buffer.
	BindBufferMemory(buffer Buffer, heap Heap, offset uint64) error

	// CreateHandleForNativeBuffer adopts an externally created buffer.
	CreateHandleForNativeBuffer(objectType ObjectType, buffer Object, desc BufferDesc) (Buffer, error)

	// CreateShader wraps a compiled shader binary.
	CreateShader(desc ShaderDesc, binary []byte) (Shader, error)

	// CreateShaderSpecialization rebinds specialization constants of a
	// shader created from a specializable binary.
	CreateShaderSpecialization(baseShader Shader, constants []ShaderSpecialization) (Shader, error)

	// CreateShaderLibrary wraps a binary exporting multiple entry
	// points.
	CreateShaderLibrary(binary []byte) (ShaderLibrary, error)

	CreateSampler(desc SamplerDesc) (Sampler, error)

	// CreateInputLayout builds a vertex input layout, optionally
	// matching it against a vertex shader's input signature.
	CreateInputLayout(attributes []VertexAttributeDesc, vertexShader Shader) (InputLayout, error)

	CreateEventQuery() (EventQuery, error)

	// SetEventQuery arms the query to signal when the queue reaches the
	// current submission.
	SetEventQuery(query EventQuery, queue CommandQueue) error

	// PollEventQuery reports whether the query has signaled.
	PollEventQuery(query EventQuery) bool

	// WaitEventQuery blocks until the query signals.
	WaitEventQuery(query EventQuery) error

	ResetEventQuery(query EventQuery) error

	CreateTimerQuery() (TimerQuery, error)

	// PollTimerQuery reports whether the query result is available.
	PollTimerQuery(query TimerQuery) bool

	// TimerQueryTime blocks until the result is available and returns
	// the measured GPU time.
	TimerQueryTime(query TimerQuery) (time.Duration, error)

	ResetTimerQuery(query TimerQuery) error

	// GraphicsAPI reports which native API the device drives.
	GraphicsAPI() GraphicsAPI

	CreateFramebuffer(desc FramebufferDesc) (Framebuffer, error)

	// CreateGraphicsPipeline compiles a pipeline for framebuffers shaped
	// like fb.
	CreateGraphicsPipeline(desc GraphicsPipelineDesc, fb Framebuffer) (GraphicsPipeline, error)

	CreateComputePipeline(desc ComputePipelineDesc) (ComputePipeline, error)

	// CreateMeshletPipeline compiles a mesh shading pipeline for
	// framebuffers shaped like fb.
	CreateMeshletPipeline(desc MeshletPipelineDesc, fb Framebuffer) (MeshletPipeline, error)

	CreateRayTracingPipeline(desc RayTracingPipelineDesc) (RayTracingPipeline, error)

	CreateBindingLayout(desc BindingLayoutDesc) (BindingLayout, error)

	CreateBindlessLayout(desc BindlessLayoutDesc) (BindingLayout, error)

	// CreateBindingSet binds resources against a regular layout. The set
	// items must match the layout's declared slots one-for-one.
	CreateBindingSet(desc BindingSetDesc, layout BindingLayout) (BindingSet, error)

	// CreateDescriptorTable creates an empty descriptor table for a
	// bindless layout.
	CreateDescriptorTable(layout BindingLayout) (DescriptorTable, error)

	// ResizeDescriptorTable grows or shrinks a table, optionally
	// preserving existing descriptors.
	ResizeDescriptorTable(table DescriptorTable, newSize uint32, keepContents bool) error

	// WriteDescriptorTable stores one descriptor into a table slot.
	WriteDescriptorTable(table DescriptorTable, item BindingSetItem) error

	CreateOpacityMicromap(desc OpacityMicromapDesc) (OpacityMicromap, error)

	CreateAccelStruct(desc AccelStructDesc) (AccelStruct, error)

	// AccelStructMemoryRequirements reports the size and alignment a
	// virtual acceleration structure needs from a heap.
	AccelStructMemoryRequirements(as AccelStruct) (MemoryRequirements, error)

	// ClusterOperationSizeInfo reports the result and scratch sizes a
	// cluster operation needs.
	ClusterOperationSizeInfo(params ClusterOperationParams) (ClusterOperationSizeInfo, error)

	// BindAccelStructMemory attaches heap memory to a virtual
	// acceleration structure.
	BindAccelStructMemory(as AccelStruct, heap Heap, offset uint64) error

	CreateCommandList(params CommandListParameters) (CommandList, error)

	// ExecuteCommandLists submits closed lists to a queue in order and
	// returns the submission instance, usable with
	// QueueWaitForCommandList.
	ExecuteCommandLists(lists []CommandList, executionQueue CommandQueue) (uint64, error)

	// QueueWaitForCommandList makes waitQueue wait for a submission
	// instance previously returned for executionQueue.
	QueueWaitForCommandList(waitQueue, executionQueue CommandQueue, instanceID uint64) error

	// WaitForIdle blocks until all queues drain.
	WaitForIdle() error

	// RunGarbageCollection releases backend resources whose submissions
	// have completed.
	RunGarbageCollection()

	QueryFeatureSupport(feature Feature) bool

	QueryFormatSupport(format Format) FormatSupport

	// NativeQueue returns the backend queue object, or nil when the
	// object type does not match the backend.
	NativeQueue(objectType ObjectType, queue CommandQueue) Object

	// MessageCallback returns the sink the device reports diagnostics
	// to.
	MessageCallback() MessageCallback
}

// ExecuteCommandList submits one command list on the given queue.
func ExecuteCommandList(device Device, list CommandList, queue CommandQueue) (uint64, error) {
	return device.ExecuteCommandLists([]CommandList{list}, queue)
}
