// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

import "strings"

// Object is a backend-native handle. Backends return their own concrete
// handle types; callers type-assert against the API they selected. A nil
// Object means the backend has no handle of the requested kind.
type Object any

// ObjectType identifies which native handle NativeObject and NativeQueue
// should return. The upper 16 bits select the graphics API namespace, the
// lower 16 bits the handle kind within it.
type ObjectType uint32

const (
	ObjectTypeSharedHandle ObjectType = 0x00000001

	ObjectTypeD3D11Device        ObjectType = 0x00010001
	ObjectTypeD3D11DeviceContext ObjectType = 0x00010002
	ObjectTypeD3D11Resource      ObjectType = 0x00010003
	ObjectTypeD3D11Buffer        ObjectType = 0x00010004

	ObjectTypeD3D12Device       ObjectType = 0x00020001
	ObjectTypeD3D12CommandQueue ObjectType = 0x00020002
	ObjectTypeD3D12CommandList  ObjectType = 0x00020003
	ObjectTypeD3D12Resource     ObjectType = 0x00020004

	ObjectTypeVulkanDevice         ObjectType = 0x00030001
	ObjectTypeVulkanPhysicalDevice ObjectType = 0x00030002
	ObjectTypeVulkanInstance       ObjectType = 0x00030003
	ObjectTypeVulkanQueue          ObjectType = 0x00030004
	ObjectTypeVulkanImage          ObjectType = 0x00030005
	ObjectTypeVulkanBuffer         ObjectType = 0x00030006

	ObjectTypeWebGPUDevice  ObjectType = 0x00040001
	ObjectTypeWebGPUQueue   ObjectType = 0x00040002
	ObjectTypeWebGPUBuffer  ObjectType = 0x00040003
	ObjectTypeWebGPUTexture ObjectType = 0x00040004
)

// Resource is the base interface of every device-created object.
type Resource interface {
	// NativeObject returns the backend handle of the requested kind,
	// or nil when the backend has none.
	NativeObject(objectType ObjectType) Object
}

// ResourceState describes how a resource is accessed by the GPU.
// States combine as a bitmask.
type ResourceState uint32

const (
	// ResourceStateUnknown means the state is not tracked.
	ResourceStateUnknown ResourceState = 0
	// ResourceStateCommon is the default state for resources without a
	// more specific use.
	ResourceStateCommon ResourceState = 1 << (iota - 1)
	ResourceStateConstantBuffer
	ResourceStateVertexBuffer
	ResourceStateIndexBuffer
	ResourceStateIndirectArgument
	ResourceStateShaderResource
	ResourceStateUnorderedAccess
	ResourceStateRenderTarget
	ResourceStateDepthWrite
	ResourceStateDepthRead
	ResourceStateStreamOut
	ResourceStateCopyDest
	ResourceStateCopySource
	ResourceStateResolveDest
	ResourceStateResolveSource
	ResourceStatePresent
	ResourceStateAccelStructRead
	ResourceStateAccelStructWrite
	ResourceStateAccelStructBuildInput
	ResourceStateAccelStructBuildBlas
	ResourceStateShadingRateSurface
	ResourceStateOpacityMicromapWrite
	ResourceStateOpacityMicromapBuildInput
)

var resourceStateNames = []struct {
	state ResourceState
	name  string
}{
	{ResourceStateCommon, "Common"},
	{ResourceStateConstantBuffer, "ConstantBuffer"},
	{ResourceStateVertexBuffer, "VertexBuffer"},
	{ResourceStateIndexBuffer, "IndexBuffer"},
	{ResourceStateIndirectArgument, "IndirectArgument"},
	{ResourceStateShaderResource, "ShaderResource"},
	{ResourceStateUnorderedAccess, "UnorderedAccess"},
	{ResourceStateRenderTarget, "RenderTarget"},
	{ResourceStateDepthWrite, "DepthWrite"},
	{ResourceStateDepthRead, "DepthRead"},
	{ResourceStateStreamOut, "StreamOut"},
	{ResourceStateCopyDest, "CopyDest"},
	{ResourceStateCopySource, "CopySource"},
	{ResourceStateResolveDest, "ResolveDest"},
	{ResourceStateResolveSource, "ResolveSource"},
	{ResourceStatePresent, "Present"},
	{ResourceStateAccelStructRead, "AccelStructRead"},
	{ResourceStateAccelStructWrite, "AccelStructWrite"},
	{ResourceStateAccelStructBuildInput, "AccelStructBuildInput"},
	{ResourceStateAccelStructBuildBlas, "AccelStructBuildBlas"},
	{ResourceStateShadingRateSurface, "ShadingRateSurface"},
	{ResourceStateOpacityMicromapWrite, "OpacityMicromapWrite"},
	{ResourceStateOpacityMicromapBuildInput, "OpacityMicromapBuildInput"},
}

// String renders the state as a "|"-joined list of state names.
func (s ResourceState) String() string {
	if s == ResourceStateUnknown {
		return "Unknown"
	}
	var parts []string
	for _, e := range resourceStateNames {
		if s&e.state != 0 {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "|")
}

// CPUAccessMode selects how the CPU maps a resource.
type CPUAccessMode uint8

const (
	// CPUAccessNone means the resource is never mapped.
	CPUAccessNone CPUAccessMode = iota
	// CPUAccessRead maps the resource for readback.
	CPUAccessRead
	// CPUAccessWrite maps the resource for upload.
	CPUAccessWrite
)

// String returns the access mode name.
func (m CPUAccessMode) String() string {
	switch m {
	case CPUAccessNone:
		return "None"
	case CPUAccessRead:
		return "Read"
	case CPUAccessWrite:
		return "Write"
	default:
		return "Invalid"
	}
}

// Color is an RGBA value with float components, used for clear values,
// border colors, and blend constants.
type Color struct {
	R, G, B, A float32
}

// Viewport is a render target region in pixels, with a depth range.
type Viewport struct {
	MinX, MaxX float32
	MinY, MaxY float32
	MinZ, MaxZ float32
}

// NewViewport returns a viewport covering a width x height region with the
// full [0, 1] depth range.
func NewViewport(width, height float32) Viewport {
	return Viewport{MinX: 0, MaxX: width, MinY: 0, MaxY: height, MinZ: 0, MaxZ: 1}
}

// Width returns the horizontal extent of the viewport.
func (v Viewport) Width() float32 { return v.MaxX - v.MinX }

// Height returns the vertical extent of the viewport.
func (v Viewport) Height() float32 { return v.MaxY - v.MinY }

// Rect is an integer pixel rectangle.
type Rect struct {
	MinX, MaxX int
	MinY, MaxY int
}

// NewRect returns a rectangle anchored at the origin.
func NewRect(width, height int) Rect {
	return Rect{MinX: 0, MaxX: width, MinY: 0, MaxY: height}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int { return r.MaxX - r.MinX }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int { return r.MaxY - r.MinY }

// ViewportState carries the viewports and scissor rectangles bound with a
// graphics state. Empty slices leave the corresponding state unset.
type ViewportState struct {
	Viewports    []Viewport
	ScissorRects []Rect
}

// ViewportStateOf returns a state with one viewport and a matching
// full-viewport scissor rectangle.
func ViewportStateOf(v Viewport) ViewportState {
	return ViewportState{
		Viewports: []Viewport{v},
		ScissorRects: []Rect{{
			MinX: int(v.MinX), MaxX: int(v.MaxX),
			MinY: int(v.MinY), MaxY: int(v.MaxY),
		}},
	}
}

// MemoryRequirements reports the size and alignment a virtual resource
// needs when bound to a heap.
type MemoryRequirements struct {
	Size      uint64
	Alignment uint64
}
