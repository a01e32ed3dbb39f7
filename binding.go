// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

// ResourceType classifies how a resource is bound to a shader.
type ResourceType uint8

const (
	ResourceTypeNone ResourceType = iota
	ResourceTypeTextureSRV
	ResourceTypeTextureUAV
	ResourceTypeTypedBufferSRV
	ResourceTypeTypedBufferUAV
	ResourceTypeStructuredBufferSRV
	ResourceTypeStructuredBufferUAV
	ResourceTypeRawBufferSRV
	ResourceTypeRawBufferUAV
	ResourceTypeConstantBuffer
	ResourceTypeVolatileConstantBuffer
	ResourceTypeSampler
	ResourceTypeRayTracingAccelStruct
	ResourceTypePushConstants
	ResourceTypeSamplerFeedbackUAV

	// ResourceTypeCount is the number of defined resource types.
	ResourceTypeCount
)

var resourceTypeNames = [ResourceTypeCount]string{
	ResourceTypeNone:                   "None",
	ResourceTypeTextureSRV:             "Texture_SRV",
	ResourceTypeTextureUAV:             "Texture_UAV",
	ResourceTypeTypedBufferSRV:         "TypedBuffer_SRV",
	ResourceTypeTypedBufferUAV:         "TypedBuffer_UAV",
	ResourceTypeStructuredBufferSRV:    "StructuredBuffer_SRV",
	ResourceTypeStructuredBufferUAV:    "StructuredBuffer_UAV",
	ResourceTypeRawBufferSRV:           "RawBuffer_SRV",
	ResourceTypeRawBufferUAV:           "RawBuffer_UAV",
	ResourceTypeConstantBuffer:         "ConstantBuffer",
	ResourceTypeVolatileConstantBuffer: "VolatileConstantBuffer",
	ResourceTypeSampler:                "Sampler",
	ResourceTypeRayTracingAccelStruct:  "RayTracingAccelStruct",
	ResourceTypePushConstants:          "PushConstants",
	ResourceTypeSamplerFeedbackUAV:     "SamplerFeedbackTexture_UAV",
}

// String returns the resource type name.
func (t ResourceType) String() string {
	if t < ResourceTypeCount {
		return resourceTypeNames[t]
	}
	return "Invalid"
}

// BindingLayoutItem declares one binding in a layout: a slot and the
// resource type bound there.
type BindingLayoutItem struct {
	Slot uint32
	Type ResourceType
	// Size is the push constant block size in bytes when Type is
	// PushConstants, and the descriptor array size otherwise. Layout
	// constructors set it to 1; the zero value is rejected by the
	// validation layer for non-push-constant items.
	Size uint32
}

// ArraySize returns the number of descriptors the item occupies.
func (item BindingLayoutItem) ArraySize() uint32 {
	if item.Type == ResourceTypePushConstants {
		return 1
	}
	return item.Size
}

// Layout item constructors, one per resource type.

// TextureSRVItem declares a read-only texture binding.
func TextureSRVItem(slot uint32) BindingLayoutItem {
	return BindingLayoutItem{Slot: slot, Type: ResourceTypeTextureSRV, Size: 1}
}

// TextureUAVItem declares a read-write texture binding.
func TextureUAVItem(slot uint32) BindingLayoutItem {
	return BindingLayoutItem{Slot: slot, Type: ResourceTypeTextureUAV, Size: 1}
}

// TypedBufferSRVItem declares a read-only typed buffer binding.
func TypedBufferSRVItem(slot uint32) BindingLayoutItem {
	return BindingLayoutItem{Slot: slot, Type: ResourceTypeTypedBufferSRV, Size: 1}
}

// TypedBufferUAVItem declares a read-write typed buffer binding.
func TypedBufferUAVItem(slot uint32) BindingLayoutItem {
	return BindingLayoutItem{Slot: slot, Type: ResourceTypeTypedBufferUAV, Size: 1}
}

// StructuredBufferSRVItem declares a read-only structured buffer binding.
func StructuredBufferSRVItem(slot uint32) BindingLayoutItem {
	return BindingLayoutItem{Slot: slot, Type: ResourceTypeStructuredBufferSRV, Size: 1}
}

// StructuredBufferUAVItem declares a read-write structured buffer binding.
func StructuredBufferUAVItem(slot uint32) BindingLayoutItem {
	return BindingLayoutItem{Slot: slot, Type: ResourceTypeStructuredBufferUAV, Size: 1}
}

// RawBufferSRVItem declares a read-only raw buffer binding.
func RawBufferSRVItem(slot uint32) BindingLayoutItem {
	return BindingLayoutItem{Slot: slot, Type: ResourceTypeRawBufferSRV, Size: 1}
}

// RawBufferUAVItem declares a read-write raw buffer binding.
func RawBufferUAVItem(slot uint32) BindingLayoutItem {
	return BindingLayoutItem{Slot: slot, Type: ResourceTypeRawBufferUAV, Size: 1}
}

// ConstantBufferItem declares a constant buffer binding.
func ConstantBufferItem(slot uint32) BindingLayoutItem {
	return BindingLayoutItem{Slot: slot, Type: ResourceTypeConstantBuffer, Size: 1}
}

// VolatileConstantBufferItem declares a volatile constant buffer binding.
func VolatileConstantBufferItem(slot uint32) BindingLayoutItem {
	return BindingLayoutItem{Slot: slot, Type: ResourceTypeVolatileConstantBuffer, Size: 1}
}

// SamplerItem declares a sampler binding.
func SamplerItem(slot uint32) BindingLayoutItem {
	return BindingLayoutItem{Slot: slot, Type: ResourceTypeSampler, Size: 1}
}

// AccelStructItem declares a ray tracing acceleration structure binding.
func AccelStructItem(slot uint32) BindingLayoutItem {
	return BindingLayoutItem{Slot: slot, Type: ResourceTypeRayTracingAccelStruct, Size: 1}
}

// PushConstantsItem declares a push constant block of byteSize bytes.
func PushConstantsItem(slot uint32, byteSize uint32) BindingLayoutItem {
	return BindingLayoutItem{Slot: slot, Type: ResourceTypePushConstants, Size: byteSize}
}

// SamplerFeedbackUAVItem declares a sampler feedback map binding.
func SamplerFeedbackUAVItem(slot uint32) BindingLayoutItem {
	return BindingLayoutItem{Slot: slot, Type: ResourceTypeSamplerFeedbackUAV, Size: 1}
}

// VulkanBindingOffsets shifts HLSL register classes into disjoint Vulkan
// binding ranges within one descriptor set.
type VulkanBindingOffsets struct {
	ShaderResource  uint32
	Sampler         uint32
	ConstantBuffer  uint32
	UnorderedAccess uint32
}

// DefaultVulkanBindingOffsets returns the conventional 128-slot spacing.
func DefaultVulkanBindingOffsets() VulkanBindingOffsets {
	return VulkanBindingOffsets{
		ShaderResource:  0,
		Sampler:         128,
		ConstantBuffer:  256,
		UnorderedAccess: 384,
	}
}

// BindingLayoutDesc declares the bindings visible to a set of stages.
type BindingLayoutDesc struct {
	// Visibility is the stage set that sees these bindings. Must not be
	// None.
	Visibility ShaderType

	// RegisterSpace places the bindings in a non-default register space.
	// Only meaningful on backends with register spaces, or on backends
	// that map register spaces to descriptor sets when
	// RegisterSpaceIsDescriptorSet is set.
	RegisterSpace uint32

	// RegisterSpaceIsDescriptorSet maps RegisterSpace to the descriptor
	// set index on backends with descriptor sets. Every layout in a
	// pipeline must agree on this flag.
	RegisterSpaceIsDescriptorSet bool

	Bindings []BindingLayoutItem

	BindingOffsets VulkanBindingOffsets
}

// BindlessLayoutDesc declares an unbounded descriptor array covering one
// or more register spaces.
type BindlessLayoutDesc struct {
	// Visibility is the stage set that sees the array. Must not be None.
	Visibility ShaderType
	// FirstSlot is the register the array starts at in each space.
	FirstSlot uint32
	// MaxCapacity is the number of descriptors the array can hold.
	MaxCapacity uint32
	// RegisterSpaces lists the spaces the array covers; the Slot of each
	// item is the register space index.
	RegisterSpaces []BindingLayoutItem
}

// BindingLayout is either a regular binding layout or a bindless layout.
// Exactly one of Desc and BindlessDesc returns non-nil.
type BindingLayout interface {
	Resource
	// Desc returns the regular layout descriptor, or nil for bindless
	// layouts.
	Desc() *BindingLayoutDesc
	// BindlessDesc returns the bindless descriptor, or nil for regular
	// layouts.
	BindlessDesc() *BindlessLayoutDesc
}

// BindingSetItem binds one resource to one slot declared in a layout.
type BindingSetItem struct {
	// Resource is the bound object. The expected concrete type follows
	// Type; push constant items carry no resource.
	Resource Resource

	Slot uint32

	// ArrayElement is the index within a binding array declared with a
	// Size greater than 1.
	ArrayElement uint32

	Type ResourceType

	// Dimension reinterprets the texture view dimension for texture
	// items. Unknown keeps the texture's own dimension.
	Dimension TextureDimension

	// Format reinterprets the view format for texture and typed buffer
	// items. Unknown keeps the resource's own format.
	Format Format

	// Subresources selects the viewed mips and slices of texture items.
	Subresources TextureSubresourceSet

	// Range selects the viewed bytes of buffer items. For push constant
	// items, Range.ByteSize is the block size.
	Range BufferRange
}

// Binding set item constructors, one per resource type.

// NoneBinding occupies a slot without binding anything.
func NoneBinding(slot uint32) BindingSetItem {
	return BindingSetItem{Slot: slot, Type: ResourceTypeNone}
}

// TextureSRVBinding binds a texture for reading.
func TextureSRVBinding(slot uint32, texture Texture) BindingSetItem {
	return BindingSetItem{
		Slot:         slot,
		Type:         ResourceTypeTextureSRV,
		Resource:     texture,
		Subresources: AllSubresources,
	}
}

// TextureUAVBinding binds mip level 0 of a texture for writing.
func TextureUAVBinding(slot uint32, texture Texture) BindingSetItem {
	return BindingSetItem{
		Slot:     slot,
		Type:     ResourceTypeTextureUAV,
		Resource: texture,
		Subresources: TextureSubresourceSet{
			BaseMipLevel:   0,
			NumMipLevels:   1,
			BaseArraySlice: 0,
			NumArraySlices: AllArraySlices,
		},
	}
}

// TypedBufferSRVBinding binds a typed buffer view for reading.
func TypedBufferSRVBinding(slot uint32, buffer Buffer) BindingSetItem {
	return BindingSetItem{Slot: slot, Type: ResourceTypeTypedBufferSRV, Resource: buffer, Range: EntireBuffer}
}

// TypedBufferUAVBinding binds a typed buffer view for writing.
func TypedBufferUAVBinding(slot uint32, buffer Buffer) BindingSetItem {
	return BindingSetItem{Slot: slot, Type: ResourceTypeTypedBufferUAV, Resource: buffer, Range: EntireBuffer}
}

// StructuredBufferSRVBinding binds a structured buffer for reading.
func StructuredBufferSRVBinding(slot uint32, buffer Buffer) BindingSetItem {
	return BindingSetItem{Slot: slot, Type: ResourceTypeStructuredBufferSRV, Resource: buffer, Range: EntireBuffer}
}

// StructuredBufferUAVBinding binds a structured buffer for writing.
func StructuredBufferUAVBinding(slot uint32, buffer Buffer) BindingSetItem {
	return BindingSetItem{Slot: slot, Type: ResourceTypeStructuredBufferUAV, Resource: buffer, Range: EntireBuffer}
}

// RawBufferSRVBinding binds a raw buffer for reading.
func RawBufferSRVBinding(slot uint32, buffer Buffer) BindingSetItem {
	return BindingSetItem{Slot: slot, Type: ResourceTypeRawBufferSRV, Resource: buffer, Range: EntireBuffer}
}

// RawBufferUAVBinding binds a raw buffer for writing.
func RawBufferUAVBinding(slot uint32, buffer Buffer) BindingSetItem {
	return BindingSetItem{Slot: slot, Type: ResourceTypeRawBufferUAV, Resource: buffer, Range: EntireBuffer}
}

// ConstantBufferBinding binds a constant buffer. Volatile buffers bind as
// VolatileConstantBuffer automatically.
func ConstantBufferBinding(slot uint32, buffer Buffer) BindingSetItem {
	t := ResourceTypeConstantBuffer
	if buffer != nil && buffer.Desc().IsVolatile {
		t = ResourceTypeVolatileConstantBuffer
	}
	return BindingSetItem{Slot: slot, Type: t, Resource: buffer, Range: EntireBuffer}
}

// SamplerBinding binds a sampler.
func SamplerBinding(slot uint32, sampler Sampler) BindingSetItem {
	return BindingSetItem{Slot: slot, Type: ResourceTypeSampler, Resource: sampler}
}

// AccelStructBinding binds a ray tracing acceleration structure.
func AccelStructBinding(slot uint32, as AccelStruct) BindingSetItem {
	return BindingSetItem{Slot: slot, Type: ResourceTypeRayTracingAccelStruct, Resource: as}
}

// PushConstantsBinding supplies a push constant block of byteSize bytes.
func PushConstantsBinding(slot uint32, byteSize uint32) BindingSetItem {
	return BindingSetItem{
		Slot:  slot,
		Type:  ResourceTypePushConstants,
		Range: BufferRange{ByteOffset: 0, ByteSize: uint64(byteSize)},
	}
}

// SamplerFeedbackBinding binds a sampler feedback map for writing.
func SamplerFeedbackBinding(slot uint32, texture SamplerFeedbackTexture) BindingSetItem {
	return BindingSetItem{
		Slot:         slot,
		Type:         ResourceTypeSamplerFeedbackUAV,
		Resource:     texture,
		Subresources: AllSubresources,
	}
}

// WithArrayElement returns a copy of the item placed at the given array
// element.
func (item BindingSetItem) WithArrayElement(element uint32) BindingSetItem {
	item.ArrayElement = element
	return item
}

// WithFormat returns a copy of the item with a reinterpreted view format.
func (item BindingSetItem) WithFormat(format Format) BindingSetItem {
	item.Format = format
	return item
}

// WithDimension returns a copy of the item with a reinterpreted view
// dimension.
func (item BindingSetItem) WithDimension(dimension TextureDimension) BindingSetItem {
	item.Dimension = dimension
	return item
}

// WithSubresources returns a copy of the item viewing the given
// subresources.
func (item BindingSetItem) WithSubresources(subresources TextureSubresourceSet) BindingSetItem {
	item.Subresources = subresources
	return item
}

// WithRange returns a copy of the item viewing the given buffer range.
func (item BindingSetItem) WithRange(r BufferRange) BindingSetItem {
	item.Range = r
	return item
}

// BindingSetDesc lists the resources bound against one layout. The item
// slots must exactly match the layout's declared slots.
type BindingSetDesc struct {
	Bindings []BindingSetItem
}

// BindingSet holds resources bound according to a layout.
type BindingSet interface {
	Resource
	// Desc returns the creation descriptor, or nil for descriptor
	// tables.
	Desc() *BindingSetDesc
	// Layout returns the layout the set was created against.
	Layout() BindingLayout
}

// DescriptorTable is a mutable binding set for bindless layouts. Entries
// are written with Device.WriteDescriptorTable, and the table can grow
// with Device.ResizeDescriptorTable.
type DescriptorTable interface {
	BindingSet
	// Capacity returns the current number of descriptor slots.
	Capacity() uint32
}
