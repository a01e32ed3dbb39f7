// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import (
	"fmt"
	"strings"

	"github.com/gogpu/rhi"
)

// Descriptors that arrive without a debug name are patched with a
// generated one before they reach the backend, so that later
// diagnostics can identify the resource.

func generatedHeapName(desc rhi.HeapDesc) string {
	return fmt.Sprintf("Unnamed Heap (%s, %d bytes)", desc.Type, desc.Capacity)
}

func generatedTextureName(desc rhi.TextureDesc) string {
	return fmt.Sprintf("Unnamed %s (%s, %dx%dx%d, %d mips)",
		desc.Dimension, desc.Format, desc.Width, desc.Height, desc.Depth, desc.MipLevels)
}

func generatedBufferName(desc rhi.BufferDesc) string {
	return fmt.Sprintf("Unnamed Buffer (%d bytes)", desc.ByteSize)
}

// CreateHeap rejects zero-capacity heaps.
func (d *Device) CreateHeap(desc rhi.HeapDesc) (rhi.Heap, error) {
	r := d.begin("CreateHeap")
	if desc.Capacity == 0 {
		r.errorf("cannot create a heap with capacity = 0")
		return nil, r.finish()
	}
	if desc.DebugName == "" {
		desc.DebugName = generatedHeapName(desc)
	}
	return d.inner.CreateHeap(desc)
}

// CreateTexture checks the descriptor's extents, array size, sample
// count, and flags against the declared dimension, and the initial
// state and virtual flags against device support.
func (d *Device) CreateTexture(desc rhi.TextureDesc) (rhi.Texture, error) {
	r := d.begin("CreateTexture")

	switch desc.Dimension {
	case rhi.TextureDimension1D, rhi.TextureDimension1DArray,
		rhi.TextureDimension2D, rhi.TextureDimension2DArray,
		rhi.TextureDimensionCube, rhi.TextureDimensionCubeArray,
		rhi.TextureDimension2DMS, rhi.TextureDimension2DMSArray,
		rhi.TextureDimension3D:
	default:
		r.errorf("unknown texture dimension")
		return nil, r.finish()
	}

	name := fmt.Sprintf("%s %s", desc.Dimension, displayName(desc.DebugName))

	if desc.Width == 0 || desc.Height == 0 || desc.Depth == 0 ||
		desc.ArraySize == 0 || desc.MipLevels == 0 {
		r.errorf("%s: width (%d), height (%d), depth (%d), arraySize (%d) and mipLevels (%d) must all be nonzero",
			name, desc.Width, desc.Height, desc.Depth, desc.ArraySize, desc.MipLevels)
		return nil, r.finish()
	}

	switch desc.Dimension {
	case rhi.TextureDimension1D, rhi.TextureDimension1DArray:
		if desc.Height != 1 {
			r.errorf("%s: height (%d) must be 1", name, desc.Height)
		}
	}

	if desc.Dimension != rhi.TextureDimension3D && desc.Depth != 1 {
		r.errorf("%s: depth (%d) must be 1", name, desc.Depth)
	}

	switch desc.Dimension {
	case rhi.TextureDimension1D, rhi.TextureDimension2D,
		rhi.TextureDimension2DMS, rhi.TextureDimension3D:
		if desc.ArraySize != 1 {
			r.errorf("%s: arraySize (%d) must be 1", name, desc.ArraySize)
		}
	case rhi.TextureDimensionCube:
		if desc.ArraySize != 6 {
			r.errorf("%s: arraySize (%d) must be 6", name, desc.ArraySize)
		}
	case rhi.TextureDimensionCubeArray:
		if desc.ArraySize%6 != 0 {
			r.errorf("%s: arraySize (%d) must be a multiple of 6", name, desc.ArraySize)
		}
	}

	if desc.Dimension.IsMultisampled() {
		switch desc.SampleCount {
		case 2, 4, 8:
		default:
			r.errorf("%s: sampleCount (%d) must be 2, 4 or 8", name, desc.SampleCount)
		}
		if desc.IsUAV {
			r.errorf("%s: multisampled textures cannot have unordered access views", name)
		}
	} else if desc.SampleCount != 1 {
		r.errorf("%s: sampleCount (%d) must be 1", name, desc.SampleCount)
	}

	if desc.IsVirtual && !d.inner.QueryFeatureSupport(rhi.FeatureVirtualResources) {
		r.errorf("%s: the device does not support virtual resources", name)
	}

	if desc.KeepInitialState && desc.InitialState == rhi.ResourceStateUnknown {
		r.errorf("%s has initialState = Unknown, which is incompatible with keepInitialState = true", name)
	}

	if err := r.finish(); err != nil {
		return nil, err
	}

	if desc.DebugName == "" {
		desc.DebugName = generatedTextureName(desc)
	}
	return d.inner.CreateTexture(desc)
}

// TextureMemoryRequirements reports a zero-size backend answer as a
// defect of the wrapped device.
func (d *Device) TextureMemoryRequirements(texture rhi.Texture) (rhi.MemoryRequirements, error) {
	r := d.begin("TextureMemoryRequirements")
	if texture == nil {
		r.errorf("texture is nil")
		return rhi.MemoryRequirements{}, r.finish()
	}
	memReq, err := d.inner.TextureMemoryRequirements(texture)
	if err != nil {
		return rhi.MemoryRequirements{}, err
	}
	if memReq.Size == 0 {
		r.errorf("the device reported zero memory size for texture %s", displayName(texture.Desc().DebugName))
		return memReq, r.finish()
	}
	return memReq, nil
}

// BindTextureMemory checks that the texture is virtual and that its
// memory requirements fit the heap at offset.
func (d *Device) BindTextureMemory(texture rhi.Texture, heap rhi.Heap, offset uint64) error {
	r := d.begin("BindTextureMemory")
	if texture == nil {
		r.errorf("texture is nil")
	}
	if heap == nil {
		r.errorf("heap is nil")
	}
	if r.failed() {
		return r.finish()
	}

	desc := texture.Desc()
	if !desc.IsVirtual {
		r.errorf("cannot bind memory to texture %s because it was created with isVirtual = false", displayName(desc.DebugName))
		return r.finish()
	}

	memReq, err := d.inner.TextureMemoryRequirements(texture)
	if err != nil {
		return err
	}
	validateHeapPlacement(r, "texture", displayName(desc.DebugName), heap, offset, memReq)
	if r.failed() {
		return r.finish()
	}
	return d.inner.BindTextureMemory(texture, heap, offset)
}

// CreateStagingTexture patches an empty debug name and forwards.
// Staging textures reuse TextureDesc but only its extents and format
// matter, so the shape rules do not apply.
func (d *Device) CreateStagingTexture(desc rhi.TextureDesc, cpuAccess rhi.CPUAccessMode) (rhi.StagingTexture, error) {
	if desc.DebugName == "" {
		desc.DebugName = generatedTextureName(desc)
	}
	return d.inner.CreateStagingTexture(desc, cpuAccess)
}

// CreateSamplerFeedbackTexture checks device support for sampler
// feedback before forwarding.
func (d *Device) CreateSamplerFeedbackTexture(pairedTexture rhi.Texture, desc rhi.SamplerFeedbackTextureDesc) (rhi.SamplerFeedbackTexture, error) {
	r := d.begin("CreateSamplerFeedbackTexture")
	if !d.inner.QueryFeatureSupport(rhi.FeatureSamplerFeedback) {
		r.errorf("the current graphics API (%s) does not support sampler feedback textures", d.inner.GraphicsAPI())
	}
	if pairedTexture == nil {
		r.errorf("pairedTexture is nil")
	}
	if r.failed() {
		return nil, r.finish()
	}
	return d.inner.CreateSamplerFeedbackTexture(pairedTexture, desc)
}

// CreateSamplerFeedbackForNativeTexture checks device support for
// sampler feedback before forwarding.
func (d *Device) CreateSamplerFeedbackForNativeTexture(objectType rhi.ObjectType, texture rhi.Object, pairedTexture rhi.Texture) (rhi.SamplerFeedbackTexture, error) {
	r := d.begin("CreateSamplerFeedbackForNativeTexture")
	if !d.inner.QueryFeatureSupport(rhi.FeatureSamplerFeedback) {
		r.errorf("the current graphics API (%s) does not support sampler feedback textures", d.inner.GraphicsAPI())
		return nil, r.finish()
	}
	return d.inner.CreateSamplerFeedbackForNativeTexture(objectType, texture, pairedTexture)
}

// volatileBufferUsageFlags lists the usage flags that are set on desc
// and incompatible with volatile buffers.
func volatileBufferUsageFlags(desc rhi.BufferDesc) []string {
	var flags []string
	if desc.IsVertexBuffer {
		flags = append(flags, "IsVertexBuffer")
	}
	if desc.IsIndexBuffer {
		flags = append(flags, "IsIndexBuffer")
	}
	if desc.IsDrawIndirectArgs {
		flags = append(flags, "IsDrawIndirectArgs")
	}
	if desc.CanHaveUAVs {
		flags = append(flags, "CanHaveUAVs")
	}
	if desc.IsAccelStructBuildInput {
		flags = append(flags, "IsAccelStructBuildInput")
	}
	if desc.IsAccelStructStorage {
		flags = append(flags, "IsAccelStructStorage")
	}
	if desc.IsShaderBindingTable {
		flags = append(flags, "IsShaderBindingTable")
	}
	if desc.IsVirtual {
		flags = append(flags, "IsVirtual")
	}
	return flags
}

// CreateBuffer checks the volatile buffer constraints and the initial
// state and virtual flags against device support.
func (d *Device) CreateBuffer(desc rhi.BufferDesc) (rhi.Buffer, error) {
	if desc.DebugName == "" {
		desc.DebugName = generatedBufferName(desc)
	}

	r := d.begin("CreateBuffer")

	if desc.IsVolatile {
		if !desc.IsConstantBuffer {
			r.errorf("buffer %s is volatile but is not a constant buffer; only constant buffers can be volatile", desc.DebugName)
		}
		if desc.MaxVersions == 0 {
			r.errorf("volatile constant buffer %s has maxVersions = 0", desc.DebugName)
		}
		if flags := volatileBufferUsageFlags(desc); len(flags) > 0 {
			r.errorf("buffer %s is volatile but has unsupported usage flags: %s; volatile buffers hold only constants and cannot be virtual",
				desc.DebugName, strings.Join(flags, ", "))
		}
		if desc.CPUAccess != rhi.CPUAccessNone {
			r.errorf("volatile constant buffer %s must have cpuAccess = None; write-discard access is implied", desc.DebugName)
		}
	}

	if desc.IsVirtual && !d.inner.QueryFeatureSupport(rhi.FeatureVirtualResources) {
		r.errorf("buffer %s: the device does not support virtual resources", desc.DebugName)
	}

	if desc.KeepInitialState && desc.InitialState == rhi.ResourceStateUnknown {
		r.errorf("buffer %s has initialState = Unknown, which is incompatible with keepInitialState = true", desc.DebugName)
	}

	if err := r.finish(); err != nil {
		return nil, err
	}
	return d.inner.CreateBuffer(desc)
}

// BufferMemoryRequirements reports a zero-size backend answer as a
// defect of the wrapped device.
func (d *Device) BufferMemoryRequirements(buffer rhi.Buffer) (rhi.MemoryRequirements, error) {
	r := d.begin("BufferMemoryRequirements")
	if buffer == nil {
		r.errorf("buffer is nil")
		return rhi.MemoryRequirements{}, r.finish()
	}
	memReq, err := d.inner.BufferMemoryRequirements(buffer)
	if err != nil {
		return rhi.MemoryRequirements{}, err
	}
	if memReq.Size == 0 {
		r.errorf("the device reported zero memory size for buffer %s", displayName(buffer.Desc().DebugName))
		return memReq, r.finish()
	}
	return memReq, nil
}

// BindBufferMemory checks that the buffer is virtual and that its
// memory requirements fit the heap at offset.
func (d *Device) BindBufferMemory(buffer rhi.Buffer, heap rhi.Heap, offset uint64) error {
	r := d.begin("BindBufferMemory")
	if buffer == nil {
		r.errorf("buffer is nil")
	}
	if heap == nil {
		r.errorf("heap is nil")
	}
	if r.failed() {
		return r.finish()
	}

	desc := buffer.Desc()
	if !desc.IsVirtual {
		r.errorf("cannot bind memory to buffer %s because it was created with isVirtual = false", displayName(desc.DebugName))
		return r.finish()
	}

	memReq, err := d.inner.BufferMemoryRequirements(buffer)
	if err != nil {
		return err
	}
	validateHeapPlacement(r, "buffer", displayName(desc.DebugName), heap, offset, memReq)
	if r.failed() {
		return r.finish()
	}
	return d.inner.BindBufferMemory(buffer, heap, offset)
}

// validateHeapPlacement checks that a resource with the given memory
// requirements fits the heap at offset and lands on the required
// alignment.
func validateHeapPlacement(r *report, kind, name string, heap rhi.Heap, offset uint64, memReq rhi.MemoryRequirements) {
	heapDesc := heap.Desc()
	if offset+memReq.Size > heapDesc.Capacity {
		r.errorf("%s %s does not fit into heap %s at offset %d: it requires %d bytes and the heap capacity is %d bytes",
			kind, name, displayName(heapDesc.DebugName), offset, memReq.Size, heapDesc.Capacity)
	}
	if memReq.Alignment != 0 && offset%memReq.Alignment != 0 {
		r.errorf("%s %s is placed in heap %s at a misaligned offset: required alignment is %d bytes, actual offset is %d bytes",
			kind, name, displayName(heapDesc.DebugName), memReq.Alignment, offset)
	}
}
