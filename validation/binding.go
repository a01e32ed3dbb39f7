// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import "github.com/gogpu/rhi"

// CreateBindingLayout checks visibility, duplicate registers, volatile
// constant buffer counts, push constant blocks, item sizes, and the
// backend's register space rules.
func (d *Device) CreateBindingLayout(desc rhi.BindingLayoutDesc) (rhi.BindingLayout, error) {
	r := d.begin("CreateBindingLayout")

	summary := newBindingSummary()
	duplicates := make(locationSet)
	fillLayoutSummary(r, &desc, summary, duplicates)

	if desc.Visibility == rhi.ShaderTypeNone {
		r.errorf("cannot create a binding layout with visibility = None")
	}
	if !duplicates.empty() {
		r.errorf("the layout contains duplicate bindings: %v", duplicates)
	}
	if summary.numVolatileCBs > rhi.MaxVolatileConstantBuffersPerLayout {
		r.errorf("the layout contains too many volatile constant buffers (%d), the limit is %d",
			summary.numVolatileCBs, rhi.MaxVolatileConstantBuffersPerLayout)
	}

	noneItems := 0
	zeroSizeItems := 0
	pushConstantBlocks := 0
	for _, item := range desc.Bindings {
		if item.Type == rhi.ResourceTypeNone {
			noneItems++
		}
		if item.Type == rhi.ResourceTypePushConstants {
			if item.Size == 0 {
				r.errorf("push constant block size cannot be 0")
			}
			if item.Size > rhi.MaxPushConstantSize {
				r.errorf("push constant block size (%d) cannot exceed %d bytes", item.Size, rhi.MaxPushConstantSize)
			}
			if item.Size%4 != 0 {
				r.errorf("push constant block size (%d) must be a multiple of 4", item.Size)
			}
			pushConstantBlocks++
			continue
		}
		if item.Size == 0 {
			zeroSizeItems++
		}
		if item.Size > 1 && item.Type == rhi.ResourceTypeVolatileConstantBuffer {
			r.errorf("arrays of volatile constant buffers are not supported (size = %d at slot %d)", item.Size, item.Slot)
		}
	}
	if noneItems > 0 {
		r.errorf("the layout contains %d item(s) with type = None", noneItems)
	}
	if zeroSizeItems > 0 {
		r.errorf("the layout contains %d item(s) with size = 0", zeroSizeItems)
	}
	if pushConstantBlocks > 1 {
		r.errorf("the layout contains more than one (%d) push constant block", pushConstantBlocks)
	}

	api := d.inner.GraphicsAPI()
	if desc.RegisterSpace != 0 && !registerSpaceSupported(api, desc.RegisterSpaceIsDescriptorSet) {
		r.errorf("the layout has registerSpace = %d, which is unsupported by the %s backend", desc.RegisterSpace, api)
	}

	if err := r.finish(); err != nil {
		return nil, err
	}
	return d.inner.CreateBindingLayout(desc)
}

// CreateBindlessLayout checks visibility, capacity, register spaces,
// and that every declared type can live in a descriptor array.
func (d *Device) CreateBindlessLayout(desc rhi.BindlessLayoutDesc) (rhi.BindingLayout, error) {
	r := d.begin("CreateBindlessLayout")

	if desc.Visibility == rhi.ShaderTypeNone {
		r.errorf("cannot create a bindless layout with visibility = None")
	}
	if len(desc.RegisterSpaces) == 0 {
		r.errorf("the layout has no register spaces assigned")
	}
	if desc.MaxCapacity == 0 {
		r.errorf("the layout has maxCapacity = 0")
	}

	for _, item := range desc.RegisterSpaces {
		switch item.Type {
		case rhi.ResourceTypeTextureSRV,
			rhi.ResourceTypeTypedBufferSRV,
			rhi.ResourceTypeStructuredBufferSRV,
			rhi.ResourceTypeRawBufferSRV,
			rhi.ResourceTypeRayTracingAccelStruct,
			rhi.ResourceTypeConstantBuffer,
			rhi.ResourceTypeTextureUAV,
			rhi.ResourceTypeTypedBufferUAV,
			rhi.ResourceTypeStructuredBufferUAV,
			rhi.ResourceTypeRawBufferUAV:
		case rhi.ResourceTypeVolatileConstantBuffer:
			r.errorf("volatile constant buffers cannot be placed into a bindless layout (space %d)", item.Slot)
		case rhi.ResourceTypeSampler:
			r.errorf("bindless samplers are not supported (space %d)", item.Slot)
		case rhi.ResourceTypePushConstants:
			r.errorf("push constants cannot be placed into a bindless layout (space %d)", item.Slot)
		default:
			r.errorf("invalid resource type %d in space %d", item.Type, item.Slot)
		}
	}

	if err := r.finish(); err != nil {
		return nil, err
	}
	return d.inner.CreateBindlessLayout(desc)
}

// textureDimensionsCompatible reports whether a texture created with
// resourceDimension can be viewed as viewDimension. Besides the exact
// match, 3D and cube textures can be viewed as 2D arrays.
func textureDimensionsCompatible(resourceDimension, viewDimension rhi.TextureDimension) bool {
	if resourceDimension == viewDimension {
		return true
	}
	if viewDimension != rhi.TextureDimension2DArray {
		return false
	}
	switch resourceDimension {
	case rhi.TextureDimension3D, rhi.TextureDimensionCube, rhi.TextureDimensionCubeArray:
		return true
	}
	return false
}

// validateBindingSetItem checks one bound item against its declared
// type. Validation of an item stops at its first finding; findings
// from different items still aggregate into one report.
func (d *Device) validateBindingSetItem(r *report, item rhi.BindingSetItem, inDescriptorTable bool) {
	switch item.Type {
	case rhi.ResourceTypeNone:
		if !inDescriptorTable {
			r.errorf("bindings of type None are not allowed in binding sets (slot %d)", item.Slot)
		}

	case rhi.ResourceTypeTextureSRV, rhi.ResourceTypeTextureUAV:
		if item.Resource == nil {
			r.errorf("nil resources are not allowed for texture bindings (slot %d)", item.Slot)
			return
		}
		texture, ok := item.Resource.(rhi.Texture)
		if !ok {
			r.errorf("the resource bound as %v at slot %d is not a texture", item.Type, item.Slot)
			return
		}
		desc := texture.Desc()
		name := displayName(desc.DebugName)
		resolved := item.Subresources.Resolve(desc, false)
		if resolved.NumMipLevels == 0 || resolved.NumArraySlices == 0 {
			r.errorf("the subresource set (baseMipLevel = %d, numMipLevels = %d, baseArraySlice = %d, numArraySlices = %d) does not intersect texture %s (mipLevels = %d, arraySize = %d)",
				item.Subresources.BaseMipLevel, item.Subresources.NumMipLevels,
				item.Subresources.BaseArraySlice, item.Subresources.NumArraySlices,
				name, desc.MipLevels, desc.ArraySize)
			return
		}
		if item.Type == rhi.ResourceTypeTextureUAV && !desc.IsUAV {
			r.errorf("texture %s cannot be bound as a UAV because it was created without the isUAV flag", name)
			return
		}
		if item.Dimension != rhi.TextureDimensionUnknown &&
			!textureDimensionsCompatible(desc.Dimension, item.Dimension) {
			r.errorf("the requested view dimension (%s) is incompatible with the dimension (%s) of texture %s",
				item.Dimension, desc.Dimension, name)
			return
		}

	case rhi.ResourceTypeSamplerFeedbackUAV:
		// Feedback maps carry their own configuration; a nil resource
		// clears the slot.

	case rhi.ResourceTypeTypedBufferSRV, rhi.ResourceTypeTypedBufferUAV,
		rhi.ResourceTypeStructuredBufferSRV, rhi.ResourceTypeStructuredBufferUAV,
		rhi.ResourceTypeRawBufferSRV, rhi.ResourceTypeRawBufferUAV,
		rhi.ResourceTypeConstantBuffer, rhi.ResourceTypeVolatileConstantBuffer:
		d.validateBufferBinding(r, item)

	case rhi.ResourceTypeSampler:
		if item.Resource == nil {
			r.errorf("nil resources are not allowed for sampler bindings (slot %d)", item.Slot)
		}

	case rhi.ResourceTypeRayTracingAccelStruct:
		if item.Resource == nil {
			r.errorf("nil resources are not allowed for acceleration structure bindings (slot %d)", item.Slot)
		}

	case rhi.ResourceTypePushConstants:
		if inDescriptorTable {
			r.errorf("push constants cannot be used in a descriptor table")
			return
		}
		if item.Resource != nil {
			r.errorf("push constants cannot have a resource (slot %d)", item.Slot)
			return
		}
		if item.Range.ByteSize == 0 {
			r.errorf("push constants must have a nonzero size (slot %d)", item.Slot)
		}

	default:
		r.errorf("unrecognized resource type %d at slot %d", item.Type, item.Slot)
	}
}

// validateBufferBinding checks a buffer item against the capabilities
// its view class needs and the constant buffer range rules.
func (d *Device) validateBufferBinding(r *report, item rhi.BindingSetItem) {
	typed := item.Type == rhi.ResourceTypeTypedBufferSRV || item.Type == rhi.ResourceTypeTypedBufferUAV
	structured := item.Type == rhi.ResourceTypeStructuredBufferSRV || item.Type == rhi.ResourceTypeStructuredBufferUAV
	raw := item.Type == rhi.ResourceTypeRawBufferSRV || item.Type == rhi.ResourceTypeRawBufferUAV
	uav := item.Type == rhi.ResourceTypeTypedBufferUAV ||
		item.Type == rhi.ResourceTypeStructuredBufferUAV ||
		item.Type == rhi.ResourceTypeRawBufferUAV

	if item.Resource == nil {
		if !typed && !allowsNilBufferBindings(d.inner.GraphicsAPI()) {
			r.errorf("nil buffer bindings at slot %d are allowed only for typed buffers on the %s backend",
				item.Slot, d.inner.GraphicsAPI())
		}
		return
	}

	buffer, ok := item.Resource.(rhi.Buffer)
	if !ok {
		r.errorf("the resource bound as %v at slot %d is not a buffer", item.Type, item.Slot)
		return
	}
	desc := buffer.Desc()
	name := displayName(desc.DebugName)

	if typed && !desc.CanHaveTypedViews {
		r.errorf("cannot bind buffer %s as %v because it does not support typed views (BufferDesc.CanHaveTypedViews)", name, item.Type)
		return
	}
	if structured && desc.StructStride == 0 {
		r.errorf("cannot bind buffer %s as %v because it was created with structStride = 0", name, item.Type)
		return
	}
	if raw && !desc.CanHaveRawViews {
		r.errorf("cannot bind buffer %s as %v because it does not support raw views (BufferDesc.CanHaveRawViews)", name, item.Type)
		return
	}
	if uav && !desc.CanHaveUAVs {
		r.errorf("cannot bind buffer %s as %v because it does not support unordered access views (BufferDesc.CanHaveUAVs)", name, item.Type)
		return
	}
	if item.Type == rhi.ResourceTypeConstantBuffer || item.Type == rhi.ResourceTypeVolatileConstantBuffer {
		if !desc.IsConstantBuffer {
			r.errorf("cannot bind buffer %s as %v because it was created without the isConstantBuffer flag", name, item.Type)
			return
		}
		if item.Type == rhi.ResourceTypeConstantBuffer && desc.IsVolatile {
			r.errorf("cannot bind buffer %s as a regular ConstantBuffer because it is volatile", name)
			return
		}
		if item.Type == rhi.ResourceTypeVolatileConstantBuffer && !desc.IsVolatile {
			r.errorf("cannot bind buffer %s as a VolatileConstantBuffer because it was created without the isVolatile flag", name)
			return
		}
	}

	if typed && item.Format == rhi.FormatUnknown && desc.Format == rhi.FormatUnknown {
		r.errorf("both the binding for typed buffer %s and its BufferDesc have format = Unknown", name)
		return
	}

	if item.Type == rhi.ResourceTypeConstantBuffer && !item.Range.IsEntireBuffer(desc) {
		if !d.inner.QueryFeatureSupport(rhi.FeatureConstantBufferRanges) {
			r.errorf("partial constant buffer bindings are not supported by the device (used for %s)", name)
			return
		}
		resolved := item.Range.Resolve(desc)
		if resolved.ByteOffset%rhi.ConstantBufferOffsetSizeAlignment != 0 {
			r.errorf("constant buffer offsets must be multiples of %d bytes; buffer %s is bound with effective byteOffset = %d",
				uint64(rhi.ConstantBufferOffsetSizeAlignment), name, resolved.ByteOffset)
			return
		}
		if resolved.ByteSize == 0 || resolved.ByteSize%rhi.ConstantBufferOffsetSizeAlignment != 0 {
			r.errorf("constant buffer bindings must have a nonzero byteSize that is a multiple of %d bytes; buffer %s is bound with effective byteSize = %d",
				uint64(rhi.ConstantBufferOffsetSizeAlignment), name, resolved.ByteSize)
			return
		}
	}

	if item.Type == rhi.ResourceTypeVolatileConstantBuffer && !item.Range.IsEntireBuffer(desc) {
		resolved := item.Range.Resolve(desc)
		r.errorf("volatile constant buffers cannot be partially bound; buffer %s is bound with effective byteOffset = %d, byteSize = %d",
			name, resolved.ByteOffset, resolved.ByteSize)
	}
}

// CreateBindingSet checks the set against its layout register for
// register, validates each item, and forwards with wrapped resources
// unwrapped.
func (d *Device) CreateBindingSet(desc rhi.BindingSetDesc, layout rhi.BindingLayout) (rhi.BindingSet, error) {
	r := d.begin("CreateBindingSet")

	if layout == nil {
		r.errorf("cannot create a binding set without a layout")
		return nil, r.finish()
	}
	layoutDesc := layout.Desc()
	if layoutDesc == nil {
		r.errorf("cannot create a binding set from a bindless layout")
		return nil, r.finish()
	}

	layoutSummary := newBindingSummary()
	fillLayoutSummary(r, layoutDesc, layoutSummary, make(locationSet))

	setSummary := newBindingSummary()
	setDuplicates := make(locationSet)
	fillSetSummary(desc, layoutDesc.RegisterSpace, setSummary, setDuplicates)

	if missing := layoutSummary.locations.subtract(setSummary.locations); !missing.empty() {
		r.errorf("bindings declared in the layout are not present in the binding set: %v", missing)
	}
	if extra := setSummary.locations.subtract(layoutSummary.locations); !extra.empty() {
		r.errorf("bindings in the binding set are not declared in the layout: %v", extra)
	}
	if !setDuplicates.empty() {
		r.errorf("the binding set contains duplicate bindings: %v", setDuplicates)
	}

	for _, item := range desc.Bindings {
		d.validateBindingSetItem(r, item, false)
	}

	if err := r.finish(); err != nil {
		return nil, err
	}

	patched := desc
	patched.Bindings = make([]rhi.BindingSetItem, len(desc.Bindings))
	copy(patched.Bindings, desc.Bindings)
	for i := range patched.Bindings {
		patched.Bindings[i].Resource = unwrapResource(patched.Bindings[i].Resource)
	}
	return d.inner.CreateBindingSet(patched, layout)
}

// CreateDescriptorTable requires a bindless layout.
func (d *Device) CreateDescriptorTable(layout rhi.BindingLayout) (rhi.DescriptorTable, error) {
	r := d.begin("CreateDescriptorTable")
	if layout == nil || layout.BindlessDesc() == nil {
		r.errorf("descriptor tables can only be created from bindless layouts")
		return nil, r.finish()
	}
	return d.inner.CreateDescriptorTable(layout)
}

func (d *Device) ResizeDescriptorTable(table rhi.DescriptorTable, newSize uint32, keepContents bool) error {
	return d.inner.ResizeDescriptorTable(table, newSize, keepContents)
}

// WriteDescriptorTable validates the item under descriptor table rules
// and forwards with wrapped resources unwrapped.
func (d *Device) WriteDescriptorTable(table rhi.DescriptorTable, item rhi.BindingSetItem) error {
	r := d.begin("WriteDescriptorTable")
	d.validateBindingSetItem(r, item, true)
	if err := r.finish(); err != nil {
		return err
	}
	item.Resource = unwrapResource(item.Resource)
	return d.inner.WriteDescriptorTable(table, item)
}
