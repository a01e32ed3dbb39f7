// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import "github.com/gogpu/rhi"

// Backend capabilities that shape validation rules but are properties
// of the API rather than the device. Device-dependent capabilities go
// through rhi.Feature queries instead.

// registerSpaceSupported reports whether the backend accepts a nonzero
// register space on a binding layout. D3D12 supports register spaces
// natively; Vulkan and WebGPU support them only when the layout maps
// its space to a descriptor set index.
func registerSpaceSupported(api rhi.GraphicsAPI, spaceIsDescriptorSet bool) bool {
	switch api {
	case rhi.GraphicsAPID3D12:
		return true
	case rhi.GraphicsAPIVulkan, rhi.GraphicsAPIWebGPU:
		return spaceIsDescriptorSet
	default:
		return false
	}
}

// bindsContiguousSlots reports whether the backend binds each layout
// with one contiguous register range per class, so that overlapping
// ranges from different layouts clobber each other even when the
// individual slots are distinct.
func bindsContiguousSlots(api rhi.GraphicsAPI) bool {
	return api == rhi.GraphicsAPID3D11
}

// allowsNilBufferBindings reports whether the backend tolerates nil
// buffer resources in bindings of any buffer view class. Typed buffer
// bindings may be nil on every backend.
func allowsNilBufferBindings(api rhi.GraphicsAPI) bool {
	return api == rhi.GraphicsAPIVulkan || api == rhi.GraphicsAPIWebGPU
}
