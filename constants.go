// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

// Limits shared by all backends. Descriptors that exceed them are rejected
// by the validation layer before reaching the device.
const (
	// MaxRenderTargets is the number of color attachments a framebuffer
	// can carry.
	MaxRenderTargets = 8

	// MaxViewports is the number of simultaneous viewports and scissor
	// rectangles in a ViewportState.
	MaxViewports = 16

	// MaxVertexAttributes is the number of attributes in an input layout.
	MaxVertexAttributes = 16

	// MaxBindingLayouts is the number of binding layouts a pipeline can
	// reference, and the number of descriptor sets on APIs that map
	// register spaces to descriptor sets.
	MaxBindingLayouts = 8

	// MaxBindlessRegisterSpaces is the number of register spaces a single
	// bindless layout can cover.
	MaxBindlessRegisterSpaces = 16

	// MaxVolatileConstantBuffersPerLayout limits volatile constant buffer
	// declarations in one binding layout.
	MaxVolatileConstantBuffersPerLayout = 6

	// MaxVolatileConstantBuffers limits volatile constant buffers bound
	// across a whole pipeline.
	MaxVolatileConstantBuffers = 32

	// MaxPushConstantSize is the push constant block limit in bytes.
	// D3D12 root signatures hold 256 bytes total; Vulkan guarantees 128
	// bytes of push constants.
	MaxPushConstantSize = 128

	// ConstantBufferOffsetSizeAlignment applies to partially bound
	// constant buffers: offsets must be aligned to it and sizes must be
	// multiples of it.
	ConstantBufferOffsetSizeAlignment = 256
)
