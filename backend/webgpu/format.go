// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rhi"
)

// textureFormat maps an rhi format to its WebGPU equivalent. The second
// result is false for formats WebGPU does not express.
func textureFormat(format rhi.Format) (gputypes.TextureFormat, bool) {
	switch format {
	case rhi.FormatR8UNorm:
		return gputypes.TextureFormatR8Unorm, true
	case rhi.FormatRGBA8UNorm:
		return gputypes.TextureFormatRGBA8Unorm, true
	case rhi.FormatBGRA8UNorm:
		return gputypes.TextureFormatBGRA8Unorm, true
	case rhi.FormatD24S8:
		return gputypes.TextureFormatDepth24PlusStencil8, true
	default:
		return gputypes.TextureFormatUndefined, false
	}
}

// formatSupport answers QueryFormatSupport for the formats textureFormat
// maps. Storage texture and typed buffer bits stay clear; the device
// binds neither.
var formatSupport = map[rhi.Format]rhi.FormatSupport{
	rhi.FormatR8UNorm: rhi.FormatSupportTexture | rhi.FormatSupportRenderTarget |
		rhi.FormatSupportBlendable | rhi.FormatSupportShaderLoad | rhi.FormatSupportShaderSample,
	rhi.FormatRGBA8UNorm: rhi.FormatSupportTexture | rhi.FormatSupportRenderTarget |
		rhi.FormatSupportBlendable | rhi.FormatSupportShaderLoad | rhi.FormatSupportShaderSample,
	rhi.FormatBGRA8UNorm: rhi.FormatSupportTexture | rhi.FormatSupportRenderTarget |
		rhi.FormatSupportBlendable | rhi.FormatSupportShaderLoad | rhi.FormatSupportShaderSample,
	rhi.FormatD24S8: rhi.FormatSupportTexture | rhi.FormatSupportDepthStencil |
		rhi.FormatSupportShaderSample,
}

// bufferUsage derives the hal usage flags from a buffer descriptor.
// CPU-accessible buffers become dedicated staging buffers; mappable
// usage does not combine with shader bindings. Index and indirect
// usages are not mapped because the device records no draws.
func bufferUsage(desc rhi.BufferDesc) gputypes.BufferUsage {
	switch desc.CPUAccess {
	case rhi.CPUAccessRead:
		return gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst
	case rhi.CPUAccessWrite:
		return gputypes.BufferUsageMapWrite | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst
	}
	usage := gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst
	if desc.IsConstantBuffer {
		usage |= gputypes.BufferUsageUniform
	}
	if desc.CanHaveUAVs || desc.CanHaveRawViews || desc.StructStride != 0 {
		usage |= gputypes.BufferUsageStorage
	}
	if desc.IsVertexBuffer {
		usage |= gputypes.BufferUsageVertex
	}
	return usage
}

// textureUsage derives the hal usage flags from a texture descriptor.
// Copy usage is always present so queue uploads and readback work.
func textureUsage(desc rhi.TextureDesc) gputypes.TextureUsage {
	usage := gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst
	if desc.IsShaderResource {
		usage |= gputypes.TextureUsageTextureBinding
	}
	if desc.IsRenderTarget {
		usage |= gputypes.TextureUsageRenderAttachment
	}
	return usage
}

// textureDimension maps an rhi texture dimension to the hal dimension.
// Array and multisample variants collapse onto their base dimension;
// layer count and sample count carry the rest.
func textureDimension(dim rhi.TextureDimension) (gputypes.TextureDimension, bool) {
	switch dim {
	case rhi.TextureDimension1D, rhi.TextureDimension1DArray:
		return gputypes.TextureDimension1D, true
	case rhi.TextureDimension2D, rhi.TextureDimension2DArray,
		rhi.TextureDimensionCube, rhi.TextureDimensionCubeArray,
		rhi.TextureDimension2DMS, rhi.TextureDimension2DMSArray:
		return gputypes.TextureDimension2D, true
	case rhi.TextureDimension3D:
		return gputypes.TextureDimension3D, true
	default:
		return gputypes.TextureDimension2D, false
	}
}

// textureLayers returns the DepthOrArrayLayers extent of a texture.
func textureLayers(desc rhi.TextureDesc) uint32 {
	if desc.Dimension == rhi.TextureDimension3D {
		return max(desc.Depth, 1)
	}
	return max(desc.ArraySize, 1)
}
