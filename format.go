// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

// Format is a texel or element format shared by textures, typed buffer
// views, vertex attributes, and index buffers.
type Format uint8

const (
	FormatUnknown Format = iota

	// 8-bit and 16-bit plain formats.
	FormatR8UInt
	FormatR8SInt
	FormatR8UNorm
	FormatR8SNorm
	FormatRG8UInt
	FormatRG8SInt
	FormatRG8UNorm
	FormatRG8SNorm
	FormatR16UInt
	FormatR16SInt
	FormatR16UNorm
	FormatR16SNorm
	FormatR16Float

	// Packed 16-bit formats.
	FormatBGRA4UNorm
	FormatB5G6R5UNorm
	FormatB5G5R5A1UNorm

	// 32-bit formats.
	FormatRGBA8UInt
	FormatRGBA8SInt
	FormatRGBA8UNorm
	FormatRGBA8SNorm
	FormatBGRA8UNorm
	FormatSRGBA8UNorm
	FormatSBGRA8UNorm
	FormatR10G10B10A2UNorm
	FormatR11G11B10Float
	FormatRG16UInt
	FormatRG16SInt
	FormatRG16UNorm
	FormatRG16SNorm
	FormatRG16Float
	FormatR32UInt
	FormatR32SInt
	FormatR32Float

	// 64-bit and wider formats.
	FormatRGBA16UInt
	FormatRGBA16SInt
	FormatRGBA16Float
	FormatRGBA16UNorm
	FormatRGBA16SNorm
	FormatRG32UInt
	FormatRG32SInt
	FormatRG32Float
	FormatRGB32UInt
	FormatRGB32SInt
	FormatRGB32Float
	FormatRGBA32UInt
	FormatRGBA32SInt
	FormatRGBA32Float

	// Depth-stencil formats and their shader-visible aliases.
	FormatD16
	FormatD24S8
	FormatX24G8UInt
	FormatD32
	FormatD32S8
	FormatX32G8UInt

	// Block-compressed formats.
	FormatBC1UNorm
	FormatBC1UNormSRGB
	FormatBC2UNorm
	FormatBC2UNormSRGB
	FormatBC3UNorm
	FormatBC3UNormSRGB
	FormatBC4UNorm
	FormatBC4SNorm
	FormatBC5UNorm
	FormatBC5SNorm
	FormatBC6HUFloat
	FormatBC6HSFloat
	FormatBC7UNorm
	FormatBC7UNormSRGB

	// FormatCount is the number of defined formats.
	FormatCount
)

// FormatKind classifies how texel data is interpreted.
type FormatKind uint8

const (
	// FormatKindInteger formats hold raw integer values.
	FormatKindInteger FormatKind = iota
	// FormatKindNormalized formats map integers to [0,1] or [-1,1].
	FormatKindNormalized
	// FormatKindFloat formats hold floating point values.
	FormatKindFloat
	// FormatKindDepthStencil formats back depth attachments.
	FormatKindDepthStencil
)

// FormatInfo describes the layout and channels of a format.
type FormatInfo struct {
	Format        Format
	Name          string
	BytesPerBlock uint8
	BlockSize     uint8
	Kind          FormatKind
	HasRed        bool
	HasGreen      bool
	HasBlue       bool
	HasAlpha      bool
	HasDepth      bool
	HasStencil    bool
	IsSigned      bool
	IsSRGB        bool
}

// formatInfo rows are indexed by Format value; the order must match the
// Format constant declarations exactly.
var formatInfo = [FormatCount]FormatInfo{
	//  format                name                 bpb blk  kind                    r      g      b      a      d      s      sgn    srgb
	{FormatUnknown, "UNKNOWN", 0, 0, FormatKindInteger, false, false, false, false, false, false, false, false},
	{FormatR8UInt, "R8_UINT", 1, 1, FormatKindInteger, true, false, false, false, false, false, false, false},
	{FormatR8SInt, "R8_SINT", 1, 1, FormatKindInteger, true, false, false, false, false, false, true, false},
	{FormatR8UNorm, "R8_UNORM", 1, 1, FormatKindNormalized, true, false, false, false, false, false, false, false},
	{FormatR8SNorm, "R8_SNORM", 1, 1, FormatKindNormalized, true, false, false, false, false, false, true, false},
	{FormatRG8UInt, "RG8_UINT", 2, 1, FormatKindInteger, true, true, false, false, false, false, false, false},
	{FormatRG8SInt, "RG8_SINT", 2, 1, FormatKindInteger, true, true, false, false, false, false, true, false},
	{FormatRG8UNorm, "RG8_UNORM", 2, 1, FormatKindNormalized, true, true, false, false, false, false, false, false},
	{FormatRG8SNorm, "RG8_SNORM", 2, 1, FormatKindNormalized, true, true, false, false, false, false, true, false},
	{FormatR16UInt, "R16_UINT", 2, 1, FormatKindInteger, true, false, false, false, false, false, false, false},
	{FormatR16SInt, "R16_SINT", 2, 1, FormatKindInteger, true, false, false, false, false, false, true, false},
	{FormatR16UNorm, "R16_UNORM", 2, 1, FormatKindNormalized, true, false, false, false, false, false, false, false},
	{FormatR16SNorm, "R16_SNORM", 2, 1, FormatKindNormalized, true, false, false, false, false, false, true, false},
	{FormatR16Float, "R16_FLOAT", 2, 1, FormatKindFloat, true, false, false, false, false, false, true, false},
	{FormatBGRA4UNorm, "BGRA4_UNORM", 2, 1, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatB5G6R5UNorm, "B5G6R5_UNORM", 2, 1, FormatKindNormalized, true, true, true, false, false, false, false, false},
	{FormatB5G5R5A1UNorm, "B5G5R5A1_UNORM", 2, 1, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatRGBA8UInt, "RGBA8_UINT", 4, 1, FormatKindInteger, true, true, true, true, false, false, false, false},
	{FormatRGBA8SInt, "RGBA8_SINT", 4, 1, FormatKindInteger, true, true, true, true, false, false, true, false},
	{FormatRGBA8UNorm, "RGBA8_UNORM", 4, 1, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatRGBA8SNorm, "RGBA8_SNORM", 4, 1, FormatKindNormalized, true, true, true, true, false, false, true, false},
	{FormatBGRA8UNorm, "BGRA8_UNORM", 4, 1, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatSRGBA8UNorm, "SRGBA8_UNORM", 4, 1, FormatKindNormalized, true, true, true, true, false, false, false, true},
	{FormatSBGRA8UNorm, "SBGRA8_UNORM", 4, 1, FormatKindNormalized, true, true, true, true, false, false, false, true},
	{FormatR10G10B10A2UNorm, "R10G10B10A2_UNORM", 4, 1, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatR11G11B10Float, "R11G11B10_FLOAT", 4, 1, FormatKindFloat, true, true, true, false, false, false, false, false},
	{FormatRG16UInt, "RG16_UINT", 4, 1, FormatKindInteger, true, true, false, false, false, false, false, false},
	{FormatRG16SInt, "RG16_SINT", 4, 1, FormatKindInteger, true, true, false, false, false, false, true, false},
	{FormatRG16UNorm, "RG16_UNORM", 4, 1, FormatKindNormalized, true, true, false, false, false, false, false, false},
	{FormatRG16SNorm, "RG16_SNORM", 4, 1, FormatKindNormalized, true, true, false, false, false, false, true, false},
	{FormatRG16Float, "RG16_FLOAT", 4, 1, FormatKindFloat, true, true, false, false, false, false, true, false},
	{FormatR32UInt, "R32_UINT", 4, 1, FormatKindInteger, true, false, false, false, false, false, false, false},
	{FormatR32SInt, "R32_SINT", 4, 1, FormatKindInteger, true, false, false, false, false, false, true, false},
	{FormatR32Float, "R32_FLOAT", 4, 1, FormatKindFloat, true, false, false, false, false, false, true, false},
	{FormatRGBA16UInt, "RGBA16_UINT", 8, 1, FormatKindInteger, true, true, true, true, false, false, false, false},
	{FormatRGBA16SInt, "RGBA16_SINT", 8, 1, FormatKindInteger, true, true, true, true, false, false, true, false},
	{FormatRGBA16Float, "RGBA16_FLOAT", 8, 1, FormatKindFloat, true, true, true, true, false, false, true, false},
	{FormatRGBA16UNorm, "RGBA16_UNORM", 8, 1, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatRGBA16SNorm, "RGBA16_SNORM", 8, 1, FormatKindNormalized, true, true, true, true, false, false, true, false},
	{FormatRG32UInt, "RG32_UINT", 8, 1, FormatKindInteger, true, true, false, false, false, false, false, false},
	{FormatRG32SInt, "RG32_SINT", 8, 1, FormatKindInteger, true, true, false, false, false, false, true, false},
	{FormatRG32Float, "RG32_FLOAT", 8, 1, FormatKindFloat, true, true, false, false, false, false, true, false},
	{FormatRGB32UInt, "RGB32_UINT", 12, 1, FormatKindInteger, true, true, true, false, false, false, false, false},
	{FormatRGB32SInt, "RGB32_SINT", 12, 1, FormatKindInteger, true, true, true, false, false, false, true, false},
	{FormatRGB32Float, "RGB32_FLOAT", 12, 1, FormatKindFloat, true, true, true, false, false, false, true, false},
	{FormatRGBA32UInt, "RGBA32_UINT", 16, 1, FormatKindInteger, true, true, true, true, false, false, false, false},
	{FormatRGBA32SInt, "RGBA32_SINT", 16, 1, FormatKindInteger, true, true, true, true, false, false, true, false},
	{FormatRGBA32Float, "RGBA32_FLOAT", 16, 1, FormatKindFloat, true, true, true, true, false, false, true, false},
	{FormatD16, "D16", 2, 1, FormatKindDepthStencil, false, false, false, false, true, false, false, false},
	{FormatD24S8, "D24S8", 4, 1, FormatKindDepthStencil, false, false, false, false, true, true, false, false},
	{FormatX24G8UInt, "X24G8_UINT", 4, 1, FormatKindInteger, false, false, false, false, false, true, false, false},
	{FormatD32, "D32", 4, 1, FormatKindDepthStencil, false, false, false, false, true, false, false, false},
	{FormatD32S8, "D32S8", 8, 1, FormatKindDepthStencil, false, false, false, false, true, true, false, false},
	{FormatX32G8UInt, "X32G8_UINT", 8, 1, FormatKindInteger, false, false, false, false, false, true, false, false},
	{FormatBC1UNorm, "BC1_UNORM", 8, 4, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatBC1UNormSRGB, "BC1_UNORM_SRGB", 8, 4, FormatKindNormalized, true, true, true, true, false, false, false, true},
	{FormatBC2UNorm, "BC2_UNORM", 16, 4, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatBC2UNormSRGB, "BC2_UNORM_SRGB", 16, 4, FormatKindNormalized, true, true, true, true, false, false, false, true},
	{FormatBC3UNorm, "BC3_UNORM", 16, 4, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatBC3UNormSRGB, "BC3_UNORM_SRGB", 16, 4, FormatKindNormalized, true, true, true, true, false, false, false, true},
	{FormatBC4UNorm, "BC4_UNORM", 8, 4, FormatKindNormalized, true, false, false, false, false, false, false, false},
	{FormatBC4SNorm, "BC4_SNORM", 8, 4, FormatKindNormalized, true, false, false, false, false, false, true, false},
	{FormatBC5UNorm, "BC5_UNORM", 16, 4, FormatKindNormalized, true, true, false, false, false, false, false, false},
	{FormatBC5SNorm, "BC5_SNORM", 16, 4, FormatKindNormalized, true, true, false, false, false, false, true, false},
	{FormatBC6HUFloat, "BC6H_UFLOAT", 16, 4, FormatKindFloat, true, true, true, false, false, false, false, false},
	{FormatBC6HSFloat, "BC6H_SFLOAT", 16, 4, FormatKindFloat, true, true, true, false, false, false, true, false},
	{FormatBC7UNorm, "BC7_UNORM", 16, 4, FormatKindNormalized, true, true, true, true, false, false, false, false},
	{FormatBC7UNormSRGB, "BC7_UNORM_SRGB", 16, 4, FormatKindNormalized, true, true, true, true, false, false, false, true},
}

// Info returns the layout description of the format. Out-of-range values
// report as UNKNOWN.
func (f Format) Info() FormatInfo {
	if f >= FormatCount {
		return formatInfo[FormatUnknown]
	}
	return formatInfo[f]
}

// String returns the canonical format name.
func (f Format) String() string { return f.Info().Name }

// IsDepthStencil reports whether the format backs depth attachments.
func (f Format) IsDepthStencil() bool { return f.Info().Kind == FormatKindDepthStencil }

// FormatSupport is a bitmask of device capabilities for one format,
// answered by Device.QueryFormatSupport.
type FormatSupport uint32

const (
	FormatSupportNone FormatSupport = 0

	FormatSupportBuffer FormatSupport = 1 << (iota - 1)
	FormatSupportIndexBuffer
	FormatSupportVertexBuffer
	FormatSupportTexture
	FormatSupportDepthStencil
	FormatSupportRenderTarget
	FormatSupportBlendable
	FormatSupportShaderLoad
	FormatSupportShaderSample
	FormatSupportShaderUAVLoad
	FormatSupportShaderUAVStore
	FormatSupportShaderAtomic
)
