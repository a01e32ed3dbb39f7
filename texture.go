// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

// TextureDimension selects the shape of a texture resource.
type TextureDimension uint8

const (
	// TextureDimensionUnknown is the zero value; textures must declare a
	// concrete dimension.
	TextureDimensionUnknown TextureDimension = iota
	TextureDimension1D
	TextureDimension1DArray
	TextureDimension2D
	TextureDimension2DArray
	TextureDimensionCube
	TextureDimensionCubeArray
	TextureDimension2DMS
	TextureDimension2DMSArray
	TextureDimension3D
)

var textureDimensionNames = [...]string{
	TextureDimensionUnknown:   "Unknown",
	TextureDimension1D:        "Texture1D",
	TextureDimension1DArray:   "Texture1DArray",
	TextureDimension2D:        "Texture2D",
	TextureDimension2DArray:   "Texture2DArray",
	TextureDimensionCube:      "TextureCube",
	TextureDimensionCubeArray: "TextureCubeArray",
	TextureDimension2DMS:      "Texture2DMS",
	TextureDimension2DMSArray: "Texture2DMSArray",
	TextureDimension3D:        "Texture3D",
}

// String returns the dimension name.
func (d TextureDimension) String() string {
	if int(d) < len(textureDimensionNames) {
		return textureDimensionNames[d]
	}
	return "Invalid"
}

// IsArray reports whether the dimension carries array slices.
func (d TextureDimension) IsArray() bool {
	switch d {
	case TextureDimension1DArray, TextureDimension2DArray,
		TextureDimensionCube, TextureDimensionCubeArray,
		TextureDimension2DMSArray:
		return true
	default:
		return false
	}
}

// IsMultisampled reports whether the dimension holds multisampled texels.
func (d TextureDimension) IsMultisampled() bool {
	return d == TextureDimension2DMS || d == TextureDimension2DMSArray
}

// TextureDesc describes a texture resource. All extent fields, ArraySize,
// MipLevels, and SampleCount must be at least 1.
type TextureDesc struct {
	Width       uint32
	Height      uint32
	Depth       uint32
	ArraySize   uint32
	MipLevels   uint32
	SampleCount uint32
	// SampleQuality is the backend-specific MSAA quality level.
	SampleQuality uint32
	Format        Format
	Dimension     TextureDimension
	// DebugName appears in diagnostics and native object names. Devices
	// assign a generated name when it is empty.
	DebugName string

	IsShaderResource bool
	IsRenderTarget   bool
	IsUAV            bool
	IsTypeless       bool
	// IsShadingRateSurface marks the texture as a variable rate shading
	// source image.
	IsShadingRateSurface bool

	// IsVirtual creates the texture without backing memory; bind memory
	// later with Device.BindTextureMemory.
	IsVirtual bool
	// IsTiled creates a reserved texture whose tiles are mapped with
	// Device.UpdateTextureTileMappings.
	IsTiled bool

	ClearValue    Color
	UseClearValue bool

	InitialState ResourceState
	// KeepInitialState makes command lists begin tracking the texture in
	// InitialState and return it to that state on close.
	KeepInitialState bool
}

// TextureSlice addresses a region of one mip level of a texture. Zero
// Width, Height, or Depth resolve to the full extent of the mip level.
type TextureSlice struct {
	X uint32
	Y uint32
	Z uint32

	Width  uint32
	Height uint32
	Depth  uint32

	MipLevel   uint32
	ArraySlice uint32
}

// Resolve replaces zero extents with the full extent of the addressed mip
// level.
func (s TextureSlice) Resolve(desc TextureDesc) TextureSlice {
	out := s
	if out.Width == 0 {
		out.Width = max(desc.Width>>s.MipLevel, 1)
	}
	if out.Height == 0 {
		out.Height = max(desc.Height>>s.MipLevel, 1)
	}
	if out.Depth == 0 {
		if desc.Dimension == TextureDimension3D {
			out.Depth = max(desc.Depth>>s.MipLevel, 1)
		} else {
			out.Depth = 1
		}
	}
	return out
}

// AllMipLevels and AllArraySlices are sentinel counts for
// TextureSubresourceSet covering everything from the base upward.
const (
	AllMipLevels   uint32 = ^uint32(0)
	AllArraySlices uint32 = ^uint32(0)
)

// TextureSubresourceSet selects a rectangular set of mip levels and array
// slices. Use Resolve to clamp it against a concrete texture.
type TextureSubresourceSet struct {
	BaseMipLevel   uint32
	NumMipLevels   uint32
	BaseArraySlice uint32
	NumArraySlices uint32
}

// AllSubresources selects every mip level and array slice of a texture.
var AllSubresources = TextureSubresourceSet{
	BaseMipLevel:   0,
	NumMipLevels:   AllMipLevels,
	BaseArraySlice: 0,
	NumArraySlices: AllArraySlices,
}

// SingleSubresource selects one mip level of one array slice.
func SingleSubresource(mipLevel, arraySlice uint32) TextureSubresourceSet {
	return TextureSubresourceSet{
		BaseMipLevel:   mipLevel,
		NumMipLevels:   1,
		BaseArraySlice: arraySlice,
		NumArraySlices: 1,
	}
}

// Resolve clamps the set against the texture. Non-array dimensions
// collapse to a single slice. The result can be empty when the base
// levels lie outside the texture.
func (s TextureSubresourceSet) Resolve(desc TextureDesc, singleMipLevel bool) TextureSubresourceSet {
	var out TextureSubresourceSet
	out.BaseMipLevel = s.BaseMipLevel
	if singleMipLevel {
		out.NumMipLevels = 1
	} else {
		last := uint64(s.BaseMipLevel) + uint64(s.NumMipLevels)
		if m := uint64(desc.MipLevels); last > m {
			last = m
		}
		if last > uint64(s.BaseMipLevel) {
			out.NumMipLevels = uint32(last) - s.BaseMipLevel
		}
	}
	if desc.Dimension.IsArray() {
		out.BaseArraySlice = s.BaseArraySlice
		last := uint64(s.BaseArraySlice) + uint64(s.NumArraySlices)
		if a := uint64(desc.ArraySize); last > a {
			last = a
		}
		if last > uint64(s.BaseArraySlice) {
			out.NumArraySlices = uint32(last) - s.BaseArraySlice
		}
	} else {
		out.BaseArraySlice = 0
		out.NumArraySlices = 1
	}
	return out
}

// IsEntireTexture reports whether the set covers every subresource of the
// texture.
func (s TextureSubresourceSet) IsEntireTexture(desc TextureDesc) bool {
	if s.BaseMipLevel > 0 || uint64(s.BaseMipLevel)+uint64(s.NumMipLevels) < uint64(desc.MipLevels) {
		return false
	}
	if !desc.Dimension.IsArray() {
		return true
	}
	return s.BaseArraySlice == 0 && uint64(s.BaseArraySlice)+uint64(s.NumArraySlices) >= uint64(desc.ArraySize)
}

// Texture is a device texture resource.
type Texture interface {
	Resource
	// Desc returns the creation descriptor, including any patches the
	// device applied (such as a generated debug name).
	Desc() TextureDesc
}

// StagingTexture is a CPU-accessible texture used to upload or read back
// texel data through MapStagingTexture.
type StagingTexture interface {
	Resource
	Desc() TextureDesc
}

// TiledTextureCoordinate addresses one tile of a reserved texture.
type TiledTextureCoordinate struct {
	MipLevel   uint16
	ArrayLevel uint16
	X          uint32
	Y          uint32
	Z          uint32
}

// TiledTextureRegion is a run of tiles, either counted linearly or shaped
// as a box.
type TiledTextureRegion struct {
	TilesNum uint32
	Width    uint32
	Height   uint32
	Depth    uint32
}

// TextureTilesMapping binds regions of a reserved texture to heap memory.
// ByteOffsets runs parallel to Regions; a nil Heap unmaps the regions.
type TextureTilesMapping struct {
	Coordinates []TiledTextureCoordinate
	Regions     []TiledTextureRegion
	ByteOffsets []uint64
	Heap        Heap
}

// PackedMipDesc reports how a reserved texture packs its mip tail.
type PackedMipDesc struct {
	NumStandardMips                 uint32
	NumPackedMips                   uint32
	NumTilesForPackedMips           uint32
	StartTileIndexInOverallResource uint32
}

// TileShape is the tile extent of a reserved texture in texels.
type TileShape struct {
	WidthInTexels  uint32
	HeightInTexels uint32
	DepthInTexels  uint32
}

// SubresourceTiling reports the tile footprint of one subresource.
type SubresourceTiling struct {
	WidthInTiles                    uint32
	HeightInTiles                   uint32
	DepthInTiles                    uint32
	StartTileIndexInOverallResource uint32
}

// TextureTilingInfo aggregates the tiling queries for a reserved texture.
type TextureTilingInfo struct {
	NumTiles           uint32
	PackedMips         PackedMipDesc
	TileShape          TileShape
	SubresourceTilings []SubresourceTiling
}

// SamplerFeedbackFormat selects the feedback map encoding.
type SamplerFeedbackFormat uint8

const (
	// SamplerFeedbackMinMipOpaque records the minimum mip level sampled.
	SamplerFeedbackMinMipOpaque SamplerFeedbackFormat = iota
	// SamplerFeedbackMipRegionUsedOpaque records which mip regions were
	// touched.
	SamplerFeedbackMipRegionUsedOpaque
)

// SamplerFeedbackTextureDesc describes a sampler feedback map paired with
// a regular texture.
type SamplerFeedbackTextureDesc struct {
	SamplerFeedbackFormat     SamplerFeedbackFormat
	SamplerFeedbackMipRegionX uint32
	SamplerFeedbackMipRegionY uint32
	SamplerFeedbackMipRegionZ uint32
	InitialState              ResourceState
	KeepInitialState          bool
}

// SamplerFeedbackTexture is a feedback map resource bound as a
// SamplerFeedbackUAV.
type SamplerFeedbackTexture interface {
	Resource
	Desc() SamplerFeedbackTextureDesc
	// PairedTexture returns the texture the feedback map observes.
	PairedTexture() Texture
}
