// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"encoding/binary"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rhi"
)

func TestTextureFormatMapping(t *testing.T) {
	tests := []struct {
		format rhi.Format
		want   gputypes.TextureFormat
		ok     bool
	}{
		{rhi.FormatR8UNorm, gputypes.TextureFormatR8Unorm, true},
		{rhi.FormatRGBA8UNorm, gputypes.TextureFormatRGBA8Unorm, true},
		{rhi.FormatBGRA8UNorm, gputypes.TextureFormatBGRA8Unorm, true},
		{rhi.FormatD24S8, gputypes.TextureFormatDepth24PlusStencil8, true},
		{rhi.FormatRGBA16Float, gputypes.TextureFormatUndefined, false},
		{rhi.FormatBC1UNorm, gputypes.TextureFormatUndefined, false},
		{rhi.FormatUnknown, gputypes.TextureFormatUndefined, false},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			got, ok := textureFormat(tt.format)
			if got != tt.want || ok != tt.ok {
				t.Errorf("textureFormat(%v) = (%v, %v), want (%v, %v)",
					tt.format, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestBufferUsage(t *testing.T) {
	// Readback staging stays a pure map target even when the descriptor
	// asks for shader bindings.
	readback := bufferUsage(rhi.BufferDesc{
		ByteSize:    256,
		CPUAccess:   rhi.CPUAccessRead,
		CanHaveUAVs: true,
	})
	if readback != gputypes.BufferUsageMapRead|gputypes.BufferUsageCopyDst {
		t.Errorf("readback usage = %b, want MapRead|CopyDst", readback)
	}

	upload := bufferUsage(rhi.BufferDesc{ByteSize: 256, CPUAccess: rhi.CPUAccessWrite})
	if upload&gputypes.BufferUsageMapWrite == 0 || upload&gputypes.BufferUsageCopySrc == 0 {
		t.Errorf("upload usage = %b, want MapWrite|CopySrc set", upload)
	}

	tests := []struct {
		name    string
		desc    rhi.BufferDesc
		set     gputypes.BufferUsage
		cleared gputypes.BufferUsage
	}{
		{
			"plain buffer copies only",
			rhi.BufferDesc{ByteSize: 64},
			gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
			gputypes.BufferUsageUniform | gputypes.BufferUsageStorage | gputypes.BufferUsageVertex,
		},
		{
			"constant buffer",
			rhi.BufferDesc{ByteSize: 64, IsConstantBuffer: true},
			gputypes.BufferUsageUniform,
			gputypes.BufferUsageStorage,
		},
		{
			"structured buffer",
			rhi.BufferDesc{ByteSize: 64, StructStride: 4},
			gputypes.BufferUsageStorage,
			gputypes.BufferUsageUniform,
		},
		{
			"uav buffer",
			rhi.BufferDesc{ByteSize: 64, CanHaveUAVs: true},
			gputypes.BufferUsageStorage,
			gputypes.BufferUsageUniform,
		},
		{
			"raw buffer",
			rhi.BufferDesc{ByteSize: 64, CanHaveRawViews: true},
			gputypes.BufferUsageStorage,
			gputypes.BufferUsageUniform,
		},
		{
			"vertex buffer",
			rhi.BufferDesc{ByteSize: 64, IsVertexBuffer: true},
			gputypes.BufferUsageVertex,
			gputypes.BufferUsageStorage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage := bufferUsage(tt.desc)
			if usage&tt.set != tt.set {
				t.Errorf("usage = %b, missing bits %b", usage, tt.set)
			}
			if usage&tt.cleared != 0 {
				t.Errorf("usage = %b, unexpected bits %b", usage, tt.cleared)
			}
		})
	}
}

func TestTextureUsage(t *testing.T) {
	plain := textureUsage(rhi.TextureDesc{})
	if plain != gputypes.TextureUsageCopySrc|gputypes.TextureUsageCopyDst {
		t.Errorf("plain usage = %b, want CopySrc|CopyDst", plain)
	}

	sampled := textureUsage(rhi.TextureDesc{IsShaderResource: true})
	if sampled&gputypes.TextureUsageTextureBinding == 0 {
		t.Errorf("shader resource usage = %b, missing TextureBinding", sampled)
	}

	target := textureUsage(rhi.TextureDesc{IsRenderTarget: true})
	if target&gputypes.TextureUsageRenderAttachment == 0 {
		t.Errorf("render target usage = %b, missing RenderAttachment", target)
	}
}

func TestTextureDimensionMapping(t *testing.T) {
	tests := []struct {
		dim  rhi.TextureDimension
		want gputypes.TextureDimension
		ok   bool
	}{
		{rhi.TextureDimension1D, gputypes.TextureDimension1D, true},
		{rhi.TextureDimension1DArray, gputypes.TextureDimension1D, true},
		{rhi.TextureDimension2D, gputypes.TextureDimension2D, true},
		{rhi.TextureDimension2DArray, gputypes.TextureDimension2D, true},
		{rhi.TextureDimensionCube, gputypes.TextureDimension2D, true},
		{rhi.TextureDimensionCubeArray, gputypes.TextureDimension2D, true},
		{rhi.TextureDimension2DMS, gputypes.TextureDimension2D, true},
		{rhi.TextureDimension2DMSArray, gputypes.TextureDimension2D, true},
		{rhi.TextureDimension3D, gputypes.TextureDimension3D, true},
		{rhi.TextureDimensionUnknown, gputypes.TextureDimension2D, false},
	}
	for _, tt := range tests {
		t.Run(tt.dim.String(), func(t *testing.T) {
			got, ok := textureDimension(tt.dim)
			if got != tt.want || ok != tt.ok {
				t.Errorf("textureDimension(%v) = (%v, %v), want (%v, %v)",
					tt.dim, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTextureLayers(t *testing.T) {
	volume := rhi.TextureDesc{Dimension: rhi.TextureDimension3D, Depth: 16, ArraySize: 1}
	if got := textureLayers(volume); got != 16 {
		t.Errorf("3D layers = %d, want 16", got)
	}
	array := rhi.TextureDesc{Dimension: rhi.TextureDimension2DArray, Depth: 1, ArraySize: 6}
	if got := textureLayers(array); got != 6 {
		t.Errorf("array layers = %d, want 6", got)
	}
	if got := textureLayers(rhi.TextureDesc{Dimension: rhi.TextureDimension2D}); got != 1 {
		t.Errorf("zero descriptor layers = %d, want 1", got)
	}
}

func TestSPIRVDetection(t *testing.T) {
	spirv := make([]byte, 8)
	binary.LittleEndian.PutUint32(spirv[0:], spirvMagic)
	binary.LittleEndian.PutUint32(spirv[4:], 0x00010500)
	if !isSPIRV(spirv) {
		t.Error("isSPIRV(magic blob) = false, want true")
	}
	if isSPIRV([]byte("@compute fn main() {}")) {
		t.Error("isSPIRV(WGSL text) = true, want false")
	}
	if isSPIRV([]byte{0x03, 0x02}) {
		t.Error("isSPIRV(short blob) = true, want false")
	}

	words := spirvWords(spirv)
	if len(words) != 2 || words[0] != spirvMagic || words[1] != 0x00010500 {
		t.Errorf("spirvWords = %#x, want [%#x 0x00010500]", words, uint32(spirvMagic))
	}
}
