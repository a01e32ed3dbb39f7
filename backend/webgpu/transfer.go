// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
)

// copyPitchAlignment is the row pitch granularity texture-to-buffer
// copies require.
const copyPitchAlignment = 256

// WriteTexture uploads tightly packed texel rows to one mip level of a
// texture through the queue. The slice must cover the full mip extent
// of array slice zero; the hal copy surface does not address
// subregions. WriteTexture extends rhi.Device; hosts reach it through a
// type assertion on *Device.
func (d *Device) WriteTexture(tex rhi.Texture, slice rhi.TextureSlice, data []byte) error {
	t, ok := tex.(*texture)
	if !ok {
		return fmt.Errorf("WriteTexture: %w", ErrForeignResource)
	}
	resolved := slice.Resolve(t.desc)
	if resolved.X != 0 || resolved.Y != 0 || resolved.Z != 0 || resolved.ArraySlice != 0 {
		return unsupported("WriteTexture: subregion uploads")
	}
	rowBytes := resolved.Width * uint32(t.desc.Format.Info().BytesPerBlock)
	need := uint64(rowBytes) * uint64(resolved.Height) * uint64(resolved.Depth)
	if uint64(len(data)) < need {
		return fmt.Errorf("webgpu: WriteTexture: %d bytes given, mip level %d needs %d",
			len(data), resolved.MipLevel, need)
	}
	d.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.native,
			MipLevel: resolved.MipLevel,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  rowBytes,
			RowsPerImage: resolved.Height,
		},
		&hal.Extent3D{Width: resolved.Width, Height: resolved.Height, DepthOrArrayLayers: resolved.Depth},
	)
	return nil
}

// ReadTexture copies one mip level of a texture back to the CPU and
// returns its texels as tightly packed rows. It stages through a
// MapRead buffer with an aligned row pitch, submits the copy, and
// blocks until the fence signals. The texture must have been written
// last through WriteTexture; the copy barrier assumes the copy-dest
// usage. ReadTexture extends rhi.Device; hosts reach it through a type
// assertion on *Device.
func (d *Device) ReadTexture(tex rhi.Texture, slice rhi.TextureSlice) ([]byte, error) {
	t, ok := tex.(*texture)
	if !ok {
		return nil, fmt.Errorf("ReadTexture: %w", ErrForeignResource)
	}
	resolved := slice.Resolve(t.desc)
	if resolved.X != 0 || resolved.Y != 0 || resolved.Z != 0 || resolved.ArraySlice != 0 {
		return nil, unsupported("ReadTexture: subregion readback")
	}
	if resolved.Depth != 1 {
		return nil, unsupported("ReadTexture: volume readback")
	}
	rowBytes := resolved.Width * uint32(t.desc.Format.Info().BytesPerBlock)
	alignedRow := (rowBytes + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedRow) * uint64(resolved.Height)

	staging, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "rhi_readback",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: ReadTexture: create staging buffer: %w", err)
	}
	defer d.device.DestroyBuffer(staging)

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "rhi_readback"})
	if err != nil {
		return nil, fmt.Errorf("webgpu: ReadTexture: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("rhi_readback"); err != nil {
		return nil, fmt.Errorf("webgpu: ReadTexture: begin encoding: %w", err)
	}
	// Vulkan needs the image in TRANSFER_SRC layout for the copy.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.native,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopyDst,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(t.native, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedRow, RowsPerImage: resolved.Height},
		TextureBase:  hal.ImageCopyTexture{Texture: t.native, MipLevel: resolved.MipLevel},
		Size:         hal.Extent3D{Width: resolved.Width, Height: resolved.Height, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.native,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageCopyDst,
		},
	}})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("webgpu: ReadTexture: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("webgpu: ReadTexture: create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)
	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("webgpu: ReadTexture: submit: %w", err)
	}
	fenceOK, err := d.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return nil, fmt.Errorf("webgpu: ReadTexture: wait for copy: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, stagingSize)
	if err := d.queue.ReadBuffer(staging, 0, readback); err != nil {
		return nil, fmt.Errorf("webgpu: ReadTexture: readback: %w", err)
	}
	if alignedRow == rowBytes {
		return readback[:uint64(rowBytes)*uint64(resolved.Height)], nil
	}
	out := make([]byte, uint64(rowBytes)*uint64(resolved.Height))
	for y := uint32(0); y < resolved.Height; y++ {
		copy(out[y*rowBytes:(y+1)*rowBytes], readback[uint64(y)*uint64(alignedRow):])
	}
	return out, nil
}
