// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

// FramebufferAttachment selects one texture subresource range as a render
// attachment.
type FramebufferAttachment struct {
	Texture Texture

	// Subresources selects the attached mip and slices. The zero value
	// attaches mip 0, slice 0.
	Subresources TextureSubresourceSet

	// Format reinterprets the attachment format. Unknown keeps the
	// texture's own format.
	Format Format

	// IsReadOnly attaches a depth-stencil texture without write access,
	// allowing it to be simultaneously bound for sampling.
	IsReadOnly bool
}

// NewFramebufferAttachment attaches mip 0, slice 0 of the texture.
func NewFramebufferAttachment(texture Texture) FramebufferAttachment {
	return FramebufferAttachment{
		Texture: texture,
		Subresources: TextureSubresourceSet{
			BaseMipLevel:   0,
			NumMipLevels:   1,
			BaseArraySlice: 0,
			NumArraySlices: 1,
		},
	}
}

// WithSubresources returns a copy of the attachment viewing the given
// subresources.
func (a FramebufferAttachment) WithSubresources(subresources TextureSubresourceSet) FramebufferAttachment {
	a.Subresources = subresources
	return a
}

// WithFormat returns a copy of the attachment with a reinterpreted
// format.
func (a FramebufferAttachment) WithFormat(format Format) FramebufferAttachment {
	a.Format = format
	return a
}

// ReadOnly returns a copy of the attachment marked read-only.
func (a FramebufferAttachment) ReadOnly() FramebufferAttachment {
	a.IsReadOnly = true
	return a
}

// Valid reports whether the attachment references a texture.
func (a FramebufferAttachment) Valid() bool {
	return a.Texture != nil
}

// FramebufferDesc lists the attachments of a framebuffer. At least one
// attachment must be present, and all attachments must share dimensions
// and sample counts.
type FramebufferDesc struct {
	// ColorAttachments holds up to MaxRenderTargets attachments.
	ColorAttachments []FramebufferAttachment

	DepthAttachment FramebufferAttachment

	// ShadingRateAttachment supplies a variable rate shading surface.
	ShadingRateAttachment FramebufferAttachment
}

// AddColorAttachment appends a color attachment and returns the
// descriptor for chaining.
func (d *FramebufferDesc) AddColorAttachment(a FramebufferAttachment) *FramebufferDesc {
	d.ColorAttachments = append(d.ColorAttachments, a)
	return d
}

// SetDepthAttachment sets the depth attachment and returns the
// descriptor for chaining.
func (d *FramebufferDesc) SetDepthAttachment(a FramebufferAttachment) *FramebufferDesc {
	d.DepthAttachment = a
	return d
}

// FramebufferInfo captures the shape of a framebuffer: the attachment
// formats, dimensions, and sample counts. Two framebuffers with equal
// infos are compatible with the same pipelines.
type FramebufferInfo struct {
	ColorFormats  []Format
	DepthFormat   Format
	SampleCount   uint32
	SampleQuality uint32
	Width         uint32
	Height        uint32
}

// NewFramebufferInfo derives the info from a descriptor's attachments.
func NewFramebufferInfo(desc FramebufferDesc) FramebufferInfo {
	info := FramebufferInfo{
		DepthFormat: FormatUnknown,
		SampleCount: 1,
	}
	for _, a := range desc.ColorAttachments {
		info.ColorFormats = append(info.ColorFormats, attachmentFormat(a))
		if a.Texture != nil {
			info.fillShape(a.Texture.Desc(), a.Subresources.BaseMipLevel)
		}
	}
	if desc.DepthAttachment.Valid() {
		info.DepthFormat = attachmentFormat(desc.DepthAttachment)
		info.fillShape(desc.DepthAttachment.Texture.Desc(), desc.DepthAttachment.Subresources.BaseMipLevel)
	}
	return info
}

func attachmentFormat(a FramebufferAttachment) Format {
	if a.Format != FormatUnknown {
		return a.Format
	}
	if a.Texture != nil {
		return a.Texture.Desc().Format
	}
	return FormatUnknown
}

func (info *FramebufferInfo) fillShape(desc TextureDesc, mipLevel uint32) {
	info.Width = max(desc.Width>>mipLevel, 1)
	info.Height = max(desc.Height>>mipLevel, 1)
	info.SampleCount = desc.SampleCount
	info.SampleQuality = desc.SampleQuality
}

// Equal reports whether two infos describe pipeline-compatible
// framebuffers. Dimensions are part of the comparison.
func (info FramebufferInfo) Equal(other FramebufferInfo) bool {
	if len(info.ColorFormats) != len(other.ColorFormats) {
		return false
	}
	for i, f := range info.ColorFormats {
		if f != other.ColorFormats[i] {
			return false
		}
	}
	return info.DepthFormat == other.DepthFormat &&
		info.SampleCount == other.SampleCount &&
		info.SampleQuality == other.SampleQuality &&
		info.Width == other.Width &&
		info.Height == other.Height
}

// Viewport returns a viewport covering the full framebuffer.
func (info FramebufferInfo) Viewport(minZ, maxZ float32) Viewport {
	return Viewport{
		MinX: 0, MaxX: float32(info.Width),
		MinY: 0, MaxY: float32(info.Height),
		MinZ: minZ, MaxZ: maxZ,
	}
}

// Framebuffer is a fixed set of render attachments.
type Framebuffer interface {
	Resource
	Desc() FramebufferDesc
	Info() FramebufferInfo
}
