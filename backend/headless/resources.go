// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package headless

import (
	"github.com/gogpu/rhi"
)

// heap is a block of host memory that virtual resources bind into.
type heap struct {
	desc rhi.HeapDesc
	data []byte
}

func (h *heap) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (h *heap) Desc() rhi.HeapDesc                     { return h.desc }

type texture struct {
	desc   rhi.TextureDesc
	native rhi.Object
	// nativeType is set for adopted textures; NativeObject answers only
	// for that type.
	nativeType rhi.ObjectType
}

func (t *texture) Desc() rhi.TextureDesc { return t.desc }

func (t *texture) NativeObject(objectType rhi.ObjectType) rhi.Object {
	if t.native != nil && objectType == t.nativeType {
		return t.native
	}
	return nil
}

// subresourceKey addresses one mip of one array slice.
type subresourceKey struct {
	mipLevel   uint32
	arraySlice uint32
}

type stagingTexture struct {
	desc   rhi.TextureDesc
	access rhi.CPUAccessMode
	// data holds the host copy of each subresource, allocated on first
	// map.
	data map[subresourceKey][]byte
}

func (t *stagingTexture) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (t *stagingTexture) Desc() rhi.TextureDesc                  { return t.desc }

// sliceLayout returns the row pitch and row count of one resolved
// texture slice, accounting for block-compressed formats.
func sliceLayout(format rhi.Format, slice rhi.TextureSlice) (rowPitch, rows int) {
	info := format.Info()
	block := uint32(info.BlockSize)
	if block == 0 {
		block = 1
	}
	widthBlocks := (slice.Width + block - 1) / block
	heightBlocks := (slice.Height + block - 1) / block
	return int(widthBlocks) * int(info.BytesPerBlock), int(heightBlocks) * int(slice.Depth)
}

// textureByteSize returns the packed host size of every subresource of
// a texture.
func textureByteSize(desc rhi.TextureDesc) uint64 {
	var total uint64
	for mip := uint32(0); mip < desc.MipLevels; mip++ {
		slice := rhi.TextureSlice{MipLevel: mip}.Resolve(desc)
		pitch, rows := sliceLayout(desc.Format, slice)
		total += uint64(pitch) * uint64(rows)
	}
	return total * uint64(desc.ArraySize) * uint64(desc.SampleCount)
}

type buffer struct {
	desc       rhi.BufferDesc
	data       []byte
	address    uint64
	native     rhi.Object
	nativeType rhi.ObjectType
}

func (b *buffer) Desc() rhi.BufferDesc      { return b.desc }
func (b *buffer) GPUVirtualAddress() uint64 { return b.address }

func (b *buffer) NativeObject(objectType rhi.ObjectType) rhi.Object {
	if b.native != nil && objectType == b.nativeType {
		return b.native
	}
	return nil
}

type shader struct {
	desc     rhi.ShaderDesc
	bytecode []byte
}

func (s *shader) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (s *shader) Desc() rhi.ShaderDesc                   { return s.desc }
func (s *shader) Bytecode() []byte                       { return s.bytecode }

type shaderLibrary struct {
	bytecode []byte
}

func (l *shaderLibrary) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (l *shaderLibrary) Bytecode() []byte                       { return l.bytecode }

func (l *shaderLibrary) Shader(entryName string, shaderType rhi.ShaderType) rhi.Shader {
	return &shader{
		desc:     rhi.ShaderDesc{ShaderType: shaderType, EntryName: entryName},
		bytecode: l.bytecode,
	}
}

type sampler struct {
	desc rhi.SamplerDesc
}

func (s *sampler) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (s *sampler) Desc() rhi.SamplerDesc                  { return s.desc }

type samplerFeedbackTexture struct {
	desc   rhi.SamplerFeedbackTextureDesc
	paired rhi.Texture
}

func (t *samplerFeedbackTexture) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (t *samplerFeedbackTexture) Desc() rhi.SamplerFeedbackTextureDesc   { return t.desc }
func (t *samplerFeedbackTexture) PairedTexture() rhi.Texture             { return t.paired }

type inputLayout struct {
	attributes []rhi.VertexAttributeDesc
}

func (l *inputLayout) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (l *inputLayout) Attributes() []rhi.VertexAttributeDesc  { return l.attributes }

type framebuffer struct {
	desc rhi.FramebufferDesc
	info rhi.FramebufferInfo
}

func (f *framebuffer) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (f *framebuffer) Desc() rhi.FramebufferDesc              { return f.desc }
func (f *framebuffer) Info() rhi.FramebufferInfo              { return f.info }

type graphicsPipeline struct {
	desc rhi.GraphicsPipelineDesc
	info rhi.FramebufferInfo
}

func (p *graphicsPipeline) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (p *graphicsPipeline) Desc() rhi.GraphicsPipelineDesc         { return p.desc }
func (p *graphicsPipeline) FramebufferInfo() rhi.FramebufferInfo   { return p.info }

type computePipeline struct {
	desc rhi.ComputePipelineDesc
}

func (p *computePipeline) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (p *computePipeline) Desc() rhi.ComputePipelineDesc          { return p.desc }

type meshletPipeline struct {
	desc rhi.MeshletPipelineDesc
	info rhi.FramebufferInfo
}

func (p *meshletPipeline) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (p *meshletPipeline) Desc() rhi.MeshletPipelineDesc          { return p.desc }
func (p *meshletPipeline) FramebufferInfo() rhi.FramebufferInfo   { return p.info }

type rayTracingPipeline struct {
	desc rhi.RayTracingPipelineDesc
}

func (p *rayTracingPipeline) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (p *rayTracingPipeline) Desc() rhi.RayTracingPipelineDesc       { return p.desc }

type bindingLayout struct {
	desc     *rhi.BindingLayoutDesc
	bindless *rhi.BindlessLayoutDesc
}

func (l *bindingLayout) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (l *bindingLayout) Desc() *rhi.BindingLayoutDesc           { return l.desc }
func (l *bindingLayout) BindlessDesc() *rhi.BindlessLayoutDesc  { return l.bindless }

type bindingSet struct {
	desc   rhi.BindingSetDesc
	layout rhi.BindingLayout
}

func (s *bindingSet) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (s *bindingSet) Desc() *rhi.BindingSetDesc              { return &s.desc }
func (s *bindingSet) Layout() rhi.BindingLayout              { return s.layout }

type descriptorTable struct {
	layout rhi.BindingLayout
	slots  []rhi.BindingSetItem
}

func (t *descriptorTable) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (t *descriptorTable) Desc() *rhi.BindingSetDesc              { return nil }
func (t *descriptorTable) Layout() rhi.BindingLayout              { return t.layout }
func (t *descriptorTable) Capacity() uint32                       { return uint32(len(t.slots)) }

type opacityMicromap struct {
	desc    rhi.OpacityMicromapDesc
	address uint64
}

func (m *opacityMicromap) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (m *opacityMicromap) Desc() rhi.OpacityMicromapDesc          { return m.desc }
func (m *opacityMicromap) IsCompacted() bool                      { return false }
func (m *opacityMicromap) DeviceAddress() uint64                  { return m.address }

type accelStruct struct {
	desc    rhi.AccelStructDesc
	address uint64
	bound   bool
}

func (as *accelStruct) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (as *accelStruct) Desc() rhi.AccelStructDesc              { return as.desc }
func (as *accelStruct) IsCompacted() bool                      { return false }
func (as *accelStruct) DeviceAddress() uint64                  { return as.address }

// accelStructByteSize estimates the memory a build needs. The numbers
// only have to be stable and proportional to the inputs.
func accelStructByteSize(desc rhi.AccelStructDesc) uint64 {
	if desc.IsTopLevel {
		return 256 + 64*desc.TopLevelMaxInstances
	}
	total := uint64(256)
	for _, g := range desc.BottomLevelGeometries {
		switch g.Type {
		case rhi.GeometryTypeTriangles:
			total += 64 * uint64(max(g.Triangles.IndexCount/3, g.Triangles.VertexCount))
		case rhi.GeometryTypeAABBs:
			total += 64 * uint64(g.AABBs.Count)
		}
	}
	return total
}

type eventQuery struct {
	signaled bool
}

func (q *eventQuery) NativeObject(rhi.ObjectType) rhi.Object { return nil }

// timerQuery carries no state; headless timings are always zero.
type timerQuery struct{}

func (q *timerQuery) NativeObject(rhi.ObjectType) rhi.Object { return nil }
