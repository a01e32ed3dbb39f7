// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"encoding/binary"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
)

type buffer struct {
	desc   rhi.BufferDesc
	native hal.Buffer

	// mapped holds staging bytes between MapBuffer and UnmapBuffer.
	mapped    []byte
	mapAccess rhi.CPUAccessMode
}

func (b *buffer) NativeObject(objectType rhi.ObjectType) rhi.Object {
	if objectType == rhi.ObjectTypeWebGPUBuffer {
		return b.native
	}
	return nil
}

func (b *buffer) Desc() rhi.BufferDesc      { return b.desc }
func (b *buffer) GPUVirtualAddress() uint64 { return 0 }

type texture struct {
	desc   rhi.TextureDesc
	native hal.Texture
}

func (t *texture) NativeObject(objectType rhi.ObjectType) rhi.Object {
	if objectType == rhi.ObjectTypeWebGPUTexture {
		return t.native
	}
	return nil
}

func (t *texture) Desc() rhi.TextureDesc { return t.desc }

type sampler struct {
	desc   rhi.SamplerDesc
	native hal.Sampler
}

func (s *sampler) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (s *sampler) Desc() rhi.SamplerDesc                  { return s.desc }

type shader struct {
	desc     rhi.ShaderDesc
	bytecode []byte
	module   hal.ShaderModule
}

func (s *shader) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (s *shader) Desc() rhi.ShaderDesc                   { return s.desc }
func (s *shader) Bytecode() []byte                       { return s.bytecode }

type bindingLayout struct {
	desc   rhi.BindingLayoutDesc
	native hal.BindGroupLayout
}

func (l *bindingLayout) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (l *bindingLayout) Desc() *rhi.BindingLayoutDesc           { return &l.desc }
func (l *bindingLayout) BindlessDesc() *rhi.BindlessLayoutDesc  { return nil }

type bindingSet struct {
	desc   rhi.BindingSetDesc
	layout rhi.BindingLayout
	native hal.BindGroup
}

func (s *bindingSet) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (s *bindingSet) Desc() *rhi.BindingSetDesc              { return &s.desc }
func (s *bindingSet) Layout() rhi.BindingLayout              { return s.layout }

type computePipeline struct {
	desc       rhi.ComputePipelineDesc
	pipeLayout hal.PipelineLayout
	native     hal.ComputePipeline
}

func (p *computePipeline) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (p *computePipeline) Desc() rhi.ComputePipelineDesc          { return p.desc }

// eventQuery signals at set time. ExecuteCommandLists waits its fence
// before returning, so the tracked submission is always complete when
// the query is armed.
type eventQuery struct {
	signaled bool
}

func (q *eventQuery) NativeObject(rhi.ObjectType) rhi.Object { return nil }

// spirvMagic begins every SPIR-V module.
const spirvMagic = 0x07230203

// isSPIRV reports whether a shader blob is a SPIR-V module rather than
// WGSL text.
func isSPIRV(blob []byte) bool {
	return len(blob) >= 4 && binary.LittleEndian.Uint32(blob) == spirvMagic
}

// spirvWords reinterprets a SPIR-V blob as the word stream hal consumes.
func spirvWords(blob []byte) []uint32 {
	words := make([]uint32, len(blob)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(blob[i*4 : i*4+4])
	}
	return words
}
