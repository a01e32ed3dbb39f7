// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

// BlendFactor selects a blend equation operand.
type BlendFactor uint8

const (
	BlendFactorZero           BlendFactor = 1
	BlendFactorOne            BlendFactor = 2
	BlendFactorSrcColor       BlendFactor = 3
	BlendFactorInvSrcColor    BlendFactor = 4
	BlendFactorSrcAlpha       BlendFactor = 5
	BlendFactorInvSrcAlpha    BlendFactor = 6
	BlendFactorDstAlpha       BlendFactor = 7
	BlendFactorInvDstAlpha    BlendFactor = 8
	BlendFactorDstColor       BlendFactor = 9
	BlendFactorInvDstColor    BlendFactor = 10
	BlendFactorSrcAlphaSat      BlendFactor = 11
	BlendFactorConstantColor    BlendFactor = 14
	BlendFactorInvConstantColor BlendFactor = 15
	BlendFactorSrc1Color        BlendFactor = 16
	BlendFactorInvSrc1Color     BlendFactor = 17
	BlendFactorSrc1Alpha        BlendFactor = 18
	BlendFactorInvSrc1Alpha     BlendFactor = 19
)

// BlendOp combines the source and destination blend operands.
type BlendOp uint8

const (
	BlendOpAdd             BlendOp = 1
	BlendOpSubtract        BlendOp = 2
	BlendOpReverseSubtract BlendOp = 3
	BlendOpMin             BlendOp = 4
	BlendOpMax             BlendOp = 5
)

// ColorMask selects the channels a render target write touches.
type ColorMask uint8

const (
	ColorMaskRed   ColorMask = 1
	ColorMaskGreen ColorMask = 2
	ColorMaskBlue  ColorMask = 4
	ColorMaskAlpha ColorMask = 8
	ColorMaskAll   ColorMask = 0xF
)

// RenderTargetBlend configures blending for one render target.
type RenderTargetBlend struct {
	BlendEnable    bool
	SrcBlend       BlendFactor
	DestBlend      BlendFactor
	BlendOp        BlendOp
	SrcBlendAlpha  BlendFactor
	DestBlendAlpha BlendFactor
	BlendOpAlpha   BlendOp
	ColorWriteMask ColorMask
}

// DefaultRenderTargetBlend returns disabled blending with a full write
// mask.
func DefaultRenderTargetBlend() RenderTargetBlend {
	return RenderTargetBlend{
		SrcBlend:       BlendFactorOne,
		DestBlend:      BlendFactorZero,
		BlendOp:        BlendOpAdd,
		SrcBlendAlpha:  BlendFactorOne,
		DestBlendAlpha: BlendFactorZero,
		BlendOpAlpha:   BlendOpAdd,
		ColorWriteMask: ColorMaskAll,
	}
}

// UsesConstantColor reports whether any factor reads the blend constant
// color.
func (t RenderTargetBlend) UsesConstantColor() bool {
	for _, f := range [4]BlendFactor{t.SrcBlend, t.DestBlend, t.SrcBlendAlpha, t.DestBlendAlpha} {
		if f == BlendFactorConstantColor || f == BlendFactorInvConstantColor {
			return true
		}
	}
	return false
}

// BlendState configures blending for all render targets.
type BlendState struct {
	Targets               [MaxRenderTargets]RenderTargetBlend
	AlphaToCoverageEnable bool
}

// DefaultBlendState returns disabled blending on every target.
func DefaultBlendState() BlendState {
	var s BlendState
	for i := range s.Targets {
		s.Targets[i] = DefaultRenderTargetBlend()
	}
	return s
}

// UsesConstantColor reports whether any of the first numTargets targets
// reads the blend constant color.
func (s BlendState) UsesConstantColor(numTargets int) bool {
	for i := 0; i < numTargets && i < len(s.Targets); i++ {
		if s.Targets[i].UsesConstantColor() {
			return true
		}
	}
	return false
}

// StencilOp selects the action taken on a stencil buffer entry.
type StencilOp uint8

const (
	StencilOpKeep              StencilOp = 1
	StencilOpZero              StencilOp = 2
	StencilOpReplace           StencilOp = 3
	StencilOpIncrementAndClamp StencilOp = 4
	StencilOpDecrementAndClamp StencilOp = 5
	StencilOpInvert            StencilOp = 6
	StencilOpIncrementAndWrap  StencilOp = 7
	StencilOpDecrementAndWrap  StencilOp = 8
)

// ComparisonFunc selects a depth, stencil, or sampler comparison.
type ComparisonFunc uint8

const (
	ComparisonNever          ComparisonFunc = 1
	ComparisonLess           ComparisonFunc = 2
	ComparisonEqual          ComparisonFunc = 3
	ComparisonLessOrEqual    ComparisonFunc = 4
	ComparisonGreater        ComparisonFunc = 5
	ComparisonNotEqual       ComparisonFunc = 6
	ComparisonGreaterOrEqual ComparisonFunc = 7
	ComparisonAlways         ComparisonFunc = 8
)

// StencilOpDesc configures the stencil actions for one face.
type StencilOpDesc struct {
	FailOp      StencilOp
	DepthFailOp StencilOp
	PassOp      StencilOp
	StencilFunc ComparisonFunc
}

// DefaultStencilOpDesc returns pass-through stencil actions.
func DefaultStencilOpDesc() StencilOpDesc {
	return StencilOpDesc{
		FailOp:      StencilOpKeep,
		DepthFailOp: StencilOpKeep,
		PassOp:      StencilOpKeep,
		StencilFunc: ComparisonAlways,
	}
}

// DepthStencilState configures depth and stencil testing.
type DepthStencilState struct {
	DepthTestEnable  bool
	DepthWriteEnable bool
	DepthFunc        ComparisonFunc
	StencilEnable    bool
	StencilReadMask  uint8
	StencilWriteMask uint8
	StencilRefValue  uint8
	FrontFaceStencil StencilOpDesc
	BackFaceStencil  StencilOpDesc
}

// DefaultDepthStencilState returns less-than depth testing with writes
// enabled and stencil disabled.
func DefaultDepthStencilState() DepthStencilState {
	return DepthStencilState{
		DepthTestEnable:  true,
		DepthWriteEnable: true,
		DepthFunc:        ComparisonLess,
		StencilReadMask:  0xFF,
		StencilWriteMask: 0xFF,
		FrontFaceStencil: DefaultStencilOpDesc(),
		BackFaceStencil:  DefaultStencilOpDesc(),
	}
}

// RasterFillMode selects polygon fill or wireframe rasterization.
type RasterFillMode uint8

const (
	RasterFillSolid RasterFillMode = iota
	RasterFillWireframe
)

// RasterCullMode selects which triangle winding is discarded.
type RasterCullMode uint8

const (
	RasterCullBack RasterCullMode = iota
	RasterCullFront
	RasterCullNone
)

// RasterState configures the rasterizer stage.
type RasterState struct {
	FillMode              RasterFillMode
	CullMode              RasterCullMode
	FrontCounterClockwise bool
	DepthClipEnable       bool
	ScissorEnable         bool
	MultisampleEnable     bool
	AntialiasedLineEnable bool
	DepthBias             int32
	DepthBiasClamp        float32
	SlopeScaledDepthBias  float32
	// ConservativeRasterEnable requires the ConservativeRasterization
	// feature.
	ConservativeRasterEnable bool
}

// DefaultRasterState returns solid fill with back-face culling.
func DefaultRasterState() RasterState {
	return RasterState{FillMode: RasterFillSolid, CullMode: RasterCullBack}
}

// RenderState bundles the fixed-function pipeline state.
type RenderState struct {
	Blend        BlendState
	DepthStencil DepthStencilState
	Raster       RasterState
}

// DefaultRenderState returns the default blend, depth-stencil, and
// raster states.
func DefaultRenderState() RenderState {
	return RenderState{
		Blend:        DefaultBlendState(),
		DepthStencil: DefaultDepthStencilState(),
		Raster:       DefaultRasterState(),
	}
}

// PrimitiveType selects how vertices assemble into primitives.
type PrimitiveType uint8

const (
	PrimitivePointList PrimitiveType = iota
	PrimitiveLineList
	PrimitiveLineStrip
	PrimitiveTriangleList
	PrimitiveTriangleStrip
	PrimitiveTriangleFan
	PrimitiveTriangleListWithAdjacency
	PrimitiveTriangleStripWithAdjacency
	PrimitivePatchList
)

// VertexAttributeDesc declares one vertex shader input attribute.
type VertexAttributeDesc struct {
	// Name is the semantic the attribute binds to.
	Name      string
	Format    Format
	ArraySize uint32
	// BufferIndex is the vertex buffer binding the attribute reads
	// from.
	BufferIndex uint32
	Offset      uint32
	// ElementStride is the byte distance between consecutive elements.
	// All attributes of one buffer index must agree on it.
	ElementStride uint32
	// IsInstanced advances the attribute per instance instead of per
	// vertex.
	IsInstanced bool
}

// VertexAttribute declares an attribute with array size 1.
func VertexAttribute(name string, format Format, bufferIndex, offset, elementStride uint32) VertexAttributeDesc {
	return VertexAttributeDesc{
		Name:          name,
		Format:        format,
		ArraySize:     1,
		BufferIndex:   bufferIndex,
		Offset:        offset,
		ElementStride: elementStride,
	}
}

// InputLayout maps vertex buffer bytes to shader input attributes.
type InputLayout interface {
	Resource
	Attributes() []VertexAttributeDesc
}

// GraphicsPipelineDesc describes a rasterization pipeline.
type GraphicsPipelineDesc struct {
	PrimType PrimitiveType
	// PatchControlPoints is the control point count for PatchList
	// primitives.
	PatchControlPoints uint32
	InputLayout        InputLayout

	VertexShader   Shader
	HullShader     Shader
	DomainShader   Shader
	GeometryShader Shader
	PixelShader    Shader

	RenderState RenderState

	BindingLayouts []BindingLayout
}

// GraphicsPipeline is a compiled rasterization pipeline, bound to
// framebuffers matching its creation-time framebuffer shape.
type GraphicsPipeline interface {
	Resource
	Desc() GraphicsPipelineDesc
	FramebufferInfo() FramebufferInfo
}

// ComputePipelineDesc describes a compute pipeline.
type ComputePipelineDesc struct {
	ComputeShader  Shader
	BindingLayouts []BindingLayout
}

// ComputePipeline is a compiled compute pipeline.
type ComputePipeline interface {
	Resource
	Desc() ComputePipelineDesc
}

// MeshletPipelineDesc describes a mesh shading pipeline.
type MeshletPipelineDesc struct {
	PrimType PrimitiveType

	AmplificationShader Shader
	MeshShader          Shader
	PixelShader         Shader

	RenderState RenderState

	BindingLayouts []BindingLayout
}

// MeshletPipeline is a compiled mesh shading pipeline.
type MeshletPipeline interface {
	Resource
	Desc() MeshletPipelineDesc
	FramebufferInfo() FramebufferInfo
}
