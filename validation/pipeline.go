// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import (
	"fmt"
	"strings"

	"github.com/gogpu/rhi"
)

// graphicsShaderStages lists the rasterization stages in pipeline
// order.
var graphicsShaderStages = [...]rhi.ShaderType{
	rhi.ShaderTypeVertex,
	rhi.ShaderTypeHull,
	rhi.ShaderTypeDomain,
	rhi.ShaderTypeGeometry,
	rhi.ShaderTypePixel,
}

// meshletShaderStages lists the mesh shading stages in pipeline order.
var meshletShaderStages = [...]rhi.ShaderType{
	rhi.ShaderTypeAmplification,
	rhi.ShaderTypeMesh,
	rhi.ShaderTypePixel,
}

// stageShader selects the shader of one stage from a graphics pipeline
// descriptor.
func stageShader(desc rhi.GraphicsPipelineDesc, stage rhi.ShaderType) rhi.Shader {
	switch stage {
	case rhi.ShaderTypeVertex:
		return desc.VertexShader
	case rhi.ShaderTypeHull:
		return desc.HullShader
	case rhi.ShaderTypeDomain:
		return desc.DomainShader
	case rhi.ShaderTypeGeometry:
		return desc.GeometryShader
	case rhi.ShaderTypePixel:
		return desc.PixelShader
	default:
		return nil
	}
}

// meshletStageShader selects the shader of one stage from a meshlet
// pipeline descriptor.
func meshletStageShader(desc rhi.MeshletPipelineDesc, stage rhi.ShaderType) rhi.Shader {
	switch stage {
	case rhi.ShaderTypeAmplification:
		return desc.AmplificationShader
	case rhi.ShaderTypeMesh:
		return desc.MeshShader
	case rhi.ShaderTypePixel:
		return desc.PixelShader
	default:
		return nil
	}
}

// validateShaderType checks that a pipeline slot holds a shader created
// for that stage.
func validateShaderType(r *report, expected rhi.ShaderType, desc rhi.ShaderDesc) {
	if desc.ShaderType == expected {
		return
	}
	r.errorf("unexpected shader type: expected %v, got %v in %s:%s",
		expected, desc.ShaderType, displayName(desc.DebugName), desc.Entry())
}

// validateRenderState checks declared depth-stencil usage against the
// framebuffer's depth attachment, and conservative rasterization
// against device support.
func (d *Device) validateRenderState(r *report, state rhi.RenderState, fb rhi.Framebuffer) {
	if fb == nil {
		r.errorf("framebuffer is nil")
		return
	}
	fbDesc := fb.Desc()
	ds := state.DepthStencil

	if (ds.DepthTestEnable || ds.StencilEnable) && !fbDesc.DepthAttachment.Valid() {
		r.errorf("the depth-stencil state uses depth or stencil operations, but the framebuffer has no depth attachment")
	} else if ((ds.DepthTestEnable && ds.DepthWriteEnable) || (ds.StencilEnable && ds.StencilWriteMask != 0)) &&
		fbDesc.DepthAttachment.IsReadOnly {
		r.errorf("the depth-stencil state uses depth or stencil writes, but the framebuffer's depth attachment is read-only")
	}

	if state.Raster.ConservativeRasterEnable && !d.inner.QueryFeatureSupport(rhi.FeatureConservativeRasterization) {
		r.warningf("conservative rasterization is not supported on this device")
	}
}

// registerSpaceMode tracks whether the layouts of a pipeline agree on
// RegisterSpaceIsDescriptorSet.
type registerSpaceMode uint8

const (
	spaceModeUndetermined registerSpaceMode = iota
	spaceModeTrue
	spaceModeFalse
	spaceModeMixed
)

// validatePipelineBindingLayouts aggregates the bindings every layout
// declares for each shader stage and checks cross-layout consistency:
// registers claimed by more than one layout, overlapping register
// ranges on contiguous-slot backends, push constant limits, and
// register space uniformity.
func (d *Device) validatePipelineBindingLayouts(r *report, layouts []rhi.BindingLayout, shaders []rhi.Shader) {
	for i, layout := range layouts {
		if layout == nil {
			r.errorf("binding layout in slot %d is nil", i)
		}
	}

	var duplicateLines, overlapLines []string

	for _, shader := range shaders {
		stage := shader.Desc().ShaderType

		summaries := make([]*bindingSummary, len(layouts))
		for i, layout := range layouts {
			summaries[i] = newBindingSummary()
			if layout == nil {
				continue
			}
			layoutDesc := layout.Desc()
			if layoutDesc == nil {
				// Bindless layouts have no fixed registers to clash on.
				continue
			}
			if layoutDesc.Visibility&stage == 0 {
				continue
			}
			// Duplicates inside one layout are rejected at layout
			// creation; only cross-layout duplicates matter here.
			fillLayoutSummary(r, layoutDesc, summaries[i], make(locationSet))
		}

		if len(layouts) < 2 {
			continue
		}

		seen := make(locationSet)
		seen.union(summaries[0].locations)
		crossDuplicates := make(locationSet)
		for i := 1; i < len(summaries); i++ {
			crossDuplicates.union(seen.intersect(summaries[i].locations))
			seen.union(summaries[i].locations)
		}

		if !crossDuplicates.empty() {
			duplicateLines = append(duplicateLines, fmt.Sprintf("%v: %v", stage, crossDuplicates))
		} else if bindsContiguousSlots(d.inner.GraphicsAPI()) {
			var srv, sampler, uav, cb bool
			for i := 0; i < len(summaries)-1; i++ {
				if !summaries[i].any() {
					continue
				}
				for j := i + 1; j < len(summaries); j++ {
					srv = srv || summaries[i].rangeSRV.overlaps(summaries[j].rangeSRV)
					sampler = sampler || summaries[i].rangeSampler.overlaps(summaries[j].rangeSampler)
					uav = uav || summaries[i].rangeUAV.overlaps(summaries[j].rangeUAV)
					cb = cb || summaries[i].rangeCB.overlaps(summaries[j].rangeCB)
				}
			}
			if srv || sampler || uav || cb {
				var classes []string
				if srv {
					classes = append(classes, "SRV")
				}
				if sampler {
					classes = append(classes, "Sampler")
				}
				if uav {
					classes = append(classes, "UAV")
				}
				if cb {
					classes = append(classes, "CB")
				}
				overlapLines = append(overlapLines, fmt.Sprintf("%v: %s", stage, strings.Join(classes, ", ")))
			}
		}
	}

	if len(duplicateLines) > 0 {
		r.errorf("the same registers are declared by more than one layout in this pipeline:\n%s", strings.Join(duplicateLines, "\n"))
	}
	if len(overlapLines) > 0 {
		r.errorf("binding layouts have overlapping register ranges:\n%s", strings.Join(overlapLines, "\n"))
	}

	pushConstantCount := 0
	var pushConstantSize uint32
	spaceMode := spaceModeUndetermined
	spaceToLayout := make(map[uint32]int)

	for i, layout := range layouts {
		if layout == nil {
			continue
		}
		layoutDesc := layout.Desc()
		if layoutDesc == nil {
			continue
		}

		for _, item := range layoutDesc.Bindings {
			if item.Type == rhi.ResourceTypePushConstants {
				pushConstantCount++
				pushConstantSize = max(pushConstantSize, item.Size)
			}
		}

		if layoutDesc.RegisterSpaceIsDescriptorSet {
			if layoutDesc.RegisterSpace >= rhi.MaxBindingLayouts {
				r.errorf("binding layout at index %d has registerSpace = %d; the largest supported register space is %d",
					i, layoutDesc.RegisterSpace, rhi.MaxBindingLayouts-1)
			} else if prev, used := spaceToLayout[layoutDesc.RegisterSpace]; used {
				r.errorf("binding layout at index %d has registerSpace = %d, which is already used by the layout at index %d",
					i, layoutDesc.RegisterSpace, prev)
			} else {
				spaceToLayout[layoutDesc.RegisterSpace] = i
			}
			if spaceMode == spaceModeFalse {
				spaceMode = spaceModeMixed
			} else if spaceMode == spaceModeUndetermined {
				spaceMode = spaceModeTrue
			}
		} else {
			if spaceMode == spaceModeTrue {
				spaceMode = spaceModeMixed
			} else if spaceMode == spaceModeUndetermined {
				spaceMode = spaceModeFalse
			}
		}
	}

	if spaceMode == spaceModeMixed {
		r.errorf("the pipeline contains binding layouts with differing values of registerSpaceIsDescriptorSet")
	}
	if pushConstantCount > 1 {
		r.errorf("binding layouts declare more than one (%d) push constant block", pushConstantCount)
	}
	if pushConstantSize > rhi.MaxPushConstantSize {
		r.errorf("binding layouts declare %d bytes of push constant data, which exceeds the limit of %d bytes",
			pushConstantSize, rhi.MaxPushConstantSize)
	}
}

// CreateGraphicsPipeline checks each shader slot against its stage,
// the binding layouts against each other, and the render state against
// the framebuffer.
func (d *Device) CreateGraphicsPipeline(desc rhi.GraphicsPipelineDesc, fb rhi.Framebuffer) (rhi.GraphicsPipeline, error) {
	r := d.begin("CreateGraphicsPipeline")

	var shaders []rhi.Shader
	for _, stage := range graphicsShaderStages {
		if shader := stageShader(desc, stage); shader != nil {
			shaders = append(shaders, shader)
			validateShaderType(r, stage, shader.Desc())
		}
	}

	d.validatePipelineBindingLayouts(r, desc.BindingLayouts, shaders)
	d.validateRenderState(r, desc.RenderState, fb)

	if err := r.finish(); err != nil {
		return nil, err
	}
	return d.inner.CreateGraphicsPipeline(desc, fb)
}

// CreateComputePipeline checks the shader slot and the binding layouts.
func (d *Device) CreateComputePipeline(desc rhi.ComputePipelineDesc) (rhi.ComputePipeline, error) {
	r := d.begin("CreateComputePipeline")

	if desc.ComputeShader == nil {
		r.errorf("computeShader is nil")
		return nil, r.finish()
	}

	d.validatePipelineBindingLayouts(r, desc.BindingLayouts, []rhi.Shader{desc.ComputeShader})
	validateShaderType(r, rhi.ShaderTypeCompute, desc.ComputeShader.Desc())

	if err := r.finish(); err != nil {
		return nil, err
	}
	return d.inner.CreateComputePipeline(desc)
}

// CreateMeshletPipeline checks each shader slot against its stage, the
// binding layouts against each other, and the render state against the
// framebuffer.
func (d *Device) CreateMeshletPipeline(desc rhi.MeshletPipelineDesc, fb rhi.Framebuffer) (rhi.MeshletPipeline, error) {
	r := d.begin("CreateMeshletPipeline")

	var shaders []rhi.Shader
	for _, stage := range meshletShaderStages {
		if shader := meshletStageShader(desc, stage); shader != nil {
			shaders = append(shaders, shader)
			validateShaderType(r, stage, shader.Desc())
		}
	}

	d.validatePipelineBindingLayouts(r, desc.BindingLayouts, shaders)
	d.validateRenderState(r, desc.RenderState, fb)

	if err := r.finish(); err != nil {
		return nil, err
	}
	return d.inner.CreateMeshletPipeline(desc, fb)
}

func (d *Device) CreateRayTracingPipeline(desc rhi.RayTracingPipelineDesc) (rhi.RayTracingPipeline, error) {
	return d.inner.CreateRayTracingPipeline(desc)
}
