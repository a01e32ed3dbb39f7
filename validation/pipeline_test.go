// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/rhi"
)

func stageShaderMock(stage rhi.ShaderType, name string) *testShader {
	return &testShader{desc: rhi.ShaderDesc{ShaderType: stage, DebugName: name}}
}

func layoutFor(visibility rhi.ShaderType, items ...rhi.BindingLayoutItem) *testBindingLayout {
	return &testBindingLayout{desc: &rhi.BindingLayoutDesc{Visibility: visibility, Bindings: items}}
}

func plainFramebuffer() *testFramebuffer {
	return &testFramebuffer{}
}

func depthFramebuffer(readOnly bool) *testFramebuffer {
	return &testFramebuffer{desc: rhi.FramebufferDesc{
		DepthAttachment: rhi.FramebufferAttachment{
			Texture:    &testTexture{desc: validTexture2D()},
			IsReadOnly: readOnly,
		},
	}}
}

func validGraphicsPipeline() rhi.GraphicsPipelineDesc {
	return rhi.GraphicsPipelineDesc{
		VertexShader: stageShaderMock(rhi.ShaderTypeVertex, "vs"),
		PixelShader:  stageShaderMock(rhi.ShaderTypePixel, "ps"),
	}
}

func TestCreateGraphicsPipelineValid(t *testing.T) {
	device, inner, sink := newValidationDevice(t)

	if _, err := device.CreateGraphicsPipeline(validGraphicsPipeline(), plainFramebuffer()); err != nil {
		t.Fatalf("CreateGraphicsPipeline: %v", err)
	}
	if !inner.called("CreateGraphicsPipeline") {
		t.Error("the call never reached the backend")
	}
	if len(sink.messages) != 0 {
		t.Errorf("valid call reported %d messages", len(sink.messages))
	}
}

func TestCreateGraphicsPipelineShaderTypeMismatch(t *testing.T) {
	device, inner, sink := newValidationDevice(t)

	desc := validGraphicsPipeline()
	desc.VertexShader = stageShaderMock(rhi.ShaderTypePixel, "wrong")

	_, err := device.CreateGraphicsPipeline(desc, plainFramebuffer())
	verr := expectError(t, err, inner, sink, "CreateGraphicsPipeline")
	if !strings.Contains(verr.Error(), "unexpected shader type") {
		t.Errorf("unexpected message: %q", verr.Error())
	}
	if !strings.Contains(verr.Error(), "wrong:main") {
		t.Errorf("the diagnostic should name the shader and entry point: %q", verr.Error())
	}
}

func TestCreateGraphicsPipelineNilFramebuffer(t *testing.T) {
	device, inner, sink := newValidationDevice(t)

	_, err := device.CreateGraphicsPipeline(validGraphicsPipeline(), nil)
	verr := expectError(t, err, inner, sink, "CreateGraphicsPipeline")
	if !strings.Contains(verr.Error(), "framebuffer is nil") {
		t.Errorf("unexpected message: %q", verr.Error())
	}
}

func TestCreateGraphicsPipelineDepthState(t *testing.T) {
	withDepthTest := func() rhi.GraphicsPipelineDesc {
		desc := validGraphicsPipeline()
		desc.RenderState.DepthStencil.DepthTestEnable = true
		return desc
	}

	t.Run("no depth attachment", func(t *testing.T) {
		device, inner, sink := newValidationDevice(t)
		_, err := device.CreateGraphicsPipeline(withDepthTest(), plainFramebuffer())
		verr := expectError(t, err, inner, sink, "CreateGraphicsPipeline")
		if !strings.Contains(verr.Error(), "no depth attachment") {
			t.Errorf("unexpected message: %q", verr.Error())
		}
	})

	t.Run("write to read-only attachment", func(t *testing.T) {
		device, inner, sink := newValidationDevice(t)
		desc := withDepthTest()
		desc.RenderState.DepthStencil.DepthWriteEnable = true
		_, err := device.CreateGraphicsPipeline(desc, depthFramebuffer(true))
		verr := expectError(t, err, inner, sink, "CreateGraphicsPipeline")
		if !strings.Contains(verr.Error(), "read-only") {
			t.Errorf("unexpected message: %q", verr.Error())
		}
	})

	t.Run("read-only test passes", func(t *testing.T) {
		device, _, sink := newValidationDevice(t)
		if _, err := device.CreateGraphicsPipeline(withDepthTest(), depthFramebuffer(true)); err != nil {
			t.Fatalf("CreateGraphicsPipeline: %v", err)
		}
		if len(sink.messages) != 0 {
			t.Errorf("valid call reported %d messages", len(sink.messages))
		}
	})
}

func TestCreateGraphicsPipelineConservativeRaster(t *testing.T) {
	t.Run("unsupported", func(t *testing.T) {
		device, inner, sink := newValidationDevice(t)

		desc := validGraphicsPipeline()
		desc.RenderState.Raster.ConservativeRasterEnable = true

		_, err := device.CreateGraphicsPipeline(desc, plainFramebuffer())
		verr := expectError(t, err, inner, sink, "CreateGraphicsPipeline")
		if verr.Severity() != rhi.SeverityWarning {
			t.Errorf("Severity() = %v, want %v", verr.Severity(), rhi.SeverityWarning)
		}
		if sink.severities[0] != rhi.SeverityWarning {
			t.Errorf("reported severity = %v, want %v", sink.severities[0], rhi.SeverityWarning)
		}
	})

	t.Run("supported", func(t *testing.T) {
		device, inner, _ := newValidationDevice(t)
		inner.features[rhi.FeatureConservativeRasterization] = true

		desc := validGraphicsPipeline()
		desc.RenderState.Raster.ConservativeRasterEnable = true
		if _, err := device.CreateGraphicsPipeline(desc, plainFramebuffer()); err != nil {
			t.Fatalf("CreateGraphicsPipeline: %v", err)
		}
	})
}

func TestCreateGraphicsPipelineNilBindingLayout(t *testing.T) {
	device, inner, sink := newValidationDevice(t)

	desc := validGraphicsPipeline()
	desc.BindingLayouts = []rhi.BindingLayout{nil}

	_, err := device.CreateGraphicsPipeline(desc, plainFramebuffer())
	verr := expectError(t, err, inner, sink, "CreateGraphicsPipeline")
	if !strings.Contains(verr.Error(), "binding layout in slot 0 is nil") {
		t.Errorf("unexpected message: %q", verr.Error())
	}
}

func TestCreateGraphicsPipelineCrossLayoutDuplicates(t *testing.T) {
	device, inner, sink := newValidationDevice(t)

	desc := validGraphicsPipeline()
	desc.BindingLayouts = []rhi.BindingLayout{
		layoutFor(rhi.ShaderTypePixel,
			rhi.BindingLayoutItem{Slot: 3, Type: rhi.ResourceTypeTextureSRV, Size: 1}),
		layoutFor(rhi.ShaderTypePixel,
			rhi.BindingLayoutItem{Slot: 3, Type: rhi.ResourceTypeTextureSRV, Size: 1}),
	}

	_, err := device.CreateGraphicsPipeline(desc, plainFramebuffer())
	verr := expectError(t, err, inner, sink, "CreateGraphicsPipeline")
	if !strings.Contains(verr.Error(), "declared by more than one layout") {
		t.Errorf("unexpected message: %q", verr.Error())
	}
	if !strings.Contains(verr.Error(), "t3") {
		t.Errorf("the diagnostic should name the clashing register: %q", verr.Error())
	}
}

func TestCreateGraphicsPipelineDuplicatesIgnoreDisjointStages(t *testing.T) {
	device, _, sink := newValidationDevice(t)

	// The same register in layouts visible to different stages is fine.
	desc := validGraphicsPipeline()
	desc.BindingLayouts = []rhi.BindingLayout{
		layoutFor(rhi.ShaderTypeVertex,
			rhi.BindingLayoutItem{Slot: 3, Type: rhi.ResourceTypeTextureSRV, Size: 1}),
		layoutFor(rhi.ShaderTypePixel,
			rhi.BindingLayoutItem{Slot: 3, Type: rhi.ResourceTypeTextureSRV, Size: 1}),
	}

	if _, err := device.CreateGraphicsPipeline(desc, plainFramebuffer()); err != nil {
		t.Fatalf("CreateGraphicsPipeline: %v", err)
	}
	if len(sink.messages) != 0 {
		t.Errorf("valid call reported %d messages", len(sink.messages))
	}
}

func TestCreateGraphicsPipelineRangeOverlap(t *testing.T) {
	// Layout 0 spans SRV slots 0..4, layout 1 uses slot 2 inside that
	// range without declaring the same register.
	overlapping := []rhi.BindingLayout{
		layoutFor(rhi.ShaderTypePixel,
			rhi.BindingLayoutItem{Slot: 0, Type: rhi.ResourceTypeTextureSRV, Size: 1},
			rhi.BindingLayoutItem{Slot: 4, Type: rhi.ResourceTypeTextureSRV, Size: 1}),
		layoutFor(rhi.ShaderTypePixel,
			rhi.BindingLayoutItem{Slot: 2, Type: rhi.ResourceTypeTextureSRV, Size: 1}),
	}

	t.Run("d3d11 rejects", func(t *testing.T) {
		device, inner, sink := newValidationDevice(t)
		inner.api = rhi.GraphicsAPID3D11

		desc := validGraphicsPipeline()
		desc.BindingLayouts = overlapping

		_, err := device.CreateGraphicsPipeline(desc, plainFramebuffer())
		verr := expectError(t, err, inner, sink, "CreateGraphicsPipeline")
		if !strings.Contains(verr.Error(), "overlapping register ranges") {
			t.Errorf("unexpected message: %q", verr.Error())
		}
		if !strings.Contains(verr.Error(), "SRV") {
			t.Errorf("the diagnostic should name the overlapping class: %q", verr.Error())
		}
	})

	t.Run("vulkan allows", func(t *testing.T) {
		device, _, sink := newValidationDevice(t)

		desc := validGraphicsPipeline()
		desc.BindingLayouts = overlapping

		if _, err := device.CreateGraphicsPipeline(desc, plainFramebuffer()); err != nil {
			t.Fatalf("CreateGraphicsPipeline: %v", err)
		}
		if len(sink.messages) != 0 {
			t.Errorf("valid call reported %d messages", len(sink.messages))
		}
	})
}

func TestCreateGraphicsPipelineRegisterSpaces(t *testing.T) {
	spaceLayout := func(space uint32) *testBindingLayout {
		return &testBindingLayout{desc: &rhi.BindingLayoutDesc{
			Visibility:                   rhi.ShaderTypePixel,
			RegisterSpace:                space,
			RegisterSpaceIsDescriptorSet: true,
		}}
	}

	t.Run("space too large", func(t *testing.T) {
		device, inner, sink := newValidationDevice(t)
		desc := validGraphicsPipeline()
		desc.BindingLayouts = []rhi.BindingLayout{spaceLayout(rhi.MaxBindingLayouts)}

		_, err := device.CreateGraphicsPipeline(desc, plainFramebuffer())
		verr := expectError(t, err, inner, sink, "CreateGraphicsPipeline")
		if !strings.Contains(verr.Error(), "largest supported register space") {
			t.Errorf("unexpected message: %q", verr.Error())
		}
	})

	t.Run("space reuse", func(t *testing.T) {
		device, inner, sink := newValidationDevice(t)
		desc := validGraphicsPipeline()
		desc.BindingLayouts = []rhi.BindingLayout{spaceLayout(2), spaceLayout(2)}

		_, err := device.CreateGraphicsPipeline(desc, plainFramebuffer())
		verr := expectError(t, err, inner, sink, "CreateGraphicsPipeline")
		if !strings.Contains(verr.Error(), "already used by the layout at index 0") {
			t.Errorf("unexpected message: %q", verr.Error())
		}
	})

	t.Run("mixed descriptor set flags", func(t *testing.T) {
		device, inner, sink := newValidationDevice(t)
		desc := validGraphicsPipeline()
		desc.BindingLayouts = []rhi.BindingLayout{
			spaceLayout(0),
			layoutFor(rhi.ShaderTypePixel),
		}

		_, err := device.CreateGraphicsPipeline(desc, plainFramebuffer())
		verr := expectError(t, err, inner, sink, "CreateGraphicsPipeline")
		if !strings.Contains(verr.Error(), "differing values of registerSpaceIsDescriptorSet") {
			t.Errorf("unexpected message: %q", verr.Error())
		}
	})
}

func TestCreateGraphicsPipelinePushConstants(t *testing.T) {
	pushLayout := func(size uint32) *testBindingLayout {
		return layoutFor(rhi.ShaderTypeVertex,
			rhi.BindingLayoutItem{Slot: 0, Type: rhi.ResourceTypePushConstants, Size: size})
	}

	t.Run("two blocks", func(t *testing.T) {
		device, inner, sink := newValidationDevice(t)
		desc := validGraphicsPipeline()
		desc.BindingLayouts = []rhi.BindingLayout{pushLayout(16), pushLayout(16)}

		_, err := device.CreateGraphicsPipeline(desc, plainFramebuffer())
		verr := expectError(t, err, inner, sink, "CreateGraphicsPipeline")
		if !strings.Contains(verr.Error(), "more than one (2) push constant block") {
			t.Errorf("unexpected message: %q", verr.Error())
		}
	})

	t.Run("block too large", func(t *testing.T) {
		device, inner, sink := newValidationDevice(t)
		desc := validGraphicsPipeline()
		desc.BindingLayouts = []rhi.BindingLayout{pushLayout(rhi.MaxPushConstantSize + 4)}

		_, err := device.CreateGraphicsPipeline(desc, plainFramebuffer())
		verr := expectError(t, err, inner, sink, "CreateGraphicsPipeline")
		if !strings.Contains(verr.Error(), "exceeds the limit") {
			t.Errorf("unexpected message: %q", verr.Error())
		}
	})

	t.Run("one block within limit", func(t *testing.T) {
		device, _, sink := newValidationDevice(t)
		desc := validGraphicsPipeline()
		desc.BindingLayouts = []rhi.BindingLayout{pushLayout(rhi.MaxPushConstantSize)}

		if _, err := device.CreateGraphicsPipeline(desc, plainFramebuffer()); err != nil {
			t.Fatalf("CreateGraphicsPipeline: %v", err)
		}
		if len(sink.messages) != 0 {
			t.Errorf("valid call reported %d messages", len(sink.messages))
		}
	})
}

func TestCreateComputePipeline(t *testing.T) {
	t.Run("nil shader", func(t *testing.T) {
		device, inner, sink := newValidationDevice(t)
		_, err := device.CreateComputePipeline(rhi.ComputePipelineDesc{})
		verr := expectError(t, err, inner, sink, "CreateComputePipeline")
		if !strings.Contains(verr.Error(), "computeShader is nil") {
			t.Errorf("unexpected message: %q", verr.Error())
		}
	})

	t.Run("wrong stage", func(t *testing.T) {
		device, inner, sink := newValidationDevice(t)
		desc := rhi.ComputePipelineDesc{ComputeShader: stageShaderMock(rhi.ShaderTypeVertex, "vs")}
		_, err := device.CreateComputePipeline(desc)
		verr := expectError(t, err, inner, sink, "CreateComputePipeline")
		if !strings.Contains(verr.Error(), "unexpected shader type") {
			t.Errorf("unexpected message: %q", verr.Error())
		}
	})

	t.Run("valid", func(t *testing.T) {
		device, inner, _ := newValidationDevice(t)
		desc := rhi.ComputePipelineDesc{ComputeShader: stageShaderMock(rhi.ShaderTypeCompute, "cs")}
		if _, err := device.CreateComputePipeline(desc); err != nil {
			t.Fatalf("CreateComputePipeline: %v", err)
		}
		if !inner.called("CreateComputePipeline") {
			t.Error("the call never reached the backend")
		}
	})
}

func TestCreateMeshletPipelineShaderTypeMismatch(t *testing.T) {
	device, inner, sink := newValidationDevice(t)

	desc := rhi.MeshletPipelineDesc{
		MeshShader:  stageShaderMock(rhi.ShaderTypeCompute, "not-mesh"),
		PixelShader: stageShaderMock(rhi.ShaderTypePixel, "ps"),
	}

	_, err := device.CreateMeshletPipeline(desc, plainFramebuffer())
	verr := expectError(t, err, inner, sink, "CreateMeshletPipeline")
	if !strings.Contains(verr.Error(), "unexpected shader type") {
		t.Errorf("unexpected message: %q", verr.Error())
	}
}

func TestPipelineErrorAggregation(t *testing.T) {
	device, _, sink := newValidationDevice(t)

	// Wrong vertex shader stage, nil binding layout and a nil
	// framebuffer in one call.
	desc := validGraphicsPipeline()
	desc.VertexShader = stageShaderMock(rhi.ShaderTypePixel, "wrong")
	desc.BindingLayouts = []rhi.BindingLayout{nil}

	_, err := device.CreateGraphicsPipeline(desc, nil)
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if len(verr.Findings()) != 3 {
		t.Errorf("len(Findings()) = %d, want 3", len(verr.Findings()))
	}
	if len(sink.messages) != 1 {
		t.Errorf("callback invoked %d times, want 1", len(sink.messages))
	}
}
