// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/rhi"
)

func TestNewDeviceImplementsDevice(t *testing.T) {
	device, _, sink := newValidationDevice(t)
	var iface rhi.Device = device
	if iface.MessageCallback() != sink {
		t.Error("MessageCallback() should return the configured sink")
	}
}

func TestNewDeviceFallsBackToDefaultCallback(t *testing.T) {
	// The test device has no callback of its own, so the layer falls
	// back to the package default.
	device := NewDevice(newTestDevice())
	if device.MessageCallback() == nil {
		t.Error("MessageCallback() = nil, want the default callback")
	}
}

func TestCreateHeapZeroCapacity(t *testing.T) {
	device, inner, sink := newValidationDevice(t)

	heap, err := device.CreateHeap(rhi.HeapDesc{Capacity: 0})
	if heap != nil {
		t.Error("CreateHeap returned a heap despite the validation failure")
	}
	verr := expectError(t, err, inner, sink, "CreateHeap")
	if !strings.Contains(verr.Error(), "capacity = 0") {
		t.Errorf("unexpected message: %q", verr.Error())
	}
}

func TestCreateHeapPatchesDebugName(t *testing.T) {
	device, inner, sink := newValidationDevice(t)

	if _, err := device.CreateHeap(rhi.HeapDesc{Capacity: 4096, Type: rhi.HeapTypeUpload}); err != nil {
		t.Fatalf("CreateHeap: %v", err)
	}
	if len(sink.messages) != 0 {
		t.Errorf("valid call reported %d messages", len(sink.messages))
	}
	name := inner.lastHeapDesc.DebugName
	if name == "" {
		t.Fatal("the backend saw an empty debug name")
	}
	if !strings.Contains(name, "4096") || !strings.Contains(name, "Upload") {
		t.Errorf("generated name %q should mention the capacity and heap type", name)
	}
}

func validTexture2D() rhi.TextureDesc {
	return rhi.TextureDesc{
		Width:       64,
		Height:      64,
		Depth:       1,
		ArraySize:   1,
		MipLevels:   1,
		SampleCount: 1,
		Dimension:   rhi.TextureDimension2D,
		Format:      rhi.FormatRGBA8UNorm,
		DebugName:   "tex0",
	}
}

func TestCreateTextureRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*rhi.TextureDesc)
		wantSub string
	}{
		{
			"unknown dimension",
			func(d *rhi.TextureDesc) { d.Dimension = rhi.TextureDimensionUnknown },
			"unknown texture dimension",
		},
		{
			"zero width",
			func(d *rhi.TextureDesc) { d.Width = 0 },
			"must all be nonzero",
		},
		{
			"zero mip levels",
			func(d *rhi.TextureDesc) { d.MipLevels = 0 },
			"must all be nonzero",
		},
		{
			"1D with height",
			func(d *rhi.TextureDesc) { d.Dimension = rhi.TextureDimension1D; d.Height = 2 },
			"height (2) must be 1",
		},
		{
			"2D with depth",
			func(d *rhi.TextureDesc) { d.Depth = 4 },
			"depth (4) must be 1",
		},
		{
			"2D with array size",
			func(d *rhi.TextureDesc) { d.ArraySize = 3 },
			"arraySize (3) must be 1",
		},
		{
			"cube needs six faces",
			func(d *rhi.TextureDesc) { d.Dimension = rhi.TextureDimensionCube; d.ArraySize = 5 },
			"arraySize (5) must be 6",
		},
		{
			"cube array multiple of six",
			func(d *rhi.TextureDesc) { d.Dimension = rhi.TextureDimensionCubeArray; d.ArraySize = 8 },
			"must be a multiple of 6",
		},
		{
			"multisample count",
			func(d *rhi.TextureDesc) { d.Dimension = rhi.TextureDimension2DMS; d.SampleCount = 3 },
			"sampleCount (3) must be 2, 4 or 8",
		},
		{
			"single sample for non-MS",
			func(d *rhi.TextureDesc) { d.SampleCount = 4 },
			"sampleCount (4) must be 1",
		},
		{
			"multisampled UAV",
			func(d *rhi.TextureDesc) {
				d.Dimension = rhi.TextureDimension2DMS
				d.SampleCount = 4
				d.IsUAV = true
			},
			"multisampled textures cannot have unordered access views",
		},
		{
			"virtual without support",
			func(d *rhi.TextureDesc) { d.IsVirtual = true },
			"does not support virtual resources",
		},
		{
			"keepInitialState without state",
			func(d *rhi.TextureDesc) { d.KeepInitialState = true },
			"initialState = Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device, inner, sink := newValidationDevice(t)
			desc := validTexture2D()
			tt.mutate(&desc)

			texture, err := device.CreateTexture(desc)
			if texture != nil {
				t.Error("CreateTexture returned a texture despite the validation failure")
			}
			verr := expectError(t, err, inner, sink, "CreateTexture")
			if !strings.Contains(verr.Error(), tt.wantSub) {
				t.Errorf("message %q does not contain %q", verr.Error(), tt.wantSub)
			}
		})
	}
}

func TestCreateTextureAggregatesFindings(t *testing.T) {
	device, _, sink := newValidationDevice(t)

	desc := validTexture2D()
	desc.Depth = 2
	desc.ArraySize = 3
	desc.SampleCount = 7

	_, err := device.CreateTexture(desc)
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if got := len(verr.Findings()); got != 3 {
		t.Fatalf("len(Findings()) = %d, want 3", got)
	}
	if len(sink.messages) != 1 {
		t.Fatalf("callback invoked %d times, want 1", len(sink.messages))
	}
	if got := strings.Count(sink.messages[0], "\n"); got != 3 {
		t.Errorf("aggregated message has %d newlines, want 3:\n%s", got, sink.messages[0])
	}
}

func TestCreateTextureValid(t *testing.T) {
	device, inner, sink := newValidationDevice(t)

	texture, err := device.CreateTexture(validTexture2D())
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	if texture == nil {
		t.Fatal("CreateTexture returned nil")
	}
	if len(sink.messages) != 0 {
		t.Errorf("valid call reported %d messages", len(sink.messages))
	}
	if !inner.called("CreateTexture") {
		t.Error("the call never reached the backend")
	}
}

func TestCreateTextureVirtualWithSupport(t *testing.T) {
	device, inner, _ := newValidationDevice(t)
	inner.features[rhi.FeatureVirtualResources] = true

	desc := validTexture2D()
	desc.IsVirtual = true
	if _, err := device.CreateTexture(desc); err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
}

func TestCreateTexturePatchesDebugName(t *testing.T) {
	device, inner, _ := newValidationDevice(t)

	desc := validTexture2D()
	desc.DebugName = ""
	if _, err := device.CreateTexture(desc); err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	if inner.lastTextureDesc.DebugName == "" {
		t.Error("the backend saw an empty debug name")
	}
}

func TestTextureMemoryRequirementsNil(t *testing.T) {
	device, inner, sink := newValidationDevice(t)

	memReq, err := device.TextureMemoryRequirements(nil)
	if memReq != (rhi.MemoryRequirements{}) {
		t.Errorf("memReq = %+v, want zero", memReq)
	}
	expectError(t, err, inner, sink, "TextureMemoryRequirements")
}

func TestTextureMemoryRequirementsZeroSize(t *testing.T) {
	device, inner, sink := newValidationDevice(t)
	inner.memReq = rhi.MemoryRequirements{}

	texture := &testTexture{desc: rhi.TextureDesc{DebugName: "vtex", IsVirtual: true}}
	_, err := device.TextureMemoryRequirements(texture)
	if err == nil {
		t.Fatal("expected an error for a zero-size backend answer")
	}
	if len(sink.messages) != 1 || !strings.Contains(sink.messages[0], "zero memory size") {
		t.Errorf("messages = %q", sink.messages)
	}
}

func TestBindTextureMemory(t *testing.T) {
	virtual := func() *testTexture {
		return &testTexture{desc: rhi.TextureDesc{DebugName: "vtex", IsVirtual: true}}
	}
	heap := func(capacity uint64) *testHeap {
		return &testHeap{desc: rhi.HeapDesc{Capacity: capacity, DebugName: "heap0"}}
	}

	t.Run("not virtual", func(t *testing.T) {
		device, inner, sink := newValidationDevice(t)
		texture := &testTexture{desc: rhi.TextureDesc{DebugName: "tex0"}}

		err := device.BindTextureMemory(texture, heap(4096), 0)
		verr := expectError(t, err, inner, sink, "BindTextureMemory")
		if !strings.Contains(verr.Error(), "isVirtual = false") {
			t.Errorf("unexpected message: %q", verr.Error())
		}
	})

	t.Run("does not fit", func(t *testing.T) {
		device, inner, sink := newValidationDevice(t)

		// memReq.Size is 1024, so offset 1536 overflows a 2048 byte heap.
		err := device.BindTextureMemory(virtual(), heap(2048), 1536)
		verr := expectError(t, err, inner, sink, "BindTextureMemory")
		if !strings.Contains(verr.Error(), "does not fit into heap heap0") {
			t.Errorf("unexpected message: %q", verr.Error())
		}
	})

	t.Run("misaligned", func(t *testing.T) {
		device, _, sink := newValidationDevice(t)

		// memReq.Alignment is 256.
		err := device.BindTextureMemory(virtual(), heap(4096), 100)
		if err == nil {
			t.Fatal("expected an alignment error")
		}
		if !strings.Contains(sink.messages[0], "misaligned offset") {
			t.Errorf("unexpected message: %q", sink.messages[0])
		}
	})

	t.Run("valid", func(t *testing.T) {
		device, inner, sink := newValidationDevice(t)

		if err := device.BindTextureMemory(virtual(), heap(4096), 512); err != nil {
			t.Fatalf("BindTextureMemory: %v", err)
		}
		if !inner.called("BindTextureMemory") {
			t.Error("the call never reached the backend")
		}
		if len(sink.messages) != 0 {
			t.Errorf("valid call reported %d messages", len(sink.messages))
		}
	})

	t.Run("nil arguments", func(t *testing.T) {
		device, _, sink := newValidationDevice(t)

		err := device.BindTextureMemory(nil, nil, 0)
		var verr *Error
		if !errors.As(err, &verr) {
			t.Fatalf("error type = %T, want *Error", err)
		}
		if len(verr.Findings()) != 2 {
			t.Errorf("len(Findings()) = %d, want 2", len(verr.Findings()))
		}
		if len(sink.messages) != 1 {
			t.Errorf("callback invoked %d times, want 1", len(sink.messages))
		}
	})
}

func validVolatileBuffer() rhi.BufferDesc {
	return rhi.BufferDesc{
		ByteSize:         256,
		DebugName:        "cb0",
		IsConstantBuffer: true,
		IsVolatile:       true,
		MaxVersions:      3,
	}
}

func TestCreateBufferVolatileRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*rhi.BufferDesc)
		wantSub string
	}{
		{
			"volatile non-constant",
			func(d *rhi.BufferDesc) { d.IsConstantBuffer = false },
			"is not a constant buffer",
		},
		{
			"volatile without versions",
			func(d *rhi.BufferDesc) { d.MaxVersions = 0 },
			"maxVersions = 0",
		},
		{
			"volatile vertex buffer",
			func(d *rhi.BufferDesc) { d.IsVertexBuffer = true },
			"unsupported usage flags: IsVertexBuffer",
		},
		{
			"volatile with UAVs and index",
			func(d *rhi.BufferDesc) { d.IsIndexBuffer = true; d.CanHaveUAVs = true },
			"IsIndexBuffer, CanHaveUAVs",
		},
		{
			"volatile with cpu access",
			func(d *rhi.BufferDesc) { d.CPUAccess = rhi.CPUAccessWrite },
			"cpuAccess = None",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device, inner, sink := newValidationDevice(t)
			desc := validVolatileBuffer()
			tt.mutate(&desc)

			buffer, err := device.CreateBuffer(desc)
			if buffer != nil {
				t.Error("CreateBuffer returned a buffer despite the validation failure")
			}
			verr := expectError(t, err, inner, sink, "CreateBuffer")
			if !strings.Contains(verr.Error(), tt.wantSub) {
				t.Errorf("message %q does not contain %q", verr.Error(), tt.wantSub)
			}
		})
	}
}

func TestCreateBufferValid(t *testing.T) {
	device, inner, sink := newValidationDevice(t)

	if _, err := device.CreateBuffer(validVolatileBuffer()); err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if !inner.called("CreateBuffer") {
		t.Error("the call never reached the backend")
	}
	if len(sink.messages) != 0 {
		t.Errorf("valid call reported %d messages", len(sink.messages))
	}
}

func TestCreateBufferPatchesDebugName(t *testing.T) {
	device, inner, _ := newValidationDevice(t)

	if _, err := device.CreateBuffer(rhi.BufferDesc{ByteSize: 128}); err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if !strings.Contains(inner.lastBufferDesc.DebugName, "128") {
		t.Errorf("generated name %q should mention the byte size", inner.lastBufferDesc.DebugName)
	}
}

func TestCreateBufferErrorUsesGeneratedName(t *testing.T) {
	device, _, sink := newValidationDevice(t)

	_, err := device.CreateBuffer(rhi.BufferDesc{ByteSize: 64, IsVolatile: true})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !strings.Contains(sink.messages[0], "Unnamed Buffer") {
		t.Errorf("diagnostic %q should use the generated name", sink.messages[0])
	}
}

func TestBindBufferMemoryNotVirtual(t *testing.T) {
	device, inner, sink := newValidationDevice(t)
	buffer := &testBuffer{desc: rhi.BufferDesc{ByteSize: 512, DebugName: "buf0"}}
	heap := &testHeap{desc: rhi.HeapDesc{Capacity: 4096, DebugName: "heap0"}}

	err := device.BindBufferMemory(buffer, heap, 0)
	verr := expectError(t, err, inner, sink, "BindBufferMemory")
	if !strings.Contains(verr.Error(), "buffer buf0") {
		t.Errorf("unexpected message: %q", verr.Error())
	}
}

func TestCreateSamplerFeedbackTextureRequiresFeature(t *testing.T) {
	device, inner, sink := newValidationDevice(t)
	paired := &testTexture{desc: validTexture2D()}

	_, err := device.CreateSamplerFeedbackTexture(paired, rhi.SamplerFeedbackTextureDesc{})
	verr := expectError(t, err, inner, sink, "CreateSamplerFeedbackTexture")
	if !strings.Contains(verr.Error(), "Vulkan") {
		t.Errorf("the diagnostic should name the active API: %q", verr.Error())
	}

	inner.features[rhi.FeatureSamplerFeedback] = true
	if _, err := device.CreateSamplerFeedbackTexture(paired, rhi.SamplerFeedbackTextureDesc{}); err != nil {
		t.Fatalf("CreateSamplerFeedbackTexture with support: %v", err)
	}
}

func TestCreateShaderSpecialization(t *testing.T) {
	constants := []rhi.ShaderSpecialization{{ConstantID: 0, Value: 1}}
	shader := &testShader{desc: rhi.ShaderDesc{ShaderType: rhi.ShaderTypeCompute}}

	t.Run("unsupported", func(t *testing.T) {
		device, inner, sink := newValidationDevice(t)
		_, err := device.CreateShaderSpecialization(shader, constants)
		expectError(t, err, inner, sink, "CreateShaderSpecialization")
	})

	t.Run("aggregates all arguments", func(t *testing.T) {
		device, _, _ := newValidationDevice(t)
		_, err := device.CreateShaderSpecialization(nil, nil)
		var verr *Error
		if !errors.As(err, &verr) {
			t.Fatalf("error type = %T, want *Error", err)
		}
		// Unsupported feature, empty constants, nil shader.
		if len(verr.Findings()) != 3 {
			t.Errorf("len(Findings()) = %d, want 3", len(verr.Findings()))
		}
	})

	t.Run("supported", func(t *testing.T) {
		device, inner, _ := newValidationDevice(t)
		inner.features[rhi.FeatureShaderSpecializations] = true
		if _, err := device.CreateShaderSpecialization(shader, constants); err != nil {
			t.Fatalf("CreateShaderSpecialization: %v", err)
		}
		if !inner.called("CreateShaderSpecialization") {
			t.Error("the call never reached the backend")
		}
	})
}

func TestPlainForwards(t *testing.T) {
	device, inner, sink := newValidationDevice(t)

	if err := device.WaitForIdle(); err != nil {
		t.Fatalf("WaitForIdle: %v", err)
	}
	device.RunGarbageCollection()
	if _, err := device.CreateSampler(rhi.SamplerDesc{}); err != nil {
		t.Fatalf("CreateSampler: %v", err)
	}
	if _, err := device.CreateFramebuffer(rhi.FramebufferDesc{}); err != nil {
		t.Fatalf("CreateFramebuffer: %v", err)
	}

	for _, call := range []string{"WaitForIdle", "RunGarbageCollection", "CreateSampler", "CreateFramebuffer"} {
		if !inner.called(call) {
			t.Errorf("%s never reached the backend", call)
		}
	}
	if len(sink.messages) != 0 {
		t.Errorf("forwards reported %d messages", len(sink.messages))
	}
}
