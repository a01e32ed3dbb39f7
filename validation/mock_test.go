// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import (
	"testing"
	"time"

	"github.com/gogpu/rhi"
)

// captureCallback records every message the layer reports.
type captureCallback struct {
	severities []rhi.MessageSeverity
	messages   []string
}

func (c *captureCallback) Message(severity rhi.MessageSeverity, text string) {
	c.severities = append(c.severities, severity)
	c.messages = append(c.messages, text)
}

// Mock resources returned by the test device.

type testHeap struct{ desc rhi.HeapDesc }

func (h *testHeap) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (h *testHeap) Desc() rhi.HeapDesc                     { return h.desc }

type testTexture struct{ desc rhi.TextureDesc }

func (t *testTexture) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (t *testTexture) Desc() rhi.TextureDesc                  { return t.desc }

type testBuffer struct{ desc rhi.BufferDesc }

func (b *testBuffer) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (b *testBuffer) Desc() rhi.BufferDesc                   { return b.desc }
func (b *testBuffer) GPUVirtualAddress() uint64              { return 0 }

type testShader struct {
	desc     rhi.ShaderDesc
	bytecode []byte
}

func (s *testShader) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (s *testShader) Desc() rhi.ShaderDesc                   { return s.desc }
func (s *testShader) Bytecode() []byte                       { return s.bytecode }

type testFramebuffer struct{ desc rhi.FramebufferDesc }

func (f *testFramebuffer) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (f *testFramebuffer) Desc() rhi.FramebufferDesc              { return f.desc }
func (f *testFramebuffer) Info() rhi.FramebufferInfo              { return rhi.FramebufferInfo{} }

type testBindingLayout struct {
	desc     *rhi.BindingLayoutDesc
	bindless *rhi.BindlessLayoutDesc
}

func (l *testBindingLayout) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (l *testBindingLayout) Desc() *rhi.BindingLayoutDesc           { return l.desc }
func (l *testBindingLayout) BindlessDesc() *rhi.BindlessLayoutDesc  { return l.bindless }

type testBindingSet struct {
	desc   rhi.BindingSetDesc
	layout rhi.BindingLayout
}

func (s *testBindingSet) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (s *testBindingSet) Desc() *rhi.BindingSetDesc              { return &s.desc }
func (s *testBindingSet) Layout() rhi.BindingLayout              { return s.layout }

type testDescriptorTable struct{ layout rhi.BindingLayout }

func (t *testDescriptorTable) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (t *testDescriptorTable) Desc() *rhi.BindingSetDesc              { return nil }
func (t *testDescriptorTable) Layout() rhi.BindingLayout              { return t.layout }
func (t *testDescriptorTable) Capacity() uint32                       { return 0 }

type testAccelStruct struct{ desc rhi.AccelStructDesc }

func (a *testAccelStruct) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (a *testAccelStruct) Desc() rhi.AccelStructDesc              { return a.desc }
func (a *testAccelStruct) IsCompacted() bool                      { return false }
func (a *testAccelStruct) DeviceAddress() uint64                  { return 0 }

type testOpacityMicromap struct{ desc rhi.OpacityMicromapDesc }

func (o *testOpacityMicromap) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (o *testOpacityMicromap) Desc() rhi.OpacityMicromapDesc          { return o.desc }
func (o *testOpacityMicromap) IsCompacted() bool                      { return false }
func (o *testOpacityMicromap) DeviceAddress() uint64                  { return 0 }

type testCommandList struct {
	params rhi.CommandListParameters
	opens  int
	closes int

	draws      int
	dispatches int

	lastTopAS     rhi.AccelStruct
	lastInstances []rhi.InstanceDesc
}

func (c *testCommandList) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (c *testCommandList) Open() error                            { c.opens++; return nil }
func (c *testCommandList) Close() error                           { c.closes++; return nil }
func (c *testCommandList) WriteBuffer(rhi.Buffer, []byte, uint64) error {
	return nil
}
func (c *testCommandList) CopyBuffer(rhi.Buffer, uint64, rhi.Buffer, uint64, uint64) error {
	return nil
}
func (c *testCommandList) SetComputeState(rhi.ComputeState) error   { return nil }
func (c *testCommandList) Dispatch(x, y, z uint32) error            { c.dispatches++; return nil }
func (c *testCommandList) SetGraphicsState(rhi.GraphicsState) error { return nil }
func (c *testCommandList) Draw(rhi.DrawArguments) error             { c.draws++; return nil }
func (c *testCommandList) DrawIndexed(rhi.DrawArguments) error      { c.draws++; return nil }
func (c *testCommandList) BuildBottomLevelAccelStruct(rhi.AccelStruct, []rhi.GeometryDesc, rhi.AccelStructBuildFlags) error {
	return nil
}
func (c *testCommandList) BuildTopLevelAccelStruct(as rhi.AccelStruct, instances []rhi.InstanceDesc, _ rhi.AccelStructBuildFlags) error {
	c.lastTopAS = as
	c.lastInstances = instances
	return nil
}
func (c *testCommandList) BeginMarker(string)              {}
func (c *testCommandList) EndMarker()                      {}
func (c *testCommandList) Desc() rhi.CommandListParameters { return c.params }

// testDevice implements rhi.Device with canned answers and records the
// names of the calls that reach it, so tests can tell whether a call was
// forwarded or stopped.
type testDevice struct {
	api      rhi.GraphicsAPI
	features map[rhi.Feature]bool
	memReq   rhi.MemoryRequirements
	calls    []string

	lastHeapDesc    rhi.HeapDesc
	lastTextureDesc rhi.TextureDesc
	lastBufferDesc  rhi.BufferDesc
	lastShaderDesc  rhi.ShaderDesc
	lastBindingSet  rhi.BindingSetDesc
	lastTableItem   rhi.BindingSetItem
	lastBoundAS     rhi.AccelStruct
	lastExecuted    []rhi.CommandList
}

func newTestDevice() *testDevice {
	return &testDevice{
		api:      rhi.GraphicsAPIVulkan,
		features: make(map[rhi.Feature]bool),
		memReq:   rhi.MemoryRequirements{Size: 1024, Alignment: 256},
	}
}

var _ rhi.Device = (*testDevice)(nil)

func (d *testDevice) record(name string) { d.calls = append(d.calls, name) }

func (d *testDevice) called(name string) bool {
	for _, call := range d.calls {
		if call == name {
			return true
		}
	}
	return false
}

func (d *testDevice) NativeObject(rhi.ObjectType) rhi.Object { return nil }
func (d *testDevice) GraphicsAPI() rhi.GraphicsAPI           { return d.api }

func (d *testDevice) CreateHeap(desc rhi.HeapDesc) (rhi.Heap, error) {
	d.record("CreateHeap")
	d.lastHeapDesc = desc
	return &testHeap{desc: desc}, nil
}

func (d *testDevice) CreateTexture(desc rhi.TextureDesc) (rhi.Texture, error) {
	d.record("CreateTexture")
	d.lastTextureDesc = desc
	return &testTexture{desc: desc}, nil
}

func (d *testDevice) TextureMemoryRequirements(rhi.Texture) (rhi.MemoryRequirements, error) {
	d.record("TextureMemoryRequirements")
	return d.memReq, nil
}

func (d *testDevice) BindTextureMemory(rhi.Texture, rhi.Heap, uint64) error {
	d.record("BindTextureMemory")
	return nil
}

func (d *testDevice) CreateHandleForNativeTexture(_ rhi.ObjectType, _ rhi.Object, desc rhi.TextureDesc) (rhi.Texture, error) {
	d.record("CreateHandleForNativeTexture")
	return &testTexture{desc: desc}, nil
}

func (d *testDevice) CreateStagingTexture(desc rhi.TextureDesc, _ rhi.CPUAccessMode) (rhi.StagingTexture, error) {
	d.record("CreateStagingTexture")
	d.lastTextureDesc = desc
	return nil, nil
}

func (d *testDevice) MapStagingTexture(rhi.StagingTexture, rhi.TextureSlice, rhi.CPUAccessMode) ([]byte, int, error) {
	d.record("MapStagingTexture")
	return nil, 0, nil
}

func (d *testDevice) UnmapStagingTexture(rhi.StagingTexture) error {
	d.record("UnmapStagingTexture")
	return nil
}

func (d *testDevice) TextureTiling(rhi.Texture) (rhi.TextureTilingInfo, error) {
	d.record("TextureTiling")
	return rhi.TextureTilingInfo{}, nil
}

func (d *testDevice) UpdateTextureTileMappings(rhi.Texture, []rhi.TextureTilesMapping, rhi.CommandQueue) error {
	d.record("UpdateTextureTileMappings")
	return nil
}

func (d *testDevice) CreateSamplerFeedbackTexture(rhi.Texture, rhi.SamplerFeedbackTextureDesc) (rhi.SamplerFeedbackTexture, error) {
	d.record("CreateSamplerFeedbackTexture")
	return nil, nil
}

func (d *testDevice) CreateSamplerFeedbackForNativeTexture(rhi.ObjectType, rhi.Object, rhi.Texture) (rhi.SamplerFeedbackTexture, error) {
	d.record("CreateSamplerFeedbackForNativeTexture")
	return nil, nil
}

func (d *testDevice) CreateBuffer(desc rhi.BufferDesc) (rhi.Buffer, error) {
	d.record("CreateBuffer")
	d.lastBufferDesc = desc
	return &testBuffer{desc: desc}, nil
}

func (d *testDevice) MapBuffer(rhi.Buffer, rhi.CPUAccessMode) ([]byte, error) {
	d.record("MapBuffer")
	return nil, nil
}

func (d *testDevice) UnmapBuffer(rhi.Buffer) error {
	d.record("UnmapBuffer")
	return nil
}

func (d *testDevice) BufferMemoryRequirements(rhi.Buffer) (rhi.MemoryRequirements, error) {
	d.record("BufferMemoryRequirements")
	return d.memReq, nil
}

func (d *testDevice) BindBufferMemory(rhi.Buffer, rhi.Heap, uint64) error {
	d.record("BindBufferMemory")
	return nil
}

func (d *testDevice) CreateHandleForNativeBuffer(_ rhi.ObjectType, _ rhi.Object, desc rhi.BufferDesc) (rhi.Buffer, error) {
	d.record("CreateHandleForNativeBuffer")
	return &testBuffer{desc: desc}, nil
}

func (d *testDevice) CreateShader(desc rhi.ShaderDesc, bytecode []byte) (rhi.Shader, error) {
	d.record("CreateShader")
	d.lastShaderDesc = desc
	return &testShader{desc: desc, bytecode: bytecode}, nil
}

func (d *testDevice) CreateShaderSpecialization(baseShader rhi.Shader, _ []rhi.ShaderSpecialization) (rhi.Shader, error) {
	d.record("CreateShaderSpecialization")
	return baseShader, nil
}

func (d *testDevice) CreateShaderLibrary([]byte) (rhi.ShaderLibrary, error) {
	d.record("CreateShaderLibrary")
	return nil, nil
}

func (d *testDevice) CreateSampler(rhi.SamplerDesc) (rhi.Sampler, error) {
	d.record("CreateSampler")
	return nil, nil
}

func (d *testDevice) CreateInputLayout([]rhi.VertexAttributeDesc, rhi.Shader) (rhi.InputLayout, error) {
	d.record("CreateInputLayout")
	return nil, nil
}

func (d *testDevice) CreateEventQuery() (rhi.EventQuery, error) {
	d.record("CreateEventQuery")
	return nil, nil
}

func (d *testDevice) SetEventQuery(rhi.EventQuery, rhi.CommandQueue) error {
	d.record("SetEventQuery")
	return nil
}

func (d *testDevice) PollEventQuery(rhi.EventQuery) bool {
	d.record("PollEventQuery")
	return true
}

func (d *testDevice) WaitEventQuery(rhi.EventQuery) error {
	d.record("WaitEventQuery")
	return nil
}

func (d *testDevice) ResetEventQuery(rhi.EventQuery) error {
	d.record("ResetEventQuery")
	return nil
}

func (d *testDevice) CreateTimerQuery() (rhi.TimerQuery, error) {
	d.record("CreateTimerQuery")
	return nil, nil
}

func (d *testDevice) PollTimerQuery(rhi.TimerQuery) bool {
	d.record("PollTimerQuery")
	return true
}

func (d *testDevice) TimerQueryTime(rhi.TimerQuery) (time.Duration, error) {
	d.record("TimerQueryTime")
	return 0, nil
}

func (d *testDevice) ResetTimerQuery(rhi.TimerQuery) error {
	d.record("ResetTimerQuery")
	return nil
}

func (d *testDevice) CreateFramebuffer(desc rhi.FramebufferDesc) (rhi.Framebuffer, error) {
	d.record("CreateFramebuffer")
	return &testFramebuffer{desc: desc}, nil
}

func (d *testDevice) CreateGraphicsPipeline(rhi.GraphicsPipelineDesc, rhi.Framebuffer) (rhi.GraphicsPipeline, error) {
	d.record("CreateGraphicsPipeline")
	return nil, nil
}

func (d *testDevice) CreateComputePipeline(rhi.ComputePipelineDesc) (rhi.ComputePipeline, error) {
	d.record("CreateComputePipeline")
	return nil, nil
}

func (d *testDevice) CreateMeshletPipeline(rhi.MeshletPipelineDesc, rhi.Framebuffer) (rhi.MeshletPipeline, error) {
	d.record("CreateMeshletPipeline")
	return nil, nil
}

func (d *testDevice) CreateRayTracingPipeline(rhi.RayTracingPipelineDesc) (rhi.RayTracingPipeline, error) {
	d.record("CreateRayTracingPipeline")
	return nil, nil
}

func (d *testDevice) CreateBindingLayout(desc rhi.BindingLayoutDesc) (rhi.BindingLayout, error) {
	d.record("CreateBindingLayout")
	return &testBindingLayout{desc: &desc}, nil
}

func (d *testDevice) CreateBindlessLayout(desc rhi.BindlessLayoutDesc) (rhi.BindingLayout, error) {
	d.record("CreateBindlessLayout")
	return &testBindingLayout{bindless: &desc}, nil
}

func (d *testDevice) CreateBindingSet(desc rhi.BindingSetDesc, layout rhi.BindingLayout) (rhi.BindingSet, error) {
	d.record("CreateBindingSet")
	d.lastBindingSet = desc
	return &testBindingSet{desc: desc, layout: layout}, nil
}

func (d *testDevice) CreateDescriptorTable(layout rhi.BindingLayout) (rhi.DescriptorTable, error) {
	d.record("CreateDescriptorTable")
	return &testDescriptorTable{layout: layout}, nil
}

func (d *testDevice) ResizeDescriptorTable(rhi.DescriptorTable, uint32, bool) error {
	d.record("ResizeDescriptorTable")
	return nil
}

func (d *testDevice) WriteDescriptorTable(_ rhi.DescriptorTable, item rhi.BindingSetItem) error {
	d.record("WriteDescriptorTable")
	d.lastTableItem = item
	return nil
}

func (d *testDevice) CreateOpacityMicromap(desc rhi.OpacityMicromapDesc) (rhi.OpacityMicromap, error) {
	d.record("CreateOpacityMicromap")
	return &testOpacityMicromap{desc: desc}, nil
}

func (d *testDevice) CreateAccelStruct(desc rhi.AccelStructDesc) (rhi.AccelStruct, error) {
	d.record("CreateAccelStruct")
	return &testAccelStruct{desc: desc}, nil
}

func (d *testDevice) AccelStructMemoryRequirements(rhi.AccelStruct) (rhi.MemoryRequirements, error) {
	d.record("AccelStructMemoryRequirements")
	return d.memReq, nil
}

func (d *testDevice) ClusterOperationSizeInfo(rhi.ClusterOperationParams) (rhi.ClusterOperationSizeInfo, error) {
	d.record("ClusterOperationSizeInfo")
	return rhi.ClusterOperationSizeInfo{ResultMaxSizeBytes: 4096, ScratchSizeBytes: 2048}, nil
}

func (d *testDevice) BindAccelStructMemory(as rhi.AccelStruct, _ rhi.Heap, _ uint64) error {
	d.record("BindAccelStructMemory")
	d.lastBoundAS = as
	return nil
}

func (d *testDevice) CreateCommandList(params rhi.CommandListParameters) (rhi.CommandList, error) {
	d.record("CreateCommandList")
	return &testCommandList{params: params}, nil
}

func (d *testDevice) ExecuteCommandLists(lists []rhi.CommandList, _ rhi.CommandQueue) (uint64, error) {
	d.record("ExecuteCommandLists")
	d.lastExecuted = lists
	return uint64(len(d.calls)), nil
}

func (d *testDevice) QueueWaitForCommandList(_, _ rhi.CommandQueue, _ uint64) error {
	d.record("QueueWaitForCommandList")
	return nil
}

func (d *testDevice) WaitForIdle() error {
	d.record("WaitForIdle")
	return nil
}

func (d *testDevice) RunGarbageCollection() {
	d.record("RunGarbageCollection")
}

func (d *testDevice) QueryFeatureSupport(feature rhi.Feature) bool {
	return d.features[feature]
}

func (d *testDevice) QueryFormatSupport(rhi.Format) rhi.FormatSupport {
	return rhi.FormatSupport(0)
}

func (d *testDevice) NativeQueue(rhi.ObjectType, rhi.CommandQueue) rhi.Object {
	return nil
}

func (d *testDevice) MessageCallback() rhi.MessageCallback { return nil }

// newValidationDevice wraps a fresh test device and captures its
// diagnostics.
func newValidationDevice(t *testing.T, opts ...Option) (*Device, *testDevice, *captureCallback) {
	t.Helper()
	inner := newTestDevice()
	sink := &captureCallback{}
	opts = append([]Option{WithMessageCallback(sink)}, opts...)
	return NewDevice(inner, opts...), inner, sink
}

// expectError asserts that err is a *Error reported once through the
// sink and that the backend never saw the named call.
func expectError(t *testing.T, err error, inner *testDevice, sink *captureCallback, call string) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected a validation error, got nil", call)
	}
	verr, ok := err.(*Error)
	if !ok {
		t.Fatalf("%s: error type = %T, want *Error", call, err)
	}
	if verr.Call() != call {
		t.Errorf("Call() = %q, want %q", verr.Call(), call)
	}
	if len(sink.messages) != 1 {
		t.Fatalf("%s: callback invoked %d times, want 1", call, len(sink.messages))
	}
	if inner.called(call) {
		t.Errorf("%s reached the backend despite validation failure", call)
	}
	return verr
}
