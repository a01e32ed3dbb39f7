// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"

	// Import the Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// fenceTimeout bounds how long one submission may run before
// ExecuteCommandLists reports an error.
const fenceTimeout = 5 * time.Second

// Device implements rhi.Device on a hal device and its queue.
//
// Creation methods are safe for concurrent use. Mapping and command
// list recording are single-threaded per resource, matching the
// rhi.Device contract.
type Device struct {
	instance hal.Instance // nil for adopted devices
	device   hal.Device
	queue    hal.Queue

	adapterName string
	external    bool
	callback    rhi.MessageCallback

	mu          sync.Mutex
	closed      bool
	submissions [rhi.CommandQueueCount]uint64
}

var _ rhi.Device = (*Device)(nil)

// New opens the first usable GPU adapter and creates a device on it.
// Discrete and integrated GPUs win over software adapters.
func New(opts ...Option) (*Device, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("vulkan backend not registered: %w", ErrNoAdapter)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("webgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("webgpu: open adapter %q: %w", selected.Info.Name, err)
	}
	d := &Device{
		instance:    instance,
		device:      openDev.Device,
		queue:       openDev.Queue,
		adapterName: selected.Info.Name,
		callback:    o.callback,
	}
	if d.callback == nil {
		d.callback = rhi.DefaultMessageCallback()
	}
	rhi.Logger().Info("webgpu: device created", "adapter", d.adapterName)
	return d, nil
}

// NewFromProvider adopts a hal device owned by a host application. The
// provider must expose HalDevice() any and HalQueue() any returning the
// hal device and queue, the convention gogpu hosts use to share their
// GPU. Close leaves an adopted device alive.
func NewFromProvider(provider any, opts ...Option) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("webgpu: provider does not expose HAL accessors")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("webgpu: provider HalDevice is not a hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("webgpu: provider HalQueue is not a hal.Queue")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := &Device{
		device:      device,
		queue:       queue,
		adapterName: "shared",
		external:    true,
		callback:    o.callback,
	}
	if d.callback == nil {
		d.callback = rhi.DefaultMessageCallback()
	}
	rhi.Logger().Info("webgpu: adopted shared device")
	return d, nil
}

// Close destroys the hal device and instance. Adopted devices stay
// alive; only the wrapper is invalidated. Close is idempotent. Device
// resources are freed with the hal device; there is no per-resource
// release.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	if !d.external {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.queue = nil
	d.instance = nil
}

func (d *Device) NativeObject(objectType rhi.ObjectType) rhi.Object {
	if objectType == rhi.ObjectTypeWebGPUDevice {
		return d.device
	}
	return nil
}

// AdapterName reports the adapter the device was opened on, or "shared"
// for adopted devices.
func (d *Device) AdapterName() string { return d.adapterName }

// GraphicsAPI reports the WebGPU identity.
func (d *Device) GraphicsAPI() rhi.GraphicsAPI { return rhi.GraphicsAPIWebGPU }

// MessageCallback returns the diagnostic sink.
func (d *Device) MessageCallback() rhi.MessageCallback { return d.callback }

// Submissions reports how many command list batches have been executed
// on queue. Tests use it to observe that work actually reached the
// device.
func (d *Device) Submissions(queue rhi.CommandQueue) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if queue >= rhi.CommandQueueCount {
		return 0
	}
	return d.submissions[queue]
}

// unsupported names an operation outside the subset WebGPU expresses.
func unsupported(op string) error {
	return fmt.Errorf("webgpu: %s: %w", op, rhi.ErrNotSupported)
}

func (d *Device) QueryFeatureSupport(feature rhi.Feature) bool {
	switch feature {
	case rhi.FeatureComputeQueue, rhi.FeatureConstantBufferRanges, rhi.FeatureDeferredCommandLists:
		return true
	default:
		return false
	}
}

func (d *Device) QueryFormatSupport(format rhi.Format) rhi.FormatSupport {
	return formatSupport[format]
}

func (d *Device) CreateHeap(rhi.HeapDesc) (rhi.Heap, error) {
	return nil, unsupported("CreateHeap")
}

func (d *Device) CreateTexture(desc rhi.TextureDesc) (rhi.Texture, error) {
	format, ok := textureFormat(desc.Format)
	if !ok {
		return nil, fmt.Errorf("webgpu: CreateTexture: format %v: %w", desc.Format, rhi.ErrNotSupported)
	}
	dimension, ok := textureDimension(desc.Dimension)
	if !ok {
		return nil, fmt.Errorf("webgpu: CreateTexture: dimension %v: %w", desc.Dimension, rhi.ErrNotSupported)
	}
	if desc.IsUAV {
		return nil, unsupported("CreateTexture: storage textures")
	}
	if desc.IsVirtual || desc.IsTiled {
		return nil, unsupported("CreateTexture: virtual textures")
	}
	native, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: desc.DebugName,
		Size: hal.Extent3D{
			Width:              max(desc.Width, 1),
			Height:             max(desc.Height, 1),
			DepthOrArrayLayers: textureLayers(desc),
		},
		MipLevelCount: max(desc.MipLevels, 1),
		SampleCount:   max(desc.SampleCount, 1),
		Dimension:     dimension,
		Format:        format,
		Usage:         textureUsage(desc),
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: CreateTexture: %w", err)
	}
	return &texture{desc: desc, native: native}, nil
}

func (d *Device) TextureMemoryRequirements(rhi.Texture) (rhi.MemoryRequirements, error) {
	return rhi.MemoryRequirements{}, unsupported("TextureMemoryRequirements")
}

func (d *Device) BindTextureMemory(rhi.Texture, rhi.Heap, uint64) error {
	return unsupported("BindTextureMemory")
}

func (d *Device) CreateHandleForNativeTexture(objectType rhi.ObjectType, tex rhi.Object, desc rhi.TextureDesc) (rhi.Texture, error) {
	if objectType != rhi.ObjectTypeWebGPUTexture {
		return nil, unsupported("CreateHandleForNativeTexture: non-WebGPU handles")
	}
	native, ok := tex.(hal.Texture)
	if !ok || native == nil {
		return nil, fmt.Errorf("CreateHandleForNativeTexture: %w", ErrForeignResource)
	}
	return &texture{desc: desc, native: native}, nil
}

// Staging textures have no copy path on this device; the command list
// surface carries no texture copies.
func (d *Device) CreateStagingTexture(rhi.TextureDesc, rhi.CPUAccessMode) (rhi.StagingTexture, error) {
	return nil, unsupported("CreateStagingTexture")
}

func (d *Device) MapStagingTexture(rhi.StagingTexture, rhi.TextureSlice, rhi.CPUAccessMode) ([]byte, int, error) {
	return nil, 0, unsupported("MapStagingTexture")
}

func (d *Device) UnmapStagingTexture(rhi.StagingTexture) error {
	return unsupported("UnmapStagingTexture")
}

func (d *Device) TextureTiling(rhi.Texture) (rhi.TextureTilingInfo, error) {
	return rhi.TextureTilingInfo{}, unsupported("TextureTiling")
}

func (d *Device) UpdateTextureTileMappings(rhi.Texture, []rhi.TextureTilesMapping, rhi.CommandQueue) error {
	return unsupported("UpdateTextureTileMappings")
}

func (d *Device) CreateSamplerFeedbackTexture(rhi.Texture, rhi.SamplerFeedbackTextureDesc) (rhi.SamplerFeedbackTexture, error) {
	return nil, unsupported("CreateSamplerFeedbackTexture")
}

func (d *Device) CreateSamplerFeedbackForNativeTexture(rhi.ObjectType, rhi.Object, rhi.Texture) (rhi.SamplerFeedbackTexture, error) {
	return nil, unsupported("CreateSamplerFeedbackForNativeTexture")
}

func (d *Device) CreateBuffer(desc rhi.BufferDesc) (rhi.Buffer, error) {
	if desc.IsVirtual {
		return nil, unsupported("CreateBuffer: virtual buffers")
	}
	native, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.DebugName,
		Size:  desc.ByteSize,
		Usage: bufferUsage(desc),
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: CreateBuffer: %w", err)
	}
	return &buffer{desc: desc, native: native}, nil
}

func (d *Device) MapBuffer(buf rhi.Buffer, cpuAccess rhi.CPUAccessMode) ([]byte, error) {
	b, ok := buf.(*buffer)
	if !ok {
		return nil, fmt.Errorf("MapBuffer: %w", ErrForeignResource)
	}
	if b.desc.CPUAccess == rhi.CPUAccessNone {
		return nil, fmt.Errorf("MapBuffer: buffer %q: %w", b.desc.DebugName, ErrNotMappable)
	}
	b.mapped = make([]byte, b.desc.ByteSize)
	b.mapAccess = cpuAccess
	if cpuAccess == rhi.CPUAccessRead {
		if err := d.queue.ReadBuffer(b.native, 0, b.mapped); err != nil {
			b.mapped = nil
			return nil, fmt.Errorf("webgpu: MapBuffer: %w", err)
		}
	}
	return b.mapped, nil
}

func (d *Device) UnmapBuffer(buf rhi.Buffer) error {
	b, ok := buf.(*buffer)
	if !ok {
		return fmt.Errorf("UnmapBuffer: %w", ErrForeignResource)
	}
	if b.mapped != nil && b.mapAccess == rhi.CPUAccessWrite {
		d.queue.WriteBuffer(b.native, 0, b.mapped)
	}
	b.mapped = nil
	return nil
}

func (d *Device) BufferMemoryRequirements(rhi.Buffer) (rhi.MemoryRequirements, error) {
	return rhi.MemoryRequirements{}, unsupported("BufferMemoryRequirements")
}

func (d *Device) BindBufferMemory(rhi.Buffer, rhi.Heap, uint64) error {
	return unsupported("BindBufferMemory")
}

func (d *Device) CreateHandleForNativeBuffer(objectType rhi.ObjectType, buf rhi.Object, desc rhi.BufferDesc) (rhi.Buffer, error) {
	if objectType != rhi.ObjectTypeWebGPUBuffer {
		return nil, unsupported("CreateHandleForNativeBuffer: non-WebGPU handles")
	}
	native, ok := buf.(hal.Buffer)
	if !ok || native == nil {
		return nil, fmt.Errorf("CreateHandleForNativeBuffer: %w", ErrForeignResource)
	}
	return &buffer{desc: desc, native: native}, nil
}

func (d *Device) CreateShader(desc rhi.ShaderDesc, binary []byte) (rhi.Shader, error) {
	bytecode := make([]byte, len(binary))
	copy(bytecode, binary)
	var source hal.ShaderSource
	if isSPIRV(bytecode) {
		if len(bytecode)%4 != 0 {
			return nil, fmt.Errorf("webgpu: CreateShader: SPIR-V blob length %d is not a multiple of 4", len(bytecode))
		}
		source.SPIRV = spirvWords(bytecode)
	} else {
		source.WGSL = string(bytecode)
	}
	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.DebugName,
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: CreateShader: %w", err)
	}
	return &shader{desc: desc, bytecode: bytecode, module: module}, nil
}

func (d *Device) CreateShaderSpecialization(rhi.Shader, []rhi.ShaderSpecialization) (rhi.Shader, error) {
	return nil, unsupported("CreateShaderSpecialization")
}

func (d *Device) CreateShaderLibrary([]byte) (rhi.ShaderLibrary, error) {
	return nil, unsupported("CreateShaderLibrary")
}

func (d *Device) CreateSampler(desc rhi.SamplerDesc) (rhi.Sampler, error) {
	if desc.AddressU != rhi.SamplerAddressClamp ||
		desc.AddressV != rhi.SamplerAddressClamp ||
		desc.AddressW != rhi.SamplerAddressClamp {
		return nil, unsupported("CreateSampler: non-clamp addressing")
	}
	sd := &hal.SamplerDescriptor{
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
	}
	// Filter fields stay at the hal default (point sampling) unless the
	// descriptor asks for linear.
	if desc.MagFilter {
		sd.MagFilter = gputypes.FilterModeLinear
	}
	if desc.MinFilter {
		sd.MinFilter = gputypes.FilterModeLinear
	}
	if desc.MipFilter {
		sd.MipmapFilter = gputypes.FilterModeLinear
	}
	native, err := d.device.CreateSampler(sd)
	if err != nil {
		return nil, fmt.Errorf("webgpu: CreateSampler: %w", err)
	}
	return &sampler{desc: desc, native: native}, nil
}

func (d *Device) CreateInputLayout([]rhi.VertexAttributeDesc, rhi.Shader) (rhi.InputLayout, error) {
	return nil, unsupported("CreateInputLayout")
}

func (d *Device) CreateEventQuery() (rhi.EventQuery, error) {
	return &eventQuery{}, nil
}

func (d *Device) SetEventQuery(query rhi.EventQuery, queue rhi.CommandQueue) error {
	q, ok := query.(*eventQuery)
	if !ok {
		return fmt.Errorf("SetEventQuery: %w", ErrForeignResource)
	}
	if queue >= rhi.CommandQueueCount {
		return fmt.Errorf("webgpu: SetEventQuery: unknown queue %v", queue)
	}
	// Submissions complete before ExecuteCommandLists returns, so the
	// query signals at set time.
	q.signaled = true
	return nil
}

func (d *Device) PollEventQuery(query rhi.EventQuery) bool {
	q, ok := query.(*eventQuery)
	return ok && q.signaled
}

func (d *Device) WaitEventQuery(query rhi.EventQuery) error {
	if _, ok := query.(*eventQuery); !ok {
		return fmt.Errorf("WaitEventQuery: %w", ErrForeignResource)
	}
	return nil
}

func (d *Device) ResetEventQuery(query rhi.EventQuery) error {
	q, ok := query.(*eventQuery)
	if !ok {
		return fmt.Errorf("ResetEventQuery: %w", ErrForeignResource)
	}
	q.signaled = false
	return nil
}

// Timer queries need a timestamp surface the hal does not expose.
func (d *Device) CreateTimerQuery() (rhi.TimerQuery, error) {
	return nil, unsupported("CreateTimerQuery")
}

func (d *Device) PollTimerQuery(rhi.TimerQuery) bool { return false }

func (d *Device) TimerQueryTime(rhi.TimerQuery) (time.Duration, error) {
	return 0, unsupported("TimerQueryTime")
}

func (d *Device) ResetTimerQuery(rhi.TimerQuery) error {
	return unsupported("ResetTimerQuery")
}

func (d *Device) CreateFramebuffer(rhi.FramebufferDesc) (rhi.Framebuffer, error) {
	return nil, unsupported("CreateFramebuffer")
}

func (d *Device) CreateGraphicsPipeline(rhi.GraphicsPipelineDesc, rhi.Framebuffer) (rhi.GraphicsPipeline, error) {
	return nil, unsupported("CreateGraphicsPipeline")
}

func (d *Device) CreateComputePipeline(desc rhi.ComputePipelineDesc) (rhi.ComputePipeline, error) {
	cs, ok := desc.ComputeShader.(*shader)
	if !ok {
		return nil, fmt.Errorf("CreateComputePipeline: %w", ErrForeignResource)
	}
	layouts := make([]hal.BindGroupLayout, len(desc.BindingLayouts))
	for i, l := range desc.BindingLayouts {
		bl, ok := l.(*bindingLayout)
		if !ok {
			return nil, fmt.Errorf("CreateComputePipeline: %w", ErrForeignResource)
		}
		layouts[i] = bl.native
	}
	pipeLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            cs.desc.DebugName,
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: CreateComputePipeline: pipeline layout: %w", err)
	}
	native, err := d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:   cs.desc.DebugName,
		Layout:  pipeLayout,
		Compute: hal.ComputeState{Module: cs.module, EntryPoint: cs.desc.Entry()},
	})
	if err != nil {
		d.device.DestroyPipelineLayout(pipeLayout)
		return nil, fmt.Errorf("webgpu: CreateComputePipeline: %w", err)
	}
	return &computePipeline{desc: desc, pipeLayout: pipeLayout, native: native}, nil
}

func (d *Device) CreateMeshletPipeline(rhi.MeshletPipelineDesc, rhi.Framebuffer) (rhi.MeshletPipeline, error) {
	return nil, unsupported("CreateMeshletPipeline")
}

func (d *Device) CreateRayTracingPipeline(rhi.RayTracingPipelineDesc) (rhi.RayTracingPipeline, error) {
	return nil, unsupported("CreateRayTracingPipeline")
}

func (d *Device) CreateBindingLayout(desc rhi.BindingLayoutDesc) (rhi.BindingLayout, error) {
	// Binding offsets do not apply; WGSL modules address slots directly.
	var proto gputypes.BindGroupLayoutEntry
	if desc.Visibility&rhi.ShaderTypeVertex != 0 {
		proto.Visibility |= gputypes.ShaderStageVertex
	}
	if desc.Visibility&rhi.ShaderTypePixel != 0 {
		proto.Visibility |= gputypes.ShaderStageFragment
	}
	if desc.Visibility&rhi.ShaderTypeCompute != 0 {
		proto.Visibility |= gputypes.ShaderStageCompute
	}
	if proto.Visibility == 0 {
		return nil, unsupported("CreateBindingLayout: no WebGPU-visible stages")
	}
	entries := make([]gputypes.BindGroupLayoutEntry, 0, len(desc.Bindings))
	for _, item := range desc.Bindings {
		entry := gputypes.BindGroupLayoutEntry{Binding: item.Slot, Visibility: proto.Visibility}
		switch item.Type {
		case rhi.ResourceTypeConstantBuffer, rhi.ResourceTypeVolatileConstantBuffer:
			entry.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
		case rhi.ResourceTypeStructuredBufferSRV, rhi.ResourceTypeRawBufferSRV:
			entry.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}
		case rhi.ResourceTypeStructuredBufferUAV, rhi.ResourceTypeRawBufferUAV:
			entry.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}
		default:
			return nil, fmt.Errorf("webgpu: CreateBindingLayout: %v bindings: %w", item.Type, rhi.ErrNotSupported)
		}
		entries = append(entries, entry)
	}
	native, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{Entries: entries})
	if err != nil {
		return nil, fmt.Errorf("webgpu: CreateBindingLayout: %w", err)
	}
	out := desc
	out.Bindings = make([]rhi.BindingLayoutItem, len(desc.Bindings))
	copy(out.Bindings, desc.Bindings)
	return &bindingLayout{desc: out, native: native}, nil
}

func (d *Device) CreateBindlessLayout(rhi.BindlessLayoutDesc) (rhi.BindingLayout, error) {
	return nil, unsupported("CreateBindlessLayout")
}

func (d *Device) CreateBindingSet(desc rhi.BindingSetDesc, layout rhi.BindingLayout) (rhi.BindingSet, error) {
	bl, ok := layout.(*bindingLayout)
	if !ok {
		return nil, fmt.Errorf("CreateBindingSet: %w", ErrForeignResource)
	}
	entries := make([]gputypes.BindGroupEntry, 0, len(desc.Bindings))
	for _, item := range desc.Bindings {
		switch item.Type {
		case rhi.ResourceTypeConstantBuffer, rhi.ResourceTypeVolatileConstantBuffer,
			rhi.ResourceTypeStructuredBufferSRV, rhi.ResourceTypeRawBufferSRV,
			rhi.ResourceTypeStructuredBufferUAV, rhi.ResourceTypeRawBufferUAV:
		default:
			return nil, fmt.Errorf("webgpu: CreateBindingSet: %v bindings: %w", item.Type, rhi.ErrNotSupported)
		}
		b, ok := item.Resource.(*buffer)
		if !ok {
			return nil, fmt.Errorf("CreateBindingSet: %w", ErrForeignResource)
		}
		r := item.Range.Resolve(b.desc)
		entries = append(entries, gputypes.BindGroupEntry{
			Binding: item.Slot,
			Resource: gputypes.BufferBinding{
				Buffer: b.native.NativeHandle(),
				Offset: r.ByteOffset,
				Size:   r.ByteSize,
			},
		})
	}
	native, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Layout:  bl.native,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: CreateBindingSet: %w", err)
	}
	out := desc
	out.Bindings = make([]rhi.BindingSetItem, len(desc.Bindings))
	copy(out.Bindings, desc.Bindings)
	return &bindingSet{desc: out, layout: layout, native: native}, nil
}

func (d *Device) CreateDescriptorTable(rhi.BindingLayout) (rhi.DescriptorTable, error) {
	return nil, unsupported("CreateDescriptorTable")
}

func (d *Device) ResizeDescriptorTable(rhi.DescriptorTable, uint32, bool) error {
	return unsupported("ResizeDescriptorTable")
}

func (d *Device) WriteDescriptorTable(rhi.DescriptorTable, rhi.BindingSetItem) error {
	return unsupported("WriteDescriptorTable")
}

func (d *Device) CreateOpacityMicromap(rhi.OpacityMicromapDesc) (rhi.OpacityMicromap, error) {
	return nil, unsupported("CreateOpacityMicromap")
}

func (d *Device) CreateAccelStruct(rhi.AccelStructDesc) (rhi.AccelStruct, error) {
	return nil, unsupported("CreateAccelStruct")
}

func (d *Device) AccelStructMemoryRequirements(rhi.AccelStruct) (rhi.MemoryRequirements, error) {
	return rhi.MemoryRequirements{}, unsupported("AccelStructMemoryRequirements")
}

func (d *Device) ClusterOperationSizeInfo(rhi.ClusterOperationParams) (rhi.ClusterOperationSizeInfo, error) {
	return rhi.ClusterOperationSizeInfo{}, unsupported("ClusterOperationSizeInfo")
}

func (d *Device) BindAccelStructMemory(rhi.AccelStruct, rhi.Heap, uint64) error {
	return unsupported("BindAccelStructMemory")
}

func (d *Device) CreateCommandList(params rhi.CommandListParameters) (rhi.CommandList, error) {
	if params.QueueType >= rhi.CommandQueueCount {
		return nil, fmt.Errorf("webgpu: CreateCommandList: unknown queue %v", params.QueueType)
	}
	if params.QueueType == rhi.CommandQueueCopy {
		return nil, unsupported("CreateCommandList: copy queue lists")
	}
	return &commandList{device: d, params: params}, nil
}

// ExecuteCommandLists submits the encoded work in one batch and blocks
// until its fence signals. Graphics and compute submissions share the
// single hardware queue.
func (d *Device) ExecuteCommandLists(lists []rhi.CommandList, executionQueue rhi.CommandQueue) (uint64, error) {
	if executionQueue != rhi.CommandQueueGraphics && executionQueue != rhi.CommandQueueCompute {
		return 0, fmt.Errorf("webgpu: ExecuteCommandLists: queue %v: %w", executionQueue, rhi.ErrNotSupported)
	}
	cmdBufs := make([]hal.CommandBuffer, 0, len(lists))
	for _, list := range lists {
		cl, ok := list.(*commandList)
		if !ok {
			return 0, fmt.Errorf("ExecuteCommandLists: %w", ErrForeignResource)
		}
		buf, err := cl.take(executionQueue)
		if err != nil {
			return 0, err
		}
		cmdBufs = append(cmdBufs, buf)
	}
	if len(cmdBufs) > 0 {
		defer func() {
			for _, buf := range cmdBufs {
				d.device.FreeCommandBuffer(buf)
			}
		}()
		fence, err := d.device.CreateFence()
		if err != nil {
			return 0, fmt.Errorf("webgpu: ExecuteCommandLists: create fence: %w", err)
		}
		defer d.device.DestroyFence(fence)
		if err := d.queue.Submit(cmdBufs, fence, 1); err != nil {
			return 0, fmt.Errorf("webgpu: ExecuteCommandLists: submit: %w", err)
		}
		fenceOK, err := d.device.Wait(fence, 1, fenceTimeout)
		if err != nil {
			return 0, fmt.Errorf("webgpu: ExecuteCommandLists: wait: %w", err)
		}
		if !fenceOK {
			return 0, fmt.Errorf("webgpu: ExecuteCommandLists: fence timed out after %v", fenceTimeout)
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.submissions[executionQueue]++
	return d.submissions[executionQueue], nil
}

func (d *Device) QueueWaitForCommandList(waitQueue, executionQueue rhi.CommandQueue, instanceID uint64) error {
	if waitQueue >= rhi.CommandQueueCount || executionQueue >= rhi.CommandQueueCount {
		return fmt.Errorf("webgpu: QueueWaitForCommandList: unknown queue")
	}
	// Submissions complete at execute time, so there is nothing to wait
	// for.
	return nil
}

func (d *Device) WaitForIdle() error { return nil }

// RunGarbageCollection is a no-op; hal resources live until Close.
func (d *Device) RunGarbageCollection() {}

func (d *Device) NativeQueue(objectType rhi.ObjectType, queue rhi.CommandQueue) rhi.Object {
	if objectType != rhi.ObjectTypeWebGPUQueue {
		return nil
	}
	if queue != rhi.CommandQueueGraphics && queue != rhi.CommandQueueCompute {
		return nil
	}
	return d.queue
}
