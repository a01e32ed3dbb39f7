// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package headless

import (
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/rhi"
)

// Device is an in-memory rhi.Device. Creation methods never touch a
// GPU; they build plain objects that carry their descriptors. See the
// package documentation for what executing command lists does.
//
// Creation methods are safe for concurrent use. Mapping and command
// list recording are single-threaded per resource, matching the
// rhi.Device contract.
type Device struct {
	api      rhi.GraphicsAPI
	features map[rhi.Feature]bool
	callback rhi.MessageCallback

	mu          sync.Mutex
	nextAddress uint64
	submissions [rhi.CommandQueueCount]uint64
}

var _ rhi.Device = (*Device)(nil)

// New creates a headless device. The default identity is a Vulkan
// device with compute and copy queues, constant buffer ranges, shader
// specializations, and virtual resources.
func New(opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	callback := o.callback
	if callback == nil {
		callback = rhi.DefaultMessageCallback()
	}
	d := &Device{
		api:         o.api,
		features:    o.features,
		callback:    callback,
		nextAddress: 1 << 20,
	}
	rhi.Logger().Info("headless: device created", "api", d.api)
	return d
}

func (d *Device) NativeObject(rhi.ObjectType) rhi.Object { return nil }

// GraphicsAPI reports the configured device identity.
func (d *Device) GraphicsAPI() rhi.GraphicsAPI { return d.api }

// MessageCallback returns the diagnostic sink.
func (d *Device) MessageCallback() rhi.MessageCallback { return d.callback }

// QueryFeatureSupport reports the configured feature set.
func (d *Device) QueryFeatureSupport(feature rhi.Feature) bool {
	return d.features[feature]
}

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

// require returns an error naming op when feature is not in the
// configured set.
func (d *Device) require(feature rhi.Feature, op string) error {
	if !d.features[feature] {
		return fmt.Errorf("headless: %s: %w", op, rhi.ErrNotSupported)
	}
	return nil
}

// allocAddress hands out fake, non-overlapping device addresses so that
// address-based code paths see plausible values.
func (d *Device) allocAddress(size uint64) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	addr := d.nextAddress
	d.nextAddress += (size + 255) &^ 255
	return addr
}

func (d *Device) CreateHeap(desc rhi.HeapDesc) (rhi.Heap, error) {
	return &heap{desc: desc, data: make([]byte, desc.Capacity)}, nil
}

func (d *Device) CreateTexture(desc rhi.TextureDesc) (rhi.Texture, error) {
	return &texture{desc: desc}, nil
}

func (d *Device) TextureMemoryRequirements(tex rhi.Texture) (rhi.MemoryRequirements, error) {
	t, ok := tex.(*texture)
	if !ok {
		return rhi.MemoryRequirements{}, fmt.Errorf("TextureMemoryRequirements: %w", ErrForeignResource)
	}
	return rhi.MemoryRequirements{Size: textureByteSize(t.desc), Alignment: 4096}, nil
}

func (d *Device) BindTextureMemory(tex rhi.Texture, hp rhi.Heap, offset uint64) error {
	t, ok := tex.(*texture)
	if !ok {
		return fmt.Errorf("BindTextureMemory: %w", ErrForeignResource)
	}
	h, ok := hp.(*heap)
	if !ok {
		return fmt.Errorf("BindTextureMemory: %w", ErrForeignResource)
	}
	if offset+textureByteSize(t.desc) > uint64(len(h.data)) {
		return fmt.Errorf("BindTextureMemory: %w", ErrHeapRange)
	}
	return nil
}

func (d *Device) CreateHandleForNativeTexture(objectType rhi.ObjectType, tex rhi.Object, desc rhi.TextureDesc) (rhi.Texture, error) {
	return &texture{desc: desc, native: tex, nativeType: objectType}, nil
}

func (d *Device) CreateStagingTexture(desc rhi.TextureDesc, cpuAccess rhi.CPUAccessMode) (rhi.StagingTexture, error) {
	if cpuAccess == rhi.CPUAccessNone {
		return nil, fmt.Errorf("CreateStagingTexture: %w", ErrNotMappable)
	}
	return &stagingTexture{
		desc:   desc,
		access: cpuAccess,
		data:   make(map[subresourceKey][]byte),
	}, nil
}

func (d *Device) MapStagingTexture(tex rhi.StagingTexture, slice rhi.TextureSlice, cpuAccess rhi.CPUAccessMode) ([]byte, int, error) {
	t, ok := tex.(*stagingTexture)
	if !ok {
		return nil, 0, fmt.Errorf("MapStagingTexture: %w", ErrForeignResource)
	}
	resolved := slice.Resolve(t.desc)
	pitch, rows := sliceLayout(t.desc.Format, resolved)
	key := subresourceKey{mipLevel: resolved.MipLevel, arraySlice: resolved.ArraySlice}
	data, exists := t.data[key]
	if !exists {
		data = make([]byte, pitch*rows)
		t.data[key] = data
	}
	return data, pitch, nil
}

func (d *Device) UnmapStagingTexture(tex rhi.StagingTexture) error {
	if _, ok := tex.(*stagingTexture); !ok {
		return fmt.Errorf("UnmapStagingTexture: %w", ErrForeignResource)
	}
	return nil
}

// tileShapeFor returns the 64 KB standard tile extent for a format.
func tileShapeFor(format rhi.Format) rhi.TileShape {
	switch format.Info().BytesPerBlock {
	case 1:
		return rhi.TileShape{WidthInTexels: 256, HeightInTexels: 256, DepthInTexels: 1}
	case 2:
		return rhi.TileShape{WidthInTexels: 256, HeightInTexels: 128, DepthInTexels: 1}
	case 4:
		return rhi.TileShape{WidthInTexels: 128, HeightInTexels: 128, DepthInTexels: 1}
	case 8:
		return rhi.TileShape{WidthInTexels: 128, HeightInTexels: 64, DepthInTexels: 1}
	default:
		return rhi.TileShape{WidthInTexels: 64, HeightInTexels: 64, DepthInTexels: 1}
	}
}

func (d *Device) TextureTiling(tex rhi.Texture) (rhi.TextureTilingInfo, error) {
	t, ok := tex.(*texture)
	if !ok {
		return rhi.TextureTilingInfo{}, fmt.Errorf("TextureTiling: %w", ErrForeignResource)
	}
	shape := tileShapeFor(t.desc.Format)
	info := rhi.TextureTilingInfo{
		TileShape: shape,
		PackedMips: rhi.PackedMipDesc{
			NumStandardMips: t.desc.MipLevels,
		},
	}
	for mip := uint32(0); mip < t.desc.MipLevels; mip++ {
		slice := rhi.TextureSlice{MipLevel: mip}.Resolve(t.desc)
		tiling := rhi.SubresourceTiling{
			WidthInTiles:                    (slice.Width + shape.WidthInTexels - 1) / shape.WidthInTexels,
			HeightInTiles:                   (slice.Height + shape.HeightInTexels - 1) / shape.HeightInTexels,
			DepthInTiles:                    (slice.Depth + shape.DepthInTexels - 1) / shape.DepthInTexels,
			StartTileIndexInOverallResource: info.NumTiles,
		}
		info.SubresourceTilings = append(info.SubresourceTilings, tiling)
		info.NumTiles += tiling.WidthInTiles * tiling.HeightInTiles * tiling.DepthInTiles
	}
	info.NumTiles *= t.desc.ArraySize
	return info, nil
}

func (d *Device) UpdateTextureTileMappings(tex rhi.Texture, mappings []rhi.TextureTilesMapping, executionQueue rhi.CommandQueue) error {
	if _, ok := tex.(*texture); !ok {
		return fmt.Errorf("UpdateTextureTileMappings: %w", ErrForeignResource)
	}
	return nil
}

func (d *Device) CreateSamplerFeedbackTexture(pairedTexture rhi.Texture, desc rhi.SamplerFeedbackTextureDesc) (rhi.SamplerFeedbackTexture, error) {
	if err := d.require(rhi.FeatureSamplerFeedback, "CreateSamplerFeedbackTexture"); err != nil {
		return nil, err
	}
	return &samplerFeedbackTexture{desc: desc, paired: pairedTexture}, nil
}

func (d *Device) CreateSamplerFeedbackForNativeTexture(objectType rhi.ObjectType, tex rhi.Object, pairedTexture rhi.Texture) (rhi.SamplerFeedbackTexture, error) {
	if err := d.require(rhi.FeatureSamplerFeedback, "CreateSamplerFeedbackForNativeTexture"); err != nil {
		return nil, err
	}
	return &samplerFeedbackTexture{paired: pairedTexture}, nil
}

func (d *Device) CreateBuffer(desc rhi.BufferDesc) (rhi.Buffer, error) {
	b := &buffer{desc: desc, address: d.allocAddress(desc.ByteSize)}
	if !desc.IsVirtual {
		b.data = make([]byte, desc.ByteSize)
	}
	return b, nil
}

func (d *Device) MapBuffer(buf rhi.Buffer, cpuAccess rhi.CPUAccessMode) ([]byte, error) {
	b, ok := buf.(*buffer)
	if !ok {
		return nil, fmt.Errorf("MapBuffer: %w", ErrForeignResource)
	}
	if b.desc.CPUAccess == rhi.CPUAccessNone {
		return nil, fmt.Errorf("MapBuffer: buffer %q: %w", b.desc.DebugName, ErrNotMappable)
	}
	if b.data == nil {
		return nil, fmt.Errorf("MapBuffer: buffer %q: %w", b.desc.DebugName, ErrNoMemory)
	}
	return b.data, nil
}

func (d *Device) UnmapBuffer(buf rhi.Buffer) error {
	if _, ok := buf.(*buffer); !ok {
		return fmt.Errorf("UnmapBuffer: %w", ErrForeignResource)
	}
	return nil
}

func (d *Device) BufferMemoryRequirements(buf rhi.Buffer) (rhi.MemoryRequirements, error) {
	b, ok := buf.(*buffer)
	if !ok {
		return rhi.MemoryRequirements{}, fmt.Errorf("BufferMemoryRequirements: %w", ErrForeignResource)
	}
	return rhi.MemoryRequirements{Size: b.desc.ByteSize, Alignment: 256}, nil
}

func (d *Device) BindBufferMemory(buf rhi.Buffer, hp rhi.Heap, offset uint64) error {
	b, ok := buf.(*buffer)
	if !ok {
		return fmt.Errorf("BindBufferMemory: %w", ErrForeignResource)
	}
	h, ok := hp.(*heap)
	if !ok {
		return fmt.Errorf("BindBufferMemory: %w", ErrForeignResource)
	}
	end := offset + b.desc.ByteSize
	if end > uint64(len(h.data)) {
		return fmt.Errorf("BindBufferMemory: %w", ErrHeapRange)
	}
	// The buffer aliases the heap storage, so overlapping binds share
	// bytes the way real placed resources do.
	b.data = h.data[offset:end:end]
	return nil
}

func (d *Device) CreateHandleForNativeBuffer(objectType rhi.ObjectType, buf rhi.Object, desc rhi.BufferDesc) (rhi.Buffer, error) {
	return &buffer{
		desc:       desc,
		address:    d.allocAddress(desc.ByteSize),
		native:     buf,
		nativeType: objectType,
	}, nil
}

func (d *Device) CreateShader(desc rhi.ShaderDesc, binary []byte) (rhi.Shader, error) {
	bytecode := make([]byte, len(binary))
	copy(bytecode, binary)
	return &shader{desc: desc, bytecode: bytecode}, nil
}

func (d *Device) CreateShaderSpecialization(baseShader rhi.Shader, constants []rhi.ShaderSpecialization) (rhi.Shader, error) {
	if err := d.require(rhi.FeatureShaderSpecializations, "CreateShaderSpecialization"); err != nil {
		return nil, err
	}
	base, ok := baseShader.(*shader)
	if !ok {
		return nil, fmt.Errorf("CreateShaderSpecialization: %w", ErrForeignResource)
	}
	return &shader{desc: base.desc, bytecode: base.bytecode}, nil
}

func (d *Device) CreateShaderLibrary(binary []byte) (rhi.ShaderLibrary, error) {
	bytecode := make([]byte, len(binary))
	copy(bytecode, binary)
	return &shaderLibrary{bytecode: bytecode}, nil
}

func (d *Device) CreateSampler(desc rhi.SamplerDesc) (rhi.Sampler, error) {
	return &sampler{desc: desc}, nil
}

func (d *Device) CreateInputLayout(attributes []rhi.VertexAttributeDesc, vertexShader rhi.Shader) (rhi.InputLayout, error) {
	attrs := make([]rhi.VertexAttributeDesc, len(attributes))
	copy(attrs, attributes)
	return &inputLayout{attributes: attrs}, nil
}

func (d *Device) CreateEventQuery() (rhi.EventQuery, error) {
	return &eventQuery{}, nil
}

func (d *Device) SetEventQuery(query rhi.EventQuery, queue rhi.CommandQueue) error {
	q, ok := query.(*eventQuery)
	if !ok {
		return fmt.Errorf("SetEventQuery: %w", ErrForeignResource)
	}
	// Submissions complete instantly, so the query signals at set time.
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

func (d *Device) CreateTimerQuery() (rhi.TimerQuery, error) {
	return &timerQuery{}, nil
}

func (d *Device) PollTimerQuery(query rhi.TimerQuery) bool {
	_, ok := query.(*timerQuery)
	return ok
}

func (d *Device) TimerQueryTime(query rhi.TimerQuery) (time.Duration, error) {
	if _, ok := query.(*timerQuery); !ok {
		return 0, fmt.Errorf("TimerQueryTime: %w", ErrForeignResource)
	}
	return 0, nil
}

func (d *Device) ResetTimerQuery(query rhi.TimerQuery) error {
	if _, ok := query.(*timerQuery); !ok {
		return fmt.Errorf("ResetTimerQuery: %w", ErrForeignResource)
	}
	return nil
}

func (d *Device) CreateFramebuffer(desc rhi.FramebufferDesc) (rhi.Framebuffer, error) {
	return &framebuffer{desc: desc, info: rhi.NewFramebufferInfo(desc)}, nil
}

func (d *Device) CreateGraphicsPipeline(desc rhi.GraphicsPipelineDesc, fb rhi.Framebuffer) (rhi.GraphicsPipeline, error) {
	p := &graphicsPipeline{desc: desc}
	if fb != nil {
		p.info = fb.Info()
	}
	return p, nil
}

func (d *Device) CreateComputePipeline(desc rhi.ComputePipelineDesc) (rhi.ComputePipeline, error) {
	return &computePipeline{desc: desc}, nil
}

func (d *Device) CreateMeshletPipeline(desc rhi.MeshletPipelineDesc, fb rhi.Framebuffer) (rhi.MeshletPipeline, error) {
	if err := d.require(rhi.FeatureMeshlets, "CreateMeshletPipeline"); err != nil {
		return nil, err
	}
	p := &meshletPipeline{desc: desc}
	if fb != nil {
		p.info = fb.Info()
	}
	return p, nil
}

func (d *Device) CreateRayTracingPipeline(desc rhi.RayTracingPipelineDesc) (rhi.RayTracingPipeline, error) {
	if err := d.require(rhi.FeatureRayTracingPipeline, "CreateRayTracingPipeline"); err != nil {
		return nil, err
	}
	return &rayTracingPipeline{desc: desc}, nil
}

func (d *Device) CreateBindingLayout(desc rhi.BindingLayoutDesc) (rhi.BindingLayout, error) {
	stored := desc
	stored.Bindings = make([]rhi.BindingLayoutItem, len(desc.Bindings))
	copy(stored.Bindings, desc.Bindings)
	return &bindingLayout{desc: &stored}, nil
}

func (d *Device) CreateBindlessLayout(desc rhi.BindlessLayoutDesc) (rhi.BindingLayout, error) {
	stored := desc
	stored.RegisterSpaces = make([]rhi.BindingLayoutItem, len(desc.RegisterSpaces))
	copy(stored.RegisterSpaces, desc.RegisterSpaces)
	return &bindingLayout{bindless: &stored}, nil
}

func (d *Device) CreateBindingSet(desc rhi.BindingSetDesc, layout rhi.BindingLayout) (rhi.BindingSet, error) {
	stored := desc
	stored.Bindings = make([]rhi.BindingSetItem, len(desc.Bindings))
	copy(stored.Bindings, desc.Bindings)
	return &bindingSet{desc: stored, layout: layout}, nil
}

func (d *Device) CreateDescriptorTable(layout rhi.BindingLayout) (rhi.DescriptorTable, error) {
	return &descriptorTable{layout: layout}, nil
}

func (d *Device) ResizeDescriptorTable(table rhi.DescriptorTable, newSize uint32, keepContents bool) error {
	t, ok := table.(*descriptorTable)
	if !ok {
		return fmt.Errorf("ResizeDescriptorTable: %w", ErrForeignResource)
	}
	slots := make([]rhi.BindingSetItem, newSize)
	if keepContents {
		copy(slots, t.slots)
	}
	t.slots = slots
	return nil
}

func (d *Device) WriteDescriptorTable(table rhi.DescriptorTable, item rhi.BindingSetItem) error {
	t, ok := table.(*descriptorTable)
	if !ok {
		return fmt.Errorf("WriteDescriptorTable: %w", ErrForeignResource)
	}
	if item.Slot >= uint32(len(t.slots)) {
		return fmt.Errorf("headless: WriteDescriptorTable: slot %d out of range, table holds %d descriptors",
			item.Slot, len(t.slots))
	}
	t.slots[item.Slot] = item
	return nil
}

func (d *Device) CreateOpacityMicromap(desc rhi.OpacityMicromapDesc) (rhi.OpacityMicromap, error) {
	if err := d.require(rhi.FeatureRayTracingOpacityMicromap, "CreateOpacityMicromap"); err != nil {
		return nil, err
	}
	return &opacityMicromap{desc: desc, address: d.allocAddress(4096)}, nil
}

func (d *Device) CreateAccelStruct(desc rhi.AccelStructDesc) (rhi.AccelStruct, error) {
	if err := d.require(rhi.FeatureRayTracingAccelStruct, "CreateAccelStruct"); err != nil {
		return nil, err
	}
	size := accelStructByteSize(desc)
	return &accelStruct{
		desc:    desc,
		address: d.allocAddress(size),
		bound:   !desc.IsVirtual,
	}, nil
}

func (d *Device) AccelStructMemoryRequirements(as rhi.AccelStruct) (rhi.MemoryRequirements, error) {
	a, ok := as.(*accelStruct)
	if !ok {
		return rhi.MemoryRequirements{}, fmt.Errorf("AccelStructMemoryRequirements: %w", ErrForeignResource)
	}
	return rhi.MemoryRequirements{Size: accelStructByteSize(a.desc), Alignment: 256}, nil
}

func (d *Device) ClusterOperationSizeInfo(params rhi.ClusterOperationParams) (rhi.ClusterOperationSizeInfo, error) {
	if err := d.require(rhi.FeatureRayTracingClusters, "ClusterOperationSizeInfo"); err != nil {
		return rhi.ClusterOperationSizeInfo{}, err
	}
	return rhi.ClusterOperationSizeInfo{
		ResultMaxSizeBytes: uint64(params.MaxArgCount) * 2048,
		ScratchSizeBytes:   uint64(params.MaxArgCount) * 512,
	}, nil
}

func (d *Device) BindAccelStructMemory(as rhi.AccelStruct, hp rhi.Heap, offset uint64) error {
	a, ok := as.(*accelStruct)
	if !ok {
		return fmt.Errorf("BindAccelStructMemory: %w", ErrForeignResource)
	}
	h, ok := hp.(*heap)
	if !ok {
		return fmt.Errorf("BindAccelStructMemory: %w", ErrForeignResource)
	}
	if offset+accelStructByteSize(a.desc) > uint64(len(h.data)) {
		return fmt.Errorf("BindAccelStructMemory: %w", ErrHeapRange)
	}
	a.bound = true
	return nil
}

func (d *Device) CreateCommandList(params rhi.CommandListParameters) (rhi.CommandList, error) {
	return &commandList{device: d, params: params}, nil
}

func (d *Device) ExecuteCommandLists(lists []rhi.CommandList, executionQueue rhi.CommandQueue) (uint64, error) {
	if executionQueue >= rhi.CommandQueueCount {
		return 0, fmt.Errorf("headless: ExecuteCommandLists: unknown queue %d", executionQueue)
	}
	for _, list := range lists {
		cl, ok := list.(*commandList)
		if !ok {
			return 0, fmt.Errorf("ExecuteCommandLists: %w", ErrForeignResource)
		}
		if err := cl.submit(executionQueue); err != nil {
			return 0, err
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.submissions[executionQueue]++
	return d.submissions[executionQueue], nil
}

func (d *Device) QueueWaitForCommandList(waitQueue, executionQueue rhi.CommandQueue, instanceID uint64) error {
	// Submissions complete at execute time, so there is nothing to wait
	// for.
	return nil
}

func (d *Device) WaitForIdle() error { return nil }

func (d *Device) RunGarbageCollection() {}

func (d *Device) QueryFormatSupport(format rhi.Format) rhi.FormatSupport {
	info := format.Info()
	if info.Format == rhi.FormatUnknown {
		return rhi.FormatSupportNone
	}
	support := rhi.FormatSupportTexture | rhi.FormatSupportShaderLoad | rhi.FormatSupportShaderSample
	if info.BlockSize > 1 {
		return support
	}
	if info.Kind == rhi.FormatKindDepthStencil {
		return support | rhi.FormatSupportDepthStencil
	}
	support |= rhi.FormatSupportBuffer | rhi.FormatSupportVertexBuffer | rhi.FormatSupportRenderTarget |
		rhi.FormatSupportShaderUAVLoad | rhi.FormatSupportShaderUAVStore
	if info.Kind == rhi.FormatKindNormalized || info.Kind == rhi.FormatKindFloat {
		support |= rhi.FormatSupportBlendable
	}
	switch format {
	case rhi.FormatR16UInt, rhi.FormatR32UInt:
		support |= rhi.FormatSupportIndexBuffer
	}
	switch format {
	case rhi.FormatR32UInt, rhi.FormatR32SInt:
		support |= rhi.FormatSupportShaderAtomic
	}
	return support
}

func (d *Device) NativeQueue(objectType rhi.ObjectType, queue rhi.CommandQueue) rhi.Object {
	return nil
}
