// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import (
	"time"

	"github.com/gogpu/rhi"
)

// Device validates every call against the descriptor rules documented
// in package rhi before forwarding it to the wrapped device. Calls that
// fail validation are reported once through the message callback, with
// all violations aggregated into a single message, and return a *Error
// without reaching the backend.
//
// The decorator keeps no state between calls; it is as safe for
// concurrent use as the device it wraps.
type Device struct {
	inner      rhi.Device
	callback   rhi.MessageCallback
	reflection bool
}

var _ rhi.Device = (*Device)(nil)

// NewDevice wraps inner with a validation layer. Without options,
// diagnostics go to inner's own message callback, falling back to the
// rhi package logger when inner has none.
func NewDevice(inner rhi.Device, opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	callback := o.callback
	if callback == nil {
		callback = inner.MessageCallback()
	}
	if callback == nil {
		callback = rhi.DefaultMessageCallback()
	}
	return &Device{
		inner:      inner,
		callback:   callback,
		reflection: o.reflection,
	}
}

// MessageCallback returns the sink validation failures are reported to.
func (d *Device) MessageCallback() rhi.MessageCallback { return d.callback }

// message reports an advisory diagnostic that does not fail a call.
func (d *Device) message(severity rhi.MessageSeverity, text string) {
	d.callback.Message(severity, text)
}

// unwrapResource recovers the backend resource behind a decorator
// wrapper. Resources that are not wrappers pass through unchanged.
func unwrapResource(resource rhi.Resource) rhi.Resource {
	switch w := resource.(type) {
	case nil:
		return nil
	case *accelStructWrapper:
		return w.inner
	case *commandListWrapper:
		return w.inner
	default:
		return resource
	}
}

// unwrapAccelStruct recovers the backend structure behind a wrapper.
func unwrapAccelStruct(as rhi.AccelStruct) rhi.AccelStruct {
	if w, ok := as.(*accelStructWrapper); ok {
		return w.inner
	}
	return as
}

// NativeObject forwards to the wrapped device.
func (d *Device) NativeObject(objectType rhi.ObjectType) rhi.Object {
	return d.inner.NativeObject(objectType)
}

// GraphicsAPI reports which native API the wrapped device drives.
func (d *Device) GraphicsAPI() rhi.GraphicsAPI { return d.inner.GraphicsAPI() }

func (d *Device) CreateHandleForNativeTexture(objectType rhi.ObjectType, texture rhi.Object, desc rhi.TextureDesc) (rhi.Texture, error) {
	return d.inner.CreateHandleForNativeTexture(objectType, texture, desc)
}

func (d *Device) MapStagingTexture(tex rhi.StagingTexture, slice rhi.TextureSlice, cpuAccess rhi.CPUAccessMode) ([]byte, int, error) {
	return d.inner.MapStagingTexture(tex, slice, cpuAccess)
}

func (d *Device) UnmapStagingTexture(tex rhi.StagingTexture) error {
	return d.inner.UnmapStagingTexture(tex)
}

func (d *Device) TextureTiling(texture rhi.Texture) (rhi.TextureTilingInfo, error) {
	return d.inner.TextureTiling(texture)
}

func (d *Device) UpdateTextureTileMappings(texture rhi.Texture, mappings []rhi.TextureTilesMapping, executionQueue rhi.CommandQueue) error {
	return d.inner.UpdateTextureTileMappings(texture, mappings, executionQueue)
}

func (d *Device) MapBuffer(buffer rhi.Buffer, cpuAccess rhi.CPUAccessMode) ([]byte, error) {
	return d.inner.MapBuffer(buffer, cpuAccess)
}

func (d *Device) UnmapBuffer(buffer rhi.Buffer) error {
	return d.inner.UnmapBuffer(buffer)
}

func (d *Device) CreateHandleForNativeBuffer(objectType rhi.ObjectType, buffer rhi.Object, desc rhi.BufferDesc) (rhi.Buffer, error) {
	return d.inner.CreateHandleForNativeBuffer(objectType, buffer, desc)
}

func (d *Device) CreateSampler(desc rhi.SamplerDesc) (rhi.Sampler, error) {
	return d.inner.CreateSampler(desc)
}

func (d *Device) CreateInputLayout(attributes []rhi.VertexAttributeDesc, vertexShader rhi.Shader) (rhi.InputLayout, error) {
	return d.inner.CreateInputLayout(attributes, vertexShader)
}

func (d *Device) CreateEventQuery() (rhi.EventQuery, error) {
	return d.inner.CreateEventQuery()
}

func (d *Device) SetEventQuery(query rhi.EventQuery, queue rhi.CommandQueue) error {
	return d.inner.SetEventQuery(query, queue)
}

func (d *Device) PollEventQuery(query rhi.EventQuery) bool {
	return d.inner.PollEventQuery(query)
}

func (d *Device) WaitEventQuery(query rhi.EventQuery) error {
	return d.inner.WaitEventQuery(query)
}

func (d *Device) ResetEventQuery(query rhi.EventQuery) error {
	return d.inner.ResetEventQuery(query)
}

func (d *Device) CreateTimerQuery() (rhi.TimerQuery, error) {
	return d.inner.CreateTimerQuery()
}

func (d *Device) PollTimerQuery(query rhi.TimerQuery) bool {
	return d.inner.PollTimerQuery(query)
}

func (d *Device) TimerQueryTime(query rhi.TimerQuery) (time.Duration, error) {
	return d.inner.TimerQueryTime(query)
}

func (d *Device) ResetTimerQuery(query rhi.TimerQuery) error {
	return d.inner.ResetTimerQuery(query)
}

func (d *Device) CreateFramebuffer(desc rhi.FramebufferDesc) (rhi.Framebuffer, error) {
	return d.inner.CreateFramebuffer(desc)
}

func (d *Device) QueueWaitForCommandList(waitQueue, executionQueue rhi.CommandQueue, instanceID uint64) error {
	return d.inner.QueueWaitForCommandList(waitQueue, executionQueue, instanceID)
}

func (d *Device) WaitForIdle() error {
	return d.inner.WaitForIdle()
}

func (d *Device) RunGarbageCollection() {
	d.inner.RunGarbageCollection()
}

func (d *Device) QueryFeatureSupport(feature rhi.Feature) bool {
	return d.inner.QueryFeatureSupport(feature)
}

func (d *Device) QueryFormatSupport(format rhi.Format) rhi.FormatSupport {
	return d.inner.QueryFormatSupport(format)
}

func (d *Device) NativeQueue(objectType rhi.ObjectType, queue rhi.CommandQueue) rhi.Object {
	return d.inner.NativeQueue(objectType, queue)
}
